// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package appconfigtest provides in-memory implementations of the
// appconfig interfaces for unit tests.
package appconfigtest

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/z5labs/appconfig"
	"github.com/z5labs/appconfig/config"

	"github.com/stretchr/testify/require"
)

// Config is the content of an in-memory Manager.
type Config struct {
	// Sections maps section names, e.g. "appSettings" or
	// "system.web/pages", to their settings.
	Sections map[string]map[string]string

	ConnectionStrings appconfig.ConnectionStrings
}

// Apply implements the [config.Source] interface.
func (cfg Config) Apply(store config.Store) error {
	m := make(config.Map)
	names := make([]string, 0, len(cfg.Sections))
	for name := range cfg.Sections {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		// nested sections are addressed with "/"
		cur := map[string]any(m)
		for _, seg := range strings.Split(name, "/") {
			next, ok := cur[seg].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cur[seg] = next
			}
			cur = next
		}
		for k, v := range cfg.Sections[name] {
			cur[k] = v
		}
	}

	if len(cfg.ConnectionStrings) > 0 {
		entries := make([]any, len(cfg.ConnectionStrings))
		for i, cs := range cfg.ConnectionStrings {
			entries[i] = map[string]any{
				"name":             cs.Name,
				"connectionString": cs.ConnectionString,
				"providerName":     cs.ProviderName,
			}
		}
		m["connectionStrings"] = entries
	}
	return m.Apply(store)
}

// NewManager returns a Manager whose default configuration only holds
// cfg. Documents it opens live in a temporary directory removed when
// the test completes.
func NewManager(tb testing.TB, cfg Config, opts ...appconfig.Option) *appconfig.ConfigurationManager {
	tb.Helper()

	dir := tb.TempDir()
	base := []appconfig.Option{
		appconfig.Name("appconfigtest"),
		appconfig.ExePath(filepath.Join(dir, "app")),
		appconfig.MachineConfigFile(filepath.Join(dir, "machine.config.yaml")),
		appconfig.UserConfigDir(dir),
		appconfig.WithoutFiles(),
		appconfig.Sources(cfg),
	}

	m, err := appconfig.NewManager(append(base, opts...)...)
	require.NoError(tb, err)
	return m
}

// Settings is a fixed [appconfig.Settings] keyed by section name.
// Section names are matched case-insensitively.
type Settings map[string]map[string]string

// AppSettings implements the [appconfig.Settings] interface.
func (s Settings) AppSettings() *appconfig.Section {
	sec, ok := s.GetSection("appSettings")
	if !ok {
		return appconfig.NewSection("appSettings", nil)
	}
	return sec
}

// GetSection implements the [appconfig.Settings] interface.
func (s Settings) GetSection(name string) (*appconfig.Section, bool) {
	if strings.TrimSpace(name) == "" {
		return nil, false
	}
	for n, values := range s {
		if strings.EqualFold(n, name) {
			return appconfig.NewSection(n, values), true
		}
	}
	return nil, false
}
