// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/z5labs/appconfig/config"
	"github.com/z5labs/appconfig/pkg/health"
	"github.com/z5labs/appconfig/pkg/maskslog"
	"github.com/z5labs/appconfig/pkg/noop"
	"github.com/z5labs/appconfig/pkg/slogfield"

	"golang.org/x/sync/errgroup"
)

// connectionStringAttr is the log attribute key whose values are
// always masked.
const connectionStringAttr = "connection_string"

// ConfigurationManager is the file backed [Manager].
//
// Its default configuration layers the machine configuration file, the
// executable configuration file and any [Sources], in that order.
// It is safe for concurrent use.
type ConfigurationManager struct {
	log *slog.Logger

	paths        hierarchy
	format       config.Format
	srcs         []config.Source
	funcs        template.FuncMap
	withoutFiles bool
	debounce     time.Duration

	mu       sync.Mutex
	store    *snapshot
	stale    bool
	sections map[string]*Section
	status   health.Status

	// watching records errors reported by the file watcher
	watching health.Status
}

// NewManager loads the default configuration and returns a Manager
// for it. Missing files are treated as empty, a malformed one fails
// with a [LoadError].
func NewManager(opts ...Option) (*ConfigurationManager, error) {
	o := &options{
		format:     config.YAML,
		logHandler: noop.LogHandler{},
		debounce:   500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}

	paths, err := resolveHierarchy(o)
	if err != nil {
		return nil, err
	}

	m := &ConfigurationManager{
		log: slog.New(maskslog.NewHandler(
			o.logHandler,
			maskslog.Attr(connectionStringAttr, maskslog.AnonymousStringAttr),
		)),
		paths:        paths,
		format:       o.format,
		srcs:         o.srcs,
		funcs:        o.funcs,
		withoutFiles: o.withoutFiles,
		debounce:     o.debounce,
		sections:     make(map[string]*Section),
	}

	store, err := m.load()
	if err != nil {
		return nil, err
	}
	m.store = store
	return m, nil
}

// defaultFiles returns the files backing the default configuration.
func (m *ConfigurationManager) defaultFiles() []string {
	if m.withoutFiles {
		return nil
	}
	return []string{m.paths.machine, m.paths.exe}
}

func (m *ConfigurationManager) load() (*snapshot, error) {
	layers, err := loadLayers(m.defaultFiles(), m.funcs)
	if err != nil {
		return nil, err
	}

	if len(m.srcs) > 0 {
		tree, err := config.Read(m.srcs...)
		if err != nil {
			return nil, err
		}
		layers = append(layers, &layer{tree: tree})
	}

	store, err := newSnapshot(layers)
	if err != nil {
		return nil, err
	}
	if store.invalid != nil {
		m.log.Warn("skipped invalid connection strings", slogfield.Error(store.invalid))
	}
	for _, l := range layers {
		if l.path == "" {
			continue
		}
		m.log.Debug(
			"loaded configuration file",
			slogfield.Path(l.path),
			slogfield.Bool("exists", l.exists),
		)
	}
	return store, nil
}

// current returns the store, reloading it first when a refresh was
// requested. A failed reload is logged and the previous store kept.
func (m *ConfigurationManager) current() *snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked()
}

func (m *ConfigurationManager) currentLocked() *snapshot {
	if !m.stale {
		return m.store
	}

	store, err := m.load()
	m.status.Record(err)
	if err != nil {
		m.log.Error("failed to reload configuration", slogfield.Error(err))
		return m.store
	}
	m.store = store
	m.stale = false
	return m.store
}

// AppSettings implements the [Settings] interface.
func (m *ConfigurationManager) AppSettings() *Section {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := strings.ToLower(appSettingsSection)
	if s, ok := m.sections[id]; ok {
		return s
	}
	store := m.currentLocked()
	s := newSection(appSettingsSection, func() *snapshot { return store }, nil)
	m.sections[id] = s
	return s
}

// GetSection implements the [Settings] interface.
func (m *ConfigurationManager) GetSection(name string) (*Section, bool) {
	if strings.TrimSpace(name) == "" {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := strings.ToLower(name)
	if s, ok := m.sections[id]; ok {
		return s, true
	}

	store := m.currentLocked()
	if !store.isSection(name) {
		return nil, false
	}
	s := newSection(name, func() *snapshot { return store }, nil)
	m.sections[id] = s
	return s, true
}

// ConnectionStrings implements the [Manager] interface.
func (m *ConfigurationManager) ConnectionStrings() ConnectionStrings {
	return slices.Clone(m.current().conns)
}

// RefreshSection implements the [Manager] interface.
func (m *ConfigurationManager) RefreshSection(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sections, strings.ToLower(name))
	m.stale = true
	m.log.Debug("refreshed section", slogfield.Section(name))
}

// refresh drops every cached section.
func (m *ConfigurationManager) refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.sections)
	m.stale = true
}

// Healthy reports whether the latest reload of the default
// configuration succeeded and, while watching, whether the watcher
// is still receiving file events. While it fails, sections are
// served from the last configuration which loaded.
func (m *ConfigurationManager) Healthy(ctx context.Context) bool {
	return health.And(&m.status, &m.watching).Healthy(ctx)
}

// ReloadError returns the error of the latest failed reload, if any.
func (m *ConfigurationManager) ReloadError() error {
	return m.status.Err()
}

// HasSetting implements the [Manager] interface.
func (m *ConfigurationManager) HasSetting(key string) bool {
	return m.AppSettings().Has(key)
}

// HasSectionSetting implements the [Manager] interface.
func (m *ConfigurationManager) HasSectionSetting(key, section string) bool {
	s, ok := m.GetSection(section)
	if !ok {
		return false
	}
	return s.Has(key)
}

// HasConnectionString implements the [Manager] interface.
func (m *ConfigurationManager) HasConnectionString(name string) bool {
	_, ok := m.current().conns.Get(name)
	return ok
}

// OpenExeConfiguration implements the [Manager] interface.
func (m *ConfigurationManager) OpenExeConfiguration(level UserLevel) (Document, error) {
	files, err := m.paths.files(level)
	if err != nil {
		return nil, err
	}
	m.log.Debug("opening executable configuration", slogfield.Level(level.String()))
	return m.open(files, openOptions{})
}

// OpenExeConfigurationFile implements the [Manager] interface.
func (m *ConfigurationManager) OpenExeConfigurationFile(exePath string) (Document, error) {
	if strings.TrimSpace(exePath) == "" {
		return nil, ArgumentError{Name: "exePath", Reason: "must not be blank"}
	}
	return m.open([]string{m.paths.machine, exeConfigPath(exePath, m.format)}, openOptions{})
}

// OpenMachineConfiguration implements the [Manager] interface.
func (m *ConfigurationManager) OpenMachineConfiguration() (Document, error) {
	return m.open([]string{m.paths.machine}, openOptions{})
}

// OpenMappedExeConfiguration implements the [Manager] interface.
func (m *ConfigurationManager) OpenMappedExeConfiguration(fileMap ExeFileMap, level UserLevel, opts ...OpenOption) (Document, error) {
	files, err := mappedFiles(fileMap, level)
	if err != nil {
		return nil, err
	}

	oo := openOptions{}
	for _, opt := range opts {
		opt(&oo)
	}
	return m.open(files, oo)
}

// OpenMappedMachineConfiguration implements the [Manager] interface.
func (m *ConfigurationManager) OpenMappedMachineConfiguration(fileMap FileMap) (Document, error) {
	if strings.TrimSpace(fileMap.MachineConfigFilename) == "" {
		return nil, ArgumentError{Name: "MachineConfigFilename", Reason: "must not be blank"}
	}
	return m.open([]string{fileMap.MachineConfigFilename}, openOptions{})
}

func (m *ConfigurationManager) open(files []string, oo openOptions) (Document, error) {
	layers, err := loadLayers(files, nil)
	if err != nil {
		return nil, err
	}

	doc, err := newConfiguration(m.log, layers)
	if err != nil {
		return nil, err
	}
	if oo.preLoad {
		err = doc.validate()
		if err != nil {
			return nil, err
		}
	}
	m.log.Debug(
		"opened configuration",
		slogfield.Path(doc.FilePath()),
		slogfield.Int("levels", len(layers)),
	)
	return doc, nil
}

// loadLayers reads files concurrently. Empty paths and missing files
// become empty layers.
func loadLayers(files []string, funcs template.FuncMap) ([]*layer, error) {
	layers := make([]*layer, len(files))

	var g errgroup.Group
	for i, path := range files {
		g.Go(func() error {
			l, err := loadLayer(path, funcs)
			if err != nil {
				return err
			}
			layers[i] = l
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, err
	}
	return layers, nil
}

func loadLayer(path string, funcs template.FuncMap) (*layer, error) {
	l := &layer{
		path: path,
		tree: make(config.Tree),
	}
	if strings.TrimSpace(path) == "" {
		return l, nil
	}

	var opts []config.FileOption
	if funcs != nil {
		opts = append(opts, config.TemplateFuncs(funcs))
	}

	err := config.File(osFS{}, path, opts...).Apply(l.tree)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, LoadError{Path: path, Cause: err}
	}
	l.exists = true
	return l, nil
}
