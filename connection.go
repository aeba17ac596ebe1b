// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"errors"
	"strconv"
	"strings"

	"github.com/z5labs/appconfig/config"
	"github.com/z5labs/appconfig/config/key"
)

// ConnectionString is a named connection entry. The payload is
// opaque to this package and never logged unmasked.
type ConnectionString struct {
	Name             string `config:"name"`
	ConnectionString string `config:"connectionString"`
	ProviderName     string `config:"providerName"`
}

// ConnectionStrings is an ordered list of connection entries.
type ConnectionStrings []ConnectionString

// Get returns the entry named exactly name.
func (cs ConnectionStrings) Get(name string) (ConnectionString, bool) {
	if strings.TrimSpace(name) == "" {
		return ConnectionString{}, false
	}
	for _, c := range cs {
		if c.Name == name {
			return c, true
		}
	}
	return ConnectionString{}, false
}

// Names returns the entry names in order.
func (cs ConnectionStrings) Names() []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}

// mergeConnectionStrings merges the entries of each tree by exact
// name, a later tree replacing the entry of an earlier one in place.
// Malformed entries are skipped and reported through the returned error.
func mergeConnectionStrings(trees ...config.Tree) (ConnectionStrings, error) {
	var (
		merged ConnectionStrings
		index  = make(map[string]int)
		errs   []error
	)
	for _, t := range trees {
		entries, err := readConnectionStrings(t)
		errs = append(errs, err)

		for _, c := range entries {
			i, ok := index[c.Name]
			if ok {
				merged[i] = c
				continue
			}
			index[c.Name] = len(merged)
			merged = append(merged, c)
		}
	}
	return merged, errors.Join(errs...)
}

// readConnectionStrings accepts either a list of entries or a map
// of entry names to entries.
func readConnectionStrings(t config.Tree) (ConnectionStrings, error) {
	v, ok := t.Lookup(key.Chain{key.Name(connectionStringsSection)})
	if !ok || v == nil {
		return nil, nil
	}

	var (
		entries ConnectionStrings
		errs    []error
	)
	if ms, ok := v.([]map[string]any); ok {
		items := make([]any, len(ms))
		for i := range ms {
			items[i] = ms[i]
		}
		v = items
	}

	switch x := v.(type) {
	case []any:
		for i, item := range x {
			var c ConnectionString
			err := decodeConnectionString(item, &c)
			if err != nil {
				errs = append(errs, InvalidConnectionStringError{Entry: strconv.Itoa(i), Cause: err})
				continue
			}
			entries = append(entries, c)
		}
	case map[string]any:
		for _, name := range t.Keys(key.Chain{key.Name(connectionStringsSection)}) {
			c := ConnectionString{Name: name}
			err := decodeConnectionString(x[name], &c)
			if err != nil {
				errs = append(errs, InvalidConnectionStringError{Entry: name, Cause: err})
				continue
			}
			entries = append(entries, c)
		}
	default:
		return nil, InvalidConnectionStringError{
			Entry: connectionStringsSection,
			Cause: errors.New("expected a list or a map of entries"),
		}
	}
	return entries, errors.Join(errs...)
}

func decodeConnectionString(v any, c *ConnectionString) error {
	if s, ok := v.(string); ok && c.Name != "" {
		c.ConnectionString = s
		return nil
	}
	err := config.Decode(v, c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("missing name")
	}
	return nil
}

// putConnectionString adds or replaces cs in t, rewriting the entries
// of t in list form.
func putConnectionString(t config.Tree, cs ConnectionString) error {
	entries, err := readConnectionStrings(t)
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].Name == cs.Name {
			entries[i] = cs
			replaced = true
		}
	}
	if !replaced {
		entries = append(entries, cs)
	}
	return t.Set(key.Name(connectionStringsSection), entries.list())
}

// deleteConnectionString removes the entry named exactly name from t.
func deleteConnectionString(t config.Tree, name string) (bool, error) {
	entries, err := readConnectionStrings(t)
	if err != nil {
		return false, err
	}

	kept := entries[:0]
	for _, c := range entries {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(entries) {
		return false, nil
	}
	if len(kept) == 0 {
		t.Delete(key.Chain{key.Name(connectionStringsSection)})
		return true, nil
	}
	return true, t.Set(key.Name(connectionStringsSection), kept.list())
}

// list renders the entries in the shape written to files.
func (cs ConnectionStrings) list() []any {
	l := make([]any, len(cs))
	for i, c := range cs {
		m := map[string]any{
			"name":             c.Name,
			"connectionString": c.ConnectionString,
		}
		if c.ProviderName != "" {
			m["providerName"] = c.ProviderName
		}
		l[i] = m
	}
	return l
}
