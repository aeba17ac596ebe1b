// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"strings"

	"github.com/z5labs/appconfig/config"
	"github.com/z5labs/appconfig/config/key"

	"github.com/spf13/cast"
)

// Section is a named mapping of setting keys to string values.
// Keys are matched case-insensitively.
//
// Sections returned by a [Manager] are snapshots: they never change and
// mutating them fails with [ErrReadOnly]. Sections returned by a
// [Document] always reflect the document's current state and can be
// edited; edits are persisted by [Document.Save].
type Section struct {
	name string
	snap func() *snapshot
	doc  *Configuration
}

// NewSection returns a read-only section holding values. It is meant
// for building test doubles of [Settings].
func NewSection(name string, values map[string]string) *Section {
	m := make(map[string]any, len(values))
	for k, v := range values {
		m[k] = v
	}

	t := make(config.Tree)
	// a blank name has no chain to set and leaves the section empty
	_ = t.Set(key.Parse(name), m)

	snap, err := snapshotOf(t)
	if err != nil {
		// a single tree of strings always merges
		panic(err)
	}
	return &Section{
		name: name,
		snap: func() *snapshot { return snap },
	}
}

func newSection(name string, snap func() *snapshot, doc *Configuration) *Section {
	return &Section{
		name: name,
		snap: snap,
		doc:  doc,
	}
}

// Name returns the path of the section, e.g. "appSettings" or "system.web/pages".
func (s *Section) Name() string {
	return s.name
}

// ReadOnly reports whether Set and Remove are rejected.
func (s *Section) ReadOnly() bool {
	return s.doc == nil
}

// Get returns the raw value stored under k. Blank keys, missing keys
// and keys naming a nested section are reported as not found.
func (s *Section) Get(k string) (string, bool) {
	if strings.TrimSpace(k) == "" {
		return "", false
	}
	val, ok := s.snap().lookup(key.Join(s.name, k))
	if !ok {
		return "", false
	}
	if _, isMap := val.(map[string]any); isMap {
		return "", false
	}
	return cast.ToString(val), true
}

// Has reports whether k exists in the section.
func (s *Section) Has(k string) bool {
	_, ok := s.Get(k)
	return ok
}

// Keys returns the setting keys in sorted order, spelled the way
// the configuration files spell them.
func (s *Section) Keys() []string {
	_, values := s.snap().children(s.name)
	return values
}

// Len returns the number of settings in the section.
func (s *Section) Len() int {
	return len(s.Keys())
}

// Values returns a copy of every setting in the section.
func (s *Section) Values() map[string]string {
	keys := s.Keys()
	m := make(map[string]string, len(keys))
	for _, k := range keys {
		v, _ := s.Get(k)
		m[k] = v
	}
	return m
}

// Decode decodes the section into v, which must be a pointer to a
// struct or map. Struct fields use the "config" tag.
func (s *Section) Decode(v any) error {
	return config.Decode(s.snap().subtree(s.name), v)
}

// Set stores value under k. The change is visible immediately through
// the owning document and persisted by its next Save.
func (s *Section) Set(k, value string) error {
	if s.doc == nil {
		return ErrReadOnly
	}
	if strings.TrimSpace(k) == "" {
		return KeyNotFoundError{Key: k}
	}
	return s.doc.set(key.Parse(s.name).Append(k), value)
}

// Remove deletes k from the owning document's own level and reports
// whether it was held there. Values inherited from lower levels
// remain visible.
func (s *Section) Remove(k string) (bool, error) {
	if s.doc == nil {
		return false, ErrReadOnly
	}
	return s.doc.remove(key.Parse(s.name).Append(k)), nil
}

// SectionGroup is a named node of a [Document] holding sections and
// further section groups.
type SectionGroup struct {
	name string
	doc  *Configuration
}

// Name returns the path of the group. The root group's name is empty.
func (g *SectionGroup) Name() string {
	return g.name
}

// Sections returns the sections directly within the group.
func (g *SectionGroup) Sections() []*Section {
	snap := g.doc.snapshot()
	nodes, _ := snap.children(g.name)

	var ss []*Section
	for _, n := range nodes {
		p := g.path(n)
		if snap.isGroup(p) {
			continue
		}
		ss = append(ss, g.doc.section(p))
	}
	return ss
}

// SectionGroups returns the groups directly within the group.
func (g *SectionGroup) SectionGroups() []*SectionGroup {
	snap := g.doc.snapshot()
	nodes, _ := snap.children(g.name)

	var gs []*SectionGroup
	for _, n := range nodes {
		p := g.path(n)
		if !snap.isGroup(p) {
			continue
		}
		gs = append(gs, &SectionGroup{name: p, doc: g.doc})
	}
	return gs
}

// Section returns the named section directly within the group.
func (g *SectionGroup) Section(name string) (*Section, bool) {
	return g.doc.GetSection(g.path(name))
}

// SectionGroup returns the named group directly within the group.
func (g *SectionGroup) SectionGroup(name string) (*SectionGroup, bool) {
	return g.doc.GetSectionGroup(g.path(name))
}

func (g *SectionGroup) path(name string) string {
	if g.name == "" {
		return name
	}
	return key.Join(g.name, name)
}
