// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/z5labs/appconfig/config"
	"github.com/z5labs/appconfig/config/key"
	"github.com/z5labs/appconfig/internal/try"
	"github.com/z5labs/appconfig/pkg/slogfield"

	"github.com/google/renameio/v2"
	"github.com/spf13/cast"
)

// InvalidSectionError occurs when a top level node of a document is
// not a map of settings. It is only returned when opening with [PreLoad].
type InvalidSectionError struct {
	Section string
}

// Error implements the [builtin.error] interface.
func (e InvalidSectionError) Error() string {
	return fmt.Sprintf("configuration section %s must be a map of settings", e.Section)
}

// Configuration is the file backed [Document]. It holds the settings of
// the level it was opened at on top of the inherited lower levels.
//
// A Configuration is not safe for concurrent use.
type Configuration struct {
	log *slog.Logger

	path    string
	base    *snapshot
	lower   []config.Tree
	local   config.Tree
	snap    *snapshot
	changed bool
}

func newConfiguration(log *slog.Logger, layers []*layer) (*Configuration, error) {
	if len(layers) == 0 {
		return nil, ArgumentError{Name: "layers", Reason: "at least one configuration file is required"}
	}

	top := layers[len(layers)-1]
	lower := make([]config.Tree, 0, len(layers)-1)
	for _, l := range layers[:len(layers)-1] {
		lower = append(lower, l.tree)
	}

	base, err := snapshotOf(lower...)
	if err != nil {
		return nil, err
	}

	c := &Configuration{
		log:   log,
		path:  top.path,
		base:  base,
		lower: lower,
		local: top.tree,
	}
	c.snap, err = c.build(c.local)
	if err != nil {
		return nil, err
	}
	if c.snap.invalid != nil {
		log.Warn(
			"skipped invalid connection strings",
			slogfield.Path(c.path),
			slogfield.Error(c.snap.invalid),
		)
	}
	return c, nil
}

func (c *Configuration) build(local config.Tree) (*snapshot, error) {
	trees := make([]config.Tree, 0, len(c.lower)+1)
	trees = append(trees, c.lower...)
	trees = append(trees, local)
	return snapshotOf(trees...)
}

// validate fails on the content which lookups would otherwise skip.
func (c *Configuration) validate() error {
	if c.snap.invalid != nil {
		return c.snap.invalid
	}
	for _, name := range c.snap.tree.Keys(nil) {
		if strings.EqualFold(name, connectionStringsSection) {
			continue
		}
		v, _ := c.snap.tree.Lookup(key.Chain{key.Name(name)})
		if _, isMap := v.(map[string]any); !isMap {
			return InvalidSectionError{Section: name}
		}
	}
	return nil
}

func (c *Configuration) snapshot() *snapshot {
	return c.snap
}

// edit applies f to a copy of the local tree and keeps the copy only
// when the resulting document is still consistent.
func (c *Configuration) edit(f func(config.Tree) (bool, error)) (bool, error) {
	next := c.local.Clone()
	changed, err := f(next)
	if err != nil || !changed {
		return false, err
	}

	snap, err := c.build(next)
	if err != nil {
		return false, err
	}
	c.local = next
	c.snap = snap
	c.changed = true
	return true, nil
}

func (c *Configuration) set(chain key.Chain, value string) error {
	_, err := c.edit(func(t config.Tree) (bool, error) {
		return true, t.Set(chain, value)
	})
	return err
}

func (c *Configuration) remove(chain key.Chain) bool {
	ok, _ := c.edit(func(t config.Tree) (bool, error) {
		return t.Delete(chain), nil
	})
	return ok
}

func (c *Configuration) section(name string) *Section {
	return newSection(name, c.snapshot, c)
}

// AppSettings implements the [Settings] interface. Setting a value on
// it creates the section when the document has none.
func (c *Configuration) AppSettings() *Section {
	return c.section(appSettingsSection)
}

// GetSection implements the [Settings] interface.
func (c *Configuration) GetSection(name string) (*Section, bool) {
	if strings.TrimSpace(name) == "" || !c.snap.isSection(name) {
		return nil, false
	}
	return c.section(name), true
}

// AddSection returns the named section, creating it empty when it
// does not exist yet.
func (c *Configuration) AddSection(name string) (*Section, error) {
	if strings.TrimSpace(name) == "" {
		return nil, SectionNotFoundError{Section: name}
	}
	if s, ok := c.GetSection(name); ok {
		return s, nil
	}
	if c.snap.isGroup(name) || strings.EqualFold(name, connectionStringsSection) {
		return nil, ArgumentError{Name: "name", Reason: name + " is not a section"}
	}

	_, err := c.edit(func(t config.Tree) (bool, error) {
		return true, t.Set(key.Parse(name), map[string]any{})
	})
	if err != nil {
		return nil, err
	}
	return c.section(name), nil
}

// RemoveSection removes the named section, or group, from this
// document's level and reports whether it was held there.
func (c *Configuration) RemoveSection(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return c.remove(key.Parse(name))
}

// ConnectionStrings implements the [Document] interface.
func (c *Configuration) ConnectionStrings() ConnectionStrings {
	cs := make(ConnectionStrings, len(c.snap.conns))
	copy(cs, c.snap.conns)
	return cs
}

// SetConnectionString implements the [Document] interface.
func (c *Configuration) SetConnectionString(cs ConnectionString) error {
	if strings.TrimSpace(cs.Name) == "" {
		return ArgumentError{Name: "Name", Reason: "connection string name must not be blank"}
	}

	_, err := c.edit(func(t config.Tree) (bool, error) {
		return true, putConnectionString(t, cs)
	})
	if err != nil {
		return err
	}
	c.log.Debug(
		"set connection string",
		slogfield.String("name", cs.Name),
		slogfield.String(connectionStringAttr, cs.ConnectionString),
	)
	return nil
}

// RemoveConnectionString implements the [Document] interface.
func (c *Configuration) RemoveConnectionString(name string) bool {
	ok, err := c.edit(func(t config.Tree) (bool, error) {
		return deleteConnectionString(t, name)
	})
	if err != nil {
		c.log.Error(
			"failed to remove connection string",
			slogfield.String("name", name),
			slogfield.Error(err),
		)
	}
	return ok
}

// GetSectionGroup implements the [Document] interface.
func (c *Configuration) GetSectionGroup(name string) (*SectionGroup, bool) {
	if strings.TrimSpace(name) == "" || !c.snap.isGroup(name) {
		return nil, false
	}
	return &SectionGroup{name: name, doc: c}, true
}

// Sections implements the [Document] interface.
func (c *Configuration) Sections() []*Section {
	return c.RootSectionGroup().Sections()
}

// SectionGroups implements the [Document] interface.
func (c *Configuration) SectionGroups() []*SectionGroup {
	return c.RootSectionGroup().SectionGroups()
}

// RootSectionGroup implements the [Document] interface.
func (c *Configuration) RootSectionGroup() *SectionGroup {
	return &SectionGroup{doc: c}
}

// FilePath implements the [Document] interface.
func (c *Configuration) FilePath() string {
	return c.path
}

// HasFile implements the [Document] interface.
func (c *Configuration) HasFile() bool {
	if c.path == "" {
		return false
	}
	_, err := os.Stat(c.path)
	return err == nil
}

// Save implements the [Document] interface.
func (c *Configuration) Save(opts ...SaveOption) error {
	return c.SaveAs(c.path, opts...)
}

// SaveAs implements the [Document] interface.
func (c *Configuration) SaveAs(filename string, opts ...SaveOption) error {
	if strings.TrimSpace(filename) == "" {
		return ArgumentError{Name: "filename", Reason: "must not be blank"}
	}

	so := saveOptions{}
	for _, opt := range opts {
		opt(&so)
	}

	var out map[string]any
	switch so.mode {
	case SaveModeModified:
		out = c.local.Clone()
	case SaveModeMinimal:
		out = c.minimal()
	case SaveModeFull:
		out = c.full()
	default:
		return ArgumentError{Name: "mode", Reason: "unknown save mode " + so.mode.String()}
	}
	// an unchanged document is only skipped when its own file is current
	sameFile := filepath.Clean(filename) == filepath.Clean(c.path) && c.HasFile()
	if so.mode != SaveModeFull && !c.changed && !so.force && sameFile {
		c.log.Debug(
			"skipped saving unchanged configuration",
			slogfield.Path(filename),
			slogfield.String("mode", so.mode.String()),
		)
		return nil
	}

	err := writeFile(filename, out)
	if err != nil {
		return SaveError{Path: filename, Cause: err}
	}
	c.changed = false
	c.log.Info(
		"saved configuration",
		slogfield.Path(filename),
		slogfield.String("mode", so.mode.String()),
	)
	return nil
}

// full is every setting visible to the document, connection strings
// included.
func (c *Configuration) full() map[string]any {
	out := c.snap.tree.Clone()
	config.Tree(out).Delete(key.Chain{key.Name(connectionStringsSection)})
	if len(c.snap.conns) > 0 {
		out[connectionStringsSection] = c.snap.conns.list()
	}
	return out
}

// minimal is the settings of this level which differ from the
// inherited ones.
func (c *Configuration) minimal() map[string]any {
	out := diff(c.local, c.base.tree)

	chain := key.Chain{key.Name(connectionStringsSection)}
	config.Tree(out).Delete(chain)
	local, err := readConnectionStrings(c.local)
	if err != nil {
		// malformed entries are written back as they were read
		raw, _ := c.local.Lookup(chain)
		out[connectionStringsSection] = raw
		return out
	}
	var changed ConnectionStrings
	for _, cs := range local {
		inherited, ok := c.base.conns.Get(cs.Name)
		if ok && inherited == cs {
			continue
		}
		changed = append(changed, cs)
	}
	if len(changed) > 0 {
		out[connectionStringsSection] = changed.list()
	}
	return out
}

func diff(local, base map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range local {
		bv, found := config.Tree(base).Lookup(key.Chain{key.Name(k)})

		if m, isMap := v.(map[string]any); isMap {
			bm, baseIsMap := bv.(map[string]any)
			if !found || !baseIsMap {
				out[k] = map[string]any(config.Tree(m).Clone())
				continue
			}
			d := diff(m, bm)
			if len(d) > 0 {
				out[k] = d
			}
			continue
		}
		if found && sameValue(v, bv) {
			continue
		}
		out[k] = v
	}
	return out
}

func sameValue(a, b any) bool {
	sa, errA := cast.ToStringE(a)
	sb, errB := cast.ToStringE(b)
	if errA == nil && errB == nil {
		return sa == sb
	}
	return reflect.DeepEqual(a, b)
}

func writeFile(path string, m map[string]any) (err error) {
	f, err := config.FormatOf(path)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return err
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return err
	}
	defer func() {
		cerr := pf.Cleanup()
		if cerr != nil {
			err = errors.Join(err, try.CloseError{Cause: cerr})
		}
	}()

	err = config.Encode(pf, f, m)
	if err != nil {
		return err
	}
	return pf.CloseAtomicallyReplace()
}
