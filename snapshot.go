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
	"github.com/spf13/viper"
)

const (
	appSettingsSection       = "appSettings"
	connectionStringsSection = "connectionStrings"
)

// layer is one level of a configuration hierarchy, lowest precedence first.
type layer struct {
	path   string
	exists bool
	tree   config.Tree
}

// snapshot is an immutable, merged view over a stack of layers.
// The tree keeps the spelling used in the files while viper serves
// the case-insensitive lookups.
type snapshot struct {
	tree  config.Tree
	v     *viper.Viper
	conns ConnectionStrings

	// invalid holds the malformed connection entries skipped while merging.
	invalid error
}

func newSnapshot(layers []*layer) (*snapshot, error) {
	trees := make([]config.Tree, len(layers))
	for i, l := range layers {
		trees[i] = l.tree
	}
	return snapshotOf(trees...)
}

func snapshotOf(trees ...config.Tree) (*snapshot, error) {
	merged := make(config.Tree)
	for _, t := range trees {
		err := t.Apply(merged)
		if err != nil {
			return nil, err
		}
	}

	v := viper.NewWithOptions(viper.KeyDelimiter(key.Delimiter))
	// viper lower cases the keys of the map it is given, in place
	err := v.MergeConfigMap(merged.Clone())
	if err != nil {
		return nil, err
	}

	conns, invalid := mergeConnectionStrings(trees...)
	return &snapshot{
		tree:    merged,
		v:       v,
		conns:   conns,
		invalid: invalid,
	}, nil
}

func (s *snapshot) lookup(path string) (any, bool) {
	val := s.v.Get(path)
	if val != nil {
		return val, true
	}
	// viper reports null values as missing
	chain := key.Parse(path)
	if len(chain) == 0 {
		return nil, false
	}
	raw, ok := s.tree.Lookup(chain)
	if !ok {
		return nil, false
	}
	if raw == nil {
		return "", true
	}
	return raw, true
}

// isSection reports whether name is a node holding settings. Empty
// nodes are sections, nodes only holding other nodes are groups.
func (s *snapshot) isSection(name string) bool {
	if strings.EqualFold(name, connectionStringsSection) {
		return false
	}
	val, ok := s.lookup(name)
	if !ok {
		return false
	}
	if _, isMap := val.(map[string]any); !isMap {
		return false
	}
	return !s.isGroup(name)
}

// children returns the names of the map nodes and the names of the
// scalar values directly below path, both in sorted order.
func (s *snapshot) children(path string) (nodes []string, values []string) {
	var chain key.Chain
	if path != "" {
		chain = key.Parse(path)
	}
	for _, name := range s.tree.Keys(chain) {
		if len(chain) == 0 && strings.EqualFold(name, connectionStringsSection) {
			continue
		}
		val, _ := s.tree.Lookup(chain.Append(name))
		if _, isMap := val.(map[string]any); isMap {
			nodes = append(nodes, name)
			continue
		}
		values = append(values, name)
	}
	return nodes, values
}

// isGroup reports whether the node at path only holds other nodes.
func (s *snapshot) isGroup(path string) bool {
	nodes, values := s.children(path)
	return len(nodes) > 0 && len(values) == 0
}

func (s *snapshot) subtree(path string) map[string]any {
	val, ok := s.tree.Lookup(key.Parse(path))
	if !ok {
		return nil
	}
	return cast.ToStringMap(val)
}
