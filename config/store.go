// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/z5labs/appconfig/config/key"
)

// UnknownKeyerError is returned by [Tree.Set] when the key is neither
// a [key.Name] nor a [key.Chain].
type UnknownKeyerError struct {
	key key.Keyer
}

// Error implements the error interface.
func (e UnknownKeyerError) Error() string {
	return fmt.Sprintf("config source tried setting config value with unknown key.Keyer: %s", e.key.Key())
}

// EmptyKeyChainError is returned by [Tree.Set] when it is given no keys
// to store the value under.
type EmptyKeyChainError struct {
	Value any
}

// Error implements the error interface.
func (e EmptyKeyChainError) Error() string {
	return fmt.Sprintf("attempted to set value to an empty key chain: %v", e.Value)
}

// UnexpectedKeyValueTypeError represents the situation when
// a user tries setting a key to a different type than it
// had previously been set to.
type UnexpectedKeyValueTypeError struct {
	Key          string
	ExpectedType string
}

// Error implements the error interface.
func (e UnexpectedKeyValueTypeError) Error() string {
	return fmt.Sprintf("expected key value to be a %s: %s", e.ExpectedType, e.Key)
}

// Tree is a nested map[string]any which implements [Store].
//
// Key segments are matched case-insensitively. The spelling of the
// first write to a key is kept, so a document keeps the case its
// author used even when later sources spell the key differently.
type Tree map[string]any

// Set implements the [Store] interface. Setting a map value merges
// it into any map already stored under the key.
func (t Tree) Set(k key.Keyer, v any) error {
	return set(t, k, v)
}

// Apply implements the [Source] interface so a Tree can be layered
// onto another Store.
func (t Tree) Apply(store Store) error {
	return Map(t).Apply(store)
}

// Lookup returns the value stored under the chain.
func (t Tree) Lookup(chain key.Chain) (any, bool) {
	var cur any = map[string]any(t)
	for _, k := range chain {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		name, ok := fold(m, k.Key())
		if !ok {
			return nil, false
		}
		cur = m[name]
	}
	return cur, true
}

// Delete removes the value stored under the chain and reports
// whether anything was removed.
func (t Tree) Delete(chain key.Chain) bool {
	if len(chain) == 0 {
		return false
	}
	parent := key.Chain(chain[:len(chain)-1])
	v, ok := t.Lookup(parent)
	if !ok {
		return false
	}
	m, ok := asMap(v)
	if !ok {
		return false
	}
	name, ok := fold(m, chain[len(chain)-1].Key())
	if !ok {
		return false
	}
	delete(m, name)
	return true
}

// Keys returns the keys directly under the chain in sorted order.
func (t Tree) Keys(chain key.Chain) []string {
	v, ok := t.Lookup(chain)
	if !ok {
		return nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of t. Slices are copied, scalars are shared.
func (t Tree) Clone() Tree {
	return cloneMap(t)
}

func cloneMap(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneMap(x)
	case Tree:
		return cloneMap(x)
	case []any:
		s := make([]any, len(x))
		for i := range x {
			s[i] = cloneValue(x[i])
		}
		return s
	default:
		return v
	}
}

func asMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case Tree:
		return x, true
	case Map:
		return x, true
	default:
		return nil, false
	}
}

// fold finds the spelling of name already used in m.
func fold(m map[string]any, name string) (string, bool) {
	if _, ok := m[name]; ok {
		return name, true
	}
	for k := range m {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return "", false
}

func set(m map[string]any, k key.Keyer, v any) error {
	switch x := k.(type) {
	case key.Name:
		return setName(m, string(x), v)
	case key.Chain:
		return setKeyChain(m, x, v)
	default:
		return UnknownKeyerError{key: k}
	}
}

func setName(m map[string]any, name string, v any) error {
	existing, found := fold(m, name)
	if found {
		name = existing
	}

	src, isMap := asMap(v)
	if !isMap {
		m[name] = v
		return nil
	}

	dst, ok := asMap(m[name])
	if !found || !ok {
		dst = make(map[string]any, len(src))
		m[name] = dst
	}
	for sk, sv := range src {
		err := setName(dst, sk, sv)
		if err != nil {
			return err
		}
	}
	return nil
}

func setKeyChain(m map[string]any, chain key.Chain, v any) error {
	if len(chain) == 0 {
		return EmptyKeyChainError{Value: v}
	}

	root := chain[0]
	if len(chain) == 1 {
		return set(m, root, v)
	}

	name, ok := fold(m, root.Key())
	if !ok {
		name = root.Key()
		m[name] = make(map[string]any)
	}

	subM, ok := asMap(m[name])
	if !ok {
		return UnexpectedKeyValueTypeError{
			Key:          root.Key(),
			ExpectedType: "map[string]any",
		}
	}
	return set(subM, chain[1:], v)
}
