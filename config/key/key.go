// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides types for addressing values in a configuration tree.
package key

import (
	"strings"
)

// Delimiter separates the segments of a key path, e.g. "system.web/pages".
const Delimiter = "/"

// Keyer is a common interface all value key types must implement.
type Keyer interface {
	Key() string
}

// Chain represents nested keys.
type Chain []Keyer

// Key implements the [Keyer] interface. Segments are joined with [Delimiter].
func (k Chain) Key() string {
	ss := make([]string, len(k))
	for i := range len(k) {
		ss[i] = k[i].Key()
	}
	return strings.Join(ss, Delimiter)
}

// Append returns a new Chain with names added to the end of k.
// The receiver is never modified.
func (k Chain) Append(names ...string) Chain {
	c := make(Chain, 0, len(k)+len(names))
	c = append(c, k...)
	for _, name := range names {
		c = append(c, Name(name))
	}
	return c
}

// Name represents a single key segment.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}

// Parse splits a [Delimiter] separated path into a Chain.
// Empty segments are dropped so "a//b/" parses the same as "a/b".
func Parse(path string) Chain {
	var c Chain
	for _, seg := range strings.Split(path, Delimiter) {
		if seg == "" {
			continue
		}
		c = append(c, Name(seg))
	}
	return c
}

// Join is the inverse of [Parse].
func Join(segments ...string) string {
	return strings.Join(segments, Delimiter)
}
