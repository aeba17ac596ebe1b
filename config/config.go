// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"github.com/z5labs/appconfig/config/key"
)

// Store represents a general key value structure.
type Store interface {
	Set(key.Keyer, any) error
}

// Source defines valid config sources as those who can
// serialize themselves into a key value like structure.
type Source interface {
	Apply(Store) error
}

// SourceFunc is a functional implementation of the [Source] interface.
type SourceFunc func(Store) error

// Apply implements the [Source] interface.
func (f SourceFunc) Apply(store Store) error {
	return f(store)
}

// Read applies every source, in order, to a new [Tree].
// Subsequent sources override previous sources.
func Read(srcs ...Source) (Tree, error) {
	t := make(Tree)
	for _, src := range srcs {
		err := src.Apply(t)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}
