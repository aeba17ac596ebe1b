// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"

	"github.com/z5labs/appconfig/config/key"
)

// Map is an ordinary map[string]any but implements the Source interface.
type Map map[string]any

// Apply implements the Source interface. It recursively walks the underlying
// map to find key value pairs to set on the given store.
func (m Map) Apply(store Store) error {
	return walkMap(m, store, nil)
}

func walkMap(m map[string]any, store Store, chain key.Chain) error {
	if len(m) == 0 && len(chain) > 0 {
		// keep empty sections so their existence can still be checked
		return store.Set(chain, make(map[string]any))
	}
	for k, v := range m {
		if x, ok := normalizeMap(v); ok {
			err := walkMap(x, store, chain.Append(k))
			if err != nil {
				return err
			}
			continue
		}
		err := store.Set(chain.Append(k), v)
		if err != nil {
			return err
		}
	}
	return nil
}

// normalizeMap accepts every map shape the decoders in this
// package produce, including yaml's map[any]any for non-string keys.
func normalizeMap(v any) (map[string]any, bool) {
	if m, ok := asMap(v); ok {
		return m, true
	}
	mm, ok := v.(map[any]any)
	if !ok {
		return nil, false
	}
	m := make(map[string]any, len(mm))
	for k, v := range mm {
		m[fmt.Sprint(k)] = v
	}
	return m, true
}
