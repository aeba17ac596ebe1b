// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"

	"github.com/z5labs/appconfig/config/key"
)

// EnvSeparator separates nested key segments in an environment variable name.
const EnvSeparator = "__"

// Env represents a Source where its underlying values
// are extracted from environment variables.
//
// Only variables starting with the configured prefix followed by an
// underscore are applied. The remainder of the name is split on
// [EnvSeparator] into a key chain, e.g. MYAPP_appSettings__Timeout=5
// sets Timeout in the appSettings section.
type Env struct {
	prefix  string
	environ func() []string
}

// FromEnv returns a Source which will apply its config
// from the environment variables available to the
// current process.
func FromEnv(prefix string) Env {
	return Env{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	prefix := src.prefix
	if prefix != "" {
		prefix += "_"
	}

	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, ok := strings.CutPrefix(k, prefix)
		if !ok || name == "" {
			continue
		}

		var chain key.Chain
		for _, seg := range strings.Split(name, EnvSeparator) {
			if seg == "" {
				continue
			}
			chain = append(chain, key.Name(seg))
		}
		if len(chain) == 0 {
			continue
		}

		err := store.Set(chain, v)
		if err != nil {
			return err
		}
	}
	return nil
}
