// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package configtmpl provides template functions for use in configuration file templates.
package configtmpl

import (
	"os"
	"reflect"
	"strings"
	"text/template"
)

// Funcs returns every function in this package keyed by the name
// it is registered under in a configuration template.
//
//	appSettings:
//	  Home: {{ env "HOME" }}
//	  Timeout: {{ default "30" (env "APP_TIMEOUT") }}
//	  Secret: {{ file "/run/secrets/app" | trim }}
func Funcs() template.FuncMap {
	return template.FuncMap{
		"env":     Env,
		"default": Default,
		"file":    File,
		"trim":    strings.TrimSpace,
	}
}

// Env returns the environment variable value for the given key
// or an empty string, if the environment variable does not exist.
func Env(key string) string {
	return mapEnv(os.Environ())[key]
}

func mapEnv(keyValues []string) map[string]string {
	m := make(map[string]string, len(keyValues))
	for _, s := range keyValues {
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			continue
		}
		m[key] = value
	}
	return m
}

// Default returns the provided def value if v is either nil or the zero value for its type.
func Default(def, v any) any {
	if v == nil {
		return def
	}
	val := reflect.ValueOf(v)
	if val.IsZero() {
		return def
	}
	return v
}

// File returns the contents of the file at path. It is meant for
// pulling secrets mounted as files into a configuration document.
func File(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
