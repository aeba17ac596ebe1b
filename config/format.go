// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a configuration file encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	TOML Format = "toml"
)

// Ext returns the file extension, including the dot, for f.
func (f Format) Ext() string {
	return "." + string(f)
}

// UnsupportedFormatError occurs when a file extension or
// format name does not map to a known [Format].
type UnsupportedFormatError struct {
	Format string
}

// Error implements the error interface.
func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config format: %q", e.Format)
}

// ParseFormat returns the Format for the given name, e.g. "yml" or "json".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	case "toml":
		return TOML, nil
	default:
		return "", UnsupportedFormatError{Format: name}
	}
}

// FormatOf returns the Format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Decode returns the Source which parses r as f.
func (f Format) Decode(r io.Reader) (Source, error) {
	switch f {
	case YAML:
		return FromYaml(r), nil
	case JSON:
		return FromJson(r), nil
	case TOML:
		return FromToml(r), nil
	default:
		return nil, UnsupportedFormatError{Format: string(f)}
	}
}

// Encode writes m to w as f.
func Encode(w io.Writer, f Format, m map[string]any) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(m)
		if err != nil {
			return err
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case TOML:
		return toml.NewEncoder(w).Encode(m)
	default:
		return UnsupportedFormatError{Format: string(f)}
	}
}
