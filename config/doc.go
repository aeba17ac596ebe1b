// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config reads configuration documents into a case-insensitive tree.
//
// The package is built around two small interfaces. A [Source] knows how to
// serialize itself into key value pairs and a [Store] receives those pairs.
// [Tree] is the Store used throughout appconfig: applying several sources to
// the same Tree deep merges them, with later sources overriding earlier ones.
//
// # Sources
//
// Sources exist for in-memory maps, YAML, JSON, TOML and the process
// environment:
//
//	t, err := config.Read(
//	    config.FromYaml(strings.NewReader("appSettings:\n  Timeout: \"10\"\n")),
//	    config.FromEnv("MYAPP"),
//	)
//
// [File] picks the decoder from the file extension and can render the file
// through text/template first, see [RenderTextTemplate].
//
// # Saving
//
// [Encode] is the inverse of the file sources and writes a tree back out in
// a given [Format].
//
// # Decoding
//
// [Decode] converts a subtree into a struct using the "config" struct tag.
package config
