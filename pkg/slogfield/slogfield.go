// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package slogfield names the log attributes shared across appconfig,
// so the same value is always logged under the same key.
package slogfield

import (
	"log/slog"
	"time"
)

// Bool returns an slog.Attr for a bool.
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// Duration returns an slog.Attr for a time.Duration.
func Duration(key string, d time.Duration) slog.Attr {
	return slog.Duration(key, d)
}

// Error returns an slog.Attr for a error.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// String returns an slog.Attr for a string.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int returns an slog.Attr for an int.
func Int(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Path returns an slog.Attr for a configuration file path.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Section returns an slog.Attr for a configuration section name.
func Section(name string) slog.Attr {
	return slog.String("section", name)
}

// Level returns an slog.Attr for a configuration level, e.g. "None".
func Level(level string) slog.Attr {
	return slog.String("level", level)
}
