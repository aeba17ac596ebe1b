// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package noop provides implementations which do nothing.
package noop

import (
	"context"
	"log/slog"
)

// LogHandler is a slog.Handler which discards every record. It is
// the default handler of an appconfig Manager.
type LogHandler struct{}

// Enabled implements the slog.Handler interface. It always reports
// false so records are never built.
func (LogHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (LogHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (h LogHandler) WithAttrs(_ []slog.Attr) slog.Handler        { return h }
func (h LogHandler) WithGroup(name string) slog.Handler          { return h }
