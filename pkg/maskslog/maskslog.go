// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package maskslog provides a [slog.Handler] which masks sensitive
// values, like connection strings, before they reach the wrapped handler.
package maskslog

import (
	"context"
	"log/slog"
)

type options struct {
	attrs   map[string]func(slog.Attr) slog.Attr
	message func(string) string
}

// Option helps configure the Handler.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(opts *options) {
	f(opts)
}

// Message registers a function for masking record messages.
func Message(f func(string) string) Option {
	return optionFunc(func(o *options) {
		o.message = f
	})
}

// Attr registers a function for masking every attr with the given key,
// including attrs nested in groups.
func Attr(key string, f func(slog.Attr) slog.Attr) Option {
	return optionFunc(func(o *options) {
		o.attrs[key] = f
	})
}

// AnonymousStringAttr replaces the value of any attr with the
// anonymized string, "****".
func AnonymousStringAttr(a slog.Attr) slog.Attr {
	return slog.String(a.Key, "****")
}

// Handler is an slog.Handler.
type Handler struct {
	slog slog.Handler

	attrs   map[string]func(slog.Attr) slog.Attr
	message func(string) string
}

// NewHandler returns a new Handler.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	o := &options{
		attrs: make(map[string]func(slog.Attr) slog.Attr),
	}
	for _, opt := range opts {
		opt.applyOption(o)
	}
	return &Handler{
		slog:    h,
		attrs:   o.attrs,
		message: o.message,
	}
}

func (h *Handler) with(sh slog.Handler) *Handler {
	return &Handler{
		slog:    sh,
		attrs:   h.attrs,
		message: h.message,
	}
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	msg := record.Message
	if h.message != nil {
		msg = h.message(msg)
	}
	if len(h.attrs) == 0 && msg == record.Message {
		return h.slog.Handle(ctx, record)
	}

	attrs := make([]slog.Attr, 0, record.NumAttrs())
	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.mask(a))
		return true
	})

	nr := slog.NewRecord(record.Time, record.Level, msg, record.PC)
	nr.AddAttrs(attrs...)
	return h.slog.Handle(ctx, nr)
}

func (h *Handler) mask(a slog.Attr) slog.Attr {
	if f, ok := h.attrs[a.Key]; ok {
		return f(a)
	}

	v := a.Value.Resolve()
	if v.Kind() != slog.KindGroup {
		return a
	}

	group := v.Group()
	masked := make([]slog.Attr, len(group))
	for i, ga := range group {
		masked[i] = h.mask(ga)
	}
	return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.mask(a)
	}
	return h.with(h.slog.WithAttrs(masked))
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return h.with(h.slog.WithGroup(name))
}
