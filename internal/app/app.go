// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package app runs long lived configuration tasks, like watching the
// configuration files of a [appconfig.ConfigurationManager], until
// they fail or the process is signalled.
package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/z5labs/appconfig"
	"github.com/z5labs/appconfig/internal/try"
	"github.com/z5labs/appconfig/pkg/health"
	"github.com/z5labs/appconfig/pkg/slogfield"
)

// Task is a unit of work which runs until ctx is done.
type Task interface {
	Run(context.Context) error
}

// TaskFunc is a functional implementation of [Task].
type TaskFunc func(context.Context) error

// Run implements the [Task] interface.
func (f TaskFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Watch returns a [Task] which keeps w refreshed until ctx is done.
// Cancellation of ctx is not reported as an error.
func Watch(w appconfig.Watcher) Task {
	return TaskFunc(func(ctx context.Context) error {
		err := w.Watch(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
}

// Recover wraps task with panic recovery. A recovered value is
// returned as a [try.PanicError].
func Recover(task Task) Task {
	return TaskFunc(func(ctx context.Context) (err error) {
		defer try.Recover(&err)

		return task.Run(ctx)
	})
}

// WithSignalNotifications cancels the [context.Context] passed to
// task.Run once any of signals is received.
func WithSignalNotifications(task Task, signals ...os.Signal) Task {
	return TaskFunc(func(ctx context.Context) error {
		sigCtx, cancel := signal.NotifyContext(ctx, signals...)
		defer cancel()

		return task.Run(sigCtx)
	})
}

// Hook is run at a fixed point relative to [Task.Run].
type Hook interface {
	Run(context.Context) error
}

// HookFunc is a functional implementation of [Hook].
type HookFunc func(context.Context) error

// Run implements the [Hook] interface.
func (f HookFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// ComposeHooks runs every hook in order, even after one fails, and
// joins their errors.
func ComposeHooks(hooks ...Hook) Hook {
	return HookFunc(func(ctx context.Context) error {
		errs := make([]error, 0, len(hooks))
		for _, hook := range hooks {
			err := hook.Run(ctx)
			if err == nil {
				continue
			}
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})
}

// LogHook returns a [Hook] which logs msg at info level.
func LogHook(log *slog.Logger, msg string, attrs ...slog.Attr) Hook {
	return HookFunc(func(ctx context.Context) error {
		log.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
		return nil
	})
}

// ErrUnhealthy is returned by the [Hook] from [HealthHook] when its
// metric is not healthy.
var ErrUnhealthy = errors.New("unhealthy")

// HealthHook returns a [Hook] which fails with [ErrUnhealthy] unless
// every metric is healthy.
func HealthHook(metrics ...health.Metric) Hook {
	m := health.And(metrics...)
	return HookFunc(func(ctx context.Context) error {
		if !m.Healthy(ctx) {
			return ErrUnhealthy
		}
		return nil
	})
}

// Lifecycle holds the hooks run around a [Task].
type Lifecycle struct {
	// PreRun runs before the task. The task is skipped when it fails.
	PreRun Hook

	// PostRun always runs, even if the task fails or panics.
	PostRun Hook
}

// WithLifecycle wraps task so its [Lifecycle] hooks run around it.
func WithLifecycle(task Task, life Lifecycle) Task {
	return TaskFunc(func(ctx context.Context) (err error) {
		defer runPostRun(ctx, life.PostRun, &err)

		if life.PreRun != nil {
			err = life.PreRun.Run(ctx)
			if err != nil {
				return err
			}
		}
		return task.Run(ctx)
	})
}

func runPostRun(ctx context.Context, hook Hook, err *error) {
	if hook == nil {
		return
	}

	hookErr := hook.Run(ctx)

	// errors.Join returns nil if both are nil
	*err = errors.Join(*err, hookErr)
}

// Run runs task until it returns or os.Interrupt is received, logging
// its start and end. The task is skipped if any of preRun fails.
func Run(ctx context.Context, log *slog.Logger, name string, task Task, preRun ...Hook) error {
	hooks := append([]Hook{LogHook(log, "starting task", slogfield.String("task", name))}, preRun...)
	t := WithLifecycle(
		Recover(task),
		Lifecycle{
			PreRun:  ComposeHooks(hooks...),
			PostRun: LogHook(log, "task stopped", slogfield.String("task", name)),
		},
	)
	return WithSignalNotifications(t, os.Interrupt).Run(ctx)
}
