// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"io/fs"
	"log/slog"
	"os"
	"text/template"
	"time"

	"github.com/z5labs/appconfig/config"
)

type options struct {
	name          string
	exePath       string
	machineFile   string
	userConfigDir string
	format        config.Format
	srcs          []config.Source
	funcs         template.FuncMap
	logHandler    slog.Handler
	withoutFiles  bool
	debounce      time.Duration
}

// Option configures a [ConfigurationManager].
type Option func(*options)

// Name sets the application name used to locate the machine and user
// configuration files.
//
// Default is the base name of the executable, without its extension.
func Name(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// ExePath sets the executable whose configuration is opened by default.
//
// Default is the path returned by [os.Executable].
func ExePath(path string) Option {
	return func(o *options) {
		o.exePath = path
	}
}

// MachineConfigFile sets the machine configuration file.
//
// Default is /etc/<name>/machine.config.yaml.
func MachineConfigFile(path string) Option {
	return func(o *options) {
		o.machineFile = path
	}
}

// UserConfigDir sets the directory holding the per-user configuration.
//
// Default is the directory returned by [os.UserConfigDir].
func UserConfigDir(dir string) Option {
	return func(o *options) {
		o.userConfigDir = dir
	}
}

// DefaultFormat sets the format of the executable and user configuration
// files, which is only used to pick their file extension.
//
// Default is [config.YAML].
func DefaultFormat(f config.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// Sources layers additional sources, e.g. [config.FromEnv], on top of
// the files backing the default configuration.
func Sources(srcs ...config.Source) Option {
	return func(o *options) {
		o.srcs = append(o.srcs, srcs...)
	}
}

// TemplateFuncs renders the files backing the default configuration as
// text templates using funcs, e.g. [configtmpl.Funcs]. Documents are
// never rendered so saving them keeps their template actions intact.
func TemplateFuncs(funcs template.FuncMap) Option {
	return func(o *options) {
		o.funcs = funcs
	}
}

// LogHandler sets the handler used for logging. Connection string
// payloads are always masked before reaching it.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// WithoutFiles keeps the default configuration from reading the machine
// and executable configuration files so it only consists of [Sources].
// Documents are still opened from files.
func WithoutFiles() Option {
	return func(o *options) {
		o.withoutFiles = true
	}
}

// WatchDebounce sets how long Watch waits for file events to settle
// before refreshing.
//
// Default is 500ms.
func WatchDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// osFS opens host paths as given, absolute or relative to the working
// directory, which fs.FS implementations like os.DirFS refuse.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}
