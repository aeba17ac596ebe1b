// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/z5labs/appconfig/internal/try"
	"github.com/z5labs/appconfig/pkg/slogfield"

	"github.com/fsnotify/fsnotify"
)

// Watch refreshes every section once the files backing the default
// configuration change. It blocks until ctx is cancelled.
//
// The parent directories are watched, rather than the files, so files
// which are replaced atomically or created later are still noticed.
func (m *ConfigurationManager) Watch(ctx context.Context) (err error) {
	defer try.Recover(&err)

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, path := range m.defaultFiles() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer try.Close(&err, w)

	for dir := range dirs {
		err := w.Add(dir)
		if errors.Is(err, fs.ErrNotExist) {
			m.log.Warn("configuration directory does not exist", slogfield.String("dir", dir))
			continue
		}
		if err != nil {
			return err
		}
	}

	m.log.Debug(
		"watching configuration files",
		slogfield.Int("files", len(files)),
		slogfield.Duration("debounce", m.debounce),
	)

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			if debounce == nil {
				debounce = time.NewTimer(m.debounce)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(m.debounce)
			}
			fire = debounce.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			m.watching.Record(err)
			m.log.Warn("configuration watcher error", slogfield.Error(err))
		case <-fire:
			fire = nil
			m.watching.Record(nil)
			m.refresh()
			m.current()
			m.log.Info("configuration files changed, refreshed all sections")
		}
	}
}
