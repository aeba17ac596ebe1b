// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/z5labs/appconfig"

	"github.com/stretchr/testify/assert"
)

func TestSetCommand(t *testing.T) {
	t.Run("will save a new setting at the executable level", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.run("set", "Greeting", "hello")
		if !assert.Nil(t, err) {
			return
		}

		out, err := f.run("get", "Greeting")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "hello\n", out) {
			return
		}
	})

	t.Run("will create a missing section", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.run("set", "Enabled", "true", "-s", "featureFlags")
		if !assert.Nil(t, err) {
			return
		}

		out, err := f.run("get", "Enabled", "-s", "featureFlags")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "true\n", out) {
			return
		}
	})

	t.Run("will save to the roaming user file", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.run("set", "Theme", "blue", "--level", "roaming")
		if !assert.Nil(t, err) {
			return
		}

		b, err := os.ReadFile(filepath.Join(f.userDir, "app", "user.config.yaml"))
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Contains(t, string(b), "Theme: blue") {
			return
		}
	})

	t.Run("will return an error if the save mode is unknown", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.run("set", "Greeting", "hello", "--mode", "partial")
		if !assert.NotNil(t, err) {
			return
		}
	})
}

func TestUnsetCommand(t *testing.T) {
	t.Run("will expose the inherited value once removed", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.run("unset", "Timeout")
		if !assert.Nil(t, err) {
			return
		}

		out, err := f.run("get", "Timeout")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "5\n", out) {
			return
		}
	})

	t.Run("will return an error if the section is missing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.run("unset", "Timeout", "-s", "otherSection")
		if !assert.Equal(t, appconfig.SectionNotFoundError{Section: "otherSection"}, err) {
			return
		}
	})
}

func TestConnCommand(t *testing.T) {
	t.Run("will list connection strings from every level", func(t *testing.T) {
		f := newFixture(t)

		out, err := f.run("conn", "list")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Contains(t, out, "default") {
			return
		}
		if !assert.Contains(t, out, "postgres") {
			return
		}
		if !assert.Contains(t, out, "audit") {
			return
		}
	})

	t.Run("will print a connection string", func(t *testing.T) {
		f := newFixture(t)

		out, err := f.run("conn", "get", "default")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "host=localhost\n", out) {
			return
		}
	})

	t.Run("will return an error if the connection string is missing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.run("conn", "get", "reporting")
		if !assert.True(t, errors.Is(err, appconfig.ErrInvalidArgument)) {
			return
		}
	})

	t.Run("will save a new connection string", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.run("conn", "set", "reporting", "host=reports", "--provider", "mysql")
		if !assert.Nil(t, err) {
			return
		}

		out, err := f.run("conn", "get", "reporting")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "host=reports\n", out) {
			return
		}
	})

	t.Run("will remove a connection string", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.run("conn", "remove", "default")
		if !assert.Nil(t, err) {
			return
		}

		_, err = f.run("conn", "get", "default")
		if !assert.True(t, errors.Is(err, appconfig.ErrInvalidArgument)) {
			return
		}

		out, err := f.run("conn", "get", "audit")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "host=audit\n", out) {
			return
		}
	})
}
