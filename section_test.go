// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSection(t *testing.T) {
	s := NewSection("feature", map[string]string{
		"Enabled": "true",
		"Limit":   "5",
	})

	if !assert.Equal(t, "feature", s.Name()) {
		return
	}
	if !assert.True(t, s.ReadOnly()) {
		return
	}
	if !assert.Equal(t, []string{"Enabled", "Limit"}, s.Keys()) {
		return
	}
	if !assert.ErrorIs(t, s.Set("Limit", "6"), ErrReadOnly) {
		return
	}
}

func TestSection_Get(t *testing.T) {
	m := newTestManager(t)
	s := m.AppSettings()

	testCases := []struct {
		Name  string
		Key   string
		Value string
		Found bool
	}{
		{Name: "blank key", Key: "  ", Found: false},
		{Name: "unknown key", Key: "unknown", Found: false},
		{Name: "known key", Key: "Timeout", Value: "10", Found: true},
		{Name: "known key in another case", Key: "isvalue", Value: "true", Found: true},
		{Name: "blank value", Key: "EmptyValue", Value: "", Found: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			v, ok := s.Get(testCase.Key)
			if !assert.Equal(t, testCase.Found, ok) {
				return
			}
			if !assert.Equal(t, testCase.Value, v) {
				return
			}
		})
	}

	t.Run("will not return nested sections as values", func(t *testing.T) {
		_, ok := newSection("system.web", m.current, nil).Get("pages")
		if !assert.False(t, ok) {
			return
		}
	})

	t.Run("will report a null value as blank", func(t *testing.T) {
		f := newFixture(t)
		writeTestFile(t, f.exeConfigFile(), "appSettings:\n  Nullish:\n  Size: \"30\"\n")
		m, err := NewManager(f.options()...)
		if !assert.Nil(t, err) {
			return
		}

		v, ok := m.AppSettings().Get("nullish")
		if !assert.True(t, ok) {
			return
		}
		if !assert.Equal(t, "", v) {
			return
		}
		if !assert.True(t, m.HasSetting("Nullish")) {
			return
		}
		if !assert.Contains(t, m.AppSettings().Keys(), "Nullish") {
			return
		}
	})
}

func TestSection_Keys(t *testing.T) {
	t.Run("will keep the spelling of the files", func(t *testing.T) {
		m := newTestManager(t)

		keys := m.AppSettings().Keys()
		if !assert.Equal(t, []string{"EmptyValue", "IsValue", "Region", "Size", "Timeout"}, keys) {
			return
		}
		if !assert.Equal(t, 5, m.AppSettings().Len()) {
			return
		}
	})
}

func TestSection_Values(t *testing.T) {
	m := newTestManager(t)

	s, ok := m.GetSection("customSection")
	if !assert.True(t, ok) {
		return
	}
	if !assert.Equal(t, map[string]string{"IntValue": "10"}, s.Values()) {
		return
	}
}

func TestSection_Decode(t *testing.T) {
	t.Run("will decode into a struct", func(t *testing.T) {
		s := NewSection("http", map[string]string{
			"Port":    "8080",
			"Timeout": "5s",
			"Debug":   "true",
		})

		var cfg struct {
			Port    int           `config:"port"`
			Timeout time.Duration `config:"timeout"`
			Debug   bool          `config:"debug"`
		}
		err := s.Decode(&cfg)
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, 8080, cfg.Port) {
			return
		}
		if !assert.Equal(t, 5*time.Second, cfg.Timeout) {
			return
		}
		if !assert.True(t, cfg.Debug) {
			return
		}
	})
}
