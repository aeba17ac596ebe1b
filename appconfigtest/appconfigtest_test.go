// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfigtest

import (
	"testing"

	"github.com/z5labs/appconfig"

	"github.com/stretchr/testify/assert"
)

func TestNewManager(t *testing.T) {
	m := NewManager(t, Config{
		Sections: map[string]map[string]string{
			"appSettings": {
				"Timeout": "10",
			},
			"system.web/pages": {
				"theme": "dark",
			},
		},
		ConnectionStrings: appconfig.ConnectionStrings{
			{Name: "default", ConnectionString: "host=localhost"},
		},
	})

	t.Run("will serve app settings", func(t *testing.T) {
		v, err := appconfig.GetSetting[int](m, "Timeout")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, 10, v) {
			return
		}
	})

	t.Run("will serve nested sections", func(t *testing.T) {
		v, err := appconfig.GetSectionSetting[string](m, "theme", "system.web/pages")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "dark", v) {
			return
		}
	})

	t.Run("will serve connection strings", func(t *testing.T) {
		if !assert.True(t, m.HasConnectionString("default")) {
			return
		}
		if !assert.False(t, m.HasConnectionString("other")) {
			return
		}
	})

	t.Run("will open documents in a temporary directory", func(t *testing.T) {
		doc, err := m.OpenExeConfiguration(appconfig.PerUserRoaming)
		if !assert.Nil(t, err) {
			return
		}
		if !assert.False(t, doc.HasFile()) {
			return
		}

		err = doc.Save(appconfig.ForceSaveAll())
		if !assert.Nil(t, err) {
			return
		}
		if !assert.True(t, doc.HasFile()) {
			return
		}
	})
}

func TestConfig_Apply(t *testing.T) {
	t.Run("will keep settings of sections sharing a parent", func(t *testing.T) {
		cfg := Config{
			Sections: map[string]map[string]string{
				"a":     {"x": "1"},
				"a/b":   {"y": "2"},
				"a/b/c": {"z": "3"},
				"d":     {"w": "4"},
			},
		}

		// map iteration order varies between runs
		for i := 0; i < 50; i++ {
			m := NewManager(t, cfg)
			if !assert.True(t, m.HasSectionSetting("x", "a")) {
				return
			}
			if !assert.True(t, m.HasSectionSetting("y", "a/b")) {
				return
			}
			if !assert.True(t, m.HasSectionSetting("z", "a/b/c")) {
				return
			}
			if !assert.True(t, m.HasSectionSetting("w", "d")) {
				return
			}
		}
	})
}

func TestSettings(t *testing.T) {
	s := Settings{
		"AppSettings": {
			"Enabled": "true",
		},
		"system.web/pages": {
			"theme": "dark",
		},
	}

	t.Run("will match section names case-insensitively", func(t *testing.T) {
		v, err := appconfig.GetSetting[bool](s, "Enabled")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.True(t, v) {
			return
		}
	})

	t.Run("will serve nested sections", func(t *testing.T) {
		v, err := appconfig.GetSectionSetting[string](s, "theme", "system.web/pages")
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, "dark", v) {
			return
		}
	})

	t.Run("will report missing sections", func(t *testing.T) {
		_, err := appconfig.GetSectionSetting[int](s, "IntValue", "customSection")
		if !assert.Equal(t, appconfig.SectionNotFoundError{Section: "customSection"}, err) {
			return
		}
	})

	t.Run("will return an empty appSettings if none is set", func(t *testing.T) {
		v, err := appconfig.GetSettingOrDefault(Settings{}, "Enabled", false)
		if !assert.Nil(t, err) {
			return
		}
		if !assert.False(t, v) {
			return
		}
	})
}
