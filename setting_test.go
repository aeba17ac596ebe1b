// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var blankKeys = []struct {
	Name string
	Key  string
}{
	{Name: "empty", Key: ""},
	{Name: "space", Key: " "},
	{Name: "tab", Key: "\t"},
	{Name: "newline", Key: "\n"},
}

func TestGetSetting(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the key is blank", func(t *testing.T) {
			m := newTestManager(t)

			for _, testCase := range blankKeys {
				t.Run(testCase.Name, func(t *testing.T) {
					_, err := GetSetting[string](m, testCase.Key)
					if !assert.Error(t, err) {
						return
					}
					if !assert.Equal(t, "Specified key ("+testCase.Key+") not found or empty.", err.Error()) {
						return
					}
					if !assert.ErrorIs(t, err, ErrInvalidArgument) {
						return
					}
				})
			}
		})

		t.Run("if the key is unknown", func(t *testing.T) {
			m := newTestManager(t)

			_, err := GetSetting[string](m, "unknown")

			var knf KeyNotFoundError
			if !assert.ErrorAs(t, err, &knf) {
				return
			}
			if !assert.Equal(t, "unknown", knf.Key) {
				return
			}
			if !assert.Equal(t, "Specified key (unknown) not found or empty.", err.Error()) {
				return
			}
		})

		t.Run("if the value is blank", func(t *testing.T) {
			m := newTestManager(t)

			_, err := GetSetting[int](m, "EmptyValue")
			if !assert.Equal(t, KeyNotFoundError{Key: "EmptyValue"}, err) {
				return
			}
		})

		t.Run("if the value can not be converted", func(t *testing.T) {
			m := newTestManager(t)

			_, err := GetSetting[int32](m, "IsValue")

			var cerr ConversionError
			if !assert.ErrorAs(t, err, &cerr) {
				return
			}
			if !assert.Equal(t, "true is not a valid value for Int32.", err.Error()) {
				return
			}
		})
	})

	t.Run("will return the converted value", func(t *testing.T) {
		t.Run("if the value is a bool", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSetting[bool](m, "IsValue")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.True(t, v) {
				return
			}
		})

		t.Run("if the value is an int", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSetting[int](m, "Timeout")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 10, v) {
				return
			}
		})

		t.Run("if the key differs in case", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSetting[int](m, "timeout")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 10, v) {
				return
			}
		})

		t.Run("if the key is only set by a lower level", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSetting[string](m, "Region")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "us-east-1", v) {
				return
			}
		})
	})
}

func TestGetSectionSetting(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the section does not exist", func(t *testing.T) {
			m := newTestManager(t)

			_, err := GetSectionSetting[int](m, "IntValue", "unknown")
			if !assert.Equal(t, "Section unknown is not found in configuration", err.Error()) {
				return
			}
			if !assert.True(t, errors.Is(err, ErrInvalidArgument)) {
				return
			}
		})

		t.Run("if the section does not exist and the key is blank", func(t *testing.T) {
			m := newTestManager(t)

			_, err := GetSectionSetting[int](m, "", "unknown")
			if !assert.Equal(t, SectionNotFoundError{Section: "unknown"}, err) {
				return
			}
		})

		t.Run("if the section name is blank", func(t *testing.T) {
			m := newTestManager(t)

			_, err := GetSectionSetting[int](m, "IntValue", " ")
			if !assert.Equal(t, SectionNotFoundError{Section: " "}, err) {
				return
			}
		})

		t.Run("if the name is a section group", func(t *testing.T) {
			m := newTestManager(t)

			_, err := GetSectionSetting[string](m, "pages", "system.web")
			if !assert.Equal(t, SectionNotFoundError{Section: "system.web"}, err) {
				return
			}
		})

		t.Run("if the key is unknown", func(t *testing.T) {
			m := newTestManager(t)

			_, err := GetSectionSetting[int](m, "unknown", "customSection")
			if !assert.Equal(t, KeyNotFoundError{Key: "unknown"}, err) {
				return
			}
		})
	})

	t.Run("will return the converted value", func(t *testing.T) {
		t.Run("if the section is top level", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSectionSetting[int](m, "IntValue", "customSection")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 10, v) {
				return
			}
		})

		t.Run("if the section is nested in a group", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSectionSetting[string](m, "theme", "system.web/pages")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "dark", v) {
				return
			}
		})
	})
}

func TestGetSettingOrDefault(t *testing.T) {
	t.Run("will return the fallback", func(t *testing.T) {
		t.Run("if the key is blank", func(t *testing.T) {
			m := newTestManager(t)

			for _, testCase := range blankKeys {
				t.Run(testCase.Name, func(t *testing.T) {
					v, err := GetSettingOrDefault(m, testCase.Key, 22)
					if !assert.Nil(t, err) {
						return
					}
					if !assert.Equal(t, 22, v) {
						return
					}
				})
			}
		})

		t.Run("if the key is unknown", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSettingOrDefault(m, "unknown", "fallback")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "fallback", v) {
				return
			}
		})

		t.Run("if the value is blank", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSettingOrDefault(m, "EmptyValue", 22)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 22, v) {
				return
			}
		})

		t.Run("if the fallback is the zero value", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSettingOrDefault[int](m, "unknown", 0)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 0, v) {
				return
			}
		})
	})

	t.Run("will return the configured value", func(t *testing.T) {
		t.Run("if the key is set", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSettingOrDefault(m, "Size", 22)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 30, v) {
				return
			}
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the value can not be converted", func(t *testing.T) {
			m := newTestManager(t)

			_, err := GetSettingOrDefault[int32](m, "IsValue", 1)
			if !assert.Equal(t, "true is not a valid value for Int32.", err.Error()) {
				return
			}
		})
	})
}

func TestGetSectionSettingOrDefault(t *testing.T) {
	t.Run("will return the fallback", func(t *testing.T) {
		t.Run("if the section does not exist", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSectionSettingOrDefault(m, "IntValue", "unknown", 22)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 22, v) {
				return
			}
		})

		t.Run("if the key is unknown", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSectionSettingOrDefault(m, "unknown", "customSection", 22)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 22, v) {
				return
			}
		})
	})

	t.Run("will return the configured value", func(t *testing.T) {
		t.Run("if the key is set", func(t *testing.T) {
			m := newTestManager(t)

			v, err := GetSectionSettingOrDefault(m, "IntValue", "customSection", 22)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 10, v) {
				return
			}
		})
	})
}

type staticSettings struct {
	sections map[string]*Section
}

func (s staticSettings) AppSettings() *Section {
	return s.sections[appSettingsSection]
}

func (s staticSettings) GetSection(name string) (*Section, bool) {
	sec, ok := s.sections[name]
	return sec, ok
}

func TestGetSetting_settingsDouble(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the double has no appSettings", func(t *testing.T) {
			s := staticSettings{}

			_, err := GetSetting[int](s, "Timeout")
			if !assert.Equal(t, KeyNotFoundError{Key: "Timeout"}, err) {
				return
			}
		})
	})

	t.Run("will return the value", func(t *testing.T) {
		t.Run("if the double holds it", func(t *testing.T) {
			s := staticSettings{
				sections: map[string]*Section{
					appSettingsSection: NewSection(appSettingsSection, map[string]string{"Timeout": "15"}),
				},
			}

			v, err := GetSetting[int](s, "Timeout")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 15, v) {
				return
			}
		})
	})
}
