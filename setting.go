// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"errors"
	"strings"
)

// GetSetting returns the appSettings value stored under key,
// converted to T with [Convert].
//
// A [KeyNotFoundError] is returned when key is blank, absent or holds
// a blank value. A [ConversionError] is returned when the value cannot
// be converted to T.
func GetSetting[T any](s Settings, key string) (T, error) {
	return extract[T](s.AppSettings(), key)
}

// GetSectionSetting is [GetSetting] for the named section. The section
// is resolved before the key, so a missing section always returns a
// [SectionNotFoundError].
func GetSectionSetting[T any](s Settings, key, section string) (T, error) {
	sec, ok := s.GetSection(section)
	if !ok || sec == nil {
		var zero T
		return zero, SectionNotFoundError{Section: section}
	}
	return extract[T](sec, key)
}

// GetSettingOrDefault is [GetSetting] but returns fallback where
// GetSetting would return a [KeyNotFoundError]. Values which are
// present but cannot be converted still return a [ConversionError].
func GetSettingOrDefault[T any](s Settings, key string, fallback T) (T, error) {
	return orDefault(extract[T](s.AppSettings(), key))(fallback)
}

// GetSectionSettingOrDefault is [GetSectionSetting] but returns fallback
// when the section does not exist or the key is not found.
func GetSectionSettingOrDefault[T any](s Settings, key, section string, fallback T) (T, error) {
	sec, ok := s.GetSection(section)
	if !ok || sec == nil {
		return fallback, nil
	}
	return orDefault(extract[T](sec, key))(fallback)
}

func orDefault[T any](v T, err error) func(T) (T, error) {
	return func(fallback T) (T, error) {
		var knf KeyNotFoundError
		if errors.As(err, &knf) {
			return fallback, nil
		}
		return v, err
	}
}

func extract[T any](sec *Section, key string) (T, error) {
	var zero T
	if sec == nil || strings.TrimSpace(key) == "" {
		return zero, KeyNotFoundError{Key: key}
	}

	raw, ok := sec.Get(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return zero, KeyNotFoundError{Key: key}
	}
	return Convert[T](raw)
}
