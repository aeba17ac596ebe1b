// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched, via [errors.Is], by every error
// caused by a missing, blank or unknown input.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnsupportedType is the cause of a [ConversionError] when the
// requested type has no string conversion.
var ErrUnsupportedType = errors.New("unsupported type")

// ErrReadOnly is returned when mutating a section obtained from a [Manager].
var ErrReadOnly = errors.New("configuration section is read-only")

// KeyNotFoundError occurs when a setting key is blank, absent or
// holds a blank value.
type KeyNotFoundError struct {
	Key string
}

// Error implements the [builtin.error] interface.
func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("Specified key (%s) not found or empty.", e.Key)
}

// Is reports whether target is [ErrInvalidArgument].
func (e KeyNotFoundError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// SectionNotFoundError occurs when a named section does not exist.
type SectionNotFoundError struct {
	Section string
}

// Error implements the [builtin.error] interface.
func (e SectionNotFoundError) Error() string {
	return fmt.Sprintf("Section %s is not found in configuration", e.Section)
}

// Is reports whether target is [ErrInvalidArgument].
func (e SectionNotFoundError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ArgumentError occurs when an input other than a key or section
// name is missing or malformed, e.g. an incomplete [ExeFileMap].
type ArgumentError struct {
	Name   string
	Reason string
}

// Error implements the [builtin.error] interface.
func (e ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Name, e.Reason)
}

// Is reports whether target is [ErrInvalidArgument].
func (e ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ConversionError occurs when a raw setting value cannot be
// coerced into the requested type.
type ConversionError struct {
	Value string
	Type  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConversionError) Error() string {
	return fmt.Sprintf("%s is not a valid value for %s.", e.Value, e.Type)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConversionError) Unwrap() error {
	return e.Cause
}

// LoadError occurs when a configuration file exists but cannot be read.
type LoadError struct {
	Path  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e LoadError) Error() string {
	return fmt.Sprintf("failed to load configuration file %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e LoadError) Unwrap() error {
	return e.Cause
}

// SaveError occurs when a configuration document cannot be written.
type SaveError struct {
	Path  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e SaveError) Error() string {
	return fmt.Sprintf("failed to save configuration file %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e SaveError) Unwrap() error {
	return e.Cause
}

// InvalidConnectionStringError occurs when a connection entry is
// malformed, e.g. it has no name. Entry is the index or name of the
// entry within its file.
type InvalidConnectionStringError struct {
	Entry string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidConnectionStringError) Error() string {
	return fmt.Sprintf("invalid connection string entry %s: %s", e.Entry, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidConnectionStringError) Unwrap() error {
	return e.Cause
}
