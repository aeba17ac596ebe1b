// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package try collects the small error plumbing helpers shared by
// configuration sources and document writers.
package try

import (
	"errors"
	"fmt"
	"io"
)

// PanicError wraps a value recovered from a panic.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("recovered from panic: %v", e.Value)
}

func (e PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Recover converts a panic into an error stored in err. It must be deferred.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}

	perr := PanicError{
		Value: r,
	}
	if *err == nil {
		*err = perr
		return
	}
	*err = errors.Join(*err, perr)
}

// CloseError wraps a failure from io.Closer.Close.
type CloseError struct {
	Cause error
}

func (e CloseError) Error() string {
	return fmt.Sprintf("failed to close: %s", e.Cause)
}

func (e CloseError) Unwrap() error {
	return e.Cause
}

// Close closes v if it implements io.Closer and joins any
// resulting CloseError into err. It must be deferred.
func Close(err *error, v any) {
	c, ok := v.(io.Closer)
	if !ok || c == nil {
		return
	}

	cerr := c.Close()
	if cerr == nil {
		return
	}

	cerr = CloseError{Cause: cerr}
	if *err == nil {
		*err = cerr
		return
	}
	*err = errors.Join(*err, cerr)
}

// ReadAll reads r until EOF and then closes it, if it is closable.
func ReadAll(r io.Reader) (_ []byte, err error) {
	defer Close(&err, r)
	return io.ReadAll(r)
}
