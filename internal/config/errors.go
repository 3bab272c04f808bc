// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with [errors.Is] against the typed errors below.
var (
	// ErrPathNotDefined reports a dotted path that does not exist in the
	// schema, structurally or because a template instance name is invalid.
	ErrPathNotDefined = errors.New("path is not defined in configuration")

	// ErrMalformedValue reports a raw value that cannot be converted to the
	// type declared by its schema leaf.
	ErrMalformedValue = errors.New("malformed configuration value")

	// ErrMalformedSource reports a persisted or dotenv file that cannot be
	// parsed.
	ErrMalformedSource = errors.New("malformed configuration source")

	// ErrTypeMismatch is returned by the typed getters when the stored value
	// does not have the requested Go type.
	ErrTypeMismatch = errors.New("configuration value type mismatch")

	// ErrInvalidSchema reports a schema definition that cannot be compiled.
	ErrInvalidSchema = errors.New("invalid configuration schema")

	// ErrNoConfigFile is returned when writing settings that have no file
	// to be written to.
	ErrNoConfigFile = errors.New("no writable configuration file")

	errLockTimeout = errors.New("timeout acquiring configuration file lock")
)

// PathError is the schema-path error. Path holds every segment attempted up
// to and including the one that failed validation.
type PathError struct {
	Path []string
}

func (e *PathError) Error() string {
	if len(e.Path) == 0 {
		return "empty path is not defined in configuration"
	}
	return fmt.Sprintf("%s is not defined in configuration", strings.Join(e.Path, "->"))
}

// Unwrap allows matching with errors.Is(err, ErrPathNotDefined).
func (e *PathError) Unwrap() error {
	return ErrPathNotDefined
}

func newPathError(path []string) *PathError {
	return &PathError{Path: append([]string(nil), path...)}
}

// CoercionError reports a value that could not be converted to the type of
// the leaf at Path.
type CoercionError struct {
	Path  []string
	Value any
	Type  ValueType
	Err   error
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("cannot convert %#v to %s", e.Value, e.Type)
	if len(e.Path) > 0 {
		msg = fmt.Sprintf("%s: %s", strings.Join(e.Path, "."), msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoercionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedValue}
	}
	return []error{ErrMalformedValue, e.Err}
}

// SourceError reports a configuration source that failed to load.
type SourceError struct {
	Source string
	Path   string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source %q: %v", e.Source, e.Path, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrMalformedSource, e.Err}
}

// TypeMismatchError is returned by the typed getters.
type TypeMismatchError struct {
	Key  string
	Want string
	Got  any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %T", e.Key, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
