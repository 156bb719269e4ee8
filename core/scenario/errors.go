// Copyright (c) 2018 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.

package scenario

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParseError is returned when scenario file is not valid JSON.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid json: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NoEntry is SchemaError.Entry value for errors not bound to a scenario entry.
const NoEntry = -1

// SchemaError is returned when field required for patch or filename
// derivation is absent or has unexpected type.
type SchemaError struct {
	File  string
	Entry int
	Path  string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Entry == NoEntry {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: scenario #%d: %s: %v", e.File, e.Entry, e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// IOError is returned on scenario file read, write or remove failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

func IsSchemaError(err error) bool {
	var target *SchemaError
	return errors.As(err, &target)
}

func IsIOError(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}

func NewIOError(op, path string, err error) error {
	return errors.WithStack(&IOError{Op: op, Path: path, Err: err})
}

// locate binds SchemaError found in err chain to file and entry.
func locate(err error, file string, entry int) error {
	var serr *SchemaError
	if errors.As(err, &serr) {
		serr.File = file
		serr.Entry = entry
	}
	return err
}
