// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"strconv"
)

var (
	ErrConfig = errors.New("thermite: invalid configuration")
	ErrRange  = errors.New("thermite: value out of range")
	ErrShape  = errors.New("thermite: invalid message length")
)

// A ConfigError reports an invalid codec parameter or raster geometry.
type ConfigError struct {
	Name  string // parameter name
	Value int    // offending value
}

func (e *ConfigError) Error() string {
	return "thermite: invalid " + e.Name + " " + strconv.Itoa(e.Value)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// A RangeError reports a padding count, byte or bit value outside its
// range.
type RangeError int

func (e RangeError) Error() string {
	return "thermite: value " + strconv.Itoa(int(e)) + " out of range"
}

func (e RangeError) Is(target error) bool { return target == ErrRange }

// A ShapeError reports a message whose length differs from the
// codec's message size.
type ShapeError struct {
	Got, Want int
}

func (e *ShapeError) Error() string {
	return "thermite: message length " + strconv.Itoa(e.Got) +
		", want " + strconv.Itoa(e.Want)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }
