// go-em4100
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-em4100.
//
// go-em4100 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-em4100 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-em4100; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package em4100

import (
	"errors"
	"fmt"
)

// Emulator errors
var (
	// ErrInvalidCardSelection is returned when the selector addresses no card table entry
	ErrInvalidCardSelection = errors.New("invalid card selection")
	// ErrInvalidParameter is returned for out-of-range configuration values
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidTag is returned when a tag string cannot be parsed
	ErrInvalidTag = errors.New("invalid tag")
	// ErrFrameCorrupted is returned when a frame fails its preamble, stop or parity checks
	ErrFrameCorrupted = errors.New("frame corrupted")
	// ErrNoCoilPins is returned when a coil driver is created without output pins
	ErrNoCoilPins = errors.New("no coil pins configured")
	// ErrPinWrite is returned when a backend fails to drive an output pin
	ErrPinWrite = errors.New("pin write failed")
)

// SelectionError reports a selector value that addresses no card table entry
type SelectionError struct {
	Value int
	Count int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("selector value %d outside card table of %d entries", e.Value, e.Count)
}

// Unwrap returns ErrInvalidCardSelection
func (*SelectionError) Unwrap() error {
	return ErrInvalidCardSelection
}

// PinError wraps a failure of the hardware layer to drive a pin
type PinError struct {
	Err error
	Op  string
	Pin string
}

func (e *PinError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Pin, e.Err)
}

// Unwrap returns the underlying backend error
func (e *PinError) Unwrap() error {
	return e.Err
}

// Is reports PinError as ErrPinWrite regardless of the backend cause
func (*PinError) Is(target error) bool {
	return target == ErrPinWrite
}

// NewPinError creates a PinError for the given operation and pin
func NewPinError(op, pin string, err error) *PinError {
	return &PinError{Op: op, Pin: pin, Err: err}
}

// FrameCheck names the structural check a frame failed
type FrameCheck string

const (
	// CheckPreamble is the nine leading 1 bits
	CheckPreamble FrameCheck = "preamble"
	// CheckRowParity is the even parity bit closing each row
	CheckRowParity FrameCheck = "row parity"
	// CheckColumnParity is one of the four trailing column parity bits
	CheckColumnParity FrameCheck = "column parity"
	// CheckStopBit is the trailing 0 bit
	CheckStopBit FrameCheck = "stop bit"
)

// FrameError describes the first failed check found by Frame.Validate
type FrameError struct {
	Check FrameCheck
	Index int // row or column index, -1 when not applicable
}

func (e *FrameError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("frame corrupted: bad %s", e.Check)
	}
	return fmt.Sprintf("frame corrupted: bad %s %d", e.Check, e.Index)
}

// Unwrap returns ErrFrameCorrupted
func (*FrameError) Unwrap() error {
	return ErrFrameCorrupted
}
