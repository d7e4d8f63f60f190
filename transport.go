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

import "time"

// Level is a digital pin level
type Level bool

const (
	// Low drives the pin to ground
	Low Level = false
	// High drives the pin to the supply rail
	High Level = true
)

func (l Level) String() string {
	if l {
		return "High"
	}
	return "Low"
}

// Pin is a digital output, implemented by the periph, uart and mock backends
type Pin interface {
	// Set drives the pin to the given level
	Set(level Level) error

	// Name identifies the pin in logs and errors
	Name() string
}

// Timer is a countdown timer with microsecond resolution. Callers start it and
// poll Done until the duration has elapsed.
type Timer interface {
	// Start arms the timer for d
	Start(d time.Duration)

	// Done reports whether the armed duration has elapsed
	Done() bool
}

// Selector reports the card index chosen by hardware (DIP switches, jumpers)
type Selector interface {
	// Read returns the current selector value
	Read() (int, error)
}

// FixedSelector is a Selector that always returns the same card index
type FixedSelector int

// Read returns the fixed index
func (f FixedSelector) Read() (int, error) {
	return int(f), nil
}

// BackendType names the hardware layer driving the pins
type BackendType string

const (
	// BackendPeriph drives host GPIO lines through periph.io
	BackendPeriph BackendType = "periph"
	// BackendUART drives the modem control lines of a serial adapter
	BackendUART BackendType = "uart"
	// BackendMock is the in-memory backend used in tests
	BackendMock BackendType = "mock"
)

// Wait arms the timer for d and polls it until it completes
func Wait(timer Timer, d time.Duration) {
	timer.Start(d)
	for !timer.Done() {
	}
}
