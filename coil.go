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
	"fmt"
	"time"

	"github.com/ZaparooProject/go-em4100/internal/frame"
)

// Params are the per-pass transmission settings cycled by the scheduler
type Params struct {
	HalfCycle time.Duration
	Polarity  Polarity
}

func (p Params) String() string {
	return fmt.Sprintf("%dus/%s", p.HalfCycle.Microseconds(), p.Polarity)
}

// CoilDriver switches one or more coil pins in step and times each half-cycle
// on a countdown timer.
//
// Thread Safety: CoilDriver is NOT thread-safe. It owns its pins and timer for
// as long as a frame is in flight.
type CoilDriver struct {
	timer Timer
	pins  []Pin
	state CoilState
}

// NewCoilDriver creates a driver for the given coil pins. All pins are driven
// to the same state at the same time.
func NewCoilDriver(timer Timer, pins ...Pin) (*CoilDriver, error) {
	if timer == nil {
		return nil, fmt.Errorf("%w: nil timer", ErrInvalidParameter)
	}
	if len(pins) == 0 {
		return nil, ErrNoCoilPins
	}
	for _, p := range pins {
		if p == nil {
			return nil, fmt.Errorf("%w: nil coil pin", ErrInvalidParameter)
		}
	}
	return &CoilDriver{
		timer: timer,
		pins:  append([]Pin(nil), pins...),
		state: Detuned,
	}, nil
}

// Pins returns the coil pins in drive order
func (d *CoilDriver) Pins() []Pin {
	return append([]Pin(nil), d.pins...)
}

// State returns the last coil state driven
func (d *CoilDriver) State() CoilState {
	return d.state
}

// Drive sets every coil pin to the level for state
func (d *CoilDriver) Drive(state CoilState) error {
	level := state.Level()
	for _, p := range d.pins {
		if err := p.Set(level); err != nil {
			return NewPinError("drive coil", p.Name(), err)
		}
	}
	d.state = state
	return nil
}

// TransmitFrame sends all 64 bits of f, most significant first. Every bit is two
// timed half-cycles, so a frame takes exactly 128 timer waits. A frame in flight
// is never cut short; only a pin failure ends it early.
func (d *CoilDriver) TransmitFrame(f Frame, p Params) error {
	for i := frame.Bits - 1; i >= 0; i-- {
		bit := f.Bit(i)
		if err := d.Drive(Modulate(bit, First, p.Polarity)); err != nil {
			return fmt.Errorf("bit %d: %w", i, err)
		}
		Wait(d.timer, p.HalfCycle)

		if err := d.Drive(Modulate(bit, Second, p.Polarity)); err != nil {
			return fmt.Errorf("bit %d: %w", i, err)
		}
		Wait(d.timer, p.HalfCycle)
	}
	return nil
}
