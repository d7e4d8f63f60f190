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

// Half selects one of the two timed halves of a transmitted bit
type Half int

const (
	// First is the half-cycle before the mid-bit transition
	First Half = iota
	// Second is the half-cycle after the mid-bit transition
	Second
)

// Polarity selects whether coil states are emitted as-is or inverted.
// Readers lock onto either phase, so the scheduler sends both.
type Polarity int

const (
	// Normal polarity
	Normal Polarity = iota
	// Inverted swaps Tuned and Detuned for every half-cycle
	Inverted
)

func (p Polarity) String() string {
	if p == Inverted {
		return "inverted"
	}
	return "normal"
}

// CoilState is the electrical loading of the coil
type CoilState int

const (
	// Detuned leaves the coil unloaded (pin driven high)
	Detuned CoilState = iota
	// Tuned loads the coil (pin driven low)
	Tuned
)

func (s CoilState) String() string {
	if s == Tuned {
		return "tuned"
	}
	return "detuned"
}

// Level returns the pin level that produces the coil state
func (s CoilState) Level() Level {
	if s == Tuned {
		return Low
	}
	return High
}

// Modulate returns the coil state for one half of a Manchester-coded bit.
// Each bit has exactly one transition at its midpoint; its position, not
// direction, carries the value.
func Modulate(bit uint64, half Half, polarity Polarity) CoilState {
	transition := b2u(half == Second) ^ (bit & 1)
	if transition^b2u(polarity == Inverted) == 1 {
		return Tuned
	}
	return Detuned
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
