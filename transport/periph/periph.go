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

// Package periph drives the coil, indicators and card selector through host GPIO
// lines using periph.io
package periph

import (
	"errors"
	"fmt"

	em4100 "github.com/ZaparooProject/go-em4100"
	"github.com/ZaparooProject/go-em4100/internal/rt"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// maxSelectorPins bounds the selector to a byte-sized card index
const maxSelectorPins = 8

// Open initializes the periph host drivers. It must be called before OpenPin or
// OpenSelector.
func Open() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph host: %w", err)
	}
	return nil
}

// Pin implements em4100.Pin on a periph GPIO output
type Pin struct {
	pin gpio.PinOut
}

// NewPin wraps an already opened periph output
func NewPin(pin gpio.PinOut) *Pin {
	return &Pin{pin: pin}
}

// OpenPin looks up a GPIO line by name (e.g. "GPIO18") and drives it to initial
func OpenPin(name string, initial em4100.Level) (*Pin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("failed to find GPIO pin %s", name)
	}
	if err := p.Out(gpio.Level(initial)); err != nil {
		return nil, fmt.Errorf("failed to configure %s as output: %w", name, err)
	}
	return NewPin(p), nil
}

// Set drives the line to level
func (p *Pin) Set(level em4100.Level) error {
	if err := p.pin.Out(gpio.Level(level)); err != nil {
		return fmt.Errorf("failed to drive %s: %w", p.pin.Name(), err)
	}
	return nil
}

// Name returns the periph pin name
func (p *Pin) Name() string {
	return p.pin.Name()
}

// Type returns the backend type
func (*Pin) Type() em4100.BackendType {
	return em4100.BackendPeriph
}

// Selector reads a card index from pulled-up switch inputs. Input i carries
// weight 1<<i and counts when it reads high, so an open switch is a 1.
type Selector struct {
	pins []gpio.PinIn
}

// NewSelector configures pins as pulled-up inputs, least significant first
func NewSelector(pins ...gpio.PinIn) (*Selector, error) {
	if len(pins) == 0 || len(pins) > maxSelectorPins {
		return nil, fmt.Errorf("%w: selector needs 1 to %d pins, got %d",
			em4100.ErrInvalidParameter, maxSelectorPins, len(pins))
	}
	for _, p := range pins {
		if p == nil {
			return nil, errors.New("selector pin is nil")
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("failed to configure %s as input: %w", p.Name(), err)
		}
	}
	return &Selector{pins: append([]gpio.PinIn(nil), pins...)}, nil
}

// OpenSelector looks up the selector inputs by name, least significant first
func OpenSelector(names ...string) (*Selector, error) {
	pins := make([]gpio.PinIn, 0, len(names))
	for _, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("failed to find GPIO pin %s", name)
		}
		pins = append(pins, p)
	}
	return NewSelector(pins...)
}

// Read sums the weights of the inputs that read high
func (s *Selector) Read() (int, error) {
	value := 0
	for i, p := range s.pins {
		if p.Read() == gpio.High {
			value += 1 << i
		}
	}
	return value, nil
}

// NewTimer returns the busy-wait timer used with GPIO backends
func NewTimer() em4100.Timer {
	return rt.NewTimer()
}
