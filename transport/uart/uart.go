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

// Package uart drives the coil and status indicator from the RTS and DTR modem
// control lines of a USB-serial adapter, for hosts without spare GPIO
package uart

import (
	"fmt"

	em4100 "github.com/ZaparooProject/go-em4100"
	"github.com/ZaparooProject/go-em4100/internal/rt"
	"go.bug.st/serial"
)

// Transport owns an open serial port whose modem lines act as outputs
type Transport struct {
	port     serial.Port
	portName string
}

// New opens the serial port and releases both modem lines, leaving the coil
// detuned and the indicator off
func New(portName string) (*Transport, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: 9600})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	t := &Transport{port: port, portName: portName}
	if err := t.RTS().Set(em4100.High); err != nil {
		_ = port.Close()
		return nil, err
	}
	if err := t.DTR().Set(em4100.High); err != nil {
		_ = port.Close()
		return nil, err
	}
	return t, nil
}

// ListPorts returns the serial ports present on the host
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

// RTS returns the request-to-send line, wired to the coil switch
func (t *Transport) RTS() *Line {
	return &Line{name: t.portName + ":RTS", set: t.setRTS}
}

// DTR returns the data-terminal-ready line, wired to the status indicator
func (t *Transport) DTR() *Line {
	return &Line{name: t.portName + ":DTR", set: t.setDTR}
}

func (t *Transport) setRTS(asserted bool) error {
	if t.port == nil {
		return em4100.ErrPinWrite
	}
	return t.port.SetRTS(asserted)
}

func (t *Transport) setDTR(asserted bool) error {
	if t.port == nil {
		return em4100.ErrPinWrite
	}
	return t.port.SetDTR(asserted)
}

// Close closes the serial port
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	if err := t.port.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", t.portName, err)
	}
	t.port = nil
	return nil
}

// IsConnected returns true if the port is open
func (t *Transport) IsConnected() bool {
	return t.port != nil
}

// Type returns the backend type
func (*Transport) Type() em4100.BackendType {
	return em4100.BackendUART
}

// Line is one modem control output. TTL adapters drive an asserted line low, so
// a High level releases the line and Low asserts it.
type Line struct {
	set  func(asserted bool) error
	name string
}

// Set drives the line to level
func (l *Line) Set(level em4100.Level) error {
	if err := l.set(level == em4100.Low); err != nil {
		return fmt.Errorf("failed to drive %s: %w", l.name, err)
	}
	return nil
}

// Name returns the port and line name
func (l *Line) Name() string {
	return l.name
}

// NewTimer returns the busy-wait timer used with the serial backend
func NewTimer() em4100.Timer {
	return rt.NewTimer()
}
