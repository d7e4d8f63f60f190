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

package uart

import (
	"errors"
	"testing"
	"time"

	em4100 "github.com/ZaparooProject/go-em4100"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

// fakePort records modem line changes; other serial.Port methods are unused
type fakePort struct {
	serial.Port
	err    error
	rts    []bool
	dtr    []bool
	closed bool
}

func (f *fakePort) SetRTS(rts bool) error {
	if f.err != nil {
		return f.err
	}
	f.rts = append(f.rts, rts)
	return nil
}

func (f *fakePort) SetDTR(dtr bool) error {
	if f.err != nil {
		return f.err
	}
	f.dtr = append(f.dtr, dtr)
	return nil
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

// TestTransportCreation verifies basic transport creation and properties
func TestTransportCreation(t *testing.T) {
	t.Parallel()

	testPortName := "/dev/ttyUSB0"
	transport := &Transport{
		portName: testPortName,
	}

	// Verify port name is stored correctly
	if transport.portName != testPortName {
		t.Errorf("Expected port name %s, got %s", testPortName, transport.portName)
	}

	// Verify transport type
	expectedType := em4100.BackendUART
	if transport.Type() != expectedType {
		t.Errorf("Expected transport type %v, got %v", expectedType, transport.Type())
	}

	// Verify IsConnected returns false for uninitialized transport
	if transport.IsConnected() {
		t.Error("Expected IsConnected() to return false for uninitialized transport")
	}

	// Writes on a closed transport fail as pin errors
	if err := transport.RTS().Set(em4100.High); !errors.Is(err, em4100.ErrPinWrite) {
		t.Errorf("Expected ErrPinWrite, got %v", err)
	}
}

func TestLine_ActiveLow(t *testing.T) {
	t.Parallel()

	port := &fakePort{}
	transport := &Transport{port: port, portName: "/dev/ttyUSB0"}

	rts := transport.RTS()
	require.NoError(t, rts.Set(em4100.Tuned.Level()))
	require.NoError(t, rts.Set(em4100.Detuned.Level()))
	assert.Equal(t, []bool{true, false}, port.rts)
	assert.Equal(t, "/dev/ttyUSB0:RTS", rts.Name())

	require.NoError(t, transport.DTR().Set(em4100.High))
	assert.Equal(t, []bool{false}, port.dtr)
}

func TestLine_DrivesCoil(t *testing.T) {
	t.Parallel()

	port := &fakePort{}
	transport := &Transport{port: port, portName: "COM3"}
	timer := em4100.NewSimTimer()

	driver, err := em4100.NewCoilDriver(timer, transport.RTS())
	require.NoError(t, err)
	require.NoError(t, driver.TransmitFrame(em4100.EncodeFrame(0),
		em4100.Params{HalfCycle: 256 * time.Microsecond, Polarity: em4100.Inverted}))

	require.Len(t, port.rts, 128)
	// Preamble 1 bits, inverted: first half detuned (released), second tuned (asserted).
	assert.False(t, port.rts[0])
	assert.True(t, port.rts[1])
}

func TestLine_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("ioctl failed")
	transport := &Transport{port: &fakePort{err: cause}, portName: "/dev/ttyACM0"}

	err := transport.DTR().Set(em4100.High)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/dev/ttyACM0:DTR")
}

func TestTransport_Close(t *testing.T) {
	t.Parallel()

	port := &fakePort{}
	transport := &Transport{port: port, portName: "/dev/ttyUSB0"}
	assert.True(t, transport.IsConnected())

	require.NoError(t, transport.Close())
	assert.True(t, port.closed)
	assert.False(t, transport.IsConnected())
	require.NoError(t, transport.Close())
}
