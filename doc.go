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

/*
Package em4100 emulates 125 kHz EM4100 proximity cards by load-modulating an
inductive coil from GPIO.

A reader's field induces a carrier in the emulator's coil. Switching the coil
between tuned (loaded) and detuned (unloaded) with Manchester timing makes the
reader see a card. The package encodes the 40-bit card identifier into the
64-bit parity-protected frame and drives the coil pins from a countdown timer,
cycling half-cycle periods and both polarities so readers with different clock
tolerances lock on.

Basic Usage:

	import (
	    "github.com/ZaparooProject/go-em4100"
	    "github.com/ZaparooProject/go-em4100/transport/periph"
	)

	if err := periph.Open(); err != nil {
	    log.Fatal(err)
	}
	coil, err := periph.OpenPin("GPIO18", em4100.High)
	if err != nil {
	    log.Fatal(err)
	}

	driver, err := em4100.NewCoilDriver(periph.NewTimer(), coil)
	if err != nil {
	    log.Fatal(err)
	}

	cards := em4100.CardTable{{Tag: 0x0600001259, Label: "front door"}}
	sched, err := em4100.NewScheduler(driver, em4100.FixedSelector(0), cards)
	if err != nil {
	    log.Fatal(err)
	}

	// Run blocks, transmitting until ctx is done
	err = sched.Run(ctx)

Frame Layout:

Bits are sent from 63 down to 0:
  - 63-55: nine 1s (preamble)
  - 54-5: ten rows of one tag nibble followed by its even parity bit
  - 4-1: even parity of each nibble column
  - 0: stop bit, always 0

Backends:

  - transport/periph: host GPIO lines and DIP switch selector through periph.io
  - transport/uart: RTS/DTR modem lines of a USB-serial adapter

Error Handling:

A selector value outside the card table is fatal and leaves the scheduler
idle with its error indicator lit:

	if errors.Is(err, em4100.ErrInvalidCardSelection) {
	    // Needs a reset with a valid selection
	}

Thread Safety:

CoilDriver and Scheduler are not thread-safe and own their pins and timer
while running. Nothing else may drive the same lines concurrently.
*/
package em4100
