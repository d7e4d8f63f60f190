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
)

// SweepConfig describes one transmission cycle: a confidence burst at the nominal
// half-cycle period followed by a tolerance sweep across neighbouring periods.
type SweepConfig struct {
	// NominalHalfCycle is the burst period (32 carrier cycles at 125 kHz)
	NominalHalfCycle time.Duration
	// MinHalfCycle and MaxHalfCycle bound the sweep, both inclusive
	MinHalfCycle time.Duration
	MaxHalfCycle time.Duration
	// Step is the increment between swept periods
	Step time.Duration
	// BurstRepeats is the number of frames per polarity in the burst
	BurstRepeats int
	// SweepRepeats is the number of frames per polarity at each swept period
	SweepRepeats int
}

// DefaultSweepConfig returns the sweep used by the emulator firmware
func DefaultSweepConfig() *SweepConfig {
	return &SweepConfig{
		NominalHalfCycle: 256 * time.Microsecond,
		MinHalfCycle:     240 * time.Microsecond,
		MaxHalfCycle:     272 * time.Microsecond,
		Step:             2 * time.Microsecond,
		BurstRepeats:     20,
		SweepRepeats:     5,
	}
}

// Validate checks if the configuration is valid
func (c *SweepConfig) Validate() error {
	for _, d := range []time.Duration{c.NominalHalfCycle, c.MinHalfCycle, c.MaxHalfCycle, c.Step} {
		if d <= 0 || d%time.Microsecond != 0 {
			return fmt.Errorf("%w: period %v must be a positive whole number of microseconds",
				ErrInvalidParameter, d)
		}
	}

	if c.MaxHalfCycle < c.MinHalfCycle {
		return fmt.Errorf("%w: sweep max %v below min %v", ErrInvalidParameter, c.MaxHalfCycle, c.MinHalfCycle)
	}

	if c.BurstRepeats < 0 || c.SweepRepeats < 0 {
		return fmt.Errorf("%w: negative repeat count", ErrInvalidParameter)
	}

	if c.BurstRepeats == 0 && c.SweepRepeats == 0 {
		return fmt.Errorf("%w: cycle transmits no frames", ErrInvalidParameter)
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *SweepConfig) Clone() *SweepConfig {
	clone := *c
	return &clone
}

// Periods returns the swept half-cycle periods in order, Min to Max inclusive
func (c *SweepConfig) Periods() []time.Duration {
	if c.Step <= 0 || c.MaxHalfCycle < c.MinHalfCycle {
		return nil
	}
	periods := make([]time.Duration, 0, int((c.MaxHalfCycle-c.MinHalfCycle)/c.Step)+1)
	for d := c.MinHalfCycle; d <= c.MaxHalfCycle; d += c.Step {
		periods = append(periods, d)
	}
	return periods
}

// Pass is a run of identical frame transmissions
type Pass struct {
	Params  Params
	Repeats int
	// ToggleStatus flips the status indicator once the pass completes
	ToggleStatus bool
}

// Plan returns the passes of one cycle in transmission order. The burst sends
// Normal then Inverted at the nominal period with a status toggle between them;
// the sweep sends Normal then Inverted at each period and toggles after each.
func (c *SweepConfig) Plan() []Pass {
	periods := c.Periods()
	plan := make([]Pass, 0, 2+2*len(periods))

	plan = append(plan,
		Pass{
			Params:       Params{HalfCycle: c.NominalHalfCycle, Polarity: Normal},
			Repeats:      c.BurstRepeats,
			ToggleStatus: true,
		},
		Pass{
			Params:  Params{HalfCycle: c.NominalHalfCycle, Polarity: Inverted},
			Repeats: c.BurstRepeats,
		},
	)

	for _, d := range periods {
		plan = append(plan,
			Pass{
				Params:  Params{HalfCycle: d, Polarity: Normal},
				Repeats: c.SweepRepeats,
			},
			Pass{
				Params:       Params{HalfCycle: d, Polarity: Inverted},
				Repeats:      c.SweepRepeats,
				ToggleStatus: true,
			},
		)
	}

	return plan
}

// FramesPerCycle returns the number of frames one cycle transmits
func (c *SweepConfig) FramesPerCycle() int {
	total := 0
	for _, p := range c.Plan() {
		total += p.Repeats
	}
	return total
}
