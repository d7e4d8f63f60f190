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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSweepConfig_Periods(t *testing.T) {
	t.Parallel()

	periods := DefaultSweepConfig().Periods()
	require.Len(t, periods, 17)
	for i, d := range periods {
		assert.Equal(t, time.Duration(240+2*i)*time.Microsecond, d)
	}
	assert.Equal(t, 272*time.Microsecond, periods[len(periods)-1])
}

func TestDefaultSweepConfig_Plan(t *testing.T) {
	t.Parallel()

	cfg := DefaultSweepConfig()
	plan := cfg.Plan()
	require.Len(t, plan, 2+2*17)

	assert.Equal(t, Pass{
		Params:       Params{HalfCycle: 256 * time.Microsecond, Polarity: Normal},
		Repeats:      20,
		ToggleStatus: true,
	}, plan[0])
	assert.Equal(t, Pass{
		Params:  Params{HalfCycle: 256 * time.Microsecond, Polarity: Inverted},
		Repeats: 20,
	}, plan[1])

	seen := map[time.Duration][]Polarity{}
	for i, pass := range plan[2:] {
		assert.Equal(t, 5, pass.Repeats)
		assert.Equal(t, i%2 == 1, pass.ToggleStatus, "status toggles after each period step")
		seen[pass.Params.HalfCycle] = append(seen[pass.Params.HalfCycle], pass.Params.Polarity)
	}
	require.Len(t, seen, 17)
	for d, pols := range seen {
		assert.Equal(t, []Polarity{Normal, Inverted}, pols, "period %v", d)
	}

	assert.Equal(t, 2*20+17*2*5, cfg.FramesPerCycle())
}

func TestSweepConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mutate  func(*SweepConfig)
		name    string
		wantErr bool
	}{
		{name: "Default", mutate: func(*SweepConfig) {}},
		{name: "Single_Period", mutate: func(c *SweepConfig) { c.MaxHalfCycle = c.MinHalfCycle }},
		{name: "Zero_Step", mutate: func(c *SweepConfig) { c.Step = 0 }, wantErr: true},
		{name: "Negative_Nominal", mutate: func(c *SweepConfig) { c.NominalHalfCycle = -time.Microsecond }, wantErr: true},
		{name: "Sub_Microsecond", mutate: func(c *SweepConfig) { c.MinHalfCycle = 240500 * time.Nanosecond }, wantErr: true},
		{name: "Max_Below_Min", mutate: func(c *SweepConfig) { c.MaxHalfCycle = 200 * time.Microsecond }, wantErr: true},
		{name: "Negative_Repeats", mutate: func(c *SweepConfig) { c.SweepRepeats = -1 }, wantErr: true},
		{name: "No_Frames", mutate: func(c *SweepConfig) { c.BurstRepeats, c.SweepRepeats = 0, 0 }, wantErr: true},
		{name: "Burst_Only", mutate: func(c *SweepConfig) { c.SweepRepeats = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultSweepConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSweepConfig_Clone(t *testing.T) {
	t.Parallel()

	orig := DefaultSweepConfig()
	clone := orig.Clone()
	clone.Step = 4 * time.Microsecond

	assert.Equal(t, 2*time.Microsecond, orig.Step)
	assert.Len(t, clone.Periods(), 9)
}
