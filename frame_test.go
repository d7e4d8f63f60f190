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
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTags returns a deterministic spread of 40-bit tags including the edges
func sampleTags(n int) []Tag {
	rng := rand.New(rand.NewPCG(0x125, 0x4100))
	tags := []Tag{0, 1, 0xFFFFFFFFFF, 0x8000000000, 0x0600001259, 0x0123456789}
	for len(tags) < n {
		tags = append(tags, Tag(rng.Uint64()&0xFFFFFFFFFF))
	}
	return tags
}

func TestEncodeFrame_KnownVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tag  Tag
		want Frame
	}{
		{name: "Zero_Tag", tag: 0, want: 0xFF80000000000000},
		{name: "Lowest_Bit", tag: 0x1, want: 0xFF80000000000062},
		{name: "All_Ones", tag: 0xFFFFFFFFFF, want: 0xFFFBDEF7BDEF7BC0},
		{name: "Printed_Card", tag: 0x0600001259, want: 0xFF8180000032AA52},
		{name: "Counting_Nibbles", tag: 0x0123456789, want: 0xFF80653254C7C642},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, EncodeFrame(tt.tag), "got %s", EncodeFrame(tt.tag))
		})
	}
}

func TestEncodeFrame_PreambleAndStopBit(t *testing.T) {
	t.Parallel()

	for _, tag := range sampleTags(500) {
		f := EncodeFrame(tag)
		require.Equal(t, uint64(0x1FF), uint64(f)>>55, "preamble for tag %s", tag)
		require.Zero(t, f.Bit(0), "stop bit for tag %s", tag)
	}
}

func TestEncodeFrame_RowParity(t *testing.T) {
	t.Parallel()

	for _, tag := range sampleTags(500) {
		f := EncodeFrame(tag)
		for i := 0; i < 10; i++ {
			ones := 0
			for b := 5*i + 6; b <= 5*i+9; b++ {
				ones += int(f.Bit(b))
			}
			require.Equal(t, uint64(ones%2), f.Bit(5*i+5), "row %d of tag %s", i, tag)
		}
	}
}

func TestEncodeFrame_ColumnParity(t *testing.T) {
	t.Parallel()

	for _, tag := range sampleTags(500) {
		f := EncodeFrame(tag)
		for c := 0; c < 4; c++ {
			var x uint64
			for i := 0; i < 10; i++ {
				x ^= (f.Row(i) >> uint(3-c)) & 1
			}
			require.Equal(t, x, f.Bit(4-c), "column %d of tag %s", c, tag)
		}
	}
}

func TestEncodeFrame_IgnoresHighBits(t *testing.T) {
	t.Parallel()

	for _, tag := range sampleTags(200) {
		noisy := tag | Tag(0xABCDE)<<40
		assert.Equal(t, EncodeFrame(tag), EncodeFrame(noisy), "tag %s", tag)
		assert.Equal(t, EncodeFrame(tag), EncodeFrame(tag), "deterministic for %s", tag)
	}
}

func TestFrame_TagRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tag := range sampleTags(200) {
		f := EncodeFrame(tag)
		assert.Equal(t, tag, f.Tag())
		require.NoError(t, f.Validate())
	}
}

func TestFrame_Validate(t *testing.T) {
	t.Parallel()

	good := EncodeFrame(0x0600001259)

	tests := []struct {
		name  string
		check FrameCheck
		frame Frame
		index int
	}{
		{name: "Missing_Preamble_Bit", frame: good &^ (1 << 60), check: CheckPreamble, index: -1},
		{name: "Flipped_Data_Bit_Row_0", frame: good ^ (1 << 6), check: CheckRowParity, index: 0},
		{name: "Flipped_Row_Parity_9", frame: good ^ (1 << 50), check: CheckRowParity, index: 9},
		{name: "Flipped_Column_Parity_0", frame: good ^ (1 << 4), check: CheckColumnParity, index: 0},
		{name: "Flipped_Column_Parity_3", frame: good ^ (1 << 1), check: CheckColumnParity, index: 3},
		{name: "Stop_Bit_Set", frame: good | 1, check: CheckStopBit, index: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.frame.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFrameCorrupted)

			var frameErr *FrameError
			require.True(t, errors.As(err, &frameErr))
			assert.Equal(t, tt.check, frameErr.Check)
			assert.Equal(t, tt.index, frameErr.Index)
		})
	}
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Tag
		wantErr bool
	}{
		{name: "Plain_Hex", input: "0600001259", want: 0x0600001259},
		{name: "Prefixed", input: "0x0A1B2C3D4E", want: 0x0A1B2C3D4E},
		{name: "Upper_Prefix_Lower_Digits", input: "0Xabcdef", want: 0xABCDEF},
		{name: "Surrounding_Space", input: "  ff  ", want: 0xFF},
		{name: "Empty", input: "", wantErr: true},
		{name: "Too_Long", input: "0123456789A", wantErr: true},
		{name: "Not_Hex", input: "12345G", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTag(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTag)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTag_Fields(t *testing.T) {
	t.Parallel()

	tag := Tag(0x0600001259)
	assert.Equal(t, uint8(0x06), tag.Version())
	assert.Equal(t, uint32(0x00001259), tag.ID())
	assert.Equal(t, "0600001259", tag.String())
	assert.Equal(t, "FF8180000032AA52", EncodeFrame(tag).String())
	assert.Equal(t, "FFFFFFFFFF", (Tag(0xFFFFFFFFFF) | 1<<50).String())
}
