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
	"strconv"
	"strings"

	"github.com/ZaparooProject/go-em4100/internal/frame"
)

// Tag is a 40-bit EM4100 card identifier. Bits above bit 39 are ignored.
type Tag uint64

// Version returns the leading customer/version byte of the tag
func (t Tag) Version() uint8 {
	return uint8((uint64(t) & frame.DataMask) >> 32)
}

// ID returns the low 32 bits of the tag, the number usually printed on cards
func (t Tag) ID() uint32 {
	return uint32(t)
}

// String formats the tag as 10 hex digits
func (t Tag) String() string {
	return fmt.Sprintf("%010X", uint64(t)&frame.DataMask)
}

// ParseTag parses a tag from up to 10 hex digits with an optional 0x prefix
func ParseTag(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" || len(s) > frame.DataBits/4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTag, s)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidTag, s, err)
	}
	return Tag(v), nil
}

// Frame is a 64-bit EM4100 bitstream, transmitted from bit 63 down to bit 0
type Frame uint64

// EncodeFrame builds the framed bitstream for a tag: nine preamble 1s, ten rows of
// a data nibble plus even parity, four column parity bits and a 0 stop bit.
func EncodeFrame(tag Tag) Frame {
	out := frame.PreambleMask
	var cols [frame.Columns]uint64

	for i := frame.Rows - 1; i >= 0; i-- {
		row := (uint64(tag) >> uint(frame.RowBits*i)) & frame.NibbleMask
		out |= row << frame.RowDataShift(i)
		out |= frame.Parity(row, frame.RowBits) << frame.RowParityShift(i)
		for c := range cols {
			cols[c] |= frame.ColumnBit(row, c) << uint(i)
		}
	}
	for c, col := range cols {
		out |= frame.Parity(col, frame.ColumnWidth) << frame.ColumnParityShift(c)
	}

	return Frame(out)
}

// Bit returns bit i of the frame (0 or 1)
func (f Frame) Bit(i int) uint64 {
	return (uint64(f) >> uint(i)) & 1
}

// Row returns the data nibble of row i (0 is the least significant nibble)
func (f Frame) Row(i int) uint64 {
	return (uint64(f) >> frame.RowDataShift(i)) & frame.NibbleMask
}

// Tag extracts the 40 data bits carried by the frame
func (f Frame) Tag() Tag {
	var tag uint64
	for i := 0; i < frame.Rows; i++ {
		tag |= f.Row(i) << uint(frame.RowBits*i)
	}
	return Tag(tag)
}

// Validate recomputes the preamble, stop bit and every row and column parity bit
func (f Frame) Validate() error {
	if uint64(f)&frame.PreambleMask != frame.PreambleMask {
		return &FrameError{Check: CheckPreamble, Index: -1}
	}

	var cols [frame.Columns]uint64
	for i := frame.Rows - 1; i >= 0; i-- {
		row := f.Row(i)
		if frame.Parity(row, frame.RowBits) != f.Bit(int(frame.RowParityShift(i))) {
			return &FrameError{Check: CheckRowParity, Index: i}
		}
		for c := range cols {
			cols[c] ^= frame.ColumnBit(row, c)
		}
	}
	for c, parity := range cols {
		if parity != f.Bit(int(frame.ColumnParityShift(c))) {
			return &FrameError{Check: CheckColumnParity, Index: c}
		}
	}

	if f.Bit(frame.StopBit) != 0 {
		return &FrameError{Check: CheckStopBit, Index: -1}
	}
	return nil
}

// String formats the frame as 16 hex digits
func (f Frame) String() string {
	return fmt.Sprintf("%016X", uint64(f))
}
