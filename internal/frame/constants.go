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

// Package frame provides the EM4100 bit layout constants and parity helpers
package frame

// Frame geometry
const (
	Bits        = 64 // Total frame length in bits
	DataBits    = 40 // Card identifier bits carried by a frame
	Rows        = 10 // Number of data nibbles
	RowBits     = 4  // Data bits per row
	RowStride   = 5  // Row bits plus row parity
	Columns     = 4  // Column parity bits
	PreambleLen = 9  // Leading 1 bits
)

// Bit positions and masks (bit 63 is transmitted first)
const (
	PreambleMask  = uint64(0xFF80000000000000) // Bits 63-55
	StopBit       = 0
	RowDataOffset = 6 // Row i data lives at bits [5i+6 .. 5i+9]
	RowParityBase = 5 // Row i parity lives at bit 5i+5
	DataMask      = uint64(1)<<DataBits - 1
	NibbleMask    = uint64(0x0F)
	ColumnWidth   = Rows // Each column accumulator holds one bit per row
)

// RowDataShift returns the shift of row i's data nibble within a frame
func RowDataShift(i int) uint {
	return uint(RowStride*i + RowDataOffset)
}

// RowParityShift returns the position of row i's parity bit within a frame
func RowParityShift(i int) uint {
	return uint(RowStride*i + RowParityBase)
}

// ColumnParityShift returns the position of column c's parity bit (c = 0 is the nibble MSB)
func ColumnParityShift(c int) uint {
	return uint(Columns - c)
}
