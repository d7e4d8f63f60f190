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

package frame

// Parity returns the even parity bit of the width least significant bits of word:
// 1 when an odd number of those bits are set, otherwise 0.
func Parity(word uint64, width int) uint64 {
	var parity uint64
	for i := 0; i < width; i++ {
		parity ^= (word >> uint(i)) & 1
	}
	return parity
}

// ColumnBit returns bit (3-c) of a row nibble, the bit that column c collects
func ColumnBit(row uint64, c int) uint64 {
	return (row >> uint(RowBits-1-c)) & 1
}
