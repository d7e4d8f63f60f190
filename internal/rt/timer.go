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

// Package rt provides the host-side real-time helpers used while a frame is
// being transmitted: a busy-wait countdown timer on the monotonic clock and
// thread pinning to keep the waits steady.
package rt

import "time"

// Timer is a countdown timer polled against the monotonic clock. It never sleeps,
// so the goroutine keeps its CPU for the whole wait.
type Timer struct {
	now      func() time.Time
	deadline time.Time
}

// NewTimer creates a timer on the process monotonic clock
func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Start arms the timer for d from now
func (t *Timer) Start(d time.Duration) {
	t.deadline = t.now().Add(d)
}

// Done reports whether the armed duration has elapsed
func (t *Timer) Done() bool {
	return !t.now().Before(t.deadline)
}
