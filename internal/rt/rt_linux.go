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

//go:build linux

package rt

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// highPriority is the nice value requested for the transmitting thread
const highPriority = -10

// Prepare locks the calling goroutine to its OS thread, optionally pins that
// thread to cpu (cpu < 0 leaves affinity alone) and raises its priority.
// Failing to raise priority is not an error: it needs CAP_SYS_NICE. The
// returned release func undoes the affinity change and unlocks the thread.
func Prepare(cpu int) (func(), error) {
	runtime.LockOSThread()
	tid := unix.Gettid()

	var prev unix.CPUSet
	pinned := false
	if cpu >= 0 {
		if err := unix.SchedGetaffinity(tid, &prev); err != nil {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("failed to read CPU affinity: %w", err)
		}
		var set unix.CPUSet
		set.Zero()
		set.Set(cpu)
		if err := unix.SchedSetaffinity(tid, &set); err != nil {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("failed to pin thread to CPU %d: %w", cpu, err)
		}
		pinned = true
	}

	_ = unix.Setpriority(unix.PRIO_PROCESS, tid, highPriority)

	return func() {
		if pinned {
			_ = unix.SchedSetaffinity(tid, &prev)
		}
		runtime.UnlockOSThread()
	}, nil
}
