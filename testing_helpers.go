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
	"sync"
	"time"
)

// MockPin is an in-memory Pin that records every level written to it
type MockPin struct {
	err       error
	name      string
	history   []Level
	mu        sync.Mutex
	failAfter int
	level     Level
}

// NewMockPin creates a mock pin starting Low
func NewMockPin(name string) *MockPin {
	return &MockPin{name: name, failAfter: -1}
}

// Set records the level, or fails once the configured number of writes is reached
func (m *MockPin) Set(level Level) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAfter >= 0 && len(m.history) >= m.failAfter {
		return m.err
	}
	m.level = level
	m.history = append(m.history, level)
	return nil
}

// Name returns the pin name
func (m *MockPin) Name() string {
	return m.name
}

// Level returns the last level written
func (m *MockPin) Level() Level {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

// History returns a copy of every level written, oldest first
func (m *MockPin) History() []Level {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Level(nil), m.history...)
}

// Writes returns the number of successful writes
func (m *MockPin) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// FailAfter makes every write after the first n return err
func (m *MockPin) FailAfter(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		err = errors.New("mock pin failure")
	}
	m.failAfter = n
	m.err = err
}

// SimTimer is a Timer on a simulated monotonic clock. Start advances the clock by
// the armed duration, so Done is true on the first poll.
type SimTimer struct {
	onStart   func(d time.Duration)
	durations []time.Duration
	mu        sync.Mutex
	elapsed   time.Duration
	polls     int
}

// NewSimTimer creates a simulated timer at time zero
func NewSimTimer() *SimTimer {
	return &SimTimer{}
}

// Start records d and advances the simulated clock
func (s *SimTimer) Start(d time.Duration) {
	s.mu.Lock()
	s.durations = append(s.durations, d)
	s.elapsed += d
	onStart := s.onStart
	s.mu.Unlock()

	if onStart != nil {
		onStart(d)
	}
}

// Done always reports completion
func (s *SimTimer) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	return true
}

// OnStart registers a hook run after every Start, outside the timer lock
func (s *SimTimer) OnStart(fn func(d time.Duration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStart = fn
}

// Waits returns the number of times the timer was started
func (s *SimTimer) Waits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.durations)
}

// Durations returns every armed duration, oldest first
func (s *SimTimer) Durations() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.durations...)
}

// Polls returns the number of Done calls
func (s *SimTimer) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

// Elapsed returns the simulated time spent waiting
func (s *SimTimer) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Reset clears the recorded waits and the clock
func (s *SimTimer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.durations = nil
	s.elapsed = 0
	s.polls = 0
}

// StaticSelector is a Selector returning a fixed value or error
type StaticSelector struct {
	Err   error
	Value int
	reads int
}

// Read returns the configured value
func (s *StaticSelector) Read() (int, error) {
	s.reads++
	return s.Value, s.Err
}

// Reads returns the number of times the selector was read
func (s *StaticSelector) Reads() int {
	return s.reads
}
