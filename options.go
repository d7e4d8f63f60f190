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
	"log/slog"
)

// Option is a functional option for configuring a Scheduler
type Option func(*Scheduler) error

// WithSweepConfig sets the burst and sweep parameters
func WithSweepConfig(config *SweepConfig) Option {
	return func(s *Scheduler) error {
		if config == nil {
			return ErrInvalidParameter
		}
		if err := config.Validate(); err != nil {
			return fmt.Errorf("invalid sweep config: %w", err)
		}
		s.sweep = config.Clone()
		return nil
	}
}

// WithStatusPin sets the indicator toggled as the sweep progresses
func WithStatusPin(pin Pin) Option {
	return func(s *Scheduler) error {
		s.statusPin = pin
		return nil
	}
}

// WithErrorPin sets the indicator lit when no valid card is selected
func WithErrorPin(pin Pin) Option {
	return func(s *Scheduler) error {
		s.errorPin = pin
		return nil
	}
}

// WithLogger sets the logger for scheduler lifecycle messages
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) error {
		if logger == nil {
			return ErrInvalidParameter
		}
		s.log = logger.With("service", "scheduler")
		return nil
	}
}
