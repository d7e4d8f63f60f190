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
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// State is the scheduler lifecycle state
type State int

const (
	// StateStopped is the state before the card has been selected
	StateStopped State = iota
	// StateIdle is terminal: selection failed, the error indicator is lit and
	// nothing is transmitted until the process is restarted
	StateIdle
	// StateTransmitting cycles the cached frame through the sweep forever
	StateTransmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTransmitting:
		return "transmitting"
	default:
		return "stopped"
	}
}

// Scheduler selects a card once, caches its frame and transmits it in a
// perpetual sweep of half-cycle periods and polarities.
//
// Thread Safety: Scheduler is NOT thread-safe. Run must be called from a single
// goroutine and nothing else may drive its pins or timer while it runs.
type Scheduler struct {
	coil      *CoilDriver
	selector  Selector
	statusPin Pin
	errorPin  Pin
	log       *slog.Logger
	sweep     *SweepConfig
	err       error
	card      Card
	cards     CardTable
	frame     Frame
	frames    uint64
	cycles    uint64
	state     State
	status    Level
}

// NewScheduler creates a scheduler that will present one card from cards,
// chosen by selector, on coil
func NewScheduler(coil *CoilDriver, selector Selector, cards CardTable, opts ...Option) (*Scheduler, error) {
	if coil == nil || selector == nil {
		return nil, fmt.Errorf("%w: coil driver and selector are required", ErrInvalidParameter)
	}

	s := &Scheduler{
		coil:     coil,
		selector: selector,
		cards:    append(CardTable(nil), cards...),
		sweep:    DefaultSweepConfig(),
		log:      slog.Default().With("service", "scheduler"),
		state:    StateStopped,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// State returns the current lifecycle state
func (s *Scheduler) State() State {
	return s.state
}

// Card returns the selected card; valid once the scheduler is transmitting
func (s *Scheduler) Card() Card {
	return s.card
}

// Frame returns the cached frame; valid once the scheduler is transmitting
func (s *Scheduler) Frame() Frame {
	return s.frame
}

// Frames returns the number of frames transmitted so far
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Cycles returns the number of completed burst+sweep cycles
func (s *Scheduler) Cycles() uint64 {
	return s.cycles
}

// SweepConfig returns a copy of the sweep configuration
func (s *Scheduler) SweepConfig() *SweepConfig {
	return s.sweep.Clone()
}

// Start reads the selector once and either caches the selected card's frame and
// enters StateTransmitting, or lights the error indicator and enters the
// terminal StateIdle. Calling Start again returns the outcome of the first call.
func (s *Scheduler) Start() error {
	if s.state != StateStopped {
		return s.err
	}

	value, err := s.selector.Read()
	if err != nil {
		return s.enterIdle(fmt.Errorf("failed to read card selector: %w", err))
	}

	card, err := s.cards.Select(value)
	if err != nil {
		return s.enterIdle(err)
	}

	s.card = card
	s.frame = EncodeFrame(card.Tag)
	s.state = StateTransmitting
	s.log.Info("card selected",
		"index", value,
		"label", card.Label,
		"tag", card.Tag.String(),
		"frame", s.frame.String())
	return nil
}

func (s *Scheduler) enterIdle(cause error) error {
	s.state = StateIdle
	s.err = cause
	s.log.Error("no card to transmit, halting", "error", cause)

	if s.errorPin != nil {
		if err := s.errorPin.Set(High); err != nil {
			s.err = errors.Join(cause, NewPinError("set error indicator", s.errorPin.Name(), err))
		}
	}
	return s.err
}

// Run selects the card if needed and then transmits forever. It returns the
// selection error if the scheduler is idle, a pin error from the hardware layer,
// or ctx.Err() once ctx is done. The context is checked between frames only; a
// frame in flight always completes.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	for {
		if err := s.RunCycle(ctx); err != nil {
			return err
		}
	}
}

// RunCycle transmits one burst+sweep cycle of the cached frame
func (s *Scheduler) RunCycle(ctx context.Context) error {
	if s.state != StateTransmitting {
		if s.err != nil {
			return s.err
		}
		return fmt.Errorf("%w: scheduler not started", ErrInvalidParameter)
	}

	if err := s.setStatus(High); err != nil {
		return err
	}

	for _, pass := range s.sweep.Plan() {
		debugf("pass %s x%d", pass.Params, pass.Repeats)
		for i := 0; i < pass.Repeats; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.coil.TransmitFrame(s.frame, pass.Params); err != nil {
				return fmt.Errorf("failed to transmit frame at %s: %w", pass.Params, err)
			}
			s.frames++
		}
		if pass.ToggleStatus {
			if err := s.setStatus(!s.status); err != nil {
				return err
			}
		}
	}

	s.cycles++
	s.log.Debug("cycle complete", "cycles", s.cycles, "frames", s.frames)
	return nil
}

func (s *Scheduler) setStatus(level Level) error {
	s.status = level
	if s.statusPin == nil {
		return nil
	}
	if err := s.statusPin.Set(level); err != nil {
		return NewPinError("set status indicator", s.statusPin.Name(), err)
	}
	return nil
}
