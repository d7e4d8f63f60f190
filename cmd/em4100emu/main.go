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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	em4100 "github.com/ZaparooProject/go-em4100"
	"github.com/ZaparooProject/go-em4100/internal/rt"
	"github.com/ZaparooProject/go-em4100/transport/periph"
	"github.com/ZaparooProject/go-em4100/transport/uart"
	"github.com/lmittmann/tint"
)

type config struct {
	tagsPath   *string
	tag        *string
	encode     *string
	backend    *string
	coilPins   *string
	statusPin  *string
	errorPin   *string
	selectPins *string
	port       *string
	card       *int
	cpu        *int
	debug      *bool
	listPorts  *bool
}

func parseFlags(args []string) (*config, error) {
	fs := flag.NewFlagSet("em4100emu", flag.ContinueOnError)
	cfg := &config{
		tagsPath: fs.String("tags", "", "YAML card table file (cards: [{tag: hex, label: text}])"),
		tag:      fs.String("tag", "", "Single hex tag to emulate instead of a card table"),
		encode:   fs.String("encode", "", "Print the frame for a hex tag and exit"),
		backend:  fs.String("backend", string(em4100.BackendPeriph), "Output backend: periph or uart"),
		coilPins: fs.String("coil", "GPIO18",
			"Comma-separated coil GPIO names (periph backend)"),
		statusPin:  fs.String("status", "", "Status indicator GPIO name (periph backend)"),
		errorPin:   fs.String("error", "", "Error indicator GPIO name (periph backend)"),
		selectPins: fs.String("select", "", "Comma-separated selector GPIO names, least significant first"),
		port:       fs.String("port", "", "Serial device for the uart backend (e.g. /dev/ttyUSB0 or COM3)"),
		card:       fs.Int("card", 0, "Card table index when no selector pins are given"),
		cpu:        fs.Int("cpu", -1, "Pin the transmit thread to this CPU (linux, -1 to disable)"),
		debug:      fs.Bool("debug", false, "Enable debug output"),
		listPorts:  fs.Bool("list-ports", false, "List serial ports and exit"),
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
	slog.SetDefault(logger)
	em4100.SetLogger(logger)
	em4100.SetDebugEnabled(debug)
}

// splitNames splits a comma-separated pin list, dropping empty entries
func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func loadCards(cfg *config) (em4100.CardTable, error) {
	switch {
	case *cfg.tagsPath != "":
		data, err := os.ReadFile(*cfg.tagsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read card table: %w", err)
		}
		return em4100.ParseCardTable(data)
	case *cfg.tag != "":
		tag, err := em4100.ParseTag(*cfg.tag)
		if err != nil {
			return nil, err
		}
		return em4100.CardTable{{Tag: tag, Label: "command line"}}, nil
	default:
		return nil, errors.New("either -tags or -tag is required")
	}
}

// hardware is the set of outputs and inputs the scheduler is wired to
type hardware struct {
	timer    em4100.Timer
	selector em4100.Selector
	status   em4100.Pin
	errorPin em4100.Pin
	close    func() error
	coil     []em4100.Pin
}

func openPeriph(cfg *config) (*hardware, error) {
	if err := periph.Open(); err != nil {
		return nil, err
	}

	hw := &hardware{
		timer:    periph.NewTimer(),
		selector: em4100.FixedSelector(*cfg.card),
		close:    func() error { return nil },
	}

	names := splitNames(*cfg.coilPins)
	if len(names) == 0 {
		return nil, em4100.ErrNoCoilPins
	}
	for _, name := range names {
		pin, err := periph.OpenPin(name, em4100.Detuned.Level())
		if err != nil {
			return nil, err
		}
		hw.coil = append(hw.coil, pin)
	}

	if *cfg.statusPin != "" {
		pin, err := periph.OpenPin(*cfg.statusPin, em4100.Low)
		if err != nil {
			return nil, err
		}
		hw.status = pin
	}
	if *cfg.errorPin != "" {
		pin, err := periph.OpenPin(*cfg.errorPin, em4100.Low)
		if err != nil {
			return nil, err
		}
		hw.errorPin = pin
	}

	if names := splitNames(*cfg.selectPins); len(names) > 0 {
		sel, err := periph.OpenSelector(names...)
		if err != nil {
			return nil, err
		}
		hw.selector = sel
	}
	return hw, nil
}

func openUART(cfg *config) (*hardware, error) {
	if *cfg.port == "" {
		return nil, errors.New("-port is required for the uart backend")
	}
	transport, err := uart.New(*cfg.port)
	if err != nil {
		return nil, err
	}
	return &hardware{
		timer:    uart.NewTimer(),
		selector: em4100.FixedSelector(*cfg.card),
		coil:     []em4100.Pin{transport.RTS()},
		status:   transport.DTR(),
		close:    transport.Close,
	}, nil
}

func openHardware(cfg *config) (*hardware, error) {
	switch em4100.BackendType(strings.ToLower(*cfg.backend)) {
	case em4100.BackendPeriph:
		return openPeriph(cfg)
	case em4100.BackendUART:
		return openUART(cfg)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", *cfg.backend)
	}
}

func buildScheduler(hw *hardware, cards em4100.CardTable) (*em4100.Scheduler, error) {
	driver, err := em4100.NewCoilDriver(hw.timer, hw.coil...)
	if err != nil {
		return nil, fmt.Errorf("failed to create coil driver: %w", err)
	}

	opts := []em4100.Option{em4100.WithLogger(slog.Default())}
	if hw.status != nil {
		opts = append(opts, em4100.WithStatusPin(hw.status))
	}
	if hw.errorPin != nil {
		opts = append(opts, em4100.WithErrorPin(hw.errorPin))
	}
	return em4100.NewScheduler(driver, hw.selector, cards, opts...)
}

func printPorts() error {
	ports, err := uart.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		_, _ = fmt.Println("No serial ports found")
	}
	for _, p := range ports {
		_, _ = fmt.Println(p)
	}
	return nil
}

func printFrame(s string) error {
	tag, err := em4100.ParseTag(s)
	if err != nil {
		return err
	}
	f := em4100.EncodeFrame(tag)
	_, _ = fmt.Printf("tag   %s (version %02X, id %d)\nframe %s\n", tag, tag.Version(), tag.ID(), f)
	return nil
}

// transmit runs the scheduler on a locked, optionally pinned thread until ctx
// is done. An idle scheduler holds its error indicator until ctx is done.
func transmit(ctx context.Context, sched *em4100.Scheduler, cpu int) error {
	release, err := rt.Prepare(cpu)
	if err != nil {
		slog.Warn("running without CPU pinning", "error", err)
		if release, err = rt.Prepare(-1); err != nil {
			return err
		}
	}
	defer release()

	err = sched.Run(ctx)
	if sched.State() == em4100.StateIdle {
		slog.Error("halted: reset required", "error", err)
		<-ctx.Done()
		return err
	}
	if errors.Is(err, context.Canceled) {
		slog.Info("stopped", "frames", sched.Frames(), "cycles", sched.Cycles())
		return nil
	}
	return err
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}
	setupLogging(*cfg.debug)

	if *cfg.listPorts {
		return printPorts()
	}
	if *cfg.encode != "" {
		return printFrame(*cfg.encode)
	}

	cards, err := loadCards(cfg)
	if err != nil {
		return err
	}

	hw, err := openHardware(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s backend: %w", *cfg.backend, err)
	}
	defer func() { _ = hw.close() }()

	sched, err := buildScheduler(hw, cards)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("transmitting", "backend", *cfg.backend, "cards", len(cards))
	return transmit(ctx, sched, *cfg.cpu)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "em4100emu: %v\n", err)
		os.Exit(1)
	}
}
