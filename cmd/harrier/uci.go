// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// uci implements the UCI protocol
// (http://wbec-ridderkerk.nl/html/UCIProtocol.html) on top of
// search.Driver, adapted from zurichess/uci.go: the command dispatch,
// idle/ponder channel handshake and regex-based option parsing all keep
// the teacher's shape, but the engine underneath is a Driver with
// multi-PV, skill-level and pondering support the teacher's own Engine
// never had despite its UCI layer advertising the options for them.
package main

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	. "github.com/harrier-engine/harrier/board"
	"github.com/harrier-engine/harrier/internal/telemetry"
	"github.com/harrier-engine/harrier/search"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
)

var errQuit = errors.New("quit")

const (
	maxMultiPV    = 16
	maxSkillLevel = 20
)

// uciLogger adapts a logr.Logger into search.Logger, formatting each
// search.Info as a UCI "info" line. search never imports logr directly
// (spec.md §7); this adaptation lives in cmd/harrier per SPEC_FULL.md
// §1.1.
type uciLogger struct {
	log   logr.Logger
	start time.Time
}

func (ul *uciLogger) BeginSearch() { ul.start = time.Now() }
func (ul *uciLogger) EndSearch()   {}

func (ul *uciLogger) PrintPV(info search.Info) {
	elapsed := time.Since(ul.start)
	if elapsed <= 0 {
		elapsed = time.Microsecond
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d seldepth %d multipv %d score %s nodes %d time %d nps %d hashfull %d",
		info.Depth, info.SelDepth, info.MultiPV, search.FormatUCIScore(info.Score),
		info.Nodes, elapsed.Milliseconds(), info.NPS, info.HashFull)
	sb.WriteString(" pv")
	for _, m := range info.PV {
		sb.WriteByte(' ')
		sb.WriteString(m.UCI())
	}
	ul.log.Info(sb.String())

	// A human-readable companion line: GUIs parse the numeric "info"
	// line above, but an operator watching the log reads this one.
	fmt.Printf("info string %s nodes, %s/s, hash %s%%\n",
		humanize.Comma(int64(info.Nodes)), humanize.Comma(int64(info.NPS)), humanize.Ftoa(float64(info.HashFull)/10))
}

// harrierUCI holds the state of one UCI session: the engine's options,
// the current position and an idle/ponder handshake matching the
// teacher's uci.go concurrency model (a "go" command runs the search on
// its own goroutine; every other command waits for it to become idle
// first).
type harrierUCI struct {
	driver *search.Driver
	opts   search.Options
	logger logr.Logger
	report *telemetry.Reporter

	pos *Position

	// buffer of 1; filled while a search goroutine is running.
	idle chan struct{}
	// buffer of 1; filled while pondering.
	ponder chan struct{}

	limits search.Limits
}

func newHarrierUCI(log logr.Logger) *harrierUCI {
	opts := search.DefaultOptions()
	u := &harrierUCI{
		opts:   opts,
		logger: log,
		idle:   make(chan struct{}, 1),
		ponder: make(chan struct{}, 1),
	}

	if r, err := telemetry.NewReporter("harrier"); err != nil {
		log.Info("telemetry disabled", "error", err.Error())
	} else {
		u.report = r
	}

	opts.OnInfo = u.onInfo
	u.opts = opts
	u.driver = search.NewDriver(opts, evaluate)
	u.driver.SetLogger(&uciLogger{log: log})
	pos, _ := PositionFromFEN(FENStartPos)
	u.pos = pos
	return u
}

// onInfo forwards a completed search.Info snapshot to the OTel
// reporter, feeding whatever MeterProvider the process was configured
// with (a no-op until one is installed). It is wired as Options.OnInfo
// so every iteration reported to the UCI log is also reported here.
func (u *harrierUCI) onInfo(info search.Info) {
	if u.report == nil {
		return
	}
	u.report.Observe(context.Background(), info.Depth, info.SelDepth, info.HashFull,
		info.Score, info.Nodes, info.NPS)
}

var reCmd = regexp.MustCompile(`^[[:word:]]+\b`)

func (u *harrierUCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	cmd := reCmd.FindString(line)
	if cmd == "" {
		return fmt.Errorf("invalid command line")
	}

	switch cmd {
	case "isready":
		return u.isready(line)
	case "quit":
		return errQuit
	case "stop":
		return u.stop(line)
	case "uci":
		return u.uci(line)
	case "ponderhit":
		return u.ponderhit(line)
	}

	// Everything else waits for the search goroutine to finish first.
	u.idle <- struct{}{}
	<-u.idle

	switch cmd {
	case "ucinewgame":
		return u.ucinewgame(line)
	case "position":
		return u.position(line)
	case "go":
		return u.goCmd(line)
	case "setoption":
		return u.setoption(line)
	default:
		return fmt.Errorf("unhandled command %s", cmd)
	}
}

func (u *harrierUCI) uci(line string) error {
	fmt.Printf("id name harrier %v\n", buildVersion)
	fmt.Printf("id author the harrier authors\n")
	fmt.Println()
	fmt.Printf("option name Hash type spin default %v min 1 max 65536\n", search.DefaultOptions().HashSizeMB)
	fmt.Printf("option name Threads type spin default %v min 1 max 512\n", search.DefaultOptions().Threads)
	fmt.Printf("option name MultiPV type spin default %d min 1 max %d\n", u.opts.MultiPV, maxMultiPV)
	fmt.Printf("option name Skill Level type spin default %d min 0 max %d\n", maxSkillLevel, maxSkillLevel)
	fmt.Printf("option name Move Overhead type spin default %d min 0 max 5000\n", u.opts.MoveOverhead.Milliseconds())
	fmt.Printf("option name Ponder type check default false\n")
	fmt.Println("uciok")
	return nil
}

func (u *harrierUCI) isready(line string) error {
	fmt.Println("readyok")
	return nil
}

func (u *harrierUCI) ucinewgame(line string) error {
	u.driver.TT().Clear()
	return nil
}

func (u *harrierUCI) position(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos *Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos, err = PositionFromFEN(FENStartPos)
		i = 1
	case "fen":
		for i = 1; i < len(args) && args[i] != "moves"; i++ {
		}
		pos, err = PositionFromFEN(strings.Join(args[1:i], " "))
	default:
		err = fmt.Errorf("unknown position command: %s", args[0])
	}
	if err != nil {
		return err
	}

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got '%s'", args[i])
		}
		for _, ms := range args[i+1:] {
			m, err := pos.MoveFromUCI(ms)
			if err != nil {
				return err
			}
			pos.DoMove(m)
		}
	}

	u.pos = pos
	return nil
}

var validGoCommands = map[string]bool{
	"searchmoves": true,
	"ponder":      true,
	"wtime":       true,
	"btime":       true,
	"winc":        true,
	"binc":        true,
	"movestogo":   true,
	"depth":       true,
	"nodes":       true,
	"mate":        true,
	"movetime":    true,
	"infinite":    true,
}

func (u *harrierUCI) goCmd(line string) error {
	var limits search.Limits
	ponder := false

	args := strings.Fields(line)[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "searchmoves":
			for i+1 < len(args) && !validGoCommands[args[i+1]] {
				i++
			}
		case "ponder":
			ponder = true
		case "infinite":
			limits.Infinite = true
		case "wtime":
			i++
			t, _ := strconv.Atoi(args[i])
			limits.WhiteTime = time.Duration(t) * time.Millisecond
		case "winc":
			i++
			t, _ := strconv.Atoi(args[i])
			limits.WhiteInc = time.Duration(t) * time.Millisecond
		case "btime":
			i++
			t, _ := strconv.Atoi(args[i])
			limits.BlackTime = time.Duration(t) * time.Millisecond
		case "binc":
			i++
			t, _ := strconv.Atoi(args[i])
			limits.BlackInc = time.Duration(t) * time.Millisecond
		case "movestogo":
			i++
			t, _ := strconv.Atoi(args[i])
			limits.MovesToGo = t
		case "movetime":
			i++
			t, _ := strconv.Atoi(args[i])
			limits.MoveTime = time.Duration(t) * time.Millisecond
		case "depth":
			i++
			d, _ := strconv.Atoi(args[i])
			limits.Depth = d
		case "nodes":
			i++
			n, _ := strconv.ParseUint(args[i], 10, 64)
			limits.Nodes = n
		case "mate":
			i++
			m, _ := strconv.Atoi(args[i])
			limits.Mate = m
		default:
			return fmt.Errorf("invalid go command %s", args[i])
		}
	}

	u.limits = limits
	if ponder {
		u.ponder <- struct{}{}
	}

	u.idle <- struct{}{}
	go u.play(u.pos.Clone())
	return nil
}

func (u *harrierUCI) ponderhit(line string) error {
	select {
	case <-u.ponder:
	default:
	}
	return nil
}

func (u *harrierUCI) stop(line string) error {
	u.driver.Stop()
	select {
	case <-u.ponder:
	default:
	}
	u.idle <- struct{}{}
	<-u.idle
	return nil
}

// play runs the search on its own goroutine so Execute returns
// immediately for "go", matching the teacher's concurrency model.
func (u *harrierUCI) play(pos *Position) {
	if u.report != nil {
		u.report.ResetMove()
	}
	best, ponder := u.driver.Search(context.Background(), pos, u.limits)

	// If pondering was requested it will block here until ponderhit or
	// stop drains the channel.
	u.ponder <- struct{}{}
	<-u.ponder

	if best == NoMove {
		fmt.Printf("bestmove (none)\n")
	} else if ponder == NoMove {
		fmt.Printf("bestmove %v\n", best.UCI())
	} else {
		fmt.Printf("bestmove %v ponder %v\n", best.UCI(), ponder.UCI())
	}

	<-u.idle
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (u *harrierUCI) setoption(line string) error {
	option := reOption.FindStringSubmatch(line)
	if option == nil {
		return fmt.Errorf("invalid setoption arguments")
	}

	switch option[1] {
	case "Clear Hash":
		u.driver.TT().Clear()
		return nil
	}

	if len(option) < 3 {
		return fmt.Errorf("missing setoption value")
	}
	switch option[1] {
	case "Hash":
		if v, err := strconv.Atoi(option[3]); err == nil {
			u.opts.HashSizeMB = clampOption(v, 1, 65536)
			fmt.Printf("info string Hash set to %s\n", humanize.Bytes(uint64(u.opts.HashSizeMB)*1<<20))
		}
	case "Threads":
		if v, err := strconv.Atoi(option[3]); err == nil {
			u.opts.Threads = clampOption(v, 1, 512)
		}
	case "MultiPV":
		if v, err := strconv.Atoi(option[3]); err == nil {
			u.opts.MultiPV = clampOption(v, 1, maxMultiPV)
		}
	case "Skill Level":
		if v, err := strconv.Atoi(option[3]); err == nil {
			u.opts.SkillLevel = clampOption(v, 0, maxSkillLevel)
		}
	case "Move Overhead":
		if v, err := strconv.Atoi(option[3]); err == nil {
			u.opts.MoveOverhead = time.Duration(clampOption(v, 0, 5000)) * time.Millisecond
		}
	case "Ponder":
		if v, err := strconv.ParseBool(option[3]); err == nil {
			u.opts.Ponder = v
		}
	default:
		return fmt.Errorf("unhandled option %s", option[1])
	}
	u.driver.SetOptions(u.opts)
	return nil
}

// clampOption keeps an out-of-range UCI option inside [lo,hi] instead of
// erroring, per SPEC_FULL.md §1.3.
func clampOption(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
