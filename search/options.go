// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"time"

	. "github.com/harrier-engine/harrier/board"
)

// Options configures a Driver, mirroring the UCI options a front end
// exposes (spec.md §6.4). The teacher's own Options struct
// (engine/engine.go) only carried a handful of these; MultiPV,
// SkillLevel, MoveOverhead and Ponder are supplemented here because
// zurichess/uci.go already declares UCI options for them that the old
// Options struct never wired up.
type Options struct {
	// Threads is the number of search workers in the pool.
	Threads int
	// HashSizeMB sizes the shared transposition table.
	HashSizeMB int
	// MultiPV is the number of principal variations to report.
	MultiPV int
	// SkillLevel in [0,20] weakens play by randomizing among the top
	// candidates; -1 disables skill-level play entirely (full strength).
	SkillLevel int
	// MoveOverhead reserves a slice of the clock for engine-external
	// latency (GUI/network round trip) so the hard deadline never
	// actually touches zero.
	MoveOverhead time.Duration
	// Ponder allows the driver to keep searching after finding its best
	// move, on the assumption the opponent plays as predicted.
	Ponder bool
	// OnInfo, if set, is called with a UCI-style info line after each
	// PV line an iteration completes.
	OnInfo func(Info)
}

// Info is one progress report emitted by a Driver during search,
// matching the fields a UCI "info" line carries.
type Info struct {
	Depth    int
	SelDepth int
	MultiPV  int
	Score    int32
	Nodes    uint64
	NPS      uint64
	HashFull int
	PV       []Move
}

// DefaultOptions returns the options a new Driver uses when none are
// supplied.
func DefaultOptions() Options {
	return Options{
		Threads:      1,
		HashSizeMB:   64,
		MultiPV:      1,
		SkillLevel:   -1,
		MoveOverhead: 30 * time.Millisecond,
	}
}
