// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"time"

	. "github.com/harrier-engine/harrier/board"
)

// Limits bounds a search, mirroring the fields a UCI "go" command can
// set (spec.md §6.4). A zero Limits means "search until Stop".
type Limits struct {
	Depth     int           // stop once this depth completes; 0 = unbounded
	Nodes     uint64        // stop after this many nodes; 0 = unbounded
	MoveTime  time.Duration // fixed think time for this move; 0 = unset
	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MovesToGo int // moves remaining to the next time control; 0 = unknown
	Infinite  bool
	Mate      int // search for mate in this many moves; 0 = unset
}

// TimeLeft returns the clock and increment for c.
func (l Limits) TimeLeft(c Color) (time.Duration, time.Duration) {
	if c == White {
		return l.WhiteTime, l.WhiteInc
	}
	return l.BlackTime, l.BlackInc
}
