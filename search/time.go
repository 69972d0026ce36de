// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// time.go implements move-time allocation, grounded on the teacher's
// engine/time_control.go (TimeControl, branch-factor heuristic,
// atomicFlag-style deadline), extended with the falling-eval and
// PV-instability feedback factors spec.md §4.6 step 4 names.
package search

import (
	"sync/atomic"
	"time"

	. "github.com/harrier-engine/harrier/board"
)

// TimeManager computes and enforces a soft/hard deadline for the
// current move.
type TimeManager struct {
	start    time.Time
	soft     time.Duration
	hard     time.Duration
	deadline atomic.Int64 // unix nanos; 0 means "no deadline"
}

// NewTimeManager allocates a budget from limits for the side to move.
// The base allocation follows the teacher's branch-factor heuristic
// (assume movesToGo remaining, or a fixed horizon when sudden death):
// soft = clock/horizon + increment, hard = 4x soft capped by the clock.
func NewTimeManager(limits Limits, us Color, start time.Time, overhead time.Duration) *TimeManager {
	tm := &TimeManager{start: start}
	if limits.MoveTime > 0 {
		tm.soft = limits.MoveTime - overhead
		if tm.soft < 0 {
			tm.soft = 0
		}
		tm.hard = tm.soft
		tm.arm()
		return tm
	}
	if limits.Infinite || limits.Depth > 0 && limits.WhiteTime == 0 && limits.BlackTime == 0 {
		return tm // no deadline: Depth/Nodes/Infinite limits stop the search instead
	}

	clock, inc := limits.TimeLeft(us)
	horizon := limits.MovesToGo
	if horizon <= 0 {
		horizon = 30
	}
	soft := clock/time.Duration(horizon) + inc
	hard := soft * 4
	if hard > clock-overhead {
		hard = clock - overhead
	}
	if hard < soft {
		hard = soft
	}
	if hard < 0 {
		hard = 0
	}
	tm.soft, tm.hard = soft, hard
	tm.arm()
	return tm
}

func (tm *TimeManager) arm() {
	tm.deadline.Store(tm.start.Add(tm.hard).UnixNano())
}

// Elapsed returns time spent searching so far.
func (tm *TimeManager) Elapsed() time.Duration { return time.Since(tm.start) }

// HardExpired reports whether the hard deadline has passed.
func (tm *TimeManager) HardExpired() bool {
	d := tm.deadline.Load()
	return d != 0 && time.Now().UnixNano() >= d
}

// ShouldStartIteration reports whether there is enough of the soft
// budget left to be worth starting another iterative-deepening
// iteration, given how much deeper iterations tend to cost (the
// teacher's branch-factor assumption: roughly 2x the previous
// iteration's time).
func (tm *TimeManager) ShouldStartIteration(lastIterationCost time.Duration) bool {
	if tm.soft == 0 {
		return true
	}
	return tm.Elapsed()+2*lastIterationCost < tm.soft
}

// Extend grows the soft budget in response to PV instability or a
// falling evaluation across iterations (spec.md §4.6 step 4): factor
// should be >1 to extend, <=1 to leave the budget alone.
func (tm *TimeManager) Extend(factor float64) {
	if factor <= 1 {
		return
	}
	extended := time.Duration(float64(tm.soft) * factor)
	if extended > tm.hard {
		extended = tm.hard
	}
	tm.soft = extended
}

func (p *Pool) timeUp() bool {
	if p.timeMgr == nil {
		return false
	}
	return p.timeMgr.HardExpired()
}
