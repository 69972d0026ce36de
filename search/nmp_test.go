// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"testing"

	. "github.com/harrier-engine/harrier/board"
)

// TestNMPMinPlyGuardIsPerSide exercises the per-side nmpMinPly guard
// directly: raising the guard for White must not affect Black's ability
// to attempt null-move pruning at the same ply, and restoring the
// previous value must undo the raise exactly (spec.md §4's "per-side
// nmpMinPly guard to forbid recursive nested verification").
func TestNMPMinPlyGuardIsPerSide(t *testing.T) {
	tt := NewTT(1)
	pool := NewPool(1, tt, func(*Position) int32 { return 0 })
	w := pool.workers[0]

	if w.nmpMinPly[White] != 0 || w.nmpMinPly[Black] != 0 {
		t.Fatalf("a fresh worker should start with no guard raised: %v", w.nmpMinPly)
	}

	const ply = 5
	prevGuard := w.nmpMinPly[White]
	w.nmpMinPly[White] = ply + 1

	if ply >= w.nmpMinPly[White] {
		t.Errorf("null-move pruning should be disabled for White at ply %d once the guard is raised to %d", ply, w.nmpMinPly[White])
	}
	if ply < w.nmpMinPly[Black] {
		t.Errorf("raising White's guard must not affect Black's")
	}

	w.nmpMinPly[White] = prevGuard
	if ply < w.nmpMinPly[White] {
		t.Errorf("restoring the guard should re-enable null-move pruning for White at ply %d", ply)
	}
}
