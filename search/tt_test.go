// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"testing"

	. "github.com/harrier-engine/harrier/board"
)

func TestTTProbeMiss(t *testing.T) {
	tt := NewTT(1)
	if _, _, _, _, _, _, found := tt.Probe(0x1234); found {
		t.Errorf("Probe on an empty table should miss")
	}
}

func TestTTSaveProbeRoundTrip(t *testing.T) {
	tt := NewTT(1)
	key := uint64(0xdeadbeef)
	move := NewMove(E2, E4)

	tt.Save(key, move, 123, 45, 7, BoundExact, true)

	gotMove, gotScore, gotEval, gotDepth, gotBound, gotPV, found := tt.Probe(key)
	if !found {
		t.Fatalf("Probe after Save should hit")
	}
	if gotMove != move || gotScore != 123 || gotEval != 45 || gotDepth != 7 || gotBound != BoundExact || !gotPV {
		t.Errorf("Probe(%#x) = (%v, %d, %d, %d, %v, %v), want (%v, 123, 45, 7, BoundExact, true)",
			key, gotMove, gotScore, gotEval, gotDepth, gotBound, gotPV, move)
	}
}

func TestTTKeyCollisionRejected(t *testing.T) {
	tt := NewTT(1)
	// A 1MB table holds 32768 clusters (32-byte clusters), so the
	// index mask is the low 15 bits of the key while the verification
	// tag (key16) is the low 16 bits: two keys that share bits 0-14 but
	// differ in bit 15 land in the same cluster with different tags.
	key1 := uint64(0x0001)
	key2 := uint64(0x8001)

	tt.Save(key1, NewMove(E2, E4), 10, 10, 3, BoundExact, false)
	if _, _, _, _, _, _, found := tt.Probe(key2); found {
		t.Errorf("Probe(key2) should miss: only key1 was stored and key1/key2 differ in their verification tag")
	}
}

func TestTTClearRemovesEntries(t *testing.T) {
	tt := NewTT(1)
	key := uint64(0x55)
	tt.Save(key, NewMove(E2, E4), 1, 1, 1, BoundExact, false)
	tt.Clear()
	if _, _, _, _, _, _, found := tt.Probe(key); found {
		t.Errorf("Probe after Clear should miss")
	}
}

func TestTTSaveRefreshesMoveWhenNoMoveGiven(t *testing.T) {
	tt := NewTT(1)
	key := uint64(0x77)
	move := NewMove(E2, E4)

	tt.Save(key, move, 50, 50, 4, BoundExact, false)
	// A second save with NoMove (e.g. a static-eval-only store) should
	// keep the previously stored best move instead of clobbering it.
	tt.Save(key, NoMove, 60, 60, 4, BoundExact, false)

	gotMove, _, _, _, _, _, found := tt.Probe(key)
	if !found {
		t.Fatalf("Probe should hit after the second Save")
	}
	if gotMove != move {
		t.Errorf("Save(NoMove) should preserve the previous move: got %v, want %v", gotMove, move)
	}
}

func TestTTNewSearchAgesEntriesButKeepsThem(t *testing.T) {
	tt := NewTT(1)
	key := uint64(0x99)
	move := NewMove(E2, E4)
	tt.Save(key, move, 10, 10, 2, BoundExact, false)

	tt.NewSearch()

	gotMove, _, _, _, _, _, found := tt.Probe(key)
	if !found || gotMove != move {
		t.Errorf("entries should survive NewSearch (aging, not eviction): found=%v move=%v", found, gotMove)
	}
}

func TestTTHashfullEmptyIsZero(t *testing.T) {
	tt := NewTT(1)
	if full := tt.Hashfull(); full != 0 {
		t.Errorf("Hashfull() on an empty table = %d, want 0", full)
	}
}

func TestTTHashfullIncreasesWithSaves(t *testing.T) {
	tt := NewTT(1)
	for i := uint64(0); i < 100; i++ {
		tt.Save(i, NewMove(E2, E4), 1, 1, 1, BoundExact, false)
	}
	if full := tt.Hashfull(); full <= 0 {
		t.Errorf("Hashfull() after saves = %d, want > 0", full)
	}
}
