// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "testing"

func TestThreadMarkerFirstClaimSucceeds(t *testing.T) {
	tm := NewThreadMarker()
	if !tm.TryMark(0x1234, 3) {
		t.Fatalf("first TryMark on an empty table should succeed")
	}
}

func TestThreadMarkerSecondClaimFails(t *testing.T) {
	tm := NewThreadMarker()
	tm.TryMark(0x1234, 3)
	if tm.TryMark(0x1234, 3) {
		t.Errorf("a (key, ply) already marked should report TryMark = false")
	}
}

func TestThreadMarkerDistinctPlySameKeyAreIndependent(t *testing.T) {
	tm := NewThreadMarker()
	if !tm.TryMark(0x1234, 3) {
		t.Fatalf("claiming ply 3 should succeed")
	}
	if !tm.TryMark(0x1234, 4) {
		t.Errorf("the same key at a different ply is a different slot and should still claim")
	}
}

func TestThreadMarkerUnmarkAllowsReclaim(t *testing.T) {
	tm := NewThreadMarker()
	tm.TryMark(0x1234, 3)
	tm.Unmark(0x1234, 3)
	if !tm.TryMark(0x1234, 3) {
		t.Errorf("after Unmark, the same (key, ply) should be claimable again")
	}
}

func TestThreadMarkerUnmarkOfUnrelatedTagIsNoop(t *testing.T) {
	tm := NewThreadMarker()
	tm.TryMark(0x1234, 3)
	// Unmarking a different (key, ply) that never claimed the slot must
	// not clear the real owner's mark.
	tm.Unmark(0x5678, 9)
	if tm.TryMark(0x1234, 3) {
		t.Errorf("an unrelated Unmark cleared a mark it doesn't own")
	}
}
