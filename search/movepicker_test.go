// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"testing"

	. "github.com/harrier-engine/harrier/board"
)

// noContinuation is an empty continuation-history context, standing in
// for "no previous moves" (e.g. a fresh root) in tests that don't care
// about continuation-history scoring.
var noContinuation = func() (p [numContOffsets]ContinuationPair) {
	for i := range p {
		p[i] = ContinuationPair{Piece: NoPiece, To: NoSquare}
	}
	return p
}()

func TestMovePickerReturnsTTMoveFirst(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	ttMove := NewMove(E2, E4)
	mp := NewMovePicker(pos, NewStats(), 0, ttMove, noContinuation)

	if first := mp.Next(); first != ttMove {
		t.Fatalf("first move returned = %v, want TT move %v", first, ttMove)
	}
}

func TestMovePickerNeverRepeatsTheTTMove(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	ttMove := NewMove(E2, E4)
	mp := NewMovePicker(pos, NewStats(), 0, ttMove, noContinuation)

	seen := 0
	for m := mp.Next(); m != NoMove; m = mp.Next() {
		if m == ttMove {
			seen++
		}
	}
	if seen != 0 {
		t.Errorf("TT move was returned %d more time(s) after the first, want 0", seen)
	}
}

func TestMovePickerExhaustsToStartPosLegalMoves(t *testing.T) {
	pos, err := PositionFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	legal := pos.GenerateLegalMoves(All, nil)
	want := map[Move]bool{}
	for _, m := range legal {
		want[m] = true
	}

	mp := NewMovePicker(pos, NewStats(), 0, NoMove, noContinuation)
	got := map[Move]bool{}
	for m := mp.Next(); m != NoMove; m = mp.Next() {
		if got[m] {
			t.Fatalf("move %v returned more than once", m)
		}
		got[m] = true
	}

	if len(got) != len(want) {
		t.Fatalf("picker returned %d moves, want %d", len(got), len(want))
	}
	for m := range want {
		if !got[m] {
			t.Errorf("picker never returned legal move %v", m)
		}
	}
}

func TestMovePickerCapturesBeforeQuiets(t *testing.T) {
	// White to move, a pawn can capture a knight on d5; everything else
	// is a quiet pawn/knight push. The capture should come out of the
	// picker before any quiet move.
	pos, err := PositionFromFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	capture := NewMove(E4, D5)

	mp := NewMovePicker(pos, NewStats(), 0, NoMove, noContinuation)
	first := mp.Next()
	if first != capture {
		t.Errorf("first move = %v, want the capture %v", first, capture)
	}
}

func TestMovePickerEvasionsOnlyLegalWhenInCheck(t *testing.T) {
	// Black king in check from a rook on e-file; every returned move
	// must actually escape check.
	pos, err := PositionFromFEN("4k3/8/8/8/8/8/8/4R1K1 b - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	if !pos.IsChecked(Black) {
		t.Fatalf("test position should have black in check")
	}

	mp := NewMovePicker(pos, NewStats(), 0, NoMove, noContinuation)
	count := 0
	for m := mp.Next(); m != NoMove; m = mp.Next() {
		if !pos.IsLegal(m) {
			t.Errorf("evasion move %v is not actually legal", m)
		}
		count++
	}
	if count == 0 {
		t.Errorf("king should have at least one legal evasion")
	}
}

func TestQMovePickerOnlyReturnsCaptures(t *testing.T) {
	pos, err := PositionFromFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	mp := NewQMovePicker(pos, NoMove)
	count := 0
	for m := mp.Next(); m != NoMove; m = mp.Next() {
		if pos.Get(m.To()) == NoPiece && m.Type() != Enpassant {
			t.Errorf("quiescence picker returned a non-capture move %v", m)
		}
		count++
	}
	if count != 1 {
		t.Errorf("expected exactly one capture in this position, got %d", count)
	}
}
