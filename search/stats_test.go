// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"testing"

	. "github.com/harrier-engine/harrier/board"
)

func TestAddBonusSaturatesAtHistoryMax(t *testing.T) {
	v := int16(0)
	for i := 0; i < 10000; i++ {
		v = addBonus(v, historyMax)
	}
	if int32(v) != historyMax {
		t.Errorf("repeated maximal bonus should saturate at historyMax, got %d", v)
	}
}

func TestAddBonusSaturatesAtNegativeHistoryMax(t *testing.T) {
	v := int16(0)
	for i := 0; i < 10000; i++ {
		v = addBonus(v, -historyMax)
	}
	if int32(v) != -historyMax {
		t.Errorf("repeated minimal bonus should saturate at -historyMax, got %d", v)
	}
}

func TestAddBonusMovesTowardsTarget(t *testing.T) {
	got := addBonus(0, 100)
	if got <= 0 {
		t.Errorf("addBonus(0, 100) = %d, want positive", got)
	}
	got2 := addBonus(got, -100)
	if got2 >= got {
		t.Errorf("a negative bonus should move the value back down: got %d after %d", got2, got)
	}
}

func TestButterflyUpdateAndRead(t *testing.T) {
	s := NewStats()
	m := NewMove(E2, E4)
	if s.Butterfly(White, m) != 0 {
		t.Fatalf("fresh stats should start at zero")
	}
	s.UpdateButterfly(White, m, 1000)
	if got := s.Butterfly(White, m); got <= 0 {
		t.Errorf("Butterfly after a positive update = %d, want positive", got)
	}
}

func TestKillersSlotsAreDistinctAndOrdered(t *testing.T) {
	s := NewStats()
	m1 := NewMove(E2, E4)
	m2 := NewMove(D2, D4)

	s.AddKiller(3, m1)
	s.AddKiller(3, m2)

	killers := s.Killers(3)
	if killers[0] != m2 {
		t.Errorf("most recently added killer should be in slot 0: got %v, want %v", killers[0], m2)
	}
	if killers[1] != m1 {
		t.Errorf("previous killer should shift into slot 1: got %v, want %v", killers[1], m1)
	}
}

func TestAddKillerIgnoresDuplicate(t *testing.T) {
	s := NewStats()
	m := NewMove(E2, E4)
	s.AddKiller(3, m)
	s.AddKiller(3, m)
	killers := s.Killers(3)
	if killers[0] != m || killers[1] == m {
		t.Errorf("adding the same killer twice should not duplicate it: got %v", killers)
	}
}

func TestCounterMoveRoundTrip(t *testing.T) {
	s := NewStats()
	prevPi := ColorFigure(Black, Knight)
	prevTo := F6
	m := NewMove(E2, E4)

	if got := s.CounterMove(prevPi, prevTo); got != NoMove {
		t.Fatalf("fresh stats should have no counter move")
	}
	s.SetCounterMove(prevPi, prevTo, m)
	if got := s.CounterMove(prevPi, prevTo); got != m {
		t.Errorf("CounterMove = %v, want %v", got, m)
	}
}

func TestContinuationScoreSumsEveryTrackedOffset(t *testing.T) {
	s := NewStats()
	pi := ColorFigure(White, Pawn)

	var prev [numContOffsets]ContinuationPair
	for i := range prev {
		prev[i] = ContinuationPair{Piece: ColorFigure(Black, Knight), To: Square(int(F6) + i)}
	}

	if got := s.ContinuationScore(prev, pi, E4); got != 0 {
		t.Fatalf("fresh stats should score 0, got %d", got)
	}
	s.UpdateContinuationHistory(prev, false, pi, E4, 500)

	total := s.ContinuationScore(prev, pi, E4)
	if total <= 0 {
		t.Fatalf("ContinuationScore after update = %d, want positive", total)
	}

	// Each offset's entry is independent: zeroing out one offset's slot
	// (by asking about a move it was never updated for) must not zero
	// the total contributed by the others.
	prev[0].To = NoSquare
	if got := s.ContinuationScore(prev, pi, E4); got >= total {
		t.Errorf("clearing one offset's context should lower the total score: got %d, want < %d", got, total)
	}
}

func TestUpdateContinuationHistorySkipsDeepOffsetsInCheck(t *testing.T) {
	s := NewStats()
	pi := ColorFigure(White, Pawn)

	var prev [numContOffsets]ContinuationPair
	for i := range prev {
		prev[i] = ContinuationPair{Piece: ColorFigure(Black, Knight), To: Square(int(F6) + i)}
	}

	s.UpdateContinuationHistory(prev, true, pi, E4, 500)
	for i, off := range contOffsets {
		got := s.continuationAt(i, prev[i].Piece, prev[i].To, pi, E4)
		if off == 4 || off == 6 {
			if got != 0 {
				t.Errorf("offset -%d should be skipped when in check, got score %d", off, got)
			}
		} else if got <= 0 {
			t.Errorf("offset -%d should have been updated, got score %d", off, got)
		}
	}
}

func TestContinuationScoreIgnoresMissingHistory(t *testing.T) {
	s := NewStats()
	pi := ColorFigure(White, Pawn)

	var prev [numContOffsets]ContinuationPair
	for i := range prev {
		prev[i] = ContinuationPair{Piece: NoPiece, To: NoSquare}
	}
	if got := s.ContinuationScore(prev, pi, E4); got != 0 {
		t.Errorf("ContinuationScore with no history = %d, want 0", got)
	}
}

func TestClearResetsEverything(t *testing.T) {
	s := NewStats()
	m := NewMove(E2, E4)
	s.UpdateButterfly(White, m, 1000)
	s.AddKiller(3, m)
	s.Clear()

	if got := s.Butterfly(White, m); got != 0 {
		t.Errorf("Butterfly after Clear = %d, want 0", got)
	}
	if killers := s.Killers(3); killers[0] != NoMove || killers[1] != NoMove {
		t.Errorf("Killers after Clear = %v, want [NoMove NoMove]", killers)
	}
}
