// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"context"
	"testing"

	. "github.com/harrier-engine/harrier/board"
)

// materialValue is a tiny, search-package-local evaluator used only by
// these tests: search treats eval as opaque (spec.md §6.2), so a crude
// piece count is enough to drive the mate-finding and move-ordering
// machinery under test without depending on the real eval package.
var materialValue = [FigureArraySize]int32{0, 100, 320, 330, 500, 900, 0}

func materialEval(pos *Position) int32 {
	var score int32
	for f := Pawn; f <= King; f++ {
		score += int32(pos.ByPiece(White, f).Popcnt()) * materialValue[f]
		score -= int32(pos.ByPiece(Black, f).Popcnt()) * materialValue[f]
	}
	if pos.ActiveSide() == Black {
		return -score
	}
	return score
}

func TestDriverFindsMateInOne(t *testing.T) {
	pos, err := PositionFromFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	driver := NewDriver(DefaultOptions(), materialEval)
	best, _ := driver.Search(context.Background(), pos, Limits{Depth: 3})

	want := NewMove(A1, A8)
	if best != want {
		t.Errorf("best move = %v, want %v (Ra8#)", best, want)
	}
}

func TestDriverReportsMateScore(t *testing.T) {
	pos, err := PositionFromFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	var lastScore int32
	opts := DefaultOptions()
	opts.OnInfo = func(info Info) { lastScore = info.Score }
	driver := NewDriver(opts, materialEval)
	driver.Search(context.Background(), pos, Limits{Depth: 3})

	if !IsMateScore(lastScore) || lastScore <= 0 {
		t.Errorf("final info score = %d, want a positive mate score", lastScore)
	}
}

func TestDriverNoLegalMovesReturnsNoMove(t *testing.T) {
	// Checkmated position: black to move, no legal replies.
	pos, err := PositionFromFEN("r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4")
	if err != nil {
		t.Fatalf("PositionFromFEN: %v", err)
	}
	driver := NewDriver(DefaultOptions(), materialEval)
	best, ponder := driver.Search(context.Background(), pos, Limits{Depth: 3})
	if best != NoMove || ponder != NoMove {
		t.Errorf("Search on a mated position = (%v, %v), want (NoMove, NoMove)", best, ponder)
	}
}

func TestPickBySkillDisabledAlwaysReturnsBestLine(t *testing.T) {
	d := NewDriver(DefaultOptions(), materialEval)
	legal := []Move{NewMove(E2, E4), NewMove(D2, D4)}
	lines := []pvResult{
		{score: 100, pv: []Move{legal[0]}},
		{score: 50, pv: []Move{legal[1]}},
	}
	if got := d.pickBySkill(legal, lines); got != legal[0] {
		t.Errorf("pickBySkill with SkillLevel=-1 = %v, want the best line %v", got, legal[0])
	}
}

func TestPickBySkillMaxLevelAlwaysReturnsBestLine(t *testing.T) {
	opts := DefaultOptions()
	opts.SkillLevel = 20
	d := NewDriver(opts, materialEval)
	legal := []Move{NewMove(E2, E4), NewMove(D2, D4)}
	lines := []pvResult{
		{score: 100, pv: []Move{legal[0]}},
		{score: -9999, pv: []Move{legal[1]}},
	}
	if got := d.pickBySkill(legal, lines); got != legal[0] {
		t.Errorf("pickBySkill with SkillLevel=20 = %v, want the best line %v", got, legal[0])
	}
}

func TestPickBySkillWeakeningNeverPicksOutsideThePool(t *testing.T) {
	opts := DefaultOptions()
	opts.SkillLevel = 0
	opts.MultiPV = 1
	d := NewDriver(opts, materialEval)
	legal := make([]Move, 5)
	lines := make([]pvResult, 5)
	for i := range legal {
		legal[i] = NewMove(Square(i), Square(i+8))
		lines[i] = pvResult{score: int32(100 - i*10), pv: []Move{legal[i]}}
	}

	chosen := d.pickBySkill(legal, lines)
	found := false
	for _, m := range legal {
		if m == chosen {
			found = true
		}
	}
	if !found {
		t.Errorf("pickBySkill returned a move outside the candidate set: %v", chosen)
	}
}
