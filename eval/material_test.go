// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/harrier-engine/harrier/board"
)

func fen(t *testing.T, s string) *board.Position {
	t.Helper()
	pos, err := board.PositionFromFEN(s)
	if err != nil {
		t.Fatalf("PositionFromFEN(%q): %v", s, err)
	}
	return pos
}

func TestEvaluateStartPosIsSymmetric(t *testing.T) {
	pos := fen(t, board.FENStartPos)
	if score := Evaluate(pos); score != 0 {
		t.Errorf("Evaluate(startpos) = %d, want 0 (material- and piece-square-symmetric)", score)
	}
}

func TestEvaluateFavorsExtraQueen(t *testing.T) {
	withQueen := fen(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	withoutQueen := fen(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if Evaluate(withQueen) <= Evaluate(withoutQueen) {
		t.Errorf("Evaluate with an extra queen (%d) should exceed without (%d)",
			Evaluate(withQueen), Evaluate(withoutQueen))
	}
}

func TestEvaluateIsSideToMoveIndependent(t *testing.T) {
	// Evaluate always reports from White's perspective regardless of
	// whose move it is: only the side-to-move field differs here.
	white := fen(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	black := fen(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	if Evaluate(white) != Evaluate(black) {
		t.Errorf("Evaluate should not depend on side to move: got %d vs %d", Evaluate(white), Evaluate(black))
	}
}

func TestPhaseStartPosIsMidgame(t *testing.T) {
	pos := fen(t, board.FENStartPos)
	if phase := Phase(pos); phase != 0 {
		t.Errorf("Phase(startpos) = %d, want 0 (full material, pure midgame)", phase)
	}
}

func TestPhaseBareKingsIsEndgame(t *testing.T) {
	pos := fen(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if phase := Phase(pos); phase != 256 {
		t.Errorf("Phase(bare kings) = %d, want 256 (no non-pawn material left)", phase)
	}
}

func TestEvaluateBishopPairBonus(t *testing.T) {
	pair := fen(t, "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1")
	single := fen(t, "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1")
	// Subtracting one bishop's raw value isolates the pair bonus: the
	// two-bishop side should still score strictly higher once a lone
	// bishop's material is accounted for, since the bonus is additive.
	diff := Evaluate(pair) - Evaluate(single)
	if diff <= figureValue[board.Bishop].M {
		t.Errorf("two-bishop side should score more than a single bishop's material plus zero bonus: diff=%d, bishop=%d", diff, figureValue[board.Bishop].M)
	}
}
