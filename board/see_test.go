// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

import "testing"

func TestSEEFreeRookCapture(t *testing.T) {
	// White rook on a1 takes an undefended black rook on a8.
	pos := mustFEN(t, "r3k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	m := NewMove(A1, A8)
	if see := SEE(pos, m); see <= 0 {
		t.Errorf("SEE(Rxa8 undefended) = %d, want positive", see)
	}
	if SEESign(pos, m) {
		t.Errorf("SEESign(Rxa8 undefended) = true, want false (not losing)")
	}
}

func TestSEELosingCapture(t *testing.T) {
	// White queen takes a pawn on a2 that is defended by a rook on a3:
	// the queen gets recaptured, losing material overall for white.
	pos := mustFEN(t, "4k3/8/8/8/8/r7/p7/Q3K3 w - - 0 1")
	m := NewMove(A1, A2)
	if see := SEE(pos, m); see >= 0 {
		t.Errorf("SEE(Qxa2, recaptured by Ra3) = %d, want negative", see)
	}
	if !SEESign(pos, m) {
		t.Errorf("SEESign(Qxa2, recaptured by Ra3) = false, want true (losing)")
	}
}

func TestSEEPawnTakesQueenNeverLosing(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/1q6/P7/4K3 w - - 0 1")
	m := NewMove(A2, B3)
	if SEESign(pos, m) {
		t.Errorf("SEESign(pawn takes queen) = true, want false: a pawn can never lose by taking a more valuable piece")
	}
}
