// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

import "fmt"

// MoveFromUCI parses a UCI long algebraic move string ("e2e4", "e7e8q")
// against pos and returns the matching legal Move. Move itself carries no
// context about the position it applies to, so unlike From/To a move
// cannot be built directly from the string: its Type (Castling, Enpassant,
// Promotion) only exists in the context of a legal move, so this matches
// against the generated legal move list rather than constructing one.
func (pos *Position) MoveFromUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("board: invalid UCI move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("board: invalid UCI move %q: %v", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("board: invalid UCI move %q: %v", s, err)
	}
	promo := NoFigure
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("board: invalid UCI move %q: bad promotion piece", s)
		}
	}

	for _, m := range pos.GenerateLegalMoves(All, nil) {
		if m.From() != from || m.To() != to {
			continue
		}
		if m.Type() == Promotion {
			if promo == NoFigure || m.PromotionFigure() != promo {
				continue
			}
		} else if promo != NoFigure {
			continue
		}
		return m, nil
	}
	return NoMove, fmt.Errorf("board: %q is not a legal move", s)
}
