// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

// MoveKind selects which subset of pseudo-legal moves to generate,
// matching the move picker's staging in spec.md §4.2 (captures/
// promotions first, quiets later).
type MoveKind uint8

const (
	// Violent moves: captures and all promotions.
	Violent MoveKind = 1 << iota
	// Quiet moves: everything else.
	Quiet

	All = Violent | Quiet
)

// GenerateMoves appends pseudo-legal moves of the requested kind to
// moves and returns the extended slice. Generated moves may leave the
// side to move's own king in check; use IsLegal or GenerateLegalMoves
// to filter those out.
func (pos *Position) GenerateMoves(kind MoveKind, moves []Move) []Move {
	us := pos.SideToMove
	them := us.Opposite()
	all := pos.Occupied()
	theirs := pos.ByColor[them]

	moves = pos.genPawnMoves(kind, moves)

	if kind&Violent != 0 {
		for bb := pos.ByPiece(us, Knight); bb != 0; {
			from := bb.Pop()
			moves = appendTargets(moves, from, KnightMobility(from)&theirs)
		}
		for bb := pos.ByPiece(us, Bishop); bb != 0; {
			from := bb.Pop()
			moves = appendTargets(moves, from, BishopMobility(from, all)&theirs)
		}
		for bb := pos.ByPiece(us, Rook); bb != 0; {
			from := bb.Pop()
			moves = appendTargets(moves, from, RookMobility(from, all)&theirs)
		}
		for bb := pos.ByPiece(us, Queen); bb != 0; {
			from := bb.Pop()
			moves = appendTargets(moves, from, QueenMobility(from, all)&theirs)
		}
		if kbb := pos.ByPiece(us, King); kbb != 0 {
			from := kbb.AsSquare()
			moves = appendTargets(moves, from, KingMobility(from)&theirs)
		}
	}
	if kind&Quiet != 0 {
		empty := ^all
		for bb := pos.ByPiece(us, Knight); bb != 0; {
			from := bb.Pop()
			moves = appendTargets(moves, from, KnightMobility(from)&empty)
		}
		for bb := pos.ByPiece(us, Bishop); bb != 0; {
			from := bb.Pop()
			moves = appendTargets(moves, from, BishopMobility(from, all)&empty)
		}
		for bb := pos.ByPiece(us, Rook); bb != 0; {
			from := bb.Pop()
			moves = appendTargets(moves, from, RookMobility(from, all)&empty)
		}
		for bb := pos.ByPiece(us, Queen); bb != 0; {
			from := bb.Pop()
			moves = appendTargets(moves, from, QueenMobility(from, all)&empty)
		}
		if kbb := pos.ByPiece(us, King); kbb != 0 {
			from := kbb.AsSquare()
			moves = appendTargets(moves, from, KingMobility(from)&empty)
		}
		moves = pos.genCastleMoves(moves)
	}
	return moves
}

func appendTargets(moves []Move, from Square, targets Bitboard) []Move {
	for targets != 0 {
		to := targets.Pop()
		moves = append(moves, NewMove(from, to))
	}
	return moves
}

var promoteTo = [4]Figure{Queen, Rook, Bishop, Knight}

func (pos *Position) genPawnMoves(kind MoveKind, moves []Move) []Move {
	us := pos.SideToMove
	them := us.Opposite()
	all := pos.Occupied()
	pawns := pos.ByPiece(us, Pawn)
	promoRank := RankBb(7)
	if us == Black {
		promoRank = RankBb(0)
	}

	if kind&Violent != 0 {
		for _, capFn := range [2]func(Bitboard) Bitboard{West, East} {
			srcs := pawns
			for bb := srcs; bb != 0; {
				from := bb.Pop()
				targets := capFn(Forward(us, from.Bitboard())) & pos.ByColor[them]
				if targets == 0 {
					continue
				}
				to := targets.AsSquare()
				moves = appendPawnMove(moves, from, to, promoRank)
			}
		}
		if ep := pos.curr.epSquare; ep != NoSquare {
			attackers := PawnAttacks(them, ep) & pawns
			for bb := attackers; bb != 0; {
				from := bb.Pop()
				moves = append(moves, NewEnpassant(from, ep))
			}
		}
		// Promotions via straight advance are violent too (queen promotion
		// counts as a tactical gain even without a capture).
		single := Forward(us, pawns) &^ all
		promos := single & promoRank
		for bb := promos; bb != 0; {
			to := bb.Pop()
			from := Backward(us, to.Bitboard()).AsSquare()
			for _, f := range promoteTo {
				moves = append(moves, NewPromotion(from, to, f))
			}
		}
	}

	if kind&Quiet != 0 {
		single := Forward(us, pawns) &^ all
		quietSingle := single &^ promoRank
		for bb := quietSingle; bb != 0; {
			to := bb.Pop()
			from := Backward(us, to.Bitboard()).AsSquare()
			moves = append(moves, NewMove(from, to))
		}
		double := Forward(us, single&doubleAdvanceRank(us)) &^ all
		for bb := double; bb != 0; {
			to := bb.Pop()
			from := Backward(us, Backward(us, to.Bitboard())).AsSquare()
			moves = append(moves, NewMove(from, to))
		}
	}
	return moves
}

// doubleAdvanceRank returns the rank a single-push pawn of color c must
// land on to be eligible for a further double-advance push.
func doubleAdvanceRank(c Color) Bitboard {
	if c == White {
		return RankBb(2)
	}
	return RankBb(5)
}

func appendPawnMove(moves []Move, from, to Square, promoRank Bitboard) []Move {
	if to.Bitboard()&promoRank != 0 {
		for _, f := range promoteTo {
			moves = append(moves, NewPromotion(from, to, f))
		}
		return moves
	}
	return append(moves, NewMove(from, to))
}

func (pos *Position) genCastleMoves(moves []Move) []Move {
	us := pos.SideToMove
	all := pos.Occupied()
	them := us.Opposite()

	rank := 0
	oo, ooo := WhiteOO, WhiteOOO
	if us == Black {
		rank = 7
		oo, ooo = BlackOO, BlackOOO
	}
	if pos.IsChecked(us) {
		return moves
	}
	kingSq := RankFile(rank, 4)

	if pos.curr.castle&oo != 0 {
		f, g := RankFile(rank, 5), RankFile(rank, 6)
		if all&(f.Bitboard()|g.Bitboard()) == 0 &&
			!pos.attacked(f, them) && !pos.attacked(g, them) {
			moves = append(moves, NewCastling(kingSq, g))
		}
	}
	if pos.curr.castle&ooo != 0 {
		b, c, d := RankFile(rank, 1), RankFile(rank, 2), RankFile(rank, 3)
		if all&(b.Bitboard()|c.Bitboard()|d.Bitboard()) == 0 &&
			!pos.attacked(d, them) && !pos.attacked(c, them) {
			moves = append(moves, NewCastling(kingSq, c))
		}
	}
	return moves
}

func (pos *Position) attacked(sq Square, by Color) bool {
	return pos.attackersTo(sq, by) != 0
}

// IsLegal reports whether move does not leave the mover's own king in
// check. It plays and unplays the move; callers on a hot path should
// prefer generating only legal moves when cheaper filters (pins) are
// unavailable, per spec.md §4.2's "pseudo-legal generation, legality
// checked lazily by the move picker" model.
func (pos *Position) IsLegal(move Move) bool {
	us := pos.SideToMove
	pos.DoMove(move)
	legal := !pos.IsChecked(us)
	pos.UndoMove(move)
	return legal
}

// GenerateLegalMoves returns every legal move of the requested kind.
func (pos *Position) GenerateLegalMoves(kind MoveKind, moves []Move) []Move {
	pseudo := pos.GenerateMoves(kind, moves[:0])
	out := moves[:0]
	for _, m := range pseudo {
		if pos.IsLegal(m) {
			out = append(out, m)
		}
	}
	return out
}

// HasLegalMove reports whether the side to move has any legal move,
// used to distinguish checkmate/stalemate from an ongoing game.
func (pos *Position) HasLegalMove() bool {
	var buf [256]Move
	moves := pos.GenerateMoves(All, buf[:0])
	for _, m := range moves {
		if pos.IsLegal(m) {
			return true
		}
	}
	return false
}

// IsMate reports whether the side to move is checkmated.
func (pos *Position) IsMate() bool {
	return pos.IsChecked(pos.SideToMove) && !pos.HasLegalMove()
}

// IsStalemate reports whether the side to move is stalemated.
func (pos *Position) IsStalemate() bool {
	return !pos.IsChecked(pos.SideToMove) && !pos.HasLegalMove()
}
