// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// see.go implements static exchange evaluation, used by the move picker
// and quiescence search to discard losing captures cheaply (spec.md
// §4.2, §4.4). Because board.Move carries no captured-piece information,
// every value SEE needs is derived from the Position at the point of use.

package board

// seeBonus approximates each figure's midgame material value for the
// purposes of the exchange swap-off only; it is deliberately separate
// from eval's piece values, which are independently tunable.
var seeBonus = [FigureArraySize]int32{0, 100, 357, 377, 712, 1253, 20000}

func seeScore(captured Figure, isPromotion bool, target Figure) int32 {
	score := seeBonus[captured]
	if isPromotion {
		score -= seeBonus[Pawn]
		score += seeBonus[target]
	}
	return score
}

// seeCaptured returns the figure that occupies m.To() before m is
// played, treating en-passant specially since its victim square differs
// from the destination square.
func seeCaptured(pos *Position, m Move) Figure {
	if m.Type() == Enpassant {
		return Pawn
	}
	return pos.Get(m.To()).Figure()
}

// SEESign reports whether SEE(pos, m) is negative, without paying for
// the full swap-off when the mover is no more valuable than what it
// captures (a free pre-filter: a pawn taking a queen is never losing).
func SEESign(pos *Position, m Move) bool {
	mover := pos.Get(m.From()).Figure()
	if mover <= seeCaptured(pos, m) {
		return false
	}
	return SEE(pos, m) < 0
}

// SEE returns the static exchange evaluation of m: the net material
// gained by playing every legal recapture on m.To(), smallest attacker
// first, until no side wants to continue. m must be pseudo-legal in pos,
// which must not yet have m applied.
func SEE(pos *Position, m Move) int32 {
	us := pos.SideToMove
	sq := m.To()
	bb := sq.Bitboard()
	bb27 := bb &^ (BbRank1 | BbRank8)
	bb18 := bb & (BbRank1 | BbRank8)

	isPromo := m.Type() == Promotion
	target := pos.Get(m.From()).Figure()
	if isPromo {
		target = m.PromotionFigure()
	}
	captured := seeCaptured(pos, m)

	var occ [ColorArraySize]Bitboard
	occ[White] = pos.ByColor[White]
	occ[Black] = pos.ByColor[Black]

	occ[us] &^= m.From().Bitboard()
	occ[us] |= m.To().Bitboard()
	if m.Type() == Enpassant {
		capSq := RankFile(m.From().Rank(), m.To().File())
		occ[us.Opposite()] &^= capSq.Bitboard()
	} else {
		occ[us.Opposite()] &^= m.To().Bitboard()
	}
	us = us.Opposite()

	all := occ[White] | occ[Black]

	score := seeScore(captured, isPromo, target)
	gain := make([]int32, 1, 16)
	gain[0] = score

	for score >= 0 {
		var fig Figure
		var att Bitboard
		var pawn, bishop, rook Bitboard
		ours := occ[us]
		mtPromo := false

		pawn = Backward(us, West(bb27)|East(bb27))
		if att = pawn & ours & pos.ByFigure[Pawn]; att != 0 {
			fig = Pawn
			goto makeMove
		}
		if att = KnightMobility(sq) & ours & pos.ByFigure[Knight]; att != 0 {
			fig = Knight
			goto makeMove
		}
		if SuperQueenMobility(sq)&ours == 0 {
			break
		}
		bishop = BishopMobility(sq, all)
		if att = bishop & ours & pos.ByFigure[Bishop]; att != 0 {
			fig = Bishop
			goto makeMove
		}
		rook = RookMobility(sq, all)
		if att = rook & ours & pos.ByFigure[Rook]; att != 0 {
			fig = Rook
			goto makeMove
		}
		pawn = Backward(us, West(bb18)|East(bb18))
		if att = pawn & ours & pos.ByFigure[Pawn]; att != 0 {
			fig, mtPromo = Queen, true
			goto makeMove
		}
		if att = (rook | bishop) & ours & pos.ByFigure[Queen]; att != 0 {
			fig = Queen
			goto makeMove
		}
		if att = KingMobility(sq) & ours & pos.ByFigure[King]; att != 0 {
			fig = King
			goto makeMove
		}
		break

	makeMove:
		from := att.LSB()
		score = seeScore(target, mtPromo, Queen) - score
		target = fig
		gain = append(gain, score)

		occ[us] &^= from
		all &^= from
		us = us.Opposite()
	}

	for i := len(gain) - 2; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}
