package notation

import (
	"fmt"

	"github.com/harrier-engine/harrier/board"
)

var (
	errWrongLength       = fmt.Errorf("SAN string is too short")
	errUnknownFigure     = fmt.Errorf("unknown figure symbol")
	errBadDisambiguation = fmt.Errorf("bad disambiguation")
	errBadPromotion      = fmt.Errorf("only pawns on the last rank can be promoted")
	errNoSuchMove        = fmt.Errorf("no such move")
)

var symbolToFigure = map[rune]board.Figure{
	'N': board.Knight,
	'B': board.Bishop,
	'R': board.Rook,
	'Q': board.Queen,
	'K': board.King,
}

// SANToMove parses s, a standard algebraic notation move (e.g. "Nf3",
// "exd5", "O-O", "e8=Q"), against pos and returns the matching legal
// move. Grounded on the teacher's engine/moves.go:SANToMove, adapted to
// scan board.Position's legal move list instead of a
// figure-specific pseudo-legal generator, since board.Move carries no
// captured-piece/target info to match against directly.
//
//	x (capture) presence or correctness is ignored.
//	+ (check) and # (checkmate) are ignored.
func SANToMove(pos *board.Position, s string) (board.Move, error) {
	figure := board.NoFigure
	promo := board.NoFigure
	r, f := -1, -1

	b, e := 0, len(s)
	if b == e {
		return board.NoMove, errWrongLength
	}
	for e > b && (s[e-1] == '#' || s[e-1] == '+') {
		e--
	}

	if s[b:e] == "O-O" || s[b:e] == "o-o" {
		return findCastling(pos, 6)
	}
	if s[b:e] == "O-O-O" || s[b:e] == "o-o-o" {
		return findCastling(pos, 2)
	}

	if 'a' <= s[b] && s[b] <= 'h' {
		figure = board.Pawn
	} else {
		fig, ok := symbolToFigure[rune(s[b])]
		if !ok {
			return board.NoMove, errUnknownFigure
		}
		figure = fig
		b++
	}

	if e-1 < b {
		return board.NoMove, errWrongLength
	}
	if !('1' <= s[e-1] && s[e-1] <= '8') {
		if figure != board.Pawn {
			return board.NoMove, errBadPromotion
		}
		fig, ok := symbolToFigure[rune(s[e-1])]
		if !ok {
			return board.NoMove, errUnknownFigure
		}
		promo = fig
		e--
		if e-1 >= b && s[e-1] == '=' {
			e--
		}
	}

	if e-2 < b {
		return board.NoMove, errWrongLength
	}
	to, err := board.ParseSquare(s[e-2 : e])
	if err != nil {
		return board.NoMove, err
	}
	e -= 2

	if e-1 >= b && (s[e-1] == 'x' || s[e-1] == '-') {
		e--
	}

	if e-b > 2 {
		return board.NoMove, errBadDisambiguation
	}
	for ; b < e; b++ {
		switch {
		case 'a' <= s[b] && s[b] <= 'h':
			f = int(s[b] - 'a')
		case '1' <= s[b] && s[b] <= '8':
			r = int(s[b] - '1')
		default:
			return board.NoMove, errBadDisambiguation
		}
	}

	us := pos.ActiveSide()
	for _, m := range pos.GenerateLegalMoves(board.All, nil) {
		pi := pos.Get(m.From())
		if pi.Color() != us || pi.Figure() != figure {
			continue
		}
		if m.To() != to {
			continue
		}
		if promo != board.NoFigure {
			if m.Type() != board.Promotion || m.PromotionFigure() != promo {
				continue
			}
		} else if m.Type() == board.Promotion {
			continue
		}
		if r != -1 && m.From().Rank() != r {
			continue
		}
		if f != -1 && m.From().File() != f {
			continue
		}
		return m, nil
	}
	return board.NoMove, errNoSuchMove
}

func findCastling(pos *board.Position, toFile int) (board.Move, error) {
	us := pos.ActiveSide()
	rank := 0
	if us == board.Black {
		rank = 7
	}
	to := board.RankFile(rank, toFile)
	for _, m := range pos.GenerateLegalMoves(board.All, nil) {
		if m.Type() == board.Castling && m.To() == to {
			return m, nil
		}
	}
	return board.NoMove, errNoSuchMove
}
