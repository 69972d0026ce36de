// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// movepicker.go implements the staged, lazily-sorted move picker of
// spec.md §4.2/§4.3: try the transposition table move first, then
// captures ordered by SEE sign and MVV-LVA/capture history, then
// killers and the counter move, then quiets ordered by history, and
// finally the captures that looked bad enough to defer. Grounded on
// the teacher's move_ordering.go state machine (moveStack/stack/
// PopMove), generalized from two stages (captures, quiets) to the
// full list spec.md §4.3 names, and using board.SEESign in place of
// the teacher's own see.go entry point (same algorithm, new name
// since see.go now lives in board and is keyed off Position lookups).
package search

import (
	"sort"

	. "github.com/harrier-engine/harrier/board"
)

type pickerStage int

const (
	stageTT pickerStage = iota
	stageGenCaptures
	stageGoodCaptures
	stageKillers
	stageCounter
	stageGenQuiets
	stageQuiets
	stageBadCaptures
	stageDone

	stageEvasionsGenAll
	stageEvasions

	stageQSearchGenCaptures
	stageQSearchCaptures
	stageQSearchDone
)

type scoredMove struct {
	move  Move
	score int32
}

// MovePicker lazily generates and orders moves for one search node,
// avoiding the cost of fully sorting moves that a beta cutoff will
// never need.
type MovePicker struct {
	pos     *Position
	stats   *Stats
	ply     int
	ttMove  Move
	inCheck bool
	qsearch bool

	stage     pickerStage
	killers   [2]Move
	counter   Move
	contPairs [numContOffsets]ContinuationPair

	moves       []scoredMove
	bad         []scoredMove
	idx         int
	buf         [256]Move
}

// NewMovePicker builds a picker for a normal search node. contPairs
// holds the (piece, destination) played at ply -1/-2/-4/-6 (spec.md
// §4.2), contPairs[0] being the immediately preceding move that also
// drives the counter-move lookup.
func NewMovePicker(pos *Position, stats *Stats, ply int, ttMove Move, contPairs [numContOffsets]ContinuationPair) *MovePicker {
	inCheck := pos.IsChecked(pos.SideToMove)
	mp := &MovePicker{pos: pos, stats: stats, ply: ply, ttMove: ttMove, inCheck: inCheck, contPairs: contPairs}
	if inCheck {
		mp.stage = stageEvasionsGenAll
	} else {
		mp.stage = stageTT
		mp.killers = stats.Killers(ply)
		mp.counter = stats.CounterMove(contPairs[0].Piece, contPairs[0].To)
	}
	return mp
}

// NewQMovePicker builds a picker for quiescence search: captures (and,
// when in check, every evasion) only.
func NewQMovePicker(pos *Position, ttMove Move) *MovePicker {
	inCheck := pos.IsChecked(pos.SideToMove)
	mp := &MovePicker{pos: pos, ttMove: ttMove, inCheck: inCheck, qsearch: true}
	if inCheck {
		mp.stage = stageEvasionsGenAll
	} else {
		mp.stage = stageQSearchGenCaptures
	}
	return mp
}

// Next returns the next move to try, or NoMove when exhausted.
func (mp *MovePicker) Next() Move {
	for {
		switch mp.stage {
		case stageTT:
			mp.stage = stageGenCaptures
			if mp.ttMove != NoMove {
				return mp.ttMove
			}
		case stageGenCaptures:
			mp.generateScored(Violent)
			mp.splitByScore(0)
			mp.stage = stageGoodCaptures
			mp.idx = 0
		case stageGoodCaptures:
			if m := mp.popBest(); m != NoMove {
				if m == mp.ttMove {
					continue
				}
				return m
			}
			mp.stage = stageKillers
			mp.idx = 0
		case stageKillers:
			for mp.idx < 2 {
				m := mp.killers[mp.idx]
				mp.idx++
				if m != NoMove && m != mp.ttMove && mp.pos.Get(m.To()) == NoPiece {
					return m
				}
			}
			mp.stage = stageCounter
		case stageCounter:
			mp.stage = stageGenQuiets
			m := mp.counter
			if m != NoMove && m != mp.ttMove && m != mp.killers[0] && m != mp.killers[1] {
				return m
			}
		case stageGenQuiets:
			mp.generateScored(Quiet)
			sort.SliceStable(mp.moves, func(i, j int) bool { return mp.moves[i].score > mp.moves[j].score })
			mp.stage = stageQuiets
			mp.idx = 0
		case stageQuiets:
			if mp.idx < len(mp.moves) {
				m := mp.moves[mp.idx].move
				mp.idx++
				if m == mp.ttMove || m == mp.killers[0] || m == mp.killers[1] || m == mp.counter {
					continue
				}
				return m
			}
			mp.stage = stageBadCaptures
			mp.idx = 0
		case stageBadCaptures:
			if mp.idx < len(mp.bad) {
				m := mp.bad[mp.idx].move
				mp.idx++
				if m == mp.ttMove {
					continue
				}
				return m
			}
			mp.stage = stageDone
		case stageDone:
			return NoMove

		case stageEvasionsGenAll:
			moves := mp.pos.GenerateMoves(All, mp.buf[:0])
			mp.moves = mp.moves[:0]
			for _, m := range moves {
				mp.moves = append(mp.moves, scoredMove{m, mp.evasionScore(m)})
			}
			sort.SliceStable(mp.moves, func(i, j int) bool { return mp.moves[i].score > mp.moves[j].score })
			mp.stage = stageEvasions
			mp.idx = 0
		case stageEvasions:
			if mp.idx < len(mp.moves) {
				m := mp.moves[mp.idx].move
				mp.idx++
				if !mp.pos.IsLegal(m) {
					continue
				}
				return m
			}
			if mp.qsearch {
				mp.stage = stageQSearchDone
			} else {
				mp.stage = stageDone
			}

		case stageQSearchGenCaptures:
			mp.generateScored(Violent)
			sort.SliceStable(mp.moves, func(i, j int) bool { return mp.moves[i].score > mp.moves[j].score })
			mp.stage = stageQSearchCaptures
			mp.idx = 0
		case stageQSearchCaptures:
			if mp.idx < len(mp.moves) {
				m := mp.moves[mp.idx].move
				mp.idx++
				if !mp.pos.IsLegal(m) {
					continue
				}
				return m
			}
			mp.stage = stageQSearchDone
		case stageQSearchDone:
			return NoMove
		}
	}
}

func (mp *MovePicker) evasionScore(m Move) int32 {
	if m == mp.ttMove {
		return 1 << 30
	}
	if mp.pos.Get(m.To()) != NoPiece {
		return mvvlva(mp.pos, m)
	}
	return 0
}

// generateScored fills mp.moves with pseudo-legal moves of kind scored
// for ordering (MVV-LVA + capture history for captures, combined
// history tables for quiets).
func (mp *MovePicker) generateScored(kind MoveKind) {
	moves := mp.pos.GenerateMoves(kind, mp.buf[:0])
	mp.moves = mp.moves[:0]
	for _, m := range moves {
		if m == mp.ttMove {
			continue
		}
		var score int32
		if kind == Violent {
			score = mvvlva(mp.pos, m)
			if mp.stats != nil {
				pi := mp.pos.Get(m.From())
				score += mp.stats.CaptureHistory(pi, m, mp.pos.Get(m.To()).Figure())
			}
		} else {
			pi := mp.pos.Get(m.From())
			us := pi.Color()
			score = mp.stats.Butterfly(us, m)
			score += mp.stats.PieceSquareHistory(pi, m)
			score += mp.stats.ContinuationScore(mp.contPairs, pi, m.To())
			score += mp.stats.LowPly(mp.ply, m)
		}
		mp.moves = append(mp.moves, scoredMove{m, score})
	}
}

// splitByScore partitions mp.moves into "good" (SEE-sign non-negative)
// kept in mp.moves, and "bad" (clearly losing captures) set aside in
// mp.bad to be tried only after quiets, per spec.md §4.3.
func (mp *MovePicker) splitByScore(threshold int32) {
	good := mp.moves[:0]
	mp.bad = mp.bad[:0]
	for _, sm := range mp.moves {
		if SEESign(mp.pos, sm.move) {
			mp.bad = append(mp.bad, sm)
		} else {
			good = append(good, sm)
		}
	}
	mp.moves = good
	sort.SliceStable(mp.moves, func(i, j int) bool { return mp.moves[i].score > mp.moves[j].score })
}

func (mp *MovePicker) popBest() Move {
	if mp.idx >= len(mp.moves) {
		return NoMove
	}
	m := mp.moves[mp.idx].move
	mp.idx++
	return m
}

// mvvlva scores a capture by "most valuable victim, least valuable
// attacker", the cheap static ordering applied before any SEE call.
func mvvlva(pos *Position, m Move) int32 {
	victim := pos.Get(m.To()).Figure()
	if m.Type() == Enpassant {
		victim = Pawn
	}
	attacker := pos.Get(m.From()).Figure()
	return int32(victim)*8 - int32(attacker)
}
