// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// quiescence.go implements the capture-only search that settles tactical
// sequences before a leaf is evaluated statically, the C4 component of
// spec.md §4.4. Grounded on the teacher's engine.go:searchQuiescence,
// extended with a transposition table probe/save, SEE-based pruning and
// a delta/futility margin, matching the fuller quiescence search every
// post-teacher engine in the example pack implements.
package search

import (
	. "github.com/harrier-engine/harrier/board"
)

const deltaMargin int32 = 200

func (w *Worker) quiescence(pos *Position, ply int, alpha, beta int32) int32 {
	w.nodes++
	if w.shouldStop() {
		return 0
	}
	if pos.Draw(ply) {
		return DrawScore
	}
	if ply >= maxPly {
		return w.evaluate(pos)
	}

	inCheck := pos.IsChecked(pos.SideToMove)

	ttMove, ttScore, _, ttDepth, ttBound, _, found := w.tt.Probe(pos.Key())
	if found && ttDepth >= 0 {
		score := ScoreFromTT(ttScore, ply)
		if ttBound == BoundExact ||
			(ttBound == BoundLower && score >= beta) ||
			(ttBound == BoundUpper && score <= alpha) {
			return score
		}
	}

	var best int32
	if inCheck {
		best = -InfinityScore
	} else {
		best = w.evaluate(pos)
		if best >= beta {
			return best
		}
		if best > alpha {
			alpha = best
		}
	}

	mp := NewQMovePicker(pos, ttMove)
	bestMove := NoMove
	any := false
	for {
		m := mp.Next()
		if m == NoMove {
			break
		}
		if !inCheck {
			if !pos.IsLegal(m) {
				continue
			}
			// Delta pruning: even winning the captured piece outright
			// plus a safety margin can't reach alpha, so don't bother.
			if capturedValue(pos, m)+deltaMargin+best < alpha && m.Type() != Promotion {
				continue
			}
			if SEESign(pos, m) {
				continue
			}
		} else if !pos.IsLegal(m) {
			continue
		}
		any = true

		pos.DoMove(m)
		score := -w.quiescence(pos, ply+1, -beta, -alpha)
		pos.UndoMove(m)

		if w.stopped {
			return 0
		}
		if score > best {
			best = score
			bestMove = m
			if score > alpha {
				alpha = score
				if alpha >= beta {
					break
				}
			}
		}
	}

	if inCheck && !any {
		return MatedScore + int32(ply)
	}

	bound := BoundUpper
	if best >= beta {
		bound = BoundLower
	} else if bestMove != NoMove {
		bound = BoundExact
	}
	w.tt.Save(pos.Key(), bestMove, ScoreToTT(best, ply), best, 0, bound, false)
	return best
}

// capturedValue approximates the material gained by a capture, used
// only for quiescence's delta-pruning margin.
func capturedValue(pos *Position, m Move) int32 {
	fig := NoFigure
	switch m.Type() {
	case Enpassant:
		fig = Pawn
	default:
		fig = pos.Get(m.To()).Figure()
	}
	values := [FigureArraySize]int32{0, 100, 320, 330, 500, 900, 0}
	return values[fig]
}
