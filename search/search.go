// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// search.go implements the main alpha-beta pipeline of spec.md §4.5:
// mate-distance pruning, a transposition table probe, razoring,
// futility pruning, null-move pruning with verification, ProbCut,
// internal iterative deepening, singular extension, late-move
// reductions and the move loop's history bookkeeping. Grounded on the
// teacher's engine.go:searchTree/tryMove, generalized step by step to
// the fuller pipeline spec.md names; the additive LMR/ProbCut/singular
// coefficients the teacher never had follow the same late-model
// Stockfish-lineage shape several other pack engines (the FrankyGo and
// combusken ports among them) implement in Go.
package search

import (
	. "github.com/harrier-engine/harrier/board"
)

// searchRoot runs iterative-depth-fixed alpha-beta from pos's current
// position and returns the root score and principal variation.
func (w *Worker) searchRoot(pos *Position, depth int, alpha, beta int32) (int32, []Move) {
	w.nodes = 0
	w.selDepth = 0
	w.stopped = false
	score := w.alphaBeta(pos, depth, 0, alpha, beta, true, false)
	return score, append([]Move(nil), w.pv[0]...)
}

func (w *Worker) alphaBeta(pos *Position, depth int, ply int, alpha, beta int32, pvNode, cutNode bool) int32 {
	w.pv[ply] = w.pv[ply][:0]
	if depth <= 0 {
		return w.quiescence(pos, ply, alpha, beta)
	}

	w.nodes++
	if w.shouldStop() {
		return 0
	}
	if ply > w.selDepth {
		w.selDepth = ply
	}

	isRoot := ply == 0
	if !isRoot {
		if pos.Draw(ply) {
			return DrawScore
		}
		if ply >= maxPly {
			return w.evaluate(pos)
		}
		// Mate-distance pruning: no sequence from here can be better
		// than mating on the very next move, nor worse than being mated
		// right now, so shrink the window accordingly.
		if a := MatedScore + int32(ply); a > alpha {
			alpha = a
		}
		if b := MateScore - int32(ply); b < beta {
			beta = b
		}
		if alpha >= beta {
			return alpha
		}
	}

	inCheck := pos.IsChecked(pos.SideToMove)
	key := pos.Key()
	ttMove, ttScore, ttEval, ttDepth, ttBound, ttPV, ttFound := w.tt.Probe(key)
	if ttFound {
		ttScore = ScoreFromTT(ttScore, ply)
		if !pvNode && ttDepth >= depth {
			if ttBound == BoundExact ||
				(ttBound == BoundLower && ttScore >= beta) ||
				(ttBound == BoundUpper && ttScore <= alpha) {
				return ttScore
			}
		}
	}
	pvNode = pvNode || ttPV

	// Mark this (key, ply) as being searched by this worker, the
	// advisory signal spec.md §5 names: a false return means some other
	// worker already claims the node (or a marker-table collision), and
	// the move loop below leans on that to reduce more aggressively
	// rather than duplicate the other worker's effort. Only a worker
	// that actually claims the node clears it on exit.
	contested := !w.pool.marker.TryMark(key, ply)
	if !contested {
		defer w.pool.marker.Unmark(key, ply)
	}

	var staticEval int32
	switch {
	case inCheck:
		staticEval = -InfinityScore
	case ttFound:
		staticEval = ttEval
	default:
		staticEval = w.evaluate(pos)
	}

	if !inCheck && !pvNode {
		// Razoring: hopeless-looking shallow nodes drop straight to
		// quiescence instead of paying for a full search that will
		// almost certainly also fail low.
		if depth <= razorDepth && staticEval+razorMargin < beta {
			score := w.quiescence(pos, ply, alpha, beta)
			if score < beta {
				return score
			}
		}

		// Futility pruning happens in the move loop for quiet moves.

		// Null-move pruning: if we can skip a move entirely and still
		// fail high, the position is so good a real move will too,
		// unless we're in a zugzwang-prone endgame.
		if depth >= nmpMinDepth && staticEval >= beta && !pos.LastWasNull() &&
			pos.HasNonPawnMaterial(pos.SideToMove) && ply >= w.nmpMinPly[pos.SideToMove] {
			r := nmpBaseR + depth/nmpDepthDiv
			if d := (staticEval - beta) / nmpEvalDiv; d < nmpMaxEvalR {
				r += int(d)
			} else {
				r += nmpMaxEvalR
			}
			pos.DoNullMove()
			w.prevPi[ply+1], w.prevTo[ply+1] = NoPiece, NoSquare
			nullScore := -w.alphaBeta(pos, depth-1-r, ply+1, -beta, -beta+1, false, !cutNode)
			pos.UndoNullMove()
			if w.stopped {
				return 0
			}
			if nullScore >= beta {
				if nullScore >= KnownWinScore {
					nullScore = beta
				}
				if depth < nmpVerifyMin {
					return nullScore
				}
				// Verify with a reduced search before trusting a deep
				// null-move cutoff, raising this side's nmpMinPly guard
				// for the duration so the verification cannot itself
				// recurse into another null-move cutoff at this node.
				us := pos.SideToMove
				prevGuard := w.nmpMinPly[us]
				w.nmpMinPly[us] = ply + 1
				verify := w.alphaBeta(pos, depth-r, ply, beta-1, beta, false, cutNode)
				w.nmpMinPly[us] = prevGuard
				if verify >= beta {
					return nullScore
				}
			}
		}

		// ProbCut: a shallow, reduced search with a raised beta that
		// only considers captures, used to cheaply confirm a position
		// is winning by more than a pawn.
		if depth >= probCutMinDepth && !IsMateScore(beta) {
			probBeta := beta + probCutMargin
			mp := NewQMovePicker(pos, NoMove)
			for {
				m := mp.Next()
				if m == NoMove {
					break
				}
				if !pos.IsLegal(m) || !SEESign(pos, m) && SEE(pos, m) < probBeta-staticEval {
					continue
				}
				movedPi := pos.Get(m.From())
				pos.DoMove(m)
				w.prevPi[ply+1], w.prevTo[ply+1] = movedPi, m.To()
				score := -w.alphaBeta(pos, depth-probCutReduction, ply+1, -probBeta, -probBeta+1, false, true)
				pos.UndoMove(m)
				if w.stopped {
					return 0
				}
				if score >= probBeta {
					return score
				}
			}
		}
	}

	// Internal iterative deepening: without a TT move to try first at
	// useful depth, spend a shallow search finding one before committing
	// to full-depth move ordering.
	if ttMove == NoMove && depth >= iidMinDepth && (pvNode || cutNode) {
		w.alphaBeta(pos, depth-iidReduction, ply, alpha, beta, pvNode, cutNode)
		ttMove, _, _, _, _, _, _ = w.tt.Probe(key)
	}

	contPairs := w.continuationPairs(ply)
	mp := NewMovePicker(pos, w.stats, ply, ttMove, contPairs)

	bestScore := MatedScore + int32(ply)
	bestMove := NoMove
	movesSearched := 0
	quietsSearched := make([]Move, 0, 16)

	for {
		m := mp.Next()
		if m == NoMove {
			break
		}
		if !pos.IsLegal(m) {
			continue
		}
		if isRoot && containsMove(w.rootExclude, m) {
			continue
		}
		movesSearched++
		isCapture := pos.Get(m.To()) != NoPiece || m.Type() == Enpassant

		// Futility pruning: a quiet move this deep into a lost-looking
		// position can't plausibly recover, so don't bother searching it.
		if !pvNode && !inCheck && !isCapture && depth <= futilityDepth &&
			staticEval+futilityMargin*int32(depth) <= alpha && movesSearched > 1 {
			continue
		}

		extension := 0
		if inCheck {
			extension = 1
		} else if m == ttMove && depth >= singularMinDepth && ttFound &&
			ttBound != BoundUpper && ttDepth >= depth-singularTTDepthOK {
			// Singular extension: if every other move fails far below
			// the TT move's score, the TT move is "singular" — forced —
			// and deserves the extra ply.
			sBeta := ttScore - int32(depth)*2
			// Multi-cut: if another move also holds sBeta and sBeta
			// already reaches beta, the node fails high without search.
			if excl := w.singularSearch(pos, depth, ply, sBeta, m); excl < sBeta {
				extension = 1
			} else if sBeta >= beta {
				return sBeta
			}
		}

		movedPi := pos.Get(m.From())
		pos.DoMove(m)
		w.prevPi[ply+1], w.prevTo[ply+1] = movedPi, m.To()
		newDepth := depth - 1 + extension

		var score int32
		if movesSearched == 1 {
			score = -w.alphaBeta(pos, newDepth, ply+1, -beta, -alpha, pvNode, false)
		} else {
			reduction := 0
			if depth >= lmrMinDepth && movesSearched > lmrMinMoveCount && !isCapture && !inCheck && extension == 0 {
				reduction = lmrTable(depth, movesSearched)
				if pvNode {
					reduction--
				}
				if contested {
					reduction++
				}
				if reduction < 0 {
					reduction = 0
				}
			}
			score = -w.alphaBeta(pos, newDepth-reduction, ply+1, -alpha-1, -alpha, false, !cutNode)
			if score > alpha && reduction > 0 {
				score = -w.alphaBeta(pos, newDepth, ply+1, -alpha-1, -alpha, false, !cutNode)
			}
			if score > alpha && score < beta {
				score = -w.alphaBeta(pos, newDepth, ply+1, -beta, -alpha, true, false)
			}
		}
		pos.UndoMove(m)

		if w.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				w.pv[ply] = append(w.pv[ply][:0], m)
				w.pv[ply] = append(w.pv[ply], w.pv[ply+1]...)
				if alpha >= beta {
					w.recordCutoff(pos, m, contPairs, inCheck, depth, ply, quietsSearched, isCapture)
					break
				}
			}
		}
		if !isCapture {
			quietsSearched = append(quietsSearched, m)
		}
	}

	if movesSearched == 0 {
		if isRoot && len(w.rootExclude) > 0 {
			// Every legal move was excluded: the multi-PV driver asked
			// for more lines than the position has moves.
			return -InfinityScore
		}
		if inCheck {
			return MatedScore + int32(ply)
		}
		return DrawScore
	}

	bound := BoundUpper
	if bestScore >= beta {
		bound = BoundLower
	} else if bestMove != NoMove {
		bound = BoundExact
	}
	w.tt.Save(key, bestMove, ScoreToTT(bestScore, ply), staticEval, depth, bound, pvNode)
	return bestScore
}

// singularSearch runs a reduced, TT-move-excluding search to test
// whether m is the only move keeping the score above sBeta.
func (w *Worker) singularSearch(pos *Position, depth, ply int, sBeta int32, exclude Move) int32 {
	mp := NewMovePicker(pos, w.stats, ply, NoMove, w.continuationPairs(ply))
	best := MatedScore + int32(ply)
	for {
		m := mp.Next()
		if m == NoMove {
			break
		}
		if m == exclude || !pos.IsLegal(m) {
			continue
		}
		movedPi := pos.Get(m.From())
		pos.DoMove(m)
		w.prevPi[ply+1], w.prevTo[ply+1] = movedPi, m.To()
		score := -w.alphaBeta(pos, (depth-1)/2, ply+1, -sBeta-1, -sBeta, false, true)
		pos.UndoMove(m)
		if score > best {
			best = score
		}
		if best >= sBeta {
			break
		}
	}
	return best
}

// recordCutoff applies history bonuses to the move that caused a beta
// cutoff and penalties to the quiet moves tried and rejected before it,
// the standard "bonus the winner, malus the triers" update.
func (w *Worker) recordCutoff(pos *Position, m Move, contPairs [numContOffsets]ContinuationPair, inCheck bool, depth, ply int, quietsSearched []Move, isCapture bool) {
	bonus := int32(depth * depth)
	pi := pos.Get(m.From())
	if !isCapture {
		w.stats.AddKiller(ply, m)
		w.stats.SetCounterMove(contPairs[0].Piece, contPairs[0].To, m)
		w.stats.UpdateButterfly(pi.Color(), m, bonus)
		w.stats.UpdatePieceSquareHistory(pi, m, bonus)
		w.stats.UpdateContinuationHistory(contPairs, inCheck, pi, m.To(), bonus)
		w.stats.UpdateLowPly(ply, m, bonus)
		for _, q := range quietsSearched {
			qpi := pos.Get(q.From())
			w.stats.UpdateButterfly(qpi.Color(), q, -bonus)
			w.stats.UpdatePieceSquareHistory(qpi, q, -bonus)
		}
	} else {
		w.stats.UpdateCaptureHistory(pi, m, pos.Get(m.To()).Figure(), bonus)
	}
}

func containsMove(moves []Move, m Move) bool {
	for _, x := range moves {
		if x == m {
			return true
		}
	}
	return false
}

// lmrTable returns the late-move reduction for the given depth and move
// count, a logarithmic curve scaled by small integer constants rather
// than a precomputed float table (spec.md §4.5's "many additive
// tweaks" collapse to this single shape plus the pv/contested nudges
// applied at the call site).
func lmrTable(depth, moveCount int) int {
	r := 0
	for d, mc := depth, moveCount; d > 0 && mc > 0; {
		r++
		d /= 2
		mc /= 2
	}
	if r > 0 {
		r--
	}
	return r
}
