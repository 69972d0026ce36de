// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// stats.go implements the move-ordering statistics tables of spec.md
// §4.2: butterfly (quiet history), capture history, piece-square
// history, continuation history, counter moves and a low-ply table.
// Every table uses the same saturating geometric update rule so a
// single good or bad outcome nudges a score without ever letting it
// run away — grounded on the teacher's historyTable in engine.go
// (historyHash/add/get), generalized from one table to the full set
// spec.md names and switched to xxhash for indexing, replacing the
// teacher's hand-rolled historyHash/murmurMix mixers.
//
// Continuation history keeps one table per entry in contOffsets
// (spec.md §4.2: "continuation (piece-square at ply -1/-2/-4/-6")
// rather than a single shared table, since "did this reply follow up
// well on the move two plies ago" and "...six plies ago" are distinct
// signals that would just dilute each other sharing one bucket.
package search

import (
	"github.com/cespare/xxhash/v2"

	. "github.com/harrier-engine/harrier/board"
)

const historyMax int32 = 1 << 14

// addBonus applies the saturating "gravity" update used throughout:
// value moves towards bonus, but the closer value already is to
// historyMax in the direction of bonus, the smaller the actual step —
// so no entry can run away past +/-historyMax regardless of streak
// length.
func addBonus(value int16, bonus int32) int16 {
	v := int32(value)
	v += bonus - v*abs32(bonus)/historyMax
	if v > historyMax {
		v = historyMax
	}
	if v < -historyMax {
		v = -historyMax
	}
	return int16(v)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Stats holds one thread's (or the single-threaded) move-ordering
// tables. Every Worker owns a private Stats so threads never contend
// on history updates (spec.md §5).
type Stats struct {
	butterfly    [ColorArraySize][4096]int16
	captureHist  [PieceArraySize][SquareArraySize][FigureArraySize]int16
	pieceSqHist  [PieceArraySize][SquareArraySize]int16
	continuation [numContOffsets][1 << 16]contEntry
	counterMove  [PieceArraySize][SquareArraySize]Move
	killers      [maxPly][2]Move
	lowPly       [lowPlyTableDepth][4096]int16
}

// contOffsets are the ply distances back from the current node that
// continuation history tracks (spec.md §4.2's "-1/-2/-4/-6"); -3 and -5
// are skipped, matching the own-side-only cadence (every other entry is
// the opponent's move, which the butterfly/capture tables already
// cover from the opponent's own perspective).
var contOffsets = [...]int{1, 2, 4, 6}

const numContOffsets = len(contOffsets)

// ContinuationPair is one (piece, destination) slot feeding a
// continuation-history lookup, recording what was played contOffsets[i]
// plies before the current move.
type ContinuationPair struct {
	Piece Piece
	To    Square
}

type contEntry struct {
	key   uint32
	value int16
}

// NewStats returns a zeroed statistics block.
func NewStats() *Stats { return &Stats{} }

// Clear resets every table, used between games (spec.md §6.3 ucinewgame).
func (s *Stats) Clear() { *s = Stats{} }

// Butterfly returns the quiet-move history score for a move by color c.
func (s *Stats) Butterfly(c Color, m Move) int32 {
	return int32(s.butterfly[c][m.Index()])
}

// UpdateButterfly applies bonus to a quiet move's butterfly score.
func (s *Stats) UpdateButterfly(c Color, m Move, bonus int32) {
	s.butterfly[c][m.Index()] = addBonus(s.butterfly[c][m.Index()], bonus)
}

// CaptureHistory returns the capture-history score for piece pi playing
// m and capturing a victim of figure captured.
func (s *Stats) CaptureHistory(pi Piece, m Move, captured Figure) int32 {
	return int32(s.captureHist[pi][m.To()][captured])
}

// UpdateCaptureHistory applies bonus to a capture's history score.
func (s *Stats) UpdateCaptureHistory(pi Piece, m Move, captured Figure, bonus int32) {
	e := &s.captureHist[pi][m.To()][captured]
	*e = addBonus(*e, bonus)
}

// PieceSquareHistory returns the quiet piece-to-square history score.
func (s *Stats) PieceSquareHistory(pi Piece, m Move) int32 {
	return int32(s.pieceSqHist[pi][m.To()])
}

// UpdatePieceSquareHistory applies bonus to a quiet move's piece-square
// history score.
func (s *Stats) UpdatePieceSquareHistory(pi Piece, m Move, bonus int32) {
	e := &s.pieceSqHist[pi][m.To()]
	*e = addBonus(*e, bonus)
}

func continuationKey(prevPi Piece, prevTo Square, pi Piece, to Square) (idx uint32, tag uint32) {
	var buf [4]byte
	buf[0] = byte(prevPi)
	buf[1] = byte(prevTo)
	buf[2] = byte(pi)
	buf[3] = byte(to)
	h := xxhash.Sum64(buf[:])
	return uint32(h) & (1<<16 - 1), uint32(h >> 32)
}

// continuationAt returns the slot-i score for playing (pi, to) after
// (prevPi, prevTo) was played contOffsets[i] plies earlier. A zero
// Square prevTo (NoSquare, ply out of range at the game's start) always
// scores 0: there is no move to follow up on.
func (s *Stats) continuationAt(i int, prevPi Piece, prevTo Square, pi Piece, to Square) int32 {
	if prevTo == NoSquare {
		return 0
	}
	idx, tag := continuationKey(prevPi, prevTo, pi, to)
	e := &s.continuation[i][idx]
	if e.key != tag {
		return 0
	}
	return int32(e.value)
}

// updateContinuationAt applies bonus to slot i's (prevPi,prevTo)->(pi,to)
// entry, evicting on tag mismatch like any hash-indexed history table.
func (s *Stats) updateContinuationAt(i int, prevPi Piece, prevTo Square, pi Piece, to Square, bonus int32) {
	if prevTo == NoSquare {
		return
	}
	idx, tag := continuationKey(prevPi, prevTo, pi, to)
	e := &s.continuation[i][idx]
	if e.key != tag {
		e.key = tag
		e.value = 0
	}
	e.value = addBonus(e.value, bonus)
}

// ContinuationScore sums the continuation-history contribution of
// playing (pi, to) across every tracked previous-move slot (spec.md
// §4.2's ply -1/-2/-4/-6), approximating "does this reply follow up
// well on each of the recent moves that led here".
func (s *Stats) ContinuationScore(prev [numContOffsets]ContinuationPair, pi Piece, to Square) int32 {
	var total int32
	for i, p := range prev {
		total += s.continuationAt(i, p.Piece, p.To, pi, to)
	}
	return total
}

// UpdateContinuationHistory applies bonus to every tracked previous-move
// slot's (prevPi,prevTo)->(pi,to) entry, except that the -4 and -6 slots
// are skipped when the current node is in check (spec.md §4.2: "skip
// -4/-6 if in check at this ply") — a reply forced by check says
// nothing about whether the longer-range follow-up was chosen well.
func (s *Stats) UpdateContinuationHistory(prev [numContOffsets]ContinuationPair, inCheck bool, pi Piece, to Square, bonus int32) {
	for i, p := range prev {
		if inCheck && (contOffsets[i] == 4 || contOffsets[i] == 6) {
			continue
		}
		s.updateContinuationAt(i, p.Piece, p.To, pi, to, bonus)
	}
}

// CounterMove returns the recorded reply to the opponent's last move.
func (s *Stats) CounterMove(prevPi Piece, prevTo Square) Move {
	return s.counterMove[prevPi][prevTo]
}

// SetCounterMove records m as the reply to the opponent playing
// (prevPi, prevTo).
func (s *Stats) SetCounterMove(prevPi Piece, prevTo Square, m Move) {
	s.counterMove[prevPi][prevTo] = m
}

// Killers returns the two killer moves recorded for ply.
func (s *Stats) Killers(ply int) [2]Move {
	if ply >= maxPly {
		return [2]Move{}
	}
	return s.killers[ply]
}

// AddKiller records m as a killer at ply, evicting the older killer.
func (s *Stats) AddKiller(ply int, m Move) {
	if ply >= maxPly || s.killers[ply][0] == m {
		return
	}
	s.killers[ply][1] = s.killers[ply][0]
	s.killers[ply][0] = m
}

// LowPly returns the low-ply history bonus for moves near the root,
// which get their own table because root-adjacent move ordering matters
// disproportionately to time-to-first-PV (spec.md §4.2).
func (s *Stats) LowPly(ply int, m Move) int32 {
	if ply >= lowPlyTableDepth {
		return 0
	}
	return int32(s.lowPly[ply][m.Index()])
}

// UpdateLowPly applies bonus to the low-ply table at ply.
func (s *Stats) UpdateLowPly(ply int, m Move, bonus int32) {
	if ply >= lowPlyTableDepth {
		return
	}
	e := &s.lowPly[ply][m.Index()]
	*e = addBonus(*e, bonus)
}
