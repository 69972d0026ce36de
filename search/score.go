// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "strconv"

// Score constants, in centipawns, matching the conventions the UCI
// protocol expects for reporting "mate N" vs "cp N" (spec.md §6.6).
// Grounded on the teacher's material.go score band (KnownWinScore/
// MateScore/InfinityScore), generalized into this package since eval no
// longer owns them (eval is opaque to search, per spec.md §6.2).
const (
	KnownWinScore  int32 = 25000
	KnownLossScore int32 = -KnownWinScore
	MateScore      int32 = 30000
	MatedScore     int32 = -MateScore
	InfinityScore  int32 = 32000
	DrawScore      int32 = 0
)

// IsMateScore reports whether score represents a forced mate.
func IsMateScore(score int32) bool {
	return score >= KnownWinScore || score <= KnownLossScore
}

// MateIn returns the number of full moves to mate for a mate score,
// matching UCI's "mate N" convention (positive for the side to move
// winning, negative for losing). Undefined for non-mate scores.
func MateIn(score int32) int {
	if score > 0 {
		return int(MateScore-score+1) / 2
	}
	return -int(MateScore+score) / 2
}

// ScoreToTT translates a root-relative mate score (as search returns
// it) into one relative to the current node for storage in the
// transposition table; ScoreFromTT converts it back. This is spec.md
// §4.1's mate-score translation: a raw mate score stored at depth is
// meaningless once probed from a different ply, so the ply offset must
// be added going in and subtracted coming out.
func ScoreToTT(score int32, ply int) int32 {
	switch {
	case score >= KnownWinScore:
		return score + int32(ply)
	case score <= KnownLossScore:
		return score - int32(ply)
	default:
		return score
	}
}

// ScoreFromTT is the inverse of ScoreToTT.
func ScoreFromTT(score int32, ply int) int32 {
	switch {
	case score >= KnownWinScore:
		return score - int32(ply)
	case score <= KnownLossScore:
		return score + int32(ply)
	default:
		return score
	}
}

// FormatUCIScore renders score the way the UCI "info score" field
// expects: "cp N" or "mate N". Grounded on the teacher's
// zurichess/uci.go PrintPV formatting.
func FormatUCIScore(score int32) string {
	if IsMateScore(score) {
		return "mate " + strconv.Itoa(MateIn(score))
	}
	return "cp " + strconv.Itoa(int(score))
}
