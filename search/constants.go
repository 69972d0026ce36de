// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// constants.go centralizes the tunable coefficients the search pipeline
// uses (spec.md §4.5 Open Question: "where do magic numbers live" is
// answered here rather than scattered as literals across search.go).
package search

const (
	maxPly = 128

	// Razoring: at shallow depth, if static eval is far below alpha, drop
	// straight to quiescence instead of a full search.
	razorDepth  = 3
	razorMargin = 300

	// Futility pruning (main search): skip quiet moves that can't
	// plausibly raise alpha at shallow depth.
	futilityDepth  = 8
	futilityMargin = 90

	// Null-move pruning.
	nmpMinDepth  = 3
	nmpBaseR     = 3
	nmpDepthDiv  = 4
	nmpEvalDiv   = 200
	nmpMaxEvalR  = 3
	nmpVerifyMin = 12 // verify the null-move result with a reduced search past this depth

	// ProbCut.
	probCutMinDepth = 5
	probCutMargin   = 100
	probCutReduction = 4

	// Internal iterative deepening: when no TT move is available at
	// sufficient depth, do a shallow search first to seed move ordering.
	iidMinDepth    = 6
	iidReduction   = 3

	// Singular extension / multi-cut.
	singularMinDepth  = 8
	singularTTDepthOK = 3
	singularBetaMar   = 2

	// Late move reductions.
	lmrMinDepth     = 3
	lmrMinMoveCount = 4

	// Mate-distance pruning bounds are derived from MateScore directly,
	// no separate constant needed.

	// aspirationWindow is the initial +/- band around the previous
	// iteration's score.
	aspirationWindow = 25

	// Low-ply history table extra dimension, per spec.md §4.2.
	lowPlyTableDepth = 4
)
