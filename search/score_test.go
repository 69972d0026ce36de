// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "testing"

func TestIsMateScore(t *testing.T) {
	cases := []struct {
		score int32
		want  bool
	}{
		{0, false},
		{KnownWinScore - 1, false},
		{KnownWinScore, true},
		{MateScore, true},
		{KnownLossScore, true},
		{KnownLossScore + 1, false},
	}
	for _, c := range cases {
		if got := IsMateScore(c.score); got != c.want {
			t.Errorf("IsMateScore(%d) = %v, want %v", c.score, got, c.want)
		}
	}
}

func TestMateInRoundTripsWithFormatUCIScore(t *testing.T) {
	// Mate in 1 for the side to move: MateScore-1 resolves to ply 1.
	if n := MateIn(MateScore - 1); n != 1 {
		t.Errorf("MateIn(MateScore-1) = %d, want 1", n)
	}
	if s := FormatUCIScore(MateScore - 1); s != "mate 1" {
		t.Errorf("FormatUCIScore(MateScore-1) = %q, want %q", s, "mate 1")
	}
	// Getting mated in 1 (opponent delivers mate on their next move).
	if s := FormatUCIScore(MatedScore + 2); s != "mate -1" {
		t.Errorf("FormatUCIScore(MatedScore+2) = %q, want %q", s, "mate -1")
	}
}

func TestFormatUCIScoreCentipawns(t *testing.T) {
	cases := []struct {
		score int32
		want  string
	}{
		{0, "cp 0"},
		{37, "cp 37"},
		{-214, "cp -214"},
	}
	for _, c := range cases {
		if got := FormatUCIScore(c.score); got != c.want {
			t.Errorf("FormatUCIScore(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestScoreToFromTTRoundTrip(t *testing.T) {
	plies := []int{0, 1, 5, 40}
	scores := []int32{0, 100, -100, KnownWinScore + 3, KnownLossScore - 3, MateScore, MatedScore}
	for _, ply := range plies {
		for _, s := range scores {
			stored := ScoreToTT(s, ply)
			got := ScoreFromTT(stored, ply)
			if got != s {
				t.Errorf("ScoreFromTT(ScoreToTT(%d, %d), %d) = %d, want %d", s, ply, ply, got, s)
			}
		}
	}
}

func TestScoreToTTAdjustsOnlyMateScores(t *testing.T) {
	if got := ScoreToTT(100, 7); got != 100 {
		t.Errorf("ScoreToTT of a non-mate score should be unchanged: got %d, want 100", got)
	}
	if got := ScoreToTT(MateScore, 3); got != MateScore+3 {
		t.Errorf("ScoreToTT(MateScore, 3) = %d, want %d", got, MateScore+3)
	}
	if got := ScoreToTT(MatedScore, 3); got != MatedScore-3 {
		t.Errorf("ScoreToTT(MatedScore, 3) = %d, want %d", got, MatedScore-3)
	}
}
