package main

import "testing"

// BenchmarkGames replays every game in games, searching each position to
// *depth, and relies on testing.B's own ns/op timing rather than a
// hardcoded expected node count: unlike the teacher's fixed-depth,
// single-threaded Engine, search.Driver's node counts depend on thread
// count, TT sizing and move-ordering heuristics that can legitimately
// shift between runs without indicating a regression.
func BenchmarkGames(b *testing.B) {
	for i := 0; i < b.N; i++ {
		evalAll(*depth)
	}
}

func BenchmarkGamesShallow(b *testing.B) {
	if testing.Short() {
		b.Skip("short mode")
	}
	for i := 0; i < b.N; i++ {
		evalAll(3)
	}
}
