// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pool.go implements the multi-threaded search pool of spec.md §5: a
// shared, lock-free transposition table, an atomic stop flag every
// worker polls, and private per-worker statistics/stacks so threads
// never contend on move ordering. There is no teacher precedent for
// this file — the teacher's Engine is single-threaded — so the
// goroutine-per-worker/errgroup dispatch pattern is grounded instead on
// the concurrent search-tree fan-out other pack repos use for
// goroutine-per-branch exploration, adapted here to goroutine-per-
// full-tree-copy (each worker searches the entire tree from the root,
// Lazy-SMP style, sharing only the table).
package search

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	. "github.com/harrier-engine/harrier/board"
)

// Worker is one search thread's private state: its own statistics
// tables, node counter, and a reference to the pool it belongs to for
// the shared table and stop flag.
type Worker struct {
	id    int
	pool  *Pool
	tt    *TT
	stats *Stats

	nodes    uint64
	selDepth int
	stopped  bool

	rootMoves []Move
	pv        [maxPly + 1][]Move

	// prevPi/prevTo record, for each ply, the piece and destination
	// square of the move that led into that ply's node, so counter-move
	// and continuation-history lookups at that node can key off the
	// actual previous move rather than a placeholder.
	prevPi [maxPly + 2]Piece
	prevTo [maxPly + 2]Square

	// rootExclude lists root moves searchRoot should skip, used by the
	// multi-PV driver to search for the Nth-best move once the first
	// N-1 have already been found.
	rootExclude []Move

	// nmpMinPly holds, per side, the shallowest ply at which that side
	// may attempt null-move pruning. A null-move verification search
	// raises its own side's guard to ply+1 for the duration of the
	// verification, so the verification itself cannot immediately
	// trigger another null-move cutoff at the same node and recurse
	// (spec.md §4's "per-side nmpMinPly guard to forbid recursive
	// nested verification").
	nmpMinPly [ColorArraySize]int
}

func newWorker(id int, pool *Pool) *Worker {
	w := &Worker{id: id, pool: pool, tt: pool.tt, stats: NewStats()}
	for i := range w.prevTo {
		w.prevTo[i] = NoSquare
	}
	return w
}

func (w *Worker) shouldStop() bool {
	if w.stopped {
		return true
	}
	if w.pool.stop.Load() {
		w.stopped = true
		return true
	}
	if w.pool.limits.Nodes != 0 && w.pool.totalNodes() >= w.pool.limits.Nodes {
		w.pool.stop.Store(true)
		w.stopped = true
		return true
	}
	if w.nodes&1023 == 0 && w.pool.timeUp() {
		w.pool.stop.Store(true)
		w.stopped = true
		return true
	}
	return false
}

func (w *Worker) evaluate(pos *Position) int32 {
	return w.pool.evalFn(pos)
}

// continuationPairs gathers the (piece, destination) played at each of
// contOffsets plies before ply, for continuation-history lookups and
// updates (spec.md §4.2). A slot whose ply falls before the root uses
// the sentinel prevTo/prevPi values newWorker seeds the stacks with, so
// Stats.ContinuationScore/UpdateContinuationHistory treat it as "no
// move to follow up on".
func (w *Worker) continuationPairs(ply int) [numContOffsets]ContinuationPair {
	var pairs [numContOffsets]ContinuationPair
	for i, off := range contOffsets {
		if p := ply - off; p >= 0 {
			pairs[i] = ContinuationPair{Piece: w.prevPi[p], To: w.prevTo[p]}
		} else {
			pairs[i] = ContinuationPair{Piece: NoPiece, To: NoSquare}
		}
	}
	return pairs
}

// Pool owns the resources every Worker shares: the transposition table,
// the atomic stop flag, the active search limits and the wall-clock
// deadline the time manager computed for the current move.
type Pool struct {
	tt      *TT
	workers []*Worker
	stop    atomic.Bool

	limits Limits
	evalFn func(*Position) int32
	marker *ThreadMarker

	timeMgr *TimeManager
}

// NewPool builds a pool with n worker slots sharing tt.
func NewPool(n int, tt *TT, evalFn func(*Position) int32) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{tt: tt, evalFn: evalFn, marker: NewThreadMarker()}
	p.workers = make([]*Worker, n)
	for i := range p.workers {
		p.workers[i] = newWorker(i, p)
	}
	return p
}

// Resize changes the number of worker slots, discarding their
// statistics (but not the shared table).
func (p *Pool) Resize(n int) {
	if n < 1 {
		n = 1
	}
	p.workers = make([]*Worker, n)
	for i := range p.workers {
		p.workers[i] = newWorker(i, p)
	}
}

// Stop requests every worker to halt at its next polling point.
func (p *Pool) Stop() { p.stop.Store(true) }

func (p *Pool) totalNodes() uint64 {
	var n uint64
	for _, w := range p.workers {
		n += w.nodes
	}
	return n
}

// RunIteration runs one synchronized iteration of every worker at
// depth, returning each worker's root score/best move/PV. Workers
// differ only by a small depth/move-order jitter on non-zero ids, the
// cheap "Lazy SMP" diversification strategy, since there is no split-
// point work-stealing tree to divide (spec.md §5 names only a shared
// TT and an advisory ThreadMarker as required coordination).
func (p *Pool) RunIteration(ctx context.Context, pos *Position, depth int, alpha, beta int32, rootExclude []Move) ([]int32, [][]Move, error) {
	scores := make([]int32, len(p.workers))
	pvs := make([][]Move, len(p.workers))

	g, ctx := errgroup.WithContext(ctx)
	for i, w := range p.workers {
		i, w := i, w
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d := depth
			if i%2 == 1 && depth > 1 {
				d = depth - 1 + (i % 3) // lazy-SMP depth jitter for helper threads
			}
			workerPos := pos.Clone()
			w.rootExclude = rootExclude
			score, pv := w.searchRoot(workerPos, d, alpha, beta)
			scores[i], pvs[i] = score, pv
			return nil
		})
	}
	err := g.Wait()
	return scores, pvs, err
}
