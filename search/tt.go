// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tt.go implements the shared transposition table: a flat array of
// 32-byte, 3-entry clusters probed by every search worker without
// locking (spec.md §4.1). Concurrent probes/saves may race; a torn or
// stale entry is rejected by its 16-bit verification key, the same
// trade-off the teacher's single-threaded HashTable made for speed
// (hash_table.go's "these errors are not common" observation still
// holds, now extended to true concurrent writers instead of just hash
// collisions).
package search

import (
	. "github.com/harrier-engine/harrier/board"
)

// Bound records which side of the search window a stored score is
// relative to.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower // score is a lower bound (search failed high)
	BoundUpper // score is an upper bound (search failed low)
)

// entry is one 10-byte transposition table slot.
type entry struct {
	key16      uint16
	move       Move
	score      int16
	eval       int16
	genBoundPV uint8 // generation:5 | pv:1 | bound:2
	depth      uint8
}

const boundMask = 0x3
const pvBit = 0x4
const generationShift = 3 // low 3 bits are bound(2)+pv(1); generation occupies the rest

func (e entry) bound() Bound { return Bound(e.genBoundPV & boundMask) }
func (e entry) isPV() bool   { return e.genBoundPV&pvBit != 0 }

// genOf returns the entry's generation, left-shifted into the same
// scale as TT.generation so the two are directly comparable/subtractable.
func genOf(e *entry) uint8 { return e.genBoundPV &^ (boundMask | pvBit) }

func packGenBoundPV(gen uint8, pv bool, bound Bound) uint8 {
	v := gen
	if pv {
		v |= pvBit
	}
	return v | uint8(bound)
}

// cluster is three entries padded to 32 bytes, matching spec.md §6.5's
// on-disk/in-memory layout.
type cluster struct {
	entries [3]entry
	_       [2]byte
}

// TT is the shared transposition table. The zero value is not usable;
// construct with NewTT.
type TT struct {
	clusters   []cluster
	mask       uint64
	generation uint8
}

// NewTT allocates a table sized to sizeMB megabytes, rounded down to a
// power-of-two number of clusters.
func NewTT(sizeMB int) *TT {
	tt := &TT{}
	tt.Resize(sizeMB)
	return tt
}

// Resize reallocates the table, discarding all entries.
func (tt *TT) Resize(sizeMB int) {
	if sizeMB < 1 {
		sizeMB = 1
	}
	bytes := uint64(sizeMB) << 20
	n := bytes / uint64(clusterSize)
	size := uint64(1)
	for size*2 <= n {
		size *= 2
	}
	if size == 0 {
		size = 1
	}
	tt.clusters = allocClusters(int(size))
	tt.mask = size - 1
	tt.generation = 0
}

// Clear zeroes every entry without reallocating.
func (tt *TT) Clear() {
	for i := range tt.clusters {
		tt.clusters[i] = cluster{}
	}
}

// NewSearch bumps the table's generation, marking all prior entries as
// aged (but not erasing them — they remain usable, just lower priority
// for replacement, per spec.md §4.1's generational aging).
func (tt *TT) NewSearch() {
	tt.generation += 1 << generationShift
}

func (tt *TT) index(key uint64) uint64 { return key & tt.mask }

// Probe looks up key and returns the stored entry and whether it was
// found (by 16-bit verification match). Racy: a concurrent Save for a
// different key may be interleaved; callers must treat Probe results as
// advisory, never as ground truth about the position.
func (tt *TT) Probe(key uint64) (move Move, score, eval int32, depth int, bound Bound, pv bool, found bool) {
	c := &tt.clusters[tt.index(key)]
	key16 := uint16(key)
	for i := range c.entries {
		e := c.entries[i]
		if e.key16 == key16 && e.genBoundPV != 0 {
			return e.move, int32(e.score), int32(e.eval), int(e.depth), e.bound(), e.isPV(), true
		}
	}
	return NoMove, 0, 0, 0, BoundNone, false, false
}

// Save stores a search result, replacing the least valuable entry in
// key's cluster. Replacement prefers an empty slot, then a matching
// key (always refresh), then the shallowest/oldest entry — the same
// depth-preferred policy the teacher's HashTable.put approximates with
// its single-slot "entry.depth+1 >= entry.depth" check, generalized to
// a 3-way cluster.
func (tt *TT) Save(key uint64, move Move, score, eval int32, depth int, bound Bound, pv bool) {
	c := &tt.clusters[tt.index(key)]
	key16 := uint16(key)

	replace := &c.entries[0]
	for i := range c.entries {
		e := &c.entries[i]
		if e.genBoundPV == 0 || e.key16 == key16 {
			replace = e
			break
		}
		if worseToKeep(replace, e, tt.generation) {
			replace = e
		}
	}

	if move == NoMove && replace.key16 == key16 {
		move = replace.move // keep the previous best move when just refreshing a static eval
	}

	*replace = entry{
		key16:      key16,
		move:       move,
		score:      clampInt16(score),
		eval:       clampInt16(eval),
		genBoundPV: packGenBoundPV(tt.generation, pv, bound),
		depth:      clampUint8(depth),
	}
}

// worseToKeep reports whether candidate is a worse entry to retain than
// incumbent, i.e. candidate should be evicted first. Older generation
// and shallower depth both count against an entry.
func worseToKeep(incumbent, candidate *entry, currentGen uint8) bool {
	incAge := currentGen - genOf(incumbent)
	candAge := currentGen - genOf(candidate)
	incValue := int(incumbent.depth) - int(incAge)
	candValue := int(candidate.depth) - int(candAge)
	return candValue < incValue
}

func clampInt16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

func clampUint8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Hashfull estimates table occupancy in permille, sampling the first
// 1000 clusters as UCI's "info hashfull" expects.
func (tt *TT) Hashfull() int {
	n := 1000
	if len(tt.clusters) < n {
		n = len(tt.clusters)
	}
	if n == 0 {
		return 0
	}
	used := 0
	for i := 0; i < n; i++ {
		for ei := range tt.clusters[i].entries {
			e := &tt.clusters[i].entries[ei]
			if e.genBoundPV != 0 && genOf(e) == tt.generation {
				used++
			}
		}
	}
	return used * 1000 / (n * 3)
}

const clusterSize = 32
