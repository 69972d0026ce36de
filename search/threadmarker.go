// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// threadmarker.go implements the advisory (position key, ply) marker of
// spec.md §5: a best-effort "another worker is already expanding this
// node" signal that lets a Lazy-SMP style pool skip redundant work
// without any hard synchronization. A false positive (two workers both
// think they own a node) only costs duplicated work, never
// correctness, so the table uses plain atomics rather than locks — new
// code, since the teacher has no multi-threaded search to adapt.
package search

import (
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

const threadMarkerSize = 1 << 16

// ThreadMarker is a fixed-size, racy hash set of (position key, ply)
// pairs currently being searched by some worker.
type ThreadMarker struct {
	slots [threadMarkerSize]atomic.Uint64
}

// NewThreadMarker returns an empty marker table.
func NewThreadMarker() *ThreadMarker { return &ThreadMarker{} }

func markerTag(key uint64, ply int) uint64 {
	var buf [9]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(key >> (8 * i))
	}
	buf[8] = byte(ply)
	return xxhash.Sum64(buf[:])
}

func markerIndex(tag uint64) uint64 { return tag & (threadMarkerSize - 1) }

// TryMark reports whether (key, ply) was not already marked and marks
// it. Callers should treat a false return as "skip or deprioritize this
// node", never as a correctness guarantee — collisions are possible and
// accepted.
func (tm *ThreadMarker) TryMark(key uint64, ply int) bool {
	tag := markerTag(key, ply)
	slot := &tm.slots[markerIndex(tag)]
	prev := slot.Swap(tag)
	return prev != tag
}

// Unmark clears the marker for (key, ply), allowing another worker to
// claim it once this worker has moved on.
func (tm *ThreadMarker) Unmark(key uint64, ply int) {
	tag := markerTag(key, ply)
	slot := &tm.slots[markerIndex(tag)]
	slot.CompareAndSwap(tag, 0)
}
