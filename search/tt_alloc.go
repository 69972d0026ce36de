// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package search

// allocClusters allocates n clusters using a plain Go slice. The
// huge-page/mmap path in tt_alloc_linux.go is Linux-only; everywhere
// else a regular allocation is the portable fallback (spec.md §4.1
// doesn't require huge pages, only that a large contiguous table exist).
func allocClusters(n int) []cluster {
	return make([]cluster, n)
}
