// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package search

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// allocClusters allocates n clusters via an anonymous mmap with
// MADV_HUGEPAGE advice, falling back to a plain Go slice if the mmap
// fails (e.g. under a restrictive sandbox). A large hash table is the
// single biggest TLB-pressure consumer in the engine, so transparent
// huge pages matter more here than anywhere else in the process —
// mirroring the allocation strategy real multi-threaded Stockfish-
// lineage engines use for their transposition table.
func allocClusters(n int) []cluster {
	size := n * int(unsafe.Sizeof(cluster{}))
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return make([]cluster, n)
	}
	_ = unix.Madvise(data, unix.MADV_HUGEPAGE)
	return unsafe.Slice((*cluster)(unsafe.Pointer(&data[0])), n)
}
