// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tt_persist.go implements the on-disk transposition table format of
// spec.md §6.5: a small header followed by the raw 32-byte cluster
// array, zstd-compressed end to end so a multi-gigabyte hash can be
// checkpointed and reloaded without an enormous file.
package search

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"

	"github.com/klauspost/compress/zstd"
)

const ttFileMagic uint32 = 0x48545401 // "HTT\x01"

// SaveFile writes tt to w in the persisted format.
func (tt *TT) SaveFile(w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	defer zw.Close()

	var header [16]byte
	binary.LittleEndian.PutUint32(header[0:4], ttFileMagic)
	binary.LittleEndian.PutUint64(header[4:12], uint64(len(tt.clusters)))
	binary.LittleEndian.PutUint32(header[12:16], uint32(tt.generation))
	if _, err := zw.Write(header[:]); err != nil {
		return err
	}

	bytes := clustersAsBytes(tt.clusters)
	_, err = zw.Write(bytes)
	return err
}

// LoadFile replaces tt's contents with the table persisted in r.
func (tt *TT) LoadFile(r io.Reader) error {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return err
	}
	defer zr.Close()

	br := bufio.NewReader(zr)
	var header [16]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return err
	}
	if magic := binary.LittleEndian.Uint32(header[0:4]); magic != ttFileMagic {
		return fmt.Errorf("search: bad transposition table file magic %#x", magic)
	}
	n := binary.LittleEndian.Uint64(header[4:12])
	generation := binary.LittleEndian.Uint32(header[12:16])

	clusters := allocClusters(int(n))
	if _, err := io.ReadFull(br, clustersAsBytes(clusters)); err != nil {
		return err
	}
	tt.clusters = clusters
	tt.mask = n - 1
	tt.generation = uint8(generation)
	return nil
}

// clustersAsBytes views cs as a byte slice without copying, relying on
// cluster having no pointers (it's pure fixed-width integer fields).
func clustersAsBytes(cs []cluster) []byte {
	if len(cs) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&cs[0])), len(cs)*int(unsafe.Sizeof(cluster{})))
}
