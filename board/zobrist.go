// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// zobrist.go builds the magic numbers used for incremental Zobrist
// hashing of positions. See Zobrist's 1970 technical report.

package board

import "math/rand"

var (
	zobristPiece [PieceArraySize][SquareArraySize]uint64
	// zobristEnpassant is sized one past the board so that the NoSquare
	// sentinel (no en-passant target) indexes a permanently-zero entry
	// instead of panicking or perturbing the hash.
	zobristEnpassant [SquareArraySize + 1]uint64
	zobristCastle    [AnyCastle + 1]uint64
	zobristColor     [ColorArraySize]uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func init() {
	r := rand.New(rand.NewSource(1))
	for col := White; col <= Black; col++ {
		for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
			for sq := Square(0); sq < SquareArraySize; sq++ {
				zobristPiece[ColorFigure(col, fig)][sq] = rand64(r)
			}
		}
	}
	for sq := A3; sq <= H3; sq++ {
		zobristEnpassant[sq] = rand64(r)
	}
	for sq := A6; sq <= H6; sq++ {
		zobristEnpassant[sq] = rand64(r)
	}
	for c := Castle(0); c <= AnyCastle; c++ {
		zobristCastle[c] = rand64(r)
	}
	zobristColor[White] = rand64(r)
	zobristColor[Black] = rand64(r)
}
