// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package board implements chess board representation, move generation and
// Zobrist hashing. It is the external collaborator the search core
// consumes through the interfaces documented in the search package: board
// representation and move generation are not part of the search algorithm.
package board

import "fmt"

// Square identifies one of the 64 squares on the board using
// little-endian rank-file mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	// NoSquare is a sentinel used where a square may be absent
	// (e.g. no en-passant target).
	NoSquare Square = 64

	SquareArraySize = 64
)

// RankFile builds a square from a 0-7 rank and 0-7 file.
func RankFile(rank, file int) Square {
	return Square(rank*8 + file)
}

// File returns 0-7, where 0 is the 'a' file.
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns 0-7, where 0 is the first rank.
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Bitboard returns the single-bit board with sq set.
func (sq Square) Bitboard() Bitboard {
	return Bitboard(1) << uint(sq)
}

// Relative shifts sq by dr ranks and df files. No bounds checking.
func (sq Square) Relative(dr, df int) Square {
	return Square(int(sq) + dr*8 + df)
}

// Mirror flips sq vertically, used to view the board from Black's side.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{byte(sq.File()) + 'a', byte(sq.Rank()) + '1'})
}

// ParseSquare parses algebraic notation, e.g. "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("board: invalid square %q", s)
	}
	f, r := -1, -1
	if 'a' <= s[0] && s[0] <= 'h' {
		f = int(s[0] - 'a')
	}
	if '1' <= s[1] && s[1] <= '8' {
		r = int(s[1] - '1')
	}
	if f < 0 || r < 0 {
		return NoSquare, fmt.Errorf("board: invalid square %q", s)
	}
	return RankFile(r, f), nil
}
