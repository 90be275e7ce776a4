// Package board implements the bitboard position core: piece placement,
// incremental Zobrist hashing, make/unmake, and FEN I/O.
package board

import "fmt"

// Square identifies a board square 0..63 under little-endian rank-file
// mapping: a1=0, h1=7, a8=56, h8=63.
type Square uint8

// Square constants for all 64 squares.
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

	// NoSquare is the sentinel for "no square" (en-passant target, king
	// lookups on an empty bitboard, etc).
	NoSquare Square = 64
)

// File returns the file (0=a .. 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (0=rank1 .. 7=rank8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Mirror flips the square across the rank boundary (a1<->a8 etc), used to
// translate between White's and Black's NNUE perspective.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// IsValid reports whether sq is an on-board square.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns algebraic notation ("e4"), or "-" for NoSquare.
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// NewSquare builds a Square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation ("e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(file, rank), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
