package board

import (
	"fmt"
	"math/bits"
)

// Bitboard is a 64-bit set of squares; bit sq is set iff the property holds
// at that square. Uses the same little-endian rank-file mapping as Square.
type Bitboard uint64

// SquareBB returns a bitboard with only sq set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set returns b with sq set.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | SquareBB(sq)
}

// Clear returns b with sq cleared.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ SquareBB(sq)
}

// IsSet reports whether sq is set in b.
func (b Bitboard) IsSet(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set square, or NoSquare if b is empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB clears and returns the lowest set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

func (b Bitboard) String() string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				s += "1 "
			} else {
				s += ". "
			}
		}
		s += fmt.Sprintf(" %d\n", rank+1)
	}
	s += "a b c d e f g h\n"
	return s
}
