package nnue

import "github.com/astra-chess/poscore/internal/board"

// nnPieceIndex remaps a board.PieceType to the network's piece ordering.
// board.PieceType already runs Pawn..King in that order, so this is the
// identity — kept as a named step because the mapping is part of the wire
// contract, not an accident of how PieceType happens to be declared.
func nnPieceIndex(pt board.PieceType) int {
	return int(pt)
}

// featureIndexWhite computes the White-perspective feature index for a
// piece placement.
func featureIndexWhite(pt board.PieceType, c board.Color, sq board.Square) int {
	return int(c)*384 + nnPieceIndex(pt)*64 + int(sq)
}

// featureIndexBlack computes the Black-perspective feature index for the
// same placement: color is swapped and the square is flipped across the
// rank boundary so each side sees the board from its own corner.
func featureIndexBlack(pt board.PieceType, c board.Color, sq board.Square) int {
	return int(c.Other())*384 + nnPieceIndex(pt)*64 + int(sq.Mirror())
}
