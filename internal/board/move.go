package board

// RevertToken is the snapshot captured before a mutation that is
// sufficient to reverse exactly that one move. It is deliberately minimal —
// unlike a full position snapshot, UndoMove replays the inverse of each
// step Move performed rather than restoring a saved copy of every
// bitboard.
type RevertToken struct {
	From, To Square

	CapturedPiece PieceType
	CapturedColor Color

	WasEnPassant bool
	WasPromotion bool

	// SecondaryFrom/SecondaryTo describe the rook's slide during castling;
	// both are NoSquare for a non-castling move.
	SecondaryFrom, SecondaryTo Square

	prevCastling CastlingRights
	prevEP       Square
	prevSTM      Color
}

// NNUEUpdater is the collaborator Board.MoveNNUE drives. internal/nnue's
// Evaluator implements it; internal/board never imports internal/nnue —
// the dependency only runs the other way, avoiding the cycle the design
// notes warn about.
type NNUEUpdater interface {
	// Push copies the current accumulator frame onto a new top frame,
	// called once at the start of MoveNNUE before any toggles.
	Push()
	// Pop discards the top accumulator frame, restoring the previous one.
	// Board.UndoMove does not call this — callers driving NNUE must pop
	// themselves, symmetric to the Push that MoveNNUE performed.
	Pop()
	// Activate folds the feature for (pt, c, sq) into the top frame.
	Activate(pt PieceType, c Color, sq Square)
	// Deactivate removes the feature for (pt, c, sq) from the top frame.
	Deactivate(pt PieceType, c Color, sq Square)
}
