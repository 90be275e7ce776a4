package board

// Board is the public façade over BitboardMap: component C of the position
// core. It owns a BitboardMap and drives NNUE updates through a caller-
// supplied NNUEUpdater, but never imports the nnue package itself.
type Board struct {
	bm *BitboardMap
}

// Default returns a Board set up in the standard starting position.
func Default() *Board {
	b, err := FromFEN(StartFEN)
	if err != nil {
		panic("board: starting FEN failed to parse: " + err.Error())
	}
	return b
}

// FromFEN parses the four-field board/stm/castling/ep FEN form (extra
// trailing fields are accepted and ignored).
func FromFEN(fen string) (*Board, error) {
	bm, err := parseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Board{bm: bm}, nil
}

// Clone returns a deep copy; the clone shares no mutable state with b.
func (b *Board) Clone() *Board {
	return &Board{bm: b.bm.copy()}
}

// At returns the (piece type, color) occupying sq.
func (b *Board) At(sq Square) (PieceType, Color) {
	return b.bm.at(sq)
}

// EmptyAt reports whether sq holds no piece.
func (b *Board) EmptyAt(sq Square) bool {
	pt, _ := b.bm.at(sq)
	return pt == NoPieceType
}

// AllOccupied returns the union of every occupied square.
func (b *Board) AllOccupied() Bitboard {
	return b.bm.occupied[White] | b.bm.occupied[Black]
}

// OccupancyOf returns every square occupied by c.
func (b *Board) OccupancyOf(c Color) Bitboard {
	return b.bm.occupied[c]
}

// PiecesOf returns every square occupied by a (pt, c) piece.
func (b *Board) PiecesOf(pt PieceType, c Color) Bitboard {
	return b.bm.pieces[c][pt]
}

// KingOf returns c's king square, or NoSquare if c has none (a violation
// of invariant I3 that callers must never produce).
func (b *Board) KingOf(c Color) Square {
	return b.bm.pieces[c][King].LSB()
}

// CastlingRightsOf returns c's (queenside, kingside) castling flags.
func (b *Board) CastlingRightsOf(c Color) (queenside, kingside bool) {
	k, q := rightsOf(c)
	return b.bm.castling&q != 0, b.bm.castling&k != 0
}

// ColorToMove returns the side to move.
func (b *Board) ColorToMove() Color {
	return b.bm.sideToMove
}

// EPTarget returns the current en-passant target square, or NoSquare.
func (b *Board) EPTarget() Square {
	return b.bm.epTarget
}

// ZobristHash returns the incrementally maintained position hash.
func (b *Board) ZobristHash() uint64 {
	return b.bm.hash
}

// MaterialEvalEarly returns the tapered midgame material+PSQT score,
// White-positive.
func (b *Board) MaterialEvalEarly() int32 {
	return b.bm.matEarly
}

// MaterialEvalLate returns the tapered endgame material+PSQT score,
// White-positive.
func (b *Board) MaterialEvalLate() int32 {
	return b.bm.matLate
}

// InsertPiece places (pt, c) on an empty square sq. Used for position
// construction outside of FEN parsing; preconditions match BitboardMap's.
func (b *Board) InsertPiece(sq Square, pt PieceType, c Color) {
	b.bm.insert(sq, pt, c)
}

// RemovePiece clears sq, which must currently hold a piece.
func (b *Board) RemovePiece(sq Square) {
	pt, c := b.bm.at(sq)
	b.bm.empty(pt, c, sq)
}

// ToFEN renders the four-field board/stm/castling/ep FEN form.
func (b *Board) ToFEN() string {
	return toFEN(b.bm)
}

// Move applies a pseudo-legal move and returns a RevertToken sufficient to
// reverse it via UndoMove. Legality with respect to leaving the mover's own
// king in check is never checked here — that is the caller's (search's)
// responsibility.
func (b *Board) Move(from, to Square, promotion PieceType) RevertToken {
	return b.doMove(from, to, promotion, nil)
}

// MoveNNUE behaves exactly like Move but additionally drives upd: it pushes
// a new accumulator frame and emits one Activate/Deactivate call per
// feature toggled by the move.
func (b *Board) MoveNNUE(from, to Square, promotion PieceType, upd NNUEUpdater) RevertToken {
	if upd == nil {
		panic("board: MoveNNUE called with a nil NNUEUpdater")
	}
	return b.doMove(from, to, promotion, upd)
}

// doMove implements §4.3's algorithm; upd is nil for the plain variant.
// Step numbers in comments refer to that algorithm.
func (b *Board) doMove(from, to Square, promotion PieceType, upd NNUEUpdater) RevertToken {
	bm := b.bm

	// 1. Read the moving and (possibly) captured occupants.
	pieceF, colorF := bm.at(from)
	pieceT, colorT := bm.at(to)

	// 2. Snapshot castling/ep/stm into the token.
	tok := RevertToken{
		From: from, To: to,
		CapturedPiece: NoPieceType, CapturedColor: NoColor,
		SecondaryFrom: NoSquare, SecondaryTo: NoSquare,
		prevCastling: bm.castling,
		prevEP:       bm.epTarget,
		prevSTM:      bm.sideToMove,
	}

	if upd != nil {
		upd.Push()
	}

	// 3. Existing capture.
	if pieceT != NoPieceType {
		tok.CapturedPiece = pieceT
		tok.CapturedColor = colorT
		if upd != nil {
			upd.Deactivate(pieceT, colorT, to)
		}
	}

	// 4. En-passant resolution.
	if pieceF == Pawn && to == bm.epTarget {
		var epPieceSq Square
		if colorF == White {
			epPieceSq = to - 8
		} else {
			epPieceSq = to + 8
		}
		capturedColor := colorF.Other()
		if upd != nil {
			upd.Deactivate(Pawn, capturedColor, epPieceSq)
		}
		bm.empty(Pawn, capturedColor, epPieceSq)
		tok.WasEnPassant = true
		tok.CapturedColor = capturedColor
	}

	// 5. Ep hash out.
	oldEP := bm.epTarget
	if oldEP != NoSquare {
		bm.hash ^= zobristEP[oldEP.File()]
	}

	// 6. New ep target.
	if pieceF == Pawn && abs(int(to)-int(from)) == 16 {
		var newEP Square
		if colorF == White {
			newEP = from + 8
		} else {
			newEP = from - 8
		}
		bm.epTarget = newEP
		bm.hash ^= zobristEP[newEP.File()]
	} else {
		bm.epTarget = NoSquare
	}

	// 7. Primary mutation.
	if upd != nil {
		upd.Deactivate(pieceF, colorF, from)
	}
	bm.move(pieceF, colorF, pieceT, colorT, from, to)
	if upd != nil {
		upd.Activate(pieceF, colorF, to)
	}

	// 8. Promotion.
	if promotion != NoPieceType {
		if pieceF != Pawn {
			panic("board: promotion flag set for a non-pawn move")
		}
		if upd != nil {
			upd.Deactivate(Pawn, colorF, to)
		}
		bm.empty(Pawn, colorF, to)
		bm.insert(to, promotion, colorF)
		if upd != nil {
			upd.Activate(promotion, colorF, to)
		}
		tok.WasPromotion = true
	}

	// 9. Castling rights update.
	bm.hash ^= castlingContribution(bm.castling)

	if pieceF == Rook {
		switch {
		case from.File() == 0:
			if colorF == White {
				bm.castling &^= WhiteQueenSide
			} else {
				bm.castling &^= BlackQueenSide
			}
		case from.File() == 7:
			if colorF == White {
				bm.castling &^= WhiteKingSide
			} else {
				bm.castling &^= BlackKingSide
			}
		}
	}

	if pieceF == King {
		if colorF == White {
			bm.castling &^= WhiteKingSide | WhiteQueenSide
		} else {
			bm.castling &^= BlackKingSide | BlackQueenSide
		}

		if abs(int(to)-int(from)) == 2 {
			if to > from {
				tok.SecondaryFrom = to + 1
				tok.SecondaryTo = to - 1
			} else {
				tok.SecondaryFrom = to - 2
				tok.SecondaryTo = to + 1
			}

			rookPt, rookColor := bm.at(tok.SecondaryFrom)
			if rookPt != Rook || rookColor != colorF {
				panic("board: castling rook missing at expected corner")
			}
			if upd != nil {
				upd.Deactivate(rookPt, rookColor, tok.SecondaryFrom)
			}
			bm.move(rookPt, rookColor, NoPieceType, NoColor, tok.SecondaryFrom, tok.SecondaryTo)
			if upd != nil {
				upd.Activate(rookPt, rookColor, tok.SecondaryTo)
			}
		}
	}

	if pieceT == Rook {
		switch to {
		case H1:
			bm.castling &^= WhiteKingSide
		case A1:
			bm.castling &^= WhiteQueenSide
		case H8:
			bm.castling &^= BlackKingSide
		case A8:
			bm.castling &^= BlackQueenSide
		}
	}

	bm.hash ^= castlingContribution(bm.castling)

	// 10. Side to move.
	bm.sideToMove = bm.sideToMove.Other()
	bm.hash ^= zobristSTMBlack

	return tok
}

// UndoMove reverses the move that produced tok. NNUE handling for unmake is
// never done here — callers driving NNUE pop their own accumulator stack
// separately, symmetric to the Push MoveNNUE performed.
func (b *Board) UndoMove(tok RevertToken) {
	bm := b.bm
	from, to := tok.From, tok.To

	// 1. Castling.
	bm.hash ^= castlingContribution(bm.castling)
	bm.castling = tok.prevCastling
	bm.hash ^= castlingContribution(bm.castling)

	// 2. En passant.
	if bm.epTarget != NoSquare {
		bm.hash ^= zobristEP[bm.epTarget.File()]
	}
	bm.epTarget = tok.prevEP
	if bm.epTarget != NoSquare {
		bm.hash ^= zobristEP[bm.epTarget.File()]
	}

	// 3. Side to move.
	bm.sideToMove = tok.prevSTM
	bm.hash ^= zobristSTMBlack

	// 4. Promotion: replace the promoted piece with a pawn before moving
	// it back, so step 5 moves a pawn rather than the promoted piece.
	if tok.WasPromotion {
		pt, c := bm.at(to)
		bm.empty(pt, c, to)
		bm.insert(to, Pawn, c)
	}

	// 5. Move the piece currently at `to` back to `from`.
	pF, cF := bm.at(to)
	bm.move(pF, cF, NoPieceType, NoColor, to, from)

	switch {
	case tok.WasEnPassant:
		// 6. Restore the captured pawn.
		var epSq Square
		if tok.CapturedColor == White {
			epSq = to + 8
		} else {
			epSq = to - 8
		}
		bm.insert(epSq, Pawn, tok.CapturedColor)
	case tok.CapturedPiece != NoPieceType:
		// 7. Restore the captured piece.
		bm.insert(to, tok.CapturedPiece, tok.CapturedColor)
	case tok.SecondaryFrom != NoSquare:
		// 8. Slide the castled rook back.
		bm.moveQuiet(tok.SecondaryTo, tok.SecondaryFrom)
	}
}
