package board

import "testing"

// roundTrip applies a move, checks the provided invariant, then undoes it
// and asserts the position is bit-for-bit restored (P1).
func roundTrip(t *testing.T, fen string, from, to Square, promotion PieceType, check func(t *testing.T, b *Board)) {
	t.Helper()
	b, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q) error: %v", fen, err)
	}
	beforeFEN := b.ToFEN()
	beforeHash := b.ZobristHash()

	tok := b.Move(from, to, promotion)
	if check != nil {
		check(t, b)
	}

	b.UndoMove(tok)
	if got := b.ToFEN(); got != beforeFEN {
		t.Fatalf("FEN after undo = %q, want %q", got, beforeFEN)
	}
	if got := b.ZobristHash(); got != beforeHash {
		t.Fatalf("hash after undo = %#x, want %#x", got, beforeHash)
	}
}

func TestQuietPawnPushSetsEPTarget(t *testing.T) {
	roundTrip(t, StartFEN, E2, E4, NoPieceType, func(t *testing.T, b *Board) {
		if b.EPTarget() != E3 {
			t.Fatalf("EPTarget() = %v, want E3", b.EPTarget())
		}
		if got, want := b.ToFEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3"; got != want {
			t.Fatalf("ToFEN() = %q, want %q", got, want)
		}
	})
}

func TestEnPassantCaptureAndUndo(t *testing.T) {
	fen := "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6"
	roundTrip(t, fen, E5, D6, NoPieceType, func(t *testing.T, b *Board) {
		if pt, _ := b.At(D5); pt != NoPieceType {
			t.Fatalf("D5 should be vacated by the en-passant capture")
		}
		if pt, c := b.At(D6); pt != Pawn || c != White {
			t.Fatalf("D6 should hold a white pawn, got (%v, %v)", pt, c)
		}
		if b.EPTarget() != NoSquare {
			t.Fatalf("EPTarget() = %v, want NoSquare", b.EPTarget())
		}
	})
}

func TestKingsideCastleAndUndo(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -"
	roundTrip(t, fen, E1, G1, NoPieceType, func(t *testing.T, b *Board) {
		if pt, c := b.At(G1); pt != King || c != White {
			t.Fatalf("G1 should hold the white king")
		}
		if pt, c := b.At(F1); pt != Rook || c != White {
			t.Fatalf("F1 should hold the rook after castling")
		}
		if pt, _ := b.At(H1); pt != NoPieceType {
			t.Fatalf("H1 should be vacated")
		}
		wq, wk := b.CastlingRightsOf(White)
		if wk || wq {
			t.Fatalf("white castling rights should be cleared after castling")
		}
	})
}

func TestRookCaptureClearsBothSidesCastlingRights(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -"
	roundTrip(t, fen, A1, A8, NoPieceType, func(t *testing.T, b *Board) {
		wq, wk := b.CastlingRightsOf(White)
		bq, bk := b.CastlingRightsOf(Black)
		if !wk || wq || !bk || bq {
			t.Fatalf("castling rights = white(%v,%v) black(%v,%v), want white(true,false) black(true,false)", wk, wq, bk, bq)
		}
	})
}

func TestPromotionRoundTrip(t *testing.T) {
	fen := "8/P7/8/8/8/8/8/4k2K w - -"
	roundTrip(t, fen, A7, A8, Queen, func(t *testing.T, b *Board) {
		if pt, c := b.At(A8); pt != Queen || c != White {
			t.Fatalf("A8 should hold a white queen, got (%v, %v)", pt, c)
		}
	})
}

func TestPromotionWithCaptureRoundTrip(t *testing.T) {
	fen := "n6k/P7/8/8/8/8/8/4K3 w - -"
	roundTrip(t, fen, A7, A8, Queen, func(t *testing.T, b *Board) {
		if pt, c := b.At(A8); pt != Queen || c != White {
			t.Fatalf("A8 should hold a white queen, got (%v, %v)", pt, c)
		}
	})
}

func TestOccupancyConsistencyAfterMoves(t *testing.T) {
	b, _ := FromFEN(StartFEN)
	b.Move(E2, E4, NoPieceType)
	b.Move(E7, E5, NoPieceType)
	b.Move(G1, F3, NoPieceType)

	union := b.OccupancyOf(White) | b.OccupancyOf(Black)
	if union != b.AllOccupied() {
		t.Fatalf("OccupancyOf(White)|OccupancyOf(Black) != AllOccupied()")
	}
	if b.OccupancyOf(White)&b.OccupancyOf(Black) != 0 {
		t.Fatalf("White and Black occupancy overlap")
	}

	for sq := A1; sq <= H8; sq++ {
		pt, c := b.At(sq)
		occupiedBit := b.AllOccupied().IsSet(sq)
		if (pt != NoPieceType) != occupiedBit {
			t.Fatalf("square %v: At()=%v/%v but AllOccupied bit=%v", sq, pt, c, occupiedBit)
		}
	}
}

func TestClonesAreIndependent(t *testing.T) {
	b, _ := FromFEN(StartFEN)
	clone := b.Clone()
	clone.Move(E2, E4, NoPieceType)

	if b.ToFEN() != StartFEN {
		t.Fatalf("mutating a clone affected the original board")
	}
	if clone.ToFEN() == StartFEN {
		t.Fatalf("clone did not apply its move")
	}
}

func TestMoveNNUEPanicsOnNilUpdater(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MoveNNUE to panic with a nil updater")
		}
	}()
	b, _ := FromFEN(StartFEN)
	b.MoveNNUE(E2, E4, NoPieceType, nil)
}
