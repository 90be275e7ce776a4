package board

import "testing"

func TestComputeHashMatchesIncrementalHash(t *testing.T) {
	b, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("FromFEN error: %v", err)
	}
	if got, want := b.ZobristHash(), computeHash(b.bm); got != want {
		t.Fatalf("incremental hash = %#x, recomputed = %#x", got, want)
	}
}

func TestHashChangesAcrossDistinctPositions(t *testing.T) {
	start, _ := FromFEN(StartFEN)
	other, _ := FromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3")
	if start.ZobristHash() == other.ZobristHash() {
		t.Fatalf("expected different hashes for different positions")
	}
}

func TestHashStableAfterMoveAndUndo(t *testing.T) {
	b, _ := FromFEN(StartFEN)
	before := b.ZobristHash()
	tok := b.Move(E2, E4, NoPieceType)
	if b.ZobristHash() == before {
		t.Fatalf("hash unexpectedly unchanged after a move")
	}
	if got, want := b.ZobristHash(), computeHash(b.bm); got != want {
		t.Fatalf("post-move incremental hash = %#x, recomputed = %#x", got, want)
	}
	b.UndoMove(tok)
	if got := b.ZobristHash(); got != before {
		t.Fatalf("hash after undo = %#x, want %#x", got, before)
	}
}
