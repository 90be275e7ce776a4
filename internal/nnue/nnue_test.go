package nnue

import (
	"testing"

	"github.com/astra-chess/poscore/internal/board"
)

func newTestEvaluator() *Evaluator {
	net := NewNetwork()
	net.InitRandom(0xC0FFEE)
	return NewEvaluator(net)
}

func accumulatorsEqual(a, b *Accumulator) bool {
	return a.A == b.A && a.B == b.B
}

func TestFeatureIndexWhiteAndBlackDiffer(t *testing.T) {
	w := featureIndexWhite(board.Queen, board.White, board.D4)
	b := featureIndexBlack(board.Queen, board.White, board.D4)
	if w == b {
		t.Fatalf("expected White- and Black-perspective indices to differ, both = %d", w)
	}
}

func TestFeatureIndexRange(t *testing.T) {
	for pt := board.Pawn; pt <= board.King; pt++ {
		for c := board.White; c <= board.Black; c++ {
			for sq := board.A1; sq <= board.H8; sq++ {
				w := featureIndexWhite(pt, c, sq)
				b := featureIndexBlack(pt, c, sq)
				if w < 0 || w >= Input {
					t.Fatalf("featureIndexWhite(%v,%v,%v) = %d out of [0,%d)", pt, c, sq, w, Input)
				}
				if b < 0 || b >= Input {
					t.Fatalf("featureIndexBlack(%v,%v,%v) = %d out of [0,%d)", pt, c, sq, b, Input)
				}
			}
		}
	}
}

func TestRefreshMatchesActivateSequence(t *testing.T) {
	e := newTestEvaluator()
	b, err := board.FromFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("FromFEN error: %v", err)
	}

	e.Refresh(b)
	want := *e.stack.Current()

	e.Reset()
	for sq := board.A1; sq <= board.H8; sq++ {
		pt, c := b.At(sq)
		if pt == board.NoPieceType {
			continue
		}
		e.Activate(pt, c, sq)
	}
	got := *e.stack.Current()

	if !accumulatorsEqual(&want, &got) {
		t.Fatalf("manual activate sequence does not match Refresh")
	}
}

func TestActivateDeactivateIsInvolution(t *testing.T) {
	e := newTestEvaluator()
	b, _ := board.FromFEN(board.StartFEN)
	e.Refresh(b)
	before := *e.stack.Current()

	e.Activate(board.Knight, board.White, board.E4)
	e.Deactivate(board.Knight, board.White, board.E4)

	after := *e.stack.Current()
	if !accumulatorsEqual(&before, &after) {
		t.Fatalf("activate followed by deactivate did not restore the accumulator")
	}
}

func TestPushPopRestoresAccumulator(t *testing.T) {
	e := newTestEvaluator()
	b, _ := board.FromFEN(board.StartFEN)
	e.Refresh(b)
	before := *e.stack.Current()

	e.Push()
	e.Activate(board.Queen, board.Black, board.D4)
	e.Pop()

	after := *e.stack.Current()
	if !accumulatorsEqual(&before, &after) {
		t.Fatalf("push/pop did not restore the prior accumulator frame")
	}
}

func TestMoveNNUECoherenceWithRefresh(t *testing.T) {
	e := newTestEvaluator()
	b, _ := board.FromFEN(board.StartFEN)
	e.Refresh(b)

	tok := b.MoveNNUE(board.E2, board.E4, board.NoPieceType, e)

	var refreshed Accumulator
	refreshed.refresh(e.net, b)
	live := e.stack.Current()
	if !accumulatorsEqual(&refreshed, live) {
		t.Fatalf("accumulator after MoveNNUE does not match refresh(board)")
	}

	b.UndoMove(tok)
	e.Pop()

	refreshed.refresh(e.net, b)
	live = e.stack.Current()
	if !accumulatorsEqual(&refreshed, live) {
		t.Fatalf("accumulator after UndoMove+Pop does not match refresh(board)")
	}
}

func TestMoveNNUECoherenceAcrossCastlingAndCapture(t *testing.T) {
	e := newTestEvaluator()
	b, _ := board.FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq -")
	e.Refresh(b)

	tok := b.MoveNNUE(board.E1, board.G1, board.NoPieceType, e)

	var refreshed Accumulator
	refreshed.refresh(e.net, b)
	if !accumulatorsEqual(&refreshed, e.stack.Current()) {
		t.Fatalf("accumulator after castling does not match refresh(board)")
	}

	b.UndoMove(tok)
	e.Pop()
	refreshed.refresh(e.net, b)
	if !accumulatorsEqual(&refreshed, e.stack.Current()) {
		t.Fatalf("accumulator after undoing castling does not match refresh(board)")
	}

	tok = b.MoveNNUE(board.A1, board.A8, board.NoPieceType, e)
	refreshed.refresh(e.net, b)
	if !accumulatorsEqual(&refreshed, e.stack.Current()) {
		t.Fatalf("accumulator after rook capture does not match refresh(board)")
	}

	b.UndoMove(tok)
	e.Pop()
	refreshed.refresh(e.net, b)
	if !accumulatorsEqual(&refreshed, e.stack.Current()) {
		t.Fatalf("accumulator after undoing rook capture does not match refresh(board)")
	}
}

func TestEvaluateProducesAnInteger(t *testing.T) {
	e := newTestEvaluator()
	b, _ := board.FromFEN(board.StartFEN)
	e.Refresh(b)
	// The forward pass should run without panicking and return some score;
	// with random weights the only thing worth asserting is stability.
	first := e.Evaluate(board.White)
	second := e.Evaluate(board.White)
	if first != second {
		t.Fatalf("Evaluate is not deterministic for an unchanged accumulator: %d != %d", first, second)
	}
}
