package nnue

import "github.com/astra-chess/poscore/internal/board"

// MaxFrames bounds the accumulator stack at the engine's maximum search
// depth plus quiescence horizon. 80 matches the source deployment this
// evaluator is modeled on.
const MaxFrames = 80

// Accumulator holds both perspectives' hidden-layer pre-activations: A is
// White's, B is Black's.
type Accumulator struct {
	A [Hidden]int16
	B [Hidden]int16
}

// reset zeroes the frame to the feature bias, the state a position with no
// pieces placed would have.
func (a *Accumulator) reset(net *Network) {
	copy(a.A[:], net.FeatureBias)
	copy(a.B[:], net.FeatureBias)
}

func (a *Accumulator) add(net *Network, whiteIdx, blackIdx int) {
	row := net.featureRow(whiteIdx)
	for i := 0; i < Hidden; i++ {
		a.A[i] += row[i]
	}
	row = net.featureRow(blackIdx)
	for i := 0; i < Hidden; i++ {
		a.B[i] += row[i]
	}
}

func (a *Accumulator) sub(net *Network, whiteIdx, blackIdx int) {
	row := net.featureRow(whiteIdx)
	for i := 0; i < Hidden; i++ {
		a.A[i] -= row[i]
	}
	row = net.featureRow(blackIdx)
	for i := 0; i < Hidden; i++ {
		a.B[i] -= row[i]
	}
}

// refresh rebuilds the frame from scratch by folding every piece on b into
// both perspectives' feature sets, reading rows from FeatureWeight.
func (a *Accumulator) refresh(net *Network, b *board.Board) {
	a.reset(net)
	for sq := board.A1; sq <= board.H8; sq++ {
		pt, c := b.At(sq)
		if pt == board.NoPieceType {
			continue
		}
		w := featureIndexWhite(pt, c, sq) * Hidden
		bl := featureIndexBlack(pt, c, sq) * Hidden
		for i := 0; i < Hidden; i++ {
			a.A[i] += net.FeatureWeight[w+i]
			a.B[i] += net.FeatureWeight[bl+i]
		}
	}
}

// AccumulatorStack is the fixed-depth frame buffer driven by Push/Pop, one
// frame per ply of make/unmake so no per-move allocation occurs on the hot
// path.
type AccumulatorStack struct {
	frames  [MaxFrames]Accumulator
	current int
}

// NewAccumulatorStack returns a stack with a single, empty frame at the
// bottom.
func NewAccumulatorStack() *AccumulatorStack {
	return &AccumulatorStack{current: 0}
}

// Reset collapses the stack back to its single bottom frame.
func (s *AccumulatorStack) Reset() {
	s.current = 0
}

// Current returns the live frame.
func (s *AccumulatorStack) Current() *Accumulator {
	return &s.frames[s.current]
}

// Push copies the live frame onto a new top frame and advances onto it,
// mirroring Board.MoveNNUE's push-before-mutate protocol.
func (s *AccumulatorStack) Push() {
	if s.current+1 >= MaxFrames {
		panic("nnue: accumulator stack exceeded its maximum ply depth")
	}
	s.frames[s.current+1] = s.frames[s.current]
	s.current++
}

// Pop discards the live frame, exposing the one beneath it.
func (s *AccumulatorStack) Pop() {
	if s.current == 0 {
		panic("nnue: accumulator stack popped past its bottom frame")
	}
	s.current--
}
