package nnue

import "github.com/astra-chess/poscore/internal/board"

// Evaluator couples a Network with an AccumulatorStack and implements
// board.NNUEUpdater, so a Board driven through MoveNNUE can push, pop, and
// toggle features without importing this package.
type Evaluator struct {
	net   *Network
	stack *AccumulatorStack
}

// NewEvaluator builds an Evaluator around net, with its own accumulator
// stack reset to net's feature bias.
func NewEvaluator(net *Network) *Evaluator {
	e := &Evaluator{net: net, stack: NewAccumulatorStack()}
	e.stack.Current().reset(net)
	return e
}

// Refresh rebuilds the live accumulator frame from b's current placement,
// the operation P5 checks every incremental update against.
func (e *Evaluator) Refresh(b *board.Board) {
	e.stack.Current().refresh(e.net, b)
}

// Evaluate returns the dequantized, centipawn-scaled score from stm's
// perspective.
func (e *Evaluator) Evaluate(stm board.Color) int {
	return e.net.Forward(e.stack.Current(), stm)
}

// Push implements board.NNUEUpdater.
func (e *Evaluator) Push() {
	e.stack.Push()
}

// Pop implements board.NNUEUpdater.
func (e *Evaluator) Pop() {
	e.stack.Pop()
}

// Activate implements board.NNUEUpdater.
func (e *Evaluator) Activate(pt board.PieceType, c board.Color, sq board.Square) {
	e.stack.Current().add(e.net, featureIndexWhite(pt, c, sq), featureIndexBlack(pt, c, sq))
}

// Deactivate implements board.NNUEUpdater.
func (e *Evaluator) Deactivate(pt board.PieceType, c board.Color, sq board.Square) {
	e.stack.Current().sub(e.net, featureIndexWhite(pt, c, sq), featureIndexBlack(pt, c, sq))
}

// Reset collapses the accumulator stack for a new game, matching the
// teacher-lineage evaluator's lifecycle call of the same name.
func (e *Evaluator) Reset() {
	e.stack.Reset()
	e.stack.Current().reset(e.net)
}
