package nnue

import "github.com/astra-chess/poscore/internal/board"

// Network holds the quantized weights of the feature transformer and the
// output layer. Once loaded it is treated as read-only and may be shared
// across any number of Evaluators.
type Network struct {
	// FeatureWeight and FlippedFeatureWeight both store the feature
	// transformer's weight matrix with the HIDDEN-sized row for input idx
	// contiguous at idx*Hidden. LoadWeights (weights.go) fills both from the
	// file's single ft.weight array, so they carry the same values under our
	// layout; the incremental update path reads FlippedFeatureWeight and
	// the full-refresh path reads FeatureWeight, matching how the source
	// network happened to keep two iterators over one underlying scheme.
	FeatureWeight        []int16 // Input*Hidden
	FlippedFeatureWeight []int16 // Input*Hidden, contiguous per input index
	FeatureBias          []int16 // Hidden

	OutWeight []int16 // 2*Hidden, scale QB
	OutBias   int32   // scale QAB
}

// NewNetwork allocates a Network with all weights zeroed; callers must load
// real weights before evaluating anything meaningful.
func NewNetwork() *Network {
	return &Network{
		FeatureWeight:        make([]int16, Input*Hidden),
		FlippedFeatureWeight: make([]int16, Input*Hidden),
		FeatureBias:          make([]int16, Hidden),
		OutWeight:            make([]int16, 2*Hidden),
		OutBias:              0,
	}
}

// InitRandom fills every weight with small deterministic pseudo-random
// values, for tests that exercise the forward pass without a real weight
// file.
func (n *Network) InitRandom(seed uint64) {
	rng := seed
	next := func() int16 {
		rng ^= rng << 13
		rng ^= rng >> 7
		rng ^= rng << 17
		return int16(rng % 64)
	}
	for i := range n.FeatureWeight {
		v := next()
		n.FeatureWeight[i] = v
		n.FlippedFeatureWeight[i] = v
	}
	for i := range n.FeatureBias {
		n.FeatureBias[i] = next()
	}
	for i := range n.OutWeight {
		n.OutWeight[i] = next()
	}
	n.OutBias = int32(next())
}

// featureRow returns the Hidden-wide slice of FlippedFeatureWeight backing
// feature idx, the contiguous form the incremental update path needs.
func (n *Network) featureRow(idx int) []int16 {
	return n.FlippedFeatureWeight[idx*Hidden : (idx+1)*Hidden]
}

// Forward runs the output affine transform over an accumulator pair given
// the side to move, returning the dequantized centipawn score.
func (n *Network) Forward(acc *Accumulator, stm board.Color) int {
	var own, other *[Hidden]int16
	if stm == board.White {
		own, other = &acc.A, &acc.B
	} else {
		own, other = &acc.B, &acc.A
	}

	var sum int32
	for i := 0; i < Hidden; i++ {
		v := clip32(int32(own[i]) + int32(n.FeatureBias[i]))
		sum += v * int32(n.OutWeight[i])
	}
	for i := 0; i < Hidden; i++ {
		v := clip32(int32(other[i]) + int32(n.FeatureBias[i]))
		sum += v * int32(n.OutWeight[Hidden+i])
	}

	return int((sum + n.OutBias) * Scale / QAB)
}
