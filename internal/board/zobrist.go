package board

// Zobrist hash keys, process-wide and read-only once initialized. Built
// from a fixed-seed PRNG so two processes compute identical hashes for
// identical positions, keyed per castling right and per en-passant file
// rather than by combined lookup table.
var (
	zobristPieceSquare [2][6][64]uint64 // [Color][PieceType][Square]
	zobristSTMBlack     uint64
	zobristCastling     [4]uint64 // one key per CastlingRights bit
	zobristEP           [8]uint64 // one key per file
)

func init() {
	initZobrist()
}

// prng is a xorshift64* generator: small, dependency-free, and fully
// reproducible across runs from a fixed seed.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPieceSquare[c][pt][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		zobristEP[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSTMBlack = rng.next()
}

// castlingContribution folds the keys of every right currently set in cr,
// one XOR per right, rather than indexing a single precomputed key per
// 16-way combination.
func castlingContribution(cr CastlingRights) uint64 {
	var h uint64
	for i := 0; i < 4; i++ {
		if cr&(1<<i) != 0 {
			h ^= zobristCastling[i]
		}
	}
	return h
}

// epContribution folds in the ep key for ep's file, or 0 if ep is NoSquare.
func epContribution(ep Square) uint64 {
	if ep == NoSquare {
		return 0
	}
	return zobristEP[ep.File()]
}

// computeHash recomputes the Zobrist hash from scratch — used by FEN
// parsing and by tests asserting P2 (hash recomputability).
func computeHash(bm *BitboardMap) uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := bm.pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				h ^= zobristPieceSquare[c][pt][sq]
			}
		}
	}
	if bm.sideToMove == Black {
		h ^= zobristSTMBlack
	}
	h ^= castlingContribution(bm.castling)
	h ^= epContribution(bm.epTarget)
	return h
}
