package board

// occupant is the cached (piece, color) pair for a single square, keeping
// At O(1) without scanning all twelve bitboards.
type occupant struct {
	pt PieceType
	c  Color
}

var emptyOccupant = occupant{pt: NoPieceType, c: NoColor}

// BitboardMap is the raw piece-placement position: component A of the
// position core. It never checks move legality or pseudo-legality — every
// operation trusts its caller and runs in O(1).
type BitboardMap struct {
	pieces      [2][6]Bitboard
	occupied    [2]Bitboard
	squareIndex [64]occupant

	sideToMove Color
	castling   CastlingRights
	epTarget   Square

	hash uint64

	matEarly int32
	matLate  int32
}

// newEmptyBitboardMap returns a zeroed map with every square marked empty.
func newEmptyBitboardMap() *BitboardMap {
	bm := &BitboardMap{epTarget: NoSquare}
	for i := range bm.squareIndex {
		bm.squareIndex[i] = emptyOccupant
	}
	return bm
}

// at returns the (piece, color) occupying sq, or (NoPieceType, NoColor).
func (bm *BitboardMap) at(sq Square) (PieceType, Color) {
	o := bm.squareIndex[sq]
	return o.pt, o.c
}

// insert places (pt, c) on sq. Precondition: sq is empty; violating it
// corrupts the piece bitboards silently (callers guarantee the
// precondition, no check is performed).
func (bm *BitboardMap) insert(sq Square, pt PieceType, c Color) {
	bb := SquareBB(sq)
	bm.pieces[c][pt] |= bb
	bm.occupied[c] |= bb
	bm.squareIndex[sq] = occupant{pt: pt, c: c}

	bm.hash ^= zobristPieceSquare[c][pt][sq]
	early, late := taperedDelta(pt, c, sq)
	bm.matEarly += early
	bm.matLate += late
}

// empty removes (pt, c) from sq. Precondition: that piece occupies sq.
func (bm *BitboardMap) empty(pt PieceType, c Color, sq Square) {
	bb := SquareBB(sq)
	bm.pieces[c][pt] &^= bb
	bm.occupied[c] &^= bb
	bm.squareIndex[sq] = emptyOccupant

	bm.hash ^= zobristPieceSquare[c][pt][sq]
	early, late := taperedDelta(pt, c, sq)
	bm.matEarly -= early
	bm.matLate -= late
}

// move performs an atomic capture-or-move: if a piece of (pieceT, colorT)
// occupies `to`, it is removed first, then the piece at `from` is removed
// and reinserted at `to`. All hash/material/index bookkeeping happens
// inside this sequence so callers never see an inconsistent intermediate
// state.
func (bm *BitboardMap) move(pieceF PieceType, colorF Color, pieceT PieceType, colorT Color, from, to Square) {
	if pieceT != NoPieceType {
		bm.empty(pieceT, colorT, to)
	}
	bm.empty(pieceF, colorF, from)
	bm.insert(to, pieceF, colorF)
}

// moveQuiet is the short form used only to slide a rook back into place
// when unmaking a castle: a non-capturing move with no captured piece to
// consider.
func (bm *BitboardMap) moveQuiet(from, to Square) {
	pt, c := bm.at(from)
	bm.empty(pt, c, from)
	bm.insert(to, pt, c)
}

// copy returns a deep, field-by-field duplicate.
func (bm *BitboardMap) copy() *BitboardMap {
	cp := *bm
	return &cp
}
