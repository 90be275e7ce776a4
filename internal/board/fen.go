package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the board/stm/castling/ep portion of the standard starting
// position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"

// parseFEN parses the four required fields (board, side-to-move, castling,
// ep target); any trailing halfmove/fullmove clock fields are accepted and
// ignored, matching §6's "trailing clock fields accepted but ignored".
func parseFEN(fen string) (*BitboardMap, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("board: malformed FEN %q: need at least 4 fields, got %d", fen, len(fields))
	}

	bm := newEmptyBitboardMap()

	if err := parsePlacement(bm, fields[0]); err != nil {
		return nil, fmt.Errorf("board: malformed FEN %q: %w", fen, err)
	}

	switch fields[1] {
	case "w":
		bm.sideToMove = White
	case "b":
		bm.sideToMove = Black
	default:
		return nil, fmt.Errorf("board: malformed FEN %q: invalid side to move %q", fen, fields[1])
	}

	if err := parseCastling(bm, fields[2]); err != nil {
		return nil, fmt.Errorf("board: malformed FEN %q: %w", fen, err)
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("board: malformed FEN %q: invalid en passant target %q", fen, fields[3])
		}
		bm.epTarget = sq
	}

	bm.hash = computeHash(bm)
	return bm, nil
}

func parsePlacement(bm *BitboardMap, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("need 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pt, c, ok := pieceFromChar(ch)
			if !ok {
				return fmt.Errorf("invalid piece character %q", ch)
			}
			bm.insert(NewSquare(file, rank), pt, c)
			file++
		}
		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}
	return nil
}

func parseCastling(bm *BitboardMap, castling string) error {
	if castling == "-" {
		bm.castling = NoCastling
		return nil
	}
	for _, ch := range []byte(castling) {
		switch ch {
		case 'K':
			bm.castling |= WhiteKingSide
		case 'Q':
			bm.castling |= WhiteQueenSide
		case 'k':
			bm.castling |= BlackKingSide
		case 'q':
			bm.castling |= BlackQueenSide
		default:
			return fmt.Errorf("invalid castling character %q", ch)
		}
	}
	return nil
}

// toFEN renders the four-field form: board/stm/castling/ep, joined by
// single spaces.
func toFEN(bm *BitboardMap) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pt, c := bm.at(NewSquare(file, rank))
			if pt == NoPieceType {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pieceChar(pt, c))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if bm.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(bm.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(bm.epTarget.String())

	return sb.String()
}
