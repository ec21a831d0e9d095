// fen.go implements conversions between Forsyth-Edwards Notation (FEN)
// strings and Positions. Functions in this file expect the passed FEN
// strings to be valid, and may panic if they are not — callers parsing
// untrusted FEN (e.g. from a BCGN tag or a PGN comment) should validate
// first or recover.

package chesscore

import (
	"fmt"
	"strconv"
	"strings"
)

// Each FEN string consists of six parts, separated by a space:
//  1. Piece placement: parsed into the array of bitboards.
//  2. Active color: "w" White to move, "b" Black to move.
//  3. Castling rights: "-" if neither side has the ability to castle.
//  4. En passant target square: "-" if none.
//  5. Halfmove clock: used for the fifty-move rule.
//  6. Fullmove number.

// ParseFEN parses the given FEN string into a [Position]. It returns an
// error if the string does not have six space-separated fields or its
// numeric fields do not parse; a malformed piece-placement field may still
// panic, per this file's header comment. An en-passant field that doesn't
// correspond to an actually-capturable pawn is silently cleared rather
// than trusted (spec.md §3 Invariant 2), which requires [InitAttackTables]
// to have been called already.
func ParseFEN(fen string) (Position, error) {
	var p Position
	fields := strings.SplitN(fen, " ", 6)
	if len(fields) != 6 {
		return p, fmt.Errorf("%w: expected 6 space-separated fields, got %d", ErrMalformedFEN, len(fields))
	}

	p.Bitboards = ParseBitboards(fields[0])

	if fields[1] == "b" {
		p.ActiveColor = ColorBlack
	}

	for i := range len(fields[2]) {
		switch fields[2][i] {
		case 'K':
			p.CastlingRights |= CastlingWhiteShort
		case 'Q':
			p.CastlingRights |= CastlingWhiteLong
		case 'k':
			p.CastlingRights |= CastlingBlackShort
		case 'q':
			p.CastlingRights |= CastlingBlackLong
		}
	}

	p.EPTarget = string2Square(fields[3])
	if p.EPTarget != SquareNone && !epCaptureLegal(p, p.EPTarget, p.ActiveColor) {
		p.EPTarget = SquareNone
	}

	var err error
	p.HalfmoveCnt, err = strconv.Atoi(fields[4])
	if err != nil {
		return p, fmt.Errorf("%w: halfmove counter: %v", ErrMalformedFEN, err)
	}

	p.FullmoveCnt, err = strconv.Atoi(fields[5])
	if err != nil {
		return p, fmt.Errorf("%w: fullmove counter: %v", ErrMalformedFEN, err)
	}

	return p, nil
}

// SerializeFEN serializes the specified [Position] into a FEN string.
func SerializeFEN(p Position) string {
	var fen strings.Builder
	fen.Grow(64)

	fen.WriteString(SerializeBitboards(p.Bitboards))

	if p.ActiveColor == ColorWhite {
		fen.WriteString(" w ")
	} else {
		fen.WriteString(" b ")
	}

	cnt := 4
	if p.CastlingRights&CastlingWhiteShort != 0 {
		fen.WriteByte('K')
		cnt--
	}
	if p.CastlingRights&CastlingWhiteLong != 0 {
		fen.WriteByte('Q')
		cnt--
	}
	if p.CastlingRights&CastlingBlackShort != 0 {
		fen.WriteByte('k')
		cnt--
	}
	if p.CastlingRights&CastlingBlackLong != 0 {
		fen.WriteByte('q')
		cnt--
	}
	if cnt == 4 {
		fen.WriteByte('-')
	}
	fen.WriteByte(' ')

	if p.EPTarget == SquareNone {
		fen.WriteString("- ")
	} else {
		files := "abcdefgh"
		fen.WriteByte(files[SquareFile(p.EPTarget)])
		fen.WriteByte('0' + byte(SquareRank(p.EPTarget)+1))
		fen.WriteByte(' ')
	}

	fen.WriteString(strconv.Itoa(p.HalfmoveCnt))
	fen.WriteByte(' ')
	fen.WriteString(strconv.Itoa(p.FullmoveCnt))

	return fen.String()
}

// ParseBitboards converts the first field of a FEN string into an array of
// per-piece bitboards.
//
// May panic if the provided string is not valid.
func ParseBitboards(piecePlacement string) (bitboards [15]Bitboard) {
	square := 56

	for i := range len(piecePlacement) {
		char := piecePlacement[i]

		switch {
		case char == '/':
			square -= 16
		case char >= '1' && char <= '8':
			square += int(char - '0')
		default:
			var piece Piece
			switch char {
			case 'P':
				piece = PieceWPawn
			case 'N':
				piece = PieceWKnight
			case 'B':
				piece = PieceWBishop
			case 'R':
				piece = PieceWRook
			case 'Q':
				piece = PieceWQueen
			case 'K':
				piece = PieceWKing
			case 'p':
				piece = PieceBPawn
			case 'n':
				piece = PieceBKnight
			case 'b':
				piece = PieceBBishop
			case 'r':
				piece = PieceBRook
			case 'q':
				piece = PieceBQueen
			case 'k':
				piece = PieceBKing
			default:
				panic(fmt.Sprintf("chesscore: invalid FEN piece placement character %q", char))
			}

			bb := Bit(square)
			bitboards[piece] |= bb
			bitboards[12+ColorOf(piece)] |= bb
			bitboards[14] |= bb

			square++
		}
	}

	return bitboards
}

// SerializeBitboards converts the array of bitboards into the first field
// of a FEN string.
func SerializeBitboards(bitboards [15]Bitboard) string {
	b := strings.Builder{}
	b.Grow(20)

	var board [64]byte

	for i := range 12 {
		bb := bitboards[i]
		for bb != 0 {
			board[bb.PopLSB()] = PieceSymbols[i]
		}
	}

	emptySquares := byte(0)
	for rank := 7; rank >= 0; rank-- {
		for file := range 8 {
			square := 8*rank + file
			char := board[square]

			if char == 0 {
				emptySquares++
			} else {
				if emptySquares > 0 {
					b.WriteByte('0' + emptySquares)
					emptySquares = 0
				}
				b.WriteByte(char)
			}

			if (square+1)%8 == 0 {
				if emptySquares > 0 {
					b.WriteByte('0' + emptySquares)
					emptySquares = 0
				}
				if square != 7 {
					b.WriteByte('/')
				}
			}
		}
	}

	return b.String()
}

// string2Square parses the given string into a square index. Handles "-"
// as SquareNone.
func string2Square(str string) Square {
	if str == "-" {
		return SquareNone
	}
	file := int(str[0] - 'a')
	rank := int(str[1]-'0') - 1
	return rank*8 + file
}
