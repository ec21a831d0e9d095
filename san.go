/*
san.go implements serialization of moves into Standard Algebraic Notation
and resolution of SAN text back into a legal [Move] against a [Position].
See https://ia802908.us.archive.org/26/items/pgn-standard-1994-03-12/PGN_standard_1994-03-12.txt
Section 8.2.3.
*/

package chesscore

import (
	"fmt"
	"strings"
)

var files = "abcdefgh"

/*
Move2SAN encodes the specified move to its SAN representation.

SAN string consists of these parts:
 1. Piece name, omitted for pawns;
 2. Optional originating (source) file or rank, used for disambiguation. If
    a pawn performs a capture, its originating file is always included;
 3. Denotation of capture by 'x'. Mandatory for capture moves;
 4. Destination (to) file and rank;
 5. Denotation of check by '+'. Omitted when the move is a checkmate;
 6. Denotation of checkmate by '#'.

King castling and queen castling are encoded as "O-O" and "O-O-O"
respectively.
*/
func Move2SAN(
	m Move,
	pos *Position,
	legalMoves MoveList,
	p Piece,
	isCapture, isCheck, isCheckmate bool,
) string {
	if m.Type() == MoveCastle {
		if SquareFile(m.To()) == 2 {
			return withSuffix("O-O-O", isCheck, isCheckmate)
		}
		return withSuffix("O-O", isCheck, isCheckmate)
	}

	var b strings.Builder
	b.Grow(7)

	pt := PieceTypeOf(p)
	switch pt {
	case Knight:
		b.WriteByte('N')
	case Bishop:
		b.WriteByte('B')
	case Rook:
		b.WriteByte('R')
	case Queen:
		b.WriteByte('Q')
	case King:
		b.WriteByte('K')
	}

	// Resolve ambiguity if needed. Pawns disambiguate only via their
	// capture file, handled below.
	if pt != Pawn {
		ambiguous := false
		sameFile, sameRank := false, false
		for i := range legalMoves.Count {
			other := legalMoves.Moves[i]
			if pos.GetPieceFromSquare(other.From()) == p &&
				other.To() == m.To() && other.From() != m.From() {
				ambiguous = true
				if SquareFile(other.From()) == SquareFile(m.From()) {
					sameFile = true
				}
				if SquareRank(other.From()) == SquareRank(m.From()) {
					sameRank = true
				}
			}
		}
		if ambiguous {
			switch {
			case !sameFile:
				b.WriteByte(files[SquareFile(m.From())])
			case !sameRank:
				b.WriteByte(byte(SquareRank(m.From()) + '1'))
			default:
				b.WriteByte(files[SquareFile(m.From())])
				b.WriteByte(byte(SquareRank(m.From()) + '1'))
			}
		}
	}

	if isCapture {
		if pt == Pawn {
			b.WriteByte(files[SquareFile(m.From())])
		}
		b.WriteByte('x')
	}

	b.WriteString(Square2String[m.To()])

	if m.Type() == MovePromotion {
		switch m.PromoPiece() {
		case PromotionKnight:
			b.WriteString("=N")
		case PromotionBishop:
			b.WriteString("=B")
		case PromotionRook:
			b.WriteString("=R")
		case PromotionQueen:
			b.WriteString("=Q")
		}
	}

	if isCheckmate {
		b.WriteByte('#')
	} else if isCheck {
		b.WriteByte('+')
	}

	return b.String()
}

func withSuffix(s string, isCheck, isCheckmate bool) string {
	if isCheckmate {
		return s + "#"
	}
	if isCheck {
		return s + "+"
	}
	return s
}

/*
ParseSAN resolves SAN move text against the legal moves of pos and returns
the matching [Move]. It strips trailing "+"/"#"/"!"/"?" annotation
characters before matching and ignores them for legality purposes.

Returns [ErrMalformedSAN] if text isn't shaped like a move at all,
[ErrNoMatchingMove] if it's well-formed but matches no legal move, and
[ErrAmbiguousSAN] if it matches more than one (which should not happen for
well-formed SAN against a consistent legal-move list, but is checked
defensively since the text comes from outside the engine).
*/
func ParseSAN(text string, pos *Position, legalMoves MoveList) (Move, error) {
	s := strings.TrimRight(text, "+#!?")
	if s == "" {
		return 0, fmt.Errorf("%w: empty move text", ErrMalformedSAN)
	}

	if s == "O-O" || s == "0-0" {
		return findCastle(pos, legalMoves, false)
	}
	if s == "O-O-O" || s == "0-0-0" {
		return findCastle(pos, legalMoves, true)
	}

	pt := Pawn
	i := 0
	switch s[0] {
	case 'N':
		pt, i = Knight, 1
	case 'B':
		pt, i = Bishop, 1
	case 'R':
		pt, i = Rook, 1
	case 'Q':
		pt, i = Queen, 1
	case 'K':
		pt, i = King, 1
	}

	var promo PieceType = NoPieceType
	if eq := strings.IndexByte(s, '='); eq >= 0 {
		switch s[eq+1] {
		case 'N':
			promo = Knight
		case 'B':
			promo = Bishop
		case 'R':
			promo = Rook
		case 'Q':
			promo = Queen
		}
		s = s[:eq]
	}

	s = strings.ReplaceAll(s, "x", "")
	if len(s) < 2+i {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSAN, text)
	}

	dest := s[len(s)-2:]
	if dest[0] < 'a' || dest[0] > 'h' || dest[1] < '1' || dest[1] > '8' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSAN, text)
	}
	to := string2Square(dest)

	disambig := s[i : len(s)-2]
	var wantFile = -1
	var wantRank = -1
	for _, r := range disambig {
		switch {
		case r >= 'a' && r <= 'h':
			wantFile = int(r - 'a')
		case r >= '1' && r <= '8':
			wantRank = int(r - '1')
		}
	}

	var match Move
	found := false
	for idx := range legalMoves.Count {
		m := legalMoves.Moves[idx]
		if m.To() != to {
			continue
		}
		if PieceTypeOf(pos.GetPieceFromSquare(m.From())) != pt {
			continue
		}
		if m.Type() == MovePromotion {
			if promo == NoPieceType || m.PromoPiece() != promo-Knight {
				continue
			}
		} else if promo != NoPieceType {
			continue
		}
		if wantFile >= 0 && SquareFile(m.From()) != wantFile {
			continue
		}
		if wantRank >= 0 && SquareRank(m.From()) != wantRank {
			continue
		}
		if found {
			return 0, fmt.Errorf("%w: %q", ErrAmbiguousSAN, text)
		}
		match, found = m, true
	}

	if !found {
		return 0, fmt.Errorf("%w: %q", ErrNoMatchingMove, text)
	}
	return match, nil
}

func findCastle(pos *Position, legalMoves MoveList, long bool) (Move, error) {
	for i := range legalMoves.Count {
		m := legalMoves.Moves[i]
		if m.Type() != MoveCastle {
			continue
		}
		if long == (SquareFile(m.To()) == 2) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: castle not legal here", ErrNoMatchingMove)
}
