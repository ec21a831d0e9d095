// uci.go implements conversions between moves and their Universal Chess
// Interface long algebraic notation.

package chesscore

import (
	"fmt"
	"strings"
)

// Move2UCI converts the move into long algebraic notation string.
// Examples: e2e4, e7e5, e1g1 (white short castling), e7e8q (for promotion).
func Move2UCI(m Move) string {
	var b strings.Builder
	b.Grow(5)

	b.WriteString(Square2String[m.From()])
	b.WriteString(Square2String[m.To()])

	if m.Type() == MovePromotion {
		switch m.PromoPiece() {
		case PromotionKnight:
			b.WriteByte('n')
		case PromotionBishop:
			b.WriteByte('b')
		case PromotionRook:
			b.WriteByte('r')
		case PromotionQueen:
			b.WriteByte('q')
		}
	}

	return b.String()
}

// ParseUCI resolves UCI move text (e.g. "e2e4", "e7e8q") against legalMoves
// and returns the matching [Move].
func ParseUCI(text string, legalMoves MoveList) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedUCI, text)
	}
	for _, c := range text[:4] {
		if (c < 'a' || c > 'h') && (c < '1' || c > '8') {
			return 0, fmt.Errorf("%w: %q", ErrMalformedUCI, text)
		}
	}

	from := string2Square(text[:2])
	to := string2Square(text[2:4])

	var wantPromo = -1
	if len(text) == 5 {
		switch text[4] {
		case 'n':
			wantPromo = PromotionKnight
		case 'b':
			wantPromo = PromotionBishop
		case 'r':
			wantPromo = PromotionRook
		case 'q':
			wantPromo = PromotionQueen
		default:
			return 0, fmt.Errorf("%w: %q", ErrMalformedUCI, text)
		}
	}

	for i := range legalMoves.Count {
		m := legalMoves.Moves[i]
		if m.From() != from || m.To() != to {
			continue
		}
		if m.Type() == MovePromotion {
			if wantPromo < 0 || m.PromoPiece() != wantPromo {
				continue
			}
		} else if wantPromo >= 0 {
			continue
		}
		return m, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrNoMatchingMove, text)
}
