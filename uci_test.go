package chesscore

import (
	"errors"
	"testing"
)

func TestMove2UCI(t *testing.T) {
	tt := []struct {
		move Move
		want string
	}{
		{NewMove(SE2, SE4, MoveNormal), "e2e4"},
		{NewMove(SE1, SG1, MoveCastle), "e1g1"},
		{NewPromotionMove(SA7, SA8, PromotionQueen), "a7a8q"},
		{NewPromotionMove(SB7, SA8, PromotionKnight), "b7a8n"},
	}
	for _, tc := range tt {
		if got := Move2UCI(tc.move); got != tc.want {
			t.Errorf("Move2UCI(%v) = %q, want %q", tc.move, got, tc.want)
		}
	}
}

func TestParseUCIRoundTrip(t *testing.T) {
	InitAttackTables()
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var legalMoves MoveList
	GenLegalMoves(pos, &legalMoves)

	for i := range legalMoves.Count {
		m := legalMoves.Moves[i]
		uci := Move2UCI(m)
		got, err := ParseUCI(uci, legalMoves)
		if err != nil {
			t.Errorf("ParseUCI(%q): %v", uci, err)
			continue
		}
		if got != m {
			t.Errorf("ParseUCI(%q) = %v, want %v", uci, got, m)
		}
	}
}

func TestParseUCIErrors(t *testing.T) {
	var legalMoves MoveList
	if _, err := ParseUCI("e2e4e4e4", legalMoves); !errors.Is(err, ErrMalformedUCI) {
		t.Errorf("ParseUCI overlong text error = %v, want ErrMalformedUCI", err)
	}
	if _, err := ParseUCI("i9i9", legalMoves); !errors.Is(err, ErrMalformedUCI) {
		t.Errorf("ParseUCI out-of-range text error = %v, want ErrMalformedUCI", err)
	}

	InitAttackTables()
	pos := NewPosition()
	GenLegalMoves(pos, &legalMoves)
	if _, err := ParseUCI("e2e5", legalMoves); !errors.Is(err, ErrNoMatchingMove) {
		t.Errorf("ParseUCI(%q) error = %v, want ErrNoMatchingMove", "e2e5", err)
	}
}
