package chesscore

import (
	"errors"
	"testing"
)

func TestMove2SAN(t *testing.T) {
	tt := []struct {
		name                          string
		fenStr                        string
		move                          Move
		isCapture, isCheck, isCheckmate bool
		want                          string
	}{
		{
			name:   "pawn push",
			fenStr: InitialPositionFEN,
			move:   NewMove(SE2, SE4, MoveNormal),
			want:   "e4",
		},
		{
			name:   "knight development",
			fenStr: InitialPositionFEN,
			move:   NewMove(SG1, SF3, MoveNormal),
			want:   "Nf3",
		},
		{
			name:      "pawn capture",
			fenStr:    "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
			move:      NewMove(SE4, SD5, MoveNormal),
			isCapture: true,
			want:      "exd5",
		},
		{
			name:   "short castle",
			fenStr: "rnbqkbnr/pppppppp/8/8/8/5NP1/PPPPPPBP/RNBQK2R w KQkq - 0 1",
			move:   NewMove(SE1, SG1, MoveCastle),
			want:   "O-O",
		},
		{
			name:   "promotion",
			fenStr: "8/P7/8/8/8/8/8/k6K w - - 0 1",
			move:   NewPromotionMove(SA7, SA8, PromotionQueen),
			want:   "a8=Q",
		},
		{
			name:        "checkmate suffix",
			fenStr:      "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
			move:        NewMove(SA1, SA8, MoveNormal),
			isCheck:     true,
			isCheckmate: true,
			want:        "Ra8#",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fenStr)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.fenStr, err)
			}
			var legalMoves MoveList
			GenLegalMoves(pos, &legalMoves)

			p := pos.GetPieceFromSquare(tc.move.From())
			got := Move2SAN(tc.move, &pos, legalMoves, p, tc.isCapture, tc.isCheck, tc.isCheckmate)
			if got != tc.want {
				t.Errorf("Move2SAN() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMove2SANDisambiguation(t *testing.T) {
	// Two white knights, on a2 and b1, can both reach c3.
	pos, err := ParseFEN("4k3/8/8/8/8/8/N7/1N2K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var legalMoves MoveList
	GenLegalMoves(pos, &legalMoves)

	move := NewMove(SB1, SC3, MoveNormal)
	p := pos.GetPieceFromSquare(move.From())
	got := Move2SAN(move, &pos, legalMoves, p, false, false, false)
	if got != "Nbc3" {
		t.Errorf("Move2SAN() = %q, want %q", got, "Nbc3")
	}
}

func TestParseSANRoundTrip(t *testing.T) {
	tt := []string{
		InitialPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fenStr := range tt {
		pos, err := ParseFEN(fenStr)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fenStr, err)
		}
		var legalMoves MoveList
		GenLegalMoves(pos, &legalMoves)

		for i := range legalMoves.Count {
			m := legalMoves.Moves[i]
			moved := pos.GetPieceFromSquare(m.From())
			san := Move2SAN(m, &pos, legalMoves, moved, false, false, false)

			got, err := ParseSAN(san, &pos, legalMoves)
			if err != nil {
				t.Errorf("ParseSAN(%q): %v", san, err)
				continue
			}
			if got != m {
				t.Errorf("ParseSAN(%q) = %v, want %v", san, got, m)
			}
		}
	}
}

func TestParseSANErrors(t *testing.T) {
	pos, err := ParseFEN(InitialPositionFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var legalMoves MoveList
	GenLegalMoves(pos, &legalMoves)

	if _, err := ParseSAN("", &pos, legalMoves); !errors.Is(err, ErrMalformedSAN) {
		t.Errorf("ParseSAN(\"\") error = %v, want ErrMalformedSAN", err)
	}
	if _, err := ParseSAN("e5", &pos, legalMoves); !errors.Is(err, ErrNoMatchingMove) {
		t.Errorf("ParseSAN(%q) error = %v, want ErrNoMatchingMove", "e5", err)
	}
}
