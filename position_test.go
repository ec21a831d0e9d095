package chesscore

import "testing"

func TestDoMoveUndoMove(t *testing.T) {
	tt := []struct {
		name   string
		fenStr string
		move   Move
		want   string
	}{
		{
			// No Black pawn stands on d4 or f4, so the en-passant target
			// is not actually capturable and must not be set (spec.md §3
			// Invariant 2).
			name:   "double pawn push with no capturing pawn leaves en-passant target clear",
			fenStr: InitialPositionFEN,
			move:   NewMove(SE2, SE4, MoveNormal),
			want:   "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
		},
		{
			name:   "double pawn push next to a capturing pawn sets en-passant target",
			fenStr: "rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 2",
			move:   NewMove(SE2, SE4, MoveNormal),
			want:   "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
		},
		{
			name:   "capture",
			fenStr: "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
			move:   NewMove(SE4, SD5, MoveNormal),
			want:   "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2",
		},
		{
			name:   "en passant",
			fenStr: "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
			move:   NewMove(SE5, SF6, MoveEnPassant),
			want:   "rnbqkbnr/ppp1p1pp/5P2/3p4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3",
		},
		{
			name:   "white short castle",
			fenStr: "rnbqkbnr/pppppppp/8/8/8/5NP1/PPPPPPBP/RNBQK2R w KQkq - 0 1",
			move:   NewMove(SE1, SG1, MoveCastle),
			want:   "rnbqkbnr/pppppppp/8/8/8/5NP1/PPPPPPBP/RNBQ1RK1 b kq - 1 1",
		},
		{
			name:   "promotion",
			fenStr: "8/P7/8/8/8/8/8/k6K w - - 0 1",
			move:   NewPromotionMove(SA7, SA8, PromotionQueen),
			want:   "Q7/8/8/8/8/8/8/k6K b - - 0 1",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fenStr)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.fenStr, err)
			}

			rm := pos.DoMove(tc.move)
			if got := SerializeFEN(pos); got != tc.want {
				t.Errorf("after DoMove: got %q, want %q", got, tc.want)
			}

			pos.UndoMove(rm)
			if got := SerializeFEN(pos); got != tc.fenStr {
				t.Errorf("after UndoMove: got %q, want %q", got, tc.fenStr)
			}
		})
	}
}

func TestDoMoveClearsCastlingRightsOnRookCapture(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/q7/R3K2R b KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	pos.DoMove(NewMove(SA2, SA1, MoveNormal))
	if pos.CastlingRights&CastlingWhiteLong != 0 {
		t.Errorf("white long castling right should be lost after the rook on a1 was captured")
	}
	if pos.CastlingRights&CastlingWhiteShort == 0 {
		t.Errorf("white short castling right should survive, the h1 rook was untouched")
	}
}

func TestGetPieceFromSquare(t *testing.T) {
	pos := NewPosition()
	if p := pos.GetPieceFromSquare(SE1); p != PieceWKing {
		t.Errorf("GetPieceFromSquare(SE1) = %d, want PieceWKing", p)
	}
	if p := pos.GetPieceFromSquare(SE4); p != PieceNone {
		t.Errorf("GetPieceFromSquare(SE4) = %d, want PieceNone", p)
	}
}

func TestNewMoveLegalityChecker(t *testing.T) {
	InitAttackTables()

	pos, err := ParseFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	c := NewMoveLegalityChecker(&pos)
	if !c.InCheck() {
		t.Errorf("expected the white king to be in check")
	}
	if c.Checkers.Count() != 1 {
		t.Errorf("Checkers.Count() = %d, want 1", c.Checkers.Count())
	}
}

func TestBetween(t *testing.T) {
	tt := []struct {
		a, b Square
		want Bitboard
	}{
		{SA1, SA1, 0},
		{SA1, SA4, Bit(SA2) | Bit(SA3)},
		{SA1, SD4, Bit(SB2) | Bit(SC3)},
		{SA1, SB3, 0},
	}
	for _, tc := range tt {
		if got := Between(tc.a, tc.b); got != tc.want {
			t.Errorf("Between(%d, %d) = %#x, want %#x", tc.a, tc.b, uint64(got), uint64(tc.want))
		}
	}
}
