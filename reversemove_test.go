package chesscore

import "testing"

func TestPackedReverseMoveRoundTrip(t *testing.T) {
	tt := []struct {
		name   string
		fenStr string
		move   Move
	}{
		{
			name:   "quiet move",
			fenStr: InitialPositionFEN,
			move:   NewMove(SE2, SE4, MoveNormal),
		},
		{
			name:   "capture",
			fenStr: "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
			move:   NewMove(SE4, SD5, MoveNormal),
		},
		{
			name:   "en passant",
			fenStr: "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
			move:   NewMove(SE5, SF6, MoveEnPassant),
		},
		{
			name:   "castle",
			fenStr: "rnbqkbnr/pppppppp/8/8/8/5NP1/PPPPPPBP/RNBQK2R w KQkq - 0 1",
			move:   NewMove(SE1, SG1, MoveCastle),
		},
		{
			name:   "promotion capture",
			fenStr: "1n6/P7/8/8/8/8/8/k6K w - - 0 1",
			move:   NewPromotionMove(SA7, SB8, PromotionQueen),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fenStr)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.fenStr, err)
			}

			want := pos.DoMove(tc.move)
			packed := want.Pack()
			got := packed.Unpack(&pos)

			if got.Move != want.Move {
				t.Errorf("Move = %v, want %v", got.Move, want.Move)
			}
			if got.CapturedPiece != want.CapturedPiece {
				t.Errorf("CapturedPiece = %d, want %d", got.CapturedPiece, want.CapturedPiece)
			}
			if got.MovedPiece != want.MovedPiece {
				t.Errorf("MovedPiece = %d, want %d", got.MovedPiece, want.MovedPiece)
			}
			if got.PriorCastlingRights != want.PriorCastlingRights {
				t.Errorf("PriorCastlingRights = %d, want %d", got.PriorCastlingRights, want.PriorCastlingRights)
			}
			if got.PriorEPTarget != want.PriorEPTarget {
				t.Errorf("PriorEPTarget = %d, want %d", got.PriorEPTarget, want.PriorEPTarget)
			}

			// UndoMove must work identically with the reconstructed
			// ReverseMove as with the original. PackedReverseMove doesn't
			// carry the halfmove clock, so this only round-trips cleanly
			// because every fenStr above starts with a zero clock.
			pos.UndoMove(got)
			if got2 := SerializeFEN(pos); got2 != tc.fenStr {
				t.Errorf("UndoMove(unpacked) produced %q, want %q", got2, tc.fenStr)
			}
		})
	}
}
