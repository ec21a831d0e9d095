package chesscore

import "testing"

func TestMoveIndexRoundTrip(t *testing.T) {
	InitAttackTables()

	tt := []string{
		InitialPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fenStr := range tt {
		t.Run(fenStr, func(t *testing.T) {
			pos, err := ParseFEN(fenStr)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", fenStr, err)
			}

			var legalMoves MoveList
			GenLegalMoves(pos, &legalMoves)

			for i := range legalMoves.Count {
				m := legalMoves.Moves[i]
				idx := MoveIndex(&pos, m)

				from, to, ok := MoveFromIndex(&pos, idx)
				if !ok {
					t.Errorf("MoveFromIndex(%d) for move %v: ok = false", idx, m)
					continue
				}
				if from != m.From() || to != m.To() {
					t.Errorf("MoveFromIndex(%d) = (%d, %d), want (%d, %d) for move %v",
						idx, from, to, m.From(), m.To(), m)
				}
			}
		})
	}
}

func TestRequiresLongMoveIndex(t *testing.T) {
	if RequiresLongMoveIndex(252) {
		t.Errorf("RequiresLongMoveIndex(252) = true, want false")
	}
	if !RequiresLongMoveIndex(253) {
		t.Errorf("RequiresLongMoveIndex(253) = false, want true")
	}
}

func TestDestinationIndexRoundTrip(t *testing.T) {
	InitAttackTables()
	dests := AttacksOf(Queen, ColorWhite, SD4, 0)
	for sq := 0; sq < 64; sq++ {
		if !dests.Set(sq) {
			continue
		}
		idx := destinationIndex(dests, sq)
		if got := destinationSquareByIndex(dests, idx); got != sq {
			t.Errorf("destinationSquareByIndex(destinationIndex(%d)) = %d, want %d", sq, got, sq)
		}
	}
}
