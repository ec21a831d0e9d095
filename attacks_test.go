package chesscore

import "testing"

func TestGenPawnAttacks(t *testing.T) {
	tt := []struct {
		sq    Square
		color Color
		want  Bitboard
	}{
		{SE4, ColorWhite, Bit(SD5) | Bit(SF5)},
		{SE4, ColorBlack, Bit(SD3) | Bit(SF3)},
		{SA4, ColorWhite, Bit(SB5)},
		{SH4, ColorBlack, Bit(SG3)},
	}
	for _, tc := range tt {
		if got := genPawnAttacks(Bit(tc.sq), tc.color); got != tc.want {
			t.Errorf("genPawnAttacks(%d, %d) = %#x, want %#x", tc.sq, tc.color, uint64(got), uint64(tc.want))
		}
	}
}

func TestGenKnightAttacks(t *testing.T) {
	want := Bit(SF6) | Bit(SF2) | Bit(SD6) | Bit(SD2) | Bit(SG5) | Bit(SG3) | Bit(SC5) | Bit(SC3)
	if got := genKnightAttacks(Bit(SE4)); got != want {
		t.Errorf("genKnightAttacks(SE4) = %#x, want %#x", uint64(got), uint64(want))
	}
}

func TestGenKingAttacks(t *testing.T) {
	want := Bit(SA1) | Bit(SA2) | Bit(SB2) | Bit(SC2) | Bit(SC1)
	if got := genKingAttacks(Bit(SB1)); got != want {
		t.Errorf("genKingAttacks(SB1) = %#x, want %#x", uint64(got), uint64(want))
	}
}

func TestGenSliderAttacksStopsAtBlocker(t *testing.T) {
	occ := Bit(SD4)
	got := genSliderAttacks(SA4, occ, rookDirs)
	want := Bit(SB4) | Bit(SC4) | Bit(SD4) |
		Bit(SA1) | Bit(SA2) | Bit(SA3) | Bit(SA5) | Bit(SA6) | Bit(SA7) | Bit(SA8)
	if got != want {
		t.Errorf("genSliderAttacks(SA4, rookDirs) = %#x, want %#x", uint64(got), uint64(want))
	}
}

func TestLookupBishopRookQueenAttacksMatchGenSliderAttacks(t *testing.T) {
	InitAttackTables()

	for _, sq := range []Square{SA1, SD4, SH8, SE4} {
		occ := Bit(SC2) | Bit(SF6)
		if got, want := lookupBishopAttacks(sq, occ), genSliderAttacks(sq, occ, bishopDirs); got != want {
			t.Errorf("lookupBishopAttacks(%d) = %#x, want %#x", sq, uint64(got), uint64(want))
		}
		if got, want := lookupRookAttacks(sq, occ), genSliderAttacks(sq, occ, rookDirs); got != want {
			t.Errorf("lookupRookAttacks(%d) = %#x, want %#x", sq, uint64(got), uint64(want))
		}
		if got, want := lookupQueenAttacks(sq, occ), genSliderAttacks(sq, occ, bishopDirs)|genSliderAttacks(sq, occ, rookDirs); got != want {
			t.Errorf("lookupQueenAttacks(%d) = %#x, want %#x", sq, uint64(got), uint64(want))
		}
	}
}

func TestAttacksOfDispatch(t *testing.T) {
	InitAttackTables()

	if got, want := AttacksOf(Knight, ColorWhite, SE4, 0), knightAttacks[SE4]; got != want {
		t.Errorf("AttacksOf(Knight) = %#x, want %#x", uint64(got), uint64(want))
	}
	if got, want := AttacksOf(Pawn, ColorWhite, SE4, 0), pawnAttacks[ColorWhite][SE4]; got != want {
		t.Errorf("AttacksOf(Pawn) = %#x, want %#x", uint64(got), uint64(want))
	}
	if got, want := AttacksOf(King, ColorBlack, SE4, 0), kingAttacks[SE4]; got != want {
		t.Errorf("AttacksOf(King) = %#x, want %#x", uint64(got), uint64(want))
	}
}
