package chesscore

import "testing"

func TestBitboardBasics(t *testing.T) {
	var b Bitboard
	if !b.Empty() {
		t.Errorf("zero-value Bitboard should be Empty")
	}

	b = b.With(SE4)
	if !b.Set(SE4) {
		t.Errorf("With(SE4) should set SE4")
	}
	if b.Count() != 1 {
		t.Errorf("Count() = %d, want 1", b.Count())
	}

	b = b.With(SA1)
	if b.LSB() != SA1 {
		t.Errorf("LSB() = %d, want SA1 (%d)", b.LSB(), SA1)
	}

	popped := b.PopLSB()
	if popped != SA1 {
		t.Errorf("PopLSB() = %d, want SA1", popped)
	}
	if b.Count() != 1 || !b.Set(SE4) {
		t.Errorf("after PopLSB, only SE4 should remain set")
	}

	b = b.Without(SE4)
	if !b.Empty() {
		t.Errorf("Without(SE4) on a singleton bitboard should empty it")
	}
}

func TestCountBits(t *testing.T) {
	tt := []struct {
		bb   uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{0xFF, 8},
		{0xFFFFFFFFFFFFFFFF, 64},
	}
	for _, tc := range tt {
		if got := CountBits(tc.bb); got != tc.want {
			t.Errorf("CountBits(%#x) = %d, want %d", tc.bb, got, tc.want)
		}
	}
}

func TestBitWriterBitReaderRoundTrip(t *testing.T) {
	bw := NewBitWriter()
	values := []struct {
		data uint
		size int
	}{
		{0b101, 3},
		{0b11111111, 8},
		{0b1, 1},
		{0b110011, 6},
		{0, 4},
	}
	for _, v := range values {
		bw.Write(v.data, v.size)
	}

	br := NewBitReader(bw.Bytes())
	for _, v := range values {
		if got := br.Read(v.size); got != uint64(v.data) {
			t.Errorf("Read(%d) = %b, want %b", v.size, got, v.data)
		}
	}
}

func TestBitWriterBytesIsIdempotent(t *testing.T) {
	bw := NewBitWriter()
	bw.Write(0b1010, 4)
	first := bw.Bytes()
	second := bw.Bytes()
	if len(first) != len(second) {
		t.Errorf("calling Bytes() twice should not grow the buffer: %d != %d", len(first), len(second))
	}
}
