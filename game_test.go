package chesscore

import "testing"

func TestGamePushMoveSAN(t *testing.T) {
	InitAttackTables()
	InitZobristKeys()

	g := NewGame()
	tt := []struct {
		uci  string
		want string
	}{
		{"e2e4", "e4"},
		{"e7e5", "e5"},
		{"g1f3", "Nf3"},
	}
	for _, tc := range tt {
		m, err := ParseUCI(tc.uci, g.LegalMoves)
		if err != nil {
			t.Fatalf("ParseUCI(%q): %v", tc.uci, err)
		}
		if got := g.PushMove(m); got != tc.want {
			t.Errorf("PushMove(%q) = %q, want %q", tc.uci, got, tc.want)
		}
	}
}

func TestGameIsCheckmate(t *testing.T) {
	InitAttackTables()
	InitZobristKeys()

	// Fool's mate.
	pos, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	g := NewGameFromPosition(pos)
	if !g.IsCheckmate() {
		t.Errorf("expected checkmate in the fool's mate position")
	}
	if g.IsStalemate() {
		t.Errorf("a checkmate position is not also a stalemate")
	}
}

func TestGameIsStalemate(t *testing.T) {
	InitAttackTables()
	InitZobristKeys()

	pos, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	g := NewGameFromPosition(pos)
	if !g.IsStalemate() {
		t.Errorf("expected stalemate")
	}
	if g.IsCheckmate() {
		t.Errorf("a stalemate position is not also a checkmate")
	}
}

func TestGameIsInsufficientMaterial(t *testing.T) {
	tt := []struct {
		name   string
		fenStr string
		want   bool
	}{
		{"bare kings", "8/8/8/4k3/8/8/8/4K3 w - - 0 1", true},
		{"king and bishop vs king", "8/8/8/4k3/8/8/8/3KB3 w - - 0 1", true},
		{"king and knight vs king", "8/8/8/4k3/8/8/8/3KN3 w - - 0 1", true},
		{"same-color bishops", "3k4/8/8/2b5/8/8/8/3KB3 w - - 0 1", true},
		{"opposite-color bishops", "3k4/8/8/3b4/8/8/8/3KB3 w - - 0 1", false},
		{"rook vs king is sufficient", "8/8/8/4k3/8/8/8/3KR3 w - - 0 1", false},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fenStr)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.fenStr, err)
			}
			g := NewGameFromPosition(pos)
			if got := g.IsInsufficientMaterial(); got != tc.want {
				t.Errorf("IsInsufficientMaterial() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGameThreefoldRepetition(t *testing.T) {
	InitAttackTables()
	InitZobristKeys()

	g := NewGame()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for rep := range 3 {
		for _, uci := range shuffle {
			m, err := ParseUCI(uci, g.LegalMoves)
			if err != nil {
				t.Fatalf("round %d: ParseUCI(%q): %v", rep, uci, err)
			}
			g.PushMove(m)
		}
	}
	if !g.IsThreefoldRepetition() {
		t.Errorf("expected threefold repetition after shuffling knights back and forth three times")
	}
}

func TestGameIsMoveLegal(t *testing.T) {
	InitAttackTables()
	InitZobristKeys()

	g := NewGame()
	legal := NewMove(SE2, SE4, MoveNormal)
	illegal := NewMove(SE2, SE5, MoveNormal)
	if !g.IsMoveLegal(legal) {
		t.Errorf("e2e4 should be legal from the starting position")
	}
	if g.IsMoveLegal(illegal) {
		t.Errorf("e2e5 should not be legal from the starting position")
	}
}

func TestGameDecrementTime(t *testing.T) {
	InitAttackTables()
	InitZobristKeys()

	g := NewGame()
	g.SetClock(60, 1)
	g.DecrementTime()
	if g.whiteTime != 59 {
		t.Errorf("whiteTime = %d, want 59", g.whiteTime)
	}
	if g.blackTime != 60 {
		t.Errorf("blackTime = %d, want 60", g.blackTime)
	}
}
