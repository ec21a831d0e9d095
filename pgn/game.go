package pgn

import (
	"strconv"
	"strings"

	"github.com/tmattsson/chesscore"
)

/*
Game is one PGN game's tag section and movetext, framed by Reader.Next. Its
views are only valid until the next call to Next (spec.md §4.6); callers
that need a game to outlive that should copy out of it first.
*/
type Game struct {
	tags       []TagPair
	moveTokens []string
	result     chesscore.Result
}

// Tag returns the value of the named tag pair, if present.
func (g *Game) Tag(name string) (string, bool) {
	for _, t := range g.tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// Tags returns every tag pair in the order they appeared.
func (g *Game) Tags() []TagPair { return g.tags }

// Result returns the game's recorded result, parsed from the trailing
// result token (spec.md §6: matched by the token's shape, not the Result
// tag, since the two may disagree in the wild).
func (g *Game) Result() chesscore.Result { return g.result }

// Date returns the game's Date tag (or UTCDate, which lichess archives use
// instead — spec.md §6), accepting the partial forms "YYYY", "YYYY.MM", and
// "YYYY.MM.DD" with "?" components treated as unknown (returned as 0). ok is
// false if neither tag is present or the value doesn't parse.
func (g *Game) Date() (year, month, day int, ok bool) {
	v, present := g.Tag("Date")
	if !present {
		v, present = g.Tag("UTCDate")
	}
	if !present {
		return 0, 0, 0, false
	}
	parts := strings.SplitN(v, ".", 3)
	fields := [3]int{}
	for i, p := range parts {
		if p == "?" || p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		fields[i] = n
	}
	return fields[0], fields[1], fields[2], true
}

// ECO returns the game's ECO tag, e.g. "B90", or "" if absent or "?".
func (g *Game) ECO() string {
	v, ok := g.Tag("ECO")
	if !ok || v == "?" {
		return ""
	}
	return v
}

// PlyCount returns the number of move tokens read from the movetext,
// including any null moves ("--").
func (g *Game) PlyCount() int { return len(g.moveTokens) }

// Moves returns the game's raw SAN move tokens, unresolved against any
// position (spec.md §4.6's "moves() view").
func (g *Game) Moves() []string { return g.moveTokens }

// Positions returns an iterator that resolves each SAN token against a
// running Position and yields each resolved move, with the running position
// after it available from the iterator (spec.md §4.6's
// "positions() view"). The running position starts from the standard
// starting array, or from the game's FEN tag when present alongside
// SetUp "1", per common PGN practice for annotated fragments.
func (g *Game) Positions() *PositionIterator {
	pos := chesscore.NewPosition()
	if fen, ok := g.Tag("FEN"); ok {
		if setup, _ := g.Tag("SetUp"); setup == "1" {
			if parsed, err := chesscore.ParseFEN(fen); err == nil {
				pos = parsed
			}
		}
	}
	return &PositionIterator{pos: pos, tokens: g.moveTokens}
}

/*
PositionIterator resolves a game's SAN move tokens one at a time against a
running Position. Per spec.md §7, an unresolved or ambiguous token is
recoverable, not fatal: Next stops early and Err reports it, rather than
panicking or aborting the whole stream.
*/
type PositionIterator struct {
	pos    chesscore.Position
	tokens []string
	i      int
	err    error
}

// Next resolves and applies the iterator's next move token, advancing its
// running Position. It returns false once the token list is exhausted or a
// token fails to resolve; check Err to distinguish the two.
func (it *PositionIterator) Next() (chesscore.Move, bool) {
	if it.err != nil || it.i >= len(it.tokens) {
		return 0, false
	}
	tok := it.tokens[it.i]
	it.i++

	if tok == "--" {
		// The null move has no board effect to apply.
		return 0, true
	}

	var legal chesscore.MoveList
	chesscore.GenLegalMoves(it.pos, &legal)
	m, err := chesscore.ParseSAN(tok, &it.pos, legal)
	if err != nil {
		it.err = err
		return 0, false
	}
	it.pos.DoMove(m)
	return m, true
}

// Position returns the iterator's current running position.
func (it *PositionIterator) Position() chesscore.Position { return it.pos }

// Err returns the error, if any, that stopped the iterator before its
// tokens were exhausted.
func (it *PositionIterator) Err() error { return it.err }
