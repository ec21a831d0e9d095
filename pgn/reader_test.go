package pgn

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmattsson/chesscore"
)

func init() {
	chesscore.InitAttackTables()
}

const sampleGame = `[Event "Test Open"]
[Site "Somewhere"]
[Date "2026.07.30"]
[Round "1"]
[White "Alice"]
[Black "Bob"]
[Result "1-0"]
[ECO "C60"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 {the Ruy Lopez} a6 (3... Nf6 4. O-O) 1-0

`

func TestReaderParsesTagsAndMoves(t *testing.T) {
	r := NewReader(strings.NewReader(sampleGame))
	defer r.Close()

	g, err := r.Next()
	require.NoError(t, err)

	v, ok := g.Tag("Event")
	require.True(t, ok)
	require.Equal(t, "Test Open", v)

	year, month, day, ok := g.Date()
	require.True(t, ok)
	require.Equal(t, 2026, year)
	require.Equal(t, 7, month)
	require.Equal(t, 30, day)

	require.Equal(t, "C60", g.ECO())
	require.Equal(t, chesscore.ResultWhiteWin, g.Result())
	require.Equal(t, []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"}, g.Moves())
	require.Equal(t, 6, g.PlyCount())

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderResolvesPositions(t *testing.T) {
	r := NewReader(strings.NewReader(sampleGame))
	defer r.Close()

	g, err := r.Next()
	require.NoError(t, err)

	it := g.Positions()
	n := 0
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
		n++
	}
	require.NoError(t, it.Err())
	require.Equal(t, 6, n)
	require.Equal(t, chesscore.ColorWhite, it.Position().ActiveColor)
}

func TestReaderHandlesNAGsAndSemicolonComments(t *testing.T) {
	const game = `[Event "x"]

1. e4! $1 e5 ; rest of line is a comment
2. Nf3 Nc6 *

`
	r := NewReader(strings.NewReader(game))
	defer r.Close()

	g, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, []string{"e4!", "e5", "Nf3", "Nc6"}, g.Moves())
	require.Equal(t, chesscore.ResultUnknown, g.Result())
}

func TestReaderAcceptsNullMove(t *testing.T) {
	const game = `[Event "x"]

1. e4 -- 2. Nf3 *

`
	r := NewReader(strings.NewReader(game))
	defer r.Close()

	g, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, []string{"e4", "--", "Nf3"}, g.Moves())
}

func TestReaderAcceptsEmptyGame(t *testing.T) {
	const game = `[Event "x"]
[Result "1/2-1/2"]

1/2-1/2

`
	r := NewReader(strings.NewReader(game))
	defer r.Close()

	g, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, 0, g.PlyCount())
	require.Equal(t, chesscore.ResultDraw, g.Result())
}

func TestReaderStartsFromFENTag(t *testing.T) {
	const game = `[Event "x"]
[FEN "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"]
[SetUp "1"]

1. e4 *

`
	r := NewReader(strings.NewReader(game))
	defer r.Close()

	g, err := r.Next()
	require.NoError(t, err)
	it := g.Positions()
	_, ok := it.Next()
	require.True(t, ok)
	require.NoError(t, it.Err())
}

func TestReaderSkipsMalformedGameAndResyncs(t *testing.T) {
	const stream = `[Event "broken"]
this is not a movetext section at all and never ends with a result %%%

[Event "good"]

1. e4 e5 1-0

`
	r := NewReader(strings.NewReader(stream))
	defer r.Close()

	g, err := r.Next()
	require.NoError(t, err)
	v, _ := g.Tag("Event")
	require.Equal(t, "good", v)
	require.Equal(t, []string{"e4", "e5"}, g.Moves())

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderMultipleGames(t *testing.T) {
	const stream = `[Event "one"]

1. e4 e5 1-0

[Event "two"]

1. d4 d5 1/2-1/2

`
	r := NewReader(strings.NewReader(stream))
	defer r.Close()

	var events []string
	for {
		g, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		v, _ := g.Tag("Event")
		events = append(events, v)
	}
	require.Equal(t, []string{"one", "two"}, events)
}

func TestReaderOnEmptyStream(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	defer r.Close()
	_, err := r.Next()
	require.ErrorIs(t, err, io.EOF)
}
