package bcgn

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmattsson/chesscore"
)

func init() {
	chesscore.InitAttackTables()
}

func TestCeilLog2(t *testing.T) {
	tt := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4},
	}
	for _, tc := range tt {
		require.Equal(t, tc.want, ceilLog2(tc.n), "ceilLog2(%d)", tc.n)
	}
}

func TestLevel0RoundTrip(t *testing.T) {
	m := chesscore.NewMove(chesscore.SE2, chesscore.SE4, chesscore.MoveNormal)
	data := encodeLevel0(m)
	got, next, err := decodeLevel0(data, 0)
	require.NoError(t, err)
	require.Equal(t, m, got)
	require.Equal(t, len(data), next)
}

func TestLevel1RoundTripOverGame(t *testing.T) {
	pos, err := chesscore.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	var legal chesscore.MoveList
	chesscore.GenLegalMoves(pos, &legal)

	for i := range legal.Count {
		m := legal.Moves[i]
		data := encodeLevel1(&pos, m)

		got, next, err := decodeLevel1(&pos, data, 0)
		require.NoError(t, err, "move %v", m)
		require.Equal(t, len(data), next)
		require.Equal(t, m.From(), got.From())
		require.Equal(t, m.To(), got.To())
		require.Equal(t, m.Type(), got.Type())
		if m.Type() == chesscore.MovePromotion {
			require.Equal(t, m.PromoPiece(), got.PromoPiece())
		}
	}
}

func TestLevel2RoundTripOverGame(t *testing.T) {
	tt := []string{
		chesscore.InitialPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/P7/4K3 w - - 0 1",
	}
	for _, fenStr := range tt {
		t.Run(fenStr, func(t *testing.T) {
			pos, err := chesscore.ParseFEN(fenStr)
			require.NoError(t, err)

			var legal chesscore.MoveList
			chesscore.GenLegalMoves(pos, &legal)

			for i := range legal.Count {
				m := legal.Moves[i]
				bw := chesscore.NewBitWriter()
				encodeLevel2(&pos, m, bw)

				br := chesscore.NewBitReader(bw.Bytes())
				got, err := decodeLevel2(&pos, br)
				require.NoError(t, err, "move %v", m)
				require.Equal(t, m.From(), got.From(), "from mismatch for %v", m)
				require.Equal(t, m.To(), got.To(), "to mismatch for %v", m)
				require.Equal(t, m.Type(), got.Type(), "type mismatch for %v", m)
				if m.Type() == chesscore.MovePromotion {
					require.Equal(t, m.PromoPiece(), got.PromoPiece())
				}
			}
		})
	}
}

func TestKingDestinationsAppendsCastlingAfterNormalMoves(t *testing.T) {
	pos, err := chesscore.ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	dests, normalCount := kingDestinations(&pos, chesscore.SE1)
	require.Less(t, normalCount, len(dests), "castling slots should be appended")
	for _, sq := range dests[normalCount:] {
		require.True(t, sq == chesscore.SC1 || sq == chesscore.SG1)
	}
	// Long castle occupies the first castling slot, short the next.
	require.Equal(t, chesscore.SC1, dests[normalCount])
	require.Equal(t, chesscore.SG1, dests[normalCount+1])
}
