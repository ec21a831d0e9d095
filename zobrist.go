/*
zobrist.go implements incremental Zobrist hashing so callers can maintain a
running position hash across DoMove/UndoMove without a full recompute each
time, used to detect threefold repetition.
*/

package chesscore

import "math/rand/v2"

/*
Keys are used to hash each possible position into a unique number.  Each key
is generated randomly and large enough that the probability of hash
collisions is negligible.
*/
var (
	pieceKeys [12][64]uint64
	// Indexed by en-passant target square; epKeys[SquareNone] is unused
	// (callers XOR it in only when EPTarget != SquareNone).
	epKeys       [65]uint64
	castlingKeys [16]uint64
	colorKey     uint64
)

/*
InitZobristKeys initializes the pseudo-random keys used in the Zobrist
hashing scheme.  Call this function ONCE as close as possible to the start
of your program.

NOTE: Threefold repetitions will not be detected if this function wasn't
called.
*/
func InitZobristKeys() {
	for i := PieceWPawn; i <= PieceBKing; i++ {
		for square := range 64 {
			pieceKeys[i][square] = rand.Uint64()
		}
	}
	for square := range 65 {
		epKeys[square] = rand.Uint64()
	}
	for i := range 16 {
		castlingKeys[i] = rand.Uint64()
	}
	colorKey = rand.Uint64()
}

// ZobristKey computes the full hash of p from scratch. Prefer
// [PositionHash] and its incremental DoMove/UndoMove once a game is under
// way; this is here for the initial hash and for verifying the
// incremental one in tests.
func ZobristKey(p Position) (key uint64) {
	for i := PieceWPawn; i <= PieceBKing; i++ {
		bb := p.Bitboards[i]
		for bb != 0 {
			key ^= pieceKeys[i][bb.PopLSB()]
		}
	}
	if p.EPTarget != SquareNone {
		key ^= epKeys[p.EPTarget]
	}
	key ^= castlingKeys[p.CastlingRights]
	if p.ActiveColor == ColorBlack {
		key ^= colorKey
	}
	return key
}

/*
PositionHash maintains an incrementally-updated Zobrist hash alongside a
Position, so repeated DoMove/UndoMove calls during a game (or a perft walk)
never need to rehash the whole board.
*/
type PositionHash struct {
	Position Position
	Key      uint64
}

// NewPositionHash computes the initial hash for p.
func NewPositionHash(p Position) PositionHash {
	return PositionHash{Position: p, Key: ZobristKey(p)}
}

/*
DoMove applies m to the wrapped position and incrementally updates Key,
returning the ReverseMove needed to undo both. It xors out exactly the
state that changed: the moved piece's old/new squares, any captured piece,
the castling-rights delta, the en-passant-target delta, and the
side-to-move flip — rather than rehashing the whole board.
*/
func (h *PositionHash) DoMove(m Move) ReverseMove {
	priorCastling := h.Position.CastlingRights
	priorEP := h.Position.EPTarget
	mover := h.Position.ActiveColor

	rm := h.Position.DoMove(m)

	h.Key ^= pieceKeys[rm.MovedPiece][m.From()]
	switch m.Type() {
	case MovePromotion:
		promoted := NewPiece(Knight+m.PromoPiece(), mover)
		h.Key ^= pieceKeys[promoted][m.To()]
	case MoveCastle:
		h.Key ^= pieceKeys[rm.MovedPiece][m.To()]
		rookFrom, rookTo, rookPiece := castleRookSquares(m.To())
		h.Key ^= pieceKeys[rookPiece][rookFrom]
		h.Key ^= pieceKeys[rookPiece][rookTo]
	default:
		h.Key ^= pieceKeys[rm.MovedPiece][m.To()]
	}

	if rm.CapturedPiece != PieceNone {
		capSq := m.To()
		if m.Type() == MoveEnPassant {
			if mover == ColorWhite {
				capSq = m.To() - 8
			} else {
				capSq = m.To() + 8
			}
		}
		h.Key ^= pieceKeys[rm.CapturedPiece][capSq]
	}

	if priorEP != SquareNone {
		h.Key ^= epKeys[priorEP]
	}
	if h.Position.EPTarget != SquareNone {
		h.Key ^= epKeys[h.Position.EPTarget]
	}

	h.Key ^= castlingKeys[priorCastling]
	h.Key ^= castlingKeys[h.Position.CastlingRights]

	h.Key ^= colorKey

	return rm
}

// UndoMove reverses the effect of DoMove, restoring both the position and
// the incremental hash by xoring out exactly the same deltas DoMove xored
// in.
func (h *PositionHash) UndoMove(rm ReverseMove) {
	m := rm.Move
	mover := Opposite(h.Position.ActiveColor)

	h.Key ^= colorKey
	h.Key ^= castlingKeys[h.Position.CastlingRights]
	h.Key ^= castlingKeys[rm.PriorCastlingRights]

	if h.Position.EPTarget != SquareNone {
		h.Key ^= epKeys[h.Position.EPTarget]
	}
	if rm.PriorEPTarget != SquareNone {
		h.Key ^= epKeys[rm.PriorEPTarget]
	}

	if rm.CapturedPiece != PieceNone {
		capSq := m.To()
		if m.Type() == MoveEnPassant {
			if mover == ColorWhite {
				capSq = m.To() - 8
			} else {
				capSq = m.To() + 8
			}
		}
		h.Key ^= pieceKeys[rm.CapturedPiece][capSq]
	}

	switch m.Type() {
	case MovePromotion:
		promoted := NewPiece(Knight+m.PromoPiece(), mover)
		h.Key ^= pieceKeys[promoted][m.To()]
	case MoveCastle:
		h.Key ^= pieceKeys[rm.MovedPiece][m.To()]
		rookFrom, rookTo, rookPiece := castleRookSquares(m.To())
		h.Key ^= pieceKeys[rookPiece][rookFrom]
		h.Key ^= pieceKeys[rookPiece][rookTo]
	default:
		h.Key ^= pieceKeys[rm.MovedPiece][m.To()]
	}
	h.Key ^= pieceKeys[rm.MovedPiece][m.From()]

	h.Position.UndoMove(rm)
}

func castleRookSquares(kingTo Square) (from, to Square, rook Piece) {
	switch kingTo {
	case SG1:
		return SH1, SF1, PieceWRook
	case SC1:
		return SA1, SD1, PieceWRook
	case SG8:
		return SH8, SF8, PieceBRook
	case SC8:
		return SA8, SD8, PieceBRook
	}
	return SquareNone, SquareNone, PieceNone
}
