// types.go contains declarations of custom types and predefined constants
// used throughout the chesscore domain model.

package chesscore

/*
Square is a board square index in [0, 64). 64 ([SquareNone]) denotes "no
square". File is `ordinal % 8`, rank is `ordinal / 8`.
*/
type Square = int

// SquareNone is the sentinel "no square" value. isOk(sq) <=> sq < 64.
const SquareNone Square = 64

// Indices of each square.
const (
	SA1 Square = iota
	SB1
	SC1
	SD1
	SE1
	SF1
	SG1
	SH1
	SA2
	SB2
	SC2
	SD2
	SE2
	SF2
	SG2
	SH2
	SA3
	SB3
	SC3
	SD3
	SE3
	SF3
	SG3
	SH3
	SA4
	SB4
	SC4
	SD4
	SE4
	SF4
	SG4
	SH4
	SA5
	SB5
	SC5
	SD5
	SE5
	SF5
	SG5
	SH5
	SA6
	SB6
	SC6
	SD6
	SE6
	SF6
	SG6
	SH6
	SA7
	SB7
	SC7
	SD7
	SE7
	SF7
	SG7
	SH7
	SA8
	SB8
	SC8
	SD8
	SE8
	SF8
	SG8
	SH8
)

// SquareFile returns sq's file in [0, 7].
func SquareFile(sq Square) int { return sq % 8 }

// SquareRank returns sq's rank in [0, 7].
func SquareRank(sq Square) int { return sq / 8 }

// Square2String maps each board square to its algebraic name.
var Square2String = [64]string{
	"a1", "b1", "c1", "d1", "e1", "f1", "g1", "h1",
	"a2", "b2", "c2", "d2", "e2", "f2", "g2", "h2",
	"a3", "b3", "c3", "d3", "e3", "f3", "g3", "h3",
	"a4", "b4", "c4", "d4", "e4", "f4", "g4", "h4",
	"a5", "b5", "c5", "d5", "e5", "f5", "g5", "h5",
	"a6", "b6", "c6", "d6", "e6", "f6", "g6", "h6",
	"a7", "b7", "c7", "d7", "e7", "f7", "g7", "h7",
	"a8", "b8", "c8", "d8", "e8", "f8", "g8", "h8",
}

// Color is an alias type to avoid bothersome conversion between int and
// Color.
type Color = int

const (
	ColorWhite Color = iota
	ColorBlack
)

// Opposite flips a color.
func Opposite(c Color) Color { return c ^ 1 }

// PieceType is an alias type to avoid bothersome conversion between int and
// PieceType.
type PieceType = int

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

/*
Piece is an alias type to avoid bothersome conversion between int and Piece.
Ordinals are assigned as type*2+color so a 4-bit nibble addresses any of the
twelve colored pieces (see [CompressedPosition]); [PieceNone] is -1, outside
that range.
*/
type Piece = int

const (
	PieceWPawn Piece = iota
	PieceBPawn
	PieceWKnight
	PieceBKnight
	PieceWBishop
	PieceBBishop
	PieceWRook
	PieceBRook
	PieceWQueen
	PieceBQueen
	PieceWKing
	PieceBKing
	// To avoid magic numbers.
	PieceNone = -1
)

// NewPiece builds the colored piece for (pt, c). Passing pt == NoPieceType
// always yields PieceNone.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType {
		return PieceNone
	}
	return pt*2 + c
}

// PieceTypeOf returns p's piece type, or NoPieceType for PieceNone.
func PieceTypeOf(p Piece) PieceType {
	if p == PieceNone {
		return NoPieceType
	}
	return p / 2
}

// ColorOf returns p's color. Calling this on PieceNone is a programming
// error; the result is unspecified.
func ColorOf(p Piece) Color { return p % 2 }

// PieceSymbols maps each colored piece to its FEN letter.
var PieceSymbols = [12]byte{
	'P', 'p', 'N', 'n', 'B', 'b',
	'R', 'r', 'Q', 'q', 'K', 'k',
}

/*
CastlingRights defines the player's rights to perform castling.
  - 0 bit: white king can O-O.
  - 1 bit: white king can O-O-O.
  - 2 bit: black king can O-O.
  - 3 bit: black king can O-O-O.
*/
type CastlingRights = int

const (
	CastlingWhiteShort CastlingRights = 1
	CastlingWhiteLong  CastlingRights = 2
	CastlingBlackShort CastlingRights = 4
	CastlingBlackLong  CastlingRights = 8
	CastlingAll        CastlingRights = CastlingWhiteShort | CastlingWhiteLong | CastlingBlackShort | CastlingBlackLong
)

// MoveType is an alias type to avoid bothersome conversion between int and
// MoveType.
type MoveType = int

const (
	// Quiet & capture moves.
	MoveNormal MoveType = iota
	// Knight & Bishop & Rook & Queen promotions.
	MovePromotion
	// King & queen castling, encoded as the king's two-square move to
	// g1/c1/g8/c8; the rook's square is not the destination.
	MoveCastle
	// Special pawn capture of a pawn that just double-pushed past it.
	MoveEnPassant
)

// PromotionFlag is an alias type to avoid bothersome conversion between int
// and PromotionFlag. It names the piece TYPE a pawn promotes to; the
// promoted piece's color is always the mover's color and is never stored
// redundantly.
type PromotionFlag = int

// 00 - knight, 01 - bishop, 10 - rook, 11 - queen.
const (
	PromotionKnight PromotionFlag = iota
	PromotionBishop
	PromotionRook
	PromotionQueen
)

/*
Move represents a chess move, encoded as a 16 bit unsigned integer. This
layout is identical to the wire [CompressedMove] format BCGN level 0 uses
(spec §3), so compressing/decompressing a move is a straight bit copy:
  - 0-1:   Move type (see [MoveType]).
  - 2-7:   From (origin/source) square index.
  - 8-13:  To (destination) square index.
  - 14-15: Promotion piece type (see [PromotionFlag]); meaningless unless
    Type == MovePromotion.

A null move cannot be expressed as From == To == SquareNone (ordinal 64),
since SquareNone needs 7 bits; it is instead the reserved value [NullMove],
tested with [Move.IsNull].
*/
type Move uint16

// NullMove is the distinguished "no move" value: all bits set, which
// decodes as From == To == h8 with MoveEnPassant type. That is never a
// legal move of any reachable position, so the collision is harmless in
// practice; callers that store null moves alongside real ones use
// [Move.IsNull] to recognize it.
const NullMove Move = 0xFFFF

// NewMove creates a normal, castle, or en-passant move (not a promotion).
func NewMove(from, to Square, moveType MoveType) Move {
	return Move(moveType | (from << 2) | (to << 8))
}

// NewPromotionMove creates a promotion move to the given piece type.
func NewPromotionMove(from, to Square, promoPiece PromotionFlag) Move {
	return Move(MovePromotion | (from << 2) | (to << 8) | (promoPiece << 14))
}

func (m Move) Type() MoveType        { return int(m) & 0x3 }
func (m Move) From() Square          { return int(m>>2) & 0x3F }
func (m Move) To() Square            { return int(m>>8) & 0x3F }
func (m Move) PromoPiece() PromotionFlag { return int(m>>14) & 0x3 }

// IsNull reports whether m is the distinguished null move.
func (m Move) IsNull() bool { return m == NullMove }

/*
MoveList is used to store moves.  The main idea behind it is to preallocate
an array with enough capacity to store all possible moves and avoid dynamic
memory allocations.
*/
type MoveList struct {
	// Maximum number of moves per chess position is equal to 218,
	// hence 218 elements.
	// See https://www.talkchess.com/forum/viewtopic.php?t=61792
	Moves [218]Move
	// Count tracks the next free index.
	Count int
}

// Push adds the move to the end of the move list.
func (l *MoveList) Push(m Move) {
	l.Moves[l.Count] = m
	l.Count++
}

// Slice returns the populated prefix of Moves.
func (l *MoveList) Slice() []Move { return l.Moves[:l.Count] }

// Result represents the recorded outcome of an archived game (BCGN per-game
// header, PGN Result tag).
type Result int

const (
	ResultUnknown Result = iota
	ResultWhiteWin
	ResultBlackWin
	ResultDraw
)

// Standard initial chess position.
const InitialPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
