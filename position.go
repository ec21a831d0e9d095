/*
position.go defines the Position structure and its methods for chessboard
state management, including the reversible DoMove/UndoMove pair.
*/

package chesscore

/*
Position represents a chessboard state that can be converted to or parsed
from a FEN string.

Bitboards is indexed by Piece (0-11), plus two allied-occupancy bitboards
at indices 12 (white) and 13 (black), plus the full occupancy bitboard at
index 14.
*/
type Position struct {
	Bitboards      [15]Bitboard
	ActiveColor    Color
	CastlingRights CastlingRights
	// EPTarget is the en-passant destination square pawns may capture to,
	// or SquareNone if no en-passant capture is currently legal.
	EPTarget    Square
	HalfmoveCnt int
	FullmoveCnt int
}

/*
epCaptureLegal reports whether ep is genuinely capturable en passant by
side: a pawn of side must stand adjacent (by file, same rank) to the
square the opposing pawn just landed on, and making that capture must not
leave side's own king in check. This is spec.md §3 Invariant 2 — "epSquare
is set only when the side to move actually has a pawn that can legally
capture onto it" — and is the single check every writer/parser of EPTarget
(DoMove, ParseFEN, Decompress) must run before trusting an en-passant
square from any source.
*/
func epCaptureLegal(p Position, ep Square, side Color) bool {
	if ep == SquareNone {
		return false
	}

	own := NewPiece(Pawn, side)
	enemy := NewPiece(Pawn, Opposite(side))

	var landed Square
	if side == ColorWhite {
		landed = ep - 8
	} else {
		landed = ep + 8
	}
	if landed < 0 || landed >= 64 || p.GetPieceFromSquare(landed) != enemy {
		return false
	}

	file := SquareFile(landed)
	var candidates [2]Square
	n := 0
	if file > 0 {
		candidates[n] = landed - 1
		n++
	}
	if file < 7 {
		candidates[n] = landed + 1
		n++
	}

	for _, from := range candidates[:n] {
		if p.GetPieceFromSquare(from) != own {
			continue
		}
		scratch := p
		scratch.removePiece(own, from)
		scratch.removePiece(enemy, landed)
		scratch.placePiece(own, ep)
		kingSq := scratch.Bitboards[PieceWKing+side].LSB()
		if !IsSquareAttacked(&scratch, kingSq, Opposite(side)) {
			return true
		}
	}
	return false
}

// NewPosition returns the standard chess starting position.
func NewPosition() Position {
	p, err := ParseFEN(InitialPositionFEN)
	if err != nil {
		// InitialPositionFEN is a compile-time constant known to be valid.
		panic(err)
	}
	return p
}

/*
ReverseMove captures exactly the state [Position.UndoMove] needs to restore
a position after [Position.DoMove] applied m to it: the moved piece, any
captured piece (PieceNone if none), and the position's prior mutable state
(castling rights, en-passant target, halfmove counter). See spec component
under "ReverseMove" and [PackedReverseMove] for the 27-bit wire-packed
variant.
*/
type ReverseMove struct {
	Move               Move
	MovedPiece         Piece
	CapturedPiece      Piece
	PriorCastlingRights CastlingRights
	PriorEPTarget       Square
	PriorHalfmoveCnt    int
}

/*
DoMove applies m to the position in place and returns a [ReverseMove]
sufficient to undo it via [Position.UndoMove]. It is the caller's
responsibility to ensure that m is at least pseudo-legal for p.

Not only is the piece placement updated, but also the entire position,
including castling rights, en passant target, halfmove counter, fullmove
counter, and the active color. A double pawn push only leaves an
en-passant target set if the opponent actually has a pawn that could
capture onto it without exposing their own king, which requires
[InitAttackTables] to have been called already.
*/
func (p *Position) DoMove(m Move) ReverseMove {
	from, to := m.From(), m.To()
	moved := p.GetPieceFromSquare(from)
	captured := PieceNone
	if m.Type() != MoveEnPassant {
		captured = p.GetPieceFromSquare(to)
	}

	rm := ReverseMove{
		Move:                m,
		MovedPiece:          moved,
		CapturedPiece:       captured,
		PriorCastlingRights: p.CastlingRights,
		PriorEPTarget:       p.EPTarget,
		PriorHalfmoveCnt:    p.HalfmoveCnt,
	}
	if m.Type() == MoveEnPassant {
		rm.CapturedPiece = NewPiece(Pawn, Opposite(p.ActiveColor))
	}

	p.removePiece(moved, from)

	// Increment halfmove counter to detect 50-move rule draw; reset below
	// on capture or pawn move.
	p.HalfmoveCnt++

	if captured != PieceNone {
		p.removePiece(captured, to)
		p.HalfmoveCnt = 0
	}

	switch m.Type() {
	case MoveNormal, MovePromotion:
		placed := moved
		if m.Type() == MovePromotion {
			placed = NewPiece(Knight+m.PromoPiece(), p.ActiveColor)
		}
		p.placePiece(placed, to)

	case MoveEnPassant:
		p.placePiece(moved, to)
		if p.ActiveColor == ColorWhite {
			p.removePiece(PieceBPawn, to-8)
		} else {
			p.removePiece(PieceWPawn, to+8)
		}

	case MoveCastle:
		p.placePiece(moved, to)
		switch to {
		case SG1:
			p.removePiece(PieceWRook, SH1)
			p.placePiece(PieceWRook, SF1)
		case SG8:
			p.removePiece(PieceBRook, SH8)
			p.placePiece(PieceBRook, SF8)
		case SC1:
			p.removePiece(PieceWRook, SA1)
			p.placePiece(PieceWRook, SD1)
		case SC8:
			p.removePiece(PieceBRook, SA8)
			p.placePiece(PieceBRook, SD8)
		}
	}

	p.EPTarget = SquareNone

	switch moved {
	case PieceWPawn, PieceBPawn:
		if to-from == 16 {
			p.EPTarget = from + 8
		} else if from-to == 16 {
			p.EPTarget = from - 8
		}
		p.HalfmoveCnt = 0
	case PieceWRook:
		switch from {
		case SA1:
			p.CastlingRights &= ^CastlingWhiteLong
		case SH1:
			p.CastlingRights &= ^CastlingWhiteShort
		}
	case PieceBRook:
		switch from {
		case SA8:
			p.CastlingRights &= ^CastlingBlackLong
		case SH8:
			p.CastlingRights &= ^CastlingBlackShort
		}
	case PieceWKing:
		p.CastlingRights &= ^(CastlingWhiteShort | CastlingWhiteLong)
	case PieceBKing:
		p.CastlingRights &= ^(CastlingBlackShort | CastlingBlackLong)
	}

	// A rook captured on its home square also loses that side's castling
	// right, independent of which piece moved.
	switch to {
	case SA1:
		p.CastlingRights &= ^CastlingWhiteLong
	case SH1:
		p.CastlingRights &= ^CastlingWhiteShort
	case SA8:
		p.CastlingRights &= ^CastlingBlackLong
	case SH8:
		p.CastlingRights &= ^CastlingBlackShort
	}

	if p.ActiveColor == ColorBlack {
		p.FullmoveCnt++
	}
	p.ActiveColor = Opposite(p.ActiveColor)

	if p.EPTarget != SquareNone && !epCaptureLegal(*p, p.EPTarget, p.ActiveColor) {
		p.EPTarget = SquareNone
	}

	return rm
}

/*
UndoMove reverses the effect of the [Position.DoMove] call that produced
rm. p must be in the exact state DoMove left it in; calling UndoMove out of
order, or on a position that was mutated in between, yields an unspecified
position.
*/
func (p *Position) UndoMove(rm ReverseMove) {
	p.ActiveColor = Opposite(p.ActiveColor)
	if p.ActiveColor == ColorBlack {
		p.FullmoveCnt--
	}

	m := rm.Move
	from, to := m.From(), m.To()

	switch m.Type() {
	case MoveNormal, MovePromotion:
		placed := rm.MovedPiece
		if m.Type() == MovePromotion {
			placed = NewPiece(Knight+m.PromoPiece(), p.ActiveColor)
		}
		p.removePiece(placed, to)

	case MoveEnPassant:
		p.removePiece(rm.MovedPiece, to)
		if p.ActiveColor == ColorWhite {
			p.placePiece(PieceBPawn, to-8)
		} else {
			p.placePiece(PieceWPawn, to+8)
		}

	case MoveCastle:
		p.removePiece(rm.MovedPiece, to)
		switch to {
		case SG1:
			p.removePiece(PieceWRook, SF1)
			p.placePiece(PieceWRook, SH1)
		case SG8:
			p.removePiece(PieceBRook, SF8)
			p.placePiece(PieceBRook, SH8)
		case SC1:
			p.removePiece(PieceWRook, SD1)
			p.placePiece(PieceWRook, SA1)
		case SC8:
			p.removePiece(PieceBRook, SD8)
			p.placePiece(PieceBRook, SA8)
		}
	}

	p.placePiece(rm.MovedPiece, from)
	if rm.CapturedPiece != PieceNone && m.Type() != MoveEnPassant {
		p.placePiece(rm.CapturedPiece, to)
	}

	p.CastlingRights = rm.PriorCastlingRights
	p.EPTarget = rm.PriorEPTarget
	p.HalfmoveCnt = rm.PriorHalfmoveCnt
}

/*
GetPieceFromSquare returns the colored piece that stands on the
specified square, or [PieceNone] if the square is empty.
*/
func (p *Position) GetPieceFromSquare(square Square) Piece {
	bb := Bit(square)
	for i := range 12 {
		if bb&p.Bitboards[i] != 0 {
			return i
		}
	}
	return PieceNone
}

/*
canCastle checks whether the king can perform castling in the specified
direction.

side represents a castling type:
  - 1 -> White O-O.
  - 2 -> White O-O-O.
  - 4 -> Black O-O.
  - 8 -> Black O-O-O.
*/
func (p *Position) canCastle(side int, attacks, occupancy Bitboard) bool {
	c := bitScan(uint64(side))
	path := castlingPath[c]
	return p.CastlingRights&side != 0 &&
		attacks&castlingAttackPath[c] == 0 &&
		occupancy&path == 0
}

// placePiece places the piece on the specified square and updates the
// occupancy and allied bitboards.
func (p *Position) placePiece(piece Piece, square Square) {
	bb := Bit(square)
	p.Bitboards[piece] |= bb
	p.Bitboards[12+ColorOf(piece)] |= bb
	p.Bitboards[14] |= bb
}

/*
removePiece removes the piece from the specified square and updates the
occupancy and allied bitboards.

NOTE: If a piece of the specified type is not present on the specified
square, it will be placed rather than removed.
*/
func (p *Position) removePiece(piece Piece, square Square) {
	bb := Bit(square)
	p.Bitboards[piece] ^= bb
	p.Bitboards[12+ColorOf(piece)] ^= bb
	p.Bitboards[14] ^= bb
}

/*
calculateMaterial calculates the material value of the position, summed
over both colors. Used to determine a draw by insufficient material.
*/
func (p *Position) calculateMaterial() (material int) {
	for piece := PieceWPawn; piece <= PieceBQueen; piece++ {
		material += p.Bitboards[piece].Count() * pieceWeights[PieceTypeOf(piece)]
	}
	return material
}

/*
MoveLegalityChecker caches the per-position data needed to check legality
and detect check cheaply across many candidate moves against the same
position: the checking pieces, the king-blocker set, and the king square of
the side to move.
*/
type MoveLegalityChecker struct {
	KingSquare   Square
	Checkers     Bitboard
	KingBlockers Bitboard
	// Pinners is the set of enemy sliders whose line-of-sight to the king
	// is interrupted by exactly one of the mover's own pieces (recorded in
	// KingBlockers).
	Pinners Bitboard
}

// NewMoveLegalityChecker computes the legality-checking cache for p's side
// to move.
func NewMoveLegalityChecker(p *Position) MoveLegalityChecker {
	c := p.ActiveColor
	enemy := Opposite(c)
	king := p.Bitboards[PieceWKing+c].LSB()
	occupancy := p.Bitboards[14]

	var checkers Bitboard
	checkers |= pawnAttacks[c][king] & p.Bitboards[PieceWPawn+enemy]
	checkers |= knightAttacks[king] & p.Bitboards[PieceWKnight+enemy]
	checkers |= lookupBishopAttacks(king, occupancy) & (p.Bitboards[PieceWBishop+enemy] | p.Bitboards[PieceWQueen+enemy])
	checkers |= lookupRookAttacks(king, occupancy) & (p.Bitboards[PieceWRook+enemy] | p.Bitboards[PieceWQueen+enemy])

	var blockers, pinners Bitboard
	sliders := (p.Bitboards[PieceWBishop+enemy] | p.Bitboards[PieceWQueen+enemy]) & bishopRaysFrom(king)
	sliders |= (p.Bitboards[PieceWRook+enemy] | p.Bitboards[PieceWQueen+enemy]) & rookRaysFrom(king)
	for sliders != 0 {
		sq := sliders.PopLSB()
		between := Between(king, sq) & occupancy
		if between.Count() == 1 && between&p.Bitboards[12+c] != 0 {
			blockers |= between
			pinners = pinners.With(sq)
		}
	}

	return MoveLegalityChecker{KingSquare: king, Checkers: checkers, KingBlockers: blockers, Pinners: pinners}
}

func bishopRaysFrom(sq Square) Bitboard { return lookupBishopAttacks(sq, 0) }
func rookRaysFrom(sq Square) Bitboard   { return lookupRookAttacks(sq, 0) }

// Between returns the bitboard of squares strictly between a and b if they
// share a file, rank, or diagonal; otherwise 0. Neither endpoint is
// included.
func Between(a, b Square) Bitboard {
	if a == b {
		return 0
	}
	fa, ra := SquareFile(a), SquareRank(a)
	fb, rb := SquareFile(b), SquareRank(b)
	df, dr := sign(fb-fa), sign(rb-ra)
	if !(fa == fb || ra == rb || abs(fb-fa) == abs(rb-ra)) {
		return 0
	}
	var bb Bitboard
	f, r := fa+df, ra+dr
	for f != fb || r != rb {
		bb = bb.With(r*8 + f)
		f += df
		r += dr
	}
	return bb
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// InCheck reports whether the side to move is in check, given a legality
// checker already computed for p.
func (c MoveLegalityChecker) InCheck() bool { return c.Checkers != 0 }
