/*
reversemove.go implements PackedReverseMove: a dense 27-bit encoding of a
[ReverseMove] suitable for storing alongside a move in a compact archive
(see bcgn), rather than the field-per-field [ReverseMove] struct used
in-memory. Most of a ReverseMove's fields are redundant with the position
it applies against — the moved piece's type, the captured piece's color,
and the full prior en-passant square are all recoverable from context — so
only the irreducible bits are packed, following the factoring the original
C++ ReverseMoveGenerator uses for retrograde move analysis.
*/

package chesscore

// PackedReverseMove packs a ReverseMove into 27 meaningful low bits:
//   - 0-15:  the Move itself (type, from, to, promotion flag).
//   - 16-18: captured piece TYPE (NoPieceType if the move was not a
//     capture); color is always the defender's, recovered from context.
//   - 19-22: the position's castling rights before the move.
//   - 23-26: the position's en-passant target file before the move, plus
//     one (0 means "no prior en-passant target").
type PackedReverseMove uint32

// Pack encodes rm into its dense wire form.
func (rm ReverseMove) Pack() PackedReverseMove {
	capturedType := PieceTypeOf(rm.CapturedPiece)

	epField := 0
	if rm.PriorEPTarget != SquareNone {
		epField = SquareFile(rm.PriorEPTarget) + 1
	}

	return PackedReverseMove(
		uint32(rm.Move) |
			uint32(capturedType)<<16 |
			uint32(rm.PriorCastlingRights)<<19 |
			uint32(epField)<<23,
	)
}

/*
Unpack reconstructs the full [ReverseMove] that packed rm, given the
position that resulted from applying the move (i.e. the position as it
stands immediately before [Position.UndoMove] is called). This is the
position DoMove left behind, not the one before the move.
*/
func (packed PackedReverseMove) Unpack(p *Position) ReverseMove {
	m := Move(packed & 0xFFFF)
	capturedType := PieceType((packed >> 16) & 0x7)
	priorCastling := CastlingRights((packed >> 19) & 0xF)
	epField := int((packed >> 23) & 0xF)

	// The defender (the side whose piece, if any, was captured, and whose
	// earlier double push — if any — set the prior en-passant target) is
	// whoever is to move in p, since DoMove already flipped the turn.
	defender := p.ActiveColor
	mover := Opposite(defender)

	captured := PieceNone
	if capturedType != NoPieceType {
		captured = NewPiece(capturedType, defender)
	}

	var movedType PieceType
	switch m.Type() {
	case MovePromotion:
		movedType = Pawn
	case MoveCastle:
		movedType = King
	default:
		movedType = PieceTypeOf(p.GetPieceFromSquare(m.To()))
	}
	moved := NewPiece(movedType, mover)

	priorEP := SquareNone
	if epField != 0 {
		file := epField - 1
		rank := 2 // rank index of White's en-passant target (the 3rd rank).
		if defender == ColorBlack {
			rank = 5 // the 6th rank, Black's en-passant target.
		}
		priorEP = rank*8 + file
	}

	return ReverseMove{
		Move:                m,
		MovedPiece:          moved,
		CapturedPiece:       captured,
		PriorCastlingRights: priorCastling,
		PriorEPTarget:       priorEP,
		// The halfmove clock isn't part of the packed form (it's only
		// used for the fifty-move rule, not for reconstructing the
		// board), so the unpacked ReverseMove always carries 0 for it.
		PriorHalfmoveCnt: 0,
	}
}
