// movegen.go implements legal move generation using the magic-bitboard
// attack engine and a copy-make legality filter.

package chesscore

// GenLegalMoves generates legal moves for the currently active color.
func GenLegalMoves(p Position, l *MoveList) {
	l.Count = 0

	genKingMoves(p, l)

	if GenChecksCounter(p.Bitboards, Opposite(p.ActiveColor)) > 2 {
		return
	}

	var pseudoLegal MoveList

	genPawnMoves(p, &pseudoLegal)
	genNormalMoves(p, &pseudoLegal)

	mover := p.ActiveColor
	for i := range pseudoLegal.Count {
		rm := p.DoMove(pseudoLegal.Moves[i])
		if GenChecksCounter(p.Bitboards, Opposite(mover)) == 0 {
			l.Push(pseudoLegal.Moves[i])
		}
		p.UndoMove(rm)
	}
}

// GenChecksCounter returns the number of pieces of color c delivering
// check to the opposing king.
func GenChecksCounter(bitboards [15]Bitboard, c Color) (cnt int) {
	king := bitboards[PieceWKing+Opposite(c)].LSB()
	occ := bitboards[14]

	if pawnAttacks[Opposite(c)][king]&bitboards[PieceWPawn+c] != 0 {
		cnt++
	}
	if knightAttacks[king]&bitboards[PieceWKnight+c] != 0 {
		cnt++
	}
	if lookupBishopAttacks(king, occ)&bitboards[PieceWBishop+c] != 0 {
		cnt++
	}
	if lookupRookAttacks(king, occ)&bitboards[PieceWRook+c] != 0 {
		cnt++
	}
	if lookupQueenAttacks(king, occ)&bitboards[PieceWQueen+c] != 0 {
		cnt++
	}
	return cnt
}

// genKingMoves appends legal king moves (including castling) to l.
func genKingMoves(p Position, l *MoveList) {
	kingBB := p.Bitboards[PieceWKing+p.ActiveColor]
	king := kingBB.LSB()

	// Exclude the king itself from occupancy so sliders see through it.
	p.Bitboards[14] ^= kingBB
	attacks := genAttacks(p.Bitboards, Opposite(p.ActiveColor))
	p.Bitboards[14] ^= kingBB

	dests := kingAttacks[king] &^ attacks &^ p.Bitboards[12+p.ActiveColor]
	for dests != 0 {
		l.Push(NewMove(king, dests.PopLSB(), MoveNormal))
	}

	if p.ActiveColor == ColorWhite {
		if p.canCastle(CastlingWhiteShort, attacks, p.Bitboards[14]) &&
			p.Bitboards[PieceWRook].Set(SH1) {
			l.Push(NewMove(king, SG1, MoveCastle))
		}
		if p.canCastle(CastlingWhiteLong, attacks, p.Bitboards[14]) &&
			p.Bitboards[PieceWRook].Set(SA1) {
			l.Push(NewMove(king, SC1, MoveCastle))
		}
	} else {
		if p.canCastle(CastlingBlackShort, attacks, p.Bitboards[14]) &&
			p.Bitboards[PieceBRook].Set(SH8) {
			l.Push(NewMove(king, SG8, MoveCastle))
		}
		if p.canCastle(CastlingBlackLong, attacks, p.Bitboards[14]) &&
			p.Bitboards[PieceBRook].Set(SA8) {
			l.Push(NewMove(king, SC8, MoveCastle))
		}
	}
}

// genPawnMoves appends pseudo-legal pawn moves (including en passant and
// promotion) to l.
func genPawnMoves(p Position, l *MoveList) {
	occupancy := p.Bitboards[14]
	var ep Bitboard
	if p.EPTarget != SquareNone {
		ep = Bit(p.EPTarget)
	}
	enemies := p.Bitboards[12+Opposite(p.ActiveColor)]
	pawns := p.Bitboards[PieceWPawn+p.ActiveColor]

	dir, initRank, promoRank := 8, Rank1<<8, Rank8
	if p.ActiveColor == ColorBlack {
		dir = -8
		initRank = Rank8 >> 8
		promoRank = Rank1
	}

	for pawns != 0 {
		pawn := pawns.PopLSB()
		square := Bit(pawn)

		fwd := pawn + dir
		fwdBB := Bit(fwd)
		if fwdBB&occupancy == 0 {
			if fwdBB&promoRank != 0 {
				l.Push(NewPromotionMove(pawn, fwd, PromotionKnight))
				l.Push(NewPromotionMove(pawn, fwd, PromotionBishop))
				l.Push(NewPromotionMove(pawn, fwd, PromotionRook))
				l.Push(NewPromotionMove(pawn, fwd, PromotionQueen))
			} else {
				l.Push(NewMove(pawn, fwd, MoveNormal))
			}
			dblFwd := pawn + 2*dir
			if square&initRank != 0 && Bit(dblFwd)&occupancy == 0 {
				l.Push(NewMove(pawn, dblFwd, MoveNormal))
			}
		}

		attacks := pawnAttacks[p.ActiveColor][pawn] & (enemies | ep)
		for attacks != 0 {
			to := attacks.PopLSB()
			switch {
			case Bit(to)&promoRank != 0:
				l.Push(NewPromotionMove(pawn, to, PromotionKnight))
				l.Push(NewPromotionMove(pawn, to, PromotionBishop))
				l.Push(NewPromotionMove(pawn, to, PromotionRook))
				l.Push(NewPromotionMove(pawn, to, PromotionQueen))
			case Bit(to)&ep != 0:
				l.Push(NewMove(pawn, to, MoveEnPassant))
			default:
				l.Push(NewMove(pawn, to, MoveNormal))
			}
		}
	}
}

// genNormalMoves appends pseudo-legal knight, bishop, rook, and queen
// moves to l.
func genNormalMoves(p Position, l *MoveList) {
	c := p.ActiveColor
	allies := p.Bitboards[12+c]
	occupancy := p.Bitboards[14]

	for i := PieceWKnight + c; i <= PieceWQueen+c; i += 2 {
		pieces := p.Bitboards[i]
		for pieces != 0 {
			from := pieces.PopLSB()

			var dests Bitboard
			switch i {
			case PieceWKnight, PieceBKnight:
				dests = knightAttacks[from]
			case PieceWBishop, PieceBBishop:
				dests = lookupBishopAttacks(from, occupancy)
			case PieceWRook, PieceBRook:
				dests = lookupRookAttacks(from, occupancy)
			case PieceWQueen, PieceBQueen:
				dests = lookupQueenAttacks(from, occupancy)
			}

			dests &^= allies
			for dests != 0 {
				l.Push(NewMove(from, dests.PopLSB(), MoveNormal))
			}
		}
	}
}

/*
genAttacks generates the bitboard of squares attacked by pieces of the
specified color. Used to compute which squares the enemy king may not
move to.

NOTE: the king must already be excluded from the occupancy bitboard
(bitboards[14]) by the caller to avoid the king's own square blocking a
slider's attack, which would otherwise make the king appear able to step
along the slider's ray.
*/
func genAttacks(bitboards [15]Bitboard, c Color) (attacks Bitboard) {
	occ := bitboards[14]
	for i := PieceWBishop + c; i <= PieceWQueen+c; i += 2 {
		bb := bitboards[i]
		for bb != 0 {
			slider := bb.PopLSB()
			switch i {
			case PieceWBishop, PieceBBishop:
				attacks |= lookupBishopAttacks(slider, occ)
			case PieceWRook, PieceBRook:
				attacks |= lookupRookAttacks(slider, occ)
			case PieceWQueen, PieceBQueen:
				attacks |= lookupQueenAttacks(slider, occ)
			}
		}
	}

	attacks |= genPawnAttacks(bitboards[PieceWPawn+c], c)
	attacks |= genKnightAttacks(bitboards[PieceWKnight+c])
	attacks |= genKingAttacks(bitboards[PieceWKing+c])

	return attacks
}

// IsSquareAttacked reports whether sq is attacked by any piece of color c
// in the given position.
func IsSquareAttacked(p *Position, sq Square, c Color) bool {
	occ := p.Bitboards[14]
	if pawnAttacks[Opposite(c)][sq]&p.Bitboards[PieceWPawn+c] != 0 {
		return true
	}
	if knightAttacks[sq]&p.Bitboards[PieceWKnight+c] != 0 {
		return true
	}
	if kingAttacks[sq]&p.Bitboards[PieceWKing+c] != 0 {
		return true
	}
	if lookupBishopAttacks(sq, occ)&(p.Bitboards[PieceWBishop+c]|p.Bitboards[PieceWQueen+c]) != 0 {
		return true
	}
	if lookupRookAttacks(sq, occ)&(p.Bitboards[PieceWRook+c]|p.Bitboards[PieceWQueen+c]) != 0 {
		return true
	}
	return false
}
