/*
compressedposition.go implements CompressedPosition: a 24-byte codec for a
chess position (piece placement, castling rights, en-passant target, and
side to move — not the halfmove/fullmove counters, which belong to game
state rather than board state). Layout:

  - bytes 0-7:  the occupied-squares bitboard, little-endian.
  - bytes 8-23: one 4-bit nibble per occupied square, in ascending square
    order (the order bits are set in the occupied bitboard), packed two
    per byte, high nibble first.

Nibble values 0-9 are plain pieces (Piece ordinals WPawn..BQueen, which
already match this scheme 1:1). The remaining six values carry information
that wouldn't otherwise survive the encoding:

  - 10: white king.
  - 11: black king, White to move.
  - 12: a pawn that can be captured en passant this move (its color, and
    therefore the en-passant target square, is inferred from its rank:
    rank 4 is a White pawn, rank 5 a Black pawn).
  - 13: a white rook that still has its side's castling right.
  - 14: a black rook that still has its side's castling right.
  - 15: black king, Black to move — the only nibble whose value depends on
    side to move, since one bit of that state has to live somewhere.

Grounded on the chess_pos_db compressed-position scheme (original_source/);
the nibble values above are this module's concrete assignment of it.
*/

package chesscore

import (
	"encoding/binary"
	"fmt"
)

// CompressedPosition is the 24-byte wire form of a [Position]'s board
// state (placement, castling rights, en-passant target, side to move).
type CompressedPosition [24]byte

// Compress encodes p into its 24-byte wire form.
func Compress(p Position) CompressedPosition {
	var c CompressedPosition

	occupied := p.Bitboards[14]
	binary.LittleEndian.PutUint64(c[0:8], uint64(occupied))

	epPawnSquare := SquareNone
	if p.EPTarget != SquareNone {
		// epPawnSquare is where the enemy pawn that just double-pushed
		// actually sits: one rank below EPTarget if it's a Black pawn
		// (White to move), one rank above if it's a White pawn (Black to
		// move) — the inverse of decompressCommon's rank-based derivation.
		if p.ActiveColor == ColorWhite {
			epPawnSquare = p.EPTarget - 8
		} else {
			epPawnSquare = p.EPTarget + 8
		}
	}

	bits := p.occupiedSquaresAscending()
	for i, sq := range bits {
		nibble := p.compressNibble(sq, epPawnSquare)
		byteIdx := 8 + i/2
		if i%2 == 0 {
			c[byteIdx] |= nibble << 4
		} else {
			c[byteIdx] |= nibble
		}
	}

	return c
}

func (p Position) occupiedSquaresAscending() []Square {
	occ := p.Bitboards[14]
	squares := make([]Square, 0, 32)
	for occ != 0 {
		squares = append(squares, occ.PopLSB())
	}
	return squares
}

func (p Position) compressNibble(sq, epPawnSquare Square) byte {
	piece := p.GetPieceFromSquare(sq)

	switch piece {
	case PieceWKing:
		return 10
	case PieceBKing:
		if p.ActiveColor == ColorBlack {
			return 15
		}
		return 11
	case PieceWRook:
		if (sq == SA1 && p.CastlingRights&CastlingWhiteLong != 0) ||
			(sq == SH1 && p.CastlingRights&CastlingWhiteShort != 0) {
			return 13
		}
	case PieceBRook:
		if (sq == SA8 && p.CastlingRights&CastlingBlackLong != 0) ||
			(sq == SH8 && p.CastlingRights&CastlingBlackShort != 0) {
			return 14
		}
	case PieceWPawn, PieceBPawn:
		if sq == epPawnSquare {
			return 12
		}
	}

	return byte(piece)
}

// Decompress parses c into a Position, re-validating the en-passant
// invariant: a nibble-12 pawn must actually stand on the rank en passant
// requires, and the resulting EPTarget must be a square the side to move
// can actually capture onto (spec.md §3 Invariant 2) — otherwise EPTarget
// is cleared rather than trusted; this requires [InitAttackTables] to have
// been called already. Use this for positions from sources you don't
// already trust (e.g. a third-party BCGN file); see [DecompressUnchecked]
// for the trusted-source fast path.
func Decompress(c CompressedPosition) (Position, error) {
	p, epSquare, err := decompressCommon(c)
	if err != nil {
		return p, err
	}
	if epSquare != SquareNone {
		rank := SquareRank(epSquare)
		if rank != 3 && rank != 4 {
			return p, fmt.Errorf("%w: en-passant pawn on rank %d", ErrInvalidCompressedPosition, rank+1)
		}
	}
	if p.EPTarget != SquareNone && !epCaptureLegal(p, p.EPTarget, p.ActiveColor) {
		p.EPTarget = SquareNone
	}
	return p, nil
}

// DecompressUnchecked parses c into a Position without re-validating the
// en-passant invariant. Only use this on data this module itself produced
// or otherwise already trusts.
func DecompressUnchecked(c CompressedPosition) Position {
	p, _, _ := decompressCommon(c)
	return p
}

func decompressCommon(c CompressedPosition) (Position, Square, error) {
	var p Position
	p.EPTarget = SquareNone

	occupied := Bitboard(binary.LittleEndian.Uint64(c[0:8]))
	bits := occupied
	squares := make([]Square, 0, 32)
	for bits != 0 {
		squares = append(squares, bits.PopLSB())
	}

	if len(squares) > 32 {
		return p, SquareNone, fmt.Errorf("%w: %d occupied squares exceeds 32", ErrInvalidCompressedPosition, len(squares))
	}

	epPawnSquare := SquareNone
	p.ActiveColor = ColorWhite

	for i, sq := range squares {
		byteIdx := 8 + i/2
		var nibble byte
		if i%2 == 0 {
			nibble = c[byteIdx] >> 4
		} else {
			nibble = c[byteIdx] & 0xF
		}

		var piece Piece
		switch nibble {
		case 10:
			piece = PieceWKing
		case 11:
			piece = PieceBKing
		case 15:
			piece = PieceBKing
			p.ActiveColor = ColorBlack
		case 12:
			if SquareRank(sq) == 3 {
				piece = PieceWPawn
			} else {
				piece = PieceBPawn
			}
			epPawnSquare = sq
		case 13:
			piece = PieceWRook
			if sq == SA1 {
				p.CastlingRights |= CastlingWhiteLong
			} else {
				p.CastlingRights |= CastlingWhiteShort
			}
		case 14:
			piece = PieceBRook
			if sq == SA8 {
				p.CastlingRights |= CastlingBlackLong
			} else {
				p.CastlingRights |= CastlingBlackShort
			}
		default:
			if nibble > 9 {
				return p, SquareNone, fmt.Errorf("%w: invalid nibble %d", ErrInvalidCompressedPosition, nibble)
			}
			piece = Piece(nibble)
		}

		bb := Bit(sq)
		p.Bitboards[piece] |= bb
		p.Bitboards[12+ColorOf(piece)] |= bb
		p.Bitboards[14] |= bb
	}

	if epPawnSquare != SquareNone {
		// The target square is derived from the eligible pawn's own rank,
		// not from ActiveColor: a White pawn (rank 4) was just pushed from
		// rank 2, so the square it passed over is one rank below it; a
		// Black pawn (rank 5) passed over the rank above it.
		if SquareRank(epPawnSquare) == 3 {
			p.EPTarget = epPawnSquare - 8
		} else {
			p.EPTarget = epPawnSquare + 8
		}
	}

	return p, epPawnSquare, nil
}
