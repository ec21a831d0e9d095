/*
moveindex.go implements the move-index codec: a position-dependent bijective
mapping between a legal move and a small integer, used by BCGN move-encoding
level 1 (see bcgn/movecodec.go) to store a move in far fewer bits than the
16-bit [CompressedMove].

Following the original C++ implementation's factoring (original_source/
MoveIndex.h), the codec is built from two small, separately testable
primitives rather than one monolithic function:

  - destinationsBB: given a piece type/color/origin, the set of squares it
    could reach on an otherwise empty board. [MoveIndex] does not call it;
    the index range is bounded by the fixed destinationStride.
  - destinationIndex: given any destination bitboard and a member square,
    that square's ordinal position within the bitboard's ascending
    enumeration.

The actual per-move index pairs a "which of my pieces is moving" selector
(the moving piece's ordinal rank among the mover's occupied squares) with a
"which of its legal destinations" selector (via destinationIndex against
the move's real, occupancy-aware destination set, not the empty-board
one). Promotion choice is not carried by
the index itself: a promotion move's index identifies the (from, to)
square pair, and the promoted-to piece is stored alongside it by the BCGN
encoder, mirroring how the original treats pawn promotion destinations
as a special case layered on top of the general index.
*/

package chesscore

// destinationStride is a fixed per-piece upper bound on the number of
// destination squares any single piece can have (the true maximum, a
// queen on an open board, is 27); used to keep the piece/destination
// selectors from colliding when combined into one index.
const destinationStride = 28

// destinationsBB returns the destinations of a piece of type pt and color c
// standing on sq, on an otherwise empty board. For sliders and leapers this
// is just their attack set; pawns additionally get their one- and
// two-square forward pushes (capture-only squares are included too, since
// on an empty board a pawn's theoretical destinations include both).
func destinationsBB(pt PieceType, c Color, sq Square) Bitboard {
	switch pt {
	case Pawn:
		dests := pawnAttacks[c][sq]
		dir := 8
		startRank := 1
		if c == ColorBlack {
			dir = -8
			startRank = 6
		}
		fwd := sq + dir
		if fwd >= 0 && fwd < 64 {
			dests = dests.With(fwd)
			if SquareRank(sq) == startRank {
				dests = dests.With(sq + 2*dir)
			}
		}
		return dests
	default:
		return AttacksOf(pt, c, sq, 0)
	}
}

// destinationIndex returns target's ordinal position (0-based) within the
// ascending enumeration of dests's set bits. The caller must ensure target
// is actually a member of dests.
func destinationIndex(dests Bitboard, target Square) int {
	idx := 0
	for sq := 0; sq < target; sq++ {
		if dests.Set(sq) {
			idx++
		}
	}
	return idx
}

// destinationSquareByIndex is the inverse of destinationIndex: it returns
// the square at ordinal position idx within dests's ascending enumeration.
func destinationSquareByIndex(dests Bitboard, idx int) Square {
	for sq := range 64 {
		if dests.Set(sq) {
			if idx == 0 {
				return sq
			}
			idx--
		}
	}
	return SquareNone
}

// pieceSelector returns the ordinal rank of sq among the ascending
// enumeration of the mover's own occupied squares.
func pieceSelector(p *Position, sq Square) int {
	return destinationIndex(p.Bitboards[12+p.ActiveColor], sq)
}

// realDestinations returns m.From()'s actual, occupancy-aware destination
// set on p's board (what the piece can really reach, not what it could
// reach on an empty board).
func realDestinations(p *Position, from Square) Bitboard {
	piece := p.GetPieceFromSquare(from)
	pt := PieceTypeOf(piece)
	c := ColorOf(piece)
	occ := p.Bitboards[14]

	switch pt {
	case Pawn:
		return genPawnDestinations(p, from, c)
	case King:
		// The king's adjacent squares not held by its own side, plus
		// g1/c1/g8/c8 for each castling side canCastle accepts, so castling
		// is indexed as an ordinary king move to that square.
		dests := kingAttacks[from] &^ p.Bitboards[12+c]
		for side := 1; side <= 8; side <<= 1 {
			if p.canCastle(side, genAttacks(p.Bitboards, Opposite(c)), occ) {
				ci := bitScan(uint64(side))
				dests = dests.With(castleKingDestination(ci))
			}
		}
		return dests
	default:
		return AttacksOf(pt, c, from, occ) &^ p.Bitboards[12+c]
	}
}

func castleKingDestination(castlingIndex int) Square {
	switch castlingIndex {
	case 0:
		return SG1
	case 1:
		return SC1
	case 2:
		return SG8
	default:
		return SC8
	}
}

func genPawnDestinations(p *Position, from Square, c Color) Bitboard {
	occupancy := p.Bitboards[14]
	var ep Bitboard
	if p.EPTarget != SquareNone {
		ep = Bit(p.EPTarget)
	}
	enemies := p.Bitboards[12+Opposite(c)]

	dir, initRank := 8, 1
	if c == ColorBlack {
		dir, initRank = -8, 6
	}

	var dests Bitboard
	fwd := from + dir
	if Bit(fwd)&occupancy == 0 {
		dests = dests.With(fwd)
		if SquareRank(from) == initRank && Bit(from+2*dir)&occupancy == 0 {
			dests = dests.With(from + 2*dir)
		}
	}
	dests |= pawnAttacks[c][from] & (enemies | ep)
	return dests
}

/*
MoveIndex identifies m within p's legal moves as a small integer, without
carrying promotion choice (see the file-level doc comment).
*/
func MoveIndex(p *Position, m Move) int {
	dests := realDestinations(p, m.From())
	return pieceSelector(p, m.From())*destinationStride + destinationIndex(dests, m.To())
}

// RequiresLongMoveIndex reports whether idx needs the 16-bit encoding
// rather than the 8-bit one (idx > 252, reserving the top few byte values
// as sentinels the BCGN reader can use for out-of-band signaling).
func RequiresLongMoveIndex(idx int) bool { return idx > 252 }

/*
MoveFromIndex reconstructs the (from, to) square pair identified by idx
against p, re-deriving the move's type (promotion moves need the
promoted-to piece supplied separately by the caller, since the index does
not encode it).
*/
func MoveFromIndex(p *Position, idx int) (from, to Square, ok bool) {
	ownOcc := p.Bitboards[12+p.ActiveColor]
	pieceIdx := idx / destinationStride
	destIdx := idx % destinationStride

	if ownOcc.Count() <= pieceIdx {
		return SquareNone, SquareNone, false
	}
	from = destinationSquareByIndex(ownOcc, pieceIdx)

	dests := realDestinations(p, from)
	if destIdx >= dests.Count() {
		return SquareNone, SquareNone, false
	}
	to = destinationSquareByIndex(dests, destIdx)
	return from, to, true
}

/*
The following exports hand the move-index codec's primitives to the bcgn
package, which builds the level-2 bit-packed encoding (variable-width
ceil_log2 fields rather than this file's fixed destinationStride) from the
exact same pieceSelector/realDestinations/destinationIndex machinery, per
spec.md §4.5. They are thin re-exports, not a second implementation.
*/

// OwnOccupancy returns the bitboard of squares occupied by p's side to move.
func OwnOccupancy(p *Position) Bitboard { return p.Bitboards[12+p.ActiveColor] }

// PieceSelector returns sq's ordinal rank among OwnOccupancy(p)'s ascending
// enumeration; sq must be a member.
func PieceSelector(p *Position, sq Square) int { return pieceSelector(p, sq) }

// PieceAtSelector is the inverse of PieceSelector: the square at ordinal
// position idx within OwnOccupancy(p)'s ascending enumeration.
func PieceAtSelector(p *Position, idx int) Square {
	return destinationSquareByIndex(OwnOccupancy(p), idx)
}

// RealDestinations returns from's actual, occupancy- and
// castling-rights-aware destination set on p's board.
func RealDestinations(p *Position, from Square) Bitboard { return realDestinations(p, from) }

// DestinationIndex returns target's ordinal position within dests's
// ascending enumeration.
func DestinationIndex(dests Bitboard, target Square) int { return destinationIndex(dests, target) }

// DestinationAtIndex is the inverse of DestinationIndex.
func DestinationAtIndex(dests Bitboard, idx int) Square {
	return destinationSquareByIndex(dests, idx)
}

/*
RequiresLongMoveIndexForPosition reports whether BCGN move-encoding level 1
must use the 2-byte long index for ANY move from p's side to move, rather
than checking a specific move's index. Both the writer and reader recompute
this from p alone (never from a transmitted flag), so it must depend only
on p: it asks whether the largest index MoveIndex could possibly return for
p's side to move exceeds the short-index ceiling.
*/
func RequiresLongMoveIndexForPosition(p *Position) bool {
	numPieces := OwnOccupancy(p).Count()
	maxIdx := numPieces*destinationStride - 1
	return RequiresLongMoveIndex(maxIdx)
}
