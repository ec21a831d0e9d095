/*
movecodec.go implements the three BCGN move-encoding levels (spec.md
§4.5). All three share one shape: encode(position-before-move, move) and
decode(position-before-move, cursor) -> move, so a Writer/Reader only needs
to track a running Position and dispatch on CompressionLevel.

Level 1 reuses chesscore's move-index codec (component E) directly — the
same pieceSelector/realDestinations/destinationIndex primitives that back
chesscore.MoveIndex, just re-exported for this package. Level 2 reuses the
same primitives again, but with ceil_log2-width bit fields instead of
MoveIndex's fixed byte-aligned stride, per spec.md §4.5's explicit
destination-set rules.
*/
package bcgn

import (
	"fmt"
	"math/bits"

	"github.com/tmattsson/chesscore"
)

// ceilLog2 returns the number of bits needed to distinguish n values in
// [0, n). ceilLog2(0) and ceilLog2(1) are both 0 (spec.md §9: a single
// possible value needs zero bits, not a rounded-up one).
func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// encodeLevel0 writes m as a raw 2-byte CompressedMove.
func encodeLevel0(m chesscore.Move) []byte {
	c := m.Compress()
	return c[:]
}

func decodeLevel0(data []byte, pos int) (chesscore.Move, int, error) {
	if pos+2 > len(data) {
		return 0, pos, fmt.Errorf("%w: level 0 move truncated", ErrTruncatedRecord)
	}
	var c chesscore.CompressedMove
	copy(c[:], data[pos:pos+2])
	return c.Decompress(), pos + 2, nil
}

// encodeLevel1 writes m as a 1- or 2-byte move index (chesscore.MoveIndex),
// followed by an extra promotion-piece byte when m promotes (the index
// itself never carries promotion choice).
func encodeLevel1(pos *chesscore.Position, m chesscore.Move) []byte {
	idx := chesscore.MoveIndex(pos, m)
	var buf []byte
	if chesscore.RequiresLongMoveIndexForPosition(pos) {
		buf = []byte{byte(idx >> 8), byte(idx)}
	} else {
		buf = []byte{byte(idx)}
	}
	if m.Type() == chesscore.MovePromotion {
		buf = append(buf, byte(m.PromoPiece()))
	}
	return buf
}

func decodeLevel1(pos *chesscore.Position, data []byte, cursor int) (chesscore.Move, int, error) {
	long := chesscore.RequiresLongMoveIndexForPosition(pos)
	n := 1
	if long {
		n = 2
	}
	if cursor+n > len(data) {
		return 0, cursor, fmt.Errorf("%w: level 1 move index truncated", ErrTruncatedRecord)
	}
	idx := int(data[cursor])
	if long {
		idx = int(data[cursor])<<8 | int(data[cursor+1])
	}
	cursor += n

	from, to, ok := chesscore.MoveFromIndex(pos, idx)
	if !ok {
		return 0, cursor, fmt.Errorf("%w: move index %d out of range", ErrMalformedMovetext, idx)
	}

	moveType, needsPromo := classifyMove(pos, from, to)
	if needsPromo {
		if cursor >= len(data) {
			return 0, cursor, fmt.Errorf("%w: missing promotion byte", ErrTruncatedRecord)
		}
		promo := chesscore.PromotionFlag(data[cursor])
		cursor++
		return chesscore.NewPromotionMove(from, to, promo), cursor, nil
	}
	return chesscore.NewMove(from, to, moveType), cursor, nil
}

// classifyMove re-derives a decoded (from, to) pair's MoveType against pos,
// since neither move-index level carries it explicitly. needsPromo reports
// whether the caller must additionally read a promoted-to piece byte.
func classifyMove(pos *chesscore.Position, from, to chesscore.Square) (moveType chesscore.MoveType, needsPromo bool) {
	piece := pos.GetPieceFromSquare(from)
	pt := chesscore.PieceTypeOf(piece)

	switch pt {
	case chesscore.Pawn:
		if to == pos.EPTarget && pos.EPTarget != chesscore.SquareNone {
			return chesscore.MoveEnPassant, false
		}
		if chesscore.SquareRank(to) == 0 || chesscore.SquareRank(to) == 7 {
			return chesscore.MovePromotion, true
		}
	case chesscore.King:
		df := chesscore.SquareFile(to) - chesscore.SquareFile(from)
		if df == 2 || df == -2 {
			return chesscore.MoveCastle, false
		}
	}
	return chesscore.MoveNormal, false
}

// kingDestinations enumerates a king's level-2 destination slots: its
// ordinary pseudo-attacks (minus own pieces) in ascending-square order,
// followed by up to two castling slots — long castle first, then short —
// appended only when the corresponding right is held and the path is clear.
// normalCount is the number of ordinary (non-castling) entries at the front
// of the returned slice.
func kingDestinations(pos *chesscore.Position, from chesscore.Square) (dests []chesscore.Square, normalCount int) {
	c := pos.ActiveColor
	normal := chesscore.AttacksOf(chesscore.King, c, from, 0) &^ chesscore.OwnOccupancy(pos)
	for sq := range 64 {
		if normal.Set(sq) {
			dests = append(dests, sq)
		}
	}
	normalCount = len(dests)

	occ := pos.Bitboards[14]
	if c == chesscore.ColorWhite {
		if pos.CastlingRights&chesscore.CastlingWhiteLong != 0 &&
			occ&(chesscore.Bit(chesscore.SB1)|chesscore.Bit(chesscore.SC1)|chesscore.Bit(chesscore.SD1)) == 0 {
			dests = append(dests, chesscore.SC1)
		}
		if pos.CastlingRights&chesscore.CastlingWhiteShort != 0 &&
			occ&(chesscore.Bit(chesscore.SF1)|chesscore.Bit(chesscore.SG1)) == 0 {
			dests = append(dests, chesscore.SG1)
		}
	} else {
		if pos.CastlingRights&chesscore.CastlingBlackLong != 0 &&
			occ&(chesscore.Bit(chesscore.SB8)|chesscore.Bit(chesscore.SC8)|chesscore.Bit(chesscore.SD8)) == 0 {
			dests = append(dests, chesscore.SC8)
		}
		if pos.CastlingRights&chesscore.CastlingBlackShort != 0 &&
			occ&(chesscore.Bit(chesscore.SF8)|chesscore.Bit(chesscore.SG8)) == 0 {
			dests = append(dests, chesscore.SG8)
		}
	}
	return dests, normalCount
}

// encodeLevel2 writes m's (pieceId, moveId) bit fields to bw per spec.md
// §4.5's piece-type-sensitive destination rules.
func encodeLevel2(pos *chesscore.Position, m chesscore.Move, bw *chesscore.BitWriter) {
	from, to := m.From(), m.To()

	numPieces := chesscore.OwnOccupancy(pos).Count()
	pieceID := chesscore.PieceSelector(pos, from)
	bw.Write(uint(pieceID), ceilLog2(numPieces))

	piece := pos.GetPieceFromSquare(from)
	switch chesscore.PieceTypeOf(piece) {
	case chesscore.Pawn:
		dests := chesscore.RealDestinations(pos, from)
		numDests := dests.Count()
		toIdx := chesscore.DestinationIndex(dests, to)
		if m.Type() == chesscore.MovePromotion {
			bw.Write(uint(toIdx*4+m.PromoPiece()), ceilLog2(numDests*4))
		} else {
			bw.Write(uint(toIdx), ceilLog2(numDests))
		}
	case chesscore.King:
		dests, _ := kingDestinations(pos, from)
		idx := indexOfSquare(dests, to)
		bw.Write(uint(idx), ceilLog2(len(dests)))
	default:
		dests := chesscore.RealDestinations(pos, from)
		toIdx := chesscore.DestinationIndex(dests, to)
		bw.Write(uint(toIdx), ceilLog2(dests.Count()))
	}
}

func indexOfSquare(dests []chesscore.Square, target chesscore.Square) int {
	for i, sq := range dests {
		if sq == target {
			return i
		}
	}
	return -1
}

// decodeLevel2 reads one move's (pieceId, moveId) bit fields from br
// against pos, mirroring encodeLevel2 field-for-field.
func decodeLevel2(pos *chesscore.Position, br *chesscore.BitReader) (chesscore.Move, error) {
	numPieces := chesscore.OwnOccupancy(pos).Count()
	pieceID := int(br.Read(ceilLog2(numPieces)))
	from := chesscore.PieceAtSelector(pos, pieceID)
	if from == chesscore.SquareNone {
		return 0, fmt.Errorf("%w: pieceId %d out of range", ErrMalformedMovetext, pieceID)
	}

	piece := pos.GetPieceFromSquare(from)
	switch chesscore.PieceTypeOf(piece) {
	case chesscore.Pawn:
		dests := chesscore.RealDestinations(pos, from)
		numDests := dests.Count()
		promotes := (pos.ActiveColor == chesscore.ColorWhite && chesscore.SquareRank(from) == 6) ||
			(pos.ActiveColor == chesscore.ColorBlack && chesscore.SquareRank(from) == 1)
		if promotes {
			moveID := int(br.Read(ceilLog2(numDests * 4)))
			toIdx, promo := moveID/4, moveID%4
			to := chesscore.DestinationAtIndex(dests, toIdx)
			return chesscore.NewPromotionMove(from, to, promo), nil
		}
		toIdx := int(br.Read(ceilLog2(numDests)))
		to := chesscore.DestinationAtIndex(dests, toIdx)
		moveType := chesscore.MoveNormal
		if to == pos.EPTarget && pos.EPTarget != chesscore.SquareNone {
			moveType = chesscore.MoveEnPassant
		}
		return chesscore.NewMove(from, to, moveType), nil

	case chesscore.King:
		dests, normalCount := kingDestinations(pos, from)
		idx := int(br.Read(ceilLog2(len(dests))))
		if idx >= len(dests) {
			return 0, fmt.Errorf("%w: king moveId %d out of range", ErrMalformedMovetext, idx)
		}
		to := dests[idx]
		moveType := chesscore.MoveNormal
		if idx >= normalCount {
			moveType = chesscore.MoveCastle
		}
		return chesscore.NewMove(from, to, moveType), nil

	default:
		dests := chesscore.RealDestinations(pos, from)
		toIdx := int(br.Read(ceilLog2(dests.Count())))
		to := chesscore.DestinationAtIndex(dests, toIdx)
		return chesscore.NewMove(from, to, chesscore.MoveNormal), nil
	}
}
