/*
compressedmove.go implements CompressedMove, the 2-byte big-endian wire
representation of a Move used by BCGN move-encoding level 0. Move's own
in-memory bit layout already matches this wire layout bit-for-bit, so
compressing and decompressing is a straight reinterpretation plus a
big-endian byte swap.
*/

package chesscore

import "encoding/binary"

// CompressedMove is the 2-byte wire form of a [Move]. Its 16 bits carry
// the same type/from/to/promotion fields as Move, just serialized
// big-endian rather than kept as a native-endian uint16 in memory.
type CompressedMove [2]byte

// Compress serializes m into its 2-byte wire form.
func (m Move) Compress() CompressedMove {
	var c CompressedMove
	binary.BigEndian.PutUint16(c[:], uint16(m))
	return c
}

// Decompress parses a wire CompressedMove back into a Move.
func (c CompressedMove) Decompress() Move {
	return Move(binary.BigEndian.Uint16(c[:]))
}
