/*
Package bcgn implements the BCGN binary chess game archive: a compact,
length-prefixed per-game record format with three selectable move-encoding
levels, optional lz4/lz4-dc stream compression, append mode, and a
headerless record variant. See spec.md §4.5.

Grounded on the teacher's own double-buffered, one-background-worker I/O
style (treepeck-chego has no BCGN precedent of its own — chego/huffman.go is
an unrelated, abandoned Huffman-tree compression scheme — so this package's
shape follows the concurrency model spec.md §5 describes directly, rendered
as a goroutine + channel per Writer/Reader rather than the original's OS
thread).
*/
package bcgn

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the 4-byte ASCII signature at the start of every BCGN file,
// headerless ones included.
const Magic = "BCGN"

// HeaderSize is the fixed size in bytes of the file header.
const HeaderSize = 32

// CompressionLevel selects one of the three move-encoding schemes (spec.md
// §4.5).
type CompressionLevel uint8

const (
	// CompressionLevel0 stores each move as a raw 2-byte CompressedMove.
	CompressionLevel0 CompressionLevel = iota
	// CompressionLevel1 stores each move as a 1- or 2-byte move index.
	CompressionLevel1
	// CompressionLevel2 bit-packs a pieceId/moveId pair per move.
	CompressionLevel2
)

// AuxCompression selects the stream-level compression wrapped around the
// per-game records.
type AuxCompression uint8

const (
	// AuxCompressionNone stores per-game records uncompressed.
	AuxCompressionNone AuxCompression = iota
	// AuxCompressionLZ4 wraps the record stream in a plain lz4.Writer/Reader.
	AuxCompressionLZ4
	// AuxCompressionLZ4DC wraps the record stream in an lz4.Writer/Reader
	// with block dependence enabled, trading a little CPU for a better
	// ratio across many small, similar game records.
	AuxCompressionLZ4DC
)

// Header is the 32-byte fixed file header (spec.md §4.5). The 24
// reserved trailing bytes are written as zero and must be zero on read;
// Header does not store them.
type Header struct {
	Version          uint8
	CompressionLevel CompressionLevel
	AuxCompression   AuxCompression
	IsHeaderless     bool
}

// WriteHeader serializes h as the 32-byte file header and writes it to w.
func WriteHeader(w io.Writer, h Header) error {
	var buf [HeaderSize]byte
	copy(buf[0:4], Magic)
	buf[4] = h.Version
	buf[5] = byte(h.CompressionLevel)
	buf[6] = byte(h.AuxCompression)
	if h.IsHeaderless {
		buf[7] = 0x80
	}
	_, err := w.Write(buf[:])
	return err
}

// ReadHeader reads and validates the 32-byte file header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if string(buf[0:4]) != Magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrInvalidHeader, buf[0:4])
	}
	if buf[4] != 0 {
		return Header{}, fmt.Errorf("%w: unknown version %d", ErrInvalidHeader, buf[4])
	}
	for _, b := range buf[8:] {
		if b != 0 {
			return Header{}, fmt.Errorf("%w: reserved bytes 8..31 not zero", ErrInvalidHeader)
		}
	}
	if buf[5] > byte(CompressionLevel2) {
		return Header{}, fmt.Errorf("%w: unknown compression level %d", ErrInvalidHeader, buf[5])
	}
	if buf[6] > byte(AuxCompressionLZ4DC) {
		return Header{}, fmt.Errorf("%w: unknown aux compression %d", ErrInvalidHeader, buf[6])
	}
	if buf[7]&0x7F != 0 {
		return Header{}, fmt.Errorf("%w: reserved bits set in byte 7", ErrInvalidHeader)
	}
	h := Header{
		Version:          buf[4],
		CompressionLevel: CompressionLevel(buf[5]),
		AuxCompression:   AuxCompression(buf[6]),
		IsHeaderless:     buf[7]&0x80 != 0,
	}
	return h, nil
}

// putUint16 and getUint16 name the big-endian encoding spec.md §6 mandates
// for every multibyte integer in the wire format, so call sites read as
// "BCGN's integer encoding" rather than a bare binary.BigEndian call.
func putUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func getUint16(b []byte) uint16    { return binary.BigEndian.Uint16(b) }
