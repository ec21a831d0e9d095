package bcgn

import "errors"

var (
	// ErrInvalidHeader is returned when the 32-byte file header's magic,
	// version, compression level, or reserved bytes are invalid. Fatal:
	// the reader yields no games.
	ErrInvalidHeader = errors.New("bcgn: invalid file header")

	// ErrTruncatedRecord is returned when a record's total_length prefix
	// claims more bytes than remain in the stream. Fatal for the iterator.
	ErrTruncatedRecord = errors.New("bcgn: truncated game record")

	// ErrMalformedMovetext is returned when a move-encoding level 1 or 2
	// index/bitfield decodes to an out-of-range or illegal move. Fatal for
	// the iterator.
	ErrMalformedMovetext = errors.New("bcgn: malformed movetext")

	// ErrOverlongGameRecord is returned by EndGame when the accumulated
	// record would be 65535 bytes or larger, exceeding the u16
	// total_length field.
	ErrOverlongGameRecord = errors.New("bcgn: game record too long")

	// ErrTooManyTags is returned by AddTag once 255 additional
	// tags have already been set for the current game.
	ErrTooManyTags = errors.New("bcgn: too many additional tags")
)
