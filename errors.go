// errors.go declares the typed sentinel errors the core returns for
// malformed external data. Internal invariant violations (a caller passing
// an out-of-range square or an impossible piece) still panic — see fen.go.

package chesscore

import "errors"

var (
	// ErrMalformedFEN is returned by ParseFEN for structurally invalid FEN
	// strings (wrong field count, unparsable numeric fields).
	ErrMalformedFEN = errors.New("chesscore: malformed FEN string")

	// ErrInvalidCompressedPosition is returned when decoding a
	// CompressedPosition whose occupancy holds more than 32 squares, or
	// whose en-passant invariant does not hold: the nibble for a claimed
	// en-passant-eligible pawn does not correspond to a pawn standing on
	// the rank en passant requires.
	ErrInvalidCompressedPosition = errors.New("chesscore: invalid compressed position")

	// ErrAmbiguousSAN is returned by the SAN resolver when more than one
	// legal move matches the given SAN text.
	ErrAmbiguousSAN = errors.New("chesscore: ambiguous SAN move")

	// ErrNoMatchingMove is returned by the SAN/UCI resolvers when no legal
	// move matches the given text.
	ErrNoMatchingMove = errors.New("chesscore: no legal move matches")

	// ErrMalformedSAN is returned when SAN text cannot be parsed as a move
	// at all (not just "no legal match").
	ErrMalformedSAN = errors.New("chesscore: malformed SAN text")

	// ErrMalformedUCI is returned when UCI move text is not 4 or 5
	// characters of the expected shape.
	ErrMalformedUCI = errors.New("chesscore: malformed UCI move text")
)
