package bcgn

import (
	"fmt"

	"github.com/tmattsson/chesscore"
)

// Flags are the per-game record's bit0/bit1 flags (spec.md §4.5).
type Flags uint8

const (
	FlagHasAdditionalTags Flags = 1 << 0
	FlagHasCustomStartPos Flags = 1 << 1
)

// TagPair is one (name, value) additional tag, stored in the order the
// writer added them.
type TagPair struct {
	Name  string
	Value string
}

/*
GameHeader holds every per-game header field the writer accepts through its
setters (spec.md §4.5's per-game record, minus total_length/header_length,
which are derived, and minus the movetext itself). StartPosition is nil for
the standard starting position; otherwise it is the game's custom start,
recorded via the hasCustomStartPos flag.
*/
type GameHeader struct {
	Plies          uint16
	Result         chesscore.Result
	Year           uint16
	Month          uint8
	Day            uint8
	WhiteElo       uint16
	BlackElo       uint16
	Round          uint16
	ECOCategory    byte
	ECOIndex       uint8
	StartPosition  *chesscore.CompressedPosition
	White          string
	Black          string
	Event          string
	Site           string
	AdditionalTags []TagPair
}

func (h GameHeader) flags() Flags {
	var f Flags
	if len(h.AdditionalTags) > 0 {
		f |= FlagHasAdditionalTags
	}
	if h.StartPosition != nil {
		f |= FlagHasCustomStartPos
	}
	return f
}

func plyResultWord(plies uint16, result chesscore.Result) uint16 {
	return plies<<2 | uint16(result)&0x3
}

func unpackPlyResultWord(w uint16) (plies uint16, result chesscore.Result) {
	return w >> 2, chesscore.Result(w & 0x3)
}

// appendString appends s as a u8-length-prefixed, non-null-terminated
// string, silently truncating to 255 bytes (spec.md §4.5).
func appendString(buf []byte, s string) []byte {
	if len(s) > 255 {
		s = s[:255]
	}
	buf = append(buf, byte(len(s)))
	return append(buf, s...)
}

// readString reads a u8-length-prefixed string starting at data[pos],
// returning the string and the position just past it.
func readString(data []byte, pos int) (string, int, error) {
	if pos >= len(data) {
		return "", pos, fmt.Errorf("%w: string length prefix out of bounds", ErrMalformedMovetext)
	}
	n := int(data[pos])
	pos++
	if pos+n > len(data) {
		return "", pos, fmt.Errorf("%w: string body out of bounds", ErrMalformedMovetext)
	}
	return string(data[pos : pos+n]), pos + n, nil
}

// encodeGameHeader serializes everything between the length prefixes and
// the movetext: the ply/result word, and then either the headerless tail
// (flags + optional start position) or the full per-game header (spec.md
// §4.5).
func encodeGameHeader(h GameHeader, headerless bool) []byte {
	buf := make([]byte, 0, 64)

	w := plyResultWord(h.Plies, h.Result)
	buf = append(buf, byte(w>>8), byte(w))

	if !headerless {
		var year [2]byte
		putUint16(year[:], h.Year)
		buf = append(buf, year[:]...)
		buf = append(buf, h.Month, h.Day)

		var elo [2]byte
		putUint16(elo[:], h.WhiteElo)
		buf = append(buf, elo[:]...)
		putUint16(elo[:], h.BlackElo)
		buf = append(buf, elo[:]...)

		var round [2]byte
		putUint16(round[:], h.Round)
		buf = append(buf, round[:]...)

		buf = append(buf, h.ECOCategory, h.ECOIndex)
	}

	flags := h.flags()
	if headerless {
		flags &^= FlagHasAdditionalTags
	}
	buf = append(buf, byte(flags))

	if h.StartPosition != nil {
		buf = append(buf, h.StartPosition[:]...)
	}

	if !headerless {
		buf = appendString(buf, h.White)
		buf = appendString(buf, h.Black)
		buf = appendString(buf, h.Event)
		buf = appendString(buf, h.Site)
	}

	if !headerless && len(h.AdditionalTags) > 0 {
		buf = append(buf, byte(len(h.AdditionalTags)))
		for _, t := range h.AdditionalTags {
			buf = appendString(buf, t.Name)
			buf = appendString(buf, t.Value)
		}
	}

	return buf
}
