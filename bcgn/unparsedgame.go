package bcgn

import (
	"fmt"

	"github.com/tmattsson/chesscore"
)

/*
UnparsedGame is one decoded-enough-to-navigate game record. Its fixed-size
numeric fields (plies, result, year, elo, round, eco, flags) and the
movetext slice are parsed eagerly, since reading them costs nothing beyond
a few bounds-checked byte reads and locating movetext needs header_length
anyway. The player/event/site strings and any additional tags, which
require allocation, parse lazily from the retained raw tail bytes on first
access (spec.md §4.5: "Header field accessors parse lazily from the byte
slice"). All returned slices/views share the Reader's backing buffer and
are only valid until the next iterator advance.
*/
type UnparsedGame struct {
	headerless bool
	level      CompressionLevel

	plies    uint16
	result   chesscore.Result
	year     uint16
	month    uint8
	day      uint8
	whiteElo uint16
	blackElo uint16
	round    uint16
	ecoCat   byte
	ecoIdx   uint8
	flags    Flags

	customStart *chesscore.CompressedPosition
	stringsTail []byte // raw white/black/event/site + tags bytes, unparsed
	movetext    []byte

	parsed bool
	white  string
	black  string
	event  string
	site   string
	tags   []TagPair
}

// parseRecord splits record (the full per-game record, including its
// leading total_length prefix) into an UnparsedGame, per spec.md §4.5.
func parseRecord(record []byte, headerless bool, level CompressionLevel) (*UnparsedGame, error) {
	g := &UnparsedGame{headerless: headerless, level: level}

	if headerless {
		if len(record) < 5 {
			return nil, fmt.Errorf("%w: headerless record shorter than fixed fields", ErrTruncatedRecord)
		}
		w := getUint16(record[2:4])
		g.plies, g.result = unpackPlyResultWord(w)
		g.flags = Flags(record[4])
		pos := 5
		if g.flags&FlagHasCustomStartPos != 0 {
			if pos+24 > len(record) {
				return nil, fmt.Errorf("%w: custom start position truncated", ErrTruncatedRecord)
			}
			var cp chesscore.CompressedPosition
			copy(cp[:], record[pos:pos+24])
			g.customStart = &cp
			pos += 24
		}
		g.movetext = record[pos:]
		return g, nil
	}

	if len(record) < 4 {
		return nil, fmt.Errorf("%w: record shorter than length prefixes", ErrTruncatedRecord)
	}
	headerLength := int(getUint16(record[2:4]))
	if headerLength > len(record) {
		return nil, fmt.Errorf("%w: header_length exceeds record", ErrTruncatedRecord)
	}
	headerBytes := record[4:headerLength]
	g.movetext = record[headerLength:]

	if len(headerBytes) < 15 {
		return nil, fmt.Errorf("%w: header shorter than fixed fields", ErrTruncatedRecord)
	}
	w := getUint16(headerBytes[0:2])
	g.plies, g.result = unpackPlyResultWord(w)
	g.year = getUint16(headerBytes[2:4])
	g.month = headerBytes[4]
	g.day = headerBytes[5]
	g.whiteElo = getUint16(headerBytes[6:8])
	g.blackElo = getUint16(headerBytes[8:10])
	g.round = getUint16(headerBytes[10:12])
	g.ecoCat = headerBytes[12]
	g.ecoIdx = headerBytes[13]
	g.flags = Flags(headerBytes[14])

	tail := headerBytes[15:]
	if g.flags&FlagHasCustomStartPos != 0 {
		if len(tail) < 24 {
			return nil, fmt.Errorf("%w: custom start position truncated", ErrTruncatedRecord)
		}
		var cp chesscore.CompressedPosition
		copy(cp[:], tail[:24])
		g.customStart = &cp
		tail = tail[24:]
	}
	g.stringsTail = tail
	return g, nil
}

// parseStrings lazily parses the player/event/site strings and any
// additional tags out of g.stringsTail, memoizing the result.
func (g *UnparsedGame) parseStrings() error {
	if g.parsed || g.headerless {
		g.parsed = true
		return nil
	}

	tail := g.stringsTail
	i := 0
	for _, dst := range []*string{&g.white, &g.black, &g.event, &g.site} {
		s, next, err := readString(tail, i)
		if err != nil {
			return err
		}
		*dst = s
		i = next
	}

	if g.flags&FlagHasAdditionalTags != 0 {
		if i >= len(tail) {
			return fmt.Errorf("%w: missing additional tag count", ErrMalformedMovetext)
		}
		k := int(tail[i])
		i++
		g.tags = make([]TagPair, 0, k)
		for range k {
			name, next, err := readString(tail, i)
			if err != nil {
				return err
			}
			i = next
			value, next, err := readString(tail, i)
			if err != nil {
				return err
			}
			i = next
			g.tags = append(g.tags, TagPair{Name: name, Value: value})
		}
	}

	g.parsed = true
	return nil
}

// NumPlies returns the game's recorded ply count.
func (g *UnparsedGame) NumPlies() int { return int(g.plies) }

// Result returns the game's recorded result.
func (g *UnparsedGame) Result() chesscore.Result { return g.result }

// Date returns the game's recorded year/month/day; 0 means unknown for
// each field, per spec.md §4.5.
func (g *UnparsedGame) Date() (year int, month, day int) {
	return int(g.year), int(g.month), int(g.day)
}

// Elo returns the recorded white/black Elo ratings (0 = unrecorded).
func (g *UnparsedGame) Elo() (white, black int) { return int(g.whiteElo), int(g.blackElo) }

// Round returns the recorded round number.
func (g *UnparsedGame) Round() int { return int(g.round) }

// ECO returns the recorded ECO code, e.g. "B90", or "" if category is unset.
func (g *UnparsedGame) ECO() string {
	if g.ecoCat == 0 {
		return ""
	}
	return fmt.Sprintf("%c%02d", g.ecoCat, g.ecoIdx)
}

// HasCustomStartPosition reports whether the game began from a position
// other than the standard starting position.
func (g *UnparsedGame) HasCustomStartPosition() bool { return g.customStart != nil }

// StartPosition returns the game's starting position, re-validating the
// embedded CompressedPosition (if any) since it may come from an untrusted
// third-party file (spec.md §9).
func (g *UnparsedGame) StartPosition() (chesscore.Position, error) {
	if g.customStart == nil {
		return chesscore.NewPosition(), nil
	}
	return chesscore.Decompress(*g.customStart)
}

// White, Black, Event, and Site return the game's player/event/site tags.
// They are empty strings for headerless records, which do not carry them.
func (g *UnparsedGame) White() string { g.parseStrings(); return g.white }
func (g *UnparsedGame) Black() string { g.parseStrings(); return g.black }
func (g *UnparsedGame) Event() string { g.parseStrings(); return g.event }
func (g *UnparsedGame) Site() string  { g.parseStrings(); return g.site }

// Tag returns the value of the named additional tag, if present.
func (g *UnparsedGame) Tag(name string) (string, bool) {
	g.parseStrings()
	for _, t := range g.tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// Moves returns an iterator over the game's moves, decoded against a
// running Position seeded from StartPosition.
func (g *UnparsedGame) Moves() *MoveIterator {
	start, err := g.StartPosition()
	mi := &MoveIterator{pos: start, level: g.level, movetext: g.movetext, remaining: int(g.plies), err: err}
	if err == nil && g.level == CompressionLevel2 {
		mi.br = chesscore.NewBitReader(g.movetext)
	}
	return mi
}

// MoveIterator decodes a game's movetext one move at a time, advancing a
// running Position as it goes (spec.md §4.5: "it carries a running
// Position... and yields Moves").
type MoveIterator struct {
	pos       chesscore.Position
	level     CompressionLevel
	movetext  []byte
	cursor    int
	br        *chesscore.BitReader
	remaining int
	err       error
}

// Next decodes and applies the next move, advancing the iterator's running
// Position. It returns false once the ply count is exhausted or a decode
// error occurs; check Err to distinguish the two.
func (mi *MoveIterator) Next() (chesscore.Move, bool) {
	if mi.err != nil || mi.remaining <= 0 {
		return 0, false
	}

	var m chesscore.Move
	var err error
	switch mi.level {
	case CompressionLevel0:
		m, mi.cursor, err = decodeLevel0(mi.movetext, mi.cursor)
	case CompressionLevel1:
		m, mi.cursor, err = decodeLevel1(&mi.pos, mi.movetext, mi.cursor)
	case CompressionLevel2:
		m, err = decodeLevel2(&mi.pos, mi.br)
	}
	if err != nil {
		mi.err = err
		return 0, false
	}

	mi.pos.DoMove(m)
	mi.remaining--
	return m, true
}

// Position returns the iterator's current running position (after the most
// recently yielded move, or the game's start position before the first
// call to Next).
func (mi *MoveIterator) Position() chesscore.Position { return mi.pos }

// Err returns the error, if any, that stopped the iterator early.
func (mi *MoveIterator) Err() error { return mi.err }
