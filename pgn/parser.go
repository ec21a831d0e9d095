package pgn

import "github.com/tmattsson/chesscore"

// TagPair is one "[Key "Value"]" tag from a game's tag section, in the
// order it appeared.
type TagPair struct {
	Name  string
	Value string
}

// parseTagSection parses zero-or-more leading blank lines, then one or more
// "[Key "Value"]" lines, then the blank line that ends the section. ok is
// false if the bytes available at p don't shape up as a tag section at all
// (including a clean EOF with nothing left).
func (r *Reader) parseTagSection(p int) (tags []TagPair, newp int, ok bool) {
	for {
		b, avail := r.at(p)
		if !avail {
			return tags, p, len(tags) > 0
		}
		if b == '\n' {
			p++
			if len(tags) == 0 {
				continue // skip blank lines preceding the first tag
			}
			return tags, p, true
		}
		if b != '[' {
			return tags, p, false
		}

		name, value, np, ok2 := r.parseTagLine(p)
		if !ok2 {
			return tags, p, false
		}
		tags = append(tags, TagPair{Name: name, Value: value})
		p = np

		// Consume the rest of the line.
		for {
			c, avail2 := r.at(p)
			if !avail2 {
				return tags, p, false
			}
			p++
			if c == '\n' {
				break
			}
		}
	}
}

// parseTagLine parses one "[Key "Value"]" line starting at the '['.
func (r *Reader) parseTagLine(p int) (name, value string, newp int, ok bool) {
	b, avail := r.at(p)
	if !avail || b != '[' {
		return "", "", p, false
	}
	p++

	start := p
	for {
		c, avail2 := r.at(p)
		if !avail2 {
			return "", "", p, false
		}
		if c == ' ' {
			break
		}
		p++
	}
	name = r.slice(start, p)
	p++ // the space

	c, avail3 := r.at(p)
	if !avail3 || c != '"' {
		return "", "", p, false
	}
	p++

	vstart := p
	for {
		c, avail4 := r.at(p)
		if !avail4 {
			return "", "", p, false
		}
		if c == '"' {
			break
		}
		p++
	}
	value = r.slice(vstart, p)
	p++ // the closing quote

	c, avail5 := r.at(p)
	if !avail5 || c != ']' {
		return "", "", p, false
	}
	p++
	return name, value, p, true
}

/*
parseMovetext scans move tokens and a trailing result token from p, skipping
comments/variations/NAGs/move-numbers/whitespace along the way (spec.md
§4.6). It stops at the section's terminating blank line or at EOF, both of
which report complete as true (at refills the buffer itself); complete is
false when a byte starts no move, result or skippable element, i.e. the
movetext cannot be framed.
*/
func (r *Reader) parseMovetext(p int) (moves []string, result chesscore.Result, newp int, complete bool) {
	for {
		var blank bool
		p, blank = r.skipMovetextNoise(p)
		if blank {
			return moves, result, p, true
		}

		if _, avail := r.at(p); !avail {
			return moves, result, p, true // EOF ends the last game in a file
		}

		if res, np, matched := r.tryMatchResult(p); matched {
			result = res
			p = np
			continue
		}

		tok, np, ok := r.scanMoveToken(p)
		if !ok {
			return moves, result, p, false
		}
		moves = append(moves, tok)
		p = np
	}
}

/*
skipMovetextNoise advances p past whitespace, ";" line comments, "{...}"
block comments, "(...)" variations (which may nest and may themselves
contain comments), "$N" NAGs, and "12."/"12..." move numbers. blank reports
whether two consecutive newlines (the section terminator) were consumed.
*/
func (r *Reader) skipMovetextNoise(p int) (newp int, blank bool) {
	newlineRun := 0
	for {
		b, avail := r.at(p)
		if !avail {
			return p, false
		}
		switch {
		case b == '\n':
			newlineRun++
			p++
			if newlineRun >= 2 {
				return p, true
			}
		case b == ' ' || b == '\t' || b == '\r':
			p++
		case b == ';':
			newlineRun = 0
			for {
				c, avail2 := r.at(p)
				if !avail2 {
					return p, false
				}
				p++
				if c == '\n' {
					break
				}
			}
		case b == '{':
			newlineRun = 0
			p++
			for {
				c, avail2 := r.at(p)
				if !avail2 {
					return p, false
				}
				p++
				if c == '}' {
					break
				}
			}
		case b == '(':
			newlineRun = 0
			var ok bool
			p, ok = r.skipVariation(p)
			if !ok {
				return p, false
			}
		case b == '$':
			newlineRun = 0
			p++
			for {
				c, avail2 := r.at(p)
				if !avail2 || c < '0' || c > '9' {
					break
				}
				p++
			}
		case b >= '0' && b <= '9':
			dstart := p
			for {
				c, avail2 := r.at(p)
				if !avail2 || c < '0' || c > '9' {
					break
				}
				p++
			}
			c, avail2 := r.at(p)
			if avail2 && c == '.' {
				newlineRun = 0
				for {
					c2, avail3 := r.at(p)
					if !avail3 || c2 != '.' {
						break
					}
					p++
				}
			} else {
				return dstart, false // not a move number; let the caller try a result token
			}
		default:
			return p, false
		}
	}
}

// skipVariation skips a "(...)" variation, which may nest and may itself
// contain block comments.
func (r *Reader) skipVariation(p int) (int, bool) {
	depth := 0
	for {
		b, avail := r.at(p)
		if !avail {
			return p, false
		}
		p++
		switch b {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return p, true
			}
		case '{':
			for {
				c, avail2 := r.at(p)
				if !avail2 {
					return p, false
				}
				p++
				if c == '}' {
					break
				}
			}
		}
	}
}

// tryMatchResult matches one of "1-0", "0-1", "1/2-1/2", "*" at p. Per
// spec.md §6, "1-0"/"0-1" are distinguished by their third character.
func (r *Reader) tryMatchResult(p int) (chesscore.Result, int, bool) {
	b0, ok := r.at(p)
	if !ok {
		return 0, p, false
	}
	if b0 == '*' {
		return chesscore.ResultUnknown, p + 1, true
	}
	if b0 != '0' && b0 != '1' {
		return 0, p, false
	}
	b1, ok := r.at(p + 1)
	if !ok {
		return 0, p, false
	}
	if b0 == '1' && b1 == '/' {
		const tok = "1/2-1/2"
		for i := 0; i < len(tok); i++ {
			c, ok2 := r.at(p + i)
			if !ok2 || c != tok[i] {
				return 0, p, false
			}
		}
		return chesscore.ResultDraw, p + len(tok), true
	}
	if b1 != '-' {
		return 0, p, false
	}
	b2, ok := r.at(p + 2)
	if !ok {
		return 0, p, false
	}
	switch {
	case b0 == '1' && b2 == '0':
		return chesscore.ResultWhiteWin, p + 3, true
	case b0 == '0' && b2 == '1':
		return chesscore.ResultBlackWin, p + 3, true
	}
	return 0, p, false
}

// scanMoveToken reads one SAN move token or the null move "--": the longest
// prefix starting with a valid SAN first character, terminated by
// whitespace or the EOF sentinel's NUL (spec.md §4.6).
func (r *Reader) scanMoveToken(p int) (string, int, bool) {
	b, ok := r.at(p)
	if !ok {
		return "", p, false
	}
	if b == '-' {
		b2, ok2 := r.at(p + 1)
		if ok2 && b2 == '-' {
			return "--", p + 2, true
		}
		return "", p, false
	}
	isStart := b == 'N' || b == 'B' || b == 'R' || b == 'Q' || b == 'K' || b == 'O' || (b >= 'a' && b <= 'h')
	if !isStart {
		return "", p, false
	}
	start := p
	for {
		c, avail := r.at(p)
		if !avail || c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == 0 {
			break
		}
		p++
	}
	return r.slice(start, p), p, true
}
