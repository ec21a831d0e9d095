/*
Package pgn implements a streaming, lazy reader for the Portable Game
Notation family (spec.md §4.6). Reader.Next yields one [Game] at a time from
a tag section followed by a movetext section, both framed out of an
internal buffer that grows on demand from a background-prefetched chunk of
the underlying io.Reader — the same one-prefetch-in-flight shape as
chesscore/bcgn.Reader (spec.md §5's double-buffered background I/O, applied
to a text stream instead of a length-prefixed binary one).

treepeck-chego has no PGN precedent of its own (only fen.go, for a single
position, not a game stream), so this package's grammar is grounded directly
in spec.md §4.6 and in chesscore's own san.go for move resolution.
*/
package pgn

import (
	"io"
)

// minBufferSize is the size of each background-prefetched chunk (spec.md
// §4.6: "each of size ≥ minBufferSize").
const minBufferSize = 64 * 1024

type prefetchResult struct {
	data []byte
	err  error
}

// Reader is a forward, single-pass iterator over a PGN stream's games.
type Reader struct {
	src    io.Reader
	closer io.Closer

	buf      []byte
	prefetch chan prefetchResult
	eof      bool // true once the underlying stream is exhausted
	sentinel bool // true once the \n\x00 EOF sentinel has been appended

	cursor int // start of the not-yet-returned portion of buf

	skipped int // games dropped for an unframeable tag section or movetext
}

// Skipped returns the number of games dropped so far because their tag
// section or movetext could not be framed (spec.md §7: malformed PGN games
// are silently skipped, not reported as errors; this counter is the
// caller's only visibility into that).
func (r *Reader) Skipped() int { return r.skipped }

// NewReader wraps r as a PGN stream. If r is also an io.Closer, Close will
// close it.
func NewReader(r io.Reader) *Reader {
	rd := &Reader{src: r}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	first := make([]byte, minBufferSize)
	n, _ := readSome(r, first)
	rd.buf = append(rd.buf[:0], first[:n]...)
	// Whether the stream is already exhausted surfaces lazily: the first
	// background prefetch below will observe a zero-byte read and set
	// rd.eof itself (see refill), same as chesscore/bcgn.Reader.
	rd.schedulePrefetch()
	return rd
}

func readSome(r io.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
	return total, nil
}

func (r *Reader) schedulePrefetch() {
	ch := make(chan prefetchResult, 1)
	r.prefetch = ch
	go func() {
		buf := make([]byte, minBufferSize)
		n, err := readSome(r.src, buf)
		ch <- prefetchResult{data: buf[:n], err: err}
	}()
}

// appendSentinelIfDone appends the "\n\x00" end-of-file sentinel (spec.md
// §4.6) once the underlying stream has been fully drained, so blank-line
// scanning never runs past the end of buf.
func (r *Reader) appendSentinelIfDone() {
	if r.eof && !r.sentinel {
		r.buf = append(r.buf, '\n', 0)
		r.sentinel = true
	}
}

// refill joins the in-flight background read (if any), appends whatever it
// returned, and schedules the next one.
func (r *Reader) refill() {
	if r.eof {
		return
	}
	res := <-r.prefetch
	r.buf = append(r.buf, res.data...)
	if res.err != nil || len(res.data) == 0 {
		r.eof = true
		r.appendSentinelIfDone()
		return
	}
	r.schedulePrefetch()
}

// at returns the byte at absolute index i within buf, refilling from the
// background prefetch as needed. ok is false only once i runs past the
// EOF sentinel, meaning there is truly nothing left to read.
func (r *Reader) at(i int) (byte, bool) {
	for i >= len(r.buf) {
		if r.eof {
			return 0, false
		}
		r.refill()
	}
	return r.buf[i], true
}

func (r *Reader) slice(start, end int) string {
	return string(r.buf[start:end])
}

// compact drops everything before r.cursor, invalidating any views returned
// by the previously yielded Game (spec.md §4.6: "the PGN iterator... is
// single-pass... and invalidates all previously returned views on each
// advance").
func (r *Reader) compact() {
	if r.cursor == 0 {
		return
	}
	r.buf = append(r.buf[:0], r.buf[r.cursor:]...)
	r.cursor = 0
}

// Next returns the next game in the stream, or io.EOF once the stream is
// exhausted. A game whose tag section or movetext cannot be framed is
// dropped and the scan retries from the following bytes — per spec.md
// §4.6/§7 this is a best-effort skip, not a hard error.
func (r *Reader) Next() (*Game, error) {
	r.compact()
	for {
		tags, p, ok := r.parseTagSection(0)
		if !ok {
			if r.atTrueEOF(p) {
				return nil, io.EOF
			}
			// Could not frame a tag section in the data seen so far: if
			// more might still arrive, force a refill and retry from the
			// same spot; otherwise skip forward a line and retry.
			if !r.eof {
				r.refill()
				continue
			}
			np, found := r.skipToNextBlankLine(p)
			if !found {
				return nil, io.EOF
			}
			r.skipped++
			r.cursor = np
			r.compact()
			continue
		}

		moves, result, q, complete := r.parseMovetext(p)
		if !complete {
			if !r.eof {
				r.refill()
				continue
			}
			// Movetext could not be framed even with everything the
			// stream has: drop this game and resync on the next
			// blank line, per spec.md §7's "best-effort skip".
			np, found := r.skipToNextBlankLine(q)
			if !found {
				return nil, io.EOF
			}
			r.skipped++
			r.cursor = np
			r.compact()
			continue
		}

		r.cursor = q
		return &Game{tags: tags, moveTokens: moves, result: result}, nil
	}
}

// atTrueEOF reports whether i sits at or past the EOF sentinel, i.e.
// nothing meaningful remains to parse.
func (r *Reader) atTrueEOF(i int) bool {
	if !r.eof {
		return false
	}
	b, ok := r.at(i)
	return !ok || (b == 0)
}

// skipToNextBlankLine advances past the next blank line, so a malformed
// game's residue doesn't wedge the scanner forever. Returns false if no
// further blank line exists before EOF.
func (r *Reader) skipToNextBlankLine(p int) (int, bool) {
	newlineRun := 0
	for {
		b, ok := r.at(p)
		if !ok {
			return p, false
		}
		p++
		switch b {
		case '\n':
			newlineRun++
			if newlineRun >= 2 {
				return p, true
			}
		case ' ', '\t', '\r':
			// doesn't reset a newline run
		default:
			newlineRun = 0
		}
	}
}

// Close waits for any in-flight background read to finish, then closes the
// underlying stream, if it supports it.
func (r *Reader) Close() error {
	if !r.eof && r.prefetch != nil {
		<-r.prefetch
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
