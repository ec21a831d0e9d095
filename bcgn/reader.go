package bcgn

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// prefetchChunk is the size of each background read. The reader keeps at
// most one prefetch in flight, so its working buffer never needs to hold
// more than two such chunks at once (spec.md §4.5: "a double buffer of
// ≥ 2·maxGameLength bytes").
const prefetchChunk = 2 * maxGameLength

type prefetchResult struct {
	data []byte
	err  error
}

/*
Reader is a forward iterator over a BCGN file's games. It reads its first
chunk synchronously on construction, then keeps exactly one background
read in flight at all times: by the time Next needs more bytes than its
working buffer holds, the next chunk has usually already landed, so
Next only blocks when decoding has outpaced I/O (spec.md §5: "the
iterator's next() suspends only when it has to join the background op").
*/
type Reader struct {
	src    io.Reader
	closer io.Closer

	level      CompressionLevel
	headerless bool

	buf      []byte
	prefetch chan prefetchResult
	done     bool
}

// NewReader opens r as a BCGN file: it reads and validates the 32-byte
// header, wraps r in an lz4 reader if the header's aux_compression byte
// calls for it, and primes the double buffer.
func NewReader(r io.Reader) (*Reader, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	rd := &Reader{level: header.CompressionLevel, headerless: header.IsHeaderless}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	if header.AuxCompression != AuxCompressionNone {
		rd.src = lz4.NewReader(r)
	} else {
		rd.src = r
	}

	first := make([]byte, prefetchChunk)
	n, err := readSome(rd.src, first)
	if err != nil {
		return nil, err
	}
	rd.buf = append(rd.buf[:0], first[:n]...)
	rd.schedulePrefetch()
	return rd, nil
}

// readSome reads up to len(buf) bytes, looping across short reads the way
// a blocking fread would, and treats EOF as "however much arrived" rather
// than an error.
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
		buf := make([]byte, prefetchChunk)
		n, err := readSome(r.src, buf)
		ch <- prefetchResult{data: buf[:n], err: err}
	}()
}

// refill joins the in-flight prefetch, appends whatever it returned to the
// working buffer, and schedules the next one. It reports false once a
// prefetch returns no data, meaning the file is exhausted.
func (r *Reader) refill() (bool, error) {
	if r.done {
		return false, nil
	}
	res := <-r.prefetch
	if res.err != nil {
		r.done = true
		return false, res.err
	}
	if len(res.data) == 0 {
		r.done = true
		return false, nil
	}
	r.buf = append(r.buf, res.data...)
	r.schedulePrefetch()
	return true, nil
}

// Next returns the next game in the file, or io.EOF once the file is
// exhausted.
func (r *Reader) Next() (*UnparsedGame, error) {
	for len(r.buf) < 2 {
		ok, err := r.refill()
		if err != nil {
			return nil, err
		}
		if !ok {
			if len(r.buf) == 0 {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("%w: dangling %d bytes at EOF", ErrTruncatedRecord, len(r.buf))
		}
	}

	totalLen := int(getUint16(r.buf[0:2]))
	for len(r.buf) < totalLen {
		ok, err := r.refill()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedRecord, totalLen, len(r.buf))
		}
	}

	record := r.buf[:totalLen]
	r.buf = r.buf[totalLen:]
	return parseRecord(record, r.headerless, r.level)
}

// Close waits for any in-flight background read to finish, then closes the
// underlying file handle, if r was opened from one (spec.md §5: "a dropped
// iterator must wait for any in-flight background op to finish and then
// close the file handle").
func (r *Reader) Close() error {
	if !r.done && r.prefetch != nil {
		<-r.prefetch
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
