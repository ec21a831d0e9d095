package bcgn

import (
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/tmattsson/chesscore"
)

// maxGameLength is the u16 ceiling on a single game record's total_length,
// and also the capacity threshold that triggers a front/back buffer swap
// (spec.md §4.5).
const maxGameLength = 65535

/*
Writer serializes games into the BCGN format and schedules the resulting
bytes for background writes, per spec.md §4.5/§5. Per game, a caller calls
BeginGame, any header setters, AddMove once per ply, SetResult, then
EndGame. EndGame appends the finished record to a front buffer; once that
buffer holds at least maxGameLength bytes it is swapped with a back buffer
and handed to a single background goroutine for writing, giving a one-deep
pipeline: encoding game N+1 overlaps with the write of game N.
*/
type Writer struct {
	sink   io.Writer
	closer io.Closer

	level      CompressionLevel
	headerless bool

	gameHeader GameHeader
	moveBytes  []byte
	bw         *chesscore.BitWriter

	front   []byte
	back    []byte
	pending chan error
}

func newWriter(sink io.Writer, level CompressionLevel, aux AuxCompression, headerless bool) *Writer {
	var wc io.Writer = sink
	var closer io.Closer
	if aux != AuxCompressionNone {
		zw := lz4.NewWriter(sink)
		if aux == AuxCompressionLZ4DC {
			// Enables lz4's block-dependence mode: later blocks may
			// reference earlier ones, trading CPU for ratio across many
			// small, similar game records (spec.md §4.5's "lz4-dc").
			zw.Header = lz4.Header{BlockDependency: true}
		}
		wc, closer = zw, zw
	}
	return &Writer{
		sink:       wc,
		closer:     closer,
		level:      level,
		headerless: headerless,
		front:      make([]byte, 0, maxGameLength*2),
		back:       make([]byte, 0, maxGameLength*2),
	}
}

// NewWriter opens w in Truncate mode: it writes the 32-byte file header
// before any game records.
func NewWriter(w io.Writer, header Header) (*Writer, error) {
	if err := WriteHeader(w, header); err != nil {
		return nil, err
	}
	return newWriter(w, header.CompressionLevel, header.AuxCompression, header.IsHeaderless), nil
}

/*
NewAppendWriter opens w in Append mode: per spec.md §5, it does NOT write a
file header, since w is assumed to already hold one (the caller is
responsible for having positioned w past the existing file's last byte,
e.g. by opening it with os.O_APPEND). level/aux/headerless must match the
existing file's header, since nothing here re-derives them.
*/
func NewAppendWriter(w io.Writer, level CompressionLevel, aux AuxCompression, headerless bool) *Writer {
	return newWriter(w, level, aux, headerless)
}

// BeginGame resets the writer's per-game encoding state. startPos is nil
// for the standard starting position, or a custom CompressedPosition.
func (w *Writer) BeginGame(startPos *chesscore.CompressedPosition) {
	w.gameHeader = GameHeader{StartPosition: startPos}
	w.moveBytes = w.moveBytes[:0]
	if w.level == CompressionLevel2 {
		w.bw = chesscore.NewBitWriter()
	}
}

func (w *Writer) SetWhite(s string)        { w.gameHeader.White = s }
func (w *Writer) SetBlack(s string)        { w.gameHeader.Black = s }
func (w *Writer) SetEvent(s string)        { w.gameHeader.Event = s }
func (w *Writer) SetSite(s string)         { w.gameHeader.Site = s }
func (w *Writer) SetWhiteElo(elo uint16)   { w.gameHeader.WhiteElo = elo }
func (w *Writer) SetBlackElo(elo uint16)   { w.gameHeader.BlackElo = elo }
func (w *Writer) SetRound(round uint16)    { w.gameHeader.Round = round }
func (w *Writer) SetDate(year uint16, month, day uint8) {
	w.gameHeader.Year, w.gameHeader.Month, w.gameHeader.Day = year, month, day
}
func (w *Writer) SetECO(category byte, index uint8) {
	w.gameHeader.ECOCategory, w.gameHeader.ECOIndex = category, index
}
func (w *Writer) SetResult(r chesscore.Result) { w.gameHeader.Result = r }

// AddTag records an additional (name, value) header tag.
func (w *Writer) AddTag(name, value string) error {
	if len(w.gameHeader.AdditionalTags) >= 255 {
		return ErrTooManyTags
	}
	w.gameHeader.AdditionalTags = append(w.gameHeader.AdditionalTags, TagPair{Name: name, Value: value})
	return nil
}

// AddMove encodes m, played from pos (the position BEFORE m is applied),
// appending it to the game's in-progress movetext.
func (w *Writer) AddMove(pos chesscore.Position, m chesscore.Move) {
	w.gameHeader.Plies++
	switch w.level {
	case CompressionLevel0:
		w.moveBytes = append(w.moveBytes, encodeLevel0(m)...)
	case CompressionLevel1:
		w.moveBytes = append(w.moveBytes, encodeLevel1(&pos, m)...)
	case CompressionLevel2:
		encodeLevel2(&pos, m, w.bw)
	}
}

// EndGame assembles the finished record and appends it to the front
// buffer, swapping and scheduling a background write once the buffer has
// grown past maxGameLength. It returns ErrOverlongGameRecord if the
// record itself would not fit in the u16 total_length field.
func (w *Writer) EndGame() error {
	movetext := w.moveBytes
	if w.level == CompressionLevel2 {
		movetext = w.bw.Bytes()
	}
	headerBytes := encodeGameHeader(w.gameHeader, w.headerless)

	var record []byte
	if w.headerless {
		totalLen := 2 + len(headerBytes) + len(movetext)
		if totalLen >= maxGameLength {
			return ErrOverlongGameRecord
		}
		record = make([]byte, 0, totalLen)
		record = append(record, byte(totalLen>>8), byte(totalLen))
		record = append(record, headerBytes...)
		record = append(record, movetext...)
	} else {
		headerLength := 4 + len(headerBytes)
		totalLen := headerLength + len(movetext)
		if totalLen >= maxGameLength {
			return ErrOverlongGameRecord
		}
		record = make([]byte, 0, totalLen)
		record = append(record, byte(totalLen>>8), byte(totalLen))
		record = append(record, byte(headerLength>>8), byte(headerLength))
		record = append(record, headerBytes...)
		record = append(record, movetext...)
	}

	w.front = append(w.front, record...)
	if len(w.front) >= maxGameLength {
		return w.swap()
	}
	return nil
}

// swap waits for any in-flight background write, then swaps the front and
// back buffers and schedules a background write of the now-full buffer.
func (w *Writer) swap() error {
	if err := w.awaitPending(); err != nil {
		return err
	}
	full := w.front
	w.front, w.back = w.back[:0], full

	ch := make(chan error, 1)
	w.pending = ch
	go func(buf []byte) {
		_, err := w.sink.Write(buf)
		ch <- err
	}(w.back)
	return nil
}

func (w *Writer) awaitPending() error {
	if w.pending == nil {
		return nil
	}
	err := <-w.pending
	w.pending = nil
	return err
}

// Flush waits for any in-flight background write, then synchronously
// writes out the front buffer.
func (w *Writer) Flush() error {
	if err := w.awaitPending(); err != nil {
		return err
	}
	if len(w.front) == 0 {
		return nil
	}
	_, err := w.sink.Write(w.front)
	w.front = w.front[:0]
	return err
}

// Close flushes any buffered records synchronously, then closes the
// underlying aux-compression stream, if any (spec.md §5: "a dropped writer
// additionally flushes any non-empty front buffer synchronously before
// closing").
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
