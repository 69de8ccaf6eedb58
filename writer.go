package lzw

import (
	"io"

	"github.com/op/go-logging"
)

// encoder is the LZW state machine behind Writer. Codes are emitted one step
// behind the input: prefix holds the longest match seen so far.
type encoder struct {
	bw      *bitWriter
	dict    *encodeDict
	monitor ResetMonitor

	maxBits   int
	blockMode bool
	width     int
	maxCode   int // Grow once dict.next exceeds it.

	prefix int // Pending code, -1 when nothing is pending.

	bytesIn int64
	codes   int64
	clears  int
}

func newEncoder(w io.Writer, h Header, monitor ResetMonitor) *encoder {
	return &encoder{
		bw:        newBitWriter(w),
		dict:      acquireEncodeDict(h.MaxBits, h.BlockMode),
		monitor:   monitor,
		maxBits:   h.MaxBits,
		blockMode: h.BlockMode,
		width:     MinBits,
		maxCode:   maxCodeFor(MinBits, h.MaxBits),
		prefix:    -1,
	}
}

// writeByte feeds one input byte.
func (e *encoder) writeByte(b byte) {
	e.bytesIn++
	if e.prefix < 0 {
		e.prefix = int(b)
		return
	}

	code, slot, found := e.dict.lookup(e.prefix, b)
	if found {
		e.prefix = code
		return
	}

	e.emit(e.prefix)
	e.grow()
	if !e.dict.add(slot, e.prefix, b) && e.blockMode && e.monitor.ShouldReset(e.bytesIn, e.bytesOut()) {
		e.clear()
	}
	e.prefix = int(b)
}

// emit writes one code at the current width.
func (e *encoder) emit(code int) {
	e.bw.writeCode(code, e.width)
	e.codes++
}

// grow widens codes once the next dictionary code no longer fits.
// The rest of the current group is padded so the new width starts on a group boundary.
func (e *encoder) grow() {
	if e.dict.next <= e.maxCode {
		return
	}

	pad := e.bw.align(e.width)
	e.width++
	e.maxCode = maxCodeFor(e.width, e.maxBits)

	if log.IsEnabledFor(logging.DEBUG) {
		log.Debugf("encode: width %d at code %d, %d padding bits", e.width, e.dict.next, pad)
	}
}

// clear emits the clear code and starts a new dictionary epoch.
func (e *encoder) clear() {
	e.emit(ClearCode)
	pad := e.bw.align(e.width)

	if log.IsEnabledFor(logging.DEBUG) {
		log.Debugf("encode: clear after %d input bytes, %d entries, width %d, %d padding bits",
			e.bytesIn, e.dict.next-e.dict.first, e.width, pad)
	}

	e.dict.reset()
	e.width = MinBits
	e.maxCode = maxCodeFor(MinBits, e.maxBits)
	e.clears++
}

// forceClear flushes the pending prefix and emits a clear code.
// It does nothing when the dictionary is already empty.
func (e *encoder) forceClear() {
	if e.prefix < 0 {
		return
	}

	e.emit(e.prefix)
	e.grow()
	e.clear()
	e.prefix = -1
}

// finish emits the pending prefix and flushes the trailing partial byte.
func (e *encoder) finish() error {
	if e.prefix >= 0 {
		e.emit(e.prefix)
		e.prefix = -1
	}

	return e.bw.close()
}

// bytesOut returns the compressed size so far, header included.
func (e *encoder) bytesOut() int64 {
	return HeaderSize + e.bw.bytesOut()
}

func (e *encoder) stats() Stats {
	return Stats{
		Raw:     e.bytesIn,
		Packed:  e.bytesOut(),
		Codes:   e.codes,
		Clears:  e.clears,
		Width:   e.width,
		Entries: e.dict.next - e.dict.first,
	}
}

// Writer compresses everything written to it into a .Z stream.
// The header is emitted even when nothing is written. Close must be called to
// write the final code; it does not close the underlying writer.
// A Writer is not safe for concurrent use.
type Writer struct {
	enc    *encoder
	header Header
	final  Stats
	closed bool
}

// NewWriter returns a Writer compressing into w. Options nil means DefaultCompressOptions().
func NewWriter(w io.Writer, opts *CompressOptions) (*Writer, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	if opts == nil {
		opts = DefaultCompressOptions()
	}

	h, err := opts.header()
	if err != nil {
		return nil, err
	}

	enc := newEncoder(w, h, opts.monitor())
	hdr := h.Bytes()
	enc.bw.buf = append(enc.bw.buf, hdr[:]...)

	return &Writer{enc: enc, header: h}, nil
}

// Write compresses p.
func (z *Writer) Write(p []byte) (int, error) {
	if z.closed {
		return 0, ErrClosed
	}

	for _, b := range p {
		z.enc.writeByte(b)
	}

	if z.enc.bw.err != nil {
		return 0, z.enc.bw.err
	}

	return len(p), nil
}

// Clear ends the current dictionary epoch with a clear code.
// Input written afterwards is compressed with a fresh dictionary.
func (z *Writer) Clear() error {
	if z.closed {
		return ErrClosed
	}

	if !z.header.BlockMode {
		return ErrBlockModeDisabled
	}

	z.enc.forceClear()

	return z.enc.bw.err
}

// Flush writes all complete compressed bytes to the underlying writer.
// Bits of an unfinished byte and the pending code stay buffered.
func (z *Writer) Flush() error {
	if z.closed {
		return ErrClosed
	}

	return z.enc.bw.flush()
}

// Close writes the final code and the trailing partial byte.
func (z *Writer) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true

	err := z.enc.finish()
	z.final = z.enc.stats()
	releaseEncodeDict(z.enc.dict)
	z.enc.dict = nil

	return err
}

// Header returns the stream header.
func (z *Writer) Header() Header {
	return z.header
}

// Stats returns counters for the data written so far.
func (z *Writer) Stats() Stats {
	if z.closed {
		return z.final
	}

	return z.enc.stats()
}
