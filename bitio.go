package lzw

import (
	"errors"
	"io"
)

// endOfStream is returned by bitReader.readCode when fewer bits remain than requested.
const endOfStream = -1

// bitWriter packs codes least-significant-bit first.
// Full bytes are collected in buf and handed to w when buf fills up or on flush.
// Write errors are sticky and reported by flush and close.
type bitWriter struct {
	w   io.Writer
	err error
	buf []byte

	acc  uint64 // Pending bits, low bits first; fewer than 8 between calls.
	nacc uint   // Number of valid bits in acc.

	bits       int64 // Total bits written.
	groupStart int64 // Bit position where the current code width took effect.
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: w, buf: make([]byte, 0, writeBufSize)}
}

// writeCode appends the low width bits of code.
func (w *bitWriter) writeCode(code, width int) {
	w.acc |= uint64(code&(1<<width-1)) << w.nacc // #nosec G115 -- masked, non-negative
	w.nacc += uint(width)                        // #nosec G115 -- width is 1..16
	for w.nacc >= 8 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc >>= 8
		w.nacc -= 8
	}
	w.bits += int64(width)

	if len(w.buf) >= writeBufSize {
		w.drain()
	}
}

// align pads with zero bits up to the next group boundary of the given width
// and starts a new group. It returns the number of padding bits written.
func (w *bitWriter) align(width int) int {
	pad := groupPadding(w.bits-w.groupStart, width)
	for left := pad; left > 0; {
		n := min(left, MaxBits)
		w.writeCode(0, n)
		left -= n
	}
	w.groupStart = w.bits

	return pad
}

// bytesOut returns the number of bytes the written bits occupy.
func (w *bitWriter) bytesOut() int64 {
	return (w.bits + 7) / 8
}

// flush hands all complete bytes to the underlying writer.
func (w *bitWriter) flush() error {
	w.drain()

	return w.err
}

// close writes the trailing partial byte, zero-padded in the high bits, and flushes.
func (w *bitWriter) close() error {
	if w.nacc > 0 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc = 0
		w.nacc = 0
	}

	return w.flush()
}

func (w *bitWriter) drain() {
	if len(w.buf) == 0 {
		return
	}

	if w.err == nil {
		_, w.err = w.w.Write(w.buf)
	}
	w.buf = w.buf[:0]
}

// bitReader unpacks codes least-significant-bit first, one byte at a time.
type bitReader struct {
	r io.ByteReader

	acc  uint64
	nacc uint

	bits       int64 // Total bits consumed.
	groupStart int64
}

func newBitReader(r io.ByteReader) *bitReader {
	return &bitReader{r: r}
}

// readCode returns the next width-bit code, or endOfStream when the input ends
// before width bits are available. Only errors other than io.EOF are returned.
func (r *bitReader) readCode(width int) (int, error) {
	for r.nacc < uint(width) { // #nosec G115 -- width is 1..16
		b, err := r.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return endOfStream, nil
			}

			return 0, err
		}
		r.acc |= uint64(b) << r.nacc
		r.nacc += 8
	}

	code := int(r.acc & (1<<width - 1)) // #nosec G115 -- at most 16 bits
	r.acc >>= width
	r.nacc -= uint(width) // #nosec G115 -- width is 1..16
	r.bits += int64(width)

	return code, nil
}

// align skips to the next group boundary of the given width and starts a new group.
// It reports false when the input ends inside the padding; the remaining bits are dropped.
func (r *bitReader) align(width int) (bool, error) {
	pad := groupPadding(r.bits-r.groupStart, width)
	for pad > 0 {
		n := min(pad, MaxBits)
		code, err := r.readCode(n)
		if err != nil {
			return false, err
		}
		if code == endOfStream {
			r.acc = 0
			r.nacc = 0

			return false, nil
		}
		pad -= n
	}
	r.groupStart = r.bits

	return true, nil
}

// pending returns the number of buffered bits not yet consumed.
func (r *bitReader) pending() int {
	return int(r.nacc)
}

// groupPadding returns how many bits are missing to complete a group of
// codesPerGroup codes of the given width, given the bits used since the group started.
func groupPadding(used int64, width int) int {
	group := int64(width * codesPerGroup)

	return int((group - used%group) % group)
}
