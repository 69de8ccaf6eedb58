package lzw

import "io"

// readChunk is how much decoded data a Reader prepares per refill.
const readChunk = 32 << 10

// Reader decompresses a .Z stream read from an underlying reader.
// The header is read by NewReader. A Reader is not safe for concurrent use.
type Reader struct {
	dec    *decoder
	src    *readerSource
	opts   *DecompressOptions
	header Header

	buf    []byte // Decoded bytes not yet returned.
	off    int
	total  int64
	err    error
	closed bool
}

// NewReader reads the header from r and returns a Reader for the rest of the stream.
// Options nil means DefaultDecompressOptions().
func NewReader(r io.Reader, opts *DecompressOptions) (*Reader, error) {
	if r == nil {
		return nil, ErrNilReader
	}

	if opts == nil {
		opts = DefaultDecompressOptions()
	}

	src := newReaderSource(r)
	h, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}

	return &Reader{
		dec:    newDecoder(src, h),
		src:    src,
		opts:   opts,
		header: h,
		buf:    make([]byte, 0, readChunk+(1<<h.MaxBits)),
	}, nil
}

// Read implements io.Reader.
func (z *Reader) Read(p []byte) (int, error) {
	if z.closed {
		return 0, ErrClosed
	}

	if len(p) == 0 {
		return 0, nil
	}

	for z.off == len(z.buf) {
		if z.err != nil {
			return 0, z.err
		}
		z.fill()
	}

	n := copy(p, z.buf[z.off:])
	z.off += n

	return n, nil
}

// fill decodes codes until about readChunk bytes are buffered or the stream ends.
func (z *Reader) fill() {
	z.buf = z.buf[:0]
	z.off = 0

	for len(z.buf) < readChunk {
		var done bool
		z.buf, done, z.err = z.dec.next(z.buf)
		if z.err != nil {
			break
		}

		if z.err = z.opts.checkOutput(z.total + int64(len(z.buf))); z.err != nil {
			z.buf = z.buf[:0]
			return
		}

		if done {
			z.err = io.EOF
			break
		}
	}
	z.total += int64(len(z.buf))
}

// Header returns the stream header.
func (z *Reader) Header() Header {
	return z.header
}

// Stats returns counters for the data decoded so far.
func (z *Reader) Stats() Stats {
	return z.dec.stats(z.src.consumed)
}

// Close releases the Reader. It does not close the underlying reader.
func (z *Reader) Close() error {
	z.closed = true
	z.buf = nil

	return nil
}
