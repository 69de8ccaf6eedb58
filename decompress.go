package lzw

import (
	"fmt"
	"io"

	"github.com/op/go-logging"
)

// decoder is the LZW state machine behind Reader and Decompress.
type decoder struct {
	br   *bitReader
	dict *decodeDict

	maxBits   int
	blockMode bool
	width     int
	maxCode   int

	oldCode int  // Previous code of the epoch, -1 at epoch start.
	finChar byte // First byte of the previous expansion.
	stack   []byte

	raw    int64
	codes  int64
	clears int

	// onCode, when set, observes every code read together with its width.
	onCode func(code, width int)
}

func newDecoder(r io.ByteReader, h Header) *decoder {
	return &decoder{
		br:        newBitReader(r),
		dict:      newDecodeDict(h.MaxBits, h.BlockMode),
		maxBits:   h.MaxBits,
		blockMode: h.BlockMode,
		width:     MinBits,
		maxCode:   maxCodeFor(MinBits, h.MaxBits),
		oldCode:   -1,
		stack:     make([]byte, 0, 1<<h.MaxBits),
	}
}

// next reads one code and appends its expansion to dst.
// done is true once the input ended cleanly on a code boundary.
func (d *decoder) next(dst []byte) (out []byte, done bool, err error) {
	if d.dict.next > d.maxCode {
		ok, err := d.br.align(d.width)
		if err != nil {
			return dst, false, err
		}
		if !ok {
			return dst, true, nil
		}
		d.width++
		d.maxCode = maxCodeFor(d.width, d.maxBits)

		if log.IsEnabledFor(logging.DEBUG) {
			log.Debugf("decode: width %d at code %d", d.width, d.dict.next)
		}
	}

	pos := d.br.bits
	code, err := d.br.readCode(d.width)
	if err != nil {
		return dst, false, err
	}

	if code == endOfStream {
		if n := d.br.pending(); n >= 8 {
			return dst, false, fmt.Errorf("%w: %w: %d bits left at bit %d, width %d",
				ErrCorruptStream, ErrTruncated, n, pos, d.width)
		}

		return dst, true, nil
	}

	d.codes++
	if d.onCode != nil {
		d.onCode(code, d.width)
	}

	if d.blockMode && code == ClearCode {
		return dst, false, d.clear()
	}

	if d.oldCode < 0 {
		if code >= ClearCode {
			return dst, false, fmt.Errorf("%w: code=%d at bit %d, first code of a block must be a literal",
				ErrCorruptStream, code, pos)
		}

		d.oldCode = code
		d.finChar = byte(code) // #nosec G115 -- literal code
		d.raw++

		return append(dst, d.finChar), false, nil
	}

	stack := d.stack[:0]
	switch {
	case code > d.dict.next:
		return dst, false, fmt.Errorf("%w: code=%d next=%d at bit %d", ErrCorruptStream, code, d.dict.next, pos)

	case code == d.dict.next:
		// KwKwK: the code is the entry about to be added, old string plus its own first byte.
		stack = append(stack, d.finChar)
		stack, d.finChar = d.dict.expand(stack, d.oldCode)

	default:
		stack, d.finChar = d.dict.expand(stack, code)
	}

	for i := len(stack) - 1; i >= 0; i-- {
		dst = append(dst, stack[i])
	}
	d.raw += int64(len(stack))
	d.stack = stack

	d.dict.add(d.oldCode, d.finChar)
	d.oldCode = code

	return dst, false, nil
}

// clear resets the dictionary after a clear code and skips the group padding.
func (d *decoder) clear() error {
	if _, err := d.br.align(d.width); err != nil {
		return err
	}

	if log.IsEnabledFor(logging.DEBUG) {
		log.Debugf("decode: clear at bit %d, %d entries, width %d", d.br.bits, d.dict.next-d.dict.first, d.width)
	}

	d.dict.reset()
	d.width = MinBits
	d.maxCode = maxCodeFor(MinBits, d.maxBits)
	d.oldCode = -1
	d.clears++

	return nil
}

func (d *decoder) stats(packed int64) Stats {
	return Stats{
		Raw:     d.raw,
		Packed:  packed,
		Codes:   d.codes,
		Clears:  d.clears,
		Width:   d.width,
		Entries: d.dict.next - d.dict.first,
	}
}

// decodeAll runs d to the end of its input, appending to dst.
func decodeAll(d *decoder, dst []byte, opts *DecompressOptions) ([]byte, error) {
	for {
		var (
			done bool
			err  error
		)

		dst, done, err = d.next(dst)
		if err != nil {
			return nil, err
		}

		if err := opts.checkOutput(int64(len(dst))); err != nil {
			return nil, err
		}

		if done {
			return dst, nil
		}
	}
}

// Decompress decompresses a complete .Z stream. Options nil means DefaultDecompressOptions().
func Decompress(src []byte, opts *DecompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultDecompressOptions()
	}

	h, err := ParseHeader(src)
	if err != nil {
		return nil, err
	}

	dec := newDecoder(newSliceSource(src), h)
	out := make([]byte, 0, 3*len(src))

	return decodeAll(dec, out, opts)
}

// DecompressFromReader decompresses a .Z stream from r until its end and returns
// the decoded bytes and the number of bytes pulled from r, header included.
func DecompressFromReader(r io.Reader, opts *DecompressOptions) ([]byte, int64, error) {
	if r == nil {
		return nil, 0, ErrNilReader
	}

	if opts == nil {
		opts = DefaultDecompressOptions()
	}

	src := newReaderSource(r)
	h, err := ReadHeader(src)
	if err != nil {
		return nil, src.consumed, err
	}

	out, err := decodeAll(newDecoder(src, h), nil, opts)
	if err != nil {
		return nil, src.consumed, err
	}

	return out, src.consumed, nil
}
