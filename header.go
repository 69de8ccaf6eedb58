package lzw

import (
	"errors"
	"fmt"
	"io"
)

// Header is the 3-byte .Z stream header.
type Header struct {
	MaxBits   int  // Maximum code width, 9..16.
	BlockMode bool // Clear code (256) enabled.
}

// Bytes returns the encoded header.
func (h Header) Bytes() [HeaderSize]byte {
	flags := byte(h.MaxBits & MaxBitsMask) // #nosec G115 -- masked to 5 bits
	if h.BlockMode {
		flags |= BlockModeFlag
	}

	return [HeaderSize]byte{Magic0, Magic1, flags}
}

// Validate reports whether the header fields are representable.
func (h Header) Validate() error {
	if h.MaxBits < MinBits || h.MaxBits > MaxBits {
		return fmt.Errorf("%w: maxbits=%d", ErrInvalidMaxBits, h.MaxBits)
	}

	return nil
}

// ParseHeader decodes the header at the beginning of src.
func ParseHeader(src []byte) (Header, error) {
	if len(src) < HeaderSize {
		return Header{}, fmt.Errorf("%w: need %d bytes, have %d", ErrMalformedHeader, HeaderSize, len(src))
	}

	if src[0] != Magic0 || src[1] != Magic1 {
		return Header{}, fmt.Errorf("%w: bad magic %02x %02x", ErrMalformedHeader, src[0], src[1])
	}

	flags := src[2]
	if flags&ReservedMask != 0 {
		return Header{}, fmt.Errorf("%w: reserved flag bits set (0x%02x)", ErrMalformedHeader, flags)
	}

	h := Header{
		MaxBits:   int(flags & MaxBitsMask),
		BlockMode: flags&BlockModeFlag != 0,
	}
	if h.MaxBits < MinBits || h.MaxBits > MaxBits {
		return Header{}, fmt.Errorf("%w: maxbits=%d", ErrMalformedHeader, h.MaxBits)
	}

	return h, nil
}

// ReadHeader reads and decodes the header from r, consuming exactly HeaderSize bytes.
func ReadHeader(r io.ByteReader) (Header, error) {
	if r == nil {
		return Header{}, ErrNilReader
	}

	var buf [HeaderSize]byte
	for i := range buf {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Header{}, fmt.Errorf("%w: need %d bytes, have %d", ErrMalformedHeader, HeaderSize, i)
			}

			return Header{}, err
		}
		buf[i] = b
	}

	return ParseHeader(buf[:])
}
