package lzw

import (
	"bufio"
	"io"
)

// sliceSource serves the code bytes of an in-memory .Z stream to the decoder.
type sliceSource struct {
	src []byte
	off int // Next byte to return.
}

func newSliceSource(stream []byte) *sliceSource {
	return &sliceSource{src: stream, off: HeaderSize}
}

// ReadByte implements io.ByteReader.
func (s *sliceSource) ReadByte() (byte, error) {
	if s.off >= len(s.src) {
		return 0, io.EOF
	}

	b := s.src[s.off]
	s.off++

	return b, nil
}

// readerSource feeds the decoder from an io.Reader and counts the bytes taken,
// header included. Readers without ReadByte are wrapped in a bufio.Reader,
// which may read ahead of the count.
type readerSource struct {
	br       io.ByteReader
	consumed int64
}

func newReaderSource(r io.Reader) *readerSource {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &readerSource{br: br}
}

// ReadByte implements io.ByteReader.
func (s *readerSource) ReadByte() (byte, error) {
	b, err := s.br.ReadByte()
	if err != nil {
		return 0, err
	}
	s.consumed++

	return b, nil
}
