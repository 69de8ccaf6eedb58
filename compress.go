package lzw

import "bytes"

// Compress compresses src into a complete .Z stream. Options nil means DefaultCompressOptions().
// Empty input produces the header alone.
func Compress(src []byte, opts *CompressOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize + len(src)/2 + 16)

	zw, err := NewWriter(&buf, opts)
	if err != nil {
		return nil, err
	}

	if _, err := zw.Write(src); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
