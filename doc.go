/*
Package lzw implements the LZC compression format used by compress(1) and ".Z" files.

Format: 3-byte header (magic 0x1F 0x9D, flags byte with the block-mode bit 0x80 and
maxbits 9..16 in the low 5 bits), then LZW codes packed least-significant-bit first.
Codes start 9 bits wide and grow by one bit each time the dictionary outgrows the
current width, up to maxbits. In block mode code 256 clears the dictionary and code
width returns to 9. Every width change starts on a group boundary: groups hold
8 codes, so a group of width w spans w bytes and unused bits are zero padding.

Use Compress(data, opts) / Decompress(src, opts) for whole buffers, nil options for defaults.
Use NewWriter / NewReader to stream through io.Writer / io.Reader.
Use DecompressFromReader(r, opts) to decode a stream and learn how many bytes it consumed.
Use Writer.Clear to force a dictionary reset at a known point of the input.
Use CompressOptions.Reset to pick a reset strategy: RatioReset (compress(1) behavior),
ResetWhenFull or NeverReset.

# Examples

Round-trip compress and decompress:

	enc, err := lzw.Compress(data, nil)
	if err != nil {
		return err
	}
	dec, err := lzw.Decompress(enc, nil)
	if err != nil {
		return err
	}
	// dec equals data

Stream a file into a .Z archive with 12-bit codes:

	zw, err := lzw.NewWriter(out, &lzw.CompressOptions{MaxBits: 12, BlockMode: true})
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, in); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

Decompress with an output limit:

	zr, err := lzw.NewReader(in, &lzw.DecompressOptions{MaxOutputSize: 64 << 20})
	if err != nil {
		return err
	}
	_, err = io.Copy(out, zr)

Detect malformed input:

	_, err := lzw.Decompress(src, nil)
	switch {
	case errors.Is(err, lzw.ErrMalformedHeader):
		// not a .Z stream
	case errors.Is(err, lzw.ErrCorruptStream):
		// damaged or truncated
	}

Debug records for width changes and clear codes go to the "lzw" module of
github.com/op/go-logging; the module level defaults to WARNING.
*/
package lzw
