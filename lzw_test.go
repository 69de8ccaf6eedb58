package lzw

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/require"
)

func randomBytes(n int, seed uint64) []byte {
	r := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(r.UintN(256))
	}

	return out
}

func testInputSet() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "two-bytes", data: []byte{0xAB, 0xAB}},
		{name: "short-text", data: []byte("hello world, lzw test")},
		{name: "random-text", data: []byte(uniuri.NewLen(20000))},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 4000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 70000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
		{name: "random", data: randomBytes(150000, 7)},
	}
}

// decodeCodes decodes enc and returns every code read with its width.
func decodeCodes(t *testing.T, enc []byte) (codes, widths []int, out []byte) {
	t.Helper()

	h, err := ParseHeader(enc)
	require.NoError(t, err)

	dec := newDecoder(newSliceSource(enc), h)
	dec.onCode = func(code, width int) {
		codes = append(codes, code)
		widths = append(widths, width)
	}

	out, err = decodeAll(dec, nil, DefaultDecompressOptions())
	require.NoError(t, err)

	return codes, widths, out
}

func TestRoundTripAcrossOptions(t *testing.T) {
	strategies := map[string]ResetStrategy{
		"ratio": RatioReset{},
		"full":  ResetWhenFull{},
		"never": NeverReset{},
	}

	for _, in := range testInputSet() {
		for bits := MinBits; bits <= MaxBits; bits++ {
			for _, block := range []bool{true, false} {
				for name, strategy := range strategies {
					if !block && name != "never" {
						continue
					}

					t.Run(fmt.Sprintf("%s/bits-%d/block-%t/%s", in.name, bits, block, name), func(t *testing.T) {
						opts := &CompressOptions{MaxBits: bits, BlockMode: block, Reset: strategy}
						enc, err := Compress(in.data, opts)
						require.NoError(t, err)

						dec, err := Decompress(enc, nil)
						require.NoError(t, err)
						require.Equal(t, len(in.data), len(dec))
						require.True(t, bytes.Equal(in.data, dec), "round-trip mismatch")
					})
				}
			}
		}
	}
}

func TestCompressNilOptions(t *testing.T) {
	raw := []byte("hello world")
	enc, err := Compress(raw, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{Magic0, Magic1, BlockModeFlag | DefaultBits}, enc[:HeaderSize])

	dec, err := Decompress(enc, nil)
	require.NoError(t, err)
	require.Equal(t, raw, dec)
}

func TestHeaderReflectsOptions(t *testing.T) {
	for bits := MinBits; bits <= MaxBits; bits++ {
		for _, block := range []bool{true, false} {
			enc, err := Compress([]byte("header"), &CompressOptions{MaxBits: bits, BlockMode: block})
			require.NoError(t, err)
			require.Equal(t, byte(Magic0), enc[0])
			require.Equal(t, byte(Magic1), enc[1])
			require.Equal(t, bits, int(enc[2]&MaxBitsMask))
			require.Equal(t, block, enc[2]&BlockModeFlag != 0)
			require.Zero(t, enc[2]&ReservedMask)
		}
	}
}

func TestZeroMaxBitsMeansDefault(t *testing.T) {
	enc, err := Compress([]byte("x"), &CompressOptions{BlockMode: true})
	require.NoError(t, err)
	require.Equal(t, DefaultBits, int(enc[2]&MaxBitsMask))
}

func TestInvalidMaxBits(t *testing.T) {
	for _, bits := range []int{-1, 1, 8, 17, 32} {
		_, err := Compress([]byte("x"), &CompressOptions{MaxBits: bits})
		require.ErrorIs(t, err, ErrInvalidMaxBits, "bits=%d", bits)
	}
}

func TestEmptyInputIsHeaderOnly(t *testing.T) {
	enc, err := Compress(nil, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{Magic0, Magic1, BlockModeFlag | DefaultBits}, enc)

	dec, err := Decompress(enc, nil)
	require.NoError(t, err)
	require.Empty(t, dec)
}

func TestSingleByteIsOneLiteral(t *testing.T) {
	enc, err := Compress([]byte{0xAB}, nil)
	require.NoError(t, err)
	require.Len(t, enc, HeaderSize+2)

	codes, widths, out := decodeCodes(t, enc)
	require.Equal(t, []int{0xAB}, codes)
	require.Equal(t, []int{MinBits}, widths)
	require.Equal(t, []byte{0xAB}, out)
}

func TestRepeatedByteReusesEntries(t *testing.T) {
	input := []byte("AAAAAAAAAA")
	enc, err := Compress(input, &CompressOptions{MaxBits: 16})
	require.NoError(t, err)
	require.Equal(t, []byte{0x1f, 0x9d, 0x10, 0x41, 0x00, 0x06, 0x14, 0x08}, enc)

	codes, _, out := decodeCodes(t, enc)
	require.Equal(t, []int{'A', 256, 257, 258}, codes)
	require.Equal(t, input, out)
}

func TestForcedClearMidStream(t *testing.T) {
	rep := []byte("abcabcabc")
	input := bytes.Repeat(rep, 3)

	var buf bytes.Buffer
	zw, err := NewWriter(&buf, &CompressOptions{MaxBits: 16, BlockMode: true, Reset: NeverReset{}})
	require.NoError(t, err)

	_, err = zw.Write(input[:13])
	require.NoError(t, err)
	require.NoError(t, zw.Clear())
	_, err = zw.Write(input[13:])
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.Equal(t, 1, zw.Stats().Clears)

	// Same bytes gzip -dc accepts for this input and clear point.
	want := []byte{
		0x1f, 0x9d, 0x90, 0x61, 0xc4, 0x8c, 0x09, 0x38, 0x50, 0x20, 0xc1, 0x30, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x62, 0xc6, 0x84, 0x09, 0x38, 0x50, 0x20,
		0xc1, 0x80,
	}
	require.Equal(t, want, buf.Bytes())

	codes, _, out := decodeCodes(t, buf.Bytes())
	require.Contains(t, codes, ClearCode)
	require.Equal(t, input, out)
}

func TestClearOnFreshDictionaryIsNoop(t *testing.T) {
	var buf bytes.Buffer
	zw, err := NewWriter(&buf, nil)
	require.NoError(t, err)
	require.NoError(t, zw.Clear())
	require.NoError(t, zw.Clear())
	require.NoError(t, zw.Close())
	require.Equal(t, 0, zw.Stats().Clears)
	require.Len(t, buf.Bytes(), HeaderSize)
}

func TestDistinctBytesAreAllLiterals(t *testing.T) {
	input := make([]byte, 256)
	for i := range input {
		input[i] = byte(i)
	}

	enc, err := Compress(input, nil)
	require.NoError(t, err)
	require.Len(t, enc, HeaderSize+256*MinBits/8)

	codes, widths, out := decodeCodes(t, enc)
	require.Len(t, codes, len(input))
	for i, code := range codes {
		require.Equal(t, i, code)
		require.Equal(t, MinBits, widths[i])
	}
	require.Equal(t, input, out)
}

func TestNineBitTableStopsGrowing(t *testing.T) {
	input := []byte(uniuri.NewLen(8192))

	for _, block := range []bool{false, true} {
		var buf bytes.Buffer
		zw, err := NewWriter(&buf, &CompressOptions{MaxBits: MinBits, BlockMode: block, Reset: NeverReset{}})
		require.NoError(t, err)
		_, err = zw.Write(input)
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		stats := zw.Stats()
		require.Equal(t, 1<<MinBits-firstFree(block), stats.Entries)
		require.Equal(t, MinBits, stats.Width)

		codes, widths, out := decodeCodes(t, buf.Bytes())
		for i := range codes {
			require.Less(t, codes[i], 1<<MinBits)
			require.Equal(t, MinBits, widths[i])
		}
		require.Equal(t, input, out)
	}
}

func TestWidthIsMonotonicPerBlock(t *testing.T) {
	input := append(bytes.Repeat([]byte(uniuri.NewLen(3000)), 20), randomBytes(200000, 3)...)

	for bits := MinBits; bits <= MaxBits; bits++ {
		enc, err := Compress(input, &CompressOptions{MaxBits: bits, BlockMode: true, Reset: ResetWhenFull{}})
		require.NoError(t, err)

		codes, widths, out := decodeCodes(t, enc)
		require.Equal(t, input, out)

		prev := MinBits
		for i, w := range widths {
			require.GreaterOrEqual(t, w, prev, "bits=%d code #%d", bits, i)
			require.LessOrEqual(t, w, bits)
			prev = w
			if codes[i] == ClearCode {
				prev = MinBits
			}
		}
	}
}

func TestDictionaryBound(t *testing.T) {
	input := randomBytes(300000, 11)

	for bits := MinBits; bits <= MaxBits; bits++ {
		for _, block := range []bool{true, false} {
			var buf bytes.Buffer
			zw, err := NewWriter(&buf, &CompressOptions{MaxBits: bits, BlockMode: block, Reset: NeverReset{}})
			require.NoError(t, err)
			_, err = zw.Write(input)
			require.NoError(t, err)
			require.LessOrEqual(t, zw.Stats().Entries, 1<<bits-firstFree(block))
			require.NoError(t, zw.Close())

			zr, err := NewReader(&buf, nil)
			require.NoError(t, err)
			_, err = io.ReadAll(zr)
			require.NoError(t, err)
			require.LessOrEqual(t, zr.Stats().Entries, 1<<bits-firstFree(block))
		}
	}
}

func TestStatsCountBytes(t *testing.T) {
	input := bytes.Repeat([]byte("statistics "), 1000)
	var buf bytes.Buffer
	zw, err := NewWriter(&buf, nil)
	require.NoError(t, err)
	_, err = zw.Write(input)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	stats := zw.Stats()
	require.Equal(t, int64(len(input)), stats.Raw)
	require.Equal(t, int64(buf.Len()), stats.Packed)
	require.Greater(t, stats.Savings(), 50.0)
	require.Greater(t, stats.Ratio(), 2.0)
}
