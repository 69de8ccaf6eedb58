package lzw

// decodeDict stores dictionary entries as flat arrays indexed by code.
// Codes below 256 are literals and are never overwritten.
type decodeDict struct {
	prefix []uint16
	suffix []byte

	first int
	next  int
	limit int
}

func newDecodeDict(maxBits int, blockMode bool) *decodeDict {
	limit := 1 << maxBits
	d := &decodeDict{
		prefix: make([]uint16, limit),
		suffix: make([]byte, limit),
		first:  firstFree(blockMode),
		limit:  limit,
	}
	for i := 0; i < 256; i++ {
		d.suffix[i] = byte(i)
	}
	d.next = d.first

	return d
}

// add appends (prefix, suffix) under the next free code.
// It reports false when the dictionary is full and nothing was stored.
func (d *decodeDict) add(prefix int, suffix byte) bool {
	if d.full() {
		return false
	}

	d.prefix[d.next] = uint16(prefix) // #nosec G115 -- prefix < 1<<16
	d.suffix[d.next] = suffix
	d.next++

	return true
}

// expand appends the bytes of code to stack in reverse order and returns the
// stack and the first byte of the expansion. code must be below next.
func (d *decodeDict) expand(stack []byte, code int) ([]byte, byte) {
	for code >= ClearCode {
		stack = append(stack, d.suffix[code])
		code = int(d.prefix[code])
	}
	stack = append(stack, byte(code)) // #nosec G115 -- literal code

	return stack, byte(code) // #nosec G115 -- literal code
}

func (d *decodeDict) full() bool {
	return d.next >= d.limit
}

// reset drops every dynamic entry.
func (d *decodeDict) reset() {
	d.next = d.first
}
