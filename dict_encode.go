package lzw

import "github.com/op/go-logging"

// encodeDict maps (prefix code, suffix byte) pairs to codes through an open-addressed
// hash table of fixed size. Slots are never deleted, only cleared all at once.
type encodeDict struct {
	keys  []uint32 // packKey(prefix, suffix); 0 marks an empty slot.
	codes []uint16

	first int // First dynamic code.
	next  int // Next code to assign.
	limit int // 1 << maxBits; no codes are assigned at or past it.

	linearProbes int // Lookups that fell back to linear probing.
}

func newEncodeDict() *encodeDict {
	return &encodeDict{
		keys:  make([]uint32, hashSize),
		codes: make([]uint16, hashSize),
	}
}

// configure prepares an empty dictionary for the given stream parameters.
func (d *encodeDict) configure(maxBits int, blockMode bool) {
	d.first = firstFree(blockMode)
	d.limit = 1 << maxBits
	d.reset()
}

// lookup finds the code stored for (prefix, suffix). On a miss it returns the
// empty slot where the pair belongs, to be passed to add.
func (d *encodeDict) lookup(prefix int, suffix byte) (code, slot int, found bool) {
	key := packKey(prefix, suffix)
	pos := (int(suffix)<<8 ^ prefix) % hashSize

	for probes := 0; ; probes++ {
		switch d.keys[pos] {
		case 0:
			return 0, pos, false
		case key:
			return int(d.codes[pos]), pos, true
		}

		if probes < maxStrideProbes {
			pos = (pos*2 + 1) % hashSize
			continue
		}

		// The doubling sequence can cycle (hashSize-1 is a fixed point), so keep
		// probing slot by slot; the table is never full.
		if probes == maxStrideProbes {
			d.linearProbes++
			if log.IsEnabledFor(logging.DEBUG) {
				log.Debugf("encode dict: linear probing for prefix=%d suffix=%d", prefix, suffix)
			}
		}
		pos++
		if pos == hashSize {
			pos = 0
		}
	}
}

// add stores (prefix, suffix) at slot under the next free code.
// It reports false when the dictionary is full and nothing was stored.
func (d *encodeDict) add(slot, prefix int, suffix byte) bool {
	if d.full() {
		return false
	}

	d.keys[slot] = packKey(prefix, suffix)
	d.codes[slot] = uint16(d.next) // #nosec G115 -- next < 1<<16
	d.next++

	return true
}

func (d *encodeDict) full() bool {
	return d.next >= d.limit
}

// reset drops every entry.
func (d *encodeDict) reset() {
	clear(d.keys)
	d.next = d.first
}

// packKey packs a pair into a non-zero table key.
func packKey(prefix int, suffix byte) uint32 {
	return (uint32(suffix)<<16 | uint32(prefix)) + 1 // #nosec G115 -- prefix < 1<<16
}
