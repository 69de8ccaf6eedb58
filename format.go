package lzw

// .Z (LZC) format constants.
const (
	Magic0 = 0x1F // First magic byte.
	Magic1 = 0x9D // Second magic byte.

	HeaderSize = 3 // Magic bytes plus the flags byte.

	BlockModeFlag = 0x80 // Flags byte: clear code enabled.
	MaxBitsMask   = 0x1F // Flags byte: maximum code width.
	ReservedMask  = 0x60 // Flags byte: unused bits, must be zero.

	MinBits     = 9  // Initial (and smallest allowed maximum) code width.
	MaxBits     = 16 // Largest maximum code width.
	DefaultBits = MaxBits

	ClearCode = 256 // Dictionary reset, only in block mode.
)

// Dictionary and stream tuning constants.
const (
	hashSize        = 69001 // Encode table slots; prime, larger than 1<<MaxBits.
	maxStrideProbes = 64    // Doubling probes before the probe turns linear.

	DefaultCheckGap = 10000 // Input bytes between compression ratio checkpoints.

	codesPerGroup = 8    // Codes per alignment group; a group of width w spans w bytes.
	writeBufSize  = 4096 // Bit writer output buffer.
)

// firstFree returns the first dynamic code for the given mode.
func firstFree(blockMode bool) int {
	if blockMode {
		return ClearCode + 1
	}

	return ClearCode
}

// maxCodeFor returns the largest nextFree value that still fits the given width
// before it has to grow. At the widest width the limit is the table ceiling.
func maxCodeFor(width, maxBits int) int {
	if width >= maxBits {
		return 1 << maxBits
	}

	return 1<<width - 1
}
