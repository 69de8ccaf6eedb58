package lzw

import "fmt"

// CompressOptions configures compression.
type CompressOptions struct {
	// MaxBits is the maximum code width, 9..16; 0 means DefaultBits.
	MaxBits int
	// BlockMode enables the clear code so the dictionary can be rebuilt mid-stream.
	// compress(1) always sets it; turn it off only for readers that predate it.
	BlockMode bool
	// Reset decides when a full dictionary is cleared (block mode only).
	// nil means RatioReset with DefaultCheckGap.
	Reset ResetStrategy
}

// DefaultCompressOptions returns options matching compress(1) defaults:
// 16-bit codes, block mode, ratio-triggered resets.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{
		MaxBits:   DefaultBits,
		BlockMode: true,
		Reset:     RatioReset{CheckGap: DefaultCheckGap},
	}
}

// header validates the options and returns the stream header they describe.
func (o *CompressOptions) header() (Header, error) {
	h := Header{MaxBits: o.MaxBits, BlockMode: o.BlockMode}
	if h.MaxBits == 0 {
		h.MaxBits = DefaultBits
	}

	if err := h.Validate(); err != nil {
		return Header{}, err
	}

	return h, nil
}

// monitor returns the reset monitor for a new stream.
func (o *CompressOptions) monitor() ResetMonitor {
	if !o.BlockMode {
		return NeverReset{}.NewMonitor()
	}

	if o.Reset == nil {
		return RatioReset{}.NewMonitor()
	}

	return o.Reset.NewMonitor()
}

// DecompressOptions configures decompression.
type DecompressOptions struct {
	// MaxOutputSize limits decoded bytes (0 = no limit).
	MaxOutputSize int64
}

// DefaultDecompressOptions returns options without an output limit.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{}
}

// checkOutput returns ErrOutputTooLarge when n exceeds the configured limit.
func (o *DecompressOptions) checkOutput(n int64) error {
	if o.MaxOutputSize > 0 && n > o.MaxOutputSize {
		return fmt.Errorf("%w: limit=%d", ErrOutputTooLarge, o.MaxOutputSize)
	}

	return nil
}
