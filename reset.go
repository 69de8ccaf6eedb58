package lzw

// ResetStrategy decides when a full dictionary is discarded with a clear code.
// Strategies only take effect in block mode.
type ResetStrategy interface {
	// NewMonitor returns the per-stream state of the strategy.
	NewMonitor() ResetMonitor
}

// ResetMonitor is consulted after each emitted code once the dictionary is full.
type ResetMonitor interface {
	// ShouldReset reports whether to emit a clear code now. bytesIn counts consumed
	// input bytes, bytesOut the bytes written so far including the header.
	ShouldReset(bytesIn, bytesOut int64) bool
}

// NeverReset keeps a full dictionary static until the end of the stream.
type NeverReset struct{}

// NewMonitor implements ResetStrategy.
func (NeverReset) NewMonitor() ResetMonitor { return neverMonitor{} }

type neverMonitor struct{}

func (neverMonitor) ShouldReset(int64, int64) bool { return false }

// ResetWhenFull clears the dictionary as soon as it fills up.
type ResetWhenFull struct{}

// NewMonitor implements ResetStrategy.
func (ResetWhenFull) NewMonitor() ResetMonitor { return fullMonitor{} }

type fullMonitor struct{}

func (fullMonitor) ShouldReset(int64, int64) bool { return true }

// RatioReset is the classic compress(1) policy: every CheckGap input bytes the
// compression ratio is sampled, and the dictionary is cleared when it dropped
// below the best ratio seen since the last clear.
type RatioReset struct {
	CheckGap int64 // Input bytes between checkpoints; 0 means DefaultCheckGap.
}

// NewMonitor implements ResetStrategy.
func (s RatioReset) NewMonitor() ResetMonitor {
	gap := s.CheckGap
	if gap <= 0 {
		gap = DefaultCheckGap
	}

	return &ratioMonitor{gap: gap, checkpoint: gap}
}

type ratioMonitor struct {
	gap        int64
	checkpoint int64
	ratio      int64 // Best ratio since the last clear, 8 fractional bits.
}

func (m *ratioMonitor) ShouldReset(bytesIn, bytesOut int64) bool {
	if bytesIn < m.checkpoint {
		return false
	}
	m.checkpoint = bytesIn + m.gap

	if bytesOut <= 0 {
		return false
	}

	rat := (bytesIn << 8) / bytesOut
	if rat >= m.ratio {
		m.ratio = rat

		return false
	}
	m.ratio = 0

	return true
}
