package lzw

// Stats describes one stream as seen by a Writer or Reader.
type Stats struct {
	Raw     int64 `json:"raw"`     // Uncompressed bytes.
	Packed  int64 `json:"packed"`  // Compressed bytes, header included.
	Codes   int64 `json:"codes"`   // Codes written or read, clear codes included.
	Clears  int   `json:"clears"`  // Clear codes written or read.
	Width   int   `json:"width"`   // Code width at the end of the stream.
	Entries int   `json:"entries"` // Dynamic dictionary entries at the end of the stream.
}

// Savings returns the share of the raw size saved by compression, in percent,
// the figure compress -v prints. It is negative when the packed form is larger.
func (s Stats) Savings() float64 {
	if s.Raw == 0 {
		return 0
	}

	return float64(s.Raw-s.Packed) * 100 / float64(s.Raw)
}

// Ratio returns raw bytes per packed byte.
func (s Stats) Ratio() float64 {
	if s.Packed == 0 {
		return 0
	}

	return float64(s.Raw) / float64(s.Packed)
}
