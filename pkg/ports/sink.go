package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveLayoutJSON saves the column/row layout and visible ranges as JSON.
	SaveLayoutJSON(data []byte) error

	// SaveFrame saves a rendered frame before encoding.
	SaveFrame(index int, img image.Image) error

	// SaveOverlayFrame saves a frame captured mid-gesture with the
	// interaction overlay composited on top.
	SaveOverlayFrame(name string, img image.Image) error
}
