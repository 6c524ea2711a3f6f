package pipeline

import (
	"image"

	"github.com/user/gridshow/pkg/draw"
	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/interaction"
)

// =============================================================================
// Load Stage Types
// =============================================================================

// ColumnOverride adjusts a loaded column. Zero fields leave the loaded
// value in place.
type ColumnOverride struct {
	ID       string  `yaml:"id" toml:"id"`
	Header   string  `yaml:"header" toml:"header"`
	Size     float64 `yaml:"size" toml:"size"`
	CellType string  `yaml:"cell_type" toml:"cell_type"`
	Hidden   bool    `yaml:"hidden" toml:"hidden"`
}

// LoadInput names the data set and the column adjustments.
type LoadInput struct {
	Path      string
	Overrides []ColumnOverride
	// Order lists column ids to show first, in order.
	Order []string
	// RowHeights overrides individual row heights by index.
	RowHeights map[int]float64
}

// LoadResult is a data set ready for painting. Columns are in data-source
// order; hidden columns are already removed and Data is remapped to match.
type LoadResult struct {
	Columns    []grid.Column
	Data       grid.DataSource
	RowCount   int
	RowHeights map[int]float64
	// Order is the display order requested by LoadInput.Order.
	Order []string
}

// =============================================================================
// Paint Stage Types
// =============================================================================

// GestureKind names a replayed header interaction.
type GestureKind string

const (
	GestureResize   GestureKind = "resize"
	GestureReorder  GestureKind = "reorder"
	GestureAutoSize GestureKind = "autosize"
)

// Gesture is a header interaction replayed through the pointer routing
// before frames are painted.
type Gesture struct {
	Kind   GestureKind `yaml:"kind" toml:"kind"`
	Column string      `yaml:"column" toml:"column"`
	// Width is the target width for resize.
	Width float64 `yaml:"width" toml:"width"`
	// To is the insertion boundary for reorder, in [0, column count].
	To int `yaml:"to" toml:"to"`
	// Capture names an overlay snapshot taken mid-gesture. Empty skips it.
	Capture string `yaml:"capture" toml:"capture"`
}

// PaintInput contains everything needed to paint a sequence of frames.
type PaintInput struct {
	Columns    []grid.Column
	Data       grid.DataSource
	RowCount   int
	RowHeights map[int]float64
	Order      []string

	Width  int
	Height int
	DPR    float64
	Theme  draw.Theme

	RowOverscan    int
	ColumnOverscan int
	ResizeMode     interaction.ResizeMode
	MinColumnWidth float64
	MaxColumnWidth float64

	Gestures []Gesture

	// ScrollTop and ScrollLeft position the first frame.
	ScrollTop  float64
	ScrollLeft float64
	// Frames is the number of frames; each one scrolls down by Step.
	Frames int
	Step   float64
}

// Frame is one painted frame.
type Frame struct {
	Index      int             `json:"index"`
	ScrollTop  float64         `json:"scrollTop"`
	ScrollLeft float64         `json:"scrollLeft"`
	Stats      draw.FrameStats `json:"stats"`
	Image      image.Image     `json:"-"`
}

// OverlayCapture is a frame with the interaction overlay composited.
type OverlayCapture struct {
	Name  string
	Image image.Image
}

// PaintResult contains the painted frames and the final column state.
type PaintResult struct {
	Frames   []Frame
	Overlays []OverlayCapture
	// Columns are in display order with committed widths.
	Columns []grid.Column
	// Commits describes each applied gesture, e.g. "resize price 200".
	Commits []string
	// TotalWidth and TotalHeight are the content extents including the
	// header and gutter.
	TotalWidth  float64
	TotalHeight float64
}

// =============================================================================
// Encode Types
// =============================================================================

// EncodedFrame is a frame encoded for output.
type EncodedFrame struct {
	Index int
	Path  string
	Data  []byte
}

// EncodeInput lists the frames to encode and where they go.
type EncodeInput struct {
	Frames []Frame
	// OutputPath is used as is for a single frame. With several frames a
	// zero-padded index is inserted before the extension.
	OutputPath string
	Format     string // "png" or "jpeg"
	Quality    int
	// Downscale resizes HiDPI frames back to CSS pixel size.
	Downscale bool
	Width     int
	Height    int
}

// EncodeResult contains the encoded frames in order.
type EncodeResult struct {
	Frames     []EncodedFrame
	TotalBytes int64
}
