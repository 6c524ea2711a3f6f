package ports

import (
	"image"
	"image/color"
)

// Renderer creates drawing surfaces and handles image encoding.
type Renderer interface {
	SurfaceFactory

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// SurfaceFactory acquires 2D drawing surfaces.
type SurfaceFactory interface {
	// NewSurface allocates a surface of width x height CSS pixels backed by a
	// bitmap at dpr resolution. It fails when no 2D context can be obtained.
	NewSurface(width, height int, dpr float64) (Surface, error)
}

// Surface is a canvas that owns its backing bitmap.
type Surface interface {
	Canvas

	// Resize reallocates the backing bitmap. Previous content is discarded.
	Resize(width, height int, dpr float64) error

	// Width returns the logical width in CSS pixels.
	Width() int

	// Height returns the logical height in CSS pixels.
	Height() int

	// DPR returns the device pixel ratio of the backing bitmap.
	DPR() float64
}

// Canvas provides 2D drawing operations in CSS pixel coordinates.
// Device pixel ratio scaling is applied by the implementation.
type Canvas interface {
	// Clear fills the whole canvas with c, ignoring any clip.
	Clear(c color.Color)

	// FillRect draws a filled rectangle.
	FillRect(x, y, w, h float64, c color.Color)

	// FillRoundedRect draws a filled rounded rectangle.
	FillRoundedRect(x, y, w, h, radius float64, c color.Color)

	// StrokeRect draws a rectangle outline.
	StrokeRect(x, y, w, h float64, c color.Color, lineWidth float64)

	// DrawLine draws a line between two points.
	DrawLine(x1, y1, x2, y2 float64, c color.Color, lineWidth float64)

	// FillCircle draws a filled circle.
	FillCircle(cx, cy, r float64, c color.Color)

	// FillText draws a single line of text. y is the vertical center.
	FillText(text string, x, y float64, style TextStyle)

	// MeasureText returns the width and height of the text.
	MeasureText(text string, font FontSpec) (width, height float64)

	// Save pushes the drawing state (clip included).
	Save()

	// Restore pops the drawing state.
	Restore()

	// ClipRect intersects the clip region with the rectangle.
	ClipRect(x, y, w, h float64)

	// Image returns the backing bitmap.
	Image() image.Image
}

// FontWeight selects a font weight.
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

// FontSpec identifies a font face.
type FontSpec struct {
	Family string
	Size   float64
	Weight FontWeight
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	Font  FontSpec
	Color color.Color
	Align TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
