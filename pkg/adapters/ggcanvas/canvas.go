// Package ggcanvas provides a ports.Renderer backed by the gg library.
//
// Surfaces work in CSS pixels. The device pixel ratio is applied once as a
// scale transform on the gg context, so callers never multiply by it.
package ggcanvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"slices"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/user/gridshow/pkg/ports"
)

// ErrInvalidSurface is returned when a surface cannot be backed by a bitmap.
var ErrInvalidSurface = errors.New("invalid surface dimensions")

// Renderer implements ports.Renderer using gg.
type Renderer struct {
	fonts *fontCache
}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{fonts: newFontCache()}
}

// NewSurface allocates a gg context of width*dpr x height*dpr device pixels.
func (r *Renderer) NewSurface(width, height int, dpr float64) (ports.Surface, error) {
	s := &Surface{fonts: r.fonts}
	if err := s.Resize(width, height, dpr); err != nil {
		return nil, err
	}
	return s, nil
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

var _ ports.Renderer = (*Renderer)(nil)

// Surface implements ports.Surface on a gg.Context.
type Surface struct {
	dc     *gg.Context
	width  int
	height int
	dpr    float64
	fonts  *fontCache

	// gg's Pop keeps the current clip mask, so the active clip rects and
	// one saved copy per Save are tracked here and replayed on Restore.
	clips []clipRect
	saved [][]clipRect
}

type clipRect struct {
	x, y, w, h float64
}

// Resize reallocates the backing context and re-applies the DPR transform.
func (s *Surface) Resize(width, height int, dpr float64) error {
	if width <= 0 || height <= 0 || dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		return fmt.Errorf("%w: %dx%d@%g", ErrInvalidSurface, width, height, dpr)
	}
	pw := int(math.Ceil(float64(width) * dpr))
	ph := int(math.Ceil(float64(height) * dpr))

	dc := gg.NewContext(pw, ph)
	dc.Scale(dpr, dpr)

	s.dc = dc
	s.clips = nil
	s.saved = nil
	s.width = width
	s.height = height
	s.dpr = dpr
	return nil
}

// Width returns the logical width.
func (s *Surface) Width() int { return s.width }

// Height returns the logical height.
func (s *Surface) Height() int { return s.height }

// DPR returns the device pixel ratio.
func (s *Surface) DPR() float64 { return s.dpr }

// Clear fills every device pixel with c. gg ignores clip and transform here.
func (s *Surface) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

// FillRect draws a filled rectangle.
func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
}

// FillRoundedRect draws a filled rounded rectangle.
func (s *Surface) FillRoundedRect(x, y, w, h, radius float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawRoundedRectangle(x, y, w, h, radius)
	s.dc.Fill()
}

// StrokeRect draws a rectangle outline.
func (s *Surface) StrokeRect(x, y, w, h float64, c color.Color, lineWidth float64) {
	s.dc.SetColor(c)
	// gg strokes in device pixels.
	s.dc.SetLineWidth(lineWidth * s.dpr)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Stroke()
}

// DrawLine draws a line between two points.
func (s *Surface) DrawLine(x1, y1, x2, y2 float64, c color.Color, lineWidth float64) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(lineWidth * s.dpr)
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.Stroke()
}

// FillCircle draws a filled circle.
func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawCircle(cx, cy, r)
	s.dc.Fill()
}

// FillText draws text vertically centered on y.
func (s *Surface) FillText(text string, x, y float64, style ports.TextStyle) {
	if text == "" {
		return
	}
	face := s.fonts.face(style.Font, s.dpr)
	s.dc.SetFontFace(face)
	s.dc.SetColor(style.Color)

	// Glyphs are rasterized at device size but positioned through the
	// transform, so anchoring is done here in CSS pixels.
	w := float64(font.MeasureString(face, text)) / 64 / s.dpr
	switch style.Align {
	case ports.AlignCenter:
		x -= w / 2
	case ports.AlignRight:
		x -= w
	}

	m := face.Metrics()
	ascent := float64(m.Ascent) / 64 / s.dpr
	descent := float64(m.Descent) / 64 / s.dpr
	baseline := y + (ascent-descent)/2

	s.dc.DrawStringAnchored(text, x, baseline, 0, 0)
}

// MeasureText returns the advance width and line height in CSS pixels.
func (s *Surface) MeasureText(text string, spec ports.FontSpec) (width, height float64) {
	face := s.fonts.face(spec, s.dpr)
	width = float64(font.MeasureString(face, text)) / 64 / s.dpr
	height = float64(face.Metrics().Height) / 64 / s.dpr
	return width, height
}

// Save pushes the drawing state, clip included.
func (s *Surface) Save() {
	s.dc.Push()
	s.saved = append(s.saved, slices.Clone(s.clips))
}

// Restore pops the drawing state and reinstates the clip that was active
// at the matching Save. Restore without Save is a no-op.
func (s *Surface) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.dc.Pop()
	s.clips = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]

	s.dc.ResetClip()
	for _, c := range s.clips {
		s.dc.DrawRectangle(c.x, c.y, c.w, c.h)
		s.dc.Clip()
	}
}

// ClipRect intersects the clip with the rectangle.
func (s *Surface) ClipRect(x, y, w, h float64) {
	s.clips = append(s.clips, clipRect{x: x, y: y, w: w, h: h})
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Clip()
}

// Image returns the backing bitmap.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

var _ ports.Surface = (*Surface)(nil)
