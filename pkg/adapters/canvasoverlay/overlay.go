// Package canvasoverlay implements ports.OverlaySink for headless hosts.
// It keeps the latest cursor, drag preview and drop indicator, and paints
// them over a rendered frame on request.
package canvasoverlay

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/user/gridshow/pkg/ports"
)

// Style controls how the affordances are painted.
type Style struct {
	Accent       color.Color
	PreviewFill  color.Color
	PreviewText  color.Color
	FontSize     float64
	CornerRadius float64
	// IndicatorWidth is the drop marker thickness in CSS pixels.
	IndicatorWidth float64
}

// DefaultStyle returns the style used when none is given.
func DefaultStyle() Style {
	accent, _ := colorful.Hex("#2563eb")
	return Style{
		Accent:         accent,
		PreviewFill:    color.NRGBA{R: 255, G: 255, B: 255, A: 217},
		PreviewText:    color.NRGBA{R: 17, G: 24, B: 39, A: 255},
		FontSize:       13,
		CornerRadius:   4,
		IndicatorWidth: 2,
	}
}

// Overlay records overlay intents.
type Overlay struct {
	mu        sync.Mutex
	style     Style
	cursor    ports.Cursor
	preview   *ports.DragPreview
	indicator *ports.DropIndicator
}

// New creates an overlay painted with style.
func New(style Style) *Overlay {
	return &Overlay{style: style}
}

func (o *Overlay) SetCursor(c ports.Cursor) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cursor = c
}

func (o *Overlay) ShowDragPreview(p ports.DragPreview) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.preview = &p
}

func (o *Overlay) ShowDropIndicator(d ports.DropIndicator) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.indicator = &d
}

func (o *Overlay) HideDragOverlay() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.preview = nil
	o.indicator = nil
}

// Cursor returns the current cursor.
func (o *Overlay) Cursor() ports.Cursor {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cursor
}

// Preview returns the drag preview, if shown.
func (o *Overlay) Preview() (ports.DragPreview, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.preview == nil {
		return ports.DragPreview{}, false
	}
	return *o.preview, true
}

// Indicator returns the drop indicator, if shown.
func (o *Overlay) Indicator() (ports.DropIndicator, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.indicator == nil {
		return ports.DropIndicator{}, false
	}
	return *o.indicator, true
}

// Composite returns a copy of base with the indicator and the preview
// painted on top. Coordinates are CSS pixels scaled by dpr. base is not
// modified.
func (o *Overlay) Composite(base image.Image, dpr float64) image.Image {
	if dpr <= 0 {
		dpr = 1
	}
	preview, hasPreview := o.Preview()
	indicator, hasIndicator := o.Indicator()

	dc := gg.NewContextForImage(base)
	if !hasPreview && !hasIndicator {
		return dc.Image()
	}
	dc.Scale(dpr, dpr)

	s := o.style
	if hasIndicator {
		dc.SetColor(s.Accent)
		dc.SetLineWidth(s.IndicatorWidth * dpr)
		dc.DrawLine(indicator.X, indicator.Top, indicator.X, indicator.Top+indicator.Height)
		dc.Stroke()
	}

	if hasPreview {
		dc.DrawRoundedRectangle(preview.X, preview.Y, preview.Width, preview.Height, s.CornerRadius)
		dc.SetColor(s.PreviewFill)
		dc.FillPreserve()
		dc.SetColor(s.Accent)
		dc.SetLineWidth(dpr)
		dc.Stroke()

		if preview.Label != "" {
			face := labelFace(s.FontSize * dpr)
			dc.SetFontFace(face)
			dc.SetColor(s.PreviewText)
			// Glyphs are rasterized at device size; undo the scale for text.
			dc.Push()
			dc.Identity()
			m := face.Metrics()
			baseline := (preview.Y+preview.Height/2)*dpr + float64(m.Ascent-m.Descent)/64/2
			dc.DrawString(preview.Label, (preview.X+8)*dpr, baseline)
			dc.Pop()
		}
	}
	return dc.Image()
}

var (
	faceMu    sync.Mutex
	faceCache = map[float64]font.Face{}
)

func labelFace(size float64) font.Face {
	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faceCache[size]; ok {
		return f
	}
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	faceCache[size] = face
	return face
}

var _ ports.OverlaySink = (*Overlay)(nil)
