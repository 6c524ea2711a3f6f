package mocks

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/user/gridshow/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer. By default it hands
// out recording canvases.
type Renderer struct {
	NewSurfaceFunc  func(width, height int, dpr float64) (ports.Surface, error)
	EncodeImageFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image

	// Surfaces holds every surface created through the default path.
	Surfaces []*Canvas
}

func (m *Renderer) NewSurface(width, height int, dpr float64) (ports.Surface, error) {
	if m.NewSurfaceFunc != nil {
		return m.NewSurfaceFunc(width, height, dpr)
	}
	c := NewCanvas(width, height, dpr)
	m.Surfaces = append(m.Surfaces, c)
	return c, nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// OpKind identifies a recorded canvas call.
type OpKind string

const (
	OpClear       OpKind = "clear"
	OpFillRect    OpKind = "fillRect"
	OpRoundedRect OpKind = "roundedRect"
	OpStrokeRect  OpKind = "strokeRect"
	OpLine        OpKind = "line"
	OpCircle      OpKind = "circle"
	OpText        OpKind = "text"
	OpSave        OpKind = "save"
	OpRestore     OpKind = "restore"
	OpClip        OpKind = "clip"
)

// Op is one recorded canvas call. For lines X,Y is the start and W,H the
// end point. Clip holds the effective clip at the time of the call, or nil.
type Op struct {
	Kind  OpKind
	X, Y  float64
	W, H  float64
	Text  string
	Color color.Color
	Align ports.TextAlign
	Clip  *[4]float64
}

// Canvas records drawing calls instead of rasterizing them. It implements
// ports.Surface.
type Canvas struct {
	width  int
	height int
	dpr    float64

	// CharWidth is the advance used by MeasureText per rune. Defaults to 7.
	CharWidth float64

	Ops []Op

	clip  *[4]float64
	stack []*[4]float64
}

// NewCanvas creates a recording canvas.
func NewCanvas(width, height int, dpr float64) *Canvas {
	return &Canvas{width: width, height: height, dpr: dpr, CharWidth: 7}
}

// Reset discards recorded operations.
func (m *Canvas) Reset() {
	m.Ops = nil
}

// OpsOf returns the recorded operations of the given kind.
func (m *Canvas) OpsOf(kind OpKind) []Op {
	var out []Op
	for _, op := range m.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the text of every FillText call in order.
func (m *Canvas) Texts() []string {
	var out []string
	for _, op := range m.OpsOf(OpText) {
		out = append(out, op.Text)
	}
	return out
}

func (m *Canvas) record(op Op) {
	op.Clip = m.clip
	m.Ops = append(m.Ops, op)
}

func (m *Canvas) Resize(width, height int, dpr float64) error {
	m.width, m.height, m.dpr = width, height, dpr
	return nil
}

func (m *Canvas) Width() int   { return m.width }
func (m *Canvas) Height() int  { return m.height }
func (m *Canvas) DPR() float64 { return m.dpr }

func (m *Canvas) Clear(c color.Color) {
	m.record(Op{Kind: OpClear, W: float64(m.width), H: float64(m.height), Color: c})
}

func (m *Canvas) FillRect(x, y, w, h float64, c color.Color) {
	m.record(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Canvas) FillRoundedRect(x, y, w, h, radius float64, c color.Color) {
	m.record(Op{Kind: OpRoundedRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Canvas) StrokeRect(x, y, w, h float64, c color.Color, lineWidth float64) {
	m.record(Op{Kind: OpStrokeRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Canvas) DrawLine(x1, y1, x2, y2 float64, c color.Color, lineWidth float64) {
	m.record(Op{Kind: OpLine, X: x1, Y: y1, W: x2, H: y2, Color: c})
}

func (m *Canvas) FillCircle(cx, cy, r float64, c color.Color) {
	m.record(Op{Kind: OpCircle, X: cx, Y: cy, W: r, H: r, Color: c})
}

func (m *Canvas) FillText(text string, x, y float64, style ports.TextStyle) {
	m.record(Op{Kind: OpText, X: x, Y: y, Text: text, Color: style.Color, Align: style.Align})
}

func (m *Canvas) MeasureText(text string, font ports.FontSpec) (float64, float64) {
	h := font.Size * 1.2
	if h <= 0 {
		h = 16
	}
	return float64(utf8.RuneCountInString(text)) * m.CharWidth, h
}

func (m *Canvas) Save() {
	m.stack = append(m.stack, m.clip)
	m.record(Op{Kind: OpSave})
}

func (m *Canvas) Restore() {
	if n := len(m.stack); n > 0 {
		m.clip = m.stack[n-1]
		m.stack = m.stack[:n-1]
	}
	m.record(Op{Kind: OpRestore})
}

func (m *Canvas) ClipRect(x, y, w, h float64) {
	r := [4]float64{x, y, x + w, y + h}
	if m.clip != nil {
		r[0] = max(r[0], m.clip[0])
		r[1] = max(r[1], m.clip[1])
		r[2] = min(r[2], m.clip[2])
		r[3] = min(r[3], m.clip[3])
	}
	m.clip = &r
	m.record(Op{Kind: OpClip, X: x, Y: y, W: w, H: h})
}

// Depth returns the current Save nesting depth.
func (m *Canvas) Depth() int {
	return len(m.stack)
}

func (m *Canvas) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, int(float64(m.width)*m.dpr), int(float64(m.height)*m.dpr)))
}

var _ ports.Surface = (*Canvas)(nil)
