package cellrender

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/ports"
)

// Builtins returns a fresh set of the built-in renderers keyed by cell type.
func Builtins() map[string]Renderer {
	return map[string]Renderer{
		grid.CellText:     TextRenderer{},
		grid.CellNumber:   NumberRenderer{},
		grid.CellCheckbox: CheckboxRenderer{},
		grid.CellRating:   RatingRenderer{Max: 5},
		grid.CellSelect:   SelectRenderer{},
		grid.CellDate:     DateRenderer{Layout: "2006-01-02"},
		grid.CellLink:     LinkRenderer{},
	}
}

// FormatValue converts a cell value to its display string.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case time.Time:
		return val.Format("2006-01-02")
	case []string:
		return strings.Join(val, ", ")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Truthy reports whether a value reads as checked.
func Truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "y", "1", "x", "✓", "on":
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

func measureText(canvas ports.Canvas, text string, style Style) grid.Size {
	w, h := canvas.MeasureText(text, style.Font)
	return grid.Size{Width: w + 2*style.Padding, Height: h + 2*style.Padding}
}

// TextRenderer draws the value as left-aligned, ellipsized text.
type TextRenderer struct{}

// Draw implements Renderer.
func (TextRenderer) Draw(ctx Context) {
	drawAligned(ctx, FormatValue(ctx.Value), ports.AlignLeft, ctx.Style.TextColor)
}

// Measure implements Measurer.
func (TextRenderer) Measure(canvas ports.Canvas, value any, style Style) grid.Size {
	return measureText(canvas, FormatValue(value), style)
}

// NumberRenderer draws the value right-aligned.
type NumberRenderer struct{}

// Draw implements Renderer.
func (NumberRenderer) Draw(ctx Context) {
	drawAligned(ctx, FormatValue(ctx.Value), ports.AlignRight, ctx.Style.TextColor)
}

// Measure implements Measurer.
func (NumberRenderer) Measure(canvas ports.Canvas, value any, style Style) grid.Size {
	return measureText(canvas, FormatValue(value), style)
}

func drawAligned(ctx Context, text string, align ports.TextAlign, c color.Color) {
	pad := ctx.Style.Padding
	avail := ctx.Rect.Width - 2*pad
	text = Ellipsize(ctx.Canvas, text, avail, ctx.Style.Font)
	if text == "" {
		return
	}

	x := ctx.Rect.X + pad
	switch align {
	case ports.AlignRight:
		x = ctx.Rect.Right() - pad
	case ports.AlignCenter:
		x = ctx.Rect.X + ctx.Rect.Width/2
	}

	ctx.Canvas.FillText(text, x, ctx.Rect.Y+ctx.Rect.Height/2, ports.TextStyle{
		Font:  ctx.Style.Font,
		Color: c,
		Align: align,
	})
}

// CheckboxRenderer draws a centered box, filled with a check when truthy.
type CheckboxRenderer struct{}

// Draw implements Renderer.
func (CheckboxRenderer) Draw(ctx Context) {
	size := math.Min(16, math.Min(ctx.Rect.Width, ctx.Rect.Height)-2*ctx.Style.Padding)
	if size <= 2 {
		return
	}
	x := ctx.Rect.X + (ctx.Rect.Width-size)/2
	y := ctx.Rect.Y + (ctx.Rect.Height-size)/2

	if !Truthy(ctx.Value) {
		ctx.Canvas.StrokeRect(x, y, size, size, ctx.Style.TextColor, 1)
		return
	}

	ctx.Canvas.FillRoundedRect(x, y, size, size, 2, ctx.Style.AccentColor)
	// Tick.
	ctx.Canvas.DrawLine(x+size*0.22, y+size*0.52, x+size*0.42, y+size*0.72, color.White, 2)
	ctx.Canvas.DrawLine(x+size*0.42, y+size*0.72, x+size*0.78, y+size*0.30, color.White, 2)
}

// RatingRenderer draws Max dots, the first value of them in the accent color.
type RatingRenderer struct {
	Max int
}

// Draw implements Renderer.
func (r RatingRenderer) Draw(ctx Context) {
	maxDots := r.Max
	if maxDots <= 0 {
		maxDots = 5
	}
	v, _ := toFloat(ctx.Value)
	filled := int(math.Round(v))
	if filled < 0 {
		filled = 0
	}
	if filled > maxDots {
		filled = maxDots
	}

	radius := math.Min(5, (ctx.Rect.Height-2*ctx.Style.Padding)/2)
	if radius <= 0 {
		return
	}
	step := radius*2 + 4
	cx := ctx.Rect.X + ctx.Style.Padding + radius
	cy := ctx.Rect.Y + ctx.Rect.Height/2
	muted := Muted(ctx.Style.AccentColor, ctx.Style.Background)

	for i := 0; i < maxDots; i++ {
		if cx+radius > ctx.Rect.Right()-ctx.Style.Padding {
			break
		}
		c := muted
		if i < filled {
			c = ctx.Style.AccentColor
		}
		ctx.Canvas.FillCircle(cx, cy, radius, c)
		cx += step
	}
}

// Muted blends accent toward background, for inactive affordances.
func Muted(accent, background color.Color) color.Color {
	a, ok := colorful.MakeColor(accent)
	if !ok {
		return accent
	}
	b, ok := colorful.MakeColor(background)
	if !ok {
		b = colorful.Color{R: 1, G: 1, B: 1}
	}
	return a.BlendLab(b, 0.7).Clamped()
}

// SelectRenderer draws one chip per option. Values may be a string
// (comma separated) or []string.
type SelectRenderer struct{}

// Draw implements Renderer.
func (SelectRenderer) Draw(ctx Context) {
	options := selectOptions(ctx.Value)
	if len(options) == 0 {
		return
	}

	pad := ctx.Style.Padding
	_, textH := ctx.Canvas.MeasureText("M", ctx.Style.Font)
	chipH := math.Min(textH+4, ctx.Rect.Height-2)
	y := ctx.Rect.Y + (ctx.Rect.Height-chipH)/2
	x := ctx.Rect.X + pad
	right := ctx.Rect.Right() - pad

	for _, opt := range options {
		avail := right - x - 12
		if avail <= 0 {
			break
		}
		label := Ellipsize(ctx.Canvas, opt, avail, ctx.Style.Font)
		if label == "" {
			break
		}
		w, _ := ctx.Canvas.MeasureText(label, ctx.Style.Font)
		chipW := w + 12

		ctx.Canvas.FillRoundedRect(x, y, chipW, chipH, chipH/2, ChipColor(opt))
		ctx.Canvas.FillText(label, x+6, y+chipH/2, ports.TextStyle{
			Font:  ctx.Style.Font,
			Color: ctx.Style.TextColor,
			Align: ports.AlignLeft,
		})
		x += chipW + 4
	}
}

func selectOptions(v any) []string {
	var raw []string
	switch val := v.(type) {
	case []string:
		raw = val
	case []any:
		for _, item := range val {
			raw = append(raw, FormatValue(item))
		}
	case string:
		raw = strings.Split(val, ",")
	default:
		if s := FormatValue(v); s != "" {
			raw = []string{s}
		}
	}

	out := raw[:0:0]
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ChipColor returns a stable pastel color for an option label.
func ChipColor(label string) color.Color {
	h := fnv.New32a()
	h.Write([]byte(label))
	hue := float64(h.Sum32() % 360)
	return colorful.Hsl(hue, 0.6, 0.87).Clamped()
}

// DateRenderer draws time values and date-like strings using Layout.
type DateRenderer struct {
	Layout string
}

var dateInputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// Draw implements Renderer.
func (r DateRenderer) Draw(ctx Context) {
	drawAligned(ctx, r.format(ctx.Value), ports.AlignLeft, ctx.Style.TextColor)
}

// Measure implements Measurer.
func (r DateRenderer) Measure(canvas ports.Canvas, value any, style Style) grid.Size {
	return measureText(canvas, r.format(value), style)
}

func (r DateRenderer) format(v any) string {
	layout := r.Layout
	if layout == "" {
		layout = "2006-01-02"
	}
	switch val := v.(type) {
	case time.Time:
		return val.Format(layout)
	case string:
		s := strings.TrimSpace(val)
		for _, in := range dateInputLayouts {
			if t, err := time.Parse(in, s); err == nil {
				return t.Format(layout)
			}
		}
		return s
	}
	return FormatValue(v)
}

// LinkRenderer draws the value as underlined accent-colored text.
type LinkRenderer struct{}

// Draw implements Renderer.
func (LinkRenderer) Draw(ctx Context) {
	pad := ctx.Style.Padding
	text := Ellipsize(ctx.Canvas, FormatValue(ctx.Value), ctx.Rect.Width-2*pad, ctx.Style.Font)
	if text == "" {
		return
	}
	x := ctx.Rect.X + pad
	cy := ctx.Rect.Y + ctx.Rect.Height/2
	ctx.Canvas.FillText(text, x, cy, ports.TextStyle{
		Font:  ctx.Style.Font,
		Color: ctx.Style.AccentColor,
		Align: ports.AlignLeft,
	})

	w, h := ctx.Canvas.MeasureText(text, ctx.Style.Font)
	underline := math.Min(cy+h/2, ctx.Rect.Bottom()-1)
	ctx.Canvas.DrawLine(x, underline, x+w, underline, ctx.Style.AccentColor, 1)
}

// Measure implements Measurer.
func (LinkRenderer) Measure(canvas ports.Canvas, value any, style Style) grid.Size {
	return measureText(canvas, FormatValue(value), style)
}
