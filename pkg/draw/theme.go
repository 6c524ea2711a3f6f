package draw

import (
	"image/color"

	"github.com/user/gridshow/pkg/cellrender"
	"github.com/user/gridshow/pkg/ports"
)

// Theme holds the visual options of the grid.
type Theme struct {
	Background       color.Color
	CellBackground   color.Color
	CellTextColor    color.Color
	HeaderBackground color.Color
	HeaderTextColor  color.Color
	GridLineColor    color.Color
	AccentColor      color.Color

	FontFamily       string
	FontSize         float64
	HeaderFontWeight ports.FontWeight
	HeaderFontSize   float64

	CellPadding        float64
	BorderWidth        float64
	DefaultRowHeight   float64
	DefaultColumnWidth float64
	HeaderHeight       float64

	// GutterWidth is the width of the frozen row-number column. Zero hides it.
	GutterWidth float64
}

// DefaultTheme returns the built-in light theme.
func DefaultTheme() Theme {
	return Theme{
		Background:       color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		CellBackground:   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		CellTextColor:    color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff},
		HeaderBackground: color.RGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff},
		HeaderTextColor:  color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff},
		GridLineColor:    color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff},
		AccentColor:      color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff},

		FontFamily:       "sans-serif",
		FontSize:         13,
		HeaderFontWeight: ports.WeightBold,
		HeaderFontSize:   13,

		CellPadding:        8,
		BorderWidth:        1,
		DefaultRowHeight:   32,
		DefaultColumnWidth: 150,
		HeaderHeight:       36,
	}
}

// CellStyle returns the style handed to cell renderers.
func (t Theme) CellStyle() cellrender.Style {
	return cellrender.Style{
		Font:        ports.FontSpec{Family: t.FontFamily, Size: t.FontSize},
		TextColor:   t.CellTextColor,
		Background:  t.CellBackground,
		AccentColor: t.AccentColor,
		Padding:     t.CellPadding,
	}
}

// HeaderFont returns the font used for header labels.
func (t Theme) HeaderFont() ports.FontSpec {
	return ports.FontSpec{Family: t.FontFamily, Size: t.HeaderFontSize, Weight: t.HeaderFontWeight}
}

// ThemePatch is a partial theme. Nil fields leave the current value.
type ThemePatch struct {
	Background       color.Color
	CellBackground   color.Color
	CellTextColor    color.Color
	HeaderBackground color.Color
	HeaderTextColor  color.Color
	GridLineColor    color.Color
	AccentColor      color.Color

	FontFamily       *string
	FontSize         *float64
	HeaderFontWeight *ports.FontWeight
	HeaderFontSize   *float64

	CellPadding        *float64
	BorderWidth        *float64
	DefaultRowHeight   *float64
	DefaultColumnWidth *float64
	HeaderHeight       *float64
	GutterWidth        *float64
}

// Apply merges the patch over t, one field at a time.
func (p ThemePatch) Apply(t Theme) Theme {
	setColor(&t.Background, p.Background)
	setColor(&t.CellBackground, p.CellBackground)
	setColor(&t.CellTextColor, p.CellTextColor)
	setColor(&t.HeaderBackground, p.HeaderBackground)
	setColor(&t.HeaderTextColor, p.HeaderTextColor)
	setColor(&t.GridLineColor, p.GridLineColor)
	setColor(&t.AccentColor, p.AccentColor)

	if p.FontFamily != nil {
		t.FontFamily = *p.FontFamily
	}
	if p.HeaderFontWeight != nil {
		t.HeaderFontWeight = *p.HeaderFontWeight
	}
	setFloat(&t.FontSize, p.FontSize)
	setFloat(&t.HeaderFontSize, p.HeaderFontSize)
	setFloat(&t.CellPadding, p.CellPadding)
	setFloat(&t.BorderWidth, p.BorderWidth)
	setFloat(&t.DefaultRowHeight, p.DefaultRowHeight)
	setFloat(&t.DefaultColumnWidth, p.DefaultColumnWidth)
	setFloat(&t.HeaderHeight, p.HeaderHeight)
	setFloat(&t.GutterWidth, p.GutterWidth)
	return t
}

func setColor(dst *color.Color, v color.Color) {
	if v != nil {
		*dst = v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
