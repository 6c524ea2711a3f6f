package draw

import (
	"image"
	"image/color"
	"testing"

	"github.com/user/gridshow/pkg/adapters/ggcanvas"
	"github.com/user/gridshow/pkg/adapters/logger"
	"github.com/user/gridshow/pkg/cellrender"
	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/position"
	"github.com/user/gridshow/pkg/viewport"
)

var swatchRed = color.RGBA{R: 0xff, A: 0xff}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// TestRender_GGSurface paints through the gg-backed surface and reads the
// resulting pixels, so clip handling is exercised on a real bitmap.
func TestRender_GGSurface(t *testing.T) {
	columns := []grid.Column{
		{ID: "a", Header: "A", CellType: grid.CellText},
		{ID: "b", Header: "B", CellType: "swatch"},
	}
	cellBackground := color.RGBA{R: 0xee, G: 0xf2, B: 0xff, A: 0xff}

	for _, dpr := range []float64{1, 2} {
		registry := cellrender.NewRegistry(logger.NewNoop())
		registry.Register("swatch", cellrender.RendererFunc(func(ctx cellrender.Context) {
			ctx.Canvas.FillRect(ctx.Rect.X, ctx.Rect.Y, ctx.Rect.Width, ctx.Rect.Height, swatchRed)
		}))

		theme := DefaultTheme()
		theme.CellBackground = cellBackground

		p, err := New(ggcanvas.New(), registry, 300, 200, dpr, theme, logger.NewNoop())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		index := position.New(
			position.AxisConfig{Count: 50, DefaultSize: 30, InitialOffset: theme.HeaderHeight},
			position.AxisConfig{Count: len(columns), DefaultSize: 100, InitialOffset: theme.GutterWidth},
		)
		calc := viewport.NewCalculator(index, viewport.DefaultOptions(300, 200))

		// The second frame is scroll-only and must still paint over the body.
		for frame, scrollTop := range []float64{0, 45} {
			vr := calc.ComputeVisibleRange(scrollTop, 0)
			p.Render(index, nil, columns, vr, scrollTop, 0)
			img := p.Image()

			at := func(x, y float64) color.RGBA {
				return rgba(img.At(int(x*dpr), int(y*dpr)))
			}

			tests := []struct {
				name string
				x, y float64
				want color.RGBA
			}{
				{"header band", 60, 5, rgba(theme.HeaderBackground)},
				{"text cell background", 60, 55, cellBackground},
				{"custom renderer", 150, 55, swatchRed},
				{"past last column", 250, 100, rgba(theme.Background)},
			}
			for _, tt := range tests {
				if got := at(tt.x, tt.y); got != tt.want {
					t.Errorf("dpr %g frame %d %s at (%g,%g): got %v, want %v",
						dpr, frame, tt.name, tt.x, tt.y, got, tt.want)
				}
			}
			if b := img.Bounds(); b != image.Rect(0, 0, int(300*dpr), int(200*dpr)) {
				t.Errorf("dpr %g: unexpected bounds %v", dpr, b)
			}
		}
	}
}
