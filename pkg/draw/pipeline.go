// Package draw paints the grid onto a 2D surface.
//
// Every Render call runs the same sequence: clear when dirty, grid lines,
// header band, then cells. Rows and columns come from a position.Index
// whose row initial offset is the header height and whose column initial
// offset is the gutter width, so canvas coordinates are offset - scroll.
package draw

import (
	"errors"
	"fmt"
	"image"
	"strconv"

	"github.com/user/gridshow/pkg/cellrender"
	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/position"
	"github.com/user/gridshow/pkg/ports"
)

// ErrContextUnavailable is returned when no 2D drawing context can be
// obtained. It is the only fatal error of the engine.
var ErrContextUnavailable = errors.New("2d drawing context unavailable")

// FrameStats summarizes one Render call.
type FrameStats struct {
	Cleared      bool              `json:"cleared"`
	Range        grid.VisibleRange `json:"range"`
	HeaderCells  int               `json:"headerCells"`
	CellsDrawn   int               `json:"cellsDrawn"`
	CellsSkipped int               `json:"cellsSkipped"`
	GridLines    int               `json:"gridLines"`
}

// Pipeline owns the drawing surface and paints frames onto it.
type Pipeline struct {
	surface  ports.Surface
	registry *cellrender.Registry
	theme    Theme
	dirty    bool
	logger   ports.Logger
}

// New acquires a surface of width x height CSS pixels at dpr resolution.
func New(factory ports.SurfaceFactory, registry *cellrender.Registry, width, height int, dpr float64, theme Theme, logger ports.Logger) (*Pipeline, error) {
	if factory == nil {
		return nil, fmt.Errorf("create pipeline: %w", ErrContextUnavailable)
	}
	surface, err := factory.NewSurface(width, height, dpr)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w: %w", ErrContextUnavailable, err)
	}
	if surface == nil {
		return nil, fmt.Errorf("create pipeline: %w", ErrContextUnavailable)
	}

	return &Pipeline{
		surface:  surface,
		registry: registry,
		theme:    theme,
		dirty:    true,
		logger:   logger.WithComponent("draw"),
	}, nil
}

// MarkDirty forces a full clear on the next Render.
func (p *Pipeline) MarkDirty() {
	p.dirty = true
}

// Dirty reports whether the next Render will clear the surface.
func (p *Pipeline) Dirty() bool {
	return p.dirty
}

// SetTheme merges patch into the current theme and marks the surface dirty.
func (p *Pipeline) SetTheme(patch ThemePatch) {
	p.theme = patch.Apply(p.theme)
	p.dirty = true
}

// Theme returns the current theme.
func (p *Pipeline) Theme() Theme {
	return p.theme
}

// Resize reallocates the backing bitmap at the surface's DPR.
func (p *Pipeline) Resize(width, height int) error {
	if err := p.surface.Resize(width, height, p.surface.DPR()); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	p.dirty = true
	return nil
}

// Size returns the logical surface size.
func (p *Pipeline) Size() (width, height int) {
	return p.surface.Width(), p.surface.Height()
}

// Surface returns the drawing surface.
func (p *Pipeline) Surface() ports.Surface {
	return p.surface
}

// Registry returns the renderer registry used for cells.
func (p *Pipeline) Registry() *cellrender.Registry {
	return p.registry
}

// Image returns the current frame.
func (p *Pipeline) Image() image.Image {
	return p.surface.Image()
}

// Render paints one frame. data may be nil, in which case cells receive nil
// values. Columns beyond len(columns) are drawn without a header label and
// with the text renderer.
func (p *Pipeline) Render(index *position.Index, data grid.DataSource, columns []grid.Column, vr grid.VisibleRange, scrollTop, scrollLeft float64) FrameStats {
	stats := FrameStats{Range: vr}
	f := p.frame(index, scrollTop, scrollLeft)

	if p.dirty {
		p.surface.Clear(p.theme.Background)
		p.dirty = false
		stats.Cleared = true
	}

	p.surface.Save()
	p.surface.ClipRect(f.bodyX, f.bodyY, f.width-f.bodyX, f.height-f.bodyY)
	p.fillEmptyArea(f)
	stats.GridLines = p.drawGridLines(index, vr, f)
	p.surface.Restore()

	stats.HeaderCells = p.drawHeader(index, columns, vr, f)

	p.surface.Save()
	p.surface.ClipRect(f.bodyX, f.bodyY, f.width-f.bodyX, f.height-f.bodyY)
	stats.CellsDrawn, stats.CellsSkipped = p.drawCells(index, data, columns, vr, f)
	p.surface.Restore()

	if p.theme.GutterWidth > 0 {
		p.drawGutter(index, vr, f)
	}

	p.logger.Debug("Frame rendered: rows %d-%d, columns %d-%d, %d cells drawn, %d skipped",
		vr.StartRow, vr.EndRow, vr.StartCol, vr.EndCol, stats.CellsDrawn, stats.CellsSkipped)
	return stats
}

// frame holds the per-render geometry in canvas coordinates.
type frame struct {
	width, height float64
	bodyX, bodyY  float64
	scrollTop     float64
	scrollLeft    float64
	contentRight  float64
	contentBottom float64
}

func (p *Pipeline) frame(index *position.Index, scrollTop, scrollLeft float64) frame {
	return frame{
		width:         float64(p.surface.Width()),
		height:        float64(p.surface.Height()),
		bodyX:         p.theme.GutterWidth,
		bodyY:         p.theme.HeaderHeight,
		scrollTop:     scrollTop,
		scrollLeft:    scrollLeft,
		contentRight:  index.InitialOffset(grid.Columns) + index.TotalSize(grid.Columns) - scrollLeft,
		contentBottom: index.InitialOffset(grid.Rows) + index.TotalSize(grid.Rows) - scrollTop,
	}
}

// fillEmptyArea paints the body region past the last row and column so a
// shrinking grid leaves nothing behind.
func (p *Pipeline) fillEmptyArea(f frame) {
	if f.contentRight < f.width {
		x := max(f.contentRight, f.bodyX)
		p.surface.FillRect(x, f.bodyY, f.width-x, f.height-f.bodyY, p.theme.Background)
	}
	if f.contentBottom < f.height {
		y := max(f.contentBottom, f.bodyY)
		p.surface.FillRect(f.bodyX, y, f.width-f.bodyX, f.height-y, p.theme.Background)
	}
}

func (p *Pipeline) drawGridLines(index *position.Index, vr grid.VisibleRange, f frame) int {
	bw := p.theme.BorderWidth
	if bw <= 0 {
		return 0
	}
	lines := 0
	right := min(f.contentRight, f.width)
	bottom := min(f.contentBottom, f.height)

	for r := vr.StartRow; r <= vr.EndRow; r++ {
		m := index.Metadata(grid.Rows, r)
		y := m.Offset + m.Size - f.scrollTop - bw/2
		if y < f.bodyY || y > f.height {
			continue
		}
		p.surface.DrawLine(f.bodyX, y, right, y, p.theme.GridLineColor, bw)
		lines++
	}
	for c := vr.StartCol; c <= vr.EndCol; c++ {
		m := index.Metadata(grid.Columns, c)
		x := m.Offset + m.Size - f.scrollLeft - bw/2
		if x < f.bodyX || x > f.width {
			continue
		}
		p.surface.DrawLine(x, f.bodyY, x, bottom, p.theme.GridLineColor, bw)
		lines++
	}
	return lines
}

// drawHeader paints the header band. It is fixed vertically and follows
// scrollLeft horizontally.
func (p *Pipeline) drawHeader(index *position.Index, columns []grid.Column, vr grid.VisibleRange, f frame) int {
	h := p.theme.HeaderHeight
	if h <= 0 {
		return 0
	}
	bw := p.theme.BorderWidth
	pad := p.theme.CellPadding
	font := p.theme.HeaderFont()

	p.surface.Save()
	p.surface.ClipRect(f.bodyX, 0, f.width-f.bodyX, h)
	p.surface.FillRect(f.bodyX, 0, f.width-f.bodyX, h, p.theme.HeaderBackground)

	drawn := 0
	for c := vr.StartCol; c <= vr.EndCol; c++ {
		m := index.Metadata(grid.Columns, c)
		x := m.Offset - f.scrollLeft
		if x+m.Size <= f.bodyX || x >= f.width {
			continue
		}
		if c < len(columns) {
			label := cellrender.Ellipsize(p.surface, columns[c].Header, m.Size-2*pad, font)
			if label != "" {
				p.surface.FillText(label, x+pad, h/2, ports.TextStyle{
					Font:  font,
					Color: p.theme.HeaderTextColor,
					Align: ports.AlignLeft,
				})
			}
		}
		if bw > 0 {
			sep := x + m.Size - bw/2
			p.surface.DrawLine(sep, 0, sep, h, p.theme.GridLineColor, bw)
		}
		drawn++
	}

	if bw > 0 {
		p.surface.DrawLine(f.bodyX, h-bw/2, f.width, h-bw/2, p.theme.GridLineColor, bw)
	}
	p.surface.Restore()
	return drawn
}

func (p *Pipeline) drawCells(index *position.Index, data grid.DataSource, columns []grid.Column, vr grid.VisibleRange, f frame) (drawn, skipped int) {
	bw := max(p.theme.BorderWidth, 0)
	style := p.theme.CellStyle()
	dpr := p.surface.DPR()

	for r := vr.StartRow; r <= vr.EndRow; r++ {
		rm := index.Metadata(grid.Rows, r)
		y := rm.Offset - f.scrollTop
		if y+rm.Size <= f.bodyY || y >= f.height {
			skipped += vr.ColCount()
			continue
		}

		for c := vr.StartCol; c <= vr.EndCol; c++ {
			cm := index.Metadata(grid.Columns, c)
			x := cm.Offset - f.scrollLeft
			if x+cm.Size <= f.bodyX || x >= f.width {
				skipped++
				continue
			}

			rect := grid.Rect{X: x, Y: y, Width: max(cm.Size-bw, 0), Height: max(rm.Size-bw, 0)}
			p.surface.FillRect(rect.X, rect.Y, rect.Width, rect.Height, p.theme.CellBackground)

			cellType := grid.CellText
			if c < len(columns) && columns[c].CellType != "" {
				cellType = columns[c].CellType
			}
			var value any
			if data != nil {
				value = data.Value(r, c)
			}

			p.registry.Get(cellType).Draw(cellrender.Context{
				Canvas: p.surface,
				Rect:   rect,
				Value:  value,
				Style:  style,
				DPR:    dpr,
			})
			drawn++
		}
	}
	return drawn, skipped
}

// drawGutter paints the frozen row-number column and the corner above it.
func (p *Pipeline) drawGutter(index *position.Index, vr grid.VisibleRange, f frame) {
	gw := p.theme.GutterWidth
	bw := p.theme.BorderWidth
	font := ports.FontSpec{Family: p.theme.FontFamily, Size: p.theme.FontSize}

	p.surface.FillRect(0, 0, gw, f.bodyY, p.theme.HeaderBackground)

	p.surface.Save()
	p.surface.ClipRect(0, f.bodyY, gw, f.height-f.bodyY)
	p.surface.FillRect(0, f.bodyY, gw, f.height-f.bodyY, p.theme.HeaderBackground)
	for r := vr.StartRow; r <= vr.EndRow; r++ {
		m := index.Metadata(grid.Rows, r)
		y := m.Offset - f.scrollTop
		if y+m.Size <= f.bodyY || y >= f.height {
			continue
		}
		p.surface.FillText(strconv.Itoa(r+1), gw/2, y+m.Size/2, ports.TextStyle{
			Font:  font,
			Color: p.theme.HeaderTextColor,
			Align: ports.AlignCenter,
		})
		if bw > 0 {
			line := y + m.Size - bw/2
			p.surface.DrawLine(0, line, gw, line, p.theme.GridLineColor, bw)
		}
	}
	p.surface.Restore()

	if bw > 0 {
		p.surface.DrawLine(gw-bw/2, 0, gw-bw/2, f.height, p.theme.GridLineColor, bw)
	}
}
