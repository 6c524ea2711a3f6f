package gridview

import (
	"math"
	"slices"

	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/interaction"
	"github.com/user/gridshow/pkg/ports"
)

// Region identifies what lies under a canvas point.
type Region int

const (
	RegionNone Region = iota
	RegionCorner
	RegionHeader
	RegionResizeHandle
	RegionGutter
	RegionCell
)

var regionNames = [...]string{"none", "corner", "header", "resize-handle", "gutter", "cell"}

// String returns the region name.
func (r Region) String() string {
	if r < RegionNone || r > RegionCell {
		return "unknown"
	}
	return regionNames[r]
}

// Hit is the result of a hit test. Row and Col are -1 when not applicable.
type Hit struct {
	Region Region
	Row    int
	Col    int
}

// CommitKind identifies what a pointer-up committed.
type CommitKind int

const (
	CommitNone CommitKind = iota
	CommitResize
	CommitReorder
)

// Commit is the outcome of a finished gesture. Order is set for reorders
// and Resize for resizes.
type Commit struct {
	Kind   CommitKind
	Resize interaction.ResizeResult
	Order  []string
}

// ColumnAt returns the display column under canvas x.
func (g *Grid) ColumnAt(x float64) (int, bool) {
	return g.indexAt(grid.Columns, x, g.opts.Theme.GutterWidth, float64(g.opts.Width), g.scrollLeft)
}

// RowAt returns the row under canvas y.
func (g *Grid) RowAt(y float64) (int, bool) {
	return g.indexAt(grid.Rows, y, g.opts.Theme.HeaderHeight, float64(g.opts.Height), g.scrollTop)
}

func (g *Grid) indexAt(axis grid.Axis, p, lead, extent, scroll float64) (int, bool) {
	if p < lead || p >= extent || g.index.Count(axis) == 0 {
		return -1, false
	}
	content := p + scroll
	if content >= g.index.InitialOffset(axis)+g.index.TotalSize(axis) {
		return -1, false
	}
	return g.index.FindIndexAtOffset(axis, content), true
}

// HitTest classifies the canvas point (x, y).
func (g *Grid) HitTest(x, y float64) Hit {
	t := g.opts.Theme
	miss := Hit{Region: RegionNone, Row: -1, Col: -1}
	if x < 0 || y < 0 || x >= float64(g.opts.Width) || y >= float64(g.opts.Height) {
		return miss
	}

	if y < t.HeaderHeight {
		if x < t.GutterWidth {
			return Hit{Region: RegionCorner, Row: -1, Col: -1}
		}
		col, ok := g.ColumnAt(x)
		if !ok {
			return miss
		}
		m := g.index.Metadata(grid.Columns, col)
		if m.Offset+m.Size-g.scrollLeft-x <= ResizeHandleSize {
			return Hit{Region: RegionResizeHandle, Row: -1, Col: col}
		}
		return Hit{Region: RegionHeader, Row: -1, Col: col}
	}

	row, ok := g.RowAt(y)
	if !ok {
		return miss
	}
	if x < t.GutterWidth {
		return Hit{Region: RegionGutter, Row: row, Col: -1}
	}
	col, ok := g.ColumnAt(x)
	if !ok {
		return miss
	}
	return Hit{Region: RegionCell, Row: row, Col: col}
}

// PointerDown starts a resize on a header's trailing edge or a drag
// elsewhere in the header.
func (g *Grid) PointerDown(x, y float64) Hit {
	hit := g.HitTest(x, y)
	switch hit.Region {
	case RegionResizeHandle:
		col := g.columns[hit.Col]
		g.resizeRestore = col.Size
		g.resize.StartResize(hit.Col, col.ID, x, g.index.Size(grid.Columns, hit.Col),
			interaction.WithWidthBounds(g.opts.MinColumnWidth, g.opts.MaxColumnWidth))
	case RegionHeader:
		m := g.index.Metadata(grid.Columns, hit.Col)
		g.drag.StartDrag(hit.Col, g.columns[hit.Col].ID, interaction.DragSource{
			Label:           g.columns[hit.Col].Header,
			Rect:            grid.Rect{X: m.Offset - g.scrollLeft, Y: 0, Width: m.Size, Height: g.opts.Theme.HeaderHeight},
			IndicatorHeight: float64(g.opts.Height),
		}, x, y)
	}
	return hit
}

// PointerMove updates the active gesture, or the hover cursor when idle.
func (g *Grid) PointerMove(x, y float64) {
	switch {
	case g.resize.Active():
		w, _ := g.resize.UpdateResize(x)
		if g.resize.Mode() == interaction.ResizeOnChange {
			s, _ := g.resize.Session()
			g.applyWidth(s.ColumnIndex, w)
		}
	case g.drag.Active():
		target, px := g.dropBoundary(x)
		g.drag.UpdateDrag(target, x, y, px)
	default:
		cursor := ports.CursorDefault
		if g.HitTest(x, y).Region == RegionResizeHandle {
			cursor = ports.CursorColumnResize
		}
		if cursor != g.hover {
			g.overlay.SetCursor(cursor)
			g.hover = cursor
		}
	}
}

// PointerUp commits the active gesture into the columns and the index.
func (g *Grid) PointerUp(x, y float64) Commit {
	switch {
	case g.resize.Active():
		g.resize.UpdateResize(x)
		res, _ := g.resize.EndResize()
		g.hover = ports.CursorDefault
		g.applyWidth(res.ColumnIndex, res.NewWidth)
		g.logger.Debug("Column %s resized to %.0fpx", res.ColumnID, res.NewWidth)
		return Commit{Kind: CommitResize, Resize: res}

	case g.drag.Active():
		target, px := g.dropBoundary(x)
		g.drag.UpdateDrag(target, x, y, px)
		before := g.ColumnOrder()
		order := g.drag.EndDrag(before)
		g.hover = ports.CursorDefault
		if !slices.Equal(before, order) {
			g.columns = grid.ReorderColumns(g.columns, order)
			g.refreshColumns()
			g.logger.Debug("Columns reordered: %v", order)
		}
		return Commit{Kind: CommitReorder, Order: order}
	}
	return Commit{Kind: CommitNone}
}

// PointerLeave cancels any active gesture. A live resize is reverted.
func (g *Grid) PointerLeave() {
	if s, ok := g.resize.Session(); ok {
		g.resize.Cancel()
		if g.resize.Mode() == interaction.ResizeOnChange {
			g.restoreWidth(s.ColumnIndex)
		}
	}
	g.drag.Cancel()
	g.hover = ports.CursorDefault
}

// dropBoundary returns the insertion boundary nearest canvas x and its
// canvas position.
func (g *Grid) dropBoundary(x float64) (int, float64) {
	n := g.index.Count(grid.Columns)
	start := g.index.InitialOffset(grid.Columns)
	end := start + g.index.TotalSize(grid.Columns)
	content := x + g.scrollLeft

	switch {
	case n == 0 || content <= start:
		return 0, start - g.scrollLeft
	case content >= end:
		return n, end - g.scrollLeft
	}

	col := g.index.FindIndexAtOffset(grid.Columns, content)
	m := g.index.Metadata(grid.Columns, col)
	if content > m.Offset+m.Size/2 {
		return col + 1, m.Offset + m.Size - g.scrollLeft
	}
	return col, m.Offset - g.scrollLeft
}

func (g *Grid) applyWidth(col int, w float64) {
	if col < 0 || col >= len(g.columns) {
		return
	}
	g.index.SetSize(grid.Columns, col, w)
	g.columns[col].Size = w
	g.pipeline.MarkDirty()
	g.ScrollTo(g.scrollTop, g.scrollLeft)
}

func (g *Grid) restoreWidth(col int) {
	if col < 0 || col >= len(g.columns) {
		return
	}
	if g.resizeRestore > 0 {
		g.index.SetSize(grid.Columns, col, g.resizeRestore)
	} else {
		g.index.ClearSize(grid.Columns, col)
	}
	g.columns[col].Size = g.resizeRestore
	g.pipeline.MarkDirty()
	g.ScrollTo(g.scrollTop, g.scrollLeft)
}

// AutoSizeColumn fits a column to its header and the values of the rows in
// the current visible range, within the resize bounds.
func (g *Grid) AutoSizeColumn(col int) (float64, bool) {
	if col < 0 || col >= len(g.columns) {
		return 0, false
	}
	t := g.pipeline.Theme()
	surface := g.pipeline.Surface()
	registry := g.pipeline.Registry()
	style := t.CellStyle()

	cellType := g.columns[col].CellType
	if cellType == "" {
		cellType = grid.CellText
	}

	hw, _ := surface.MeasureText(g.columns[col].Header, t.HeaderFont())
	w := hw + 2*t.CellPadding

	vr := g.VisibleRange()
	for r := vr.StartRow; r <= vr.EndRow; r++ {
		if size, ok := registry.Measure(cellType, surface, g.value(r, col), style); ok {
			w = math.Max(w, size.Width)
		}
	}
	w = math.Ceil(w + t.BorderWidth)
	w = math.Min(math.Max(w, g.opts.MinColumnWidth), g.opts.MaxColumnWidth)

	g.applyWidth(col, w)
	return w, true
}
