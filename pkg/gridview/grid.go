// Package gridview is a headless host for the grid engine. It owns the
// scroll position, the viewport size and the column list, routes pointer
// events to the resize and drag controllers, and writes committed results
// back into the position index.
package gridview

import (
	"fmt"
	"slices"

	"github.com/user/gridshow/pkg/cellrender"
	"github.com/user/gridshow/pkg/draw"
	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/interaction"
	"github.com/user/gridshow/pkg/ports"
	"github.com/user/gridshow/pkg/position"
	"github.com/user/gridshow/pkg/viewport"
)

// ResizeHandleSize is the width of the grab zone at a header's trailing edge.
const ResizeHandleSize = 6

// Options configures a Grid.
type Options struct {
	Width          int
	Height         int
	DPR            float64
	Theme          draw.Theme
	RowCount       int
	RowHeights     map[int]float64
	RowOverscan    int
	ColumnOverscan int
	ResizeMode     interaction.ResizeMode
	MinColumnWidth float64
	MaxColumnWidth float64
}

// DefaultOptions returns options for a width x height viewport at DPR 1.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:          width,
		Height:         height,
		DPR:            1,
		Theme:          draw.DefaultTheme(),
		RowOverscan:    1,
		ColumnOverscan: 1,
		ResizeMode:     interaction.ResizeOnChange,
		MinColumnWidth: interaction.DefaultMinWidth,
		MaxColumnWidth: interaction.DefaultMaxWidth,
	}
}

// Grid wires the engine components together.
type Grid struct {
	opts     Options
	pipeline *draw.Pipeline
	index    *position.Index
	calc     *viewport.Calculator
	resize   *interaction.ResizeController
	drag     *interaction.DragController
	overlay  ports.OverlaySink
	logger   ports.Logger

	columns []grid.Column
	// sourceIndex maps a column id to its position in the data source.
	sourceIndex map[string]int
	data        grid.DataSource

	scrollTop  float64
	scrollLeft float64
	hover      ports.Cursor
	// resizeRestore is the column's explicit size before a live resize.
	resizeRestore float64
}

// New creates a grid. columns must be in data-source order; later reorders
// keep reading values by the original positions.
func New(factory ports.SurfaceFactory, registry *cellrender.Registry, overlay ports.OverlaySink, columns []grid.Column, data grid.DataSource, opts Options, logger ports.Logger) (*Grid, error) {
	if opts.DPR <= 0 {
		opts.DPR = 1
	}
	if opts.MinColumnWidth <= 0 {
		opts.MinColumnWidth = interaction.DefaultMinWidth
	}
	if opts.MaxColumnWidth <= 0 {
		opts.MaxColumnWidth = interaction.DefaultMaxWidth
	}

	pipeline, err := draw.New(factory, registry, opts.Width, opts.Height, opts.DPR, opts.Theme, logger)
	if err != nil {
		return nil, err
	}

	theme := opts.Theme
	columns = slices.Clone(columns)
	index := position.New(
		position.AxisConfig{
			Count:         opts.RowCount,
			DefaultSize:   theme.DefaultRowHeight,
			InitialOffset: theme.HeaderHeight,
			Overrides:     opts.RowHeights,
		},
		position.AxisConfig{
			Count:         len(columns),
			DefaultSize:   theme.DefaultColumnWidth,
			InitialOffset: theme.GutterWidth,
			Overrides:     grid.ColumnOverrides(columns),
		},
	)

	calc := viewport.NewCalculator(index, viewport.Options{
		ViewportWidth:  float64(opts.Width),
		ViewportHeight: float64(opts.Height),
		RowOverscan:    opts.RowOverscan,
		ColumnOverscan: opts.ColumnOverscan,
	})

	g := &Grid{
		opts:     opts,
		pipeline: pipeline,
		index:    index,
		calc:     calc,
		resize:   interaction.NewResizeController(overlay, opts.ResizeMode, logger),
		drag:     interaction.NewDragController(overlay, logger),
		overlay:  overlay,
		logger:   logger.WithComponent("gridview"),
		columns:  columns,
		data:     data,
	}
	g.resetSourceIndex()
	return g, nil
}

func (g *Grid) resetSourceIndex() {
	g.sourceIndex = make(map[string]int, len(g.columns))
	for i, c := range g.columns {
		g.sourceIndex[c.ID] = i
	}
}

// Index returns the position index.
func (g *Grid) Index() *position.Index { return g.index }

// Pipeline returns the draw pipeline.
func (g *Grid) Pipeline() *draw.Pipeline { return g.pipeline }

// Calculator returns the visible-range calculator.
func (g *Grid) Calculator() *viewport.Calculator { return g.calc }

// Columns returns a copy of the columns in display order.
func (g *Grid) Columns() []grid.Column {
	return slices.Clone(g.columns)
}

// ColumnOrder returns the column ids in display order.
func (g *Grid) ColumnOrder() []string {
	return grid.ColumnIDs(g.columns)
}

// Scroll returns the current scroll position.
func (g *Grid) Scroll() (top, left float64) {
	return g.scrollTop, g.scrollLeft
}

// ScrollTo moves the viewport, clamped to the content extent.
func (g *Grid) ScrollTo(top, left float64) {
	g.scrollTop = g.calc.ClampScroll(grid.Rows, top)
	g.scrollLeft = g.calc.ClampScroll(grid.Columns, left)
}

// ScrollBy moves the viewport relative to its current position.
func (g *Grid) ScrollBy(dy, dx float64) {
	g.ScrollTo(g.scrollTop+dy, g.scrollLeft+dx)
}

// SetViewport resizes the surface and the visible area.
func (g *Grid) SetViewport(width, height int) error {
	if err := g.pipeline.Resize(width, height); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	g.opts.Width, g.opts.Height = width, height
	g.calc.SetViewport(float64(width), float64(height))
	g.ScrollTo(g.scrollTop, g.scrollLeft)
	return nil
}

// SetData replaces the data source and the row axis.
func (g *Grid) SetData(data grid.DataSource, rowCount int, rowHeights map[int]float64) {
	g.data = data
	g.index.RefreshAxis(grid.Rows, rowCount, rowHeights)
	g.pipeline.MarkDirty()
	g.ScrollTo(g.scrollTop, g.scrollLeft)
}

// SetColumns replaces the column list. columns must be in data-source order.
func (g *Grid) SetColumns(columns []grid.Column) {
	g.columns = slices.Clone(columns)
	g.resetSourceIndex()
	g.refreshColumns()
}

// SetColumnOrder rearranges the columns into the given id order without
// changing which data-source column each one reads. Unknown ids are
// ignored and unlisted columns keep their relative order at the end.
func (g *Grid) SetColumnOrder(order []string) {
	g.columns = grid.ReorderColumns(g.columns, order)
	g.refreshColumns()
}

// ColumnIndex returns the display position of the column with id.
func (g *Grid) ColumnIndex(id string) (int, bool) {
	i := slices.IndexFunc(g.columns, func(c grid.Column) bool { return c.ID == id })
	return i, i >= 0
}

func (g *Grid) refreshColumns() {
	g.index.RefreshAxis(grid.Columns, len(g.columns), grid.ColumnOverrides(g.columns))
	g.pipeline.MarkDirty()
	g.ScrollTo(g.scrollTop, g.scrollLeft)
}

// SetTheme merges patch into the theme and updates the geometry that
// depends on it.
func (g *Grid) SetTheme(patch draw.ThemePatch) {
	g.pipeline.SetTheme(patch)
	t := g.pipeline.Theme()
	g.opts.Theme = t
	g.index.SetDefaultSize(grid.Rows, t.DefaultRowHeight)
	g.index.SetDefaultSize(grid.Columns, t.DefaultColumnWidth)
	g.index.SetInitialOffset(grid.Rows, t.HeaderHeight)
	g.index.SetInitialOffset(grid.Columns, t.GutterWidth)
	g.ScrollTo(g.scrollTop, g.scrollLeft)
}

// VisibleRange returns the range for the current scroll position.
func (g *Grid) VisibleRange() grid.VisibleRange {
	return g.calc.ComputeVisibleRange(g.scrollTop, g.scrollLeft)
}

// Render paints a frame at the current scroll position.
func (g *Grid) Render() draw.FrameStats {
	return g.pipeline.Render(g.index, grid.DataFunc(g.value), g.columns, g.VisibleRange(), g.scrollTop, g.scrollLeft)
}

// value reads the data source through the display-to-source column map.
func (g *Grid) value(row, col int) any {
	if g.data == nil || col < 0 || col >= len(g.columns) {
		return nil
	}
	src, ok := g.sourceIndex[g.columns[col].ID]
	if !ok {
		return nil
	}
	return g.data.Value(row, src)
}

// Value returns the value shown at a display position.
func (g *Grid) Value(row, col int) any {
	return g.value(row, col)
}
