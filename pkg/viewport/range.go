// Package viewport turns a scroll position into the padded index range that
// must be drawn.
package viewport

import (
	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/position"
)

// Options configures a Calculator.
type Options struct {
	ViewportWidth  float64
	ViewportHeight float64
	RowOverscan    int
	ColumnOverscan int
}

// DefaultOptions returns options with the usual overscan of one row and one
// column on each side.
func DefaultOptions(width, height float64) Options {
	return Options{
		ViewportWidth:  width,
		ViewportHeight: height,
		RowOverscan:    1,
		ColumnOverscan: 1,
	}
}

// Calculator computes visible ranges over a position index.
// Apart from warming the index cache it has no side effects.
type Calculator struct {
	index *position.Index
	opts  Options
}

// NewCalculator creates a Calculator bound to index.
func NewCalculator(index *position.Index, opts Options) *Calculator {
	if opts.RowOverscan < 0 {
		opts.RowOverscan = 0
	}
	if opts.ColumnOverscan < 0 {
		opts.ColumnOverscan = 0
	}
	return &Calculator{index: index, opts: opts}
}

// Options returns the current options.
func (c *Calculator) Options() Options {
	return c.opts
}

// SetViewport updates the viewport size.
func (c *Calculator) SetViewport(width, height float64) {
	c.opts.ViewportWidth = width
	c.opts.ViewportHeight = height
}

// SetOverscan updates the overscan counts. Negative values become 0.
func (c *Calculator) SetOverscan(rows, columns int) {
	c.opts.RowOverscan = max(rows, 0)
	c.opts.ColumnOverscan = max(columns, 0)
}

// ComputeVisibleRange returns the rows and columns covering the viewport at
// the given scroll position, padded by the overscan counts.
func (c *Calculator) ComputeVisibleRange(scrollTop, scrollLeft float64) grid.VisibleRange {
	startRow, endRow := c.axisRange(grid.Rows, scrollTop, c.opts.ViewportHeight, c.opts.RowOverscan)
	startCol, endCol := c.axisRange(grid.Columns, scrollLeft, c.opts.ViewportWidth, c.opts.ColumnOverscan)
	return grid.VisibleRange{
		StartRow: startRow,
		EndRow:   endRow,
		StartCol: startCol,
		EndCol:   endCol,
	}
}

func (c *Calculator) axisRange(axis grid.Axis, scroll, viewportSize float64, overscan int) (int, int) {
	count := c.index.Count(axis)
	if count == 0 {
		return 0, -1
	}

	// The frozen header and gutter cover the first InitialOffset pixels of
	// the viewport, so indices hidden entirely beneath them are skipped.
	start := c.StartIndex(axis, scroll+c.index.InitialOffset(axis))
	stop := c.StopIndex(axis, start, scroll)

	return max(start-overscan, 0), min(stop+overscan, count-1)
}

// StartIndex returns the first index intersecting the scroll offset.
func (c *Calculator) StartIndex(axis grid.Axis, scroll float64) int {
	return c.index.FindIndexAtOffset(axis, scroll)
}

// StopIndex walks forward from start until the trailing edge reaches the end
// of the viewport and returns the last index needed.
func (c *Calculator) StopIndex(axis grid.Axis, start int, scroll float64) int {
	count := c.index.Count(axis)
	if count == 0 {
		return -1
	}

	limit := scroll + c.viewportSize(axis)
	stop := start
	m := c.index.Metadata(axis, stop)
	end := m.Offset + m.Size
	for end < limit && stop < count-1 {
		stop++
		end += c.index.Size(axis, stop)
	}
	return stop
}

// MaxScroll returns the largest useful scroll offset on the axis: the
// content extent (including the initial offset) minus the viewport size.
func (c *Calculator) MaxScroll(axis grid.Axis) float64 {
	extent := c.index.InitialOffset(axis) + c.index.TotalSize(axis)
	return max(extent-c.viewportSize(axis), 0)
}

// ClampScroll limits a scroll offset to [0, MaxScroll].
func (c *Calculator) ClampScroll(axis grid.Axis, scroll float64) float64 {
	return min(max(scroll, 0), c.MaxScroll(axis))
}

func (c *Calculator) viewportSize(axis grid.Axis) float64 {
	if axis == grid.Columns {
		return c.opts.ViewportWidth
	}
	return c.opts.ViewportHeight
}
