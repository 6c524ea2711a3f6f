// Package position maps row and column indices to pixel offsets and sizes.
//
// Offsets are computed lazily and cumulatively: a query for an index beyond
// the last measured one walks forward from the high-water mark, caching
// every intermediate result. Sequential access while scrolling is therefore
// amortized O(1); random access costs O(n) only on first touch.
package position

import (
	"github.com/user/gridshow/pkg/grid"
)

// CellMetadata is the memoized layout fact for one row or column.
type CellMetadata struct {
	Offset float64 `json:"offset"`
	Size   float64 `json:"size"`
}

// AxisConfig configures one axis of the index.
type AxisConfig struct {
	Count         int
	DefaultSize   float64
	InitialOffset float64         // leading space reserved for frozen headers or gutters
	Overrides     map[int]float64 // sparse index -> size
}

// axisState holds the size configuration and measurement cache of one axis.
// For every i <= lastMeasured, cache[i] is valid and
// cache[i].Offset+cache[i].Size == cache[i+1].Offset.
type axisState struct {
	count         int
	defaultSize   float64
	initialOffset float64
	overrides     map[int]float64
	cache         []CellMetadata
	lastMeasured  int
}

func newAxisState(cfg AxisConfig) *axisState {
	a := &axisState{
		defaultSize:   cfg.DefaultSize,
		initialOffset: cfg.InitialOffset,
	}
	a.refresh(cfg.Count, cfg.Overrides)
	return a
}

// refresh replaces count and overrides and drops every measurement.
func (a *axisState) refresh(count int, overrides map[int]float64) {
	if count < 0 {
		count = 0
	}
	a.count = count
	a.overrides = make(map[int]float64, len(overrides))
	for i, size := range overrides {
		if i >= 0 && size >= 0 {
			a.overrides[i] = size
		}
	}
	a.invalidate()
}

func (a *axisState) invalidate() {
	a.cache = a.cache[:0]
	a.lastMeasured = -1
}

// truncate drops measurements from index i onwards.
func (a *axisState) truncate(i int) {
	if i > a.lastMeasured {
		return
	}
	a.lastMeasured = i - 1
	a.cache = a.cache[:i]
}

func (a *axisState) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > a.count-1 {
		return a.count - 1
	}
	return i
}

func (a *axisState) size(i int) float64 {
	if s, ok := a.overrides[i]; ok {
		return s
	}
	return a.defaultSize
}

// metadata returns the layout of index i, measuring forward from the
// high-water mark when needed. i must already be clamped.
func (a *axisState) metadata(i int) CellMetadata {
	if i <= a.lastMeasured {
		return a.cache[i]
	}

	offset := a.initialOffset
	if a.lastMeasured >= 0 {
		last := a.cache[a.lastMeasured]
		offset = last.Offset + last.Size
	}

	for j := a.lastMeasured + 1; j <= i; j++ {
		size := a.size(j)
		a.cache = append(a.cache, CellMetadata{Offset: offset, Size: size})
		offset += size
	}
	a.lastMeasured = i
	return a.cache[i]
}

// findIndex returns the greatest index whose offset is <= target.
func (a *axisState) findIndex(target float64) int {
	if a.count == 0 || target <= a.initialOffset {
		return 0
	}

	if a.lastMeasured >= 0 && a.cache[a.lastMeasured].Offset > target {
		return a.binarySearch(0, a.lastMeasured, target)
	}
	return a.exponentialSearch(target)
}

// exponentialSearch probes forward from the high-water mark in doubling
// strides, forcing measurement, until it brackets target.
func (a *axisState) exponentialSearch(target float64) int {
	low := a.lastMeasured
	if low < 0 {
		low = 0
	}
	high := low
	step := 1

	for a.metadata(high).Offset <= target {
		low = high
		if high == a.count-1 {
			return high
		}
		high += step
		if high > a.count-1 {
			high = a.count - 1
		}
		step *= 2
	}
	return a.binarySearch(low, high, target)
}

// binarySearch looks for the last index in [low, high] whose offset is
// <= target using measured offsets only. Offsets on a boundary belong to
// the cell that starts there.
func (a *axisState) binarySearch(low, high int, target float64) int {
	found := low
	for low <= high {
		mid := low + (high-low)/2
		off := a.cache[mid].Offset
		if off <= target {
			found = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return found
}

// totalSize returns the extent of all cells, excluding initialOffset,
// without measuring the unmeasured tail.
func (a *axisState) totalSize() float64 {
	if a.count == 0 {
		return 0
	}
	end := a.initialOffset
	if a.lastMeasured >= 0 {
		last := a.cache[a.lastMeasured]
		end = last.Offset + last.Size
	}
	remaining := a.count - 1 - a.lastMeasured
	end += float64(remaining) * a.defaultSize
	for i, s := range a.overrides {
		if i > a.lastMeasured && i < a.count {
			end += s - a.defaultSize
		}
	}
	return end - a.initialOffset
}

// Index is the coordinate manager for both axes of a grid.
// It is not safe for concurrent use.
type Index struct {
	axes [2]*axisState
}

// New creates an Index with the given row and column configuration.
func New(rows, columns AxisConfig) *Index {
	return &Index{
		axes: [2]*axisState{
			grid.Rows:    newAxisState(rows),
			grid.Columns: newAxisState(columns),
		},
	}
}

func (ix *Index) axis(axis grid.Axis) *axisState {
	if axis == grid.Columns {
		return ix.axes[grid.Columns]
	}
	return ix.axes[grid.Rows]
}

// Count returns the number of indices on the axis.
func (ix *Index) Count(axis grid.Axis) int {
	return ix.axis(axis).count
}

// InitialOffset returns the fixed leading offset of the axis.
func (ix *Index) InitialOffset(axis grid.Axis) float64 {
	return ix.axis(axis).initialOffset
}

// DefaultSize returns the axis default size.
func (ix *Index) DefaultSize(axis grid.Axis) float64 {
	return ix.axis(axis).defaultSize
}

// LastMeasured returns the high-water mark of the axis cache, -1 when
// nothing has been measured.
func (ix *Index) LastMeasured(axis grid.Axis) int {
	return ix.axis(axis).lastMeasured
}

// Size returns the size of index i: the override if present, else the
// axis default. Out-of-range indices clamp; an empty axis reports 0.
func (ix *Index) Size(axis grid.Axis, i int) float64 {
	a := ix.axis(axis)
	if a.count == 0 {
		return 0
	}
	return a.size(a.clamp(i))
}

// Offset returns the leading pixel offset of index i.
// Offset(axis, 0) equals the axis initial offset.
func (ix *Index) Offset(axis grid.Axis, i int) float64 {
	a := ix.axis(axis)
	if a.count == 0 {
		return a.initialOffset
	}
	return a.metadata(a.clamp(i)).Offset
}

// Metadata returns offset and size of index i.
func (ix *Index) Metadata(axis grid.Axis, i int) CellMetadata {
	a := ix.axis(axis)
	if a.count == 0 {
		return CellMetadata{Offset: a.initialOffset}
	}
	return a.metadata(a.clamp(i))
}

// FindIndexAtOffset returns the greatest index whose offset is <= px,
// clamped to [0, count-1].
func (ix *Index) FindIndexAtOffset(axis grid.Axis, px float64) int {
	return ix.axis(axis).findIndex(px)
}

// TotalSize returns the summed size of every index on the axis.
func (ix *Index) TotalSize(axis grid.Axis) float64 {
	return ix.axis(axis).totalSize()
}

// RefreshAxis replaces the count and override map of an axis and discards
// every cached measurement.
func (ix *Index) RefreshAxis(axis grid.Axis, count int, overrides map[int]float64) {
	ix.axis(axis).refresh(count, overrides)
}

// SetSize writes a size override for index i. Overrides beyond the high-water
// mark are free; earlier ones force re-measurement from i onwards.
func (ix *Index) SetSize(axis grid.Axis, i int, size float64) {
	a := ix.axis(axis)
	if i < 0 || i >= a.count || size < 0 {
		return
	}
	if cur, ok := a.overrides[i]; ok && cur == size {
		return
	}
	a.overrides[i] = size
	a.truncate(i)
}

// ClearSize removes the override of index i.
func (ix *Index) ClearSize(axis grid.Axis, i int) {
	a := ix.axis(axis)
	if _, ok := a.overrides[i]; !ok {
		return
	}
	delete(a.overrides, i)
	a.truncate(i)
}

// SetDefaultSize changes the axis default size and invalidates the axis.
func (ix *Index) SetDefaultSize(axis grid.Axis, size float64) {
	a := ix.axis(axis)
	if a.defaultSize == size {
		return
	}
	a.defaultSize = size
	a.invalidate()
}

// SetInitialOffset changes the leading offset and invalidates the axis.
func (ix *Index) SetInitialOffset(axis grid.Axis, offset float64) {
	a := ix.axis(axis)
	if a.initialOffset == offset {
		return
	}
	a.initialOffset = offset
	a.invalidate()
}

// Overrides returns a copy of the axis override map.
func (ix *Index) Overrides(axis grid.Axis) map[int]float64 {
	a := ix.axis(axis)
	out := make(map[int]float64, len(a.overrides))
	for i, s := range a.overrides {
		out[i] = s
	}
	return out
}
