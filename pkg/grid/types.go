// Package grid defines the data model shared by the grid engine packages.
package grid

// Axis selects the row or the column dimension of the grid.
type Axis int

const (
	// Rows is the vertical axis.
	Rows Axis = iota
	// Columns is the horizontal axis.
	Columns
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case Rows:
		return "rows"
	case Columns:
		return "columns"
	default:
		return "unknown"
	}
}

// Rect is a rectangle in canvas (CSS pixel) coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the trailing x coordinate.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the trailing y coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether two rectangles share any area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// VisibleRange holds the inclusive row/column bounds that must be drawn,
// already expanded by overscan. An empty axis has End < Start.
type VisibleRange struct {
	StartRow int `json:"startRow"`
	EndRow   int `json:"endRow"`
	StartCol int `json:"startCol"`
	EndCol   int `json:"endCol"`
}

// Empty reports whether either axis of the range contains no index.
func (v VisibleRange) Empty() bool {
	return v.EndRow < v.StartRow || v.EndCol < v.StartCol
}

// RowCount returns the number of rows in the range.
func (v VisibleRange) RowCount() int {
	if v.EndRow < v.StartRow {
		return 0
	}
	return v.EndRow - v.StartRow + 1
}

// ColCount returns the number of columns in the range.
func (v VisibleRange) ColCount() int {
	if v.EndCol < v.StartCol {
		return 0
	}
	return v.EndCol - v.StartCol + 1
}

// Built-in cell type tags.
const (
	CellText     = "text"
	CellNumber   = "number"
	CellCheckbox = "checkbox"
	CellRating   = "rating"
	CellSelect   = "select"
	CellDate     = "date"
	CellLink     = "link"
)

// Column describes one column as supplied by the host.
type Column struct {
	ID       string  `json:"id" yaml:"id"`
	Header   string  `json:"header" yaml:"header"`
	Size     float64 `json:"size,omitempty" yaml:"size"` // 0 means the axis default
	CellType string  `json:"cellType" yaml:"cell_type"`
}

// ColumnIDs returns the ids of the columns in order.
func ColumnIDs(columns []Column) []string {
	ids := make([]string, len(columns))
	for i, c := range columns {
		ids[i] = c.ID
	}
	return ids
}

// ColumnOverrides returns the sparse size-override map for the columns
// that carry an explicit size.
func ColumnOverrides(columns []Column) map[int]float64 {
	overrides := make(map[int]float64)
	for i, c := range columns {
		if c.Size > 0 {
			overrides[i] = c.Size
		}
	}
	return overrides
}

// ReorderColumns returns the columns arranged in the given id order.
// Ids that are unknown are ignored; columns missing from order keep their
// relative position at the end.
func ReorderColumns(columns []Column, order []string) []Column {
	byID := make(map[string]Column, len(columns))
	for _, c := range columns {
		byID[c.ID] = c
	}
	out := make([]Column, 0, len(columns))
	seen := make(map[string]bool, len(columns))
	for _, id := range order {
		if c, ok := byID[id]; ok && !seen[id] {
			out = append(out, c)
			seen[id] = true
		}
	}
	for _, c := range columns {
		if !seen[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// DataSource provides cell values by position.
type DataSource interface {
	Value(row, col int) any
}

// DataFunc adapts a function to DataSource.
type DataFunc func(row, col int) any

// Value implements DataSource.
func (f DataFunc) Value(row, col int) any {
	return f(row, col)
}
