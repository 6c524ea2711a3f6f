package viewport

import (
	"math/rand"
	"testing"

	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/position"
)

func TestCalculator_ColumnStopIndex(t *testing.T) {
	ix := position.New(
		position.AxisConfig{Count: 100, DefaultSize: 40},
		position.AxisConfig{Count: 10, DefaultSize: 150},
	)
	calc := NewCalculator(ix, Options{ViewportWidth: 800, ViewportHeight: 600})

	start := calc.StartIndex(grid.Columns, 200)
	stop := calc.StopIndex(grid.Columns, start, 200)

	if start != 1 {
		t.Errorf("expected start 1, got %d", start)
	}
	if stop <= start {
		t.Errorf("stop %d must be greater than start %d", stop, start)
	}
	if stop > 9 {
		t.Errorf("stop %d must not exceed the last column", stop)
	}
	if stop != 6 {
		t.Errorf("expected stop 6, got %d", stop)
	}
}

func TestCalculator_Overscan(t *testing.T) {
	ix := position.New(
		position.AxisConfig{Count: 1000, DefaultSize: 40},
		position.AxisConfig{Count: 20, DefaultSize: 100},
	)
	calc := NewCalculator(ix, Options{
		ViewportWidth:  500,
		ViewportHeight: 400,
		RowOverscan:    3,
		ColumnOverscan: 2,
	})

	vr := calc.ComputeVisibleRange(400, 300)

	// rows 10..19 strictly visible, columns 3..7
	want := grid.VisibleRange{StartRow: 7, EndRow: 22, StartCol: 1, EndCol: 9}
	if vr != want {
		t.Errorf("expected %+v, got %+v", want, vr)
	}
}

func TestCalculator_ClampsAtEdges(t *testing.T) {
	ix := position.New(
		position.AxisConfig{Count: 5, DefaultSize: 40},
		position.AxisConfig{Count: 3, DefaultSize: 100},
	)
	calc := NewCalculator(ix, Options{ViewportWidth: 1000, ViewportHeight: 1000, RowOverscan: 4, ColumnOverscan: 4})

	vr := calc.ComputeVisibleRange(0, 0)
	want := grid.VisibleRange{StartRow: 0, EndRow: 4, StartCol: 0, EndCol: 2}
	if vr != want {
		t.Errorf("expected %+v, got %+v", want, vr)
	}
}

func TestCalculator_EmptyAxis(t *testing.T) {
	ix := position.New(
		position.AxisConfig{Count: 0, DefaultSize: 40},
		position.AxisConfig{Count: 3, DefaultSize: 100},
	)
	calc := NewCalculator(ix, DefaultOptions(300, 300))

	vr := calc.ComputeVisibleRange(0, 0)
	if vr.RowCount() != 0 {
		t.Errorf("expected no rows, got %+v", vr)
	}
	if !vr.Empty() {
		t.Error("expected empty range")
	}
}

// TestCalculator_Coverage checks that the viewport pixel span is always
// inside the pixel span of the returned range, with non-uniform sizes.
func TestCalculator_Coverage(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rowOverrides := make(map[int]float64)
	for i := 0; i < 300; i++ {
		rowOverrides[rng.Intn(5000)] = float64(5 + rng.Intn(200))
	}
	colOverrides := make(map[int]float64)
	for i := 0; i < 20; i++ {
		colOverrides[rng.Intn(60)] = float64(50 + rng.Intn(400))
	}

	ix := position.New(
		position.AxisConfig{Count: 5000, DefaultSize: 33, Overrides: rowOverrides},
		position.AxisConfig{Count: 60, DefaultSize: 150, Overrides: colOverrides},
	)

	for trial := 0; trial < 500; trial++ {
		width := float64(100 + rng.Intn(1600))
		height := float64(100 + rng.Intn(1200))
		calc := NewCalculator(ix, Options{
			ViewportWidth:  width,
			ViewportHeight: height,
			RowOverscan:    rng.Intn(4),
			ColumnOverscan: rng.Intn(4),
		})

		scrollTop := calc.MaxScroll(grid.Rows) * rng.Float64()
		scrollLeft := calc.MaxScroll(grid.Columns) * rng.Float64()
		vr := calc.ComputeVisibleRange(scrollTop, scrollLeft)

		checkCoverage(t, ix, grid.Rows, scrollTop, height, vr.StartRow, vr.EndRow)
		checkCoverage(t, ix, grid.Columns, scrollLeft, width, vr.StartCol, vr.EndCol)
	}
}

func checkCoverage(t *testing.T, ix *position.Index, axis grid.Axis, scroll, size float64, start, end int) {
	t.Helper()
	spanStart := ix.Offset(axis, start)
	last := ix.Metadata(axis, end)
	spanEnd := last.Offset + last.Size

	if spanStart > scroll {
		t.Fatalf("%s: range starts at %v after scroll %v", axis, spanStart, scroll)
	}
	extent := ix.InitialOffset(axis) + ix.TotalSize(axis)
	if want := min(scroll+size, extent); spanEnd < want {
		t.Fatalf("%s: range ends at %v before %v", axis, spanEnd, want)
	}
}

func TestCalculator_SkipsIndicesUnderFrozenEdges(t *testing.T) {
	ix := position.New(
		position.AxisConfig{Count: 100, DefaultSize: 40, InitialOffset: 36},
		position.AxisConfig{Count: 10, DefaultSize: 100, InitialOffset: 50},
	)
	calc := NewCalculator(ix, Options{ViewportWidth: 400, ViewportHeight: 400})

	// Row 9 spans canvas y -4..36 and column 0 spans x -70..30, both hidden
	// beneath the header and the gutter.
	vr := calc.ComputeVisibleRange(400, 120)
	if vr.StartRow != 10 {
		t.Errorf("expected start row 10, got %d", vr.StartRow)
	}
	if vr.StartCol != 1 {
		t.Errorf("expected start column 1, got %d", vr.StartCol)
	}
	if vr.EndRow != 19 {
		t.Errorf("expected end row 19, got %d", vr.EndRow)
	}

	// A row peeking out below the header stays in range.
	vr = calc.ComputeVisibleRange(390, 0)
	if vr.StartRow != 9 {
		t.Errorf("expected partially visible row 9, got %d", vr.StartRow)
	}
}

func TestCalculator_MaxScroll(t *testing.T) {
	ix := position.New(
		position.AxisConfig{Count: 100, DefaultSize: 40, InitialOffset: 36},
		position.AxisConfig{Count: 2, DefaultSize: 100},
	)
	calc := NewCalculator(ix, Options{ViewportWidth: 500, ViewportHeight: 436})

	if got := calc.MaxScroll(grid.Rows); got != 3600 {
		t.Errorf("expected max row scroll 3600, got %v", got)
	}
	if got := calc.MaxScroll(grid.Columns); got != 0 {
		t.Errorf("expected no horizontal scroll, got %v", got)
	}
	if got := calc.ClampScroll(grid.Rows, 99999); got != 3600 {
		t.Errorf("expected clamp to 3600, got %v", got)
	}
	if got := calc.ClampScroll(grid.Rows, -5); got != 0 {
		t.Errorf("expected clamp to 0, got %v", got)
	}
}
