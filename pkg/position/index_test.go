package position

import (
	"math/rand"
	"testing"

	"github.com/user/gridshow/pkg/grid"
)

func newRowIndex(count int, def float64, overrides map[int]float64) *Index {
	return New(
		AxisConfig{Count: count, DefaultSize: def, Overrides: overrides},
		AxisConfig{Count: 10, DefaultSize: 150},
	)
}

// TestIndex_OffsetFixture checks the 1,000 row fixture with two leading
// overrides.
func TestIndex_OffsetFixture(t *testing.T) {
	ix := newRowIndex(1000, 40, map[int]float64{0: 60, 1: 80})

	expected := []float64{0, 60, 140, 180}
	for i, want := range expected {
		if got := ix.Offset(grid.Rows, i); got != want {
			t.Errorf("Offset(%d): expected %v, got %v", i, want, got)
		}
	}

	// Querying index 3 directly on a fresh index must agree.
	fresh := newRowIndex(1000, 40, map[int]float64{0: 60, 1: 80, 2: 100})
	if got := fresh.Offset(grid.Rows, 3); got != 240 {
		t.Errorf("Offset(3) with third override: expected 240, got %v", got)
	}
}

func TestIndex_SizeUsesOverrideOrDefault(t *testing.T) {
	ix := newRowIndex(5, 40, map[int]float64{2: 75})

	tests := []struct {
		index int
		want  float64
	}{
		{0, 40},
		{2, 75},
		{4, 40},
		{-3, 40}, // clamps to 0
		{99, 40}, // clamps to 4
	}
	for _, tt := range tests {
		if got := ix.Size(grid.Rows, tt.index); got != tt.want {
			t.Errorf("Size(%d): expected %v, got %v", tt.index, tt.want, got)
		}
	}
}

func TestIndex_InitialOffset(t *testing.T) {
	ix := New(AxisConfig{Count: 100, DefaultSize: 30, InitialOffset: 36}, AxisConfig{})

	if got := ix.Offset(grid.Rows, 0); got != 36 {
		t.Errorf("Offset(0): expected 36, got %v", got)
	}
	if got := ix.Offset(grid.Rows, 2); got != 96 {
		t.Errorf("Offset(2): expected 96, got %v", got)
	}
	if got := ix.FindIndexAtOffset(grid.Rows, 10); got != 0 {
		t.Errorf("FindIndexAtOffset inside header: expected 0, got %d", got)
	}
}

func TestIndex_EmptyAxis(t *testing.T) {
	ix := New(AxisConfig{Count: 0, DefaultSize: 40, InitialOffset: 12}, AxisConfig{})

	if got := ix.Offset(grid.Rows, 5); got != 12 {
		t.Errorf("Offset on empty axis: expected 12, got %v", got)
	}
	if got := ix.Size(grid.Rows, 0); got != 0 {
		t.Errorf("Size on empty axis: expected 0, got %v", got)
	}
	if got := ix.FindIndexAtOffset(grid.Rows, 500); got != 0 {
		t.Errorf("FindIndexAtOffset on empty axis: expected 0, got %d", got)
	}
	if got := ix.TotalSize(grid.Rows); got != 0 {
		t.Errorf("TotalSize on empty axis: expected 0, got %v", got)
	}
}

func TestIndex_OffsetMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	overrides := make(map[int]float64)
	for i := 0; i < 200; i++ {
		overrides[rng.Intn(2000)] = float64(rng.Intn(120))
	}
	ix := newRowIndex(2000, 32, overrides)

	for i := 0; i < 1999; i++ {
		cur := ix.Metadata(grid.Rows, i)
		next := ix.Offset(grid.Rows, i+1)
		if next != cur.Offset+cur.Size {
			t.Fatalf("index %d: expected next offset %v, got %v", i, cur.Offset+cur.Size, next)
		}
		if next < cur.Offset {
			t.Fatalf("offsets decrease at %d", i)
		}
	}
}

func TestIndex_InverseConsistency(t *testing.T) {
	overrides := map[int]float64{0: 60, 1: 80, 17: 5, 300: 200, 301: 1}
	ix := newRowIndex(1000, 40, overrides)

	for i := 0; i < 1000; i++ {
		m := ix.Metadata(grid.Rows, i)
		if got := ix.FindIndexAtOffset(grid.Rows, m.Offset); got != i {
			t.Fatalf("FindIndexAtOffset(Offset(%d)=%v) = %d", i, m.Offset, got)
		}
		if got := ix.FindIndexAtOffset(grid.Rows, m.Offset+m.Size-1); got != i {
			t.Fatalf("FindIndexAtOffset(end of %d) = %d", i, got)
		}
	}
}

func TestIndex_FindIndexOnColdCache(t *testing.T) {
	ix := newRowIndex(100000, 40, nil)

	// Exponential probe from an empty cache.
	if got := ix.FindIndexAtOffset(grid.Rows, 40*5000+10); got != 5000 {
		t.Errorf("expected 5000, got %d", got)
	}
	measured := ix.LastMeasured(grid.Rows)
	if measured < 5000 || measured > 10001 {
		t.Errorf("probe should bracket the answer within one doubling, measured up to %d", measured)
	}

	// Target below the high-water mark uses the measured prefix only.
	if got := ix.FindIndexAtOffset(grid.Rows, 40*123); got != 123 {
		t.Errorf("expected 123, got %d", got)
	}
	if ix.LastMeasured(grid.Rows) != measured {
		t.Error("binary search over measured prefix must not measure further")
	}
}

func TestIndex_FindIndexClamps(t *testing.T) {
	ix := newRowIndex(10, 40, nil)

	if got := ix.FindIndexAtOffset(grid.Rows, -50); got != 0 {
		t.Errorf("negative offset: expected 0, got %d", got)
	}
	if got := ix.FindIndexAtOffset(grid.Rows, 1e9); got != 9 {
		t.Errorf("offset past the end: expected 9, got %d", got)
	}
}

func TestIndex_LazyCacheConverges(t *testing.T) {
	overrides := map[int]float64{3: 90, 40: 12, 41: 0, 42: 300, 777: 66}
	sequential := newRowIndex(1000, 40, overrides)
	random := newRowIndex(1000, 40, overrides)

	rng := rand.New(rand.NewSource(42))
	order := rng.Perm(1000)
	randomOffsets := make(map[int]float64, 1000)
	for _, i := range order {
		randomOffsets[i] = random.Offset(grid.Rows, i)
	}

	for i := 0; i < 1000; i++ {
		if got := sequential.Offset(grid.Rows, i); got != randomOffsets[i] {
			t.Fatalf("index %d: sequential %v != random %v", i, got, randomOffsets[i])
		}
	}
}

func TestIndex_SetSizeBeyondHighWaterIsCheap(t *testing.T) {
	ix := newRowIndex(1000, 40, nil)
	ix.Offset(grid.Rows, 10)

	ix.SetSize(grid.Rows, 500, 100)
	if ix.LastMeasured(grid.Rows) != 10 {
		t.Errorf("override past the cursor must keep it, got %d", ix.LastMeasured(grid.Rows))
	}
	if got := ix.Offset(grid.Rows, 501); got != 500*40+100 {
		t.Errorf("Offset(501): expected %v, got %v", 500*40+100, got)
	}
}

func TestIndex_SetSizeBeforeHighWaterRemeasures(t *testing.T) {
	ix := newRowIndex(1000, 40, nil)
	ix.Offset(grid.Rows, 100)

	ix.SetSize(grid.Rows, 5, 90)
	if ix.LastMeasured(grid.Rows) != 4 {
		t.Errorf("expected cursor truncated to 4, got %d", ix.LastMeasured(grid.Rows))
	}
	if got := ix.Offset(grid.Rows, 100); got != 100*40+50 {
		t.Errorf("Offset(100): expected %v, got %v", 100*40+50, got)
	}

	ix.ClearSize(grid.Rows, 5)
	if got := ix.Offset(grid.Rows, 100); got != 100*40 {
		t.Errorf("Offset(100) after clear: expected %v, got %v", 100*40, got)
	}
}

func TestIndex_RefreshAxis(t *testing.T) {
	ix := newRowIndex(100, 40, nil)
	ix.Offset(grid.Rows, 50)

	ix.RefreshAxis(grid.Rows, 20, map[int]float64{0: 10})
	if ix.LastMeasured(grid.Rows) != -1 {
		t.Errorf("expected cursor reset, got %d", ix.LastMeasured(grid.Rows))
	}
	if ix.Count(grid.Rows) != 20 {
		t.Errorf("expected count 20, got %d", ix.Count(grid.Rows))
	}
	if got := ix.Offset(grid.Rows, 50); got != 10+18*40 {
		t.Errorf("Offset clamps to last row: expected %v, got %v", 10+18*40, got)
	}
}

func TestIndex_TotalSize(t *testing.T) {
	overrides := map[int]float64{0: 60, 1: 80, 999: 10}
	ix := newRowIndex(1000, 40, overrides)

	want := 60.0 + 80 + 10 + 997*40
	if got := ix.TotalSize(grid.Rows); got != want {
		t.Errorf("cold TotalSize: expected %v, got %v", want, got)
	}

	ix.Offset(grid.Rows, 500)
	if got := ix.TotalSize(grid.Rows); got != want {
		t.Errorf("warm TotalSize: expected %v, got %v", want, got)
	}

	last := ix.Metadata(grid.Rows, 999)
	if last.Offset+last.Size != want {
		t.Errorf("walked extent %v disagrees with TotalSize %v", last.Offset+last.Size, want)
	}
}

func TestIndex_AxesAreIndependent(t *testing.T) {
	ix := New(
		AxisConfig{Count: 100, DefaultSize: 40},
		AxisConfig{Count: 10, DefaultSize: 150, InitialOffset: 48},
	)

	ix.SetSize(grid.Columns, 0, 200)
	if got := ix.Offset(grid.Columns, 1); got != 248 {
		t.Errorf("column Offset(1): expected 248, got %v", got)
	}
	if got := ix.Offset(grid.Rows, 1); got != 40 {
		t.Errorf("row Offset(1): expected 40, got %v", got)
	}
}
