package grid

import (
	"reflect"
	"testing"
)

func TestRect_Intersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"touching edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"inside", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"far away", Rect{X: 100, Y: 100, Width: 1, Height: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestVisibleRange_Counts(t *testing.T) {
	vr := VisibleRange{StartRow: 2, EndRow: 5, StartCol: 0, EndCol: -1}
	if vr.RowCount() != 4 {
		t.Errorf("expected 4 rows, got %d", vr.RowCount())
	}
	if vr.ColCount() != 0 {
		t.Errorf("expected 0 columns, got %d", vr.ColCount())
	}
	if !vr.Empty() {
		t.Error("expected range with no columns to be empty")
	}
}

func TestReorderColumns(t *testing.T) {
	columns := []Column{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got := ReorderColumns(columns, []string{"c", "a", "zzz"})
	ids := ColumnIDs(got)
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}
}

func TestColumnOverrides(t *testing.T) {
	columns := []Column{{ID: "a", Size: 120}, {ID: "b"}, {ID: "c", Size: 90}}
	got := ColumnOverrides(columns)
	want := map[int]float64{0: 120, 2: 90}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
