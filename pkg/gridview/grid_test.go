package gridview

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/user/gridshow/pkg/adapters/logger"
	"github.com/user/gridshow/pkg/cellrender"
	"github.com/user/gridshow/pkg/draw"
	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/interaction"
	"github.com/user/gridshow/pkg/mocks"
	"github.com/user/gridshow/pkg/ports"
)

var sourceData = grid.DataFunc(func(row, col int) any {
	return fmt.Sprintf("r%dc%d", row, col)
})

func testColumns() []grid.Column {
	return []grid.Column{
		{ID: "a", Header: "Name"},
		{ID: "b", Header: "A considerably long header"},
		{ID: "c", Header: "Qty", CellType: grid.CellNumber},
		{ID: "d", Header: "Done", CellType: grid.CellCheckbox},
	}
}

func newTestGrid(t *testing.T, mode interaction.ResizeMode) (*Grid, *mocks.OverlaySink) {
	t.Helper()

	opts := DefaultOptions(500, 300)
	opts.RowCount = 100
	opts.ResizeMode = mode

	overlay := &mocks.OverlaySink{}
	g, err := New(&mocks.Renderer{}, cellrender.NewRegistry(logger.NewNoop()), overlay,
		testColumns(), sourceData, opts, logger.NewNoop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g, overlay
}

func TestNew_PropagatesContextError(t *testing.T) {
	factory := &mocks.Renderer{
		NewSurfaceFunc: func(width, height int, dpr float64) (ports.Surface, error) {
			return nil, errors.New("headless")
		},
	}
	_, err := New(factory, cellrender.NewRegistry(logger.NewNoop()), &mocks.OverlaySink{},
		testColumns(), sourceData, DefaultOptions(100, 100), logger.NewNoop())
	if !errors.Is(err, draw.ErrContextUnavailable) {
		t.Errorf("expected ErrContextUnavailable, got %v", err)
	}
}

func TestGrid_HitTest(t *testing.T) {
	g, _ := newTestGrid(t, interaction.ResizeOnChange)

	tests := []struct {
		name string
		x, y float64
		want Hit
	}{
		{"header", 10, 10, Hit{Region: RegionHeader, Row: -1, Col: 0}},
		{"resize handle", 147, 10, Hit{Region: RegionResizeHandle, Row: -1, Col: 0}},
		{"second header", 160, 10, Hit{Region: RegionHeader, Row: -1, Col: 1}},
		{"first cell", 10, 50, Hit{Region: RegionCell, Row: 0, Col: 0}},
		{"lower cell", 310, 290, Hit{Region: RegionCell, Row: 7, Col: 2}},
		{"outside", 600, 10, Hit{Region: RegionNone, Row: -1, Col: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.HitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%g,%g) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestGrid_ResizeLive(t *testing.T) {
	g, overlay := newTestGrid(t, interaction.ResizeOnChange)

	if hit := g.PointerDown(148, 10); hit.Region != RegionResizeHandle {
		t.Fatalf("expected resize handle, got %v", hit.Region)
	}
	if overlay.Cursor != ports.CursorColumnResize {
		t.Error("expected resize cursor")
	}

	g.PointerMove(198, 10)
	if got := g.Index().Size(grid.Columns, 0); got != 200 {
		t.Errorf("expected live width 200, got %g", got)
	}

	commit := g.PointerUp(-1000, 10)
	if commit.Kind != CommitResize || commit.Resize.NewWidth != interaction.DefaultMinWidth {
		t.Fatalf("unexpected commit %+v", commit)
	}
	if g.Columns()[0].Size != 50 || g.Index().Offset(grid.Columns, 1) != 50 {
		t.Errorf("expected committed width written back, got size=%g offset=%g",
			g.Columns()[0].Size, g.Index().Offset(grid.Columns, 1))
	}
	if overlay.Cursor != ports.CursorDefault {
		t.Error("expected cursor reset after commit")
	}
}

func TestGrid_ResizeOnEndDefersWidth(t *testing.T) {
	g, _ := newTestGrid(t, interaction.ResizeOnEnd)

	g.PointerDown(148, 10)
	g.PointerMove(248, 10)
	if got := g.Index().Size(grid.Columns, 0); got != 150 {
		t.Errorf("expected width unchanged until commit, got %g", got)
	}
	g.PointerUp(248, 10)
	if got := g.Index().Size(grid.Columns, 0); got != 250 {
		t.Errorf("expected committed width 250, got %g", got)
	}
}

func TestGrid_PointerLeaveRevertsResize(t *testing.T) {
	g, overlay := newTestGrid(t, interaction.ResizeOnChange)

	g.PointerDown(148, 10)
	g.PointerMove(248, 10)
	g.PointerLeave()

	if got := g.Index().Size(grid.Columns, 0); got != 150 {
		t.Errorf("expected width reverted to 150, got %g", got)
	}
	if _, ok := g.Index().Overrides(grid.Columns)[0]; ok {
		t.Error("expected no override left behind")
	}
	if commit := g.PointerUp(248, 10); commit.Kind != CommitNone {
		t.Errorf("expected no commit after leave, got %+v", commit)
	}
	if overlay.Cursor != ports.CursorDefault {
		t.Error("expected default cursor after leave")
	}
}

func TestGrid_DragReorder(t *testing.T) {
	g, overlay := newTestGrid(t, interaction.ResizeOnChange)

	if hit := g.PointerDown(75, 10); hit.Region != RegionHeader {
		t.Fatalf("expected header hit, got %v", hit.Region)
	}
	g.PointerMove(400, 12)
	if overlay.Indicator == nil || overlay.Indicator.X != 450 {
		t.Fatalf("expected indicator at boundary 450, got %+v", overlay.Indicator)
	}

	commit := g.PointerUp(400, 12)
	want := []string{"b", "c", "a", "d"}
	if commit.Kind != CommitReorder || !reflect.DeepEqual(commit.Order, want) {
		t.Fatalf("unexpected commit %+v", commit)
	}
	if !reflect.DeepEqual(g.ColumnOrder(), want) {
		t.Errorf("expected column order %v, got %v", want, g.ColumnOrder())
	}
	// Values follow their column, not the display position.
	if got := g.Value(0, 2); got != "r0c0" {
		t.Errorf("expected moved column to read source column 0, got %v", got)
	}
	if overlay.Visible() {
		t.Error("expected overlay hidden after drop")
	}
}

func TestGrid_HoverCursor(t *testing.T) {
	g, overlay := newTestGrid(t, interaction.ResizeOnChange)

	g.PointerMove(148, 10)
	g.PointerMove(149, 10)
	if overlay.Cursor != ports.CursorColumnResize {
		t.Error("expected resize cursor over handle")
	}
	g.PointerMove(50, 100)
	if overlay.Cursor != ports.CursorDefault {
		t.Error("expected default cursor over cells")
	}
	if overlay.CursorChanges != 2 {
		t.Errorf("expected 2 cursor changes, got %d", overlay.CursorChanges)
	}
}

func TestGrid_ScrollClamps(t *testing.T) {
	g, _ := newTestGrid(t, interaction.ResizeOnChange)

	g.ScrollTo(1e9, 1e9)
	top, left := g.Scroll()
	// 36 header + 100 rows * 32 - 300 viewport; 4 columns * 150 - 500.
	if top != 2936 || left != 100 {
		t.Errorf("expected (2936, 100), got (%g, %g)", top, left)
	}

	g.ScrollBy(-1e9, -1e9)
	if top, left := g.Scroll(); top != 0 || left != 0 {
		t.Errorf("expected (0, 0), got (%g, %g)", top, left)
	}

	g.ScrollTo(2936, 0)
	g.SetData(sourceData, 10, nil)
	if top, _ := g.Scroll(); top != 56 {
		t.Errorf("expected scroll clamped to 56 after shrinking data, got %g", top)
	}
}

func TestGrid_NarrowedColumnReclampsScroll(t *testing.T) {
	g, _ := newTestGrid(t, interaction.ResizeOnChange)

	g.ScrollTo(0, 1e9)
	if _, left := g.Scroll(); left != 100 {
		t.Fatalf("expected scrollLeft 100 at the right edge, got %g", left)
	}

	// 150+150+50+150 = 500 fits the viewport, so no horizontal scroll remains.
	if w, _ := g.AutoSizeColumn(2); w != interaction.DefaultMinWidth {
		t.Fatalf("expected column narrowed to min width, got %g", w)
	}
	if _, left := g.Scroll(); left != 0 {
		t.Errorf("expected scrollLeft re-clamped to 0, got %g", left)
	}
	if left, maxLeft := g.scrollLeft, g.Calculator().MaxScroll(grid.Columns); left > maxLeft {
		t.Errorf("scrollLeft %g exceeds max %g", left, maxLeft)
	}
}

func TestGrid_Render(t *testing.T) {
	g, _ := newTestGrid(t, interaction.ResizeOnChange)

	stats := g.Render()
	if !stats.Cleared || stats.CellsDrawn == 0 {
		t.Errorf("unexpected first frame stats %+v", stats)
	}

	g.ScrollTo(320, 0)
	stats = g.Render()
	if stats.Cleared {
		t.Error("expected scroll-only frame not to clear")
	}
	if stats.Range.StartRow > 9 || stats.Range.EndRow < 18 {
		t.Errorf("range %+v does not cover rows 9-18", stats.Range)
	}
}

func TestGrid_AutoSizeColumn(t *testing.T) {
	g, _ := newTestGrid(t, interaction.ResizeOnChange)

	// 26 runes * 7px + 2*8 padding + 1 border.
	w, ok := g.AutoSizeColumn(1)
	if !ok || w != 199 {
		t.Errorf("AutoSizeColumn(1) = %g, %v; want 199, true", w, ok)
	}
	if g.Index().Size(grid.Columns, 1) != 199 {
		t.Error("expected width written to the index")
	}

	// Short content is held at the minimum width.
	if w, _ := g.AutoSizeColumn(2); w != interaction.DefaultMinWidth {
		t.Errorf("expected min width, got %g", w)
	}

	if _, ok := g.AutoSizeColumn(10); ok {
		t.Error("expected out-of-range column to fail")
	}
}

func TestGrid_SetViewport(t *testing.T) {
	g, _ := newTestGrid(t, interaction.ResizeOnChange)

	if err := g.SetViewport(800, 600); err != nil {
		t.Fatalf("SetViewport failed: %v", err)
	}
	if w, h := g.Pipeline().Size(); w != 800 || h != 600 {
		t.Errorf("expected 800x600, got %dx%d", w, h)
	}
	if g.Calculator().MaxScroll(grid.Columns) != 0 {
		t.Error("expected no horizontal scroll once columns fit")
	}
}

func TestGrid_SetColumnOrder(t *testing.T) {
	g, _ := newTestGrid(t, interaction.ResizeOnChange)

	g.SetColumnOrder([]string{"d", "zz", "b"})
	want := []string{"d", "b", "a", "c"}
	if !reflect.DeepEqual(g.ColumnOrder(), want) {
		t.Fatalf("expected %v, got %v", want, g.ColumnOrder())
	}
	if got := g.Value(3, 0); got != "r3c3" {
		t.Errorf("expected first column to read source column 3, got %v", got)
	}
	if i, ok := g.ColumnIndex("a"); !ok || i != 2 {
		t.Errorf("ColumnIndex(a) = %d, %v", i, ok)
	}
	if _, ok := g.ColumnIndex("zz"); ok {
		t.Error("expected unknown id to be reported missing")
	}
}
