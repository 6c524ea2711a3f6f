// Package paint implements the frame painting stage. It hosts a
// gridview.Grid, replays header gestures through its pointer routing and
// renders one frame per scroll position.
package paint

import (
	"context"
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/user/gridshow/pkg/adapters/nulloverlay"
	"github.com/user/gridshow/pkg/cellrender"
	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/gridview"
	"github.com/user/gridshow/pkg/pipeline"
	"github.com/user/gridshow/pkg/ports"
)

// Compositor is an overlay sink that can paint its current state over a
// frame.
type Compositor interface {
	ports.OverlaySink
	Composite(base image.Image, dpr float64) image.Image
}

// Stage paints frames.
type Stage struct {
	factory  ports.SurfaceFactory
	registry *cellrender.Registry
	overlay  Compositor
	logger   ports.Logger
}

// NewStage creates a new paint stage. overlay may be nil, in which case
// overlay captures are skipped.
func NewStage(factory ports.SurfaceFactory, registry *cellrender.Registry, overlay Compositor, logger ports.Logger) *Stage {
	return &Stage{
		factory:  factory,
		registry: registry,
		overlay:  overlay,
		logger:   logger.WithComponent("paint"),
	}
}

// Execute builds the grid, applies gestures and renders the frames.
func (s *Stage) Execute(ctx context.Context, input pipeline.PaintInput) (pipeline.PaintResult, error) {
	var sink ports.OverlaySink = nulloverlay.New()
	if s.overlay != nil {
		sink = s.overlay
	}

	opts := gridview.Options{
		Width:          input.Width,
		Height:         input.Height,
		DPR:            input.DPR,
		Theme:          input.Theme,
		RowCount:       input.RowCount,
		RowHeights:     input.RowHeights,
		RowOverscan:    input.RowOverscan,
		ColumnOverscan: input.ColumnOverscan,
		ResizeMode:     input.ResizeMode,
		MinColumnWidth: input.MinColumnWidth,
		MaxColumnWidth: input.MaxColumnWidth,
	}
	g, err := gridview.New(s.factory, s.registry, sink, input.Columns, input.Data, opts, s.logger)
	if err != nil {
		return pipeline.PaintResult{}, fmt.Errorf("create grid: %w", err)
	}
	if len(input.Order) > 0 {
		g.SetColumnOrder(input.Order)
	}

	result := pipeline.PaintResult{}
	for _, gesture := range input.Gestures {
		if err := ctx.Err(); err != nil {
			return pipeline.PaintResult{}, err
		}
		commit, capture, err := s.replay(g, gesture)
		if err != nil {
			s.logger.Warn("Skipping %s gesture on %q: %v", gesture.Kind, gesture.Column, err)
			continue
		}
		result.Commits = append(result.Commits, commit)
		if capture != nil {
			result.Overlays = append(result.Overlays, *capture)
		}
	}

	frames := max(input.Frames, 1)
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return pipeline.PaintResult{}, err
		}
		g.ScrollTo(input.ScrollTop+float64(i)*input.Step, input.ScrollLeft)
		top, left := g.Scroll()
		stats := g.Render()
		result.Frames = append(result.Frames, pipeline.Frame{
			Index:      i,
			ScrollTop:  top,
			ScrollLeft: left,
			Stats:      stats,
			Image:      snapshot(g.Pipeline().Image()),
		})
	}

	ix := g.Index()
	result.Columns = g.Columns()
	result.TotalWidth = ix.InitialOffset(grid.Columns) + ix.TotalSize(grid.Columns)
	result.TotalHeight = ix.InitialOffset(grid.Rows) + ix.TotalSize(grid.Rows)
	return result, nil
}

// replay drives one gesture through the grid's pointer routing.
func (s *Stage) replay(g *gridview.Grid, gesture pipeline.Gesture) (string, *pipeline.OverlayCapture, error) {
	col, ok := g.ColumnIndex(gesture.Column)
	if !ok {
		return "", nil, errors.New("unknown column")
	}

	switch gesture.Kind {
	case pipeline.GestureAutoSize:
		w, _ := g.AutoSizeColumn(col)
		return fmt.Sprintf("autosize %s %.0f", gesture.Column, w), nil, nil

	case pipeline.GestureResize:
		if gesture.Width <= 0 {
			return "", nil, errors.New("width must be positive")
		}
		revealColumn(g, col)
		m := g.Index().Metadata(grid.Columns, col)
		_, left := g.Scroll()
		y := headerY(g)
		edge := m.Offset + m.Size - left - 1
		if g.PointerDown(edge, y).Region != gridview.RegionResizeHandle {
			return "", nil, errors.New("resize handle not reachable")
		}
		x := edge + gesture.Width - m.Size
		g.PointerMove(x, y)
		capture := s.capture(g, gesture.Capture)
		commit := g.PointerUp(x, y)
		return fmt.Sprintf("resize %s %.0f", gesture.Column, commit.Resize.NewWidth), capture, nil

	case pipeline.GestureReorder:
		n := len(g.Columns())
		if gesture.To < 0 || gesture.To > n {
			return "", nil, fmt.Errorf("target %d outside [0, %d]", gesture.To, n)
		}
		revealColumn(g, col)
		m := g.Index().Metadata(grid.Columns, col)
		_, left := g.Scroll()
		y := headerY(g)
		if g.PointerDown(m.Offset-left+min(m.Size/2, 10), y).Region != gridview.RegionHeader {
			return "", nil, errors.New("header not reachable")
		}
		x := boundaryX(g, gesture.To) - left
		g.PointerMove(x, y)
		capture := s.capture(g, gesture.Capture)
		commit := g.PointerUp(x, y)
		return fmt.Sprintf("reorder %s %v", gesture.Column, commit.Order), capture, nil
	}
	return "", nil, errors.New("unknown gesture kind")
}

// capture renders the current state and composites the overlay on it.
func (s *Stage) capture(g *gridview.Grid, name string) *pipeline.OverlayCapture {
	if name == "" || s.overlay == nil {
		return nil
	}
	g.Render()
	img := s.overlay.Composite(g.Pipeline().Image(), g.Pipeline().Surface().DPR())
	return &pipeline.OverlayCapture{Name: name, Image: img}
}

func headerY(g *gridview.Grid) float64 {
	return g.Pipeline().Theme().HeaderHeight / 2
}

// boundaryX returns the content x of insertion boundary to.
func boundaryX(g *gridview.Grid, to int) float64 {
	ix := g.Index()
	if to >= ix.Count(grid.Columns) {
		return ix.InitialOffset(grid.Columns) + ix.TotalSize(grid.Columns)
	}
	return ix.Offset(grid.Columns, to)
}

// revealColumn scrolls horizontally so the column's trailing edge is in view.
func revealColumn(g *gridview.Grid, col int) {
	m := g.Index().Metadata(grid.Columns, col)
	top, left := g.Scroll()
	width, _ := g.Pipeline().Size()
	gutter := g.Pipeline().Theme().GutterWidth
	switch {
	case m.Offset-left < gutter:
		g.ScrollTo(top, m.Offset-gutter)
	case m.Offset+m.Size-left > float64(width):
		g.ScrollTo(top, m.Offset+m.Size-float64(width))
	}
}

// snapshot copies img so later renders on the same surface do not alter it.
func snapshot(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
