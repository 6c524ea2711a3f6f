package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/user/gridshow/pkg/adapters/canvasoverlay"
	"github.com/user/gridshow/pkg/adapters/filesink"
	"github.com/user/gridshow/pkg/adapters/ggcanvas"
	"github.com/user/gridshow/pkg/adapters/logger"
	"github.com/user/gridshow/pkg/cellrender"
	"github.com/user/gridshow/pkg/mocks"
	"github.com/user/gridshow/pkg/pipeline"
	"github.com/user/gridshow/pkg/stages/encode"
	"github.com/user/gridshow/pkg/stages/load"
	"github.com/user/gridshow/pkg/stages/paint"
)

func inventoryCSV(rows int) []byte {
	var b strings.Builder
	b.WriteString("Name,Qty,Done\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "Item %d,%d,%t\n", i, i*3, i%2 == 0)
	}
	return []byte(b.String())
}

// TestRun_EndToEnd runs load, paint and encode with the gg-backed adapters.
func TestRun_EndToEnd(t *testing.T) {
	fs := mocks.NewFileSystem().AddFile("inventory.csv", inventoryCSV(40))
	log := logger.NewNoop()
	renderer := ggcanvas.New()
	sink := filesink.New("debug", fs, renderer)

	orch := New(
		load.NewStage(fs, log),
		paint.NewStage(renderer, cellrender.NewRegistry(log), canvasoverlay.New(canvasoverlay.DefaultStyle()), log),
		encode.NewStage(renderer, sink, log, 2),
		fs,
		sink,
		log,
	)

	cfg := DefaultConfig()
	cfg.DataPath = "inventory.csv"
	cfg.OutputPath = "out/grid.png"
	cfg.Width = 400
	cfg.Height = 200
	cfg.DPR = 2
	cfg.Frames = 2
	cfg.Step = 100
	cfg.Gestures = []pipeline.Gesture{
		{Kind: pipeline.GestureResize, Column: "name", Width: 200, Capture: "resize"},
	}

	result, err := orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.RowCount != 40 || len(result.Columns) != 3 {
		t.Errorf("unexpected data shape: %d rows, %d columns", result.RowCount, len(result.Columns))
	}
	if len(result.Commits) != 1 || result.Commits[0] != "resize name 200" {
		t.Errorf("unexpected commits %v", result.Commits)
	}

	for i, path := range []string{"out/grid-0000.png", "out/grid-0001.png"} {
		data, ok := fs.GetFile(path)
		if !ok {
			t.Fatalf("expected output %s", path)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 400 {
			t.Errorf("frame %d: expected 800x400 device pixels, got %dx%d", i, b.Dx(), b.Dy())
		}
		r, g, bl, _ := img.At(4, 4).RGBA()
		got := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 0xff}
		if want := cfg.Theme.HeaderBackground; got != want {
			t.Errorf("frame %d: expected header background %v, got %v", i, want, got)
		}
	}

	layoutData, ok := fs.GetFile("debug/layout.json")
	if !ok {
		t.Fatal("expected debug layout.json")
	}
	var layout struct {
		Columns []struct {
			ID   string  `json:"id"`
			Size float64 `json:"size"`
		} `json:"columns"`
	}
	if err := json.Unmarshal(layoutData, &layout); err != nil {
		t.Fatalf("invalid layout.json: %v", err)
	}
	if len(layout.Columns) != 3 || layout.Columns[0].ID != "name" || layout.Columns[0].Size != 200 {
		t.Errorf("unexpected layout columns %+v", layout.Columns)
	}

	for _, path := range []string{"debug/overlay/resize.png", "debug/frames/frame-0000.png", "debug/frames/frame-0001.png"} {
		if _, ok := fs.GetFile(path); !ok {
			t.Errorf("expected debug file %s", path)
		}
	}
}
