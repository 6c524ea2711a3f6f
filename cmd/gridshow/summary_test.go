package main

import (
	"testing"

	"github.com/user/gridshow/pkg/draw"
	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/orchestrator"
)

func TestBuildSummary(t *testing.T) {
	result := orchestrator.RunResult{
		DataPath: "inventory.csv",
		RowCount: 120,
		Columns: []grid.Column{
			{ID: "sku", Header: "SKU", Size: 90, CellType: grid.CellText},
			{ID: "qty", Header: "Qty", CellType: grid.CellNumber},
		},
		Commits: []string{"resize sku 90"},
		Frames: []orchestrator.FrameSummary{
			{Index: 0, Stats: draw.FrameStats{Range: grid.VisibleRange{StartRow: 0, EndRow: 18, StartCol: 0, EndCol: 1}, CellsDrawn: 38}},
			{Index: 1, ScrollTop: 500, Stats: draw.FrameStats{Range: grid.VisibleRange{StartRow: 14, EndRow: 33, StartCol: 0, EndCol: 1}}},
		},
		Outputs:    []string{"out-0000.png", "out-0001.png"},
		TotalBytes: 2048,
		Width:      800,
		Height:     600,
		DPR:        2,
	}

	s := buildSummary(result, "compact", 150)

	if s.Source.Path != "inventory.csv" || s.Source.RowCount != 120 {
		t.Errorf("unexpected source %+v", s.Source)
	}
	if s.Surface.Preset != "compact" || s.Surface.DPR != 2 {
		t.Errorf("unexpected surface %+v", s.Surface)
	}
	if s.Columns[0].Width != 90 || s.Columns[1].Width != 150 {
		t.Errorf("unexpected column widths %+v", s.Columns)
	}
	if len(s.Frames) != 2 || s.Frames[1].StartRow != 14 || s.Frames[0].CellsDrawn != 38 {
		t.Errorf("unexpected frames %+v", s.Frames)
	}
	if len(s.Output.Files) != 2 || s.Output.TotalBytes != 2048 {
		t.Errorf("unexpected output %+v", s.Output)
	}
}
