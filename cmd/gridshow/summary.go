package main

import (
	"github.com/user/gridshow/pkg/orchestrator"
	"github.com/user/gridshow/pkg/summarizer"
)

// buildSummary converts a pipeline result into a render summary. Columns
// without an explicit size are reported at defaultWidth.
func buildSummary(result orchestrator.RunResult, preset string, defaultWidth float64) *summarizer.Summary {
	columns := make([]summarizer.ColumnInfo, len(result.Columns))
	for i, c := range result.Columns {
		w := c.Size
		if w <= 0 {
			w = defaultWidth
		}
		columns[i] = summarizer.ColumnInfo{ID: c.ID, Header: c.Header, Width: w, CellType: c.CellType}
	}

	b := summarizer.NewBuilder().
		WithSource(result.DataPath, result.RowCount).
		WithSurface(summarizer.SurfaceInfo{
			Width:         result.Width,
			Height:        result.Height,
			DPR:           result.DPR,
			ContentWidth:  result.ContentWidth,
			ContentHeight: result.ContentHeight,
			Preset:        preset,
		}).
		WithColumns(columns).
		WithCommits(result.Commits).
		WithOutput(summarizer.OutputInfo{
			Files:      result.Outputs,
			TotalBytes: result.TotalBytes,
			DurationMs: result.DurationMs,
		})

	for _, f := range result.Frames {
		b.AddFrame(summarizer.FrameInfo{
			Index:        f.Index,
			ScrollTop:    f.ScrollTop,
			ScrollLeft:   f.ScrollLeft,
			StartRow:     f.Stats.Range.StartRow,
			EndRow:       f.Stats.Range.EndRow,
			StartCol:     f.Stats.Range.StartCol,
			EndCol:       f.Stats.Range.EndCol,
			CellsDrawn:   f.Stats.CellsDrawn,
			CellsSkipped: f.Stats.CellsSkipped,
		})
	}
	return b.Build()
}
