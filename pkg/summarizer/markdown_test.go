package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/gridshow/pkg/mocks"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Source:      SourceInfo{Path: "inventory.csv", RowCount: 1200},
		Surface: SurfaceInfo{
			Width: 800, Height: 600, DPR: 2,
			ContentWidth: 950, ContentHeight: 38436,
			Preset: "compact",
		},
		Columns: []ColumnInfo{
			{ID: "name", Header: "Name | Label", Width: 200, CellType: "text"},
			{ID: "qty", Header: "Qty", CellType: "number"},
		},
		Commits: []string{"resize name 200"},
		Frames: []FrameInfo{
			{Index: 0, StartRow: 0, EndRow: 18, StartCol: 0, EndCol: 1, CellsDrawn: 38, CellsSkipped: 2},
		},
		Output: OutputInfo{Files: []string{"grid.png"}, TotalBytes: 1024 * 1024, DurationMs: 42},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Render Summary",
		"inventory.csv",
		"| Rows | 1200 |",
		"compact",
		"800x600",
		"950x38436",
		`Name \| Label`,
		"200 px",
		"| default |",
		"- resize name 200",
		"| 0 | 0, 0 | 0-18 | 0-1 | 38 | 2 |",
		"- grid.png",
		"1.00 MB",
		"2024-01-15 10:30:00",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_OmitsEmptySections(t *testing.T) {
	result := NewMarkdownFormatter().Format(&Summary{GeneratedAt: time.Now()})

	for _, heading := range []string{"## Columns", "## Gestures", "## Frames", "| Preset |"} {
		if strings.Contains(result, heading) {
			t.Errorf("expected %q to be omitted", heading)
		}
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Render Summary": "描画サマリー",
			"Rows":           "行数",
			"Gestures":       "操作",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(sampleSummary())

	for _, want := range []string{"描画サマリー", "行数", "操作"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(sampleSummary())

	if !strings.Contains(result, "gridshow v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "# " + s.Source.Path }), fs)

	if err := w.Write("out/summary.md", sampleSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, ok := fs.GetFile("out/summary.md")
	if !ok || string(data) != "# inventory.csv" {
		t.Errorf("unexpected summary file %q", data)
	}
}
