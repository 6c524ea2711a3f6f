// Package summarizer provides summary generation for render results.
package summarizer

import "time"

// Summary contains all data collected during a render run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Data set
	Source SourceInfo

	// Surface and content extents
	Surface SurfaceInfo

	// Columns in final display order
	Columns []ColumnInfo

	// Applied gestures
	Commits []string

	// Painted frames
	Frames []FrameInfo

	// Written files
	Output OutputInfo
}

// SourceInfo describes the loaded data set.
type SourceInfo struct {
	Path     string
	RowCount int
}

// SurfaceInfo describes the drawing surface.
type SurfaceInfo struct {
	Width         int
	Height        int
	DPR           float64
	ContentWidth  float64
	ContentHeight float64
	Preset        string
}

// ColumnInfo describes one column after gestures were applied.
type ColumnInfo struct {
	ID       string
	Header   string
	Width    float64
	CellType string
}

// FrameInfo describes one painted frame.
type FrameInfo struct {
	Index        int
	ScrollTop    float64
	ScrollLeft   float64
	StartRow     int
	EndRow       int
	StartCol     int
	EndCol       int
	CellsDrawn   int
	CellsSkipped int
}

// OutputInfo describes the written files.
type OutputInfo struct {
	Files      []string
	TotalBytes int64
	DurationMs int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets data set information.
func (b *Builder) WithSource(path string, rows int) *Builder {
	b.summary.Source = SourceInfo{Path: path, RowCount: rows}
	return b
}

// WithSurface sets surface information.
func (b *Builder) WithSurface(surface SurfaceInfo) *Builder {
	b.summary.Surface = surface
	return b
}

// WithColumns sets the final columns.
func (b *Builder) WithColumns(columns []ColumnInfo) *Builder {
	b.summary.Columns = columns
	return b
}

// WithCommits sets the applied gestures.
func (b *Builder) WithCommits(commits []string) *Builder {
	b.summary.Commits = commits
	return b
}

// AddFrame appends a painted frame.
func (b *Builder) AddFrame(frame FrameInfo) *Builder {
	b.summary.Frames = append(b.summary.Frames, frame)
	return b
}

// WithOutput sets output file information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
