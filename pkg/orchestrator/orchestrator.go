// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/user/gridshow/pkg/draw"
	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/interaction"
	"github.com/user/gridshow/pkg/pipeline"
	"github.com/user/gridshow/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input/Output
	DataPath   string
	OutputPath string

	// Columns and rows
	Overrides  []pipeline.ColumnOverride
	Order      []string
	RowHeights map[int]float64

	// Surface
	Width  int
	Height int
	DPR    float64
	Theme  draw.Theme

	// Engine
	RowOverscan    int
	ColumnOverscan int
	ResizeMode     interaction.ResizeMode
	MinColumnWidth float64
	MaxColumnWidth float64

	// Interaction replay
	Gestures []pipeline.Gesture

	// Frames
	ScrollTop  float64
	ScrollLeft float64
	Frames     int
	Step       float64

	// Encoding
	Format    string
	Quality   int
	Downscale bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         600,
		DPR:            1,
		Theme:          draw.DefaultTheme(),
		RowOverscan:    1,
		ColumnOverscan: 1,
		ResizeMode:     interaction.ResizeOnChange,
		MinColumnWidth: interaction.DefaultMinWidth,
		MaxColumnWidth: interaction.DefaultMaxWidth,
		Frames:         1,
		Format:         "png",
		Quality:        90,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	loadStage   pipeline.Stage[pipeline.LoadInput, pipeline.LoadResult]
	paintStage  pipeline.Stage[pipeline.PaintInput, pipeline.PaintResult]
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	fs          ports.FileSystem
	sink        ports.DebugSink
	logger      ports.Logger

	marshal func(v any) ([]byte, error)
}

// New creates a new Orchestrator.
func New(
	loadStage pipeline.Stage[pipeline.LoadInput, pipeline.LoadResult],
	paintStage pipeline.Stage[pipeline.PaintInput, pipeline.PaintResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		loadStage:   loadStage,
		paintStage:  paintStage,
		encodeStage: encodeStage,
		fs:          fs,
		sink:        sink,
		logger:      logger,
		marshal:     marshalLayout,
	}
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	started := time.Now()
	o.logger.Info("Starting pipeline")

	// 1. Load data
	o.logger.Info("Loading %s", config.DataPath)
	loaded, err := o.loadStage.Execute(ctx, o.buildLoadInput(config))
	if err != nil {
		o.logger.Error("Failed to load data: %s", err)
		return RunResult{}, fmt.Errorf("load stage: %w", err)
	}
	o.logger.Info("Loaded %d rows, %d columns", loaded.RowCount, len(loaded.Columns))

	// 2. Paint frames
	o.logger.Info("Painting %d frames at %dx%d (DPR %g)", max(config.Frames, 1), config.Width, config.Height, config.DPR)
	painted, err := o.paintStage.Execute(ctx, o.buildPaintInput(config, loaded))
	if err != nil {
		o.logger.Error("Failed to paint frames: %s", err)
		return RunResult{}, fmt.Errorf("paint stage: %w", err)
	}
	for _, c := range painted.Commits {
		o.logger.Info("Applied gesture: %s", c)
	}

	if o.sink.Enabled() {
		o.saveDebug(painted)
	}

	// 3. Encode frames
	encoded, err := o.encodeStage.Execute(ctx, o.buildEncodeInput(config, painted))
	if err != nil {
		o.logger.Error("Failed to encode frames: %s", err)
		return RunResult{}, fmt.Errorf("encode stage: %w", err)
	}

	// 4. Write output files
	outputs := make([]string, 0, len(encoded.Frames))
	for _, f := range encoded.Frames {
		if err := o.fs.WriteFile(f.Path, f.Data); err != nil {
			o.logger.Error("Failed to write output: %s", err)
			return RunResult{}, fmt.Errorf("write output: %w", err)
		}
		outputs = append(outputs, f.Path)
		o.logger.Info("Output saved to %s", f.Path)
	}

	o.logger.Info("Pipeline completed successfully")

	result := RunResult{
		DataPath:      config.DataPath,
		RowCount:      loaded.RowCount,
		Columns:       painted.Columns,
		Commits:       painted.Commits,
		Outputs:       outputs,
		TotalBytes:    encoded.TotalBytes,
		Width:         config.Width,
		Height:        config.Height,
		DPR:           config.DPR,
		ContentWidth:  painted.TotalWidth,
		ContentHeight: painted.TotalHeight,
		DurationMs:    int(time.Since(started).Milliseconds()),
	}
	for _, f := range painted.Frames {
		result.Frames = append(result.Frames, FrameSummary{
			Index:      f.Index,
			ScrollTop:  f.ScrollTop,
			ScrollLeft: f.ScrollLeft,
			Stats:      f.Stats,
		})
	}
	return result, nil
}

func (o *Orchestrator) buildLoadInput(config Config) pipeline.LoadInput {
	return pipeline.LoadInput{
		Path:       config.DataPath,
		Overrides:  config.Overrides,
		Order:      config.Order,
		RowHeights: config.RowHeights,
	}
}

func (o *Orchestrator) buildPaintInput(config Config, loaded pipeline.LoadResult) pipeline.PaintInput {
	return pipeline.PaintInput{
		Columns:        loaded.Columns,
		Data:           loaded.Data,
		RowCount:       loaded.RowCount,
		RowHeights:     loaded.RowHeights,
		Order:          loaded.Order,
		Width:          config.Width,
		Height:         config.Height,
		DPR:            config.DPR,
		Theme:          config.Theme,
		RowOverscan:    config.RowOverscan,
		ColumnOverscan: config.ColumnOverscan,
		ResizeMode:     config.ResizeMode,
		MinColumnWidth: config.MinColumnWidth,
		MaxColumnWidth: config.MaxColumnWidth,
		Gestures:       config.Gestures,
		ScrollTop:      config.ScrollTop,
		ScrollLeft:     config.ScrollLeft,
		Frames:         config.Frames,
		Step:           config.Step,
	}
}

func (o *Orchestrator) buildEncodeInput(config Config, painted pipeline.PaintResult) pipeline.EncodeInput {
	return pipeline.EncodeInput{
		Frames:     painted.Frames,
		OutputPath: config.OutputPath,
		Format:     config.Format,
		Quality:    config.Quality,
		Downscale:  config.Downscale,
		Width:      config.Width,
		Height:     config.Height,
	}
}

// debugLayout is the layout.json document.
type debugLayout struct {
	Columns       []grid.Column    `json:"columns"`
	Commits       []string         `json:"commits"`
	ContentWidth  float64          `json:"contentWidth"`
	ContentHeight float64          `json:"contentHeight"`
	Frames        []pipeline.Frame `json:"frames"`
}

func marshalLayout(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}
	return data, nil
}

func (o *Orchestrator) saveDebug(painted pipeline.PaintResult) {
	layout := debugLayout{
		Columns:       painted.Columns,
		Commits:       painted.Commits,
		ContentWidth:  painted.TotalWidth,
		ContentHeight: painted.TotalHeight,
		Frames:        painted.Frames,
	}
	data, err := o.marshal(layout)
	if err != nil {
		o.logger.Warn("Failed to save debug output: %s", err)
	} else if err := o.sink.SaveLayoutJSON(data); err != nil {
		o.logger.Warn("Failed to save debug output: %s", err)
	}
	for _, c := range painted.Overlays {
		if err := o.sink.SaveOverlayFrame(c.Name, c.Image); err != nil {
			o.logger.Warn("Failed to save debug output: %s", err)
		}
	}
}

// FrameSummary describes one painted frame.
type FrameSummary struct {
	Index      int
	ScrollTop  float64
	ScrollLeft float64
	Stats      draw.FrameStats
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	DataPath string
	RowCount int
	// Columns are in final display order with committed widths.
	Columns []grid.Column
	Commits []string

	Frames     []FrameSummary
	Outputs    []string
	TotalBytes int64

	// Surface
	Width  int
	Height int
	DPR    float64

	// Content extents including header and gutter
	ContentWidth  float64
	ContentHeight float64

	DurationMs int
}
