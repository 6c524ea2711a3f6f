// Package gridshow provides a high-level API for rendering data sets with
// the grid engine.
package gridshow

import (
	"github.com/user/gridshow/pkg/draw"
	"github.com/user/gridshow/pkg/interaction"
	"github.com/user/gridshow/pkg/orchestrator"
	"github.com/user/gridshow/pkg/pipeline"
)

// Density represents a row density preset name.
type Density string

const (
	DensityCompact     Density = "compact"
	DensityStandard    Density = "standard"
	DensityComfortable Density = "comfortable"
)

// DensitySettings contains the geometry a density preset controls.
type DensitySettings struct {
	RowHeight    float64
	HeaderHeight float64
	CellPadding  float64
	FontSize     float64
}

// GetDensitySettings returns the settings for the given preset.
func GetDensitySettings(d Density) DensitySettings {
	switch d {
	case DensityCompact:
		return DensitySettings{RowHeight: 24, HeaderHeight: 28, CellPadding: 4, FontSize: 12}
	case DensityComfortable:
		return DensitySettings{RowHeight: 44, HeaderHeight: 48, CellPadding: 12, FontSize: 14}
	default: // standard
		return DensitySettings{RowHeight: 32, HeaderHeight: 36, CellPadding: 8, FontSize: 13}
	}
}

// Surface size limits enforced by Build.
const (
	MinSurfaceSize = 64
	MaxSurfaceSize = 8192
	MaxDPR         = 4
)

// Config represents the configuration for a gridshow render.
type Config struct {
	// Surface
	Width   int     // Viewport width in CSS pixels
	Height  int     // Viewport height in CSS pixels
	DPR     float64 // Device pixel ratio of the backing bitmap
	Density Density

	// Theme
	Theme draw.Theme

	// Engine
	RowOverscan    int
	ColumnOverscan int
	ResizeMode     interaction.ResizeMode
	MinColumnWidth float64
	MaxColumnWidth float64

	// Columns and rows
	Overrides  []pipeline.ColumnOverride
	Order      []string
	RowHeights map[int]float64

	// Interaction replay
	Gestures []pipeline.Gesture

	// Frames
	ScrollTop  float64
	ScrollLeft float64
	Frames     int     // Number of frames to paint
	Step       float64 // Vertical scroll between frames

	// Encoding
	Format    string // "png" or "jpeg"
	Quality   int    // JPEG quality (1-100)
	Downscale bool   // Resize HiDPI frames to CSS pixel size
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with standard density defaults.
func NewConfigBuilder() *ConfigBuilder {
	b := &ConfigBuilder{config: defaults()}
	return b.WithDensity(DensityStandard)
}

func defaults() Config {
	return Config{
		Width:  800,
		Height: 600,
		DPR:    1,
		Theme:  draw.DefaultTheme(),

		RowOverscan:    1,
		ColumnOverscan: 1,
		ResizeMode:     interaction.ResizeOnChange,
		MinColumnWidth: interaction.DefaultMinWidth,
		MaxColumnWidth: interaction.DefaultMaxWidth,

		Frames: 1,

		Format:  "png",
		Quality: 90,
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	cfg.Width = min(max(cfg.Width, MinSurfaceSize), MaxSurfaceSize)
	cfg.Height = min(max(cfg.Height, MinSurfaceSize), MaxSurfaceSize)

	if cfg.DPR <= 0 {
		cfg.DPR = 1
	}
	cfg.DPR = min(cfg.DPR, MaxDPR)

	if cfg.Frames < 1 {
		cfg.Frames = 1
	}
	if cfg.Step < 0 {
		cfg.Step = 0
	}
	cfg.ScrollTop = max(cfg.ScrollTop, 0)
	cfg.ScrollLeft = max(cfg.ScrollLeft, 0)

	cfg.RowOverscan = max(cfg.RowOverscan, 0)
	cfg.ColumnOverscan = max(cfg.ColumnOverscan, 0)

	if cfg.MinColumnWidth <= 0 {
		cfg.MinColumnWidth = interaction.DefaultMinWidth
	}
	if cfg.MaxColumnWidth < cfg.MinColumnWidth {
		cfg.MaxColumnWidth = cfg.MinColumnWidth
	}

	if cfg.Quality < 1 || cfg.Quality > 100 {
		cfg.Quality = 90
	}
	return cfg
}

// WithWidth sets the viewport width.
func (b *ConfigBuilder) WithWidth(width int) *ConfigBuilder {
	b.config.Width = width
	return b
}

// WithHeight sets the viewport height.
func (b *ConfigBuilder) WithHeight(height int) *ConfigBuilder {
	b.config.Height = height
	return b
}

// WithDPR sets the device pixel ratio. Values above MaxDPR are clamped.
func (b *ConfigBuilder) WithDPR(dpr float64) *ConfigBuilder {
	b.config.DPR = dpr
	return b
}

// WithDensity applies a density preset to the theme geometry.
func (b *ConfigBuilder) WithDensity(d Density) *ConfigBuilder {
	s := GetDensitySettings(d)
	b.config.Density = d
	b.config.Theme.DefaultRowHeight = s.RowHeight
	b.config.Theme.HeaderHeight = s.HeaderHeight
	b.config.Theme.CellPadding = s.CellPadding
	b.config.Theme.FontSize = s.FontSize
	b.config.Theme.HeaderFontSize = s.FontSize
	return b
}

// WithThemePatch merges a partial theme over the current one.
func (b *ConfigBuilder) WithThemePatch(patch draw.ThemePatch) *ConfigBuilder {
	b.config.Theme = patch.Apply(b.config.Theme)
	return b
}

// WithRowNumbers shows a row-number gutter of the given width. Zero hides it.
func (b *ConfigBuilder) WithRowNumbers(width float64) *ConfigBuilder {
	b.config.Theme.GutterWidth = max(width, 0)
	return b
}

// WithOverscan sets how many extra rows and columns are drawn beyond the
// viewport.
func (b *ConfigBuilder) WithOverscan(rows, columns int) *ConfigBuilder {
	b.config.RowOverscan = rows
	b.config.ColumnOverscan = columns
	return b
}

// WithResizeMode sets when live resize widths are applied.
func (b *ConfigBuilder) WithResizeMode(mode interaction.ResizeMode) *ConfigBuilder {
	b.config.ResizeMode = mode
	return b
}

// WithColumnWidthBounds sets the resize clamp range.
func (b *ConfigBuilder) WithColumnWidthBounds(minWidth, maxWidth float64) *ConfigBuilder {
	b.config.MinColumnWidth = minWidth
	b.config.MaxColumnWidth = maxWidth
	return b
}

// WithColumnOverrides sets per-column adjustments.
func (b *ConfigBuilder) WithColumnOverrides(overrides []pipeline.ColumnOverride) *ConfigBuilder {
	b.config.Overrides = overrides
	return b
}

// WithColumnOrder sets the column ids to show first.
func (b *ConfigBuilder) WithColumnOrder(order []string) *ConfigBuilder {
	b.config.Order = order
	return b
}

// WithRowHeights sets explicit heights for individual rows.
func (b *ConfigBuilder) WithRowHeights(heights map[int]float64) *ConfigBuilder {
	b.config.RowHeights = heights
	return b
}

// WithGestures sets the header gestures replayed before painting.
func (b *ConfigBuilder) WithGestures(gestures []pipeline.Gesture) *ConfigBuilder {
	b.config.Gestures = gestures
	return b
}

// WithScroll sets the scroll position of the first frame.
func (b *ConfigBuilder) WithScroll(top, left float64) *ConfigBuilder {
	b.config.ScrollTop = top
	b.config.ScrollLeft = left
	return b
}

// WithFrames paints n frames, scrolling down by step between them.
func (b *ConfigBuilder) WithFrames(n int, step float64) *ConfigBuilder {
	b.config.Frames = n
	b.config.Step = step
	return b
}

// WithFormat sets the output image format and JPEG quality.
func (b *ConfigBuilder) WithFormat(format string, quality int) *ConfigBuilder {
	b.config.Format = format
	b.config.Quality = quality
	return b
}

// WithDownscale resizes HiDPI frames to CSS pixel size before encoding.
func (b *ConfigBuilder) WithDownscale(downscale bool) *ConfigBuilder {
	b.config.Downscale = downscale
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(dataPath, outputPath string) orchestrator.Config {
	return orchestrator.Config{
		DataPath:   dataPath,
		OutputPath: outputPath,

		Overrides:  c.Overrides,
		Order:      c.Order,
		RowHeights: c.RowHeights,

		Width:  c.Width,
		Height: c.Height,
		DPR:    c.DPR,
		Theme:  c.Theme,

		RowOverscan:    c.RowOverscan,
		ColumnOverscan: c.ColumnOverscan,
		ResizeMode:     c.ResizeMode,
		MinColumnWidth: c.MinColumnWidth,
		MaxColumnWidth: c.MaxColumnWidth,

		Gestures: c.Gestures,

		ScrollTop:  c.ScrollTop,
		ScrollLeft: c.ScrollLeft,
		Frames:     c.Frames,
		Step:       c.Step,

		Format:    c.Format,
		Quality:   c.Quality,
		Downscale: c.Downscale,
	}
}
