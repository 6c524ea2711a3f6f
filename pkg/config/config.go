// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/user/gridshow/pkg/draw"
	"github.com/user/gridshow/pkg/gridshow"
	"github.com/user/gridshow/pkg/interaction"
	"github.com/user/gridshow/pkg/pipeline"
	"github.com/user/gridshow/pkg/ports"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config represents the full configuration for gridshow.
type Config struct {
	// Surface
	Preset string  `yaml:"preset" toml:"preset"`
	Width  int     `yaml:"width" toml:"width"`
	Height int     `yaml:"height" toml:"height"`
	DPR    float64 `yaml:"dpr" toml:"dpr"`

	// Theme
	Theme ThemeConfig `yaml:"theme" toml:"theme"`

	// Columns and rows
	Columns    []pipeline.ColumnOverride `yaml:"columns" toml:"columns"`
	Order      []string                  `yaml:"order" toml:"order"`
	RowHeights map[string]float64        `yaml:"row_heights" toml:"row_heights"`

	// Engine
	ResizeMode     string         `yaml:"resize_mode" toml:"resize_mode"`
	MinColumnWidth float64        `yaml:"min_column_width" toml:"min_column_width"`
	MaxColumnWidth float64        `yaml:"max_column_width" toml:"max_column_width"`
	Overscan       OverscanConfig `yaml:"overscan" toml:"overscan"`

	// Interaction replay
	Gestures []pipeline.Gesture `yaml:"gestures" toml:"gestures"`

	// Frames
	ScrollTop  float64 `yaml:"scroll_top" toml:"scroll_top"`
	ScrollLeft float64 `yaml:"scroll_left" toml:"scroll_left"`
	Frames     int     `yaml:"frames" toml:"frames"`
	Step       float64 `yaml:"step" toml:"step"`

	// Encoding
	Format    string `yaml:"format" toml:"format"`
	Quality   int    `yaml:"quality" toml:"quality"`
	Downscale bool   `yaml:"downscale" toml:"downscale"`

	// Debug
	Debug    bool   `yaml:"debug" toml:"debug"`
	DebugDir string `yaml:"debug_dir" toml:"debug_dir"`
}

// OverscanConfig sets how many extra rows and columns are drawn.
type OverscanConfig struct {
	Rows    int `yaml:"rows" toml:"rows"`
	Columns int `yaml:"columns" toml:"columns"`
}

// ThemeConfig represents theming options. Colors are hex strings and zero
// values leave the preset's theme unchanged.
type ThemeConfig struct {
	BackgroundColor       string `yaml:"background_color" toml:"background_color"`
	CellBackgroundColor   string `yaml:"cell_background_color" toml:"cell_background_color"`
	TextColor             string `yaml:"text_color" toml:"text_color"`
	HeaderBackgroundColor string `yaml:"header_background_color" toml:"header_background_color"`
	HeaderTextColor       string `yaml:"header_text_color" toml:"header_text_color"`
	GridLineColor         string `yaml:"grid_line_color" toml:"grid_line_color"`
	AccentColor           string `yaml:"accent_color" toml:"accent_color"`

	FontFamily       string  `yaml:"font_family" toml:"font_family"`
	FontSize         float64 `yaml:"font_size" toml:"font_size"`
	HeaderFontWeight string  `yaml:"header_font_weight" toml:"header_font_weight"`
	HeaderFontSize   float64 `yaml:"header_font_size" toml:"header_font_size"`

	CellPadding  float64 `yaml:"cell_padding" toml:"cell_padding"`
	BorderWidth  float64 `yaml:"border_width" toml:"border_width"`
	RowHeight    float64 `yaml:"row_height" toml:"row_height"`
	ColumnWidth  float64 `yaml:"column_width" toml:"column_width"`
	HeaderHeight float64 `yaml:"header_height" toml:"header_height"`
	GutterWidth  float64 `yaml:"gutter_width" toml:"gutter_width"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Surface
		Preset: string(gridshow.DensityStandard),
		Width:  800,
		Height: 600,
		DPR:    1,

		// Engine
		ResizeMode:     "onChange",
		MinColumnWidth: interaction.DefaultMinWidth,
		MaxColumnWidth: interaction.DefaultMaxWidth,
		Overscan:       OverscanConfig{Rows: 1, Columns: 1},

		// Frames
		Frames: 1,

		// Encoding
		Format:  "png",
		Quality: 90,

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML or TOML file, chosen by
// extension. Unset keys keep their default values.
func LoadFromFile(fs ports.FileSystem, path string) (Config, error) {
	cfg := Defaults()

	data, err := fs.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	return cfg, nil
}

// ParseColor parses a hex color string ("#rgb" or "#rrggbb") to color.Color.
func ParseColor(hex string) (color.Color, error) {
	if hex == "" {
		return nil, errors.New("empty color")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Patch converts the theme settings into a partial theme.
func (tc ThemeConfig) Patch() (draw.ThemePatch, error) {
	var p draw.ThemePatch

	colors := []struct {
		hex string
		dst *color.Color
	}{
		{tc.BackgroundColor, &p.Background},
		{tc.CellBackgroundColor, &p.CellBackground},
		{tc.TextColor, &p.CellTextColor},
		{tc.HeaderBackgroundColor, &p.HeaderBackground},
		{tc.HeaderTextColor, &p.HeaderTextColor},
		{tc.GridLineColor, &p.GridLineColor},
		{tc.AccentColor, &p.AccentColor},
	}
	for _, c := range colors {
		if c.hex == "" {
			continue
		}
		v, err := ParseColor(c.hex)
		if err != nil {
			return p, err
		}
		*c.dst = v
	}

	if tc.FontFamily != "" {
		p.FontFamily = &tc.FontFamily
	}
	if tc.HeaderFontWeight != "" {
		w, err := parseFontWeight(tc.HeaderFontWeight)
		if err != nil {
			return p, err
		}
		p.HeaderFontWeight = &w
	}

	p.FontSize = positive(tc.FontSize)
	p.HeaderFontSize = positive(tc.HeaderFontSize)
	p.CellPadding = positive(tc.CellPadding)
	p.BorderWidth = positive(tc.BorderWidth)
	p.DefaultRowHeight = positive(tc.RowHeight)
	p.DefaultColumnWidth = positive(tc.ColumnWidth)
	p.HeaderHeight = positive(tc.HeaderHeight)
	p.GutterWidth = positive(tc.GutterWidth)
	return p, nil
}

func positive(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

func parseFontWeight(s string) (ports.FontWeight, error) {
	switch strings.ToLower(s) {
	case "normal", "regular", "400":
		return ports.WeightNormal, nil
	case "bold", "700":
		return ports.WeightBold, nil
	}
	return ports.WeightNormal, fmt.Errorf("invalid font weight %q", s)
}

// RowHeightMap converts the row_heights table, keyed by row index, into
// an index map.
func (c Config) RowHeightMap() (map[int]float64, error) {
	if len(c.RowHeights) == 0 {
		return nil, nil
	}
	out := make(map[int]float64, len(c.RowHeights))
	for k, v := range c.RowHeights {
		row, err := strconv.Atoi(k)
		if err != nil || row < 0 {
			return nil, fmt.Errorf("invalid row index %q in row_heights", k)
		}
		if v <= 0 {
			return nil, fmt.Errorf("row %d: height must be positive", row)
		}
		out[row] = v
	}
	return out, nil
}

// Builder returns a gridshow.ConfigBuilder populated from the file settings.
func (c Config) Builder() (*gridshow.ConfigBuilder, error) {
	patch, err := c.Theme.Patch()
	if err != nil {
		return nil, err
	}
	rowHeights, err := c.RowHeightMap()
	if err != nil {
		return nil, err
	}

	b := gridshow.NewConfigBuilder().
		WithDensity(gridshow.Density(c.Preset)).
		WithThemePatch(patch).
		WithWidth(c.Width).
		WithHeight(c.Height).
		WithDPR(c.DPR).
		WithOverscan(c.Overscan.Rows, c.Overscan.Columns).
		WithResizeMode(interaction.ParseResizeMode(c.ResizeMode)).
		WithColumnWidthBounds(c.MinColumnWidth, c.MaxColumnWidth).
		WithColumnOverrides(c.Columns).
		WithColumnOrder(c.Order).
		WithRowHeights(rowHeights).
		WithGestures(c.Gestures).
		WithScroll(c.ScrollTop, c.ScrollLeft).
		WithFrames(c.Frames, c.Step).
		WithFormat(c.Format, c.Quality).
		WithDownscale(c.Downscale)
	return b, nil
}
