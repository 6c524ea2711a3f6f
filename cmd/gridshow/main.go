// Package main provides the CLI entry point for gridshow.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/gridshow/pkg/adapters/canvasoverlay"
	"github.com/user/gridshow/pkg/adapters/filesink"
	"github.com/user/gridshow/pkg/adapters/ggcanvas"
	"github.com/user/gridshow/pkg/adapters/logger"
	"github.com/user/gridshow/pkg/adapters/nullsink"
	"github.com/user/gridshow/pkg/adapters/osfilesystem"
	"github.com/user/gridshow/pkg/cellrender"
	"github.com/user/gridshow/pkg/config"
	"github.com/user/gridshow/pkg/datasource"
	"github.com/user/gridshow/pkg/orchestrator"
	"github.com/user/gridshow/pkg/ports"
	"github.com/user/gridshow/pkg/stages/encode"
	"github.com/user/gridshow/pkg/stages/load"
	"github.com/user/gridshow/pkg/stages/paint"
	"github.com/user/gridshow/pkg/summarizer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "gridshow",
		Usage:       l10n.T("Render data grids to images"),
		Description: l10n.T("gridshow paints CSV and JSON tables with a virtualized canvas grid engine."),
		HideVersion: true,
		Commands: []*cli.Command{
			renderCommand(),
			columnsCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("gridshow version %s", version))
					return nil
				},
			},
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     l10n.T("Render a data file as grid frames"),
		ArgsUsage: "<data.csv|data.tsv|data.json>",
		Flags: []cli.Flag{
			// Output
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Category: l10n.T("Output"), Usage: l10n.T("Output image path (required)")},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Category: l10n.T("Output"), Usage: l10n.T("Image format (png, jpeg)")},
			&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Category: l10n.T("Output"), Usage: l10n.T("JPEG quality (1-100)")},
			&cli.BoolFlag{Name: "downscale", Category: l10n.T("Output"), Usage: l10n.T("Resize HiDPI frames to CSS pixel size")},
			&cli.StringFlag{Name: "summary", Category: l10n.T("Output"), Usage: l10n.T("Output execution summary to file (Markdown format)")},

			// Preset
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Category: l10n.T("Preset"), Usage: l10n.T("Config file (YAML or TOML)")},
			&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Category: l10n.T("Preset"), Usage: l10n.T("Density preset (compact, standard, comfortable)")},

			// Surface
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Category: l10n.T("Surface"), Usage: l10n.T("Viewport width in CSS pixels (default: 800)")},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Category: l10n.T("Surface"), Usage: l10n.T("Viewport height in CSS pixels (default: 600)")},
			&cli.Float64Flag{Name: "dpr", Category: l10n.T("Surface"), Usage: l10n.T("Device pixel ratio (default: 1)")},
			&cli.Float64Flag{Name: "row-numbers", Category: l10n.T("Surface"), Usage: l10n.T("Row number gutter width in pixels (0 = hidden)")},

			// Scrolling
			&cli.Float64Flag{Name: "scroll-top", Category: l10n.T("Scrolling"), Usage: l10n.T("Vertical scroll position of the first frame")},
			&cli.Float64Flag{Name: "scroll-left", Category: l10n.T("Scrolling"), Usage: l10n.T("Horizontal scroll position")},
			&cli.IntFlag{Name: "frames", Aliases: []string{"n"}, Category: l10n.T("Scrolling"), Usage: l10n.T("Number of frames to paint")},
			&cli.Float64Flag{Name: "step", Category: l10n.T("Scrolling"), Usage: l10n.T("Vertical scroll distance between frames")},
			&cli.IntFlag{Name: "overscan", Category: l10n.T("Scrolling"), Usage: l10n.T("Extra rows and columns drawn beyond the viewport")},

			// Interaction
			&cli.StringFlag{Name: "resize-mode", Category: l10n.T("Interaction"), Usage: l10n.T("When resize widths apply (onChange, onEnd)")},

			// Debug
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Category: l10n.T("Debug"), Usage: l10n.T("Enable debug output")},
			&cli.StringFlag{Name: "debug-dir", Category: l10n.T("Debug"), Usage: l10n.T("Directory for debug output")},

			// Logging
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Category: l10n.T("Logging"), Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Category: l10n.T("Logging"), Usage: l10n.T("Suppress all log output")},
		},
		Action: runRender,
	}
}

func columnsCommand() *cli.Command {
	return &cli.Command{
		Name:      "columns",
		Usage:     l10n.T("List the columns detected in a data file"),
		ArgsUsage: "<data.csv|data.tsv|data.json>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(l10n.T("Data file argument is required"), 2)
			}
			table, err := datasource.Load(osfilesystem.New(), c.Args().First())
			if err != nil {
				return err
			}
			w := c.App.Writer
			fmt.Fprintln(w, l10n.F("%d rows", table.RowCount()))
			for _, col := range table.Columns {
				fmt.Fprintf(w, "%-20s %-10s %s\n", col.ID, col.CellType, col.Header)
			}
			return nil
		},
	}
}

// runRender executes the render command.
func runRender(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("Data file argument is required"), 2)
	}
	dataPath := c.Args().First()
	outputPath := c.String("output")

	// Create logger
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	fs := osfilesystem.New()

	cfg, err := loadConfig(c, fs)
	if err != nil {
		return err
	}
	builder, err := cfg.Builder()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.IsSet("row-numbers") {
		builder.WithRowNumbers(c.Float64("row-numbers"))
	}
	settings := builder.Build()

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	renderer := ggcanvas.New()
	registry := cellrender.NewRegistry(log)

	style := canvasoverlay.DefaultStyle()
	style.Accent = settings.Theme.AccentColor
	overlay := canvasoverlay.New(style)

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	loadStage := load.NewStage(fs, log)
	paintStage := paint.NewStage(renderer, registry, overlay, log)
	encodeStage := encode.NewStage(renderer, sink, log, runtime.NumCPU())

	orch := orchestrator.New(loadStage, paintStage, encodeStage, fs, sink, log)

	log.Info("Rendering %s (%s preset)...", dataPath, settings.Density)

	result, err := orch.Run(ctx, settings.ToOrchestratorConfig(dataPath, outputPath))
	if err != nil {
		return err
	}

	if path := c.String("summary"); path != "" {
		summary := buildSummary(result, string(settings.Density), settings.Theme.DefaultColumnWidth)
		writer := summarizer.NewWriter(
			summarizer.NewMarkdownFormatter(
				summarizer.WithTranslator(l10n.T),
				summarizer.WithVersion(version),
			),
			fs,
		)
		if err := writer.Write(path, summary); err != nil {
			log.Error("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", path)
		}
	}
	return nil
}

// loadConfig reads the config file, if any, and applies CLI overrides.
func loadConfig(c *cli.Context, fs ports.FileSystem) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadFromFile(fs, path); err != nil {
			return cfg, err
		}
	}

	if c.IsSet("preset") {
		cfg.Preset = c.String("preset")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("dpr") {
		cfg.DPR = c.Float64("dpr")
	}
	if c.IsSet("scroll-top") {
		cfg.ScrollTop = c.Float64("scroll-top")
	}
	if c.IsSet("scroll-left") {
		cfg.ScrollLeft = c.Float64("scroll-left")
	}
	if c.IsSet("frames") {
		cfg.Frames = c.Int("frames")
	}
	if c.IsSet("step") {
		cfg.Step = c.Float64("step")
	}
	if c.IsSet("overscan") {
		cfg.Overscan.Rows = c.Int("overscan")
		cfg.Overscan.Columns = c.Int("overscan")
	}
	if c.IsSet("resize-mode") {
		cfg.ResizeMode = c.String("resize-mode")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("downscale") {
		cfg.Downscale = c.Bool("downscale")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	return cfg, nil
}
