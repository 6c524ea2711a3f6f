package summarizer

import (
	"fmt"
	"strings"
)

// Translator translates a message key.
type Translator func(key string) string

// MarkdownFormatter formats a Summary as Markdown.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the translator used for headings and labels.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Render Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Data"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Source"), s.Source.Path)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Rows"), s.Source.RowCount)
	fmt.Fprintf(&b, "| %s | %d |\n\n", t("Columns"), len(s.Columns))

	fmt.Fprintf(&b, "## %s\n\n", t("Surface"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Surface.Preset != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Preset"), s.Surface.Preset)
	}
	fmt.Fprintf(&b, "| %s | %dx%d |\n", t("Viewport"), s.Surface.Width, s.Surface.Height)
	fmt.Fprintf(&b, "| %s | %g |\n", t("Device Pixel Ratio"), s.Surface.DPR)
	fmt.Fprintf(&b, "| %s | %.0fx%.0f |\n\n", t("Content Size"), s.Surface.ContentWidth, s.Surface.ContentHeight)

	if len(s.Columns) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Columns"))
		fmt.Fprintf(&b, "| # | ID | %s | %s | %s |\n|---|---|---|---|---|\n", t("Header"), t("Width"), t("Cell Type"))
		for i, c := range s.Columns {
			width := t("default")
			if c.Width > 0 {
				width = fmt.Sprintf("%.0f px", c.Width)
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i, c.ID, escapeCell(c.Header), width, c.CellType)
		}
		b.WriteString("\n")
	}

	if len(s.Commits) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Gestures"))
		for _, c := range s.Commits {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\n")
	}

	if len(s.Frames) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Frames"))
		fmt.Fprintf(&b, "| # | %s | %s | %s | %s | %s |\n|---|---|---|---|---|---|\n",
			t("Scroll"), t("Rows"), t("Columns"), t("Cells Drawn"), t("Cells Skipped"))
		for _, fr := range s.Frames {
			fmt.Fprintf(&b, "| %d | %.0f, %.0f | %d-%d | %d-%d | %d | %d |\n",
				fr.Index, fr.ScrollTop, fr.ScrollLeft, fr.StartRow, fr.EndRow, fr.StartCol, fr.EndCol,
				fr.CellsDrawn, fr.CellsSkipped)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	for _, file := range s.Output.Files {
		fmt.Fprintf(&b, "- %s\n", file)
	}
	fmt.Fprintf(&b, "\n%s: %s, %s: %d ms\n\n", t("Total Size"), formatBytes(s.Output.TotalBytes), t("Elapsed"), s.Output.DurationMs)

	b.WriteString("---\n\n")
	generated := s.GeneratedAt.Format("2006-01-02 15:04:05")
	if f.version != "" {
		fmt.Fprintf(&b, "*%s gridshow %s, %s*\n", t("Generated by"), f.version, generated)
	} else {
		fmt.Fprintf(&b, "*%s gridshow, %s*\n", t("Generated by"), generated)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// formatBytes formats a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
