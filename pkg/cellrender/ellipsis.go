package cellrender

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/user/gridshow/pkg/ports"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// Ellipsize returns text shortened to fit maxWidth on a single line,
// cutting on grapheme cluster boundaries and appending an ellipsis.
// Line breaks are folded into spaces.
func Ellipsize(canvas ports.Canvas, text string, maxWidth float64, font ports.FontSpec) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	text = strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " ")), " ")

	if w, _ := canvas.MeasureText(text, font); w <= maxWidth {
		return text
	}
	ew, _ := canvas.MeasureText(Ellipsis, font)
	if ew > maxWidth {
		return ""
	}

	clusters := graphemes(text)

	// Largest prefix (in clusters) that fits next to the ellipsis.
	lo, hi := 0, len(clusters)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		w, _ := canvas.MeasureText(strings.Join(clusters[:mid], ""), font)
		if w+ew <= maxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	prefix := strings.TrimRightFunc(strings.Join(clusters[:lo], ""), unicode.IsSpace)
	return prefix + Ellipsis
}

func graphemes(s string) []string {
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
