package datasource

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/user/gridshow/pkg/grid"
)

// dateLayouts are tried in order when recognizing date cells.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// parseDate parses s with the first matching layout.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "x", "✓":
		return true, true
	case "false", "no", "n", "":
		return false, true
	}
	return false, false
}

func isLink(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// inferType picks the most specific cell type every non-empty sample
// satisfies. Columns with no samples are text.
func inferType(samples []string) string {
	var n int
	number, checkbox, date, link := true, true, true, true
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n++
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			number = false
		}
		if _, ok := parseBool(s); !ok {
			checkbox = false
		}
		if _, ok := parseDate(s); !ok {
			date = false
		}
		if !isLink(s) {
			link = false
		}
	}

	switch {
	case n == 0:
		return grid.CellText
	case number:
		return grid.CellNumber
	case checkbox:
		return grid.CellCheckbox
	case date:
		return grid.CellDate
	case link:
		return grid.CellLink
	default:
		return grid.CellText
	}
}

// convert turns a raw string into the value type the cell renderer for
// cellType expects. Unparseable values stay strings.
func convert(s, cellType string) any {
	s = strings.TrimSpace(s)
	switch cellType {
	case grid.CellNumber, grid.CellRating:
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case grid.CellCheckbox:
		if b, ok := parseBool(s); ok {
			return b
		}
	case grid.CellDate:
		if t, ok := parseDate(s); ok {
			return t
		}
	}
	return s
}

// columnID derives a stable id from a header label.
func columnID(header string, i int, seen map[string]bool) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(header))
	if id == "" {
		id = "col" + strconv.Itoa(i)
	}
	base := id
	for n := 2; seen[id]; n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	seen[id] = true
	return id
}
