package cellrender

import (
	"testing"

	"github.com/user/gridshow/pkg/mocks"
	"github.com/user/gridshow/pkg/ports"
)

func TestEllipsize(t *testing.T) {
	c := mocks.NewCanvas(100, 100, 1) // 7px per rune
	font := ports.FontSpec{Size: 13}

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     string
	}{
		{"fits", "Name", 100, "Name"},
		{"exact fit", "abcd", 28, "abcd"},
		{"truncated", "abcdefghij", 35, "abcd…"},
		{"trailing space trimmed", "ab cdefgh", 28, "ab…"},
		{"only ellipsis fits", "abcdef", 7, "…"},
		{"nothing fits", "abcdef", 5, ""},
		{"zero width", "abc", 0, ""},
		{"newlines folded", "a\nb", 100, "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ellipsize(c, tt.text, tt.maxWidth, font); got != tt.want {
				t.Errorf("Ellipsize(%q, %g) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestEllipsize_KeepsGraphemesWhole(t *testing.T) {
	c := mocks.NewCanvas(100, 100, 1)

	// e + U+0301 is two runes (14px) but one cluster.
	text := "cafe\u0301xyz"

	if got := Ellipsize(c, text, 42, ports.FontSpec{}); got != "cafe\u0301…" {
		t.Errorf("expected combined cluster kept, got %q", got)
	}
	if got := Ellipsize(c, text, 35, ports.FontSpec{}); got != "caf…" {
		t.Errorf("expected cut before the cluster, got %q", got)
	}
}
