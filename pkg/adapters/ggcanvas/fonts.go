package ggcanvas

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/user/gridshow/pkg/ports"
)

const defaultFontSize = 13

type faceKey struct {
	mono bool
	bold bool
	size float64
}

// fontCache holds parsed Go fonts and the faces created from them.
type fontCache struct {
	mu    sync.Mutex
	fonts map[faceKey]*sfnt.Font
	faces map[faceKey]font.Face
}

func newFontCache() *fontCache {
	return &fontCache{
		fonts: make(map[faceKey]*sfnt.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// face returns a face rasterized at spec.Size*dpr. Parse failures fall back
// to basicfont so text is still drawn.
func (c *fontCache) face(spec ports.FontSpec, dpr float64) font.Face {
	size := spec.Size
	if size <= 0 {
		size = defaultFontSize
	}
	key := faceKey{
		mono: isMono(spec.Family),
		bold: spec.Weight == ports.WeightBold,
		size: size * dpr,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.faces[key]; ok {
		return f
	}

	f, err := c.parsed(key)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	c.faces[key] = face
	return face
}

func (c *fontCache) parsed(key faceKey) (*sfnt.Font, error) {
	fk := faceKey{mono: key.mono, bold: key.bold}
	if f, ok := c.fonts[fk]; ok {
		return f, nil
	}

	var ttf []byte
	switch {
	case key.mono && key.bold:
		ttf = gomonobold.TTF
	case key.mono:
		ttf = gomono.TTF
	case key.bold:
		ttf = gobold.TTF
	default:
		ttf = goregular.TTF
	}

	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	c.fonts[fk] = f
	return f, nil
}

func isMono(family string) bool {
	family = strings.ToLower(family)
	return strings.Contains(family, "mono") || family == "courier"
}
