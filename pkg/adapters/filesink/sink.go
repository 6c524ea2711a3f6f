// Package filesink provides a file-based debug sink implementation.
//
// Layout under the base directory:
//
//	layout.json
//	frames/frame-0000.png
//	overlay/<name>.png
package filesink

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/gridshow/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveLayoutJSON saves the column/row layout as JSON.
func (s *Sink) SaveLayoutJSON(data []byte) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	path := filepath.Join(s.baseDir, "layout.json")
	return s.fs.WriteFile(path, data)
}

// SaveFrame saves a rendered frame as PNG.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	return s.savePNG("frames", fmt.Sprintf("frame-%04d.png", index), img)
}

// SaveOverlayFrame saves a frame with the interaction overlay composited.
func (s *Sink) SaveOverlayFrame(name string, img image.Image) error {
	return s.savePNG("overlay", sanitize(name)+".png", img)
}

func (s *Sink) savePNG(subdir, name string, img image.Image) error {
	dir := filepath.Join(s.baseDir, subdir)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.fs.WriteFile(filepath.Join(dir, name), data)
}

// sanitize keeps overlay names safe as file names.
func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" {
		return "overlay"
	}
	return name
}

var _ ports.DebugSink = (*Sink)(nil)
