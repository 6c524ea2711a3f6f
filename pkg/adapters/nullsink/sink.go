// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/gridshow/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveLayoutJSON does nothing.
func (s *Sink) SaveLayoutJSON(data []byte) error {
	return nil
}

// SaveFrame does nothing.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	return nil
}

// SaveOverlayFrame does nothing.
func (s *Sink) SaveOverlayFrame(name string, img image.Image) error {
	return nil
}

var _ ports.DebugSink = (*Sink)(nil)
