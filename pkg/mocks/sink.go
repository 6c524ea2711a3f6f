package mocks

import (
	"image"
	"sync"

	"github.com/user/gridshow/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	LayoutJSON    []byte
	Frames        map[int]image.Image
	OverlayFrames map[string]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:       enabled,
		Frames:        make(map[int]image.Image),
		OverlayFrames: make(map[string]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveLayoutJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LayoutJSON = data
	return nil
}

func (m *DebugSink) SaveFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[index] = img
	return nil
}

func (m *DebugSink) SaveOverlayFrame(name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OverlayFrames[name] = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
