package mocks

import "github.com/user/gridshow/pkg/ports"

// OverlaySink is a mock implementation of ports.OverlaySink that remembers
// the last intent of each kind.
type OverlaySink struct {
	Cursor        ports.Cursor
	Preview       *ports.DragPreview
	Indicator     *ports.DropIndicator
	CursorChanges int
	Hides         int
}

func (m *OverlaySink) SetCursor(c ports.Cursor) {
	m.Cursor = c
	m.CursorChanges++
}

func (m *OverlaySink) ShowDragPreview(p ports.DragPreview) {
	m.Preview = &p
}

func (m *OverlaySink) ShowDropIndicator(d ports.DropIndicator) {
	m.Indicator = &d
}

func (m *OverlaySink) HideDragOverlay() {
	m.Preview = nil
	m.Indicator = nil
	m.Hides++
}

// Visible reports whether a preview or indicator is shown.
func (m *OverlaySink) Visible() bool {
	return m.Preview != nil || m.Indicator != nil
}

var _ ports.OverlaySink = (*OverlaySink)(nil)
