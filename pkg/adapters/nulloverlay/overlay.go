// Package nulloverlay provides an OverlaySink that ignores every intent.
package nulloverlay

import "github.com/user/gridshow/pkg/ports"

// Overlay discards cursor and drag affordances.
type Overlay struct{}

// New creates a new null overlay.
func New() *Overlay {
	return &Overlay{}
}

func (Overlay) SetCursor(ports.Cursor) {}
func (Overlay) ShowDragPreview(ports.DragPreview) {}
func (Overlay) ShowDropIndicator(ports.DropIndicator) {}
func (Overlay) HideDragOverlay() {}

var _ ports.OverlaySink = (*Overlay)(nil)
