package interaction

import (
	"slices"

	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/ports"
)

// DragSource describes the header cell a drag starts from, in viewport
// coordinates.
type DragSource struct {
	Label string
	Rect  grid.Rect
	// IndicatorHeight is the drop indicator length. Zero uses Rect.Height.
	IndicatorHeight float64
}

// DragSession is the live state of a drag gesture. DropTargetIndex is a
// boundary in [0, N]: the dragged column is inserted before that column.
type DragSession struct {
	DraggedIndex    int
	DraggedID       string
	DropTargetIndex int
	Source          DragSource

	// Pointer offset inside the source, so the preview does not jump.
	grabX, grabY float64
}

// DragController runs column drag-reorder gestures: Idle -> Dragging -> Idle.
type DragController struct {
	overlay ports.OverlaySink
	logger  ports.Logger
	session *DragSession
}

// NewDragController creates an idle controller.
func NewDragController(overlay ports.OverlaySink, logger ports.Logger) *DragController {
	return &DragController{
		overlay: overlay,
		logger:  logger.WithComponent("drag"),
	}
}

// StartDrag opens a session, shows the preview and indicator and sets the
// grabbing cursor.
func (c *DragController) StartDrag(columnIndex int, columnID string, source DragSource, pointerX, pointerY float64) {
	s := &DragSession{
		DraggedIndex:    columnIndex,
		DraggedID:       columnID,
		DropTargetIndex: columnIndex,
		Source:          source,
		grabX:           pointerX - source.Rect.X,
		grabY:           pointerY - source.Rect.Y,
	}
	c.session = s

	c.overlay.SetCursor(ports.CursorGrabbing)
	c.showPreview(pointerX, pointerY)
	c.showIndicator(source.Rect.X)
	c.logger.Debug("Drag started: column %s from %d", columnID, columnIndex)
}

// UpdateDrag moves the preview to the pointer and the indicator to
// targetPixelX, and records targetIndex as the pending drop boundary.
// It reports false when idle.
func (c *DragController) UpdateDrag(targetIndex int, pointerX, pointerY, targetPixelX float64) bool {
	if c.session == nil {
		return false
	}
	c.session.DropTargetIndex = targetIndex
	c.showPreview(pointerX, pointerY)
	c.showIndicator(targetPixelX)
	return true
}

// EndDrag tears down the overlay and returns order with the dragged id
// moved to the drop boundary. The result is always a permutation of order;
// when idle, or when the dragged id is not in order, it is an unchanged copy.
func (c *DragController) EndDrag(order []string) []string {
	out := slices.Clone(order)
	s := c.session
	if s == nil {
		return out
	}
	c.teardown()

	from := s.DraggedIndex
	if from < 0 || from >= len(out) || out[from] != s.DraggedID {
		from = slices.Index(out, s.DraggedID)
		if from < 0 {
			c.logger.Debug("Drag dropped: column %s not in order", s.DraggedID)
			return out
		}
	}

	to := min(max(s.DropTargetIndex, 0), len(out))
	if to > from {
		to--
	}
	if to == from {
		return out
	}

	id := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, id)
	c.logger.Debug("Drag committed: column %s from %d to %d", id, from, to)
	return out
}

// Cancel discards the session and its overlay. Safe to call when idle.
func (c *DragController) Cancel() {
	if c.session == nil {
		return
	}
	c.teardown()
}

// Active reports whether a session is open.
func (c *DragController) Active() bool {
	return c.session != nil
}

// Session returns a copy of the live session.
func (c *DragController) Session() (DragSession, bool) {
	if c.session == nil {
		return DragSession{}, false
	}
	return *c.session, true
}

func (c *DragController) showPreview(pointerX, pointerY float64) {
	s := c.session
	c.overlay.ShowDragPreview(ports.DragPreview{
		Label:  s.Source.Label,
		X:      pointerX - s.grabX,
		Y:      pointerY - s.grabY,
		Width:  s.Source.Rect.Width,
		Height: s.Source.Rect.Height,
	})
}

func (c *DragController) showIndicator(x float64) {
	s := c.session
	h := s.Source.IndicatorHeight
	if h <= 0 {
		h = s.Source.Rect.Height
	}
	c.overlay.ShowDropIndicator(ports.DropIndicator{
		X:      x,
		Top:    s.Source.Rect.Y,
		Height: h,
	})
}

func (c *DragController) teardown() {
	c.session = nil
	c.overlay.HideDragOverlay()
	c.overlay.SetCursor(ports.CursorDefault)
}
