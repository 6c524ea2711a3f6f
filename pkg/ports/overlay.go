package ports

// Cursor is a pointer cursor affordance requested by an interaction.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorColumnResize
	CursorGrabbing
)

// String returns the CSS-style name of the cursor.
func (c Cursor) String() string {
	switch c {
	case CursorColumnResize:
		return "col-resize"
	case CursorGrabbing:
		return "grabbing"
	default:
		return "default"
	}
}

// DragPreview describes the floating copy of a dragged header.
// Coordinates are viewport (fixed) coordinates.
type DragPreview struct {
	Label  string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// DropIndicator describes the vertical marker at a candidate drop boundary.
type DropIndicator struct {
	X      float64
	Top    float64
	Height float64
}

// OverlaySink renders interaction affordances on behalf of the controllers.
// Hosts adapt it to whatever UI toolkit they draw with.
type OverlaySink interface {
	// SetCursor changes the global cursor affordance.
	SetCursor(c Cursor)

	// ShowDragPreview creates or replaces the drag preview.
	ShowDragPreview(p DragPreview)

	// ShowDropIndicator creates or moves the drop indicator.
	ShowDropIndicator(d DropIndicator)

	// HideDragOverlay removes the preview and the indicator. It must be
	// safe to call when nothing is shown.
	HideDragOverlay()
}
