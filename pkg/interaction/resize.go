// Package interaction holds the column resize and drag-reorder state
// machines. Controllers never touch the position index; they return
// proposals and committed results, and request cursor and overlay changes
// through a ports.OverlaySink.
//
// At most one session per controller is active at a time. Hosts must call
// End or Cancel on pointer-leave and pointer-cancel; a session is not
// expired internally.
package interaction

import (
	"math"

	"github.com/user/gridshow/pkg/ports"
)

// Width bounds applied when StartResize is given no options.
const (
	DefaultMinWidth = 50
	DefaultMaxWidth = 800
)

// ResizeMode tells the host when to apply proposed widths.
type ResizeMode int

const (
	// ResizeOnChange applies every proposal live.
	ResizeOnChange ResizeMode = iota
	// ResizeOnEnd applies only the committed width.
	ResizeOnEnd
)

// String returns the mode name.
func (m ResizeMode) String() string {
	if m == ResizeOnEnd {
		return "onEnd"
	}
	return "onChange"
}

// ParseResizeMode parses "onChange" or "onEnd". Anything else is onChange.
func ParseResizeMode(s string) ResizeMode {
	switch s {
	case "onEnd", "onend", "end":
		return ResizeOnEnd
	default:
		return ResizeOnChange
	}
}

// ResizeSession is the live state of a resize gesture.
type ResizeSession struct {
	ColumnIndex   int
	ColumnID      string
	StartPointerX float64
	StartWidth    float64
	MinWidth      float64
	MaxWidth      float64
	CurrentWidth  float64
}

// ResizeResult is the committed outcome of a resize gesture.
type ResizeResult struct {
	ColumnIndex int     `json:"columnIndex"`
	ColumnID    string  `json:"columnId"`
	NewWidth    float64 `json:"newWidth"`
}

// ResizeOption customizes a resize session.
type ResizeOption func(*ResizeSession)

// WithWidthBounds overrides the [min, max] clamp of a session.
func WithWidthBounds(minWidth, maxWidth float64) ResizeOption {
	return func(s *ResizeSession) {
		s.MinWidth = minWidth
		s.MaxWidth = maxWidth
	}
}

// ResizeController runs column resize gestures: Idle -> Resizing -> Idle.
type ResizeController struct {
	overlay ports.OverlaySink
	mode    ResizeMode
	logger  ports.Logger
	session *ResizeSession
}

// NewResizeController creates an idle controller.
func NewResizeController(overlay ports.OverlaySink, mode ResizeMode, logger ports.Logger) *ResizeController {
	return &ResizeController{
		overlay: overlay,
		mode:    mode,
		logger:  logger.WithComponent("resize"),
	}
}

// Mode returns the configured apply mode.
func (c *ResizeController) Mode() ResizeMode {
	return c.mode
}

// StartResize opens a session for the column and sets the resize cursor.
func (c *ResizeController) StartResize(columnIndex int, columnID string, pointerX, currentWidth float64, opts ...ResizeOption) {
	s := &ResizeSession{
		ColumnIndex:   columnIndex,
		ColumnID:      columnID,
		StartPointerX: pointerX,
		StartWidth:    currentWidth,
		MinWidth:      DefaultMinWidth,
		MaxWidth:      DefaultMaxWidth,
		CurrentWidth:  currentWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.MaxWidth < s.MinWidth {
		s.MaxWidth = s.MinWidth
	}

	c.session = s
	c.overlay.SetCursor(ports.CursorColumnResize)
	c.logger.Debug("Resize started: column %s at %.0fpx", columnID, currentWidth)
}

// UpdateResize returns the proposed width for pointerX, clamped to the
// session bounds. It reports false when no session is active.
func (c *ResizeController) UpdateResize(pointerX float64) (float64, bool) {
	s := c.session
	if s == nil {
		return 0, false
	}
	w := pointerX - s.StartPointerX + s.StartWidth
	s.CurrentWidth = math.Min(math.Max(w, s.MinWidth), s.MaxWidth)
	return s.CurrentWidth, true
}

// EndResize commits the session. It reports false when idle.
func (c *ResizeController) EndResize() (ResizeResult, bool) {
	s := c.session
	if s == nil {
		return ResizeResult{}, false
	}
	c.teardown()
	c.logger.Debug("Resize committed: column %s to %.0fpx", s.ColumnID, s.CurrentWidth)
	return ResizeResult{
		ColumnIndex: s.ColumnIndex,
		ColumnID:    s.ColumnID,
		NewWidth:    s.CurrentWidth,
	}, true
}

// Cancel discards the session without a result. Safe to call when idle.
func (c *ResizeController) Cancel() {
	if c.session == nil {
		return
	}
	c.teardown()
}

// Active reports whether a session is open.
func (c *ResizeController) Active() bool {
	return c.session != nil
}

// Session returns a copy of the live session.
func (c *ResizeController) Session() (ResizeSession, bool) {
	if c.session == nil {
		return ResizeSession{}, false
	}
	return *c.session, true
}

func (c *ResizeController) teardown() {
	c.session = nil
	c.overlay.SetCursor(ports.CursorDefault)
}
