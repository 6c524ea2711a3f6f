// Package cellrender maps cell-type tags to draw strategies.
//
// A renderer paints one cell inside the rectangle it is given. It must not
// assume it is called every frame for every cell, and must not retain the
// Context after Draw returns.
package cellrender

import (
	"image/color"
	"sort"

	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/ports"
)

// Style carries the theme values a renderer may use.
type Style struct {
	Font        ports.FontSpec
	TextColor   color.Color
	Background  color.Color
	AccentColor color.Color
	Padding     float64
}

// Context is the per-cell input to a renderer.
type Context struct {
	Canvas ports.Canvas
	Rect   grid.Rect
	Value  any
	Style  Style
	DPR    float64
}

// Renderer draws one cell.
type Renderer interface {
	Draw(ctx Context)
}

// Measurer is implemented by renderers that can report the natural size of
// a value, for auto-sizing callers.
type Measurer interface {
	Measure(canvas ports.Canvas, value any, style Style) grid.Size
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx Context)

// Draw implements Renderer.
func (f RendererFunc) Draw(ctx Context) {
	f(ctx)
}

// Registry is an open table from cell type to renderer. Unknown types fall
// back to the text renderer.
type Registry struct {
	renderers map[string]Renderer
	fallback  Renderer
	logger    ports.Logger
	reported  map[string]bool
}

// NewRegistry creates a registry with the built-in renderers registered.
func NewRegistry(logger ports.Logger) *Registry {
	r := NewEmptyRegistry(logger)
	for cellType, renderer := range Builtins() {
		r.Register(cellType, renderer)
	}
	return r
}

// NewEmptyRegistry creates a registry with nothing registered. Get still
// returns the text renderer.
func NewEmptyRegistry(logger ports.Logger) *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		fallback:  TextRenderer{},
		logger:    logger.WithComponent("cellrender"),
		reported:  make(map[string]bool),
	}
}

// Register installs a renderer for cellType, replacing any previous one.
// A nil renderer unregisters the type.
func (r *Registry) Register(cellType string, renderer Renderer) {
	if renderer == nil {
		r.Unregister(cellType)
		return
	}
	r.renderers[cellType] = renderer
	delete(r.reported, cellType)
}

// Get returns the renderer for cellType, or the text renderer when the type
// is unknown. Each unknown type is reported once at debug level.
func (r *Registry) Get(cellType string) Renderer {
	if renderer, ok := r.renderers[cellType]; ok {
		return renderer
	}
	if !r.reported[cellType] {
		r.reported[cellType] = true
		r.logger.Debug("Unknown cell type %q, falling back to text", cellType)
	}
	return r.fallback
}

// Has reports whether a renderer is registered for cellType.
func (r *Registry) Has(cellType string) bool {
	_, ok := r.renderers[cellType]
	return ok
}

// Unregister removes the renderer for cellType.
func (r *Registry) Unregister(cellType string) {
	delete(r.renderers, cellType)
}

// Clear removes every registered renderer.
func (r *Registry) Clear() {
	r.renderers = make(map[string]Renderer)
	r.reported = make(map[string]bool)
}

// Types returns the registered cell types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.renderers))
	for t := range r.renderers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Measure returns the natural size of value for cellType, or false when the
// renderer cannot measure.
func (r *Registry) Measure(cellType string, canvas ports.Canvas, value any, style Style) (grid.Size, bool) {
	m, ok := r.Get(cellType).(Measurer)
	if !ok {
		return grid.Size{}, false
	}
	return m.Measure(canvas, value, style), true
}
