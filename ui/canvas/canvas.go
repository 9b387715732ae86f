// Package canvas provides the interactive drawing surface: a raster
// widget that renders the document and forwards pointer input to the
// editor state machine.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"tikz-cad/internal/editor"
	"tikz-cad/pkg/geometry"
)

// DrawCanvas is the interactive drawing widget. All document mutation
// goes through the editor; the widget only translates fyne input events
// into device-space pointer events and repaints on change.
type DrawCanvas struct {
	widget.BaseWidget

	ed     *editor.Editor
	raster *fynecanvas.Raster

	ShowGrid bool
	ShowAxes bool

	// OnHover, when set, receives the grid position under the pointer.
	OnHover func(grid geometry.Point2D)

	// Ratio of raster pixels to logical units, captured at draw time so
	// pointer positions can be mapped onto the rendered image.
	pixelRatio float32
}

// NewDrawCanvas creates the drawing surface over an editor.
func NewDrawCanvas(ed *editor.Editor) *DrawCanvas {
	c := &DrawCanvas{
		ed:         ed,
		ShowGrid:   true,
		ShowAxes:   true,
		pixelRatio: 1,
	}
	c.raster = fynecanvas.NewRaster(c.draw)
	c.raster.ScaleMode = fynecanvas.ImageScalePixels
	c.raster.SetMinSize(fyne.NewSize(400, 300))
	c.ExtendBaseWidget(c)

	ed.On(editor.EventShapesChanged, c.Refresh)
	ed.On(editor.EventSelectionChanged, c.Refresh)
	ed.On(editor.EventViewChanged, c.Refresh)
	ed.On(editor.EventModeChanged, c.Refresh)
	return c
}

func (c *DrawCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

// draw renders the scene at raster resolution. The viewport follows the
// raster size, so zoom and pan survive window resizes unchanged.
func (c *DrawCanvas) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if lw := c.Size().Width; lw > 0 {
		c.pixelRatio = float32(w) / lw
	}
	c.ed.View.SetViewport(float64(w), float64(h))
	return RenderScene(w, h, &Scene{
		Shapes:   c.ed.Shapes(),
		Current:  c.ed.Current(),
		Selected: c.ed.IsSelected,
		View:     c.ed.View,
		ShowGrid: c.ShowGrid,
		ShowAxes: c.ShowAxes,
		Box:      c.boxRect(),
		BoxOn:    c.boxOn(),
	})
}

func (c *DrawCanvas) boxRect() geometry.Rect {
	r, _ := c.ed.BoxSelectRect()
	return r
}

func (c *DrawCanvas) boxOn() bool {
	_, on := c.ed.BoxSelectRect()
	return on
}

// device maps a logical widget position onto raster pixels.
func (c *DrawCanvas) device(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{
		X: float64(pos.X * c.pixelRatio),
		Y: float64(pos.Y * c.pixelRatio),
	}
}

func modifiers(m fyne.KeyModifier) editor.Modifiers {
	return editor.Modifiers{
		Box:    m&fyne.KeyModifierShift != 0,
		Toggle: m&fyne.KeyModifierControl != 0,
	}
}

// MouseDown implements desktop.Mouseable.
func (c *DrawCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.ed.PointerDown(c.device(ev.Position), modifiers(ev.Modifier))
	c.Refresh()
}

// MouseUp implements desktop.Mouseable.
func (c *DrawCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.ed.PointerUp(c.device(ev.Position))
	c.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (c *DrawCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable. Fyne keeps delivering these
// while a button is held, which is what drives drags.
func (c *DrawCanvas) MouseMoved(ev *desktop.MouseEvent) {
	p := c.device(ev.Position)
	c.ed.PointerMove(p)
	if c.OnHover != nil {
		c.OnHover(c.ed.View.ScreenToGrid(p))
	}
}

// MouseOut implements desktop.Hoverable.
func (c *DrawCanvas) MouseOut() {}

// Scrolled zooms about the viewport center, one clamp-checked step per
// wheel tick.
func (c *DrawCanvas) Scrolled(ev *fyne.ScrollEvent) {
	switch {
	case ev.Scrolled.DY > 0:
		c.ed.View.Zoom(1)
	case ev.Scrolled.DY < 0:
		c.ed.View.Zoom(-1)
	default:
		return
	}
	c.Refresh()
}

// Cursor shows a crosshair while a drawing tool is armed.
func (c *DrawCanvas) Cursor() desktop.Cursor {
	if c.ed.Mode() == editor.ModePan {
		return desktop.DefaultCursor
	}
	return desktop.CrosshairCursor
}
