// Package panels provides the style side panel.
package panels

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"tikz-cad/internal/editor"
	"tikz-cad/internal/shape"
	"tikz-cad/pkg/colorutil"
)

var lineStyles = []struct {
	name  string
	value shape.LineStyle
}{
	{"Solid", shape.StyleSolid},
	{"Dashed", shape.StyleDashed},
	{"Dotted", shape.StyleDotted},
}

var arrowModes = []struct {
	name  string
	value shape.ArrowMode
}{
	{"None", shape.ArrowNone},
	{"Start", shape.ArrowStart},
	{"End", shape.ArrowEnd},
	{"Both", shape.ArrowBoth},
}

var hatchStyles = []struct {
	name  string
	value shape.HatchStyle
}{
	{"None", shape.HatchNone},
	{"Lines", shape.HatchLines},
	{"Grid", shape.HatchGrid},
	{"Dots", shape.HatchDots},
}

var strokeColors = []struct {
	name  string
	value color.RGBA
}{
	{"Black", colorutil.Black},
	{"Red", colorutil.Red},
	{"Green", colorutil.Green},
	{"Blue", colorutil.Blue},
	{"Orange", colorutil.Orange},
	{"Gray", colorutil.Gray},
}

var fillColors = []struct {
	name  string
	value color.RGBA
}{
	{"None", colorutil.None},
	{"White", colorutil.White},
	{"Red", colorutil.Red},
	{"Green", colorutil.Green},
	{"Blue", colorutil.Blue},
	{"Orange", colorutil.Orange},
	{"Gray", colorutil.Gray},
}

// StylePanel edits the style attributes of the current selection. It
// follows selection-change events and pushes edits back through the
// editor so every change is undoable.
type StylePanel struct {
	ed  *editor.Editor
	box fyne.CanvasObject

	styleSel  *widget.Select
	arrowSel  *widget.Select
	hatchSel  *widget.Select
	strokeSel *widget.Select
	fillSel   *widget.Select
	width     *widget.Slider
	textEntry *widget.Entry

	// Guards against control callbacks firing while the panel itself is
	// being refreshed from the selection.
	updating bool
}

// NewStylePanel creates the panel over an editor.
func NewStylePanel(ed *editor.Editor) *StylePanel {
	p := &StylePanel{ed: ed}

	p.styleSel = widget.NewSelect(names(lineStyles), func(name string) {
		if p.updating {
			return
		}
		v := lookup(lineStyles, name)
		ed.ApplyStyle(func(a *shape.Attrs) { a.Style = v })
	})
	p.arrowSel = widget.NewSelect(names(arrowModes), func(name string) {
		if p.updating {
			return
		}
		v := lookup(arrowModes, name)
		ed.ApplyStyle(func(a *shape.Attrs) { a.Arrow = v })
	})
	p.hatchSel = widget.NewSelect(names(hatchStyles), func(name string) {
		if p.updating {
			return
		}
		v := lookup(hatchStyles, name)
		ed.ApplyStyle(func(a *shape.Attrs) { a.Hatch = v })
	})
	p.strokeSel = widget.NewSelect(names(strokeColors), func(name string) {
		if p.updating {
			return
		}
		v := lookup(strokeColors, name)
		ed.ApplyStyle(func(a *shape.Attrs) { a.StrokeColor = v })
	})
	p.fillSel = widget.NewSelect(names(fillColors), func(name string) {
		if p.updating {
			return
		}
		v := lookup(fillColors, name)
		ed.ApplyStyle(func(a *shape.Attrs) { a.FillColor = v })
	})

	p.width = widget.NewSlider(0.5, 5)
	p.width.Step = 0.5
	p.width.OnChangeEnded = func(v float64) {
		if p.updating {
			return
		}
		ed.ApplyStyle(func(a *shape.Attrs) { a.LineWidth = v })
	}

	p.textEntry = widget.NewEntry()
	p.textEntry.OnSubmitted = func(s string) {
		if p.updating {
			return
		}
		ed.SetShapeText(s)
	}

	p.box = container.NewVBox(
		widget.NewLabel("Style"),
		p.styleSel,
		widget.NewLabel("Arrows"),
		p.arrowSel,
		widget.NewLabel("Hatch"),
		p.hatchSel,
		widget.NewLabel("Stroke"),
		p.strokeSel,
		widget.NewLabel("Fill"),
		p.fillSel,
		widget.NewLabel("Width"),
		p.width,
		widget.NewLabel("Text"),
		p.textEntry,
	)

	ed.On(editor.EventSelectionChanged, p.refreshFromSelection)
	p.refreshFromSelection()
	return p
}

// Container returns the panel for embedding in layouts.
func (p *StylePanel) Container() fyne.CanvasObject {
	return container.NewVScroll(p.box)
}

// refreshFromSelection mirrors the first selected shape's attributes
// into the controls.
func (p *StylePanel) refreshFromSelection() {
	sel := p.ed.SelectedShapes()
	if len(sel) == 0 {
		return
	}
	a := sel[0].Attrs()

	p.updating = true
	p.styleSel.SetSelected(nameOf(lineStyles, a.Style))
	p.arrowSel.SetSelected(nameOf(arrowModes, a.Arrow))
	p.hatchSel.SetSelected(nameOf(hatchStyles, a.Hatch))
	p.strokeSel.SetSelected(nameOf(strokeColors, a.StrokeColor))
	p.fillSel.SetSelected(nameOf(fillColors, a.FillColor))
	p.width.SetValue(a.LineWidth)
	if text, ok := p.ed.ShapeText(); ok {
		p.textEntry.Enable()
		p.textEntry.SetText(text)
	} else {
		p.textEntry.SetText("")
		p.textEntry.Disable()
	}
	p.updating = false
}

func names[T any](opts []struct {
	name  string
	value T
}) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.name
	}
	return out
}

func lookup[T any](opts []struct {
	name  string
	value T
}, name string) T {
	for _, o := range opts {
		if o.name == name {
			return o.value
		}
	}
	return opts[0].value
}

func nameOf[T comparable](opts []struct {
	name  string
	value T
}, v T) string {
	for _, o := range opts {
		if o.value == v {
			return o.name
		}
	}
	return opts[0].name
}
