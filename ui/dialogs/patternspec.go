// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"tikz-cad/internal/editor"
	"tikz-cad/internal/ops"
)

var directionNames = []string{"Right", "Left", "Up", "Down"}

func directionFromName(name string) ops.Direction {
	switch name {
	case "Left":
		return ops.DirLeft
	case "Up":
		return ops.DirUp
	case "Down":
		return ops.DirDown
	}
	return ops.DirRight
}

func directionName(d ops.Direction) string {
	switch d {
	case ops.DirLeft:
		return "Left"
	case ops.DirUp:
		return "Up"
	case ops.DirDown:
		return "Down"
	}
	return "Right"
}

// PatternSpecDialog edits the repeat-operation parameters: copy count,
// spacing and direction for linear patterns, and the offset distance.
type PatternSpecDialog struct {
	ed     *editor.Editor
	window fyne.Window

	countEntry   *widget.Entry
	spacingEntry *widget.Entry
	dirSelect    *widget.Select
	offsetEntry  *widget.Entry
}

// NewPatternSpecDialog creates the dialog over an editor.
func NewPatternSpecDialog(ed *editor.Editor, window fyne.Window) *PatternSpecDialog {
	return &PatternSpecDialog{ed: ed, window: window}
}

// Show displays the dialog.
func (d *PatternSpecDialog) Show() {
	d.countEntry = widget.NewEntry()
	d.countEntry.SetText(strconv.Itoa(d.ed.PatternCount))

	d.spacingEntry = widget.NewEntry()
	d.spacingEntry.SetText(fmt.Sprintf("%g", d.ed.PatternSpacing))

	d.dirSelect = widget.NewSelect(directionNames, nil)
	d.dirSelect.SetSelected(directionName(d.ed.PatternDir))

	d.offsetEntry = widget.NewEntry()
	d.offsetEntry.SetText(fmt.Sprintf("%g", d.ed.OffsetDistance))

	form := widget.NewForm(
		widget.NewFormItem("Copies", d.countEntry),
		widget.NewFormItem("Spacing (units)", d.spacingEntry),
		widget.NewFormItem("Direction", d.dirSelect),
		widget.NewFormItem("Offset distance", d.offsetEntry),
	)

	dlg := dialog.NewCustomConfirm(
		"Pattern Settings",
		"Apply",
		"Cancel",
		form,
		func(apply bool) {
			if apply {
				d.applyChanges()
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(360, 260))
	dlg.Show()
}

// applyChanges parses the entries back into the editor. Unparseable
// fields keep their previous values.
func (d *PatternSpecDialog) applyChanges() {
	if n, err := strconv.Atoi(d.countEntry.Text); err == nil && n >= 2 {
		d.ed.PatternCount = n
	}
	if v, err := strconv.ParseFloat(d.spacingEntry.Text, 64); err == nil && v > 0 {
		d.ed.PatternSpacing = v
	}
	if v, err := strconv.ParseFloat(d.offsetEntry.Text, 64); err == nil && v > 0 {
		d.ed.OffsetDistance = v
	}
	d.ed.PatternDir = directionFromName(d.dirSelect.Selected)
}
