// Package mainwindow provides the main application window.
package mainwindow

import (
	"bytes"
	"fmt"
	"image/png"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"golang.design/x/clipboard"

	"tikz-cad/internal/editor"
	"tikz-cad/internal/export"
	"tikz-cad/internal/ops"
	"tikz-cad/internal/shape"
	"tikz-cad/internal/version"
	"tikz-cad/internal/view"
	"tikz-cad/pkg/geometry"
	"tikz-cad/ui/canvas"
	"tikz-cad/ui/dialogs"
	"tikz-cad/ui/panels"
	"tikz-cad/ui/prefs"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	ed     *editor.Editor
	canvas *canvas.DrawCanvas
	prefs  *prefs.Prefs

	statusBar   *widget.Label
	posLabel    *widget.Label
	modeButtons map[editor.Mode]*widget.Button

	// File the drawing was last saved to or loaded from, empty until the
	// first save.
	currentPath string

	clipboardOK bool
}

// New creates the main window over an editor.
func New(fyneApp fyne.App, ed *editor.Editor, pf *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("tikz-cad")

	mw := &MainWindow{
		Window:      win,
		app:         fyneApp,
		ed:          ed,
		prefs:       pf,
		modeButtons: make(map[editor.Mode]*widget.Button),
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("system clipboard unavailable: %v", err)
	} else {
		mw.clipboardOK = true
	}

	mw.applyPrefs()
	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	win.SetCloseIntercept(func() {
		mw.savePrefs()
		mw.app.Quit()
	})
	win.Resize(fyne.NewSize(
		float32(pf.FloatWithFallback(prefs.KeyWindowWidth, 1100)),
		float32(pf.FloatWithFallback(prefs.KeyWindowHeight, 750)),
	))
	return mw
}

func (mw *MainWindow) applyPrefs() {
	mw.ed.Snap = mw.prefs.Bool(prefs.KeySnapEnabled, true)
	mw.ed.PatternCount = mw.prefs.IntWithFallback(prefs.KeyPatternCount, 4)
	mw.ed.PatternSpacing = mw.prefs.FloatWithFallback(prefs.KeyPatternSpacing, 2)
	mw.ed.OffsetDistance = mw.prefs.FloatWithFallback(prefs.KeyOffsetDistance, 0.5)
}

func (mw *MainWindow) savePrefs() {
	mw.prefs.SetBool(prefs.KeySnapEnabled, mw.ed.Snap)
	mw.prefs.SetBool(prefs.KeyShowGrid, mw.canvas.ShowGrid)
	mw.prefs.SetBool(prefs.KeyShowAxes, mw.canvas.ShowAxes)
	mw.prefs.SetInt(prefs.KeyPatternCount, mw.ed.PatternCount)
	mw.prefs.SetFloat(prefs.KeyPatternSpacing, mw.ed.PatternSpacing)
	mw.prefs.SetFloat(prefs.KeyOffsetDistance, mw.ed.OffsetDistance)
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// setupUI builds the window layout: tool palette above the drawing
// surface, status bar below.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewDrawCanvas(mw.ed)
	mw.canvas.ShowGrid = mw.prefs.Bool(prefs.KeyShowGrid, true)
	mw.canvas.ShowAxes = mw.prefs.Bool(prefs.KeyShowAxes, true)

	mw.statusBar = widget.NewLabel("Ready")
	mw.posLabel = widget.NewLabel("")
	stylePanel := panels.NewStylePanel(mw.ed)

	bottom := container.NewBorder(nil, nil, nil, mw.posLabel, mw.statusBar)

	content := container.NewBorder(
		mw.createToolbar(),          // top
		container.NewPadded(bottom), // bottom
		nil,                         // left
		stylePanel.Container(),      // right
		mw.canvas,                   // center
	)
	mw.SetContent(content)
}

// toolButtons maps palette labels to editor modes, in display order.
var toolButtons = []struct {
	label string
	mode  editor.Mode
}{
	{"Select", editor.ModePan},
	{"Free", editor.ModeFreehand},
	{"Line", editor.ModeLine},
	{"Curve", editor.ModeBezier},
	{"Rect", editor.ModeRect},
	{"RRect", editor.ModeRoundRect},
	{"Circle", editor.ModeCircle},
	{"Ellipse", editor.ModeEllipse},
	{"Arc", editor.ModeArc},
	{"Dim", editor.ModeMeasure},
	{"Radius", editor.ModeMeasureRadius},
	{"Angle", editor.ModeMarkAngle},
	{"Brace", editor.ModeBrace},
	{"Text", editor.ModeText},
}

func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	bar := container.NewHBox()
	for _, tb := range toolButtons {
		mode := tb.mode
		btn := widget.NewButton(tb.label, func() {
			mw.ed.SetMode(mode)
		})
		mw.modeButtons[mode] = btn
		bar.Add(btn)
	}
	bar.Add(widget.NewSeparator())

	snap := widget.NewCheck("Snap", func(on bool) {
		mw.ed.Snap = on
	})
	snap.SetChecked(mw.ed.Snap)
	bar.Add(snap)

	mw.highlightMode(mw.ed.Mode())
	return container.NewHScroll(bar)
}

// highlightMode marks the active tool's button.
func (mw *MainWindow) highlightMode(active editor.Mode) {
	for mode, btn := range mw.modeButtons {
		if mode == active {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New", mw.onNew),
		fyne.NewMenuItem("Open...", mw.onOpen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSave),
		fyne.NewMenuItem("Save As...", mw.onSaveAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy Canvas as Image", mw.onCopyCanvasImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.savePrefs()
			mw.app.Quit()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.ed.Undo),
		fyne.NewMenuItem("Redo", mw.ed.Redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy", mw.ed.CopySelection),
		fyne.NewMenuItem("Paste", mw.ed.Paste),
		fyne.NewMenuItem("Duplicate", mw.ed.DuplicateSelection),
		fyne.NewMenuItem("Delete", mw.ed.DeleteSelection),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Select All", mw.ed.SelectAll),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.ed.View.Zoom(1); mw.canvas.Refresh() }),
		fyne.NewMenuItem("Zoom Out", func() { mw.ed.View.Zoom(-1); mw.canvas.Refresh() }),
		fyne.NewMenuItem("Reset View", mw.onResetView),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Grid", func() {
			mw.canvas.ShowGrid = !mw.canvas.ShowGrid
			mw.canvas.Refresh()
		}),
		fyne.NewMenuItem("Toggle Axes", func() {
			mw.canvas.ShowAxes = !mw.canvas.ShowAxes
			mw.canvas.Refresh()
		}),
	)

	modifyMenu := fyne.NewMenu("Modify",
		fyne.NewMenuItem("Mirror...", func() { mw.ed.SetMode(editor.ModeMirrorAxis) }),
		fyne.NewMenuItem("Linear Pattern", mw.ed.LinearPatternSelection),
		fyne.NewMenuItem("Circular Pattern...", func() { mw.ed.SetMode(editor.ModeCircularPattern) }),
		fyne.NewMenuItem("Offset", mw.ed.OffsetSelection),
		fyne.NewMenuItem("Add Diameter", mw.ed.AddDiameterToSelection),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Pattern Settings...", func() {
			dialogs.NewPatternSpecDialog(mw.ed, mw.Window).Show()
		}),
	)

	insertMenu := fyne.NewMenu("Insert",
		fyne.NewMenuItem("Unit Square", func() { mw.insertTemplate(templateUnitSquare()) }),
		fyne.NewMenuItem("Dimensioned Box", func() { mw.insertTemplate(templateDimensionedBox()) }),
		fyne.NewMenuItem("Coordinate Cross", func() { mw.insertTemplate(templateCross()) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, modifyMenu, insertMenu, helpMenu))
}

func (mw *MainWindow) setupShortcuts() {
	c := mw.Canvas()

	type entry struct {
		key fyne.KeyName
		mod fyne.KeyModifier
		fn  func()
	}
	shortcuts := []entry{
		{fyne.KeyN, fyne.KeyModifierControl, mw.onNew},
		{fyne.KeyO, fyne.KeyModifierControl, mw.onOpen},
		{fyne.KeyS, fyne.KeyModifierControl, mw.onSave},
		{fyne.KeyZ, fyne.KeyModifierControl, mw.ed.Undo},
		{fyne.KeyZ, fyne.KeyModifierControl | fyne.KeyModifierShift, mw.ed.Redo},
		{fyne.KeyY, fyne.KeyModifierControl, mw.ed.Redo},
		{fyne.KeyC, fyne.KeyModifierControl, mw.ed.CopySelection},
		{fyne.KeyV, fyne.KeyModifierControl, mw.ed.Paste},
		{fyne.KeyD, fyne.KeyModifierControl, mw.ed.DuplicateSelection},
		{fyne.KeyA, fyne.KeyModifierControl, mw.ed.SelectAll},
		{fyne.KeyUp, fyne.KeyModifierShift, func() { mw.ed.Nudge(ops.DirUp, true) }},
		{fyne.KeyDown, fyne.KeyModifierShift, func() { mw.ed.Nudge(ops.DirDown, true) }},
		{fyne.KeyLeft, fyne.KeyModifierShift, func() { mw.ed.Nudge(ops.DirLeft, true) }},
		{fyne.KeyRight, fyne.KeyModifierShift, func() { mw.ed.Nudge(ops.DirRight, true) }},
	}
	for _, sc := range shortcuts {
		fn := sc.fn
		c.AddShortcut(&desktop.CustomShortcut{KeyName: sc.key, Modifier: sc.mod}, func(fyne.Shortcut) {
			fn()
		})
	}

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			mw.ed.Escape()
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.ed.DeleteSelection()
		case fyne.KeyUp:
			mw.ed.Nudge(ops.DirUp, false)
		case fyne.KeyDown:
			mw.ed.Nudge(ops.DirDown, false)
		case fyne.KeyLeft:
			mw.ed.Nudge(ops.DirLeft, false)
		case fyne.KeyRight:
			mw.ed.Nudge(ops.DirRight, false)
		}
	})
}

func (mw *MainWindow) setupEventHandlers() {
	mw.canvas.OnHover = func(p geometry.Point2D) {
		mw.posLabel.SetText(fmt.Sprintf("%.2f, %.2f  |  %.0f%%",
			p.X, p.Y, mw.ed.View.Scale/view.DefaultScale*100))
	}
	mw.ed.On(editor.EventModeChanged, func() {
		mw.highlightMode(mw.ed.Mode())
		mw.updateStatus(mw.modeStatus())
	})
	mw.ed.On(editor.EventSelectionChanged, func() {
		n := mw.ed.SelectionCount()
		switch n {
		case 0:
			mw.updateStatus(mw.modeStatus())
		case 1:
			s := mw.ed.SelectedShapes()[0]
			mw.updateStatus(fmt.Sprintf("Selected: %s", s.Kind()))
		default:
			mw.updateStatus(fmt.Sprintf("Selected: %d shapes", n))
		}
	})
}

func (mw *MainWindow) modeStatus() string {
	for _, tb := range toolButtons {
		if tb.mode == mw.ed.Mode() {
			return "Tool: " + tb.label
		}
	}
	switch mw.ed.Mode() {
	case editor.ModeMirrorAxis:
		return "Mirror: drag the axis"
	case editor.ModeCircularPattern:
		return "Circular pattern: click the pivot"
	}
	return "Ready"
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) onNew() {
	mw.ed.Escape()
	mw.ed.LoadShapes(nil)
	mw.onResetView()
	mw.currentPath = ""
	mw.SetTitle("tikz-cad")
	mw.updateStatus("New drawing")
}

func (mw *MainWindow) onResetView() {
	mw.ed.View.Scale = view.DefaultScale
	mw.ed.View.Offset = geometry.Point2D{}
	mw.canvas.Refresh()
}

// onCopyCanvasImage renders the exportable document to PNG and places it
// on the system clipboard.
func (mw *MainWindow) onCopyCanvasImage() {
	if !mw.clipboardOK {
		mw.updateStatus("System clipboard unavailable")
		return
	}
	v := mw.ed.View
	if !v.Measured() {
		return
	}
	snap := export.Build(mw.ed.Shapes(), mw.canvas.ShowGrid, mw.canvas.ShowAxes, false)
	img := canvas.RenderScene(int(v.Width), int(v.Height), &canvas.Scene{
		Shapes:   snap.Shapes,
		View:     v,
		ShowGrid: snap.ShowGrid,
		ShowAxes: snap.ShowAxes,
	})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("encode canvas image: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	mw.updateStatus("Canvas copied to clipboard")
}

func (mw *MainWindow) insertTemplate(shapes []shape.Shape) {
	mw.ed.AppendShapes(shapes)
	mw.updateStatus(fmt.Sprintf("Inserted %d shapes", len(shapes)))
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About tikz-cad",
		fmt.Sprintf("tikz-cad v%s\n\n"+
			"A grid-snapped 2D drawing surface.\n\n"+
			"Built: %s\nCommit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
