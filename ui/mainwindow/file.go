package mainwindow

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"tikz-cad/internal/project"
)

const (
	drawingExt     = ".tcad"
	prefKeyLastDir = "lastDirectory"
)

func (mw *MainWindow) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		mw.openDrawing(path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{drawingExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) openDrawing(path string) {
	f, err := project.Load(path)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	shapes, err := f.BuildShapes()
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.ed.LoadShapes(shapes)
	mw.canvas.ShowGrid = f.ShowGrid
	mw.canvas.ShowAxes = f.ShowAxes
	mw.canvas.Refresh()
	mw.currentPath = path
	mw.SetTitle("tikz-cad - " + filepath.Base(path))
	mw.updateStatus("Opened " + path)
}

func (mw *MainWindow) onSave() {
	if mw.currentPath == "" {
		mw.onSaveAs()
		return
	}
	mw.saveDrawing(mw.currentPath)
}

func (mw *MainWindow) onSaveAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != drawingExt {
			path += drawingExt
		}
		mw.saveLastDir(path)
		mw.saveDrawing(path)
	}, mw.Window)
	fd.SetFileName("drawing" + drawingExt)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) saveDrawing(path string) {
	f := project.New(filepath.Base(path))
	f.ShowGrid = mw.canvas.ShowGrid
	f.ShowAxes = mw.canvas.ShowAxes
	f.SetShapes(mw.ed.Shapes())
	if err := f.Save(path); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.currentPath = path
	mw.SetTitle("tikz-cad - " + filepath.Base(path))
	mw.updateStatus("Saved " + path)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}
