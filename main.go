// Package main provides the entry point for the tikz-cad application.
package main

import (
	"log"

	"fyne.io/fyne/v2/app"

	"tikz-cad/internal/editor"
	"tikz-cad/internal/version"
	"tikz-cad/ui/mainwindow"
	"tikz-cad/ui/prefs"
)

const appTitle = "tikz-cad"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := app.NewWithID("io.tikzcad.app")
	ed := editor.New()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, ed, appPrefs)
	win.SetTitle(appTitle)
	win.ShowAndRun()
}
