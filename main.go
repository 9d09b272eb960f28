// Package main provides the entry point for the StockScan application.
package main

import (
	"log"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2/app"

	"stockscan/internal/recognize"
	"stockscan/internal/session"
	"stockscan/internal/store"
	"stockscan/internal/version"
	"stockscan/ui/mainwindow"
	"stockscan/ui/prefs"
)

const appTitle = "StockScan"

// minConfidence below which an OCR read is reported as no result. 0 keeps
// every read; the cleanup rules alone decide.
const minOCRConfidence = 0

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	appPrefs := prefs.Load()

	st, err := openStore(appPrefs)
	if err != nil {
		log.Fatalf("open record store: %v", err)
	}

	engine, err := recognize.NewEngine(minOCRConfidence)
	if err != nil {
		log.Fatalf("initialize recognition engine: %v", err)
	}
	defer engine.Close()

	sess := session.New()

	fyneApp := app.New()
	win := mainwindow.New(fyneApp, sess, st, engine, appPrefs)
	win.SetTitle(appTitle)

	win.ShowAndRun()

	if err := appPrefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// openStore picks the record store from preferences: a remote API server
// when one is configured, otherwise a JSON file next to the preferences.
func openStore(p *prefs.Prefs) (store.Store, error) {
	opts := store.Options{
		ProtectDefaults: p.Bool(prefs.KeyProtectUnits, true),
	}

	if serverURL := p.String(prefs.KeyServerURL); serverURL != "" {
		log.Printf("Using remote store at %s", serverURL)
		return store.NewRemote(serverURL), nil
	}

	path := p.String(prefs.KeyDataFile)
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = filepath.Join(os.Getenv("HOME"), ".config")
		}
		path = filepath.Join(configDir, "stockscan", "records.json")
	}
	log.Printf("Using local store at %s", path)
	return store.NewFile(path, opts)
}
