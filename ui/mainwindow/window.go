// Package mainwindow provides the main application window. It owns one
// instance of every screen and swaps the visible one as the session moves
// through the capture flow.
package mainwindow

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"stockscan/internal/recognize"
	"stockscan/internal/session"
	"stockscan/internal/store"
	"stockscan/internal/version"
	"stockscan/ui/prefs"
	"stockscan/ui/screens"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	session *session.Session

	start     *screens.Start
	camera    *screens.Camera
	preview   *screens.Preview
	dataInput *screens.DataInput
	list      *screens.List

	current session.Screen
}

// New creates the main window and wires the screens to the session.
func New(fyneApp fyne.App, sess *session.Session, st store.Store,
	rec recognize.Recognizer, p *prefs.Prefs) *MainWindow {

	win := fyneApp.NewWindow("StockScan")
	win.Resize(fyne.NewSize(640, 520))

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: sess,
	}

	mw.start = screens.NewStart(sess, st, win)
	mw.camera = screens.NewCamera(sess, p, win)
	mw.preview = screens.NewPreview(sess, rec)
	mw.dataInput = screens.NewDataInput(sess, st, win)
	mw.list = screens.NewList(sess, st, p, win)

	mw.setupMenus()

	sess.On(session.EventScreenChanged, func(data interface{}) {
		if scr, ok := data.(session.Screen); ok {
			mw.showScreen(scr)
		}
	})
	mw.showScreen(session.ScreenStart)

	return mw
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("파일",
		fyne.NewMenuItem("종료", func() { mw.app.Quit() }),
	)
	helpMenu := fyne.NewMenu("도움말",
		fyne.NewMenuItem("정보", mw.onAbout),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// showScreen swaps the window content to the given screen, running the
// leave/enter hooks of the screens that have them. The camera hook matters
// most: it releases the device on every way out of the camera screen.
func (mw *MainWindow) showScreen(scr session.Screen) {
	if mw.current == session.ScreenCamera && scr != session.ScreenCamera {
		mw.camera.Hide()
	}
	mw.current = scr
	log.Printf("screen: %s", scr)

	switch scr {
	case session.ScreenStart:
		mw.SetContent(mw.start.Content())
	case session.ScreenCamera:
		mw.SetContent(mw.camera.Content())
		mw.camera.Show()
	case session.ScreenImagePreview:
		mw.preview.Show()
		mw.SetContent(mw.preview.Content())
	case session.ScreenDataInput:
		mw.dataInput.Show()
		mw.SetContent(mw.dataInput.Content())
	case session.ScreenInventoryList:
		mw.list.Show()
		mw.SetContent(mw.list.Content())
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("StockScan 정보",
		fmt.Sprintf("StockScan v%s\n\n"+
			"창고 재고 촬영·인식·기록 도구\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
