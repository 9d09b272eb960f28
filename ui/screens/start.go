// Package screens builds the five screens of the capture flow: start, camera,
// image preview, data input, and inventory list. Each screen renders once and
// is re-shown as the session moves between them.
package screens

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"stockscan/internal/session"
	"stockscan/internal/store"
	"stockscan/ui/dialogs"
)

// Start is the landing screen with the entry points of the app.
type Start struct {
	session *session.Session
	content fyne.CanvasObject
}

// NewStart creates the start screen.
func NewStart(sess *session.Session, st store.Store, window fyne.Window) *Start {
	s := &Start{session: sess}

	title := widget.NewLabelWithStyle("재고 조사", fyne.TextAlignCenter,
		fyne.TextStyle{Bold: true})

	captureBtn := widget.NewButton("재고 등록 시작", func() {
		if err := s.session.StartCapture(); err != nil {
			log.Printf("start capture: %v", err)
		}
	})
	listBtn := widget.NewButton("재고 목록 보기", func() {
		if err := s.session.ViewList(); err != nil {
			log.Printf("view list: %v", err)
		}
	})
	unitsBtn := widget.NewButton("포장 단위 관리", func() {
		dialogs.NewUnitManagerDialog(st, sess, window).Show()
	})

	s.content = container.NewCenter(container.NewVBox(
		title,
		widget.NewSeparator(),
		captureBtn,
		listBtn,
		unitsBtn,
	))
	return s
}

// Content returns the screen's root object.
func (s *Start) Content() fyne.CanvasObject {
	return s.content
}
