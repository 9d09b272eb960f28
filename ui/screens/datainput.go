package screens

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"stockscan/internal/model"
	"stockscan/internal/session"
	"stockscan/internal/store"
	"stockscan/ui/dialogs"
)

// DataInput is the entry form filled after recognition (or manually). The
// product number arrives pre-filled from OCR; quantity, packaging unit, and
// the optional expiration date are typed in.
type DataInput struct {
	session *session.Session
	store   store.Store
	window  fyne.Window

	productEntry    *widget.Entry
	quantityEntry   *widget.Entry
	expirationEntry *widget.Entry
	unitSelect      *widget.Select

	content fyne.CanvasObject
}

// NewDataInput creates the entry form screen.
func NewDataInput(sess *session.Session, st store.Store, window fyne.Window) *DataInput {
	d := &DataInput{
		session: sess,
		store:   st,
		window:  window,
	}

	d.productEntry = widget.NewEntry()
	d.productEntry.SetPlaceHolder("품번")

	d.quantityEntry = widget.NewEntry()
	d.quantityEntry.SetPlaceHolder("수량")

	d.expirationEntry = widget.NewEntry()
	d.expirationEntry.SetPlaceHolder("유통기한 (YYYYMMDD, 선택)")
	// Keep the field digits-only as the user types, capped at 8.
	d.expirationEntry.OnChanged = func(s string) {
		filtered := model.DigitsOnly(s, 8)
		if filtered != s {
			d.expirationEntry.SetText(filtered)
		}
	}

	d.unitSelect = widget.NewSelect(nil, nil)
	d.unitSelect.PlaceHolder = "단위 선택"
	manageBtn := widget.NewButton("단위 관리", func() {
		dialogs.NewUnitManagerDialog(d.store, d.session, d.window).Show()
	})

	form := widget.NewForm(
		widget.NewFormItem("품번", d.productEntry),
		widget.NewFormItem("수량", d.quantityEntry),
		widget.NewFormItem("단위", container.NewBorder(nil, nil, nil, manageBtn, d.unitSelect)),
		widget.NewFormItem("유통기한", d.expirationEntry),
	)

	saveBtn := widget.NewButton("저장", func() { d.save(false) })
	saveMoreBtn := widget.NewButton("저장 후 계속", func() { d.save(true) })
	backBtn := widget.NewButton("영역 다시 선택", func() {
		if err := d.session.BackToPreview(); err != nil {
			log.Printf("back to preview: %v", err)
		}
	})
	listBtn := widget.NewButton("목록 보기", func() {
		if err := d.session.ViewList(); err != nil {
			log.Printf("view list: %v", err)
		}
	})
	cancelBtn := widget.NewButton("취소", func() {
		d.session.Cancel()
	})

	buttons := container.NewHBox(saveBtn, saveMoreBtn, backBtn, listBtn, cancelBtn)
	d.content = container.NewVBox(form, container.NewCenter(buttons))

	// Unit additions and deletions from the management dialog show up in the
	// dropdown right away.
	sess.On(session.EventUnitsChanged, func(interface{}) {
		d.reloadUnits()
	})
	return d
}

// Content returns the screen's root object.
func (d *DataInput) Content() fyne.CanvasObject {
	return d.content
}

// Show prefills the form for the pending capture.
func (d *DataInput) Show() {
	d.productEntry.SetText(d.session.PendingProductNumber())
	d.quantityEntry.SetText("")
	d.expirationEntry.SetText("")
	d.reloadUnits()
	d.unitSelect.ClearSelected()
}

// reloadUnits refreshes the packaging unit choices, keeping the current
// selection when it still exists.
func (d *DataInput) reloadUnits() {
	units, err := d.store.Units()
	if err != nil {
		log.Printf("load packaging units: %v", err)
		dialogs.ShowError(err, d.window)
		return
	}
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}

	selected := d.unitSelect.Selected
	d.unitSelect.Options = names
	d.unitSelect.Refresh()
	for _, n := range names {
		if n == selected {
			return
		}
	}
	d.unitSelect.ClearSelected()
}

// save validates the form and persists the record. more keeps the flow on
// the camera for the next label; otherwise the session returns to start.
func (d *DataInput) save(more bool) {
	draft, err := model.ParseItemForm(
		d.productEntry.Text,
		d.unitSelect.Selected,
		d.quantityEntry.Text,
		d.expirationEntry.Text,
	)
	if err != nil {
		dialogs.ShowError(err, d.window)
		return
	}

	if _, err := d.store.AddItem(draft); err != nil {
		log.Printf("save inventory item: %v", err)
		dialogs.ShowError(err, d.window)
		return
	}
	d.session.Emit(session.EventRecordsChanged, nil)

	if more {
		if err := d.session.AddMore(); err != nil {
			log.Printf("add more: %v", err)
		}
		return
	}
	if err := d.session.SaveSucceeded(); err != nil {
		log.Printf("save succeeded: %v", err)
	}
}
