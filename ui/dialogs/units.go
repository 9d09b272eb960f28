// Package dialogs provides application dialogs.
package dialogs

import (
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"stockscan/internal/model"
	"stockscan/internal/session"
	"stockscan/internal/store"
)

// UnitManagerDialog manages packaging units: list, add, delete. Changes are
// announced through the session so open screens can refresh their unit
// choices.
type UnitManagerDialog struct {
	store   store.Store
	session *session.Session
	window  fyne.Window

	units     []model.PackagingUnit
	unitList  *widget.List
	nameEntry *widget.Entry
}

// NewUnitManagerDialog creates a packaging unit management dialog.
func NewUnitManagerDialog(st store.Store, sess *session.Session, window fyne.Window) *UnitManagerDialog {
	return &UnitManagerDialog{
		store:   st,
		session: sess,
		window:  window,
	}
}

// Show displays the dialog.
func (d *UnitManagerDialog) Show() {
	content := d.createContent()
	d.reload()

	dlg := dialog.NewCustom("포장 단위 관리", "닫기", content, d.window)
	dlg.Resize(fyne.NewSize(340, 420))
	dlg.Show()
}

func (d *UnitManagerDialog) createContent() fyne.CanvasObject {
	d.unitList = widget.NewList(
		func() int { return len(d.units) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewButton("삭제", nil),
				widget.NewLabel(""),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(d.units) {
				return
			}
			unit := d.units[id]
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(unit.Name)
			row.Objects[1].(*widget.Button).OnTapped = func() {
				d.deleteUnit(unit.ID)
			}
		},
	)

	d.nameEntry = widget.NewEntry()
	d.nameEntry.SetPlaceHolder("새 단위 이름")
	d.nameEntry.OnSubmitted = func(string) { d.addUnit() }
	addBtn := widget.NewButton("추가", d.addUnit)
	resetBtn := widget.NewButton("기본 단위 복원", d.restoreDefaults)

	addRow := container.NewBorder(nil, nil, nil, addBtn, d.nameEntry)
	bottom := container.NewVBox(addRow, resetBtn)
	return container.NewBorder(nil, bottom, nil, nil, d.unitList)
}

// reload fetches the units and refreshes the list.
func (d *UnitManagerDialog) reload() {
	units, err := d.store.Units()
	if err != nil {
		log.Printf("load packaging units: %v", err)
		ShowError(err, d.window)
		return
	}
	d.units = units
	d.unitList.Refresh()
}

func (d *UnitManagerDialog) addUnit() {
	name := d.nameEntry.Text
	if _, err := d.store.AddUnit(model.UnitDraft{Name: name}); err != nil {
		ShowError(err, d.window)
		return
	}
	d.nameEntry.SetText("")
	d.reload()
	d.session.Emit(session.EventUnitsChanged, nil)
}

// restoreDefaults re-adds any seeded unit that was deleted. Units that still
// exist are skipped.
func (d *UnitManagerDialog) restoreDefaults() {
	changed := false
	for _, name := range model.DefaultUnits {
		_, err := d.store.AddUnit(model.UnitDraft{Name: name})
		switch {
		case errors.Is(err, store.ErrDuplicateUnit):
			continue
		case err != nil:
			ShowError(err, d.window)
			return
		}
		changed = true
	}
	if changed {
		d.reload()
		d.session.Emit(session.EventUnitsChanged, nil)
	}
}

func (d *UnitManagerDialog) deleteUnit(id int64) {
	if err := d.store.DeleteUnit(id); err != nil {
		ShowError(err, d.window)
		return
	}
	d.reload()
	d.session.Emit(session.EventUnitsChanged, nil)
}
