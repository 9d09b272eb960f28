package screens

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"stockscan/internal/export"
	"stockscan/internal/model"
	"stockscan/internal/session"
	"stockscan/internal/store"
	"stockscan/ui/dialogs"
	"stockscan/ui/prefs"
)

// List is the saved-records screen: newest first, searchable by product
// number, with per-record delete, clear-all, and file export.
type List struct {
	session *session.Session
	store   store.Store
	prefs   *prefs.Prefs
	window  fyne.Window

	items    []model.InventoryItem
	filtered []model.InventoryItem
	query    string

	search   *widget.Entry
	itemList *widget.List
	count    *widget.Label
	content  fyne.CanvasObject
}

// NewList creates the inventory list screen.
func NewList(sess *session.Session, st store.Store, p *prefs.Prefs, window fyne.Window) *List {
	l := &List{
		session: sess,
		store:   st,
		prefs:   p,
		window:  window,
	}

	l.search = widget.NewEntry()
	l.search.SetPlaceHolder("품번 검색")
	l.search.OnChanged = func(q string) {
		l.query = q
		l.applyFilter()
	}

	l.count = widget.NewLabel("")

	l.itemList = widget.NewList(
		func() int { return len(l.filtered) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewButton("삭제", nil),
				widget.NewLabel(""),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(l.filtered) {
				return
			}
			item := l.filtered[id]
			row := obj.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(formatItem(item))
			row.Objects[1].(*widget.Button).OnTapped = func() {
				l.deleteItem(item.ID)
			}
		},
	)

	addBtn := widget.NewButton("새 재고 등록", func() {
		if err := l.session.AddNew(); err != nil {
			log.Printf("add new: %v", err)
		}
	})
	csvBtn := widget.NewButton("CSV 내보내기", l.exportCSV)
	tableBtn := widget.NewButton("텍스트 내보내기", l.exportTable)
	clearBtn := widget.NewButton("전체 삭제", l.clearAll)
	homeBtn := widget.NewButton("홈으로", func() {
		l.session.Cancel()
	})

	buttons := container.NewHBox(addBtn, csvBtn, tableBtn, clearBtn, homeBtn)
	top := container.NewVBox(l.search, l.count)
	l.content = container.NewBorder(
		top,
		container.NewCenter(buttons),
		nil, nil,
		l.itemList,
	)

	sess.On(session.EventRecordsChanged, func(interface{}) {
		l.reload()
	})
	return l
}

// Content returns the screen's root object.
func (l *List) Content() fyne.CanvasObject {
	return l.content
}

// Show reloads the records from the store.
func (l *List) Show() {
	l.reload()
}

func formatItem(item model.InventoryItem) string {
	expiration := item.ExpirationDate
	if expiration == "" {
		expiration = "-"
	}
	return fmt.Sprintf("%s · %d %s · %s",
		item.ProductNumber, item.Quantity, item.PackagingUnit, expiration)
}

func (l *List) reload() {
	items, err := l.store.Items()
	if err != nil {
		log.Printf("load inventory items: %v", err)
		dialogs.ShowError(err, l.window)
		return
	}
	l.items = items
	l.applyFilter()
}

// applyFilter narrows the list to product numbers containing the query.
func (l *List) applyFilter() {
	q := strings.TrimSpace(l.query)
	if q == "" {
		l.filtered = l.items
	} else {
		filtered := make([]model.InventoryItem, 0, len(l.items))
		for _, item := range l.items {
			if strings.Contains(item.ProductNumber, q) {
				filtered = append(filtered, item)
			}
		}
		l.filtered = filtered
	}
	l.count.SetText(fmt.Sprintf("%d건", len(l.filtered)))
	l.itemList.Refresh()
}

func (l *List) deleteItem(id int64) {
	if err := l.store.DeleteItem(id); err != nil {
		log.Printf("delete inventory item %d: %v", id, err)
		dialogs.ShowError(err, l.window)
		return
	}
	l.session.Emit(session.EventRecordsChanged, nil)
}

func (l *List) clearAll() {
	if len(l.items) == 0 {
		return
	}
	dialog.ShowConfirm("전체 삭제", "저장된 재고 기록을 모두 삭제할까요?", func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := l.store.ClearItems(); err != nil {
			log.Printf("clear inventory items: %v", err)
			dialogs.ShowError(err, l.window)
			return
		}
		l.session.Emit(session.EventRecordsChanged, nil)
	}, l.window)
}

// exportCSV saves the product-number log with its timestamped filename.
func (l *List) exportCSV() {
	l.exportFile(export.CSVFilename(time.Now()), export.WriteCSV)
}

// exportTable saves the pipe-delimited table for messaging apps.
func (l *List) exportTable() {
	l.exportFile(export.TableFilename(time.Now()), export.WriteTable)
}

func (l *List) exportFile(filename string, write func(w io.Writer, items []model.InventoryItem) error) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := write(writer, l.items); err != nil {
			log.Printf("export %s: %v", filename, err)
			dialogs.ShowError(err, l.window)
			return
		}
		l.saveExportDir(writer.URI().Path())
	}, l.window)
	fd.SetFileName(filename)
	if loc := l.lastExportDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// lastExportDir returns the last used export directory as a ListableURI, or
// nil when none was recorded.
func (l *List) lastExportDir() fyne.ListableURI {
	path := l.prefs.String(prefs.KeyLastExportDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveExportDir remembers the directory of the written file for the next
// export dialog.
func (l *List) saveExportDir(filePath string) {
	l.prefs.SetString(prefs.KeyLastExportDir, filepath.Dir(filePath))
}
