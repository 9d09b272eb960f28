package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"stockscan/internal/model"
)

// Storage keys inside the data file. Both record kinds live in one JSON
// document as serialized arrays.
const (
	fileKeyItems = "inventory_items"
	fileKeyUnits = "packaging_units"
)

// File is a Store persisted as a JSON file on local disk. The whole file is
// loaded at startup and rewritten after every mutation. Corrupt or
// unreadable data is logged and treated as empty.
type File struct {
	mu   sync.Mutex
	path string
	mem  *Memory
}

var _ Store = (*File)(nil)

// fileDocument is the on-disk shape. Units is a pointer so a file whose
// units array is explicitly empty (every unit deleted) can be told apart
// from a file written before the key existed; only the latter keeps the
// seeded defaults.
type fileDocument struct {
	Items []model.InventoryItem  `json:"inventory_items"`
	Units *[]model.PackagingUnit `json:"packaging_units"`
}

// NewFile opens (or creates) a file-backed store at path.
func NewFile(path string, opts Options) (*File, error) {
	f := &File{
		path: path,
		mem:  NewMemory(opts),
	}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// load replaces the in-memory state with the file contents. A missing file
// leaves the seeded defaults in place; a corrupt file is treated as empty.
func (f *File) load() error {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("data file %s is corrupt, starting empty: %v", f.path, err)
		return nil
	}

	f.mem.mu.Lock()
	defer f.mem.mu.Unlock()
	f.mem.items = make(map[int64]model.InventoryItem, len(doc.Items))
	f.mem.nextID = 1
	for _, it := range doc.Items {
		f.mem.items[it.ID] = it
		if it.ID >= f.mem.nextID {
			f.mem.nextID = it.ID + 1
		}
	}
	if doc.Units != nil {
		f.mem.units = make(map[int64]model.PackagingUnit, len(*doc.Units))
		for _, u := range *doc.Units {
			f.mem.units[u.ID] = u
			if u.ID >= f.mem.nextID {
				f.mem.nextID = u.ID + 1
			}
		}
	}
	return nil
}

// flush rewrites the data file from the in-memory state.
func (f *File) flush() error {
	items, _ := f.mem.Items()
	units, _ := f.mem.Units()
	doc := fileDocument{Items: items, Units: &units}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

func (f *File) Items() ([]model.InventoryItem, error) {
	return f.mem.Items()
}

func (f *File) AddItem(draft model.ItemDraft) (model.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, err := f.mem.AddItem(draft)
	if err != nil {
		return model.InventoryItem{}, err
	}
	if err := f.flush(); err != nil {
		return model.InventoryItem{}, err
	}
	return item, nil
}

func (f *File) DeleteItem(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.mem.DeleteItem(id); err != nil {
		return err
	}
	return f.flush()
}

func (f *File) ClearItems() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.mem.ClearItems(); err != nil {
		return err
	}
	return f.flush()
}

func (f *File) Units() ([]model.PackagingUnit, error) {
	return f.mem.Units()
}

func (f *File) AddUnit(draft model.UnitDraft) (model.PackagingUnit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	unit, err := f.mem.AddUnit(draft)
	if err != nil {
		return model.PackagingUnit{}, err
	}
	if err := f.flush(); err != nil {
		return model.PackagingUnit{}, err
	}
	return unit, nil
}

func (f *File) DeleteUnit(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.mem.DeleteUnit(id); err != nil {
		return err
	}
	return f.flush()
}
