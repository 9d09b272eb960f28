// Package store persists inventory items and packaging units. Four backends
// share one interface: an in-memory map, a JSON file, a SQLite database, and
// a remote REST API. Draft validation happens here, once, so no backend can
// drift from the others.
package store

import (
	"errors"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"stockscan/internal/model"
)

// Store is the record store consumed by the UI and the API server. There is
// no update operation for either record kind; records are append-only until
// deleted. Deleting an id that does not exist is a no-op.
type Store interface {
	// Items returns inventory records newest-first by creation time.
	Items() ([]model.InventoryItem, error)
	AddItem(draft model.ItemDraft) (model.InventoryItem, error)
	DeleteItem(id int64) error
	// ClearItems removes every inventory record.
	ClearItems() error

	// Units returns packaging units in Korean-collated name order.
	Units() ([]model.PackagingUnit, error)
	AddUnit(draft model.UnitDraft) (model.PackagingUnit, error)
	DeleteUnit(id int64) error
}

var (
	// ErrDuplicateUnit is returned when a packaging unit name already exists
	// (case-sensitive, exact match).
	ErrDuplicateUnit = errors.New("packaging unit already exists")
	// ErrProtectedUnit is returned when deleting a default unit while the
	// store is configured to protect them.
	ErrProtectedUnit = errors.New("default packaging unit cannot be deleted")
)

// Options configure store behavior shared across backends.
type Options struct {
	// ProtectDefaults prevents deletion of the seeded packaging units.
	ProtectDefaults bool
}

// normalizeUnitName trims surrounding whitespace before validation and
// duplicate comparison, matching what the management dialog does.
func normalizeUnitName(name string) string {
	return strings.TrimSpace(name)
}

// unitCollator orders packaging unit names the way a Korean speaker expects.
var unitCollator = collate.New(language.Korean)

func sortItems(items []model.InventoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}

func sortUnits(units []model.PackagingUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		return unitCollator.CompareString(units[i].Name, units[j].Name) < 0
	})
}
