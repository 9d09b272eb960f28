package store

import (
	"errors"
	"testing"
	"time"

	"stockscan/internal/model"
)

func validDraft() model.ItemDraft {
	return model.ItemDraft{
		ProductNumber: "8801234567",
		PackagingUnit: "카톤",
		Quantity:      5,
	}
}

func TestMemorySeedsDefaultUnits(t *testing.T) {
	m := NewMemory(Options{})
	units, err := m.Units()
	if err != nil {
		t.Fatal(err)
	}
	if len(units) != len(model.DefaultUnits) {
		t.Fatalf("got %d units, want %d", len(units), len(model.DefaultUnits))
	}
	seen := map[string]bool{}
	for _, u := range units {
		seen[u.Name] = true
	}
	for _, name := range model.DefaultUnits {
		if !seen[name] {
			t.Errorf("default unit %q missing", name)
		}
	}
}

func TestMemoryAddItemAssignsIDAndTimestamp(t *testing.T) {
	m := NewMemory(Options{})
	before := time.Now()

	item, err := m.AddItem(validDraft())
	if err != nil {
		t.Fatal(err)
	}
	if item.ID == 0 {
		t.Error("id not assigned")
	}
	if item.CreatedAt.Before(before) {
		t.Errorf("createdAt %v is before save time %v", item.CreatedAt, before)
	}

	items, err := m.Items()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ProductNumber != "8801234567" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestMemoryAddItemValidates(t *testing.T) {
	m := NewMemory(Options{})
	draft := validDraft()
	draft.Quantity = 0
	if _, err := m.AddItem(draft); !errors.Is(err, model.ErrQuantity) {
		t.Errorf("got %v, want ErrQuantity", err)
	}
}

func TestMemoryItemsNewestFirst(t *testing.T) {
	m := NewMemory(Options{})
	first, _ := m.AddItem(validDraft())
	second, _ := m.AddItem(validDraft())

	items, err := m.Items()
	if err != nil {
		t.Fatal(err)
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Errorf("items not newest-first: %+v", items)
	}
}

func TestMemoryDeleteItemIdempotent(t *testing.T) {
	m := NewMemory(Options{})
	item, _ := m.AddItem(validDraft())

	if err := m.DeleteItem(item.ID); err != nil {
		t.Fatal(err)
	}
	items, _ := m.Items()
	if len(items) != 0 {
		t.Errorf("item still listed after delete: %+v", items)
	}
	// Same id again must not fail.
	if err := m.DeleteItem(item.ID); err != nil {
		t.Errorf("repeated delete returned %v", err)
	}
	if err := m.DeleteItem(9999); err != nil {
		t.Errorf("deleting unknown id returned %v", err)
	}
}

func TestMemoryDuplicateUnitRejected(t *testing.T) {
	m := NewMemory(Options{})
	if _, err := m.AddUnit(model.UnitDraft{Name: "카톤"}); !errors.Is(err, ErrDuplicateUnit) {
		t.Errorf("got %v, want ErrDuplicateUnit", err)
	}
	if _, err := m.AddUnit(model.UnitDraft{Name: "파레트"}); err != nil {
		t.Errorf("new unique name rejected: %v", err)
	}
	if _, err := m.AddUnit(model.UnitDraft{Name: " 파레트 "}); !errors.Is(err, ErrDuplicateUnit) {
		t.Errorf("trimmed duplicate accepted: %v", err)
	}
}

func TestMemoryUnitNameLength(t *testing.T) {
	m := NewMemory(Options{})
	long := ""
	for i := 0; i < 21; i++ {
		long += "a"
	}
	if _, err := m.AddUnit(model.UnitDraft{Name: long}); !errors.Is(err, model.ErrUnitName) {
		t.Errorf("21-char name: got %v, want ErrUnitName", err)
	}
}

func TestMemoryProtectedDefaults(t *testing.T) {
	m := NewMemory(Options{ProtectDefaults: true})
	units, _ := m.Units()

	var defaultID, customID int64
	custom, _ := m.AddUnit(model.UnitDraft{Name: "파레트"})
	customID = custom.ID
	for _, u := range units {
		if u.Name == "카톤" {
			defaultID = u.ID
		}
	}

	if err := m.DeleteUnit(defaultID); !errors.Is(err, ErrProtectedUnit) {
		t.Errorf("default unit delete: got %v, want ErrProtectedUnit", err)
	}
	if err := m.DeleteUnit(customID); err != nil {
		t.Errorf("custom unit delete failed: %v", err)
	}
}

func TestMemoryUnprotectedDefaults(t *testing.T) {
	m := NewMemory(Options{})
	units, _ := m.Units()
	if err := m.DeleteUnit(units[0].ID); err != nil {
		t.Errorf("delete without protection failed: %v", err)
	}
}

func TestMemoryClearItems(t *testing.T) {
	m := NewMemory(Options{})
	m.AddItem(validDraft())
	m.AddItem(validDraft())
	if err := m.ClearItems(); err != nil {
		t.Fatal(err)
	}
	items, _ := m.Items()
	if len(items) != 0 {
		t.Errorf("items remain after clear: %+v", items)
	}
}
