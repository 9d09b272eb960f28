package store

import (
	"sync"
	"time"

	"stockscan/internal/model"
)

// Memory is an in-memory Store with serial ids. The default packaging units
// are seeded at construction. Safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	opts   Options
	items  map[int64]model.InventoryItem
	units  map[int64]model.PackagingUnit
	nextID int64
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store seeded with the default
// packaging units.
func NewMemory(opts Options) *Memory {
	m := &Memory{
		opts:   opts,
		items:  make(map[int64]model.InventoryItem),
		units:  make(map[int64]model.PackagingUnit),
		nextID: 1,
	}
	for _, name := range model.DefaultUnits {
		m.units[m.nextID] = model.PackagingUnit{
			ID:        m.nextID,
			Name:      name,
			CreatedAt: time.Now(),
		}
		m.nextID++
	}
	return m
}

func (m *Memory) Items() ([]model.InventoryItem, error) {
	m.mu.RLock()
	items := make([]model.InventoryItem, 0, len(m.items))
	for _, it := range m.items {
		items = append(items, it)
	}
	m.mu.RUnlock()

	sortItems(items)
	return items, nil
}

func (m *Memory) AddItem(draft model.ItemDraft) (model.InventoryItem, error) {
	if err := model.ValidateItemDraft(draft); err != nil {
		return model.InventoryItem{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	item := model.InventoryItem{
		ID:             m.nextID,
		ProductNumber:  draft.ProductNumber,
		PackagingUnit:  draft.PackagingUnit,
		Quantity:       draft.Quantity,
		ExpirationDate: draft.ExpirationDate,
		CreatedAt:      time.Now(),
	}
	m.nextID++
	m.items[item.ID] = item
	return item, nil
}

func (m *Memory) DeleteItem(id int64) error {
	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) ClearItems() error {
	m.mu.Lock()
	m.items = make(map[int64]model.InventoryItem)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Units() ([]model.PackagingUnit, error) {
	m.mu.RLock()
	units := make([]model.PackagingUnit, 0, len(m.units))
	for _, u := range m.units {
		units = append(units, u)
	}
	m.mu.RUnlock()

	sortUnits(units)
	return units, nil
}

func (m *Memory) AddUnit(draft model.UnitDraft) (model.PackagingUnit, error) {
	name := normalizeUnitName(draft.Name)
	if err := model.ValidateUnitName(name); err != nil {
		return model.PackagingUnit{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.units {
		if u.Name == name {
			return model.PackagingUnit{}, ErrDuplicateUnit
		}
	}
	unit := model.PackagingUnit{
		ID:        m.nextID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.units[unit.ID] = unit
	return unit, nil
}

func (m *Memory) DeleteUnit(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.units[id]
	if !ok {
		return nil
	}
	if m.opts.ProtectDefaults && model.IsDefaultUnit(u.Name) {
		return ErrProtectedUnit
	}
	delete(m.units, id)
	return nil
}
