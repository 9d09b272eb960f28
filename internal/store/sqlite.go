package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"

	"stockscan/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS inventory_items (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	product_number  TEXT NOT NULL,
	packaging_unit  TEXT NOT NULL,
	quantity        INTEGER NOT NULL,
	expiration_date TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS packaging_units (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL
);
`

// SQLite is a Store backed by a SQLite database, used by the API server.
type SQLite struct {
	db   *sqlx.DB
	opts Options
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (or creates) the database at path, applies the schema,
// and seeds the default packaging units on first run.
func OpenSQLite(path string, opts Options) (*SQLite, error) {
	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &SQLite{db: db, opts: opts}
	if err := s.seedDefaultUnits(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) seedDefaultUnits() error {
	var count int
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM packaging_units`); err != nil {
		return fmt.Errorf("count packaging units: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range model.DefaultUnits {
		const q = `INSERT INTO packaging_units (name, created_at) VALUES (?, ?)`
		if _, err := s.db.Exec(q, name, time.Now()); err != nil {
			return fmt.Errorf("seed packaging unit %s: %w", name, err)
		}
	}
	return nil
}

func (s *SQLite) Items() ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	const q = `SELECT id, product_number, packaging_unit, quantity, expiration_date, created_at
		FROM inventory_items ORDER BY created_at DESC, id DESC`
	if err := s.db.Select(&items, q); err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	return items, nil
}

func (s *SQLite) AddItem(draft model.ItemDraft) (model.InventoryItem, error) {
	if err := model.ValidateItemDraft(draft); err != nil {
		return model.InventoryItem{}, err
	}

	item := model.InventoryItem{
		ProductNumber:  draft.ProductNumber,
		PackagingUnit:  draft.PackagingUnit,
		Quantity:       draft.Quantity,
		ExpirationDate: draft.ExpirationDate,
		CreatedAt:      time.Now(),
	}
	const q = `INSERT INTO inventory_items
		(product_number, packaging_unit, quantity, expiration_date, created_at)
		VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.Exec(q, item.ProductNumber, item.PackagingUnit,
		item.Quantity, item.ExpirationDate, item.CreatedAt)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("insert inventory item: %w", err)
	}
	item.ID, err = res.LastInsertId()
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("insert inventory item: %w", err)
	}
	return item, nil
}

func (s *SQLite) DeleteItem(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM inventory_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete inventory item %d: %w", id, err)
	}
	return nil
}

func (s *SQLite) ClearItems() error {
	if _, err := s.db.Exec(`DELETE FROM inventory_items`); err != nil {
		return fmt.Errorf("clear inventory items: %w", err)
	}
	return nil
}

func (s *SQLite) Units() ([]model.PackagingUnit, error) {
	units := []model.PackagingUnit{}
	const q = `SELECT id, name, created_at FROM packaging_units`
	if err := s.db.Select(&units, q); err != nil {
		return nil, fmt.Errorf("list packaging units: %w", err)
	}
	// SQLite has no Korean collation; order in Go instead.
	sortUnits(units)
	return units, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure. The
// name column's constraint is the single source of truth for duplicates, so
// concurrent inserts of the same name cannot both succeed.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (s *SQLite) AddUnit(draft model.UnitDraft) (model.PackagingUnit, error) {
	name := normalizeUnitName(draft.Name)
	if err := model.ValidateUnitName(name); err != nil {
		return model.PackagingUnit{}, err
	}

	unit := model.PackagingUnit{Name: name, CreatedAt: time.Now()}
	res, err := s.db.Exec(`INSERT INTO packaging_units (name, created_at) VALUES (?, ?)`,
		unit.Name, unit.CreatedAt)
	if isUniqueViolation(err) {
		return model.PackagingUnit{}, ErrDuplicateUnit
	}
	if err != nil {
		return model.PackagingUnit{}, fmt.Errorf("insert packaging unit: %w", err)
	}
	unit.ID, err = res.LastInsertId()
	if err != nil {
		return model.PackagingUnit{}, fmt.Errorf("insert packaging unit: %w", err)
	}
	return unit, nil
}

func (s *SQLite) DeleteUnit(id int64) error {
	if s.opts.ProtectDefaults {
		var name string
		err := s.db.Get(&name, `SELECT name FROM packaging_units WHERE id = ?`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("look up packaging unit %d: %w", id, err)
		}
		if model.IsDefaultUnit(name) {
			return ErrProtectedUnit
		}
	}
	if _, err := s.db.Exec(`DELETE FROM packaging_units WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete packaging unit %d: %w", id, err)
	}
	return nil
}
