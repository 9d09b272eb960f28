// Package model defines the inventory record types shared by every store
// backend and the API server, and the validation applied to drafts before
// they are persisted.
package model

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultUnits are the packaging units seeded at store initialization:
// carton, middle-pack, piece.
var DefaultUnits = []string{"카톤", "중포", "낱개"}

// MaxUnitNameLen is the maximum packaging unit name length in runes.
const MaxUnitNameLen = 20

// InventoryItem is one captured inventory record. Records are never updated
// in place; they are created by the entry form and deleted by user action.
type InventoryItem struct {
	ID             int64     `json:"id" db:"id"`
	ProductNumber  string    `json:"productNumber" db:"product_number"`
	PackagingUnit  string    `json:"packagingUnit" db:"packaging_unit"`
	Quantity       int       `json:"quantity" db:"quantity"`
	ExpirationDate string    `json:"expirationDate,omitempty" db:"expiration_date"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// PackagingUnit is a named bundling category (carton, middle-pack, piece, ...).
type PackagingUnit struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ItemDraft is an unsaved inventory record pending validation. ID and
// CreatedAt are assigned by the store.
type ItemDraft struct {
	ProductNumber  string `json:"productNumber"`
	PackagingUnit  string `json:"packagingUnit"`
	Quantity       int    `json:"quantity"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

// UnitDraft is an unsaved packaging unit.
type UnitDraft struct {
	Name string `json:"name"`
}

// Validation failures. The UI maps each to its own user-facing message.
var (
	ErrMissingFields = errors.New("required fields missing")
	ErrQuantity      = errors.New("quantity must be at least 1")
	ErrDateFormat    = errors.New("expiration date must be 8 digits (YYYYMMDD)")
	ErrUnitName      = errors.New("invalid packaging unit name")
)

var expirationPattern = regexp.MustCompile(`^\d{8}$`)

// ValidateItemDraft checks a draft with already-parsed fields, in the order
// the entry form reports errors: required fields first, then quantity, then
// expiration date.
func ValidateItemDraft(d ItemDraft) error {
	if strings.TrimSpace(d.ProductNumber) == "" || d.PackagingUnit == "" {
		return ErrMissingFields
	}
	if d.Quantity < 1 {
		return ErrQuantity
	}
	if d.ExpirationDate != "" && !expirationPattern.MatchString(d.ExpirationDate) {
		return ErrDateFormat
	}
	return nil
}

// ParseItemForm validates raw entry-form input and produces a draft. The
// quantity arrives as typed text; a value that does not parse as an integer
// is reported as a quantity error, not a missing field.
func ParseItemForm(productNumber, packagingUnit, quantity, expirationDate string) (ItemDraft, error) {
	if strings.TrimSpace(productNumber) == "" || packagingUnit == "" || strings.TrimSpace(quantity) == "" {
		return ItemDraft{}, ErrMissingFields
	}
	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return ItemDraft{}, ErrQuantity
	}
	draft := ItemDraft{
		ProductNumber:  strings.TrimSpace(productNumber),
		PackagingUnit:  packagingUnit,
		Quantity:       qty,
		ExpirationDate: expirationDate,
	}
	if err := ValidateItemDraft(draft); err != nil {
		return ItemDraft{}, err
	}
	return draft, nil
}

// DigitsOnly keeps only ASCII digits from s, truncated to maxLen runes.
// The expiration field applies it while the user types.
func DigitsOnly(s string, maxLen int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() >= maxLen {
				break
			}
		}
	}
	return b.String()
}

// ValidateUnitName checks a packaging unit name: non-empty after trimming
// and at most MaxUnitNameLen runes.
func ValidateUnitName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > MaxUnitNameLen {
		return ErrUnitName
	}
	return nil
}

// IsDefaultUnit reports whether name is one of the seeded packaging units.
func IsDefaultUnit(name string) bool {
	for _, u := range DefaultUnits {
		if u == name {
			return true
		}
	}
	return false
}
