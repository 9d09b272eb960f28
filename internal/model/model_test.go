package model

import (
	"errors"
	"testing"
)

func TestParseItemForm(t *testing.T) {
	tests := []struct {
		name       string
		product    string
		unit       string
		quantity   string
		expiration string
		wantErr    error
	}{
		{"valid", "8801234567", "카톤", "5", "", nil},
		{"valid with date", "8801234567", "카톤", "5", "20251201", nil},
		{"missing product", "", "카톤", "5", "", ErrMissingFields},
		{"missing unit", "8801234567", "", "5", "", ErrMissingFields},
		{"missing quantity", "8801234567", "카톤", "", "", ErrMissingFields},
		{"whitespace product", "   ", "카톤", "5", "", ErrMissingFields},
		{"zero quantity", "8801234567", "카톤", "0", "", ErrQuantity},
		{"negative quantity", "8801234567", "카톤", "-1", "", ErrQuantity},
		{"non-numeric quantity", "8801234567", "카톤", "abc", "", ErrQuantity},
		{"dashed date", "8801234567", "카톤", "5", "2025-12-01", ErrDateFormat},
		{"short date", "8801234567", "카톤", "5", "202512", ErrDateFormat},
		{"long date", "8801234567", "카톤", "5", "202512011", ErrDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := ParseItemForm(tt.product, tt.unit, tt.quantity, tt.expiration)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err: got %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && draft.Quantity < 1 {
				t.Errorf("parsed quantity %d, want >= 1", draft.Quantity)
			}
		})
	}
}

func TestParseItemFormTrimsProductNumber(t *testing.T) {
	draft, err := ParseItemForm("  8801234567  ", "낱개", "2", "")
	if err != nil {
		t.Fatal(err)
	}
	if draft.ProductNumber != "8801234567" {
		t.Errorf("product number: got %q", draft.ProductNumber)
	}
}

func TestValidateUnitName(t *testing.T) {
	if err := ValidateUnitName("카톤"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := ValidateUnitName(""); !errors.Is(err, ErrUnitName) {
		t.Error("empty name should be rejected")
	}
	if err := ValidateUnitName("   "); !errors.Is(err, ErrUnitName) {
		t.Error("blank name should be rejected")
	}

	twenty := ""
	for i := 0; i < 20; i++ {
		twenty += "박"
	}
	if err := ValidateUnitName(twenty); err != nil {
		t.Errorf("20-rune name rejected: %v", err)
	}
	if err := ValidateUnitName(twenty + "스"); !errors.Is(err, ErrUnitName) {
		t.Error("21-rune name should be rejected")
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20251201", "20251201"},
		{"2025-12-01", "20251201"},
		{"abc", ""},
		{"123456789", "12345678"},
	}
	for _, tt := range tests {
		if got := DigitsOnly(tt.in, 8); got != tt.want {
			t.Errorf("DigitsOnly(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsDefaultUnit(t *testing.T) {
	for _, name := range DefaultUnits {
		if !IsDefaultUnit(name) {
			t.Errorf("%q should be a default unit", name)
		}
	}
	if IsDefaultUnit("파레트") {
		t.Error("user-added unit misreported as default")
	}
}
