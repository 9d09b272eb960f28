package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOCKSCAN_ADDR", "")
	t.Setenv("STOCKSCAN_DB", "")
	t.Setenv("STOCKSCAN_PROTECT_DEFAULT_UNITS", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr: got %q, want :8080", cfg.Addr)
	}
	if cfg.DBPath != "./stockscan.db" {
		t.Errorf("DBPath: got %q", cfg.DBPath)
	}
	if !cfg.ProtectDefaultUnits {
		t.Error("ProtectDefaultUnits should default to true")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STOCKSCAN_ADDR", ":9000")
	t.Setenv("STOCKSCAN_DB", "/tmp/test.db")
	t.Setenv("STOCKSCAN_PROTECT_DEFAULT_UNITS", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Addr: got %q", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath: got %q", cfg.DBPath)
	}
	if cfg.ProtectDefaultUnits {
		t.Error("ProtectDefaultUnits should be false")
	}
}

func TestLoadBadBoolFallsBack(t *testing.T) {
	t.Setenv("STOCKSCAN_ADDR", "")
	t.Setenv("STOCKSCAN_DB", "")
	t.Setenv("STOCKSCAN_PROTECT_DEFAULT_UNITS", "maybe")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.ProtectDefaultUnits {
		t.Error("unparseable bool should fall back to the default")
	}
}
