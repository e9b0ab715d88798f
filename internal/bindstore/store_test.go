package bindstore

import (
	"os"
	"path/filepath"
	"testing"

	"keybinds/internal/hkconfig"
)

func TestLoadMissingFileReturnsEmptyTable(t *testing.T) {
	dir := t.TempDir()
	table, err := Load(filepath.Join(dir, "does-not-exist.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(table.Hotkeys) != 0 {
		t.Fatalf("expected empty table, got %v", table.Hotkeys)
	}
}

func TestLoadParsesHotkeyTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hotkeys.json")
	data := `{"hotkeys": {"toggle": {"expr": "ctrl+shift+j", "trigger": "on_press", "suppress": "always"}}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	entry, ok := table.Lookup("toggle")
	if !ok {
		t.Fatalf("expected entry %q to exist", "toggle")
	}
	if entry.Expr != "ctrl+shift+j" {
		t.Fatalf("Expr = %q, want ctrl+shift+j", entry.Expr)
	}

	cfg, err := entry.BindConfig()
	if err != nil {
		t.Fatalf("BindConfig: %v", err)
	}
	if cfg.Trigger != hkconfig.OnPress {
		t.Fatalf("Trigger = %v, want OnPress", cfg.Trigger)
	}
	if cfg.Suppress != hkconfig.SuppressAlways {
		t.Fatalf("Suppress = %v, want SuppressAlways", cfg.Suppress)
	}
}

func TestEntryBindConfigRejectsUnknownTrigger(t *testing.T) {
	e := Entry{Expr: "k", Trigger: "on_whenever"}
	if _, err := e.BindConfig(); err == nil {
		t.Fatalf("expected error for unknown trigger")
	}
}

func TestEntryBindConfigAppliesTimingOverrides(t *testing.T) {
	e := Entry{Expr: "k", HoldMs: 900}
	cfg, err := e.BindConfig()
	if err != nil {
		t.Fatalf("BindConfig: %v", err)
	}
	if cfg.Timing.HoldMs != 900 {
		t.Fatalf("HoldMs = %d, want 900", cfg.Timing.HoldMs)
	}
	if cfg.Timing.ChordTimeoutMs != hkconfig.DefaultTiming().ChordTimeoutMs {
		t.Fatalf("expected unrelated timing fields to stay default")
	}
}
