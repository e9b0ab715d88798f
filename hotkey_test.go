package keybinds

import (
	"errors"
	"testing"

	"keybinds/internal/hkconfig"
)

func TestBuildHotkeyConfigDefaultsToPress(t *testing.T) {
	cfg, err := buildHotkeyConfig(&hotkeyOptions{})
	if err != nil {
		t.Fatalf("buildHotkeyConfig: %v", err)
	}
	if cfg.Trigger != hkconfig.OnPress {
		t.Fatalf("Trigger = %v, want OnPress", cfg.Trigger)
	}
}

func TestBuildHotkeyConfigHoldWithReleaseConflicts(t *testing.T) {
	hold := 400
	cfg, err := buildHotkeyConfig(&hotkeyOptions{hold: &hold, release: true})
	if err == nil {
		t.Fatalf("expected conflicting-options error, got config %+v", cfg)
	}
	if !errors.Is(err, ErrConflictingTriggerOptions) {
		t.Fatalf("err = %v, want ErrConflictingTriggerOptions", err)
	}
}

func TestBuildHotkeyConfigHoldSetsTiming(t *testing.T) {
	hold := 500
	cfg, err := buildHotkeyConfig(&hotkeyOptions{hold: &hold})
	if err != nil {
		t.Fatalf("buildHotkeyConfig: %v", err)
	}
	if cfg.Trigger != hkconfig.OnHold || cfg.Timing.HoldMs != 500 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestBuildHotkeyConfigSuppressUsesWhenMatched(t *testing.T) {
	cfg, err := buildHotkeyConfig(&hotkeyOptions{suppress: true})
	if err != nil {
		t.Fatalf("buildHotkeyConfig: %v", err)
	}
	if cfg.Suppress != hkconfig.SuppressWhenMatched {
		t.Fatalf("Suppress = %v, want SuppressWhenMatched", cfg.Suppress)
	}
}

func TestBuildHotkeyConfigRepeatAppliesDelay(t *testing.T) {
	interval, delay := 80, 200
	cfg, err := buildHotkeyConfig(&hotkeyOptions{repeat: &interval, repeatDelayMs: &delay})
	if err != nil {
		t.Fatalf("buildHotkeyConfig: %v", err)
	}
	if cfg.Timing.RepeatIntervalMs != 80 || cfg.Timing.RepeatDelayMs != 200 {
		t.Fatalf("unexpected timing: %+v", cfg.Timing)
	}
}
