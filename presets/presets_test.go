package presets

import (
	"testing"

	"keybinds/internal/hkconfig"
)

func TestHoldDefaultsHoldMs(t *testing.T) {
	cfg := Hold(0, hkconfig.SuppressNever, false)
	if cfg.Trigger != hkconfig.OnHold {
		t.Fatalf("Trigger = %v, want OnHold", cfg.Trigger)
	}
	if cfg.Timing.HoldMs != 400 {
		t.Fatalf("HoldMs = %d, want 400", cfg.Timing.HoldMs)
	}
}

func TestPressStrictSetsChordStrict(t *testing.T) {
	cfg := Press(hkconfig.SuppressNever, TimingOverrides{}, true)
	if cfg.Constraints.ChordPolicy != hkconfig.ChordStrict {
		t.Fatalf("ChordPolicy = %v, want ChordStrict", cfg.Constraints.ChordPolicy)
	}
}

func TestPTTSuppressUsesWhileActive(t *testing.T) {
	p := PTT(true, false)
	if p.Press.Suppress != hkconfig.SuppressWhileActive {
		t.Fatalf("Press.Suppress = %v, want SuppressWhileActive", p.Press.Suppress)
	}
	if p.Release.Suppress != hkconfig.SuppressWhileActive {
		t.Fatalf("Release.Suppress = %v, want SuppressWhileActive", p.Release.Suppress)
	}
}

func TestSilentHotkeyAggressiveUsesWhileEvaluating(t *testing.T) {
	cfg := SilentHotkey(false, true)
	if cfg.Suppress != hkconfig.SuppressWhileEvaluating {
		t.Fatalf("Suppress = %v, want SuppressWhileEvaluating", cfg.Suppress)
	}
	cfg2 := SilentHotkey(false, false)
	if cfg2.Suppress != hkconfig.SuppressWhenMatched {
		t.Fatalf("Suppress = %v, want SuppressWhenMatched", cfg2.Suppress)
	}
}

func TestTapHoldBuildsBothConfigs(t *testing.T) {
	p := TapHold(0, 0, hkconfig.SuppressNever, 100, 0)
	if p.Tap.Trigger != hkconfig.OnClick || p.Hold.Trigger != hkconfig.OnHold {
		t.Fatalf("unexpected triggers: tap=%v hold=%v", p.Tap.Trigger, p.Hold.Trigger)
	}
	if p.Tap.Timing.HoldMs != 220 {
		t.Fatalf("tap HoldMs = %d, want 220", p.Tap.Timing.HoldMs)
	}
	if p.Hold.Timing.HoldMs != 450 {
		t.Fatalf("hold HoldMs = %d, want 450", p.Hold.Timing.HoldMs)
	}
}

func TestMouseClickDefaultsTapMs(t *testing.T) {
	cfg := MouseClick(0, hkconfig.SuppressNever)
	if cfg.Timing.HoldMs != 200 {
		t.Fatalf("HoldMs = %d, want 200", cfg.Timing.HoldMs)
	}
}

func TestGameAutofireSuppressUsesWhileActive(t *testing.T) {
	cfg := GameAutofire(0, 0, true)
	if cfg.Suppress != hkconfig.SuppressWhileActive {
		t.Fatalf("Suppress = %v, want SuppressWhileActive", cfg.Suppress)
	}
	if cfg.Timing.RepeatDelayMs != 150 || cfg.Timing.RepeatIntervalMs != 60 {
		t.Fatalf("unexpected timing: %+v", cfg.Timing)
	}
}
