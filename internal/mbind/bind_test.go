package mbind

import (
	"testing"
	"time"

	"keybinds/internal/hkconfig"
	"keybinds/internal/inputstate"
)

func TestOnClickFiresWithinHoldWindow(t *testing.T) {
	fired := 0
	cfg := hkconfig.DefaultMouseBindConfig()
	cfg.Timing.HoldMs = 200
	b := New(hkconfig.MouseLeft, func() { fired++ }, cfg, nil, nil, nil)

	state := inputstate.Empty()
	b.Handle(MouseEvent{Button: hkconfig.MouseLeft, Action: ButtonDown, TimeMs: 100}, state)
	b.Handle(MouseEvent{Button: hkconfig.MouseLeft, Action: ButtonUp, TimeMs: 150}, state)

	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}

func TestIgnoresOtherButtons(t *testing.T) {
	fired := 0
	cfg := hkconfig.DefaultMouseBindConfig()
	b := New(hkconfig.MouseLeft, func() { fired++ }, cfg, nil, nil, nil)

	state := inputstate.Empty()
	b.Handle(MouseEvent{Button: hkconfig.MouseRight, Action: ButtonDown, TimeMs: 1}, state)
	b.Handle(MouseEvent{Button: hkconfig.MouseRight, Action: ButtonUp, TimeMs: 2}, state)

	if fired != 0 {
		t.Fatalf("fired = %d, want 0 (wrong button)", fired)
	}
}

func TestSuppressWhileEvaluatingCoversPairedUp(t *testing.T) {
	cfg := hkconfig.DefaultMouseBindConfig()
	cfg.Suppress = hkconfig.SuppressWhileEvaluating
	b := New(hkconfig.MouseLeft, func() {}, cfg, nil, nil, nil)

	state := inputstate.Empty()
	downFlags := b.Handle(MouseEvent{Button: hkconfig.MouseLeft, Action: ButtonDown, TimeMs: 1}, state)
	upFlags := b.Handle(MouseEvent{Button: hkconfig.MouseLeft, Action: ButtonUp, TimeMs: 2}, state)

	if downFlags&Suppress == 0 {
		t.Fatalf("expected down event to be suppressed")
	}
	if upFlags&Suppress == 0 {
		t.Fatalf("expected paired up event to be suppressed too")
	}
}

func TestOnHoldFiresAfterDelay(t *testing.T) {
	fired := make(chan struct{}, 1)
	cfg := hkconfig.DefaultMouseBindConfig()
	cfg.Trigger = hkconfig.OnHold
	cfg.Timing.HoldMs = 20
	b := New(hkconfig.MouseLeft, func() { fired <- struct{}{} }, cfg, nil, nil, nil)

	state := inputstate.Empty()
	b.Handle(MouseEvent{Button: hkconfig.MouseLeft, Action: ButtonDown, TimeMs: time.Now().UnixMilli()}, state)

	select {
	case <-fired:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("ON_HOLD callback never fired")
	}
}

func TestMaxFiresCapsCallbackCount(t *testing.T) {
	fired := 0
	cfg := hkconfig.DefaultMouseBindConfig()
	cfg.Trigger = hkconfig.OnPress
	cfg.Constraints.HasMaxFires = true
	cfg.Constraints.MaxFires = 1
	b := New(hkconfig.MouseLeft, func() { fired++ }, cfg, nil, nil, nil)

	state := inputstate.Empty()
	b.Handle(MouseEvent{Button: hkconfig.MouseLeft, Action: ButtonDown, TimeMs: 1}, state)
	b.Handle(MouseEvent{Button: hkconfig.MouseLeft, Action: ButtonUp, TimeMs: 2}, state)
	b.Handle(MouseEvent{Button: hkconfig.MouseLeft, Action: ButtonDown, TimeMs: 3}, state)

	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}
