package kbind

import (
	"testing"
	"time"

	"keybinds/internal/hkconfig"
	"keybinds/internal/inputstate"
	"keybinds/internal/vk"
)

func pressKeys(codes ...int) map[int]bool {
	m := map[int]bool{}
	for _, c := range codes {
		m[c] = true
	}
	return m
}

func snapshotWithPhysical(codes ...int) inputstate.Snapshot {
	s := inputstate.Empty()
	for _, c := range codes {
		s.PressedKeys[c] = true
		s.PressedKeysAll[c] = true
	}
	return s
}

func TestOnPressFiresOnFreshDownWhileFull(t *testing.T) {
	fired := 0
	cfg := hkconfig.DefaultBindConfig()
	b, err := New("ctrl+k", func() { fired++ }, cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	kCode := vk.AlphaNumericMust('k')
	state := snapshotWithPhysical(vk.VK_CONTROL, kCode)

	b.Handle(KeyEvent{VKCode: vk.VK_CONTROL, Action: KeyDown, TimeMs: 1}, snapshotWithPhysical(vk.VK_CONTROL))
	flags := b.Handle(KeyEvent{VKCode: kCode, Action: KeyDown, TimeMs: 2}, state)

	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if flags != Continue {
		t.Fatalf("flags = %v, want Continue (suppress=NEVER default)", flags)
	}
}

func TestOnPressDoesNotRefireOnRepeatWithoutAllowOSKeyRepeat(t *testing.T) {
	fired := 0
	cfg := hkconfig.DefaultBindConfig()
	b, _ := New("ctrl+k", func() { fired++ }, cfg, nil, nil, nil)

	kCode := vk.AlphaNumericMust('k')
	state := snapshotWithPhysical(vk.VK_CONTROL, kCode)

	b.Handle(KeyEvent{VKCode: vk.VK_CONTROL, Action: KeyDown, TimeMs: 1}, snapshotWithPhysical(vk.VK_CONTROL))
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyDown, TimeMs: 2}, state)
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyDown, TimeMs: 3, IsRepeat: true}, state)

	if fired != 1 {
		t.Fatalf("fired = %d, want 1 (OS repeat should not refire)", fired)
	}
}

func TestSuppressAlways(t *testing.T) {
	cfg := hkconfig.DefaultBindConfig()
	cfg.Suppress = hkconfig.SuppressAlways
	b, _ := New("ctrl+k", func() {}, cfg, nil, nil, nil)

	flags := b.Handle(KeyEvent{VKCode: vk.VK_CONTROL, Action: KeyDown, TimeMs: 1}, snapshotWithPhysical(vk.VK_CONTROL))
	if flags&Suppress == 0 {
		t.Fatalf("expected SuppressAlways to always suppress")
	}
}

func TestOnClickFiresWithinHoldWindow(t *testing.T) {
	fired := 0
	cfg := hkconfig.DefaultBindConfig()
	cfg.Trigger = hkconfig.OnClick
	cfg.Timing.HoldMs = 200
	b, _ := New("k", func() { fired++ }, cfg, nil, nil, nil)

	kCode := vk.AlphaNumericMust('k')
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyDown, TimeMs: 100}, snapshotWithPhysical(kCode))
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyUp, TimeMs: 150}, snapshotWithPhysical())

	if fired != 1 {
		t.Fatalf("fired = %d, want 1 (release within hold window)", fired)
	}
}

func TestOnClickDoesNotFireAfterHoldWindow(t *testing.T) {
	fired := 0
	cfg := hkconfig.DefaultBindConfig()
	cfg.Trigger = hkconfig.OnClick
	cfg.Timing.HoldMs = 50
	b, _ := New("k", func() { fired++ }, cfg, nil, nil, nil)

	kCode := vk.AlphaNumericMust('k')
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyDown, TimeMs: 100}, snapshotWithPhysical(kCode))
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyUp, TimeMs: 500}, snapshotWithPhysical())

	if fired != 0 {
		t.Fatalf("fired = %d, want 0 (release after hold window)", fired)
	}
}

func TestOnHoldFiresAfterDelay(t *testing.T) {
	fired := make(chan struct{}, 1)
	cfg := hkconfig.DefaultBindConfig()
	cfg.Trigger = hkconfig.OnHold
	cfg.Timing.HoldMs = 20
	b, _ := New("k", func() { fired <- struct{}{} }, cfg, nil, nil, nil)

	kCode := vk.AlphaNumericMust('k')
	state := snapshotWithPhysical(kCode)
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyDown, TimeMs: time.Now().UnixMilli()}, state)

	select {
	case <-fired:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("ON_HOLD callback never fired")
	}
}

func TestSequenceFiresOnLastStep(t *testing.T) {
	fired := 0
	cfg := hkconfig.DefaultBindConfig()
	b, err := New("ctrl+k, ctrl+s", func() { fired++ }, cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !b.IsSequence {
		t.Fatalf("expected IsSequence=true")
	}

	kCode := vk.AlphaNumericMust('k')
	sCode := vk.AlphaNumericMust('s')

	b.Handle(KeyEvent{VKCode: vk.VK_CONTROL, Action: KeyDown, TimeMs: 1}, snapshotWithPhysical(vk.VK_CONTROL))
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyDown, TimeMs: 2}, snapshotWithPhysical(vk.VK_CONTROL, kCode))
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyUp, TimeMs: 3}, snapshotWithPhysical(vk.VK_CONTROL))
	b.Handle(KeyEvent{VKCode: vk.VK_CONTROL, Action: KeyUp, TimeMs: 4}, snapshotWithPhysical())

	b.Handle(KeyEvent{VKCode: vk.VK_CONTROL, Action: KeyDown, TimeMs: 5}, snapshotWithPhysical(vk.VK_CONTROL))
	b.Handle(KeyEvent{VKCode: sCode, Action: KeyDown, TimeMs: 6}, snapshotWithPhysical(vk.VK_CONTROL, sCode))

	if fired != 1 {
		t.Fatalf("fired = %d, want 1 after completing two-step sequence", fired)
	}
}

func TestStrictOrderRejectsWrongPressOrder(t *testing.T) {
	fired := 0
	cfg := hkconfig.DefaultBindConfig()
	cfg.Constraints.OrderPolicy = hkconfig.OrderStrict
	b, _ := New("ctrl+shift+k", func() { fired++ }, cfg, nil, nil, nil)

	kCode := vk.AlphaNumericMust('k')

	// Shift before Ctrl violates declared order (Ctrl=group0, Shift=group1).
	b.Handle(KeyEvent{VKCode: vk.VK_SHIFT, Action: KeyDown, TimeMs: 1}, snapshotWithPhysical(vk.VK_SHIFT))
	b.Handle(KeyEvent{VKCode: vk.VK_CONTROL, Action: KeyDown, TimeMs: 2}, snapshotWithPhysical(vk.VK_SHIFT, vk.VK_CONTROL))
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyDown, TimeMs: 3}, snapshotWithPhysical(vk.VK_SHIFT, vk.VK_CONTROL, kCode))

	if fired != 0 {
		t.Fatalf("fired = %d, want 0 (strict order violated)", fired)
	}
}

func TestMaxFiresCapsCallbackCount(t *testing.T) {
	fired := 0
	cfg := hkconfig.DefaultBindConfig()
	cfg.Constraints.HasMaxFires = true
	cfg.Constraints.MaxFires = 1
	b, _ := New("k", func() { fired++ }, cfg, nil, nil, nil)

	kCode := vk.AlphaNumericMust('k')
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyDown, TimeMs: 1}, snapshotWithPhysical(kCode))
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyUp, TimeMs: 2}, snapshotWithPhysical())
	b.Handle(KeyEvent{VKCode: kCode, Action: KeyDown, TimeMs: 3}, snapshotWithPhysical(kCode))

	if fired != 1 {
		t.Fatalf("fired = %d, want 1 (max_fires=1 should cap)", fired)
	}
}
