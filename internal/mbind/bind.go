package mbind

import (
	"time"

	"keybinds/internal/bindcommon"
	"keybinds/internal/hkconfig"
	"keybinds/internal/inputstate"
	"keybinds/internal/logging"
)

// MouseBind is a single policy-driven bind on one mouse button.
type MouseBind struct {
	Button   hkconfig.MouseButton
	Callback func()
	Config   hkconfig.MouseBindConfig

	base *bindcommon.Base

	downMs       int64
	hasDown      bool
	tapCount     int
	tapLastMs    int64
	repeatActive bool
	armed        bool
}

// New constructs a MouseBind for the given button.
func New(button hkconfig.MouseButton, callback func(), config hkconfig.MouseBindConfig, window bindcommon.FocusChecker, dispatch bindcommon.Dispatcher, log *logging.Logger) *MouseBind {
	return &MouseBind{
		Button:   button,
		Callback: callback,
		Config:   config,
		base:     bindcommon.NewBase(window, dispatch, log, "mbind"),
	}
}

// Reset clears runtime state.
func (b *MouseBind) Reset() {
	b.hasDown = false
	b.tapCount = 0
	b.tapLastMs = 0
	b.base.HoldToken++
	b.repeatActive = false
	b.armed = false
}

func (b *MouseBind) onBlur() {
	switch b.Config.Focus {
	case hkconfig.CancelOnBlur:
		b.Reset()
	case hkconfig.PauseOnBlur:
		b.base.HoldToken++
	}
}

// Handle feeds one mouse button event through the bind's evaluation
// pipeline and returns the suppression verdict for it.
func (b *MouseBind) Handle(event MouseEvent, state inputstate.Snapshot) Flags {
	b.base.Mu.Lock()
	defer b.base.Mu.Unlock()

	nowMs := event.TimeMs

	if !b.base.WindowOK(false, b.Config.Timing.WindowFocusCacheMs, b.onBlur, nil) {
		return Continue
	}
	if len(b.Config.Checks.Predicates) > 0 && !bindcommon.ChecksOK(b.base.Log, b.base.Source, b.Config.Checks.Predicates, event, state) {
		return Continue
	}
	if event.Button != b.Button {
		return Continue
	}

	pol := b.Config.Injected
	if pol == hkconfig.InjectedIgnore && event.Injected {
		return Continue
	}
	if pol == hkconfig.InjectedOnly && !event.Injected {
		return Continue
	}

	isDown := event.Action == ButtonDown
	isUp := event.Action == ButtonUp

	wasArmed := b.armed
	if isDown {
		b.armed = true
	}
	if isUp {
		b.armed = false
		b.repeatActive = false
	}

	flags := Continue
	sup := b.Config.Suppress

	switch sup {
	case hkconfig.SuppressAlways:
		flags |= Suppress
	case hkconfig.SuppressWhileActive:
		if b.armed {
			flags |= Suppress
		}
	case hkconfig.SuppressWhileEvaluating:
		if b.armed || wasArmed {
			flags |= Suppress
		}
	}

	fireIfAllowed := func(tsMs int64) bool {
		if b.base.CooldownOK(tsMs, b.Config.Timing.CooldownMs) && b.base.MaxFiresOK(b.Config.Constraints) {
			b.base.Fire(tsMs, b.Callback)
			return true
		}
		return false
	}

	switch b.Config.Trigger {
	case hkconfig.OnPress:
		if isDown {
			if fireIfAllowed(nowMs) && sup == hkconfig.SuppressWhenMatched {
				flags |= Suppress
			}
		}

	case hkconfig.OnRelease:
		if isUp {
			if fireIfAllowed(nowMs) && sup == hkconfig.SuppressWhenMatched {
				flags |= Suppress
			}
		}

	case hkconfig.OnClick:
		if isDown {
			b.downMs = nowMs
			b.hasDown = true
		} else if isUp && b.hasDown {
			dur := nowMs - b.downMs
			b.hasDown = false
			if dur <= int64(b.Config.Timing.HoldMs) {
				if fireIfAllowed(nowMs) && sup == hkconfig.SuppressWhenMatched {
					flags |= Suppress
				}
			}
		}

	case hkconfig.OnHold:
		if isDown {
			b.startHoldTimer()
		}

	case hkconfig.OnRepeat:
		if isDown && !b.repeatActive {
			b.repeatActive = true
			b.startRepeatTimer()
		}

	case hkconfig.OnDoubleTap:
		if isDown {
			win := b.Config.Timing.DoubleTapWindowMs
			if (nowMs - b.tapLastMs) <= int64(win) {
				b.tapCount++
			} else {
				b.tapCount = 1
			}
			b.tapLastMs = nowMs
			if b.tapCount >= 2 {
				b.tapCount = 0
				if fireIfAllowed(nowMs) && sup == hkconfig.SuppressWhenMatched {
					flags |= Suppress
				}
			}
		}
	}

	return flags
}

func (b *MouseBind) startHoldTimer() {
	go func() {
		time.Sleep(time.Duration(b.Config.Timing.HoldMs) * time.Millisecond)
		b.base.Mu.Lock()
		defer b.base.Mu.Unlock()
		if !b.armed {
			return
		}
		now2 := time.Now().UnixMilli()
		if b.base.CooldownOK(now2, b.Config.Timing.CooldownMs) && b.base.MaxFiresOK(b.Config.Constraints) {
			b.base.Fire(now2, b.Callback)
		}
	}()
}

func (b *MouseBind) startRepeatTimer() {
	delayMs := b.Config.Timing.HoldMs
	if b.Config.Timing.RepeatDelayMs > delayMs {
		delayMs = b.Config.Timing.RepeatDelayMs
	}
	intervalMs := b.Config.Timing.RepeatIntervalMs
	if intervalMs < 1 {
		intervalMs = 1
	}

	go func() {
		time.Sleep(time.Duration(delayMs) * time.Millisecond)
		for {
			b.base.Mu.Lock()
			if !b.armed {
				b.repeatActive = false
				b.base.Mu.Unlock()
				return
			}
			now2 := time.Now().UnixMilli()
			if b.base.CooldownOK(now2, b.Config.Timing.CooldownMs) && b.base.MaxFiresOK(b.Config.Constraints) {
				b.base.Fire(now2, b.Callback)
			}
			b.base.Mu.Unlock()
			time.Sleep(time.Duration(intervalMs) * time.Millisecond)
		}
	}()
}
