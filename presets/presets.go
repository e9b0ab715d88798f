// Package presets provides ergonomic builder functions for the common
// BindConfig/MouseBindConfig shapes, so callers don't hand-assemble a
// hkconfig.BindConfig literal for every bind. Each builder returns a ready
// config via hkconfig.SoftMerge over the package defaults, mirroring the
// reference implementation's presets.py functions.
package presets

import "keybinds/internal/hkconfig"

// TimingOverrides carries the subset of timing fields a preset builder may
// want to override; zero fields are left at their hkconfig.DefaultTiming()
// value.
type TimingOverrides struct {
	HoldMs           int
	RepeatDelayMs    int
	RepeatIntervalMs int
	DoubleTapWindowMs int
	ChordTimeoutMs   int
	CooldownMs       int
	DebounceMs       int
}

func (o TimingOverrides) patch() hkconfig.TimingPatch {
	p := hkconfig.TimingPatch{}
	if o.HoldMs != 0 {
		v := o.HoldMs
		p.HoldMs = &v
	}
	if o.RepeatDelayMs != 0 {
		v := o.RepeatDelayMs
		p.RepeatDelayMs = &v
	}
	if o.RepeatIntervalMs != 0 {
		v := o.RepeatIntervalMs
		p.RepeatIntervalMs = &v
	}
	if o.DoubleTapWindowMs != 0 {
		v := o.DoubleTapWindowMs
		p.DoubleTapWindowMs = &v
	}
	if o.ChordTimeoutMs != 0 {
		v := o.ChordTimeoutMs
		p.ChordTimeoutMs = &v
	}
	if o.CooldownMs != 0 {
		v := o.CooldownMs
		p.CooldownMs = &v
	}
	if o.DebounceMs != 0 {
		v := o.DebounceMs
		p.DebounceMs = &v
	}
	return p
}

func constraints(strict bool) hkconfig.Constraints {
	c := hkconfig.DefaultConstraints()
	if strict {
		c.ChordPolicy = hkconfig.ChordStrict
	}
	return c
}

func build(trigger hkconfig.Trigger, suppress hkconfig.SuppressPolicy, t TimingOverrides, strict bool) hkconfig.BindConfig {
	cfg := hkconfig.DefaultBindConfig()
	cfg.Trigger = trigger
	cfg.Suppress = suppress
	cfg.Timing = hkconfig.DefaultTiming()
	cfg.Constraints = constraints(strict)
	patch := hkconfig.BindConfigPatch{Timing: t.patch()}
	return hkconfig.SoftMerge(cfg, patch)
}

// Press builds an ON_PRESS config.
func Press(suppress hkconfig.SuppressPolicy, t TimingOverrides, strict bool) hkconfig.BindConfig {
	return build(hkconfig.OnPress, suppress, t, strict)
}

// Release builds an ON_RELEASE config.
func Release(suppress hkconfig.SuppressPolicy, t TimingOverrides, strict bool) hkconfig.BindConfig {
	return build(hkconfig.OnRelease, suppress, t, strict)
}

// ChordReleased builds an ON_CHORD_RELEASED config.
func ChordReleased(suppress hkconfig.SuppressPolicy, t TimingOverrides, strict bool) hkconfig.BindConfig {
	return build(hkconfig.OnChordReleased, suppress, t, strict)
}

// Click builds an ON_CLICK config with tapMs as the max press-release
// duration still counted as a click (defaults to 220ms if 0).
func Click(tapMs int, suppress hkconfig.SuppressPolicy, strict bool) hkconfig.BindConfig {
	if tapMs <= 0 {
		tapMs = 220
	}
	return build(hkconfig.OnClick, suppress, TimingOverrides{HoldMs: tapMs}, strict)
}

// Hold builds an ON_HOLD config, holdMs defaulting to 400ms if 0.
func Hold(holdMs int, suppress hkconfig.SuppressPolicy, strict bool) hkconfig.BindConfig {
	if holdMs <= 0 {
		holdMs = 400
	}
	return build(hkconfig.OnHold, suppress, TimingOverrides{HoldMs: holdMs}, strict)
}

// Repeat builds an ON_REPEAT config; delayMs/intervalMs default to
// 200/80ms if 0.
func Repeat(delayMs, intervalMs int, suppress hkconfig.SuppressPolicy, strict bool) hkconfig.BindConfig {
	if delayMs <= 0 {
		delayMs = 200
	}
	if intervalMs <= 0 {
		intervalMs = 80
	}
	return build(hkconfig.OnRepeat, suppress, TimingOverrides{
		HoldMs:           delayMs,
		RepeatDelayMs:    delayMs,
		RepeatIntervalMs: intervalMs,
	}, strict)
}

// DoubleTap builds an ON_DOUBLE_TAP config, windowMs defaulting to 300ms.
func DoubleTap(windowMs int, suppress hkconfig.SuppressPolicy, strict bool) hkconfig.BindConfig {
	if windowMs <= 0 {
		windowMs = 300
	}
	return build(hkconfig.OnDoubleTap, suppress, TimingOverrides{DoubleTapWindowMs: windowMs}, strict)
}

// Sequence builds an ON_SEQUENCE config, timeoutMs defaulting to 550ms.
func Sequence(timeoutMs int, suppress hkconfig.SuppressPolicy) hkconfig.BindConfig {
	if timeoutMs <= 0 {
		timeoutMs = 550
	}
	return build(hkconfig.OnSequence, suppress, TimingOverrides{ChordTimeoutMs: timeoutMs}, false)
}

func buildMouse(trigger hkconfig.Trigger, suppress hkconfig.SuppressPolicy, t TimingOverrides) hkconfig.MouseBindConfig {
	cfg := hkconfig.DefaultMouseBindConfig()
	cfg.Trigger = trigger
	cfg.Suppress = suppress
	cfg.Timing = hkconfig.DefaultTiming()
	patch := hkconfig.BindConfigPatch{Timing: t.patch()}
	return hkconfig.SoftMergeMouse(cfg, patch)
}

// MousePress builds an ON_PRESS MouseBindConfig.
func MousePress(suppress hkconfig.SuppressPolicy) hkconfig.MouseBindConfig {
	return buildMouse(hkconfig.OnPress, suppress, TimingOverrides{})
}

// MouseRelease builds an ON_RELEASE MouseBindConfig.
func MouseRelease(suppress hkconfig.SuppressPolicy) hkconfig.MouseBindConfig {
	return buildMouse(hkconfig.OnRelease, suppress, TimingOverrides{})
}

// MouseClick builds an ON_CLICK MouseBindConfig, tapMs defaulting to 200ms.
func MouseClick(tapMs int, suppress hkconfig.SuppressPolicy) hkconfig.MouseBindConfig {
	if tapMs <= 0 {
		tapMs = 200
	}
	return buildMouse(hkconfig.OnClick, suppress, TimingOverrides{HoldMs: tapMs})
}

// MouseHold builds an ON_HOLD MouseBindConfig, holdMs defaulting to 300ms.
func MouseHold(holdMs int, suppress hkconfig.SuppressPolicy) hkconfig.MouseBindConfig {
	if holdMs <= 0 {
		holdMs = 300
	}
	return buildMouse(hkconfig.OnHold, suppress, TimingOverrides{HoldMs: holdMs})
}

// MouseRepeat builds an ON_REPEAT MouseBindConfig; delayMs/intervalMs
// default to 180/80ms.
func MouseRepeat(delayMs, intervalMs int, suppress hkconfig.SuppressPolicy) hkconfig.MouseBindConfig {
	if delayMs <= 0 {
		delayMs = 180
	}
	if intervalMs <= 0 {
		intervalMs = 80
	}
	return buildMouse(hkconfig.OnRepeat, suppress, TimingOverrides{
		HoldMs:           delayMs,
		RepeatDelayMs:    delayMs,
		RepeatIntervalMs: intervalMs,
	})
}

// MouseDoubleTap builds an ON_DOUBLE_TAP MouseBindConfig, windowMs
// defaulting to 300ms.
func MouseDoubleTap(windowMs int, suppress hkconfig.SuppressPolicy) hkconfig.MouseBindConfig {
	if windowMs <= 0 {
		windowMs = 300
	}
	return buildMouse(hkconfig.OnDoubleTap, suppress, TimingOverrides{DoubleTapWindowMs: windowMs})
}

// TapHoldProfile bundles the classic "tap does A, hold does B" pattern for
// one physical key.
type TapHoldProfile struct {
	Tap  hkconfig.BindConfig
	Hold hkconfig.BindConfig
}

// TapHold builds a TapHoldProfile; tapMs/holdMs default to 220/450ms.
func TapHold(tapMs, holdMs int, suppress hkconfig.SuppressPolicy, cooldownMs, debounceMs int) TapHoldProfile {
	if tapMs <= 0 {
		tapMs = 220
	}
	if holdMs <= 0 {
		holdMs = 450
	}
	tap := build(hkconfig.OnClick, suppress, TimingOverrides{HoldMs: tapMs, DebounceMs: debounceMs}, false)
	hold := build(hkconfig.OnHold, suppress, TimingOverrides{HoldMs: holdMs, CooldownMs: cooldownMs, DebounceMs: debounceMs}, false)
	return TapHoldProfile{Tap: tap, Hold: hold}
}

// PTTProfile bundles push-to-talk: Press enables, Release disables.
type PTTProfile struct {
	Press   hkconfig.BindConfig
	Release hkconfig.BindConfig
}

// PTT builds a PTTProfile. suppress=true uses WHILE_ACTIVE so the key
// doesn't leak to the focused app while held.
func PTT(suppress bool, strict bool) PTTProfile {
	sup := hkconfig.SuppressNever
	if suppress {
		sup = hkconfig.SuppressWhileActive
	}
	return PTTProfile{
		Press:   Press(sup, TimingOverrides{}, strict),
		Release: Release(sup, TimingOverrides{}, strict),
	}
}

// SilentHotkey builds a hotkey meant not to reach the focused app:
// aggressive=false suppresses only once matched (safest UX); aggressive=true
// suppresses for the whole chord assembly.
func SilentHotkey(strict, aggressive bool) hkconfig.BindConfig {
	sup := hkconfig.SuppressWhenMatched
	if aggressive {
		sup = hkconfig.SuppressWhileEvaluating
	}
	return Press(sup, TimingOverrides{}, strict)
}

// HiddenChord builds a chord meant to be fully hidden from apps while it
// is being assembled, chordTimeoutMs defaulting to 450ms.
func HiddenChord(strict bool, chordTimeoutMs int) hkconfig.BindConfig {
	if chordTimeoutMs <= 0 {
		chordTimeoutMs = 450
	}
	return build(hkconfig.OnPress, hkconfig.SuppressWhileEvaluating, TimingOverrides{ChordTimeoutMs: chordTimeoutMs}, strict)
}

// GameAutofire builds a mouse autofire (repeat-while-held) profile;
// delayMs/intervalMs default to 150/60ms. suppress=true blocks the click
// from reaching the app.
func GameAutofire(delayMs, intervalMs int, suppress bool) hkconfig.MouseBindConfig {
	sup := hkconfig.SuppressNever
	if suppress {
		sup = hkconfig.SuppressWhileActive
	}
	if delayMs <= 0 {
		delayMs = 150
	}
	if intervalMs <= 0 {
		intervalMs = 60
	}
	return MouseRepeat(delayMs, intervalMs, sup)
}

// RapidDoubleTap builds a fast "dash"-style double tap with a short
// cooldown; windowMs/cooldownMs default to 220/150ms.
func RapidDoubleTap(windowMs, cooldownMs int, suppress hkconfig.SuppressPolicy) hkconfig.BindConfig {
	if windowMs <= 0 {
		windowMs = 220
	}
	if cooldownMs <= 0 {
		cooldownMs = 150
	}
	return build(hkconfig.OnDoubleTap, suppress, TimingOverrides{DoubleTapWindowMs: windowMs, CooldownMs: cooldownMs}, false)
}

// CheatcodeSequence builds a sequence preset tuned for multi-step combos;
// timeoutMs defaults to 700ms.
func CheatcodeSequence(timeoutMs int, suppress hkconfig.SuppressPolicy) hkconfig.BindConfig {
	if timeoutMs <= 0 {
		timeoutMs = 700
	}
	return Sequence(timeoutMs, suppress)
}
