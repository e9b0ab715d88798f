package keybinds

import (
	"errors"

	"keybinds/internal/hkconfig"
	"keybinds/internal/kbind"
)

// ErrConflictingTriggerOptions is returned by Hotkey when more than one of
// WithRelease/WithHold/WithRepeat/WithSequence/WithDoubleTap is supplied for
// the same bind.
var ErrConflictingTriggerOptions = errors.New("keybinds: conflicting trigger options: use only one of release/hold/repeat/sequence/double_tap")

// hotkeyOptions accumulates the flags HotkeyOption funcs set; at most one of
// the five trigger-selecting fields below may be set per call to Hotkey.
type hotkeyOptions struct {
	release, sequence, doubleTap bool
	hold, repeat                 *int
	repeatDelayMs                *int
	sequenceTimeoutMs            *int
	doubleTapWindowMs            *int
	suppress                     bool
	window                       FocusChecker
	hook                         *Hook
}

// HotkeyOption configures a Hotkey call.
type HotkeyOption func(*hotkeyOptions)

// WithRelease fires on key release instead of press.
func WithRelease() HotkeyOption { return func(o *hotkeyOptions) { o.release = true } }

// WithHold fires once the key has been held for holdMs.
func WithHold(holdMs int) HotkeyOption {
	return func(o *hotkeyOptions) { o.hold = &holdMs }
}

// WithRepeat fires repeatedly every intervalMs while the key is held, after
// an optional initial WithRepeatDelay.
func WithRepeat(intervalMs int) HotkeyOption {
	return func(o *hotkeyOptions) { o.repeat = &intervalMs }
}

// WithRepeatDelay sets the initial delay before WithRepeat's first fire.
func WithRepeatDelay(delayMs int) HotkeyOption {
	return func(o *hotkeyOptions) { o.repeatDelayMs = &delayMs }
}

// WithSequence treats expr as a comma-separated ordered sequence of chords.
func WithSequence() HotkeyOption { return func(o *hotkeyOptions) { o.sequence = true } }

// WithSequenceTimeout overrides the default inter-step timeout for
// WithSequence; it has no effect without WithSequence.
func WithSequenceTimeout(timeoutMs int) HotkeyOption {
	return func(o *hotkeyOptions) { o.sequenceTimeoutMs = &timeoutMs }
}

// WithDoubleTap fires when the key is pressed twice within its window.
func WithDoubleTap() HotkeyOption { return func(o *hotkeyOptions) { o.doubleTap = true } }

// WithDoubleTapWindow overrides the default double-tap window for
// WithDoubleTap.
func WithDoubleTapWindow(windowMs int) HotkeyOption {
	return func(o *hotkeyOptions) { o.doubleTapWindowMs = &windowMs }
}

// WithSuppress blocks the underlying OS event once the bind matches.
func WithSuppress() HotkeyOption { return func(o *hotkeyOptions) { o.suppress = true } }

// WithWindow scopes the bind to a window: it only matches while window
// reports itself focused.
func WithWindow(window FocusChecker) HotkeyOption {
	return func(o *hotkeyOptions) { o.window = window }
}

// WithHook binds against hook instead of the package default Hook.
func WithHook(hook *Hook) HotkeyOption {
	return func(o *hotkeyOptions) { o.hook = hook }
}

func buildHotkeyConfig(o *hotkeyOptions) (hkconfig.BindConfig, error) {
	exclusive := 0
	if o.release {
		exclusive++
	}
	if o.hold != nil {
		exclusive++
	}
	if o.repeat != nil {
		exclusive++
	}
	if o.sequence {
		exclusive++
	}
	if o.doubleTap {
		exclusive++
	}
	if exclusive > 1 {
		return hkconfig.BindConfig{}, ErrConflictingTriggerOptions
	}

	cfg := hkconfig.DefaultBindConfig()
	timing := cfg.Timing

	switch {
	case o.hold != nil:
		cfg.Trigger = hkconfig.OnHold
		timing.HoldMs = *o.hold
	case o.repeat != nil:
		cfg.Trigger = hkconfig.OnRepeat
		timing.RepeatIntervalMs = *o.repeat
		if o.repeatDelayMs != nil {
			timing.RepeatDelayMs = *o.repeatDelayMs
		}
	case o.sequence:
		cfg.Trigger = hkconfig.OnSequence
		if o.sequenceTimeoutMs != nil {
			timing.ChordTimeoutMs = *o.sequenceTimeoutMs
		}
	case o.doubleTap:
		cfg.Trigger = hkconfig.OnDoubleTap
		if o.doubleTapWindowMs != nil {
			timing.DoubleTapWindowMs = *o.doubleTapWindowMs
		}
	case o.release:
		cfg.Trigger = hkconfig.OnRelease
	default:
		cfg.Trigger = hkconfig.OnPress
	}

	cfg.Timing = timing
	if o.suppress {
		cfg.Suppress = hkconfig.SuppressWhenMatched
	}
	return cfg, nil
}

// Hotkey is the simple-layer entry point: translate a handful of boolean/int
// flags into a BindConfig and register callback against expr, picking
// OnHold/OnRepeat/OnSequence/OnDoubleTap/OnRelease/OnPress by priority
// (hold > repeat > sequence > double_tap > release > press) and rejecting
// conflicting combinations with ErrConflictingTriggerOptions.
func Hotkey(expr string, callback func(), opts ...HotkeyOption) (*kbind.Bind, error) {
	o := &hotkeyOptions{}
	for _, opt := range opts {
		opt(o)
	}

	cfg, err := buildHotkeyConfig(o)
	if err != nil {
		return nil, err
	}

	hook := o.hook
	if hook == nil {
		h, err := DefaultHook()
		if err != nil {
			return nil, err
		}
		hook = h
	}

	if o.window != nil {
		return bindWithWindow(hook, expr, callback, cfg, o.window)
	}
	return hook.Bind(expr, callback, cfg)
}
