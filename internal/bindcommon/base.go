// Package bindcommon holds the fields and helper methods that internal/kbind
// and internal/mbind both need: focus-edge tracking, the user predicate
// chain, cooldown/max-fires gating, and callback dispatch. It mirrors the
// reference implementation's shared base-bind class, split out as a plain
// struct to embed rather than an inheritance hierarchy.
package bindcommon

import (
	"sync"
	"time"

	"keybinds/internal/hkconfig"
	"keybinds/internal/logging"
)

// FocusChecker reports whether a target window currently has OS foreground
// focus. A nil FocusChecker means "no window scoping" and always reports
// focused, matching the reference implementation's hwnd=None behavior.
type FocusChecker interface {
	IsFocused() (bool, error)
}

// Dispatcher submits a callback for asynchronous execution, e.g. onto a
// worker pool, instead of running it inline on the hook thread.
type Dispatcher func(fn func())

// Base holds the state and policy evaluation shared by every keyboard and
// mouse bind: focus-edge detection, predicate checks, cooldown/max-fires,
// and dispatch plumbing. Each bind holds one (by pointer) and calls its
// methods while holding Mu.
type Base struct {
	Window   FocusChecker
	Dispatch Dispatcher
	Log      *logging.Logger
	Source   string

	HoldToken int

	focusCache         bool
	focusLastCheckMs   int64
	focusLastValue     *bool
	focusLastValueKnown bool

	LastFireMs int64
	Fires      int

	Mu sync.Mutex
}

// NewBase constructs a Base; dispatch defaults to synchronous inline
// execution if nil, matching the reference's "dispatch or (lambda fn: fn())".
// source tags log entries so a panicking predicate or callback can be traced
// back to "kbind" vs "mbind".
func NewBase(window FocusChecker, dispatch Dispatcher, log *logging.Logger, source string) *Base {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Base{Window: window, Dispatch: dispatch, Log: log, Source: source, focusCache: true}
}

// OnBlurFunc is invoked when a focus-tracked bind transitions from focused
// to blurred, parameterized by the bind's FocusPolicy so Base stays
// decoupled from kbind/mbind's reset() implementations.
type OnBlurFunc func(policy hkconfig.FocusPolicy, bumpHoldToken func())

// WindowOK reports whether the bind's window currently passes its focus
// gate, applying the timing.WindowFocusCacheMs cache unless force is set
// (used by ON_HOLD/ON_REPEAT timers re-checking after a sleep). onBlur is
// called on a focused->blurred edge; onFocus on a blurred->focused edge.
func (b *Base) WindowOK(force bool, cacheMs int, onBlur, onFocus func()) bool {
	if b.Window == nil {
		return true
	}

	nowMs := time.Now().UnixMilli()
	if !force && (nowMs-b.focusLastCheckMs) < int64(cacheMs) {
		return b.focusCache
	}

	b.focusLastCheckMs = nowMs
	focused, err := b.Window.IsFocused()
	if err != nil {
		focused = false
	}

	if !b.focusLastValueKnown {
		b.focusLastValueKnown = true
		v := focused
		b.focusLastValue = &v
	} else if focused != *b.focusLastValue {
		v := focused
		b.focusLastValue = &v
		if focused {
			if onFocus != nil {
				onFocus()
			}
		} else if onBlur != nil {
			onBlur()
		}
	}

	b.focusCache = focused
	return focused
}

// ChecksOK runs every predicate in order; a predicate returning false, or
// panicking, fails the whole chain (panics are recovered and logged via
// log — a buggy user predicate must never take the hook thread down).
func ChecksOK(log *logging.Logger, source string, predicates []hkconfig.Predicate, event any, state any) bool {
	for _, pred := range predicates {
		if !runPredicate(log, source, pred, event, state) {
			return false
		}
	}
	return true
}

func runPredicate(log *logging.Logger, source string, pred hkconfig.Predicate, event, state any) (result bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw(source, "predicate panicked", "recovered", r)
			result = false
		}
	}()
	return pred(event, state)
}

// CooldownOK reports whether enough time has passed since the last fire.
func (b *Base) CooldownOK(nowMs int64, cooldownMs int) bool {
	return cooldownMs <= 0 || (nowMs-b.LastFireMs) >= int64(cooldownMs)
}

// MaxFiresOK reports whether the bind is still under its lifetime fire cap.
func (b *Base) MaxFiresOK(c hkconfig.Constraints) bool {
	return !c.HasMaxFires || b.Fires < c.MaxFires
}

// Fire dispatches callback (synchronously or onto the configured
// Dispatcher) and records the fire for cooldown/max-fires bookkeeping. The
// caller must already hold Mu and have confirmed CooldownOK/MaxFiresOK.
func (b *Base) Fire(nowMs int64, callback func()) {
	b.Fires++
	b.LastFireMs = nowMs
	b.Dispatch(func() {
		defer func() {
			if r := recover(); r != nil {
				b.Log.Errorw(b.Source, "bind callback panicked", "recovered", r)
			}
		}()
		callback()
	})
}
