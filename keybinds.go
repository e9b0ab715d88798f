// Package keybinds is the public entry point: construct a Hook, bind
// keyboard chords and mouse buttons against it, and run the process until a
// signal arrives. Most callers never touch the internal/ packages directly;
// they go through the functions and types exported here, mirroring the
// reference implementation's package-level decorator API.
package keybinds

import (
	"keybinds/internal/bindcommon"
	"keybinds/internal/hkconfig"
	"keybinds/internal/hookfrontend"
	"keybinds/internal/kbind"
	"keybinds/internal/logging"
	"keybinds/internal/mbind"
)

// Re-exported config types so callers never need to import internal/hkconfig
// directly.
type (
	Trigger         = hkconfig.Trigger
	SuppressPolicy  = hkconfig.SuppressPolicy
	ChordPolicy     = hkconfig.ChordPolicy
	OrderPolicy     = hkconfig.OrderPolicy
	InjectedPolicy  = hkconfig.InjectedPolicy
	FocusPolicy     = hkconfig.FocusPolicy
	MouseButton     = hkconfig.MouseButton
	Timing          = hkconfig.Timing
	Constraints     = hkconfig.Constraints
	Checks          = hkconfig.Checks
	Predicate       = hkconfig.Predicate
	BindConfig      = hkconfig.BindConfig
	MouseBindConfig = hkconfig.MouseBindConfig
	FocusChecker    = bindcommon.FocusChecker
)

const (
	OnPress         = hkconfig.OnPress
	OnRelease       = hkconfig.OnRelease
	OnClick         = hkconfig.OnClick
	OnHold          = hkconfig.OnHold
	OnRepeat        = hkconfig.OnRepeat
	OnDoubleTap     = hkconfig.OnDoubleTap
	OnChordComplete = hkconfig.OnChordComplete
	OnChordReleased = hkconfig.OnChordReleased
	OnSequence      = hkconfig.OnSequence

	SuppressNever           = hkconfig.SuppressNever
	SuppressAlways          = hkconfig.SuppressAlways
	SuppressWhenMatched     = hkconfig.SuppressWhenMatched
	SuppressWhileActive     = hkconfig.SuppressWhileActive
	SuppressWhileEvaluating = hkconfig.SuppressWhileEvaluating

	MouseLeft   = hkconfig.MouseLeft
	MouseRight  = hkconfig.MouseRight
	MouseMiddle = hkconfig.MouseMiddle
	MouseX1     = hkconfig.MouseX1
	MouseX2     = hkconfig.MouseX2
)

var DefaultBindConfig = hkconfig.DefaultBindConfig
var DefaultMouseBindConfig = hkconfig.DefaultMouseBindConfig
var DefaultTiming = hkconfig.DefaultTiming
var DefaultConstraints = hkconfig.DefaultConstraints

// Hook is one application's view of the input backend. It owns a set of
// keyboard and mouse binds plus a callback worker pool; multiple Hooks may
// coexist in the same process, each independently pausable and closeable.
type Hook struct {
	inner *hookfrontend.Hook
}

// NewHook constructs a Hook with callbackWorkers goroutines backing its
// dispatch pool (0 uses the package default worker count) and an optional
// diagnostic logger (nil disables logging entirely). NewHook fails
// synchronously if the platform hook cannot be installed at all, e.g. on a
// build with no low-level input hook backend.
func NewHook(callbackWorkers int, log *logging.Logger) (*Hook, error) {
	inner, err := hookfrontend.New(callbackWorkers, log)
	if err != nil {
		return nil, err
	}
	return &Hook{inner: inner}, nil
}

// Bind parses expr (a chord like "ctrl+shift+k", or a comma-separated
// sequence like "g,k,i") and fires callback according to cfg.
func (h *Hook) Bind(expr string, callback func(), cfg BindConfig) (*kbind.Bind, error) {
	return h.inner.BindKey(expr, callback, cfg)
}

// BindMouse binds callback to button according to cfg.
func (h *Hook) BindMouse(button MouseButton, callback func(), cfg MouseBindConfig) *mbind.MouseBind {
	return h.inner.BindMouse(button, callback, cfg)
}

// BindWindow is Bind scoped to window: the bind only matches while window
// reports itself focused.
func (h *Hook) BindWindow(expr string, callback func(), cfg BindConfig, window FocusChecker) (*kbind.Bind, error) {
	return h.inner.BindKeyWindow(expr, callback, cfg, window)
}

// BindMouseWindow is BindMouse scoped to window; see BindWindow.
func (h *Hook) BindMouseWindow(button MouseButton, callback func(), cfg MouseBindConfig, window FocusChecker) *mbind.MouseBind {
	return h.inner.BindMouseWindow(button, callback, cfg, window)
}

func bindWithWindow(h *Hook, expr string, callback func(), cfg BindConfig, window FocusChecker) (*kbind.Bind, error) {
	return h.BindWindow(expr, callback, cfg, window)
}

// Unbind removes a previously added keyboard bind.
func (h *Hook) Unbind(b *kbind.Bind) {
	h.inner.UnbindKey(b)
}

// UnbindMouse removes a previously added mouse bind.
func (h *Hook) UnbindMouse(b *mbind.MouseBind) {
	h.inner.UnbindMouse(b)
}

// Pause suspends all binds on this Hook; Pause/Resume nest.
func (h *Hook) Pause() { h.inner.Pause() }

// Resume reactivates this Hook after a matching Pause.
func (h *Hook) Resume() { h.inner.Resume() }

// IsPaused reports whether this Hook is currently paused.
func (h *Hook) IsPaused() bool { return h.inner.IsPaused() }

// Paused runs fn with the Hook paused, resuming afterward even if fn panics
// — the Go equivalent of the reference implementation's "with hook.paused():"
// context manager.
func (h *Hook) Paused(fn func()) { h.inner.Paused(fn) }

// Wait blocks until the Hook's worker goroutines have exited. Callers
// typically call Close first. Close does not drain the callback queue:
// callbacks still queued when Close is called may never run.
func (h *Hook) Wait() { h.inner.Wait() }

// Close detaches the Hook from the shared backend and stops its worker
// pool. Close is idempotent.
func (h *Hook) Close() { h.inner.Close() }
