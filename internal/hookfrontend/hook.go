// Package hookfrontend implements the per-application Hook: the bind/unbind
// surface an embedding application calls, pause/resume, and the
// atomically-rebuilt snapshot of active binds the dispatch backend fans
// events into.
package hookfrontend

import (
	"sync"
	"sync/atomic"

	"keybinds/internal/bindcommon"
	"keybinds/internal/dispatch"
	"keybinds/internal/hkconfig"
	"keybinds/internal/inputstate"
	"keybinds/internal/kbind"
	"keybinds/internal/logging"
	"keybinds/internal/mbind"
	"keybinds/internal/worker"
)

// Hook is one application's view of the global input backend: it owns a
// set of keyboard and mouse binds, a callback worker pool, and a
// pause/resume gate. Multiple independent Hooks may register with the
// same process-wide backend.
type Hook struct {
	mu sync.Mutex

	keyboardBinds []*kbind.Bind
	mouseBinds    []*mbind.MouseBind

	// snapshot is rebuilt atomically on every bind/unbind so the hot event
	// path never holds mu while iterating binds.
	keyboardSnapshot atomic.Pointer[[]*kbind.Bind]
	mouseSnapshot    atomic.Pointer[[]*mbind.MouseBind]

	pauseCount int32

	pool    *worker.Pool
	backend *dispatch.Backend
	log     *logging.Logger

	closed bool
}

// New constructs a Hook with its own callback worker pool of the given
// size and registers it with the process-wide dispatch backend. New
// returns the backend's platform install error synchronously (e.g.
// platform.ErrPlatformUnsupported) instead of handing back a Hook that
// looks live but will never deliver an event.
func New(callbackWorkers int, log *logging.Logger) (*Hook, error) {
	h := &Hook{
		pool:    worker.New(callbackWorkers, log, nil),
		backend: dispatch.Global(log),
		log:     log,
	}
	empty1 := []*kbind.Bind{}
	empty2 := []*mbind.MouseBind{}
	h.keyboardSnapshot.Store(&empty1)
	h.mouseSnapshot.Store(&empty2)
	if err := h.backend.Register(h); err != nil {
		h.pool.Stop()
		h.pool.Wait()
		return nil, err
	}
	return h, nil
}

// Dispatch submits fn to the Hook's worker pool instead of running it
// inline on the hook thread; binds use this as their bindcommon.Dispatcher.
func (h *Hook) Dispatch(fn func()) {
	h.pool.Submit(fn)
}

// BindKey parses expr and adds a keyboard bind firing callback under cfg.
func (h *Hook) BindKey(expr string, callback func(), cfg hkconfig.BindConfig) (*kbind.Bind, error) {
	return h.BindKeyWindow(expr, callback, cfg, nil)
}

// BindKeyWindow is BindKey scoped to window: the bind only matches while
// window reports itself focused. A nil window behaves exactly like BindKey.
func (h *Hook) BindKeyWindow(expr string, callback func(), cfg hkconfig.BindConfig, window bindcommon.FocusChecker) (*kbind.Bind, error) {
	b, err := kbind.New(expr, callback, cfg, window, h.Dispatch, h.log)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.keyboardBinds = append(h.keyboardBinds, b)
	h.rebuildKeyboardSnapshot()
	h.mu.Unlock()
	return b, nil
}

// BindMouse adds a mouse bind on button firing callback under cfg.
func (h *Hook) BindMouse(button hkconfig.MouseButton, callback func(), cfg hkconfig.MouseBindConfig) *mbind.MouseBind {
	return h.BindMouseWindow(button, callback, cfg, nil)
}

// BindMouseWindow is BindMouse scoped to window; see BindKeyWindow.
func (h *Hook) BindMouseWindow(button hkconfig.MouseButton, callback func(), cfg hkconfig.MouseBindConfig, window bindcommon.FocusChecker) *mbind.MouseBind {
	b := mbind.New(button, callback, cfg, window, h.Dispatch, h.log)
	h.mu.Lock()
	h.mouseBinds = append(h.mouseBinds, b)
	h.rebuildMouseSnapshot()
	h.mu.Unlock()
	return b
}

// UnbindKey removes a previously added keyboard bind.
func (h *Hook) UnbindKey(b *kbind.Bind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.keyboardBinds[:0]
	for _, existing := range h.keyboardBinds {
		if existing != b {
			kept = append(kept, existing)
		}
	}
	h.keyboardBinds = kept
	h.rebuildKeyboardSnapshot()
}

// UnbindMouse removes a previously added mouse bind.
func (h *Hook) UnbindMouse(b *mbind.MouseBind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.mouseBinds[:0]
	for _, existing := range h.mouseBinds {
		if existing != b {
			kept = append(kept, existing)
		}
	}
	h.mouseBinds = kept
	h.rebuildMouseSnapshot()
}

// rebuildKeyboardSnapshot must be called with mu held.
func (h *Hook) rebuildKeyboardSnapshot() {
	snap := make([]*kbind.Bind, len(h.keyboardBinds))
	copy(snap, h.keyboardBinds)
	h.keyboardSnapshot.Store(&snap)
}

// rebuildMouseSnapshot must be called with mu held.
func (h *Hook) rebuildMouseSnapshot() {
	snap := make([]*mbind.MouseBind, len(h.mouseBinds))
	copy(snap, h.mouseBinds)
	h.mouseSnapshot.Store(&snap)
}

// Pause increments the pause count; while paused, HandleKeyboardEvent and
// HandleMouseEvent short-circuit to Continue without touching any bind.
// Pause/Resume nest: a Hook paused twice needs two Resumes to reactivate.
func (h *Hook) Pause() {
	atomic.AddInt32(&h.pauseCount, 1)
}

// Resume decrements the pause count.
func (h *Hook) Resume() {
	for {
		cur := atomic.LoadInt32(&h.pauseCount)
		if cur <= 0 {
			return
		}
		if atomic.CompareAndSwapInt32(&h.pauseCount, cur, cur-1) {
			return
		}
	}
}

// IsPaused reports whether the Hook is currently paused.
func (h *Hook) IsPaused() bool {
	return atomic.LoadInt32(&h.pauseCount) > 0
}

// Paused runs fn with the Hook paused, resuming afterward even if fn
// panics.
func (h *Hook) Paused(fn func()) {
	h.Pause()
	defer h.Resume()
	fn()
}

// HandleKeyboardEvent implements dispatch.Frontend.
func (h *Hook) HandleKeyboardEvent(evt kbind.KeyEvent, state inputstate.Snapshot) kbind.Flags {
	if h.IsPaused() {
		return kbind.Continue
	}
	binds := *h.keyboardSnapshot.Load()
	if len(binds) == 0 {
		return kbind.Continue
	}
	flags := kbind.Continue
	for _, b := range binds {
		if b.Handle(evt, state) == kbind.Suppress {
			flags = kbind.Suppress
		}
	}
	return flags
}

// HandleMouseEvent implements dispatch.Frontend.
func (h *Hook) HandleMouseEvent(evt mbind.MouseEvent, state inputstate.Snapshot) mbind.Flags {
	if h.IsPaused() {
		return mbind.Continue
	}
	binds := *h.mouseSnapshot.Load()
	if len(binds) == 0 {
		return mbind.Continue
	}
	flags := mbind.Continue
	for _, b := range binds {
		if b.Handle(evt, state) == mbind.Suppress {
			flags = mbind.Suppress
		}
	}
	return flags
}

// Close detaches the Hook from the backend and stops its worker pool.
// Close is idempotent.
func (h *Hook) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	h.backend.Unregister(h)
	h.pool.Stop()
	h.log.Infow("hookfrontend", "hook closed")
}

// Wait blocks until the Hook's worker goroutines have exited. Callers
// typically call Close first. Close does not drain the callback queue:
// callbacks still queued when Close is called may never run.
func (h *Hook) Wait() {
	h.pool.Wait()
}
