// Package platform installs the OS-level low-level keyboard/mouse hooks
// and pumps their message loop. The OS hooks are set and pumped inside Run,
// which keeps both on the one OS thread it locks for its whole lifetime;
// Install only records the handlers and may run on any goroutine.
package platform

import "errors"

// ErrPlatformUnsupported is returned by Install (and Run) on platforms
// without a real low-level hook implementation.
var ErrPlatformUnsupported = errors.New("platform: low-level input hooks are not implemented on this OS")

// RawKeyEvent is one keyboard event as delivered by the OS hook, before any
// bind evaluation or three-domain state tracking.
type RawKeyEvent struct {
	VKCode   int
	Down     bool
	Injected bool
	TimeMs   int64
}

// RawMouseEvent is one mouse button event as delivered by the OS hook.
// Button uses the platform's native button identifier (Win32 WM_* action
// codes on Windows); the dispatcher normalizes it to hkconfig.MouseButton.
type RawMouseEvent struct {
	Button   int
	XButton  int
	Down     bool
	Injected bool
	TimeMs   int64
}

// KeyHandler receives a raw keyboard event and reports whether the hook
// should swallow it (true) or let it continue down the OS input stack.
type KeyHandler func(RawKeyEvent) bool

// MouseHandler receives a raw mouse event and reports whether the hook
// should swallow it.
type MouseHandler func(RawMouseEvent) bool

// Hooker installs OS-level input hooks and pumps their message loop.
// Install must be called before Run. Install itself does not touch OS hook
// state and may run on any goroutine; it exists as a synchronous,
// immediately-observable failure point (e.g. ErrPlatformUnsupported) for
// platforms with no real hook backend, so a caller never gets back a
// live-looking frontend that silently never delivers events. Run is the
// half that actually owns OS hook state and must execute entirely on one
// OS-locked thread for its whole lifetime.
type Hooker interface {
	// Install registers the hook callbacks and reports whether this
	// platform can actually hook input at all. It does not block.
	Install(onKey KeyHandler, onMouse MouseHandler) error
	// Run pumps the platform message loop until Close is called from
	// another goroutine, or the loop exits abnormally.
	Run() error
	// Close tears down the installed hooks and unblocks Run.
	Close() error
}
