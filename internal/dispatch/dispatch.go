// Package dispatch implements the process-wide input backend: a singleton
// that owns the platform hook thread, maintains the three-domain
// pressed-key/pressed-button snapshot, and OR-reduces the suppression
// verdict across every live hook frontend.
package dispatch

import (
	"sync"

	"golang.design/x/hotkey/mainthread"

	"keybinds/internal/hkconfig"
	"keybinds/internal/inputstate"
	"keybinds/internal/kbind"
	"keybinds/internal/logging"
	"keybinds/internal/mbind"
	"keybinds/internal/platform"
)

// Frontend is the subset of hookfrontend.Hook the backend needs to fan
// events out to. Kept as an interface (rather than importing hookfrontend
// directly) to avoid a dispatch<->hookfrontend import cycle — hookfrontend
// registers itself with the backend.
type Frontend interface {
	HandleKeyboardEvent(evt kbind.KeyEvent, state inputstate.Snapshot) kbind.Flags
	HandleMouseEvent(evt mbind.MouseEvent, state inputstate.Snapshot) mbind.Flags
}

// Backend is the singleton that owns the OS hook and fans events out to
// every registered Frontend. The reference implementation holds its
// per-process hook list by weakref so a garbage-collected Hook detaches
// itself automatically; Go has no ergonomic equivalent for interface
// values (weak.Pointer needs a stable pointee, not a freshly boxed
// interface copy), so frontends are held by strong reference instead and
// Hook.Close is required to call Unregister explicitly — arguably more
// idiomatic Go, since the package already gives every Hook an explicit
// lifecycle.
type Backend struct {
	mu     sync.Mutex
	hooks  []Frontend
	hooker platform.Hooker
	log    *logging.Logger

	startOnce sync.Once
	startErr  error

	stateMu sync.Mutex
	keys    map[int]bool
	keysAll map[int]bool
	keysInj map[int]bool

	mouse    map[hkconfig.MouseButton]bool
	mouseAll map[hkconfig.MouseButton]bool
	mouseInj map[hkconfig.MouseButton]bool
}

var (
	instance     *Backend
	instanceOnce sync.Once
)

// Global returns the process-wide Backend singleton, constructing it (but
// not starting its hook thread) on first call.
func Global(log *logging.Logger) *Backend {
	instanceOnce.Do(func() {
		instance = newBackend(log)
	})
	return instance
}

func newBackend(log *logging.Logger) *Backend {
	return &Backend{
		hooker:   platform.New(),
		log:      log,
		keys:     map[int]bool{},
		keysAll:  map[int]bool{},
		keysInj:  map[int]bool{},
		mouse:    map[hkconfig.MouseButton]bool{},
		mouseAll: map[hkconfig.MouseButton]bool{},
		mouseInj: map[hkconfig.MouseButton]bool{},
	}
}

// Register attaches a frontend to the backend, synchronously installing the
// shared platform hook on the first registration. It returns an error
// (e.g. platform.ErrPlatformUnsupported), without registering f, if the
// platform hook cannot be installed at all — the caller never gets back a
// live-looking Hook that silently never delivers events. Once installed
// (or once install has failed once), the result is cached: install is
// never retried, since platform support is a fixed property of the
// process, not a transient condition. Callers must pair a successful
// Register with Unregister (typically from Hook.Close) so the backend does
// not keep firing events into a closed frontend.
func (b *Backend) Register(f Frontend) error {
	b.startOnce.Do(func() {
		b.startErr = b.start()
	})
	if b.startErr != nil {
		return b.startErr
	}

	b.mu.Lock()
	b.hooks = append(b.hooks, f)
	total := len(b.hooks)
	b.mu.Unlock()

	b.log.Debugw("dispatch", "frontend registered", "total", total)
	return nil
}

// Unregister detaches a frontend so it stops receiving events.
func (b *Backend) Unregister(f Frontend) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.hooks[:0]
	for _, h := range b.hooks {
		if h != f {
			kept = append(kept, h)
		}
	}
	b.hooks = kept
}

func (b *Backend) aliveHooks() []Frontend {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Frontend, len(b.hooks))
	copy(out, b.hooks)
	return out
}

// start synchronously installs the platform hook and, only once that
// succeeds, hands the blocking message pump to its own OS-locked goroutine.
// The platform layer itself calls runtime.LockOSThread before pumping,
// which is sufficient on Windows (WH_KEYBOARD_LL/WH_MOUSE_LL only require a
// single consistent thread, not the process's real main thread).
// Applications embedding libraries that DO require the real OS main thread
// (Cocoa event taps, robotgo's GUI-adjacent calls on macOS) should drive
// startup through RunOnMainThread instead of relying on this lazy
// auto-start; see that function's doc comment.
func (b *Backend) start() error {
	if err := b.hooker.Install(b.onKeyboard, b.onMouse); err != nil {
		b.log.Errorw("dispatch", "failed to install platform hook", "error", err)
		return err
	}
	b.log.Infow("dispatch", "platform hook installed")
	go func() {
		if err := b.hooker.Run(); err != nil {
			b.log.Errorw("dispatch", "platform hook loop exited", "error", err)
		}
	}()
	return nil
}

// RunOnMainThread hands control of the process's real OS main thread to
// mainthread.Init, then runs fn on it before returning control to the
// mainthread event loop. Call this from func main() instead of calling fn
// directly when the embedding application also links a library that
// assumes hook/event-loop code runs on the OS main thread.
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// Close tears down the platform hook. The backend instance itself is not
// reset, and a subsequent Register does not install or run the hook again:
// the install result is cached by Register's startOnce.
func (b *Backend) Close() error {
	return b.hooker.Close()
}

func (b *Backend) snapshot() inputstate.Snapshot {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	return inputstate.Snapshot{
		PressedKeys:          cloneIntSet(b.keys),
		PressedKeysAll:       cloneIntSet(b.keysAll),
		PressedKeysInjected:  cloneIntSet(b.keysInj),
		PressedMouse:         cloneButtonSet(b.mouse),
		PressedMouseAll:      cloneButtonSet(b.mouseAll),
		PressedMouseInjected: cloneButtonSet(b.mouseInj),
	}
}

func cloneIntSet(m map[int]bool) map[int]bool {
	out := make(map[int]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneButtonSet(m map[hkconfig.MouseButton]bool) map[hkconfig.MouseButton]bool {
	out := make(map[hkconfig.MouseButton]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (b *Backend) onKeyboard(raw platform.RawKeyEvent) bool {
	b.stateMu.Lock()
	wasDown := b.domainKeyDown(raw)
	if raw.Down {
		b.keys0(raw, true)
	} else {
		b.keys0(raw, false)
	}
	b.stateMu.Unlock()

	isRepeat := raw.Down && wasDown

	state := b.snapshot()
	evt := kbind.KeyEvent{
		VKCode:   raw.VKCode,
		TimeMs:   raw.TimeMs,
		Injected: raw.Injected,
		IsRepeat: isRepeat,
	}
	if raw.Down {
		evt.Action = kbind.KeyDown
	} else {
		evt.Action = kbind.KeyUp
	}

	suppress := false
	for _, h := range b.aliveHooks() {
		if h.HandleKeyboardEvent(evt, state) == kbind.Suppress {
			suppress = true
		}
	}
	return suppress
}

func (b *Backend) domainKeyDown(raw platform.RawKeyEvent) bool {
	if raw.Injected {
		return b.keysInj[raw.VKCode]
	}
	return b.keys[raw.VKCode]
}

func (b *Backend) keys0(raw platform.RawKeyEvent, down bool) {
	if raw.Injected {
		setBool(b.keysInj, raw.VKCode, down)
	} else {
		setBool(b.keys, raw.VKCode, down)
	}
	setBool(b.keysAll, raw.VKCode, b.keys[raw.VKCode] || b.keysInj[raw.VKCode])
}

func setBool(m map[int]bool, key int, v bool) {
	if v {
		m[key] = true
	} else {
		delete(m, key)
	}
}

func normalizeMouseButton(raw platform.RawMouseEvent) hkconfig.MouseButton {
	switch raw.Button {
	case 0:
		return hkconfig.MouseLeft
	case 1:
		return hkconfig.MouseRight
	case 2:
		return hkconfig.MouseMiddle
	case 3:
		if raw.XButton == 2 {
			return hkconfig.MouseX2
		}
		return hkconfig.MouseX1
	default:
		return hkconfig.MouseLeft
	}
}

func (b *Backend) onMouse(raw platform.RawMouseEvent) bool {
	button := normalizeMouseButton(raw)

	b.stateMu.Lock()
	if raw.Injected {
		setMouseBool(b.mouseInj, button, raw.Down)
	} else {
		setMouseBool(b.mouse, button, raw.Down)
	}
	setMouseBool(b.mouseAll, button, b.mouse[button] || b.mouseInj[button])
	b.stateMu.Unlock()

	state := b.snapshot()
	evt := mbind.MouseEvent{
		Button:   button,
		TimeMs:   raw.TimeMs,
		Injected: raw.Injected,
	}
	if raw.Down {
		evt.Action = mbind.ButtonDown
	} else {
		evt.Action = mbind.ButtonUp
	}

	suppress := false
	for _, h := range b.aliveHooks() {
		if h.HandleMouseEvent(evt, state) == mbind.Suppress {
			suppress = true
		}
	}
	return suppress
}

func setMouseBool(m map[hkconfig.MouseButton]bool, key hkconfig.MouseButton, v bool) {
	if v {
		m[key] = true
	} else {
		delete(m, key)
	}
}
