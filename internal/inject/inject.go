// Package inject synthesizes keyboard and mouse events via robotgo for
// integration tests and example programs, exercising the same physical
// input path a real user would drive — and, on Windows, arriving at the
// hook with the OS's own injected-event flag set, which is exactly the
// domain split internal/dispatch's three-domain snapshot tracks. It is
// test/demo tooling only: the core engine packages never import it.
package inject

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"keybinds/internal/logging"
)

// Injector synthesizes input events for tests and example programs.
type Injector struct {
	log *logging.Logger
}

// New constructs an Injector. log may be nil.
func New(log *logging.Logger) *Injector {
	return &Injector{log: log}
}

// Tap presses and releases a single key, e.g. "a" or "f5".
func (inj *Injector) Tap(key string) error {
	inj.log.Debugw("inject", "tap", "key", key)
	robotgo.KeyTap(key)
	return nil
}

// Combo presses mainKey while holding modifiers, then releases everything,
// e.g. Combo("k", "ctrl", "shift") for ctrl+shift+k.
func (inj *Injector) Combo(mainKey string, modifiers ...string) error {
	inj.log.Debugw("inject", "combo", "key", mainKey, "modifiers", modifiers)
	args := make([]interface{}, len(modifiers))
	for i, m := range modifiers {
		args[i] = m
	}
	robotgo.KeyTap(mainKey, args...)
	return nil
}

// Down presses key without releasing it.
func (inj *Injector) Down(key string) error {
	inj.log.Debugw("inject", "key down", "key", key)
	robotgo.KeyDown(key)
	return nil
}

// Up releases a previously-pressed key.
func (inj *Injector) Up(key string) error {
	inj.log.Debugw("inject", "key up", "key", key)
	robotgo.KeyUp(key)
	return nil
}

// Hold presses key, calls step once (if non-nil) while the key is held,
// then releases it — useful for driving ON_HOLD/ON_REPEAT
// integration tests without hand-managing Down/Up pairs.
func (inj *Injector) Hold(key string, step func()) error {
	if err := inj.Down(key); err != nil {
		return err
	}
	if step != nil {
		step()
	}
	return inj.Up(key)
}

// mouseButtonName maps the engine's button identifiers onto robotgo's
// string button names ("left", "right", "center"); robotgo has no X1/X2
// button, so callers needing those must drive the hook directly.
func mouseButtonName(button string) (string, error) {
	switch button {
	case "left", "right", "center":
		return button, nil
	default:
		return "", fmt.Errorf("inject: unsupported mouse button %q", button)
	}
}

// Click presses and releases a mouse button ("left", "right", "center").
func (inj *Injector) Click(button string) error {
	name, err := mouseButtonName(button)
	if err != nil {
		return err
	}
	inj.log.Debugw("inject", "click", "button", name)
	robotgo.Click(name)
	return nil
}

// MouseDown presses a mouse button without releasing it.
func (inj *Injector) MouseDown(button string) error {
	name, err := mouseButtonName(button)
	if err != nil {
		return err
	}
	inj.log.Debugw("inject", "mouse down", "button", name)
	robotgo.Toggle(name, "down")
	return nil
}

// MouseUp releases a previously-pressed mouse button.
func (inj *Injector) MouseUp(button string) error {
	name, err := mouseButtonName(button)
	if err != nil {
		return err
	}
	inj.log.Debugw("inject", "mouse up", "button", name)
	robotgo.Toggle(name, "up")
	return nil
}

// Type types literal text through the OS, mirroring the teacher's
// platformType helper (robotgo.Type on non-Windows, SendInput on Windows)
// collapsed to the single cross-platform robotgo call since inject is not
// on the hot hook path and has no reason to special-case Windows.
func (inj *Injector) Type(text string) {
	if text == "" {
		return
	}
	inj.log.Debugw("inject", "type", "len", len(text))
	robotgo.Type(text)
}
