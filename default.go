package keybinds

import (
	"sync"

	"keybinds/internal/kbind"
	"keybinds/internal/mbind"
)

var (
	defaultHook     *Hook
	defaultHookErr  error
	defaultHookOnce sync.Once
)

// DefaultHook returns the process-wide default Hook, constructing it (with
// logging disabled and the package default worker count) on first call.
// Package-level BindKey/BindMouseButton/Hotkey/Join all operate on this
// Hook unless an explicit Hook is supplied. The construction error (e.g.
// platform.ErrPlatformUnsupported) is cached and returned on every call,
// since platform support cannot change mid-process.
func DefaultHook() (*Hook, error) {
	defaultHookOnce.Do(func() {
		defaultHook, defaultHookErr = NewHook(0, nil)
	})
	return defaultHook, defaultHookErr
}

// BindKey binds expr against the default Hook. See Hook.Bind.
func BindKey(expr string, callback func(), cfg BindConfig) (*kbind.Bind, error) {
	hook, err := DefaultHook()
	if err != nil {
		return nil, err
	}
	return hook.Bind(expr, callback, cfg)
}

// BindMouseButton binds button against the default Hook. See Hook.BindMouse.
func BindMouseButton(button MouseButton, callback func(), cfg MouseBindConfig) (*mbind.MouseBind, error) {
	hook, err := DefaultHook()
	if err != nil {
		return nil, err
	}
	return hook.BindMouse(button, callback, cfg), nil
}
