// Package mbind implements the mouse bind evaluator, mirroring kbind's
// pipeline shape for a single button instead of a chord: press/release/
// click/hold/repeat/double-tap triggers and the same suppress policies.
// X1/X2 side buttons arrive already told apart in MouseEvent.Button.
package mbind

import "keybinds/internal/hkconfig"

// Action identifies which button transition a MouseEvent carries.
type Action int

const (
	ButtonDown Action = iota
	ButtonUp
)

// MouseEvent is one low-level mouse button event as seen by the evaluator.
// The platform layer resolves X1/X2 disambiguation (Win32's shared
// WM_XBUTTONDOWN/UP plus an additional-data word) before constructing this,
// so Button already identifies the physical button unambiguously.
type MouseEvent struct {
	Button   hkconfig.MouseButton
	Action   Action
	TimeMs   int64
	Injected bool
}

// Flags is the suppression verdict a Handle call returns.
type Flags int

const (
	Continue Flags = 0
	Suppress Flags = 1
)
