// Package inputstate defines the three-domain snapshot of currently-pressed
// keys and mouse buttons that the global dispatcher maintains and hands to
// every bind on every event: physical-only, injected-only, and the union of
// both ("all").
package inputstate

import "keybinds/internal/hkconfig"

// Snapshot is an immutable view of what is currently held down, split by
// origin. "All" sets are the union physical ∪ injected and are what most
// binds should match against; the physical/injected-only sets exist so a
// bind with an InjectedPolicy can see only the domain it cares about.
type Snapshot struct {
	PressedKeys         map[int]bool
	PressedKeysAll      map[int]bool
	PressedKeysInjected map[int]bool

	PressedMouse         map[hkconfig.MouseButton]bool
	PressedMouseAll      map[hkconfig.MouseButton]bool
	PressedMouseInjected map[hkconfig.MouseButton]bool
}

// Empty returns a Snapshot with all sets initialized but empty, suitable as
// a starting value before any event has been observed.
func Empty() Snapshot {
	return Snapshot{
		PressedKeys:          map[int]bool{},
		PressedKeysAll:       map[int]bool{},
		PressedKeysInjected:  map[int]bool{},
		PressedMouse:         map[hkconfig.MouseButton]bool{},
		PressedMouseAll:      map[hkconfig.MouseButton]bool{},
		PressedMouseInjected: map[hkconfig.MouseButton]bool{},
	}
}

// KeysForPolicy selects which pressed-key set a bind should evaluate
// against given its InjectedPolicy.
func (s Snapshot) KeysForPolicy(pol hkconfig.InjectedPolicy) map[int]bool {
	switch pol {
	case hkconfig.InjectedIgnore:
		return s.PressedKeys
	case hkconfig.InjectedOnly:
		return s.PressedKeysInjected
	default:
		return s.PressedKeysAll
	}
}

// MouseForPolicy selects which pressed-button set a bind should evaluate
// against given its InjectedPolicy.
func (s Snapshot) MouseForPolicy(pol hkconfig.InjectedPolicy) map[hkconfig.MouseButton]bool {
	switch pol {
	case hkconfig.InjectedIgnore:
		return s.PressedMouse
	case hkconfig.InjectedOnly:
		return s.PressedMouseInjected
	default:
		return s.PressedMouseAll
	}
}
