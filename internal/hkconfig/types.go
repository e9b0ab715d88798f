// Package hkconfig defines the bind configuration value types: trigger and
// policy enums, timing/constraint/check knobs, and the keyboard/mouse bind
// config structs, along with soft- and hard-merge helpers for layering
// partial overrides on top of the package defaults.
package hkconfig

// Trigger selects which edge or gesture of a bind's keys/button fires its
// callback.
type Trigger int

const (
	OnPress Trigger = iota
	OnRelease
	OnClick
	OnHold
	OnRepeat
	OnDoubleTap
	OnChordComplete
	OnChordReleased
	OnSequence
)

func (t Trigger) String() string {
	switch t {
	case OnPress:
		return "ON_PRESS"
	case OnRelease:
		return "ON_RELEASE"
	case OnClick:
		return "ON_CLICK"
	case OnHold:
		return "ON_HOLD"
	case OnRepeat:
		return "ON_REPEAT"
	case OnDoubleTap:
		return "ON_DOUBLE_TAP"
	case OnChordComplete:
		return "ON_CHORD_COMPLETE"
	case OnChordReleased:
		return "ON_CHORD_RELEASED"
	case OnSequence:
		return "ON_SEQUENCE"
	default:
		return "UNKNOWN_TRIGGER"
	}
}

// SuppressPolicy controls whether the bind eats the underlying OS event so
// it never reaches other applications.
type SuppressPolicy int

const (
	SuppressNever SuppressPolicy = iota
	SuppressAlways
	SuppressWhenMatched
	SuppressWhileActive
	SuppressWhileEvaluating
)

// ChordPolicy controls how strictly the pressed-key set must match a
// bind's declared chord.
type ChordPolicy int

const (
	// ChordIgnoreExtraModifiers allows modifiers outside the chord to be
	// held without invalidating the match; this is the package default.
	ChordIgnoreExtraModifiers ChordPolicy = iota
	ChordRelaxed
	ChordStrict
)

// OrderPolicy controls whether a multi-group chord's keys must arrive in
// the declared left-to-right order.
type OrderPolicy int

const (
	OrderAny OrderPolicy = iota
	OrderStrict
	OrderStrictRecoverable
)

// InjectedPolicy controls how a bind reacts to synthetic (SendInput-style)
// events versus physical hardware events.
type InjectedPolicy int

const (
	InjectedAllow InjectedPolicy = iota
	InjectedIgnore
	InjectedOnly
)

// FocusPolicy controls what happens to an armed bind when its target
// window loses foreground focus.
type FocusPolicy int

const (
	CancelOnBlur FocusPolicy = iota
	PauseOnBlur
)

// MouseButton identifies a physical mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseX1
	MouseX2
)

// Timing holds every duration knob a bind's state machine consults, all in
// milliseconds. Zero-value Timing is meaningless on its own; use
// DefaultTiming to get the package defaults.
type Timing struct {
	ChordTimeoutMs     int
	DebounceMs         int
	HoldMs             int
	RepeatDelayMs      int
	RepeatIntervalMs   int
	DoubleTapWindowMs  int
	WindowFocusCacheMs int
	CooldownMs         int
}

// DefaultTiming mirrors the reference implementation's Timing dataclass
// defaults.
func DefaultTiming() Timing {
	return Timing{
		ChordTimeoutMs:     350,
		DebounceMs:         0,
		HoldMs:             350,
		RepeatDelayMs:      350,
		RepeatIntervalMs:   60,
		DoubleTapWindowMs:  300,
		WindowFocusCacheMs: 50,
		CooldownMs:         0,
	}
}

// Constraints narrows when a bind is eligible to match or fire at all.
type Constraints struct {
	ChordPolicy ChordPolicy
	OrderPolicy OrderPolicy
	// AllowOSKeyRepeat lets OS auto-repeat keydowns count as fresh presses.
	// Each repeat is then evaluated as its own candidate; nothing but
	// CooldownMs rate-limits them, so with CooldownMs 0 an ON_PRESS bind
	// fires once per auto-repeat event.
	AllowOSKeyRepeat bool
	// MaxFires caps the lifetime fire count; it applies only when
	// HasMaxFires is true (HasMaxFires=false means unlimited).
	MaxFires    int
	HasMaxFires bool
	IgnoreKeys  map[int]bool
}

// DefaultConstraints mirrors the reference implementation's Constraints
// dataclass defaults.
func DefaultConstraints() Constraints {
	return Constraints{
		ChordPolicy:      ChordIgnoreExtraModifiers,
		OrderPolicy:      OrderAny,
		AllowOSKeyRepeat: false,
		HasMaxFires:      false,
		IgnoreKeys:       map[int]bool{},
	}
}

// Predicate is a user-supplied gate evaluated against the raw event and the
// current three-domain input state snapshot; returning false (or panicking)
// blocks the bind from matching this event.
type Predicate func(event any, state any) bool

// Checks holds the user predicate chain run before any trigger logic.
type Checks struct {
	Predicates []Predicate
}

// BindConfig is the full configuration of a keyboard bind.
type BindConfig struct {
	Trigger     Trigger
	Suppress    SuppressPolicy
	Injected    InjectedPolicy
	Focus       FocusPolicy
	Timing      Timing
	Constraints Constraints
	Checks      Checks
}

// DefaultBindConfig mirrors the reference implementation's BindConfig
// dataclass defaults.
func DefaultBindConfig() BindConfig {
	return BindConfig{
		Trigger:     OnPress,
		Suppress:    SuppressNever,
		Injected:    InjectedAllow,
		Focus:       CancelOnBlur,
		Timing:      DefaultTiming(),
		Constraints: DefaultConstraints(),
		Checks:      Checks{},
	}
}

// MouseBindConfig is the full configuration of a mouse bind; it shares the
// same field set as BindConfig apart from its Trigger default.
type MouseBindConfig struct {
	Trigger     Trigger
	Suppress    SuppressPolicy
	Injected    InjectedPolicy
	Focus       FocusPolicy
	Timing      Timing
	Constraints Constraints
	Checks      Checks
}

// DefaultMouseBindConfig mirrors the reference implementation's
// MouseBindConfig dataclass defaults (trigger defaults to ON_CLICK, not
// ON_PRESS).
func DefaultMouseBindConfig() MouseBindConfig {
	return MouseBindConfig{
		Trigger:     OnClick,
		Suppress:    SuppressNever,
		Injected:    InjectedAllow,
		Focus:       CancelOnBlur,
		Timing:      DefaultTiming(),
		Constraints: DefaultConstraints(),
		Checks:      Checks{},
	}
}
