// Package kbind implements the keyboard bind evaluator: parsing a chord or
// sequence expression, tracking chord/sequence/strict-order/hold/repeat/
// double-tap runtime state, and deciding per event whether to fire the
// bind's callback and whether to suppress the underlying OS event.
package kbind

import (
	"time"

	"keybinds/internal/bindcommon"
	"keybinds/internal/chord"
	"keybinds/internal/hkconfig"
	"keybinds/internal/inputstate"
	"keybinds/internal/logging"
	"keybinds/internal/vk"
)

func chordMatchPolicy(p hkconfig.ChordPolicy) chord.MatchPolicy {
	switch p {
	case hkconfig.ChordRelaxed:
		return chord.MatchRelaxed
	case hkconfig.ChordStrict:
		return chord.MatchStrict
	default:
		return chord.MatchIgnoreExtraModifiers
	}
}

// Bind is a single policy-driven keyboard bind: one parsed expression (a
// chord or a comma-separated sequence of chords), a callback, and a config.
type Bind struct {
	Expr       string
	Callback   func()
	Config     hkconfig.BindConfig
	Steps      []chord.Spec
	IsSequence bool

	base *bindcommon.Base

	seqIndex   int
	seqLastMs  int64
	lastEvtMs  int64

	clickDownMs   int64
	hasClickDown  bool
	armed         bool
	wasFull       bool
	tapCount      int
	tapLastMs     int64

	hadFull       bool
	releaseArmed  bool
	repeatActive  bool

	strict *strictOrderState
}

// New parses expr and constructs a Bind ready to receive events via Handle.
func New(expr string, callback func(), config hkconfig.BindConfig, window bindcommon.FocusChecker, dispatch bindcommon.Dispatcher, log *logging.Logger) (*Bind, error) {
	steps, err := chord.ParseSequence(expr)
	if err != nil {
		return nil, err
	}
	return &Bind{
		Expr:       expr,
		Callback:   callback,
		Config:     config,
		Steps:      steps,
		IsSequence: len(steps) > 1,
		base:       bindcommon.NewBase(window, dispatch, log, "kbind"),
		strict:     newStrictOrderState(),
	}, nil
}

// Reset clears all runtime state, returning the bind to its pre-match
// baseline. Called on step timeout, on blur under CANCEL_ON_BLUR, and after
// the last step of a sequence completes.
func (b *Bind) Reset() {
	b.seqIndex = 0
	b.seqLastMs = 0
	b.hasClickDown = false
	b.tapCount = 0
	b.tapLastMs = 0
	b.base.HoldToken++
	b.armed = false
	b.wasFull = false
	b.hadFull = false
	b.releaseArmed = false
	b.repeatActive = false
	b.strict.reset()
}

func (b *Bind) debounceOK(nowMs int64) bool {
	db := b.Config.Timing.DebounceMs
	return db <= 0 || (nowMs-b.lastEvtMs) >= int64(db)
}

func (b *Bind) stepTimeoutOK(nowMs int64) bool {
	to := b.Config.Timing.ChordTimeoutMs
	if !b.IsSequence || b.seqIndex == 0 {
		return true
	}
	return (nowMs - b.seqLastMs) <= int64(to)
}

func (b *Bind) matchChord(spec chord.Spec, pressed map[int]bool) bool {
	policy := chordMatchPolicy(b.Config.Constraints.ChordPolicy)
	return chord.Match(spec, pressed, policy, b.Config.Constraints.IgnoreKeys)
}

// Handle feeds one keyboard event through the bind's full evaluation
// pipeline and returns the suppression verdict for it.
func (b *Bind) Handle(event KeyEvent, state inputstate.Snapshot) Flags {
	b.base.Mu.Lock()
	defer b.base.Mu.Unlock()

	nowMs := event.TimeMs

	if !b.base.WindowOK(false, b.Config.Timing.WindowFocusCacheMs, b.onBlur, nil) {
		return Continue
	}

	if len(b.Config.Checks.Predicates) > 0 && !bindcommon.ChecksOK(b.base.Log, b.base.Source, b.Config.Checks.Predicates, event, state) {
		return Continue
	}

	if !b.debounceOK(nowMs) {
		return Continue
	}

	if !b.stepTimeoutOK(nowMs) {
		b.Reset()
	}

	b.lastEvtMs = nowMs

	pol := b.Config.Injected
	if pol == hkconfig.InjectedIgnore && event.Injected {
		return Continue
	}
	if pol == hkconfig.InjectedOnly && !event.Injected {
		return Continue
	}

	spec := b.Steps[b.seqIndex]

	var pressed map[int]bool
	switch pol {
	case hkconfig.InjectedIgnore:
		pressed = state.PressedKeys
	case hkconfig.InjectedOnly:
		pressed = state.PressedKeysInjected
	default:
		if event.Injected {
			pressed = map[int]bool{}
			for code := range state.PressedKeysInjected {
				pressed[code] = true
			}
			for code := range state.PressedKeys {
				if vk.IsModifier(code) {
					pressed[code] = true
				}
			}
		} else {
			pressed = state.PressedKeys
		}
	}

	vkEvt := event.VKCode
	isDown := event.isDown()
	isUp := event.isUp()
	freshDown := isDown && (b.Config.Constraints.AllowOSKeyRepeat || !event.IsRepeat)

	opol := b.Config.Constraints.OrderPolicy
	isStrict := opol == hkconfig.OrderStrict || opol == hkconfig.OrderStrictRecoverable
	isRecoverable := opol == hkconfig.OrderStrictRecoverable

	if isStrict {
		b.strict.onEvent(spec, pressed, vkEvt, freshDown, isRecoverable)
	}

	prevFull := b.wasFull
	full := b.matchChord(spec, pressed)
	if isStrict && full {
		if !b.strict.allowsFull(spec, pressed, isRecoverable) {
			full = false
		}
	}
	if isStrict && full && !prevFull {
		b.strict.onFullRisingEdge(spec)
	}

	b.armed = full

	if full {
		b.hadFull = true
	}
	if full && !prevFull {
		b.releaseArmed = true
	}

	anyChordKeyPressed := false
	for code := range spec.AllowedUnion {
		if pressed[code] {
			anyChordKeyPressed = true
			break
		}
	}

	flags := Continue
	sup := b.Config.Suppress
	relevant := spec.AllowedUnion[vkEvt] || vk.IsModifier(vkEvt)

	switch sup {
	case hkconfig.SuppressAlways:
		flags |= Suppress

	case hkconfig.SuppressWhileActive:
		if b.armed && relevant {
			flags |= Suppress
		}

	case hkconfig.SuppressWhileEvaluating:
		inProgress := full || prevFull
		if !inProgress {
			for code := range spec.AllowedUnion {
				if pressed[code] {
					inProgress = true
					break
				}
			}
		}
		if !inProgress {
			for code := range pressed {
				if vk.IsModifier(code) {
					inProgress = true
					break
				}
			}
		}
		if inProgress && relevant {
			flags |= Suppress
		}
	}

	fireIfAllowed := func(tsMs int64) bool {
		if b.base.CooldownOK(tsMs, b.Config.Timing.CooldownMs) && b.base.MaxFiresOK(b.Config.Constraints) {
			b.base.Fire(tsMs, b.Callback)
			return true
		}
		return false
	}

	if b.IsSequence {
		if full && freshDown {
			b.seqLastMs = nowMs
			if b.seqIndex == len(b.Steps)-1 {
				trig := b.Config.Trigger
				if trig == hkconfig.OnSequence || trig == hkconfig.OnPress || trig == hkconfig.OnChordComplete {
					if fireIfAllowed(nowMs) && b.Config.Suppress == hkconfig.SuppressWhenMatched {
						flags |= Suppress
					}
				}
				b.Reset()
			} else {
				b.seqIndex++
				b.strict.reset()
			}
		}

		b.wasFull = full
		if !anyChordKeyPressed {
			b.hadFull = false
			b.releaseArmed = false
			b.strict.reset()
		}
		return flags
	}

	switch b.Config.Trigger {
	case hkconfig.OnPress:
		if full && freshDown && spec.AllowedUnion[vkEvt] {
			if fireIfAllowed(nowMs) && b.Config.Suppress == hkconfig.SuppressWhenMatched {
				flags |= Suppress
			}
		}

	case hkconfig.OnChordComplete:
		if full && freshDown && !prevFull && spec.AllowedUnion[vkEvt] {
			if fireIfAllowed(nowMs) && b.Config.Suppress == hkconfig.SuppressWhenMatched {
				flags |= Suppress
			}
		}

	case hkconfig.OnRelease:
		if b.hadFull && b.releaseArmed && isUp && spec.AllowedUnion[vkEvt] {
			if fireIfAllowed(nowMs) && b.Config.Suppress == hkconfig.SuppressWhenMatched {
				flags |= Suppress
			}
			b.releaseArmed = false
		}

	case hkconfig.OnChordReleased:
		if b.hadFull && isUp && spec.AllowedUnion[vkEvt] && !anyChordKeyPressed {
			if fireIfAllowed(nowMs) && b.Config.Suppress == hkconfig.SuppressWhenMatched {
				flags |= Suppress
			}
			b.hadFull = false
			b.releaseArmed = false
			b.strict.reset()
		}

	case hkconfig.OnClick:
		if full && freshDown {
			b.clickDownMs = nowMs
			b.hasClickDown = true
		} else if isUp && b.hasClickDown {
			dur := nowMs - b.clickDownMs
			b.hasClickDown = false
			if dur <= int64(b.Config.Timing.HoldMs) {
				if fireIfAllowed(nowMs) && b.Config.Suppress == hkconfig.SuppressWhenMatched {
					flags |= Suppress
				}
			}
		}

	case hkconfig.OnHold:
		if full && freshDown {
			b.startHoldTimer(spec, pressed)
		}

	case hkconfig.OnRepeat:
		if full && isDown && !b.repeatActive {
			b.repeatActive = true
			b.startRepeatTimer(spec, pressed)
		}

	case hkconfig.OnDoubleTap:
		if full && freshDown {
			win := b.Config.Timing.DoubleTapWindowMs
			if (nowMs - b.tapLastMs) <= int64(win) {
				b.tapCount++
			} else {
				b.tapCount = 1
			}
			b.tapLastMs = nowMs
			if b.tapCount >= 2 {
				b.tapCount = 0
				if fireIfAllowed(nowMs) && b.Config.Suppress == hkconfig.SuppressWhenMatched {
					flags |= Suppress
				}
			}
		}
	}

	if !anyChordKeyPressed {
		b.hadFull = false
		b.releaseArmed = false
		b.strict.reset()
	}

	b.wasFull = full
	return flags
}

func (b *Bind) onBlur() {
	switch b.Config.Focus {
	case hkconfig.CancelOnBlur:
		b.Reset()
	case hkconfig.PauseOnBlur:
		b.base.HoldToken++
	}
}

func (b *Bind) startHoldTimer(spec chord.Spec, pressed map[int]bool) {
	holdMs := b.Config.Timing.HoldMs
	b.base.HoldToken++
	token := b.base.HoldToken

	go func() {
		time.Sleep(time.Duration(holdMs) * time.Millisecond)
		b.base.Mu.Lock()
		defer b.base.Mu.Unlock()
		if token != b.base.HoldToken {
			return
		}
		if !b.base.WindowOK(true, b.Config.Timing.WindowFocusCacheMs, b.onBlur, nil) {
			return
		}
		if b.wasFull && b.matchChord(spec, pressed) {
			now2 := time.Now().UnixMilli()
			if b.base.CooldownOK(now2, b.Config.Timing.CooldownMs) && b.base.MaxFiresOK(b.Config.Constraints) {
				b.base.Fire(now2, b.Callback)
			}
		}
	}()
}

func (b *Bind) startRepeatTimer(spec chord.Spec, pressed map[int]bool) {
	delayMs := b.Config.Timing.HoldMs
	if b.Config.Timing.RepeatDelayMs > delayMs {
		delayMs = b.Config.Timing.RepeatDelayMs
	}
	intervalMs := b.Config.Timing.RepeatIntervalMs
	if intervalMs < 1 {
		intervalMs = 1
	}
	token := b.base.HoldToken

	go func() {
		time.Sleep(time.Duration(delayMs) * time.Millisecond)
		for {
			b.base.Mu.Lock()
			if token != b.base.HoldToken || !b.wasFull || !b.matchChord(spec, pressed) || !b.base.WindowOK(true, b.Config.Timing.WindowFocusCacheMs, b.onBlur, nil) {
				b.repeatActive = false
				b.base.Mu.Unlock()
				return
			}
			now2 := time.Now().UnixMilli()
			if b.base.CooldownOK(now2, b.Config.Timing.CooldownMs) && b.base.MaxFiresOK(b.Config.Constraints) {
				b.base.Fire(now2, b.Callback)
			}
			b.base.Mu.Unlock()
			time.Sleep(time.Duration(intervalMs) * time.Millisecond)
		}
	}()
}
