package hkconfig

// TimingPatch carries only the Timing fields an override wants to change;
// a nil pointer field means "leave the base value as-is" under SoftMerge.
type TimingPatch struct {
	ChordTimeoutMs     *int
	DebounceMs         *int
	HoldMs             *int
	RepeatDelayMs      *int
	RepeatIntervalMs   *int
	DoubleTapWindowMs  *int
	WindowFocusCacheMs *int
	CooldownMs         *int
}

// ConstraintsPatch carries only the Constraints fields an override wants to
// change.
type ConstraintsPatch struct {
	ChordPolicy      *ChordPolicy
	OrderPolicy      *OrderPolicy
	AllowOSKeyRepeat *bool
	MaxFires         *int // presence alone sets HasMaxFires=true
	IgnoreKeys       map[int]bool
}

// BindConfigPatch carries only the BindConfig fields an override wants to
// change. Applying a zero-value Patch via SoftMerge is a no-op by design:
// that is what distinguishes "unset" from "explicitly set to the zero
// value" in a language without Python's sentinel-default dataclasses.
type BindConfigPatch struct {
	Trigger     *Trigger
	Suppress    *SuppressPolicy
	Injected    *InjectedPolicy
	Focus       *FocusPolicy
	Timing      TimingPatch
	Constraints ConstraintsPatch
	Checks      *Checks
}

func mergeTiming(base Timing, p TimingPatch) Timing {
	if p.ChordTimeoutMs != nil {
		base.ChordTimeoutMs = *p.ChordTimeoutMs
	}
	if p.DebounceMs != nil {
		base.DebounceMs = *p.DebounceMs
	}
	if p.HoldMs != nil {
		base.HoldMs = *p.HoldMs
	}
	if p.RepeatDelayMs != nil {
		base.RepeatDelayMs = *p.RepeatDelayMs
	}
	if p.RepeatIntervalMs != nil {
		base.RepeatIntervalMs = *p.RepeatIntervalMs
	}
	if p.DoubleTapWindowMs != nil {
		base.DoubleTapWindowMs = *p.DoubleTapWindowMs
	}
	if p.WindowFocusCacheMs != nil {
		base.WindowFocusCacheMs = *p.WindowFocusCacheMs
	}
	if p.CooldownMs != nil {
		base.CooldownMs = *p.CooldownMs
	}
	return base
}

func mergeConstraints(base Constraints, p ConstraintsPatch) Constraints {
	if p.ChordPolicy != nil {
		base.ChordPolicy = *p.ChordPolicy
	}
	if p.OrderPolicy != nil {
		base.OrderPolicy = *p.OrderPolicy
	}
	if p.AllowOSKeyRepeat != nil {
		base.AllowOSKeyRepeat = *p.AllowOSKeyRepeat
	}
	if p.MaxFires != nil {
		base.MaxFires = *p.MaxFires
		base.HasMaxFires = true
	}
	if p.IgnoreKeys != nil {
		merged := make(map[int]bool, len(base.IgnoreKeys)+len(p.IgnoreKeys))
		for k, v := range base.IgnoreKeys {
			merged[k] = v
		}
		for k, v := range p.IgnoreKeys {
			merged[k] = v
		}
		base.IgnoreKeys = merged
	}
	return base
}

// SoftMerge layers patch on top of base: only fields the patch sets are
// overridden, everything else in base survives untouched. This is the
// "+"-operator semantics of the reference implementation's BindConfig
// addition, expressed as an explicit function instead of operator overload.
func SoftMerge(base BindConfig, patch BindConfigPatch) BindConfig {
	if patch.Trigger != nil {
		base.Trigger = *patch.Trigger
	}
	if patch.Suppress != nil {
		base.Suppress = *patch.Suppress
	}
	if patch.Injected != nil {
		base.Injected = *patch.Injected
	}
	if patch.Focus != nil {
		base.Focus = *patch.Focus
	}
	base.Timing = mergeTiming(base.Timing, patch.Timing)
	base.Constraints = mergeConstraints(base.Constraints, patch.Constraints)
	if patch.Checks != nil {
		base.Checks = *patch.Checks
	}
	return base
}

// HardMerge replaces base with override wholesale field-by-field for every
// field override actually sets (i.e. override is a complete BindConfig, not
// a patch) — unlike SoftMerge, Timing/Constraints/Checks are swapped as
// whole structs rather than merged member-by-member.
func HardMerge(base, override BindConfig) BindConfig {
	_ = base
	return override
}

// SoftMergeMouse is the MouseBindConfig counterpart of SoftMerge.
func SoftMergeMouse(base MouseBindConfig, patch BindConfigPatch) MouseBindConfig {
	if patch.Trigger != nil {
		base.Trigger = *patch.Trigger
	}
	if patch.Suppress != nil {
		base.Suppress = *patch.Suppress
	}
	if patch.Injected != nil {
		base.Injected = *patch.Injected
	}
	if patch.Focus != nil {
		base.Focus = *patch.Focus
	}
	base.Timing = mergeTiming(base.Timing, patch.Timing)
	base.Constraints = mergeConstraints(base.Constraints, patch.Constraints)
	if patch.Checks != nil {
		base.Checks = *patch.Checks
	}
	return base
}

// HardMergeMouse is the MouseBindConfig counterpart of HardMerge.
func HardMergeMouse(base, override MouseBindConfig) MouseBindConfig {
	_ = base
	return override
}
