package hkconfig

import "testing"

func TestSoftMergeLeavesUnsetFieldsAlone(t *testing.T) {
	base := DefaultBindConfig()
	hold := OnHold
	patch := BindConfigPatch{Trigger: &hold}

	merged := SoftMerge(base, patch)

	if merged.Trigger != OnHold {
		t.Fatalf("Trigger = %v, want OnHold", merged.Trigger)
	}
	if merged.Suppress != base.Suppress {
		t.Fatalf("Suppress changed unexpectedly: %v", merged.Suppress)
	}
	if merged.Timing != base.Timing {
		t.Fatalf("Timing changed unexpectedly: %+v", merged.Timing)
	}
}

func TestSoftMergeTimingPatch(t *testing.T) {
	base := DefaultBindConfig()
	holdMs := 500
	patch := BindConfigPatch{Timing: TimingPatch{HoldMs: &holdMs}}

	merged := SoftMerge(base, patch)

	if merged.Timing.HoldMs != 500 {
		t.Fatalf("HoldMs = %d, want 500", merged.Timing.HoldMs)
	}
	if merged.Timing.ChordTimeoutMs != base.Timing.ChordTimeoutMs {
		t.Fatalf("ChordTimeoutMs changed unexpectedly: %d", merged.Timing.ChordTimeoutMs)
	}
}

func TestSoftMergeMaxFiresSetsHasMaxFires(t *testing.T) {
	base := DefaultBindConfig()
	if base.Constraints.HasMaxFires {
		t.Fatalf("default Constraints should not have max fires set")
	}
	max := 3
	patch := BindConfigPatch{Constraints: ConstraintsPatch{MaxFires: &max}}

	merged := SoftMerge(base, patch)

	if !merged.Constraints.HasMaxFires || merged.Constraints.MaxFires != 3 {
		t.Fatalf("Constraints = %+v, want HasMaxFires=true MaxFires=3", merged.Constraints)
	}
}

func TestHardMergeReplacesWholesale(t *testing.T) {
	base := DefaultBindConfig()
	override := DefaultBindConfig()
	override.Trigger = OnSequence
	override.Timing.HoldMs = 10

	merged := HardMerge(base, override)

	if merged.Trigger != OnSequence || merged.Timing.HoldMs != 10 {
		t.Fatalf("HardMerge did not take override wholesale: %+v", merged)
	}
}

func TestDefaultMouseBindConfigTriggerIsClick(t *testing.T) {
	cfg := DefaultMouseBindConfig()
	if cfg.Trigger != OnClick {
		t.Fatalf("default mouse trigger = %v, want OnClick", cfg.Trigger)
	}
}
