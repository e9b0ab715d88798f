package chord

import (
	"errors"
	"testing"

	"keybinds/internal/vk"
)

func TestParseChordSimple(t *testing.T) {
	spec, err := ParseChord("ctrl+k")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	if len(spec.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(spec.Groups))
	}
	if !spec.AllowedUnion[vk.VK_CONTROL] {
		t.Fatalf("expected VK_CONTROL in allowed union")
	}
}

func TestParseChordUnknownToken(t *testing.T) {
	_, err := ParseChord("ctrl+nonsense")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestParseChordEmptyExpression(t *testing.T) {
	_, err := ParseChord("")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestParseSequence(t *testing.T) {
	steps, err := ParseSequence("ctrl+k, ctrl+s")
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("len(steps) = %d, want 2", len(steps))
	}
}

func TestParseSequenceEmptyStep(t *testing.T) {
	_, err := ParseSequence("ctrl+k, ")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestMatchIgnoreExtraModifiers(t *testing.T) {
	spec, _ := ParseChord("ctrl+k")
	pressed := map[int]bool{vk.VK_CONTROL: true, vk.AlphaNumericMust('k'): true, vk.VK_SHIFT: true}
	if !Match(spec, pressed, MatchIgnoreExtraModifiers, nil) {
		t.Fatalf("expected match: extra modifier should be tolerated")
	}
}

func TestMatchIgnoreExtraModifiersRejectsNonModifierExtra(t *testing.T) {
	spec, _ := ParseChord("ctrl+k")
	pressed := map[int]bool{vk.VK_CONTROL: true, vk.AlphaNumericMust('k'): true, vk.AlphaNumericMust('j'): true}
	if Match(spec, pressed, MatchIgnoreExtraModifiers, nil) {
		t.Fatalf("expected no match: extra non-modifier key held")
	}
}

func TestMatchStrictAllowsOnlyChordKeys(t *testing.T) {
	spec, _ := ParseChord("ctrl+k")
	pressed := map[int]bool{vk.VK_CONTROL: true, vk.AlphaNumericMust('k'): true}
	if !Match(spec, pressed, MatchStrict, nil) {
		t.Fatalf("expected exact chord match under STRICT")
	}
	pressed[vk.VK_SHIFT] = true
	if Match(spec, pressed, MatchStrict, nil) {
		t.Fatalf("expected STRICT to reject any extra key, even a modifier")
	}
}

func TestPressedGroupIndicesAndPrefix(t *testing.T) {
	spec, _ := ParseChord("ctrl+shift+k")
	pressed := map[int]bool{vk.VK_CONTROL: true, vk.AlphaNumericMust('k'): true}
	idxs := PressedGroupIndices(spec, pressed)
	if len(idxs) != 2 || idxs[0] != 0 || idxs[1] != 2 {
		t.Fatalf("idxs = %v, want [0 2]", idxs)
	}
	if IsPrefixIndices(idxs) {
		t.Fatalf("expected [0 2] to not be a prefix")
	}
}
