package chord

import "keybinds/internal/vk"

// MatchPolicy mirrors hkconfig.ChordPolicy without importing hkconfig, to
// keep this package dependency-free; kbind/mbind translate the enum at the
// call site.
type MatchPolicy int

const (
	MatchIgnoreExtraModifiers MatchPolicy = iota
	MatchRelaxed
	MatchStrict
)

// Match reports whether pressed satisfies spec under the given policy.
// Every declared group must have at least one of its VK codes held; beyond
// that, RELAXED allows any other keys to also be held, IGNORE_EXTRA_MODIFIERS
// additionally allows non-chord modifier keys to be held, and STRICT allows
// only chord keys (or an explicit ignoreKeys allowlist) to be held.
func Match(spec Spec, pressed map[int]bool, policy MatchPolicy, ignoreKeys map[int]bool) bool {
	for _, group := range spec.Groups {
		if !anyPressed(group, pressed) {
			return false
		}
	}

	switch policy {
	case MatchRelaxed:
		return true

	case MatchIgnoreExtraModifiers:
		for code := range pressed {
			if spec.AllowedUnion[code] {
				continue
			}
			if vk.IsModifier(code) {
				continue
			}
			return false
		}
		return true

	default: // MatchStrict
		for code := range pressed {
			if ignoreKeys[code] {
				continue
			}
			if !spec.AllowedUnion[code] {
				return false
			}
		}
		return true
	}
}

func anyPressed(group []int, pressed map[int]bool) bool {
	for _, code := range group {
		if pressed[code] {
			return true
		}
	}
	return false
}

// GroupIndexForVK returns the index of the group vkCode belongs to, or -1.
func GroupIndexForVK(spec Spec, vkCode int) int {
	for i, g := range spec.Groups {
		for _, code := range g {
			if code == vkCode {
				return i
			}
		}
	}
	return -1
}

// PressedGroupIndices returns, in ascending order, the indices of every
// group that has at least one of its VK codes currently held.
func PressedGroupIndices(spec Spec, pressed map[int]bool) []int {
	out := make([]int, 0, len(spec.Groups))
	for i, g := range spec.Groups {
		if anyPressed(g, pressed) {
			out = append(out, i)
		}
	}
	return out
}

// IsPrefixIndices reports whether idxs is exactly [0, 1, ..., len(idxs)-1].
func IsPrefixIndices(idxs []int) bool {
	for i, v := range idxs {
		if v != i {
			return false
		}
	}
	return true
}
