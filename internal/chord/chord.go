// Package chord parses hotkey expressions like "ctrl+shift+k" or multi-step
// sequences like "ctrl+k, ctrl+s" into the VK-code groups the bind
// evaluators match against pressed-key snapshots.
package chord

import (
	"fmt"
	"strings"

	"keybinds/internal/vk"
)

// Spec is one parsed chord: a list of VK-code alternative groups (one group
// per "+"-separated token; a modifier token expands to all its
// interchangeable VK codes) plus the union of every VK code that appears
// anywhere in the chord, used by the IGNORE_EXTRA_MODIFIERS match policy.
type Spec struct {
	Groups       [][]int
	AllowedUnion map[int]bool
}

// tokenToVKGroup resolves one "+"-joined token to the set of VK codes that
// satisfy it: modifier aliases expand to all physical variants, named
// special keys and single alphanumerics resolve to exactly one code.
func tokenToVKGroup(token string) ([]int, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return nil, fmt.Errorf("%w: empty key token", ErrParse)
	}
	if group, ok := vk.ModifierGroup(t); ok {
		return group, nil
	}
	if code, ok := vk.SpecialKey(t); ok {
		return []int{code}, nil
	}
	if code, ok := vk.AlphaNumeric(t); ok {
		return []int{code}, nil
	}
	return nil, fmt.Errorf("%w: unknown key token %q", ErrParse, token)
}

// ParseChord parses a single "+"-joined chord expression, e.g. "ctrl+shift+k".
func ParseChord(expr string) (Spec, error) {
	parts := strings.Split(expr, "+")
	groups := make([][]int, 0, len(parts))
	union := map[int]bool{}
	for _, part := range parts {
		group, err := tokenToVKGroup(part)
		if err != nil {
			return Spec{}, err
		}
		groups = append(groups, group)
		for _, code := range group {
			union[code] = true
		}
	}
	if len(groups) == 0 {
		return Spec{}, fmt.Errorf("%w: empty chord expression", ErrParse)
	}
	return Spec{Groups: groups, AllowedUnion: union}, nil
}

// ParseSequence parses a ","-separated list of chord steps, e.g.
// "ctrl+k, ctrl+s", returning one Spec per step in order.
func ParseSequence(expr string) ([]Spec, error) {
	steps := strings.Split(expr, ",")
	specs := make([]Spec, 0, len(steps))
	for _, step := range steps {
		s := strings.TrimSpace(step)
		if s == "" {
			return nil, fmt.Errorf("%w: empty step in sequence expression %q", ErrParse, expr)
		}
		spec, err := ParseChord(s)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: empty sequence expression", ErrParse)
	}
	return specs, nil
}
