package kbind

import "keybinds/internal/chord"

// strictOrderState tracks ordered-chord progress for one chord/sequence
// step. In STRICT mode any order violation invalidates the whole cycle
// until every chord key is released; in STRICT_RECOVERABLE mode a
// malformed tail rebuild can be retried so long as the locked prefix stays
// held.
//
// Chord order is defined by the chord's group indices 0, 1, 2, .... Before
// the first full match, first-seen groups must appear in that order. After
// the first full match, all groups but the last become a locked prefix that
// must stay held as a prefix; re-pressing one of its keys, or releasing one
// while a later group is still held, is fatal. Releasing groups from the
// right shrinks the locked prefix, and groups beyond it must be re-pressed
// left to right.
type strictOrderState struct {
	invalid         bool
	attemptInvalid  bool
	seenGroups      []int
	seenSet         map[int]bool
	lockedPrefixLen int
	hasLockedPrefix bool
}

func newStrictOrderState() *strictOrderState {
	return &strictOrderState{seenSet: map[int]bool{}}
}

func (s *strictOrderState) reset() {
	s.invalid = false
	s.attemptInvalid = false
	s.seenGroups = s.seenGroups[:0]
	for k := range s.seenSet {
		delete(s.seenSet, k)
	}
	s.hasLockedPrefix = false
	s.lockedPrefixLen = 0
}

// onEvent updates the order-tracking state for one keyboard event. pressed
// must be the POST-event pressed-key set.
func (s *strictOrderState) onEvent(spec chord.Spec, pressed map[int]bool, vkEvt int, freshDown, recoverable bool) {
	if s.invalid {
		return
	}

	pressedIdxs := chord.PressedGroupIndices(spec, pressed)
	isPrefix := chord.IsPrefixIndices(pressedIdxs)

	if s.hasLockedPrefix {
		if isPrefix && len(pressedIdxs) < s.lockedPrefixLen {
			s.lockedPrefixLen = len(pressedIdxs)
		}
	}

	if recoverable && s.hasLockedPrefix {
		if isPrefix && len(pressedIdxs) <= s.lockedPrefixLen {
			s.attemptInvalid = false
		}
	}

	if !isPrefix {
		if !s.hasLockedPrefix {
			s.invalid = true
			return
		}

		prefixOK := isPrefixOfLocked(pressedIdxs, s.lockedPrefixLen)
		if !prefixOK {
			s.invalid = true
			return
		}

		if recoverable {
			s.attemptInvalid = true
			return
		}
		s.invalid = true
		return
	}

	if !spec.AllowedUnion[vkEvt] {
		return
	}
	gi := chord.GroupIndexForVK(spec, vkEvt)
	if gi < 0 {
		return
	}

	if freshDown {
		if !s.hasLockedPrefix {
			if !s.seenSet[gi] {
				expected := len(s.seenGroups)
				if gi != expected {
					s.invalid = true
					return
				}
				s.seenGroups = append(s.seenGroups, gi)
				s.seenSet[gi] = true
			}
			return
		}

		if gi < s.lockedPrefixLen {
			s.invalid = true
			return
		}

		if isPrefix {
			expectedGI := len(pressedIdxs) - 1
			if gi != expectedGI {
				if recoverable {
					s.attemptInvalid = true
				} else {
					s.invalid = true
				}
				return
			}
		}
	}
}

// isPrefixOfLocked reports whether idxs starts with exactly [0..lockedLen).
func isPrefixOfLocked(idxs []int, lockedLen int) bool {
	if len(idxs) < lockedLen {
		return false
	}
	for i := 0; i < lockedLen; i++ {
		if idxs[i] != i {
			return false
		}
	}
	return true
}

func (s *strictOrderState) allowsFull(spec chord.Spec, pressed map[int]bool, recoverable bool) bool {
	if s.invalid {
		return false
	}
	if recoverable && s.attemptInvalid {
		return false
	}
	idxs := chord.PressedGroupIndices(spec, pressed)
	return chord.IsPrefixIndices(idxs)
}

func (s *strictOrderState) onFullRisingEdge(spec chord.Spec) {
	if !s.hasLockedPrefix {
		s.hasLockedPrefix = true
		s.lockedPrefixLen = len(spec.Groups) - 1
		if s.lockedPrefixLen < 0 {
			s.lockedPrefixLen = 0
		}
	}
}
