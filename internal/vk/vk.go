// Package vk holds the virtual-key code tables the chord parser and bind
// evaluators share: modifier alias groups, named special keys, and the
// single-alphanumeric fallback.
package vk

import "strings"

// Common Win32 virtual-key codes. Values match winuser.h; kept here instead
// of behind a platform build tag because they are just integer identities
// the core engine matches against, not calls into user32.
const (
	VK_SHIFT   = 0x10
	VK_CONTROL = 0x11
	VK_MENU    = 0x12 // Alt

	VK_LSHIFT   = 0xA0
	VK_RSHIFT   = 0xA1
	VK_LCONTROL = 0xA2
	VK_RCONTROL = 0xA3
	VK_LMENU    = 0xA4
	VK_RMENU    = 0xA5

	VK_LWIN = 0x5B
	VK_RWIN = 0x5C

	VK_ESCAPE    = 0x1B
	VK_RETURN    = 0x0D
	VK_TAB       = 0x09
	VK_SPACE     = 0x20
	VK_BACK      = 0x08
	VK_DELETE    = 0x2E
	VK_INSERT    = 0x2D
	VK_HOME      = 0x24
	VK_END       = 0x23
	VK_PRIOR     = 0x21
	VK_NEXT      = 0x22
	VK_UP        = 0x26
	VK_DOWN      = 0x28
	VK_LEFT      = 0x25
	VK_RIGHT     = 0x27
	VK_VOLUMEUP   = 0xAF
	VK_VOLUMEDOWN = 0xAE
	VK_VOLUMEMUTE = 0xAD

	VK_OEM_3     = 0xC0 // `~
	VK_OEM_MINUS = 0xBD // -_
	VK_OEM_PLUS  = 0xBB // =+
	VK_OEM_4     = 0xDB // [{
	VK_OEM_6     = 0xDD // ]}
	VK_OEM_5     = 0xDC // \|
	VK_OEM_1     = 0xBA // ;:
	VK_OEM_7     = 0xDE // '"
	VK_OEM_COMMA = 0xBC // ,<
	VK_OEM_PERIOD = 0xBE // .>
	VK_OEM_2     = 0xBF // /?

	VK_F1 = 0x70
)

// modGroups maps a modifier alias token to its interchangeable VK codes.
// Registered once at package init; ModifierGroup never mutates these, only
// custom tables registered via RegisterToken.
var modGroups = map[string][]int{
	"shift":   {VK_SHIFT, VK_LSHIFT, VK_RSHIFT},
	"ctrl":    {VK_CONTROL, VK_LCONTROL, VK_RCONTROL},
	"control": {VK_CONTROL, VK_LCONTROL, VK_RCONTROL},
	"alt":     {VK_MENU, VK_LMENU, VK_RMENU},
	"menu":    {VK_MENU, VK_LMENU, VK_RMENU},
	"win":     {VK_LWIN, VK_RWIN},
	"lwin":    {VK_LWIN},
	"rwin":    {VK_RWIN},
}

var specialKeys = map[string]int{
	"esc": VK_ESCAPE, "escape": VK_ESCAPE,
	"enter": VK_RETURN, "return": VK_RETURN,
	"tab":       VK_TAB,
	"space":     VK_SPACE,
	"backspace": VK_BACK,
	"delete":    VK_DELETE, "del": VK_DELETE,
	"insert":   VK_INSERT,
	"home":     VK_HOME,
	"end":      VK_END,
	"pgup":     VK_PRIOR, "pageup": VK_PRIOR,
	"pgdn":     VK_NEXT, "pagedown": VK_NEXT,
	"up":    VK_UP,
	"down":  VK_DOWN,
	"left":  VK_LEFT,
	"right": VK_RIGHT,

	"volumeup":   VK_VOLUMEUP,
	"volumedown": VK_VOLUMEDOWN,
	"mute":       VK_VOLUMEMUTE,

	"`": VK_OEM_3, "backtick": VK_OEM_3, "grave": VK_OEM_3, "tilde": VK_OEM_3,
	"-": VK_OEM_MINUS,
	"=": VK_OEM_PLUS,
	"[": VK_OEM_4,
	"]": VK_OEM_6,
	`\`: VK_OEM_5,
	";": VK_OEM_1,
	"'": VK_OEM_7,
	",": VK_OEM_COMMA,
	".": VK_OEM_PERIOD,
	"/": VK_OEM_2,
}

func init() {
	for i := 1; i <= 24; i++ {
		specialKeys[fKeyName(i)] = VK_F1 + (i - 1)
	}
}

func fKeyName(n int) string {
	switch {
	case n < 10:
		return "f" + string(rune('0'+n))
	default:
		tens := n / 10
		ones := n % 10
		return "f" + string(rune('0'+tens)) + string(rune('0'+ones))
	}
}

// ModifierGroup returns the VK codes for a modifier alias token ("shift",
// "ctrl", "alt", "win", ...), ok=false if the token is not a known modifier.
func ModifierGroup(token string) ([]int, bool) {
	g, ok := modGroups[strings.ToLower(token)]
	return g, ok
}

// SpecialKey returns the VK code for a named special key ("enter", "f7",
// "space", punctuation, ...), ok=false if unknown.
func SpecialKey(token string) (int, bool) {
	vk, ok := specialKeys[strings.ToLower(token)]
	return vk, ok
}

// RegisterToken teaches the parser a new name -> VK code mapping, callable
// before parsing to extend the grammar with platform- or app-specific keys.
func RegisterToken(name string, code int) {
	specialKeys[strings.ToLower(name)] = code
}

// AlphaNumeric resolves a single ASCII letter or digit to its VK code
// (VK_A..VK_Z, VK_0..VK_9 use the character's code point on Windows).
func AlphaNumeric(token string) (int, bool) {
	if len(token) != 1 {
		return 0, false
	}
	c := token[0]
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a' + 'A'), true
	case c >= 'A' && c <= 'Z':
		return int(c), true
	case c >= '0' && c <= '9':
		return int(c), true
	}
	return 0, false
}

// AlphaNumericMust resolves a single ASCII letter or digit rune to its VK
// code, panicking on an invalid rune. Intended for tests and static
// table construction where the input is a known-good literal.
func AlphaNumericMust(r rune) int {
	code, ok := AlphaNumeric(string(r))
	if !ok {
		panic("vk: invalid alphanumeric rune " + string(r))
	}
	return code
}

var modifierVKs = map[int]bool{
	VK_SHIFT: true, VK_LSHIFT: true, VK_RSHIFT: true,
	VK_CONTROL: true, VK_LCONTROL: true, VK_RCONTROL: true,
	VK_MENU: true, VK_LMENU: true, VK_RMENU: true,
	VK_LWIN: true, VK_RWIN: true,
}

// IsModifier reports whether vk identifies a shift/ctrl/alt/win key.
func IsModifier(vkCode int) bool {
	return modifierVKs[vkCode]
}
