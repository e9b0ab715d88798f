package kbind

// Action identifies the low-level keyboard message a KeyEvent carries,
// matching the WM_KEYDOWN/WM_KEYUP/WM_SYSKEYDOWN/WM_SYSKEYUP family the
// platform hook delivers.
type Action int

const (
	KeyDown Action = iota
	KeyUp
	SysKeyDown
	SysKeyUp
)

// KeyEvent is one low-level keyboard event as seen by the evaluator, after
// the platform layer has translated it out of its native hook struct.
type KeyEvent struct {
	VKCode   int
	Action   Action
	TimeMs   int64
	Injected bool
	// IsRepeat marks an OS-generated auto-repeat keydown (the key was
	// already down when this event arrived).
	IsRepeat bool
}

func (e KeyEvent) isDown() bool {
	return e.Action == KeyDown || e.Action == SysKeyDown
}

func (e KeyEvent) isUp() bool {
	return e.Action == KeyUp || e.Action == SysKeyUp
}

// Flags is the suppression verdict a Handle call returns: whether the
// originating low-level hook should swallow the event instead of letting it
// continue to the rest of the OS/application stack.
type Flags int

const (
	Continue Flags = 0
	Suppress Flags = 1
)
