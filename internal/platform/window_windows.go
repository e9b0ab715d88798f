//go:build windows

package platform

var (
	procIsWindow           = user32.NewProc("IsWindow")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
)

// WindowFocusChecker reports whether a specific HWND currently has OS
// foreground focus, for binds scoped to a target window instead of the
// whole desktop.
type WindowFocusChecker struct {
	hwnd uintptr
}

// NewWindowFocusChecker wraps hwnd for focus polling. hwnd of 0 means "no
// window scoping" at the call site — callers should pass a nil
// bindcommon.FocusChecker instead of constructing one for that case.
func NewWindowFocusChecker(hwnd uintptr) *WindowFocusChecker {
	return &WindowFocusChecker{hwnd: hwnd}
}

// IsValid reports whether the wrapped HWND still refers to a live window.
func (w *WindowFocusChecker) IsValid() bool {
	ret, _, _ := procIsWindow.Call(w.hwnd)
	return ret != 0
}

// IsFocused reports whether the wrapped HWND is the current foreground
// window.
func (w *WindowFocusChecker) IsFocused() (bool, error) {
	fg, _, _ := procGetForegroundWindow.Call()
	return fg == w.hwnd, nil
}
