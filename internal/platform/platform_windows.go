//go:build windows

package platform

import (
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"
)

var (
	user32                 = syscall.NewLazyDLL("user32.dll")
	kernel32               = syscall.NewLazyDLL("kernel32.dll")
	procSetWindowsHookEx   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx     = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHook  = user32.NewProc("UnhookWindowsHookEx")
	procGetMessage         = user32.NewProc("GetMessageW")
	procPostThreadMessage  = user32.NewProc("PostThreadMessageW")
	procGetCurrentThreadId = kernel32.NewProc("GetCurrentThreadId")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
	wmQuit       = 0x0012

	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C

	llkhfInjected = 0x00000010
	llmhfInjected = 0x00000001
)

// kbdllhookstruct mirrors Win32's KBDLLHOOKSTRUCT.
type kbdllhookstruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// msllhookstruct mirrors Win32's MSLLHOOKSTRUCT.
type msllhookstruct struct {
	Pt          struct{ X, Y int32 }
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// windowsHooker installs WH_KEYBOARD_LL and WH_MOUSE_LL on the calling
// thread and pumps its message loop. Both hooks live on the thread that
// calls Run, matching the low-level-hook requirement that hook and pump
// share one OS thread.
type windowsHooker struct {
	mu         sync.Mutex
	onKey      KeyHandler
	onMouse    MouseHandler
	threadID   uint32
	running    int32
	kbHandle   uintptr
	mouseHandle uintptr
}

// New constructs the Windows low-level hook implementation.
func New() Hooker {
	return &windowsHooker{}
}

func (h *windowsHooker) Install(onKey KeyHandler, onMouse MouseHandler) error {
	h.mu.Lock()
	h.onKey = onKey
	h.onMouse = onMouse
	h.mu.Unlock()
	return nil
}

func (h *windowsHooker) Run() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	kbCallback := syscall.NewCallback(h.keyboardProc)
	mouseCallback := syscall.NewCallback(h.mouseProc)

	kbHandle, _, err := procSetWindowsHookEx.Call(whKeyboardLL, kbCallback, 0, 0)
	if kbHandle == 0 {
		return err
	}
	mouseHandle, _, err := procSetWindowsHookEx.Call(whMouseLL, mouseCallback, 0, 0)
	if mouseHandle == 0 {
		procUnhookWindowsHook.Call(kbHandle)
		return err
	}

	threadID, _, _ := procGetCurrentThreadId.Call()

	h.mu.Lock()
	h.kbHandle = kbHandle
	h.mouseHandle = mouseHandle
	h.threadID = uint32(threadID)
	h.mu.Unlock()
	atomic.StoreInt32(&h.running, 1)

	var m msg
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 || int32(ret) == -1 {
			break
		}
	}

	procUnhookWindowsHook.Call(kbHandle)
	procUnhookWindowsHook.Call(mouseHandle)
	atomic.StoreInt32(&h.running, 0)
	return nil
}

func (h *windowsHooker) Close() error {
	h.mu.Lock()
	threadID := h.threadID
	h.mu.Unlock()

	if threadID == 0 {
		return nil
	}
	procPostThreadMessage.Call(uintptr(threadID), wmQuit, 0, 0)

	for i := 0; i < 200; i++ {
		if atomic.LoadInt32(&h.running) == 0 {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (h *windowsHooker) keyboardProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 {
		kbs := (*kbdllhookstruct)(unsafe.Pointer(lParam))
		down := wParam == wmKeyDown || wParam == wmSysKeyDown
		up := wParam == wmKeyUp || wParam == wmSysKeyUp
		if down || up {
			h.mu.Lock()
			handler := h.onKey
			h.mu.Unlock()
			if handler != nil {
				evt := RawKeyEvent{
					VKCode:   int(kbs.VkCode),
					Down:     down,
					Injected: kbs.Flags&llkhfInjected != 0,
					TimeMs:   int64(kbs.Time),
				}
				if handler(evt) {
					return 1
				}
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func (h *windowsHooker) mouseProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 {
		mhs := (*msllhookstruct)(unsafe.Pointer(lParam))
		button, xbutton, ok := classifyMouseAction(uint32(wParam), mhs.MouseData)
		if ok {
			h.mu.Lock()
			handler := h.onMouse
			h.mu.Unlock()
			if handler != nil {
				down := wParam == wmLButtonDown || wParam == wmRButtonDown || wParam == wmMButtonDown || wParam == wmXButtonDown
				evt := RawMouseEvent{
					Button:   button,
					XButton:  xbutton,
					Down:     down,
					Injected: mhs.Flags&llmhfInjected != 0,
					TimeMs:   int64(mhs.Time),
				}
				if handler(evt) {
					return 1
				}
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// classifyMouseAction maps a WM_*BUTTON* message to a stable button
// identifier (0=left,1=right,2=middle,3=X) plus, for X buttons, which of
// X1/X2 the high word of mouseData names.
func classifyMouseAction(action uint32, mouseData uint32) (button int, xbutton int, ok bool) {
	switch action {
	case wmLButtonDown, wmLButtonUp:
		return 0, 0, true
	case wmRButtonDown, wmRButtonUp:
		return 1, 0, true
	case wmMButtonDown, wmMButtonUp:
		return 2, 0, true
	case wmXButtonDown, wmXButtonUp:
		return 3, int(mouseData >> 16), true
	}
	return 0, 0, false
}
