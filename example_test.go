package keybinds_test

import (
	"fmt"

	"keybinds"
	"keybinds/internal/inject"
)

// Example demonstrates the simple decorator-style API: a hotkey that prints
// a message, driven here by a synthetic key tap instead of a real user
// pressing ctrl+e.
func Example() {
	hook, err := keybinds.NewHook(2, nil)
	if err != nil {
		fmt.Println("hook error:", err)
		return
	}
	defer hook.Close()

	done := make(chan struct{})
	_, err = keybinds.Hotkey("ctrl+e", func() {
		fmt.Println("ctrl+e fired")
		close(done)
	}, keybinds.WithHook(hook), keybinds.WithSuppress())
	if err != nil {
		fmt.Println("bind error:", err)
		return
	}

	injector := inject.New(nil)
	injector.Combo("e", "ctrl")

	<-done
}
