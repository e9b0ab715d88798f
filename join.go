package keybinds

import (
	"os"
	"os/signal"
	"syscall"

	"keybinds/internal/vk"
)

// RegisterKeyToken teaches the chord parser a new key name, mapping it to a
// platform virtual-key code. Call it before parsing any expression that uses
// the token; it affects every Hook in the process.
func RegisterKeyToken(name string, code int) {
	vk.RegisterToken(name, code)
}

// Join blocks until SIGINT or SIGTERM, then closes hook and waits for its
// worker goroutines to exit (callbacks still queued at that point may never
// run; see Hook.Wait) — the long-running-process counterpart to Hook.Wait
// for programs that otherwise have nothing else to block on. A nil hook
// uses the package default Hook; if that Hook has never been constructed
// and construction fails, Join returns the error immediately without
// waiting on a signal.
func Join(hook *Hook) error {
	if hook == nil {
		h, err := DefaultHook()
		if err != nil {
			return err
		}
		hook = h
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	<-sig
	hook.Close()
	hook.Wait()
	return nil
}
