package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu   sync.RWMutex
	crashHook func(r any, stack []byte)
)

// SetCrashHook installs the cleanup hook run before a crash exits the process
// Used by main to restore the terminal and flush the logger
func SetCrashHook(fn func(r any, stack []byte)) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashHook = fn
}

// HandleCrash is the unified panic handler, runs the hook and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}
	stack := debug.Stack()

	crashMu.RLock()
	hook := crashHook
	crashMu.RUnlock()
	if hook != nil {
		hook(r, stack)
	}

	// Raw mode compatible line endings
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
