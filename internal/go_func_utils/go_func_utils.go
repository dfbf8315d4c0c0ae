package go_func_utils

import (
	"log"
	"runtime/debug"
)

// SafeGo launches fn on a goroutine and writes any panic to the logger
// before re-panicking. The curses UI owns the terminal, so a bare panic's
// stack trace would otherwise be lost with the screen.
func SafeGo(logger *log.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC: %v\n%s", r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}
