package main

import "fmt"

// cliLogger is the process-wide logger handed to the auth core and the
// HTTP layer.
type cliLogger struct{}

func (cliLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] "+newline(format), args...)
}

func (cliLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] "+newline(format), args...)
}

func (cliLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] "+newline(format), args...)
}

func (cliLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
