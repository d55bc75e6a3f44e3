package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isTerminalFn is overridable in tests.
var isTerminalFn = func(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// colorEnabled honours NO_COLOR and disables escapes when stdout is piped,
// which is the normal case under a monitoring agent.
func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminalFn(os.Stdout)
}
