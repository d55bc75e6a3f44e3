package cli

import (
	"errors"

	"github.com/nickromney/certcheck/internal/check"
)

// ExitError carries an intended process exit code.
//
// Check results use it with Silent set: the status line has already been
// printed and only the code matters to the monitoring agent. Usage and
// configuration problems exit UNKNOWN (3) with a message.
type ExitError struct {
	Code   int
	Silent bool   // if true, main should not print "Error: ..." for this
	Msg    string // optional message (already user-facing)
}

func (e *ExitError) Error() string {
	return e.Msg
}

func ExitCode(err error) (code int, silent bool, ok bool) {
	var ee *ExitError
	if !errors.As(err, &ee) {
		return 0, false, false
	}
	return ee.Code, ee.Silent, true
}

// severityExit returns nil for OK so cobra exits 0.
func severityExit(sev check.Severity) error {
	if sev == check.OK {
		return nil
	}
	return &ExitError{Code: sev.ExitCode(), Silent: true, Msg: sev.String()}
}

func usageError(msg string) error {
	return &ExitError{Code: check.Unknown.ExitCode(), Msg: msg}
}
