package agentlink

import (
	stderrors "errors"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1 // a target failed or status found drift
	ExitFatal   = 2 // the command could not run
)

// exitError carries a non-fatal exit code. The batch report has already
// been rendered when one is returned.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// ExitCode maps an error returned by the root command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if stderrors.As(err, &ee) {
		return ee.code
	}
	return ExitFatal
}
