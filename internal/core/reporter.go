package core

import "errors"

// TestReporter is the minimal interface seam needs from a test framework.
// *testing.T satisfies it, as does the harness T.
type TestReporter interface {
	Helper()
	Errorf(format string, args ...any)
	Logf(format string, args ...any)
}

// Failure kinds. Reported messages wrap one of these.
var (
	ErrUnexpectedCall    = errors.New("unexpected call")
	ErrUnmetExpectation  = errors.New("missing call(s)")
	ErrCallCountExceeded = errors.New("call count exceeded")
	ErrArgCount          = errors.New("wrong number of args")
)

// cleanupRegistrar is satisfied by *testing.T, *testing.B, and the harness T.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
