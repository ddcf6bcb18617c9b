// Package seam provides test doubles that stand in for a dependency at an explicit seam.
// A test registers expectations on a Controller, hands the double to the code under test, and the
// Controller checks every call against the expectations and verifies the call counts at teardown.
//
// This is the public API entry point. Implementation lives in internal/core.
package seam

import (
	"github.com/toejough/seam/internal/core"
)

// Call is one recorded invocation of a double.
type Call = core.Call

// Controller owns the expectations of one test double.
type Controller = core.Controller

// Expectation is a pre-registered rule for the calls a double accepts.
type Expectation = core.Expectation

// Matcher defines the interface for flexible value matching.
type Matcher = core.Matcher

// Option configures a Controller.
type Option = core.Option

// TestReporter is the minimal interface seam needs from test frameworks.
type TestReporter = core.TestReporter

// Failure kinds, re-exported from internal/core.
var (
	ErrUnexpectedCall    = core.ErrUnexpectedCall
	ErrUnmetExpectation  = core.ErrUnmetExpectation
	ErrCallCountExceeded = core.ErrCallCountExceeded
	ErrArgCount          = core.ErrArgCount
)

// Any returns a matcher that matches any value.
func Any() Matcher {
	return core.Any()
}

// MatchValue checks if actual matches expected.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// NewController creates a strict controller reporting to t.
func NewController(t TestReporter, opts ...Option) *Controller {
	return core.NewController(t, opts...)
}

// Nice makes unmatched calls log a warning instead of failing.
func Nice() Option {
	return core.Nice()
}

// Strict makes unmatched calls fail. This is the default.
func Strict() Option {
	return core.Strict()
}
