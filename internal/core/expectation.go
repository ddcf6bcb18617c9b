package core

import (
	"fmt"
	"strings"
	"sync"
)

// Expectation is a pre-registered rule: which calls a double accepts, how many times, and what it
// answers with. Build one with Controller.Expect and refine it with the chaining methods.
type Expectation struct {
	mu *sync.Mutex // the owning controller's lock

	method string
	args   []any

	// max < 0 means no upper bound
	min, max int

	returns    []any
	panics     bool
	panicValue any

	calls int
}

// AnyTimes allows zero or more calls.
func (e *Expectation) AnyTimes() *Expectation {
	return e.bounds(0, -1)
}

// Calls returns how many calls this expectation has accepted so far.
func (e *Expectation) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.calls
}

// MinTimes requires at least n calls, with no upper bound.
func (e *Expectation) MinTimes(n int) *Expectation {
	return e.bounds(n, -1)
}

// Once requires exactly one call. This is the default.
func (e *Expectation) Once() *Expectation {
	return e.Times(1)
}

// Panic makes matching calls panic with value instead of returning.
func (e *Expectation) Panic(value any) *Expectation {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.panics = true
	e.panicValue = value

	return e
}

// Return sets the values handed back to matching calls.
func (e *Expectation) Return(values ...any) *Expectation {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.returns = values
	e.panics = false

	return e
}

// Satisfied reports whether the call count is within bounds.
func (e *Expectation) Satisfied() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.satisfied()
}

// String renders the expected call, e.g. DummyFunction(1, 1).
func (e *Expectation) String() string {
	parts := make([]string, 0, len(e.args))
	for _, arg := range e.args {
		parts = append(parts, describeArg(arg))
	}

	return e.method + "(" + strings.Join(parts, ", ") + ")"
}

// Times requires exactly n calls.
func (e *Expectation) Times(n int) *Expectation {
	return e.bounds(n, n)
}

func (e *Expectation) bounds(low, high int) *Expectation {
	if low < 0 {
		panic(fmt.Sprintf("seam: negative call count %d for %s", low, e))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.min, e.max = low, high

	return e
}

// countSummary describes the wanted vs actual call count. Must be called with e.mu held.
func (e *Expectation) countSummary() string {
	var want string

	switch {
	case e.max < 0 && e.min == 0:
		want = "any number of calls"
	case e.max < 0:
		want = fmt.Sprintf("at least %d call(s)", e.min)
	default:
		want = fmt.Sprintf("exactly %d call(s)", e.max)
	}

	return fmt.Sprintf("expected %s, got %d", want, e.calls)
}

// exhausted reports whether another call would exceed the upper bound. Must be called with e.mu held.
func (e *Expectation) exhausted() bool {
	return e.max >= 0 && e.calls >= e.max
}

// satisfied must be called with e.mu held.
func (e *Expectation) satisfied() bool {
	return e.calls >= e.min && (e.max < 0 || e.calls <= e.max)
}

// validate returns nil if actualArgs are accepted, or an error describing the first mismatch.
func (e *Expectation) validate(actualArgs []any) error {
	if len(actualArgs) != len(e.args) {
		return fmt.Errorf("%w: expected %d, got %d", ErrArgCount, len(e.args), len(actualArgs))
	}

	for index, expected := range e.args {
		ok, failureMsg := MatchValue(actualArgs[index], expected)
		if ok {
			continue
		}

		if failureMsg == "" {
			failureMsg = fmt.Sprintf("matcher failed for value %#v", actualArgs[index])
		}

		//nolint:err113 // validation error with dynamic context
		return fmt.Errorf("arg %d: %s", index, failureMsg)
	}

	return nil
}
