// Package core provides the internal implementation of seam's test-double engine.
package core

import (
	"fmt"
	"strings"
	"sync"
)

// Call is one recorded invocation of a double.
type Call struct {
	Method string
	Args   []any
	// Matched is false for unexpected calls and for calls past an expectation's upper bound.
	Matched bool
}

// Controller owns the expectations of one test double for the life of one test case.
// It matches invocations against them and verifies call counts at teardown.
type Controller struct {
	t    TestReporter
	nice bool

	mu           sync.Mutex
	expectations []*Expectation
	calls        []Call
	failures     []error

	verified   bool
	verifiedOK bool
}

// Option configures a Controller.
type Option func(*Controller)

// NewController creates a strict controller reporting to t, unless opts say otherwise.
// If t supports Cleanup (like *testing.T), Verify is registered to run when the test finishes.
func NewController(t TestReporter, opts ...Option) *Controller {
	ctrl := &Controller{t: t}

	for _, opt := range opts {
		opt(ctrl)
	}

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			ctrl.Verify()
		})
	}

	return ctrl
}

// Nice makes unmatched calls log a warning instead of failing the test.
// Registered expectations are still verified.
func Nice() Option {
	return func(c *Controller) { c.nice = true }
}

// Strict makes unmatched calls fail the test. This is the default.
func Strict() Option {
	return func(c *Controller) { c.nice = false }
}

// Calls returns a copy of the invocation log, in call order.
func (c *Controller) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()

	calls := make([]Call, len(c.calls))
	copy(calls, c.calls)

	return calls
}

// Expect registers an expectation for method. Each arg is either a Matcher or a value compared with
// reflect.DeepEqual. The expectation requires exactly one call until told otherwise.
func (c *Controller) Expect(method string, args ...any) *Expectation {
	exp := &Expectation{
		mu:     &c.mu,
		method: method,
		args:   args,
		min:    1,
		max:    1,
	}

	c.mu.Lock()
	c.expectations = append(c.expectations, exp)
	c.mu.Unlock()

	return exp
}

// Failures returns the errors reported so far. Each wraps one of the Err* sentinels.
func (c *Controller) Failures() []error {
	c.mu.Lock()
	defer c.mu.Unlock()

	failures := make([]error, len(c.failures))
	copy(failures, c.failures)

	return failures
}

// Invoke is called by a double in place of the real dependency. The first expectation, in
// registration order, that accepts the args and has calls left answers the call.
// Returns nil for calls nothing answers; generated doubles turn that into zero values.
func (c *Controller) Invoke(method string, args ...any) []any {
	c.t.Helper()

	c.mu.Lock()

	exp, reasons, over := c.find(method, args)

	c.calls = append(c.calls, Call{Method: method, Args: args, Matched: exp != nil && !over})

	switch {
	case exp == nil && c.nice:
		c.mu.Unlock()
		c.t.Logf("seam: warning: uninteresting call %s", formatCall(method, args))

		return nil
	case exp == nil:
		err := fmt.Errorf("%w %s%s", ErrUnexpectedCall, formatCall(method, args), formatReasons(reasons))

		c.fail(err)

		return nil
	case over:
		exp.calls++
		err := fmt.Errorf("%w: %s: %s", ErrCallCountExceeded, exp, exp.countSummary())

		c.fail(err)

		return nil
	}

	exp.calls++
	returns, panics, panicValue := exp.returns, exp.panics, exp.panicValue

	c.mu.Unlock()

	if panics {
		panic(panicValue)
	}

	return returns
}

// IsNice reports whether unmatched calls are tolerated.
func (c *Controller) IsNice() bool {
	return c.nice
}

// Verify reports every expectation whose call count is out of bounds and returns whether all were
// satisfied. Only the first call reports; later calls return the same result.
func (c *Controller) Verify() bool {
	c.t.Helper()

	c.mu.Lock()

	if c.verified {
		ok := c.verifiedOK
		c.mu.Unlock()

		return ok
	}

	c.verified = true
	ok := true

	var missing []error

	for _, exp := range c.expectations {
		switch {
		case exp.calls < exp.min:
			missing = append(missing, fmt.Errorf("%w: %s: %s", ErrUnmetExpectation, exp, exp.countSummary()))
		case !exp.satisfied():
			// exceeded; already reported when the excess call arrived
			ok = false
		}
	}

	if len(missing) > 0 {
		ok = false
	}

	c.failures = append(c.failures, missing...)
	c.verifiedOK = ok
	c.mu.Unlock()

	for _, err := range missing {
		c.t.Errorf("%v", err)
	}

	return ok
}

// fail records err, releases the lock, and reports err. Must be called with c.mu held.
func (c *Controller) fail(err error) {
	c.failures = append(c.failures, err)
	c.mu.Unlock()

	c.t.Helper()
	c.t.Errorf("%v", err)
}

// find returns the expectation answering a call, the reasons each same-named expectation rejected
// it, and whether the answer is an exhausted expectation. Must be called with c.mu held.
func (c *Controller) find(method string, args []any) (*Expectation, []string, bool) {
	var (
		reasons   []string
		exhausted *Expectation
	)

	for _, exp := range c.expectations {
		if exp.method != method {
			continue
		}

		err := exp.validate(args)
		if err != nil {
			reasons = append(reasons, fmt.Sprintf("%s: %v", exp, err))

			continue
		}

		if exp.exhausted() {
			exhausted = exp

			continue
		}

		return exp, nil, false
	}

	if exhausted != nil {
		return exhausted, nil, true
	}

	return nil, reasons, false
}

func formatCall(method string, args []any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, fmt.Sprintf("%#v", arg))
	}

	return method + "(" + strings.Join(parts, ", ") + ")"
}

func formatReasons(reasons []string) string {
	if len(reasons) == 0 {
		return ": no expectations registered for this method"
	}

	return "\n  closest expectations:\n    " + strings.Join(reasons, "\n    ")
}
