package harness

import (
	"fmt"
	"runtime"
	"sync"
)

// T is the per-case handle handed to every hook. It satisfies seam.TestReporter and gomega's
// GomegaTestingT, so doubles and gomega assertions both report into the case.
type T struct {
	name string

	mu       sync.Mutex
	state    State
	fixture  any
	failures []string
	logs     []string
	cleanups []func()
}

func newT(name string) *T {
	return &T{name: name, state: Constructed}
}

// Cleanup registers fn to run after tear-down. Cleanups run last-registered first.
func (t *T) Cleanup(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cleanups = append(t.cleanups, fn)
}

// Errorf records a failure and lets the hook keep going.
func (t *T) Errorf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.failures = append(t.failures, fmt.Sprintf(format, args...))
}

// Failed reports whether anything has failed so far.
func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.failures) > 0
}

// Failures returns the recorded failure messages in order.
func (t *T) Failures() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.failures...)
}

// Fatalf records a failure and stops the current hook.
func (t *T) Fatalf(format string, args ...any) {
	t.Errorf(format, args...)

	// kill off the hook's goroutine; wrap is waiting on it
	runtime.Goexit()
}

// Fixture returns what the case's Fixture built, or nil.
func (t *T) Fixture() any {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.fixture
}

// Helper is a no-op; it lets T stand in for *testing.T.
func (t *T) Helper() {}

// Logf records a log line.
func (t *T) Logf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.logs = append(t.logs, fmt.Sprintf(format, args...))
}

// Logs returns the recorded log lines in order.
func (t *T) Logs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.logs...)
}

// Name returns the case name.
func (t *T) Name() string { return t.name }

// State returns the lifecycle state of the case.
func (t *T) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

func (t *T) popCleanup() (func(), bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.cleanups) == 0 {
		return nil, false
	}

	last := len(t.cleanups) - 1
	fn := t.cleanups[last]
	t.cleanups = t.cleanups[:last]

	return fn, true
}

func (t *T) setFixture(fixture any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fixture = fixture
}

func (t *T) setState(state State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = state
}

// wrap runs fn on its own goroutine so that Fatalf can stop it without taking the caller down,
// and turns a panic into a recorded failure. It reports whether fn returned normally.
func (t *T) wrap(stage string, fn func()) bool {
	completed := false
	waitgroup := &sync.WaitGroup{}
	waitgroup.Add(1)

	go func() {
		defer waitgroup.Done()
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("%s panicked: %v", stage, r)
			}
		}()

		fn()

		completed = true
	}()
	waitgroup.Wait()

	return completed
}
