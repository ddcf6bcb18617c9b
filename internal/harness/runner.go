package harness

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// Case is one registered test case. Every hook is optional.
type Case struct {
	Name string
	// Fixture builds whatever the case owns; the result is available from T.Fixture.
	Fixture  func(t *T) any
	SetUp    func(t *T)
	Body     func(t *T)
	TearDown func(t *T)
	// ExpectFailure makes this a negative case: it passes only if its hooks reported a failure.
	ExpectFailure bool
	// WantFailure, when set on a negative case, must appear in one of the reported failures.
	WantFailure string
}

// Result is the outcome of one run of one case.
type Result struct {
	Name   string
	Passed bool
	State  State
	// Reached is the furthest state the case got to before tear-down.
	Reached  State
	Failures []string
	Logs     []string
	Duration time.Duration
}

// Summary aggregates the results of a run.
type Summary struct {
	Results []Result
	Passed  int
	Failed  int
	// Interrupted is set when the context was cancelled before every case ran.
	Interrupted bool
}

// ExitCode is 0 if and only if every case that ran passed and the run was not interrupted.
func (s Summary) ExitCode() int {
	if s.Failed > 0 || s.Interrupted {
		return 1
	}

	return 0
}

// Option configures a Runner.
type Option func(*Runner)

// WithCount runs every case n times.
func WithCount(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.count = n
		}
	}
}

// WithFilter runs only the cases whose name matches re.
func WithFilter(re *regexp.Regexp) Option {
	return func(r *Runner) { r.filter = re }
}

// Runner holds the registered cases and runs them one after another.
type Runner struct {
	out    io.Writer
	cases  []Case
	filter *regexp.Regexp
	count  int
}

// NewRunner creates a runner printing its progress to out.
func NewRunner(out io.Writer, opts ...Option) *Runner {
	r := &Runner{out: out, count: 1}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Cases returns the registered cases that pass the filter, in registration order.
func (r *Runner) Cases() []Case {
	selected := make([]Case, 0, len(r.cases))

	for _, c := range r.cases {
		if r.filter == nil || r.filter.MatchString(c.Name) {
			selected = append(selected, c)
		}
	}

	return selected
}

// Register adds cases to the runner.
func (r *Runner) Register(cases ...Case) {
	r.cases = append(r.cases, cases...)
}

// Run executes the selected cases sequentially and prints a summary.
func (r *Runner) Run(ctx context.Context) Summary {
	var summary Summary

	start := time.Now()

run:
	for range r.count {
		for _, c := range r.Cases() {
			if ctx.Err() != nil {
				summary.Interrupted = true
				break run
			}

			log.Debugf("running %s", c.Name)
			_, _ = fmt.Fprintf(r.out, "=== RUN   %s\n", c.Name)

			result := RunCase(c)
			summary.Results = append(summary.Results, result)

			if result.Passed {
				summary.Passed++

				_, _ = fmt.Fprintf(r.out, "--- PASS: %s (%.2fs)\n", c.Name, result.Duration.Seconds())

				continue
			}

			summary.Failed++

			_, _ = fmt.Fprintf(r.out, "--- FAIL: %s (%.2fs)\n", c.Name, result.Duration.Seconds())
			for _, failure := range result.Failures {
				_, _ = fmt.Fprintf(r.out, "    %s\n", failure)
			}
		}
	}

	r.printSummary(summary, time.Since(start))

	return summary
}

func (r *Runner) printSummary(summary Summary, elapsed time.Duration) {
	status := "PASS"
	if summary.ExitCode() != 0 {
		status = "FAIL"
	}

	if summary.Interrupted {
		log.Warning("run interrupted before every case ran")
	}

	_, _ = fmt.Fprintf(r.out, "%s: %d passed, %d failed (%.2fs)\n",
		status, summary.Passed, summary.Failed, elapsed.Seconds())

	for _, result := range summary.Results {
		if !result.Passed {
			_, _ = fmt.Fprintf(r.out, "FAILED %s\n", result.Name)
		}
	}
}

// RunCase drives one case through its lifecycle on a fresh T and returns the outcome.
// Nothing from one call leaks into another.
func RunCase(c Case) Result {
	start := time.Now()
	t := newT(c.Name)

	constructed := true
	if c.Fixture != nil {
		constructed = t.wrap("fixture", func() { t.setFixture(c.Fixture(t)) })
	}

	setUp := constructed
	if setUp && c.SetUp != nil {
		setUp = t.wrap("set-up", func() { c.SetUp(t) })
	}

	if setUp {
		t.setState(SetUp)
	}

	if setUp && c.Body != nil {
		t.setState(Running)
		t.wrap("body", func() { c.Body(t) })
	}

	reached := t.State()

	if c.TearDown != nil {
		t.wrap("tear-down", func() { c.TearDown(t) })
	}

	t.setState(TornDown)

	for {
		fn, ok := t.popCleanup()
		if !ok {
			break
		}

		t.wrap("cleanup", fn)
		t.setState(Verified)
	}

	return finish(c, t, reached, time.Since(start))
}

func finish(c Case, t *T, reached State, elapsed time.Duration) Result {
	failures := t.Failures()
	passed := len(failures) == 0

	if c.ExpectFailure {
		passed, failures = judgeNegative(c, failures)
	}

	log.Debugf("%s finished in state %s", c.Name, t.State())

	return Result{
		Name:     c.Name,
		Passed:   passed,
		State:    t.State(),
		Reached:  reached,
		Failures: failures,
		Logs:     t.Logs(),
		Duration: elapsed,
	}
}

// judgeNegative decides a negative case: it passes when the expected failure was reported.
func judgeNegative(c Case, failures []string) (bool, []string) {
	if len(failures) == 0 {
		return false, []string{"expected the case to fail, but it passed"}
	}

	if c.WantFailure != "" && !containsFailure(failures, c.WantFailure) {
		return false, append([]string{fmt.Sprintf("expected a failure containing %q, got:", c.WantFailure)}, failures...)
	}

	log.Infof("%s failed as expected: %v", c.Name, failures)

	return true, nil
}

func containsFailure(failures []string, want string) bool {
	for _, failure := range failures {
		if strings.Contains(failure, want) {
			return true
		}
	}

	return false
}
