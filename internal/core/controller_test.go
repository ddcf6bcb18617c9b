package core_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/seam/internal/core"
	"pgregory.net/rapid"
)

// fakeReporter records what a controller reports instead of failing the real test.
type fakeReporter struct {
	errors   []string
	logs     []string
	cleanups []func()
}

func (f *fakeReporter) Cleanup(fn func()) { f.cleanups = append(f.cleanups, fn) }

func (f *fakeReporter) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeReporter) Helper() {}

func (f *fakeReporter) Logf(format string, args ...any) {
	f.logs = append(f.logs, fmt.Sprintf(format, args...))
}

func (f *fakeReporter) finish() {
	for i := len(f.cleanups) - 1; i >= 0; i-- {
		f.cleanups[i]()
	}
}

func TestController_ExpectedCallReturnsConfiguredValue(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)

	ctrl.Expect("DummyFunction", 1, 1).Return(2)

	g.Expect(ctrl.Invoke("DummyFunction", 1, 1)).To(Equal([]any{2}))
	g.Expect(ctrl.Verify()).To(BeTrue())
	g.Expect(rep.errors).To(BeEmpty())
}

func TestController_UnexpectedArgsFailStrictDouble(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", 1, 1).Return(2)

	g.Expect(ctrl.Invoke("DummyFunction", 3, 4)).To(BeNil())
	g.Expect(rep.errors).To(HaveLen(1))
	g.Expect(rep.errors[0]).To(ContainSubstring("unexpected call DummyFunction(3, 4)"))
	g.Expect(rep.errors[0]).To(ContainSubstring("arg 0: expected 1, got 3"))
	g.Expect(errors.Is(ctrl.Failures()[0], core.ErrUnexpectedCall)).To(BeTrue())
}

func TestController_NoExpectationsStrictFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)

	ctrl.Invoke("DummyFunction", 1, 1)

	g.Expect(rep.errors).To(ConsistOf(ContainSubstring("no expectations registered")))
}

func TestController_NiceDoubleOnlyWarns(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep, core.Nice())

	g.Expect(ctrl.IsNice()).To(BeTrue())
	g.Expect(ctrl.Invoke("DummyFunction", 3, 4)).To(BeNil())
	g.Expect(rep.errors).To(BeEmpty())
	g.Expect(rep.logs).To(ConsistOf(ContainSubstring("uninteresting call DummyFunction(3, 4)")))
	g.Expect(ctrl.Verify()).To(BeTrue())
}

func TestController_NiceDoubleStillVerifiesExpectations(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep, core.Nice())
	ctrl.Expect("DummyFunction", 1, 1).Return(2)

	g.Expect(ctrl.Verify()).To(BeFalse())
	g.Expect(rep.errors).To(ConsistOf(ContainSubstring("missing call(s): DummyFunction(1, 1)")))
}

func TestController_StrictOptionOverridesNice(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep, core.Nice(), core.Strict())

	g.Expect(ctrl.IsNice()).To(BeFalse())
}

func TestController_UnmetExpectationFailsVerify(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", 1, 1).Return(2)

	g.Expect(ctrl.Verify()).To(BeFalse())
	g.Expect(rep.errors).To(HaveLen(1))
	g.Expect(rep.errors[0]).To(Equal("missing call(s): DummyFunction(1, 1): expected exactly 1 call(s), got 0"))
	g.Expect(errors.Is(ctrl.Failures()[0], core.ErrUnmetExpectation)).To(BeTrue())
}

func TestController_VerifyReportsOnce(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", 1, 1)

	g.Expect(ctrl.Verify()).To(BeFalse())
	g.Expect(ctrl.Verify()).To(BeFalse())
	g.Expect(rep.errors).To(HaveLen(1))
}

func TestController_CleanupVerifiesAtTeardown(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", 1, 1)

	g.Expect(rep.errors).To(BeEmpty())
	rep.finish()
	g.Expect(rep.errors).To(HaveLen(1))
}

func TestController_ExcessCallFailsEvenWhenNice(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep, core.Nice())
	exp := ctrl.Expect("DummyFunction", 1, 1).Return(2)

	g.Expect(ctrl.Invoke("DummyFunction", 1, 1)).To(Equal([]any{2}))
	g.Expect(ctrl.Invoke("DummyFunction", 1, 1)).To(BeNil())
	g.Expect(rep.errors).To(ConsistOf(ContainSubstring("call count exceeded")))
	g.Expect(exp.Calls()).To(Equal(2))
	g.Expect(exp.Satisfied()).To(BeFalse())
	g.Expect(ctrl.Verify()).To(BeFalse())
	// the excess was reported when it happened, not again at verify
	g.Expect(rep.errors).To(HaveLen(1))
}

func TestController_FirstDeclaredFirstMatched(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", core.Any(), core.Any()).Return(10)
	ctrl.Expect("DummyFunction", 1, 1).Return(20)

	g.Expect(ctrl.Invoke("DummyFunction", 1, 1)).To(Equal([]any{10}))
	g.Expect(ctrl.Invoke("DummyFunction", 1, 1)).To(Equal([]any{20}))
	g.Expect(ctrl.Verify()).To(BeTrue())
}

func TestController_TimesAndAnyTimes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", 1, 1).Return(2).Times(3)
	ctrl.Expect("DummyFunction", 2, 2).Return(4).AnyTimes()
	ctrl.Expect("DummyFunction", 3, 3).Return(6).MinTimes(1)

	for range 3 {
		g.Expect(ctrl.Invoke("DummyFunction", 1, 1)).To(Equal([]any{2}))
	}

	for range 5 {
		g.Expect(ctrl.Invoke("DummyFunction", 3, 3)).To(Equal([]any{6}))
	}

	g.Expect(ctrl.Verify()).To(BeTrue())
	g.Expect(rep.errors).To(BeEmpty())
}

func TestController_MinTimesUnmetMessage(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", 1, 1).MinTimes(2)
	ctrl.Invoke("DummyFunction", 1, 1)

	g.Expect(ctrl.Verify()).To(BeFalse())
	g.Expect(rep.errors).To(ConsistOf(HaveSuffix("expected at least 2 call(s), got 1")))
}

func TestController_GomegaMatchersAsArgs(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", BeNumerically(">", 0), BeNumerically("<", 10)).Return(7)

	g.Expect(ctrl.Invoke("DummyFunction", 3, 4)).To(Equal([]any{7}))

	ctrl.Invoke("DummyFunction", -1, 4)
	g.Expect(rep.errors).To(HaveLen(1))
	g.Expect(rep.errors[0]).To(ContainSubstring("arg 0:"))
}

func TestController_ArgCountMismatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", 1, 1)

	ctrl.Invoke("DummyFunction", 1)
	g.Expect(rep.errors).To(ConsistOf(ContainSubstring("wrong number of args: expected 2, got 1")))
}

func TestController_OtherMethodsDoNotMatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("Other", 1, 1)

	ctrl.Invoke("DummyFunction", 1, 1)
	g.Expect(rep.errors).To(ConsistOf(ContainSubstring("no expectations registered")))
}

func TestController_PanicResponse(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", 1, 1).Panic("boom")

	g.Expect(func() { ctrl.Invoke("DummyFunction", 1, 1) }).To(PanicWith("boom"))
	g.Expect(ctrl.Verify()).To(BeTrue())
}

func TestController_CallsLog(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep, core.Nice())
	ctrl.Expect("DummyFunction", 1, 1).Return(2)

	ctrl.Invoke("DummyFunction", 1, 1)
	ctrl.Invoke("DummyFunction", 5, 6)

	g.Expect(ctrl.Calls()).To(Equal([]core.Call{
		{Method: "DummyFunction", Args: []any{1, 1}, Matched: true},
		{Method: "DummyFunction", Args: []any{5, 6}, Matched: false},
	}))
}

func TestExpectation_String(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ctrl := core.NewController(&fakeReporter{})

	g.Expect(ctrl.Expect("DummyFunction", 1, core.Any()).String()).To(Equal("DummyFunction(1, <any>)"))
	g.Expect(ctrl.Expect("Name", "x").String()).To(Equal(`Name("x")`))
}

func TestExpectation_NegativeTimesPanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ctrl := core.NewController(&fakeReporter{})

	g.Expect(func() { ctrl.Expect("DummyFunction").Times(-1) }).To(Panic())
}

func TestMatchValue(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, msg := core.MatchValue(1, 1)
	g.Expect(ok).To(BeTrue())
	g.Expect(msg).To(BeEmpty())

	ok, msg = core.MatchValue(1, 2)
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(Equal("expected 2, got 1"))

	ok, _ = core.MatchValue("anything", core.Any())
	g.Expect(ok).To(BeTrue())

	ok, msg = core.MatchValue("x", BeNumerically(">", 0))
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).NotTo(BeEmpty())

	ok, msg = core.MatchValue(3, explodingMatcher{})
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).To(Equal("matcher panicked on 3: boom"))
}

// explodingMatcher panics instead of answering.
type explodingMatcher struct{}

func (explodingMatcher) FailureMessage(any) string { return "" }

func (explodingMatcher) Match(any) (bool, error) { panic("boom") }

func TestController_PanickingMatcherIsAMismatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	rep := &fakeReporter{}
	ctrl := core.NewController(rep)
	ctrl.Expect("DummyFunction", explodingMatcher{}, 1).Return(10)

	g.Expect(ctrl.Invoke("DummyFunction", 1, 1)).To(BeNil())
	g.Expect(rep.errors).To(ConsistOf(And(
		HavePrefix("unexpected call DummyFunction(1, 1)"),
		ContainSubstring("matcher panicked on 1: boom"),
	)))

	// the controller is still usable afterwards
	ctrl.Expect("DummyFunction", 2, 2).Return(4)
	g.Expect(ctrl.Invoke("DummyFunction", 2, 2)).To(Equal([]any{4}))

	done := make(chan bool)

	go func() { done <- ctrl.Verify() }()

	g.Eventually(done).Should(Receive(BeFalse()))
	g.Expect(rep.errors).To(HaveLen(2))
}

// Any call to a strict double with no expectations fails; the same call to a nice double does not.
func TestController_ZeroExpectations_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Int().Draw(rt, "a")
		b := rapid.Int().Draw(rt, "b")
		nice := rapid.Bool().Draw(rt, "nice")

		rep := &fakeReporter{}

		var opts []core.Option
		if nice {
			opts = append(opts, core.Nice())
		}

		ctrl := core.NewController(rep, opts...)
		ctrl.Invoke("DummyFunction", a, b)
		rep.finish()

		if nice && len(rep.errors) != 0 {
			rt.Fatalf("nice double failed: %s", strings.Join(rep.errors, "; "))
		}

		if !nice && len(rep.errors) != 1 {
			rt.Fatalf("strict double reported %d errors, want 1", len(rep.errors))
		}
	})
}

// An expectation for exactly n calls passes verify only when called exactly n times.
func TestController_ExactCount_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		want := rapid.IntRange(0, 5).Draw(rt, "want")
		got := rapid.IntRange(0, 8).Draw(rt, "got")

		rep := &fakeReporter{}
		ctrl := core.NewController(rep)
		ctrl.Expect("DummyFunction", 1, 1).Return(2).Times(want)

		for range got {
			ctrl.Invoke("DummyFunction", 1, 1)
		}

		if ok := ctrl.Verify(); ok != (got == want) {
			rt.Fatalf("Verify() = %v for %d of %d calls", ok, got, want)
		}

		if (len(rep.errors) == 0) != (got == want) {
			rt.Fatalf("reported %v for %d of %d calls", rep.errors, got, want)
		}
	})
}
