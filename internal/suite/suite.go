// Package suite holds the registered cases the seamrun binary executes: the function called
// directly, called through its production dependency, and called through a test double.
package suite

import (
	"github.com/toejough/seam"
	"github.com/toejough/seam/calc"
	"github.com/toejough/seam/calc/calctest"
	"github.com/toejough/seam/internal/harness"
)

// Group names, used as the first element of every case name.
const (
	Direct = "direct"
	Linked = "linked"
	Mocked = "mocked"
)

// Cases returns every case in registration order.
func Cases() []harness.Case {
	cases := make([]harness.Case, 0)
	cases = append(cases, DirectCases()...)
	cases = append(cases, LinkedCases()...)
	cases = append(cases, MockedCases()...)

	return cases
}

// DirectCases call Add without any dependency.
func DirectCases() []harness.Case {
	return []harness.Case{
		{
			Name: Direct + "/add_one_and_one",
			Body: func(t *harness.T) {
				harness.Equal(t, 2, calc.Add(1, 1))
			},
		},
	}
}

// LinkedCases call through the production dependency.
func LinkedCases() []harness.Case {
	return []harness.Case{
		{
			Name: Linked + "/dummy_function_one_and_one",
			Body: func(t *harness.T) {
				harness.Equal(t, 2, calc.DummyFunction(1, 1))
			},
		},
		{
			Name: Linked + "/add_with_production",
			Body: func(t *harness.T) {
				harness.Equal(t, 2, calc.AddWith(calc.Production{}, 1, 1))
			},
		},
	}
}

// MockedCases call through a double. The last two register a double that is used wrongly and
// pass only when the double reports it.
func MockedCases() []harness.Case {
	return []harness.Case{
		{
			Name:    Mocked + "/expected_call_returns_configured_value",
			Fixture: newDouble,
			SetUp: func(t *harness.T) {
				double(t).Method.DummyFunction.Expect(1, 1).Return(2).Times(1)
			},
			Body: func(t *harness.T) {
				harness.Equal(t, 2, calc.AddWith(double(t).Mock, 1, 1))
			},
		},
		{
			Name:    Mocked + "/nice_double_tolerates_uninteresting_call",
			Fixture: newNiceDouble,
			SetUp: func(t *harness.T) {
				double(t).Method.DummyFunction.Expect(1, 1).Return(2)
			},
			Body: func(t *harness.T) {
				harness.Equal(t, 2, calc.AddWith(double(t).Mock, 1, 1))
				harness.Equal(t, 0, calc.AddWith(double(t).Mock, 3, 4))
			},
		},
		{
			Name:    Mocked + "/unregistered_args_fail_the_case",
			Fixture: newDouble,
			SetUp: func(t *harness.T) {
				double(t).Method.DummyFunction.Expect(1, 1).Return(2).AnyTimes()
			},
			Body: func(t *harness.T) {
				calc.AddWith(double(t).Mock, 3, 4)
			},
			ExpectFailure: true,
			WantFailure:   "unexpected call DummyFunction(3, 4)",
		},
		{
			Name:    Mocked + "/uninvoked_expectation_fails_at_teardown",
			Fixture: newDouble,
			SetUp: func(t *harness.T) {
				double(t).Method.DummyFunction.Expect(1, 1).Return(2).Times(1)
			},
			Body:          func(*harness.T) {},
			ExpectFailure: true,
			WantFailure:   "missing call(s): DummyFunction(1, 1)",
		},
	}
}

func double(t *harness.T) *calctest.DependencyMock {
	dep, ok := t.Fixture().(*calctest.DependencyMock)
	if !ok {
		t.Fatalf("fixture is %T, not a dependency double", t.Fixture())
	}

	return dep
}

func newDouble(t *harness.T) any {
	return calctest.MockDependency(t)
}

func newNiceDouble(t *harness.T) any {
	return calctest.MockDependency(t, seam.Nice())
}
