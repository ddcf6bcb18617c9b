// Package match provides argument matchers for seam expectations.
// Any gomega matcher works in the same positions:
//
//	dep.Method.DummyFunction.Match(match.InRange(0, 9), gomega.BeNumerically(">", 0)).Return(2)
package match

import (
	"errors"
	"fmt"
	"reflect"
)

// errTypeMismatch is a sentinel error for type assertion failures.
var errTypeMismatch = errors.New("type mismatch")

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// BeAny is a matcher that matches any value.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// Eq matches values deeply equal to expected. Plain values already compare this way; Eq is for
// mixing with other matchers in a single call.
func Eq(expected any) Matcher {
	return eqMatcher{expected: expected}
}

// InRange matches ints in [low, high].
func InRange(low, high int) Matcher {
	return Satisfy(func(val int) error {
		if val < low || val > high {
			//nolint:err113 // validation error with dynamic context
			return fmt.Errorf("%d is outside [%d, %d]", val, low, high)
		}

		return nil
	})
}

// Satisfy returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	dep.Method.DummyFunction.Match(match.Satisfy(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	}), match.BeAny)
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

type anyMatcher struct{}

func (anyMatcher) FailureMessage(any) string {
	return ""
}

func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

func (anyMatcher) String() string {
	return "<any>"
}

type eqMatcher struct {
	expected any
}

func (m eqMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %#v, got %#v", m.expected, actual)
}

func (m eqMatcher) Match(actual any) (bool, error) {
	return reflect.DeepEqual(actual, m.expected), nil
}

func (m eqMatcher) String() string {
	return fmt.Sprintf("%#v", m.expected)
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
}

// FailureMessage runs the predicate again rather than remembering the last Match, so one matcher
// can be shared between concurrent callers.
func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if val, ok := actual.(T); ok {
		if err := m.predicate(val); err != nil {
			return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, err)
		}
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)
	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	return m.predicate(val) == nil, nil
}
