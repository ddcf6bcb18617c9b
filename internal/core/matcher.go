package core

import (
	"fmt"
	"reflect"
)

// Matcher decides whether an actual argument is acceptable.
// Compatible with gomega.GomegaMatcher via duck typing.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// Any returns a matcher that matches any value.
func Any() Matcher {
	return anyMatcher{}
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, uses reflect.DeepEqual for comparison.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
// A matcher that panics counts as a mismatch; the panic does not escape.
func MatchValue(actual, expected any) (success bool, failureMsg string) {
	defer func() {
		if r := recover(); r != nil {
			success = false
			failureMsg = fmt.Sprintf("matcher panicked on %#v: %v", actual, r)
		}
	}()

	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	if reflect.DeepEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %#v, got %#v", expected, actual)
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

// describeArg renders an expected argument for messages.
func describeArg(arg any) string {
	switch typed := arg.(type) {
	case fmt.Stringer:
		return typed.String()
	case Matcher:
		return fmt.Sprintf("<%T>", typed)
	default:
		return fmt.Sprintf("%#v", typed)
	}
}
