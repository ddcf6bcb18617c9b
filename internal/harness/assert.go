package harness

import (
	"fmt"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/onsi/gomega"
)

// Reporter is what the assertions report into. *T implements it.
type Reporter interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// Equal reports a failure when got does not equal want, and carries on. It returns whether they matched.
func Equal(t Reporter, want, got any) bool {
	t.Helper()

	msg, ok := compare(want, got)
	if !ok {
		t.Errorf("%s", msg)
	}

	return ok
}

// Require is Equal, but stops the hook on a mismatch.
func Require(t Reporter, want, got any) {
	t.Helper()

	if msg, ok := compare(want, got); !ok {
		t.Fatalf("%s", msg)
	}
}

func compare(want, got any) (string, bool) {
	matcher := gomega.Equal(want)

	ok, err := matcher.Match(got)
	if err != nil {
		return err.Error(), false
	}

	if ok {
		return "", true
	}

	wantStr, wantIsStr := want.(string)
	gotStr, gotIsStr := got.(string)

	if wantIsStr && gotIsStr && (strings.Contains(wantStr, "\n") || strings.Contains(gotStr, "\n")) {
		return fmt.Sprintf("strings differ:\n%s", textdiff.Unified("want", "got", wantStr, gotStr)), false
	}

	return matcher.FailureMessage(got), false
}
