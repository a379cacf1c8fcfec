package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

var errLocked = errors.New("database is locked")

func TestWrapKeepsChain(t *testing.T) {
	err := Wrapf(Wrap(errLocked, "increment counter"), "issue %s identifier", "job")
	if !errors.Is(err, errLocked) {
		t.Fatalf("errors.Is() = false for %v", err)
	}
	if got := err.Error(); got != "issue job identifier: increment counter: database is locked" {
		t.Fatalf("Error() = %q", got)
	}
	if Wrap(nil, "x") != nil || Wrapf(nil, "x %d", 1) != nil {
		t.Fatalf("wrapping nil must stay nil")
	}
}

func TestErrorChainStringsFollowsJoin(t *testing.T) {
	err := Wrap(errors.Join(errLocked, errors.New("entropy exhausted")), "issue degraded identifier")

	chain := ErrorChainStrings(err)
	if len(chain) != 4 {
		t.Fatalf("chain = %q, want 4 entries", chain)
	}
	if chain[2] != "database is locked" || chain[3] != "entropy exhausted" {
		t.Fatalf("chain = %q", chain)
	}
}

func TestIsContext(t *testing.T) {
	if !IsContext(fmt.Errorf("tx: %w", context.Canceled)) {
		t.Fatalf("IsContext(canceled) = false")
	}
	if !IsContext(Wrap(context.DeadlineExceeded, "query")) {
		t.Fatalf("IsContext(deadline) = false")
	}
	if IsContext(errLocked) {
		t.Fatalf("IsContext(locked) = true")
	}
}

func TestWithStackCapturesOnce(t *testing.T) {
	first := WithStack(errLocked)
	second := WithStack(Wrap(first, "outer"))

	var se *StackError
	if !errors.As(second, &se) || se != first {
		t.Fatalf("WithStack() captured a second stack")
	}
}
