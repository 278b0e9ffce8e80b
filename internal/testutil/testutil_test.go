package testutil

import (
	"errors"
	"testing"
	"time"
)

func TestContextHasDeadline(t *testing.T) {
	ctx := Context(t, time.Minute)
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("expected a deadline")
	}
	if until := time.Until(deadline); until <= 0 || until > time.Minute {
		t.Fatalf("unexpected deadline in %s", until)
	}
	if ctx.Err() != nil {
		t.Fatalf("context done early: %v", ctx.Err())
	}
}

func TestWaitForRetriesUntilReady(t *testing.T) {
	calls := 0
	WaitFor(t, time.Second, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if calls != 3 {
		t.Fatalf("expected 3 checks, got %d", calls)
	}
}
