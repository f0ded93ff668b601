package services

import (
	"errors"
	"testing"
)

func TestRunWritesAllSucceed(t *testing.T) {
	writes := []namedWrite{
		{name: "step_user", fn: func() error { return nil }},
		{name: "step_status", fn: func() error { return nil }},
		{name: "step_end_date", fn: func() error { return nil }},
		{name: "detail_accept", fn: func() error { return nil }},
	}

	outcomes := runWrites(writes)
	if len(outcomes) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if !o.OK {
			t.Errorf("write %s unexpectedly failed: %s", o.Name, o.Error)
		}
	}
}

func TestRunWritesPartialFailure(t *testing.T) {
	// Third write (the detail upsert) fails; the others must still run and
	// the group must not count as completed.
	writes := []namedWrite{
		{name: "step_user", fn: func() error { return nil }},
		{name: "step_status", fn: func() error { return nil }},
		{name: "detail_accept", fn: func() error { return errors.New("connection reset") }},
		{name: "step_end_date", fn: func() error { return nil }},
	}

	result := CompletionResult{Outcomes: runWrites(writes)}
	result.Completed = len(result.Failed()) == 0

	if result.Completed {
		t.Error("group with a failed write must not be marked completed")
	}

	failed := result.Failed()
	if len(failed) != 1 || failed[0] != "detail_accept" {
		t.Errorf("expected only detail_accept to fail, got %v", failed)
	}

	succeeded := 0
	for _, o := range result.Outcomes {
		if o.OK {
			succeeded++
		}
	}
	if succeeded != 3 {
		t.Errorf("expected the other 3 writes to run to completion, got %d", succeeded)
	}
}

func TestRunWritesPreservesOrder(t *testing.T) {
	// Outcomes must line up with the write order regardless of which
	// goroutine finishes first.
	names := []string{"step_user", "step_status", "step_end_date", "detail_accept"}
	var writes []namedWrite
	for _, n := range names {
		writes = append(writes, namedWrite{name: n, fn: func() error { return nil }})
	}

	outcomes := runWrites(writes)
	for i, o := range outcomes {
		if o.Name != names[i] {
			t.Errorf("outcome %d: expected %s, got %s", i, names[i], o.Name)
		}
	}
}

func TestRunWritesAllFail(t *testing.T) {
	writes := []namedWrite{
		{name: "step_user", fn: func() error { return errors.New("timeout") }},
		{name: "step_status", fn: func() error { return errors.New("timeout") }},
	}

	result := CompletionResult{Outcomes: runWrites(writes)}
	if len(result.Failed()) != 2 {
		t.Errorf("expected both writes reported failed, got %v", result.Failed())
	}
}
