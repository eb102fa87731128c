package wipe

import (
	"errors"
	"strings"
	"testing"
)

// fakes

type fakeStore struct {
	deleted []string
	delErr  map[string]error // per-key delete errors
}

func (f *fakeStore) Delete(key string) error {
	if err, ok := f.delErr[key]; ok {
		return err
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func TestExecuteRemovesEveryKey(t *testing.T) {
	s := &fakeStore{}
	result := Execute(s)

	if result.HasErrors() {
		t.Fatalf("unexpected errors: %s", result.Summary())
	}
	if len(s.deleted) != len(walletKeys) {
		t.Fatalf("deleted %d keys, want %d", len(s.deleted), len(walletKeys))
	}
	for i, key := range walletKeys {
		if s.deleted[i] != key {
			t.Errorf("deleted[%d] = %q, want %q", i, s.deleted[i], key)
		}
	}
}

func TestExecuteSeededGoesLast(t *testing.T) {
	s := &fakeStore{}
	Execute(s)

	if s.deleted[len(s.deleted)-1] != "seeded" {
		t.Errorf("last deleted key = %q, want seeded", s.deleted[len(s.deleted)-1])
	}
}

func TestExecuteContinuesPastFailures(t *testing.T) {
	s := &fakeStore{
		delErr: map[string]error{"balance": errors.New("disk gone")},
	}
	result := Execute(s)

	if !result.HasErrors() {
		t.Fatal("result should report the failed step")
	}
	// everything after the failure was still attempted
	found := false
	for _, key := range s.deleted {
		if key == "seeded" {
			found = true
		}
	}
	if !found {
		t.Error("later keys should still be removed after a failure")
	}
}

func TestSummaryListsFailedSteps(t *testing.T) {
	s := &fakeStore{
		delErr: map[string]error{"contacts": errors.New("disk gone")},
	}
	result := Execute(s)
	summary := result.Summary()

	if !strings.Contains(summary, "with errors") {
		t.Error("summary should flag errors")
	}
	if !strings.Contains(summary, "remove contacts: disk gone") {
		t.Errorf("summary should name the failed step, got %q", summary)
	}
}

func TestPlanMatchesExecution(t *testing.T) {
	plan := Plan()
	s := &fakeStore{}
	result := Execute(s)

	if len(plan) != len(result.Steps) {
		t.Fatalf("plan has %d steps, execution has %d", len(plan), len(result.Steps))
	}
	for i := range plan {
		if plan[i] != result.Steps[i].Description {
			t.Errorf("step %d: plan %q, execution %q", i, plan[i], result.Steps[i].Description)
		}
	}
}
