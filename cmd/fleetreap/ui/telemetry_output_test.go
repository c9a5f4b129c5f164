package ui

import (
	"testing"

	"fleetreap/internal/telemetry"
)

func TestStepObserverFollowsPlanOrder(t *testing.T) {
	t.Parallel()

	snapshots := make([]stepSnapshot, 0, 8)
	observer := newStepObserver(func(snapshot stepSnapshot) {
		copied := stepSnapshot{Steps: append([]stepState(nil), snapshot.Steps...)}
		snapshots = append(snapshots, copied)
	})

	observer.onPlan(telemetry.Plan{Steps: []telemetry.PlannedStep{
		{ID: "clock-check", Title: "checking host clock"},
		{ID: "reap", Title: "reaping fleet"},
	}})
	observer.onStepStart("clock-check")
	observer.onStepEnd("clock-check", false, "")
	observer.onStepStart("reap")
	observer.onStepEnd("reap", false, "")

	if len(snapshots) == 0 {
		t.Fatal("expected telemetry snapshots")
	}

	final := snapshots[len(snapshots)-1]
	if len(final.Steps) != 2 {
		t.Fatalf("step count = %d, want 2", len(final.Steps))
	}
	if final.Steps[0].ID != "clock-check" || final.Steps[1].ID != "reap" {
		t.Fatalf("step order = [%s %s], want plan order", final.Steps[0].ID, final.Steps[1].ID)
	}
	for _, step := range final.Steps {
		if step.Status != stepDone {
			t.Errorf("step %s status = %q, want done", step.ID, step.Status)
		}
	}
}

func TestStepObserverRecordsFailure(t *testing.T) {
	t.Parallel()

	snapshots := make([]stepSnapshot, 0, 4)
	observer := newStepObserver(func(snapshot stepSnapshot) {
		copied := stepSnapshot{Steps: append([]stepState(nil), snapshot.Steps...)}
		snapshots = append(snapshots, copied)
	})

	observer.onPlan(telemetry.Plan{Steps: []telemetry.PlannedStep{{ID: "reap", Title: "reaping fleet"}}})
	observer.onStepStart("reap")
	observer.onStepEnd("reap", true, "daemon unreachable")

	final := snapshots[len(snapshots)-1]
	step, ok := stepByID(final, "reap")
	if !ok {
		t.Fatal("missing reap step")
	}
	if step.Status != stepFailed {
		t.Fatalf("status = %q, want failed", step.Status)
	}
	if step.Message != "daemon unreachable" {
		t.Fatalf("message = %q, want the failure text", step.Message)
	}
}

func TestStepObserverTracksUnplannedStep(t *testing.T) {
	t.Parallel()

	snapshots := make([]stepSnapshot, 0, 4)
	observer := newStepObserver(func(snapshot stepSnapshot) {
		copied := stepSnapshot{Steps: append([]stepState(nil), snapshot.Steps...)}
		snapshots = append(snapshots, copied)
	})

	observer.onStepStart("surprise")
	observer.onStepEnd("surprise", false, "")

	final := snapshots[len(snapshots)-1]
	step, ok := stepByID(final, "surprise")
	if !ok {
		t.Fatal("missing unplanned step")
	}
	if step.Status != stepDone {
		t.Fatalf("status = %q, want done", step.Status)
	}
	if step.Title != "surprise" {
		t.Fatalf("title = %q, want the id as fallback", step.Title)
	}
}

func stepByID(snapshot stepSnapshot, id string) (stepState, bool) {
	for _, step := range snapshot.Steps {
		if step.ID == id {
			return step, true
		}
	}
	return stepState{}, false
}
