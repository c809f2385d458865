package rollup

import (
	"math"
	"reflect"
	"testing"
	"time"

	"skill-twin/internal/domain/learning"

	"github.com/google/uuid"
)

func resource(progress float64, completed bool) learning.Resource {
	return learning.Resource{ID: uuid.New(), WatchProgress: progress, Completed: completed}
}

func module(hours float64, resources ...learning.Resource) learning.Module {
	return learning.Module{
		ID:             uuid.New(),
		EstimatedHours: hours,
		Status:         learning.StatusNotStarted,
		Resources:      resources,
	}
}

func TestRecompute_TwoModuleCompletion(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r := learning.Roadmap{
		ID: uuid.New(),
		Modules: []learning.Module{
			module(10, resource(1.0, true)),
			module(6, resource(1.0, true)),
		},
	}

	out := Recompute(r, now)
	if out.OverallProgress != 1.0 {
		t.Fatalf("expected overall progress 1.0, got %f", out.OverallProgress)
	}
	if !out.Completed {
		t.Fatalf("expected roadmap completed")
	}
	if out.CompletedAt == nil || !out.CompletedAt.Equal(now) {
		t.Fatalf("expected completed_at stamped at %v, got %v", now, out.CompletedAt)
	}
	if math.Abs(out.HoursCompleted-16) > 1e-9 {
		t.Fatalf("expected 16 hours completed, got %f", out.HoursCompleted)
	}
	for _, m := range out.Modules {
		if m.Status != learning.StatusCompleted {
			t.Fatalf("expected all modules completed, got %s", m.Status)
		}
		if m.StartedAt == nil || m.CompletedAt == nil {
			t.Fatalf("expected module timestamps stamped")
		}
	}

	// completed_at is stamped exactly once.
	later := now.Add(time.Hour)
	again := Recompute(out, later)
	if !again.CompletedAt.Equal(now) {
		t.Fatalf("expected completed_at to stay %v, got %v", now, again.CompletedAt)
	}
}

func TestRecompute_PartialProgress(t *testing.T) {
	now := time.Now().UTC()
	r := learning.Roadmap{
		Modules: []learning.Module{
			module(10, resource(0.5, false), resource(0.0, false)),
			module(4),
		},
	}

	out := Recompute(r, now)
	if math.Abs(out.Modules[0].Progress-0.25) > 1e-9 {
		t.Fatalf("expected module progress 0.25, got %f", out.Modules[0].Progress)
	}
	if out.Modules[0].Status != learning.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", out.Modules[0].Status)
	}
	if out.Modules[0].StartedAt == nil {
		t.Fatalf("expected started_at stamped on first progress")
	}
	// A module with no resources stays where it was.
	if out.Modules[1].Status != learning.StatusNotStarted || out.Modules[1].Progress != 0 {
		t.Fatalf("expected empty module untouched, got %s %f", out.Modules[1].Status, out.Modules[1].Progress)
	}
	if math.Abs(out.OverallProgress-0.125) > 1e-9 {
		t.Fatalf("expected overall 0.125, got %f", out.OverallProgress)
	}
	// 10h * 0.25 in-progress, nothing completed.
	if math.Abs(out.HoursCompleted-2.5) > 1e-9 {
		t.Fatalf("expected 2.5 hours, got %f", out.HoursCompleted)
	}
	if out.Completed {
		t.Fatalf("roadmap must not complete with work remaining")
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	now := time.Now().UTC()
	r := learning.Roadmap{
		Modules: []learning.Module{
			module(8, resource(0.7, false), resource(1.0, true)),
			module(5, resource(0.2, false)),
		},
	}

	once := Recompute(r, now)
	twice := Recompute(once, now.Add(time.Minute))
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("recompute must be a fixed point without leaf mutations:\nfirst:  %+v\nsecond: %+v", once, twice)
	}
}

func TestRecompute_Monotone(t *testing.T) {
	now := time.Now().UTC()
	r := learning.Roadmap{
		Modules: []learning.Module{
			module(8, resource(0.3, false), resource(0.6, false)),
		},
	}

	before := Recompute(r, now)

	r.Modules[0].Resources[0].WatchProgress = 1.0
	r.Modules[0].Resources[0].Completed = true
	after := Recompute(r, now)

	if after.Modules[0].Progress < before.Modules[0].Progress {
		t.Fatalf("module progress decreased: %f -> %f", before.Modules[0].Progress, after.Modules[0].Progress)
	}
	if after.OverallProgress < before.OverallProgress {
		t.Fatalf("overall progress decreased: %f -> %f", before.OverallProgress, after.OverallProgress)
	}
}

func TestRecompute_SkippedIsTerminal(t *testing.T) {
	now := time.Now().UTC()
	m := module(5, resource(1.0, true))
	m.Status = learning.StatusSkipped
	m.Progress = 0.4
	r := learning.Roadmap{Modules: []learning.Module{m}}

	out := Recompute(r, now)
	if out.Modules[0].Status != learning.StatusSkipped {
		t.Fatalf("skipped module must stay skipped, got %s", out.Modules[0].Status)
	}
	if out.Modules[0].Progress != 0.4 {
		t.Fatalf("skipped module progress must not be recomputed, got %f", out.Modules[0].Progress)
	}
	if out.Completed {
		t.Fatalf("a skipped module does not complete the roadmap")
	}
}

func TestRecompute_EmptyRoadmap(t *testing.T) {
	out := Recompute(learning.Roadmap{}, time.Now().UTC())
	if out.OverallProgress != 0 || out.HoursCompleted != 0 || out.Completed {
		t.Fatalf("expected zeroed aggregates for empty roadmap: %+v", out)
	}
}

func TestRecompute_LeafRegressionClearsCompletion(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r := learning.Roadmap{
		ID: uuid.New(),
		Modules: []learning.Module{
			module(10, resource(1.0, true)),
		},
	}

	done := Recompute(r, now)
	if !done.Completed || done.Modules[0].Status != learning.StatusCompleted {
		t.Fatalf("setup: expected completed roadmap, got completed=%v status=%s", done.Completed, done.Modules[0].Status)
	}

	// Re-watching the resource regresses the leaf; every aggregate
	// above it must follow down, not just up.
	done.Modules[0].Resources[0].WatchProgress = 0.2
	done.Modules[0].Resources[0].Completed = false

	out := Recompute(done, now.Add(time.Hour))
	if out.Completed {
		t.Fatalf("expected roadmap un-completed after leaf regression")
	}
	if out.CompletedAt != nil {
		t.Fatalf("expected completed_at cleared, got %v", out.CompletedAt)
	}
	if out.OverallProgress != 0.2 {
		t.Fatalf("expected overall progress 0.2, got %f", out.OverallProgress)
	}
	if out.Modules[0].Status != learning.StatusInProgress {
		t.Fatalf("expected module back to in_progress, got %s", out.Modules[0].Status)
	}
	if out.Modules[0].CompletedAt != nil {
		t.Fatalf("expected module completed_at cleared, got %v", out.Modules[0].CompletedAt)
	}
}

func TestRecompute_FullRegressionResetsToNotStarted(t *testing.T) {
	now := time.Now().UTC()
	r := learning.Roadmap{
		Modules: []learning.Module{
			module(5, resource(1.0, true)),
		},
	}

	done := Recompute(r, now)
	done.Modules[0].Resources[0].WatchProgress = 0
	done.Modules[0].Resources[0].Completed = false

	out := Recompute(done, now)
	if out.Modules[0].Status != learning.StatusNotStarted {
		t.Fatalf("expected module not_started after full reset, got %s", out.Modules[0].Status)
	}
	if out.OverallProgress != 0 || out.Completed {
		t.Fatalf("expected zeroed roadmap, got progress=%f completed=%v", out.OverallProgress, out.Completed)
	}
}
