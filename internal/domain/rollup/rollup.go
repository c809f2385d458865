package rollup

import (
	"time"

	"skill-twin/internal/domain/learning"
)

// Recompute derives module and roadmap progress from current leaf
// state, top-down and in full. It never patches incrementally, so the
// aggregates can never drift from the resources underneath them.
// Calling it again without a leaf mutation is a fixed point.
func Recompute(r learning.Roadmap, now time.Time) learning.Roadmap {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	// Copy the module slice so callers keep their input untouched.
	modules := make([]learning.Module, len(r.Modules))
	for i := range r.Modules {
		modules[i] = recomputeModule(r.Modules[i], now)
	}
	r.Modules = modules

	if len(r.Modules) == 0 {
		r.OverallProgress = 0
		r.HoursCompleted = 0
		r.Completed = false
		r.CompletedAt = nil
		return r
	}

	progressSum := 0.0
	hours := 0.0
	allCompleted := true
	for _, m := range r.Modules {
		progressSum += m.Progress
		switch m.Status {
		case learning.StatusCompleted:
			hours += m.EstimatedHours
		case learning.StatusInProgress:
			hours += m.EstimatedHours * m.Progress
		}
		if m.Status != learning.StatusCompleted {
			allCompleted = false
		}
	}

	r.OverallProgress = progressSum / float64(len(r.Modules))
	r.HoursCompleted = hours

	if allCompleted {
		r.Completed = true
		if r.CompletedAt == nil {
			t := now
			r.CompletedAt = &t
		}
	} else {
		// A leaf regression un-completes the roadmap; the flag tracks
		// the children in both directions.
		r.Completed = false
		r.CompletedAt = nil
	}

	return r
}

func recomputeModule(m learning.Module, now time.Time) learning.Module {
	// Skipped is terminal and only ever set externally.
	if m.Status == learning.StatusSkipped {
		return m
	}

	if len(m.Resources) == 0 {
		m.Progress = 0
		return m
	}

	completedCount := 0
	progressSum := 0.0
	for _, res := range m.Resources {
		progressSum += res.WatchProgress
		if res.Completed {
			completedCount++
		}
	}

	m.Progress = progressSum / float64(len(m.Resources))

	switch {
	case completedCount == len(m.Resources):
		m.Status = learning.StatusCompleted
		if m.CompletedAt == nil {
			t := now
			m.CompletedAt = &t
		}
		if m.StartedAt == nil {
			t := now
			m.StartedAt = &t
		}
	case completedCount > 0 || m.Progress > 0:
		m.Status = learning.StatusInProgress
		m.CompletedAt = nil
		if m.StartedAt == nil {
			t := now
			m.StartedAt = &t
		}
	default:
		m.Status = learning.StatusNotStarted
		m.CompletedAt = nil
	}

	return m
}
