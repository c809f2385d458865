package learning

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	// StatusSkipped is terminal and only ever set by explicit external
	// action, never by the roll-up recompute.
	StatusSkipped Status = "skipped"
)

type Resource struct {
	ID              uuid.UUID
	ModuleID        uuid.UUID
	Title           string
	URL             string
	DurationSeconds int
	OrderIndex      int
	WatchProgress   float64
	Completed       bool
}

type Module struct {
	ID             uuid.UUID
	RoadmapID      uuid.UUID
	Title          string
	Description    string
	EstimatedHours float64
	OrderIndex     int
	Progress       float64
	Status         Status
	StartedAt      *time.Time
	CompletedAt    *time.Time
	Resources      []Resource
}

type Roadmap struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Title            string
	Description      string
	TargetCareerRole string
	EstimatedHours   float64
	OverallProgress  float64
	HoursCompleted   float64
	Completed        bool
	CompletedAt      *time.Time
	CreatedAt        time.Time
	Modules          []Module
}
