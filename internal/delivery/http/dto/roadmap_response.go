package dto

import (
	"time"

	"skill-twin/internal/domain/learning"
	"skill-twin/internal/usecase"

	"github.com/google/uuid"
)

type ResourceResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	URL             string    `json:"url"`
	DurationSeconds int       `json:"duration_seconds"`
	WatchProgress   float64   `json:"watch_progress"`
	Completed       bool      `json:"completed"`
}

type ModuleResponse struct {
	ID             uuid.UUID          `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	EstimatedHours float64            `json:"estimated_hours"`
	Progress       float64            `json:"progress"`
	Status         string             `json:"status"`
	StartedAt      *time.Time         `json:"started_at,omitempty"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
	Resources      []ResourceResponse `json:"resources"`
}

type RoadmapResponse struct {
	ID               uuid.UUID        `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	TargetCareerRole string           `json:"target_career_role"`
	EstimatedHours   float64          `json:"estimated_hours"`
	OverallProgress  float64          `json:"overall_progress"`
	HoursCompleted   float64          `json:"hours_completed"`
	Completed        bool             `json:"completed"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
	Modules          []ModuleResponse `json:"modules"`
}

func NewRoadmapResponse(r learning.Roadmap) RoadmapResponse {
	modules := make([]ModuleResponse, 0, len(r.Modules))
	for _, m := range r.Modules {
		resources := make([]ResourceResponse, 0, len(m.Resources))
		for _, res := range m.Resources {
			resources = append(resources, ResourceResponse{
				ID:              res.ID,
				Title:           res.Title,
				URL:             res.URL,
				DurationSeconds: res.DurationSeconds,
				WatchProgress:   res.WatchProgress,
				Completed:       res.Completed,
			})
		}
		modules = append(modules, ModuleResponse{
			ID:             m.ID,
			Title:          m.Title,
			Description:    m.Description,
			EstimatedHours: m.EstimatedHours,
			Progress:       m.Progress,
			Status:         string(m.Status),
			StartedAt:      m.StartedAt,
			CompletedAt:    m.CompletedAt,
			Resources:      resources,
		})
	}

	return RoadmapResponse{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		TargetCareerRole: r.TargetCareerRole,
		EstimatedHours:   r.EstimatedHours,
		OverallProgress:  r.OverallProgress,
		HoursCompleted:   r.HoursCompleted,
		Completed:        r.Completed,
		CompletedAt:      r.CompletedAt,
		Modules:          modules,
	}
}

type NextResourceModule struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Progress float64   `json:"progress"`
}

type NextResourceItem struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	URL             string    `json:"url"`
	DurationSeconds int       `json:"duration_seconds"`
	WatchProgress   float64   `json:"watch_progress"`
}

type NextResourceResponse struct {
	AllCompleted bool                `json:"all_completed"`
	Module       *NextResourceModule `json:"module,omitempty"`
	Resource     *NextResourceItem   `json:"resource,omitempty"`
}

func NewNextResourceResponse(v usecase.NextResourceView) NextResourceResponse {
	if v.AllCompleted {
		return NextResourceResponse{AllCompleted: true}
	}
	return NextResourceResponse{
		Module: &NextResourceModule{
			ID:       v.Module.ID,
			Title:    v.Module.Title,
			Progress: v.Module.Progress,
		},
		Resource: &NextResourceItem{
			ID:              v.Resource.ID,
			Title:           v.Resource.Title,
			URL:             v.Resource.URL,
			DurationSeconds: v.Resource.DurationSeconds,
			WatchProgress:   v.Resource.WatchProgress,
		},
	}
}

func NewRoadmapResponses(items []learning.Roadmap) []RoadmapResponse {
	out := make([]RoadmapResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewRoadmapResponse(r))
	}
	return out
}
