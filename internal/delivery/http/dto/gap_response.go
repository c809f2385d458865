package dto

import (
	"skill-twin/internal/domain/gap"

	"github.com/google/uuid"
)

type GapResponse struct {
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	Category      string    `json:"category"`
	CurrentLevel  float64   `json:"current_level"`
	RequiredLevel float64   `json:"required_level"`
	Gap           float64   `json:"gap"`
	Importance    float64   `json:"importance"`
	IsMandatory   bool      `json:"is_mandatory"`
	Severity      string    `json:"severity"`
}

type PriorityEntryResponse struct {
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	PriorityScore float64   `json:"priority_score"`
	Reason        string    `json:"reason"`
}

type GoalResponse struct {
	SkillName   string  `json:"skill_name"`
	TargetLevel float64 `json:"target_level"`
	Timeline    string  `json:"timeline"`
}

type CareerImpactResponse struct {
	BlockedByGaps    bool    `json:"blocked_by_gaps"`
	ReadinessImpact  float64 `json:"readiness_impact"`
	TotalGapExposure float64 `json:"total_gap_exposure"`
}

type GapReportResponse struct {
	TotalGaps             int                      `json:"total_gaps"`
	CriticalGaps          []GapResponse            `json:"critical_gaps"`
	ModerateGaps          []GapResponse            `json:"moderate_gaps"`
	MinorGaps             []GapResponse            `json:"minor_gaps"`
	GapsByCategory        map[string][]GapResponse `json:"gaps_by_category"`
	LearningPriority      []PriorityEntryResponse  `json:"learning_priority"`
	ImmediateActions      []string                 `json:"immediate_actions"`
	ShortTermGoals        []GoalResponse           `json:"short_term_goals"`
	LongTermGoals         []GoalResponse           `json:"long_term_goals"`
	CareerImpact          CareerImpactResponse     `json:"career_impact"`
	EstimatedHoursToClose float64                  `json:"estimated_hours_to_close"`
}

func NewGapReportResponse(r gap.Report) GapReportResponse {
	byCategory := make(map[string][]GapResponse, len(r.GapsByCategory))
	for cat, gaps := range r.GapsByCategory {
		byCategory[cat] = newGapResponses(gaps)
	}

	priority := make([]PriorityEntryResponse, 0, len(r.LearningPriority))
	for _, p := range r.LearningPriority {
		priority = append(priority, PriorityEntryResponse{
			SkillID:       p.SkillID,
			SkillName:     p.SkillName,
			PriorityScore: p.PriorityScore,
			Reason:        p.Reason,
		})
	}

	return GapReportResponse{
		TotalGaps:        r.TotalGaps,
		CriticalGaps:     newGapResponses(r.CriticalGaps),
		ModerateGaps:     newGapResponses(r.ModerateGaps),
		MinorGaps:        newGapResponses(r.MinorGaps),
		GapsByCategory:   byCategory,
		LearningPriority: priority,
		ImmediateActions: r.ImmediateActions,
		ShortTermGoals:   newGoalResponses(r.ShortTermGoals),
		LongTermGoals:    newGoalResponses(r.LongTermGoals),
		CareerImpact: CareerImpactResponse{
			BlockedByGaps:    r.CareerImpact.BlockedByGaps,
			ReadinessImpact:  r.CareerImpact.ReadinessImpact,
			TotalGapExposure: r.CareerImpact.TotalGapExposure,
		},
		EstimatedHoursToClose: r.EstimatedHoursToClose,
	}
}

func newGapResponses(gaps []gap.Gap) []GapResponse {
	out := make([]GapResponse, 0, len(gaps))
	for _, g := range gaps {
		out = append(out, GapResponse{
			SkillID:       g.SkillID,
			SkillName:     g.SkillName,
			Category:      g.Category,
			CurrentLevel:  g.CurrentLevel,
			RequiredLevel: g.RequiredLevel,
			Gap:           g.Gap,
			Importance:    g.Importance,
			IsMandatory:   g.IsMandatory,
			Severity:      string(g.Severity),
		})
	}
	return out
}

func newGoalResponses(goals []gap.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalResponse{SkillName: g.SkillName, TargetLevel: g.TargetLevel, Timeline: g.Timeline})
	}
	return out
}
