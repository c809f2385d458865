package dto

import (
	"skill-twin/internal/domain/alignment"
	"skill-twin/internal/usecase"

	"github.com/google/uuid"
)

type SkillGapResponse struct {
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	CurrentLevel  float64   `json:"current_level"`
	RequiredLevel float64   `json:"required_level"`
	Gap           float64   `json:"gap"`
	Importance    float64   `json:"importance"`
	IsMandatory   bool      `json:"is_mandatory"`
}

type StrengthResponse struct {
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	CurrentLevel  float64   `json:"current_level"`
	RequiredLevel float64   `json:"required_level"`
	Excess        float64   `json:"excess"`
	Importance    float64   `json:"importance"`
}

type RecommendationResponse struct {
	Type        string  `json:"type"`
	SkillName   string  `json:"skill_name"`
	Priority    string  `json:"priority"`
	Action      string  `json:"action"`
	TargetLevel float64 `json:"target_level"`
	CurrentGap  float64 `json:"current_gap"`
}

type PrioritySkillResponse struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	Gap       float64   `json:"gap"`
}

type AlignmentResponse struct {
	OverallReadiness     float64                  `json:"overall_readiness"`
	SkillMatchScore      float64                  `json:"skill_match_score"`
	ExperienceMatchScore float64                  `json:"experience_match_score"`
	MandatoryMet         bool                     `json:"mandatory_met"`
	SkillGaps            []SkillGapResponse       `json:"skill_gaps"`
	Strengths            []StrengthResponse       `json:"strengths"`
	Recommendations      []RecommendationResponse `json:"recommendations"`
	PrioritySkills       []PrioritySkillResponse  `json:"priority_skills"`
	EstimatedTimeToReady float64                  `json:"estimated_hours_to_ready"`
}

type RoleAlignmentResponse struct {
	RoleID          uuid.UUID `json:"role_id"`
	RoleTitle       string    `json:"role_title"`
	RoleDescription string    `json:"role_description"`
	AlignmentResponse
}

type RecurringGapResponse struct {
	SkillName       string  `json:"skill_name"`
	AppearsInRoles  int     `json:"appears_in_roles"`
	AverageGap      float64 `json:"average_gap"`
	ImportanceTotal float64 `json:"importance_total"`
}

type CareerRecommendationsResponse struct {
	ReadyRoles     []RoleAlignmentResponse `json:"ready_roles"`
	StretchRoles   []RoleAlignmentResponse `json:"stretch_roles"`
	PrioritySkills []RecurringGapResponse  `json:"priority_skills"`
}

type RoleResponse struct {
	ID              uuid.UUID                 `json:"id"`
	Title           string                    `json:"title"`
	Description     string                    `json:"description"`
	Industry        string                    `json:"industry"`
	Domain          string                    `json:"domain"`
	ExperienceLevel string                    `json:"experience_level"`
	DemandScore     float64                   `json:"demand_score"`
	Requirements    []RoleRequirementResponse `json:"requirements"`
}

type RoleRequirementResponse struct {
	SkillID       uuid.UUID `json:"skill_id"`
	SkillName     string    `json:"skill_name"`
	Category      string    `json:"category"`
	RequiredLevel float64   `json:"required_level"`
	Importance    float64   `json:"importance"`
	IsMandatory   bool      `json:"is_mandatory"`
}

func NewAlignmentResponse(r alignment.Result) AlignmentResponse {
	gaps := make([]SkillGapResponse, 0, len(r.SkillGaps))
	for _, g := range r.SkillGaps {
		gaps = append(gaps, SkillGapResponse{
			SkillID:       g.SkillID,
			SkillName:     g.SkillName,
			CurrentLevel:  g.CurrentLevel,
			RequiredLevel: g.RequiredLevel,
			Gap:           g.Gap,
			Importance:    g.Importance,
			IsMandatory:   g.IsMandatory,
		})
	}
	strengths := make([]StrengthResponse, 0, len(r.Strengths))
	for _, s := range r.Strengths {
		strengths = append(strengths, StrengthResponse{
			SkillID:       s.SkillID,
			SkillName:     s.SkillName,
			CurrentLevel:  s.CurrentLevel,
			RequiredLevel: s.RequiredLevel,
			Excess:        s.Excess,
			Importance:    s.Importance,
		})
	}
	recs := make([]RecommendationResponse, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		recs = append(recs, RecommendationResponse{
			Type:        rec.Type,
			SkillName:   rec.SkillName,
			Priority:    rec.Priority,
			Action:      rec.Action,
			TargetLevel: rec.TargetLevel,
			CurrentGap:  rec.CurrentGap,
		})
	}
	priority := make([]PrioritySkillResponse, 0, len(r.PrioritySkills))
	for _, p := range r.PrioritySkills {
		priority = append(priority, PrioritySkillResponse{SkillID: p.SkillID, SkillName: p.SkillName, Gap: p.Gap})
	}

	return AlignmentResponse{
		OverallReadiness:     r.OverallReadiness,
		SkillMatchScore:      r.SkillMatchScore,
		ExperienceMatchScore: r.ExperienceMatchScore,
		MandatoryMet:         r.MandatoryMet,
		SkillGaps:            gaps,
		Strengths:            strengths,
		Recommendations:      recs,
		PrioritySkills:       priority,
		EstimatedTimeToReady: r.EstimatedTimeToReady,
	}
}

func NewRoleAlignmentResponses(items []alignment.RoleAlignment) []RoleAlignmentResponse {
	out := make([]RoleAlignmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, RoleAlignmentResponse{
			RoleID:            a.RoleID,
			RoleTitle:         a.RoleTitle,
			RoleDescription:   a.RoleDescription,
			AlignmentResponse: NewAlignmentResponse(a.Result),
		})
	}
	return out
}

func NewCareerRecommendationsResponse(r alignment.CareerRecommendations) CareerRecommendationsResponse {
	gaps := make([]RecurringGapResponse, 0, len(r.PrioritySkills))
	for _, g := range r.PrioritySkills {
		gaps = append(gaps, RecurringGapResponse{
			SkillName:       g.SkillName,
			AppearsInRoles:  g.AppearsInRoles,
			AverageGap:      g.AverageGap,
			ImportanceTotal: g.ImportanceTotal,
		})
	}
	return CareerRecommendationsResponse{
		ReadyRoles:     NewRoleAlignmentResponses(r.ReadyRoles),
		StretchRoles:   NewRoleAlignmentResponses(r.StretchRoles),
		PrioritySkills: gaps,
	}
}

func NewRoleResponses(items []usecase.RoleWithRequirements) []RoleResponse {
	out := make([]RoleResponse, 0, len(items))
	for _, it := range items {
		reqs := make([]RoleRequirementResponse, 0, len(it.Requirements))
		for _, r := range it.Requirements {
			reqs = append(reqs, RoleRequirementResponse{
				SkillID:       r.SkillID,
				SkillName:     r.SkillName,
				Category:      r.Category,
				RequiredLevel: r.RequiredLevel,
				Importance:    r.Importance,
				IsMandatory:   r.IsMandatory,
			})
		}
		out = append(out, RoleResponse{
			ID:              it.Role.ID,
			Title:           it.Role.Title,
			Description:     it.Role.Description,
			Industry:        it.Role.Industry,
			Domain:          it.Role.Domain,
			ExperienceLevel: string(it.Role.ExperienceLevel),
			DemandScore:     it.Role.DemandScore,
			Requirements:    reqs,
		})
	}
	return out
}
