package dto

import (
	"time"

	"skill-twin/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	CategoryID    *uuid.UUID  `json:"category_id,omitempty"`
	Keywords      []string    `json:"keywords"`
	Prerequisites []uuid.UUID `json:"prerequisites"`
	RelatedSkills []uuid.UUID `json:"related_skills"`
}

type MasteryResponse struct {
	SkillID         uuid.UUID `json:"skill_id"`
	SkillName       string    `json:"skill_name,omitempty"`
	MasteryLevel    float64   `json:"mastery_level"`
	ConfidenceScore float64   `json:"confidence_score"`
	Source          string    `json:"source"`
	LastUpdated     time.Time `json:"last_updated"`
}

func NewSkillResponses(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, s := range items {
		out = append(out, SkillResponse{
			ID:            s.ID,
			Name:          s.Name,
			CategoryID:    s.CategoryID,
			Keywords:      s.Keywords,
			Prerequisites: s.Prerequisites,
			RelatedSkills: s.RelatedSkills,
		})
	}
	return out
}

func NewMasteryResponse(r skill.MasteryRecord) MasteryResponse {
	return MasteryResponse{
		SkillID:         r.SkillID,
		SkillName:       r.SkillName,
		MasteryLevel:    r.MasteryLevel,
		ConfidenceScore: r.ConfidenceScore,
		Source:          r.Source,
		LastUpdated:     r.LastUpdated,
	}
}

func NewMasteryResponses(items []skill.MasteryRecord) []MasteryResponse {
	out := make([]MasteryResponse, 0, len(items))
	for _, r := range items {
		out = append(out, NewMasteryResponse(r))
	}
	return out
}
