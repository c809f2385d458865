package dto

import (
	"time"

	"skill-twin/internal/usecase"

	"github.com/google/uuid"
)

type AssessmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	SkillID         uuid.UUID  `json:"skill_id"`
	Score           float64    `json:"score"`
	Passed          bool       `json:"passed"`
	CompletedAt     *time.Time `json:"completed_at"`
	MasteryLevel    float64    `json:"mastery_level"`
	ConfidenceScore float64    `json:"confidence_score"`
}

func NewAssessmentResponse(r usecase.AssessmentResult) AssessmentResponse {
	return AssessmentResponse{
		ID:              r.Assessment.ID,
		SkillID:         r.Assessment.SkillID,
		Score:           r.Assessment.Score,
		Passed:          r.Passed,
		CompletedAt:     r.Assessment.CompletedAt,
		MasteryLevel:    r.Mastery.MasteryLevel,
		ConfidenceScore: r.Mastery.ConfidenceScore,
	}
}
