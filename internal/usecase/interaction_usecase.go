package usecase

import (
	"context"
	"errors"

	"skill-twin/internal/domain/skill"
	"skill-twin/internal/repository"

	"github.com/google/uuid"
)

var ErrUnknownInteraction = errors.New("unknown interaction type")

const (
	InteractionCourseCompletion = "course_completion"
	InteractionAssessment       = "assessment"
	InteractionResourceViewed   = "resource_viewed"
	InteractionPractice         = "practice"
)

const (
	newRecordMastery     = 0.1
	newRecordConfidence  = 0.3
	defaultPracticeScore = 0.5
)

type InteractionInput struct {
	SkillID uuid.UUID
	Type    string
	Score   *float64
}

type InteractionUsecase interface {
	RecordInteraction(ctx context.Context, userID uuid.UUID, in InteractionInput) (skill.MasteryRecord, error)
}

type Interaction struct {
	mastery repository.MasteryRepository
	skills  repository.SkillRepository
	twin    TwinUsecase
}

func NewInteractionUsecase(mastery repository.MasteryRepository, skills repository.SkillRepository, twin TwinUsecase) *Interaction {
	return &Interaction{mastery: mastery, skills: skills, twin: twin}
}

// RecordInteraction nudges a user's mastery based on what they just did.
// Assessments overwrite toward the measured score; the other interaction
// types apply small additive bumps.
func (u *Interaction) RecordInteraction(ctx context.Context, userID uuid.UUID, in InteractionInput) (skill.MasteryRecord, error) {
	if userID == uuid.Nil {
		return skill.MasteryRecord{}, ErrUnauthorized
	}
	if in.SkillID == uuid.Nil {
		return skill.MasteryRecord{}, ErrInvalidInput
	}
	if in.Score != nil && (*in.Score < 0 || *in.Score > 1) {
		return skill.MasteryRecord{}, ErrInvalidInput
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return skill.MasteryRecord{}, ErrInternal
	}
	if !exists {
		return skill.MasteryRecord{}, ErrSkillNotFound
	}

	// A first interaction seeds the record at a low but non-zero
	// baseline before the delta lands.
	mastery := newRecordMastery
	confidence := newRecordConfidence
	current, err := u.mastery.FindByUserAndSkill(ctx, userID, in.SkillID)
	if err == nil {
		mastery = current.MasteryLevel
		confidence = current.ConfidenceScore
	} else if !errors.Is(err, repository.ErrMasteryNotFound) {
		return skill.MasteryRecord{}, ErrInternal
	}

	switch in.Type {
	case InteractionCourseCompletion:
		mastery += 0.15
		confidence += 0.1
	case InteractionAssessment:
		if in.Score != nil {
			mastery = (mastery + *in.Score) / 2
			confidence += 0.2
		}
	case InteractionResourceViewed:
		mastery += 0.02
		confidence += 0.01
	case InteractionPractice:
		score := defaultPracticeScore
		if in.Score != nil {
			score = *in.Score
		}
		mastery += 0.05 * score
		confidence += 0.05
	default:
		return skill.MasteryRecord{}, ErrUnknownInteraction
	}

	mastery = clamp01(mastery)
	confidence = clamp01(confidence)

	rec, err := u.mastery.Upsert(ctx, repository.MasteryUpsert{
		UserID:          userID,
		SkillID:         in.SkillID,
		MasteryLevel:    mastery,
		ConfidenceScore: confidence,
		Source:          in.Type,
	})
	if err != nil {
		return skill.MasteryRecord{}, ErrInternal
	}

	if u.twin != nil {
		u.twin.InvalidateTwin(ctx, userID)
	}
	return rec, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
