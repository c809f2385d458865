package usecase

import (
	"context"
	"errors"

	"skill-twin/internal/repository"

	"github.com/google/uuid"
)

// Assessment results overwrite mastery harder than ordinary
// interactions: the measured score dominates the stored level.
const (
	assessmentExistingWeight   = 0.3
	assessmentScoreWeight      = 0.7
	assessmentNewConfidence    = 0.7
	assessmentConfidenceBoost  = 0.1
	assessmentPassingThreshold = 0.6
)

type AssessmentInput struct {
	SkillID uuid.UUID
	Score   float64
}

type AssessmentResult struct {
	Assessment repository.Assessment
	Passed     bool
	Mastery    skillMasteryView
}

type skillMasteryView struct {
	SkillID         uuid.UUID
	MasteryLevel    float64
	ConfidenceScore float64
}

type AssessmentUsecase interface {
	CompleteAssessment(ctx context.Context, userID uuid.UUID, in AssessmentInput) (AssessmentResult, error)
}

type Assessments struct {
	assessments repository.AssessmentRepository
	mastery     repository.MasteryRepository
	skills      repository.SkillRepository
	twin        TwinUsecase
}

func NewAssessmentUsecase(
	assessments repository.AssessmentRepository,
	mastery repository.MasteryRepository,
	skills repository.SkillRepository,
	twin TwinUsecase,
) *Assessments {
	return &Assessments{assessments: assessments, mastery: mastery, skills: skills, twin: twin}
}

// CompleteAssessment records a finished skill assessment and folds the
// score into the user's mastery: a first assessment seeds the record at
// the score, later ones weight the score over the stored level.
func (u *Assessments) CompleteAssessment(ctx context.Context, userID uuid.UUID, in AssessmentInput) (AssessmentResult, error) {
	if userID == uuid.Nil {
		return AssessmentResult{}, ErrUnauthorized
	}
	if in.SkillID == uuid.Nil || in.Score < 0 || in.Score > 1 {
		return AssessmentResult{}, ErrInvalidInput
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return AssessmentResult{}, ErrInternal
	}
	if !exists {
		return AssessmentResult{}, ErrSkillNotFound
	}

	mastery := in.Score
	confidence := assessmentNewConfidence
	current, err := u.mastery.FindByUserAndSkill(ctx, userID, in.SkillID)
	if err == nil {
		mastery = current.MasteryLevel*assessmentExistingWeight + in.Score*assessmentScoreWeight
		confidence = clamp01(current.ConfidenceScore + assessmentConfidenceBoost)
	} else if !errors.Is(err, repository.ErrMasteryNotFound) {
		return AssessmentResult{}, ErrInternal
	}

	a, err := u.assessments.Create(ctx, userID, in.SkillID, in.Score)
	if err != nil {
		return AssessmentResult{}, ErrInternal
	}

	rec, err := u.mastery.Upsert(ctx, repository.MasteryUpsert{
		UserID:          userID,
		SkillID:         in.SkillID,
		MasteryLevel:    mastery,
		ConfidenceScore: confidence,
		Source:          InteractionAssessment,
	})
	if err != nil {
		return AssessmentResult{}, ErrInternal
	}

	if u.twin != nil {
		u.twin.InvalidateTwin(ctx, userID)
	}

	return AssessmentResult{
		Assessment: a,
		Passed:     in.Score >= assessmentPassingThreshold,
		Mastery: skillMasteryView{
			SkillID:         rec.SkillID,
			MasteryLevel:    rec.MasteryLevel,
			ConfidenceScore: rec.ConfidenceScore,
		},
	}, nil
}
