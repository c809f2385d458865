package usecase

import (
	"context"
	"errors"

	"skill-twin/internal/domain/skill"
	"skill-twin/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound   = errors.New("skill not found")
	ErrMasteryNotFound = errors.New("mastery record not found")
	ErrInvalidMastery  = errors.New("mastery level out of range")
)

type SetMasteryInput struct {
	SkillID         uuid.UUID
	MasteryLevel    float64
	ConfidenceScore float64
	Source          string
}

type MasteryUsecase interface {
	ListMastery(ctx context.Context, userID uuid.UUID) ([]skill.MasteryRecord, error)
	SetMastery(ctx context.Context, userID uuid.UUID, in SetMasteryInput) (skill.MasteryRecord, error)
	RemoveMastery(ctx context.Context, userID, skillID uuid.UUID) error
	ListSkills(ctx context.Context) ([]skill.Skill, error)
}

type Mastery struct {
	mastery repository.MasteryRepository
	skills  repository.SkillRepository
	twin    TwinUsecase
}

func NewMasteryUsecase(mastery repository.MasteryRepository, skills repository.SkillRepository, twin TwinUsecase) *Mastery {
	return &Mastery{mastery: mastery, skills: skills, twin: twin}
}

func (u *Mastery) ListMastery(ctx context.Context, userID uuid.UUID) ([]skill.MasteryRecord, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	records, err := u.mastery.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return records, nil
}

func (u *Mastery) SetMastery(ctx context.Context, userID uuid.UUID, in SetMasteryInput) (skill.MasteryRecord, error) {
	if userID == uuid.Nil {
		return skill.MasteryRecord{}, ErrUnauthorized
	}
	if in.SkillID == uuid.Nil {
		return skill.MasteryRecord{}, ErrInvalidInput
	}
	if in.MasteryLevel < 0 || in.MasteryLevel > 1 || in.ConfidenceScore < 0 || in.ConfidenceScore > 1 {
		return skill.MasteryRecord{}, ErrInvalidMastery
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return skill.MasteryRecord{}, ErrInternal
	}
	if !exists {
		return skill.MasteryRecord{}, ErrSkillNotFound
	}

	source := in.Source
	if source == "" {
		source = "manual"
	}

	rec, err := u.mastery.Upsert(ctx, repository.MasteryUpsert{
		UserID:          userID,
		SkillID:         in.SkillID,
		MasteryLevel:    in.MasteryLevel,
		ConfidenceScore: in.ConfidenceScore,
		Source:          source,
	})
	if err != nil {
		return skill.MasteryRecord{}, ErrInternal
	}

	if u.twin != nil {
		u.twin.InvalidateTwin(ctx, userID)
	}
	return rec, nil
}

func (u *Mastery) RemoveMastery(ctx context.Context, userID, skillID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}

	if err := u.mastery.Delete(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrMasteryNotFound) {
			return ErrMasteryNotFound
		}
		return ErrInternal
	}

	if u.twin != nil {
		u.twin.InvalidateTwin(ctx, userID)
	}
	return nil
}

func (u *Mastery) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	skills, err := u.skills.ListSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return skills, nil
}
