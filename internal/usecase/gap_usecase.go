package usecase

import (
	"context"
	"errors"

	"skill-twin/internal/domain/gap"
	"skill-twin/internal/domain/skill"
	"skill-twin/internal/repository"

	"github.com/google/uuid"
)

var ErrNoTargetSkills = errors.New("no target skills resolved")

type GapAnalysisParams struct {
	// RoleID drives the requirement set when present; otherwise
	// SkillIDs are analyzed against synthesized defaults.
	RoleID   uuid.UUID
	SkillIDs []uuid.UUID
}

type GapUsecase interface {
	AnalyzeGaps(ctx context.Context, userID uuid.UUID, params GapAnalysisParams) (gap.Report, error)
}

type GapAnalysis struct {
	roles   repository.RoleRepository
	skills  repository.SkillRepository
	mastery repository.MasteryRepository
}

func NewGapUsecase(roles repository.RoleRepository, skills repository.SkillRepository, mastery repository.MasteryRepository) *GapAnalysis {
	return &GapAnalysis{roles: roles, skills: skills, mastery: mastery}
}

func (u *GapAnalysis) AnalyzeGaps(ctx context.Context, userID uuid.UUID, params GapAnalysisParams) (gap.Report, error) {
	if userID == uuid.Nil {
		return gap.Report{}, ErrUnauthorized
	}

	records, err := u.mastery.FindByUserID(ctx, userID)
	if err != nil {
		return gap.Report{}, ErrInternal
	}

	if params.RoleID != uuid.Nil {
		if _, err := u.roles.FindByID(ctx, params.RoleID); err != nil {
			if errors.Is(err, repository.ErrRoleNotFound) {
				return gap.Report{}, ErrRoleNotFound
			}
			return gap.Report{}, ErrInternal
		}
		reqs, err := u.roles.FindRequirements(ctx, params.RoleID)
		if err != nil {
			return gap.Report{}, ErrInternal
		}
		return gap.Analyze(records, reqs)
	}

	if len(params.SkillIDs) == 0 {
		return gap.Report{}, ErrInvalidInput
	}

	targets, err := u.skills.FindByIDs(ctx, params.SkillIDs)
	if err != nil {
		return gap.Report{}, ErrInternal
	}
	if len(targets) == 0 {
		return gap.Report{}, ErrNoTargetSkills
	}

	categories, err := u.skills.ListCategories(ctx)
	if err != nil {
		return gap.Report{}, ErrInternal
	}
	index, err := skill.NewOntologyIndex(targets, categories)
	if err != nil {
		return gap.Report{}, err
	}

	return gap.Analyze(records, gap.SynthesizeRequirements(targets, index))
}
