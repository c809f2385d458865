package usecase

import (
	"context"
	"errors"

	"skill-twin/internal/domain/alignment"
	"skill-twin/internal/domain/career"
	"skill-twin/internal/repository"

	"github.com/google/uuid"
)

var ErrRoleNotFound = errors.New("career role not found")

const analyzeRolesLimit = 50

type AlignmentUsecase interface {
	CalculateAlignment(ctx context.Context, userID, roleID uuid.UUID) (alignment.Result, error)
	AnalyzeCareers(ctx context.Context, userID uuid.UUID, limit int) ([]alignment.RoleAlignment, error)
	GetCareerRecommendations(ctx context.Context, userID uuid.UUID, minReadiness float64) (alignment.CareerRecommendations, error)
	ListRoles(ctx context.Context, limit, offset int) ([]RoleWithRequirements, error)
}

type Alignment struct {
	roles   repository.RoleRepository
	mastery repository.MasteryRepository
	users   repository.UserRepository
}

func NewAlignmentUsecase(roles repository.RoleRepository, mastery repository.MasteryRepository, users repository.UserRepository) *Alignment {
	return &Alignment{roles: roles, mastery: mastery, users: users}
}

func (u *Alignment) CalculateAlignment(ctx context.Context, userID, roleID uuid.UUID) (alignment.Result, error) {
	if userID == uuid.Nil {
		return alignment.Result{}, ErrUnauthorized
	}
	if roleID == uuid.Nil {
		return alignment.Result{}, ErrRoleNotFound
	}

	role, err := u.roles.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return alignment.Result{}, ErrRoleNotFound
		}
		return alignment.Result{}, ErrInternal
	}

	reqs, err := u.roles.FindRequirements(ctx, roleID)
	if err != nil {
		return alignment.Result{}, ErrInternal
	}

	records, err := u.mastery.FindByUserID(ctx, userID)
	if err != nil {
		return alignment.Result{}, ErrInternal
	}

	facts, err := u.users.ProfileFacts(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return alignment.Result{}, ErrUserNotFound
		}
		return alignment.Result{}, ErrInternal
	}

	return alignment.Calculate(records, reqs, facts.YearsOfExperience, role.ExperienceLevel)
}

func (u *Alignment) AnalyzeCareers(ctx context.Context, userID uuid.UUID, limit int) ([]alignment.RoleAlignment, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 {
		limit = 10
	}

	roles, err := u.roles.ListRoles(ctx, analyzeRolesLimit, 0)
	if err != nil {
		return nil, ErrInternal
	}

	records, err := u.mastery.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	facts, err := u.users.ProfileFacts(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternal
	}

	roleIDs := make([]uuid.UUID, 0, len(roles))
	for _, r := range roles {
		roleIDs = append(roleIDs, r.ID)
	}
	reqsByRole, err := u.roles.FindRequirementsByRoleIDs(ctx, roleIDs)
	if err != nil {
		return nil, ErrInternal
	}

	alignments := make([]alignment.RoleAlignment, 0, len(roles))
	for _, role := range roles {
		res, err := alignment.Calculate(records, reqsByRole[role.ID], facts.YearsOfExperience, role.ExperienceLevel)
		if err != nil {
			return nil, err
		}
		alignments = append(alignments, alignment.RoleAlignment{
			RoleID:          role.ID,
			RoleTitle:       role.Title,
			RoleDescription: role.Description,
			Result:          res,
		})
	}

	ranked := alignment.RankRoles(alignments)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (u *Alignment) GetCareerRecommendations(ctx context.Context, userID uuid.UUID, minReadiness float64) (alignment.CareerRecommendations, error) {
	alignments, err := u.AnalyzeCareers(ctx, userID, 20)
	if err != nil {
		return alignment.CareerRecommendations{}, err
	}
	return alignment.Recommend(alignments, minReadiness), nil
}

// RoleWithRequirements is the catalog view of one role.
type RoleWithRequirements struct {
	Role         career.Role
	Requirements []career.SkillRequirement
}

func (u *Alignment) ListRoles(ctx context.Context, limit, offset int) ([]RoleWithRequirements, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	roles, err := u.roles.ListRoles(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}

	roleIDs := make([]uuid.UUID, 0, len(roles))
	for _, r := range roles {
		roleIDs = append(roleIDs, r.ID)
	}
	reqsByRole, err := u.roles.FindRequirementsByRoleIDs(ctx, roleIDs)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]RoleWithRequirements, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleWithRequirements{Role: r, Requirements: reqsByRole[r.ID]})
	}
	return out, nil
}
