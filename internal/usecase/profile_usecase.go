package usecase

import (
	"context"
	"errors"

	"skill-twin/internal/repository"

	"github.com/google/uuid"
)

// Endpoint completeness weights. Distinct from the snapshot's score,
// which also counts tracked skills.
const (
	completenessFullName   = 15
	completenessBio        = 10
	completenessEducation  = 10
	completenessField      = 10
	completenessInterests  = 10
	completenessResume     = 25
	completenessAcademic   = 10
	completenessExperience = 10
)

type ProfileUpdateInput struct {
	FullName           *string
	Bio                *string
	EducationLevel     *string
	FieldOfStudy       *string
	Interests          *[]string
	AcademicBackground *string
	YearsOfExperience  *float64
}

type CompletenessReport struct {
	Percentage    int
	MissingFields []string
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (repository.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdateInput) (repository.Profile, error)
	UpdateInterests(ctx context.Context, userID uuid.UUID, interests []string) (repository.Profile, error)
	Completeness(ctx context.Context, userID uuid.UUID) (CompletenessReport, error)
}

type Profile struct {
	users repository.UserRepository
	twin  TwinUsecase
}

func NewProfileUsecase(users repository.UserRepository, twin TwinUsecase) *Profile {
	return &Profile{users: users, twin: twin}
}

func (u *Profile) GetProfile(ctx context.Context, userID uuid.UUID) (repository.Profile, error) {
	if userID == uuid.Nil {
		return repository.Profile{}, ErrUnauthorized
	}
	p, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.Profile{}, ErrUserNotFound
		}
		return repository.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Profile) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdateInput) (repository.Profile, error) {
	if userID == uuid.Nil {
		return repository.Profile{}, ErrUnauthorized
	}
	if in.YearsOfExperience != nil && *in.YearsOfExperience < 0 {
		return repository.Profile{}, ErrInvalidInput
	}

	p, err := u.users.UpdateProfile(ctx, userID, repository.ProfileUpdate{
		FullName:           in.FullName,
		Bio:                in.Bio,
		EducationLevel:     in.EducationLevel,
		FieldOfStudy:       in.FieldOfStudy,
		Interests:          in.Interests,
		AcademicBackground: in.AcademicBackground,
		YearsOfExperience:  in.YearsOfExperience,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.Profile{}, ErrUserNotFound
		}
		return repository.Profile{}, ErrInternal
	}

	// Profile fields feed the snapshot's completeness and experience
	// signals, so a stale cached twin would misreport them.
	if u.twin != nil {
		u.twin.InvalidateTwin(ctx, userID)
	}
	return p, nil
}

func (u *Profile) UpdateInterests(ctx context.Context, userID uuid.UUID, interests []string) (repository.Profile, error) {
	return u.UpdateProfile(ctx, userID, ProfileUpdateInput{Interests: &interests})
}

func (u *Profile) Completeness(ctx context.Context, userID uuid.UUID) (CompletenessReport, error) {
	if userID == uuid.Nil {
		return CompletenessReport{}, ErrUnauthorized
	}
	f, err := u.users.ProfileFacts(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return CompletenessReport{}, ErrUserNotFound
		}
		return CompletenessReport{}, ErrInternal
	}

	score := 0
	if f.HasFullName {
		score += completenessFullName
	}
	if f.HasBio {
		score += completenessBio
	}
	if f.HasEducationLevel {
		score += completenessEducation
	}
	if f.HasFieldOfStudy {
		score += completenessField
	}
	if f.HasInterests {
		score += completenessInterests
	}
	if f.HasResume {
		score += completenessResume
	}
	if f.HasAcademicBackground {
		score += completenessAcademic
	}
	if f.YearsOfExperience > 0 {
		score += completenessExperience
	}
	if score > 100 {
		score = 100
	}

	missing := make([]string, 0)
	for _, field := range []struct {
		name string
		has  bool
	}{
		{"bio", f.HasBio},
		{"education_level", f.HasEducationLevel},
		{"field_of_study", f.HasFieldOfStudy},
		{"interests", f.HasInterests},
		{"resume", f.HasResume},
		{"academic_background", f.HasAcademicBackground},
	} {
		if !field.has {
			missing = append(missing, field.name)
		}
	}

	return CompletenessReport{Percentage: score, MissingFields: missing}, nil
}
