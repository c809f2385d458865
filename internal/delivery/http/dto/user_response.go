package dto

import (
	"skill-twin/internal/repository"
	"skill-twin/internal/usecase"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

func NewUserResponse(u repository.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

type ProfileResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	Bio                string    `json:"bio"`
	EducationLevel     string    `json:"education_level"`
	FieldOfStudy       string    `json:"field_of_study"`
	Interests          []string  `json:"interests"`
	AcademicBackground string    `json:"academic_background"`
	YearsOfExperience  float64   `json:"years_of_experience"`
	HasResume          bool      `json:"has_resume"`
}

func NewProfileResponse(p repository.Profile) ProfileResponse {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	return ProfileResponse{
		ID:                 p.ID,
		Email:              p.Email,
		FullName:           p.FullName,
		Bio:                p.Bio,
		EducationLevel:     p.EducationLevel,
		FieldOfStudy:       p.FieldOfStudy,
		Interests:          interests,
		AcademicBackground: p.AcademicBackground,
		YearsOfExperience:  p.YearsOfExperience,
		HasResume:          p.HasResume,
	}
}

type CompletenessResponse struct {
	CompletenessPercentage int      `json:"completeness_percentage"`
	MissingFields          []string `json:"missing_fields"`
}

func NewCompletenessResponse(r usecase.CompletenessReport) CompletenessResponse {
	missing := r.MissingFields
	if missing == nil {
		missing = []string{}
	}
	return CompletenessResponse{CompletenessPercentage: r.Percentage, MissingFields: missing}
}
