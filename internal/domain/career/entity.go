package career

import (
	"time"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelJunior    ExperienceLevel = "junior"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelLead      ExperienceLevel = "lead"
	LevelPrincipal ExperienceLevel = "principal"
)

type Role struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Industry        string
	Domain          string
	ExperienceLevel ExperienceLevel
	DemandScore     float64
	CreatedAt       time.Time
}

// SkillRequirement is one target-side entry of a role's requirement
// list. RequiredLevel and Importance are normalized to [0,1];
// Importance is a relative weight and does not need to sum to 1
// across a role.
type SkillRequirement struct {
	ID            uuid.UUID
	RoleID        uuid.UUID
	SkillID       uuid.UUID
	SkillName     string
	Category      string
	RequiredLevel float64
	Importance    float64
	IsMandatory   bool
}
