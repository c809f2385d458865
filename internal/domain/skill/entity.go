package skill

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID       uuid.UUID
	Name     string
	ParentID *uuid.UUID
}

type Skill struct {
	ID            uuid.UUID
	Name          string
	CategoryID    *uuid.UUID
	Keywords      []string
	Prerequisites []uuid.UUID
	RelatedSkills []uuid.UUID
	CreatedAt     time.Time
}

// MasteryRecord is the per (user, skill) proficiency snapshot the
// scoring engines consume. It is read-only inside the engines.
type MasteryRecord struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	SkillID         uuid.UUID
	SkillName       string
	MasteryLevel    float64
	ConfidenceScore float64
	Source          string
	LastUpdated     time.Time
}

type Level string

const (
	LevelNovice       Level = "novice"
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// LevelForMastery maps a normalized mastery value to its coarse level.
func LevelForMastery(mastery float64) Level {
	switch {
	case mastery >= 0.9:
		return LevelExpert
	case mastery >= 0.7:
		return LevelAdvanced
	case mastery >= 0.5:
		return LevelIntermediate
	case mastery >= 0.3:
		return LevelBeginner
	default:
		return LevelNovice
	}
}
