package alignment

import (
	"math"
	"sort"

	"skill-twin/internal/domain/career"
	"skill-twin/internal/domain/skill"

	"github.com/google/uuid"
)

// Scoring tunables. The thresholds and the 200h-per-mastery-point time
// factor are inherited product policy; kept as named constants instead
// of inline literals so they can be tuned in one place.
const (
	MandatoryGapTolerance = 0.2
	StrengthExcess        = 0.1
	HighImportance        = 0.7

	MandatoryMetFactor    = 0.9
	MandatoryMissedFactor = 0.6
	SkillWeight           = 0.8
	ExperienceWeight      = 0.2

	HoursPerMasteryPoint  = 200.0
	ImportanceHoursFactor = 0.5

	PrioritySkillsLimit          = 5
	MandatoryRecommendationLimit = 3
	ImportantRecommendationLimit = 2
)

type SkillGap struct {
	SkillID       uuid.UUID
	SkillName     string
	CurrentLevel  float64
	RequiredLevel float64
	Gap           float64
	Importance    float64
	IsMandatory   bool
}

type Strength struct {
	SkillID       uuid.UUID
	SkillName     string
	CurrentLevel  float64
	RequiredLevel float64
	Excess        float64
	Importance    float64
}

type Recommendation struct {
	Type        string
	SkillName   string
	Priority    string
	Action      string
	TargetLevel float64
	CurrentGap  float64
}

type PrioritySkill struct {
	SkillID   uuid.UUID
	SkillName string
	Gap       float64
}

type Result struct {
	OverallReadiness     float64
	SkillMatchScore      float64
	ExperienceMatchScore float64
	MandatoryMet         bool
	SkillGaps            []SkillGap
	Strengths            []Strength
	Recommendations      []Recommendation
	PrioritySkills       []PrioritySkill
	EstimatedTimeToReady float64
}

// Calculate scores one (user, role) pair. It is deterministic for
// identical inputs; a duplicate mastery record is surfaced as an error
// rather than resolved silently.
func Calculate(records []skill.MasteryRecord, reqs []career.SkillRequirement, experienceYears float64, band career.ExperienceLevel) (Result, error) {
	byskill, err := skill.RecordIndex(records)
	if err != nil {
		return Result{}, err
	}

	gaps := make([]SkillGap, 0)
	strengths := make([]Strength, 0)
	totalWeighted := 0.0
	totalWeight := 0.0
	mandatoryMet := true

	for _, r := range reqs {
		current := 0.0
		if rec, ok := byskill[r.SkillID]; ok {
			current = rec.MasteryLevel
		}

		gap := r.RequiredLevel - current
		if gap < 0 {
			gap = 0
		}
		excess := current - r.RequiredLevel
		if excess < 0 {
			excess = 0
		}

		var score float64
		if gap > 0 {
			gaps = append(gaps, SkillGap{
				SkillID:       r.SkillID,
				SkillName:     r.SkillName,
				CurrentLevel:  current,
				RequiredLevel: r.RequiredLevel,
				Gap:           gap,
				Importance:    r.Importance,
				IsMandatory:   r.IsMandatory,
			})
			if r.RequiredLevel > 0 {
				score = current / r.RequiredLevel
			} else {
				score = 1.0
			}
			if r.IsMandatory && gap > MandatoryGapTolerance {
				mandatoryMet = false
			}
		} else {
			if excess > StrengthExcess {
				strengths = append(strengths, Strength{
					SkillID:       r.SkillID,
					SkillName:     r.SkillName,
					CurrentLevel:  current,
					RequiredLevel: r.RequiredLevel,
					Excess:        excess,
					Importance:    r.Importance,
				})
			}
			score = 1.0
		}

		totalWeighted += score * r.Importance
		totalWeight += r.Importance
	}

	skillMatch := 0.0
	if totalWeight > 0 {
		skillMatch = totalWeighted / totalWeight
	}

	penalty := MandatoryMetFactor
	if !mandatoryMet {
		penalty = MandatoryMissedFactor
	}
	readinessPre := skillMatch * penalty

	expMatch := ExperienceMatch(experienceYears, band)
	readiness := readinessPre*SkillWeight + expMatch*ExperienceWeight

	sortGaps(gaps)

	priority := make([]PrioritySkill, 0, PrioritySkillsLimit)
	for _, g := range gaps {
		if len(priority) == PrioritySkillsLimit {
			break
		}
		priority = append(priority, PrioritySkill{SkillID: g.SkillID, SkillName: g.SkillName, Gap: g.Gap})
	}

	return Result{
		OverallReadiness:     readiness,
		SkillMatchScore:      skillMatch,
		ExperienceMatchScore: expMatch,
		MandatoryMet:         mandatoryMet,
		SkillGaps:            gaps,
		Strengths:            strengths,
		Recommendations:      recommendations(gaps),
		PrioritySkills:       priority,
		EstimatedTimeToReady: estimateTimeToReady(gaps),
	}, nil
}

// sortGaps orders by (is_mandatory, importance, gap) descending:
// mandatory gaps always precede non-mandatory ones regardless of
// importance or size.
func sortGaps(gaps []SkillGap) {
	sort.SliceStable(gaps, func(i, j int) bool {
		a, b := gaps[i], gaps[j]
		if a.IsMandatory != b.IsMandatory {
			return a.IsMandatory
		}
		if a.Importance != b.Importance {
			return a.Importance > b.Importance
		}
		return a.Gap > b.Gap
	})
}

func recommendations(gaps []SkillGap) []Recommendation {
	out := make([]Recommendation, 0, MandatoryRecommendationLimit+ImportantRecommendationLimit)

	mandatoryCount := 0
	for _, g := range gaps {
		if !g.IsMandatory || mandatoryCount == MandatoryRecommendationLimit {
			continue
		}
		out = append(out, Recommendation{
			Type:        "mandatory_skill",
			SkillName:   g.SkillName,
			Priority:    "high",
			Action:      "Focus on " + g.SkillName + " - this is a mandatory requirement",
			TargetLevel: g.RequiredLevel,
			CurrentGap:  g.Gap,
		})
		mandatoryCount++
	}

	importantCount := 0
	for _, g := range gaps {
		if g.IsMandatory || g.Importance <= HighImportance || importantCount == ImportantRecommendationLimit {
			continue
		}
		out = append(out, Recommendation{
			Type:        "important_skill",
			SkillName:   g.SkillName,
			Priority:    "medium",
			Action:      "Develop " + g.SkillName + " to strengthen your profile",
			TargetLevel: g.RequiredLevel,
			CurrentGap:  g.Gap,
		})
		importantCount++
	}

	return out
}

func estimateTimeToReady(gaps []SkillGap) float64 {
	total := 0.0
	for _, g := range gaps {
		total += g.Gap * HoursPerMasteryPoint * (1 + ImportanceHoursFactor*g.Importance)
	}
	return math.Round(total*10) / 10
}
