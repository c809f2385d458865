package gap

import (
	"sort"

	"skill-twin/internal/domain/career"
	"skill-twin/internal/domain/skill"

	"github.com/google/uuid"
)

// Severity and priority tunables. Inherited product policy; open
// question whether the coefficients were empirically tuned.
const (
	CriticalMandatoryGap  = 0.3
	ModerateGap           = 0.4
	ModerateImportantGap  = 0.2
	HighImportance        = 0.7
	HoursPerMasteryPoint  = 200.0
	DefaultRequiredLevel  = 0.7
	DefaultImportance     = 0.5
	ImportanceWeight      = 0.4
	MandatoryWeight       = 0.3
	GapWeight             = 0.2
	InputOrderWeight      = 0.1
	ImmediateActionsLimit = 3
)

// UnknownCategory groups gaps whose requirement carries no category.
const UnknownCategory = "Unknown"

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

type Gap struct {
	SkillID       uuid.UUID
	SkillName     string
	Category      string
	CurrentLevel  float64
	RequiredLevel float64
	Gap           float64
	Importance    float64
	IsMandatory   bool
	Severity      Severity
}

type PriorityEntry struct {
	SkillID       uuid.UUID
	SkillName     string
	PriorityScore float64
	Reason        string
}

type Goal struct {
	SkillName   string
	TargetLevel float64
	Timeline    string
}

type CareerImpact struct {
	BlockedByGaps    bool
	ReadinessImpact  float64
	TotalGapExposure float64
}

type Report struct {
	TotalGaps             int
	CriticalGaps          []Gap
	ModerateGaps          []Gap
	MinorGaps             []Gap
	GapsByCategory        map[string][]Gap
	LearningPriority      []PriorityEntry
	ImmediateActions      []string
	ShortTermGoals        []Goal
	LongTermGoals         []Goal
	CareerImpact          CareerImpact
	EstimatedHoursToClose float64
}

// SynthesizeRequirements builds a default requirement set for an
// explicit skill list when no role drives the analysis: target level
// 0.7, importance 0.5, not mandatory.
func SynthesizeRequirements(skills []skill.Skill, ontology *skill.OntologyIndex) []career.SkillRequirement {
	out := make([]career.SkillRequirement, 0, len(skills))
	for _, s := range skills {
		cat := UnknownCategory
		if ontology != nil {
			if name := ontology.CategoryName(s.ID); name != skill.UncategorizedName {
				cat = name
			}
		}
		out = append(out, career.SkillRequirement{
			SkillID:       s.ID,
			SkillName:     s.Name,
			Category:      cat,
			RequiredLevel: DefaultRequiredLevel,
			Importance:    DefaultImportance,
			IsMandatory:   false,
		})
	}
	return out
}

// Analyze classifies every unmet requirement into exactly one severity
// bucket, groups the same set by category, and derives a single linear
// learning-priority order. Requirements already satisfied (gap <= 0)
// are dropped entirely.
func Analyze(records []skill.MasteryRecord, reqs []career.SkillRequirement) (Report, error) {
	byskill, err := skill.RecordIndex(records)
	if err != nil {
		return Report{}, err
	}

	critical := make([]Gap, 0)
	moderate := make([]Gap, 0)
	minor := make([]Gap, 0)
	byCategory := make(map[string][]Gap)

	for _, r := range reqs {
		current := 0.0
		if rec, ok := byskill[r.SkillID]; ok {
			current = rec.MasteryLevel
		}
		delta := r.RequiredLevel - current
		if delta <= 0 {
			continue
		}

		g := Gap{
			SkillID:       r.SkillID,
			SkillName:     r.SkillName,
			Category:      r.Category,
			CurrentLevel:  current,
			RequiredLevel: r.RequiredLevel,
			Gap:           delta,
			Importance:    r.Importance,
			IsMandatory:   r.IsMandatory,
		}
		if g.Category == "" {
			g.Category = UnknownCategory
		}

		// First match wins.
		switch {
		case r.IsMandatory && delta > CriticalMandatoryGap:
			g.Severity = SeverityCritical
			critical = append(critical, g)
		case delta > ModerateGap || (r.Importance > HighImportance && delta > ModerateImportantGap):
			g.Severity = SeverityModerate
			moderate = append(moderate, g)
		default:
			g.Severity = SeverityMinor
			minor = append(minor, g)
		}

		byCategory[g.Category] = append(byCategory[g.Category], g)
	}

	sortBucket(critical)
	sortBucket(moderate)
	sortBucket(minor)

	all := make([]Gap, 0, len(critical)+len(moderate)+len(minor))
	all = append(all, critical...)
	all = append(all, moderate...)
	all = append(all, minor...)

	impact := CareerImpact{BlockedByGaps: len(critical) > 0}
	hours := 0.0
	if len(all) > 0 {
		weighted := 0.0
		for _, g := range all {
			weighted += g.Gap * g.Importance
			hours += g.Gap * HoursPerMasteryPoint
		}
		impact.ReadinessImpact = -weighted / float64(len(all))
		impact.TotalGapExposure = weighted
	}

	actions := make([]string, 0, ImmediateActionsLimit)
	for _, g := range critical {
		if len(actions) == ImmediateActionsLimit {
			break
		}
		actions = append(actions, "Focus on "+g.SkillName)
	}

	return Report{
		TotalGaps:             len(all),
		CriticalGaps:          critical,
		ModerateGaps:          moderate,
		MinorGaps:             minor,
		GapsByCategory:        byCategory,
		LearningPriority:      learningPriority(all),
		ImmediateActions:      actions,
		ShortTermGoals:        shortTermGoals(critical, moderate),
		LongTermGoals:         longTermGoals(moderate, minor),
		CareerImpact:          impact,
		EstimatedHoursToClose: hours,
	}, nil
}

// sortBucket orders a severity bucket by (importance, gap) descending.
func sortBucket(gaps []Gap) {
	sort.SliceStable(gaps, func(i, j int) bool {
		a, b := gaps[i], gaps[j]
		if a.Importance != b.Importance {
			return a.Importance > b.Importance
		}
		return a.Gap > b.Gap
	})
}

// learningPriority scores every gap into a single sequencing order.
// The positional term rewards gaps appearing earlier in the input,
// a deliberate tie-break toward the caller's original emphasis.
func learningPriority(all []Gap) []PriorityEntry {
	n := len(all)
	out := make([]PriorityEntry, 0, n)
	for i, g := range all {
		mandatory := 0.0
		if g.IsMandatory {
			mandatory = 1.0
		}
		score := g.Importance*ImportanceWeight +
			mandatory*MandatoryWeight +
			g.Gap*GapWeight +
			float64(n-i)/float64(n)*InputOrderWeight

		reason := "Significant gap"
		if g.IsMandatory {
			reason = "Mandatory skill"
		} else if g.Importance > HighImportance {
			reason = "High importance"
		}

		out = append(out, PriorityEntry{
			SkillID:       g.SkillID,
			SkillName:     g.SkillName,
			PriorityScore: score,
			Reason:        reason,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}

func shortTermGoals(critical, moderate []Gap) []Goal {
	out := make([]Goal, 0, 4)
	for _, g := range firstN(critical, 2) {
		out = append(out, Goal{SkillName: g.SkillName, TargetLevel: g.RequiredLevel, Timeline: "1-3 months"})
	}
	for _, g := range firstN(moderate, 2) {
		out = append(out, Goal{SkillName: g.SkillName, TargetLevel: g.RequiredLevel, Timeline: "1-3 months"})
	}
	return out
}

func longTermGoals(moderate, minor []Gap) []Goal {
	out := make([]Goal, 0, len(moderate)+len(minor))
	if len(moderate) > 2 {
		for _, g := range moderate[2:] {
			out = append(out, Goal{SkillName: g.SkillName, TargetLevel: g.RequiredLevel, Timeline: "3-12 months"})
		}
	}
	for _, g := range minor {
		out = append(out, Goal{SkillName: g.SkillName, TargetLevel: g.RequiredLevel, Timeline: "3-12 months"})
	}
	return out
}

func firstN(gaps []Gap, n int) []Gap {
	if len(gaps) > n {
		return gaps[:n]
	}
	return gaps
}
