package twin

import (
	"sort"
	"time"

	"skill-twin/internal/domain/skill"

	"github.com/google/uuid"
)

// Tunables of the mastery aggregation. Thresholds come from the
// product's original scoring policy; whether they were empirically
// tuned is an open question, so they are kept as named constants
// rather than re-derived.
const (
	GapThreshold         = 0.4
	GapSeverityBaseline  = 0.5
	MasteredThreshold    = 0.7
	PrerequisiteStrength = 0.8
	RelatedStrength      = 0.5
	TopSkillsLimit       = 5

	FreshWindow = 7 * 24 * time.Hour
	StaleWindow = 30 * 24 * time.Hour
)

type Freshness string

const (
	FreshnessFresh    Freshness = "fresh"
	FreshnessStale    Freshness = "stale"
	FreshnessOutdated Freshness = "outdated"
)

type ConnectionType string

const (
	ConnectionPrerequisite ConnectionType = "prerequisite"
	ConnectionRelated      ConnectionType = "related"
)

type SkillNode struct {
	SkillID         uuid.UUID
	Name            string
	Category        string
	MasteryLevel    float64
	ConfidenceScore float64
	IsGap           bool
	GapSeverity     *float64
	Source          string
	LastUpdated     time.Time
}

type Connection struct {
	SourceSkillID uuid.UUID
	TargetSkillID uuid.UUID
	Type          ConnectionType
	Strength      float64
}

type CategorySummary struct {
	CategoryID     uuid.UUID
	CategoryName   string
	TotalSkills    int
	MasteredSkills int
	AverageMastery float64
	SkillIDs       []uuid.UUID
}

// Profile carries the basic-profile presence facts that feed the
// completeness score. The aggregator only inspects presence, never
// content.
type Profile struct {
	HasFullName           bool
	HasBio                bool
	HasEducationLevel     bool
	HasFieldOfStudy       bool
	HasInterests          bool
	HasResume             bool
	HasAcademicBackground bool
}

type Snapshot struct {
	UserID              uuid.UUID
	Nodes               []SkillNode
	Connections         []Connection
	TotalSkills         int
	AverageMastery      float64
	TopSkills           []SkillNode
	WeakestSkills       []SkillNode
	CategorySummaries   []CategorySummary
	ProfileCompleteness int
	DataFreshness       Freshness
	GeneratedAt         time.Time
}

type Input struct {
	UserID         uuid.UUID
	Records        []skill.MasteryRecord
	Ontology       *skill.OntologyIndex
	Profile        Profile
	LastAssessment *time.Time
	Now            time.Time
}

// BuildSnapshot produces the digital-twin view of a user's mastery
// records. A user with zero records yields an empty, zero-valued
// snapshot rather than an error.
func BuildSnapshot(in Input) (Snapshot, error) {
	if _, err := skill.RecordIndex(in.Records); err != nil {
		return Snapshot{}, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	nodes := make([]SkillNode, 0, len(in.Records))
	connections := make([]Connection, 0)
	catStats := make(map[string]*categoryAccumulator)
	catOrder := make([]string, 0)
	totalMastery := 0.0

	held := make(map[uuid.UUID]bool, len(in.Records))
	for _, r := range in.Records {
		held[r.SkillID] = true
	}

	for _, r := range in.Records {
		name := r.SkillName
		categoryName := skill.UncategorizedName
		var categoryID uuid.UUID
		if in.Ontology != nil {
			if s, ok := in.Ontology.Skill(r.SkillID); ok {
				if name == "" {
					name = s.Name
				}
				categoryName = in.Ontology.CategoryName(r.SkillID)
				if s.CategoryID != nil {
					categoryID = *s.CategoryID
				}

				for _, pre := range s.Prerequisites {
					connections = append(connections, Connection{
						SourceSkillID: pre,
						TargetSkillID: s.ID,
						Type:          ConnectionPrerequisite,
						Strength:      PrerequisiteStrength,
					})
				}
				for _, rel := range s.RelatedSkills {
					// Each unordered pair emits exactly once, and only
					// between skills the user actually holds.
					if !held[rel] {
						continue
					}
					if s.ID.String() < rel.String() {
						connections = append(connections, Connection{
							SourceSkillID: s.ID,
							TargetSkillID: rel,
							Type:          ConnectionRelated,
							Strength:      RelatedStrength,
						})
					}
				}
			}
		}

		node := SkillNode{
			SkillID:         r.SkillID,
			Name:            name,
			Category:        categoryName,
			MasteryLevel:    r.MasteryLevel,
			ConfidenceScore: r.ConfidenceScore,
			IsGap:           r.MasteryLevel < GapThreshold,
			Source:          r.Source,
			LastUpdated:     r.LastUpdated,
		}
		if r.MasteryLevel < GapSeverityBaseline {
			sev := GapSeverityBaseline - r.MasteryLevel
			if sev < 0 {
				sev = 0
			}
			node.GapSeverity = &sev
		}
		nodes = append(nodes, node)
		totalMastery += r.MasteryLevel

		acc, ok := catStats[categoryName]
		if !ok {
			acc = &categoryAccumulator{id: categoryID}
			catStats[categoryName] = acc
			catOrder = append(catOrder, categoryName)
		}
		acc.total++
		acc.masterySum += r.MasteryLevel
		acc.skillIDs = append(acc.skillIDs, r.SkillID)
		if r.MasteryLevel >= MasteredThreshold {
			acc.mastered++
		}
	}

	avg := 0.0
	if len(nodes) > 0 {
		avg = totalMastery / float64(len(nodes))
	}

	top, weakest := rankNodes(nodes)

	summaries := make([]CategorySummary, 0, len(catOrder))
	for _, name := range catOrder {
		acc := catStats[name]
		summaries = append(summaries, CategorySummary{
			CategoryID:     acc.id,
			CategoryName:   name,
			TotalSkills:    acc.total,
			MasteredSkills: acc.mastered,
			AverageMastery: acc.masterySum / float64(acc.total),
			SkillIDs:       acc.skillIDs,
		})
	}

	return Snapshot{
		UserID:              in.UserID,
		Nodes:               nodes,
		Connections:         connections,
		TotalSkills:         len(nodes),
		AverageMastery:      avg,
		TopSkills:           top,
		WeakestSkills:       weakest,
		CategorySummaries:   summaries,
		ProfileCompleteness: completeness(in.Profile, len(nodes)),
		DataFreshness:       freshness(in.Records, in.LastAssessment, now),
		GeneratedAt:         now,
	}, nil
}

type categoryAccumulator struct {
	id         uuid.UUID
	total      int
	mastered   int
	masterySum float64
	skillIDs   []uuid.UUID
}

// rankNodes returns the top and weakest slices by mastery. The sort is
// stable so ties keep the original record order.
func rankNodes(nodes []SkillNode) (top []SkillNode, weakest []SkillNode) {
	sorted := make([]SkillNode, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MasteryLevel > sorted[j].MasteryLevel
	})

	top = sorted
	if len(top) > TopSkillsLimit {
		top = sorted[:TopSkillsLimit]
	}
	weakest = sorted
	if len(sorted) > TopSkillsLimit {
		weakest = sorted[len(sorted)-TopSkillsLimit:]
	}
	return top, weakest
}

func completeness(p Profile, skillCount int) int {
	score := 0

	if p.HasFullName {
		score += 10
	}
	if p.HasBio {
		score += 5
	}
	if p.HasEducationLevel {
		score += 5
	}
	if p.HasFieldOfStudy {
		score += 5
	}
	if p.HasInterests {
		score += 5
	}

	if p.HasResume {
		score += 20
	}
	if p.HasAcademicBackground {
		score += 10
	}

	switch {
	case skillCount >= 20:
		score += 40
	case skillCount >= 10:
		score += 30
	case skillCount >= 5:
		score += 20
	case skillCount >= 1:
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

func freshness(records []skill.MasteryRecord, lastAssessment *time.Time, now time.Time) Freshness {
	var mostRecent time.Time
	for _, r := range records {
		if r.LastUpdated.After(mostRecent) {
			mostRecent = r.LastUpdated
		}
	}
	if lastAssessment != nil && lastAssessment.After(mostRecent) {
		mostRecent = *lastAssessment
	}
	if mostRecent.IsZero() {
		return FreshnessOutdated
	}

	age := now.Sub(mostRecent)
	switch {
	case age <= FreshWindow:
		return FreshnessFresh
	case age <= StaleWindow:
		return FreshnessStale
	default:
		return FreshnessOutdated
	}
}
