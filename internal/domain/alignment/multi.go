package alignment

import (
	"sort"

	"github.com/google/uuid"
)

const (
	DefaultReadinessThreshold = 0.3
	ReadyRolesLimit           = 5
	StretchRolesLimit         = 3
	RecurringGapsLimit        = 5
)

type RoleAlignment struct {
	RoleID          uuid.UUID
	RoleTitle       string
	RoleDescription string
	Result
}

// RecurringGap is a skill that keeps showing up as a gap across the
// user's best-fitting roles.
type RecurringGap struct {
	SkillName       string
	AppearsInRoles  int
	AverageGap      float64
	ImportanceTotal float64
}

type CareerRecommendations struct {
	ReadyRoles     []RoleAlignment
	StretchRoles   []RoleAlignment
	PrioritySkills []RecurringGap
}

// RankRoles orders role alignments by overall readiness descending.
// The sort is stable so equally-ready roles keep their input order.
func RankRoles(alignments []RoleAlignment) []RoleAlignment {
	out := make([]RoleAlignment, len(alignments))
	copy(out, alignments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallReadiness > out[j].OverallReadiness
	})
	return out
}

// Recommend buckets ranked alignments into ready (>= threshold) and
// stretch (threshold/2 <= x < threshold) roles, and surfaces skills
// recurring as gaps across the top ready roles, ranked by occurrence
// count then summed importance.
func Recommend(alignments []RoleAlignment, threshold float64) CareerRecommendations {
	if threshold <= 0 {
		threshold = DefaultReadinessThreshold
	}
	ranked := RankRoles(alignments)

	ready := make([]RoleAlignment, 0)
	stretch := make([]RoleAlignment, 0)
	for _, a := range ranked {
		switch {
		case a.OverallReadiness >= threshold:
			ready = append(ready, a)
		case a.OverallReadiness >= threshold/2:
			stretch = append(stretch, a)
		}
	}

	type accum struct {
		count         int
		gapSum        float64
		importanceSum float64
	}
	gapStats := make(map[string]*accum)
	names := make([]string, 0)

	topReady := ready
	if len(topReady) > ReadyRolesLimit {
		topReady = ready[:ReadyRolesLimit]
	}
	for _, a := range topReady {
		for _, g := range a.SkillGaps {
			acc, ok := gapStats[g.SkillName]
			if !ok {
				acc = &accum{}
				gapStats[g.SkillName] = acc
				names = append(names, g.SkillName)
			}
			acc.count++
			acc.gapSum += g.Gap
			acc.importanceSum += g.Importance
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		a, b := gapStats[names[i]], gapStats[names[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.importanceSum > b.importanceSum
	})

	priority := make([]RecurringGap, 0, RecurringGapsLimit)
	for _, name := range names {
		if len(priority) == RecurringGapsLimit {
			break
		}
		acc := gapStats[name]
		priority = append(priority, RecurringGap{
			SkillName:       name,
			AppearsInRoles:  acc.count,
			AverageGap:      acc.gapSum / float64(acc.count),
			ImportanceTotal: acc.importanceSum,
		})
	}

	if len(ready) > ReadyRolesLimit {
		ready = ready[:ReadyRolesLimit]
	}
	if len(stretch) > StretchRolesLimit {
		stretch = stretch[:StretchRolesLimit]
	}

	return CareerRecommendations{
		ReadyRoles:     ready,
		StretchRoles:   stretch,
		PrioritySkills: priority,
	}
}
