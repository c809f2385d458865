package alignment

import "skill-twin/internal/domain/career"

type experienceWindow struct {
	minYears float64
	maxYears float64
}

// experienceWindows is the enumerated policy table mapping a role's
// experience band to the years window it expects. Kept as data so the
// thresholds can be tuned without touching the scoring algorithm.
var experienceWindows = map[career.ExperienceLevel]experienceWindow{
	career.LevelEntry:     {0, 1},
	career.LevelJunior:    {0, 2},
	career.LevelMid:       {2, 5},
	career.LevelSenior:    {5, 10},
	career.LevelLead:      {7, 15},
	career.LevelPrincipal: {10, 20},
}

const (
	belowWindowBase    = 0.5
	belowWindowPenalty = 0.1
	aboveWindowFloor   = 0.7
	aboveWindowPenalty = 0.05
)

// ExperienceMatch scores the user's years of experience against the
// band window: 1.0 inside, a decaying score with floor 0 below, and a
// gentler decay with floor 0.7 above. Unknown bands fall back to mid.
func ExperienceMatch(years float64, band career.ExperienceLevel) float64 {
	w, ok := experienceWindows[band]
	if !ok {
		w = experienceWindows[career.LevelMid]
	}

	switch {
	case years < w.minYears:
		score := belowWindowBase - (w.minYears-years)*belowWindowPenalty
		if score < 0 {
			return 0
		}
		return score
	case years > w.maxYears:
		score := 1.0 - (years-w.maxYears)*aboveWindowPenalty
		if score < aboveWindowFloor {
			return aboveWindowFloor
		}
		return score
	default:
		return 1.0
	}
}
