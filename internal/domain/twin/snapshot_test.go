package twin

import (
	"math"
	"testing"
	"time"

	"skill-twin/internal/domain/skill"

	"github.com/google/uuid"
)

func record(id uuid.UUID, name string, mastery float64, updated time.Time) skill.MasteryRecord {
	return skill.MasteryRecord{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		SkillID:      id,
		SkillName:    name,
		MasteryLevel: mastery,
		LastUpdated:  updated,
	}
}

func TestBuildSnapshot_EmptyRecords(t *testing.T) {
	snap, err := BuildSnapshot(Input{UserID: uuid.New(), Now: time.Now().UTC()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if snap.TotalSkills != 0 {
		t.Fatalf("expected 0 skills, got %d", snap.TotalSkills)
	}
	if snap.AverageMastery != 0 {
		t.Fatalf("expected average 0, got %f", snap.AverageMastery)
	}
	if len(snap.Nodes) != 0 || len(snap.Connections) != 0 {
		t.Fatalf("expected empty node and connection lists")
	}
	if snap.DataFreshness != FreshnessOutdated {
		t.Fatalf("expected outdated freshness, got %s", snap.DataFreshness)
	}
}

func TestBuildSnapshot_AverageAndGapFlags(t *testing.T) {
	now := time.Now().UTC()
	records := []skill.MasteryRecord{
		record(uuid.New(), "Go", 0.9, now),
		record(uuid.New(), "Docker", 0.3, now),
	}

	snap, err := BuildSnapshot(Input{UserID: uuid.New(), Records: records, Now: now})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if snap.TotalSkills != 2 {
		t.Fatalf("expected 2 skills, got %d", snap.TotalSkills)
	}
	if math.Abs(snap.AverageMastery-0.6) > 1e-9 {
		t.Fatalf("expected average 0.6, got %f", snap.AverageMastery)
	}

	var docker SkillNode
	for _, n := range snap.Nodes {
		if n.Name == "Docker" {
			docker = n
		}
	}
	if !docker.IsGap {
		t.Fatalf("expected Docker to be flagged as gap")
	}
	if docker.GapSeverity == nil || math.Abs(*docker.GapSeverity-0.2) > 1e-9 {
		t.Fatalf("expected Docker gap severity 0.2, got %v", docker.GapSeverity)
	}

	var golang SkillNode
	for _, n := range snap.Nodes {
		if n.Name == "Go" {
			golang = n
		}
	}
	if golang.IsGap || golang.GapSeverity != nil {
		t.Fatalf("expected Go to carry no gap markers")
	}
}

func TestBuildSnapshot_TopAndWeakest(t *testing.T) {
	now := time.Now().UTC()
	levels := []float64{0.1, 0.9, 0.5, 0.7, 0.3, 0.8, 0.2, 0.95, 0.65, 0.45, 0.15, 0.55}
	records := make([]skill.MasteryRecord, 0, len(levels))
	for i, lvl := range levels {
		records = append(records, record(uuid.New(), "skill"+string(rune('A'+i)), lvl, now))
	}

	snap, err := BuildSnapshot(Input{Records: records, Now: now})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(snap.TopSkills) != 5 || len(snap.WeakestSkills) != 5 {
		t.Fatalf("expected 5 top and 5 weakest, got %d and %d", len(snap.TopSkills), len(snap.WeakestSkills))
	}
	if snap.TopSkills[0].MasteryLevel != 0.95 {
		t.Fatalf("expected strongest skill first, got %f", snap.TopSkills[0].MasteryLevel)
	}
	if snap.WeakestSkills[len(snap.WeakestSkills)-1].MasteryLevel != 0.1 {
		t.Fatalf("expected weakest skill last, got %f", snap.WeakestSkills[len(snap.WeakestSkills)-1].MasteryLevel)
	}

	// With 12 skills the two ends cannot share members.
	seen := make(map[uuid.UUID]bool)
	for _, n := range snap.TopSkills {
		seen[n.SkillID] = true
	}
	for _, n := range snap.WeakestSkills {
		if seen[n.SkillID] {
			t.Fatalf("top and weakest overlap on %s", n.Name)
		}
	}
}

func TestBuildSnapshot_TopEqualsWeakestWhenFew(t *testing.T) {
	now := time.Now().UTC()
	records := []skill.MasteryRecord{
		record(uuid.New(), "Go", 0.9, now),
		record(uuid.New(), "SQL", 0.4, now),
	}
	snap, err := BuildSnapshot(Input{Records: records, Now: now})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(snap.TopSkills) != 2 || len(snap.WeakestSkills) != 2 {
		t.Fatalf("expected both lists to hold all skills")
	}
	for i := range snap.TopSkills {
		if snap.TopSkills[i].SkillID != snap.WeakestSkills[i].SkillID {
			t.Fatalf("expected identical lists when total <= 5")
		}
	}
}

func TestBuildSnapshot_Connections(t *testing.T) {
	now := time.Now().UTC()
	sqlID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	dbID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	skills := []skill.Skill{
		{ID: sqlID, Name: "SQL", RelatedSkills: []uuid.UUID{dbID}},
		{ID: dbID, Name: "Database Design", Prerequisites: []uuid.UUID{sqlID}, RelatedSkills: []uuid.UUID{sqlID}},
	}
	idx, err := skill.NewOntologyIndex(skills, nil)
	if err != nil {
		t.Fatalf("index: %v", err)
	}

	records := []skill.MasteryRecord{
		record(sqlID, "SQL", 0.8, now),
		record(dbID, "Database Design", 0.6, now),
	}
	snap, err := BuildSnapshot(Input{Records: records, Ontology: idx, Now: now})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var prereq, related int
	for _, c := range snap.Connections {
		switch c.Type {
		case ConnectionPrerequisite:
			prereq++
			if c.SourceSkillID != sqlID || c.TargetSkillID != dbID {
				t.Fatalf("prerequisite edge must point from prerequisite to dependent")
			}
			if c.Strength != PrerequisiteStrength {
				t.Fatalf("expected prerequisite strength %f, got %f", PrerequisiteStrength, c.Strength)
			}
		case ConnectionRelated:
			related++
			if c.Strength != RelatedStrength {
				t.Fatalf("expected related strength %f, got %f", RelatedStrength, c.Strength)
			}
		}
	}
	if prereq != 1 {
		t.Fatalf("expected 1 prerequisite edge, got %d", prereq)
	}
	if related != 1 {
		t.Fatalf("expected related pair to emit exactly once, got %d", related)
	}
}

func TestBuildSnapshot_CategorySummaries(t *testing.T) {
	now := time.Now().UTC()
	catID := uuid.New()
	goID := uuid.New()
	k8sID := uuid.New()
	uncatID := uuid.New()

	idx, err := skill.NewOntologyIndex(
		[]skill.Skill{
			{ID: goID, Name: "Go", CategoryID: &catID},
			{ID: k8sID, Name: "Kubernetes", CategoryID: &catID},
			{ID: uncatID, Name: "Negotiation"},
		},
		[]skill.Category{{ID: catID, Name: "Backend"}},
	)
	if err != nil {
		t.Fatalf("index: %v", err)
	}

	records := []skill.MasteryRecord{
		record(goID, "Go", 0.9, now),
		record(k8sID, "Kubernetes", 0.5, now),
		record(uncatID, "Negotiation", 0.2, now),
	}
	snap, err := BuildSnapshot(Input{Records: records, Ontology: idx, Now: now})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(snap.CategorySummaries) != 2 {
		t.Fatalf("expected 2 category summaries, got %d", len(snap.CategorySummaries))
	}

	var backend, uncategorized *CategorySummary
	for i := range snap.CategorySummaries {
		switch snap.CategorySummaries[i].CategoryName {
		case "Backend":
			backend = &snap.CategorySummaries[i]
		case skill.UncategorizedName:
			uncategorized = &snap.CategorySummaries[i]
		}
	}
	if backend == nil || uncategorized == nil {
		t.Fatalf("expected Backend and Uncategorized summaries")
	}
	if backend.TotalSkills != 2 || backend.MasteredSkills != 1 {
		t.Fatalf("unexpected backend stats: total=%d mastered=%d", backend.TotalSkills, backend.MasteredSkills)
	}
	if math.Abs(backend.AverageMastery-0.7) > 1e-9 {
		t.Fatalf("expected backend average 0.7, got %f", backend.AverageMastery)
	}
	if backend.CategoryID != catID {
		t.Fatalf("expected stable category id, got %s", backend.CategoryID)
	}
	if uncategorized.TotalSkills != 1 {
		t.Fatalf("unexpected uncategorized stats: %+v", uncategorized)
	}
}

func TestBuildSnapshot_DuplicateRecordFailsFast(t *testing.T) {
	now := time.Now().UTC()
	id := uuid.New()
	records := []skill.MasteryRecord{
		record(id, "Go", 0.5, now),
		record(id, "Go", 0.7, now),
	}
	_, err := BuildSnapshot(Input{Records: records, Now: now})
	if err != skill.ErrDuplicateMastery {
		t.Fatalf("expected ErrDuplicateMastery, got %v", err)
	}
}

func TestProfileCompleteness(t *testing.T) {
	full := Profile{
		HasFullName:           true,
		HasBio:                true,
		HasEducationLevel:     true,
		HasFieldOfStudy:       true,
		HasInterests:          true,
		HasResume:             true,
		HasAcademicBackground: true,
	}

	cases := []struct {
		name    string
		profile Profile
		skills  int
		want    int
	}{
		{"empty", Profile{}, 0, 0},
		{"name only", Profile{HasFullName: true}, 0, 10},
		{"one skill", Profile{}, 1, 10},
		{"five skills", Profile{}, 5, 20},
		{"ten skills", Profile{}, 10, 30},
		{"twenty skills", Profile{}, 20, 40},
		{"full profile many skills capped", full, 25, 100},
	}
	for _, tc := range cases {
		if got := completeness(tc.profile, tc.skills); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestFreshness(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	recent := []skill.MasteryRecord{record(uuid.New(), "Go", 0.5, now.Add(-2*24*time.Hour))}
	if got := freshness(recent, nil, now); got != FreshnessFresh {
		t.Fatalf("expected fresh, got %s", got)
	}

	stale := []skill.MasteryRecord{record(uuid.New(), "Go", 0.5, now.Add(-20*24*time.Hour))}
	if got := freshness(stale, nil, now); got != FreshnessStale {
		t.Fatalf("expected stale, got %s", got)
	}

	old := []skill.MasteryRecord{record(uuid.New(), "Go", 0.5, now.Add(-60*24*time.Hour))}
	if got := freshness(old, nil, now); got != FreshnessOutdated {
		t.Fatalf("expected outdated, got %s", got)
	}

	// A recent completed assessment trumps stale skill updates.
	assessed := now.Add(-3 * 24 * time.Hour)
	if got := freshness(old, &assessed, now); got != FreshnessFresh {
		t.Fatalf("expected fresh via assessment, got %s", got)
	}

	if got := freshness(nil, nil, now); got != FreshnessOutdated {
		t.Fatalf("expected outdated with no timestamps, got %s", got)
	}
}
