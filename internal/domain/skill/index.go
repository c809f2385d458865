package skill

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPrerequisiteCycle = errors.New("prerequisite cycle detected")
	ErrDuplicateMastery  = errors.New("duplicate mastery record for user and skill")
)

const UncategorizedName = "Uncategorized"

// OntologyIndex is a read-only, id-keyed view over the skill ontology.
// Skills reference categories and each other by id only, so the index
// carries no cyclic object graph.
type OntologyIndex struct {
	skills     map[uuid.UUID]Skill
	categories map[uuid.UUID]Category
}

// NewOntologyIndex builds the index and rejects ontologies whose
// prerequisite edges contain a cycle.
func NewOntologyIndex(skills []Skill, categories []Category) (*OntologyIndex, error) {
	idx := &OntologyIndex{
		skills:     make(map[uuid.UUID]Skill, len(skills)),
		categories: make(map[uuid.UUID]Category, len(categories)),
	}
	for _, c := range categories {
		if c.ID == uuid.Nil {
			continue
		}
		idx.categories[c.ID] = c
	}
	for _, s := range skills {
		if s.ID == uuid.Nil {
			continue
		}
		idx.skills[s.ID] = s
	}

	if err := idx.checkPrerequisiteCycles(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *OntologyIndex) Skill(id uuid.UUID) (Skill, bool) {
	s, ok := idx.skills[id]
	return s, ok
}

func (idx *OntologyIndex) Category(id uuid.UUID) (Category, bool) {
	c, ok := idx.categories[id]
	return c, ok
}

// CategoryName resolves a skill's category name, falling back to the
// Uncategorized sentinel when the skill has no category or the skill
// itself is unknown to the ontology.
func (idx *OntologyIndex) CategoryName(skillID uuid.UUID) string {
	s, ok := idx.skills[skillID]
	if !ok || s.CategoryID == nil {
		return UncategorizedName
	}
	c, ok := idx.categories[*s.CategoryID]
	if !ok {
		return UncategorizedName
	}
	return c.Name
}

func (idx *OntologyIndex) checkPrerequisiteCycles() error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[uuid.UUID]int, len(idx.skills))

	var visit func(id uuid.UUID) error
	visit = func(id uuid.UUID) error {
		switch state[id] {
		case visiting:
			return ErrPrerequisiteCycle
		case done:
			return nil
		}
		state[id] = visiting
		if s, ok := idx.skills[id]; ok {
			for _, pre := range s.Prerequisites {
				if err := visit(pre); err != nil {
					return err
				}
			}
		}
		state[id] = done
		return nil
	}

	for id := range idx.skills {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// RecordIndex maps mastery records by skill id. A duplicate (user,
// skill) pair is upstream data corruption and is surfaced loudly
// rather than resolved by picking one record arbitrarily.
func RecordIndex(records []MasteryRecord) (map[uuid.UUID]MasteryRecord, error) {
	out := make(map[uuid.UUID]MasteryRecord, len(records))
	for _, r := range records {
		if r.SkillID == uuid.Nil {
			continue
		}
		if _, exists := out[r.SkillID]; exists {
			return nil, ErrDuplicateMastery
		}
		out[r.SkillID] = r
	}
	return out, nil
}
