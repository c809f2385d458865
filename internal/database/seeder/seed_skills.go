package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"skill-twin/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

type seedSkill struct {
	Name          string
	Category      string
	Keywords      []string
	Prerequisites []string
	Related       []string
}

var seedCategories = []string{
	"Programming Language",
	"Database",
	"DevOps",
	"Cloud",
	"Data",
}

// Prerequisites and related names must refer to other seeded skills;
// the seeder resolves them to ids after all rows exist.
var seedSkills = []seedSkill{
	{Name: "Go", Category: "Programming Language", Keywords: []string{"golang", "go"}},
	{Name: "JavaScript", Category: "Programming Language", Keywords: []string{"js", "ecmascript"}},
	{Name: "TypeScript", Category: "Programming Language", Keywords: []string{"ts"}, Prerequisites: []string{"JavaScript"}},
	{Name: "SQL", Category: "Database", Keywords: []string{"sql"}},
	{Name: "PostgreSQL", Category: "Database", Keywords: []string{"postgres", "psql"}, Prerequisites: []string{"SQL"}},
	{Name: "Redis", Category: "Database", Keywords: []string{"redis"}, Related: []string{"PostgreSQL"}},
	{Name: "Docker", Category: "DevOps", Keywords: []string{"docker", "containers"}},
	{Name: "Kubernetes", Category: "DevOps", Keywords: []string{"k8s"}, Prerequisites: []string{"Docker"}},
	{Name: "AWS", Category: "Cloud", Keywords: []string{"aws", "amazon web services"}, Related: []string{"Docker"}},
	{Name: "GCP", Category: "Cloud", Keywords: []string{"gcp", "google cloud"}, Related: []string{"AWS"}},
	{Name: "Python", Category: "Programming Language", Keywords: []string{"python"}},
	{Name: "Apache Spark", Category: "Data", Keywords: []string{"spark"}, Prerequisites: []string{"Python", "SQL"}},
}

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skill_categories", "id", "name"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "skills",
		"id", "name", "category_id", "keywords", "prerequisites", "related_skills", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, name := range seedCategories {
		if _, err := tx.Exec(ctx,
			`INSERT INTO skill_categories (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
			name,
		); err != nil {
			return err
		}
	}

	for _, s := range seedSkills {
		keywords, err := json.Marshal(s.Keywords)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO skills (id, name, category_id, keywords)
			 SELECT gen_random_uuid(), $1, sc.id, $3::jsonb
			 FROM skill_categories sc WHERE sc.name = $2
			 ON CONFLICT (name) DO NOTHING`,
			s.Name,
			s.Category,
			string(keywords),
		); err != nil {
			return err
		}
	}

	for _, s := range seedSkills {
		if err := linkSkillNames(ctx, tx, s.Name, "prerequisites", s.Prerequisites); err != nil {
			return err
		}
		if err := linkSkillNames(ctx, tx, s.Name, "related_skills", s.Related); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func linkSkillNames(ctx context.Context, tx database.Tx, skillName, column string, names []string) error {
	if len(names) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE skills SET %s = (
			SELECT COALESCE(jsonb_agg(s2.id), '[]'::jsonb) FROM skills s2 WHERE s2.name = ANY($2)
		 ) WHERE name = $1`,
		column,
	)
	_, err := tx.Exec(ctx, query, skillName, names)
	return err
}
