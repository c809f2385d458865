package seeder

import (
	"context"
	"fmt"

	"skill-twin/internal/database"
)

type CareerRolesSeeder struct{}

func (CareerRolesSeeder) Name() string { return "career_roles" }

type seedRequirement struct {
	Skill         string
	RequiredLevel float64
	Importance    float64
	Mandatory     bool
}

type seedRole struct {
	Title           string
	Description     string
	Industry        string
	Domain          string
	ExperienceLevel string
	DemandScore     float64
	Requirements    []seedRequirement
}

var seedRoles = []seedRole{
	{
		Title:           "Backend Engineer",
		Description:     "Designs and runs server-side services.",
		Industry:        "Technology",
		Domain:          "Backend",
		ExperienceLevel: "mid",
		DemandScore:     0.9,
		Requirements: []seedRequirement{
			{Skill: "Go", RequiredLevel: 0.7, Importance: 0.9, Mandatory: true},
			{Skill: "PostgreSQL", RequiredLevel: 0.6, Importance: 0.8, Mandatory: true},
			{Skill: "Redis", RequiredLevel: 0.4, Importance: 0.5},
			{Skill: "Docker", RequiredLevel: 0.5, Importance: 0.6},
		},
	},
	{
		Title:           "Platform Engineer",
		Description:     "Builds deployment and runtime infrastructure.",
		Industry:        "Technology",
		Domain:          "Infrastructure",
		ExperienceLevel: "senior",
		DemandScore:     0.8,
		Requirements: []seedRequirement{
			{Skill: "Kubernetes", RequiredLevel: 0.7, Importance: 0.9, Mandatory: true},
			{Skill: "Docker", RequiredLevel: 0.7, Importance: 0.8, Mandatory: true},
			{Skill: "AWS", RequiredLevel: 0.6, Importance: 0.7},
			{Skill: "Go", RequiredLevel: 0.5, Importance: 0.6},
		},
	},
	{
		Title:           "Data Engineer",
		Description:     "Builds data pipelines and analytical stores.",
		Industry:        "Technology",
		Domain:          "Data",
		ExperienceLevel: "mid",
		DemandScore:     0.85,
		Requirements: []seedRequirement{
			{Skill: "SQL", RequiredLevel: 0.8, Importance: 0.9, Mandatory: true},
			{Skill: "Python", RequiredLevel: 0.6, Importance: 0.8, Mandatory: true},
			{Skill: "Apache Spark", RequiredLevel: 0.6, Importance: 0.7},
			{Skill: "GCP", RequiredLevel: 0.4, Importance: 0.5},
		},
	},
	{
		Title:           "Frontend Engineer",
		Description:     "Builds browser-facing product surfaces.",
		Industry:        "Technology",
		Domain:          "Frontend",
		ExperienceLevel: "junior",
		DemandScore:     0.75,
		Requirements: []seedRequirement{
			{Skill: "JavaScript", RequiredLevel: 0.7, Importance: 0.9, Mandatory: true},
			{Skill: "TypeScript", RequiredLevel: 0.6, Importance: 0.8},
		},
	},
}

func (CareerRolesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "career_roles",
		"id", "title", "experience_level", "demand_score", "created_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "career_skill_requirements",
		"id", "career_role_id", "skill_id", "required_level", "importance", "is_mandatory"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, role := range seedRoles {
		if _, err := tx.Exec(ctx,
			`INSERT INTO career_roles (id, title, description, industry, domain, experience_level, demand_score)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
			 ON CONFLICT (title) DO NOTHING`,
			role.Title,
			role.Description,
			role.Industry,
			role.Domain,
			role.ExperienceLevel,
			role.DemandScore,
		); err != nil {
			return err
		}

		for _, req := range role.Requirements {
			if _, err := tx.Exec(ctx,
				`INSERT INTO career_skill_requirements (id, career_role_id, skill_id, required_level, importance, is_mandatory)
				 SELECT gen_random_uuid(), cr.id, s.id, $3, $4, $5
				 FROM career_roles cr, skills s
				 WHERE cr.title = $1 AND s.name = $2
				 ON CONFLICT (career_role_id, skill_id) DO NOTHING`,
				role.Title,
				req.Skill,
				req.RequiredLevel,
				req.Importance,
				req.Mandatory,
			); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
