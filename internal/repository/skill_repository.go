package repository

import (
	"context"
	"encoding/json"

	"skill-twin/internal/database"
	"skill-twin/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	ListCategories(ctx context.Context) ([]skill.Category, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]skill.Skill, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `id, name, category_id, COALESCE(keywords, '[]'::jsonb), COALESCE(prerequisites, '[]'::jsonb), COALESCE(related_skills, '[]'::jsonb), created_at`

func (r *PostgresSkillRepository) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSkills(rows)
}

func (r *PostgresSkillRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]skill.Skill, error) {
	if len(ids) == 0 {
		return []skill.Skill{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = ANY($1) ORDER BY name ASC`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSkills(rows)
}

func (r *PostgresSkillRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) ListCategories(ctx context.Context) ([]skill.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, parent_id FROM skill_categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Category, 0)
	for rows.Next() {
		var c skill.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSkills(rows database.Rows) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		var keywords, prereqs, related []byte
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID, &keywords, &prereqs, &related, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(keywords, &s.Keywords); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(prereqs, &s.Prerequisites); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(related, &s.RelatedSkills); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
