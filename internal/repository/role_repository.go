package repository

import (
	"context"
	"database/sql"
	"errors"

	"skill-twin/internal/database"
	"skill-twin/internal/domain/career"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRoleNotFound = errors.New("career role not found")

type RoleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (career.Role, error)
	ListRoles(ctx context.Context, limit, offset int) ([]career.Role, error)
	FindRequirements(ctx context.Context, roleID uuid.UUID) ([]career.SkillRequirement, error)
	FindRequirementsByRoleIDs(ctx context.Context, roleIDs []uuid.UUID) (map[uuid.UUID][]career.SkillRequirement, error)
}

type PostgresRoleRepository struct {
	db database.DB
}

func NewPostgresRoleRepository(db database.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

func (r *PostgresRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (career.Role, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, COALESCE(description, ''), COALESCE(industry, ''), COALESCE(domain, ''), experience_level, demand_score, created_at
		 FROM career_roles WHERE id = $1`,
		id,
	)

	var role career.Role
	var level string
	if err := row.Scan(&role.ID, &role.Title, &role.Description, &role.Industry, &role.Domain, &level, &role.DemandScore, &role.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return career.Role{}, ErrRoleNotFound
		}
		return career.Role{}, err
	}
	role.ExperienceLevel = career.ExperienceLevel(level)
	return role, nil
}

func (r *PostgresRoleRepository) ListRoles(ctx context.Context, limit, offset int) ([]career.Role, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), COALESCE(industry, ''), COALESCE(domain, ''), experience_level, demand_score, created_at
		 FROM career_roles
		 ORDER BY demand_score DESC, title ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]career.Role, 0)
	for rows.Next() {
		var role career.Role
		var level string
		if err := rows.Scan(&role.ID, &role.Title, &role.Description, &role.Industry, &role.Domain, &level, &role.DemandScore, &role.CreatedAt); err != nil {
			return nil, err
		}
		role.ExperienceLevel = career.ExperienceLevel(level)
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRoleRepository) FindRequirements(ctx context.Context, roleID uuid.UUID) ([]career.SkillRequirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT csr.id, csr.career_role_id, csr.skill_id, s.name,
		        COALESCE(sc.name, 'Uncategorized'),
		        csr.required_level, csr.importance, csr.is_mandatory
		 FROM career_skill_requirements csr
		 JOIN skills s ON s.id = csr.skill_id
		 LEFT JOIN skill_categories sc ON sc.id = s.category_id
		 WHERE csr.career_role_id = $1
		 ORDER BY csr.is_mandatory DESC, csr.importance DESC, s.name ASC`,
		roleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequirements(rows)
}

func (r *PostgresRoleRepository) FindRequirementsByRoleIDs(ctx context.Context, roleIDs []uuid.UUID) (map[uuid.UUID][]career.SkillRequirement, error) {
	out := make(map[uuid.UUID][]career.SkillRequirement, len(roleIDs))
	if len(roleIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT csr.id, csr.career_role_id, csr.skill_id, s.name,
		        COALESCE(sc.name, 'Uncategorized'),
		        csr.required_level, csr.importance, csr.is_mandatory
		 FROM career_skill_requirements csr
		 JOIN skills s ON s.id = csr.skill_id
		 LEFT JOIN skill_categories sc ON sc.id = s.category_id
		 WHERE csr.career_role_id = ANY($1)
		 ORDER BY csr.is_mandatory DESC, csr.importance DESC, s.name ASC`,
		roleIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs, err := scanRequirements(rows)
	if err != nil {
		return nil, err
	}
	for _, req := range reqs {
		out[req.RoleID] = append(out[req.RoleID], req)
	}
	return out, nil
}

func scanRequirements(rows database.Rows) ([]career.SkillRequirement, error) {
	out := make([]career.SkillRequirement, 0)
	for rows.Next() {
		var req career.SkillRequirement
		if err := rows.Scan(&req.ID, &req.RoleID, &req.SkillID, &req.SkillName, &req.Category, &req.RequiredLevel, &req.Importance, &req.IsMandatory); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
