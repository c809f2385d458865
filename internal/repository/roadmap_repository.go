package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-twin/internal/database"
	"skill-twin/internal/domain/learning"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrRoadmapNotFound  = errors.New("roadmap not found")
	ErrResourceNotFound = errors.New("learning resource not found")
)

type RoadmapRepository interface {
	FindTreeByID(ctx context.Context, roadmapID uuid.UUID) (learning.Roadmap, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]learning.Roadmap, error)
	// SaveProgress persists a leaf resource change together with the
	// recomputed module and roadmap aggregates in one transaction, so
	// the roll-up invariant holds under concurrent writers.
	SaveProgress(ctx context.Context, r learning.Roadmap, resourceID uuid.UUID, watchProgress float64, completed bool) error
}

type PostgresRoadmapRepository struct {
	db database.DB
}

func NewPostgresRoadmapRepository(db database.DB) *PostgresRoadmapRepository {
	return &PostgresRoadmapRepository{db: db}
}

func (r *PostgresRoadmapRepository) FindTreeByID(ctx context.Context, roadmapID uuid.UUID) (learning.Roadmap, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, COALESCE(description, ''), COALESCE(target_career_role, ''),
		        estimated_hours, overall_progress, hours_completed, completed, completed_at, created_at
		 FROM learning_roadmaps WHERE id = $1`,
		roadmapID,
	)

	var rm learning.Roadmap
	if err := row.Scan(&rm.ID, &rm.UserID, &rm.Title, &rm.Description, &rm.TargetCareerRole,
		&rm.EstimatedHours, &rm.OverallProgress, &rm.HoursCompleted, &rm.Completed, &rm.CompletedAt, &rm.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return learning.Roadmap{}, ErrRoadmapNotFound
		}
		return learning.Roadmap{}, err
	}

	modules, err := r.findModules(ctx, roadmapID)
	if err != nil {
		return learning.Roadmap{}, err
	}
	rm.Modules = modules
	return rm, nil
}

func (r *PostgresRoadmapRepository) findModules(ctx context.Context, roadmapID uuid.UUID) ([]learning.Module, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, roadmap_id, title, COALESCE(description, ''), estimated_hours, order_index,
		        progress, status, started_at, completed_at
		 FROM learning_modules
		 WHERE roadmap_id = $1
		 ORDER BY order_index ASC`,
		roadmapID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	modules := make([]learning.Module, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var m learning.Module
		var status string
		if err := rows.Scan(&m.ID, &m.RoadmapID, &m.Title, &m.Description, &m.EstimatedHours, &m.OrderIndex,
			&m.Progress, &status, &m.StartedAt, &m.CompletedAt); err != nil {
			return nil, err
		}
		m.Status = learning.Status(status)
		modules = append(modules, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byModule, err := r.findResources(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range modules {
		modules[i].Resources = byModule[modules[i].ID]
	}
	return modules, nil
}

func (r *PostgresRoadmapRepository) findResources(ctx context.Context, moduleIDs []uuid.UUID) (map[uuid.UUID][]learning.Resource, error) {
	out := make(map[uuid.UUID][]learning.Resource, len(moduleIDs))
	if len(moduleIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, module_id, title, COALESCE(url, ''), COALESCE(duration_seconds, 0), order_index,
		        watch_progress, completed
		 FROM learning_resources
		 WHERE module_id = ANY($1)
		 ORDER BY order_index ASC`,
		moduleIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var res learning.Resource
		if err := rows.Scan(&res.ID, &res.ModuleID, &res.Title, &res.URL, &res.DurationSeconds, &res.OrderIndex,
			&res.WatchProgress, &res.Completed); err != nil {
			return nil, err
		}
		out[res.ModuleID] = append(out[res.ModuleID], res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRoadmapRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]learning.Roadmap, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, COALESCE(description, ''), COALESCE(target_career_role, ''),
		        estimated_hours, overall_progress, hours_completed, completed, completed_at, created_at
		 FROM learning_roadmaps
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]learning.Roadmap, 0)
	for rows.Next() {
		var rm learning.Roadmap
		if err := rows.Scan(&rm.ID, &rm.UserID, &rm.Title, &rm.Description, &rm.TargetCareerRole,
			&rm.EstimatedHours, &rm.OverallProgress, &rm.HoursCompleted, &rm.Completed, &rm.CompletedAt, &rm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRoadmapRepository) SaveProgress(ctx context.Context, rm learning.Roadmap, resourceID uuid.UUID, watchProgress float64, completed bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	affected, err := tx.Exec(ctx,
		`UPDATE learning_resources SET watch_progress = $1, completed = $2, updated_at = $3 WHERE id = $4`,
		watchProgress, completed, now, resourceID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrResourceNotFound
	}

	for _, m := range rm.Modules {
		if _, err := tx.Exec(ctx,
			`UPDATE learning_modules SET progress = $1, status = $2, started_at = $3, completed_at = $4 WHERE id = $5`,
			m.Progress, string(m.Status), m.StartedAt, m.CompletedAt, m.ID,
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE learning_roadmaps SET overall_progress = $1, hours_completed = $2, completed = $3, completed_at = $4, updated_at = $5 WHERE id = $6`,
		rm.OverallProgress, rm.HoursCompleted, rm.Completed, rm.CompletedAt, now, rm.ID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
