package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-twin/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Assessment struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SkillID     uuid.UUID
	Score       float64
	Completed   bool
	CompletedAt *time.Time
}

type AssessmentRepository interface {
	// Create records a finished assessment for one skill.
	Create(ctx context.Context, userID, skillID uuid.UUID, score float64) (Assessment, error)
	// LatestCompletedAt returns the completion time of the user's most
	// recent finished assessment, or nil when none exists.
	LatestCompletedAt(ctx context.Context, userID uuid.UUID) (*time.Time, error)
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

func (r *PostgresAssessmentRepository) Create(ctx context.Context, userID, skillID uuid.UUID, score float64) (Assessment, error) {
	now := time.Now().UTC()
	a := Assessment{ID: uuid.New(), UserID: userID, SkillID: skillID, Score: score, Completed: true, CompletedAt: &now}
	_, err := r.db.Exec(ctx,
		`INSERT INTO assessments (id, user_id, skill_id, score, completed, completed_at)
		 VALUES ($1,$2,$3,$4,TRUE,$5)`,
		a.ID, a.UserID, a.SkillID, a.Score, now,
	)
	if err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (r *PostgresAssessmentRepository) LatestCompletedAt(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	row := r.db.QueryRow(ctx,
		`SELECT completed_at
		 FROM assessments
		 WHERE user_id = $1 AND completed = TRUE
		 ORDER BY completed_at DESC
		 LIMIT 1`,
		userID,
	)

	var t time.Time
	if err := row.Scan(&t); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
