package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skill-twin/internal/database"
	"skill-twin/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrMasteryNotFound = errors.New("mastery record not found")

type MasteryUpsert struct {
	UserID          uuid.UUID
	SkillID         uuid.UUID
	MasteryLevel    float64
	ConfidenceScore float64
	Source          string
}

type MasteryRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.MasteryRecord, error)
	FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (skill.MasteryRecord, error)
	Upsert(ctx context.Context, m MasteryUpsert) (skill.MasteryRecord, error)
	Delete(ctx context.Context, userID, skillID uuid.UUID) error
}

type PostgresMasteryRepository struct {
	db database.DB
}

func NewPostgresMasteryRepository(db database.DB) *PostgresMasteryRepository {
	return &PostgresMasteryRepository{db: db}
}

func (r *PostgresMasteryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.MasteryRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.mastery_level, us.confidence_score, COALESCE(us.source, ''), us.updated_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.MasteryRecord, 0)
	for rows.Next() {
		var m skill.MasteryRecord
		if err := rows.Scan(&m.ID, &m.UserID, &m.SkillID, &m.SkillName, &m.MasteryLevel, &m.ConfidenceScore, &m.Source, &m.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMasteryRepository) FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (skill.MasteryRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.mastery_level, us.confidence_score, COALESCE(us.source, ''), us.updated_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1 AND us.skill_id = $2`,
		userID, skillID,
	)

	var m skill.MasteryRecord
	if err := row.Scan(&m.ID, &m.UserID, &m.SkillID, &m.SkillName, &m.MasteryLevel, &m.ConfidenceScore, &m.Source, &m.LastUpdated); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return skill.MasteryRecord{}, ErrMasteryNotFound
		}
		return skill.MasteryRecord{}, err
	}
	return m, nil
}

// Upsert writes the single (user, skill) record; the unique constraint
// on (user_id, skill_id) keeps the one-record-per-pair invariant.
func (r *PostgresMasteryRepository) Upsert(ctx context.Context, m MasteryUpsert) (skill.MasteryRecord, error) {
	now := time.Now().UTC()
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, mastery_level, confidence_score, source, skill_level, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
		 ON CONFLICT (user_id, skill_id) DO UPDATE SET
			mastery_level = EXCLUDED.mastery_level,
			confidence_score = EXCLUDED.confidence_score,
			source = EXCLUDED.source,
			skill_level = EXCLUDED.skill_level,
			updated_at = EXCLUDED.updated_at`,
		id,
		m.UserID,
		m.SkillID,
		m.MasteryLevel,
		m.ConfidenceScore,
		m.Source,
		string(skill.LevelForMastery(m.MasteryLevel)),
		now,
	)
	if err != nil {
		return skill.MasteryRecord{}, err
	}
	return r.FindByUserAndSkill(ctx, m.UserID, m.SkillID)
}

func (r *PostgresMasteryRepository) Delete(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMasteryNotFound
	}
	return nil
}
