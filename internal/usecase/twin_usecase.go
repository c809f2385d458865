package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"skill-twin/internal/domain/skill"
	"skill-twin/internal/domain/twin"
	"skill-twin/internal/repository"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

const twinCacheTTL = 5 * time.Minute

type TwinUsecase interface {
	GenerateTwin(ctx context.Context, userID uuid.UUID) (twin.Snapshot, error)
	InvalidateTwin(ctx context.Context, userID uuid.UUID)
}

type Twin struct {
	users       repository.UserRepository
	mastery     repository.MasteryRepository
	skills      repository.SkillRepository
	assessments repository.AssessmentRepository
	cache       TwinCache
	logger      *log.Logger
}

func NewTwinUsecase(
	users repository.UserRepository,
	mastery repository.MasteryRepository,
	skills repository.SkillRepository,
	assessments repository.AssessmentRepository,
	cache TwinCache,
	logger *log.Logger,
) *Twin {
	return &Twin{users: users, mastery: mastery, skills: skills, assessments: assessments, cache: cache, logger: logger}
}

func (u *Twin) GenerateTwin(ctx context.Context, userID uuid.UUID) (twin.Snapshot, error) {
	if userID == uuid.Nil {
		return twin.Snapshot{}, ErrUnauthorized
	}

	if u.cache != nil {
		var cached twin.Snapshot
		hit, err := u.cache.GetJSON(ctx, twinCacheKey(userID), &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	facts, err := u.users.ProfileFacts(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return twin.Snapshot{}, ErrUserNotFound
		}
		return twin.Snapshot{}, ErrInternal
	}

	records, err := u.mastery.FindByUserID(ctx, userID)
	if err != nil {
		return twin.Snapshot{}, ErrInternal
	}

	skills, err := u.skills.ListSkills(ctx)
	if err != nil {
		return twin.Snapshot{}, ErrInternal
	}
	categories, err := u.skills.ListCategories(ctx)
	if err != nil {
		return twin.Snapshot{}, ErrInternal
	}

	index, err := skill.NewOntologyIndex(skills, categories)
	if err != nil {
		// Upstream data corruption: surface loudly, never score over it.
		if u.logger != nil {
			u.logger.Printf("[Twin] ontology rejected | user_id=%s error=%v", userID, err)
		}
		return twin.Snapshot{}, err
	}

	lastAssessment, err := u.assessments.LatestCompletedAt(ctx, userID)
	if err != nil {
		return twin.Snapshot{}, ErrInternal
	}

	snap, err := twin.BuildSnapshot(twin.Input{
		UserID:   userID,
		Records:  records,
		Ontology: index,
		Profile: twin.Profile{
			HasFullName:           facts.HasFullName,
			HasBio:                facts.HasBio,
			HasEducationLevel:     facts.HasEducationLevel,
			HasFieldOfStudy:       facts.HasFieldOfStudy,
			HasInterests:          facts.HasInterests,
			HasResume:             facts.HasResume,
			HasAcademicBackground: facts.HasAcademicBackground,
		},
		LastAssessment: lastAssessment,
		Now:            time.Now().UTC(),
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Twin] snapshot rejected | user_id=%s error=%v", userID, err)
		}
		return twin.Snapshot{}, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, twinCacheKey(userID), snap, twinCacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("[Twin] cache write skipped | user_id=%s error=%v", userID, err)
		}
	}

	return snap, nil
}

// InvalidateTwin drops the cached snapshot after any mastery write so
// the next read reflects current records.
func (u *Twin) InvalidateTwin(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil || userID == uuid.Nil {
		return
	}
	if err := u.cache.Delete(ctx, twinCacheKey(userID)); err != nil && u.logger != nil {
		u.logger.Printf("[Twin] cache invalidation failed | user_id=%s error=%v", userID, err)
	}
}
