package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"skill-twin/internal/domain/learning"
	"skill-twin/internal/domain/rollup"
	"skill-twin/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrRoadmapNotFound  = errors.New("roadmap not found")
	ErrResourceNotFound = errors.New("learning resource not found")
	ErrForbiddenRoadmap = errors.New("roadmap belongs to another user")
	ErrInvalidProgress  = errors.New("watch progress out of range")
)

type ProgressInput struct {
	ResourceID    uuid.UUID
	WatchProgress float64
	Completed     bool
}

// ProgressNotifier pushes a recomputed roadmap to any live listeners.
// A nil notifier means nobody is listening and the update is skipped.
type ProgressNotifier interface {
	NotifyProgress(userID uuid.UUID, r learning.Roadmap)
}

// NextResourceView pairs the recommended resource with the module it
// lives in. AllCompleted is set when the roadmap has nothing left.
type NextResourceView struct {
	AllCompleted bool
	Module       learning.Module
	Resource     learning.Resource
}

type ProgressUsecase interface {
	UpdateProgress(ctx context.Context, userID, roadmapID uuid.UUID, in ProgressInput) (learning.Roadmap, error)
	GetRoadmap(ctx context.Context, userID, roadmapID uuid.UUID) (learning.Roadmap, error)
	ListRoadmaps(ctx context.Context, userID uuid.UUID) ([]learning.Roadmap, error)
	NextResource(ctx context.Context, userID, roadmapID uuid.UUID) (NextResourceView, error)
}

type Progress struct {
	roadmaps repository.RoadmapRepository
	notifier ProgressNotifier
	logger   *log.Logger
	now      func() time.Time
}

func NewProgressUsecase(roadmaps repository.RoadmapRepository, notifier ProgressNotifier, logger *log.Logger) *Progress {
	return &Progress{roadmaps: roadmaps, notifier: notifier, logger: logger, now: time.Now}
}

func (u *Progress) UpdateProgress(ctx context.Context, userID, roadmapID uuid.UUID, in ProgressInput) (learning.Roadmap, error) {
	if userID == uuid.Nil {
		return learning.Roadmap{}, ErrUnauthorized
	}
	if roadmapID == uuid.Nil || in.ResourceID == uuid.Nil {
		return learning.Roadmap{}, ErrInvalidInput
	}
	if in.WatchProgress < 0 || in.WatchProgress > 1 {
		return learning.Roadmap{}, ErrInvalidProgress
	}

	roadmap, err := u.roadmaps.FindTreeByID(ctx, roadmapID)
	if err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return learning.Roadmap{}, ErrRoadmapNotFound
		}
		return learning.Roadmap{}, ErrInternal
	}
	if roadmap.UserID != userID {
		return learning.Roadmap{}, ErrForbiddenRoadmap
	}

	if !applyResourceChange(&roadmap, in) {
		return learning.Roadmap{}, ErrResourceNotFound
	}

	updated := rollup.Recompute(roadmap, u.now().UTC())

	watchProgress := in.WatchProgress
	if in.Completed {
		watchProgress = 1.0
	}
	if err := u.roadmaps.SaveProgress(ctx, updated, in.ResourceID, watchProgress, in.Completed); err != nil {
		return learning.Roadmap{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.NotifyProgress(userID, updated)
	}
	if u.logger != nil {
		u.logger.Printf("[Progress] roadmap updated | roadmap_id=%s resource_id=%s progress=%.2f", roadmapID, in.ResourceID, updated.OverallProgress)
	}
	return updated, nil
}

func (u *Progress) GetRoadmap(ctx context.Context, userID, roadmapID uuid.UUID) (learning.Roadmap, error) {
	if userID == uuid.Nil {
		return learning.Roadmap{}, ErrUnauthorized
	}
	if roadmapID == uuid.Nil {
		return learning.Roadmap{}, ErrInvalidInput
	}
	roadmap, err := u.roadmaps.FindTreeByID(ctx, roadmapID)
	if err != nil {
		if errors.Is(err, repository.ErrRoadmapNotFound) {
			return learning.Roadmap{}, ErrRoadmapNotFound
		}
		return learning.Roadmap{}, ErrInternal
	}
	if roadmap.UserID != userID {
		return learning.Roadmap{}, ErrForbiddenRoadmap
	}
	return roadmap, nil
}

// NextResource recommends the first incomplete resource, in module and
// resource order, of the caller's roadmap.
func (u *Progress) NextResource(ctx context.Context, userID, roadmapID uuid.UUID) (NextResourceView, error) {
	roadmap, err := u.GetRoadmap(ctx, userID, roadmapID)
	if err != nil {
		return NextResourceView{}, err
	}
	module, resource, ok := learning.NextIncomplete(roadmap)
	if !ok {
		return NextResourceView{AllCompleted: true}, nil
	}
	return NextResourceView{Module: module, Resource: resource}, nil
}

func (u *Progress) ListRoadmaps(ctx context.Context, userID uuid.UUID) ([]learning.Roadmap, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	roadmaps, err := u.roadmaps.ListByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return roadmaps, nil
}

// applyResourceChange writes the new progress into the in-memory tree.
// Marking a resource completed snaps its watch progress to 1.0.
func applyResourceChange(r *learning.Roadmap, in ProgressInput) bool {
	for mi := range r.Modules {
		resources := r.Modules[mi].Resources
		for ri := range resources {
			if resources[ri].ID != in.ResourceID {
				continue
			}
			resources[ri].WatchProgress = in.WatchProgress
			resources[ri].Completed = in.Completed
			if in.Completed {
				resources[ri].WatchProgress = 1.0
			}
			return true
		}
	}
	return false
}
