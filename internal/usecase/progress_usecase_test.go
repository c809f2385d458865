package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-twin/internal/domain/learning"
	"skill-twin/internal/repository"

	"github.com/google/uuid"
)

type mockRoadmapRepo struct {
	tree    learning.Roadmap
	treeErr error
	list    []learning.Roadmap
	saved   *learning.Roadmap
	saveErr error
}

func (m *mockRoadmapRepo) FindTreeByID(context.Context, uuid.UUID) (learning.Roadmap, error) {
	return m.tree, m.treeErr
}
func (m *mockRoadmapRepo) ListByUserID(context.Context, uuid.UUID) ([]learning.Roadmap, error) {
	return m.list, nil
}
func (m *mockRoadmapRepo) SaveProgress(_ context.Context, r learning.Roadmap, _ uuid.UUID, _ float64, _ bool) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &r
	return nil
}

type mockNotifier struct {
	userID  uuid.UUID
	roadmap *learning.Roadmap
}

func (m *mockNotifier) NotifyProgress(userID uuid.UUID, r learning.Roadmap) {
	m.userID = userID
	m.roadmap = &r
}

func progressFixture(userID uuid.UUID) (learning.Roadmap, uuid.UUID) {
	roadmapID := uuid.New()
	moduleID := uuid.New()
	resourceID := uuid.New()
	return learning.Roadmap{
		ID:     roadmapID,
		UserID: userID,
		Title:  "Backend Path",
		Modules: []learning.Module{{
			ID:             moduleID,
			RoadmapID:      roadmapID,
			Title:          "Go Basics",
			EstimatedHours: 10,
			Status:         learning.StatusNotStarted,
			Resources: []learning.Resource{
				{ID: resourceID, ModuleID: moduleID, Title: "Intro"},
				{ID: uuid.New(), ModuleID: moduleID, Title: "Structs"},
			},
		}},
	}, resourceID
}

func TestProgressUsecase_UpdateProgress_RecomputesAndPersists(t *testing.T) {
	userID := uuid.New()
	tree, resourceID := progressFixture(userID)
	repo := &mockRoadmapRepo{tree: tree}
	notifier := &mockNotifier{}
	uc := NewProgressUsecase(repo, notifier, nil)

	out, err := uc.UpdateProgress(context.Background(), userID, tree.ID, ProgressInput{
		ResourceID:    resourceID,
		WatchProgress: 0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Modules[0].Progress != 0.25 {
		t.Fatalf("expected module progress 0.25, got %v", out.Modules[0].Progress)
	}
	if out.Modules[0].Status != learning.StatusInProgress {
		t.Fatalf("expected module in_progress, got %s", out.Modules[0].Status)
	}
	if repo.saved == nil {
		t.Fatalf("expected recomputed roadmap to be persisted")
	}
	if notifier.roadmap == nil || notifier.userID != userID {
		t.Fatalf("expected notifier to receive update for user %s", userID)
	}
}

func TestProgressUsecase_UpdateProgress_CompletedSnapsToFull(t *testing.T) {
	userID := uuid.New()
	tree, resourceID := progressFixture(userID)
	repo := &mockRoadmapRepo{tree: tree}
	uc := NewProgressUsecase(repo, nil, nil)

	out, err := uc.UpdateProgress(context.Background(), userID, tree.ID, ProgressInput{
		ResourceID:    resourceID,
		WatchProgress: 0.7,
		Completed:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.Modules[0].Resources[0].WatchProgress; got != 1.0 {
		t.Fatalf("expected completed resource at 1.0 watch progress, got %v", got)
	}
}

func TestProgressUsecase_UpdateProgress_OtherUsersRoadmap(t *testing.T) {
	tree, resourceID := progressFixture(uuid.New())
	uc := NewProgressUsecase(&mockRoadmapRepo{tree: tree}, nil, nil)

	_, err := uc.UpdateProgress(context.Background(), uuid.New(), tree.ID, ProgressInput{
		ResourceID:    resourceID,
		WatchProgress: 0.5,
	})
	if !errors.Is(err, ErrForbiddenRoadmap) {
		t.Fatalf("expected ErrForbiddenRoadmap, got %v", err)
	}
}

func TestProgressUsecase_UpdateProgress_UnknownResource(t *testing.T) {
	userID := uuid.New()
	tree, _ := progressFixture(userID)
	uc := NewProgressUsecase(&mockRoadmapRepo{tree: tree}, nil, nil)

	_, err := uc.UpdateProgress(context.Background(), userID, tree.ID, ProgressInput{
		ResourceID:    uuid.New(),
		WatchProgress: 0.5,
	})
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestProgressUsecase_UpdateProgress_OutOfRange(t *testing.T) {
	userID := uuid.New()
	tree, resourceID := progressFixture(userID)
	uc := NewProgressUsecase(&mockRoadmapRepo{tree: tree}, nil, nil)

	_, err := uc.UpdateProgress(context.Background(), userID, tree.ID, ProgressInput{
		ResourceID:    resourceID,
		WatchProgress: 1.5,
	})
	if !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got %v", err)
	}
}

func TestProgressUsecase_NextResource_SkipsCompleted(t *testing.T) {
	userID := uuid.New()
	roadmapID := uuid.New()
	doneModule := uuid.New()
	openModule := uuid.New()
	wantResource := uuid.New()
	tree := learning.Roadmap{
		ID:     roadmapID,
		UserID: userID,
		Modules: []learning.Module{
			{
				ID:         openModule,
				Title:      "Concurrency",
				OrderIndex: 2,
				Status:     learning.StatusInProgress,
				Progress:   0.5,
				Resources: []learning.Resource{
					{ID: uuid.New(), Title: "Goroutines", OrderIndex: 1, Completed: true},
					{ID: wantResource, Title: "Channels", OrderIndex: 2},
				},
			},
			{
				ID:         doneModule,
				Title:      "Go Basics",
				OrderIndex: 1,
				Status:     learning.StatusCompleted,
				Resources: []learning.Resource{
					{ID: uuid.New(), Title: "Intro", OrderIndex: 1, Completed: true},
				},
			},
		},
	}
	uc := NewProgressUsecase(&mockRoadmapRepo{tree: tree}, nil, nil)

	next, err := uc.NextResource(context.Background(), userID, roadmapID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.AllCompleted {
		t.Fatalf("roadmap still has open resources")
	}
	if next.Module.ID != openModule {
		t.Fatalf("expected the in-progress module, got %s", next.Module.Title)
	}
	if next.Resource.ID != wantResource {
		t.Fatalf("expected the first incomplete resource, got %s", next.Resource.Title)
	}
}

func TestProgressUsecase_NextResource_AllCompleted(t *testing.T) {
	userID := uuid.New()
	tree, _ := progressFixture(userID)
	tree.Modules[0].Status = learning.StatusCompleted
	for i := range tree.Modules[0].Resources {
		tree.Modules[0].Resources[i].Completed = true
	}
	uc := NewProgressUsecase(&mockRoadmapRepo{tree: tree}, nil, nil)

	next, err := uc.NextResource(context.Background(), userID, tree.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.AllCompleted {
		t.Fatalf("expected AllCompleted for a finished roadmap")
	}
}

func TestProgressUsecase_NextResource_OtherUsersRoadmap(t *testing.T) {
	tree, _ := progressFixture(uuid.New())
	uc := NewProgressUsecase(&mockRoadmapRepo{tree: tree}, nil, nil)

	_, err := uc.NextResource(context.Background(), uuid.New(), tree.ID)
	if !errors.Is(err, ErrForbiddenRoadmap) {
		t.Fatalf("expected ErrForbiddenRoadmap, got %v", err)
	}
}

func TestProgressUsecase_UpdateProgress_RoadmapMissing(t *testing.T) {
	uc := NewProgressUsecase(&mockRoadmapRepo{treeErr: repository.ErrRoadmapNotFound}, nil, nil)
	_, err := uc.UpdateProgress(context.Background(), uuid.New(), uuid.New(), ProgressInput{
		ResourceID:    uuid.New(),
		WatchProgress: 0.5,
	})
	if !errors.Is(err, ErrRoadmapNotFound) {
		t.Fatalf("expected ErrRoadmapNotFound, got %v", err)
	}
}
