package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-twin/internal/domain/skill"
	"skill-twin/internal/domain/twin"
	"skill-twin/internal/repository"

	"github.com/google/uuid"
)

type mockTwinInvalidator struct {
	invalidated []uuid.UUID
}

func (m *mockTwinInvalidator) GenerateTwin(context.Context, uuid.UUID) (twin.Snapshot, error) {
	return twin.Snapshot{}, nil
}
func (m *mockTwinInvalidator) InvalidateTwin(_ context.Context, userID uuid.UUID) {
	m.invalidated = append(m.invalidated, userID)
}

func TestInteractionUsecase_CourseCompletion(t *testing.T) {
	userID := uuid.New()
	skillID := uuid.New()
	mastery := &mockMasteryRepo{
		record: skill.MasteryRecord{UserID: userID, SkillID: skillID, MasteryLevel: 0.5, ConfidenceScore: 0.4},
	}
	twin := &mockTwinInvalidator{}
	uc := NewInteractionUsecase(mastery, mockSkillRepo{exists: true}, twin)

	rec, err := uc.RecordInteraction(context.Background(), userID, InteractionInput{
		SkillID: skillID,
		Type:    InteractionCourseCompletion,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.MasteryLevel != 0.65 {
		t.Fatalf("expected mastery 0.65 after course completion, got %v", rec.MasteryLevel)
	}
	if rec.ConfidenceScore != 0.5 {
		t.Fatalf("expected confidence 0.5, got %v", rec.ConfidenceScore)
	}
	if rec.Source != InteractionCourseCompletion {
		t.Fatalf("expected source %q, got %q", InteractionCourseCompletion, rec.Source)
	}
	if len(twin.invalidated) != 1 || twin.invalidated[0] != userID {
		t.Fatalf("expected twin cache invalidation for %s", userID)
	}
}

func TestInteractionUsecase_AssessmentAveragesTowardScore(t *testing.T) {
	userID := uuid.New()
	skillID := uuid.New()
	mastery := &mockMasteryRepo{
		record: skill.MasteryRecord{UserID: userID, SkillID: skillID, MasteryLevel: 0.4, ConfidenceScore: 0.3},
	}
	uc := NewInteractionUsecase(mastery, mockSkillRepo{exists: true}, nil)

	rec, err := uc.RecordInteraction(context.Background(), userID, InteractionInput{
		SkillID: skillID,
		Type:    InteractionAssessment,
		Score:   floatPtr(0.6),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.MasteryLevel != 0.5 {
		t.Fatalf("expected mastery (0.4+0.6)/2 = 0.5, got %v", rec.MasteryLevel)
	}
	if rec.ConfidenceScore != 0.5 {
		t.Fatalf("expected confidence 0.5, got %v", rec.ConfidenceScore)
	}
}

func TestInteractionUsecase_FirstInteractionSeedsBaseline(t *testing.T) {
	mastery := &mockMasteryRepo{findErr: repository.ErrMasteryNotFound}
	uc := NewInteractionUsecase(mastery, mockSkillRepo{exists: true}, nil)

	rec, err := uc.RecordInteraction(context.Background(), uuid.New(), InteractionInput{
		SkillID: uuid.New(),
		Type:    InteractionCourseCompletion,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.MasteryLevel != 0.25 {
		t.Fatalf("expected mastery 0.1 baseline + 0.15 = 0.25, got %v", rec.MasteryLevel)
	}
	if rec.ConfidenceScore != 0.4 {
		t.Fatalf("expected confidence 0.3 baseline + 0.1 = 0.4, got %v", rec.ConfidenceScore)
	}
}

func TestInteractionUsecase_PracticeDefaultsScore(t *testing.T) {
	userID := uuid.New()
	skillID := uuid.New()
	mastery := &mockMasteryRepo{
		record: skill.MasteryRecord{UserID: userID, SkillID: skillID, MasteryLevel: 0.5, ConfidenceScore: 0.5},
	}
	uc := NewInteractionUsecase(mastery, mockSkillRepo{exists: true}, nil)

	rec, err := uc.RecordInteraction(context.Background(), userID, InteractionInput{
		SkillID: skillID,
		Type:    InteractionPractice,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.MasteryLevel != 0.525 {
		t.Fatalf("expected mastery 0.5 + 0.05*0.5 = 0.525 with the default practice score, got %v", rec.MasteryLevel)
	}
	if rec.ConfidenceScore != 0.55 {
		t.Fatalf("expected confidence 0.55, got %v", rec.ConfidenceScore)
	}
}

func TestInteractionUsecase_AssessmentWithoutScoreLeavesMastery(t *testing.T) {
	userID := uuid.New()
	skillID := uuid.New()
	mastery := &mockMasteryRepo{
		record: skill.MasteryRecord{UserID: userID, SkillID: skillID, MasteryLevel: 0.4, ConfidenceScore: 0.3},
	}
	uc := NewInteractionUsecase(mastery, mockSkillRepo{exists: true}, nil)

	rec, err := uc.RecordInteraction(context.Background(), userID, InteractionInput{
		SkillID: skillID,
		Type:    InteractionAssessment,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.MasteryLevel != 0.4 || rec.ConfidenceScore != 0.3 {
		t.Fatalf("expected unchanged mastery without a score, got mastery=%v confidence=%v", rec.MasteryLevel, rec.ConfidenceScore)
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestInteractionUsecase_ClampsAtOne(t *testing.T) {
	userID := uuid.New()
	skillID := uuid.New()
	mastery := &mockMasteryRepo{
		record: skill.MasteryRecord{UserID: userID, SkillID: skillID, MasteryLevel: 0.95, ConfidenceScore: 0.95},
	}
	uc := NewInteractionUsecase(mastery, mockSkillRepo{exists: true}, nil)

	rec, err := uc.RecordInteraction(context.Background(), userID, InteractionInput{
		SkillID: skillID,
		Type:    InteractionCourseCompletion,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.MasteryLevel != 1.0 || rec.ConfidenceScore != 1.0 {
		t.Fatalf("expected clamp at 1.0, got mastery=%v confidence=%v", rec.MasteryLevel, rec.ConfidenceScore)
	}
}

func TestInteractionUsecase_UnknownType(t *testing.T) {
	uc := NewInteractionUsecase(&mockMasteryRepo{}, mockSkillRepo{exists: true}, nil)
	_, err := uc.RecordInteraction(context.Background(), uuid.New(), InteractionInput{
		SkillID: uuid.New(),
		Type:    "osmosis",
	})
	if !errors.Is(err, ErrUnknownInteraction) {
		t.Fatalf("expected ErrUnknownInteraction, got %v", err)
	}
}

func TestInteractionUsecase_UnknownSkill(t *testing.T) {
	uc := NewInteractionUsecase(&mockMasteryRepo{}, mockSkillRepo{exists: false}, nil)
	_, err := uc.RecordInteraction(context.Background(), uuid.New(), InteractionInput{
		SkillID: uuid.New(),
		Type:    InteractionPractice,
	})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}
