package handler

import (
	"errors"

	"skill-twin/internal/delivery/http/dto"
	"skill-twin/internal/delivery/http/middleware"
	"skill-twin/internal/pkg/response"
	"skill-twin/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MasteryHandler struct {
	uc usecase.MasteryUsecase
}

type setMasteryRequest struct {
	SkillID         uuid.UUID `json:"skill_id"`
	MasteryLevel    float64   `json:"mastery_level"`
	ConfidenceScore float64   `json:"confidence_score"`
	Source          string    `json:"source"`
}

func NewMasteryHandler(uc usecase.MasteryUsecase) *MasteryHandler {
	return &MasteryHandler{uc: uc}
}

func (h *MasteryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills", h.ListSkills)

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Put("/", h.Set)
	grp.Delete("/:id", h.Delete)
}

func (h *MasteryHandler) ListSkills(c fiber.Ctx) error {
	skills, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapMasteryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponses(skills))
}

func (h *MasteryHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	records, err := h.uc.ListMastery(c.Context(), userID)
	if err != nil {
		return mapMasteryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMasteryResponses(records))
}

func (h *MasteryHandler) Set(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req setMasteryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec, err := h.uc.SetMastery(c.Context(), userID, usecase.SetMasteryInput{
		SkillID:         req.SkillID,
		MasteryLevel:    req.MasteryLevel,
		ConfidenceScore: req.ConfidenceScore,
		Source:          req.Source,
	})
	if err != nil {
		return mapMasteryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMasteryResponse(rec))
}

func (h *MasteryHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RemoveMastery(c.Context(), userID, skillID); err != nil {
		return mapMasteryUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapMasteryUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrMasteryNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Mastery record not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidMastery):
		return middleware.NewAppError(fiber.StatusBadRequest, "Mastery level out of range", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
