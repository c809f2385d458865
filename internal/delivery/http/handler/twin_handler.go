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

type TwinHandler struct {
	twin        usecase.TwinUsecase
	interaction usecase.InteractionUsecase
}

type interactionRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
	Type    string    `json:"type"`
	Score   *float64  `json:"score"`
}

func NewTwinHandler(twin usecase.TwinUsecase, interaction usecase.InteractionUsecase) *TwinHandler {
	return &TwinHandler{twin: twin, interaction: interaction}
}

func (h *TwinHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/twin")
	grp.Get("/", h.Get)
	grp.Post("/interactions", h.RecordInteraction)
}

func (h *TwinHandler) Get(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	snapshot, err := h.twin.GenerateTwin(c.Context(), userID)
	if err != nil {
		return mapTwinUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewTwinResponse(snapshot))
}

func (h *TwinHandler) RecordInteraction(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req interactionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rec, err := h.interaction.RecordInteraction(c.Context(), userID, usecase.InteractionInput{
		SkillID: req.SkillID,
		Type:    req.Type,
		Score:   req.Score,
	})
	if err != nil {
		return mapTwinUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMasteryResponse(rec))
}

func mapTwinUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrUnknownInteraction):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown interaction type", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
