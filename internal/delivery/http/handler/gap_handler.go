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

type GapHandler struct {
	uc usecase.GapUsecase
}

type gapAnalysisRequest struct {
	RoleID   uuid.UUID   `json:"role_id"`
	SkillIDs []uuid.UUID `json:"skill_ids"`
}

func NewGapHandler(uc usecase.GapUsecase) *GapHandler {
	return &GapHandler{uc: uc}
}

func (h *GapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/twin/gaps", h.AnalyzeForRole)
	r.Post("/twin/gaps", h.Analyze)
}

func (h *GapHandler) AnalyzeForRole(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	roleID, err := uuid.Parse(c.Query("role_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid role_id", nil, err)
	}

	report, err := h.uc.AnalyzeGaps(c.Context(), userID, usecase.GapAnalysisParams{RoleID: roleID})
	if err != nil {
		return mapGapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapReportResponse(report))
}

func (h *GapHandler) Analyze(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req gapAnalysisRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	report, err := h.uc.AnalyzeGaps(c.Context(), userID, usecase.GapAnalysisParams{
		RoleID:   req.RoleID,
		SkillIDs: req.SkillIDs,
	})
	if err != nil {
		return mapGapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapReportResponse(report))
}

func mapGapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrRoleNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Career role not found", nil, err)
	case errors.Is(err, usecase.ErrNoTargetSkills):
		return middleware.NewAppError(fiber.StatusNotFound, "No target skills resolved", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
