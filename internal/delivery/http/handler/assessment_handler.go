package handler

import (
	"skill-twin/internal/delivery/http/dto"
	"skill-twin/internal/delivery/http/middleware"
	"skill-twin/internal/pkg/response"
	"skill-twin/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AssessmentHandler struct {
	uc usecase.AssessmentUsecase
}

type completeAssessmentRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
	Score   float64   `json:"score"`
}

func NewAssessmentHandler(uc usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/assessments", h.Complete)
}

func (h *AssessmentHandler) Complete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req completeAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.uc.CompleteAssessment(c.Context(), userID, usecase.AssessmentInput{
		SkillID: req.SkillID,
		Score:   req.Score,
	})
	if err != nil {
		return mapTwinUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewAssessmentResponse(result))
}
