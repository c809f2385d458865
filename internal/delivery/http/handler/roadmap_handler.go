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

type RoadmapHandler struct {
	uc usecase.ProgressUsecase
}

type progressRequest struct {
	ResourceID    uuid.UUID `json:"resource_id"`
	WatchProgress float64   `json:"watch_progress"`
	Completed     bool      `json:"completed"`
}

func NewRoadmapHandler(uc usecase.ProgressUsecase) *RoadmapHandler {
	return &RoadmapHandler{uc: uc}
}

func (h *RoadmapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/roadmaps")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id/progress", h.UpdateProgress)
	grp.Get("/:id/next-resource", h.NextResource)
}

func (h *RoadmapHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	roadmaps, err := h.uc.ListRoadmaps(c.Context(), userID)
	if err != nil {
		return mapRoadmapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRoadmapResponses(roadmaps))
}

func (h *RoadmapHandler) Get(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	roadmapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	roadmap, err := h.uc.GetRoadmap(c.Context(), userID, roadmapID)
	if err != nil {
		return mapRoadmapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRoadmapResponse(roadmap))
}

func (h *RoadmapHandler) UpdateProgress(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	roadmapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req progressRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	roadmap, err := h.uc.UpdateProgress(c.Context(), userID, roadmapID, usecase.ProgressInput{
		ResourceID:    req.ResourceID,
		WatchProgress: req.WatchProgress,
		Completed:     req.Completed,
	})
	if err != nil {
		return mapRoadmapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRoadmapResponse(roadmap))
}

func (h *RoadmapHandler) NextResource(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	roadmapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	next, err := h.uc.NextResource(c.Context(), userID, roadmapID)
	if err != nil {
		return mapRoadmapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNextResourceResponse(next))
}

func mapRoadmapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrRoadmapNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Roadmap not found", nil, err)
	case errors.Is(err, usecase.ErrResourceNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Learning resource not found", nil, err)
	case errors.Is(err, usecase.ErrForbiddenRoadmap):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidProgress):
		return middleware.NewAppError(fiber.StatusBadRequest, "Watch progress out of range", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
