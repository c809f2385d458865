package handler

import (
	"context"
	"time"

	"skill-twin/internal/database"
	"skill-twin/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := map[string]any{"database": "unknown"}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			data["database"] = "down"
			return response.Success(c, fiber.StatusOK, response.MessageOK, data)
		}
		data["database"] = "up"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
