package routes

import (
	"log"

	"skill-twin/internal/config"
	"skill-twin/internal/database"
	"skill-twin/internal/delivery/http/handler"
	v1 "skill-twin/internal/delivery/http/routes/v1"
	"skill-twin/internal/infrastructure/cache"
	"skill-twin/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, cfg config.Config, db database.DB, cacheStore *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(db).RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), cfg, db, cacheStore, hub, logger)
}
