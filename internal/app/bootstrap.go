package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skill-twin/internal/config"
	"skill-twin/internal/database/migration"
	"skill-twin/internal/database/seeder"
	"skill-twin/internal/delivery/http/middleware"
	"skill-twin/internal/delivery/http/routes"
	"skill-twin/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := prepareDatabase(c); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, c)
	routes.Register(f, cfg, c.DB, c.Cache, c.Hub, c.Logger)

	go c.Hub.Run()

	return &App{Fiber: f, Container: c}, c.Close, nil
}

func prepareDatabase(c *Container) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	r := migration.Runner{Dir: "migrations"}
	if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	s := seeder.Runner{Seeders: seeder.Defaults()}
	if err := s.Run(ctx, c.DB); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	// Seeding can rewrite ontology rows that cached snapshots were built
	// from, so flush them rather than serve stale twins.
	if c.Cache != nil {
		if err := c.Cache.DeleteByPattern(ctx, usecase.TwinCacheKeyPrefix+"*"); err != nil && c.Logger != nil {
			c.Logger.Printf("[Bootstrap] twin cache flush failed | err=%v", err)
		}
	}
	return nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
