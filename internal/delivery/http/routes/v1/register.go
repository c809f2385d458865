package v1

import (
	"log"

	"skill-twin/internal/config"
	"skill-twin/internal/database"
	"skill-twin/internal/delivery/http/handler"
	"skill-twin/internal/delivery/http/middleware"
	"skill-twin/internal/infrastructure/cache"
	"skill-twin/internal/pkg/jwt"
	"skill-twin/internal/repository"
	"skill-twin/internal/usecase"
	"skill-twin/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, cacheStore *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	masteryRepo := repository.NewPostgresMasteryRepository(db)
	roleRepo := repository.NewPostgresRoleRepository(db)
	roadmapRepo := repository.NewPostgresRoadmapRepository(db)
	assessmentRepo := repository.NewPostgresAssessmentRepository(db)

	var twinCache usecase.TwinCache
	if cacheStore != nil {
		twinCache = cacheStore
	}

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	twinUC := usecase.NewTwinUsecase(userRepo, masteryRepo, skillRepo, assessmentRepo, twinCache, logger)
	interactionUC := usecase.NewInteractionUsecase(masteryRepo, skillRepo, twinUC)
	masteryUC := usecase.NewMasteryUsecase(masteryRepo, skillRepo, twinUC)
	alignmentUC := usecase.NewAlignmentUsecase(roleRepo, masteryRepo, userRepo)
	gapUC := usecase.NewGapUsecase(roleRepo, skillRepo, masteryRepo)
	progressUC := usecase.NewProgressUsecase(roadmapRepo, ws.NewNotifier(hub), logger)
	profileUC := usecase.NewProfileUsecase(userRepo, twinUC)
	assessmentUC := usecase.NewAssessmentUsecase(assessmentRepo, masteryRepo, skillRepo, twinUC)

	authHandler := handler.NewAuthHandler(authUC)
	twinHandler := handler.NewTwinHandler(twinUC, interactionUC)
	gapHandler := handler.NewGapHandler(gapUC)
	masteryHandler := handler.NewMasteryHandler(masteryUC)
	careerHandler := handler.NewCareerHandler(alignmentUC)
	roadmapHandler := handler.NewRoadmapHandler(progressUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	assessmentHandler := handler.NewAssessmentHandler(assessmentUC)
	wsHandler := ws.NewHandler(hub, logger)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	twinHandler.RegisterRoutes(protected)
	gapHandler.RegisterRoutes(protected)
	masteryHandler.RegisterRoutes(protected)
	careerHandler.RegisterRoutes(protected)
	roadmapHandler.RegisterRoutes(protected)
	profileHandler.RegisterRoutes(protected)
	assessmentHandler.RegisterRoutes(protected)

	protected.Get("/ws/progress", wsHandler.HandleProgressWS)
}
