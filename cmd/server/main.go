package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
	"resume-builder/pkg/auth"
	infra "resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)

	pool, err := infra.NewPool(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal("failed to connect to postgres", err)
	}
	defer pool.Close()

	if err := migration.RunMigrations(ctx, pool); err != nil {
		log.Fatal("failed to run migrations", err)
	}

	redisClient, err := infra.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		log.Fatal("failed to connect to redis", err)
	}
	defer redisClient.Close()

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	usersRepo := repo.NewUsersRepo(pool)
	resumesRepo := repo.NewResumesRepo(pool)
	sessionsRepo := repo.NewSessionsRepo(redisClient)

	authService := usecase.NewAuthService(usersRepo, sessionsRepo, jwtService)
	manager := usecase.NewManager(resumesRepo, authService.SessionLive, cfg.Builder.AutosaveInterval, log)
	exporter := usecase.NewExporter(infra.NewChromedpRenderer(cfg.Builder.ChromePath))
	adviser := usecase.NewAdviser(ai.NewClient(cfg.Groq.BaseURL, cfg.Groq.APIKey, cfg.Groq.Model))

	app := fiber.New(fiber.Config{
		AppName: "resume-builder",
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	h := httpadapter.NewHandler(authService, manager, exporter, adviser, resumesRepo, log)
	h.RegisterRoutes(app)

	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Fatal("server failed", err)
		}
	}()
	log.Info("server started", zap.String("port", cfg.App.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		log.Error("shutdown error", err)
	}
}
