package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dkairat/Esep-api/internal/application/auth"
	apppayroll "github.com/dkairat/Esep-api/internal/application/payroll"
	"github.com/dkairat/Esep-api/internal/application/usecase"
	"github.com/dkairat/Esep-api/internal/infrastructure/postgres"
	httpRouter "github.com/dkairat/Esep-api/internal/interfaces/http"
	"github.com/dkairat/Esep-api/pkg/config"
	"github.com/dkairat/Esep-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("загрузка конфигурации: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("запуск приложения")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("подключение к PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	workerRepo := postgres.NewWorkerRepository(pool)
	actRepo := postgres.NewCompletionActRepository(pool)
	rateRepo := postgres.NewRateTableRepository(pool)
	payrollRepo := postgres.NewPayrollRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	generateUC := apppayroll.NewGenerateUseCase(txRunner, payrollRepo, workerRepo, actRepo, rateRepo, nil)
	lifecycleUC := apppayroll.NewLifecycleUseCase(txRunner, payrollRepo, rateRepo)
	queryUC := apppayroll.NewQueryUseCase(payrollRepo)
	gphUC := apppayroll.NewGPHUseCase(txRunner, payrollRepo, rateRepo)
	workerUC := usecase.NewWorkerUseCase(workerRepo)
	actUC := usecase.NewCompletionActUseCase(actRepo)
	rateUC := usecase.NewRateTableUseCase(rateRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Esep API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		GenerateUC:  generateUC,
		LifecycleUC: lifecycleUC,
		QueryUC:     queryUC,
		GPHUC:       gphUC,
		WorkerUC:    workerUC,
		ActUC:       actUC,
		RateUC:      rateUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP-сервер завершился")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("получен сигнал остановки, закрываем сервер...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("остановка сервера")
	}

	log.Info().Msg("приложение остановлено")
}
