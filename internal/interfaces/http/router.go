package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dkairat/Esep-api/internal/application/auth"
	apppayroll "github.com/dkairat/Esep-api/internal/application/payroll"
	"github.com/dkairat/Esep-api/internal/application/usecase"
	"github.com/dkairat/Esep-api/internal/domain/entity"
)

// RouterDeps — зависимости роутера.
type RouterDeps struct {
	GenerateUC  *apppayroll.GenerateUseCase
	LifecycleUC *apppayroll.LifecycleUseCase
	QueryUC     *apppayroll.QueryUseCase
	GPHUC       *apppayroll.GPHUseCase
	WorkerUC    *usecase.WorkerUseCase
	ActUC       *usecase.CompletionActUseCase
	RateUC      *usecase.RateTableUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router регистрирует маршруты API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (публично)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Всё остальное — за Bearer-токеном
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Мутации ведомостей доступны бухгалтеру и администратору
	staff := RequireRole(entity.RoleAdmin, entity.RoleAccountant)

	// Ведомости
	payrolls := protected.Group("/payrolls")
	payrollHandler := NewPayrollHandler(deps.GenerateUC, deps.LifecycleUC, deps.QueryUC)
	payrolls.Post("/", staff, payrollHandler.Generate)
	payrolls.Get("/", payrollHandler.List)
	payrolls.Get("/:id", payrollHandler.Get)
	payrolls.Get("/:id/summary", payrollHandler.Summary)
	payrolls.Post("/:id/recalculate", staff, payrollHandler.Recalculate)
	payrolls.Post("/:id/approve", staff, payrollHandler.Approve)
	payrolls.Post("/:id/mark-paid", staff, payrollHandler.MarkPaid)
	payrolls.Delete("/:id", staff, payrollHandler.Delete)

	// Выплаты ГПХ
	gph := protected.Group("/gph-payments")
	gphHandler := NewGPHHandler(deps.GPHUC)
	gph.Post("/:id/approve", staff, gphHandler.Approve)
	gph.Post("/:id/mark-paid", staff, gphHandler.MarkPaid)

	// Работники
	workers := protected.Group("/workers")
	workerHandler := NewWorkerHandler(deps.WorkerUC)
	workers.Post("/", workerHandler.Create)
	workers.Get("/", workerHandler.List)
	workers.Get("/:id", workerHandler.GetByID)

	// Акты выполненных работ
	acts := protected.Group("/completion-acts")
	actHandler := NewCompletionActHandler(deps.ActUC)
	acts.Post("/", actHandler.Create)
	acts.Get("/", actHandler.List)

	// Таблицы ставок: чтение всем, запись только администратору
	rates := protected.Group("/rates")
	ratesHandler := NewRatesHandler(deps.RateUC)
	rates.Get("/", ratesHandler.List)
	rates.Get("/effective", ratesHandler.GetEffective)
	rates.Post("/", RequireRole(entity.RoleAdmin), ratesHandler.Create)
}
