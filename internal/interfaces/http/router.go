package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/labels"
	"github.com/jhoicas/Trazabilidad-api/internal/application/reports"
	"github.com/jhoicas/Trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

// Pinger comprobación de salud de la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	CompanyUC       *usecase.CompanyUseCase
	ProductUC       *usecase.ProductUseCase
	BatchUC         *usecase.BatchUseCase
	LabelTemplateUC *usecase.LabelTemplateUseCase
	LabelsUC        *labels.UseCase
	TraceabilityUC  *traceability.UseCase
	ReportsUC       *reports.UseCase
	DB              Pinger
	JWTSecret       string
	FrontendURL     string
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", healthHandler(deps.DB))

	// Auth (público salvo /verify)
	authHandler := NewAuthHandler(deps.AuthUC, deps.FrontendURL, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/github", authHandler.GitHub)
	authGroup.Get("/github/callback", authHandler.GitHubCallback)
	authGroup.Get("/verify", AuthMiddleware(deps.JWTSecret), authHandler.Verify)

	traceHandler := NewTraceabilityHandler(deps.TraceabilityUC)
	api.Get("/traceability/public/:batch_number", traceHandler.PublicTrace)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Users: /me para cualquier rol; el resto solo admin
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Get("/", adminOnly, userHandler.List)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Products: lectura para todos, escritura admin
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Companies
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := protected.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Post("/", adminOnly, companyHandler.Create)
	companies.Put("/:id", adminOnly, companyHandler.Update)
	companies.Delete("/:id", adminOnly, companyHandler.Delete)

	// Batches: cualquier rol autenticado; el borrado solo admin
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches := protected.Group("/batches")
	batches.Get("/", batchHandler.List)
	batches.Post("/", batchHandler.Create)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", adminOnly, batchHandler.Delete)
	batches.Post("/:id/qrcode", batchHandler.GenerateQRCode)

	// Labels: plantillas admin; preview/print cualquier rol
	labelHandler := NewLabelHandler(deps.LabelTemplateUC, deps.LabelsUC)
	labelsGroup := protected.Group("/labels")
	labelsGroup.Get("/templates", labelHandler.ListTemplates)
	labelsGroup.Get("/templates/:id", labelHandler.GetTemplate)
	labelsGroup.Post("/templates", adminOnly, labelHandler.CreateTemplate)
	labelsGroup.Put("/templates/:id", adminOnly, labelHandler.UpdateTemplate)
	labelsGroup.Delete("/templates/:id", adminOnly, labelHandler.DeleteTemplate)
	labelsGroup.Post("/preview", labelHandler.Preview)
	labelsGroup.Post("/print", labelHandler.Print)
	labelsGroup.Get("/prints", labelHandler.ListPrints)

	// Traceability
	trace := protected.Group("/traceability")
	trace.Post("/movements", traceHandler.RecordMovement)
	trace.Get("/movements", traceHandler.ListMovements)
	trace.Get("/batches/:id/chain", traceHandler.Chain)
	trace.Get("/batches/:id/holder", traceHandler.Holder)
	trace.Get("/batches/:id/trail", traceHandler.Trail)

	// Reports
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/movements", reportHandler.Movements)
	reportsGroup.Get("/movements/export", reportHandler.ExportMovements)
}

// healthHandler responde 503 si la base no contesta en 2 segundos.
func healthHandler(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok", "time": time.Now().UTC()}
		if db == nil {
			return c.JSON(status)
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = "down"
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		status["database"] = "up"
		return c.JSON(status)
	}
}
