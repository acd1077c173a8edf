package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/labels"
	"github.com/jhoicas/Trazabilidad-api/internal/application/reports"
	"github.com/jhoicas/Trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
	infragithub "github.com/jhoicas/Trazabilidad-api/internal/infrastructure/github"
	infralabel "github.com/jhoicas/Trazabilidad-api/internal/infrastructure/label"
	infrapdf "github.com/jhoicas/Trazabilidad-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Trazabilidad-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Trazabilidad-api/internal/interfaces/http"
	"github.com/jhoicas/Trazabilidad-api/pkg/config"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	templateRepo := postgres.NewLabelTemplateRepository(pool)
	printRepo := postgres.NewLabelPrintRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Login con GitHub: opcional. El state vive en Redis si está configurado, si no en memoria.
	var provider auth.FederatedProvider
	var states auth.StateStore
	if cfg.GitHub.Enabled() {
		provider = infragithub.NewClient(infragithub.Config{
			ClientID:     cfg.GitHub.ClientID,
			ClientSecret: cfg.GitHub.ClientSecret,
			CallbackURL:  cfg.GitHub.CallbackURL,
		})
		if cfg.Redis.Addr != "" {
			rdb, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				log.Fatal().Err(err).Msg("conexión a Redis")
			}
			defer rdb.Close()
			states = infraredis.NewStateStore(rdb)
		} else {
			states = infraredis.NewMemoryStateStore()
		}
		log.Info().Bool("redis", cfg.Redis.Addr != "").Msg("login con GitHub habilitado")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, provider, states, log.Component("auth"))

	userUC := usecase.NewUserUseCase(userRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	batchUC := usecase.NewBatchUseCase(batchRepo, productRepo, companyRepo, movementRepo, cfg.App.PublicURL)
	templateUC := usecase.NewLabelTemplateUseCase(templateRepo)
	traceabilityUC := traceability.NewUseCase(txRunner, batchRepo, movementRepo, productRepo, companyRepo)
	reportsUC := reports.NewUseCase(reportRepo)

	// Etiquetas: ZPL para la impresora, PDF para la vista previa.
	labelsUC := labels.NewUseCase(
		batchRepo, productRepo, companyRepo, templateRepo, printRepo,
		infralabel.NewZPLRenderer(),
		infrapdf.NewMarotoLabelGenerator(),
		infralabel.NewTCPPrinter(time.Duration(cfg.Printer.TimeoutSeconds)*time.Second),
		labels.Options{PublicURL: cfg.App.PublicURL, DefaultPort: cfg.Printer.DefaultPort},
		log.Component("labels"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Trazabilidad API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		UserUC:          userUC,
		CompanyUC:       companyUC,
		ProductUC:       productUC,
		BatchUC:         batchUC,
		LabelTemplateUC: templateUC,
		LabelsUC:        labelsUC,
		TraceabilityUC:  traceabilityUC,
		ReportsUC:       reportsUC,
		DB:              pool,
		JWTSecret:       cfg.JWT.Secret,
		FrontendURL:     strings.TrimRight(cfg.App.FrontendURL, "/"),
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
