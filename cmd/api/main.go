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

	"github.com/healthstack/stockops-api/internal/application/auth"
	"github.com/healthstack/stockops-api/internal/application/operations"
	"github.com/healthstack/stockops-api/internal/application/report"
	"github.com/healthstack/stockops-api/internal/domain/stockops"
	infralogistics "github.com/healthstack/stockops-api/internal/infrastructure/logistics"
	infrapdf "github.com/healthstack/stockops-api/internal/infrastructure/pdf"
	"github.com/healthstack/stockops-api/internal/infrastructure/postgres"
	httpRouter "github.com/healthstack/stockops-api/internal/interfaces/http"
	"github.com/healthstack/stockops-api/pkg/config"
	"github.com/healthstack/stockops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	typeRepo := postgres.NewOperationTypeRepository(pool)
	operationRepo := postgres.NewOperationRepository(pool)
	batchRepo := postgres.NewStockBatchRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	roleRepo := postgres.NewUserRoleRepository(pool)

	settings := operations.Settings{
		Catalog: stockops.CatalogConfig{
			RequisitionTypeUUID:         cfg.Stock.RequisitionTypeUUID,
			ExternalRequisitionTypeUUID: cfg.Stock.ExternalRequisitionTypeUUID,
		},
		Reasons: stockops.ReasonConfig{
			StockAdjustmentReasonUUID: cfg.Stock.StockAdjustmentReasonUUID,
			StockPositiveReasonUUID:   cfg.Stock.StockPositiveReasonUUID,
			StockNegativeReasonUUID:   cfg.Stock.StockNegativeReasonUUID,
			StockTakeReasonUUID:       cfg.Stock.StockTakeReasonUUID,
		},
		AdjustmentTypeUUID: cfg.Stock.AdjustmentTypeUUID,
		SourceApplication:  cfg.Stock.SourceApplication,
		FacilityCode:       cfg.Stock.FacilityCode,
		ProgramCode:        cfg.Stock.ProgramCode,
		PeriodID:           cfg.Stock.PeriodID,
	}

	// Logistics client is only wired when an endpoint is configured;
	// external requisitions then skip the forwarding step.
	var logisticsSubmitter operations.LogisticsSubmitter
	if cfg.Stock.LogisticsEndpoint != "" {
		logisticsSubmitter = infralogistics.NewClient(cfg.Stock.LogisticsEndpoint, cfg.Stock.LogisticsTimeout)
	}

	listCache := operations.NewListCache()
	typesUC := operations.NewOperationTypesUseCase(typeRepo, roleRepo, locationRepo, settings)
	batchUC := operations.NewBatchOptionsUseCase(batchRepo, roleRepo, locationRepo)
	opsUC := operations.NewOperationsUseCase(operationRepo, typeRepo, batchUC, settings, listCache, log)
	actionUC := operations.NewActionUseCase(operationRepo, logisticsSubmitter, listCache, settings, log)

	voucherGenerator := infrapdf.NewMarotoVoucherGenerator()
	reportUC := report.NewReportUseCase(operationRepo, voucherGenerator, cfg.Stock.AdjustmentTypeUUID)

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
	registerSwagger(app, log, "./docs/swagger.json")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TypesUC:   typesUC,
		OpsUC:     opsUC,
		ActionUC:  actionUC,
		BatchUC:   batchUC,
		ReportUC:  reportUC,
		AuthUC:    authUC,
		Settings:  settings,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

// registerSwagger mounts the Swagger UI when the spec file is present.
// swagger.New panics on a missing file; a lost spec must degrade the
// docs page, never the API, so the middleware is skipped with a warning.
func registerSwagger(app *fiber.App, log *logger.Logger, specPath string) {
	if _, err := os.Stat(specPath); err != nil {
		log.Warn().Str("path", specPath).Msg("swagger spec not found, docs UI disabled")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: specPath,
		Path:     "docs",
		Title:    "Stock Operations API",
	}))
}
