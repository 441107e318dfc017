package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healthstack/stockops-api/internal/application/auth"
	"github.com/healthstack/stockops-api/internal/application/operations"
	"github.com/healthstack/stockops-api/internal/application/report"
	"github.com/healthstack/stockops-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	TypesUC   *operations.OperationTypesUseCase
	OpsUC     *operations.OperationsUseCase
	ActionUC  *operations.ActionUseCase
	BatchUC   *operations.BatchOptionsUseCase
	ReportUC  *report.ReportUseCase
	AuthUC    *auth.AuthUseCase
	Settings  operations.Settings
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	stockOps := NewStockOpsHandler(deps.TypesUC, deps.OpsUC, deps.ActionUC, deps.BatchUC, deps.ReportUC, deps.Settings)

	protected.Get("/stock-operation-types", stockOps.ListOperationTypes)

	ops := protected.Group("/stock-operations")
	ops.Get("/", stockOps.ListOperations)
	ops.Post("/",
		RequireRole(entity.RoleAdmin, entity.RoleStorekeeper, entity.RoleClinician),
		stockOps.CreateOperation)
	ops.Get("/:uuid", stockOps.GetOperation)
	ops.Post("/:uuid/actions",
		RequireRole(entity.RoleAdmin, entity.RoleStorekeeper),
		stockOps.SubmitAction)
	ops.Get("/:uuid/voucher", stockOps.OperationVoucher)

	items := protected.Group("/stock-items")
	items.Get("/:uuid/batch-options", stockOps.BatchOptions)
}
