package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/healthstack/stockops-api/internal/application/dto"
	"github.com/healthstack/stockops-api/internal/application/operations"
	"github.com/healthstack/stockops-api/internal/application/report"
	"github.com/healthstack/stockops-api/internal/domain"
	"github.com/healthstack/stockops-api/internal/domain/stockops"
)

// StockOpsHandler handles the stock-operations endpoints (protected).
type StockOpsHandler struct {
	typesUC  *operations.OperationTypesUseCase
	opsUC    *operations.OperationsUseCase
	actionUC *operations.ActionUseCase
	batchUC  *operations.BatchOptionsUseCase
	reportUC *report.ReportUseCase
	settings operations.Settings
}

// NewStockOpsHandler builds the handler.
func NewStockOpsHandler(
	typesUC *operations.OperationTypesUseCase,
	opsUC *operations.OperationsUseCase,
	actionUC *operations.ActionUseCase,
	batchUC *operations.BatchOptionsUseCase,
	reportUC *report.ReportUseCase,
	settings operations.Settings,
) *StockOpsHandler {
	return &StockOpsHandler{
		typesUC:  typesUC,
		opsUC:    opsUC,
		actionUC: actionUC,
		batchUC:  batchUC,
		reportUC: reportUC,
		settings: settings,
	}
}

// ListOperationTypes godoc
// @Summary      Operation type menu for the authenticated user
// @Description  Catalog intersected with role privileges, narrowed by the
// @Description  store tier of the session location, adjustment split into
// @Description  its positive and negative variants, sorted by name.
// @Tags         stock-operations
// @Security     Bearer
// @Produce      json
// @Param        location  query  string  false  "Session location UUID"
// @Success      200  {array}   dto.OperationTypeVariantResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock-operation-types [get]
func (h *StockOpsHandler) ListOperationTypes(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}

	variants, err := h.typesUC.AllowedForUser(c.Context(), userID, c.Query("location"))
	if err != nil {
		return h.mapError(c, err)
	}

	out := make([]dto.OperationTypeVariantResponse, 0, len(variants))
	for _, v := range variants {
		out = append(out, dto.OperationTypeVariantResponse{
			UUID:                    v.UUID,
			Name:                    v.Name,
			OperationType:           v.OperationType,
			AdjustmentType:          v.AdjustmentType,
			ReasonSourceUUID:        stockops.ReasonSourceUUID(h.settings.Reasons, v.OperationType, v.AdjustmentType),
			RequiresBatchUUID:       v.RequiresBatchUUID,
			RequiresActualBatchInfo: v.RequiresActualBatchInfo,
			HasQuantityRequested:    v.HasQuantityRequested,
			CanCaptureQuantityPrice: v.CanCaptureQuantityPrice,
		})
	}
	return c.JSON(out)
}

// ListOperations godoc
// @Summary      List stock operations
// @Tags         stock-operations
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filter by workflow status"
// @Param        limit   query  int     false  "Page size (default 20)"
// @Param        offset  query  int     false  "Page offset"
// @Success      200  {object}  dto.StockOperationListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock-operations [get]
func (h *StockOpsHandler) ListOperations(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid pagination"})
	}
	resp, err := h.opsUC.List(c.Context(), page, c.Query("status"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(resp)
}

// GetOperation godoc
// @Summary      Get one stock operation
// @Tags         stock-operations
// @Security     Bearer
// @Produce      json
// @Param        uuid  path  string  true  "Operation UUID"
// @Success      200  {object}  dto.StockOperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-operations/{uuid} [get]
func (h *StockOpsHandler) GetOperation(c *fiber.Ctx) error {
	resp, err := h.opsUC.Get(c.Context(), c.Params("uuid"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(resp)
}

// CreateOperation godoc
// @Summary      Create a stock operation
// @Description  Negative adjustment variants have their positive quantities
// @Description  negated at save time; stock issues enforce batch eligibility
// @Description  and the out-of-stock rule per item.
// @Tags         stock-operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockOperationRequest  true  "operation type, items, optional variant name"
// @Success      201  {object}  dto.StockOperationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-operations [post]
func (h *StockOpsHandler) CreateOperation(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateStockOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.opsUC.Create(c.Context(), userID, in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// SubmitAction godoc
// @Summary      Apply a workflow action to an operation
// @Description  The confirmation title resolves to exactly one backend
// @Description  action. External requisitions are forwarded to the logistics
// @Description  system before the action is applied.
// @Tags         stock-operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        uuid  path  string                     true  "Operation UUID"
// @Param        body  body  dto.OperationActionRequest true  "confirmation title, optional reason"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stock-operations/{uuid}/actions [post]
func (h *StockOpsHandler) SubmitAction(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.OperationActionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.actionUC.Execute(c.Context(), c.Params("uuid"), in.Title, in.Reason, userID); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "action applied"})
}

// BatchOptions godoc
// @Summary      Eligible batches of a stock item
// @Description  Batches joined with inventory figures, filtered to positive
// @Description  quantities and, for stock issues, to the user's permitted
// @Description  issuing locations. Carries the out-of-stock directives.
// @Tags         stock-items
// @Security     Bearer
// @Produce      json
// @Param        uuid            path   string  true   "Stock item UUID"
// @Param        operation_type  query  string  false  "Operation type discriminant (e.g. stockissue)"
// @Success      200  {object}  dto.BatchOptionsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{uuid}/batch-options [get]
func (h *StockOpsHandler) BatchOptions(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	resp, err := h.batchUC.OptionsForItem(c.Context(), userID, c.Params("uuid"), c.Query("operation_type"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(resp)
}

// OperationVoucher godoc
// @Summary      Download the voucher PDF of an operation
// @Tags         stock-operations
// @Security     Bearer
// @Produce      application/pdf
// @Param        uuid  path  string  true  "Operation UUID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-operations/{uuid}/voucher [get]
func (h *StockOpsHandler) OperationVoucher(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.OperationVoucher(c.Context(), c.Params("uuid"))
	if err != nil {
		return h.mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="voucher-`+c.Params("uuid")+`.pdf"`)
	return c.Send(pdfBytes)
}

// mapError translates domain and validation errors to HTTP responses.
func (h *StockOpsHandler) mapError(c *fiber.Ctx, err error) error {
	var verr *operations.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "invalid request data", Fields: verr.Fields,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrUnrecognizedAction):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNRECOGNIZED_ACTION", Message: "confirmation title maps to no action"})
	case errors.Is(err, domain.ErrOperationNotPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_ACTIONABLE", Message: "operation is in a terminal state"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
