package operations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/healthstack/stockops-api/internal/application/dto"
	"github.com/healthstack/stockops-api/internal/domain"
	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
	"github.com/healthstack/stockops-api/internal/domain/stockops"
	"github.com/healthstack/stockops-api/pkg/logger"
)

// ValidationError carries per-field validation messages to the HTTP layer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// OperationsUseCase lists, reads and creates stock operations.
type OperationsUseCase struct {
	operations repository.StockOperationRepository
	types      repository.StockOperationTypeRepository
	batches    *BatchOptionsUseCase
	validate   *validator.Validate
	settings   Settings
	cache      *ListCache
	log        *logger.Logger
}

// NewOperationsUseCase builds the use case.
func NewOperationsUseCase(
	operations repository.StockOperationRepository,
	types repository.StockOperationTypeRepository,
	batches *BatchOptionsUseCase,
	settings Settings,
	cache *ListCache,
	log *logger.Logger,
) *OperationsUseCase {
	return &OperationsUseCase{
		operations: operations,
		types:      types,
		batches:    batches,
		validate:   validator.New(),
		settings:   settings,
		cache:      cache,
		log:        log,
	}
}

// List returns a page of operations with resolved display type names. Pages
// are served from the process-local cache until a mutation invalidates it.
func (uc *OperationsUseCase) List(ctx context.Context, page dto.PageRequest, status string) (*dto.StockOperationListResponse, error) {
	page.DefaultPage()
	if cached, ok := uc.cache.Get(status, page.Limit, page.Offset); ok {
		return &cached, nil
	}

	ops, total, err := uc.operations.List(ctx, repository.OperationFilter{
		Status: status,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}

	resp := dto.StockOperationListResponse{
		Results: make([]dto.StockOperationResponse, 0, len(ops)),
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, op := range ops {
		resp.Results = append(resp.Results, uc.toResponse(op))
	}
	uc.cache.Put(status, page.Limit, page.Offset, resp)
	return &resp, nil
}

// Get returns one operation.
func (uc *OperationsUseCase) Get(ctx context.Context, operationUUID string) (*dto.StockOperationResponse, error) {
	op, err := uc.operations.GetByUUID(ctx, operationUUID)
	if err != nil {
		return nil, err
	}
	resp := uc.toResponse(*op)
	return &resp, nil
}

// Create validates and persists a new stock operation. Negative adjustment
// variants have their positive item quantities negated before persistence;
// stock issues have batch eligibility enforced per item.
func (uc *OperationsUseCase) Create(ctx context.Context, userID string, in dto.CreateStockOperationRequest) (*dto.StockOperationResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, asValidationError(err)
	}

	opType, err := uc.types.GetByUUID(ctx, in.OperationTypeUUID)
	if err != nil {
		return nil, err
	}

	items := make([]entity.StockOperationItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.StockOperationItem{
			UUID:                       uuid.New().String(),
			StockItemUUID:              it.StockItemUUID,
			ProductCode:                it.ProductCode,
			Quantity:                   it.Quantity,
			QuantityRequested:          it.QuantityRequested,
			StockBatchUUID:             it.StockBatchUUID,
			BatchNo:                    it.BatchNo,
			Expiration:                 it.Expiration,
			PackagingUoMUUID:           it.PackagingUoMUUID,
			PurchasePrice:              it.PurchasePrice,
			ReasonUUID:                 it.ReasonUUID,
			ReasonForRequestedQuantity: it.ReasonForRequestedQuantity,
		})
	}

	if opType.OperationType == entity.OperationStockIssue {
		items, err = uc.enforceIssueEligibility(ctx, userID, items)
		if err != nil {
			return nil, err
		}
	}

	// The sign convention of the negative adjustment variant is resolved
	// here; the stored operation only carries the real type uuid and signed
	// quantities.
	if in.OperationTypeUUID == uc.settings.AdjustmentTypeUUID &&
		in.VariantName == stockops.NegativeAdjustmentName {
		items = stockops.NormalizeNegativeAdjustment(items)
	}

	opDate := time.Now()
	if in.OperationDate != nil {
		opDate = *in.OperationDate
	}
	requestType := in.RequestType
	if requestType == "REGULAR" {
		requestType = ""
	}

	opUUID := uuid.New().String()
	op := &entity.StockOperation{
		UUID:              opUUID,
		OperationNumber:   operationNumber(opUUID),
		OperationTypeUUID: opType.UUID,
		OperationTypeName: opType.Name,
		Status:            entity.StatusNew,
		SourceUUID:        in.SourceUUID,
		DestinationUUID:   in.DestinationUUID,
		RequestType:       requestType,
		Remarks:           in.Remarks,
		OperationDate:     opDate,
		Items:             items,
		CreatedAt:         time.Now(),
		CreatedBy:         userID,
	}
	if err := uc.operations.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("create operation: %w", err)
	}

	uc.cache.Invalidate()
	uc.log.Info().
		Str("operation", op.UUID).
		Str("number", op.OperationNumber).
		Str("type", op.OperationTypeName).
		Int("items", len(op.Items)).
		Msg("stock operation created")

	resp := uc.toResponse(*op)
	return &resp, nil
}

// enforceIssueEligibility applies the out-of-stock rule per stock-issue
// item: when no eligible batch exists the quantity is forced to zero and the
// batch reference cleared; otherwise an explicit batch selection is
// mandatory.
func (uc *OperationsUseCase) enforceIssueEligibility(ctx context.Context, userID string, items []entity.StockOperationItem) ([]entity.StockOperationItem, error) {
	for i, item := range items {
		opts, err := uc.batches.OptionsForItem(ctx, userID, item.StockItemUUID, entity.OperationStockIssue)
		if err != nil {
			return nil, err
		}
		state := stockops.ItemFormState{
			Quantity:         item.Quantity,
			OriginalQuantity: item.Quantity,
			StockBatchUUID:   item.StockBatchUUID,
		}
		state = stockops.ApplyStockAvailability(state, len(opts.Options) == 0)
		if state.BatchRequired && state.StockBatchUUID == "" {
			return nil, fmt.Errorf("item %s: %w: batch selection required", item.StockItemUUID, domain.ErrInvalidInput)
		}
		items[i].Quantity = state.Quantity
		items[i].StockBatchUUID = state.StockBatchUUID
	}
	return items, nil
}

func (uc *OperationsUseCase) toResponse(op entity.StockOperation) dto.StockOperationResponse {
	resp := dto.StockOperationResponse{
		UUID:              op.UUID,
		OperationNumber:   op.OperationNumber,
		OperationTypeUUID: op.OperationTypeUUID,
		OperationTypeName: stockops.DisplayTypeName(op, uc.settings.AdjustmentTypeUUID),
		Status:            op.Status,
		SourceName:        op.SourceName,
		DestinationName:   op.DestinationName,
		ResponsibleName:   op.ResponsibleName,
		RequestType:       op.RequestType,
		Remarks:           op.Remarks,
		OperationDate:     op.OperationDate,
		Items:             make([]dto.StockOperationItemResponse, 0, len(op.Items)),
	}
	for _, item := range op.Items {
		resp.Items = append(resp.Items, dto.StockOperationItemResponse{
			UUID:                       item.UUID,
			StockItemUUID:              item.StockItemUUID,
			StockItemName:              item.StockItemName,
			Quantity:                   item.Quantity,
			QuantityRequested:          item.QuantityRequested,
			StockBatchUUID:             item.StockBatchUUID,
			BatchNo:                    item.BatchNo,
			Expiration:                 item.Expiration,
			PackagingUoMName:           item.PackagingUoMName,
			PurchasePrice:              item.PurchasePrice,
			ReasonUUID:                 item.ReasonUUID,
			ReasonForRequestedQuantity: item.ReasonForRequestedQuantity,
		})
	}
	return resp
}

func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Namespace())] = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return &ValidationError{Fields: fields}
}

// operationNumber derives a short human-facing number from the uuid.
func operationNumber(opUUID string) string {
	return "SO-" + strings.ToUpper(strings.ReplaceAll(opUUID, "-", "")[:8])
}
