package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/healthstack/stockops-api/internal/domain"
	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
)

var _ repository.StockOperationTypeRepository = (*OperationTypeRepo)(nil)

// OperationTypeRepo reads the operation type catalog from PostgreSQL.
type OperationTypeRepo struct {
	q Querier
}

// NewOperationTypeRepository builds the catalog adapter. Pass pool or tx.
func NewOperationTypeRepository(q Querier) *OperationTypeRepo {
	return &OperationTypeRepo{q: q}
}

const operationTypeColumns = `
	uuid, name, description, operation_type,
	requires_batch_uuid, requires_actual_batch_info,
	has_quantity_requested, can_capture_quantity_price`

// List returns the full catalog in its stored order.
func (r *OperationTypeRepo) List(ctx context.Context) ([]entity.StockOperationType, error) {
	query := `SELECT ` + operationTypeColumns + ` FROM stock_operation_types ORDER BY sort_order, name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list operation types: %w", err)
	}
	defer rows.Close()

	var types []entity.StockOperationType
	for rows.Next() {
		var t entity.StockOperationType
		if err := rows.Scan(
			&t.UUID, &t.Name, &t.Description, &t.OperationType,
			&t.RequiresBatchUUID, &t.RequiresActualBatchInfo,
			&t.HasQuantityRequested, &t.CanCaptureQuantityPrice,
		); err != nil {
			return nil, fmt.Errorf("scan operation type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// GetByUUID returns one catalog entry.
func (r *OperationTypeRepo) GetByUUID(ctx context.Context, uuid string) (*entity.StockOperationType, error) {
	query := `SELECT ` + operationTypeColumns + ` FROM stock_operation_types WHERE uuid = $1`
	var t entity.StockOperationType
	err := r.q.QueryRow(ctx, query, uuid).Scan(
		&t.UUID, &t.Name, &t.Description, &t.OperationType,
		&t.RequiresBatchUUID, &t.RequiresActualBatchInfo,
		&t.HasQuantityRequested, &t.CanCaptureQuantityPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get operation type: %w", err)
	}
	return &t, nil
}
