package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthstack/stockops-api/internal/domain"
	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
)

var _ repository.StockOperationRepository = (*OperationRepo)(nil)

// OperationRepo persists stock operations, their items and their workflow
// transitions. It holds the pool rather than a Querier because ApplyAction
// and Create open their own transactions.
type OperationRepo struct {
	pool *pgxpool.Pool
}

// NewOperationRepository builds the persistence adapter for operations.
func NewOperationRepository(pool *pgxpool.Pool) *OperationRepo {
	return &OperationRepo{pool: pool}
}

const operationColumns = `
	o.uuid, o.operation_number, o.operation_type_uuid, t.name,
	o.status, o.source_uuid, COALESCE(src.name, ''),
	o.destination_uuid, COALESCE(dst.name, ''),
	o.responsible_uuid, COALESCE(u.name, ''),
	o.request_type, o.remarks, o.operation_date, o.created_at, o.created_by`

const operationJoins = `
	FROM stock_operations o
	JOIN stock_operation_types t ON t.uuid = o.operation_type_uuid
	LEFT JOIN locations src ON src.uuid = o.source_uuid
	LEFT JOIN locations dst ON dst.uuid = o.destination_uuid
	LEFT JOIN users u ON u.id = o.responsible_uuid`

// GetByUUID loads one operation with its items.
func (r *OperationRepo) GetByUUID(ctx context.Context, opUUID string) (*entity.StockOperation, error) {
	query := `SELECT ` + operationColumns + operationJoins + ` WHERE o.uuid = $1`
	var op entity.StockOperation
	err := r.pool.QueryRow(ctx, query, opUUID).Scan(
		&op.UUID, &op.OperationNumber, &op.OperationTypeUUID, &op.OperationTypeName,
		&op.Status, &op.SourceUUID, &op.SourceName,
		&op.DestinationUUID, &op.DestinationName,
		&op.ResponsibleUUID, &op.ResponsibleName,
		&op.RequestType, &op.Remarks, &op.OperationDate, &op.CreatedAt, &op.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}

	items, err := r.itemsFor(ctx, op.UUID)
	if err != nil {
		return nil, err
	}
	op.Items = items
	return &op, nil
}

// List returns a page of operations plus the unfiltered total. Items are
// loaded per operation; listing pages are small and cached upstream.
func (r *OperationRepo) List(ctx context.Context, filter repository.OperationFilter) ([]entity.StockOperation, int, error) {
	where := ``
	args := []any{}
	if filter.Status != "" {
		where = ` WHERE o.status = $1`
		args = append(args, filter.Status)
	}

	var total int
	countQuery := `SELECT count(*) FROM stock_operations o` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count operations: %w", err)
	}

	query := `SELECT ` + operationColumns + operationJoins + where +
		fmt.Sprintf(` ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var ops []entity.StockOperation
	for rows.Next() {
		var op entity.StockOperation
		if err := rows.Scan(
			&op.UUID, &op.OperationNumber, &op.OperationTypeUUID, &op.OperationTypeName,
			&op.Status, &op.SourceUUID, &op.SourceName,
			&op.DestinationUUID, &op.DestinationName,
			&op.ResponsibleUUID, &op.ResponsibleName,
			&op.RequestType, &op.Remarks, &op.OperationDate, &op.CreatedAt, &op.CreatedBy,
		); err != nil {
			return nil, 0, fmt.Errorf("scan operation: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range ops {
		items, err := r.itemsFor(ctx, ops[i].UUID)
		if err != nil {
			return nil, 0, err
		}
		ops[i].Items = items
	}
	return ops, total, nil
}

// Create persists the operation and its items in one transaction.
func (r *OperationRepo) Create(ctx context.Context, op *entity.StockOperation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO stock_operations (
			uuid, operation_number, operation_type_uuid, status,
			source_uuid, destination_uuid, responsible_uuid,
			request_type, remarks, operation_date, created_at, created_by
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11, $12)`,
		op.UUID, op.OperationNumber, op.OperationTypeUUID, op.Status,
		op.SourceUUID, op.DestinationUUID, op.ResponsibleUUID,
		op.RequestType, op.Remarks, op.OperationDate, op.CreatedAt, op.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert operation: %w", err)
	}

	for _, item := range op.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO stock_operation_items (
				uuid, operation_uuid, stock_item_uuid, product_code,
				quantity, quantity_requested, stock_batch_uuid, batch_no,
				expiration, packaging_uom_uuid, purchase_price,
				reason_uuid, reason_for_requested_quantity
			) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, NULLIF($10, ''), $11, NULLIF($12, ''), $13)`,
			item.UUID, op.UUID, item.StockItemUUID, item.ProductCode,
			item.Quantity, item.QuantityRequested, item.StockBatchUUID, item.BatchNo,
			item.Expiration, item.PackagingUoMUUID, item.PurchasePrice,
			item.ReasonUUID, item.ReasonForRequestedQuantity,
		)
		if err != nil {
			return fmt.Errorf("insert operation item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ApplyAction records the action and moves the operation to newStatus in one
// transaction. The status update is guarded against terminal states so a
// completed or cancelled operation cannot transition again.
func (r *OperationRepo) ApplyAction(ctx context.Context, opUUID, action, reason, newStatus, actorID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE stock_operations SET status = $2
		WHERE uuid = $1 AND status NOT IN ($3, $4, $5)`,
		opUUID, newStatus,
		entity.StatusCompleted, entity.StatusCancelled, entity.StatusRejected,
	)
	if err != nil {
		return fmt.Errorf("update operation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOperationNotPending
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO stock_operation_actions (uuid, operation_uuid, action, reason, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), opUUID, action, reason, actorID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert operation action: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *OperationRepo) itemsFor(ctx context.Context, opUUID string) ([]entity.StockOperationItem, error) {
	query := `
		SELECT i.uuid, i.stock_item_uuid, COALESCE(s.name, ''), i.product_code,
		       i.quantity, i.quantity_requested, COALESCE(i.stock_batch_uuid::text, ''), i.batch_no,
		       i.expiration, COALESCE(i.packaging_uom_uuid::text, ''), COALESCE(uom.name, ''),
		       i.purchase_price, COALESCE(i.reason_uuid::text, ''), i.reason_for_requested_quantity
		FROM stock_operation_items i
		LEFT JOIN stock_items s ON s.uuid = i.stock_item_uuid
		LEFT JOIN packaging_uoms uom ON uom.uuid = i.packaging_uom_uuid
		WHERE i.operation_uuid = $1
		ORDER BY i.uuid`
	rows, err := r.pool.Query(ctx, query, opUUID)
	if err != nil {
		return nil, fmt.Errorf("list operation items: %w", err)
	}
	defer rows.Close()

	var items []entity.StockOperationItem
	for rows.Next() {
		var it entity.StockOperationItem
		if err := rows.Scan(
			&it.UUID, &it.StockItemUUID, &it.StockItemName, &it.ProductCode,
			&it.Quantity, &it.QuantityRequested, &it.StockBatchUUID, &it.BatchNo,
			&it.Expiration, &it.PackagingUoMUUID, &it.PackagingUoMName,
			&it.PurchasePrice, &it.ReasonUUID, &it.ReasonForRequestedQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan operation item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
