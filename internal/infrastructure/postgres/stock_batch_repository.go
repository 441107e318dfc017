package postgres

import (
	"context"
	"fmt"

	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo reads batches and their inventory figures from PostgreSQL.
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository builds the batch adapter. Pass pool or tx.
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// ListByStockItem returns every batch of a stock item, voided included; the
// eligibility filter decides what is offered.
func (r *StockBatchRepo) ListByStockItem(ctx context.Context, stockItemUUID string) ([]entity.StockBatch, error) {
	query := `
		SELECT uuid, batch_no, stock_item_uuid, COALESCE(brand_name, ''), expiration, voided
		FROM stock_batches
		WHERE stock_item_uuid = $1
		ORDER BY expiration NULLS LAST, batch_no`
	rows, err := r.q.Query(ctx, query, stockItemUUID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(&b.UUID, &b.BatchNo, &b.StockItemUUID, &b.BrandName, &b.Expiration, &b.Voided); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// InventoryByStockItem returns the per-batch, per-location quantity rows
// aggregated from inventory transactions. Quantity stays text; parsing is the
// filter's concern.
func (r *StockBatchRepo) InventoryByStockItem(ctx context.Context, stockItemUUID string) ([]entity.BatchInventory, error) {
	query := `
		SELECT b.batch_no,
		       COALESCE(sum(tx.quantity), 0)::text,
		       COALESCE(l.name, ''),
		       COALESCE(uom.name, ''),
		       COALESCE(uom.factor::text, '')
		FROM stock_batches b
		JOIN inventory_transactions tx ON tx.stock_batch_uuid = b.uuid
		LEFT JOIN locations l ON l.uuid = tx.location_uuid
		LEFT JOIN packaging_uoms uom ON uom.uuid = tx.packaging_uom_uuid
		WHERE b.stock_item_uuid = $1
		GROUP BY b.batch_no, l.name, uom.name, uom.factor
		ORDER BY b.batch_no, l.name`
	rows, err := r.q.Query(ctx, query, stockItemUUID)
	if err != nil {
		return nil, fmt.Errorf("list batch inventory: %w", err)
	}
	defer rows.Close()

	var inventory []entity.BatchInventory
	for rows.Next() {
		var inv entity.BatchInventory
		if err := rows.Scan(&inv.BatchNo, &inv.Quantity, &inv.LocationName, &inv.PackagingUoMName, &inv.PackagingUoMFactor); err != nil {
			return nil, fmt.Errorf("scan batch inventory: %w", err)
		}
		inventory = append(inventory, inv)
	}
	return inventory, rows.Err()
}
