package repository

import (
	"context"

	"github.com/healthstack/stockops-api/internal/domain/entity"
)

// StockBatchRepository reads batches and their inventory figures for a stock
// item.
type StockBatchRepository interface {
	ListByStockItem(ctx context.Context, stockItemUUID string) ([]entity.StockBatch, error)
	// InventoryByStockItem returns the quantity/location rows reported by the
	// inventory transactions source, one per batch and issuing location.
	InventoryByStockItem(ctx context.Context, stockItemUUID string) ([]entity.BatchInventory, error)
}
