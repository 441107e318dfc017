package repository

import (
	"context"

	"github.com/healthstack/stockops-api/internal/domain/entity"
)

// StockOperationTypeRepository reads the operation type catalog.
type StockOperationTypeRepository interface {
	List(ctx context.Context) ([]entity.StockOperationType, error)
	GetByUUID(ctx context.Context, uuid string) (*entity.StockOperationType, error)
}
