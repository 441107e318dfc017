package repository

import (
	"context"

	"github.com/healthstack/stockops-api/internal/domain/entity"
)

// OperationFilter narrows the operations listing.
type OperationFilter struct {
	Status string
	Limit  int
	Offset int
}

// StockOperationRepository persists stock operations and their workflow
// transitions.
type StockOperationRepository interface {
	GetByUUID(ctx context.Context, uuid string) (*entity.StockOperation, error)
	List(ctx context.Context, filter OperationFilter) ([]entity.StockOperation, int, error)
	Create(ctx context.Context, op *entity.StockOperation) error
	// ApplyAction records the action and moves the operation to newStatus.
	ApplyAction(ctx context.Context, uuid, action, reason, newStatus, actorID string) error
}
