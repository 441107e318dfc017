package repository

import (
	"context"

	"github.com/healthstack/stockops-api/internal/domain/entity"
)

// LocationRepository reads facility locations and their store-tier tags.
type LocationRepository interface {
	GetByUUID(ctx context.Context, uuid string) (*entity.Location, error)
	// ListTaggedStores returns the locations tagged main store or substore.
	ListTaggedStores(ctx context.Context) ([]entity.Location, error)
}
