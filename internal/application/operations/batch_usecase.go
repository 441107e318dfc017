package operations

import (
	"context"
	"fmt"

	"github.com/healthstack/stockops-api/internal/application/dto"
	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
	"github.com/healthstack/stockops-api/internal/domain/stockops"
)

// BatchOptionsUseCase assembles the selectable batches of a stock item:
// batch records joined with inventory figures, filtered down to what the
// user may actually issue from.
type BatchOptionsUseCase struct {
	batches   repository.StockBatchRepository
	roles     repository.UserRoleRepository
	locations repository.LocationRepository
}

// NewBatchOptionsUseCase builds the use case.
func NewBatchOptionsUseCase(
	batches repository.StockBatchRepository,
	roles repository.UserRoleRepository,
	locations repository.LocationRepository,
) *BatchOptionsUseCase {
	return &BatchOptionsUseCase{batches: batches, roles: roles, locations: locations}
}

// OptionsForItem returns the eligible batches of a stock item for the given
// operation type. For stock issues the batches are additionally restricted
// to the user's permitted issuing locations and the out-of-stock directives
// are derived; other operation types only drop non-positive quantities.
func (uc *BatchOptionsUseCase) OptionsForItem(ctx context.Context, userID, stockItemUUID, operationType string) (*dto.BatchOptionsResponse, error) {
	batches, err := uc.batches.ListByStockItem(ctx, stockItemUUID)
	if err != nil {
		return nil, fmt.Errorf("load batches: %w", err)
	}
	inventory, err := uc.batches.InventoryByStockItem(ctx, stockItemUUID)
	if err != nil {
		return nil, fmt.Errorf("load batch inventory: %w", err)
	}

	options := stockops.MergeBatchInventory(batches, inventory)
	isIssue := operationType == entity.OperationStockIssue

	var permitted []string
	if isIssue {
		permitted, err = uc.PermittedIssueLocations(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	eligible := stockops.EligibleBatches(options, permitted)

	// Out of stock is judged on the whole inventory of the item, not on the
	// location-restricted view.
	isOutOfStock := isIssue && stockops.TotalQuantity(options).IsZero()

	resp := &dto.BatchOptionsResponse{
		StockItemUUID: stockItemUUID,
		Options:       make([]dto.BatchOptionResponse, 0, len(eligible)),
		IsOutOfStock:  isOutOfStock,
		BatchRequired: isIssue && !isOutOfStock,
	}
	for _, opt := range eligible {
		resp.Options = append(resp.Options, dto.BatchOptionResponse{
			UUID:               opt.UUID,
			BatchNo:            opt.BatchNo,
			BrandName:          opt.BrandName,
			Quantity:           opt.Quantity,
			LocationName:       opt.LocationName,
			PackagingUoMName:   opt.PackagingUoMName,
			PackagingUoMFactor: opt.PackagingUoMFactor,
			Expiration:         opt.Expiration,
		})
	}
	return resp, nil
}

// PermittedIssueLocations resolves the names of the locations the user may
// issue stock from: the user's role locations intersected with the locations
// tagged main store or substore. An empty result means no restriction
// applies downstream (fail-open).
func (uc *BatchOptionsUseCase) PermittedIssueLocations(ctx context.Context, userID string) ([]string, error) {
	scopes, err := uc.roles.ScopesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user roles: %w", err)
	}
	stores, err := uc.locations.ListTaggedStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("load store locations: %w", err)
	}

	storeUUIDs := make(map[string]struct{}, len(stores))
	for _, s := range stores {
		storeUUIDs[s.UUID] = struct{}{}
	}

	var names []string
	seen := make(map[string]struct{})
	for _, locScope := range scopes.Locations {
		if _, ok := storeUUIDs[locScope.LocationUUID]; !ok {
			continue
		}
		if _, dup := seen[locScope.LocationUUID]; dup {
			continue
		}
		seen[locScope.LocationUUID] = struct{}{}
		names = append(names, locScope.LocationName)
	}
	return names, nil
}
