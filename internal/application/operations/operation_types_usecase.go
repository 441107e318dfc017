package operations

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
	"github.com/healthstack/stockops-api/internal/domain/stockops"
)

// OperationTypesUseCase derives the start-new menu for a user: catalog
// intersected with role privileges, narrowed by store tier, adjustment split
// into its two variants and sorted for display.
type OperationTypesUseCase struct {
	types     repository.StockOperationTypeRepository
	roles     repository.UserRoleRepository
	locations repository.LocationRepository
	settings  Settings
}

// NewOperationTypesUseCase builds the use case.
func NewOperationTypesUseCase(
	types repository.StockOperationTypeRepository,
	roles repository.UserRoleRepository,
	locations repository.LocationRepository,
	settings Settings,
) *OperationTypesUseCase {
	return &OperationTypesUseCase{types: types, roles: roles, locations: locations, settings: settings}
}

// AllowedForUser returns the operation type variants the user may start from
// the given session location. Any source failing to load fails the whole
// derivation; no partial menu is surfaced.
func (uc *OperationTypesUseCase) AllowedForUser(ctx context.Context, userID, sessionLocationUUID string) ([]stockops.OperationTypeVariant, error) {
	catalog, err := uc.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load operation types: %w", err)
	}
	scopes, err := uc.roles.ScopesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user roles: %w", err)
	}

	loc := stockops.LocationContext{}
	if sessionLocationUUID != "" {
		sessionLocation, err := uc.locations.GetByUUID(ctx, sessionLocationUUID)
		if err != nil {
			return nil, fmt.Errorf("load session location: %w", err)
		}
		loc.IsMainStore = sessionLocation.HasTag(entity.TagMainStore)
	}

	allowed := stockops.AllowedOperationTypes(catalog, *scopes, loc, uc.settings.Catalog)

	// Stock issues are not started from the menu; they originate from a
	// requisition dispatch.
	menu := allowed[:0]
	for _, t := range allowed {
		if t.OperationType == entity.OperationStockIssue {
			continue
		}
		menu = append(menu, t)
	}

	variants := stockops.SplitAdjustmentVariants(menu)
	stockops.SortVariantsByName(variants, language.English)
	return variants, nil
}
