// Package stockops holds the pure decision logic of the stock-operations
// module: which operation types a user may start, how the adjustment type is
// split into signed variants, how confirmation titles map to workflow
// actions, and which inventory batches are eligible for a stock issue.
// Everything here is a side-effect-free transformation over immutable
// snapshots, callable from any host.
package stockops

import "github.com/healthstack/stockops-api/internal/domain/entity"

// LocationContext classifies the user's session location.
type LocationContext struct {
	IsMainStore bool
}

// CatalogConfig carries the operation-type UUIDs driving the store-tier rule.
type CatalogConfig struct {
	RequisitionTypeUUID         string
	ExternalRequisitionTypeUUID string
}

// AllowedOperationTypes returns the subset of the catalog the user may
// initiate: the operation types referenced by the user's role scopes
// (deduplicated), intersected with the catalog by UUID, then narrowed by the
// store tier. A main-store session excludes the requisition type; any other
// session excludes the external-requisition type. The two are mutually
// exclusive entry points depending on store tier.
//
// Catalog order is preserved; ordering for display is a separate concern.
func AllowedOperationTypes(
	catalog []entity.StockOperationType,
	scopes entity.UserRoleScopes,
	loc LocationContext,
	cfg CatalogConfig,
) []entity.StockOperationType {
	granted := make(map[string]struct{}, len(scopes.OperationTypes))
	for _, s := range scopes.OperationTypes {
		granted[s.OperationTypeUUID] = struct{}{}
	}

	excluded := cfg.ExternalRequisitionTypeUUID
	if loc.IsMainStore {
		excluded = cfg.RequisitionTypeUUID
	}

	allowed := make([]entity.StockOperationType, 0, len(catalog))
	for _, t := range catalog {
		if _, ok := granted[t.UUID]; !ok {
			continue
		}
		if excluded != "" && t.UUID == excluded {
			continue
		}
		allowed = append(allowed, t)
	}
	return allowed
}
