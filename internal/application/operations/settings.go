package operations

import "github.com/healthstack/stockops-api/internal/domain/stockops"

// Settings stock-management options injected into the use cases, built from
// configuration in main. Mirrors the recognized config options: reason
// concept sources, operation type UUIDs and logistics reporting codes.
type Settings struct {
	Catalog stockops.CatalogConfig
	Reasons stockops.ReasonConfig

	// UUID of the real backend adjustment operation type; both adjustment
	// variants resolve to it.
	AdjustmentTypeUUID string

	// Fixed tag identifying this application on logistics payloads.
	SourceApplication string

	// Facility/program/period codes reported on external requisitions.
	FacilityCode string
	ProgramCode  string
	PeriodID     string
}
