package stockops

import "github.com/healthstack/stockops-api/internal/domain/entity"

// ReasonConfig enumerates the reason concept sources recognized by the
// module, injected from configuration.
type ReasonConfig struct {
	StockAdjustmentReasonUUID string
	StockPositiveReasonUUID   string
	StockNegativeReasonUUID   string
	StockTakeReasonUUID       string
}

// ReasonSourceUUID picks the concept set whose answers are offered as
// reasons for the given operation type. Stock takes and the two adjustment
// variants have dedicated sources; everything else falls back to the general
// adjustment reason set.
func ReasonSourceUUID(cfg ReasonConfig, operationType, adjustmentType string) string {
	if operationType == entity.OperationStockTake {
		return cfg.StockTakeReasonUUID
	}
	if operationType == entity.OperationAdjustment && adjustmentType != "" {
		if adjustmentType == AdjustmentPositive {
			return cfg.StockPositiveReasonUUID
		}
		return cfg.StockNegativeReasonUUID
	}
	return cfg.StockAdjustmentReasonUUID
}
