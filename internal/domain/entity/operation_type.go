package entity

// Operation type discriminants as exposed by the catalog.
const (
	OperationAdjustment          = "adjustment"
	OperationDisposal            = "disposed"
	OperationReceipt             = "receipt"
	OperationRequisition         = "requisition"
	OperationExternalRequisition = "externalrequisition"
	OperationReturn              = "return"
	OperationStockIssue          = "stockissue"
	OperationStockTake           = "stocktake"
	OperationTransferOut         = "transferout"
)

// StockOperationType is immutable reference data describing a class of stock
// operation. It is only read from the catalog and derived into UI-facing
// variants, never created or mutated here.
type StockOperationType struct {
	UUID          string
	Name          string
	Description   string
	OperationType string // one of the discriminants above

	// Behavioral flags consumed by downstream permission logic.
	RequiresBatchUUID       bool
	RequiresActualBatchInfo bool
	HasQuantityRequested    bool
	CanCaptureQuantityPrice bool
}
