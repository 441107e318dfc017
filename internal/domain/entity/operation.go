package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock operation workflow statuses.
const (
	StatusNew        = "NEW"
	StatusSubmitted  = "SUBMITTED"
	StatusApproved   = "APPROVED"
	StatusDispatched = "DISPATCHED"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
	StatusRejected   = "REJECTED"
	StatusReturned   = "RETURNED"
)

// RequestTypeEmergency marks an external requisition as emergency on the
// downstream logistics payload.
const RequestTypeEmergency = "EMERGENCY"

// StockOperation is a workflow instance mutating inventory state
// (receipt, issue, adjustment, requisition, transfer, disposal, stock take).
type StockOperation struct {
	UUID              string
	OperationNumber   string
	OperationTypeUUID string
	OperationTypeName string
	Status            string
	SourceUUID        string
	SourceName        string
	DestinationUUID   string
	DestinationName   string
	ResponsibleUUID   string
	ResponsibleName   string
	RequestType       string // "" or EMERGENCY (external requisitions)
	Remarks           string
	OperationDate     time.Time
	Items             []StockOperationItem
	CreatedAt         time.Time
	CreatedBy         string
}

// StockOperationItem is one line of a stock operation.
type StockOperationItem struct {
	UUID                       string
	StockItemUUID              string
	StockItemName              string
	ProductCode                string // downstream logistics product id
	Quantity                   decimal.Decimal
	QuantityRequested          *decimal.Decimal
	StockBatchUUID             string
	BatchNo                    string
	Expiration                 *time.Time
	PackagingUoMUUID           string
	PackagingUoMName           string
	PurchasePrice              *decimal.Decimal
	ReasonUUID                 string
	ReasonForRequestedQuantity string
}
