package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationTypeVariantResponse one entry of the start-new menu.
type OperationTypeVariantResponse struct {
	UUID             string `json:"uuid"`
	Name             string `json:"name"`
	OperationType    string `json:"operation_type"`
	AdjustmentType   string `json:"adjustment_type,omitempty"` // positive | negative
	ReasonSourceUUID string `json:"reason_source_uuid,omitempty"`

	RequiresBatchUUID       bool `json:"requires_batch_uuid"`
	RequiresActualBatchInfo bool `json:"requires_actual_batch_info"`
	HasQuantityRequested    bool `json:"has_quantity_requested"`
	CanCaptureQuantityPrice bool `json:"can_capture_quantity_price"`
}

// StockOperationItemRequest one line of a create request.
type StockOperationItemRequest struct {
	StockItemUUID              string           `json:"stock_item_uuid" validate:"required,uuid4"`
	ProductCode                string           `json:"product_code,omitempty"`
	Quantity                   decimal.Decimal  `json:"quantity" validate:"required"`
	QuantityRequested          *decimal.Decimal `json:"quantity_requested,omitempty"`
	StockBatchUUID             string           `json:"stock_batch_uuid,omitempty" validate:"omitempty,uuid4"`
	BatchNo                    string           `json:"batch_no,omitempty" validate:"max=50"`
	Expiration                 *time.Time       `json:"expiration,omitempty"`
	PackagingUoMUUID           string           `json:"packaging_uom_uuid,omitempty" validate:"omitempty,uuid4"`
	PurchasePrice              *decimal.Decimal `json:"purchase_price,omitempty"`
	ReasonUUID                 string           `json:"reason_uuid,omitempty" validate:"omitempty,uuid4"`
	ReasonForRequestedQuantity string           `json:"reason_for_requested_quantity,omitempty" validate:"max=500"`
}

// CreateStockOperationRequest body for POST /api/stock-operations.
// VariantName carries the display name the user picked in the start-new menu;
// for adjustments it resolves the sign convention applied at save time.
type CreateStockOperationRequest struct {
	OperationTypeUUID string                      `json:"operation_type_uuid" validate:"required,uuid4"`
	VariantName       string                      `json:"variant_name,omitempty"`
	SourceUUID        string                      `json:"source_uuid,omitempty" validate:"omitempty,uuid4"`
	DestinationUUID   string                      `json:"destination_uuid,omitempty" validate:"omitempty,uuid4"`
	RequestType       string                      `json:"request_type,omitempty" validate:"omitempty,oneof=REGULAR EMERGENCY"`
	Remarks           string                      `json:"remarks,omitempty" validate:"max=500"`
	OperationDate     *time.Time                  `json:"operation_date,omitempty"`
	Items             []StockOperationItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OperationActionRequest body for POST /api/stock-operations/:uuid/actions.
// Title is the confirmation title presented to the user (e.g. "Approve",
// "Complete Dispatch"); Reason is required by policy only for some actions
// and enforced by the caller, not here.
type OperationActionRequest struct {
	Title  string `json:"title" validate:"required,max=50"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// StockOperationItemResponse one line of an operation response.
type StockOperationItemResponse struct {
	UUID                       string           `json:"uuid"`
	StockItemUUID              string           `json:"stock_item_uuid"`
	StockItemName              string           `json:"stock_item_name,omitempty"`
	Quantity                   decimal.Decimal  `json:"quantity"`
	QuantityRequested          *decimal.Decimal `json:"quantity_requested,omitempty"`
	StockBatchUUID             string           `json:"stock_batch_uuid,omitempty"`
	BatchNo                    string           `json:"batch_no,omitempty"`
	Expiration                 *time.Time       `json:"expiration,omitempty"`
	PackagingUoMName           string           `json:"packaging_uom_name,omitempty"`
	PurchasePrice              *decimal.Decimal `json:"purchase_price,omitempty"`
	ReasonUUID                 string           `json:"reason_uuid,omitempty"`
	ReasonForRequestedQuantity string           `json:"reason_for_requested_quantity,omitempty"`
}

// StockOperationResponse an operation with its resolved display type name.
type StockOperationResponse struct {
	UUID              string                       `json:"uuid"`
	OperationNumber   string                       `json:"operation_number"`
	OperationTypeUUID string                       `json:"operation_type_uuid"`
	OperationTypeName string                       `json:"operation_type_name"`
	Status            string                       `json:"status"`
	SourceName        string                       `json:"source_name,omitempty"`
	DestinationName   string                       `json:"destination_name,omitempty"`
	ResponsibleName   string                       `json:"responsible_name,omitempty"`
	RequestType       string                       `json:"request_type,omitempty"`
	Remarks           string                       `json:"remarks,omitempty"`
	OperationDate     time.Time                    `json:"operation_date"`
	Items             []StockOperationItemResponse `json:"items"`
}

// StockOperationListResponse paginated listing.
type StockOperationListResponse struct {
	Results []StockOperationResponse `json:"results"`
	Page    PageResponse             `json:"page"`
}

// BatchOptionResponse one selectable batch for a stock item.
type BatchOptionResponse struct {
	UUID               string     `json:"uuid"`
	BatchNo            string     `json:"batch_no"`
	BrandName          string     `json:"brand_name,omitempty"`
	Quantity           string     `json:"quantity,omitempty"`
	LocationName       string     `json:"location_name,omitempty"`
	PackagingUoMName   string     `json:"packaging_uom_name,omitempty"`
	PackagingUoMFactor string     `json:"packaging_uom_factor,omitempty"`
	Expiration         *time.Time `json:"expiration,omitempty"`
}

// BatchOptionsResponse the eligible batches of a stock item plus the derived
// form directives for stock-issue operations.
type BatchOptionsResponse struct {
	StockItemUUID string                `json:"stock_item_uuid"`
	Options       []BatchOptionResponse `json:"options"`
	IsOutOfStock  bool                  `json:"is_out_of_stock"`
	BatchRequired bool                  `json:"batch_required"`
}
