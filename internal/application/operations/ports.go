package operations

import "context"

// ExternalRequisitionPayload describes a requisition in the terms the
// downstream logistics system understands. Field names (including the
// spelling of clientSubmitedTime) are the downstream wire contract.
type ExternalRequisitionPayload struct {
	SourceOrderID       string               `json:"sourceOrderId"`
	RnRID               string               `json:"rnrId"`
	FacilityCode        string               `json:"facilityCode"`
	ProgramCode         string               `json:"programCode"`
	PeriodID            string               `json:"periodId"`
	ClientSubmittedTime string               `json:"clientSubmitedTime"`
	SourceApplication   string               `json:"sourceApplication"`
	Emergency           bool                 `json:"emergency"`
	Status              string               `json:"status"`
	Products            []RequisitionProduct `json:"products"`
}

// RequisitionProduct one product line of the logistics payload.
type RequisitionProduct struct {
	ProductCode                string               `json:"productCode"`
	QuantityDispensed          int64                `json:"quantityDispensed"`
	QuantityReceived           int64                `json:"quantityReceived"`
	BeginningBalance           int64                `json:"beginningBalance"`
	StockInHand                int64                `json:"stockInHand"`
	StockOutDays               int64                `json:"stockOutDays"`
	LossesAndAdjustments       []LossesAndAdjustment `json:"lossesAndAdjustments"`
	QuantityRequested          string               `json:"quantityRequested"`
	ReasonForRequestedQuantity string               `json:"reasonForRequestedQuantity"`
}

// LossesAndAdjustment one loss/adjustment line of a product record.
type LossesAndAdjustment struct {
	Quantity int64  `json:"quantity"`
	TypeCode string `json:"typeCode"`
	TypeName string `json:"typeName"`
}

// LogisticsSubmitter is the outbound port for forwarding external
// requisitions to the logistics system. The concrete implementation posts
// JSON over HTTP; tests inject a mock.
type LogisticsSubmitter interface {
	SubmitRequisition(ctx context.Context, payload *ExternalRequisitionPayload) error
}

// Invalidator marks the cached operations listing stale after a successful
// mutation.
type Invalidator interface {
	Invalidate()
}
