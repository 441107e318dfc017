package stockops

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/healthstack/stockops-api/internal/domain/entity"
)

// BatchOption is the merged, ephemeral view of a batch offered for selection:
// batch identity joined with the quantity, issuing location and packaging
// reported by the inventory transactions source. Recomputed from upstream
// data on every request, never persisted.
type BatchOption struct {
	UUID               string
	BatchNo            string
	StockItemUUID      string
	BrandName          string
	Expiration         *time.Time
	Quantity           string // raw inventory figure, parsed at filter time
	LocationName       string
	PackagingUoMName   string
	PackagingUoMFactor string
}

// MergeBatchInventory joins batch records with inventory figures by batch
// number. Batches without an inventory row are kept with an empty quantity;
// a batch with several inventory rows (one per issuing location) yields one
// option per row. Voided batches are dropped.
func MergeBatchInventory(batches []entity.StockBatch, inventory []entity.BatchInventory) []BatchOption {
	byBatchNo := make(map[string][]entity.BatchInventory, len(inventory))
	for _, inv := range inventory {
		byBatchNo[inv.BatchNo] = append(byBatchNo[inv.BatchNo], inv)
	}

	options := make([]BatchOption, 0, len(batches))
	for _, b := range batches {
		if b.Voided {
			continue
		}
		base := BatchOption{
			UUID:          b.UUID,
			BatchNo:       b.BatchNo,
			StockItemUUID: b.StockItemUUID,
			BrandName:     b.BrandName,
			Expiration:    b.Expiration,
		}
		rows := byBatchNo[b.BatchNo]
		if len(rows) == 0 {
			options = append(options, base)
			continue
		}
		for _, inv := range rows {
			opt := base
			opt.Quantity = inv.Quantity
			opt.LocationName = inv.LocationName
			opt.PackagingUoMName = inv.PackagingUoMName
			opt.PackagingUoMFactor = inv.PackagingUoMFactor
			options = append(options, opt)
		}
	}
	return options
}

// EligibleBatches keeps batches whose quantity parses to a positive number
// and, when permittedLocations is non-empty, whose location name matches one
// of the permitted locations after trimming and case folding. An empty
// permitted set skips the location check entirely (fail-open) rather than
// excluding everything.
func EligibleBatches(options []BatchOption, permittedLocations []string) []BatchOption {
	permitted := make(map[string]struct{}, len(permittedLocations))
	for _, name := range permittedLocations {
		if key := normalizeLocation(name); key != "" {
			permitted[key] = struct{}{}
		}
	}

	eligible := make([]BatchOption, 0, len(options))
	for _, opt := range options {
		qty, err := decimal.NewFromString(strings.TrimSpace(opt.Quantity))
		if err != nil || !qty.IsPositive() {
			continue
		}
		if len(permitted) > 0 {
			if _, ok := permitted[normalizeLocation(opt.LocationName)]; !ok {
				continue
			}
		}
		eligible = append(eligible, opt)
	}
	return eligible
}

func normalizeLocation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ItemFormState is a snapshot of a stock-issue line item's form fields.
type ItemFormState struct {
	Quantity         decimal.Decimal
	OriginalQuantity decimal.Decimal
	StockBatchUUID   string
	BatchRequired    bool
	OutOfStock       bool
}

// ApplyStockAvailability transitions an item form snapshot between the
// in-stock and out-of-stock states. Out of stock forces the quantity to
// zero, clears any selected batch and relaxes the batch requirement. Coming
// back in stock restores the captured original quantity only when the field
// currently reads exactly zero, and makes the batch mandatory again. The
// transition is idempotent: re-entering the same state twice changes nothing.
func ApplyStockAvailability(state ItemFormState, outOfStock bool) ItemFormState {
	if outOfStock {
		state.Quantity = decimal.Zero
		state.StockBatchUUID = ""
		state.BatchRequired = false
		state.OutOfStock = true
		return state
	}
	if state.Quantity.IsZero() && state.OriginalQuantity.IsPositive() {
		state.Quantity = state.OriginalQuantity
	}
	state.BatchRequired = true
	state.OutOfStock = false
	return state
}

// TotalQuantity sums the parseable quantities across the inventory view of a
// stock item. Unparseable figures count as zero.
func TotalQuantity(options []BatchOption) decimal.Decimal {
	total := decimal.Zero
	for _, opt := range options {
		if qty, err := decimal.NewFromString(strings.TrimSpace(opt.Quantity)); err == nil {
			total = total.Add(qty)
		}
	}
	return total
}
