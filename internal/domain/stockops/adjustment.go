package stockops

import (
	"sort"

	"github.com/healthstack/stockops-api/internal/domain/entity"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Adjustment variant discriminants.
const (
	AdjustmentPositive = "positive"
	AdjustmentNegative = "negative"
)

// Display names of the two adjustment variants. The backend only ever sees
// one operation type UUID; the variant is resolved back into the sign of the
// submitted quantities.
const (
	NegativeAdjustmentName = "Negative Adjustment"
	PositiveAdjustmentName = "Positive Adjustment"
)

// OperationTypeVariant is a transient, UI-facing view of a catalog entry.
// For the adjustment type two variants share the source entry's UUID and are
// told apart only by AdjustmentType.
type OperationTypeVariant struct {
	entity.StockOperationType
	AdjustmentType string // "", AdjustmentPositive or AdjustmentNegative
}

// SplitAdjustmentVariants expands each "adjustment" catalog entry into a
// Negative and a Positive variant; every other entry passes through 1:1.
// The split spares the user from keying negative quantities by hand: the sign
// is applied at save time from the chosen variant.
func SplitAdjustmentVariants(types []entity.StockOperationType) []OperationTypeVariant {
	variants := make([]OperationTypeVariant, 0, len(types)+1)
	for _, t := range types {
		if t.OperationType == entity.OperationAdjustment {
			negative := t
			negative.Name = NegativeAdjustmentName
			positive := t
			positive.Name = PositiveAdjustmentName
			variants = append(variants,
				OperationTypeVariant{StockOperationType: negative, AdjustmentType: AdjustmentNegative},
				OperationTypeVariant{StockOperationType: positive, AdjustmentType: AdjustmentPositive},
			)
			continue
		}
		variants = append(variants, OperationTypeVariant{StockOperationType: t})
	}
	return variants
}

// SortVariantsByName orders variants by display name with locale-aware
// collation, interleaving the adjustment variants with the rest of the menu.
func SortVariantsByName(variants []OperationTypeVariant, tag language.Tag) {
	c := collate.New(tag)
	sort.SliceStable(variants, func(i, j int) bool {
		return c.CompareString(variants[i].Name, variants[j].Name) < 0
	})
}

// NormalizeNegativeAdjustment flips every positive item quantity to negative
// immediately before submission. Quantities already <= 0 are left untouched,
// so applying the rule twice equals applying it once.
func NormalizeNegativeAdjustment(items []entity.StockOperationItem) []entity.StockOperationItem {
	out := make([]entity.StockOperationItem, len(items))
	for i, item := range items {
		if item.Quantity.IsPositive() {
			item.Quantity = item.Quantity.Neg()
		}
		out[i] = item
	}
	return out
}

// DisplayTypeName resolves the list-view type name of an operation. An
// operation of the adjustment type whose item quantities all share one sign
// is renamed to the matching variant; mixed or empty items keep the stored
// name.
func DisplayTypeName(op entity.StockOperation, adjustmentTypeUUID string) string {
	if adjustmentTypeUUID == "" || op.OperationTypeUUID != adjustmentTypeUUID {
		return op.OperationTypeName
	}
	hasNegative, hasPositive := false, false
	for _, item := range op.Items {
		if item.Quantity.IsNegative() {
			hasNegative = true
		}
		if item.Quantity.IsPositive() {
			hasPositive = true
		}
	}
	switch {
	case hasNegative && !hasPositive:
		return NegativeAdjustmentName
	case hasPositive && !hasNegative:
		return PositiveAdjustmentName
	default:
		return op.OperationTypeName
	}
}
