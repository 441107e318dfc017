package stockops_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/stockops"
)

// ──────────────────────────────────────────────────────────────────────────────
// EligibleBatches
// ──────────────────────────────────────────────────────────────────────────────

func TestEligibleBatches_KeepsPositiveQuantityInPermittedLocation(t *testing.T) {
	options := []stockops.BatchOption{
		{BatchNo: "B1", Quantity: "0", LocationName: "MainStore"},
		{BatchNo: "B2", Quantity: "5", LocationName: "MainStore"},
	}

	eligible := stockops.EligibleBatches(options, []string{"MainStore"})

	require.Len(t, eligible, 1)
	assert.Equal(t, "B2", eligible[0].BatchNo)
}

func TestEligibleBatches_LocationMatchIsCaseAndWhitespaceNormalized(t *testing.T) {
	options := []stockops.BatchOption{
		{BatchNo: "B1", Quantity: "3", LocationName: "  mainstore "},
		{BatchNo: "B2", Quantity: "3", LocationName: "Pharmacy"},
	}

	eligible := stockops.EligibleBatches(options, []string{"MAINSTORE"})

	require.Len(t, eligible, 1)
	assert.Equal(t, "B1", eligible[0].BatchNo)
}

func TestEligibleBatches_EmptyPermittedSetFailsOpen(t *testing.T) {
	options := []stockops.BatchOption{
		{BatchNo: "B1", Quantity: "2", LocationName: "Anywhere"},
		{BatchNo: "B2", Quantity: "-1", LocationName: "Anywhere"},
		{BatchNo: "B3", Quantity: "not-a-number"},
	}

	eligible := stockops.EligibleBatches(options, nil)

	// No location restriction, but quantity must still parse to a positive number.
	require.Len(t, eligible, 1)
	assert.Equal(t, "B1", eligible[0].BatchNo)
}

func TestEligibleBatches_Invariants(t *testing.T) {
	options := []stockops.BatchOption{
		{BatchNo: "B1", Quantity: "0", LocationName: "A"},
		{BatchNo: "B2", Quantity: "7", LocationName: "A"},
		{BatchNo: "B3", Quantity: "4", LocationName: "B"},
		{BatchNo: "B4", Quantity: "", LocationName: "A"},
	}
	permitted := []string{"A"}

	eligible := stockops.EligibleBatches(options, permitted)

	for _, opt := range eligible {
		qty, err := decimal.NewFromString(opt.Quantity)
		require.NoError(t, err)
		assert.True(t, qty.IsPositive(), "every surviving batch has quantity > 0")
		assert.Equal(t, "A", opt.LocationName, "every surviving batch sits in a permitted location")
	}
	require.Len(t, eligible, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// MergeBatchInventory
// ──────────────────────────────────────────────────────────────────────────────

func TestMergeBatchInventory(t *testing.T) {
	batches := []entity.StockBatch{
		{UUID: "u1", BatchNo: "B1", StockItemUUID: "s1"},
		{UUID: "u2", BatchNo: "B2", StockItemUUID: "s1"},
		{UUID: "u3", BatchNo: "B3", StockItemUUID: "s1", Voided: true},
	}
	inventory := []entity.BatchInventory{
		{BatchNo: "B1", Quantity: "5", LocationName: "MainStore", PackagingUoMName: "Box", PackagingUoMFactor: "10"},
		{BatchNo: "B1", Quantity: "2", LocationName: "Pharmacy"},
	}

	options := stockops.MergeBatchInventory(batches, inventory)

	// B1 expands per location row, B2 keeps an empty quantity, B3 is voided.
	require.Len(t, options, 3)
	assert.Equal(t, "5", options[0].Quantity)
	assert.Equal(t, "MainStore", options[0].LocationName)
	assert.Equal(t, "Box", options[0].PackagingUoMName)
	assert.Equal(t, "2", options[1].Quantity)
	assert.Equal(t, "Pharmacy", options[1].LocationName)
	assert.Equal(t, "B2", options[2].BatchNo)
	assert.Empty(t, options[2].Quantity)
}

func TestTotalQuantity(t *testing.T) {
	options := []stockops.BatchOption{
		{Quantity: "5"},
		{Quantity: "2.5"},
		{Quantity: "junk"},
		{Quantity: ""},
	}
	assert.True(t, stockops.TotalQuantity(options).Equal(decimal.RequireFromString("7.5")))

	assert.True(t, stockops.TotalQuantity(nil).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyStockAvailability
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyStockAvailability_OutOfStockForcesZeroAndClearsBatch(t *testing.T) {
	state := stockops.ItemFormState{
		Quantity:         decimal.NewFromInt(8),
		OriginalQuantity: decimal.NewFromInt(8),
		StockBatchUUID:   "batch-1",
		BatchRequired:    true,
	}

	out := stockops.ApplyStockAvailability(state, true)

	assert.True(t, out.Quantity.IsZero())
	assert.Empty(t, out.StockBatchUUID)
	assert.False(t, out.BatchRequired)
	assert.True(t, out.OutOfStock)
}

func TestApplyStockAvailability_BackInStockRestoresOnlyFromZero(t *testing.T) {
	zeroed := stockops.ItemFormState{
		Quantity:         decimal.Zero,
		OriginalQuantity: decimal.NewFromInt(8),
		OutOfStock:       true,
	}
	restored := stockops.ApplyStockAvailability(zeroed, false)
	assert.True(t, restored.Quantity.Equal(decimal.NewFromInt(8)))
	assert.True(t, restored.BatchRequired)
	assert.False(t, restored.OutOfStock)

	// A quantity the user has since edited is never overwritten.
	edited := stockops.ItemFormState{
		Quantity:         decimal.NewFromInt(3),
		OriginalQuantity: decimal.NewFromInt(8),
	}
	kept := stockops.ApplyStockAvailability(edited, false)
	assert.True(t, kept.Quantity.Equal(decimal.NewFromInt(3)))
}

func TestApplyStockAvailability_Idempotent(t *testing.T) {
	state := stockops.ItemFormState{
		Quantity:         decimal.NewFromInt(8),
		OriginalQuantity: decimal.NewFromInt(8),
		StockBatchUUID:   "batch-1",
		BatchRequired:    true,
	}

	out1 := stockops.ApplyStockAvailability(state, true)
	out2 := stockops.ApplyStockAvailability(out1, true)
	assert.Equal(t, out1, out2, "re-entering out-of-stock must not re-zero anything new")

	in1 := stockops.ApplyStockAvailability(out2, false)
	in2 := stockops.ApplyStockAvailability(in1, false)
	assert.Equal(t, in1, in2, "re-entering in-stock must not double-apply the restore")
}
