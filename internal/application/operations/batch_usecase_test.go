package operations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthstack/stockops-api/internal/application/operations"
	"github.com/healthstack/stockops-api/internal/domain/entity"
)

const stockItemUUID = "aa0cd2e8-10c4-42b0-91a2-888888888888"

func batchFixture() ([]entity.StockBatch, []entity.BatchInventory) {
	batches := []entity.StockBatch{
		{UUID: "b-1", BatchNo: "LOT-001", StockItemUUID: stockItemUUID},
		{UUID: "b-2", BatchNo: "LOT-002", StockItemUUID: stockItemUUID},
		{UUID: "b-3", BatchNo: "LOT-003", StockItemUUID: stockItemUUID, Voided: true},
	}
	inventory := []entity.BatchInventory{
		{BatchNo: "LOT-001", Quantity: "120", LocationName: "Main Pharmacy Store"},
		{BatchNo: "LOT-001", Quantity: "0", LocationName: "Pediatric Ward"},
		{BatchNo: "LOT-002", Quantity: "30", LocationName: "Pediatric Ward"},
	}
	return batches, inventory
}

func batchUseCase(t *testing.T, inventory []entity.BatchInventory, roleLocations []entity.LocationScope, stores []entity.Location) *operations.BatchOptionsUseCase {
	t.Helper()
	batches, _ := batchFixture()
	batchRepo := &mockBatchRepo{
		batchesFn: func(context.Context, string) ([]entity.StockBatch, error) { return batches, nil },
		inventoryFn: func(context.Context, string) ([]entity.BatchInventory, error) {
			return inventory, nil
		},
	}
	roles := &mockRoleRepo{scopesFn: func(context.Context, string) (*entity.UserRoleScopes, error) {
		return &entity.UserRoleScopes{Locations: roleLocations}, nil
	}}
	locations := &mockLocationRepo{listFn: func(context.Context) ([]entity.Location, error) {
		return stores, nil
	}}
	return operations.NewBatchOptionsUseCase(batchRepo, roles, locations)
}

func TestOptionsForItem_IssueRestrictedToPermittedStores(t *testing.T) {
	_, inventory := batchFixture()
	stores := []entity.Location{
		{UUID: mainStoreUUID, Name: "Main Pharmacy Store", Tags: []string{entity.TagMainStore}},
		{UUID: subStoreUUID, Name: "Pediatric Ward", Tags: []string{entity.TagSubStore}},
	}
	roleLocations := []entity.LocationScope{
		{Role: "Dispenser", LocationUUID: subStoreUUID, LocationName: "Pediatric Ward"},
	}
	uc := batchUseCase(t, inventory, roleLocations, stores)

	resp, err := uc.OptionsForItem(context.Background(), "user-1", stockItemUUID, entity.OperationStockIssue)

	require.NoError(t, err)
	require.Len(t, resp.Options, 1)
	assert.Equal(t, "LOT-002", resp.Options[0].BatchNo)
	assert.False(t, resp.IsOutOfStock)
	assert.True(t, resp.BatchRequired)
}

func TestOptionsForItem_NoRoleLocationsFailsOpen(t *testing.T) {
	_, inventory := batchFixture()
	stores := []entity.Location{
		{UUID: mainStoreUUID, Name: "Main Pharmacy Store", Tags: []string{entity.TagMainStore}},
	}
	uc := batchUseCase(t, inventory, nil, stores)

	resp, err := uc.OptionsForItem(context.Background(), "user-1", stockItemUUID, entity.OperationStockIssue)

	require.NoError(t, err)
	assert.Len(t, resp.Options, 2, "no permitted set means no location restriction")
}

func TestOptionsForItem_NonIssueSkipsLocationCheck(t *testing.T) {
	_, inventory := batchFixture()
	uc := batchUseCase(t, inventory, nil, nil)

	resp, err := uc.OptionsForItem(context.Background(), "user-1", stockItemUUID, entity.OperationAdjustment)

	require.NoError(t, err)
	assert.Len(t, resp.Options, 2, "positive-quantity batches regardless of location")
	assert.False(t, resp.IsOutOfStock)
	assert.False(t, resp.BatchRequired)
}

func TestOptionsForItem_OutOfStockJudgedOnWholeInventory(t *testing.T) {
	inventory := []entity.BatchInventory{
		{BatchNo: "LOT-001", Quantity: "0", LocationName: "Main Pharmacy Store"},
		{BatchNo: "LOT-002", Quantity: "0", LocationName: "Pediatric Ward"},
	}
	uc := batchUseCase(t, inventory, nil, nil)

	resp, err := uc.OptionsForItem(context.Background(), "user-1", stockItemUUID, entity.OperationStockIssue)

	require.NoError(t, err)
	assert.Empty(t, resp.Options)
	assert.True(t, resp.IsOutOfStock)
	assert.False(t, resp.BatchRequired, "out of stock relaxes the batch requirement")
}

func TestPermittedIssueLocations_IntersectsRoleAndStoreTags(t *testing.T) {
	stores := []entity.Location{
		{UUID: mainStoreUUID, Name: "Main Pharmacy Store", Tags: []string{entity.TagMainStore}},
		{UUID: subStoreUUID, Name: "Pediatric Ward", Tags: []string{entity.TagSubStore}},
	}
	roleLocations := []entity.LocationScope{
		{Role: "Store Manager", LocationUUID: mainStoreUUID, LocationName: "Main Pharmacy Store"},
		{Role: "Dispenser", LocationUUID: mainStoreUUID, LocationName: "Main Pharmacy Store"},
		{Role: "Dispenser", LocationUUID: "not-a-store", LocationName: "Records Office"},
	}
	uc := batchUseCase(t, nil, roleLocations, stores)

	names, err := uc.PermittedIssueLocations(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"Main Pharmacy Store"}, names, "deduplicated and restricted to tagged stores")
}
