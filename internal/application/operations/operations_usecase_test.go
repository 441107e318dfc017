package operations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthstack/stockops-api/internal/application/dto"
	"github.com/healthstack/stockops-api/internal/application/operations"
	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
)

func opsUseCase(t *testing.T, repo *mockOperationRepo, types *mockTypeRepo, inventory []entity.BatchInventory) (*operations.OperationsUseCase, *operations.ListCache) {
	t.Helper()
	cache := operations.NewListCache()
	uc := operations.NewOperationsUseCase(
		repo, types, batchUseCase(t, inventory, nil, nil), menuSettings(), cache, testLogger(),
	)
	return uc, cache
}

func adjustmentType() *entity.StockOperationType {
	return &entity.StockOperationType{
		UUID: adjTypeUUID, Name: "Adjustment", OperationType: entity.OperationAdjustment,
	}
}

func validItem() dto.StockOperationItemRequest {
	return dto.StockOperationItemRequest{
		StockItemUUID: stockItemUUID,
		Quantity:      decimal.NewFromInt(12),
	}
}

// ───────────────────────────── validation ─────────────────────────────

func TestCreate_ValidationErrorsCarryFields(t *testing.T) {
	uc, _ := opsUseCase(t, &mockOperationRepo{}, &mockTypeRepo{}, nil)

	_, err := uc.Create(context.Background(), "user-1", dto.CreateStockOperationRequest{})

	var verr *operations.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields)
}

func TestCreate_RejectsUnknownRequestType(t *testing.T) {
	uc, _ := opsUseCase(t, &mockOperationRepo{}, &mockTypeRepo{}, nil)

	_, err := uc.Create(context.Background(), "user-1", dto.CreateStockOperationRequest{
		OperationTypeUUID: adjTypeUUID,
		RequestType:       "URGENT",
		Items:             []dto.StockOperationItemRequest{validItem()},
	})

	var verr *operations.ValidationError
	require.ErrorAs(t, err, &verr)
}

// ─────────────────────── adjustment sign convention ───────────────────────

func TestCreate_NegativeAdjustmentNegatesQuantities(t *testing.T) {
	repo := &mockOperationRepo{}
	types := &mockTypeRepo{getFn: func(context.Context, string) (*entity.StockOperationType, error) {
		return adjustmentType(), nil
	}}
	uc, _ := opsUseCase(t, repo, types, nil)

	resp, err := uc.Create(context.Background(), "user-1", dto.CreateStockOperationRequest{
		OperationTypeUUID: adjTypeUUID,
		VariantName:       "Negative Adjustment",
		Items: []dto.StockOperationItemRequest{
			{StockItemUUID: stockItemUUID, Quantity: decimal.NewFromInt(12)},
			{StockItemUUID: stockItemUUID, Quantity: decimal.NewFromInt(-3)},
		},
	})

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	items := repo.created[0].Items
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(-12)))
	assert.True(t, items[1].Quantity.Equal(decimal.NewFromInt(-3)), "already-negative quantities stay put")
	assert.Equal(t, "Negative Adjustment", resp.OperationTypeName, "list name reflects the sign")
}

func TestCreate_PositiveAdjustmentKeepsQuantities(t *testing.T) {
	repo := &mockOperationRepo{}
	types := &mockTypeRepo{getFn: func(context.Context, string) (*entity.StockOperationType, error) {
		return adjustmentType(), nil
	}}
	uc, _ := opsUseCase(t, repo, types, nil)

	_, err := uc.Create(context.Background(), "user-1", dto.CreateStockOperationRequest{
		OperationTypeUUID: adjTypeUUID,
		VariantName:       "Positive Adjustment",
		Items:             []dto.StockOperationItemRequest{validItem()},
	})

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].Items[0].Quantity.Equal(decimal.NewFromInt(12)))
}

// ─────────────────────── stock issue availability ───────────────────────

func TestCreate_IssueOutOfStockForcesZeroAndClearsBatch(t *testing.T) {
	repo := &mockOperationRepo{}
	types := &mockTypeRepo{getFn: func(context.Context, string) (*entity.StockOperationType, error) {
		return &entity.StockOperationType{
			UUID: issueTypeUUID, Name: "Stock Issue", OperationType: entity.OperationStockIssue,
		}, nil
	}}
	// Every inventory figure is zero: the item is out of stock.
	inventory := []entity.BatchInventory{{BatchNo: "LOT-001", Quantity: "0"}}
	uc, _ := opsUseCase(t, repo, types, inventory)

	item := validItem()
	item.StockBatchUUID = "b8d71c2e-91a2-4aa1-9d0e-999999999999"
	_, err := uc.Create(context.Background(), "user-1", dto.CreateStockOperationRequest{
		OperationTypeUUID: issueTypeUUID,
		Items:             []dto.StockOperationItemRequest{item},
	})

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	created := repo.created[0].Items[0]
	assert.True(t, created.Quantity.IsZero())
	assert.Empty(t, created.StockBatchUUID)
}

func TestCreate_IssueInStockRequiresBatch(t *testing.T) {
	types := &mockTypeRepo{getFn: func(context.Context, string) (*entity.StockOperationType, error) {
		return &entity.StockOperationType{
			UUID: issueTypeUUID, Name: "Stock Issue", OperationType: entity.OperationStockIssue,
		}, nil
	}}
	inventory := []entity.BatchInventory{{BatchNo: "LOT-001", Quantity: "120"}}
	uc, _ := opsUseCase(t, &mockOperationRepo{}, types, inventory)

	_, err := uc.Create(context.Background(), "user-1", dto.CreateStockOperationRequest{
		OperationTypeUUID: issueTypeUUID,
		Items:             []dto.StockOperationItemRequest{validItem()}, // no batch picked
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch selection required")
}

// ─────────────────────────── listing and cache ───────────────────────────

func TestList_CachesPagesUntilInvalidated(t *testing.T) {
	calls := 0
	repo := &mockOperationRepo{listFn: func(context.Context, repository.OperationFilter) ([]entity.StockOperation, int, error) {
		calls++
		return []entity.StockOperation{{UUID: "op-1", OperationNumber: "SO-AB12CD34", Status: entity.StatusNew}}, 1, nil
	}}
	uc, cache := opsUseCase(t, repo, &mockTypeRepo{}, nil)
	page := dto.PageRequest{Limit: 20}

	first, err := uc.List(context.Background(), page, entity.StatusNew)
	require.NoError(t, err)
	second, err := uc.List(context.Background(), page, entity.StatusNew)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second read served from cache")
	assert.Equal(t, first, second)

	cache.Invalidate()
	_, err = uc.List(context.Background(), page, entity.StatusNew)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestList_DistinctFiltersCacheSeparately(t *testing.T) {
	calls := 0
	repo := &mockOperationRepo{listFn: func(_ context.Context, f repository.OperationFilter) ([]entity.StockOperation, int, error) {
		calls++
		return nil, 0, nil
	}}
	uc, _ := opsUseCase(t, repo, &mockTypeRepo{}, nil)

	_, err := uc.List(context.Background(), dto.PageRequest{Limit: 20}, entity.StatusNew)
	require.NoError(t, err)
	_, err = uc.List(context.Background(), dto.PageRequest{Limit: 20}, entity.StatusSubmitted)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestList_AdjustmentDisplayNameFollowsSign(t *testing.T) {
	repo := &mockOperationRepo{listFn: func(context.Context, repository.OperationFilter) ([]entity.StockOperation, int, error) {
		return []entity.StockOperation{{
			UUID:              "op-1",
			OperationTypeUUID: adjTypeUUID,
			OperationTypeName: "Adjustment",
			Items: []entity.StockOperationItem{
				{Quantity: decimal.NewFromInt(-5)},
				{Quantity: decimal.NewFromInt(-2)},
			},
		}}, 1, nil
	}}
	uc, _ := opsUseCase(t, repo, &mockTypeRepo{}, nil)

	resp, err := uc.List(context.Background(), dto.PageRequest{}, "")

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Negative Adjustment", resp.Results[0].OperationTypeName)
}

func TestCreate_InvalidatesListCache(t *testing.T) {
	listCalls := 0
	repo := &mockOperationRepo{listFn: func(context.Context, repository.OperationFilter) ([]entity.StockOperation, int, error) {
		listCalls++
		return nil, 0, nil
	}}
	types := &mockTypeRepo{getFn: func(context.Context, string) (*entity.StockOperationType, error) {
		return adjustmentType(), nil
	}}
	uc, _ := opsUseCase(t, repo, types, nil)

	_, err := uc.List(context.Background(), dto.PageRequest{}, "")
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "user-1", dto.CreateStockOperationRequest{
		OperationTypeUUID: adjTypeUUID,
		Items:             []dto.StockOperationItemRequest{validItem()},
	})
	require.NoError(t, err)

	_, err = uc.List(context.Background(), dto.PageRequest{}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls, "creation dropped the cached page")
}

func TestCreate_GeneratesOperationNumber(t *testing.T) {
	repo := &mockOperationRepo{}
	types := &mockTypeRepo{getFn: func(context.Context, string) (*entity.StockOperationType, error) {
		return adjustmentType(), nil
	}}
	uc, _ := opsUseCase(t, repo, types, nil)

	resp, err := uc.Create(context.Background(), "user-1", dto.CreateStockOperationRequest{
		OperationTypeUUID: adjTypeUUID,
		Items:             []dto.StockOperationItemRequest{validItem()},
	})

	require.NoError(t, err)
	assert.Regexp(t, `^SO-[0-9A-F]{8}$`, resp.OperationNumber)
	assert.Equal(t, entity.StatusNew, resp.Status)
}

func TestCreate_PropagatesRepositoryError(t *testing.T) {
	boom := errors.New("unique violation")
	repo := &mockOperationRepo{createFn: func(context.Context, *entity.StockOperation) error { return boom }}
	types := &mockTypeRepo{getFn: func(context.Context, string) (*entity.StockOperationType, error) {
		return adjustmentType(), nil
	}}
	uc, _ := opsUseCase(t, repo, types, nil)

	_, err := uc.Create(context.Background(), "user-1", dto.CreateStockOperationRequest{
		OperationTypeUUID: adjTypeUUID,
		Items:             []dto.StockOperationItemRequest{validItem()},
	})

	require.ErrorIs(t, err, boom)
}
