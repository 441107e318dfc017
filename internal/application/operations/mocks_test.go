package operations_test

import (
	"context"

	"github.com/healthstack/stockops-api/internal/application/operations"
	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
	"github.com/healthstack/stockops-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.Nop()
}

type mockOperationRepo struct {
	getFn    func(ctx context.Context, uuid string) (*entity.StockOperation, error)
	listFn   func(ctx context.Context, f repository.OperationFilter) ([]entity.StockOperation, int, error)
	createFn func(ctx context.Context, op *entity.StockOperation) error
	applyFn  func(ctx context.Context, uuid, action, reason, newStatus, actorID string) error

	applied []appliedAction
	created []*entity.StockOperation
}

type appliedAction struct {
	UUID, Action, Reason, NewStatus, ActorID string
}

func (m *mockOperationRepo) GetByUUID(ctx context.Context, uuid string) (*entity.StockOperation, error) {
	return m.getFn(ctx, uuid)
}

func (m *mockOperationRepo) List(ctx context.Context, f repository.OperationFilter) ([]entity.StockOperation, int, error) {
	return m.listFn(ctx, f)
}

func (m *mockOperationRepo) Create(ctx context.Context, op *entity.StockOperation) error {
	m.created = append(m.created, op)
	if m.createFn != nil {
		return m.createFn(ctx, op)
	}
	return nil
}

func (m *mockOperationRepo) ApplyAction(ctx context.Context, uuid, action, reason, newStatus, actorID string) error {
	m.applied = append(m.applied, appliedAction{uuid, action, reason, newStatus, actorID})
	if m.applyFn != nil {
		return m.applyFn(ctx, uuid, action, reason, newStatus, actorID)
	}
	return nil
}

type mockTypeRepo struct {
	listFn func(ctx context.Context) ([]entity.StockOperationType, error)
	getFn  func(ctx context.Context, uuid string) (*entity.StockOperationType, error)
}

func (m *mockTypeRepo) List(ctx context.Context) ([]entity.StockOperationType, error) {
	return m.listFn(ctx)
}

func (m *mockTypeRepo) GetByUUID(ctx context.Context, uuid string) (*entity.StockOperationType, error) {
	return m.getFn(ctx, uuid)
}

type mockRoleRepo struct {
	scopesFn func(ctx context.Context, userID string) (*entity.UserRoleScopes, error)
}

func (m *mockRoleRepo) ScopesForUser(ctx context.Context, userID string) (*entity.UserRoleScopes, error) {
	return m.scopesFn(ctx, userID)
}

type mockLocationRepo struct {
	getFn  func(ctx context.Context, uuid string) (*entity.Location, error)
	listFn func(ctx context.Context) ([]entity.Location, error)
}

func (m *mockLocationRepo) GetByUUID(ctx context.Context, uuid string) (*entity.Location, error) {
	return m.getFn(ctx, uuid)
}

func (m *mockLocationRepo) ListTaggedStores(ctx context.Context) ([]entity.Location, error) {
	return m.listFn(ctx)
}

type mockBatchRepo struct {
	batchesFn   func(ctx context.Context, stockItemUUID string) ([]entity.StockBatch, error)
	inventoryFn func(ctx context.Context, stockItemUUID string) ([]entity.BatchInventory, error)
}

func (m *mockBatchRepo) ListByStockItem(ctx context.Context, stockItemUUID string) ([]entity.StockBatch, error) {
	return m.batchesFn(ctx, stockItemUUID)
}

func (m *mockBatchRepo) InventoryByStockItem(ctx context.Context, stockItemUUID string) ([]entity.BatchInventory, error) {
	return m.inventoryFn(ctx, stockItemUUID)
}

// mockSubmitter records submissions and their order relative to actions.
type mockSubmitter struct {
	err      error
	payloads []*operations.ExternalRequisitionPayload
	onSubmit func()
}

func (m *mockSubmitter) SubmitRequisition(ctx context.Context, payload *operations.ExternalRequisitionPayload) error {
	m.payloads = append(m.payloads, payload)
	if m.onSubmit != nil {
		m.onSubmit()
	}
	return m.err
}

type mockInvalidator struct {
	calls int
}

func (m *mockInvalidator) Invalidate() { m.calls++ }
