package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/healthstack/stockops-api/internal/domain"
	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
	"github.com/healthstack/stockops-api/internal/domain/stockops"
	"github.com/healthstack/stockops-api/pkg/logger"
)

// ActionUseCase applies workflow actions to stock operations. For external
// requisitions it additionally forwards the requisition to the downstream
// logistics system before the action itself.
type ActionUseCase struct {
	operations repository.StockOperationRepository
	logistics  LogisticsSubmitter
	cache      Invalidator
	settings   Settings
	log        *logger.Logger
	now        func() time.Time
}

// NewActionUseCase builds the use case. logistics may be nil when no
// downstream endpoint is configured; external requisitions then skip the
// forwarding step.
func NewActionUseCase(
	operations repository.StockOperationRepository,
	logistics LogisticsSubmitter,
	cache Invalidator,
	settings Settings,
	log *logger.Logger,
) *ActionUseCase {
	return &ActionUseCase{
		operations: operations,
		logistics:  logistics,
		cache:      cache,
		settings:   settings,
		log:        log,
		now:        time.Now,
	}
}

// Execute resolves the confirmation title to an action code and applies it
// to the operation. Unrecognized titles return ErrUnrecognizedAction without
// touching anything.
//
// Ordering guarantee for external requisitions: the logistics submission is
// issued first, and the action is always attempted regardless of its
// outcome. There is no rollback of the logistics call on action failure; the
// two systems can diverge and the divergence is logged for reconciliation.
func (uc *ActionUseCase) Execute(ctx context.Context, operationUUID, confirmationTitle, reason, actorID string) error {
	action, ok := stockops.ActionForConfirmation(confirmationTitle)
	if !ok {
		uc.log.Warn().
			Str("operation", operationUUID).
			Str("title", confirmationTitle).
			Msg("unrecognized confirmation title, no action dispatched")
		return domain.ErrUnrecognizedAction
	}

	op, err := uc.operations.GetByUUID(ctx, operationUUID)
	if err != nil {
		return err
	}

	forwarded := false
	if op.OperationTypeUUID == uc.settings.Catalog.ExternalRequisitionTypeUUID && uc.logistics != nil {
		payload := uc.buildRequisitionPayload(op)
		if err := uc.logistics.SubmitRequisition(ctx, payload); err != nil {
			uc.log.Error().Err(err).
				Str("operation", op.UUID).
				Str("requisition", payload.RnRID).
				Msg("logistics submission failed, proceeding with action")
		} else {
			forwarded = true
		}
	}

	newStatus := stockops.StatusForAction(action)
	if err := uc.operations.ApplyAction(ctx, op.UUID, string(action), reason, newStatus, actorID); err != nil {
		if forwarded {
			// The requisition reached the logistics system but the local
			// status transition failed; the two systems are now out of sync.
			uc.log.Error().Err(err).
				Str("operation", op.UUID).
				Str("action", string(action)).
				Msg("action failed after logistics submission succeeded, manual reconciliation needed")
		}
		return fmt.Errorf("apply action %s: %w", action, err)
	}

	uc.cache.Invalidate()
	uc.log.Info().
		Str("operation", op.UUID).
		Str("action", string(action)).
		Str("status", newStatus).
		Msg("stock operation action applied")
	return nil
}

func (uc *ActionUseCase) buildRequisitionPayload(op *entity.StockOperation) *ExternalRequisitionPayload {
	products := make([]RequisitionProduct, 0, len(op.Items))
	for _, item := range op.Items {
		quantity := item.Quantity
		if item.QuantityRequested != nil {
			quantity = *item.QuantityRequested
		}
		products = append(products, RequisitionProduct{
			ProductCode:                item.ProductCode,
			LossesAndAdjustments:       []LossesAndAdjustment{},
			QuantityRequested:          quantity.String(),
			ReasonForRequestedQuantity: item.ReasonForRequestedQuantity,
		})
	}
	return &ExternalRequisitionPayload{
		SourceOrderID:       op.OperationNumber,
		RnRID:               op.UUID,
		FacilityCode:        uc.settings.FacilityCode,
		ProgramCode:         uc.settings.ProgramCode,
		PeriodID:            uc.settings.PeriodID,
		ClientSubmittedTime: uc.now().UTC().Format(time.RFC3339),
		SourceApplication:   uc.settings.SourceApplication,
		Emergency:           op.RequestType == entity.RequestTypeEmergency,
		Status:              "AUTHORIZED",
		Products:            products,
	}
}
