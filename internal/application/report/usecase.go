package report

import (
	"context"
	"fmt"

	"github.com/healthstack/stockops-api/internal/domain/entity"
	"github.com/healthstack/stockops-api/internal/domain/repository"
	"github.com/healthstack/stockops-api/internal/domain/stockops"
)

// VoucherPDFGenerator renders a stock operation voucher document.
type VoucherPDFGenerator interface {
	GenerateVoucherPDF(ctx context.Context, op *entity.StockOperation, displayTypeName string) ([]byte, error)
}

// ReportUseCase produces downloadable documents for stock operations.
type ReportUseCase struct {
	operations         repository.StockOperationRepository
	generator          VoucherPDFGenerator
	adjustmentTypeUUID string
}

// NewReportUseCase builds the use case.
func NewReportUseCase(operations repository.StockOperationRepository, generator VoucherPDFGenerator, adjustmentTypeUUID string) *ReportUseCase {
	return &ReportUseCase{operations: operations, generator: generator, adjustmentTypeUUID: adjustmentTypeUUID}
}

// OperationVoucher renders the voucher PDF of one stock operation. The
// document carries the same display type name the listing shows, so a
// negative adjustment prints as such.
func (uc *ReportUseCase) OperationVoucher(ctx context.Context, operationUUID string) ([]byte, error) {
	op, err := uc.operations.GetByUUID(ctx, operationUUID)
	if err != nil {
		return nil, err
	}
	displayName := stockops.DisplayTypeName(*op, uc.adjustmentTypeUUID)
	pdf, err := uc.generator.GenerateVoucherPDF(ctx, op, displayName)
	if err != nil {
		return nil, fmt.Errorf("generate voucher: %w", err)
	}
	return pdf, nil
}
