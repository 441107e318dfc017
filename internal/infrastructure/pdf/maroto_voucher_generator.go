// Package pdf renders the printable voucher of a stock operation.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Operation number + type  │  Status + Date           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTIES: Source / Destination / Responsible                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Item | Batch | Expiry | Qty | Qty Requested          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REMARKS + QR (operation uuid for lookup)                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/healthstack/stockops-api/internal/application/report"
	"github.com/healthstack/stockops-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 88}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoVoucherGenerator implements report.VoucherPDFGenerator with Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator builds the generator.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

var _ report.VoucherPDFGenerator = (*MarotoVoucherGenerator)(nil)

// GenerateVoucherPDF renders the voucher and returns its bytes.
func (g *MarotoVoucherGenerator) GenerateVoucherPDF(_ context.Context, op *entity.StockOperation, displayTypeName string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Stock Operation Voucher", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(op, displayTypeName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(op))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(op.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(op) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: operation number + type name (left), status + date (right).
func headerRow(op *entity.StockOperation, displayTypeName string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(op.OperationNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(displayTypeName, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("STOCK OPERATION VOUCHER", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(op.Status, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+op.OperationDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partiesRow: source, destination and responsible party.
func partiesRow(op *entity.StockOperation) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PARTIES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("From: %s   |   To: %s   |   Responsible: %s",
				nonEmpty(op.SourceName, "—"),
				nonEmpty(op.DestinationName, "—"),
				nonEmpty(op.ResponsibleName, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 5, align.Left),
		h("Batch", 2, align.Left),
		h("Expiry", 2, align.Center),
		h("Qty", 1, align.Right),
		h("Qty Requested", 2, align.Right),
	)
}

func tableItemRows(items []entity.StockOperationItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		expiry := "—"
		if it.Expiration != nil {
			expiry = it.Expiration.Format("01/2006")
		}
		requested := "—"
		if it.QuantityRequested != nil {
			requested = it.QuantityRequested.String()
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				nonEmpty(it.StockItemName, it.StockItemUUID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.BatchNo, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				expiry,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				requested,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRows: remarks plus a QR of the operation uuid for quick lookup.
func footerRows(op *entity.StockOperation) []core.Row {
	rows := []core.Row{}
	if op.Remarks != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Remarks:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
			text.New(op.Remarks, props.Text{Size: 8, Top: 6, Color: colorGray}),
		)))
	}
	rows = append(rows, row.New(40).Add(
		col.New(4).Add(code.NewQr(op.UUID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Scan to open this operation in the stock module.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(op.UUID, props.Text{
				Size: 6.5, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	))
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
