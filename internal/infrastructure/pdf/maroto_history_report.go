// Package pdf implementa el reporte PDF del historial de movimientos de un item.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del item + SKU  │  Fecha de emisión          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Unidad / Stock actual (marcado si es bajo)         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cantidad                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/stock-tracker/internal/application/inventory"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

var _ inventory.HistoryReportGenerator = (*MarotoHistoryReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorSuccess = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// MarotoHistoryReport implementa inventory.HistoryReportGenerator usando Maroto v2.
type MarotoHistoryReport struct {
	now func() time.Time
}

// NewMarotoHistoryReport construye el generador.
func NewMarotoHistoryReport() *MarotoHistoryReport {
	return &MarotoHistoryReport{now: time.Now}
}

// GenerateHistoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoHistoryReport) GenerateHistoryReport(
	_ context.Context,
	item *entity.Item,
	movements []*entity.Movement,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Movement history "+item.SKU, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(item, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(item))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No movements recorded yet.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range tableRows(movements) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(item *entity.Item, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(item.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+item.SKU, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("MOVEMENT HISTORY", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generated: "+now.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: unidad y stock actual; el stock bajo se destaca en rojo.
func summaryRow(item *entity.Item) core.Row {
	stockProps := props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}
	if item.IsLowStock() {
		stockProps.Color = colorDanger
	}
	return row.New(12).Add(
		col.New(6).Add(
			text.New("UNIT", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(item.Unit, props.Text{Size: 10, Top: 6}),
		),
		col.New(6).Add(
			text.New("CURRENT STOCK", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d %s", item.Stock, item.Unit), stockProps),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 6, align.Left),
		h("Type", 3, align.Left),
		h("Quantity", 3, align.Right),
	)
}

// tableRows: una fila por movimiento, en el orden recibido.
func tableRows(movements []*entity.Movement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		qtyColor := colorSuccess
		sign := "+"
		if mv.MovementType == entity.MovementTypeOUT {
			qtyColor = colorDanger
			sign = "-"
		}
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				mv.InsertedAt.Format("2006-01-02 15:04:05"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				string(mv.MovementType),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				fmt.Sprintf("%s%d", sign, mv.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor},
			)),
		))
	}
	return result
}
