// Package xlsx implementa la exportación del historial de movimientos a hoja de cálculo.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-tracker/internal/application/inventory"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

var _ inventory.HistoryReportGenerator = (*ExcelizeHistoryReport)(nil)

const sheetName = "Movements"

// ExcelizeHistoryReport implementa inventory.HistoryReportGenerator con excelize.
type ExcelizeHistoryReport struct{}

// NewExcelizeHistoryReport construye el generador.
func NewExcelizeHistoryReport() *ExcelizeHistoryReport { return &ExcelizeHistoryReport{} }

// GenerateHistoryReport escribe una hoja con cabecera fija y una fila por movimiento.
// La columna "Effect" lleva el cambio con signo aplicado al stock.
func (g *ExcelizeHistoryReport) GenerateHistoryReport(
	_ context.Context,
	item *entity.Item,
	movements []*entity.Movement,
) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	_ = f.SetCellValue(sheetName, "A1", "Item")
	_ = f.SetCellValue(sheetName, "B1", fmt.Sprintf("%s (%s)", item.Name, item.SKU))
	_ = f.SetCellValue(sheetName, "A2", "Stock")
	_ = f.SetCellValue(sheetName, "B2", item.Stock)
	_ = f.SetCellValue(sheetName, "C2", item.Unit)

	headers := []string{"ID", "Date", "Type", "Quantity", "Effect"}
	const headerRow = 4
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for n, mv := range movements {
		values := []any{
			mv.ID,
			mv.InsertedAt.UTC().Format("2006-01-02 15:04:05"),
			string(mv.MovementType),
			mv.Quantity,
			mv.Effect(),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, headerRow+1+n)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.AutoFilter(sheetName, "A4:E4", []excelize.AutoFilterOptions{})
	_ = f.SetPanes(sheetName, &excelize.Panes{Freeze: true, Split: true, YSplit: headerRow, TopLeftCell: "A5", ActivePane: "bottomLeft"})
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
