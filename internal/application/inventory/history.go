package inventory

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// Formatos de exportación del historial.
const (
	ReportFormatPDF  = "pdf"
	ReportFormatXLSX = "xlsx"
)

var reportContentTypes = map[string]string{
	ReportFormatPDF:  "application/pdf",
	ReportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// HistoryUseCase consulta y exporta el historial de movimientos de un item.
type HistoryUseCase struct {
	itemRepo   repository.ItemRepository
	movRepo    repository.MovementRepository
	generators map[string]HistoryReportGenerator
}

// NewHistoryUseCase construye el caso de uso. generators asocia formato ("pdf", "xlsx") con su generador.
func NewHistoryUseCase(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	generators map[string]HistoryReportGenerator,
) *HistoryUseCase {
	return &HistoryUseCase{itemRepo: itemRepo, movRepo: movRepo, generators: generators}
}

// ListMovements devuelve los movimientos del item en el orden del repositorio (más recientes primero).
func (uc *HistoryUseCase) ListMovements(ctx context.Context, rawItemID string) ([]dto.MovementResponse, error) {
	_, movements, err := uc.load(ctx, rawItemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementResponse(m))
	}
	return out, nil
}

// Export genera el historial del item en el formato pedido.
func (uc *HistoryUseCase) Export(ctx context.Context, rawItemID, format string) (*dto.ReportFile, error) {
	gen, ok := uc.generators[format]
	if !ok {
		return nil, domain.NewValidationError("format", "is invalid")
	}
	item, movements, err := uc.load(ctx, rawItemID)
	if err != nil {
		return nil, err
	}
	content, err := gen.GenerateHistoryReport(ctx, item, movements)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	return &dto.ReportFile{
		Filename:    fmt.Sprintf("movements_%s.%s", item.SKU, format),
		ContentType: reportContentTypes[format],
		Content:     content,
	}, nil
}

func (uc *HistoryUseCase) load(ctx context.Context, rawItemID string) (*entity.Item, []*entity.Movement, error) {
	itemID, err := strconv.ParseInt(rawItemID, 10, 64)
	if err != nil {
		return nil, nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	return item, movements, nil
}
