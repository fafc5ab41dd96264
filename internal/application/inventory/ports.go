package inventory

import (
	"context"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza que el stock del item y el movimiento se persisten juntos o no se persisten.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// HistoryReportGenerator genera un documento con el historial de movimientos de un item.
type HistoryReportGenerator interface {
	GenerateHistoryReport(ctx context.Context, item *entity.Item, movements []*entity.Movement) ([]byte, error)
}
