package repository

import (
	"context"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de inventario.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// ListByItem devuelve los movimientos del item, más recientes primero.
	ListByItem(ctx context.Context, itemID int64) ([]*entity.Movement, error)
}
