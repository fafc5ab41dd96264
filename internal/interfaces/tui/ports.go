package tui

import (
	"context"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

// ItemLister obtiene los items (GET /api/items).
type ItemLister interface {
	ListItems(ctx context.Context) ([]entity.Item, error)
}

// MovementLister obtiene el historial de un item (GET /api/items/{id}/movements).
type MovementLister interface {
	ListMovements(ctx context.Context, itemID int64) ([]entity.Movement, error)
}

// MovementCreator registra un movimiento (POST /api/items/{id}/movements).
// Un rechazo de la API se devuelve como *inventoryapi.APIError.
type MovementCreator interface {
	CreateMovement(ctx context.Context, itemID string, params dto.MovementParams) error
}

// MovementAPI lo que necesita la vista de detalle.
type MovementAPI interface {
	MovementLister
	MovementCreator
}

// API lo que necesita la aplicación completa; *inventoryapi.Client la implementa.
type API interface {
	ItemLister
	MovementAPI
}
