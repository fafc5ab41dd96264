package inventory

import (
	"context"
	"strconv"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
// rawItemID viene de la ruta; un id no numérico equivale a un item inexistente.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, rawItemID string, in dto.CreateMovementRequest) (*entity.Movement, error) {
	itemID, err := strconv.ParseInt(rawItemID, 10, 64)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return uc.RegisterMovement(ctx, MovementInputDTO{
		ItemID:   itemID,
		Quantity: in.Movement.Quantity,
		Type:     entity.MovementType(in.Movement.MovementType),
	})
}
