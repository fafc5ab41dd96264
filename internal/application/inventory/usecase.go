package inventory

import (
	"context"
	"math"
	"time"

	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (IN, OUT, ADJUSTMENT) con bloqueo de fila del item (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, itemRepo repository.ItemRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		now:      time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento.
// Quantity nil representa una cantidad ausente o no numérica enviada por el cliente.
type MovementInputDTO struct {
	ItemID   int64
	Quantity *int64
	Type     entity.MovementType
}

// Validate aplica las reglas de cantidad y tipo. Devuelve *domain.ValidationError.
func (in MovementInputDTO) Validate() error {
	verr := &domain.ValidationError{}
	if !in.Type.Valid() {
		verr.Add("movement_type", "is invalid")
	}
	switch {
	case in.Quantity == nil:
		verr.Add("quantity", "can't be blank")
	case in.Type == entity.MovementTypeIN || in.Type == entity.MovementTypeOUT:
		if *in.Quantity <= 0 {
			verr.Add("quantity", "must be greater than 0")
		}
	case in.Type == entity.MovementTypeADJUSTMENT:
		if *in.Quantity == 0 {
			verr.Add("quantity", "must not be zero")
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// RegisterMovement valida la entrada, bloquea la fila del item, aplica el efecto al stock
// y guarda el movimiento en la misma transacción. Un stock resultante negativo se rechaza
// con domain.ErrInsufficientStock.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.Movement, error) {
	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	mov := &entity.Movement{
		ItemID:       input.ItemID,
		Quantity:     *input.Quantity,
		MovementType: input.Type,
		InsertedAt:   now,
		UpdatedAt:    now,
	}

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		locked, err := itemRepo.GetForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		effect := mov.Effect()
		if effect > 0 && locked.Stock > math.MaxInt64-effect {
			return domain.NewValidationError("quantity", "is too large")
		}
		newStock := locked.Stock + effect
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}
		if err := itemRepo.UpdateStock(ctx, locked.ID, newStock); err != nil {
			return err
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
