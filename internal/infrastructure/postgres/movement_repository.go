package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y completa su ID.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO movements (item_id, quantity, movement_type, inserted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		movement.ItemID, movement.Quantity, string(movement.MovementType),
		movement.InsertedAt, movement.UpdatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByItem lista los movimientos de un item, más recientes primero.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID int64) ([]*entity.Movement, error) {
	query := `
		SELECT id, item_id, quantity, movement_type, inserted_at, updated_at
		FROM movements WHERE item_id = $1
		ORDER BY inserted_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var movementType string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Quantity, &movementType, &m.InsertedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.MovementType = entity.MovementType(movementType)
		list = append(list, &m)
	}
	return list, rows.Err()
}
