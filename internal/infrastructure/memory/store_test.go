package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
	"github.com/jhoicas/stock-tracker/internal/infrastructure/memory"
)

func TestStore_SKUDuplicado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Items().Create(ctx, &entity.Item{Name: "A", SKU: "X"}))
	err := store.Items().Create(ctx, &entity.Item{Name: "B", SKU: "X"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStore_RunRestauraEstadoSiFalla(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	item := &entity.Item{Name: "A", SKU: "X"}
	require.NoError(t, store.Items().Create(ctx, item))

	boom := errors.New("boom")
	err := store.Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository) error {
		require.NoError(t, items.UpdateStock(ctx, item.ID, 50))
		require.NoError(t, movs.Create(ctx, &entity.Movement{ItemID: item.ID, Quantity: 50, MovementType: entity.MovementTypeIN}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Items().GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Stock)
	movs, err := store.Movements().ListByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestStore_ListByItemMasRecientesPrimero(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, q := range []int64{1, 2, 3} {
		require.NoError(t, store.Movements().Create(ctx, &entity.Movement{
			ItemID: 1, Quantity: q, MovementType: entity.MovementTypeIN,
			InsertedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ItemID: 2, Quantity: 9, MovementType: entity.MovementTypeIN, InsertedAt: base}))

	movs, err := store.Movements().ListByItem(ctx, 1)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{movs[0].Quantity, movs[1].Quantity, movs[2].Quantity})
}

func TestStore_GetByIDInexistente(t *testing.T) {
	item, err := memory.NewStore().Items().GetByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, item)
}
