package inventory_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/application/inventory"
	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
	"github.com/jhoicas/stock-tracker/internal/infrastructure/memory"
)

func qty(v int64) *int64 { return &v }

func seedItem(t *testing.T, store *memory.Store, sku string, stock int64) *entity.Item {
	t.Helper()
	item := &entity.Item{Name: "Item " + sku, SKU: sku, Unit: "pcs"}
	require.NoError(t, store.Items().Create(context.Background(), item))
	if stock != 0 {
		require.NoError(t, store.Items().UpdateStock(context.Background(), item.ID, stock))
	}
	return item
}

func currentStock(t *testing.T, store *memory.Store, id int64) int64 {
	t.Helper()
	item, err := store.Items().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.Stock
}

func TestRegisterMovement_AplicaEfectoAlStock(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, store.Items())
	item := seedItem(t, store, "A-1", 0)
	ctx := context.Background()

	steps := []struct {
		kind entity.MovementType
		q    int64
		want int64
	}{
		{entity.MovementTypeIN, 10, 10},
		{entity.MovementTypeOUT, 4, 6},
		{entity.MovementTypeADJUSTMENT, -6, 0},
		{entity.MovementTypeADJUSTMENT, 3, 3},
	}
	for _, s := range steps {
		mov, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{ItemID: item.ID, Quantity: qty(s.q), Type: s.kind})
		require.NoError(t, err)
		assert.NotZero(t, mov.ID)
		assert.Equal(t, s.q, mov.Quantity, "la cantidad se guarda tal cual se recibió")
		assert.Equal(t, s.want, currentStock(t, store, item.ID))
	}

	movs, err := store.Movements().ListByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 4)
}

func TestRegisterMovement_StockInsuficienteNoPersisteNada(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, store.Items())
	item := seedItem(t, store, "A-1", 2)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{ItemID: item.ID, Quantity: qty(3), Type: entity.MovementTypeOUT})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{ItemID: item.ID, Quantity: qty(-3), Type: entity.MovementTypeADJUSTMENT})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(2), currentStock(t, store, item.ID))
	movs, err := store.Movements().ListByItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRegisterMovement_StockDesbordadoEsErrorDeValidacion(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, store.Items())
	item := seedItem(t, store, "A-1", 5)

	for _, kind := range []entity.MovementType{entity.MovementTypeIN, entity.MovementTypeADJUSTMENT} {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{ItemID: item.ID, Quantity: qty(math.MaxInt64 - 2), Type: kind})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, string(kind))
		assert.Equal(t, []string{"is too large"}, verr.Fields["quantity"])
		assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	}

	assert.Equal(t, int64(5), currentStock(t, store, item.ID))
	movs, err := store.Movements().ListByItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRegisterMovement_ItemInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, store.Items())

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{ItemID: 7, Quantity: qty(1), Type: entity.MovementTypeIN})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterMovementFromRequest(context.Background(), "abc", dto.CreateMovementRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementInputDTO_Validate(t *testing.T) {
	cases := []struct {
		name  string
		in    inventory.MovementInputDTO
		field string
		msg   string
	}{
		{"IN cero", inventory.MovementInputDTO{Quantity: qty(0), Type: entity.MovementTypeIN}, "quantity", "must be greater than 0"},
		{"OUT negativo", inventory.MovementInputDTO{Quantity: qty(-2), Type: entity.MovementTypeOUT}, "quantity", "must be greater than 0"},
		{"ADJUSTMENT cero", inventory.MovementInputDTO{Quantity: qty(0), Type: entity.MovementTypeADJUSTMENT}, "quantity", "must not be zero"},
		{"cantidad ausente", inventory.MovementInputDTO{Type: entity.MovementTypeIN}, "quantity", "can't be blank"},
		{"tipo desconocido", inventory.MovementInputDTO{Quantity: qty(1), Type: "TRANSFER"}, "movement_type", "is invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{tc.msg}, verr.Fields[tc.field])
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	ok := inventory.MovementInputDTO{Quantity: qty(-5), Type: entity.MovementTypeADJUSTMENT}
	assert.NoError(t, ok.Validate())
}

// mockTxRunner permite simular fallos de la transacción.
type mockTxRunner struct {
	mock.Mock
}

func (m *mockTxRunner) Run(ctx context.Context, fn func(repository.ItemRepository, repository.MovementRepository) error) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestRegisterMovement_PropagaErrorDeTransaccion(t *testing.T) {
	store := memory.NewStore()
	item := seedItem(t, store, "A-1", 5)
	tx := new(mockTxRunner)
	tx.On("Run", mock.Anything).Return(errors.New("conexión perdida"))

	uc := inventory.NewRegisterMovementUseCase(tx, store.Items())
	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{ItemID: item.ID, Quantity: qty(1), Type: entity.MovementTypeIN})

	assert.Nil(t, mov)
	assert.EqualError(t, err, "conexión perdida")
	tx.AssertExpectations(t)
}

func TestRegisterMovement_NoLlegaATransaccionSiLaValidacionFalla(t *testing.T) {
	store := memory.NewStore()
	item := seedItem(t, store, "A-1", 5)
	tx := new(mockTxRunner)

	uc := inventory.NewRegisterMovementUseCase(tx, store.Items())
	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{ItemID: item.ID, Quantity: qty(0), Type: entity.MovementTypeOUT})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	tx.AssertNotCalled(t, "Run", mock.Anything)
}

type fakeReport struct {
	gotItem      *entity.Item
	gotMovements []*entity.Movement
}

func (f *fakeReport) GenerateHistoryReport(_ context.Context, item *entity.Item, movements []*entity.Movement) ([]byte, error) {
	f.gotItem, f.gotMovements = item, movements
	return []byte("ok"), nil
}

func TestHistory_ListYExport(t *testing.T) {
	store := memory.NewStore()
	item := seedItem(t, store, "B-2", 0)
	register := inventory.NewRegisterMovementUseCase(store, store.Items())
	for _, q := range []int64{5, 7} {
		_, err := register.RegisterMovement(context.Background(), inventory.MovementInputDTO{ItemID: item.ID, Quantity: qty(q), Type: entity.MovementTypeIN})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	report := &fakeReport{}
	history := inventory.NewHistoryUseCase(store.Items(), store.Movements(), map[string]inventory.HistoryReportGenerator{
		inventory.ReportFormatXLSX: report,
	})

	list, err := history.ListMovements(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(7), list[0].Quantity, "más recientes primero")

	file, err := history.Export(context.Background(), "1", inventory.ReportFormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "movements_B-2.xlsx", file.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)
	assert.Equal(t, "B-2", report.gotItem.SKU)
	assert.Len(t, report.gotMovements, 2)

	_, err = history.Export(context.Background(), "1", inventory.ReportFormatPDF)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = history.ListMovements(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplenishment_PriorizaSalidasRecientes(t *testing.T) {
	store := memory.NewStore()
	register := inventory.NewRegisterMovementUseCase(store, store.Items())
	ctx := context.Background()

	quiet := seedItem(t, store, "QUIET", 2)
	busy := seedItem(t, store, "BUSY", 0)
	seedItem(t, store, "FULL", 10)

	_, err := register.RegisterMovement(ctx, inventory.MovementInputDTO{ItemID: busy.ID, Quantity: qty(12), Type: entity.MovementTypeIN})
	require.NoError(t, err)
	_, err = register.RegisterMovement(ctx, inventory.MovementInputDTO{ItemID: busy.ID, Quantity: qty(8), Type: entity.MovementTypeOUT})
	require.NoError(t, err)

	list, err := inventory.NewReplenishmentUseCase(store.Items(), store.Movements()).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "stock 10 no está bajo el umbral")

	assert.Equal(t, busy.ID, list[0].ItemID)
	assert.Equal(t, int64(8), list[0].UnitsOutLast90Days)
	assert.Equal(t, int64(4), list[0].CurrentStock)
	assert.Equal(t, int64(11), list[0].SuggestedOrderQty)
	assert.Equal(t, 1, list[0].Priority)

	assert.Equal(t, quiet.ID, list[1].ItemID)
	assert.Equal(t, int64(13), list[1].SuggestedOrderQty)
	assert.Equal(t, int64(15), list[1].IdealStock)
	assert.Equal(t, 2, list[1].Priority)
}
