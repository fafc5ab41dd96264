package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

func sampleMovements() []entity.Movement {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []entity.Movement{
		{ID: 3, ItemID: 5, Quantity: -3, MovementType: entity.MovementTypeADJUSTMENT, InsertedAt: at.Add(2 * time.Hour)},
		{ID: 2, ItemID: 5, Quantity: 5, MovementType: entity.MovementTypeOUT, InsertedAt: at.Add(time.Hour)},
		{ID: 1, ItemID: 5, Quantity: 5, MovementType: entity.MovementTypeIN, InsertedAt: at},
	}
}

// loadedDetail monta el detalle del item 5 y aplica la carga inicial.
func loadedDetail(t *testing.T, api *mockAPI) ItemDetail {
	t.Helper()
	d := NewItemDetail(1, api, testItems()[0], testItems(), testTimeout, nopLog())
	d, _ = d.Update(runOne(t, d.Init()))
	return d
}

func TestItemDetail_UnaCargaPorItem(t *testing.T) {
	api := new(mockAPI)
	api.On("ListMovements", mock.Anything, int64(5)).Return(sampleMovements(), nil).Once()
	api.On("ListMovements", mock.Anything, int64(7)).Return([]entity.Movement{}, nil).Once()

	d := NewItemDetail(1, api, testItems()[0], testItems(), testTimeout, nopLog())
	assert.True(t, d.Loading())
	assert.Contains(t, d.View(), LoadingText)

	d, _ = d.Update(runOne(t, d.Init()))
	api.AssertNumberOfCalls(t, "ListMovements", 1)

	// Mismo id con datos nuevos: no vuelve a cargar.
	same := testItems()[0]
	same.Stock = 2
	d, cmd := d.SetItem(same)
	assert.Nil(t, cmd)
	assert.Len(t, d.Movements(), 3)
	assert.Contains(t, d.View(), LowStockLabel)

	// Otro id: exactamente una carga nueva, con estado de carga.
	d, cmd = d.SetItem(testItems()[1])
	require.NotNil(t, cmd)
	assert.True(t, d.Loading())
	d, _ = d.Update(runOne(t, cmd))
	assert.False(t, d.Loading())

	api.AssertNumberOfCalls(t, "ListMovements", 2)
	api.AssertExpectations(t)
}

func TestItemDetail_FilasSegunRespuesta(t *testing.T) {
	api := new(mockAPI)
	api.On("ListMovements", mock.Anything, int64(5)).Return(sampleMovements(), nil)

	d := loadedDetail(t, api)
	rows := d.Rows()
	require.Len(t, rows, 3)
	assert.Contains(t, rows[0], "+-3")
	assert.Contains(t, rows[1], "-5")
	assert.Contains(t, rows[2], "+5")
	assert.Contains(t, rows[0], "ADJUSTMENT", "se respeta el orden de la API")
	assert.NotContains(t, d.View(), NoMovementsText)
	assert.NotContains(t, d.View(), LoadingText)
}

func TestItemDetail_ErrorDeCargaEsListaVacia(t *testing.T) {
	api := new(mockAPI)
	api.On("ListMovements", mock.Anything, int64(5)).Return(nil, errors.New("inventoryapi: decodificar: unexpected end of JSON input"))

	d := loadedDetail(t, api)
	assert.Empty(t, d.Rows())
	assert.NotNil(t, d.Movements())
	assert.Contains(t, d.View(), NoMovementsText)
	assert.NotContains(t, d.View(), LoadingText)
	assert.Contains(t, d.View(), "Tornillo", "el resto de la vista se dibuja igual")
}

func TestItemDetail_DescartaResultadosObsoletos(t *testing.T) {
	api := new(mockAPI)
	api.On("ListMovements", mock.Anything, int64(5)).Return(sampleMovements(), nil)

	d := NewItemDetail(1, api, testItems()[0], testItems(), testTimeout, nopLog())
	first := runOne(t, d.Init())

	d, _ = d.SetItem(testItems()[1])
	d, _ = d.Update(first)

	assert.True(t, d.Loading(), "la respuesta del item anterior no se aplica")
	assert.Empty(t, d.Movements())
}

func TestItemDetail_ToggleFormulario(t *testing.T) {
	api := new(mockAPI)
	api.On("ListMovements", mock.Anything, int64(5)).Return(sampleMovements(), nil).Once()

	d := loadedDetail(t, api)
	d, cmd := d.Update(keyRunes("m"))
	assert.Nil(t, cmd)
	assert.True(t, d.FormVisible())
	assert.Contains(t, d.View(), SubmitLabel)

	d, _ = d.Update(keyRunes("m"))
	assert.False(t, d.FormVisible())

	d, _ = d.Update(keyRunes("m"))
	d, cmd = d.Update(keyEsc)
	d, _ = d.Update(runOne(t, cmd))
	assert.False(t, d.FormVisible())

	api.AssertNumberOfCalls(t, "ListMovements", 1)
}

func TestItemDetail_MConFocoEnCantidadSeEscribe(t *testing.T) {
	api := new(mockAPI)
	api.On("ListMovements", mock.Anything, int64(5)).Return(sampleMovements(), nil)

	d := loadedDetail(t, api)
	d, _ = d.Update(keyRunes("m"))
	d, _ = d.Update(keyTab)
	d, _ = d.Update(keyTab)
	d, _ = d.Update(keyRunes("m"))

	assert.True(t, d.FormVisible())
	assert.Equal(t, "m", d.Form().quantity.Value())
}

func TestItemDetail_ExitoRecargaAvisaYOcultaEnOrden(t *testing.T) {
	api := new(mockAPI)
	var events []string
	api.On("ListMovements", mock.Anything, int64(5)).Return(sampleMovements()[1:], nil).Once()
	api.On("CreateMovement", mock.Anything, "5", dto.MovementParams{Quantity: int64Ptr(3), MovementType: "IN"}).
		Run(func(mock.Arguments) { events = append(events, "create") }).Return(nil).Once()
	api.On("ListMovements", mock.Anything, int64(5)).
		Run(func(mock.Arguments) { events = append(events, "refetch") }).Return(sampleMovements(), nil).Once()

	d := loadedDetail(t, api)
	d, _ = d.Update(keyRunes("m"))
	d, _ = d.Update(keyRight)
	d, _ = d.Update(keyTab)
	d, _ = d.Update(keyTab)
	d, _ = d.Update(keyRunes("3"))
	d, cmd := d.Update(keyEnter)

	// Resultado del POST → el formulario emite MovementSubmittedMsg.
	d, cmd = d.Update(runOne(t, cmd))
	submitted := runOne(t, cmd)
	require.Equal(t, MovementSubmittedMsg{}, submitted)

	// El detalle recarga el historial; la carga no muestra el estado de carga.
	d, cmd = d.Update(submitted)
	assert.False(t, d.Loading())
	loaded := runOne(t, cmd)
	d, cmd = d.Update(loaded)
	assert.Len(t, d.Movements(), 3)
	assert.True(t, d.FormVisible(), "el formulario se oculta después del aviso")

	// Aviso al padre tras la recarga.
	created := runOne(t, cmd)
	events = append(events, "notify")
	assert.Equal(t, MovementCreatedMsg{ItemID: 5}, created)

	// El padre devuelve el aviso y el formulario se oculta.
	d, _ = d.Update(created)
	events = append(events, "hide")
	assert.False(t, d.FormVisible())
	assert.NotContains(t, d.View(), SubmitLabel)

	assert.Equal(t, []string{"create", "refetch", "notify", "hide"}, events)
	api.AssertExpectations(t)
}

func TestItemDetail_EnterTrasExitoNoReenvia(t *testing.T) {
	api := new(mockAPI)
	api.On("ListMovements", mock.Anything, int64(5)).Return(sampleMovements(), nil)
	api.On("CreateMovement", mock.Anything, "5", mock.Anything).Return(nil).Once()

	d := loadedDetail(t, api)
	d, _ = d.Update(keyRunes("m"))
	d, _ = d.Update(keyRight)
	d, _ = d.Update(keyTab)
	d, _ = d.Update(keyTab)
	d, _ = d.Update(keyRunes("3"))
	d, cmd := d.Update(keyEnter)
	d, cmd = d.Update(runOne(t, cmd))
	d, cmd = d.Update(runOne(t, cmd))
	refetch := cmd

	// Entre la recarga y el aviso del padre el formulario sigue visible pero no envía.
	require.True(t, d.FormVisible())
	d, cmd = d.Update(keyEnter)
	assert.Nil(t, cmd)
	assert.Contains(t, d.View(), SubmittingLabel)

	d, cmd = d.Update(runOne(t, refetch))
	d, _ = d.Update(runOne(t, cmd))
	assert.False(t, d.FormVisible())
	api.AssertNumberOfCalls(t, "CreateMovement", 1)
}

func TestItemDetail_FalloMantieneFormulario(t *testing.T) {
	api := new(mockAPI)
	api.On("ListMovements", mock.Anything, int64(5)).Return(sampleMovements(), nil).Once()
	api.On("CreateMovement", mock.Anything, "5", mock.Anything).Return(apiErr422("insufficient stock")).Once()

	d := loadedDetail(t, api)
	d, _ = d.Update(keyRunes("m"))
	d, _ = d.Update(keyRight)
	d, _ = d.Update(keyTab)
	d, _ = d.Update(keyRight)
	d, _ = d.Update(keyTab)
	d, _ = d.Update(keyRunes("3"))
	d, cmd := d.Update(keyEnter)
	d, cmd = d.Update(runOne(t, cmd))

	assert.Nil(t, cmd)
	assert.True(t, d.FormVisible())
	assert.Contains(t, d.View(), "insufficient stock")
	api.AssertNumberOfCalls(t, "ListMovements", 1)
}

func TestItemDetail_VolverEmiteBackMsg(t *testing.T) {
	api := new(mockAPI)
	api.On("ListMovements", mock.Anything, int64(5)).Return(nil, nil)

	d := loadedDetail(t, api)
	assert.Contains(t, d.View(), NoMovementsText)
	_, cmd := d.Update(keyEsc)
	assert.Equal(t, BackMsg{}, runOne(t, cmd))
}

func TestItemDetail_ResultadoDeFormularioCerradoSeDescarta(t *testing.T) {
	api := new(mockAPI)
	api.On("ListMovements", mock.Anything, int64(5)).Return(sampleMovements(), nil)

	d := loadedDetail(t, api)
	d, cmd := d.Update(movementSubmitResultMsg{formID: testFormKey})
	assert.Nil(t, cmd)
	assert.False(t, d.FormVisible())
}

func TestStockBajoUmbral(t *testing.T) {
	low := renderStock(entity.Item{Stock: 9, Unit: "pcs"})
	edge := renderStock(entity.Item{Stock: 10, Unit: "pcs"})

	assert.Contains(t, low, LowStockLabel)
	assert.NotContains(t, edge, LowStockLabel)
	assert.True(t, strings.Contains(edge, "10 pcs"))
}

func TestSignedQuantity(t *testing.T) {
	assert.Equal(t, "-5", SignedQuantity(entity.Movement{Quantity: 5, MovementType: entity.MovementTypeOUT}))
	assert.Equal(t, "+5", SignedQuantity(entity.Movement{Quantity: 5, MovementType: entity.MovementTypeIN}))
	assert.Equal(t, "+-3", SignedQuantity(entity.Movement{Quantity: -3, MovementType: entity.MovementTypeADJUSTMENT}))
	assert.Equal(t, "+4", SignedQuantity(entity.Movement{Quantity: 4, MovementType: entity.MovementTypeADJUSTMENT}))
}
