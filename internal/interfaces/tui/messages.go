package tui

import "github.com/jhoicas/stock-tracker/internal/domain/entity"

// BackMsg la vista de detalle pide volver al listado.
type BackMsg struct{}

// MovementCreatedMsg la vista de detalle avisa que se registró un movimiento y que su
// historial ya fue recargado. El padre recarga los items; al recibir el mismo mensaje
// de vuelta, el detalle oculta el formulario.
type MovementCreatedMsg struct {
	ItemID int64
}

// MovementSubmittedMsg el formulario registró el movimiento (respuesta 2xx).
type MovementSubmittedMsg struct{}

// FormCancelledMsg el usuario canceló el formulario.
type FormCancelledMsg struct{}

// openItemMsg el listado pide abrir el detalle de un item.
type openItemMsg struct {
	item entity.Item
}

type itemsLoadedMsg struct {
	items []entity.Item
	err   error
}

// movementsLoadedMsg resultado de una carga de historial. itemID y seq identifican la
// petición; el detalle descarta los resultados que ya no corresponden a su estado.
type movementsLoadedMsg struct {
	itemID      int64
	seq         int
	movements   []entity.Movement
	err         error
	afterSubmit bool
}

// formKey identifica un montaje del formulario: detail es la generación de la vista de
// detalle que lo montó y form el número de montaje dentro de ella.
type formKey struct {
	detail int
	form   int
}

// movementSubmitResultMsg resultado del POST de un formulario concreto.
type movementSubmitResultMsg struct {
	formID formKey
	err    error
}
