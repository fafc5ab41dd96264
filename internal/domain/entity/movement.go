package entity

import "time"

// MovementType tipo de movimiento de inventario (conjunto cerrado).
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         MovementType = "IN"         // entrada
	MovementTypeOUT        MovementType = "OUT"        // salida
	MovementTypeADJUSTMENT MovementType = "ADJUSTMENT" // ajuste manual, cantidad con signo
)

// MovementTypes devuelve los tipos válidos en el orden en que se ofrecen al usuario.
func MovementTypes() []MovementType {
	return []MovementType{MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT}
}

// Valid indica si t pertenece al conjunto cerrado.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// Movement registro inmutable de un cambio de stock sobre un Item.
// Quantity es magnitud positiva para IN/OUT y valor con signo para ADJUSTMENT.
type Movement struct {
	ID           int64
	ItemID       int64
	Quantity     int64
	MovementType MovementType
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// Effect devuelve el cambio que el movimiento aplica al stock del item.
func (m Movement) Effect() int64 {
	if m.MovementType == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
