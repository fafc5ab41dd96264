package entity

import "time"

// LowStockThreshold por debajo de este valor el stock se marca como bajo.
const LowStockThreshold = 10

// Item representa un artículo del inventario con su unidad de medida y existencia actual.
// Stock es la suma con signo de los efectos de todos sus movimientos; solo el backend lo modifica.
type Item struct {
	ID         int64
	Name       string
	SKU        string
	Unit       string
	Stock      int64
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// IsLowStock indica si la existencia está por debajo del umbral fijo.
func (i Item) IsLowStock() bool {
	return i.Stock < LowStockThreshold
}
