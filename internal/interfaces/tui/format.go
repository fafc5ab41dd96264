package tui

import (
	"strconv"
	"time"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

// LowStockLabel marca visible junto a un stock bajo (también sin colores).
const LowStockLabel = "LOW STOCK"

// SignedQuantity antepone "-" a los OUT y "+" al resto, sin mirar el signo de la cantidad.
// Un ADJUSTMENT de -3 se muestra "+-3".
// TODO: confirmar con inventario si los ajustes negativos deben mostrarse "-3".
func SignedQuantity(m entity.Movement) string {
	q := strconv.FormatInt(m.Quantity, 10)
	if m.MovementType == entity.MovementTypeOUT {
		return "-" + q
	}
	return "+" + q
}

// renderStock muestra el stock con su unidad, resaltado si está bajo el umbral.
func renderStock(item entity.Item) string {
	s := strconv.FormatInt(item.Stock, 10) + " " + item.Unit
	if item.IsLowStock() {
		return lowStockStyle.Render(s + " " + LowStockLabel)
	}
	return okStockStyle.Render(s)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
