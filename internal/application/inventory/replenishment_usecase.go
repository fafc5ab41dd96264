package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// salesWindow ventana usada para medir las salidas recientes de cada item.
const salesWindow = 90 * 24 * time.Hour

// ReplenishmentUseCase genera la lista de reposición: items bajo el umbral de stock bajo,
// priorizados por salidas recientes.
type ReplenishmentUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	now      func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{itemRepo: itemRepo, movRepo: movRepo, now: time.Now}
}

// GenerateReplenishmentList devuelve los items con stock menor a entity.LowStockThreshold.
// El stock ideal es 1.5 veces el umbral y la cantidad sugerida es lo que falta para llegar a él.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	idealStock := int64(entity.LowStockThreshold * 3 / 2)
	since := uc.now().Add(-salesWindow)

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, item := range items {
		if !item.IsLowStock() {
			continue
		}
		movements, err := uc.movRepo.ListByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		var unitsOut int64
		for _, m := range movements {
			if m.MovementType == entity.MovementTypeOUT && !m.InsertedAt.Before(since) {
				unitsOut += m.Quantity
			}
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:             item.ID,
			SKU:                item.SKU,
			Name:               item.Name,
			Unit:               item.Unit,
			CurrentStock:       item.Stock,
			Threshold:          entity.LowStockThreshold,
			IdealStock:         idealStock,
			SuggestedOrderQty:  max(idealStock-item.Stock, 0),
			UnitsOutLast90Days: unitsOut,
		})
	}

	// Primero mayor salida reciente, luego mayor déficit.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsOutLast90Days != b.UnitsOutLast90Days {
			return a.UnitsOutLast90Days > b.UnitsOutLast90Days
		}
		return a.SuggestedOrderQty > b.SuggestedOrderQty
	})

	// 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
