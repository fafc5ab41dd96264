package dto

import "github.com/jhoicas/stock-tracker/internal/domain/entity"

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Item ItemParams `json:"item"`
}

// ItemParams datos editables de un item. Stock no se recibe: se maneja vía movimientos.
type ItemParams struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
	Unit string `json:"unit"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku"`
	Unit       string    `json:"unit"`
	Stock      int64     `json:"stock"`
	InsertedAt Timestamp `json:"inserted_at"`
	UpdatedAt  Timestamp `json:"updated_at"`
}

// ToItemResponse mapea la entidad al DTO de salida.
func ToItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:         i.ID,
		Name:       i.Name,
		SKU:        i.SKU,
		Unit:       i.Unit,
		Stock:      i.Stock,
		InsertedAt: Timestamp(i.InsertedAt),
		UpdatedAt:  Timestamp(i.UpdatedAt),
	}
}

// Entity mapea el DTO recibido de la API a la entidad.
func (r ItemResponse) Entity() entity.Item {
	return entity.Item{
		ID:         r.ID,
		Name:       r.Name,
		SKU:        r.SKU,
		Unit:       r.Unit,
		Stock:      r.Stock,
		InsertedAt: r.InsertedAt.Time(),
		UpdatedAt:  r.UpdatedAt.Time(),
	}
}
