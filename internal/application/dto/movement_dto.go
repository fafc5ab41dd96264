package dto

import "github.com/jhoicas/stock-tracker/internal/domain/entity"

// CreateMovementRequest body para POST /api/items/{item_id}/movements.
type CreateMovementRequest struct {
	Movement MovementParams `json:"movement"`
}

// MovementParams cantidad y tipo del movimiento. Quantity nil se envía como null.
type MovementParams struct {
	Quantity     *int64 `json:"quantity"`
	MovementType string `json:"movement_type"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID           int64     `json:"id"`
	ItemID       int64     `json:"item_id"`
	Quantity     int64     `json:"quantity"`
	MovementType string    `json:"movement_type"`
	InsertedAt   Timestamp `json:"inserted_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ItemID:       m.ItemID,
		Quantity:     m.Quantity,
		MovementType: string(m.MovementType),
		InsertedAt:   Timestamp(m.InsertedAt),
		UpdatedAt:    Timestamp(m.UpdatedAt),
	}
}

// Entity mapea el DTO recibido de la API a la entidad.
func (r MovementResponse) Entity() entity.Movement {
	return entity.Movement{
		ID:           r.ID,
		ItemID:       r.ItemID,
		Quantity:     r.Quantity,
		MovementType: entity.MovementType(r.MovementType),
		InsertedAt:   r.InsertedAt.Time(),
		UpdatedAt:    r.UpdatedAt.Time(),
	}
}

// ReportFile archivo generado para descarga (PDF u hoja de cálculo).
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
