package dto

// ReplenishmentSuggestionDTO item bajo el umbral de stock con la cantidad sugerida de reposición.
type ReplenishmentSuggestionDTO struct {
	ItemID             int64  `json:"item_id"`
	SKU                string `json:"sku"`
	Name               string `json:"name"`
	Unit               string `json:"unit"`
	CurrentStock       int64  `json:"current_stock"`
	Threshold          int64  `json:"threshold"`
	IdealStock         int64  `json:"ideal_stock"`
	SuggestedOrderQty  int64  `json:"suggested_order_qty"`
	UnitsOutLast90Days int64  `json:"units_out_last_90_days"`
	Priority           int    `json:"priority"`
}

// ReplenishmentListResponse respuesta de GET /api/replenishment-list.
type ReplenishmentListResponse struct {
	Total          int                          `json:"total"`
	Replenishments []ReplenishmentSuggestionDTO `json:"replenishments"`
}
