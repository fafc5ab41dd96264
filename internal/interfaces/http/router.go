package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-tracker/internal/application/inventory"
	"github.com/jhoicas/stock-tracker/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC           *usecase.ItemUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	History          *inventory.HistoryUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	JWTSecret        string
	JWTIssuer        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	itemHandler := NewItemHandler(deps.ItemUC)
	items := api.Group("/items")
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)

	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.History)
	movements := items.Group("/:item_id/movements")
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/export", movementHandler.Export)

	inventoryHandler := NewInventoryHandler(deps.Replenishment)
	api.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)
}
