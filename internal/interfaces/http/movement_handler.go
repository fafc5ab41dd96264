package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/application/inventory"
)

// MovementHandler maneja el historial y el registro de movimientos de un item.
type MovementHandler struct {
	register *inventory.RegisterMovementUseCase
	history  *inventory.HistoryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, history *inventory.HistoryUseCase) *MovementHandler {
	return &MovementHandler{register: register, history: history}
}

// List godoc
// @Summary      Historial de movimientos de un item
// @Description  Más recientes primero.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        item_id  path  int  true  "ID del item"
// @Success      200  {object}  dto.DataResponse[[]dto.MovementResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{item_id}/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.history.ListMovements(c.UserContext(), c.Params("item_id"))
	if err != nil {
		return respondError(c, err, "item not found")
	}
	return c.JSON(dto.DataResponse[[]dto.MovementResponse]{Data: out})
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        item_id  path  int  true  "ID del item"
// @Param        body     body  dto.CreateMovementRequest  true  "quantity, movement_type (IN, OUT, ADJUSTMENT)"
// @Success      201   {object}  dto.DataResponse[dto.MovementResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/items/{item_id}/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid body", Code: "INVALID_BODY"})
	}
	mov, err := h.register.RegisterMovementFromRequest(c.UserContext(), c.Params("item_id"), in)
	if err != nil {
		return respondError(c, err, "item not found")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse[dto.MovementResponse]{Data: dto.ToMovementResponse(mov)})
}

// Export godoc
// @Summary      Exportar historial de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        item_id  path   int     true   "ID del item"
// @Param        format   query  string  false  "pdf (defecto) o xlsx"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/items/{item_id}/movements/export [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	file, err := h.history.Export(c.UserContext(), c.Params("item_id"), c.Query("format", inventory.ReportFormatPDF))
	if err != nil {
		return respondError(c, err, "item not found")
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Content)
}
