package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos e inventario (protegido).
type InventoryHandler struct {
	ledger   *inventory.Ledger
	lowStock *inventory.LowStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, lowStock *inventory.LowStockUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, lowStock: lowStock}
}

// RegisterMovement registra una entrada, salida o ajuste manual.
// @Summary      Registrar movimiento de inventario
// @Description  Entrada (IN), salida (OUT) o ajuste por toma física (ADJUSTMENT). Rechaza salidas sin stock.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity, reason"
// @Success      201  {object}  dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	mov, err := h.ledger.RegisterMovementFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// ListMovements lista movimientos con filtros opcionales.
// @Summary      Listar movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        type  query  string  false  "IN, OUT o ADJUSTMENT"
// @Param        from  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        limit  query  int  false  "Máximo 500"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, to, err := timeRangeFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.ledger.ListMovementsFromQuery(c.Context(), dto.MovementListQuery{
		ProductID:   c.Query("product_id"),
		Type:        c.Query("type"),
		From:        from,
		To:          to,
		PageRequest: pageFromQuery(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// Kardex devuelve el historial de movimientos de un producto con su saldo actual.
// @Summary      Kardex de un producto
// @Description  Saldo actual y movimientos del más reciente al más antiguo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        limit  query  int  false  "Máximo 500"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.KardexResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/kardex/{productId} [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	resp, err := h.ledger.Kardex(c.Context(), c.Params("productId"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// LowStock lista los productos en o bajo su punto de reorden con la cantidad sugerida.
// @Summary      Productos bajo el punto de reorden
// @Description  Incluye la cantidad sugerida para volver a 1.5 veces el mínimo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.lowStock.GenerateLowStockList(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "items": list})
}
