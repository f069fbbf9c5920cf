package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/sales"
)

// SaleHandler maneja las ventas de mostrador (protegido).
type SaleHandler struct {
	uc      *sales.SalesUseCase
	receipt *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SalesUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, receipt: receipt}
}

// Create registra la venta y descuenta el inventario en una sola transacción.
// @Summary      Registrar venta
// @Description  Descuenta el stock de todas las líneas en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Líneas, método de pago y descuento"
// @Success      201  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	sale, err := h.uc.CreateSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List lista ventas.
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        operator_id  query  string  false  "Cajero"
// @Param        client_id  query  string  false  "Cliente"
// @Param        status  query  string  false  "COMPLETED o CANCELED"
// @Param        limit  query  int  false  "Máximo 500"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	from, to, err := timeRangeFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListSales(c.Context(), dto.SaleListQuery{
		OperatorID:  c.Query("operator_id"),
		ClientID:    c.Query("client_id"),
		Status:      c.Query("status"),
		From:        from,
		To:          to,
		PageRequest: pageFromQuery(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "sales": list})
}

// GetByID obtiene una venta con sus líneas.
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// Cancel anula la venta y devuelve las unidades al inventario.
// @Summary      Anular venta
// @Description  Devuelve al inventario las unidades de cada línea.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [put]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	sale, err := h.uc.CancelSale(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// Receipt descarga el comprobante PDF.
// @Summary      Descargar comprobante PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receipt.DownloadReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
