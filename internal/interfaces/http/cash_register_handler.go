package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/cashregister"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/pkg/jwt"
)

// CashRegisterHandler maneja la apertura, movimientos y cierre de caja (protegido).
type CashRegisterHandler struct {
	uc *cashregister.CashRegisterUseCase
}

// NewCashRegisterHandler construye el handler.
func NewCashRegisterHandler(uc *cashregister.CashRegisterUseCase) *CashRegisterHandler {
	return &CashRegisterHandler{uc: uc}
}

// Open abre la caja del operador autenticado.
// @Summary      Abrir caja
// @Description  Un operador solo puede tener una caja abierta.
// @Tags         cash-register
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCashSessionRequest  true  "Monto inicial"
// @Success      201  {object}  dto.CashSessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash-register/open [post]
func (h *CashRegisterHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenCashSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	session, err := h.uc.Open(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Close cierra la caja con el monto contado.
// @Summary      Cerrar caja
// @Tags         cash-register
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Param        body  body  dto.CloseCashSessionRequest  true  "Monto contado"
// @Success      200  {object}  dto.CashSessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash-register/{id}/close [put]
func (h *CashRegisterHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseCashSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	session, err := h.uc.Close(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

// AddMovement registra un ingreso o egreso de efectivo.
// @Summary      Registrar ingreso o egreso
// @Tags         cash-register
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashMovementRequest  true  "Sesión, tipo, monto y motivo"
// @Success      201  {object}  dto.CashMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash-register/movements [post]
func (h *CashRegisterHandler) AddMovement(c *fiber.Ctx) error {
	var in dto.CashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	mov, err := h.uc.RecordMovement(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// Current devuelve la caja abierta del operador autenticado.
// @Summary      Caja abierta del operador
// @Tags         cash-register
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashSessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cash-register/current [get]
func (h *CashRegisterHandler) Current(c *fiber.Ctx) error {
	session, err := h.uc.GetCurrentSession(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

// History lista cajas cerradas. Un supervisor puede filtrar por operador;
// el resto solo ve las propias.
// @Summary      Historial de cajas cerradas
// @Tags         cash-register
// @Security     Bearer
// @Produce      json
// @Param        operator_id  query  string  false  "Solo ADMIN y SUPERVISOR pueden consultar otro operador"
// @Param        limit  query  int  false  "Por defecto 50"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/cash-register/history [get]
func (h *CashRegisterHandler) History(c *fiber.Ctx) error {
	operatorID := c.Query("operator_id")
	if role := GetRole(c); role != jwt.RoleAdmin && role != jwt.RoleSupervisor {
		operatorID = GetUserID(c)
	}
	list, err := h.uc.GetSessionHistory(c.Context(), operatorID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "sessions": list})
}
