package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/repairs"
)

// RepairHandler maneja las órdenes de reparación (protegido).
type RepairHandler struct {
	uc *repairs.RepairUseCase
}

// NewRepairHandler construye el handler.
func NewRepairHandler(uc *repairs.RepairUseCase) *RepairHandler {
	return &RepairHandler{uc: uc}
}

// Create recibe un equipo y abre la orden en estado RECEIVED.
// @Summary      Recibir equipo
// @Description  Crea la orden en estado RECEIVED con su primera entrada de bitácora.
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRepairRequest  true  "Cliente, equipo, falla reportada y costo estimado"
// @Success      201  {object}  dto.RepairResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs [post]
func (h *RepairHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rep, err := h.uc.CreateRepair(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rep)
}

// List lista órdenes.
// @Summary      Listar órdenes
// @Tags         repairs
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        technician_id  query  string  false  "Técnico"
// @Param        client_id  query  string  false  "Cliente"
// @Param        device_id  query  string  false  "Equipo"
// @Param        from  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        to  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        limit  query  int  false  "Máximo 500"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/repairs [get]
func (h *RepairHandler) List(c *fiber.Ctx) error {
	from, to, err := timeRangeFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListRepairs(c.Context(), dto.RepairListQuery{
		Status:       c.Query("status"),
		TechnicianID: c.Query("technician_id"),
		ClientID:     c.Query("client_id"),
		DeviceID:     c.Query("device_id"),
		From:         from,
		To:           to,
		PageRequest:  pageFromQuery(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "repairs": list})
}

// History historial de reparaciones de un equipo o de un cliente.
// @Summary      Historial de un equipo o cliente
// @Tags         repairs
// @Security     Bearer
// @Produce      json
// @Param        device_id  query  string  false  "Equipo"
// @Param        client_id  query  string  false  "Cliente"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/repairs/history [get]
func (h *RepairHandler) History(c *fiber.Ctx) error {
	q := dto.RepairListQuery{
		DeviceID:    c.Query("device_id"),
		ClientID:    c.Query("client_id"),
		PageRequest: pageFromQuery(c),
	}
	if q.DeviceID == "" && q.ClientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "device_id o client_id requerido"})
	}
	list, err := h.uc.ListRepairs(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "repairs": list})
}

// GetByID obtiene la orden con bitácora, repuestos, notas y servicios.
// @Summary      Obtener orden
// @Tags         repairs
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.RepairResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id} [get]
func (h *RepairHandler) GetByID(c *fiber.Ctx) error {
	rep, err := h.uc.GetRepair(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// Update edita técnico, diagnósticos, costo estimado, fecha prometida y garantía de una orden abierta.
// @Summary      Editar orden abierta
// @Description  Solo modifica los campos enviados; las órdenes entregadas o anuladas no se editan.
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateRepairRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.RepairResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id} [put]
func (h *RepairHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rep, err := h.uc.UpdateRepair(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// ChangeStatus cambia el estado y deja constancia en la bitácora.
// DELIVERED y CANCELED no se aceptan aquí: se registran con Deliver y Cancel, que fijan costo final
// y devuelven repuestos.
// @Summary      Cambiar estado
// @Description  DELIVERED y CANCELED se registran con /deliver y DELETE.
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Param        body  body  dto.ChangeRepairStatusRequest  true  "Nuevo estado y nota"
// @Success      200  {object}  dto.RepairResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/status [put]
func (h *RepairHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeRepairStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rep, err := h.uc.ChangeStatus(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// AddItem consume un repuesto del inventario.
// @Summary      Consumir repuesto
// @Description  Descuenta el repuesto del inventario.
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Param        body  body  dto.AddRepairItemRequest  true  "Producto, cantidad y costo"
// @Success      201  {object}  dto.RepairItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/items [post]
func (h *RepairHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddRepairItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.AddRepairItem(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// AddSoftwareAction registra un servicio de software.
// @Summary      Registrar servicio de software
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Param        body  body  dto.AddSoftwareActionRequest  true  "Servicio, costo y autorización"
// @Success      201  {object}  dto.RepairSoftwareActionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/software [post]
func (h *RepairHandler) AddSoftwareAction(c *fiber.Ctx) error {
	var in dto.AddSoftwareActionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	action, err := h.uc.AddSoftwareAction(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(action)
}

// AddNote agrega una nota.
// @Summary      Agregar nota
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Param        body  body  dto.AddRepairNoteRequest  true  "Contenido"
// @Success      201  {object}  dto.RepairNoteDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/notes [post]
func (h *RepairHandler) AddNote(c *fiber.Ctx) error {
	var in dto.AddRepairNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	note, err := h.uc.AddNote(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// Deliver entrega el equipo al cliente.
// @Summary      Entregar equipo
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Param        body  body  dto.DeliverRepairRequest  true  "Costo final y firma"
// @Success      200  {object}  dto.RepairResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id}/deliver [post]
func (h *RepairHandler) Deliver(c *fiber.Ctx) error {
	var in dto.DeliverRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rep, err := h.uc.DeliverRepair(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

type cancelRepairRequest struct {
	Reason string `json:"reason"`
}

// Cancel anula la orden y devuelve al inventario los repuestos no devueltos.
// @Summary      Anular orden
// @Description  Devuelve al inventario los repuestos no devueltos.
// @Tags         repairs
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.RepairResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/repairs/{id} [delete]
func (h *RepairHandler) Cancel(c *fiber.Ctx) error {
	var in cancelRepairRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	rep, err := h.uc.CancelRepair(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}
