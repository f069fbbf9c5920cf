package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CreateRepairRequest body para POST /api/repairs.
type CreateRepairRequest struct {
	ClientID          string          `json:"client_id" validate:"required"`
	DeviceID          string          `json:"device_id" validate:"required"`
	TechnicianID      *string         `json:"technician_id,omitempty" validate:"omitempty,min=1"`
	ReportedIssue     string          `json:"reported_issue" validate:"required,max=2000"`
	DiagnosticInitial string          `json:"diagnostic_initial,omitempty" validate:"max=2000"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	Warranty          string          `json:"warranty,omitempty" validate:"max=200"`
}

// UpdateRepairRequest body para PUT /api/repairs/:id. Solo se modifican los campos enviados.
type UpdateRepairRequest struct {
	TechnicianID      *string          `json:"technician_id,omitempty" validate:"omitempty,min=1"`
	DiagnosticInitial *string          `json:"diagnostic_initial,omitempty" validate:"omitempty,max=2000"`
	DiagnosticFinal   *string          `json:"diagnostic_final,omitempty" validate:"omitempty,max=2000"`
	EstimatedCost     *decimal.Decimal `json:"estimated_cost,omitempty"`
	EstimatedDelivery *time.Time       `json:"estimated_delivery,omitempty"`
	Warranty          *string          `json:"warranty,omitempty" validate:"omitempty,max=200"`
}

// ChangeRepairStatusRequest body para PUT /api/repairs/:id/status.
type ChangeRepairStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty" validate:"max=1000"`
}

// AddRepairItemRequest body para POST /api/repairs/:id/items.
type AddRepairItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Cost      decimal.Decimal `json:"cost"`
	Warranty  string          `json:"warranty,omitempty" validate:"max=200"`
}

// DeliverRepairRequest body para POST /api/repairs/:id/deliver.
type DeliverRepairRequest struct {
	FinalCost      decimal.Decimal `json:"final_cost"`
	SignaturePhoto string          `json:"signature_photo,omitempty"`
	Notes          string          `json:"notes,omitempty" validate:"max=1000"`
}

// AddSoftwareActionRequest body para POST /api/repairs/:id/software.
type AddSoftwareActionRequest struct {
	ServiceType        string          `json:"service_type" validate:"required,max=100"`
	Cost               decimal.Decimal `json:"cost"`
	Notes              string          `json:"notes,omitempty" validate:"max=1000"`
	LegalAuthorization bool            `json:"legal_authorization"`
}

// AddRepairNoteRequest body para POST /api/repairs/:id/notes.
type AddRepairNoteRequest struct {
	Content    string `json:"content" validate:"required,max=2000"`
	IsInternal bool   `json:"is_internal"`
}

// RepairListQuery filtros de GET /api/repairs.
type RepairListQuery struct {
	Status       string     `query:"status"`
	TechnicianID string     `query:"technician_id"`
	ClientID     string     `query:"client_id"`
	DeviceID     string     `query:"device_id"`
	From         *time.Time `query:"-"`
	To           *time.Time `query:"-"`
	PageRequest
}

// RepairResponse orden de reparación con bitácora y colecciones hijas.
type RepairResponse struct {
	ID                string                    `json:"id"`
	TicketNumber      string                    `json:"ticket_number"`
	ClientID          string                    `json:"client_id"`
	DeviceID          string                    `json:"device_id"`
	TechnicianID      *string                   `json:"technician_id,omitempty"`
	Status            string                    `json:"status"`
	ReportedIssue     string                    `json:"reported_issue"`
	DiagnosticInitial string                    `json:"diagnostic_initial,omitempty"`
	DiagnosticFinal   string                    `json:"diagnostic_final,omitempty"`
	EstimatedCost     decimal.Decimal           `json:"estimated_cost"`
	FinalCost         *decimal.Decimal          `json:"final_cost,omitempty"`
	EstimatedDelivery *time.Time                `json:"estimated_delivery,omitempty"`
	Warranty          string                    `json:"warranty,omitempty"`
	SignaturePhoto    string                    `json:"signature_photo,omitempty"`
	DeliveredAt       *time.Time                `json:"delivered_at,omitempty"`
	CanceledAt        *time.Time                `json:"canceled_at,omitempty"`
	CreatedBy         string                    `json:"created_by"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
	StatusLogs        []RepairStatusLogDTO      `json:"status_logs"`
	Items             []RepairItemDTO           `json:"items"`
	Notes             []RepairNoteDTO           `json:"notes"`
	SoftwareActions   []RepairSoftwareActionDTO `json:"software_actions"`
}

// RepairStatusLogDTO entrada de la bitácora.
type RepairStatusLogDTO struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RepairItemDTO repuesto consumido.
type RepairItemDTO struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
	Warranty   string          `json:"warranty,omitempty"`
	ReturnedAt *time.Time      `json:"returned_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RepairNoteDTO nota de la orden.
type RepairNoteDTO struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"is_internal"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// RepairSoftwareActionDTO servicio de software.
type RepairSoftwareActionDTO struct {
	ID                 string          `json:"id"`
	ServiceType        string          `json:"service_type"`
	Cost               decimal.Decimal `json:"cost"`
	Notes              string          `json:"notes,omitempty"`
	LegalAuthorization bool            `json:"legal_authorization"`
	CreatedAt          time.Time       `json:"created_at"`
}

// RepairItemToDTO mapea un repuesto.
func RepairItemToDTO(it *entity.RepairItem) RepairItemDTO {
	return RepairItemDTO{
		ID:         it.ID,
		ProductID:  it.ProductID,
		Quantity:   it.Quantity,
		Cost:       it.Cost,
		Warranty:   it.Warranty,
		ReturnedAt: it.ReturnedAt,
		CreatedAt:  it.CreatedAt,
	}
}

// RepairNoteToDTO mapea una nota.
func RepairNoteToDTO(n *entity.RepairNote) RepairNoteDTO {
	return RepairNoteDTO{ID: n.ID, Content: n.Content, IsInternal: n.IsInternal, CreatedBy: n.CreatedBy, CreatedAt: n.CreatedAt}
}

// SoftwareActionToDTO mapea un servicio de software.
func SoftwareActionToDTO(a *entity.RepairSoftwareAction) RepairSoftwareActionDTO {
	return RepairSoftwareActionDTO{
		ID:                 a.ID,
		ServiceType:        a.ServiceType,
		Cost:               a.Cost,
		Notes:              a.Notes,
		LegalAuthorization: a.LegalAuthorization,
		CreatedAt:          a.CreatedAt,
	}
}

// RepairToResponse mapea la orden completa.
func RepairToResponse(r *entity.RepairTicket) RepairResponse {
	resp := RepairResponse{
		ID:                r.ID,
		TicketNumber:      r.TicketNumber,
		ClientID:          r.ClientID,
		DeviceID:          r.DeviceID,
		TechnicianID:      r.TechnicianID,
		Status:            r.Status,
		ReportedIssue:     r.ReportedIssue,
		DiagnosticInitial: r.DiagnosticInitial,
		DiagnosticFinal:   r.DiagnosticFinal,
		EstimatedCost:     r.EstimatedCost,
		FinalCost:         r.FinalCost,
		EstimatedDelivery: r.EstimatedDelivery,
		Warranty:          r.Warranty,
		SignaturePhoto:    r.SignaturePhoto,
		DeliveredAt:       r.DeliveredAt,
		CanceledAt:        r.CanceledAt,
		CreatedBy:         r.CreatedBy,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		StatusLogs:        make([]RepairStatusLogDTO, 0, len(r.StatusLogs)),
		Items:             make([]RepairItemDTO, 0, len(r.Items)),
		Notes:             make([]RepairNoteDTO, 0, len(r.Notes)),
		SoftwareActions:   make([]RepairSoftwareActionDTO, 0, len(r.SoftwareActions)),
	}
	for _, l := range r.StatusLogs {
		resp.StatusLogs = append(resp.StatusLogs, RepairStatusLogDTO{
			Status: l.Status, ChangedBy: l.ChangedBy, Notes: l.Notes, CreatedAt: l.CreatedAt,
		})
	}
	for i := range r.Items {
		resp.Items = append(resp.Items, RepairItemToDTO(&r.Items[i]))
	}
	for i := range r.Notes {
		resp.Notes = append(resp.Notes, RepairNoteToDTO(&r.Notes[i]))
	}
	for i := range r.SoftwareActions {
		resp.SoftwareActions = append(resp.SoftwareActions, SoftwareActionToDTO(&r.SoftwareActions[i]))
	}
	return resp
}
