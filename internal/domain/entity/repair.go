package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de reparación, en el orden del flujo previsto.
const (
	RepairStatusReceived       = "RECEIVED"
	RepairStatusDiagnosing     = "DIAGNOSING"
	RepairStatusAwaitingParts  = "AWAITING_PARTS"
	RepairStatusInRepair       = "IN_REPAIR"
	RepairStatusSoftwareRepair = "SOFTWARE_REPAIR"
	RepairStatusQualityCheck   = "QUALITY_CHECK"
	RepairStatusReadyForPickup = "READY_FOR_PICKUP"
	RepairStatusDelivered      = "DELIVERED"
	RepairStatusCanceled       = "CANCELED"
)

// RepairStatusFlow es el camino previsto; CANCELED queda fuera porque es alcanzable desde cualquier estado abierto.
var RepairStatusFlow = []string{
	RepairStatusReceived,
	RepairStatusDiagnosing,
	RepairStatusAwaitingParts,
	RepairStatusInRepair,
	RepairStatusSoftwareRepair,
	RepairStatusQualityCheck,
	RepairStatusReadyForPickup,
	RepairStatusDelivered,
}

// RepairStatusRank devuelve la posición del estado en el flujo, o -1 si no pertenece a él.
func RepairStatusRank(status string) int {
	for i, s := range RepairStatusFlow {
		if s == status {
			return i
		}
	}
	return -1
}

// IsValidRepairStatus valida un estado de reparación.
func IsValidRepairStatus(status string) bool {
	return status == RepairStatusCanceled || RepairStatusRank(status) >= 0
}

// IsTerminalRepairStatus indica DELIVERED o CANCELED.
func IsTerminalRepairStatus(status string) bool {
	return status == RepairStatusDelivered || status == RepairStatusCanceled
}

// RepairTicket es la orden de servicio técnico con sus colecciones hijas.
type RepairTicket struct {
	ID                string
	TicketNumber      string
	ClientID          string
	DeviceID          string
	TechnicianID      *string
	Status            string
	ReportedIssue     string
	DiagnosticInitial string
	DiagnosticFinal   string
	EstimatedCost     decimal.Decimal
	FinalCost         *decimal.Decimal
	EstimatedDelivery *time.Time
	Warranty          string
	SignaturePhoto    string
	DeliveredAt       *time.Time
	CanceledAt        *time.Time
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	StatusLogs      []RepairStatusLog
	Items           []RepairItem
	Notes           []RepairNote
	SoftwareActions []RepairSoftwareAction
}

// IsTerminal indica si la orden ya fue entregada o anulada.
func (r *RepairTicket) IsTerminal() bool {
	return IsTerminalRepairStatus(r.Status)
}

// RepairStatusLog es una entrada inmutable de la bitácora de estados.
type RepairStatusLog struct {
	ID        string
	Seq       int64
	RepairID  string
	Status    string
	ChangedBy string
	Notes     string
	CreatedAt time.Time
}

// RepairItem es un repuesto consumido; cada uno respaldado por un movimiento OUT.
// ReturnedAt se fija cuando la anulación devuelve el repuesto al inventario.
type RepairItem struct {
	ID         string
	RepairID   string
	ProductID  string
	Quantity   int
	Cost       decimal.Decimal
	Warranty   string
	ReturnedAt *time.Time
	CreatedAt  time.Time
}

// RepairNote nota libre; IsInternal la oculta al cliente.
type RepairNote struct {
	ID         string
	RepairID   string
	Content    string
	IsInternal bool
	CreatedBy  string
	CreatedAt  time.Time
}

// RepairSoftwareAction servicio de software (flasheo, liberación, respaldo...).
type RepairSoftwareAction struct {
	ID                 string
	RepairID           string
	ServiceType        string
	Cost               decimal.Decimal
	Notes              string
	LegalAuthorization bool
	CreatedAt          time.Time
}
