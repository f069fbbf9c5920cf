package ports

import "github.com/shopspring/decimal"

// BusinessMetrics es el puerto de salida para métricas de negocio.
// Los casos de uso lo invocan solo después del Commit, para no contar operaciones revertidas.
type BusinessMetrics interface {
	MovementApplied(movementType string, quantity int)
	SaleCreated(total decimal.Decimal)
	SaleCanceled()
	RepairStatusChanged(status string)
	CashSessionOpened()
	CashSessionClosed()
}

// NopMetrics descarta todas las métricas (tests y herramientas de línea de comandos).
type NopMetrics struct{}

func (NopMetrics) MovementApplied(string, int) {}
func (NopMetrics) SaleCreated(decimal.Decimal) {}
func (NopMetrics) SaleCanceled()               {}
func (NopMetrics) RepairStatusChanged(string)  {}
func (NopMetrics) CashSessionOpened()          {}
func (NopMetrics) CashSessionClosed()          {}
