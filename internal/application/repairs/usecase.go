package repairs

import (
	"fmt"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// Options configuración del flujo de reparaciones.
type Options struct {
	TicketPrefix string
	// StrictTransitions obliga a avanzar en el orden del flujo y prohíbe salir de DELIVERED/CANCELED.
	// Desactivado, cualquier estado conocido puede fijarse desde cualquier otro.
	StrictTransitions bool
}

// RepairUseCase gestiona el ciclo de vida de las órdenes de servicio técnico.
type RepairUseCase struct {
	txRunner repository.TxRunner
	store    repository.Store
	ledger   StockLedger
	tickets  ports.TicketGenerator
	opts     Options
	metrics  ports.BusinessMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewRepairUseCase construye el caso de uso.
func NewRepairUseCase(
	txRunner repository.TxRunner,
	store repository.Store,
	ledger StockLedger,
	tickets ports.TicketGenerator,
	opts Options,
	metrics ports.BusinessMetrics,
	log *logger.Logger,
) *RepairUseCase {
	if opts.TicketPrefix == "" {
		opts.TicketPrefix = "REP"
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RepairUseCase{
		txRunner: txRunner,
		store:    store,
		ledger:   ledger,
		tickets:  tickets,
		opts:     opts,
		metrics:  metrics,
		log:      log.Component("repairs"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// checkTransition aplica la política de transiciones para un cambio from -> to.
func (uc *RepairUseCase) checkTransition(from, to string) error {
	if !uc.opts.StrictTransitions {
		return nil
	}
	if entity.IsTerminalRepairStatus(from) {
		return domainTransition(from, to)
	}
	if to != entity.RepairStatusCanceled && entity.RepairStatusRank(to) < entity.RepairStatusRank(from) {
		return domainTransition(from, to)
	}
	return nil
}

func domainTransition(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
}

func (uc *RepairUseCase) statusLog(repairID, status, actorID, notes string, at time.Time) *entity.RepairStatusLog {
	return &entity.RepairStatusLog{
		ID:        newID(),
		RepairID:  repairID,
		Status:    status,
		ChangedBy: actorID,
		Notes:     notes,
		CreatedAt: at,
	}
}
