package sales

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// SalesUseCase crea, anula y consulta ventas de mostrador.
type SalesUseCase struct {
	txRunner repository.TxRunner
	store    repository.Store
	ledger   StockLedger
	tickets  ports.TicketGenerator
	prefix   string
	metrics  ports.BusinessMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewSalesUseCase construye el caso de uso. prefix es el prefijo de ticket (ej. "TICKET").
func NewSalesUseCase(
	txRunner repository.TxRunner,
	store repository.Store,
	ledger StockLedger,
	tickets ports.TicketGenerator,
	prefix string,
	metrics ports.BusinessMetrics,
	log *logger.Logger,
) *SalesUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &SalesUseCase{
		txRunner: txRunner,
		store:    store,
		ledger:   ledger,
		tickets:  tickets,
		prefix:   prefix,
		metrics:  metrics,
		log:      log.Component("sales"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}
