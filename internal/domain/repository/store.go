package repository

import "context"

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store interface {
	Products() ProductRepository
	Movements() StockMovementRepository
	Sales() SaleRepository
	Repairs() RepairRepository
	CashSessions() CashSessionRepository
}

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn retorna error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Store) error) error
}
