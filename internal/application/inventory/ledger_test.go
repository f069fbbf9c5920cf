package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Taller-api/internal/domain/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

type countingMetrics struct {
	movements int
}

func (m *countingMetrics) MovementApplied(string, int) { m.movements++ }
func (m *countingMetrics) SaleCreated(decimal.Decimal) {}
func (m *countingMetrics) SaleCanceled()               {}
func (m *countingMetrics) RepairStatusChanged(string)  {}
func (m *countingMetrics) CashSessionOpened()          {}
func (m *countingMetrics) CashSessionClosed()          {}

func newLedger(t *testing.T, products ...entity.Product) (*inventory.Ledger, *memory.DB, *countingMetrics) {
	t.Helper()
	db := memory.New()
	for _, p := range products {
		db.SeedProduct(p)
	}
	m := &countingMetrics{}
	return inventory.NewLedger(db, db, m, logger.Nop()), db, m
}

func stockOf(t *testing.T, db *memory.DB, id string) int {
	t.Helper()
	p, err := db.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func TestRegisterMovement_INyOUT(t *testing.T) {
	ctx := context.Background()
	l, db, m := newLedger(t, entity.Product{ID: "a", Name: "Pantalla", Stock: 10})

	mov, err := l.RegisterMovement(ctx, inventory.MovementInput{ProductID: "a", Type: entity.MovementTypeOUT, Quantity: 4, Reason: "merma", ActorID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 10, mov.QuantityBefore)
	assert.Equal(t, 6, mov.QuantityAfter)
	assert.Equal(t, 6, stockOf(t, db, "a"))

	_, err = l.RegisterMovement(ctx, inventory.MovementInput{ProductID: "a", Type: entity.MovementTypeIN, Quantity: 5, ActorID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 11, stockOf(t, db, "a"))
	assert.Equal(t, 2, m.movements)
}

func TestRegisterMovement_AjusteAbsoluto(t *testing.T) {
	ctx := context.Background()
	l, db, _ := newLedger(t, entity.Product{ID: "a", Stock: 10})

	mov, err := l.RegisterMovement(ctx, inventory.MovementInput{ProductID: "a", Type: entity.MovementTypeADJUSTMENT, Quantity: 3, Reason: "toma física", ActorID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, -7, mov.Delta())
	assert.Equal(t, 3, stockOf(t, db, "a"))
}

func TestRegisterMovement_StockInsuficienteNoDejaRastro(t *testing.T) {
	ctx := context.Background()
	l, db, m := newLedger(t, entity.Product{ID: "b", Name: "Batería", Stock: 2})

	_, err := l.RegisterMovement(ctx, inventory.MovementInput{ProductID: "b", Type: entity.MovementTypeOUT, Quantity: 5, ActorID: "u1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "b", ise.ProductID)
	assert.Equal(t, 5, ise.Requested)
	assert.Equal(t, 2, ise.Available)

	assert.Equal(t, 2, stockOf(t, db, "b"))
	movs, _ := l.ListMovements(ctx, repository.MovementFilter{ProductID: "b"})
	assert.Empty(t, movs)
	assert.Equal(t, 0, m.movements)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	ctx := context.Background()
	l, _, _ := newLedger(t, entity.Product{ID: "a", Stock: 1})

	cases := []struct {
		name string
		in   inventory.MovementInput
		want error
	}{
		{"sin actor", inventory.MovementInput{ProductID: "a", Type: "IN", Quantity: 1}, domain.ErrInvalidInput},
		{"tipo desconocido", inventory.MovementInput{ProductID: "a", Type: "TRANSFER", Quantity: 1, ActorID: "u"}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.MovementInput{ProductID: "a", Type: "IN", Quantity: 0, ActorID: "u"}, domain.ErrInvalidInput},
		{"ajuste negativo", inventory.MovementInput{ProductID: "a", Type: "ADJUSTMENT", Quantity: -1, ActorID: "u"}, domain.ErrInvalidInput},
		{"producto inexistente", inventory.MovementInput{ProductID: "zz", Type: "IN", Quantity: 1, ActorID: "u"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.RegisterMovement(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGetMovementHistory_MasRecientePrimeroYReplay(t *testing.T) {
	ctx := context.Background()
	l, db, _ := newLedger(t, entity.Product{ID: "a", Stock: 10})

	steps := []inventory.MovementInput{
		{ProductID: "a", Type: "OUT", Quantity: 3, ActorID: "u"},
		{ProductID: "a", Type: "IN", Quantity: 8, ActorID: "u"},
		{ProductID: "a", Type: "ADJUSTMENT", Quantity: 12, ActorID: "u"},
		{ProductID: "a", Type: "OUT", Quantity: 12, ActorID: "u"},
	}
	for _, s := range steps {
		_, err := l.RegisterMovement(ctx, s)
		require.NoError(t, err)
	}

	history, err := l.GetMovementHistory(ctx, "a", 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i-1].Seq, history[i].Seq)
	}

	chrono := make([]entity.StockMovement, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		chrono = append(chrono, *history[i])
	}
	final, err := domaininv.Replay(10, chrono)
	require.NoError(t, err)
	assert.Equal(t, stockOf(t, db, "a"), final)
	assert.Equal(t, 0, final)
}

func TestGetMovementHistory_ProductoInexistente(t *testing.T) {
	l, _, _ := newLedger(t)
	_, err := l.GetMovementHistory(context.Background(), "nope", 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLockProducts_DeduplicaYOmiteInexistentes(t *testing.T) {
	ctx := context.Background()
	l, db, _ := newLedger(t, entity.Product{ID: "b", Stock: 1}, entity.Product{ID: "a", Stock: 2})

	err := db.Run(ctx, func(tx repository.Store) error {
		locked, err := l.LockProducts(ctx, tx, []string{"b", "a", "b", "x"})
		require.NoError(t, err)
		assert.Len(t, locked, 2)
		assert.Contains(t, locked, "a")
		assert.NotContains(t, locked, "x")
		return nil
	})
	require.NoError(t, err)
}

func TestRegisterMovementFromRequest_ValidaDTO(t *testing.T) {
	l, _, _ := newLedger(t, entity.Product{ID: "a", Stock: 1})
	_, err := l.RegisterMovementFromRequest(context.Background(), "u", dto.RegisterMovementRequest{ProductID: "a", Type: "MOVE", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := l.RegisterMovementFromRequest(context.Background(), "u", dto.RegisterMovementRequest{ProductID: "a", Type: "IN", Quantity: 2, Reason: "compra"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.QuantityAfter)
}

func TestKardex(t *testing.T) {
	ctx := context.Background()
	l, _, _ := newLedger(t, entity.Product{ID: "a", SKU: "SKU-A", Name: "Cable", Stock: 4})
	_, err := l.RegisterMovement(ctx, inventory.MovementInput{ProductID: "a", Type: "IN", Quantity: 1, ActorID: "u"})
	require.NoError(t, err)

	k, err := l.Kardex(ctx, "a", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 5, k.CurrentStock)
	assert.Equal(t, "SKU-A", k.SKU)
	assert.Len(t, k.Movements, 1)
	assert.Equal(t, 100, k.Page.Limit)
}

func TestKardex_SaldoCoincideConElUltimoMovimiento(t *testing.T) {
	ctx := context.Background()
	l, db, _ := newLedger(t, entity.Product{ID: "a", SKU: "SKU-A", Name: "Cable", Stock: 4})
	_, err := l.RegisterMovement(ctx, inventory.MovementInput{ProductID: "a", Type: "IN", Quantity: 3, ActorID: "u"})
	require.NoError(t, err)
	_, err = l.RegisterMovement(ctx, inventory.MovementInput{ProductID: "a", Type: "OUT", Quantity: 2, ActorID: "u"})
	require.NoError(t, err)

	// el saldo de la fila cambia sin pasar por el libro entre la lectura del producto y la del kardex
	require.NoError(t, db.Products().UpdateStock(ctx, "a", 99))

	k, err := l.Kardex(ctx, "a", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, k.Movements, 2)
	assert.Equal(t, k.Movements[0].QuantityAfter, k.CurrentStock)
	assert.Equal(t, 5, k.CurrentStock)

	k, err = l.Kardex(ctx, "a", dto.PageRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 99, k.CurrentStock)

	_, err = l.Kardex(ctx, "nope", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
