package cashregister_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/cashregister"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/memory"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

func newUseCase() *cashregister.CashRegisterUseCase {
	db := memory.New()
	return cashregister.NewCashRegisterUseCase(db, db, nil, logger.Nop())
}

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestOpenCloseReopen(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	s, err := uc.Open(ctx, "op1", dto.OpenCashSessionRequest{StartAmount: amount(100)})
	require.NoError(t, err)
	assert.Equal(t, entity.CashSessionOpen, s.Status)

	_, err = uc.Open(ctx, "op1", dto.OpenCashSessionRequest{StartAmount: amount(50)})
	assert.ErrorIs(t, err, domain.ErrAlreadyOpen)

	other, err := uc.Open(ctx, "op2", dto.OpenCashSessionRequest{StartAmount: amount(20)})
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, other.ID)

	closed, err := uc.Close(ctx, s.ID, dto.CloseCashSessionRequest{EndAmount: amount(150)})
	require.NoError(t, err)
	assert.Equal(t, entity.CashSessionClosed, closed.Status)
	require.NotNil(t, closed.EndAmount)
	assert.True(t, closed.EndAmount.Equal(amount(150)))
	assert.NotNil(t, closed.EndTime)

	_, err = uc.Open(ctx, "op1", dto.OpenCashSessionRequest{StartAmount: amount(150)})
	assert.NoError(t, err)
}

func TestClose_Errores(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Close(ctx, "nope", dto.CloseCashSessionRequest{EndAmount: amount(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s, err := uc.Open(ctx, "op1", dto.OpenCashSessionRequest{})
	require.NoError(t, err)
	_, err = uc.Close(ctx, s.ID, dto.CloseCashSessionRequest{EndAmount: amount(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Close(ctx, s.ID, dto.CloseCashSessionRequest{EndAmount: amount(0)})
	require.NoError(t, err)
	_, err = uc.Close(ctx, s.ID, dto.CloseCashSessionRequest{EndAmount: amount(0)})
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
}

func TestOpen_Validaciones(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Open(context.Background(), "", dto.OpenCashSessionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Open(context.Background(), "op", dto.OpenCashSessionRequest{StartAmount: amount(-5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOpen_ConcurrenteSoloUna(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	const n = 6
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Open(ctx, "op1", dto.OpenCashSessionRequest{StartAmount: amount(10)})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyOpen)
	}
	assert.Equal(t, 1, ok)
}

func TestRecordMovement(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	s, err := uc.Open(ctx, "op1", dto.OpenCashSessionRequest{StartAmount: amount(100)})
	require.NoError(t, err)

	mov, err := uc.RecordMovement(ctx, "op1", dto.CashMovementRequest{SessionID: s.ID, Type: "OUT", Amount: amount(30), Reason: "pago proveedor"})
	require.NoError(t, err)
	assert.Equal(t, "OUT", mov.Type)

	_, err = uc.RecordMovement(ctx, "op1", dto.CashMovementRequest{SessionID: s.ID, Type: "IN", Amount: amount(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordMovement(ctx, "op1", dto.CashMovementRequest{SessionID: s.ID, Type: "SWAP", Amount: amount(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RecordMovement(ctx, "op1", dto.CashMovementRequest{SessionID: "nope", Type: "IN", Amount: amount(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	current, err := uc.GetCurrentSession(ctx, "op1")
	require.NoError(t, err)
	require.Len(t, current.Movements, 1)
	assert.True(t, current.StartAmount.Equal(amount(100)), "los movimientos no alteran el monto inicial")

	_, err = uc.Close(ctx, s.ID, dto.CloseCashSessionRequest{EndAmount: amount(70)})
	require.NoError(t, err)
	_, err = uc.RecordMovement(ctx, "op1", dto.CashMovementRequest{SessionID: s.ID, Type: "IN", Amount: amount(1)})
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
}

func TestGetCurrentSession_SinCaja(t *testing.T) {
	_, err := newUseCase().GetCurrentSession(context.Background(), "op1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSessionHistory(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		s, err := uc.Open(ctx, "op1", dto.OpenCashSessionRequest{StartAmount: amount(i)})
		require.NoError(t, err)
		_, err = uc.Close(ctx, s.ID, dto.CloseCashSessionRequest{EndAmount: amount(i * 10)})
		require.NoError(t, err)
	}
	_, err := uc.Open(ctx, "op1", dto.OpenCashSessionRequest{StartAmount: amount(9)})
	require.NoError(t, err)

	hist, err := uc.GetSessionHistory(ctx, "op1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.True(t, hist[0].StartAmount.Equal(amount(3)), "más reciente primero")
	for _, h := range hist {
		assert.Equal(t, entity.CashSessionClosed, h.Status)
	}

	page, err := uc.GetSessionHistory(ctx, "", dto.PageRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.True(t, page[0].StartAmount.Equal(amount(2)))
}
