package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/inventory"
)

func TestNextQuantity(t *testing.T) {
	cases := []struct {
		name    string
		current int
		typ     string
		qty     int
		want    int
		wantErr error
	}{
		{"entrada suma", 10, entity.MovementTypeIN, 4, 14, nil},
		{"salida resta", 10, entity.MovementTypeOUT, 4, 6, nil},
		{"salida deja en cero", 3, entity.MovementTypeOUT, 3, 0, nil},
		{"salida sin stock", 2, entity.MovementTypeOUT, 5, 0, domain.ErrInsufficientStock},
		{"ajuste absoluto", 10, entity.MovementTypeADJUSTMENT, 7, 7, nil},
		{"ajuste a cero", 10, entity.MovementTypeADJUSTMENT, 0, 0, nil},
		{"ajuste negativo", 10, entity.MovementTypeADJUSTMENT, -1, 0, domain.ErrInvalidInput},
		{"entrada cero", 10, entity.MovementTypeIN, 0, 0, domain.ErrInvalidInput},
		{"salida negativa", 10, entity.MovementTypeOUT, -2, 0, domain.ErrInvalidInput},
		{"tipo desconocido", 10, "TRANSFER", 1, 0, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.NextQuantity(tc.current, tc.typ, tc.qty)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReplay_ReconstruyeSaldo(t *testing.T) {
	movs := []entity.StockMovement{
		{ID: "1", Seq: 1, Type: entity.MovementTypeOUT, Quantity: 4, QuantityBefore: 10, QuantityAfter: 6},
		{ID: "2", Seq: 2, Type: entity.MovementTypeIN, Quantity: 4, QuantityBefore: 6, QuantityAfter: 10},
		{ID: "3", Seq: 3, Type: entity.MovementTypeADJUSTMENT, Quantity: 8, QuantityBefore: 10, QuantityAfter: 8},
		{ID: "4", Seq: 4, Type: entity.MovementTypeOUT, Quantity: 8, QuantityBefore: 8, QuantityAfter: 0},
	}
	got, err := inventory.Replay(10, movs)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestReplay_DetectaSaldoInconsistente(t *testing.T) {
	movs := []entity.StockMovement{
		{ID: "1", Seq: 1, Type: entity.MovementTypeOUT, Quantity: 4, QuantityBefore: 10, QuantityAfter: 6},
		{ID: "2", Seq: 2, Type: entity.MovementTypeOUT, Quantity: 1, QuantityBefore: 7, QuantityAfter: 6},
	}
	_, err := inventory.Replay(10, movs)
	assert.Error(t, err)
}

func TestSuggestedOrderQty(t *testing.T) {
	assert.Equal(t, 8, inventory.SuggestedOrderQty(0, 5))   // ceil(7.5) = 8
	assert.Equal(t, 12, inventory.SuggestedOrderQty(3, 10)) // 15 - 3
	assert.Equal(t, 0, inventory.SuggestedOrderQty(20, 10))
	assert.Equal(t, 0, inventory.SuggestedOrderQty(0, 0))
}
