package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain"
)

func TestValidate_CreateSaleRequest(t *testing.T) {
	ok := CreateSaleRequest{
		PaymentMethod: "CASH",
		Items:         []SaleItemRequest{{ProductID: "p1", Quantity: 2}},
	}
	require.NoError(t, Validate(ok))

	bad := CreateSaleRequest{
		PaymentMethod: "BITCOIN",
		Items:         []SaleItemRequest{{ProductID: "p1", Quantity: 0}},
	}
	err := Validate(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "payment_method")
	assert.Contains(t, verr.Fields, "items[0].quantity")
}

func TestValidate_ItemsVacios(t *testing.T) {
	err := Validate(CreateSaleRequest{PaymentMethod: "CARD"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "es obligatorio", verr.Fields["items"])
}

func TestValidate_MovementType(t *testing.T) {
	assert.NoError(t, Validate(RegisterMovementRequest{ProductID: "p", Type: "ADJUSTMENT", Quantity: 0}))
	assert.Error(t, Validate(RegisterMovementRequest{ProductID: "p", Type: "TRANSFER", Quantity: 1}))
}
