package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/sales"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

func sampleSale(status string) (*entity.Sale, []sales.ReceiptLine) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	sale := &entity.Sale{
		ID:            "s1",
		TicketNumber:  "TICKET-1772361000000-AB12",
		OperatorID:    "cajero-1",
		PaymentMethod: entity.PaymentCash,
		Subtotal:      decimal.RequireFromString("1199.98"),
		Tax:           decimal.RequireFromString("192.00"),
		Discount:      decimal.NewFromInt(10),
		Total:         decimal.RequireFromString("1381.98"),
		Status:        status,
		CreatedAt:     now,
	}
	if status == entity.SaleStatusCanceled {
		sale.CanceledAt = &now
	}
	lines := []sales.ReceiptLine{{
		SaleLine: entity.SaleLine{
			Position: 0, ProductID: "p1", Quantity: 2,
			UnitPrice: decimal.RequireFromString("599.99"), TaxRate: decimal.NewFromInt(16),
			LineTax: decimal.RequireFromString("192.00"), LineTotal: decimal.RequireFromString("1199.98"),
		},
		SKU:         "LAP-001",
		ProductName: "Laptop HP",
	}}
	return sale, lines
}

func TestGenerateSaleReceipt(t *testing.T) {
	for _, status := range []string{entity.SaleStatusCompleted, entity.SaleStatusCanceled} {
		t.Run(status, func(t *testing.T) {
			sale, lines := sampleSale(status)
			out, err := NewReceiptGenerator("Taller Demo").GenerateSaleReceipt(context.Background(), sale, lines)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", money(decimal.Zero))
	assert.Equal(t, "$599.99", money(decimal.RequireFromString("599.99")))
	assert.Equal(t, "$1,234,567.50", money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-$1,000.00", money(decimal.NewFromInt(-1000)))
}

func TestNewReceiptGenerator_DefaultName(t *testing.T) {
	assert.Equal(t, "Taller", NewReceiptGenerator("").businessName)
}
