package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una venta.
type ReceiptUseCase struct {
	store     repository.Store
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(store repository.Store, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{store: store, generator: generator}
}

// DownloadReceiptPDF carga la venta, enriquece las líneas con el catálogo y genera el PDF.
// Las ventas anuladas también se imprimen; el generador las marca como ANULADA.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.store.Sales().GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.NotFound("venta", saleID)
	}

	lines := make([]ReceiptLine, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		rl := ReceiptLine{SaleLine: l, ProductName: "Producto " + l.ProductID}
		if p, pErr := uc.store.Products().GetByID(ctx, l.ProductID); pErr == nil && p != nil {
			rl.ProductName = p.Name
			rl.SKU = p.SKU
		}
		lines = append(lines, rl)
	}

	pdfBytes, err = uc.generator.GenerateSaleReceipt(ctx, sale, lines)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("ticket_%s.pdf", sale.TicketNumber), nil
}
