// Package pdf genera el comprobante imprimible de una venta de mostrador.
//
// Layout del ticket (A4, una columna):
//
//	┌──────────────────────────────────────────────┐
//	│  Nombre del negocio      │  N° Ticket + Fecha│
//	│  (ANULADA si la venta fue anulada)           │
//	│  ──────────────────────────────────────────  │
//	│  Cant | Producto | P.Unit | IVA% | Total     │
//	│  ──────────────────────────────────────────  │
//	│  Subtotal / Impuestos / Descuento / TOTAL    │
//	│  QR con el número de ticket                  │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/sales"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

var _ sales.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 20, Blue: 20}
)

var paymentLabels = map[string]string{
	entity.PaymentCash:     "Efectivo",
	entity.PaymentCard:     "Tarjeta",
	entity.PaymentTransfer: "Transferencia",
	entity.PaymentMixed:    "Mixto",
}

// ReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct {
	businessName string
}

// NewReceiptGenerator construye el generador; businessName encabeza cada comprobante.
func NewReceiptGenerator(businessName string) *ReceiptGenerator {
	return &ReceiptGenerator{businessName: nonEmpty(businessName, "Taller")}
}

// GenerateSaleReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateSaleReceipt(_ context.Context, sale *entity.Sale, lines []sales.ReceiptLine) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ticket "+sale.TicketNumber, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	if sale.Status == entity.SaleStatusCanceled {
		m.AddRows(canceledRow(sale))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Pago: "+nonEmpty(paymentLabels[sale.PaymentMethod], sale.PaymentMethod), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.TicketNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func canceledRow(sale *entity.Sale) core.Row {
	detail := "ANULADA"
	if sale.CanceledAt != nil {
		detail += " el " + sale.CanceledAt.Format("02/01/2006 15:04")
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(detail, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorRed, Top: 2,
		}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Total", 3, align.Right),
	)
}

func tableDetailRows(lines []sales.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.ProductName
		if l.SKU != "" {
			name = l.SKU + " · " + name
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(l.TaxRate.StringFixed(0)+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(money(l.LineTotal.Add(l.LineTax)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, bold bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 2}
		if bold {
			p.Style = fontstyle.Bold
			p.Color = colorPrimary
			p.Size = 10
		}
		return text.New(s, p)
	}
	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", false),
			label("Impuestos:", false),
			label("Descuento:", false),
			label("TOTAL:", true),
		),
		col.New(3).Add(
			label(money(sale.Subtotal), false),
			label(money(sale.Tax), false),
			label("-"+money(sale.Discount), false),
			label(money(sale.Total), true),
		),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(sale.TicketNumber, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Conserve este comprobante para cambios y garantías.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Atendido por: "+sale.OperatorID, props.Text{
				Size: 8, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con dos decimales y separador de miles: 1234567.5 -> "$1,234,567.50".
func money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + groupThousands(intPart) + "." + frac
}

// groupThousands inserta comas de miles en un string numérico sin signo.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
