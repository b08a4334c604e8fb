// Package pdf implementa la generación del ticket de venta en PDF con formato
// de impresora térmica de 80mm.
//
// Layout del ticket:
//
//	┌──────────────────────────────┐
//	│  NOMBRE DE LA TIENDA         │
//	│  N° Venta + Fecha/Hora       │
//	│  ──────────────────────────  │
//	│  Cant | Producto | Importe   │
//	│  ──────────────────────────  │
//	│  Subtotal / Descuento        │
//	│  TOTAL                       │
//	│  Método de pago              │
//	│  ──────────────────────────  │
//	│  ¡Gracias por su compra!     │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/caja-pos/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorInk  = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// Ancho de ticket térmico estándar (mm). El alto crece con las líneas.
const ticketWidth = 80.0

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el ticket y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.Sale, storeName string) ([]byte, error) {
	// 60mm base + ~5mm por línea del carrito
	height := 60.0 + 5.0*float64(len(sale.Items))

	cfg := config.NewBuilder().
		WithDimensions(ticketWidth, height).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		WithTitle("Ticket "+sale.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(sale, storeName)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorInk, Thickness: 0.3}))
	m.AddRows(itemRows(sale.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorInk, Thickness: 0.3}))
	m.AddRows(totalsRows(sale)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: nombre de la tienda + número de venta + fecha/hora.
func headerRows(sale *entity.Sale, storeName string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Color: colorInk, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(sale.Number, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1,
			}),
			text.New(sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Center, Top: 5, Color: colorGray,
			}),
		)),
	}
}

// itemRows: una fila por línea del carrito, con el precio capturado al vender.
func itemRows(items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(5).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%dx", it.Quantity),
				props.Text{Size: 7, Align: align.Left, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Name,
				props.Text{Size: 7, Align: align.Left, Top: 1},
			)),
			col.New(4).Add(text.New(
				"$"+it.Total.StringFixed(2),
				props.Text{Size: 7, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}

// totalsRows: subtotal, descuento (si aplica), total y método de pago.
func totalsRows(sale *entity.Sale) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Size: 7, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 7, Align: align.Right})
	}

	rows := []core.Row{
		row.New(4).Add(
			col.New(8).Add(label("Subtotal:")),
			col.New(4).Add(value("$" + sale.Subtotal.StringFixed(2))),
		),
	}
	if sale.Discount.IsPositive() {
		rows = append(rows, row.New(4).Add(
			col.New(8).Add(label("Descuento:")),
			col.New(4).Add(value("-$"+sale.Discount.StringFixed(2))),
		))
	}
	rows = append(rows,
		row.New(6).Add(
			col.New(8).Add(text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			})),
			col.New(4).Add(text.New("$"+sale.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			})),
		),
		row.New(4).Add(col.New(12).Add(
			text.New("Pago: "+paymentLabel(sale.PaymentMethod), props.Text{
				Size: 7, Align: align.Right, Color: colorGray,
			}),
		)),
	)
	return rows
}

// footerRow: leyenda de despedida.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("¡Gracias por su compra!", props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentCash:
		return "efectivo"
	case entity.PaymentCard:
		return "tarjeta"
	case entity.PaymentMixed:
		return "mixto"
	}
	return method
}
