package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago válidos para Sale.
const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentMixed = "mixed"
)

// Estados válidos para Sale.
const (
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
	SaleStatusRefunded  = "refunded"
)

// ValidPaymentMethod indica si el método de pago es soportado.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMixed:
		return true
	}
	return false
}

// SaleItem es una línea de venta. Barcode, Name, UnitPrice y PurchasePrice son
// snapshots tomados al momento de la transacción: ediciones posteriores del
// catálogo no alteran ventas pasadas.
type SaleItem struct {
	ID            string
	SaleID        string
	ProductID     string
	Barcode       string
	Name          string
	Quantity      int
	UnitPrice     decimal.Decimal // precio de venta capturado
	PurchasePrice decimal.Decimal // precio de compra capturado
	Total         decimal.Decimal // UnitPrice * Quantity
}

// Sale representa una venta confirmada con todas sus líneas.
// Se crea atómicamente; las líneas nunca se editan después.
type Sale struct {
	ID            string
	Number        string // S<YYYYMMDD>-<NNNN>, único
	Items         []SaleItem
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal // Subtotal - Discount
	Profit        decimal.Decimal // Σ (UnitPrice - PurchasePrice) * Quantity
	PaymentMethod string          // cash, card, mixed
	Status        string          // completed, cancelled, refunded
	Note          string
	CreatedBy     string // UserID del cajero
	CreatedAt     time.Time
}

// SaleNumber arma el número de venta legible: prefijo S + fecha + consecutivo
// diario de 4 dígitos con ceros a la izquierda.
func SaleNumber(day time.Time, seq int) string {
	return fmt.Sprintf("S%s-%04d", day.Format("20060102"), seq)
}
