package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para Product.
const (
	UnitPiece = "piece"
	UnitKg    = "kg"
	UnitLt    = "lt"
	UnitPack  = "pack"
	UnitBox   = "box"
)

// ValidUnit indica si la unidad de medida es una de las soportadas.
func ValidUnit(u string) bool {
	switch u {
	case UnitPiece, UnitKg, UnitLt, UnitPack, UnitBox:
		return true
	}
	return false
}

// Product representa un producto vendible del catálogo.
// Stock solo se modifica vía movimientos del libro de stock (nunca por el CRUD).
type Product struct {
	ID            string
	Barcode       string // código de barras, único entre productos activos
	Name          string
	Description   string
	CategoryID    *string // referencia débil: nil si no tiene categoría
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Stock         int // cantidad disponible, nunca negativa
	MinStock      int // umbral de reposición
	Unit          string
	Supplier      string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock está en o por debajo del umbral de reposición.
// Campo derivado: se calcula en lectura, nunca se persiste.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// ProfitMarginPct calcula el margen de ganancia en porcentaje, redondeado a 2 decimales.
// Si el precio de compra es 0 devuelve 100 (caso especial para evitar división por cero).
func (p *Product) ProfitMarginPct() decimal.Decimal {
	if p.PurchasePrice.IsZero() {
		return decimal.NewFromInt(100)
	}
	hundred := decimal.NewFromInt(100)
	return p.SalePrice.Sub(p.PurchasePrice).Div(p.PurchasePrice).Mul(hundred).Round(2)
}
