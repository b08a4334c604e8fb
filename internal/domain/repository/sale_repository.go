package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
)

// SaleFilter criterios de listado de ventas.
type SaleFilter struct {
	Status string // vacío = todos
	From   *time.Time
	To     *time.Time
}

// SaleSummary agregado simple de ventas de un rango (resumen del día).
type SaleSummary struct {
	Count  int
	Total  decimal.Decimal
	Profit decimal.Decimal
	Items  int // unidades vendidas
}

// SaleRepository define el puerto de persistencia para Sale (DIP).
// Create persiste cabecera y líneas; las líneas nunca se editan después.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas en el orden original.
	GetByID(id string) (*entity.Sale, error)
	List(filter SaleFilter, limit, offset int) ([]*entity.Sale, error)
	Count(filter SaleFilter) (int, error)
	// SummaryForRange calcula el resumen de ventas completadas en [from, to).
	SummaryForRange(from, to time.Time) (*SaleSummary, error)
}

// SaleSequenceRepository entrega el consecutivo diario para el número de
// venta. Next debe ser atómico: dos ventas concurrentes del mismo día nunca
// reciben el mismo número.
type SaleSequenceRepository interface {
	Next(day time.Time) (int, error)
}
