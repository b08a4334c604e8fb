package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
)

func TestProfitMarginPct_Normal(t *testing.T) {
	p := &entity.Product{
		PurchasePrice: decimal.NewFromInt(10),
		SalePrice:     decimal.NewFromInt(15),
	}
	assert.True(t, p.ProfitMarginPct().Equal(decimal.NewFromInt(50)),
		"compra 10, venta 15 debe dar 50%%, dio %s", p.ProfitMarginPct())
}

func TestProfitMarginPct_Redondeo(t *testing.T) {
	p := &entity.Product{
		PurchasePrice: decimal.NewFromInt(3),
		SalePrice:     decimal.NewFromInt(4),
	}
	// (4-3)/3*100 = 33.333... -> 33.33
	assert.True(t, p.ProfitMarginPct().Equal(decimal.RequireFromString("33.33")))
}

func TestProfitMarginPct_CompraCero(t *testing.T) {
	// Precio de compra 0: margen fijo 100 (evita división por cero)
	p := &entity.Product{
		PurchasePrice: decimal.Zero,
		SalePrice:     decimal.NewFromInt(50),
	}
	assert.True(t, p.ProfitMarginPct().Equal(decimal.NewFromInt(100)))
}

func TestIsLowStock(t *testing.T) {
	p := &entity.Product{Stock: 6, MinStock: 5}
	assert.False(t, p.IsLowStock())

	// En el umbral cuenta como bajo
	p.Stock = 5
	assert.True(t, p.IsLowStock())

	p.Stock = 0
	assert.True(t, p.IsLowStock())
}

func TestSaleNumber_Formato(t *testing.T) {
	day := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, "S20240615-0001", entity.SaleNumber(day, 1))
	assert.Equal(t, "S20240615-0042", entity.SaleNumber(day, 42))
	assert.Equal(t, "S20240615-9999", entity.SaleNumber(day, 9999))
	// Más de 4 dígitos no trunca
	assert.Equal(t, "S20240615-10000", entity.SaleNumber(day, 10000))
}

func TestValidadores(t *testing.T) {
	assert.True(t, entity.ValidUnit(entity.UnitKg))
	assert.False(t, entity.ValidUnit("galon"))

	assert.True(t, entity.ValidMovementType(entity.MovementTypeAdjustment))
	assert.False(t, entity.ValidMovementType("transfer"))

	assert.True(t, entity.ValidReason(entity.ReasonDamage))
	assert.False(t, entity.ValidReason("robo"))

	assert.True(t, entity.ValidPaymentMethod(entity.PaymentMixed))
	assert.False(t, entity.ValidPaymentMethod("cheque"))
}
