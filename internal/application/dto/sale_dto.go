package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleItemRequest una línea del carrito: producto + cantidad.
// Los precios no se aceptan del caller: se capturan del catálogo.
type CreateSaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// CreateSaleRequest body para POST /api/sales.
// Discount se acepta tal cual (el caller puede sobre-descontar; no es error).
type CreateSaleRequest struct {
	Items         []CreateSaleItemRequest `json:"items" validate:"required,min=1"`
	Discount      decimal.Decimal         `json:"discount"`
	PaymentMethod string                  `json:"payment_method"` // vacío = cash
	Note          string                  `json:"note"`
}

// SaleItemResponse línea de venta con sus snapshots.
type SaleItemResponse struct {
	ProductID     string          `json:"product_id"`
	Barcode       string          `json:"barcode"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Total         decimal.Decimal `json:"total"`
}

// SaleResponse salida de una venta completa.
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	Profit        decimal.Decimal    `json:"profit"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Note          string             `json:"note,omitempty"`
	CreatedBy     string             `json:"created_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ListSalesQuery filtros del listado de ventas.
type ListSalesQuery struct {
	PageRequest
	Status    string `query:"status"`
	StartDate string `query:"start_date"` // YYYY-MM-DD
	EndDate   string `query:"end_date"`   // YYYY-MM-DD
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// TodaySummaryResponse resumen de las ventas completadas del día.
type TodaySummaryResponse struct {
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
	Profit decimal.Decimal `json:"profit"`
	Items  int             `json:"items"`
}
