package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Stock inicial permitido solo aquí: genera un movimiento de entrada con
// razón purchase; después, todo cambio de stock pasa por el libro.
type CreateProductRequest struct {
	Barcode       string          `json:"barcode" validate:"required,min=1,max=64"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	CategoryID    *string         `json:"category_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Stock         int             `json:"stock"`
	MinStock      *int            `json:"min_stock"` // nil = default 5
	Unit          string          `json:"unit"`      // piece, kg, lt, pack, box
	Supplier      string          `json:"supplier"`
}

// UpdateProductRequest entrada para actualizar un producto.
// No incluye Stock: las cantidades se modifican solo vía movimientos.
type UpdateProductRequest struct {
	Barcode       *string          `json:"barcode" validate:"omitempty,min=1,max=64"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	CategoryID    *string          `json:"category_id"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	MinStock      *int             `json:"min_stock"`
	Unit          *string          `json:"unit"`
	Supplier      *string          `json:"supplier"`
}

// ProductResponse salida de un producto, con los campos derivados calculados
// en lectura (nunca persistidos).
type ProductResponse struct {
	ID              string          `json:"id"`
	Barcode         string          `json:"barcode"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CategoryID      *string         `json:"category_id"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	Stock           int             `json:"stock"`
	MinStock        int             `json:"min_stock"`
	Unit            string          `json:"unit"`
	Supplier        string          `json:"supplier"`
	IsActive        bool            `json:"is_active"`
	IsLowStock      bool            `json:"is_low_stock"`
	ProfitMarginPct decimal.Decimal `json:"profit_margin_pct"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ListProductsQuery filtros del listado de productos.
type ListProductsQuery struct {
	PageRequest
	CategoryID string `query:"category_id"`
	Search     string `query:"search"`
	LowStock   bool   `query:"low_stock"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
