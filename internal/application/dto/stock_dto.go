package dto

import "time"

// RegisterMovementRequest body para POST /api/stock/movements.
// Para type=adjustment, quantity es el valor absoluto final del stock.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required"` // in, out, adjustment
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason" validate:"required"` // purchase, sale, return, damage, adjustment, other
	Note      string `json:"note"`
	Reference string `json:"reference"`
}

// MovementResponse salida de un movimiento del libro de stock.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reason        string    `json:"reason"`
	Note          string    `json:"note,omitempty"`
	Reference     string    `json:"reference,omitempty"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegisterMovementResponse movimiento creado + estado resultante del producto.
type RegisterMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	Product  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	} `json:"product"`
}

// ListMovementsQuery filtros del listado global de movimientos.
type ListMovementsQuery struct {
	PageRequest
	Type      string `query:"type"`
	Reason    string `query:"reason"`
	StartDate string `query:"start_date"` // YYYY-MM-DD
	EndDate   string `query:"end_date"`   // YYYY-MM-DD
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
