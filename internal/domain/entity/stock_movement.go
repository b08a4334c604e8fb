package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada: suma al stock
	MovementTypeOut        = "out"        // salida: resta del stock
	MovementTypeAdjustment = "adjustment" // ajuste: fija el stock en un valor absoluto
)

// Razones válidas para un movimiento.
const (
	ReasonPurchase   = "purchase"
	ReasonSale       = "sale"
	ReasonReturn     = "return"
	ReasonDamage     = "damage"
	ReasonAdjustment = "adjustment"
	ReasonOther      = "other"
)

// ValidMovementType indica si el tipo de movimiento es soportado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// ValidReason indica si la razón del movimiento es soportada.
func ValidReason(r string) bool {
	switch r {
	case ReasonPurchase, ReasonSale, ReasonReturn, ReasonDamage, ReasonAdjustment, ReasonOther:
		return true
	}
	return false
}

// StockMovement es una entrada del libro de stock: el único camino legítimo
// para cambiar Product.Stock. Registro append-only: se crea una vez y nunca
// se actualiza ni se borra.
// Invariante: NewStock == PreviousStock + delta según Type (out negativo,
// in positivo, adjustment fija NewStock = Quantity sin mirar PreviousStock).
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string // in, out, adjustment
	Quantity      int    // magnitud; para adjustment es el valor absoluto final
	PreviousStock int    // snapshot al momento de escribir
	NewStock      int    // snapshot al momento de escribir
	Reason        string // purchase, sale, return, damage, adjustment, other
	Note          string
	Reference     string // referencia externa opcional, ej. número de venta
	CreatedBy     string // UserID que ejecutó el movimiento
	CreatedAt     time.Time
}
