package repository

import (
	"time"

	"github.com/tu-usuario/caja-pos/internal/domain/entity"
)

// MovementFilter criterios de listado global de movimientos.
type MovementFilter struct {
	Type   string // vacío = todos
	Reason string // vacío = todas
	From   *time.Time
	To     *time.Time
}

// StockMovementRepository define el puerto de persistencia para el libro de
// stock (DIP). Append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos de un producto en orden
	// cronológico inverso, paginados.
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	CountByProduct(productID string) (int, error)
	List(filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
	Count(filter MovementFilter) (int, error)
}
