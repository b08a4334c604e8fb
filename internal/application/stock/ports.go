package stock

import (
	"context"

	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el movimiento y la nueva
// cantidad del producto se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
