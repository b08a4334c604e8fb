package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios del libro de stock y los de ventas. La venta, sus líneas, los
// movimientos y los nuevos stocks se confirman todos juntos o ninguno.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		seqRepo repository.SaleSequenceRepository,
	) error) error
}

// Ledger interfaz para integrar ventas con el libro de stock.
// RegisterOutInTx descuenta una línea usando los repositorios del caller
// (misma transacción); si retorna error el caller debe hacer rollback.
type Ledger interface {
	RegisterOutInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		product *entity.Product,
		quantity int,
		reference, userID string,
		now time.Time,
	) (*entity.StockMovement, error)
}

// ReceiptGenerator genera el ticket PDF de una venta.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, storeName string) ([]byte, error)
}
