package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// CreateSaleUseCase es el motor de transacciones de venta: convierte un
// carrito en una venta persistida, descuenta el inventario línea por línea y
// deja la traza en el libro de stock, todo en una sola transacción.
//
// Fases: Pricing → StockCheck → Persist → LedgerAppend. Las filas de los
// productos se bloquean (SELECT FOR UPDATE) desde Pricing, así StockCheck y
// LedgerAppend ven las mismas cantidades y dos ventas concurrentes de la
// última unidad no pueden sobrevender: la segunda espera el lock y falla en
// StockCheck con rollback total, incluida la cabecera de la venta.
type CreateSaleUseCase struct {
	txRunner    SaleTxRunner
	ledger      Ledger
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	ledger Ledger,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// CreateSale ejecuta la transacción de venta completa y devuelve la venta
// persistida. Falla sin efectos si algún producto no existe o no alcanza el
// stock; el descuento se acepta tal cual lo envía el caller.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(paymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		seqRepo repository.SaleSequenceRepository,
	) error {
		now := time.Now()

		// Pricing: resolver y bloquear cada producto distinto una sola vez,
		// en el orden del carrito, capturando precios de venta y compra
		// (snapshot; ediciones posteriores del catálogo no tocan esta venta).
		// Las líneas repetidas de un mismo producto comparten la fila
		// bloqueada, así los descuentos del libro se encadenan sobre la
		// cantidad real y no sobre lecturas independientes.
		products := make([]*entity.Product, len(in.Items))
		locked := make(map[string]*entity.Product, len(in.Items))
		for i, item := range in.Items {
			product, ok := locked[item.ProductID]
			if !ok {
				var err error
				product, err = productRepo.GetForUpdate(item.ProductID)
				if err != nil {
					return err
				}
				if product == nil || !product.IsActive {
					// Un producto no resuelto aborta la venta completa
					return domain.ErrProductNotFound
				}
				locked[item.ProductID] = product
			}
			products[i] = product
		}

		// StockCheck: la demanda se acumula por producto, de modo que un
		// carrito con el mismo producto en varias líneas valida contra el
		// total pedido y no línea por línea. Cualquier faltante rechaza la
		// venta entera antes de cualquier escritura.
		demand := make(map[string]int, len(locked))
		for i, item := range in.Items {
			demand[item.ProductID] += item.Quantity
			if products[i].Stock < demand[item.ProductID] {
				return &domain.InsufficientStockError{
					ProductName: products[i].Name,
					Available:   products[i].Stock,
				}
			}
		}

		// Persist: totales, número de venta y cabecera con snapshots.
		saleID := uuid.New().String()
		items := make([]entity.SaleItem, len(in.Items))
		subtotal := decimal.Zero
		profit := decimal.Zero
		for i, item := range in.Items {
			p := products[i]
			qty := decimal.NewFromInt(int64(item.Quantity))
			lineTotal := p.SalePrice.Mul(qty)
			subtotal = subtotal.Add(lineTotal)
			profit = profit.Add(p.SalePrice.Sub(p.PurchasePrice).Mul(qty))
			items[i] = entity.SaleItem{
				ID:            uuid.New().String(),
				SaleID:        saleID,
				ProductID:     p.ID,
				Barcode:       p.Barcode,
				Name:          p.Name,
				Quantity:      item.Quantity,
				UnitPrice:     p.SalePrice,
				PurchasePrice: p.PurchasePrice,
				Total:         lineTotal,
			}
		}

		// Consecutivo diario atómico: dos ventas concurrentes del mismo día
		// nunca colisionan en el número.
		seq, err := seqRepo.Next(now)
		if err != nil {
			return err
		}

		sale = &entity.Sale{
			ID:            saleID,
			Number:        entity.SaleNumber(now, seq),
			Items:         items,
			Subtotal:      subtotal,
			Discount:      in.Discount,
			Total:         subtotal.Sub(in.Discount),
			Profit:        profit,
			PaymentMethod: paymentMethod,
			Status:        entity.SaleStatusCompleted,
			Note:          in.Note,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		// LedgerAppend: una salida por línea, en el orden del carrito, con
		// referencia al número de venta. Las filas siguen bloqueadas, así que
		// el stock no pudo cambiar desde StockCheck; cualquier error hace
		// rollback de la venta entera.
		for i, item := range in.Items {
			if _, err := uc.ledger.RegisterOutInTx(
				movRepo, productRepo, products[i],
				item.Quantity, sale.Number, userID, now,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale), nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		Profit:        s.Profit,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		Note:          s.Note,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID:     item.ProductID,
			Barcode:       item.Barcode,
			Name:          item.Name,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			PurchasePrice: item.PurchasePrice,
			Total:         item.Total,
		})
	}
	return resp
}
