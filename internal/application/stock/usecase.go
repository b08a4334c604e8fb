package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// RegisterMovementUseCase es el libro de stock: el único escritor legítimo de
// Product.Stock. Cada cambio de cantidad produce exactamente un StockMovement,
// registrado de forma transaccional con bloqueo de fila (SELECT FOR UPDATE).
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
// Para in/out, Quantity es la magnitud del delta (>= 1).
// Para adjustment, Quantity es el valor absoluto final del stock (>= 0);
// asimetría deliberada que debe preservarse.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int
	Reason    string
	Note      string
	Reference string
	UserID    string
}

// RegisterMovement inicia una transacción, bloquea la fila del producto,
// calcula el nuevo stock según el tipo y persiste primero el movimiento y
// después la cantidad del producto (el libro es el predecesor causal de toda
// mutación del catálogo). Commit o Rollback de ambas escrituras juntas.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, *entity.Product, error) {
	if input.ProductID == "" || !entity.ValidMovementType(input.Type) || !entity.ValidReason(input.Reason) {
		return nil, nil, domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if input.Quantity < 1 {
			return nil, nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		// Ajuste a 0 es válido (vaciar el estante); negativo no.
		if input.Quantity < 0 {
			return nil, nil, domain.ErrInvalidInput
		}
	}

	var movement *entity.StockMovement
	var updated *entity.Product

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto para que check y decremento sean atómicos
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return domain.ErrProductNotFound
		}

		mov, err := applyInTx(movRepo, productRepo, product, input, time.Now())
		if err != nil {
			return err
		}
		movement = mov
		updated = product
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return movement, updated, nil
}

// applyInTx aplica un movimiento sobre un producto ya bloqueado, usando los
// repositorios de la transacción del caller. Muta product.Stock al confirmar.
func applyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	previous := product.Stock
	var newStock int

	switch input.Type {
	case entity.MovementTypeIn:
		newStock = previous + input.Quantity
	case entity.MovementTypeOut:
		if previous < input.Quantity {
			return nil, &domain.InsufficientStockError{ProductName: product.Name, Available: previous}
		}
		newStock = previous - input.Quantity
	case entity.MovementTypeAdjustment:
		// Valor absoluto, no delta
		newStock = input.Quantity
	default:
		return nil, domain.ErrInvalidInput
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		PreviousStock: previous,
		NewStock:      newStock,
		Reason:        input.Reason,
		Note:          input.Note,
		Reference:     input.Reference,
		CreatedBy:     input.UserID,
		CreatedAt:     now,
	}
	// Primero el movimiento, después la cantidad del catálogo
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}
	product.Stock = newStock
	return mov, nil
}

// RegisterOutInTx ejecuta una salida (out) usando los repositorios
// proporcionados (misma transacción del caller). Lo usa el motor de ventas
// para descontar cada línea con referencia al número de venta; si retorna
// error el caller debe hacer rollback de toda la venta.
func (uc *RegisterMovementUseCase) RegisterOutInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	quantity int,
	reference, userID string,
	now time.Time,
) (*entity.StockMovement, error) {
	return applyInTx(movRepo, productRepo, product, MovementInput{
		ProductID: product.ID,
		Type:      entity.MovementTypeOut,
		Quantity:  quantity,
		Reason:    entity.ReasonSale,
		Reference: reference,
		UserID:    userID,
	}, now)
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	mov, product, err := uc.RegisterMovement(ctx, MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Note:      in.Note,
		Reference: in.Reference,
		UserID:    userID,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.RegisterMovementResponse{Movement: toMovementResponse(mov)}
	resp.Product.ID = product.ID
	resp.Product.Name = product.Name
	resp.Product.Stock = product.Stock
	return resp, nil
}

// History devuelve los movimientos de un producto en orden cronológico
// inverso, paginados. Solo lectura, sin efectos.
func (uc *RegisterMovementUseCase) History(productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	page.DefaultPage()
	movements, err := uc.movementRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.CountByProduct(productID)
	if err != nil {
		return nil, err
	}
	return toMovementList(movements, page, total), nil
}

// List devuelve movimientos de todos los productos con filtros de tipo,
// razón y rango de fechas.
func (uc *RegisterMovementUseCase) List(filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, domain.ErrInvalidInput
	}
	if filter.Reason != "" && !entity.ValidReason(filter.Reason) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	movements, err := uc.movementRepo.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	return toMovementList(movements, page, total), nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Note:          m.Note,
		Reference:     m.Reference,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func toMovementList(movements []*entity.StockMovement, page dto.PageRequest, total int) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
}
