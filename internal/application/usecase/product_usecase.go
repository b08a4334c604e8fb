package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/application/stock"
	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo de productos.
// El stock NO se modifica por este camino: todo cambio de cantidad pasa por
// el libro de stock, incluida la carga inicial al crear.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	ledger       *stock.RegisterMovementUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	ledger *stock.RegisterMovementUseCase,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, ledger: ledger}
}

// Create valida todos los campos (reportando cada violación) y persiste el
// producto con stock 0; si viene stock inicial, lo aplica vía el libro como
// entrada con razón purchase, de modo que hasta la primera cantidad tenga su
// movimiento de auditoría.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	fields := map[string]string{}
	if in.Barcode == "" {
		fields["barcode"] = "el código de barras es obligatorio"
	}
	if in.Name == "" {
		fields["name"] = "el nombre es obligatorio"
	}
	if in.PurchasePrice.IsNegative() {
		fields["purchase_price"] = "no puede ser negativo"
	}
	if in.SalePrice.IsNegative() {
		fields["sale_price"] = "no puede ser negativo"
	}
	if in.Stock < 0 {
		fields["stock"] = "no puede ser negativo"
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		fields["min_stock"] = "no puede ser negativo"
	}
	if in.Unit != "" && !entity.ValidUnit(in.Unit) {
		fields["unit"] = "unidad desconocida"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	// Código de barras único entre productos activos; uno desactivado puede
	// ceder su código a un producto nuevo.
	if existing, _ := uc.repo.GetByBarcode(in.Barcode); existing != nil {
		return nil, domain.ErrDuplicate
	}

	// Referencia débil a categoría: debe existir si viene informada
	if in.CategoryID != nil && *in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}

	minStock := 5
	if in.MinStock != nil {
		minStock = *in.MinStock
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.UnitPiece
	}
	var categoryID *string
	if in.CategoryID != nil && *in.CategoryID != "" {
		categoryID = in.CategoryID
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Barcode:       in.Barcode,
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    categoryID,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Stock:         0,
		MinStock:      minStock,
		Unit:          unit,
		Supplier:      in.Supplier,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}

	// Carga inicial vía el libro: movimiento in/purchase con prev=0
	if in.Stock > 0 {
		_, updated, err := uc.ledger.RegisterMovement(ctx, stock.MovementInput{
			ProductID: product.ID,
			Type:      entity.MovementTypeIn,
			Quantity:  in.Stock,
			Reason:    entity.ReasonPurchase,
			Note:      "stock inicial",
			UserID:    userID,
		})
		if err != nil {
			return nil, err
		}
		product.Stock = updated.Stock
	}

	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// GetByBarcode busca por código de barras entre productos activos
// (coincidencia exacta, pantalla del escáner).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos activos con filtros de categoría, búsqueda y bajo stock.
func (uc *ProductUseCase) List(q dto.ListProductsQuery) (*dto.ProductListResponse, error) {
	q.DefaultPage()
	filter := repository.ProductFilter{
		CategoryID: q.CategoryID,
		Search:     q.Search,
		LowStock:   q.LowStock,
	}
	products, err := uc.repo.List(filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Update actualiza un producto (parcial). El stock queda explícitamente fuera
// de este camino: cualquier cambio de cantidad debe pasar por el libro.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	if in.Barcode != nil && *in.Barcode != product.Barcode {
		if *in.Barcode == "" {
			return nil, domain.NewValidationError(map[string]string{"barcode": "el código de barras es obligatorio"})
		}
		if existing, _ := uc.repo.GetByBarcode(*in.Barcode); existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.NewValidationError(map[string]string{"name": "el nombre es obligatorio"})
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			product.CategoryID = nil
		} else {
			category, err := uc.categoryRepo.GetByID(*in.CategoryID)
			if err != nil {
				return nil, err
			}
			if category == nil {
				return nil, domain.ErrNotFound
			}
			product.CategoryID = in.CategoryID
		}
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.NewValidationError(map[string]string{"purchase_price": "no puede ser negativo"})
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.NewValidationError(map[string]string{"sale_price": "no puede ser negativo"})
		}
		product.SalePrice = *in.SalePrice
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.NewValidationError(map[string]string{"min_stock": "no puede ser negativo"})
		}
		product.MinStock = *in.MinStock
	}
	if in.Unit != nil {
		if !entity.ValidUnit(*in.Unit) {
			return nil, domain.NewValidationError(map[string]string{"unit": "unidad desconocida"})
		}
		product.Unit = *in.Unit
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate marca el producto como inactivo (soft delete). El historial de
// movimientos y las ventas que lo referencian quedan intactos.
func (uc *ProductUseCase) Deactivate(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Deactivate(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		Barcode:         p.Barcode,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		PurchasePrice:   p.PurchasePrice,
		SalePrice:       p.SalePrice,
		Stock:           p.Stock,
		MinStock:        p.MinStock,
		Unit:            p.Unit,
		Supplier:        p.Supplier,
		IsActive:        p.IsActive,
		IsLowStock:      p.IsLowStock(),
		ProfitMarginPct: p.ProfitMarginPct(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
