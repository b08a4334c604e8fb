package repository

import "github.com/tu-usuario/caja-pos/internal/domain/entity"

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	CategoryID  string // vacío = todas
	Search      string // busca en nombre y código de barras
	LowStock    bool   // solo productos en o bajo su umbral
	IncludeInactive bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// El stock no se modifica con Update: solo vía UpdateStock, que es de uso
// exclusivo del libro de stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByBarcode busca por código de barras solo entre productos activos.
	GetByBarcode(barcode string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, stock int) error
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Count(filter ProductFilter) (int, error)
	Deactivate(id string) error
}
