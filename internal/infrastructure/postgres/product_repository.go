package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, barcode, name, description, category_id, purchase_price, sale_price, stock, min_stock, unit, supplier, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. El stock se inserta tal cual (0 en el flujo normal:
// la carga inicial llega después como movimiento).
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.Description, product.CategoryID,
		product.PurchasePrice, product.SalePrice, product.Stock, product.MinStock,
		product.Unit, product.Supplier, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByBarcode busca por código de barras solo entre productos activos.
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1 AND is_active = TRUE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, barcode), "get product by barcode")
}

// GetForUpdate obtiene el producto bloqueando su fila. Solo tiene sentido
// dentro de una transacción: el lock se libera en Commit/Rollback.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// Update actualiza un producto existente. No toca el stock: eso es exclusivo de UpdateStock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET barcode = $2, name = $3, description = $4, category_id = $5,
			purchase_price = $6, sale_price = $7, min_stock = $8, unit = $9, supplier = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Barcode, product.Name, product.Description, product.CategoryID,
		product.PurchasePrice, product.SalePrice, product.MinStock, product.Unit,
		product.Supplier, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo la cantidad en existencia (uso exclusivo del libro de stock).
func (r *ProductRepo) UpdateStock(id string, stock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// List lista productos con los filtros y paginación.
func (r *ProductRepo) List(filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	where, args := buildProductWhere(filter)
	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count cuenta productos con los mismos filtros de List.
func (r *ProductRepo) Count(filter repository.ProductFilter) (int, error) {
	where, args := buildProductWhere(filter)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM products`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// Deactivate marca el producto como inactivo (soft delete).
func (r *ProductRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = FALSE, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

func buildProductWhere(filter repository.ProductFilter) (string, []any) {
	var conds []string
	var args []any
	if !filter.IncludeInactive {
		conds = append(conds, "is_active = TRUE")
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR barcode ILIKE $%d)", len(args), len(args)))
	}
	if filter.LowStock {
		conds = append(conds, "stock <= min_stock")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(
		&p.ID, &p.Barcode, &p.Name, &p.Description, &p.CategoryID,
		&p.PurchasePrice, &p.SalePrice, &p.Stock, &p.MinStock,
		&p.Unit, &p.Supplier, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	if err := scanProduct(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
