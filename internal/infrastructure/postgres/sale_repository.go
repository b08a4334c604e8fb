package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, number, subtotal, discount, total, profit, payment_method, status, note, created_by, created_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Las líneas se guardan con line_no para conservar el orden del carrito.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y las líneas de la venta. Pensado para correr
// dentro de la transacción de CreateSale: si una línea falla, el caller hace rollback.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Number, sale.Subtotal, sale.Discount, sale.Total, sale.Profit,
		sale.PaymentMethod, sale.Status, sale.Note, sale.CreatedBy, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, line_no, product_id, barcode, name, quantity, unit_price, purchase_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, item := range sale.Items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, sale.ID, i+1, item.ProductID, item.Barcode, item.Name,
			item.Quantity, item.UnitPrice, item.PurchasePrice, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con sus líneas en el orden original del carrito.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := scanSale(r.q.QueryRow(context.Background(), query, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsBySale(id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// List lista ventas (sin líneas) en orden cronológico inverso, paginadas.
func (r *SaleRepo) List(filter repository.SaleFilter, limit, offset int) ([]*entity.Sale, error) {
	where, args := buildSaleWhere(filter)
	query := `SELECT ` + saleColumns + ` FROM sales` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := scanSale(rows, &s); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count cuenta ventas con los mismos filtros de List.
func (r *SaleRepo) Count(filter repository.SaleFilter) (int, error) {
	where, args := buildSaleWhere(filter)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM sales`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return total, nil
}

// SummaryForRange calcula el resumen de ventas completadas en [from, to).
func (r *SaleRepo) SummaryForRange(from, to time.Time) (*repository.SaleSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(s.total), 0), COALESCE(SUM(s.profit), 0),
			COALESCE((SELECT SUM(i.quantity) FROM sale_items i
				JOIN sales s2 ON s2.id = i.sale_id
				WHERE s2.status = $1 AND s2.created_at >= $2 AND s2.created_at < $3), 0)
		FROM sales s
		WHERE s.status = $1 AND s.created_at >= $2 AND s.created_at < $3`
	var summary repository.SaleSummary
	err := r.q.QueryRow(context.Background(), query, entity.SaleStatusCompleted, from, to).Scan(
		&summary.Count, &summary.Total, &summary.Profit, &summary.Items,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &summary, nil
}

func (r *SaleRepo) itemsBySale(saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, barcode, name, quantity, unit_price, purchase_price, total
		FROM sale_items WHERE sale_id = $1 ORDER BY line_no ASC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.Barcode, &it.Name,
			&it.Quantity, &it.UnitPrice, &it.PurchasePrice, &it.Total,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func buildSaleWhere(filter repository.SaleFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanSale(row pgx.Row, s *entity.Sale) error {
	return row.Scan(
		&s.ID, &s.Number, &s.Subtotal, &s.Discount, &s.Total, &s.Profit,
		&s.PaymentMethod, &s.Status, &s.Note, &s.CreatedBy, &s.CreatedAt,
	)
}
