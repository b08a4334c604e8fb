package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, previous_stock, new_stock, reason, note, reference, created_by, created_at`

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. El libro es append-only: solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para movimientos de stock.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento en el libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.PreviousStock, movement.NewStock, movement.Reason,
		movement.Note, movement.Reference, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct devuelve los movimientos de un producto en orden cronológico inverso, paginados.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM stock_movements
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// CountByProduct cuenta los movimientos de un producto.
func (r *StockMovementRepo) CountByProduct(productID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movements by product: %w", err)
	}
	return total, nil
}

// List lista movimientos de todos los productos con filtros de tipo, razón y rango de fechas.
func (r *StockMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	where, args := buildMovementWhere(filter)
	query := `SELECT ` + movementColumns + ` FROM stock_movements` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// Count cuenta movimientos con los mismos filtros de List.
func (r *StockMovementRepo) Count(filter repository.MovementFilter) (int, error) {
	where, args := buildMovementWhere(filter)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM stock_movements`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

func buildMovementWhere(filter repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Reason != "" {
		args = append(args, filter.Reason)
		conds = append(conds, fmt.Sprintf("reason = $%d", len(args)))
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

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.Reason,
			&m.Note, &m.Reference, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
