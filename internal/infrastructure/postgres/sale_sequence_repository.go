package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

var _ repository.SaleSequenceRepository = (*SaleSequenceRepo)(nil)

// SaleSequenceRepo entrega el consecutivo diario del número de venta sobre la
// tabla sale_sequences (una fila por día).
type SaleSequenceRepo struct {
	q Querier
}

// NewSaleSequenceRepository construye el adaptador del consecutivo de ventas.
func NewSaleSequenceRepository(q Querier) *SaleSequenceRepo {
	return &SaleSequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo del día en una sola sentencia.
// El upsert con RETURNING es atómico: dos ventas concurrentes del mismo día
// reciben números distintos aunque corran en transacciones separadas.
func (r *SaleSequenceRepo) Next(day time.Time) (int, error) {
	query := `
		INSERT INTO sale_sequences (sale_day, last_number)
		VALUES ($1, 1)
		ON CONFLICT (sale_day)
		DO UPDATE SET last_number = sale_sequences.last_number + 1
		RETURNING last_number`
	var n int
	err := r.q.QueryRow(context.Background(), query, day.Format("2006-01-02")).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sale number: %w", err)
	}
	return n, nil
}
