package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, description, color, icon, is_active, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.Color, category.Icon,
		category.IsActive, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID (activa o no).
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get category")
}

// GetByName busca por nombre solo entre categorías activas.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1 AND is_active = TRUE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name), "get category by name")
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3, color = $4, icon = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.Color, category.Icon,
		category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// ListActive lista las categorías activas ordenadas por nombre.
func (r *CategoryRepo) ListActive() ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_active = TRUE ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Deactivate marca la categoría como inactiva (soft delete).
func (r *CategoryRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categories SET is_active = FALSE, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deactivate category: %w", err)
	}
	return nil
}

func scanCategory(row pgx.Row, c *entity.Category) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *CategoryRepo) scanOne(row pgx.Row, op string) (*entity.Category, error) {
	var c entity.Category
	if err := scanCategory(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
