package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// Defaults de presentación para categorías nuevas.
const (
	defaultCategoryColor = "#6366f1"
	defaultCategoryIcon  = "📦"
)

// CategoryUseCase casos de uso CRUD para categorías (datos de referencia).
// Desactivar una categoría no toca los productos que la referencian.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría con nombre único entre las activas.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.NewValidationError(map[string]string{"name": "el nombre es obligatorio"})
	}
	if existing, _ := uc.repo.GetByName(in.Name); existing != nil {
		return nil, domain.ErrDuplicate
	}
	color := in.Color
	if color == "" {
		color = defaultCategoryColor
	}
	icon := in.Icon
	if icon == "" {
		icon = defaultCategoryIcon
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Color:       color,
		Icon:        icon,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// ListActive lista las categorías activas ordenadas por nombre.
func (uc *CategoryUseCase) ListActive() ([]dto.CategoryResponse, error) {
	categories, err := uc.repo.ListActive()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Update actualiza una categoría (parcial).
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != category.Name {
		if *in.Name == "" {
			return nil, domain.NewValidationError(map[string]string{"name": "el nombre es obligatorio"})
		}
		if existing, _ := uc.repo.GetByName(*in.Name); existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Color != nil {
		category.Color = *in.Color
	}
	if in.Icon != nil {
		category.Icon = *in.Icon
	}
	category.UpdatedAt = time.Now()

	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Deactivate marca la categoría como inactiva (soft delete, solo admin).
// Los productos que la referencian conservan la referencia.
func (uc *CategoryUseCase) Deactivate(id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
