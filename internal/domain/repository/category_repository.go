package repository

import "github.com/tu-usuario/caja-pos/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// GetByName busca por nombre solo entre categorías activas.
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListActive() ([]*entity.Category, error)
	Deactivate(id string) error
}
