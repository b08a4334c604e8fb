package repository

import (
	"time"

	"github.com/tu-usuario/caja-pos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// FindByLogin busca por username o email indistintamente (pantalla de login).
	FindByLogin(login string) (*entity.User, error)
	Count() (int, error)
	UpdateLastLogin(id string, at time.Time) error
}
