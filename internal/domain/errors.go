package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAccountDisabled    = errors.New("cuenta deshabilitada")
	ErrEmptyCart          = errors.New("el carrito está vacío")
)

// ValidationError agrupa todos los campos inválidos de una petición de creación.
// Se reportan todos los campos violados, no solo el primero.
type ValidationError struct {
	Fields map[string]string // campo -> mensaje
}

// NewValidationError construye el error con el mapa de campos.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError indica qué producto no tiene stock y cuánto hay disponible.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: %s (disponible: %d)", e.ProductName, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
