package entity

import "time"

// Category representa una categoría de productos (datos de referencia simples).
// Se desactiva con soft delete; los productos que la referencian no se tocan.
type Category struct {
	ID          string
	Name        string // único entre categorías activas
	Description string
	Color       string // color de presentación (hex)
	Icon        string // glifo para la UI
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
