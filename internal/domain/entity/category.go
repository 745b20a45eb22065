package entity

import "time"

// Category representa una categoría de productos (lácteos, panadería, ...).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
