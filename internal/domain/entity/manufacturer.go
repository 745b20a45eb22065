package entity

import "time"

// Manufacturer representa un fabricante de productos.
// CountryName se llena al leer (JOIN) y no se persiste.
type Manufacturer struct {
	ID          string
	Name        string
	CountryID   string
	CountryName string
	Address     string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
