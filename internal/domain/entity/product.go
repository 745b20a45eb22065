package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Price es atributo de catálogo: la liquidación de pedidos nunca lo modifica.
type Product struct {
	ID                string
	Name              string
	Description       string
	Price             decimal.Decimal
	ManufacturerID    string
	ManufacturerName  string // solo lectura (JOIN)
	CategoryID        string
	CategoryName      string // solo lectura (JOIN)
	Value             decimal.Decimal // cantidad neta, ej. 1.5
	Unit              string          // unidad de Value, ej. "kg", "l", "pcs"
	ManufacturingDate time.Time
	ExpiredDate       time.Time
	Image             string // referencia (URL o ruta) a la imagen
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
