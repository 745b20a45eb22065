package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Fechas en formato YYYY-MM-DD.
type CreateProductRequest struct {
	Name              string           `json:"name" validate:"required,min=1,max=255"`
	Description       string           `json:"description" validate:"max=2000"`
	Price             *decimal.Decimal `json:"price" validate:"required"`
	ManufacturerID    string           `json:"manufacturer_id" validate:"required,uuid"`
	CategoryID        string           `json:"category_id" validate:"required,uuid"`
	Value             *decimal.Decimal `json:"value" validate:"required"`
	Unit              string           `json:"unit" validate:"required,min=1,max=20"`
	ManufacturingDate string           `json:"manufacturing_date" validate:"required,datetime=2006-01-02"`
	ExpiredDate       string           `json:"expired_date" validate:"required,datetime=2006-01-02"`
	Image             string           `json:"image" validate:"max=500"`
}

// UpdateProductRequest actualización parcial de un producto.
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description       *string          `json:"description" validate:"omitempty,max=2000"`
	Price             *decimal.Decimal `json:"price"`
	ManufacturerID    *string          `json:"manufacturer_id" validate:"omitempty,uuid"`
	CategoryID        *string          `json:"category_id" validate:"omitempty,uuid"`
	Value             *decimal.Decimal `json:"value"`
	Unit              *string          `json:"unit" validate:"omitempty,min=1,max=20"`
	ManufacturingDate *string          `json:"manufacturing_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiredDate       *string          `json:"expired_date" validate:"omitempty,datetime=2006-01-02"`
	Image             *string          `json:"image" validate:"omitempty,max=500"`
}

// ProductResponse salida de un producto; Manufacturer y Category son nombres.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	ManufacturerID    string          `json:"manufacturer_id"`
	Manufacturer      string          `json:"manufacturer"`
	CategoryID        string          `json:"category_id"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Value             decimal.Decimal `json:"value"`
	Unit              string          `json:"unit"`
	ManufacturingDate string          `json:"manufacturing_date"`
	ExpiredDate       string          `json:"expired_date"`
	Image             string          `json:"image"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
