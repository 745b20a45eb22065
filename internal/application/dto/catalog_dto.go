package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// UpdateCategoryRequest actualización parcial de una categoría.
type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCountryRequest entrada para crear un país.
type CreateCountryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// UpdateCountryRequest actualización parcial de un país.
type UpdateCountryRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// CountryResponse salida de un país.
type CountryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateManufacturerRequest entrada para crear un fabricante.
type CreateManufacturerRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=255"`
	CountryID string `json:"country_id" validate:"required,uuid"`
	Address   string `json:"address" validate:"required,min=1,max=500"`
	Email     string `json:"email" validate:"required,email"`
}

// UpdateManufacturerRequest actualización parcial de un fabricante.
type UpdateManufacturerRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	CountryID *string `json:"country_id" validate:"omitempty,uuid"`
	Address   *string `json:"address" validate:"omitempty,min=1,max=500"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// ManufacturerResponse salida de un fabricante; Country es el nombre del país.
type ManufacturerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CountryID string    `json:"country_id"`
	Country   string    `json:"country"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
