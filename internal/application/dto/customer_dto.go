package dto

import "github.com/shopspring/decimal"

// SignUpRequest entrada para el auto-registro de un cliente.
type SignUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=1,max=150"`
	LastName  string `json:"last_name" validate:"required,min=1,max=150"`
	Phone     string `json:"phone" validate:"required,min=1,max=20"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
}

// SignInRequest credenciales de inicio de sesión.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse token de sesión (también va en la cookie) y el cliente autenticado.
type SignInResponse struct {
	Message  string           `json:"message"`
	Token    string           `json:"token"`
	Customer CustomerResponse `json:"customer"`
}

// UpdateProfileRequest campos que el cliente puede cambiar de su propio perfil.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=150"`
	Phone     *string `json:"phone" validate:"omitempty,min=1,max=20"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// CustomerResponse salida de un cliente (sin password).
type CustomerResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Phone       string          `json:"phone"`
	BirthDate   string          `json:"birth_date"`
	IsStaff     bool            `json:"is_staff"`
	IsSuperuser bool            `json:"is_superuser"`
	Wallet      decimal.Decimal `json:"wallet"`
}
