package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para POST /orders. El cliente siempre es el usuario autenticado;
// cualquier customer enviado en el cuerpo se ignora.
type CreateOrderRequest struct {
	ProductID       string `json:"product_id" validate:"required,uuid"`
	DeliveryAddress string `json:"delivery_address" validate:"required,min=1,max=500"`
}

// PatchOrderRequest actualización parcial de un pedido (solo staff).
type PatchOrderRequest struct {
	CustomerID      *string `json:"customer_id" validate:"omitempty,uuid"`
	PhoneCustomer   *string `json:"phone_customer" validate:"omitempty,max=20"`
	Status          *string `json:"status" validate:"omitempty,oneof=pending processing delivery completed canceled"`
	DeliveryAddress *string `json:"delivery_address" validate:"omitempty,min=1,max=500"`
}

// OrderResponse salida de un pedido; Product es el nombre y Customer el email.
type OrderResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Product         string          `json:"product"`
	CustomerID      string          `json:"customer_id"`
	Customer        string          `json:"customer"`
	PhoneCustomer   string          `json:"phone_customer"`
	Status          string          `json:"status"`
	DeliveryAddress string          `json:"delivery_address"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
