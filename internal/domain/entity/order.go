package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido (conjunto cerrado).
type OrderStatus string

// Estados de pedido. StatusDelivery ("delivery") es el marcador que dispara la bonificación.
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivery   OrderStatus = "delivery"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// orderTransitions tabla de transiciones permitidas. Reescribir el mismo estado siempre se permite (no-op).
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusDelivery, OrderStatusCanceled},
	OrderStatusProcessing: {OrderStatusPending, OrderStatusDelivery, OrderStatusCanceled},
	OrderStatusDelivery:   {OrderStatusCompleted, OrderStatusCanceled},
	OrderStatusCompleted:  {},
	OrderStatusCanceled:   {},
}

// ParseOrderStatus valida un estado recibido como texto.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	_, ok := orderTransitions[st]
	return st, ok
}

// CanTransition informa si un pedido puede pasar de from a to.
func (from OrderStatus) CanTransition(to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// EntersDelivery es verdadero solo en la primera entrada al estado de entrega.
func (from OrderStatus) EntersDelivery(to OrderStatus) bool {
	return to == OrderStatusDelivery && from != OrderStatusDelivery
}

// Order pedido de un producto por un cliente.
// FinalPrice es lo que el cliente aún debe después de aplicar su billetera.
type Order struct {
	ID              string
	ProductID       string
	ProductName     string // solo lectura (JOIN)
	CustomerID      string
	CustomerEmail   string // solo lectura (JOIN)
	PhoneCustomer   string // copia del teléfono al momento del pedido
	Status          OrderStatus
	DeliveryAddress string
	FinalPrice      decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
