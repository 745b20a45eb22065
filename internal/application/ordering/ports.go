package ordering

import (
	"context"
	"time"

	"github.com/jhoicas/Mercado-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta fn dentro de una única transacción. Si fn devuelve error se hace rollback
// y ningún cambio de billetera ni de pedido queda visible.
type TxRunner interface {
	RunOrdering(ctx context.Context, fn func(customers repository.CustomerRepository, products repository.ProductRepository, orders repository.OrderRepository) error) error
}

// Tipos de evento publicados tras cada commit.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderEvent evento del ciclo de vida de un pedido.
type OrderEvent struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	OrderID        string          `json:"order_id"`
	CustomerID     string          `json:"customer_id"`
	ProductID      string          `json:"product_id,omitempty"`
	Status         string          `json:"status,omitempty"`
	PreviousStatus string          `json:"previous_status,omitempty"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	WalletApplied  decimal.Decimal `json:"wallet_applied"`
	Rebate         decimal.Decimal `json:"rebate"`
	RebateTo       string          `json:"rebate_to,omitempty"`
	ActorID        string          `json:"actor_id,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// EventPublisher publica eventos de pedidos (Kafka o no-op).
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// Receipt datos del comprobante PDF de un pedido.
type Receipt struct {
	OrderID         string
	CreatedAt       time.Time
	Status          string
	CustomerName    string
	CustomerEmail   string
	PhoneCustomer   string
	DeliveryAddress string
	ProductName     string
	ProductValue    string // ej. "1.5 kg"
	ListPrice       decimal.Decimal
	FinalPrice      decimal.Decimal
}

// ReceiptGenerator genera el PDF de un comprobante.
type ReceiptGenerator interface {
	GenerateReceipt(r Receipt) ([]byte, error)
}
