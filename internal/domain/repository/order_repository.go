package repository

import (
	"context"

	"github.com/jhoicas/Mercado-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Search en ListByCustomer compara contra la dirección de entrega.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ListByCustomer(ctx context.Context, customerID string, opts ListOptions) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id string) error
}
