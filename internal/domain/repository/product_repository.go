package repository

import (
	"context"

	"github.com/jhoicas/Mercado-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Search en List compara contra nombre o descripción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, opts ListOptions) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
