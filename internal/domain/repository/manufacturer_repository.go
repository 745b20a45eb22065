package repository

import (
	"context"

	"github.com/jhoicas/Mercado-api/internal/domain/entity"
)

// ManufacturerRepository define el puerto de persistencia para Manufacturer (DIP).
type ManufacturerRepository interface {
	Create(ctx context.Context, manufacturer *entity.Manufacturer) error
	GetByID(ctx context.Context, id string) (*entity.Manufacturer, error)
	List(ctx context.Context, opts ListOptions) ([]*entity.Manufacturer, error)
	Update(ctx context.Context, manufacturer *entity.Manufacturer) error
	Delete(ctx context.Context, id string) error
}
