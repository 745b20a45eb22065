package repository

import (
	"context"

	"github.com/jhoicas/Mercado-api/internal/domain/entity"
)

// CountryRepository define el puerto de persistencia para Country (DIP).
type CountryRepository interface {
	Create(ctx context.Context, country *entity.Country) error
	GetByID(ctx context.Context, id string) (*entity.Country, error)
	List(ctx context.Context, opts ListOptions) ([]*entity.Country, error)
	Update(ctx context.Context, country *entity.Country) error
	Delete(ctx context.Context, id string) error
}
