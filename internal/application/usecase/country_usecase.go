package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/application/validation"
	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
)

// CountryUseCase casos de uso CRUD para países.
type CountryUseCase struct {
	repo repository.CountryRepository
}

// NewCountryUseCase construye el caso de uso.
func NewCountryUseCase(repo repository.CountryRepository) *CountryUseCase {
	return &CountryUseCase{repo: repo}
}

// Create crea un país.
func (uc *CountryUseCase) Create(ctx context.Context, in dto.CreateCountryRequest) (*dto.CountryResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	country := &entity.Country{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, country); err != nil {
		return nil, err
	}
	return toCountryResponse(country), nil
}

// GetByID obtiene un país por ID.
func (uc *CountryUseCase) GetByID(ctx context.Context, id string) (*dto.CountryResponse, error) {
	country, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCountryResponse(country), nil
}

// List lista países filtrando por nombre.
func (uc *CountryUseCase) List(ctx context.Context, q dto.ListQuery) ([]dto.CountryResponse, error) {
	opts, err := listOptions(q, repository.CountrySortFields)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CountryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCountryResponse(c))
	}
	return items, nil
}

// Update aplica una actualización parcial.
func (uc *CountryUseCase) Update(ctx context.Context, id string, in dto.UpdateCountryRequest) (*dto.CountryResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	country, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		country.Name = *in.Name
	}
	country.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, country); err != nil {
		return nil, err
	}
	return toCountryResponse(country), nil
}

// Delete elimina un país. Falla con ErrConflict si algún fabricante lo usa.
func (uc *CountryUseCase) Delete(ctx context.Context, id string) error {
	if err := validation.ID(id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CountryUseCase) get(ctx context.Context, id string) (*entity.Country, error) {
	if err := validation.ID(id); err != nil {
		return nil, err
	}
	country, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, domain.ErrNotFound
	}
	return country, nil
}

func toCountryResponse(c *entity.Country) *dto.CountryResponse {
	return &dto.CountryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
