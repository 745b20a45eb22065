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

// ManufacturerUseCase casos de uso CRUD para fabricantes.
type ManufacturerUseCase struct {
	repo      repository.ManufacturerRepository
	countries repository.CountryRepository
}

// NewManufacturerUseCase construye el caso de uso.
func NewManufacturerUseCase(repo repository.ManufacturerRepository, countries repository.CountryRepository) *ManufacturerUseCase {
	return &ManufacturerUseCase{repo: repo, countries: countries}
}

// Create crea un fabricante. El país referenciado debe existir.
func (uc *ManufacturerUseCase) Create(ctx context.Context, in dto.CreateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.checkCountry(ctx, in.CountryID); err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Manufacturer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CountryID: in.CountryID,
		Address:   in.Address,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, m.ID)
}

// GetByID obtiene un fabricante con el nombre de su país.
func (uc *ManufacturerUseCase) GetByID(ctx context.Context, id string) (*dto.ManufacturerResponse, error) {
	m, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toManufacturerResponse(m), nil
}

// List lista fabricantes filtrando por nombre.
func (uc *ManufacturerUseCase) List(ctx context.Context, q dto.ListQuery) ([]dto.ManufacturerResponse, error) {
	opts, err := listOptions(q, repository.ManufacturerSortFields)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ManufacturerResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toManufacturerResponse(m))
	}
	return items, nil
}

// Update aplica una actualización parcial.
func (uc *ManufacturerUseCase) Update(ctx context.Context, id string, in dto.UpdateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	m, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CountryID != nil {
		if err := uc.checkCountry(ctx, *in.CountryID); err != nil {
			return nil, err
		}
		m.CountryID = *in.CountryID
	}
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Address != nil {
		m.Address = *in.Address
	}
	if in.Email != nil {
		m.Email = *in.Email
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, m.ID)
}

// Delete elimina un fabricante. Falla con ErrConflict si tiene productos.
func (uc *ManufacturerUseCase) Delete(ctx context.Context, id string) error {
	if err := validation.ID(id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ManufacturerUseCase) get(ctx context.Context, id string) (*entity.Manufacturer, error) {
	if err := validation.ID(id); err != nil {
		return nil, err
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// checkCountry una referencia a un país inexistente es un error del campo, no un 404.
func (uc *ManufacturerUseCase) checkCountry(ctx context.Context, id string) error {
	c, err := uc.countries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewValidationError("country_id", "el país no existe")
	}
	return nil
}

func toManufacturerResponse(m *entity.Manufacturer) *dto.ManufacturerResponse {
	return &dto.ManufacturerResponse{
		ID:        m.ID,
		Name:      m.Name,
		CountryID: m.CountryID,
		Country:   m.CountryName,
		Address:   m.Address,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
