package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/application/validation"
	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Límites de las columnas NUMERIC(14,2) de price y NUMERIC(12,3) de value.
var (
	maxPrice = decimal.New(1, 12)
	maxValue = decimal.New(1, 9)
)

const (
	priceScale = 2
	valueScale = 3
)

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	repo          repository.ProductRepository
	manufacturers repository.ManufacturerRepository
	categories    repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, manufacturers repository.ManufacturerRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, manufacturers: manufacturers, categories: categories}
}

// Create crea un producto. Fabricante y categoría deben existir.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Description:       in.Description,
		Price:             *in.Price,
		ManufacturerID:    in.ManufacturerID,
		CategoryID:        in.CategoryID,
		Value:             *in.Value,
		Unit:              in.Unit,
		ManufacturingDate: validation.Date(in.ManufacturingDate),
		ExpiredDate:       validation.Date(in.ExpiredDate),
		Image:             in.Image,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.check(ctx, p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// GetByID obtiene un producto con los nombres de fabricante y categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List lista productos; search busca en nombre o descripción.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ListQuery) ([]dto.ProductResponse, error) {
	opts, err := listOptions(q, repository.ProductSortFields)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update aplica una actualización parcial y vuelve a validar el producto completo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.ManufacturerID != nil {
		p.ManufacturerID = *in.ManufacturerID
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.Value != nil {
		p.Value = *in.Value
	}
	if in.Unit != nil {
		p.Unit = *in.Unit
	}
	if in.ManufacturingDate != nil {
		p.ManufacturingDate = validation.Date(*in.ManufacturingDate)
	}
	if in.ExpiredDate != nil {
		p.ExpiredDate = validation.Date(*in.ExpiredDate)
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if err := uc.check(ctx, p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// Delete elimina un producto. Falla con ErrConflict si tiene pedidos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := validation.ID(id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	if err := validation.ID(id); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// check reglas de negocio que las etiquetas validate no expresan.
func (uc *ProductUseCase) check(ctx context.Context, p *entity.Product) error {
	verr := &domain.ValidationError{}
	checkAmount(verr, "price", p.Price, priceScale, maxPrice)
	checkAmount(verr, "value", p.Value, valueScale, maxValue)
	if p.ExpiredDate.Before(p.ManufacturingDate) {
		verr.Add("expired_date", "anterior a la fecha de fabricación")
	}
	m, err := uc.manufacturers.GetByID(ctx, p.ManufacturerID)
	if err != nil {
		return err
	}
	if m == nil {
		verr.Add("manufacturer_id", "el fabricante no existe")
	}
	c, err := uc.categories.GetByID(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if c == nil {
		verr.Add("category_id", "la categoría no existe")
	}
	return verr.OrNil()
}

// checkAmount exige 0 <= d < max con a lo sumo scale decimales.
func checkAmount(verr *domain.ValidationError, field string, d decimal.Decimal, scale int32, max decimal.Decimal) {
	switch {
	case d.IsNegative():
		verr.Add(field, "no puede ser negativo")
	case d.GreaterThanOrEqual(max):
		verr.Add(field, "debe ser menor que "+max.String())
	case !d.Equal(d.Round(scale)):
		verr.Add(field, fmt.Sprintf("admite a lo sumo %d decimales", scale))
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		ManufacturerID:    p.ManufacturerID,
		Manufacturer:      p.ManufacturerName,
		CategoryID:        p.CategoryID,
		Category:          p.CategoryName,
		Price:             p.Price,
		Value:             p.Value,
		Unit:              p.Unit,
		ManufacturingDate: p.ManufacturingDate.Format(dto.DateLayout),
		ExpiredDate:       p.ExpiredDate.Format(dto.DateLayout),
		Image:             p.Image,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
