package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CategoryRepository implementa repository.CategoryRepository.
type CategoryRepository struct{ s *Store }

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

var categorySort = map[string]compareFunc[*entity.Category]{
	"id":         byString(func(c *entity.Category) string { return c.ID }),
	"name":       byString(func(c *entity.Category) string { return c.Name }),
	"created_at": byTime(func(c *entity.Category) time.Time { return c.CreatedAt }),
}

func (r *CategoryRepository) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepository) List(_ context.Context, opts repository.ListOptions) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		if matches(opts.Search, c.Name) {
			c := c
			out = append(out, &c)
		}
	}
	sortItems(out, opts.Sort, categorySort,
		func(c *entity.Category) time.Time { return c.CreatedAt },
		func(c *entity.Category) string { return c.ID })
	return out, nil
}

func (r *CategoryRepository) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categories[c.ID] = *c
	return nil
}

// Delete falla con ErrConflict si algún producto referencia la categoría.
func (r *CategoryRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

// CountryRepository implementa repository.CountryRepository.
type CountryRepository struct{ s *Store }

var _ repository.CountryRepository = (*CountryRepository)(nil)

var countrySort = map[string]compareFunc[*entity.Country]{
	"id":         byString(func(c *entity.Country) string { return c.ID }),
	"name":       byString(func(c *entity.Country) string { return c.Name }),
	"created_at": byTime(func(c *entity.Country) time.Time { return c.CreatedAt }),
}

func (r *CountryRepository) Create(_ context.Context, c *entity.Country) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.countries[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.countries[c.ID] = *c
	return nil
}

func (r *CountryRepository) GetByID(_ context.Context, id string) (*entity.Country, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.countries[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CountryRepository) List(_ context.Context, opts repository.ListOptions) ([]*entity.Country, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Country, 0, len(r.s.countries))
	for _, c := range r.s.countries {
		if matches(opts.Search, c.Name) {
			c := c
			out = append(out, &c)
		}
	}
	sortItems(out, opts.Sort, countrySort,
		func(c *entity.Country) time.Time { return c.CreatedAt },
		func(c *entity.Country) string { return c.ID })
	return out, nil
}

func (r *CountryRepository) Update(_ context.Context, c *entity.Country) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.countries[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.countries[c.ID] = *c
	return nil
}

// Delete falla con ErrConflict si algún fabricante referencia el país.
func (r *CountryRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.countries[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.manufacturers {
		if m.CountryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.countries, id)
	return nil
}

// ManufacturerRepository implementa repository.ManufacturerRepository.
type ManufacturerRepository struct{ s *Store }

var _ repository.ManufacturerRepository = (*ManufacturerRepository)(nil)

var manufacturerSort = map[string]compareFunc[*entity.Manufacturer]{
	"id":         byString(func(m *entity.Manufacturer) string { return m.ID }),
	"name":       byString(func(m *entity.Manufacturer) string { return m.Name }),
	"email":      byString(func(m *entity.Manufacturer) string { return m.Email }),
	"created_at": byTime(func(m *entity.Manufacturer) time.Time { return m.CreatedAt }),
}

func (r *ManufacturerRepository) Create(_ context.Context, m *entity.Manufacturer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.countries[m.CountryID]; !ok {
		return domain.ErrConflict
	}
	if _, ok := r.s.manufacturers[m.ID]; ok {
		return domain.ErrDuplicate
	}
	stored := *m
	stored.CountryName = ""
	r.s.manufacturers[m.ID] = stored
	return nil
}

func (r *ManufacturerRepository) GetByID(_ context.Context, id string) (*entity.Manufacturer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.manufacturers[id]
	if !ok {
		return nil, nil
	}
	return r.s.withCountry(m), nil
}

func (r *ManufacturerRepository) List(_ context.Context, opts repository.ListOptions) ([]*entity.Manufacturer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Manufacturer, 0, len(r.s.manufacturers))
	for _, m := range r.s.manufacturers {
		if matches(opts.Search, m.Name) {
			out = append(out, r.s.withCountry(m))
		}
	}
	sortItems(out, opts.Sort, manufacturerSort,
		func(m *entity.Manufacturer) time.Time { return m.CreatedAt },
		func(m *entity.Manufacturer) string { return m.ID })
	return out, nil
}

func (r *ManufacturerRepository) Update(_ context.Context, m *entity.Manufacturer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.manufacturers[m.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.countries[m.CountryID]; !ok {
		return domain.ErrConflict
	}
	stored := *m
	stored.CountryName = ""
	r.s.manufacturers[m.ID] = stored
	return nil
}

// Delete falla con ErrConflict si algún producto referencia al fabricante.
func (r *ManufacturerRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.manufacturers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.ManufacturerID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.manufacturers, id)
	return nil
}

// withCountry devuelve una copia con el nombre del país. Requiere mu tomado.
func (s *Store) withCountry(m entity.Manufacturer) *entity.Manufacturer {
	m.CountryName = s.countries[m.CountryID].Name
	return &m
}

// ProductRepository implementa repository.ProductRepository.
type ProductRepository struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepository)(nil)

var productSort = map[string]compareFunc[*entity.Product]{
	"id":                 byString(func(p *entity.Product) string { return p.ID }),
	"name":               byString(func(p *entity.Product) string { return p.Name }),
	"price":              byDecimal(func(p *entity.Product) decimal.Decimal { return p.Price }),
	"manufacturing_date": byTime(func(p *entity.Product) time.Time { return p.ManufacturingDate }),
	"expired_date":       byTime(func(p *entity.Product) time.Time { return p.ExpiredDate }),
	"created_at":         byTime(func(p *entity.Product) time.Time { return p.CreatedAt }),
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.productRefsExist(p) {
		return domain.ErrConflict
	}
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = stripProduct(*p)
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return r.s.withProductNames(p), nil
}

// List busca la subcadena en nombre o descripción.
func (r *ProductRepository) List(_ context.Context, opts repository.ListOptions) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if matches(opts.Search, p.Name, p.Description) {
			out = append(out, r.s.withProductNames(p))
		}
	}
	sortItems(out, opts.Sort, productSort,
		func(p *entity.Product) time.Time { return p.CreatedAt },
		func(p *entity.Product) string { return p.ID })
	return out, nil
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if !r.s.productRefsExist(p) {
		return domain.ErrConflict
	}
	r.s.products[p.ID] = stripProduct(*p)
	return nil
}

// Delete falla con ErrConflict si el producto tiene pedidos.
func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.s.orders {
		if o.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.products, id)
	return nil
}

func (s *Store) productRefsExist(p *entity.Product) bool {
	_, okM := s.manufacturers[p.ManufacturerID]
	_, okC := s.categories[p.CategoryID]
	return okM && okC
}

func (s *Store) withProductNames(p entity.Product) *entity.Product {
	p.ManufacturerName = s.manufacturers[p.ManufacturerID].Name
	p.CategoryName = s.categories[p.CategoryID].Name
	return &p
}

func stripProduct(p entity.Product) entity.Product {
	p.ManufacturerName = ""
	p.CategoryName = ""
	return p
}
