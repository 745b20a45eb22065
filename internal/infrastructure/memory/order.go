package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// OrderRepository implementa repository.OrderRepository.
type OrderRepository struct{ s *Store }

var _ repository.OrderRepository = (*OrderRepository)(nil)

var orderSort = map[string]compareFunc[*entity.Order]{
	"id":          byString(func(o *entity.Order) string { return o.ID }),
	"status":      byString(func(o *entity.Order) string { return string(o.Status) }),
	"final_price": byDecimal(func(o *entity.Order) decimal.Decimal { return o.FinalPrice }),
	"created_at":  byTime(func(o *entity.Order) time.Time { return o.CreatedAt }),
}

func (r *OrderRepository) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.orderRefsExist(o) {
		return domain.ErrConflict
	}
	if _, ok := r.s.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.orders[o.ID] = stripOrder(*o)
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return r.s.withOrderNames(o), nil
}

func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

// ListByCustomer busca la subcadena en la dirección de entrega.
func (r *OrderRepository) ListByCustomer(_ context.Context, customerID string, opts repository.ListOptions) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Order, 0)
	for _, o := range r.s.orders {
		if o.CustomerID == customerID && matches(opts.Search, o.DeliveryAddress) {
			out = append(out, r.s.withOrderNames(o))
		}
	}
	sortItems(out, opts.Sort, orderSort,
		func(o *entity.Order) time.Time { return o.CreatedAt },
		func(o *entity.Order) string { return o.ID })
	return out, nil
}

func (r *OrderRepository) Update(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if !r.s.orderRefsExist(o) {
		return domain.ErrConflict
	}
	updated := stripOrder(*o)
	updated.CreatedAt = current.CreatedAt
	r.s.orders[o.ID] = updated
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

func (s *Store) orderRefsExist(o *entity.Order) bool {
	_, okP := s.products[o.ProductID]
	_, okC := s.customers[o.CustomerID]
	return okP && okC
}

func (s *Store) withOrderNames(o entity.Order) *entity.Order {
	o.ProductName = s.products[o.ProductID].Name
	o.CustomerEmail = s.customers[o.CustomerID].Email
	return &o
}

func stripOrder(o entity.Order) entity.Order {
	o.ProductName = ""
	o.CustomerEmail = ""
	return o
}
