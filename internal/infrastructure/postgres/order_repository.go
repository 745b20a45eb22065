package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderSelect = `
	SELECT o.id, o.product_id, p.name, o.customer_id, c.email, o.phone_customer, o.status,
		o.delivery_address, o.final_price, o.created_at, o.updated_at
	FROM orders o
	JOIN products p ON p.id = o.product_id
	JOIN customers c ON c.id = o.customer_id`

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, product_id, customer_id, phone_customer, status, delivery_address, final_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.ProductID, o.CustomerID, o.PhoneCustomer, string(o.Status), o.DeliveryAddress, o.FinalPrice,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert order", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, orderSelect+` WHERE o.id = $1`, id)
}

// GetByIDForUpdate bloquea solo la fila del pedido (FOR UPDATE OF o).
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, orderSelect+` WHERE o.id = $1 FOR UPDATE OF o`, id)
}

func (r *OrderRepo) getOne(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListByCustomer lista los pedidos de un cliente; search busca en la dirección de entrega.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string, opts repository.ListOptions) ([]*entity.Order, error) {
	sql, args := listQuery{
		base:       orderSelect,
		where:      []string{"o.customer_id = $1"},
		args:       []any{customerID},
		searchCols: []string{"o.delivery_address"},
		sortCols: map[string]string{
			"id":          "o.id",
			"status":      "o.status",
			"final_price": "o.final_price",
			"created_at":  "o.created_at",
		},
		defaultBy: "o.created_at, o.id",
	}.build(opts)
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET customer_id = $2, phone_customer = $3, status = $4, delivery_address = $5,
			final_price = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerID, o.PhoneCustomer, string(o.Status), o.DeliveryAddress, o.FinalPrice, o.UpdatedAt,
	)
	if err != nil {
		return writeErr("update order", err)
	}
	return affectedOne(tag)
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return affectedOne(tag)
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o      entity.Order
		status string
	)
	err := row.Scan(
		&o.ID, &o.ProductID, &o.ProductName, &o.CustomerID, &o.CustomerEmail, &o.PhoneCustomer, &status,
		&o.DeliveryAddress, &o.FinalPrice, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}
