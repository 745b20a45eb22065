package memory

import (
	"context"

	"github.com/jhoicas/Mercado-api/internal/application/ordering"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
)

// TxRunner serializa las transacciones de pedidos y, si fn falla, restaura
// clientes y pedidos al estado previo.
type TxRunner struct{ s *Store }

var _ ordering.TxRunner = (*TxRunner)(nil)

func (t *TxRunner) RunOrdering(ctx context.Context, fn func(customers repository.CustomerRepository, products repository.ProductRepository, orders repository.OrderRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	t.s.mu.RLock()
	customers := cloneMap(t.s.customers)
	orders := cloneMap(t.s.orders)
	t.s.mu.RUnlock()

	err := fn(&CustomerRepository{s: t.s}, &ProductRepository{s: t.s}, &OrderRepository{s: t.s})
	if err != nil {
		t.s.mu.Lock()
		t.s.customers = customers
		t.s.orders = orders
		t.s.mu.Unlock()
		return err
	}
	return nil
}
