package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CustomerRepository implementa repository.CustomerRepository.
type CustomerRepository struct{ s *Store }

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if existing.Email == c.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	if _, ok := r.s.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepository) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, nil
}

// GetByIDForUpdate en memoria el bloqueo lo da TxRunner, que serializa las transacciones.
func (r *CustomerRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

// Update conserva la billetera y el hash almacenados.
func (r *CustomerRepository) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.customers[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *c
	updated.Email = current.Email
	updated.Wallet = current.Wallet
	updated.PasswordHash = current.PasswordHash
	updated.CreatedAt = current.CreatedAt
	r.s.customers[c.ID] = updated
	return nil
}

func (r *CustomerRepository) UpdateWallet(_ context.Context, id string, wallet decimal.Decimal) error {
	if wallet.IsNegative() {
		return domain.NewValidationError("wallet", "no puede ser negativo")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Wallet = wallet
	c.UpdatedAt = time.Now()
	r.s.customers[id] = c
	return nil
}

// Delete elimina al cliente con sus pedidos y sesiones.
func (r *CustomerRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	for oid, o := range r.s.orders {
		if o.CustomerID == id {
			delete(r.s.orders, oid)
		}
	}
	for sid, sess := range r.s.sessions {
		if sess.CustomerID == id {
			delete(r.s.sessions, sid)
		}
	}
	delete(r.s.customers, id)
	return nil
}

// SessionRepository implementa repository.SessionRepository.
type SessionRepository struct{ s *Store }

var _ repository.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Create(_ context.Context, sess *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[sess.CustomerID]; !ok {
		return domain.ErrConflict
	}
	r.s.sessions[sess.ID] = *sess
	return nil
}

func (r *SessionRepository) GetByID(_ context.Context, id string) (*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

// Revoke es idempotente: una sesión ya revocada conserva su fecha original.
func (r *SessionRepository) Revoke(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	if sess.RevokedAt == nil {
		sess.RevokedAt = &at
		r.s.sessions[id] = sess
	}
	return nil
}
