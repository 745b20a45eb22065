package repository

import (
	"context"

	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	// GetByIDForUpdate obtiene el cliente y bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Customer, error)
	// Update actualiza datos de perfil y rol; no toca Wallet ni PasswordHash.
	Update(ctx context.Context, customer *entity.Customer) error
	// UpdateWallet fija el saldo de la billetera (solo el motor de pedidos).
	UpdateWallet(ctx context.Context, id string, wallet decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
