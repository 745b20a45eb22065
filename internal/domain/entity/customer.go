package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente registrado de la tienda.
// Wallet es saldo a favor (>= 0); solo lo modifica el motor de liquidación de pedidos.
type Customer struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Phone        string
	BirthDate    time.Time
	IsStaff      bool
	IsSuperuser  bool
	Wallet       decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
