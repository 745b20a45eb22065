package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Mercado-api/internal/domain/entity"
)

// SessionRepository persistencia de sesiones de login.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}
