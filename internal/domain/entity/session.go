package entity

import "time"

// Session sesión abierta en /sign_in. Un token solo es válido mientras su sesión esté activa.
type Session struct {
	ID         string
	CustomerID string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	RevokedAt  *time.Time
}

// Active informa si la sesión sigue vigente en el instante now.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
