package entity

import "time"

// Country país de origen de un fabricante.
type Country struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
