package repository

import (
	"strings"

	"github.com/jhoicas/Mercado-api/internal/domain"
)

// ListOptions filtros comunes de los listados: búsqueda por subcadena (sensible a mayúsculas) y orden.
type ListOptions struct {
	Search string
	Sort   Sort
}

// Sort orden de un listado. Field vacío = orden por defecto del recurso.
type Sort struct {
	Field string
	Desc  bool
}

// Campos ordenables por recurso.
var (
	CategorySortFields     = []string{"id", "name", "created_at"}
	CountrySortFields      = []string{"id", "name", "created_at"}
	ManufacturerSortFields = []string{"id", "name", "email", "created_at"}
	ProductSortFields      = []string{"id", "name", "price", "manufacturing_date", "expired_date", "created_at"}
	OrderSortFields        = []string{"id", "status", "final_price", "created_at"}
)

// ParseSort interpreta el parámetro order_by ("name", "-price"). Un prefijo "-" ordena descendente.
func ParseSort(raw string, allowed []string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Sort{}, nil
	}
	s := Sort{Field: raw}
	if strings.HasPrefix(raw, "-") {
		s = Sort{Field: raw[1:], Desc: true}
	}
	for _, f := range allowed {
		if f == s.Field {
			return s, nil
		}
	}
	return Sort{}, domain.NewValidationError("order_by", "campo no ordenable: "+s.Field)
}
