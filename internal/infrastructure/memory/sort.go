package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Mercado-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type compareFunc[T any] func(a, b T) int

// sortItems ordena según s; sin campo, por fecha de creación e id (igual que el adaptador SQL).
func sortItems[T any](items []T, s repository.Sort, fields map[string]compareFunc[T], createdAt func(T) time.Time, id func(T) string) {
	primary, ok := fields[s.Field]
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ok {
			c := primary(a, b)
			if s.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		if c := createdAt(a).Compare(createdAt(b)); c != 0 {
			return c < 0
		}
		return id(a) < id(b)
	})
}

func byString[T any](f func(T) string) compareFunc[T] {
	return func(a, b T) int { return strings.Compare(f(a), f(b)) }
}

func byDecimal[T any](f func(T) decimal.Decimal) compareFunc[T] {
	return func(a, b T) int { return f(a).Cmp(f(b)) }
}

func byTime[T any](f func(T) time.Time) compareFunc[T] {
	return func(a, b T) int { return f(a).Compare(f(b)) }
}

// matches búsqueda por subcadena sensible a mayúsculas; search vacío acepta todo.
func matches(search string, values ...string) bool {
	if search == "" {
		return true
	}
	for _, v := range values {
		if strings.Contains(v, search) {
			return true
		}
	}
	return false
}
