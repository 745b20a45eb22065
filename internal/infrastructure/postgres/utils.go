package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// writeErr traduce errores de escritura: 23503 -> ErrConflict, 23505 -> ErrDuplicate.
func writeErr(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return domain.ErrConflict
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// affectedOne devuelve ErrNotFound si la sentencia no tocó ninguna fila.
func affectedOne(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// listQuery completa un SELECT con el filtro de búsqueda y el orden.
// searchCols se comparan con strpos (subcadena sensible a mayúsculas); sortCols mapea
// el campo público a su columna, así nunca se interpola texto del cliente.
type listQuery struct {
	base       string
	where      []string
	args       []any
	searchCols []string
	sortCols   map[string]string
	defaultBy  string
}

func (l listQuery) build(opts repository.ListOptions) (string, []any) {
	where := append([]string{}, l.where...)
	args := append([]any{}, l.args...)
	if opts.Search != "" && len(l.searchCols) > 0 {
		args = append(args, opts.Search)
		ph := fmt.Sprintf("$%d", len(args))
		ors := make([]string, 0, len(l.searchCols))
		for _, col := range l.searchCols {
			ors = append(ors, fmt.Sprintf("strpos(%s, %s) > 0", col, ph))
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	var sb strings.Builder
	sb.WriteString(l.base)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY ")
	if col, ok := l.sortCols[opts.Sort.Field]; ok {
		sb.WriteString(col)
		if opts.Sort.Desc {
			sb.WriteString(" DESC")
		}
		sb.WriteString(", ")
	}
	sb.WriteString(l.defaultBy)
	return sb.String(), args
}
