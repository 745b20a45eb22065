package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
)

func TestListQuery_BusquedaYOrden(t *testing.T) {
	q := listQuery{
		base:       "SELECT * FROM orders o",
		where:      []string{"o.customer_id = $1"},
		args:       []any{"c-1"},
		searchCols: []string{"o.delivery_address"},
		sortCols:   map[string]string{"final_price": "o.final_price"},
		defaultBy:  "o.created_at, o.id",
	}

	sql, args := q.build(repository.ListOptions{Search: "Calle", Sort: repository.Sort{Field: "final_price", Desc: true}})
	assert.Equal(t, "SELECT * FROM orders o WHERE o.customer_id = $1 AND (strpos(o.delivery_address, $2) > 0) ORDER BY o.final_price DESC, o.created_at, o.id", sql)
	assert.Equal(t, []any{"c-1", "Calle"}, args)
}

func TestListQuery_SinFiltros(t *testing.T) {
	q := listQuery{
		base:       "SELECT * FROM products p",
		searchCols: []string{"p.name", "p.description"},
		sortCols:   map[string]string{"name": "p.name"},
		defaultBy:  "p.created_at, p.id",
	}

	sql, args := q.build(repository.ListOptions{})
	assert.Equal(t, "SELECT * FROM products p ORDER BY p.created_at, p.id", sql)
	assert.Empty(t, args)

	sql, args = q.build(repository.ListOptions{Search: "milk"})
	assert.Equal(t, "SELECT * FROM products p WHERE (strpos(p.name, $1) > 0 OR strpos(p.description, $1) > 0) ORDER BY p.created_at, p.id", sql)
	assert.Equal(t, []any{"milk"}, args)
}

func TestWriteErr(t *testing.T) {
	assert.ErrorIs(t, writeErr("x", &pgconn.PgError{Code: "23503"}), domain.ErrConflict)
	assert.ErrorIs(t, writeErr("x", fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})), domain.ErrDuplicate)

	other := errors.New("conexión cerrada")
	assert.ErrorIs(t, writeErr("insert", other), other)
}
