package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.CountryRepository  = (*CountryRepo)(nil)
)

// namedRepo CRUD compartido por tablas (id, name, created_at, updated_at): categories y countries.
type namedRepo struct {
	q     Querier
	table string
}

type namedRow struct {
	ID, Name             string
	CreatedAt, UpdatedAt time.Time
}

func (r namedRepo) create(ctx context.Context, id, name string, createdAt, updatedAt time.Time) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO `+r.table+` (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		id, name, createdAt, updatedAt)
	if err != nil {
		return writeErr("insert "+r.table, err)
	}
	return nil
}

func (r namedRepo) get(ctx context.Context, id string) (*namedRow, error) {
	var row namedRow
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM `+r.table+` WHERE id = $1`, id,
	).Scan(&row.ID, &row.Name, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.table, err)
	}
	return &row, nil
}

func (r namedRepo) list(ctx context.Context, opts repository.ListOptions) ([]namedRow, error) {
	sql, args := listQuery{
		base:       `SELECT id, name, created_at, updated_at FROM ` + r.table,
		searchCols: []string{"name"},
		sortCols:   map[string]string{"id": "id", "name": "name", "created_at": "created_at"},
		defaultBy:  "created_at, id",
	}.build(opts)
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()
	var list []namedRow
	for rows.Next() {
		var row namedRow
		if err := rows.Scan(&row.ID, &row.Name, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func (r namedRepo) update(ctx context.Context, id, name string, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE `+r.table+` SET name = $2, updated_at = $3 WHERE id = $1`, id, name, updatedAt)
	if err != nil {
		return writeErr("update "+r.table, err)
	}
	return affectedOne(tag)
}

func (r namedRepo) delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	if err != nil {
		return writeErr("delete "+r.table, err)
	}
	return affectedOne(tag)
}

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct{ r namedRepo }

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{r: namedRepo{q: q, table: "categories"}}
}

func (c *CategoryRepo) Create(ctx context.Context, e *entity.Category) error {
	return c.r.create(ctx, e.ID, e.Name, e.CreatedAt, e.UpdatedAt)
}

func (c *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	row, err := c.r.get(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	return &entity.Category{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}, nil
}

func (c *CategoryRepo) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Category, error) {
	rows, err := c.r.list(ctx, opts)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Category{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt})
	}
	return out, nil
}

func (c *CategoryRepo) Update(ctx context.Context, e *entity.Category) error {
	return c.r.update(ctx, e.ID, e.Name, e.UpdatedAt)
}

// Delete devuelve ErrConflict si algún producto la referencia.
func (c *CategoryRepo) Delete(ctx context.Context, id string) error {
	return c.r.delete(ctx, id)
}

// CountryRepo implementación de CountryRepository sobre PostgreSQL.
type CountryRepo struct{ r namedRepo }

// NewCountryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountryRepository(q Querier) *CountryRepo {
	return &CountryRepo{r: namedRepo{q: q, table: "countries"}}
}

func (c *CountryRepo) Create(ctx context.Context, e *entity.Country) error {
	return c.r.create(ctx, e.ID, e.Name, e.CreatedAt, e.UpdatedAt)
}

func (c *CountryRepo) GetByID(ctx context.Context, id string) (*entity.Country, error) {
	row, err := c.r.get(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	return &entity.Country{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt}, nil
}

func (c *CountryRepo) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Country, error) {
	rows, err := c.r.list(ctx, opts)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Country, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Country{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt})
	}
	return out, nil
}

func (c *CountryRepo) Update(ctx context.Context, e *entity.Country) error {
	return c.r.update(ctx, e.ID, e.Name, e.UpdatedAt)
}

// Delete devuelve ErrConflict si algún fabricante lo referencia.
func (c *CountryRepo) Delete(ctx context.Context, id string) error {
	return c.r.delete(ctx, id)
}
