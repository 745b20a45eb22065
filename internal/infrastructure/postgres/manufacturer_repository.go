package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
)

var _ repository.ManufacturerRepository = (*ManufacturerRepo)(nil)

// ManufacturerRepo implementación de ManufacturerRepository (usable con pool o tx).
type ManufacturerRepo struct {
	q Querier
}

// NewManufacturerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewManufacturerRepository(q Querier) *ManufacturerRepo {
	return &ManufacturerRepo{q: q}
}

const manufacturerSelect = `
	SELECT m.id, m.name, m.country_id, c.name, m.address, m.email, m.created_at, m.updated_at
	FROM manufacturers m JOIN countries c ON c.id = m.country_id`

func (r *ManufacturerRepo) Create(ctx context.Context, m *entity.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (id, name, country_id, address, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.Name, m.CountryID, m.Address, m.Email, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return writeErr("insert manufacturer", err)
	}
	return nil
}

// GetByID obtiene un fabricante con el nombre de su país.
func (r *ManufacturerRepo) GetByID(ctx context.Context, id string) (*entity.Manufacturer, error) {
	m, err := scanManufacturer(r.q.QueryRow(ctx, manufacturerSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturer: %w", err)
	}
	return m, nil
}

func (r *ManufacturerRepo) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Manufacturer, error) {
	sql, args := listQuery{
		base:       manufacturerSelect,
		searchCols: []string{"m.name"},
		sortCols:   map[string]string{"id": "m.id", "name": "m.name", "email": "m.email", "created_at": "m.created_at"},
		defaultBy:  "m.created_at, m.id",
	}.build(opts)
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Manufacturer
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manufacturer: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *ManufacturerRepo) Update(ctx context.Context, m *entity.Manufacturer) error {
	query := `
		UPDATE manufacturers SET name = $2, country_id = $3, address = $4, email = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, m.ID, m.Name, m.CountryID, m.Address, m.Email, m.UpdatedAt)
	if err != nil {
		return writeErr("update manufacturer", err)
	}
	return affectedOne(tag)
}

func (r *ManufacturerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		return writeErr("delete manufacturer", err)
	}
	return affectedOne(tag)
}

func scanManufacturer(row pgx.Row) (*entity.Manufacturer, error) {
	var m entity.Manufacturer
	if err := row.Scan(&m.ID, &m.Name, &m.CountryID, &m.CountryName, &m.Address, &m.Email, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
