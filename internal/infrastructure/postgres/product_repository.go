package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.manufacturer_id, m.name, p.category_id, c.name,
		p.value, p.unit, p.manufacturing_date, p.expired_date, p.image, p.created_at, p.updated_at
	FROM products p
	JOIN manufacturers m ON m.id = p.manufacturer_id
	JOIN categories c ON c.id = p.category_id`

// Create persiste un nuevo producto. Fabricante o categoría inexistentes -> ErrConflict.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, manufacturer_id, category_id, value, unit,
			manufacturing_date, expired_date, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.ManufacturerID, p.CategoryID, p.Value, p.Unit,
		p.ManufacturingDate, p.ExpiredDate, p.Image, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con nombres de fabricante y categoría.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List busca en nombre o descripción.
func (r *ProductRepo) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Product, error) {
	sql, args := listQuery{
		base:       productSelect,
		searchCols: []string{"p.name", "p.description"},
		sortCols: map[string]string{
			"id":                 "p.id",
			"name":               "p.name",
			"price":              "p.price",
			"manufacturing_date": "p.manufacturing_date",
			"expired_date":       "p.expired_date",
			"created_at":         "p.created_at",
		},
		defaultBy: "p.created_at, p.id",
	}.build(opts)
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, manufacturer_id = $5, category_id = $6,
			value = $7, unit = $8, manufacturing_date = $9, expired_date = $10, image = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.ManufacturerID, p.CategoryID,
		p.Value, p.Unit, p.ManufacturingDate, p.ExpiredDate, p.Image, p.UpdatedAt,
	)
	if err != nil {
		return writeErr("update product", err)
	}
	return affectedOne(tag)
}

// Delete elimina un producto; con pedidos asociados devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return writeErr("delete product", err)
	}
	return affectedOne(tag)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ManufacturerID, &p.ManufacturerName, &p.CategoryID, &p.CategoryName,
		&p.Value, &p.Unit, &p.ManufacturingDate, &p.ExpiredDate, &p.Image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
