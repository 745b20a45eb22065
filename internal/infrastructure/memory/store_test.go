package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
	"github.com/jhoicas/Mercado-api/internal/infrastructure/memory"
)

type fixture struct {
	repos        memory.Repositories
	category     *entity.Category
	manufacturer *entity.Manufacturer
	customer     *entity.Customer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	now := time.Now()

	country := &entity.Country{ID: "c-1", Name: "Colombia", CreatedAt: now}
	require.NoError(t, repos.Countries.Create(ctx, country))
	category := &entity.Category{ID: "cat-1", Name: "Lácteos", CreatedAt: now}
	require.NoError(t, repos.Categories.Create(ctx, category))
	m := &entity.Manufacturer{ID: "m-1", Name: "Alpina", CountryID: country.ID, CreatedAt: now}
	require.NoError(t, repos.Manufacturers.Create(ctx, m))
	customer := &entity.Customer{ID: "u-1", Email: "ana@example.com", Wallet: decimal.NewFromInt(100), CreatedAt: now}
	require.NoError(t, repos.Customers.Create(ctx, customer))

	return fixture{repos: repos, category: category, manufacturer: m, customer: customer}
}

func (f fixture) product(t *testing.T, id, name, description string, price int64, created time.Time) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:             id,
		Name:           name,
		Description:    description,
		Price:          decimal.NewFromInt(price),
		ManufacturerID: f.manufacturer.ID,
		CategoryID:     f.category.ID,
		CreatedAt:      created,
	}
	require.NoError(t, f.repos.Products.Create(context.Background(), p))
	return p
}

func TestProductList_BuscaEnNombreYDescripcion(t *testing.T) {
	f := newFixture(t)
	base := time.Now()
	f.product(t, "p-1", "whole milk", "", 10, base)
	f.product(t, "p-2", "Yogurt", "made with milk", 20, base.Add(time.Second))
	f.product(t, "p-3", "Bread", "", 5, base.Add(2*time.Second))
	f.product(t, "p-4", "MILK powder", "", 7, base.Add(3*time.Second))

	list, err := f.repos.Products.List(context.Background(), repository.ListOptions{Search: "milk"})
	require.NoError(t, err)

	var ids []string
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p-1", "p-2"}, ids, "la búsqueda es sensible a mayúsculas")
	assert.Equal(t, "Alpina", list[0].ManufacturerName)
	assert.Equal(t, "Lácteos", list[0].CategoryName)
}

func TestProductList_OrdenaPorPrecioDescendente(t *testing.T) {
	f := newFixture(t)
	base := time.Now()
	f.product(t, "p-1", "a", "", 10, base)
	f.product(t, "p-2", "b", "", 30, base)
	f.product(t, "p-3", "c", "", 20, base)

	list, err := f.repos.Products.List(context.Background(), repository.ListOptions{Sort: repository.Sort{Field: "price", Desc: true}})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "p-2", list[0].ID)
	assert.Equal(t, "p-3", list[1].ID)
	assert.Equal(t, "p-1", list[2].ID)
}

func TestDelete_ReferenciadoDevuelveConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "p-1", "milk", "", 10, time.Now())

	assert.ErrorIs(t, f.repos.Categories.Delete(ctx, f.category.ID), domain.ErrConflict)
	assert.ErrorIs(t, f.repos.Manufacturers.Delete(ctx, f.manufacturer.ID), domain.ErrConflict)
	assert.ErrorIs(t, f.repos.Countries.Delete(ctx, "c-1"), domain.ErrConflict)

	require.NoError(t, f.repos.Orders.Create(ctx, &entity.Order{ID: "o-1", ProductID: "p-1", CustomerID: f.customer.ID}))
	assert.ErrorIs(t, f.repos.Products.Delete(ctx, "p-1"), domain.ErrConflict)
}

func TestCustomerDelete_EliminaPedidosYSesiones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "p-1", "milk", "", 10, time.Now())
	require.NoError(t, f.repos.Orders.Create(ctx, &entity.Order{ID: "o-1", ProductID: "p-1", CustomerID: f.customer.ID}))
	require.NoError(t, f.repos.Sessions.Create(ctx, &entity.Session{ID: "s-1", CustomerID: f.customer.ID}))

	require.NoError(t, f.repos.Customers.Delete(ctx, f.customer.ID))

	o, err := f.repos.Orders.GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Nil(t, o)
	s, err := f.repos.Sessions.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestCustomerCreate_EmailDuplicado(t *testing.T) {
	f := newFixture(t)
	err := f.repos.Customers.Create(context.Background(), &entity.Customer{ID: "u-2", Email: f.customer.Email})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCustomerUpdate_NoTocaBilletera(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	changed := *f.customer
	changed.FirstName = "Ana"
	changed.Wallet = decimal.NewFromInt(999999)
	require.NoError(t, f.repos.Customers.Update(ctx, &changed))

	got, err := f.repos.Customers.GetByID(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FirstName)
	assert.True(t, got.Wallet.Equal(decimal.NewFromInt(100)))
}

func TestTxRunner_RollbackRestauraBilletera(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := f.repos.Tx.RunOrdering(ctx, func(customers repository.CustomerRepository, _ repository.ProductRepository, _ repository.OrderRepository) error {
		require.NoError(t, customers.UpdateWallet(ctx, f.customer.ID, decimal.Zero))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := f.repos.Customers.GetByID(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.True(t, got.Wallet.Equal(decimal.NewFromInt(100)))
}

func TestSessionRevoke(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, f.repos.Sessions.Create(ctx, &entity.Session{ID: "s-1", CustomerID: f.customer.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))

	s, err := f.repos.Sessions.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.True(t, s.Active(now))

	require.NoError(t, f.repos.Sessions.Revoke(ctx, "s-1", now))
	s, err = f.repos.Sessions.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.False(t, s.Active(now))
}
