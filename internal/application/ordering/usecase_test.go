package ordering_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/application/ordering"
	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/infrastructure/memory"
	"github.com/jhoicas/Mercado-api/pkg/config"
	"github.com/jhoicas/Mercado-api/pkg/logger"
)

const (
	productID  = "11111111-1111-1111-1111-111111111111"
	customerID = "22222222-2222-2222-2222-222222222222"
	staffID    = "33333333-3333-3333-3333-333333333333"
	otherID    = "44444444-4444-4444-4444-444444444444"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ordering.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev ordering.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type fakeReceipts struct{ last ordering.Receipt }

func (f *fakeReceipts) GenerateReceipt(r ordering.Receipt) ([]byte, error) {
	f.last = r
	return []byte("%PDF"), nil
}

type env struct {
	uc        *ordering.OrderUseCase
	repos     memory.Repositories
	publisher *recordingPublisher
	receipts  *fakeReceipts
	customer  entity.Principal
	staff     entity.Principal
}

func newEnv(t *testing.T, wallet, price int64, recipient string) env {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	now := time.Now()

	require.NoError(t, repos.Countries.Create(ctx, &entity.Country{ID: "c", Name: "Colombia", CreatedAt: now}))
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "cat", Name: "Lácteos", CreatedAt: now}))
	require.NoError(t, repos.Manufacturers.Create(ctx, &entity.Manufacturer{ID: "m", Name: "Alpina", CountryID: "c", CreatedAt: now}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: productID, Name: "milk", Price: decimal.NewFromInt(price),
		ManufacturerID: "m", CategoryID: "cat", Value: decimal.NewFromInt(1), Unit: "l", CreatedAt: now,
	}))
	for _, c := range []entity.Customer{
		{ID: customerID, Email: "ana@example.com", FirstName: "Ana", Phone: "3001234567", Wallet: decimal.NewFromInt(wallet), CreatedAt: now},
		{ID: staffID, Email: "admin@example.com", IsStaff: true, Wallet: decimal.Zero, CreatedAt: now},
		{ID: otherID, Email: "otro@example.com", Wallet: decimal.NewFromInt(1000), CreatedAt: now},
	} {
		c := c
		require.NoError(t, repos.Customers.Create(ctx, &c))
	}

	pub := &recordingPublisher{}
	rec := &fakeReceipts{}
	uc := ordering.NewOrderUseCase(repos.Tx, repos.Orders, repos.Customers, repos.Products, pub, rec,
		ordering.Config{RebateAmount: decimal.NewFromInt(500), RebateRecipient: recipient}, logger.Nop())

	return env{
		uc:        uc,
		repos:     repos,
		publisher: pub,
		receipts:  rec,
		customer:  entity.Principal{CustomerID: customerID, SessionID: "s1"},
		staff:     entity.Principal{CustomerID: staffID, SessionID: "s2", IsStaff: true},
	}
}

func (e env) wallet(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	c, err := e.repos.Customers.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c.Wallet
}

func (e env) place(t *testing.T) *dto.OrderResponse {
	t.Helper()
	out, err := e.uc.PlaceOrder(context.Background(), e.customer, dto.CreateOrderRequest{ProductID: productID, DeliveryAddress: "Calle 1 # 2-3"})
	require.NoError(t, err)
	return out
}

func ptr(s string) *string { return &s }

func TestPlaceOrder_Escenarios(t *testing.T) {
	cases := []struct {
		name       string
		wallet     int64
		price      int64
		wantWallet int64
		wantDue    int64
	}{
		{"billetera cubre y sobra", 100, 80, 20, 0},
		{"billetera insuficiente", 30, 80, 0, 50},
		{"billetera exacta", 80, 80, 0, 0},
		{"billetera vacía", 0, 80, 0, 80},
		{"producto gratis", 40, 0, 40, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t, tc.wallet, tc.price, config.RebateRecipientActor)
			out := e.place(t)

			assert.True(t, out.FinalPrice.Equal(decimal.NewFromInt(tc.wantDue)), "final_price=%s", out.FinalPrice)
			assert.True(t, e.wallet(t, customerID).Equal(decimal.NewFromInt(tc.wantWallet)))
			assert.Equal(t, "pending", out.Status)
			assert.Equal(t, "milk", out.Product)
			assert.Equal(t, "ana@example.com", out.Customer)
			assert.Equal(t, "3001234567", out.PhoneCustomer)

			p, err := e.repos.Products.GetByID(context.Background(), productID)
			require.NoError(t, err)
			assert.True(t, p.Price.Equal(decimal.NewFromInt(tc.price)), "el precio de catálogo no cambia")
		})
	}
}

func TestPlaceOrder_ClienteSiempreEsElPrincipal(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	out := e.place(t)

	assert.Equal(t, customerID, out.CustomerID)
	assert.True(t, e.wallet(t, otherID).Equal(decimal.NewFromInt(1000)), "otro cliente no se toca")
	require.Len(t, e.publisher.events, 1)
	assert.Equal(t, ordering.EventOrderPlaced, e.publisher.events[0].Type)
	assert.True(t, e.publisher.events[0].WalletApplied.Equal(decimal.NewFromInt(80)))
}

func TestPlaceOrder_ProductoInexistente(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	_, err := e.uc.PlaceOrder(context.Background(), e.customer, dto.CreateOrderRequest{
		ProductID: "99999999-9999-9999-9999-999999999999", DeliveryAddress: "Calle 1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, e.wallet(t, customerID).Equal(decimal.NewFromInt(100)))
}

func TestPlaceOrder_ValidaAntesDeEscribir(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	_, err := e.uc.PlaceOrder(context.Background(), e.customer, dto.CreateOrderRequest{ProductID: "no-uuid"})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "product_id")
	assert.Contains(t, verr.Fields, "delivery_address")
	assert.True(t, e.wallet(t, customerID).Equal(decimal.NewFromInt(100)))
	assert.Empty(t, e.publisher.events)
}

func TestPlaceOrder_FalloDePublicacionNoRevierte(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	e.publisher.err = errors.New("broker caído")
	out := e.place(t)

	got, err := e.uc.Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
}

func TestPlaceOrder_Concurrente_BilleteraNuncaNegativa(t *testing.T) {
	const (
		initial = 1000
		price   = 80
		workers = 25
	)
	e := newEnv(t, initial, price, config.RebateRecipientActor)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		dueSum  = decimal.Zero
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := e.uc.PlaceOrder(context.Background(), e.customer, dto.CreateOrderRequest{ProductID: productID, DeliveryAddress: "Calle 1"})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			dueSum = dueSum.Add(out.FinalPrice)
			created++
			mu.Unlock()
		}()
	}
	wg.Wait()

	w := e.wallet(t, customerID)
	assert.False(t, w.IsNegative())
	assert.Equal(t, workers, created)
	// lo pagado con billetera más lo pendiente es exactamente el total de los pedidos
	paidFromWallet := decimal.NewFromInt(initial).Sub(w)
	assert.True(t, paidFromWallet.Add(dueSum).Equal(decimal.NewFromInt(price*workers)),
		"billetera=%s pendiente=%s", w, dueSum)
	assert.True(t, w.IsZero())
}

func TestUpdateOrderStatus_NoStaffProhibidoSinCambios(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	out := e.place(t)

	_, err := e.uc.UpdateOrderStatus(context.Background(), e.customer, out.ID, dto.PatchOrderRequest{Status: ptr("delivery")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := e.uc.Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
	assert.True(t, e.wallet(t, customerID).Equal(decimal.NewFromInt(20)))
}

func TestUpdateOrderStatus_BonificacionAlActor(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	out := e.place(t)

	got, err := e.uc.UpdateOrderStatus(context.Background(), e.staff, out.ID, dto.PatchOrderRequest{Status: ptr("delivery")})
	require.NoError(t, err)
	assert.Equal(t, "delivery", got.Status)
	assert.True(t, e.wallet(t, staffID).Equal(decimal.NewFromInt(500)))
	assert.True(t, e.wallet(t, customerID).Equal(decimal.NewFromInt(20)))

	// reescribir el mismo estado no vuelve a bonificar
	_, err = e.uc.UpdateOrderStatus(context.Background(), e.staff, out.ID, dto.PatchOrderRequest{Status: ptr("delivery")})
	require.NoError(t, err)
	assert.True(t, e.wallet(t, staffID).Equal(decimal.NewFromInt(500)))

	last := e.publisher.events[len(e.publisher.events)-1]
	assert.Equal(t, ordering.EventOrderStatusChanged, last.Type)
	assert.Equal(t, staffID, last.RebateTo)
}

func TestUpdateOrderStatus_BonificacionAlCliente(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientCustomer)
	out := e.place(t)

	_, err := e.uc.UpdateOrderStatus(context.Background(), e.staff, out.ID, dto.PatchOrderRequest{Status: ptr("delivery")})
	require.NoError(t, err)
	assert.True(t, e.wallet(t, customerID).Equal(decimal.NewFromInt(520)))
	assert.True(t, e.wallet(t, staffID).IsZero())
}

func TestUpdateOrderStatus_SinEntregaNoBonifica(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	out := e.place(t)

	got, err := e.uc.UpdateOrderStatus(context.Background(), e.staff, out.ID, dto.PatchOrderRequest{
		Status:          ptr("processing"),
		DeliveryAddress: ptr("Carrera 7"),
		PhoneCustomer:   ptr("3110000000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "processing", got.Status)
	assert.Equal(t, "Carrera 7", got.DeliveryAddress)
	assert.Equal(t, "3110000000", got.PhoneCustomer)
	assert.True(t, e.wallet(t, staffID).IsZero())
}

func TestUpdateOrderStatus_TransicionInvalida(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	out := e.place(t)

	_, err := e.uc.UpdateOrderStatus(context.Background(), e.staff, out.ID, dto.PatchOrderRequest{Status: ptr("canceled")})
	require.NoError(t, err)

	_, err = e.uc.UpdateOrderStatus(context.Background(), e.staff, out.ID, dto.PatchOrderRequest{Status: ptr("delivery")})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, e.wallet(t, staffID).IsZero())
}

func TestUpdateOrderStatus_EstadoDesconocido(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	out := e.place(t)

	_, err := e.uc.UpdateOrderStatus(context.Background(), e.staff, out.ID, dto.PatchOrderRequest{Status: ptr("shipped")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateOrderStatus_CambiaCliente(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	out := e.place(t)

	got, err := e.uc.UpdateOrderStatus(context.Background(), e.staff, out.ID, dto.PatchOrderRequest{CustomerID: ptr(otherID)})
	require.NoError(t, err)
	assert.Equal(t, otherID, got.CustomerID)
	assert.Equal(t, "otro@example.com", got.Customer)

	_, err = e.uc.UpdateOrderStatus(context.Background(), e.staff, out.ID, dto.PatchOrderRequest{CustomerID: ptr("55555555-5555-5555-5555-555555555555")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateOrderStatus_PedidoInexistente(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	_, err := e.uc.UpdateOrderStatus(context.Background(), e.staff, "99999999-9999-9999-9999-999999999999", dto.PatchOrderRequest{Status: ptr("delivery")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.uc.UpdateOrderStatus(context.Background(), e.staff, "no-uuid", dto.PatchOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOwn_SoloPedidosPropios(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	e.place(t)
	_, err := e.uc.PlaceOrder(context.Background(), entity.Principal{CustomerID: otherID}, dto.CreateOrderRequest{ProductID: productID, DeliveryAddress: "Otra"})
	require.NoError(t, err)

	list, err := e.uc.ListOwn(context.Background(), e.customer, dto.ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, customerID, list[0].CustomerID)

	list, err = e.uc.ListOwn(context.Background(), e.customer, dto.ListQuery{Search: "Otra"})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = e.uc.ListOwn(context.Background(), e.customer, dto.ListQuery{OrderBy: "customer_id"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_SoloStaff(t *testing.T) {
	e := newEnv(t, 100, 80, config.RebateRecipientActor)
	out := e.place(t)

	assert.ErrorIs(t, e.uc.Delete(context.Background(), e.customer, out.ID), domain.ErrForbidden)
	require.NoError(t, e.uc.Delete(context.Background(), e.staff, out.ID))
	_, err := e.uc.Get(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceipt_DuenoOStaff(t *testing.T) {
	e := newEnv(t, 30, 80, config.RebateRecipientActor)
	out := e.place(t)

	pdf, err := e.uc.Receipt(context.Background(), e.customer, out.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "Ana", e.receipts.last.CustomerName)
	assert.Equal(t, "1 l", e.receipts.last.ProductValue)
	assert.True(t, e.receipts.last.FinalPrice.Equal(decimal.NewFromInt(50)))

	_, err = e.uc.Receipt(context.Background(), e.staff, out.ID)
	require.NoError(t, err)

	_, err = e.uc.Receipt(context.Background(), entity.Principal{CustomerID: otherID}, out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
