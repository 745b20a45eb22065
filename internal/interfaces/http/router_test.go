package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mercado-api/internal/application/auth"
	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/application/ordering"
	"github.com/jhoicas/Mercado-api/internal/application/usecase"
	"github.com/jhoicas/Mercado-api/internal/infrastructure/events"
	"github.com/jhoicas/Mercado-api/internal/infrastructure/memory"
	httpapi "github.com/jhoicas/Mercado-api/internal/interfaces/http"
	"github.com/jhoicas/Mercado-api/pkg/config"
	"github.com/jhoicas/Mercado-api/pkg/logger"
)

const (
	cookieName    = "session_token"
	adminEmail    = "admin@mercado.test"
	adminPassword = "admin-password"
)

type pdfStub struct{}

func (pdfStub) GenerateReceipt(ordering.Receipt) ([]byte, error) { return []byte("%PDF-1.4"), nil }

type testServer struct {
	app   *fiber.App
	repos memory.Repositories
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	authUC := auth.NewAuthUseCase(repos.Customers, repos.Sessions, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "mercado-test"})
	require.NoError(t, authUC.EnsureStaff(context.Background(), adminEmail, adminPassword))

	orderUC := ordering.NewOrderUseCase(repos.Tx, repos.Orders, repos.Customers, repos.Products,
		events.NopPublisher{}, pdfStub{},
		ordering.Config{RebateAmount: decimal.NewFromInt(500), RebateRecipient: config.RebateRecipientActor},
		logger.Nop())

	app := fiber.New()
	httpapi.Router(app, httpapi.RouterDeps{
		CategoryUC:     usecase.NewCategoryUseCase(repos.Categories),
		CountryUC:      usecase.NewCountryUseCase(repos.Countries),
		ManufacturerUC: usecase.NewManufacturerUseCase(repos.Manufacturers, repos.Countries),
		ProductUC:      usecase.NewProductUseCase(repos.Products, repos.Manufacturers, repos.Categories),
		OrderUC:        orderUC,
		AuthUC:         authUC,
		Cookie:         httpapi.SessionCookie{Name: cookieName, ExpMinutes: 60},
	})
	return testServer{app: app, repos: repos}
}

func (s testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func amount(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s testServer) signIn(t *testing.T, email, password string) dto.SignInResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/sign_in", "", dto.SignInRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.SignInResponse](t, resp)
}

func (s testServer) signUp(t *testing.T, email string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/sign_up", "", dto.SignUpRequest{
		Email: email, Password: "secret-123", FirstName: "Ana", LastName: "Pérez",
		Phone: "3001234567", BirthDate: "1990-05-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return s.signIn(t, email, "secret-123").Token
}

// seedProduct crea país, fabricante, categoría y un producto "milk" con el token staff.
func (s testServer) seedProduct(t *testing.T, staffToken string, price int64) dto.ProductResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/country", staffToken, dto.CreateCountryRequest{Name: "Colombia"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	country := decode[dto.CountryResponse](t, resp)

	resp = s.do(t, http.MethodPost, "/manufacturer", staffToken, map[string]any{
		"name": "Alpina", "country_id": country.ID, "address": "Calle 1", "email": "ventas@alpina.test",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	manufacturer := decode[dto.ManufacturerResponse](t, resp)

	resp = s.do(t, http.MethodPost, "/category", staffToken, dto.CreateCategoryRequest{Name: "Lácteos"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	category := decode[dto.CategoryResponse](t, resp)

	resp = s.do(t, http.MethodPost, "/products", staffToken, dto.CreateProductRequest{
		Name: "milk", Price: amount(price), ManufacturerID: manufacturer.ID, CategoryID: category.ID,
		Value: amount(1), Unit: "l", ManufacturingDate: "2026-01-01", ExpiredDate: "2026-02-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/profile", "no-es-un-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAuthMiddleware_FormatoIncorrecto(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignIn_EmiteCookieYAutenticaConElla(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/sign_in", "", dto.SignInRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			session = c
		}
	}
	require.NotNil(t, session, "sign_in debe emitir la cookie de sesión")
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: session.Value})
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decode[dto.CustomerResponse](t, resp)
	assert.Equal(t, adminEmail, profile.Email)
	assert.True(t, profile.IsStaff)
}

func TestSignIn_CredencialesInvalidas(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/sign_in", "", dto.SignInRequest{Email: adminEmail, Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignOut_RevocaLaSesion(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t, adminEmail, adminPassword).Token

	resp := s.do(t, http.MethodGet, "/sign_out", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "el token de una sesión cerrada no debe servir")
}

func TestSignUp_EmailDuplicado(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "ana@example.com")

	resp := s.do(t, http.MethodPost, "/sign_up", "", dto.SignUpRequest{
		Email: "ANA@example.com", Password: "secret-123", FirstName: "Ana", LastName: "P",
		Phone: "1", BirthDate: "1990-05-01",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSignUp_ValidacionDevuelveCampos(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/sign_up", "", map[string]string{"email": "no-es-email", "password": "corta"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "email")
	assert.Contains(t, body.Fields, "password")
	assert.Contains(t, body.Fields, "birth_date")
}

func TestCatalogo_NoStaffNoPuedeModificar(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "ana@example.com")

	resp := s.do(t, http.MethodPost, "/category", token, dto.CreateCategoryRequest{Name: "Panadería"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/category", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.CategoryResponse](t, resp))
}

func TestCatalogo_SinSesionNoPuedeModificar(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/country", "", dto.CreateCountryRequest{Name: "Perú"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCategoria_CicloCompleto(t *testing.T) {
	s := newTestServer(t)
	staff := s.signIn(t, adminEmail, adminPassword).Token

	resp := s.do(t, http.MethodPost, "/category", staff, dto.CreateCategoryRequest{Name: "Lácteos"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CategoryResponse](t, resp)

	resp = s.do(t, http.MethodGet, "/category/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lácteos", decode[dto.CategoryResponse](t, resp).Name)

	resp = s.do(t, http.MethodPatch, "/category/"+created.ID, staff, map[string]string{"name": "Quesos"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Quesos", decode[dto.CategoryResponse](t, resp).Name)

	resp = s.do(t, http.MethodDelete, "/category/"+created.ID, staff, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/category/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategoria_IDMalformadoEsNotFound(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/category/no-es-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductos_BusquedaYOrden(t *testing.T) {
	s := newTestServer(t)
	staff := s.signIn(t, adminEmail, adminPassword).Token
	milk := s.seedProduct(t, staff, 80)

	resp := s.do(t, http.MethodPost, "/products", staff, dto.CreateProductRequest{
		Name: "bread", Price: amount(30), ManufacturerID: milk.ManufacturerID, CategoryID: milk.CategoryID,
		Value: amount(500), Unit: "g", ManufacturingDate: "2026-01-01", ExpiredDate: "2026-01-05",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/products?search=milk", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	found := decode[[]dto.ProductResponse](t, resp)
	require.Len(t, found, 1)
	assert.Equal(t, "milk", found[0].Name)
	assert.Equal(t, "Alpina", found[0].Manufacturer)
	assert.Equal(t, "Lácteos", found[0].Category)

	resp = s.do(t, http.MethodGet, "/products?search=MILK", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.ProductResponse](t, resp), "la búsqueda distingue mayúsculas")

	resp = s.do(t, http.MethodGet, "/products?order_by=-price", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sorted := decode[[]dto.ProductResponse](t, resp)
	require.Len(t, sorted, 2)
	assert.Equal(t, "milk", sorted[0].Name)

	resp = s.do(t, http.MethodGet, "/products?order_by=password", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductos_SinPrecioEsValidacion(t *testing.T) {
	s := newTestServer(t)
	staff := s.signIn(t, adminEmail, adminPassword).Token
	milk := s.seedProduct(t, staff, 80)

	resp := s.do(t, http.MethodPost, "/products", staff, map[string]string{
		"name": "agua", "manufacturer_id": milk.ManufacturerID, "category_id": milk.CategoryID,
		"unit": "l", "manufacturing_date": "2026-01-01", "expired_date": "2026-06-01",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, body.Fields, "price")
	assert.Contains(t, body.Fields, "value")

	resp = s.do(t, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ProductResponse](t, resp), 1)
}

func TestCategoria_ReferenciadaNoSeBorra(t *testing.T) {
	s := newTestServer(t)
	staff := s.signIn(t, adminEmail, adminPassword).Token
	milk := s.seedProduct(t, staff, 80)

	resp := s.do(t, http.MethodDelete, "/category/"+milk.CategoryID, staff, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPedidos_ElClienteSaleDelToken(t *testing.T) {
	s := newTestServer(t)
	staff := s.signIn(t, adminEmail, adminPassword)
	milk := s.seedProduct(t, staff.Token, 80)
	token := s.signUp(t, "ana@example.com")

	resp := s.do(t, http.MethodPost, "/orders", token, map[string]string{
		"product_id": milk.ID, "delivery_address": "Calle 10 #5-20", "customer_id": staff.Customer.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, "ana@example.com", order.Customer)
	assert.Equal(t, "3001234567", order.PhoneCustomer)
	assert.Equal(t, "pending", order.Status)
	assert.True(t, order.FinalPrice.Equal(decimal.NewFromInt(80)), "billetera vacía: se paga el precio completo")

	resp = s.do(t, http.MethodGet, "/orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.OrderResponse](t, resp), 1)

	resp = s.do(t, http.MethodGet, "/orders", staff.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.OrderResponse](t, resp), "el staff no ve pedidos ajenos en /orders")
}

func TestPedidos_BilleteraCubreParte(t *testing.T) {
	s := newTestServer(t)
	staff := s.signIn(t, adminEmail, adminPassword).Token
	milk := s.seedProduct(t, staff, 80)
	token := s.signUp(t, "ana@example.com")

	profile := decode[dto.CustomerResponse](t, s.do(t, http.MethodGet, "/profile", token, nil))
	require.NoError(t, s.repos.Customers.UpdateWallet(context.Background(), profile.ID, decimal.NewFromInt(30)))

	resp := s.do(t, http.MethodPost, "/orders", token, dto.CreateOrderRequest{ProductID: milk.ID, DeliveryAddress: "Calle 10"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode[dto.OrderResponse](t, resp)
	assert.True(t, order.FinalPrice.Equal(decimal.NewFromInt(50)))

	profile = decode[dto.CustomerResponse](t, s.do(t, http.MethodGet, "/profile", token, nil))
	assert.True(t, profile.Wallet.IsZero())

	product := decode[dto.ProductResponse](t, s.do(t, http.MethodGet, "/products/"+milk.ID, "", nil))
	assert.True(t, product.Price.Equal(decimal.NewFromInt(80)), "el precio del producto no cambia")
}

func TestPedidos_ValidacionSinCambios(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "ana@example.com")

	resp := s.do(t, http.MethodPost, "/orders", token, map[string]string{"delivery_address": "Calle 10"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "product_id")
}

func TestPedidos_EntregaPagaBonificacionAlActor(t *testing.T) {
	s := newTestServer(t)
	staff := s.signIn(t, adminEmail, adminPassword)
	milk := s.seedProduct(t, staff.Token, 80)
	token := s.signUp(t, "ana@example.com")

	order := decode[dto.OrderResponse](t, s.do(t, http.MethodPost, "/orders", token,
		dto.CreateOrderRequest{ProductID: milk.ID, DeliveryAddress: "Calle 10"}))

	resp := s.do(t, http.MethodPatch, "/orders/"+order.ID, token, map[string]string{"status": "delivery"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo staff cambia estados")

	resp = s.do(t, http.MethodPatch, "/orders/"+order.ID, staff.Token, map[string]string{"status": "delivery"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "delivery", decode[dto.OrderResponse](t, resp).Status)

	resp = s.do(t, http.MethodPatch, "/orders/"+order.ID, staff.Token, map[string]string{"status": "delivery"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	admin := decode[dto.CustomerResponse](t, s.do(t, http.MethodGet, "/profile", staff.Token, nil))
	assert.True(t, admin.Wallet.Equal(decimal.NewFromInt(500)), "la bonificación se paga una sola vez")

	resp = s.do(t, http.MethodPatch, "/orders/"+order.ID, staff.Token, map[string]string{"status": "en-camino"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPedidos_TransicionNoPermitidaEsConflicto(t *testing.T) {
	s := newTestServer(t)
	staff := s.signIn(t, adminEmail, adminPassword).Token
	milk := s.seedProduct(t, staff, 80)
	token := s.signUp(t, "ana@example.com")

	order := decode[dto.OrderResponse](t, s.do(t, http.MethodPost, "/orders", token,
		dto.CreateOrderRequest{ProductID: milk.ID, DeliveryAddress: "Calle 10"}))

	resp := s.do(t, http.MethodPatch, "/orders/"+order.ID, staff, map[string]string{"status": "delivery"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodPatch, "/orders/"+order.ID, staff, map[string]string{"status": "pending"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.do(t, http.MethodPatch, "/orders/"+order.ID, staff, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodPatch, "/orders/"+order.ID, staff, map[string]string{"status": "canceled"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "completed es un estado final")

	got := decode[dto.OrderResponse](t, s.do(t, http.MethodGet, "/orders/"+order.ID, "", nil))
	assert.Equal(t, "completed", got.Status)
}

func TestPedidos_ConsultaPublicaYRecibo(t *testing.T) {
	s := newTestServer(t)
	staff := s.signIn(t, adminEmail, adminPassword).Token
	milk := s.seedProduct(t, staff, 80)
	token := s.signUp(t, "ana@example.com")
	other := s.signUp(t, "otro@example.com")

	order := decode[dto.OrderResponse](t, s.do(t, http.MethodPost, "/orders", token,
		dto.CreateOrderRequest{ProductID: milk.ID, DeliveryAddress: "Calle 10"}))

	resp := s.do(t, http.MethodGet, "/orders/"+order.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/orders/"+order.ID+"/receipt", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = s.do(t, http.MethodGet, "/orders/"+order.ID+"/receipt", other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodDelete, "/orders/"+order.ID, staff, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = s.do(t, http.MethodGet, "/orders/"+order.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
