package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mercado-api/internal/application/auth"
	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/infrastructure/memory"
)

func newAuth(t *testing.T) (*auth.AuthUseCase, memory.Repositories) {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	uc := auth.NewAuthUseCase(repos.Customers, repos.Sessions, auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "mercado-test"})
	return uc, repos
}

func signUp(t *testing.T, uc *auth.AuthUseCase) *dto.CustomerResponse {
	t.Helper()
	out, err := uc.SignUp(context.Background(), dto.SignUpRequest{
		Email:     "Ana@Example.com",
		Password:  "secreto123",
		FirstName: "Ana",
		LastName:  "Pérez",
		Phone:     "3001234567",
		BirthDate: "1990-05-17",
	})
	require.NoError(t, err)
	return out
}

func TestSignUp_BilleteraEnCeroYEmailNormalizado(t *testing.T) {
	uc, repos := newAuth(t)
	out := signUp(t, uc)

	assert.Equal(t, "ana@example.com", out.Email)
	assert.True(t, out.Wallet.IsZero())
	assert.False(t, out.IsStaff)
	assert.Equal(t, "1990-05-17", out.BirthDate)

	stored, err := repos.Customers.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
}

func TestSignUp_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth(t)
	signUp(t, uc)

	_, err := uc.SignUp(context.Background(), dto.SignUpRequest{
		Email: "ana@example.com", Password: "otraclave1", FirstName: "A", LastName: "B", Phone: "1", BirthDate: "2000-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignUp_Validacion(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.SignUp(context.Background(), dto.SignUpRequest{Email: "no-es-email", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignIn_SignOut_RevocaSesion(t *testing.T) {
	uc, _ := newAuth(t)
	customer := signUp(t, uc)
	ctx := context.Background()

	res, err := uc.SignIn(ctx, dto.SignInRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	principal, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, principal.CustomerID)

	require.NoError(t, uc.SignOut(ctx, principal))
	_, err = uc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignIn_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	signUp(t, uc)

	_, err := uc.SignIn(context.Background(), dto.SignInRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.SignIn(context.Background(), dto.SignInRequest{Email: "nadie@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_TokenBasura(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Authenticate(context.Background(), "no.es.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateProfile_SoloCamposPermitidos(t *testing.T) {
	uc, _ := newAuth(t)
	customer := signUp(t, uc)
	ctx := context.Background()
	res, err := uc.SignIn(ctx, dto.SignInRequest{Email: "ana@example.com", Password: "secreto123"})
	require.NoError(t, err)
	principal, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	phone := "3119999999"
	out, err := uc.UpdateProfile(ctx, principal, dto.UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, out.Phone)
	assert.Equal(t, customer.Email, out.Email)
	assert.Equal(t, "Ana", out.FirstName)

	require.NoError(t, uc.DeleteProfile(ctx, principal))
	_, err = uc.Profile(ctx, principal)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnsureStaff(t *testing.T) {
	uc, repos := newAuth(t)
	ctx := context.Background()

	require.NoError(t, uc.EnsureStaff(ctx, "admin@example.com", "adminadmin"))
	admin, err := repos.Customers.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsStaff)

	// idempotente
	require.NoError(t, uc.EnsureStaff(ctx, "admin@example.com", "adminadmin"))

	signUp(t, uc)
	require.NoError(t, uc.EnsureStaff(ctx, "ana@example.com", ""))
	ana, err := repos.Customers.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, ana.IsStaff)
}
