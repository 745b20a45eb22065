package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/application/validation"
	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
	"github.com/jhoicas/Mercado-api/pkg/jwt"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y perfil propio.
type AuthUseCase struct {
	customerRepo repository.CustomerRepository
	sessionRepo  repository.SessionRepository
	jwtCfg       JWTConfig
	now          func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(customerRepo repository.CustomerRepository, sessionRepo repository.SessionRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{customerRepo: customerRepo, sessionRepo: sessionRepo, jwtCfg: jwtCfg, now: time.Now}
}

// SignUp registra un cliente con billetera en 0. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.CustomerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	existing, err := uc.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		BirthDate:    validation.Date(in.BirthDate),
		Wallet:       decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// SignIn verifica email/password, abre una sesión y genera el JWT que la referencia.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.SignInRequest) (*dto.SignInResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	now := uc.now()
	session := &entity.Session{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, customer.ID, session.ID, customer.IsStaff, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SignInResponse{
		Message:  "sesión iniciada",
		Token:    token,
		Customer: *ToCustomerResponse(customer),
	}, nil
}

// SignOut revoca la sesión del principal; el token deja de ser aceptado.
func (uc *AuthUseCase) SignOut(ctx context.Context, principal entity.Principal) error {
	return uc.sessionRepo.Revoke(ctx, principal.SessionID, uc.now())
}

// Authenticate valida el token y que su sesión siga activa. Devuelve el principal de la petición.
// El rol se lee del cliente y no del token: un cambio de is_staff aplica de inmediato.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (entity.Principal, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return entity.Principal{}, domain.ErrUnauthorized
	}
	session, err := uc.sessionRepo.GetByID(ctx, claims.SessionID)
	if err != nil {
		return entity.Principal{}, err
	}
	if !session.Active(uc.now()) || session.CustomerID != claims.CustomerID {
		return entity.Principal{}, domain.ErrUnauthorized
	}
	customer, err := uc.customerRepo.GetByID(ctx, claims.CustomerID)
	if err != nil {
		return entity.Principal{}, err
	}
	if customer == nil {
		return entity.Principal{}, domain.ErrUnauthorized
	}
	return entity.Principal{
		CustomerID: customer.ID,
		SessionID:  session.ID,
		IsStaff:    customer.IsStaff,
	}, nil
}

// Profile devuelve el registro del cliente autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, principal entity.Principal) (*dto.CustomerResponse, error) {
	customer, err := uc.customer(ctx, principal.CustomerID)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// UpdateProfile cambia teléfono, nombres y fecha de nacimiento. Email, rol y billetera no se tocan.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, principal entity.Principal, in dto.UpdateProfileRequest) (*dto.CustomerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	customer, err := uc.customer(ctx, principal.CustomerID)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		customer.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		customer.LastName = *in.LastName
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.BirthDate != nil {
		customer.BirthDate = validation.Date(*in.BirthDate)
	}
	customer.UpdatedAt = uc.now()
	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// DeleteProfile elimina la cuenta propia junto con sus pedidos y sesiones.
func (uc *AuthUseCase) DeleteProfile(ctx context.Context, principal entity.Principal) error {
	return uc.customerRepo.Delete(ctx, principal.CustomerID)
}

// EnsureStaff garantiza que exista una cuenta staff con ese email (arranque).
// Si ya existe, la promueve a staff sin cambiar su password.
func (uc *AuthUseCase) EnsureStaff(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	customer, err := uc.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if customer != nil {
		if customer.IsStaff && customer.IsSuperuser {
			return nil
		}
		customer.IsStaff = true
		customer.IsSuperuser = true
		customer.UpdatedAt = uc.now()
		return uc.customerRepo.Update(ctx, customer)
	}
	if len(password) < 8 {
		return errors.New("auth: ADMIN_PASSWORD debe tener al menos 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := uc.now()
	return uc.customerRepo.Create(ctx, &entity.Customer{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		IsStaff:      true,
		IsSuperuser:  true,
		Wallet:       decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (uc *AuthUseCase) customer(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToCustomerResponse convierte un cliente a su DTO (sin hash de password).
func ToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:          c.ID,
		Email:       c.Email,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Phone:       c.Phone,
		BirthDate:   c.BirthDate.Format(dto.DateLayout),
		IsStaff:     c.IsStaff,
		IsSuperuser: c.IsSuperuser,
		Wallet:      c.Wallet,
	}
}
