package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/domain"
	"github.com/jhoicas/Mercado-api/internal/domain/entity"
)

// LocalPrincipal clave de c.Locals donde queda la identidad autenticada.
const LocalPrincipal = "principal"

// authenticator es el contrato mínimo que necesita el middleware para validar el token.
// Lo implementa *auth.AuthUseCase (token válido y sesión activa).
type authenticator interface {
	Authenticate(ctx context.Context, token string) (entity.Principal, error)
}

// AuthMiddleware acepta el token como "Authorization: Bearer <token>" o en la cookie de sesión,
// valida que su sesión siga activa y guarda el entity.Principal en c.Locals.
func AuthMiddleware(auth authenticator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(cookieName)
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			tokenString = strings.TrimSpace(parts[1])
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "se requiere iniciar sesión"})
		}
		principal, err := auth.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido, expirado o sesión cerrada"})
			}
			return writeError(c, err)
		}
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

// RequireStaff permite continuar solo a cuentas staff. Usar DESPUÉS de AuthMiddleware.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere iniciar sesión"})
		}
		if !principal.IsStaff {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el personal de la tienda puede realizar esta acción"})
		}
		return c.Next()
	}
}

// GetPrincipal devuelve la identidad autenticada (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) (entity.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(entity.Principal)
	return p, ok
}
