package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercado-api/internal/application/auth"
	"github.com/jhoicas/Mercado-api/internal/application/dto"
)

// SessionCookie configuración de la cookie emitida en /sign_in.
type SessionCookie struct {
	Name       string
	Secure     bool
	ExpMinutes int
}

// AuthHandler maneja registro, login, logout y el perfil propio.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie SessionCookie
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// SignUp godoc
// @Summary      Registrar cliente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /sign_up [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SignUp(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SignIn godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el token y lo deja también en la cookie de sesión (HttpOnly).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignInRequest  true  "email, password"
// @Success      200   {object}  dto.SignInResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /sign_in [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SignIn(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.cookie.ExpMinutes) * time.Minute),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// SignOut godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /sign_out [get]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	principal, _ := GetPrincipal(c)
	if err := h.uc.SignOut(c.UserContext(), principal); err != nil {
		return writeError(c, err)
	}
	c.ClearCookie(h.cookie.Name)
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Profile godoc
// @Summary      Ver mi perfil
// @Tags         profile
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CustomerResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	principal, _ := GetPrincipal(c)
	out, err := h.uc.Profile(c.UserContext(), principal)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Actualizar mi perfil
// @Tags         profile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "phone, first_name, last_name, birth_date"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /profile [patch]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, _ := GetPrincipal(c)
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), principal, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteProfile godoc
// @Summary      Eliminar mi cuenta
// @Description  Elimina también los pedidos y sesiones del cliente.
// @Tags         profile
// @Security     Bearer
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /profile [delete]
func (h *AuthHandler) DeleteProfile(c *fiber.Ctx) error {
	principal, _ := GetPrincipal(c)
	if err := h.uc.DeleteProfile(c.UserContext(), principal); err != nil {
		return writeError(c, err)
	}
	c.ClearCookie(h.cookie.Name)
	return c.SendStatus(fiber.StatusNoContent)
}
