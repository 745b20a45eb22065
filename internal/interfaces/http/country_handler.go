package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/application/usecase"
)

// CountryHandler maneja las peticiones HTTP para Country. Lectura pública, escritura staff.
type CountryHandler struct {
	uc *usecase.CountryUseCase
}

// NewCountryHandler construye el handler.
func NewCountryHandler(uc *usecase.CountryUseCase) *CountryHandler {
	return &CountryHandler{uc: uc}
}

// List godoc
// @Summary      Listar países
// @Tags         country
// @Produce      json
// @Param        search    query  string  false  "Subcadena del nombre (sensible a mayúsculas)"
// @Param        order_by  query  string  false  "Campo de orden: id, name, created_at; prefijo - para descendente"
// @Success      200  {array}   dto.CountryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /country [get]
func (h *CountryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), listQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener país por ID
// @Tags         country
// @Produce      json
// @Param        id   path  string  true  "ID del país"
// @Success      200  {object}  dto.CountryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /country/{id} [get]
func (h *CountryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear país
// @Tags         country
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCountryRequest  true  "Datos del país"
// @Success      201   {object}  dto.CountryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /country [post]
func (h *CountryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCountryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar país
// @Tags         country
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del país"
// @Param        body  body  dto.UpdateCountryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CountryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /country/{id} [patch]
func (h *CountryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCountryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar país
// @Tags         country
// @Security     Bearer
// @Param        id   path  string  true  "ID del país"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /country/{id} [delete]
func (h *CountryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
