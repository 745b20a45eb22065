package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercado-api/internal/application/auth"
	"github.com/jhoicas/Mercado-api/internal/application/dto"
	"github.com/jhoicas/Mercado-api/internal/application/ordering"
	"github.com/jhoicas/Mercado-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC     *usecase.CategoryUseCase
	CountryUC      *usecase.CountryUseCase
	ManufacturerUC *usecase.ManufacturerUseCase
	ProductUC      *usecase.ProductUseCase
	OrderUC        *ordering.OrderUseCase
	AuthUC         *auth.AuthUseCase
	Cookie         SessionCookie
	// Health comprueba dependencias externas (DB); nil = siempre sano.
	Health func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authMw := AuthMiddleware(deps.AuthUC, deps.Cookie.Name)
	staff := []fiber.Handler{authMw, RequireStaff()}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNHEALTHY", Message: err.Error()})
			}
		}
		return c.JSON(dto.MessageResponse{Message: "ok"})
	})

	// Auth y perfil
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	app.Post("/sign_up", authHandler.SignUp)
	app.Post("/sign_in", authHandler.SignIn)
	app.Get("/sign_out", authMw, authHandler.SignOut)
	app.Get("/profile", authMw, authHandler.Profile)
	app.Patch("/profile", authMw, authHandler.UpdateProfile)
	app.Delete("/profile", authMw, authHandler.DeleteProfile)

	// Catálogo: lectura pública, escritura solo staff
	category := NewCategoryHandler(deps.CategoryUC)
	catalogRoutes(app, "/category", staff, category.List, category.GetByID, category.Create, category.Update, category.Delete)

	country := NewCountryHandler(deps.CountryUC)
	catalogRoutes(app, "/country", staff, country.List, country.GetByID, country.Create, country.Update, country.Delete)

	manufacturer := NewManufacturerHandler(deps.ManufacturerUC)
	catalogRoutes(app, "/manufacturer", staff, manufacturer.List, manufacturer.GetByID, manufacturer.Create, manufacturer.Update, manufacturer.Delete)

	product := NewProductHandler(deps.ProductUC)
	catalogRoutes(app, "/products", staff, product.List, product.GetByID, product.Create, product.Update, product.Delete)

	// Pedidos
	orders := NewOrderHandler(deps.OrderUC)
	app.Get("/orders", authMw, orders.List)
	app.Post("/orders", authMw, orders.Create)
	app.Get("/orders/:id", orders.GetByID)
	app.Get("/orders/:id/receipt", authMw, orders.Receipt)
	app.Patch("/orders/:id", append(staff, orders.Patch)...)
	app.Delete("/orders/:id", append(staff, orders.Delete)...)
}

func catalogRoutes(app *fiber.App, path string, staff []fiber.Handler, list, get, create, update, del fiber.Handler) {
	app.Get(path, list)
	app.Get(path+"/:id", get)
	app.Post(path, append(staff, create)...)
	app.Patch(path+"/:id", append(staff, update)...)
	app.Delete(path+"/:id", append(staff, del)...)
}
