package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Mercado-api/internal/application/auth"
	"github.com/jhoicas/Mercado-api/internal/application/ordering"
	"github.com/jhoicas/Mercado-api/internal/application/usecase"
	"github.com/jhoicas/Mercado-api/internal/domain/repository"
	"github.com/jhoicas/Mercado-api/internal/infrastructure/events"
	"github.com/jhoicas/Mercado-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Mercado-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Mercado-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Mercado-api/internal/interfaces/http"
	"github.com/jhoicas/Mercado-api/pkg/config"
	"github.com/jhoicas/Mercado-api/pkg/logger"

	"github.com/jhoicas/Mercado-api/docs"
)

// stores repositorios del driver elegido (postgres o memory).
type stores struct {
	categories    repository.CategoryRepository
	countries     repository.CountryRepository
	manufacturers repository.ManufacturerRepository
	products      repository.ProductRepository
	customers     repository.CustomerRepository
	orders        repository.OrderRepository
	sessions      repository.SessionRepository
	tx            ordering.TxRunner
	health        func(ctx context.Context) error
	close         func()
}

// @title        Mercado API
// @version      1.0
// @description  Catálogo de supermercado, pedidos y billetera de clientes.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	// Eventos de pedidos: Kafka si hay brokers, si no se descartan.
	var publisher ordering.EventPublisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente Kafka")
		}
		defer kp.Close()
		if err := kp.Ping(ctx); err != nil {
			log.Warn().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka no responde; los eventos se reintentarán al publicar")
		}
		publisher = kp
	}

	authUC := auth.NewAuthUseCase(st.customers, st.sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Email != "" {
		if err := authUC.EnsureStaff(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("crear cuenta staff inicial")
		}
		log.Info().Str("email", cfg.Admin.Email).Msg("cuenta staff disponible")
	}

	orderUC := ordering.NewOrderUseCase(
		st.tx, st.orders, st.customers, st.products,
		publisher, infrapdf.NewReceiptGenerator(cfg.App.Name),
		ordering.Config{RebateAmount: cfg.Shop.RebateAmount, RebateRecipient: cfg.Shop.RebateRecipient},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Documento OpenAPI generado por swag (swag init -g cmd/api/main.go)
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		c.Type("json")
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.FilePath,
			Path:     "docs",
			Title:    "Mercado API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.FilePath).Msg("swagger.json no encontrado; /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:     usecase.NewCategoryUseCase(st.categories),
		CountryUC:      usecase.NewCountryUseCase(st.countries),
		ManufacturerUC: usecase.NewManufacturerUseCase(st.manufacturers, st.countries),
		ProductUC:      usecase.NewProductUseCase(st.products, st.manufacturers, st.categories),
		OrderUC:        orderUC,
		AuthUC:         authUC,
		Cookie: httpRouter.SessionCookie{
			Name:       cfg.Session.CookieName,
			Secure:     cfg.Session.CookieSecure,
			ExpMinutes: cfg.JWT.Expiration,
		},
		Health: st.health,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.DB.Driver == config.StorageDriverMemory {
		r := memory.NewRepositories(memory.NewStore())
		return &stores{
			categories: r.Categories, countries: r.Countries, manufacturers: r.Manufacturers,
			products: r.Products, customers: r.Customers, orders: r.Orders, sessions: r.Sessions,
			tx:    r.Tx,
			close: func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	r := postgres.NewRepositories(pool)
	return &stores{
		categories: r.Categories, countries: r.Countries, manufacturers: r.Manufacturers,
		products: r.Products, customers: r.Customers, orders: r.Orders, sessions: r.Sessions,
		tx:     r.Tx,
		health: pool.Ping,
		close:  pool.Close,
	}, nil
}
