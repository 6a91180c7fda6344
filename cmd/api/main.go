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
	"github.com/tu-usuario/office-pro/internal/application/auth"
	"github.com/tu-usuario/office-pro/internal/application/billing"
	"github.com/tu-usuario/office-pro/internal/application/sequence"
	"github.com/tu-usuario/office-pro/internal/application/usecase"
	"github.com/tu-usuario/office-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/office-pro/internal/interfaces/http"
	"github.com/tu-usuario/office-pro/pkg/config"
	"github.com/tu-usuario/office-pro/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()

	if err := postgres.ApplyMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orgRepo := postgres.NewOrganisationRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	counterRepo := postgres.NewSequenceCounterRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	timesheetRepo := postgres.NewTimesheetRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := usecase.NewScopeResolver(userRepo, companyRepo)
	moduleSvc := usecase.NewModuleService(companyRepo)
	authorizer := usecase.NewAuthorizer(userRepo, resolver, moduleSvc)
	allocator := sequence.NewAllocator(clientRepo, counterRepo, log)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	orgUC := usecase.NewOrganisationUseCase(authorizer, orgRepo)
	companyUC := usecase.NewCompanyUseCase(authorizer, companyRepo, orgRepo)
	clientUC := usecase.NewClientUseCase(authorizer, allocator, clientRepo, txRunner, log)
	timesheetUC := usecase.NewTimesheetUseCase(authorizer, timesheetRepo, clientRepo)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		authorizer, allocator, clientRepo, invoiceRepo, txRunner, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Office Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrganisationUC: orgUC,
		CompanyUC:      companyUC,
		ClientUC:       clientUC,
		TimesheetUC:    timesheetUC,
		CreateInvoice:  createInvoiceUC,
		ModuleService:  moduleSvc,
		JWTSecret:      cfg.JWT.Secret,
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
