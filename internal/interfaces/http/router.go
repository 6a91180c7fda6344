package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/office-pro/internal/application/auth"
	"github.com/tu-usuario/office-pro/internal/application/billing"
	"github.com/tu-usuario/office-pro/internal/application/usecase"
	"github.com/tu-usuario/office-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganisationUC *usecase.OrganisationUseCase
	CompanyUC      *usecase.CompanyUseCase
	ClientUC       *usecase.ClientUseCase
	TimesheetUC    *usecase.TimesheetUseCase
	CreateInvoice  *billing.CreateInvoiceUseCase
	ModuleService  *usecase.ModuleService
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Organisations (protegido; solo rol de plataforma escribe)
	orgs := protected.Group("/organisations")
	orgHandler := NewOrganisationHandler(deps.OrganisationUC)
	orgs.Post("/", orgHandler.Create)
	orgs.Get("/", orgHandler.List)
	orgs.Get("/:id", orgHandler.GetByID)
	orgs.Delete("/:id", orgHandler.Deactivate)

	// Companies (protegido; recurso de identidad, sin module gate)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id/settings", companyHandler.UpdateSettings)
	companies.Delete("/:id", companyHandler.Deactivate)

	// Clients (protegido, módulo clients)
	clients := protected.Group("/clients", RequireModule(entity.ModuleClients, deps.ModuleService))
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Invoices (protegido, módulo invoicing)
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice)
	clients.Get("/:id/invoices", invoiceHandler.ListByClient)
	invoices := protected.Group("/invoices", RequireModule(entity.ModuleInvoicing, deps.ModuleService))
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Timesheets (protegido, módulo timesheets)
	timesheets := protected.Group("/timesheets", RequireModule(entity.ModuleTimesheets, deps.ModuleService))
	timesheetHandler := NewTimesheetHandler(deps.TimesheetUC)
	timesheets.Post("/", timesheetHandler.Create)
	timesheets.Get("/", timesheetHandler.List)
	timesheets.Post("/:id/approve", timesheetHandler.Approve)
}
