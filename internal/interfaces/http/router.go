package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/audit"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/auth"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/clients"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/usecase"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/infrastructure/metrics"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC             *auth.AuthUseCase
	CompanyUC          *usecase.CompanyUseCase
	UserUC             *usecase.UserUseCase
	ClientUC           *clients.ClientUseCase
	BulkUC             *clients.BulkUseCase
	Audit              *audit.Publisher
	DB                 Pinger
	Metrics            *metrics.Metrics
	Log                *logger.Logger
	JWTSecret          string
	Cookie             CookieConfig
	LoginRatePerMinute int
	ServiceName        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Público
	healthHandler := NewHealthHandler(deps.DB, deps.ServiceName, deps.Log)
	api.Get("/ping", healthHandler.Ping)
	api.Get("/health", healthHandler.Health)

	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie, deps.Log, deps.Metrics)
	loginLimiter := NewIPRateLimiter(deps.LoginRatePerMinute)
	api.Post("/login", loginLimiter.Middleware(), authHandler.Login)
	api.Post("/logout", authHandler.Logout)

	// Requieren token
	requireAuth := AuthMiddleware(deps.JWTSecret)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleConsultor, entity.RoleCliente)
	activeUser := RequireActiveUser(deps.AuthUC, deps.Log)

	api.Get("/me", requireAuth, authHandler.Me)

	// Administración (sólo admin)
	admin := api.Group("/admin", requireAuth, RequireRole(entity.RoleAdmin), activeUser)

	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Log)
	admin.Get("/empresas", companyHandler.List)
	admin.Post("/empresas", companyHandler.Create)
	admin.Get("/empresas/:id", companyHandler.GetByID)
	admin.Put("/empresas/:id", companyHandler.Update)
	admin.Patch("/empresas/:id/estado", companyHandler.UpdateStatus)

	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	admin.Get("/usuarios", userHandler.List)
	admin.Post("/usuarios", userHandler.Create)
	admin.Patch("/usuarios/:id/estado", userHandler.UpdateStatus)

	auditHandler := NewAuditHandler(deps.Audit, deps.Log)
	admin.Get("/bitacora", auditHandler.List)

	// Clientes PLD (todos los roles; el alcance lo decide el caso de uso)
	cliente := api.Group("/cliente", requireAuth, anyRole, activeUser)
	clientHandler := NewClientHandler(deps.ClientUC, deps.Log, deps.Metrics)
	cliente.Get("/mis-clientes", clientHandler.List)
	cliente.Post("/registrar-cliente", clientHandler.Register)
	cliente.Post("/validar", clientHandler.Validate)
	cliente.Get("/clientes/:id", clientHandler.GetByID)
	cliente.Get("/clientes/:id/expediente.pdf", clientHandler.ExpedientePDF)
	cliente.Get("/clientes/:id/expediente.xml", clientHandler.ExpedienteXML)

	bulkHandler := NewBulkHandler(deps.BulkUC, deps.Log, deps.Metrics)
	api.Post("/carga-masiva", requireAuth, anyRole, activeUser, bulkHandler.Upload)
}
