package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/docs"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/audit"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/auth"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/clients"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/usecase"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/pld"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/infrastructure/expediente"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/infrastructure/metrics"
	infrapdf "github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/infrastructure/pdf"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/interfaces/http"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/config"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
		if err != nil {
			log.Fatal().Err(err).Msg("migrador")
		}
		if err := mg.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		if err := mg.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	publisher := audit.NewPublisher(auditRepo, log)
	validator := validation.New(cfg.Validation.StrictCheckDigits)
	classifier, err := pld.NewClassifier(cfg.Risk.MontoUmbral)
	if err != nil {
		log.Fatal().Err(err).Str("umbral", cfg.Risk.MontoUmbral).Msg("umbral de riesgo inválido")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, publisher)
	companyUC := usecase.NewCompanyUseCase(companyRepo, validator, publisher)
	userUC := usecase.NewUserUseCase(userRepo, companyRepo, validator, publisher)
	clientUC := clients.NewClientUseCase(
		txRunner, clientRepo, companyRepo, validator, classifier,
		infrapdf.NewMarotoPDFGenerator(), expediente.NewXMLBuilder(), publisher,
	)
	bulkUC := clients.NewBulkUseCase(validator)

	created, err := authUC.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("crear admin inicial")
	}
	if created {
		log.Info().Str("email", cfg.Bootstrap.AdminEmail).Msg("admin inicial creado")
	}

	m := metrics.New()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    5 << 20,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	origins := strings.TrimSpace(cfg.HTTP.CORSAllowOrigins)
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: origins != "*",
		ExposeHeaders:    httpRouter.HeaderExpedienteDigest + ", Content-Disposition",
	}))
	app.Use(httpRouter.SecurityHeaders())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(m.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Portal PLD API",
		}))
	}

	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Type("json")
		return c.SendString(doc)
	})
	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CompanyUC: companyUC,
		UserUC:    userUC,
		ClientUC:  clientUC,
		BulkUC:    bulkUC,
		Audit:     publisher,
		DB:        pool,
		Metrics:   m,
		Log:       log,
		JWTSecret: cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			Secure: cfg.App.IsProduction(),
			MaxAge: time.Duration(cfg.JWT.Expiration) * time.Minute,
		},
		LoginRatePerMinute: cfg.HTTP.LoginRatePerMinute,
		ServiceName:        cfg.App.Name,
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
