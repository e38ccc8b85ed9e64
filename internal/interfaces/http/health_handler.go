package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

// Pinger comprueba la conexión a la base de datos (pgxpool.Pool lo implementa).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler ping y health check.
type HealthHandler struct {
	db      Pinger
	service string
	log     *logger.Logger
}

// NewHealthHandler construye el handler.
func NewHealthHandler(db Pinger, service string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, service: service, log: log}
}

// Ping godoc
// @Summary  Ping
// @Tags     health
// @Produce  json
// @Success  200  {object}  dto.MessageResponse
// @Router   /api/ping [get]
func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "pong"})
}

// Health godoc
// @Summary  Estado del servicio y de la base de datos
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Failure  503  {object}  map[string]string
// @Router   /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if h.db == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "service": h.service, "database": "sin configurar"})
	}
	if err := h.db.Ping(ctx); err != nil {
		if h.log != nil {
			h.log.Warn().Err(err).Msg("health: base de datos no disponible")
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "service": h.service, "database": "no disponible"})
	}
	return c.JSON(fiber.Map{"status": "ok", "service": h.service, "database": "ok"})
}
