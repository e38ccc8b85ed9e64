package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/auth"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/infrastructure/metrics"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

// CookieConfig opciones de la cookie de sesión.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

// AuthHandler maneja login, logout y usuario actual.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	cookie  CookieConfig
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig, log *logger.Logger, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie, log: log, metrics: m}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, "email y password son requeridos")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			h.metrics.ObserveLogin("credenciales")
		case errors.Is(err, domain.ErrInactiveAccount):
			h.metrics.ObserveLogin("inactivo")
		default:
			h.metrics.ObserveLogin("error")
		}
		return respondError(c, h.log, err)
	}
	h.metrics.ObserveLogin("ok")
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookie.MaxAge),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (borra la cookie)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if errors.Is(err, domain.ErrUserNotFound) {
		return errorJSON(c, fiber.StatusUnauthorized, CodeInvalidToken, "el usuario del token ya no existe")
	}
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
