package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

// Códigos de error de la API.
const (
	CodeInvalidBody     = "INVALID_BODY"
	CodeValidation      = "VALIDATION_ERROR"
	CodeMissingToken    = "MISSING_TOKEN"
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeMissingRole     = "MISSING_ROLE"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeInactiveAccount = "CUENTA_INACTIVA"
	CodeInactiveCompany = "EMPRESA_INACTIVA"
	CodeNotFound        = "NOT_FOUND"
	CodeDuplicate       = "DUPLICATE"
	CodeEmailExists     = "EMAIL_EXISTS"
	CodeConflict        = "CONFLICT"
	CodeRateLimited     = "RATE_LIMITED"
	CodeUnavailable     = "SERVICE_UNAVAILABLE"
	CodeInternal        = "INTERNAL"
)

func errorJSON(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg, Code: code})
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
}

// respondError traduce un error de dominio al sobre {error, code, detalles}.
// Los errores no reconocidos se registran y se responden como 500 sin exponer el detalle.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:    "datos inválidos",
			Code:     CodeValidation,
			Detalles: verr.Detalles,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "credenciales inválidas")
	case errors.Is(err, domain.ErrInactiveAccount):
		return errorJSON(c, fiber.StatusForbidden, CodeInactiveAccount, "cuenta inactiva")
	case errors.Is(err, domain.ErrInactiveCompany):
		return errorJSON(c, fiber.StatusForbidden, CodeInactiveCompany, "la empresa no está activa")
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, CodeForbidden, "acceso denegado")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, "recurso no encontrado")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorJSON(c, fiber.StatusConflict, CodeEmailExists, "el email ya está registrado")
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, CodeDuplicate, "ya existe un registro con esos datos")
	case errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, CodeConflict, err.Error())
	}
	if log != nil {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
	}
	return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno del servidor")
}

// ErrorHandler es el fiber.Config.ErrorHandler: errores de Fiber conservan su status
// (404 de ruta, 405, 413) y todo lo demás pasa por respondError.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = CodeNotFound
			case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnsupportedMediaType:
				code = CodeInvalidBody
			case fiber.StatusTooManyRequests:
				code = CodeRateLimited
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			}
			return errorJSON(c, fe.Code, code, fe.Message)
		}
		return respondError(c, log, err)
	}
}
