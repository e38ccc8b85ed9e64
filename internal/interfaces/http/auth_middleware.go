package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/auth"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/clients"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/jwt"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

// Locals keys con la identidad del token en Fiber.
const (
	LocalUserID    = "user_id"
	LocalEmail     = "email"
	LocalEmpresaID = "empresa_id"
	LocalRole      = "rol"
)

// TokenCookie nombre de la cookie que usa el frontend.
const TokenCookie = "token"

// AuthMiddleware valida el JWT (Bearer o cookie "token") y carga la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return errorJSON(c, fiber.StatusUnauthorized, CodeInvalidToken, "formato: Bearer <token>")
		}
		if tokenString == "" {
			tokenString = strings.TrimSpace(c.Cookies(TokenCookie))
		}
		if tokenString == "" {
			return errorJSON(c, fiber.StatusUnauthorized, CodeMissingToken, "token requerido")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return errorJSON(c, fiber.StatusUnauthorized, CodeInvalidToken, "token inválido o expirado")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalEmpresaID, claims.EmpresaID)
		c.Locals(LocalRole, claims.Rol)
		return c.Next()
	}
}

// bearerToken extrae el token del header Authorization. ok=false si el header existe pero
// no tiene el formato Bearer; token vacío si no hay header.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return "", true
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// RequireRole permite el paso sólo a los roles indicados.
// Debe ir después de AuthMiddleware. 401 si el token no trae rol, 403 si el rol no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return errorJSON(c, fiber.StatusUnauthorized, CodeMissingRole, "el token no incluye rol")
		}
		if _, ok := allowed[role]; !ok {
			return errorJSON(c, fiber.StatusForbidden, CodeForbidden, "rol sin permiso para este recurso")
		}
		return c.Next()
	}
}

// RequireActiveUser vuelve a leer al usuario del token: una cuenta desactivada pierde el
// acceso en la siguiente petición aunque su JWT siga vigente. Debe ir después de AuthMiddleware.
func RequireActiveUser(uc *auth.AuthUseCase, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := uc.Me(c.UserContext(), GetUserID(c))
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, domain.ErrUserNotFound):
			return errorJSON(c, fiber.StatusUnauthorized, CodeInvalidToken, "el usuario del token ya no existe")
		default:
			return respondError(c, log, err)
		}
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetEmail devuelve el email del token.
func GetEmail(c *fiber.Ctx) string { return localString(c, LocalEmail) }

// GetEmpresaID devuelve la empresa del token; vacío para admin/consultor sin empresa.
func GetEmpresaID(c *fiber.Ctx) string { return localString(c, LocalEmpresaID) }

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

func scopeOf(c *fiber.Ctx) clients.Scope {
	return clients.Scope{UserID: GetUserID(c), Rol: GetRole(c), EmpresaID: GetEmpresaID(c)}
}
