package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/audit"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

// AuditHandler consulta de la bitácora.
type AuditHandler struct {
	pub *audit.Publisher
	log *logger.Logger
}

// NewAuditHandler construye el handler.
func NewAuditHandler(pub *audit.Publisher, log *logger.Logger) *AuditHandler {
	return &AuditHandler{pub: pub, log: log}
}

// List godoc
// @Summary      Bitácora de acciones
// @Tags         bitacora
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.AuditListResponse
// @Router       /api/admin/bitacora [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, "parámetros de paginación inválidos")
	}
	out, err := h.pub.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
