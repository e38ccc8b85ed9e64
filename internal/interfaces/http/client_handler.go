package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/clients"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/infrastructure/metrics"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

// HeaderExpedienteDigest cabecera con el SHA-256 (hex) del XML canónico.
const HeaderExpedienteDigest = "X-Expediente-Digest"

// ClientHandler endpoints de clientes PLD.
type ClientHandler struct {
	uc      *clients.ClientUseCase
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *clients.ClientUseCase, log *logger.Logger, m *metrics.Metrics) *ClientHandler {
	return &ClientHandler{uc: uc, log: log, metrics: m}
}

// List godoc
// @Summary      Clientes visibles para el usuario
// @Description  Usuarios cliente ven los de su empresa; admin y consultor pueden filtrar por empresa_id.
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        empresa_id    query  string  false  "Empresa (admin/consultor)"
// @Param        tipo_cliente  query  string  false  "persona_fisica | persona_moral | fideicomiso"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ClientListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/cliente/mis-clientes [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var req dto.ClientListRequest
	if err := c.QueryParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, "parámetros de consulta inválidos")
	}
	out, err := h.uc.List(c.UserContext(), scopeOf(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar cliente
// @Description  Valida el formulario según tipo_cliente y lo inserta en una transacción que verifica la empresa.
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RegisterClientRequest  true  "Formulario del cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cliente/registrar-cliente [post]
func (h *ClientHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), scopeOf(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.metrics.ObserveClientRegistered(out.TipoCliente, out.NivelRiesgo)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Validate godoc
// @Summary      Validar formulario de cliente sin guardar
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RegisterClientRequest  true  "Formulario del cliente"
// @Success      200   {object}  dto.ValidateClientResponse
// @Router       /api/cliente/validar [post]
func (h *ClientHandler) Validate(c *fiber.Ctx) error {
	var in dto.RegisterClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Validate(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/clientes/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), scopeOf(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExpedientePDF godoc
// @Summary      Expediente del cliente en PDF
// @Tags         clientes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/clientes/{id}/expediente.pdf [get]
func (h *ClientHandler) ExpedientePDF(c *fiber.Ctx) error {
	b, filename, err := h.uc.ExportPDF(c.UserContext(), scopeOf(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendAttachment(c, "application/pdf", filename, b)
}

// ExpedienteXML godoc
// @Summary      Expediente del cliente en XML canónico
// @Description  La cabecera X-Expediente-Digest lleva el SHA-256 (hex) del cuerpo.
// @Tags         clientes
// @Produce      application/xml
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cliente/clientes/{id}/expediente.xml [get]
func (h *ClientHandler) ExpedienteXML(c *fiber.Ctx) error {
	b, digest, filename, err := h.uc.ExportXML(c.UserContext(), scopeOf(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(HeaderExpedienteDigest, digest)
	return sendAttachment(c, "application/xml; charset=utf-8", filename, b)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).Send(body)
}
