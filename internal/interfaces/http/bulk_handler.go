package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/clients"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/infrastructure/metrics"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

// maxUploadBytes tamaño máximo del archivo en multipart.
const maxUploadBytes = 4 << 20

// BulkHandler carga masiva de clientes (sólo conteo).
type BulkHandler struct {
	uc      *clients.BulkUseCase
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewBulkHandler construye el handler.
func NewBulkHandler(uc *clients.BulkUseCase, log *logger.Logger, m *metrics.Metrics) *BulkHandler {
	return &BulkHandler{uc: uc, log: log, metrics: m}
}

// Upload godoc
// @Summary      Carga masiva de clientes
// @Description  Recibe el CSV como text/csv, text/plain, JSON {"contenido": "..."} o multipart (campo "archivo"). Cuenta filas válidas; no guarda nada.
// @Tags         carga-masiva
// @Accept       plain
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BulkUploadRequest  false  "Contenido CSV (variante JSON)"
// @Success      200   {object}  dto.BulkUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/carga-masiva [post]
func (h *BulkHandler) Upload(c *fiber.Ctx) error {
	raw, err := uploadContent(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Count(raw)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.metrics.ObserveBulk(out.FilasValidas, out.FilasInvalidas)
	return c.JSON(out)
}

func uploadContent(c *fiber.Ctx) ([]byte, error) {
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(ct, fiber.MIMEApplicationJSON):
		var in dto.BulkUploadRequest
		if err := c.BodyParser(&in); err != nil {
			return nil, err
		}
		return []byte(in.Contenido), nil
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		fh, err := c.FormFile("archivo")
		if err != nil {
			return nil, err
		}
		if fh.Size > maxUploadBytes {
			return nil, fiber.ErrRequestEntityTooLarge
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxUploadBytes))
	default:
		// text/csv, text/plain o sin Content-Type: el cuerpo es el CSV.
		return c.Body(), nil
	}
}
