package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/docgen-api/internal/application/document"
	"github.com/jhoicas/docgen-api/internal/application/dto"
	"github.com/jhoicas/docgen-api/internal/domain"
)

// DocumentHandler expone la generación de documentos.
type DocumentHandler struct {
	uc  *document.GenerateDocumentUseCase
	log zerolog.Logger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *document.GenerateDocumentUseCase, log zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{uc: uc, log: log}
}

// Generate godoc
// @Summary      Generar documento de pedido
// @Description  Convierte el pedido en un .docx (o .pdf) de orden de compra, factura o especificación.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        body  body  dto.GenerateRequest  true  "pedido, empresa, cliente y líneas"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /generate [post]
func (h *DocumentHandler) Generate(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo vacío")
	}
	var in dto.GenerateRequest
	if err := c.App().Config().JSONDecoder(body, &in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "JSON inválido: "+err.Error())
	}

	doc, err := h.uc.Generate(c.UserContext(), &in)
	if err != nil {
		return h.fail(c, err)
	}

	h.log.Info().
		Str("request_id", GetRequestID(c)).
		Str("subject", GetSubject(c)).
		Str("type", string(doc.Type)).
		Str("format", string(doc.Format)).
		Str("filename", doc.Filename).
		Int("bytes", len(doc.Content)).
		Msg("documento generado")

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	return c.Status(fiber.StatusOK).Send(doc.Content)
}

// Health godoc
// @Summary  Estado del servicio
// @Tags     health
// @Produce  json
// @Success  200  {object}  dto.HealthResponse
// @Router   /generate [get]
func (h *DocumentHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "healthy"})
}

func (h *DocumentHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return writeError(c, fiber.StatusServiceUnavailable, "CANCELLED", err.Error())
	default:
		h.log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("fallo al generar documento")
		return writeError(c, fiber.StatusInternalServerError, "RENDER_ERROR", err.Error())
	}
}
