package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/docgen-api/internal/application/dto"
)

// writeError responde con el cuerpo de error estándar.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: message, Code: code})
}

// ErrorHandler handler global de Fiber: *fiber.Error conserva su código, el
// resto (incluidos los pánicos recuperados) se responde como 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return writeError(c, fe.Code, "NOT_FOUND", "Not Found")
			case fiber.StatusRequestEntityTooLarge:
				return writeError(c, fe.Code, "BODY_TOO_LARGE", fe.Message)
			case fiber.StatusMethodNotAllowed:
				return writeError(c, fe.Code, "METHOD_NOT_ALLOWED", fe.Message)
			default:
				if fe.Code < fiber.StatusInternalServerError {
					return writeError(c, fe.Code, "BAD_REQUEST", fe.Message)
				}
			}
		}
		log.Error().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("error no controlado")
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

// NotFound última ruta del router.
func NotFound(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "Not Found")
}
