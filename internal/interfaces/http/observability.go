package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// MetricsPath ruta del endpoint de Prometheus; no se contabiliza.
const MetricsPath = "/metrics"

// RequestObserver recibe cada petición terminada. Lo implementa *metrics.Metrics.
type RequestObserver interface {
	ObserveRequest(method, path string, status int, elapsed time.Duration)
}

// RequestLogger escribe una línea por petición con request_id, method, path,
// status y latency_ms.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := statusOf(c, err)
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency_ms", float64(time.Since(start).Microseconds())/1000).
			Msg("petición HTTP")
		return err
	}
}

// Metrics contabiliza peticiones por método, patrón de ruta y estado.
func Metrics(obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == MetricsPath {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		// patrón de la ruta (/api/generate), no la ruta cruda
		path := c.Route().Path
		if path == "" || path == "/" {
			path = c.Path()
		}
		obs.ObserveRequest(c.Method(), path, statusOf(c, err), time.Since(start))
		return err
	}
}

// statusOf estado final de la respuesta; si el handler devolvió error todavía
// no lo ha escrito el ErrorHandler.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
