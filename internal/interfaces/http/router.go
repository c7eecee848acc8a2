package http

import (
	"strings"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/docgen-api/internal/application/document"
	"github.com/jhoicas/docgen-api/internal/application/ports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	GenerateUC *document.GenerateDocumentUseCase
	// Verifier nil desactiva la autenticación (AUTH_MODE=none).
	Verifier ports.TokenVerifier
	// Observer y Gatherer nil desactivan /metrics.
	Observer RequestObserver
	Gatherer prometheus.Gatherer
	// RoutePrefixes "" monta /generate en la raíz; "/api" en /api/generate.
	RoutePrefixes  []string
	AllowedOrigins string
	// SwaggerFile vacío desactiva /docs.
	SwaggerFile string
	AppName     string
	Logger      zerolog.Logger
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(RequestLogger(deps.Logger))
	if deps.Observer != nil {
		app.Use(Metrics(deps.Observer))
	}
	origins := deps.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Content-Type, Authorization",
		ExposeHeaders: "Content-Disposition, " + RequestIDHeader,
	}))

	// Swagger UI: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    deps.AppName + " API",
		}))
	}

	handler := NewDocumentHandler(deps.GenerateUC, deps.Logger)
	app.Get("/health", handler.Health)
	if deps.Gatherer != nil {
		app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	generate := []fiber.Handler{handler.Generate}
	if deps.Verifier != nil {
		generate = append([]fiber.Handler{AuthMiddleware(deps.Verifier)}, generate...)
	}
	prefixes := deps.RoutePrefixes
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}
	for _, p := range prefixes {
		app.Post(p+"/generate", generate...)
		app.Get(p+"/generate", handler.Health)
	}
	app.Use(generateBySuffix(handler, deps.Verifier))

	app.Use(NotFound)
}

// generateBySuffix atiende cualquier ruta terminada en /generate fuera de los
// prefijos configurados (p. ej. /functions/v1/generate): POST genera y GET es
// el health check.
func generateBySuffix(h *DocumentHandler, verifier ports.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasSuffix(strings.TrimSuffix(c.Path(), "/"), "/generate") {
			return c.Next()
		}
		switch c.Method() {
		case fiber.MethodPost:
			if verifier != nil {
				if ok, err := authenticate(c, verifier); !ok {
					return err
				}
			}
			return h.Generate(c)
		case fiber.MethodGet:
			return h.Health(c)
		}
		return c.Next()
	}
}
