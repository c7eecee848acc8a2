package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/docgen-api/internal/application/document"
	"github.com/jhoicas/docgen-api/internal/bootstrap"
	"github.com/jhoicas/docgen-api/internal/infrastructure/metrics"
	httpRouter "github.com/jhoicas/docgen-api/internal/interfaces/http"
	"github.com/jhoicas/docgen-api/pkg/config"
	"github.com/jhoicas/docgen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("auth_mode", cfg.Auth.Mode).
		Strs("route_prefixes", cfg.HTTP.RoutePrefixes).
		Msg("iniciando aplicación")

	deps := httpRouter.RouterDeps{
		RoutePrefixes:  cfg.HTTP.RoutePrefixes,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AppName:        cfg.App.Name,
		Logger:         log.Zerolog(),
	}

	var ucOpts []document.Option
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m, err := metrics.NewMetrics(reg)
		if err != nil {
			log.Fatal().Err(err).Msg("registrar métricas")
		}
		deps.Observer = m
		deps.Gatherer = reg
		ucOpts = append(ucOpts, document.WithMetrics(m))
	}

	deps.GenerateUC, err = bootstrap.NewGenerateUseCase(cfg.App, cfg.Render, log.Zerolog(), ucOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("construir generador de documentos")
	}
	if cfg.Render.PDFFontPath == "" {
		log.Warn().Msg("RENDER_PDF_FONT_PATH vacío: los PDF en ruso se rechazarán")
	}

	deps.Verifier, err = bootstrap.NewVerifier(cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar autenticación")
	}

	// Swagger UI solo si el archivo existe; el middleware falla al arrancar sin él
	if cfg.Swagger.Enabled {
		if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
			deps.SwaggerFile = cfg.Swagger.FilePath
		} else {
			log.Warn().Str("file", cfg.Swagger.FilePath).Msg("swagger desactivado: archivo no encontrado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitBytes(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Zerolog()),
	})
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
