// Package bootstrap arma el caso de uso de generación y el verificador de
// tokens a partir de la configuración; lo comparten cmd/api y cmd/render.
package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/docgen-api/internal/application/document"
	"github.com/jhoicas/docgen-api/internal/application/dto"
	"github.com/jhoicas/docgen-api/internal/application/ports"
	"github.com/jhoicas/docgen-api/internal/domain/entity"
	"github.com/jhoicas/docgen-api/internal/domain/layout"
	"github.com/jhoicas/docgen-api/internal/infrastructure/authprovider"
	"github.com/jhoicas/docgen-api/internal/infrastructure/docx"
	"github.com/jhoicas/docgen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/docgen-api/pkg/config"
	"github.com/jhoicas/docgen-api/pkg/ruspell"
)

// NewGenerateUseCase construye planner, renderers (docx y pdf) y el caso de uso.
func NewGenerateUseCase(app config.AppConfig, cfg config.RenderConfig, log zerolog.Logger, opts ...document.Option) (*document.GenerateDocumentUseCase, error) {
	formatter := ruspell.NewFormatter(ruspell.Russian(), ruspell.Options{
		IncludeFractionalUnits: cfg.SpellKopecks,
		DecimalDisplay:         cfg.DecimalDisplay,
	})

	var pdfOpts []pdf.Option
	if cfg.PDFFontPath != "" {
		pdfOpts = append(pdfOpts, pdf.WithFontPath(cfg.PDFFontPath))
	}
	pdfRenderer, err := pdf.NewRenderer(pdfOpts...)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: renderer pdf: %w", err)
	}
	docxOpts := []docx.Option{docx.WithApplication(app.Name)}
	if cfg.DOCXFont != "" {
		docxOpts = append(docxOpts, docx.WithFont(cfg.DOCXFont))
	}
	renderers := []ports.DocumentRenderer{
		docx.NewRenderer(docxOpts...),
		pdfRenderer,
	}

	var plannerOpts []layout.Option
	if cfg.MinNameWidth > 0 {
		plannerOpts = append(plannerOpts, layout.WithMinNameWidth(cfg.MinNameWidth))
	}

	base := []document.Option{
		document.WithLogger(log),
		document.WithDefaultLocale(dto.ParseLocale(cfg.DefaultLocale, entity.LocaleRU)),
	}
	return document.NewGenerateDocumentUseCase(layout.NewPlanner(formatter, plannerOpts...), renderers, append(base, opts...)...), nil
}

// NewVerifier devuelve el verificador de AUTH_MODE; nil con AUTH_MODE=none.
func NewVerifier(cfg config.AuthConfig) (ports.TokenVerifier, error) {
	switch cfg.Mode {
	case config.AuthModeNone, "":
		return nil, nil
	case config.AuthModeJWT:
		return authprovider.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer), nil
	case config.AuthModeRemote:
		return authprovider.NewRemoteVerifier(cfg.ProviderURL, cfg.ProviderAPIKey, cfg.Timeout), nil
	case config.AuthModeStatic:
		v, err := authprovider.NewStaticVerifier(cfg.StaticTokenHashes)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("bootstrap: AUTH_MODE desconocido: %q", cfg.Mode)
	}
}
