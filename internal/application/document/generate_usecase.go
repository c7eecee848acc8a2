package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/docgen-api/internal/application/dto"
	"github.com/jhoicas/docgen-api/internal/application/ports"
	"github.com/jhoicas/docgen-api/internal/domain"
	"github.com/jhoicas/docgen-api/internal/domain/entity"
	"github.com/jhoicas/docgen-api/internal/domain/layout"
)

// GeneratedDocument archivo listo para enviar al cliente.
type GeneratedDocument struct {
	Filename    string
	ContentType string
	Content     []byte
	Type        entity.DocumentType
	Format      entity.OutputFormat
}

// GenerateDocumentUseCase valida el payload, planifica la maquetación y delega
// el formato de salida en el renderer correspondiente.
type GenerateDocumentUseCase struct {
	planner   *layout.Planner
	renderers map[entity.OutputFormat]ports.DocumentRenderer
	metrics   ports.DocumentMetrics
	mapping   dto.MappingOptions
	now       func() time.Time
	log       zerolog.Logger
}

// Option configura el caso de uso.
type Option func(*GenerateDocumentUseCase)

// WithClock fija la fecha de generación (tests, CLI reproducible).
func WithClock(now func() time.Time) Option {
	return func(uc *GenerateDocumentUseCase) { uc.now = now }
}

// WithMetrics registra cada documento generado.
func WithMetrics(m ports.DocumentMetrics) Option {
	return func(uc *GenerateDocumentUseCase) { uc.metrics = m }
}

// WithLogger usa el logger indicado en lugar de uno mudo.
func WithLogger(l zerolog.Logger) Option {
	return func(uc *GenerateDocumentUseCase) { uc.log = l }
}

// WithDefaultLocale idioma cuando el payload no trae locale.
func WithDefaultLocale(l entity.Locale) Option {
	return func(uc *GenerateDocumentUseCase) { uc.mapping.DefaultLocale = l }
}

// NewGenerateDocumentUseCase construye el caso de uso inyectando sus dependencias.
func NewGenerateDocumentUseCase(planner *layout.Planner, renderers []ports.DocumentRenderer, opts ...Option) *GenerateDocumentUseCase {
	uc := &GenerateDocumentUseCase{
		planner:   planner,
		renderers: make(map[entity.OutputFormat]ports.DocumentRenderer, len(renderers)),
		mapping:   dto.MappingOptions{DefaultLocale: entity.LocaleRU},
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	for _, r := range renderers {
		uc.renderers[r.Format()] = r
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Generate produce el documento descrito por req.
//
// Retorna:
//   - domain.ErrInvalidInput      si el payload no es válido.
//   - domain.ErrUnsupportedFormat si no hay renderer para el formato pedido.
//   - domain.ErrRendering         si el renderer falla.
func (uc *GenerateDocumentUseCase) Generate(ctx context.Context, req *dto.GenerateRequest) (*GeneratedDocument, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: payload vacío", domain.ErrInvalidInput)
	}

	// ── 1. Payload → dominio ──────────────────────────────────────────────────
	doc, err := req.ToEntity(uc.mapping)
	if err != nil {
		return nil, err
	}
	renderer, ok := uc.renderers[doc.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, doc.Format)
	}

	total := doc.Total()
	uc.log.Debug().
		Str("type", string(doc.Type)).
		Str("locale", string(doc.Locale)).
		Str("format", string(doc.Format)).
		Int("items", len(doc.Items)).
		Str("total", total.String()).
		Msg("generando documento")
	if len(doc.Items) > 0 && req.Order.Total.Set && !req.Order.Total.Value.Equal(total) {
		uc.log.Warn().
			Str("order_id", doc.Order.ID).
			Str("order_total", req.Order.Total.Value.String()).
			Str("items_total", total.String()).
			Msg("order.total no coincide con la suma de las líneas; se usa la suma")
	}

	// ── 2. Maquetación ────────────────────────────────────────────────────────
	plan, err := uc.planner.Plan(doc, uc.now())
	if err != nil {
		return nil, err
	}

	// ── 3. Render ─────────────────────────────────────────────────────────────
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := renderer.Render(ctx, plan)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) || errors.Is(err, domain.ErrInvalidInput) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRendering, err)
	}

	if uc.metrics != nil {
		uc.metrics.DocumentGenerated(string(doc.Type), string(doc.Format))
	}

	return &GeneratedDocument{
		Filename:    Filename(doc, plan.Slug),
		ContentType: renderer.ContentType(),
		Content:     content,
		Type:        doc.Type,
		Format:      doc.Format,
	}, nil
}

// Filename "<prefijo>-<número>.<ext>"; el prefijo por defecto es el slug del tipo.
// Sin número utilizable se usa "document".
func Filename(doc *entity.OrderDocument, slug string) string {
	prefix := sanitize(doc.Prefix)
	if prefix == "" {
		prefix = sanitize(slug)
	}
	number := sanitize(layout.ExtractOrderNumber(doc.Order.ID))
	if number == "" {
		number = "document"
	}
	if prefix == "" {
		return number + "." + string(doc.Format)
	}
	return prefix + "-" + number + "." + string(doc.Format)
}

// sanitize deja solo caracteres seguros para Content-Disposition.
func sanitize(s string) string {
	return strings.Trim(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		case r == ' ' || r == '/' || r == '\\':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(s)), "._")
}
