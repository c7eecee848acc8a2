package docx

import (
	"context"
	"fmt"

	"github.com/jhoicas/docgen-api/internal/application/ports"
	"github.com/jhoicas/docgen-api/internal/domain/entity"
	"github.com/jhoicas/docgen-api/internal/domain/layout"
)

// Renderer genera documentos WordprocessingML (.docx) a partir del plan.
type Renderer struct {
	application string
	font        string
}

// Option configura el Renderer.
type Option func(*Renderer)

// WithApplication nombre que se guarda en docProps/app.xml.
func WithApplication(name string) Option { return func(r *Renderer) { r.application = name } }

// WithFont fuente por defecto del documento.
func WithFont(name string) Option { return func(r *Renderer) { r.font = name } }

// NewRenderer crea el renderer con Times New Roman 11 pt.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{application: "docgen-api", font: "Times New Roman"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Format implementa ports.DocumentRenderer.
func (r *Renderer) Format() entity.OutputFormat { return entity.FormatDOCX }

// ContentType implementa ports.DocumentRenderer.
func (r *Renderer) ContentType() string { return ContentType }

// Render construye las partes del paquete y las comprime.
func (r *Renderer) Render(ctx context.Context, plan *layout.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("docx: plan vacío")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lang := "en-US"
	if plan.Locale == entity.LocaleRU {
		lang = "ru-RU"
	}
	return writePackage([]part{
		{partContentTypes, contentTypesPart()},
		{partRootRels, rootRelsPart()},
		{partDocument, documentPart(plan)},
		{partStyles, stylesPart(r.font, sizeNormal, lang)},
		{partDocumentRels, documentRelsPart()},
		{partCore, corePart(plan.Title, plan.Author)},
		{partApp, appPart(r.application)},
	})
}

var _ ports.DocumentRenderer = (*Renderer)(nil)
