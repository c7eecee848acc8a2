// Package pdf renderiza el plan de maquetación como PDF con Maroto v2.
//
// La rejilla de columnas de Maroto se dimensiona con los anchos del plan
// (twips), de modo que la tabla de líneas conserva las proporciones del .docx.
package pdf

import (
	"context"
	"fmt"
	"unicode"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/docgen-api/internal/application/ports"
	"github.com/jhoicas/docgen-api/internal/domain"
	domainentity "github.com/jhoicas/docgen-api/internal/domain/entity"
	"github.com/jhoicas/docgen-api/internal/domain/layout"
)

// ContentType tipo MIME del PDF.
const ContentType = "application/pdf"

const (
	builtinFamily = "helvetica"
	customFamily  = "docfont"
	twipsPerMM    = 1440 / 25.4
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorHeaderFill = &props.Color{Red: 217, Green: 217, Blue: 217}
	colorGray       = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBorder     = &props.Color{Red: 0, Green: 0, Blue: 0}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// Renderer implementa ports.DocumentRenderer usando Maroto v2.
type Renderer struct {
	fontPath string
	fonts    []*entity.CustomFont
}

// Option configura el Renderer.
type Option func(*Renderer)

// WithFontPath TTF con cirílico; sin él solo se pueden generar textos Latin-1.
func WithFontPath(path string) Option { return func(r *Renderer) { r.fontPath = path } }

// NewRenderer construye el renderer y carga la fuente si se configuró.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(customFamily, fontstyle.Normal, r.fontPath).
			AddUTF8Font(customFamily, fontstyle.Bold, r.fontPath).
			AddUTF8Font(customFamily, fontstyle.Italic, r.fontPath).
			AddUTF8Font(customFamily, fontstyle.BoldItalic, r.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuente %s: %w", r.fontPath, err)
		}
		r.fonts = fonts
	}
	return r, nil
}

// Format implementa ports.DocumentRenderer.
func (r *Renderer) Format() domainentity.OutputFormat { return domainentity.FormatPDF }

// ContentType implementa ports.DocumentRenderer.
func (r *Renderer) ContentType() string { return ContentType }

// Render genera el PDF y devuelve sus bytes.
func (r *Renderer) Render(ctx context.Context, plan *layout.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("pdf: plan vacío")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	family := builtinFamily
	if len(r.fonts) > 0 {
		family = customFamily
	} else if plan.Locale == domainentity.LocaleRU || needsUnicodeFont(plan) {
		return nil, fmt.Errorf("%w: el PDF con cirílico requiere RENDER_PDF_FONT_PATH", domain.ErrUnsupportedFormat)
	}

	grid := plan.Page.AvailableWidth()
	if w := layout.Sum(plan.Items.Widths()); w > grid {
		grid = w
	}

	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(mm(plan.Page.MarginLeft)).
		WithRightMargin(mm(plan.Page.MarginRight)).
		WithTopMargin(mm(plan.Page.MarginTop)).
		WithBottomMargin(mm(plan.Page.MarginBottom)).
		WithMaxGridSize(grid).
		WithDefaultFont(&props.Font{Family: family, Size: 10}).
		WithTitle(plan.Title, true).
		WithAuthor(plan.Author, true)
	if len(r.fonts) > 0 {
		b = b.WithCustomFonts(r.fonts)
	}
	m := maroto.New(b.Build())

	w := &rowWriter{grid: grid}
	for _, s := range plan.Sections {
		switch s {
		case layout.SectionCompanyHeader:
			w.companyHeader(plan.Company)
		case layout.SectionDocumentHeader:
			w.documentHeader(plan.Header)
		case layout.SectionItems:
			w.items(plan.Items)
		case layout.SectionSummary:
			w.summary(plan.Summary)
		case layout.SectionDeadline:
			w.spacer(3)
			w.text(plan.Deadline, props.Text{Size: 10})
		case layout.SectionFooter:
			w.spacer(8)
			w.footer(plan.Footer)
		}
	}
	m.AddRows(w.rows...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// rowWriter acumula filas de Maroto sobre una rejilla de grid unidades.
type rowWriter struct {
	grid int
	rows []core.Row
}

func (w *rowWriter) companyHeader(company layout.Block) {
	w.text(company.Title, props.Text{Style: fontstyle.Bold, Size: 11})
	for _, l := range company.Lines {
		w.text(l, props.Text{Size: 8, Color: colorGray})
	}
	w.rows = append(w.rows, line.NewRow(3, props.Line{Color: colorGray, Thickness: 0.3}))
}

func (w *rowWriter) documentHeader(h layout.DocumentHeader) {
	w.rows = append(w.rows, row.New(9).Add(col.New(w.grid).Add(
		text.New(h.Title, props.Text{Style: fontstyle.Bold, Size: 13, Align: align.Center, Top: 1}),
	)))
	for _, l := range h.Lines {
		w.text(l, props.Text{Size: 8, Align: align.Center, Color: colorGray})
	}
	if h.OrderTitle != "" {
		w.text(h.OrderTitle, props.Text{Style: fontstyle.Italic, Size: 10, Align: align.Center})
	}
	if h.Client != nil {
		w.spacer(2)
		w.text(h.Client.Title, props.Text{Style: fontstyle.Bold, Size: 10})
		for _, l := range h.Client.Lines {
			w.text(l, props.Text{Size: 9})
		}
	}
	w.spacer(3)
}

func (w *rowWriter) items(t layout.ItemTable) {
	if len(t.Rows) == 0 {
		w.text(t.EmptyText, props.Text{Style: fontstyle.Italic, Size: 10})
	} else {
		cellStyle := &props.Cell{BorderType: border.Full, BorderColor: colorBorder, BorderThickness: 0.2}
		headerStyle := &props.Cell{BorderType: border.Full, BorderColor: colorBorder, BorderThickness: 0.2, BackgroundColor: colorHeaderFill}

		header := make([]core.Col, 0, len(t.Columns))
		for _, c := range t.Columns {
			header = append(header, col.New(c.Width).WithStyle(headerStyle).Add(
				text.New(c.Header, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1.5, Left: 1, Right: 1}),
			))
		}
		w.rows = append(w.rows, row.New(7).Add(header...))

		for _, r := range t.Rows {
			cols := make([]core.Col, 0, len(t.Columns))
			for i, c := range t.Columns {
				value := ""
				if i < len(r) {
					value = r[i]
				}
				cols = append(cols, col.New(c.Width).WithStyle(cellStyle).Add(
					text.New(value, props.Text{Size: 8, Align: alignOf(c.Align), Top: 1.5, Left: 1, Right: 1}),
				))
			}
			w.rows = append(w.rows, row.New(7).Add(cols...))
		}
	}
	for _, total := range t.Totals {
		w.text(total.Label+" "+total.Value, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1})
	}
}

func (w *rowWriter) summary(s layout.Summary) {
	w.spacer(3)
	w.text(s.Line, props.Text{Size: 10})
	if s.Words != "" {
		w.text(s.Words, props.Text{Style: fontstyle.Bold, Size: 10})
	}
}

// footer dos columnas proporcionales a los anchos del plan.
func (w *rowWriter) footer(f layout.Footer) {
	sizes := layout.ProportionalWidths(w.grid, f.Widths...)
	if len(sizes) < 2 {
		sizes = layout.ProportionalWidths(w.grid, 1, 1)
	}
	blocks := []layout.Block{f.Left, f.Right}
	lines := 0
	for _, b := range blocks {
		if n := len(b.Lines) + 1; n > lines {
			lines = n
		}
	}

	cols := make([]core.Col, 0, 2)
	for i, b := range blocks {
		comps := []core.Component{text.New(b.Title, props.Text{Style: fontstyle.Bold, Size: 10})}
		for j, l := range b.Lines {
			comps = append(comps, text.New(l, props.Text{Size: 9, Top: float64(j+1) * 5.5}))
		}
		cols = append(cols, col.New(sizes[i]).Add(comps...))
	}
	w.rows = append(w.rows, row.New(float64(lines)*5.5+2).Add(cols...))
}

func (w *rowWriter) text(s string, p props.Text) {
	if s == "" {
		return
	}
	h := 5.0
	if p.Size >= 11 {
		h = 6.5
	}
	w.rows = append(w.rows, row.New(h).Add(col.New(w.grid).Add(text.New(s, p))))
}

func (w *rowWriter) spacer(h float64) {
	w.rows = append(w.rows, row.New(h))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func mm(twips int) float64 {
	return float64(twips) / twipsPerMM
}

func alignOf(a layout.Align) align.Type {
	switch a {
	case layout.AlignCenter:
		return align.Center
	case layout.AlignRight:
		return align.Right
	default:
		return align.Left
	}
}

// needsUnicodeFont indica si algún texto del plan sale de Latin-1, que es lo
// único que cubren las fuentes incorporadas.
func needsUnicodeFont(plan *layout.Plan) bool {
	check := func(ss ...string) bool {
		for _, s := range ss {
			for _, r := range s {
				if r > unicode.MaxLatin1 {
					return true
				}
			}
		}
		return false
	}
	blocks := []layout.Block{plan.Company, plan.Footer.Left, plan.Footer.Right}
	if plan.Header.Client != nil {
		blocks = append(blocks, *plan.Header.Client)
	}
	for _, b := range blocks {
		if check(b.Title) || check(b.Lines...) {
			return true
		}
	}
	if check(plan.Title, plan.Author, plan.Header.Title, plan.Header.OrderTitle, plan.Summary.Line,
		plan.Summary.Words, plan.Deadline, plan.Items.EmptyText) || check(plan.Header.Lines...) {
		return true
	}
	for _, c := range plan.Items.Columns {
		if check(c.Header) {
			return true
		}
	}
	for _, r := range plan.Items.Rows {
		if check(r...) {
			return true
		}
	}
	for _, t := range plan.Items.Totals {
		if check(t.Label, t.Value) {
			return true
		}
	}
	return false
}

var _ ports.DocumentRenderer = (*Renderer)(nil)
