package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/docgen-api/internal/domain"
	"github.com/jhoicas/docgen-api/internal/domain/entity"
	"github.com/jhoicas/docgen-api/pkg/ruspell"
)

// Anchos fijos de la tabla de líneas, en twips.
const (
	ColIndexWidth = 567  // 1 cm
	ColCodeWidth  = 1134 // 2 cm
	ColQtyWidth   = 1304 // 2,3 cm
	ColPriceWidth = 1701 // 3 cm
	ColTotalWidth = 1814 // 3,2 cm
	MinNameWidth  = 2268 // 4 cm
)

// Planner decide secciones, anchos y textos de un documento.
// No guarda estado entre llamadas: un mismo Planner sirve a todas las peticiones.
type Planner struct {
	formatter *ruspell.Formatter
	templates Templates
	page      Page
	minName   int
}

// Option configura el Planner.
type Option func(*Planner)

// WithPage cambia la geometría de la página.
func WithPage(p Page) Option { return func(pl *Planner) { pl.page = p } }

// WithTemplates reemplaza el registro de plantillas.
func WithTemplates(t Templates) Option { return func(pl *Planner) { pl.templates = t } }

// WithMinNameWidth cambia el ancho mínimo de la columna de nombre.
func WithMinNameWidth(w int) Option { return func(pl *Planner) { pl.minName = w } }

// NewPlanner construye el Planner con A4 y las plantillas por defecto.
func NewPlanner(f *ruspell.Formatter, opts ...Option) *Planner {
	p := &Planner{
		formatter: f,
		templates: DefaultTemplates(),
		page:      A4,
		minName:   MinNameWidth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan construye el plan de maquetación. now es la fecha de generación que se
// imprime en la cabecera; es el único dato que no sale del payload.
func (p *Planner) Plan(doc *entity.OrderDocument, now time.Time) (*Plan, error) {
	tmpl, labels, ok := p.templates.Lookup(doc.Locale, doc.Type)
	if !ok {
		return nil, fmt.Errorf("%w: sin plantilla para %s/%s", domain.ErrInvalidInput, doc.Locale, doc.Type)
	}

	number := p.documentNumber(doc)
	total := doc.Total()

	plan := &Plan{
		Type:   doc.Type,
		Locale: doc.Locale,
		Slug:   tmpl.Slug,
		Title:  strings.TrimSpace(tmpl.DocumentTitle + " " + number),
		Author: doc.Company.Name,
		Page:   p.page,
	}

	if !doc.Company.IsEmpty() {
		plan.Sections = append(plan.Sections, SectionCompanyHeader)
		plan.Company = Block{Title: doc.Company.Name, Lines: partyLines(doc.Company, labels)}
	}

	plan.Sections = append(plan.Sections, SectionDocumentHeader)
	plan.Header = p.header(doc, tmpl, labels, number, now)

	plan.Sections = append(plan.Sections, SectionItems)
	plan.Items = p.items(doc, labels, total)

	plan.Sections = append(plan.Sections, SectionSummary)
	summary, err := p.summary(doc, labels, total)
	if err != nil {
		return nil, err
	}
	plan.Summary = summary

	if doc.WorkDays > 0 {
		deadline, err := p.deadline(doc.WorkDays, labels)
		if err != nil {
			return nil, err
		}
		plan.Sections = append(plan.Sections, SectionDeadline)
		plan.Deadline = fmt.Sprintf(tmpl.DeadlineText, deadline)
	}

	plan.Sections = append(plan.Sections, SectionFooter)
	plan.Footer = p.footer(doc, tmpl, labels)

	return plan, nil
}

// documentNumber número visible: la factura prefiere invoiceNumber; el resto usa el ID del pedido.
func (p *Planner) documentNumber(doc *entity.OrderDocument) string {
	if doc.Type == entity.DocumentTypeInvoice && doc.Order.InvoiceNumber != "" {
		return doc.Order.InvoiceNumber
	}
	return ExtractOrderNumber(doc.Order.ID)
}

func (p *Planner) header(doc *entity.OrderDocument, tmpl Template, labels Labels, number string, now time.Time) DocumentHeader {
	title := strings.TrimSpace(tmpl.NumberLabel + " " + number)
	if doc.Order.Date != "" {
		title += fmt.Sprintf(labels.DatePrefix, p.formatDate(doc.Order.Date, doc.Locale))
	}

	h := DocumentHeader{
		Title:      title,
		Lines:      []string{fmt.Sprintf(labels.GeneratedOn, p.formatTime(now, doc.Locale))},
		OrderTitle: doc.Order.Title,
	}
	switch doc.Type {
	case entity.DocumentTypePurchaseOrder:
		if doc.Order.PONumber != "" {
			h.Lines = append(h.Lines, fmt.Sprintf(labels.PONumber, doc.Order.PONumber))
		}
	case entity.DocumentTypeInvoice:
		if doc.Order.InvoiceNumber != "" && doc.Order.ID != "" {
			h.Lines = append(h.Lines, fmt.Sprintf(labels.OrderRef, doc.Order.ID))
		}
	}

	if !doc.Client.IsEmpty() {
		client := &Block{Title: tmpl.ClientLabel}
		if doc.Client.Name != "" {
			client.Lines = append(client.Lines, doc.Client.Name)
		}
		client.Lines = append(client.Lines, partyLines(doc.Client, labels)...)
		h.Client = client
	}
	return h
}

func (p *Planner) items(doc *entity.OrderDocument, labels Labels, total decimal.Decimal) ItemTable {
	hasCode := false
	for _, it := range doc.Items {
		if it.Code != "" {
			hasCode = true
			break
		}
	}

	fixed := []int{ColIndexWidth, ColQtyWidth, ColPriceWidth, ColTotalWidth}
	if hasCode {
		fixed = append(fixed, ColCodeWidth)
	}
	nameWidth, clamped := RemainderWidth(p.page.AvailableWidth(), p.minName, fixed...)

	table := ItemTable{Clamped: clamped}
	table.Columns = append(table.Columns, Column{Header: labels.ColIndex, Width: ColIndexWidth, Align: AlignCenter})
	if hasCode {
		table.Columns = append(table.Columns, Column{Header: labels.ColCode, Width: ColCodeWidth, Align: AlignLeft})
	}
	table.Columns = append(table.Columns,
		Column{Header: labels.ColName, Width: nameWidth, Align: AlignLeft},
		Column{Header: labels.ColQty, Width: ColQtyWidth, Align: AlignCenter},
		Column{Header: labels.ColPrice, Width: ColPriceWidth, Align: AlignRight},
		Column{Header: labels.ColTotal, Width: ColTotalWidth, Align: AlignRight},
	)

	for i, it := range doc.Items {
		row := []string{strconv.Itoa(i + 1)}
		if hasCode {
			row = append(row, it.Code)
		}
		row = append(row,
			it.Name,
			formatQuantity(it.Quantity, it.Unit, labels.DecimalComma),
			p.formatter.FormatNumber(it.UnitPrice()),
			p.formatter.FormatNumber(it.LineTotal),
		)
		table.Rows = append(table.Rows, row)
	}
	if len(table.Rows) == 0 {
		table.EmptyText = labels.NoItems
	}

	table.Totals = []TotalLine{{Label: labels.TotalLabel, Value: p.formatter.FormatNumber(total)}}
	if doc.Order.Tax.IsPositive() {
		table.Totals = append(table.Totals, TotalLine{Label: labels.TaxLabel, Value: p.formatter.FormatNumber(doc.Order.Tax)})
	}
	return table
}

func (p *Planner) summary(doc *entity.OrderDocument, labels Labels, total decimal.Decimal) (Summary, error) {
	s := Summary{Line: fmt.Sprintf(labels.Summary, len(doc.Items), p.formatter.FormatNumber(total))}
	if labels.SpellAmounts {
		words, err := p.formatter.SpellMoney(total)
		if err != nil {
			return Summary{}, fmt.Errorf("%w: importe total: %v", domain.ErrInvalidInput, err)
		}
		s.Words = words
	}
	return s, nil
}

func (p *Planner) deadline(days int64, labels Labels) (string, error) {
	if labels.SpellWorkdays {
		words, err := p.formatter.SpellWorkdays(days)
		if err != nil {
			return "", fmt.Errorf("%w: plazo: %v", domain.ErrInvalidInput, err)
		}
		return words, nil
	}
	if days == 1 {
		return fmt.Sprintf(labels.WorkdaysSingle, days), nil
	}
	return fmt.Sprintf(labels.WorkdaysPlural, days), nil
}

func (p *Planner) footer(doc *entity.OrderDocument, tmpl Template, labels Labels) Footer {
	f := Footer{
		Variant: tmpl.Footer,
		Widths:  ProportionalWidths(p.page.AvailableWidth(), 1, 1),
	}
	switch tmpl.Footer {
	case FooterDirectorContacts:
		f.Left = Block{Title: labels.DirectorTitle, Lines: signatureLines(doc.Company, labels)}
		if labels.Stamp != "" {
			f.Left.Lines = append(f.Left.Lines, labels.Stamp)
		}
		f.Right = Block{Title: labels.ContactsTitle}
		appendf(&f.Right.Lines, labels.Phone, doc.Company.Phone)
		appendf(&f.Right.Lines, labels.Email, doc.Company.Email)
		if doc.Company.Address != "" {
			f.Right.Lines = append(f.Right.Lines, doc.Company.Address)
		}
	default:
		f.Left = Block{Title: tmpl.LeftTitle, Lines: signatureLines(doc.Company, labels)}
		f.Right = Block{Title: tmpl.RightTitle, Lines: signatureLines(doc.Client, labels)}
	}
	return f
}

func (p *Planner) formatDate(raw string, locale entity.Locale) string {
	if locale == entity.LocaleRU {
		return p.formatter.FormatDate(raw)
	}
	if t, ok := ruspell.ParseDate(raw); ok {
		return t.Format("January 2, 2006")
	}
	return raw
}

func (p *Planner) formatTime(t time.Time, locale entity.Locale) string {
	if locale == entity.LocaleRU {
		return p.formatter.FormatTime(t)
	}
	return t.Format("January 2, 2006")
}

// ── helpers ───────────────────────────────────────────────────────────────────

// partyLines datos de contacto y bancarios; cada campo vacío se omite.
func partyLines(party entity.Party, labels Labels) []string {
	var lines []string
	if party.Address != "" {
		lines = append(lines, party.Address)
	}
	switch {
	case party.INN != "" && party.KPP != "":
		lines = append(lines, fmt.Sprintf(labels.TaxIDs, party.INN, party.KPP))
	case party.INN != "":
		lines = append(lines, fmt.Sprintf(labels.TaxID, party.INN))
	}
	appendf(&lines, labels.Phone, party.Phone)
	appendf(&lines, labels.Email, party.Email)
	appendf(&lines, labels.Bank, party.BankName)
	appendf(&lines, labels.BankAccount, party.Account)
	appendf(&lines, labels.CorrAccount, party.CorrAccount)
	appendf(&lines, labels.BIK, party.BIK)
	return lines
}

func signatureLines(party entity.Party, labels Labels) []string {
	var lines []string
	if party.Name != "" {
		lines = append(lines, party.Name)
	}
	if party.Director != "" {
		lines = append(lines, fmt.Sprintf(labels.Signature, party.Director))
	} else {
		lines = append(lines, labels.SignatureBlank)
	}
	return lines
}

func appendf(lines *[]string, format, value string) {
	if value != "" {
		*lines = append(*lines, fmt.Sprintf(format, value))
	}
}

// formatQuantity "2", "2,5 шт" (coma decimal en ru).
func formatQuantity(q decimal.Decimal, unit string, comma bool) string {
	s := q.String()
	if comma {
		s = strings.Replace(s, ".", ",", 1)
	}
	if unit != "" {
		s += " " + unit
	}
	return s
}
