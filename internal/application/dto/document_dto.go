package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/jhoicas/docgen-api/internal/domain"
	"github.com/jhoicas/docgen-api/internal/domain/entity"
)

// GenerateRequest body para POST /generate.
type GenerateRequest struct {
	Type               string       `json:"type"`   // po | invoice | specification (y alias)
	Format             string       `json:"format"` // docx | pdf
	Locale             string       `json:"locale"` // etiqueta BCP-47
	Company            PartyRequest `json:"company"`
	Client             PartyRequest `json:"client"`
	Order              OrderRequest `json:"order"`
	Jobs               []JobRequest `json:"jobs"`
	WorkCompletionDays Days         `json:"workCompletionDays"`
	DocumentPrefix     string       `json:"documentPrefix"`
}

// PartyRequest empresa emisora o cliente.
type PartyRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	BankName    string `json:"bankName"`
	Account     string `json:"account"`
	CorrAccount string `json:"corrAccount"`
	BIK         string `json:"bik"`
	INN         string `json:"inn"`
	KPP         string `json:"kpp"`
	Director    string `json:"director"`
}

// OrderRequest cabecera del pedido.
type OrderRequest struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	OrderTitle    string `json:"orderTitle"`
	Total         Amount `json:"total"`
	Subtotal      Amount `json:"subtotal"`
	Tax           Amount `json:"tax"`
	PONumber      string `json:"poNumber"`
	InvoiceNumber string `json:"invoiceNumber"`
}

// JobRequest línea del pedido.
type JobRequest struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Qty       Quantity `json:"qty"`
	Unit      string   `json:"unit"`
	UnitPrice Amount   `json:"unitPrice"`
	LineTotal Amount   `json:"lineTotal"`
}

// ── Tipos JSON tolerantes ─────────────────────────────────────────────────────

// Amount importe que acepta número JSON o cadena ("1 200,50", "200.00").
type Amount struct {
	Value decimal.Decimal
	Set   bool
}

// NewAmount construye un Amount presente.
func NewAmount(d decimal.Decimal) Amount { return Amount{Value: d, Set: true} }

// UnmarshalJSON implementa json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	raw, isNull, err := scalar(b)
	if err != nil || isNull {
		return err
	}
	raw = normalizeNumber(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("importe no numérico %q", raw)
	}
	*a = NewAmount(d)
	return nil
}

// MarshalJSON implementa json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Set {
		return []byte("null"), nil
	}
	return []byte(a.Value.String()), nil
}

// Quantity cantidad como número o cadena con unidad ("3 шт", "2,5 м").
type Quantity struct {
	Value decimal.Decimal
	Unit  string
	Set   bool
}

// UnmarshalJSON implementa json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	raw, isNull, err := scalar(b)
	if err != nil || isNull {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	end := strings.IndexFunc(raw, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != ',' && r != '-' && r != '+' && !isGroupSpace(r)
	})
	num, unit := raw, ""
	if end >= 0 {
		num, unit = raw[:end], strings.TrimSpace(raw[end:])
	}
	num = normalizeNumber(num)
	if num == "" {
		return fmt.Errorf("cantidad no numérica %q", raw)
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return fmt.Errorf("cantidad no numérica %q", raw)
	}
	*q = Quantity{Value: d, Unit: unit, Set: true}
	return nil
}

// Days plazo en días como número entero o cadena numérica.
type Days int64

// UnmarshalJSON implementa json.Unmarshaler.
func (d *Days) UnmarshalJSON(b []byte) error {
	raw, isNull, err := scalar(b)
	if err != nil || isNull {
		return err
	}
	raw = normalizeNumber(raw)
	if raw == "" {
		*d = 0
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || !v.IsInteger() {
		return fmt.Errorf("plazo no entero %q", raw)
	}
	*d = Days(v.IntPart())
	return nil
}

// scalar devuelve el texto de un número o cadena JSON.
func scalar(b []byte) (raw string, isNull bool, err error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return "", true, nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		return s, false, nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", false, fmt.Errorf("se esperaba número o cadena")
	}
	return n.String(), false, nil
}

// normalizeNumber quita separadores de miles y usa punto decimal: "1 200,50" → "1200.50".
func normalizeNumber(s string) string {
	s = strings.Map(func(r rune) rune {
		if isGroupSpace(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	return strings.Replace(s, ",", ".", 1)
}

func isGroupSpace(r rune) bool {
	return r == ' ' || r == '\u00a0' || r == '\u202f'
}

// ── Mapeo a dominio ───────────────────────────────────────────────────────────

// MappingOptions valores por defecto que dependen de la configuración.
type MappingOptions struct {
	DefaultLocale entity.Locale
}

// ToEntity valida el payload y construye el documento de dominio.
// Los errores envuelven domain.ErrInvalidInput o domain.ErrUnsupportedFormat.
func (r *GenerateRequest) ToEntity(opts MappingOptions) (*entity.OrderDocument, error) {
	typ, err := entity.ParseDocumentType(r.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	format, err := ParseFormat(r.Format)
	if err != nil {
		return nil, err
	}
	if r.WorkCompletionDays < 0 {
		return nil, fmt.Errorf("%w: workCompletionDays negativo", domain.ErrInvalidInput)
	}

	order := entity.Order{
		ID:            strings.TrimSpace(r.Order.ID),
		Date:          strings.TrimSpace(r.Order.Date),
		Title:         r.Order.OrderTitle,
		PONumber:      r.Order.PONumber,
		InvoiceNumber: r.Order.InvoiceNumber,
	}
	for _, f := range []struct {
		name string
		in   Amount
		out  *decimal.Decimal
	}{
		{"order.total", r.Order.Total, &order.Total},
		{"order.subtotal", r.Order.Subtotal, &order.Subtotal},
		{"order.tax", r.Order.Tax, &order.Tax},
	} {
		if f.in.Value.IsNegative() {
			return nil, fmt.Errorf("%w: %s negativo", domain.ErrInvalidInput, f.name)
		}
		*f.out = f.in.Value
	}

	items := make([]entity.LineItem, 0, len(r.Jobs))
	for i, job := range r.Jobs {
		item, err := job.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%w: jobs[%d]: %v", domain.ErrInvalidInput, i, err)
		}
		items = append(items, item)
	}

	return &entity.OrderDocument{
		Type:     typ,
		Locale:   ParseLocale(r.Locale, opts.DefaultLocale),
		Format:   format,
		Prefix:   strings.TrimSpace(r.DocumentPrefix),
		Order:    order,
		Company:  r.Company.toEntity(),
		Client:   r.Client.toEntity(),
		Items:    items,
		WorkDays: int64(r.WorkCompletionDays),
	}, nil
}

// toEntity sin lineTotal se calcula unitPrice × qty; después el precio unitario
// siempre se deriva de lineTotal.
func (j JobRequest) toEntity() (entity.LineItem, error) {
	qty := j.Qty.Value
	if qty.IsNegative() {
		return entity.LineItem{}, fmt.Errorf("qty negativo")
	}
	if j.UnitPrice.Value.IsNegative() || j.LineTotal.Value.IsNegative() {
		return entity.LineItem{}, fmt.Errorf("importe negativo")
	}
	total := j.LineTotal.Value
	if !j.LineTotal.Set && j.UnitPrice.Set {
		total = j.UnitPrice.Value.Mul(qty)
	}
	unit := strings.TrimSpace(j.Unit)
	if unit == "" {
		unit = j.Qty.Unit
	}
	return entity.LineItem{
		Code:      strings.TrimSpace(j.Code),
		Name:      j.Name,
		Quantity:  qty,
		Unit:      unit,
		LineTotal: total,
	}, nil
}

func (p PartyRequest) toEntity() entity.Party {
	return entity.Party{
		Name:        strings.TrimSpace(p.Name),
		Address:     strings.TrimSpace(p.Address),
		Phone:       strings.TrimSpace(p.Phone),
		Email:       strings.TrimSpace(p.Email),
		BankName:    strings.TrimSpace(p.BankName),
		Account:     strings.TrimSpace(p.Account),
		CorrAccount: strings.TrimSpace(p.CorrAccount),
		BIK:         strings.TrimSpace(p.BIK),
		INN:         strings.TrimSpace(p.INN),
		KPP:         strings.TrimSpace(p.KPP),
		Director:    strings.TrimSpace(p.Director),
	}
}

// ParseFormat vacío = docx.
func ParseFormat(s string) (entity.OutputFormat, error) {
	switch entity.OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", entity.FormatDOCX:
		return entity.FormatDOCX, nil
	case entity.FormatPDF:
		return entity.FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
	}
}

// ParseLocale reduce una etiqueta BCP-47 a ru o en; vacío o inválido usa def.
func ParseLocale(s string, def entity.Locale) entity.Locale {
	if def == "" {
		def = entity.LocaleRU
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	tag, err := language.Parse(s)
	if err != nil {
		return def
	}
	if base, _ := tag.Base(); base.String() == "ru" {
		return entity.LocaleRU
	}
	return entity.LocaleEN
}
