package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docgen-api/internal/application/dto"
	"github.com/jhoicas/docgen-api/internal/domain"
	"github.com/jhoicas/docgen-api/internal/domain/entity"
)

func decode(t *testing.T, body string) dto.GenerateRequest {
	t.Helper()
	var req dto.GenerateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

// ──────────────────────────────────────────────────────────────────────────────
// Tipos JSON tolerantes
// ──────────────────────────────────────────────────────────────────────────────

func TestAmount_AceptaNumeroYCadena(t *testing.T) {
	tests := map[string]string{
		`200`:               "200",
		`200.5`:             "200.5",
		`"200.00"`:          "200",
		`"1 200,50"`:        "1200.5",
		"\"1\u00a0200,50\"": "1200.5",
		`" 3 000 "`:         "3000",
	}
	for in, want := range tests {
		var a dto.Amount
		require.NoError(t, json.Unmarshal([]byte(in), &a), in)
		assert.True(t, a.Set, in)
		assert.True(t, decimal.RequireFromString(want).Equal(a.Value), "in=%s got=%s", in, a.Value)
	}
}

func TestAmount_NullYVacioNoSeMarcan(t *testing.T) {
	for _, in := range []string{`null`, `""`} {
		var a dto.Amount
		require.NoError(t, json.Unmarshal([]byte(in), &a))
		assert.False(t, a.Set, in)
	}
}

func TestAmount_RechazaTexto(t *testing.T) {
	var a dto.Amount
	assert.Error(t, json.Unmarshal([]byte(`"doscientos"`), &a))
	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
}

func TestQuantity_ConUnidad(t *testing.T) {
	tests := []struct {
		in   string
		qty  string
		unit string
	}{
		{`2`, "2", ""},
		{`"3 шт"`, "3", "шт"},
		{`"2,5 м"`, "2.5", "м"},
		{`"10кг"`, "10", "кг"},
	}
	for _, tt := range tests {
		var q dto.Quantity
		require.NoError(t, json.Unmarshal([]byte(tt.in), &q), tt.in)
		assert.True(t, decimal.RequireFromString(tt.qty).Equal(q.Value), tt.in)
		assert.Equal(t, tt.unit, q.Unit, tt.in)
	}

	var q dto.Quantity
	assert.Error(t, json.Unmarshal([]byte(`"шт"`), &q))
}

func TestDays(t *testing.T) {
	var d dto.Days
	require.NoError(t, json.Unmarshal([]byte(`10`), &d))
	assert.Equal(t, dto.Days(10), d)
	require.NoError(t, json.Unmarshal([]byte(`"15"`), &d))
	assert.Equal(t, dto.Days(15), d)
	assert.Error(t, json.Unmarshal([]byte(`2.5`), &d))
}

// ──────────────────────────────────────────────────────────────────────────────
// ToEntity
// ──────────────────────────────────────────────────────────────────────────────

func TestToEntity_Factura(t *testing.T) {
	req := decode(t, `{
		"type": "invoice",
		"company": {"name": " ООО Ромашка ", "inn": "7701234567"},
		"order": {"id": "order-27193", "date": "2025-03-05", "total": "200.00"},
		"jobs": [{"name": "Work A", "qty": "2", "lineTotal": "200.00"}],
		"workCompletionDays": 10
	}`)

	doc, err := req.ToEntity(dto.MappingOptions{DefaultLocale: entity.LocaleRU})
	require.NoError(t, err)

	assert.Equal(t, entity.DocumentTypeInvoice, doc.Type)
	assert.Equal(t, entity.LocaleRU, doc.Locale)
	assert.Equal(t, entity.FormatDOCX, doc.Format)
	assert.Equal(t, "ООО Ромашка", doc.Company.Name)
	assert.True(t, doc.Client.IsEmpty())
	assert.Equal(t, int64(10), doc.WorkDays)
	require.Len(t, doc.Items, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(doc.Items[0].UnitPrice()))
	assert.True(t, decimal.NewFromInt(200).Equal(doc.Total()))
}

func TestToEntity_TipoPorDefectoEsOrdenDeCompra(t *testing.T) {
	req := decode(t, `{}`)
	doc, err := req.ToEntity(dto.MappingOptions{})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentTypePurchaseOrder, doc.Type)
	assert.Equal(t, entity.LocaleRU, doc.Locale)
	assert.Empty(t, doc.Items)
}

func TestToEntity_LineTotalDesdePrecioUnitario(t *testing.T) {
	req := decode(t, `{"jobs": [{"name": "Кабель", "qty": "3 шт", "unitPrice": 150}]}`)
	doc, err := req.ToEntity(dto.MappingOptions{})
	require.NoError(t, err)

	item := doc.Items[0]
	assert.True(t, decimal.NewFromInt(450).Equal(item.LineTotal))
	assert.Equal(t, "шт", item.Unit)
	assert.True(t, decimal.NewFromInt(150).Equal(item.UnitPrice()))
}

func TestToEntity_LineTotalTienePrioridad(t *testing.T) {
	req := decode(t, `{"jobs": [{"qty": 2, "unit": "ч", "unitPrice": 999, "lineTotal": 200}]}`)
	doc, err := req.ToEntity(dto.MappingOptions{})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(100).Equal(doc.Items[0].UnitPrice()))
	assert.Equal(t, "ч", doc.Items[0].Unit)
}

func TestToEntity_Locale(t *testing.T) {
	tests := map[string]entity.Locale{
		"ru":    entity.LocaleRU,
		"ru-RU": entity.LocaleRU,
		"en":    entity.LocaleEN,
		"en-US": entity.LocaleEN,
		"de":    entity.LocaleEN,
		"":      entity.LocaleEN,
		"@@@":   entity.LocaleEN,
	}
	for in, want := range tests {
		assert.Equal(t, want, dto.ParseLocale(in, entity.LocaleEN), "locale=%q", in)
	}
	assert.Equal(t, entity.LocaleRU, dto.ParseLocale("", ""))
}

func TestToEntity_Errores(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"tipo desconocido", `{"type": "act"}`, domain.ErrInvalidInput},
		{"formato desconocido", `{"format": "xlsx"}`, domain.ErrUnsupportedFormat},
		{"total negativo", `{"order": {"total": -1}}`, domain.ErrInvalidInput},
		{"qty negativa", `{"jobs": [{"qty": -2}]}`, domain.ErrInvalidInput},
		{"importe de línea negativo", `{"jobs": [{"qty": 1, "lineTotal": "-5"}]}`, domain.ErrInvalidInput},
		{"plazo negativo", `{"workCompletionDays": -3}`, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := decode(t, tt.body)
			_, err := req.ToEntity(dto.MappingOptions{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := dto.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, entity.FormatDOCX, f)

	f, err = dto.ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, entity.FormatPDF, f)
}
