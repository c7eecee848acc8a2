package docx_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docgen-api/internal/domain/entity"
	"github.com/jhoicas/docgen-api/internal/domain/layout"
	"github.com/jhoicas/docgen-api/internal/infrastructure/docx"
	"github.com/jhoicas/docgen-api/pkg/ruspell"
)

func buildPlan(t *testing.T, mutate func(*entity.OrderDocument)) *layout.Plan {
	t.Helper()
	doc := &entity.OrderDocument{
		Type:    entity.DocumentTypeInvoice,
		Locale:  entity.LocaleRU,
		Format:  entity.FormatDOCX,
		Order:   entity.Order{ID: "order-27193", Date: "2025-03-05"},
		Company: entity.Party{Name: "ООО «Ромашка»", INN: "7701234567", Director: "Иванов И.И."},
		Client:  entity.Party{Name: "ИП Петров"},
		Items: []entity.LineItem{
			{Code: "A-1", Name: "Work A", Quantity: decimal.NewFromInt(2), Unit: "шт", LineTotal: decimal.NewFromInt(200)},
		},
		WorkDays: 10,
	}
	if mutate != nil {
		mutate(doc)
	}
	f := ruspell.NewFormatter(ruspell.Russian(), ruspell.Options{})
	plan, err := layout.NewPlanner(f).Plan(doc, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return plan
}

// openPackage devuelve las partes del ZIP en orden.
func openPackage(t *testing.T, data []byte) ([]string, map[string][]byte) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	parts := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		names = append(names, f.Name)
		parts[f.Name] = b
	}
	return names, parts
}

func documentXML(t *testing.T, data []byte) *etree.Document {
	t.Helper()
	_, parts := openPackage(t, data)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(parts["word/document.xml"]))
	return doc
}

func texts(doc *etree.Document) []string {
	var out []string
	for _, el := range doc.FindElements("//w:t") {
		out = append(out, el.Text())
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Paquete
// ──────────────────────────────────────────────────────────────────────────────

// childTags devuelve los nombres cualificados de los hijos directos de el.
func childTags(el *etree.Element) []string {
	var tags []string
	for _, child := range el.ChildElements() {
		tags = append(tags, child.FullTag())
	}
	return tags
}

func TestRender_PartesDelPaquete(t *testing.T) {
	r := docx.NewRenderer()
	data, err := r.Render(context.Background(), buildPlan(t, nil))
	require.NoError(t, err)

	names, parts := openPackage(t, data)
	assert.Equal(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/_rels/document.xml.rels",
		"docProps/core.xml",
		"docProps/app.xml",
	}, names)

	for name, b := range parts {
		doc := etree.NewDocument()
		assert.NoError(t, doc.ReadFromBytes(b), name)
	}
	assert.Contains(t, string(parts["docProps/core.xml"]), "Счёт на оплату 27193")
	assert.Contains(t, string(parts["docProps/app.xml"]), "docgen-api")
	assert.Contains(t, string(parts["word/styles.xml"]), `w:val="ru-RU"`)
	assert.Equal(t, docx.ContentType, r.ContentType())
	assert.Equal(t, entity.FormatDOCX, r.Format())
}

func TestRender_Determinista(t *testing.T) {
	r := docx.NewRenderer()
	a, err := r.Render(context.Background(), buildPlan(t, nil))
	require.NoError(t, err)
	b, err := r.Render(context.Background(), buildPlan(t, nil))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

// ──────────────────────────────────────────────────────────────────────────────
// Contenido
// ──────────────────────────────────────────────────────────────────────────────

func TestRender_TextosYOrdenDeSecciones(t *testing.T) {
	data, err := docx.NewRenderer().Render(context.Background(), buildPlan(t, nil))
	require.NoError(t, err)

	all := strings.Join(texts(documentXML(t, data)), "\n")
	order := []string{
		"ООО «Ромашка»",
		"Счёт на оплату № 27193 от 5 марта 2025 г.",
		"Плательщик:",
		"Наименование",
		"Work A",
		"2 шт",
		"Итого: 200",
		"Всего наименований 1, на сумму 200 руб.",
		"Двести рублей",
		"Срок выполнения работ: Десять рабочих дней с момента поступления оплаты.",
		"Исполнитель",
		"_______________ / Иванов И.И. /",
	}
	last := -1
	for _, s := range order {
		i := strings.Index(all, s)
		require.GreaterOrEqual(t, i, 0, "falta %q", s)
		assert.Greater(t, i, last, "%q fuera de orden", s)
		last = i
	}
}

func TestRender_AnchosDeColumnaEnDxa(t *testing.T) {
	plan := buildPlan(t, nil)
	data, err := docx.NewRenderer().Render(context.Background(), plan)
	require.NoError(t, err)

	doc := documentXML(t, data)
	tables := doc.FindElements("//w:tbl")
	require.Len(t, tables, 2, "tabla de líneas + pie")

	sum := 0
	cols := tables[0].FindElements("./w:tblGrid/w:gridCol")
	require.Len(t, cols, 6)
	for _, c := range cols {
		w, err := strconv.Atoi(c.SelectAttrValue("w:w", ""))
		require.NoError(t, err)
		sum += w
	}
	assert.Equal(t, plan.Page.AvailableWidth(), sum)
	assert.Equal(t, strconv.Itoa(sum), tables[0].FindElement("./w:tblPr/w:tblW").SelectAttrValue("w:w", ""))

	footerCols := tables[1].FindElements("./w:tblGrid/w:gridCol")
	assert.Len(t, footerCols, 2)
	assert.Nil(t, tables[1].FindElement("./w:tblPr/w:tblStyle"), "el pie no lleva bordes")

	assert.Equal(t, []string{"w:tblStyle", "w:tblW", "w:tblLayout"}, childTags(tables[0].FindElement("./w:tblPr")))
	assert.Equal(t, []string{"w:tblW", "w:tblBorders", "w:tblLayout"}, childTags(tables[1].FindElement("./w:tblPr")))

	pgMar := doc.FindElement("//w:sectPr/w:pgMar")
	require.NotNil(t, pgMar)
	assert.Equal(t, "1701", pgMar.SelectAttrValue("w:left", ""))
}

func TestRender_SinLineas(t *testing.T) {
	plan := buildPlan(t, func(d *entity.OrderDocument) {
		d.Items = nil
		d.Order.Total = decimal.NewFromInt(1000)
	})
	data, err := docx.NewRenderer().Render(context.Background(), plan)
	require.NoError(t, err)

	doc := documentXML(t, data)
	assert.Len(t, doc.FindElements("//w:tbl"), 1, "solo la tabla del pie")
	all := texts(doc)
	assert.Contains(t, all, "Нет позиций")
	assert.Contains(t, all, "Одна тысяча рублей")
}

func TestRender_Ingles(t *testing.T) {
	plan := buildPlan(t, func(d *entity.OrderDocument) {
		d.Locale = entity.LocaleEN
		d.Type = entity.DocumentTypePurchaseOrder
	})
	data, err := docx.NewRenderer(docx.WithApplication("custom")).Render(context.Background(), plan)
	require.NoError(t, err)

	all := texts(documentXML(t, data))
	assert.Contains(t, all, "PURCHASE ORDER # 27193 dated March 5, 2025")
	assert.Contains(t, all, "Bill To:")
	assert.Contains(t, all, "Description")

	_, parts := openPackage(t, data)
	assert.Contains(t, string(parts["docProps/app.xml"]), "custom")
	assert.Contains(t, string(parts["word/styles.xml"]), `w:val="en-US"`)
}

func TestRender_Errores(t *testing.T) {
	r := docx.NewRenderer()
	_, err := r.Render(context.Background(), nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Render(ctx, buildPlan(t, nil))
	assert.ErrorIs(t, err, context.Canceled)
}
