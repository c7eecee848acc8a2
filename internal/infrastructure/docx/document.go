package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/docgen-api/internal/domain/layout"
)

const (
	tableGridStyle = "TableGrid"
	headerShading  = "D9D9D9"

	sizeSmall  = 18 // medios puntos: 9 pt
	sizeNormal = 22 // 11 pt
	sizeTitle  = 28 // 14 pt
)

// run formato de un fragmento de texto.
type run struct {
	bold   bool
	italic bool
	size   int // medios puntos; 0 = por defecto
}

// bodyBuilder escribe w:body a partir del plan.
type bodyBuilder struct {
	body *etree.Element
}

// documentPart construye word/document.xml recorriendo las secciones del plan en orden.
func documentPart(plan *layout.Plan) *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)

	b := &bodyBuilder{body: root.CreateElement("w:body")}
	for _, s := range plan.Sections {
		switch s {
		case layout.SectionCompanyHeader:
			b.companyHeader(plan.Company)
		case layout.SectionDocumentHeader:
			b.documentHeader(plan.Header)
		case layout.SectionItems:
			b.items(plan.Items)
		case layout.SectionSummary:
			b.summary(plan.Summary)
		case layout.SectionDeadline:
			b.spacer()
			b.paragraph(plan.Deadline, layout.AlignLeft, run{})
		case layout.SectionFooter:
			b.spacer()
			b.footer(plan.Footer)
		}
	}
	b.sectionProperties(plan.Page)
	return doc
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (b *bodyBuilder) companyHeader(company layout.Block) {
	b.paragraph(company.Title, layout.AlignLeft, run{bold: true})
	for _, line := range company.Lines {
		b.paragraph(line, layout.AlignLeft, run{size: sizeSmall})
	}
	b.spacer()
}

func (b *bodyBuilder) documentHeader(h layout.DocumentHeader) {
	b.paragraph(h.Title, layout.AlignCenter, run{bold: true, size: sizeTitle})
	for _, line := range h.Lines {
		b.paragraph(line, layout.AlignCenter, run{size: sizeSmall})
	}
	if h.OrderTitle != "" {
		b.paragraph(h.OrderTitle, layout.AlignCenter, run{italic: true})
	}
	if h.Client != nil {
		b.spacer()
		b.paragraph(h.Client.Title, layout.AlignLeft, run{bold: true})
		for _, line := range h.Client.Lines {
			b.paragraph(line, layout.AlignLeft, run{})
		}
	}
	b.spacer()
}

func (b *bodyBuilder) items(t layout.ItemTable) {
	if len(t.Rows) == 0 {
		b.paragraph(t.EmptyText, layout.AlignLeft, run{italic: true})
	} else {
		tbl := b.table(t.Widths(), true)
		header := tbl.CreateElement("w:tr")
		header.CreateElement("w:trPr").CreateElement("w:tblHeader")
		for _, col := range t.Columns {
			cell(header, col.Width, layout.AlignCenter, []string{col.Header}, run{bold: true}, headerShading)
		}
		for _, row := range t.Rows {
			tr := tbl.CreateElement("w:tr")
			for i, col := range t.Columns {
				text := ""
				if i < len(row) {
					text = row[i]
				}
				cell(tr, col.Width, col.Align, []string{text}, run{}, "")
			}
		}
	}
	for _, total := range t.Totals {
		b.paragraph(total.Label+" "+total.Value, layout.AlignRight, run{bold: true})
	}
}

func (b *bodyBuilder) summary(s layout.Summary) {
	b.spacer()
	b.paragraph(s.Line, layout.AlignLeft, run{})
	if s.Words != "" {
		b.paragraph(s.Words, layout.AlignLeft, run{bold: true})
	}
}

// footer tabla de dos columnas sin bordes.
func (b *bodyBuilder) footer(f layout.Footer) {
	tbl := b.table(f.Widths, false)
	tr := tbl.CreateElement("w:tr")
	for i, block := range []layout.Block{f.Left, f.Right} {
		width := 0
		if i < len(f.Widths) {
			width = f.Widths[i]
		}
		tc := cell(tr, width, layout.AlignLeft, nil, run{}, "")
		appendParagraph(tc, block.Title, layout.AlignLeft, run{bold: true})
		for _, line := range block.Lines {
			appendParagraph(tc, line, layout.AlignLeft, run{})
		}
	}
}

func (b *bodyBuilder) sectionProperties(p layout.Page) {
	sect := b.body.CreateElement("w:sectPr")
	size := sect.CreateElement("w:pgSz")
	size.CreateAttr("w:w", strconv.Itoa(p.Width))
	size.CreateAttr("w:h", strconv.Itoa(p.Height))
	mar := sect.CreateElement("w:pgMar")
	mar.CreateAttr("w:top", strconv.Itoa(p.MarginTop))
	mar.CreateAttr("w:right", strconv.Itoa(p.MarginRight))
	mar.CreateAttr("w:bottom", strconv.Itoa(p.MarginBottom))
	mar.CreateAttr("w:left", strconv.Itoa(p.MarginLeft))
	mar.CreateAttr("w:header", "709")
	mar.CreateAttr("w:footer", "709")
	mar.CreateAttr("w:gutter", "0")
}

// ── Bloques WordprocessingML ──────────────────────────────────────────────────

func (b *bodyBuilder) paragraph(text string, align layout.Align, r run) {
	appendParagraph(b.body, text, align, r)
}

func (b *bodyBuilder) spacer() {
	b.body.CreateElement("w:p")
}

// table crea w:tbl con ancho fijo en dxa; bordered usa el estilo con bordes.
func (b *bodyBuilder) table(widths []int, bordered bool) *etree.Element {
	tbl := b.body.CreateElement("w:tbl")
	pr := tbl.CreateElement("w:tblPr")
	if bordered {
		setVal(pr.CreateElement("w:tblStyle"), tableGridStyle)
	}
	w := pr.CreateElement("w:tblW")
	w.CreateAttr("w:w", strconv.Itoa(layout.Sum(widths)))
	w.CreateAttr("w:type", "dxa")
	// CT_TblPr es una secuencia: tblBorders va antes de tblLayout.
	if !bordered {
		borders := pr.CreateElement("w:tblBorders")
		for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
			setVal(borders.CreateElement("w:"+side), "nil")
		}
	}
	pr.CreateElement("w:tblLayout").CreateAttr("w:type", "fixed")

	grid := tbl.CreateElement("w:tblGrid")
	for _, width := range widths {
		grid.CreateElement("w:gridCol").CreateAttr("w:w", strconv.Itoa(width))
	}
	return tbl
}

// cell añade w:tc con su ancho y un párrafo por línea. Una celda vacía lleva
// igualmente un párrafo, como exige el esquema.
func cell(tr *etree.Element, width int, align layout.Align, lines []string, r run, shading string) *etree.Element {
	tc := tr.CreateElement("w:tc")
	pr := tc.CreateElement("w:tcPr")
	w := pr.CreateElement("w:tcW")
	w.CreateAttr("w:w", strconv.Itoa(width))
	w.CreateAttr("w:type", "dxa")
	if shading != "" {
		shd := pr.CreateElement("w:shd")
		shd.CreateAttr("w:val", "clear")
		shd.CreateAttr("w:color", "auto")
		shd.CreateAttr("w:fill", shading)
	}
	if lines == nil {
		return tc
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	for _, line := range lines {
		appendParagraph(tc, line, align, r)
	}
	return tc
}

func appendParagraph(parent *etree.Element, text string, align layout.Align, r run) *etree.Element {
	p := parent.CreateElement("w:p")
	if align != layout.AlignLeft {
		setVal(p.CreateElement("w:pPr").CreateElement("w:jc"), jc(align))
	}
	if text == "" {
		return p
	}

	wr := p.CreateElement("w:r")
	if r.bold || r.italic || r.size > 0 {
		rPr := wr.CreateElement("w:rPr")
		if r.bold {
			rPr.CreateElement("w:b")
		}
		if r.italic {
			rPr.CreateElement("w:i")
		}
		if r.size > 0 {
			setVal(rPr.CreateElement("w:sz"), strconv.Itoa(r.size))
			setVal(rPr.CreateElement("w:szCs"), strconv.Itoa(r.size))
		}
	}
	t := wr.CreateElement("w:t")
	if strings.TrimSpace(text) != text {
		t.CreateAttr("xml:space", "preserve")
	}
	t.SetText(text)
	return p
}

func jc(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "center"
	case layout.AlignRight:
		return "right"
	default:
		return "left"
	}
}
