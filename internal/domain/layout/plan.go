package layout

import "github.com/jhoicas/docgen-api/internal/domain/entity"

// Section bloques del documento, en el orden en que se emiten.
type Section int

const (
	SectionCompanyHeader Section = iota
	SectionDocumentHeader
	SectionItems
	SectionSummary
	SectionDeadline
	SectionFooter
)

// Align alineación horizontal de una celda.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Page geometría de la página en twips (1/20 pt, unidad "dxa" de WordprocessingML).
type Page struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
}

// A4 con márgenes habituales de documentos rusos (30 mm izquierda, 15 mm derecha, 20 mm arriba/abajo).
var A4 = Page{Width: 11906, Height: 16838, MarginTop: 1134, MarginRight: 850, MarginBottom: 1134, MarginLeft: 1701}

// AvailableWidth ancho útil entre márgenes.
func (p Page) AvailableWidth() int {
	return p.Width - p.MarginLeft - p.MarginRight
}

// Block título + líneas de texto (cabecera de empresa, cliente, firmas).
type Block struct {
	Title string
	Lines []string
}

// DocumentHeader título con número y fecha, fecha de generación y datos del cliente.
type DocumentHeader struct {
	Title      string
	Lines      []string // fecha de generación, referencias al pedido
	OrderTitle string
	Client     *Block
}

// Column columna de la tabla de líneas.
type Column struct {
	Header string
	Width  int // twips
	Align  Align
}

// TotalLine fila de totales bajo la tabla.
type TotalLine struct {
	Label string
	Value string
}

// ItemTable tabla de líneas ya formateadas.
type ItemTable struct {
	Columns   []Column
	Rows      [][]string
	Totals    []TotalLine
	EmptyText string // se muestra en lugar de la tabla si no hay filas
	Clamped   bool   // la columna de nombre se fijó al mínimo
}

// Widths anchos de todas las columnas.
func (t ItemTable) Widths() []int {
	w := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		w[i] = c.Width
	}
	return w
}

// Summary línea de resumen con el importe en cifras y, en ru, en palabras.
type Summary struct {
	Line  string
	Words string
}

// Footer pie del documento a dos columnas.
type Footer struct {
	Variant FooterVariant
	Widths  []int
	Left    Block
	Right   Block
}

// Plan decisión de maquetación completa e independiente del formato de salida.
type Plan struct {
	Type     entity.DocumentType
	Locale   entity.Locale
	Slug     string
	Title    string // metadatos del archivo
	Author   string
	Page     Page
	Sections []Section
	Company  Block
	Header   DocumentHeader
	Items    ItemTable
	Summary  Summary
	Deadline string
	Footer   Footer
}
