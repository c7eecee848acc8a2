package docx

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/beevik/etree"
)

// Namespaces y tipos de contenido de Office Open XML (ECMA-376).
const (
	nsW         = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkgRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes     = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCoreProps = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC        = "http://purl.org/dc/elements/1.1/"
	nsDCTerms   = "http://purl.org/dc/terms/"
	nsExtProps  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"

	ctDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctCoreProps = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtProps  = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels      = "application/vnd.openxmlformats-package.relationships+xml"

	// ContentType tipo MIME del archivo .docx.
	ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Rutas de las partes dentro del paquete, en el orden en que se escriben.
const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partDocument     = "word/document.xml"
	partStyles       = "word/styles.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
)

// part una entrada del ZIP.
type part struct {
	name string
	doc  *etree.Document
}

// newXMLDocument documento con la declaración XML estándar de Office.
func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

// writePackage serializa las partes y las comprime en memoria. Las entradas no
// llevan fecha de modificación, así que el mismo plan produce los mismos bytes.
func writePackage(parts []part) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, p := range parts {
		data, err := p.doc.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("docx: serializar %s: %w", p.name, err)
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("docx: crear entrada %s: %w", p.name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return nil, fmt.Errorf("docx: escribir %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}

// ── Partes fijas del paquete ──────────────────────────────────────────────────

func contentTypesPart() *etree.Document {
	doc := newXMLDocument()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsTypes)

	for _, ct := range [][2]string{{"rels", ctRels}, {"xml", "application/xml"}} {
		d := types.CreateElement("Default")
		d.CreateAttr("Extension", ct[0])
		d.CreateAttr("ContentType", ct[1])
	}
	for _, o := range [][2]string{
		{"/" + partDocument, ctDocument},
		{"/" + partStyles, ctStyles},
		{"/" + partCore, ctCoreProps},
		{"/" + partApp, ctExtProps},
	} {
		el := types.CreateElement("Override")
		el.CreateAttr("PartName", o[0])
		el.CreateAttr("ContentType", o[1])
	}
	return doc
}

// relationships construye un .rels con los destinos indicados (Id rId1..n).
func relationships(rels ...[2]string) *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsPkgRels)
	for i, r := range rels {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", fmt.Sprintf("rId%d", i+1))
		el.CreateAttr("Type", r[0])
		el.CreateAttr("Target", r[1])
	}
	return doc
}

func rootRelsPart() *etree.Document {
	return relationships(
		[2]string{relOfficeDocument, partDocument},
		[2]string{relCoreProps, partCore},
		[2]string{relExtProps, partApp},
	)
}

func documentRelsPart() *etree.Document {
	return relationships([2]string{relStyles, "styles.xml"})
}

// corePart metadatos Dublin Core. Sin fechas: el paquete debe ser reproducible.
func corePart(title, creator string) *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", nsCoreProps)
	root.CreateAttr("xmlns:dc", nsDC)
	root.CreateAttr("xmlns:dcterms", nsDCTerms)
	if title != "" {
		root.CreateElement("dc:title").SetText(title)
	}
	if creator != "" {
		root.CreateElement("dc:creator").SetText(creator)
	}
	return doc
}

func appPart(application string) *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("Properties")
	root.CreateAttr("xmlns", nsExtProps)
	root.CreateElement("Application").SetText(application)
	return doc
}

// stylesPart fuente y tamaño por defecto más el estilo de tabla con bordes.
func stylesPart(font string, halfPoints int, lang string) *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsW)

	defaults := root.CreateElement("w:docDefaults")
	rPr := defaults.CreateElement("w:rPrDefault").CreateElement("w:rPr")
	fonts := rPr.CreateElement("w:rFonts")
	for _, attr := range []string{"w:ascii", "w:hAnsi", "w:cs", "w:eastAsia"} {
		fonts.CreateAttr(attr, font)
	}
	setVal(rPr.CreateElement("w:sz"), fmt.Sprint(halfPoints))
	setVal(rPr.CreateElement("w:szCs"), fmt.Sprint(halfPoints))
	setVal(rPr.CreateElement("w:lang"), lang)
	spacing := defaults.CreateElement("w:pPrDefault").CreateElement("w:pPr").CreateElement("w:spacing")
	spacing.CreateAttr("w:after", "0")
	spacing.CreateAttr("w:line", "240")
	spacing.CreateAttr("w:lineRule", "auto")

	normal := root.CreateElement("w:style")
	normal.CreateAttr("w:type", "paragraph")
	normal.CreateAttr("w:default", "1")
	normal.CreateAttr("w:styleId", "Normal")
	setVal(normal.CreateElement("w:name"), "Normal")
	normal.CreateElement("w:qFormat")

	grid := root.CreateElement("w:style")
	grid.CreateAttr("w:type", "table")
	grid.CreateAttr("w:styleId", tableGridStyle)
	setVal(grid.CreateElement("w:name"), "Table Grid")
	borders := grid.CreateElement("w:tblPr").CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
		b.CreateAttr("w:space", "0")
		b.CreateAttr("w:color", "000000")
	}
	return doc
}

func setVal(el *etree.Element, v string) {
	el.CreateAttr("w:val", v)
}
