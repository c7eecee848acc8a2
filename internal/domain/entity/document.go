package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DocumentType discrimina el documento a generar. El conjunto es abierto:
// un tipo nuevo solo necesita su plantilla en layout.
type DocumentType string

const (
	DocumentTypePurchaseOrder DocumentType = "po"
	DocumentTypeInvoice       DocumentType = "invoice"
	DocumentTypeSpecification DocumentType = "specification"
)

// documentTypeAliases nombres aceptados en el payload para cada tipo.
var documentTypeAliases = map[string]DocumentType{
	"po":             DocumentTypePurchaseOrder,
	"purchase-order": DocumentTypePurchaseOrder,
	"purchase_order": DocumentTypePurchaseOrder,
	"invoice":        DocumentTypeInvoice,
	"specification":  DocumentTypeSpecification,
	"spec":           DocumentTypeSpecification,
}

// ParseDocumentType normaliza el tipo recibido. Vacío = orden de compra.
func ParseDocumentType(s string) (DocumentType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DocumentTypePurchaseOrder, nil
	}
	if t, ok := documentTypeAliases[s]; ok {
		return t, nil
	}
	return "", fmt.Errorf("tipo de documento desconocido: %q", s)
}

// Locale idioma del documento: ruso o cualquier otro (inglés).
type Locale string

const (
	LocaleRU Locale = "ru"
	LocaleEN Locale = "en"
)

// OutputFormat formato del archivo generado.
type OutputFormat string

const (
	FormatDOCX OutputFormat = "docx"
	FormatPDF  OutputFormat = "pdf"
)

// Order datos de cabecera del pedido.
type Order struct {
	ID            string
	Date          string // tal como llega; el formateo tolera valores no parseables
	Title         string
	Total         decimal.Decimal
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	PONumber      string
	InvoiceNumber string
}

// OrderDocument todo lo necesario para producir un documento. Se construye por
// petición y no se modifica después del mapeo del payload.
type OrderDocument struct {
	Type     DocumentType
	Locale   Locale
	Format   OutputFormat
	Prefix   string
	Order    Order
	Company  Party
	Client   Party
	Items    []LineItem
	WorkDays int64
}

// Total importe del documento: la suma de las líneas si las hay; si no, order.total.
// El resumen nunca se calcula desde otra fuente cuando existen líneas.
func (d *OrderDocument) Total() decimal.Decimal {
	if len(d.Items) == 0 {
		return d.Order.Total
	}
	sum := decimal.Zero
	for _, it := range d.Items {
		sum = sum.Add(it.LineTotal)
	}
	return sum
}
