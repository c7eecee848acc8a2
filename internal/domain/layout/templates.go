package layout

import "github.com/jhoicas/docgen-api/internal/domain/entity"

// FooterVariant disposición del pie del documento.
type FooterVariant int

const (
	// FooterSignatures dos bloques de firma (ejecutor / cliente).
	FooterSignatures FooterVariant = iota
	// FooterDirectorContacts director de la empresa a la izquierda, contactos a la derecha.
	FooterDirectorContacts
)

// Template textos y variantes que dependen del tipo de documento y del idioma.
type Template struct {
	Slug          string // prefijo por defecto del nombre de archivo
	NumberLabel   string // "Счёт на оплату №"
	ClientLabel   string
	DeadlineText  string // %s = plazo ya escrito
	Footer        FooterVariant
	LeftTitle     string
	RightTitle    string
	DocumentTitle string // metadatos del archivo
}

// Labels textos comunes a todos los tipos de un idioma.
type Labels struct {
	DatePrefix     string // " от %s"
	GeneratedOn    string // "Дата составления: %s"
	OrderRef       string
	PONumber       string
	Phone          string
	Email          string
	TaxIDs         string // ИНН / КПП
	TaxID          string
	Bank           string
	BankAccount    string
	CorrAccount    string
	BIK            string
	ColIndex       string
	ColCode        string
	ColName        string
	ColQty         string
	ColPrice       string
	ColTotal       string
	NoItems        string
	TotalLabel     string
	TaxLabel       string
	Summary        string // %d líneas, %s importe
	Signature      string // %s = nombre del director
	SignatureBlank string
	DirectorTitle  string
	ContactsTitle  string
	Stamp          string
	DecimalComma   bool
	WorkdaysSingle string
	WorkdaysPlural string
	SpellAmounts   bool
	SpellWorkdays  bool
}

// Templates registro de plantillas por idioma y tipo. Es un valor: cada
// Planner tiene su propia copia.
type Templates struct {
	byType map[entity.Locale]map[entity.DocumentType]Template
	labels map[entity.Locale]Labels
}

// Lookup devuelve la plantilla; los idiomas distintos de ru usan en.
func (t Templates) Lookup(locale entity.Locale, typ entity.DocumentType) (Template, Labels, bool) {
	if locale != entity.LocaleRU {
		locale = entity.LocaleEN
	}
	tmpl, ok := t.byType[locale][typ]
	return tmpl, t.labels[locale], ok
}

// With devuelve una copia con la plantilla añadida o reemplazada.
func (t Templates) With(locale entity.Locale, typ entity.DocumentType, tmpl Template) Templates {
	out := Templates{
		byType: make(map[entity.Locale]map[entity.DocumentType]Template, len(t.byType)+1),
		labels: t.labels,
	}
	for loc, m := range t.byType {
		cp := make(map[entity.DocumentType]Template, len(m)+1)
		for k, v := range m {
			cp[k] = v
		}
		out.byType[loc] = cp
	}
	if out.byType[locale] == nil {
		out.byType[locale] = map[entity.DocumentType]Template{}
	}
	out.byType[locale][typ] = tmpl
	return out
}

// DefaultTemplates plantillas para orden de compra, factura y especificación en ru y en.
func DefaultTemplates() Templates {
	return Templates{
		byType: map[entity.Locale]map[entity.DocumentType]Template{
			entity.LocaleRU: {
				entity.DocumentTypePurchaseOrder: {
					Slug:          "po",
					NumberLabel:   "Заказ-наряд №",
					ClientLabel:   "Заказчик:",
					DeadlineText:  "Срок выполнения работ: %s с момента поступления оплаты.",
					Footer:        FooterDirectorContacts,
					DocumentTitle: "Заказ-наряд",
				},
				entity.DocumentTypeInvoice: {
					Slug:          "invoice",
					NumberLabel:   "Счёт на оплату №",
					ClientLabel:   "Плательщик:",
					DeadlineText:  "Срок выполнения работ: %s с момента поступления оплаты.",
					Footer:        FooterSignatures,
					LeftTitle:     "Исполнитель",
					RightTitle:    "Заказчик",
					DocumentTitle: "Счёт на оплату",
				},
				entity.DocumentTypeSpecification: {
					Slug:          "specification",
					NumberLabel:   "Спецификация №",
					ClientLabel:   "Покупатель:",
					DeadlineText:  "Срок поставки: %s с момента поступления оплаты.",
					Footer:        FooterSignatures,
					LeftTitle:     "Поставщик",
					RightTitle:    "Покупатель",
					DocumentTitle: "Спецификация",
				},
			},
			entity.LocaleEN: {
				entity.DocumentTypePurchaseOrder: {
					Slug:          "po",
					NumberLabel:   "PURCHASE ORDER #",
					ClientLabel:   "Bill To:",
					DeadlineText:  "Work completion term: %s from the date of payment.",
					Footer:        FooterDirectorContacts,
					DocumentTitle: "Purchase Order",
				},
				entity.DocumentTypeInvoice: {
					Slug:          "invoice",
					NumberLabel:   "INVOICE #",
					ClientLabel:   "Bill To:",
					DeadlineText:  "Work completion term: %s from the date of payment.",
					Footer:        FooterSignatures,
					LeftTitle:     "Contractor",
					RightTitle:    "Customer",
					DocumentTitle: "Invoice",
				},
				entity.DocumentTypeSpecification: {
					Slug:          "specification",
					NumberLabel:   "SPECIFICATION #",
					ClientLabel:   "Buyer:",
					DeadlineText:  "Delivery term: %s from the date of payment.",
					Footer:        FooterSignatures,
					LeftTitle:     "Supplier",
					RightTitle:    "Buyer",
					DocumentTitle: "Specification",
				},
			},
		},
		labels: map[entity.Locale]Labels{
			entity.LocaleRU: {
				DatePrefix:     " от %s",
				GeneratedOn:    "Дата составления: %s",
				OrderRef:       "Основание: заказ № %s",
				PONumber:       "Номер заказа покупателя: %s",
				Phone:          "Тел.: %s",
				Email:          "E-mail: %s",
				TaxIDs:         "ИНН %s / КПП %s",
				TaxID:          "ИНН %s",
				Bank:           "Банк: %s",
				BankAccount:    "Р/с %s",
				CorrAccount:    "К/с %s",
				BIK:            "БИК %s",
				ColIndex:       "№",
				ColCode:        "Код",
				ColName:        "Наименование",
				ColQty:         "Кол-во",
				ColPrice:       "Цена, руб.",
				ColTotal:       "Сумма, руб.",
				NoItems:        "Нет позиций",
				TotalLabel:     "Итого:",
				TaxLabel:       "В том числе НДС:",
				Summary:        "Всего наименований %d, на сумму %s руб.",
				Signature:      "_______________ / %s /",
				SignatureBlank: "_______________ / _______________ /",
				DirectorTitle:  "Генеральный директор",
				ContactsTitle:  "Контакты",
				Stamp:          "М.П.",
				DecimalComma:   true,
				SpellAmounts:   true,
				SpellWorkdays:  true,
			},
			entity.LocaleEN: {
				DatePrefix:     " dated %s",
				GeneratedOn:    "Date: %s",
				OrderRef:       "Order #: %s",
				PONumber:       "PO Number: %s",
				Phone:          "Phone: %s",
				Email:          "Email: %s",
				TaxIDs:         "Tax ID %s / KPP %s",
				TaxID:          "Tax ID %s",
				Bank:           "Bank: %s",
				BankAccount:    "Account %s",
				CorrAccount:    "Corr. account %s",
				BIK:            "BIC %s",
				ColIndex:       "#",
				ColCode:        "Item",
				ColName:        "Description",
				ColQty:         "Quantity",
				ColPrice:       "Unit Price",
				ColTotal:       "Total",
				NoItems:        "No items",
				TotalLabel:     "TOTAL:",
				TaxLabel:       "Incl. tax:",
				Summary:        "Total items: %d, amount: %s",
				Signature:      "_______________ / %s /",
				SignatureBlank: "_______________ / _______________ /",
				DirectorTitle:  "Director",
				ContactsTitle:  "Contacts",
				WorkdaysSingle: "%d working day",
				WorkdaysPlural: "%d working days",
			},
		},
	}
}
