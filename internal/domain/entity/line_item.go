package entity

import "github.com/shopspring/decimal"

// LineItem una fila facturable (trabajo o mercancía).
// El precio unitario no se guarda: se deriva de LineTotal y Quantity.
type LineItem struct {
	Code      string
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	LineTotal decimal.Decimal
}

// UnitPrice = LineTotal / Quantity; cero si la cantidad no es positiva.
func (l LineItem) UnitPrice() decimal.Decimal {
	if !l.Quantity.IsPositive() {
		return decimal.Zero
	}
	return l.LineTotal.Div(l.Quantity)
}
