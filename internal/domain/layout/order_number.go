package layout

import (
	"regexp"
	"strings"
)

// orderSeparators caracteres que separan prefijos del número en un ID de pedido.
const orderSeparators = "-_/#"

var nonDigit = regexp.MustCompile(`[^0-9]`)

// ExtractOrderNumber obtiene el número visible de un ID opaco:
//
//	"order-27193" → "27193"
//	"KP-2025-193" → "193"
//	"noDigitsHere" → "noDigitsHere"
//
// Toma lo que sigue al último separador y deja solo dígitos; si queda vacío usa
// los dígitos de todo el ID; si tampoco hay, devuelve el ID sin cambios.
func ExtractOrderNumber(id string) string {
	if i := strings.LastIndexAny(id, orderSeparators); i != -1 {
		if digits := nonDigit.ReplaceAllString(id[i+1:], ""); digits != "" {
			return digits
		}
	}
	if digits := nonDigit.ReplaceAllString(id, ""); digits != "" {
		return digits
	}
	return id
}
