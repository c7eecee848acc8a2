package ruspell

// SelectForm elige la forma del sustantivo que concuerda con n según la regla
// rusa de los numerales cardinales.
//
// El caso 11–19 se evalúa antes que el último dígito: 11, 12 y 14 llevan la
// forma "muchos" aunque terminen en 1, 2 o 4.
func SelectForm(n int64, forms Forms) string {
	lastTwo := abs(n) % 100
	lastDigit := lastTwo % 10
	switch {
	case lastTwo > 10 && lastTwo < 20:
		return forms[2]
	case lastDigit > 1 && lastDigit < 5:
		return forms[1]
	case lastDigit == 1:
		return forms[0]
	default:
		return forms[2]
	}
}

// abs sin desbordamiento para math.MinInt64.
func abs(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}
