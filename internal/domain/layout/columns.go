package layout

// RemainderWidth ancho de la columna elástica: available − Σ fixed, con un mínimo.
// Si el resto queda por debajo de minWidth se usa minWidth y clamped es true;
// en ese caso la tabla excede available (se prioriza la legibilidad).
func RemainderWidth(available, minWidth int, fixed ...int) (width int, clamped bool) {
	width = available
	for _, w := range fixed {
		width -= w
	}
	if width < minWidth {
		return minWidth, true
	}
	return width, false
}

// ProportionalWidths reparte available según weights. La última columna recibe
// el resto del redondeo, de modo que la suma es exactamente available.
func ProportionalWidths(available int, weights ...int) []int {
	if len(weights) == 0 {
		return nil
	}
	total := 0
	for _, w := range weights {
		total += w
	}
	widths := make([]int, len(weights))
	if total <= 0 {
		return widths
	}
	used := 0
	for i, w := range weights[:len(weights)-1] {
		widths[i] = available * w / total
		used += widths[i]
	}
	widths[len(widths)-1] = available - used
	return widths
}

// Sum suma de anchos.
func Sum(widths []int) int {
	s := 0
	for _, w := range widths {
		s += w
	}
	return s
}
