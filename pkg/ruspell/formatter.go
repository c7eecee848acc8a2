package ruspell

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNegative el valor a escribir en palabras es negativo.
var ErrNegative = errors.New("ruspell: valor negativo")

// ErrOutOfRange el valor supera MaxSpellable.
var ErrOutOfRange = errors.New("ruspell: valor fuera de rango")

// MaxSpellable mayor entero que SpellMoney y SpellWorkdays escriben en palabras.
const MaxSpellable = 999_999_999_999

var maxSpellable = decimal.NewFromInt(MaxSpellable)

// Options estrategia de formato.
type Options struct {
	// IncludeFractionalUnits escribe también las копейки ("... рублей пятьдесят копеек").
	// Si es false el importe se redondea a rublos enteros antes de escribirlo.
	IncludeFractionalUnits bool
	// DecimalDisplay muestra siempre 2 decimales en FormatNumber ("1 200,50");
	// si es false se redondea a entero y se omite la parte decimal ("1 201").
	DecimalDisplay bool
}

// Formatter compone Speller + SelectForm en frases para importes, plazos y fechas.
type Formatter struct {
	speller *Speller
	v       Vocabulary
	opts    Options
}

// NewFormatter construye el Formatter.
func NewFormatter(v Vocabulary, opts Options) *Formatter {
	return &Formatter{speller: NewSpeller(v), v: v, opts: opts}
}

// SpellMoney escribe el importe en palabras con la forma correcta de "рубль".
// Ej: 1 → "Один рубль", 21 → "Двадцать один рубль", 200 → "Двести рублей".
func (f *Formatter) SpellMoney(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("%w: %s", ErrNegative, amount.String())
	}
	if !f.opts.IncludeFractionalUnits {
		rubles := amount.Round(0)
		if rubles.GreaterThan(maxSpellable) {
			return "", fmt.Errorf("%w: %s", ErrOutOfRange, amount.String())
		}
		return f.phrase(uint64(rubles.IntPart()), Masculine, f.v.Rubles), nil
	}

	amount = amount.Round(2)
	whole := amount.Truncate(0)
	if whole.GreaterThan(maxSpellable) {
		return "", fmt.Errorf("%w: %s", ErrOutOfRange, amount.String())
	}
	kopecks := amount.Sub(whole).Shift(2).IntPart()
	rubles := f.phrase(uint64(whole.IntPart()), Masculine, f.v.Rubles)
	return rubles + " " + f.speller.Spell(uint64(kopecks), Feminine) + " " + SelectForm(kopecks, f.v.Kopecks), nil
}

// SpellWorkdays escribe un plazo en días hábiles. Ej: 10 → "Десять рабочих дней".
func (f *Formatter) SpellWorkdays(days int64) (string, error) {
	if days < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegative, days)
	}
	if days > MaxSpellable {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, days)
	}
	return f.phrase(uint64(days), Masculine, f.v.Workdays), nil
}

func (f *Formatter) phrase(n uint64, g Gender, forms Forms) string {
	words := f.speller.Words(n, g)
	words[0] = Capitalize(words[0])
	return strings.Join(words, " ") + " " + SelectForm(int64(n), forms)
}

// FormatNumber agrupa la parte entera de a tres cifras con espacio y, en modo
// decimal, añade coma y exactamente 2 decimales. Ej: 1234567.5 → "1 234 567,50".
func (f *Formatter) FormatNumber(value decimal.Decimal) string {
	if !f.opts.DecimalDisplay {
		return groupDigits(value.StringFixed(0))
	}
	intPart, frac, _ := strings.Cut(value.StringFixed(2), ".")
	return groupDigits(intPart) + "," + frac
}

// groupDigits inserta un espacio cada tres cifras desde la derecha.
// Ej: "25000" → "25 000", "-1000000" → "-1 000 000".
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}

// dateLayouts formatos de fecha aceptados en el payload.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006",
}

// ParseDate intenta interpretar raw con los formatos aceptados.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate devuelve "<día> <mes en genitivo> <año> г.".
// Si raw no es una fecha reconocible se devuelve tal cual, sin error.
func (f *Formatter) FormatDate(raw string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	return f.FormatTime(t)
}

// FormatTime igual que FormatDate para un time.Time ya conocido.
func (f *Formatter) FormatTime(t time.Time) string {
	return fmt.Sprintf("%d %s %d %s", t.Day(), f.v.MonthsGenitive[t.Month()-1], t.Year(), f.v.YearSuffix)
}

// Capitalize pone en mayúscula la primera letra de una palabra rusa.
// cases.Caser no es seguro entre goroutines, por eso se crea en cada llamada.
func Capitalize(word string) string {
	if word == "" {
		return word
	}
	return cases.Title(language.Russian).String(word)
}
