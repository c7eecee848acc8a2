// Package ruspell convierte números a palabras en ruso (числительные) y elige la
// forma gramatical correcta de los sustantivos que los acompañan (рубль/рубля/рублей).
//
// Todas las tablas de palabras viven en Vocabulary, un valor inmutable que se
// inyecta en Speller y Formatter al construirlos; no hay estado global mutable.
package ruspell

// Gender género gramatical con el que se escriben las unidades 1 y 2.
type Gender int

const (
	Masculine Gender = iota // один, два (рубль, день, миллион)
	Feminine                // одна, две (тысяча, копейка)
)

// Forms tabla de tres formas de un sustantivo:
//
//	[0] número que termina en 1 (рубль)
//	[1] número que termina en 2–4 (рубля)
//	[2] 0, 5–9 y 11–19 (рублей)
type Forms [3]string

// Vocabulary agrupa las tablas de palabras usadas por Speller y Formatter.
// Los arrays se copian por valor: modificar una copia no afecta a otras.
type Vocabulary struct {
	Zero           string
	OnesMasculine  [10]string
	OnesFeminine   [10]string
	Teens          [10]string // 10..19
	Tens           [10]string // índice = decenas (2..9)
	Hundreds       [10]string // índice = centenas (1..9)
	Thousands      Forms
	Millions       Forms
	Rubles         Forms
	Kopecks        Forms
	Workdays       Forms
	MonthsGenitive [12]string
	YearSuffix     string
}

// Russian devuelve el vocabulario ruso estándar.
func Russian() Vocabulary {
	return Vocabulary{
		Zero:          "ноль",
		OnesMasculine: [10]string{"", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"},
		OnesFeminine:  [10]string{"", "одна", "две", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"},
		Teens: [10]string{
			"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать",
			"пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать",
		},
		Tens:      [10]string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят", "шестьдесят", "семьдесят", "восемьдесят", "девяносто"},
		Hundreds:  [10]string{"", "сто", "двести", "триста", "четыреста", "пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот"},
		Thousands: Forms{"тысяча", "тысячи", "тысяч"},
		Millions:  Forms{"миллион", "миллиона", "миллионов"},
		Rubles:    Forms{"рубль", "рубля", "рублей"},
		Kopecks:   Forms{"копейка", "копейки", "копеек"},
		Workdays:  Forms{"рабочий день", "рабочих дня", "рабочих дней"},
		MonthsGenitive: [12]string{
			"января", "февраля", "марта", "апреля", "мая", "июня",
			"июля", "августа", "сентября", "октября", "ноября", "декабря",
		},
		YearSuffix: "г.",
	}
}
