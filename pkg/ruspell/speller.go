package ruspell

import "strings"

// Speller escribe enteros no negativos en palabras rusas.
type Speller struct {
	v Vocabulary
}

// NewSpeller construye el Speller con el vocabulario indicado.
func NewSpeller(v Vocabulary) *Speller {
	return &Speller{v: v}
}

// Words devuelve los tokens de n, del orden de magnitud mayor al menor.
// El género afecta solo a las unidades 1 y 2 finales; "тысяча" siempre es femenino.
func (s *Speller) Words(n uint64, g Gender) []string {
	if n == 0 {
		return []string{s.v.Zero}
	}
	return s.appendWords(make([]string, 0, 8), n, g)
}

// Spell une los tokens de Words con un espacio.
// Ej: 21 → "двадцать один", 2000 → "две тысячи".
func (s *Speller) Spell(n uint64, g Gender) string {
	return strings.Join(s.Words(n, g), " ")
}

func (s *Speller) appendWords(words []string, n uint64, g Gender) []string {
	if n >= 1_000_000 {
		millions := n / 1_000_000
		words = s.appendWords(words, millions, Masculine)
		words = append(words, SelectForm(int64(millions), s.v.Millions))
		n %= 1_000_000
	}

	if n >= 1000 {
		thousands := n / 1000
		switch thousands {
		case 1:
			words = append(words, s.v.OnesFeminine[1])
		case 2:
			words = append(words, s.v.OnesFeminine[2])
		default:
			words = s.appendWords(words, thousands, Feminine)
		}
		words = append(words, SelectForm(int64(thousands), s.v.Thousands))
		n %= 1000
	}

	if n >= 100 {
		words = append(words, s.v.Hundreds[n/100])
		n %= 100
	}
	if n >= 20 {
		words = append(words, s.v.Tens[n/10])
		n %= 10
	}
	if n >= 10 {
		words = append(words, s.v.Teens[n-10])
		n = 0
	}
	if n > 0 {
		if g == Feminine {
			words = append(words, s.v.OnesFeminine[n])
		} else {
			words = append(words, s.v.OnesMasculine[n])
		}
	}
	return words
}
