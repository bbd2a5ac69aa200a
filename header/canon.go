// Package header находит строку заголовков на листе справочника и
// сопоставляет колонки логическим полям контакта.
package header

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Granularity задаёт, насколько агрессивно сворачивается текст заголовка.
type Granularity int

const (
	// Fine сохраняет пунктуацию, кроме точек. Используется для синонимов.
	Fine Granularity = iota
	// Coarse сворачивает всё, кроме букв и цифр, в одиночный пробел.
	// Используется для сигнатур форматов.
	Coarse
)

var (
	fineSpaces     = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\r", " ", "\n", " ", "\t", " ", ".", "")
	nonAlnumRun    = regexp.MustCompile(`[^a-zа-я0-9]+`)
	emailSpellings = strings.NewReplacer("e-mail", "email", "e mail", "email")
)

// Canonicalize приводит текст заголовка к каноническому виду.
// Функция идемпотентна для обеих гранулярностей.
func Canonicalize(s string, g Granularity) string {
	s = strings.ToLower(s)

	if g == Coarse {
		s = foldYo(s)
		s = nonAlnumRun.ReplaceAllString(s, " ")
		s = strings.TrimSpace(s)
		return strings.ReplaceAll(s, "e mail", "email")
	}

	// NFC только после удаления точек: точка между буквой и
	// комбинируемым знаком мешает композиции.
	s = foldYo(fineSpaces.Replace(s))
	s = strings.Join(strings.Fields(s), " ")
	return emailSpellings.Replace(s)
}

// foldYo приводит к NFC и заменяет ё на е до неподвижной точки: после
// замены оставшийся комбинируемый знак может снова собраться в ё.
func foldYo(s string) string {
	for {
		t := strings.ReplaceAll(norm.NFC.String(s), "ё", "е")
		if t == s {
			return t
		}
		s = t
	}
}

// Canon сокращение для Canonicalize(s, Fine).
func Canon(s string) string {
	return Canonicalize(s, Fine)
}

// CanonAll канонизирует набор строк с заданной гранулярностью.
func CanonAll(in []string, g Granularity) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Canonicalize(s, g)
	}
	return out
}
