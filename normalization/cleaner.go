package normalization

import (
	"regexp"
	"strings"

	"spravochnik/formats"
)

var gluedWords = regexp.MustCompile(`([а-яё])([А-ЯЁ])`)

// TextCleaner применяет косметические правила формата к тексту ячеек.
type TextCleaner struct {
	format *formats.Format
	rules  formats.Cleanup
}

// NewTextCleaner создает чистильщик по правилам формата.
func NewTextCleaner(f *formats.Format) *TextCleaner {
	return &TextCleaner{format: f, rules: f.Cleanup()}
}

// Plain обрезает края и хвостовые литералы \n, не трогая содержимое.
// Подходит для телефонов и адресов.
func (c *TextCleaner) Plain(s string) string {
	s = strings.TrimSpace(s)
	if c.rules.TrimLiteralNewlines {
		s = trimLiteralNewlines(s)
	}
	return s
}

// Text чистит текстовое поле: ФИО, должность, организацию.
func (c *TextCleaner) Text(s string) string {
	s = c.Plain(s)
	if s == "" {
		return ""
	}
	if c.rules.CollapseSpaces {
		s = collapseSpaces(s)
	}
	if c.rules.SplitGluedWords {
		s = gluedWords.ReplaceAllString(s, "$1 $2")
	}
	s = c.format.FixTypos(s)
	if c.rules.CollapseSpaces {
		s = collapseSpaces(s)
	}
	return s
}

func collapseSpaces(s string) string {
	s = strings.NewReplacer("\u00a0", " ", "\r", " ", "\n", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// trimLiteralNewlines убирает хвостовые двухсимвольные «\n», которые
// попадают в выгрузки ЗЗГТ вместо переводов строк.
func trimLiteralNewlines(s string) string {
	for {
		t := strings.TrimSpace(strings.TrimSuffix(s, `\n`))
		if t == s {
			return s
		}
		s = t
	}
}
