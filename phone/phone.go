// Package phone нормализует российские телефонные номера к E.164.
package phone

import (
	"regexp"
	"strings"
	"unicode"
)

var strictRU = regexp.MustCompile(`^\+7\d{10}$`)

// NormalizeToE164RU приводит номер к виду +7XXXXXXXXXX. Номера с другим
// международным префиксом возвращаются как есть, всё нераспознанное
// превращается в пустую строку.
func NormalizeToE164RU(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	cleaned := keepDigitsAndPlus(raw)
	if strings.HasPrefix(cleaned, "+7") {
		// Берутся последние десять цифр. Более короткий номер остаётся
		// целиком вместе с семёркой и отсекается StrictE164RU при сборке контакта.
		return "+7" + takeLast(Digits(cleaned), 10)
	}
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	return fromNationalDigits(Digits(cleaned))
}

// ComposeCityToE164RU склеивает код города и городской номер.
func ComposeCityToE164RU(code, number string) string {
	d := Digits(code) + Digits(number)
	if d == "" {
		return ""
	}
	e164 := fromNationalDigits(d)
	if len(e164) != 12 {
		return ""
	}
	return e164
}

// StrictE164RU возвращает номер без изменений, только если он уже
// строго +7 и ровно десять цифр.
func StrictE164RU(raw string) string {
	cleaned := keepDigitsAndPlus(raw)
	if strictRU.MatchString(cleaned) {
		return cleaned
	}
	return ""
}

// IsStrict сообщает, что строка ровно в формате +7XXXXXXXXXX.
func IsStrict(s string) bool {
	return strictRU.MatchString(s)
}

// IsMobile сообщает, что нормализованный номер мобильный (+79...).
func IsMobile(e164 string) bool {
	return strings.HasPrefix(e164, "+79") && IsStrict(e164)
}

// IsExtension сообщает, что токен похож на внутренний номер:
// 3-5 цифр без признаков полного номера.
func IsExtension(token string) bool {
	t := strings.TrimSpace(token)
	if strings.HasPrefix(t, "+") {
		return false
	}
	d := Digits(t)
	if len(d) < 3 || len(d) > 5 || len(d) != len(t) {
		return false
	}
	return d[0] != '7' && d[0] != '8'
}

// Digits оставляет в строке только цифры.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepDigitsAndPlus(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fromNationalDigits(d string) string {
	switch {
	case len(d) == 11 && (d[0] == '7' || d[0] == '8'):
		return "+7" + d[1:]
	case len(d) == 10:
		return "+7" + d
	}
	return ""
}

// SplitNumbers делит ячейку с несколькими номерами на части.
func SplitNumbers(cell string) []string {
	parts := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == '\n' || r == '\r'
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var inlineExt = regexp.MustCompile(`(?i)\s*[,(]?\s*(?:доб|вн|внутр|ext|x)\.?\s*:?\s*(\d{1,6})\)?\s*$`)

// SplitExtension отделяет внутренний номер, записанный прямо в ячейке:
// «8 (495) 123-45-67 доб. 45».
func SplitExtension(s string) (base, ext string) {
	m := inlineExt.FindStringSubmatchIndex(s)
	if m == nil {
		return s, ""
	}
	base = strings.TrimRightFunc(s[:m[0]], func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
	if Digits(base) == "" {
		return s, ""
	}
	return base, s[m[2]:m[3]]
}

func takeLast(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
