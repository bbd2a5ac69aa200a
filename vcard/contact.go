// Package vcard пишет контакты в формате vCard 3.0, совместимом с
// приложением «Контакты» на iPhone и macOS.
package vcard

import (
	"regexp"
	"strings"
)

// Contact контакт, готовый к записи. Значения не изменяются после сборки:
// объединение дублей и синтез заметки создают новые значения.
type Contact struct {
	FullName   string `json:"full_name"`
	OrgOrDept  string `json:"org,omitempty"`
	Title      string `json:"title,omitempty"`
	Email      string `json:"email,omitempty"`
	MobileE164 string `json:"mobile,omitempty"`
	WorkE164   string `json:"work,omitempty"`
	Ext        string `json:"ext,omitempty"`
	Note       string `json:"note,omitempty"`
	City       string `json:"city,omitempty"`
}

var (
	plainE164 = regexp.MustCompile(`^\+7\d{10}$`)
	telURI    = regexp.MustCompile(`^tel:\+7\d{10}(;ext=\d+)?$`)

	escaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
)

// Esc экранирует значение свойства: переводы строк приводятся к \n,
// края обрезаются, затем экранируются \ ; , и перевод строки.
func Esc(s string) string {
	if s == "" {
		return ""
	}
	t := strings.ReplaceAll(s, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	t = strings.TrimSpace(t)
	return escaper.Replace(t)
}

// SplitFio делит ФИО по пробелам: фамилия, имя, остальное как отчество.
func SplitFio(fullName string) (last, first, middle string) {
	parts := strings.Fields(fullName)
	switch {
	case len(parts) >= 3:
		return parts[0], parts[1], strings.Join(parts[2:], " ")
	case len(parts) == 2:
		return parts[0], parts[1], ""
	case len(parts) == 1:
		return parts[0], "", ""
	}
	return "", "", ""
}

// SplitEmails выделяет из строки токены, похожие на адреса.
func SplitEmails(s string) []string {
	var out []string
	for _, token := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	}) {
		if token = strings.TrimSpace(token); strings.Contains(token, "@") {
			out = append(out, token)
		}
	}
	return out
}

// IsValidEmail базовая проверка адреса перед записью.
func IsValidEmail(email string) bool {
	return strings.Contains(email, "@") &&
		strings.Contains(email, ".") &&
		len([]rune(strings.TrimSpace(email))) > 5
}

// IsValidE164Phone принимает +7XXXXXXXXXX или tel:+7XXXXXXXXXX;ext=N.
func IsValidE164Phone(p string) bool {
	return plainE164.MatchString(p) || telURI.MatchString(p)
}

// PhoneType CELL для номеров +79..., иначе WORK.
func PhoneType(p string) string {
	if strings.HasPrefix(p, "+79") {
		return "CELL"
	}
	return "WORK"
}
