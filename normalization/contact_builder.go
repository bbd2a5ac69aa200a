package normalization

import (
	"strings"

	"spravochnik/phone"
	"spravochnik/vcard"
)

// BuildContacts собирает контакты из нормализованной строки. Обычно
// получается один контакт; номера, которым не нашлось места, уходят в
// дополнительные контакты с тем же ФИО. Заметка о добавочных вычисляется
// здесь целиком, писатель vCard её не меняет.
func BuildContacts(r NormalizedContactRow) []vcard.Contact {
	base := vcard.Contact{
		FullName:  collapseSpaces(r.Name),
		OrgOrDept: strings.TrimSpace(r.Location),
		Title:     collapseSpaces(r.Position),
		Email:     strings.TrimSpace(r.Email),
		City:      strings.TrimSpace(r.City),
	}

	numbers, ext, extraExts := parsePhoneField(r.Phone)

	internal := strings.TrimSpace(r.InternalPhone)
	if strict := phone.StrictE164RU(internal); strict != "" {
		numbers = append(numbers, strict)
	} else {
		for _, t := range splitList(internal) {
			d := phone.Digits(t)
			if d == "" {
				continue
			}
			if ext == "" {
				ext = d
			} else {
				extraExts = append(extraExts, d)
			}
		}
	}

	primary := base
	var spill []string
	seen := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		if seen[n] {
			continue
		}
		seen[n] = true
		switch {
		case phone.IsMobile(n) && primary.MobileE164 == "":
			primary.MobileE164 = n
		case !phone.IsMobile(n) && primary.WorkE164 == "":
			primary.WorkE164 = n
		case !phone.IsMobile(n) && primary.MobileE164 == "":
			primary.MobileE164 = n
		default:
			spill = append(spill, n)
		}
	}

	primary.Ext = ext
	primary.Note = buildNote(primary.WorkE164, ext, extraExts)

	out := []vcard.Contact{primary}
	for _, n := range spill {
		sibling := base
		if phone.IsMobile(n) {
			sibling.MobileE164 = n
		} else {
			sibling.WorkE164 = n
		}
		out = append(out, sibling)
	}
	return out
}

func buildNote(work, ext string, extraExts []string) string {
	note := ""
	if ext != "" {
		note = vcard.AppendNote(note, ext, vcard.ExtFragment(work, ext))
	}
	for _, e := range extraExts {
		note = vcard.AppendNote(note, e, "Внутренний номер: "+e)
	}
	return note
}

// parsePhoneField разбирает поле Phone: номера через пробел, суффикс
// ;ext=N и короткие токены, похожие на добавочные.
func parsePhoneField(value string) (numbers []string, ext string, extraExts []string) {
	value = strings.TrimSpace(value)
	if i := strings.Index(value, ExtSuffix); i >= 0 {
		ext = phone.Digits(value[i+len(ExtSuffix):])
		value = value[:i]
	}

	for _, token := range strings.Fields(value) {
		if phone.IsExtension(token) {
			if ext == "" {
				ext = phone.Digits(token)
			} else {
				extraExts = append(extraExts, phone.Digits(token))
			}
			continue
		}
		if p := phone.StrictE164RU(phone.NormalizeToE164RU(token)); p != "" {
			numbers = append(numbers, p)
		}
	}
	return numbers, ext, extraExts
}
