package vcard

import "strings"

// NameKey ключ идентичности контакта: ФИО без учёта регистра и лишних пробелов.
func NameKey(fullName string) string {
	return strings.Join(strings.Fields(strings.ToLower(fullName)), " ")
}

// MergeDuplicates объединяет контакты с одинаковым ФИО. Контакты без
// имени отбрасываются, группы идут в порядке первого появления.
//
// Из группы берутся телефоны, добавочный, организация и город первого
// контакта; телефоны остальных не переносятся. Должности склеиваются
// через « / », адреса через «, », заметки через CombineNotesNicely.
func MergeDuplicates(contacts []Contact) []Contact {
	groups := make(map[string][]Contact)
	var order []string
	for _, c := range contacts {
		key := NameKey(c.FullName)
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
	}

	out := make([]Contact, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}

		first := group[0]
		titles := make([]string, len(group))
		emails := make([]string, len(group))
		notes := make([]string, len(group))
		for i, c := range group {
			titles[i] = c.Title
			emails[i] = c.Email
			notes[i] = c.Note
		}

		out = append(out, Contact{
			FullName:   first.FullName,
			OrgOrDept:  first.OrgOrDept,
			City:       first.City,
			Title:      CombineNonEmpty(titles, " / "),
			Email:      CombineNonEmpty(emails, ", "),
			MobileE164: first.MobileE164,
			WorkE164:   first.WorkE164,
			Ext:        first.Ext,
			Note:       CombineNotesNicely(notes),
		})
	}
	return out
}
