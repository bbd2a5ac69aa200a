package vcard

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"spravochnik/phone"
)

const (
	noteSeparator   = "; "
	mergedSeparator = " | "
)

var (
	internalNumbers = regexp.MustCompile(`Внутренн(?:ий номер|ие номера):\s*(\d+(?:\s*,\s*\d+)*)`)
	mentionedExt    = regexp.MustCompile(`(?:доб\.?|Внутренн(?:ий номер|ие номера):)\s*(\d+(?:\s*,\s*\d+)*)`)
	digitRuns       = regexp.MustCompile(`\d+`)
)

// ExtFragment фрагмент заметки о добавочном: «доб. N» при корректном
// рабочем номере, иначе «Внутренний номер: N».
func ExtFragment(workE164, ext string) string {
	if phone.StrictE164RU(workE164) != "" {
		return "доб. " + ext
	}
	return "Внутренний номер: " + ext
}

// NoteForEmission возвращает заметку, которая будет записана для
// контакта, с учётом добавочного номера. Контакт не изменяется, повторный
// вызов на результате ничего не добавляет.
func NoteForEmission(c Contact) string {
	ext := phone.Digits(c.Ext)
	if ext == "" {
		return strings.TrimSpace(c.Note)
	}
	return AppendNote(c.Note, ext, ExtFragment(c.WorkE164, ext))
}

// AppendNote добавляет фрагмент об extension, если заметка его ещё не упоминает.
func AppendNote(note, ext, fragment string) string {
	note = strings.TrimSpace(note)
	if mentionsExtension(note, ext) {
		return note
	}
	if note == "" {
		return fragment
	}
	return note + noteSeparator + fragment
}

func mentionsExtension(note, ext string) bool {
	for _, m := range mentionedExt.FindAllStringSubmatch(note, -1) {
		for _, d := range digitRuns.FindAllString(m[1], -1) {
			if d == ext {
				return true
			}
		}
	}
	return false
}

// CombineNonEmpty склеивает непустые уникальные значения в порядке появления.
func CombineNonEmpty(values []string, sep string) string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return strings.Join(out, sep)
}

// CombineNotesNicely объединяет заметки группы дублей. Все упоминания
// «Внутренний номер: N» собираются в одну фразу с номерами по возрастанию,
// остальной текст сохраняется без повторов. Части разделяются « | ».
func CombineNotesNicely(notes []string) string {
	var exts []string
	var others []string
	seenExt := make(map[string]struct{})

	for _, note := range notes {
		if strings.TrimSpace(note) == "" {
			continue
		}
		for _, m := range internalNumbers.FindAllStringSubmatch(note, -1) {
			for _, d := range digitRuns.FindAllString(m[1], -1) {
				if _, dup := seenExt[d]; !dup {
					seenExt[d] = struct{}{}
					exts = append(exts, d)
				}
			}
		}
		rest := internalNumbers.ReplaceAllString(note, "")
		others = append(others, splitNoteParts(rest)...)
	}

	sort.SliceStable(exts, func(i, j int) bool {
		a, _ := strconv.Atoi(exts[i])
		b, _ := strconv.Atoi(exts[j])
		return a < b
	})

	var parts []string
	switch len(exts) {
	case 0:
	case 1:
		parts = append(parts, "Внутренний номер: "+exts[0])
	default:
		parts = append(parts, "Внутренние номера: "+strings.Join(exts, ", "))
	}
	if rest := CombineNonEmpty(others, mergedSeparator); rest != "" {
		parts = append(parts, rest)
	}
	return strings.Join(parts, mergedSeparator)
}

// splitNoteParts режет заметку только по разделителям, которые ставят
// AppendNote и CombineNotesNicely. Прочий текст заметки не меняется.
func splitNoteParts(s string) []string {
	var out []string
	for _, chunk := range strings.Split(s, mergedSeparator) {
		for _, part := range strings.Split(chunk, noteSeparator) {
			if part = strings.Trim(part, " \t;"); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
