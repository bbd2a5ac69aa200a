// Package formats описывает форматы исходных справочников: сигнатуру
// заголовков, синонимы колонок, проверку имени листа и правила чистки текста.
package formats

import (
	"regexp"
	"strings"

	"spravochnik/header"
)

// Document корень YAML файла форматов.
type Document struct {
	Formats []Descriptor `yaml:"formats" validate:"required,min=1,dive"`
}

// Descriptor описание одного формата.
type Descriptor struct {
	Name       string              `yaml:"name" validate:"required"`
	Title      string              `yaml:"title"`
	Aliases    []string            `yaml:"aliases" validate:"dive,required"`
	Signature  []string            `yaml:"signature" validate:"required,min=1,dive,required"`
	SheetGuard SheetGuard          `yaml:"sheet_guard"`
	Synonyms   map[string][]string `yaml:"synonyms" validate:"dive,keys,contact_field,endkeys,min=1,dive,required"`
	Cleanup    Cleanup             `yaml:"cleanup"`
}

// SheetGuard регулярное выражение для имени листа. Сравнение без учёта регистра.
type SheetGuard struct {
	Pattern string `yaml:"pattern" validate:"omitempty,regexp"`
	Enabled bool   `yaml:"enabled"`
}

// Cleanup косметические правила чистки текстовых полей.
type Cleanup struct {
	CollapseSpaces      bool   `yaml:"collapse_spaces"`
	SplitGluedWords     bool   `yaml:"split_glued_words"`
	TrimLiteralNewlines bool   `yaml:"trim_literal_newlines"`
	Typos               []Typo `yaml:"typos" validate:"dive"`
}

// Typo известная опечатка конкретной организации.
type Typo struct {
	From      string `yaml:"from" validate:"required"`
	To        string `yaml:"to"`
	WholeWord bool   `yaml:"whole_word"`
}

// Format скомпилированный формат, готовый к использованию.
type Format struct {
	desc      Descriptor
	signature []string
	synonyms  header.Synonyms
	guard     *regexp.Regexp
	guardOn   bool
	typos     []typoRule
}

type typoRule struct {
	re   *regexp.Regexp
	repl string
}

func compile(d Descriptor, forceGuards bool) (*Format, error) {
	f := &Format{
		desc:      d,
		signature: header.CanonAll(d.Signature, header.Coarse),
		synonyms:  header.DefaultSynonyms(),
	}

	override := make(header.Synonyms, len(d.Synonyms))
	for k, v := range d.Synonyms {
		override[header.Field(k)] = v
	}
	f.synonyms = f.synonyms.Merge(override)

	if d.SheetGuard.Pattern != "" {
		re, err := regexp.Compile("(?i)" + d.SheetGuard.Pattern)
		if err != nil {
			return nil, err
		}
		f.guard = re
		f.guardOn = d.SheetGuard.Enabled || forceGuards
	}

	for _, t := range d.Cleanup.Typos {
		pattern := regexp.QuoteMeta(t.From)
		repl := strings.ReplaceAll(t.To, "$", "$$")
		if t.WholeWord {
			pattern = `(^|[^\p{L}\p{N}])` + pattern + `([^\p{L}\p{N}]|$)`
			repl = "${1}" + repl + "${2}"
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		f.typos = append(f.typos, typoRule{re: re, repl: repl})
	}
	return f, nil
}

// Name каноническое имя формата (ВПК, ВЗК, ВИЦ, ЗЗГТ).
func (f *Format) Name() string { return f.desc.Name }

// Title человекочитаемое название.
func (f *Format) Title() string {
	if f.desc.Title == "" {
		return f.desc.Name
	}
	return f.desc.Title
}

// Aliases альтернативные имена формата.
func (f *Format) Aliases() []string { return append([]string(nil), f.desc.Aliases...) }

// Signature сигнатура в грубой канонической форме.
func (f *Format) Signature() []string { return append([]string(nil), f.signature...) }

// RawSignature сигнатура как записана в описании.
func (f *Format) RawSignature() []string { return append([]string(nil), f.desc.Signature...) }

// Synonyms синонимы колонок с учётом переопределений формата.
func (f *Format) Synonyms() header.Synonyms { return f.synonyms }

// Cleanup правила чистки текста.
func (f *Format) Cleanup() Cleanup { return f.desc.Cleanup }

// SheetGuard возвращает регулярное выражение для имени листа и признак,
// что проверка включена.
func (f *Format) SheetGuard() (*regexp.Regexp, bool) {
	return f.guard, f.guard != nil && f.guardOn
}

// FixTypos исправляет известные опечатки.
func (f *Format) FixTypos(s string) string {
	for _, t := range f.typos {
		// Соседние совпадения делят разделитель, поэтому повторяем.
		for i := 0; i < 4; i++ {
			next := t.re.ReplaceAllString(s, t.repl)
			if next == s {
				break
			}
			s = next
		}
	}
	return s
}
