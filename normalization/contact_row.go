package normalization

import (
	"strings"

	"spravochnik/formats"
	"spravochnik/header"
	"spravochnik/phone"
	"spravochnik/workbook"
)

// ExtSuffix разделитель добавочного в поле Phone нормализованной строки.
const ExtSuffix = ";ext="

// NormalizedContactRow промежуточная запись, не зависящая от формата.
// Phone содержит нормализованные номера через пробел и, возможно,
// суффикс ;ext=N. InternalPhone либо второй номер в E.164, либо
// внутренние номера через запятую.
type NormalizedContactRow struct {
	Location      string `json:"location,omitempty"`
	Name          string `json:"name,omitempty"`
	Position      string `json:"position,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	InternalPhone string `json:"internal_phone,omitempty"`
	City          string `json:"city,omitempty"`

	Sheet string `json:"sheet,omitempty"`
	Row   int    `json:"row"`
}

// Empty сообщает, что в строке нет ни одного информативного поля.
func (r NormalizedContactRow) Empty() bool {
	return r.Name == "" && r.Email == "" && r.Phone == "" && r.InternalPhone == ""
}

// ContactNormalizer превращает строки листа в NormalizedContactRow по
// описанию формата и найденной карте колонок.
type ContactNormalizer struct {
	format *formats.Format
	cols   header.ColumnMap
	clean  *TextCleaner
	sheet  string
}

// NewContactNormalizer создает нормализатор для одного листа.
func NewContactNormalizer(f *formats.Format, cols header.ColumnMap, sheet string) *ContactNormalizer {
	return &ContactNormalizer{
		format: f,
		cols:   cols,
		clean:  NewTextCleaner(f),
		sheet:  sheet,
	}
}

// NormalizeRow возвращает false, если строку нужно пропустить.
func (n *ContactNormalizer) NormalizeRow(index int, row workbook.Row) (NormalizedContactRow, bool) {
	text := func(f header.Field) string { return n.clean.Text(n.cols.Cell(row, f)) }
	plain := func(f header.Field) string { return n.clean.Plain(n.cols.Cell(row, f)) }

	rec := NormalizedContactRow{
		Name:     text(header.FieldFIO),
		Position: text(header.FieldTitle),
		Email:    plain(header.FieldEmail),
		Location: JoinLocation(text(header.FieldOrg), text(header.FieldDepartment)),
		City:     text(header.FieldLocality),
		Sheet:    n.sheet,
		Row:      index,
	}

	extra := plain(header.FieldExtra)
	if rec.Email == "" && IsEmail(extra) {
		rec.Email = extra
	}

	numbers, inlineExt := n.choosePhone(row, extra)
	internal := plain(header.FieldExt)
	if internal == "" && inlineExt != "" && numbers != "" {
		// «доб. N» прямо в ячейке номера: длина добавочного не проверяется.
		rec.Phone = numbers + ExtSuffix + inlineExt
	} else {
		rec.Phone, rec.InternalPhone = AttachExtension(numbers, internal)
	}

	if rec.Empty() {
		return rec, false
	}
	return rec, true
}

// choosePhone берёт номера из первого источника, который дал хоть один:
// мобильный, контактный, код города + городской, дополнительный.
func (n *ContactNormalizer) choosePhone(row workbook.Row, extra string) (string, string) {
	for _, f := range []header.Field{header.FieldMobile, header.FieldCell} {
		if nums, ext := NormalizeCell(n.clean.Plain(n.cols.Cell(row, f))); nums != "" {
			return nums, ext
		}
	}

	if n.cols.Has(header.FieldCity) {
		code := n.clean.Plain(n.cols.Cell(row, header.FieldCode))
		var nums []string
		for _, part := range phone.SplitNumbers(n.clean.Plain(n.cols.Cell(row, header.FieldCity))) {
			if p := phone.ComposeCityToE164RU(code, part); p != "" {
				nums = append(nums, p)
			}
		}
		if len(nums) > 0 {
			return strings.Join(nums, " "), ""
		}
	}

	if extra != "" && !IsEmail(extra) {
		return NormalizeCell(extra)
	}
	return "", ""
}

// NormalizeCell нормализует все номера ячейки. Возвращает номера через
// пробел и первый найденный в тексте добавочный.
func NormalizeCell(cell string) (string, string) {
	var nums []string
	ext := ""
	for _, part := range phone.SplitNumbers(cell) {
		base, inline := phone.SplitExtension(part)
		if p := phone.NormalizeToE164RU(base); p != "" {
			nums = append(nums, p)
			if ext == "" {
				ext = inline
			}
		}
	}
	return strings.Join(nums, " "), ext
}

// AttachExtension раскладывает значение колонки внутреннего номера.
// Если все части по 3-5 цифр, это добавочные: первый уходит в суффикс
// ;ext= при наличии номера, остальные остаются в InternalPhone. Иначе
// значение пробуем как второй номер, а при неудаче сохраняем цифры.
func AttachExtension(numbers, internal string) (phoneValue, internalPhone string) {
	internal = strings.TrimSpace(internal)
	if internal == "" {
		return numbers, ""
	}

	tokens := splitList(internal)
	if allExtensions(tokens) {
		if numbers == "" {
			return "", strings.Join(tokens, ", ")
		}
		return numbers + ExtSuffix + tokens[0], strings.Join(tokens[1:], ", ")
	}

	if p := phone.NormalizeToE164RU(internal); p != "" {
		return numbers, p
	}

	var digits []string
	for _, t := range tokens {
		if d := phone.Digits(t); d != "" {
			digits = append(digits, d)
		}
	}
	return numbers, strings.Join(digits, ", ")
}

func allExtensions(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if len(t) < 3 || len(t) > 5 || phone.Digits(t) != t {
			return false
		}
	}
	return true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsEmail грубая проверка: @ не в начале и не в конце.
func IsEmail(s string) bool {
	i := strings.Index(s, "@")
	return i > 0 && i < len(s)-1
}

// JoinLocation склеивает организацию и подразделение через « / ».
func JoinLocation(org, department string) string {
	switch {
	case org != "" && department != "":
		return org + " / " + department
	case org != "":
		return org
	}
	return department
}
