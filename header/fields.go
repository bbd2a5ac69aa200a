package header

// Field логическое поле контакта, к которому привязывается колонка.
type Field string

const (
	FieldFIO        Field = "fio"
	FieldTitle      Field = "title"
	FieldEmail      Field = "email"
	FieldMobile     Field = "mobile"
	FieldCode       Field = "code"
	FieldCity       Field = "city"
	FieldExt        Field = "ext"
	FieldCell       Field = "cell"
	FieldExtra      Field = "extra"
	FieldOrg        Field = "org"
	FieldDepartment Field = "department"
	// FieldLocality город или местонахождение сотрудника (колонка
	// «Местонахождение» в выгрузке ВПК).
	FieldLocality Field = "locality"
)

// Fields все известные поля в порядке разрешения.
var Fields = []Field{
	FieldFIO, FieldTitle, FieldEmail, FieldMobile, FieldCode, FieldCity,
	FieldExt, FieldCell, FieldExtra, FieldOrg, FieldDepartment, FieldLocality,
}

// Known сообщает, является ли имя известным полем.
func Known(name string) bool {
	for _, f := range Fields {
		if string(f) == name {
			return true
		}
	}
	return false
}

// Synonyms варианты заголовков для каждого поля в порядке приоритета.
type Synonyms map[Field][]string

// DefaultSynonyms общие для всех форматов варианты заголовков.
func DefaultSynonyms() Synonyms {
	return Synonyms{
		FieldFIO:    {"фио", "ф.и.о", "фио сотрудника"},
		FieldTitle:  {"должность", "роль", "position", "title"},
		FieldEmail:  {"электронный адрес", "email", "e-mail", "почта"},
		FieldMobile: {"мобильный номер", "мобильный", "сотовый", "телефон мобильный"},
		FieldCode:   {"код города", "городской код", "код"},
		FieldCity:   {"городской номер", "городской", "телефон городской"},
		FieldExt:    {"внутренний телефон", "внутренний", "доб", "доб.", "внутр. номер телефона"},
		FieldCell:   {"контактный телефон", "контактный", "телефон"},
		FieldExtra: {
			"дополнительный номер/ e-mail", "дополнительный номер/e-mail",
			"дополнительный номер", "доп. номер", "доп номер",
		},
		FieldOrg: {"организация"},
		FieldDepartment: {
			"структурное подразделение/ департамент", "структурное подразделение",
			"департамент", "отдел", "служба", "подразделение",
		},
		FieldLocality: {"местонахождение", "местоположение", "город"},
	}
}

// Merge возвращает копию s, в которой списки из override заменяют
// соответствующие списки по умолчанию.
func (s Synonyms) Merge(override Synonyms) Synonyms {
	out := make(Synonyms, len(s)+len(override))
	for f, v := range s {
		out[f] = append([]string(nil), v...)
	}
	for f, v := range override {
		out[f] = append([]string(nil), v...)
	}
	return out
}
