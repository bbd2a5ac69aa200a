package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spravochnik/workbook"
)

func TestFindHeaderRow(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]string
		index int
	}{
		{
			name: "title rows above header",
			rows: [][]string{
				{"Справочник ВПК"},
				{},
				{"ФИО", "Должность", "E-mail", "Контактный телефон", "Внутр. номер телефона"},
				{"Иванов", "Инженер", "", "", ""},
			},
			index: 2,
		},
		{
			name:  "tie keeps earliest",
			rows:  [][]string{{"a", "b"}, {"c", "d"}},
			index: 0,
		},
		{
			name:  "all blank defaults to zero",
			rows:  [][]string{{" ", ""}, {""}},
			index: 0,
		},
		{
			name: "header beyond scan window is ignored",
			rows: [][]string{
				{"x"}, {"x"}, {"x"}, {"x"}, {"x"}, {"x"},
				{"ФИО", "Должность", "E-mail"},
			},
			index: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr := FindHeaderRow(workbook.NewMemorySheet("s", tt.rows))
			assert.Equal(t, tt.index, hdr.Index)
		})
	}
}

func TestFindHeaderRowEmptySheet(t *testing.T) {
	hdr := FindHeaderRow(workbook.NewMemorySheet("empty", nil))
	assert.Equal(t, 0, hdr.Index)
	assert.Empty(t, hdr.Raw)
	assert.Empty(t, hdr.Canon)
}

func TestMapColumns(t *testing.T) {
	sheet := workbook.NewMemorySheet("ВИЦ", [][]string{{
		"Организация", "Структурное подразделение/ департамент", "ФИО", "Должность",
		"Электронный адрес", "Код города", "Городской номер", "Мобильный номер",
		"Дополнительный номер/ e-mail", "Внутренний телефон",
	}})
	hdr := FindHeaderRow(sheet)
	cols := MapColumns(DefaultSynonyms(), hdr)

	want := map[Field]int{
		FieldOrg: 0, FieldDepartment: 1, FieldFIO: 2, FieldTitle: 3, FieldEmail: 4,
		FieldCode: 5, FieldCity: 6, FieldMobile: 7, FieldExtra: 8, FieldExt: 9,
	}
	for f, i := range want {
		got, ok := cols.Index(f)
		require.True(t, ok, "field %s not mapped", f)
		assert.Equal(t, i, got, "field %s", f)
	}
	assert.False(t, cols.Has(FieldCell))
	assert.False(t, cols.Has(FieldLocality))
}

func TestMapColumnsLeftmostColumnWins(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		field   Field
		want    int
	}{
		{"lower-priority synonym on the left", []string{"Телефон", "Контактный телефон"}, FieldCell, 0},
		{"higher-priority synonym on the left", []string{"Контактный телефон", "Телефон"}, FieldCell, 0},
		{"blank columns skipped", []string{"", "Код", "Код города"}, FieldCode, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr := Row{Canon: CanonAll(tt.headers, Fine)}
			i, ok := MapColumns(DefaultSynonyms(), hdr).Index(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.want, i)
		})
	}
}

func TestMapColumnsSharedColumn(t *testing.T) {
	hdr := Row{Canon: CanonAll([]string{"Email"}, Fine)}
	syn := DefaultSynonyms().Merge(Synonyms{FieldExtra: {"email"}})
	cols := MapColumns(syn, hdr)

	assert.True(t, cols.Has(FieldEmail))
	assert.True(t, cols.Has(FieldExtra))
}

func TestColumnMapCell(t *testing.T) {
	cols := NewColumnMap(map[Field]int{FieldFIO: 1})
	row, _ := workbook.NewMemorySheet("s", [][]string{{"x", "  Иванов  "}}).Row(0)

	assert.Equal(t, "Иванов", cols.Cell(row, FieldFIO))
	assert.Equal(t, "", cols.Cell(row, FieldTitle))
	assert.Equal(t, "fio=1", cols.String())
}
