package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spravochnik/formats"
	"spravochnik/header"
	"spravochnik/workbook"
)

var (
	vzkHeader = []string{
		"Организация", "Структурное подразделение", "ФИО", "Должность", "Электронный адрес",
		"Код города", "Городской номер", "Мобильный номер", "Внутренний телефон",
	}
	vicHeader = []string{
		"Организация", "Структурное подразделение/ департамент", "ФИО", "Должность",
		"Электронный адрес", "Код города", "Городской номер", "Мобильный номер",
		"Дополнительный номер/ e-mail", "Внутренний телефон",
	}
	vpkHeader = []string{"Местонахождение", "ФИО", "Должность", "E-mail", "Контактный телефон", "Внутр. номер телефона"}
)

// normalizeOne прогоняет одну строку данных через нормализатор формата.
func normalizeOne(t *testing.T, format string, hdr, data []string) (NormalizedContactRow, bool) {
	t.Helper()
	reg, err := formats.Default()
	require.NoError(t, err)
	f, err := reg.Lookup(format)
	require.NoError(t, err)

	sheet := workbook.NewMemorySheet("Лист1", [][]string{hdr, data})
	h := header.FindHeaderRow(sheet)
	cols := header.MapColumns(f.Synonyms(), h)
	row, ok := sheet.Row(1)
	require.True(t, ok)
	return NewContactNormalizer(f, cols, sheet.Name()).NormalizeRow(1, row)
}

func TestNormalizeRowVZK(t *testing.T) {
	tests := []struct {
		name string
		data []string
		want NormalizedContactRow
		ok   bool
	}{
		{
			name: "city phone with extension and typo fixes",
			data: []string{"АО Завод", "Отел кадров", "Иванов  Иван", "Инженер", "i@x.ru", "495", "123-45-67", "", "123"},
			want: NormalizedContactRow{
				Location: "АО Завод / Отдел кадров",
				Name:     "Иванов Иван",
				Position: "Инженер",
				Email:    "i@x.ru",
				Phone:    "+74951234567;ext=123",
			},
			ok: true,
		},
		{
			name: "mobile wins over city",
			data: []string{"", "", "Петров Пётр", "", "", "495", "1234567", "8 916 123 45 67", ""},
			want: NormalizedContactRow{Name: "Петров Пётр", Phone: "+79161234567"},
			ok:   true,
		},
		{
			name: "glued words split",
			data: []string{"", "Службаобслуживания иремонта", "СидоровИван", "", "", "", "", "", ""},
			want: NormalizedContactRow{Location: "Службаобслуживания и ремонта", Name: "Сидоров Иван"},
			ok:   true,
		},
		{
			name: "extension without phone kept standalone",
			data: []string{"", "", "", "", "", "", "", "", "123"},
			want: NormalizedContactRow{InternalPhone: "123"},
			ok:   true,
		},
		{
			name: "only position is skipped",
			data: []string{"АО Завод", "", "", "Инженер", "", "", "", "", ""},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeOne(t, "ВЗК", vzkHeader, tt.data)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			tt.want.Sheet = "Лист1"
			tt.want.Row = 1
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRowVICExtraField(t *testing.T) {
	t.Run("extra as email fallback", func(t *testing.T) {
		got, ok := normalizeOne(t, "ВИЦ", vicHeader,
			[]string{"ВИЦ", "Бухгалтерия", "Кузнецова Анна", "", "", "", "", "", "a@vic.ru", ""})
		require.True(t, ok)
		assert.Equal(t, "a@vic.ru", got.Email)
		assert.Equal(t, "", got.Phone)
		assert.Equal(t, "ВИЦ / Бухгалтерия", got.Location)
	})

	t.Run("extra as last phone source", func(t *testing.T) {
		got, ok := normalizeOne(t, "ВИЦ", vicHeader,
			[]string{"", "", "Кузнецова Анна", "", "", "", "", "", "8 (916) 000-11-22", "4321"})
		require.True(t, ok)
		assert.Equal(t, "+79160001122;ext=4321", got.Phone)
	})
}

func TestNormalizeRowVPKLocality(t *testing.T) {
	got, ok := normalizeOne(t, "ВПК", vpkHeader,
		[]string{"Москва", "Орлов Олег", "Директор", "o@vpk.ru", "8 (495) 111-22-33 доб. 45", ""})
	require.True(t, ok)
	assert.Equal(t, "Москва", got.City)
	assert.Equal(t, "", got.Location)
	assert.Equal(t, "+74951112233;ext=45", got.Phone, "marked inline extension attaches regardless of length")
}

func TestNormalizeRowZZGTLiteralNewlines(t *testing.T) {
	hdr := []string{
		"Организация", "Структурное подразделение/ департамент", "ФИО", "Должность",
		"Электронный адрес", "Код города", "Городской номер", "Мобильный номер", "Внутренний телефон",
	}
	got, ok := normalizeOne(t, "ЗЗГТ", hdr,
		[]string{"ЗЗГТ", "", `Петров П.П.\n`, `Мастер\n\n`, "", "", "", "", ""})
	require.True(t, ok)
	assert.Equal(t, "Петров П.П.", got.Name)
	assert.Equal(t, "Мастер", got.Position)
}

func TestAttachExtension(t *testing.T) {
	tests := []struct {
		name         string
		numbers      string
		internal     string
		wantPhone    string
		wantInternal string
	}{
		{"no internal", "+74951234567", "", "+74951234567", ""},
		{"single extension", "+74951234567", "123", "+74951234567;ext=123", ""},
		{"several extensions", "+74951234567", "123; 456,789", "+74951234567;ext=123", "456, 789"},
		{"extension without phone", "", "1234", "", "1234"},
		{"secondary number", "+74951234567", "8 916 123-45-67", "+74951234567", "+79161234567"},
		{"short digits kept", "", "45", "", "45"},
		{"garbage dropped", "", "нет", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, i := AttachExtension(tt.numbers, tt.internal)
			assert.Equal(t, tt.wantPhone, p)
			assert.Equal(t, tt.wantInternal, i)
		})
	}
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("a@b"))
	assert.False(t, IsEmail("@b"))
	assert.False(t, IsEmail("a@"))
	assert.False(t, IsEmail("ab"))
}

func TestJoinLocation(t *testing.T) {
	assert.Equal(t, "A / B", JoinLocation("A", "B"))
	assert.Equal(t, "A", JoinLocation("A", ""))
	assert.Equal(t, "B", JoinLocation("", "B"))
	assert.Equal(t, "", JoinLocation("", ""))
}
