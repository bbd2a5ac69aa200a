package formats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spravochnik/header"
)

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, []string{"ВПК", "ВЗК", "ВИЦ", "ЗЗГТ"}, reg.Names())

	vic, err := reg.Lookup("вИц")
	require.NoError(t, err)
	assert.Equal(t, "ВИЦ", vic.Name())
	assert.Contains(t, vic.Signature(), "дополнительный номер email")

	byAlias, err := reg.Lookup("GroupVPK")
	require.NoError(t, err)
	assert.Same(t, vic, byAlias)

	vpk, err := reg.Lookup("VPK")
	require.NoError(t, err)
	assert.Equal(t, []string{"фио", "должность", "email", "контактный телефон", "внутр номер телефона"}, vpk.Signature())
}

func TestLookupUnknown(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	_, err = reg.Lookup("XYZ")
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), "«XYZ»")
}

func TestSheetGuardDefaultOff(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	f, err := reg.Lookup("ВЗК")
	require.NoError(t, err)

	re, on := f.SheetGuard()
	assert.False(t, on)
	require.NotNil(t, re)
	assert.True(t, re.MatchString("Воронежский ЗАВОД"))

	forced, err := Default(WithSheetGuards(true))
	require.NoError(t, err)
	f, err = forced.Lookup("ВЗК")
	require.NoError(t, err)
	_, on = f.SheetGuard()
	assert.True(t, on)
}

func TestFixTypos(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	f, err := reg.Lookup("ВЗК")
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"Отел кадров", "Отдел кадров"},
		{"отел отел", "отдел отдел"},
		{"Котел", "Котел"},
		{"Служба обслуживания иремонта", "Служба обслуживания и ремонта"},
		{"режмно-секретного отдела", "режимно-секретного отдела"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FixTypos(tt.in))
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "formats: []"},
		{"no signature", "formats:\n  - name: X\n"},
		{"unknown synonym field", "formats:\n  - name: X\n    signature: [a]\n    synonyms:\n      phone: [тел]\n"},
		{"bad guard", "formats:\n  - name: X\n    signature: [a]\n    sheet_guard:\n      pattern: \"(\"\n"},
		{"duplicate alias", "formats:\n  - name: X\n    signature: [a]\n  - name: Y\n    aliases: [x]\n    signature: [b]\n"},
		{"not yaml", "formats: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFileWithSynonymOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formats.yaml")
	data := `formats:
  - name: Тест
    signature: [Сотрудник, Телефон]
    synonyms:
      fio: [Сотрудник]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	reg, err := Load(path)
	require.NoError(t, err)
	f, err := reg.Lookup("тест")
	require.NoError(t, err)

	assert.Equal(t, []string{"Сотрудник"}, f.Synonyms()[header.FieldFIO])
	assert.NotEmpty(t, f.Synonyms()[header.FieldCell], "defaults stay for fields without override")
	assert.Equal(t, "Тест", f.Title())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
