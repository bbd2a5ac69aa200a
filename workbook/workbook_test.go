package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestMemorySheet(t *testing.T) {
	sheet := NewMemorySheet("ВПК", [][]string{
		{"ФИО", "Должность"},
		nil,
		{"Иванов", ""},
		nil,
	})

	assert.Equal(t, "ВПК", sheet.Name())
	assert.Equal(t, 2, sheet.LastRowIndex())

	_, ok := sheet.Row(1)
	assert.False(t, ok, "nil row must be reported as absent")

	row, ok := sheet.Row(2)
	require.True(t, ok)
	assert.Equal(t, 2, row.Len())
	assert.Equal(t, "Иванов", CellString(row, 0))
	assert.Equal(t, "", CellString(row, 5))
	assert.Equal(t, 1, NonBlankCount(row))
}

func TestMemorySheetAtOutOfRange(t *testing.T) {
	book := NewMemory(NewMemorySheet("a", nil))
	_, err := book.SheetAt(3)
	assert.ErrorIs(t, err, ErrSheetOutOfRange)
}

func TestOpenUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, Supported(path))
}

func TestSniffBytes(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want fileKind
	}{
		{"ole", append(append([]byte{}, oleSignature...), 0, 0), kindOLE},
		{"zip", []byte("PK\x03\x04rest"), kindZIP},
		{"html with bom", []byte("\xef\xbb\xbf<html><body><table>"), kindHTML},
		{"bare table", []byte("\r\n  <TABLE border=1>"), kindHTML},
		{"garbage", []byte("just text"), kindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sniffBytes(tt.head))
		})
	}
}

func TestOpenCSVWindows1251(t *testing.T) {
	text := "ФИО;Должность;E-mail\nПетров Пётр;Инженер;p@x.ru\n"
	encoded, err := charmap.Windows1251.NewEncoder().String(text)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "впк.csv")
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0o644))

	book, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 1, book.SheetCount())

	sheet, err := book.SheetAt(0)
	require.NoError(t, err)
	assert.Equal(t, "впк", sheet.Name())

	row, ok := sheet.Row(1)
	require.True(t, ok)
	assert.Equal(t, "Петров Пётр", CellString(row, 0))
	assert.Equal(t, "p@x.ru", CellString(row, 2))
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', detectDelimiter([]byte("a,b,c\n1;2")))
	assert.Equal(t, ';', detectDelimiter([]byte("a;b;c")))
	assert.Equal(t, '\t', detectDelimiter([]byte("a\tb\tc")))
}

func TestOpenHTMLDisguisedAsXLS(t *testing.T) {
	page := `<html><head><meta charset="utf-8"></head><body>
<table>
<caption>ЗЗГТ</caption>
<tr><th>ФИО</th><th colspan="2">Телефоны</th><th>Почта</th></tr>
<tr><td> Сидоров  Иван </td><td>1</td><td>2</td><td>s@x.ru</td></tr>
</table>
<table><tr><td>второй</td></tr></table>
</body></html>`
	path := filepath.Join(t.TempDir(), "export.xls")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	book, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 2, book.SheetCount())

	sheet, err := book.SheetAt(0)
	require.NoError(t, err)
	assert.Equal(t, "ЗЗГТ", sheet.Name())

	header, ok := sheet.Row(0)
	require.True(t, ok)
	assert.Equal(t, 4, header.Len(), "colspan must keep columns aligned")
	assert.Equal(t, "Почта", CellString(header, 3))

	row, ok := sheet.Row(1)
	require.True(t, ok)
	assert.Equal(t, "Сидоров Иван", CellString(row, 0))

	second, err := book.SheetAt(1)
	require.NoError(t, err)
	assert.Equal(t, "Таблица 2", second.Name())
}

func TestOpenXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "ВИЦ"))
	require.NoError(t, f.SetSheetRow("ВИЦ", "A1", &[]any{"Справочник"}))
	require.NoError(t, f.SetSheetRow("ВИЦ", "A3", &[]any{"ФИО", "Должность"}))
	require.NoError(t, f.SetSheetRow("ВИЦ", "A4", &[]any{"Кузнецова Анна", "Бухгалтер"}))

	path := filepath.Join(t.TempDir(), "виц.xlsx")
	require.NoError(t, f.SaveAs(path))

	book, err := Open(path)
	require.NoError(t, err)
	defer book.Close()

	sheet, err := book.SheetAt(0)
	require.NoError(t, err)
	assert.Equal(t, "ВИЦ", sheet.Name())
	assert.Equal(t, 3, sheet.LastRowIndex())

	row, ok := sheet.Row(3)
	require.True(t, ok)
	assert.Equal(t, "Кузнецова Анна", CellString(row, 0))
}
