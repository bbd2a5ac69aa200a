// Package workbook даёт единый построчный доступ к табличным файлам
// справочников: .xlsx, .xls, HTML-таблицам из 1С и CSV.
package workbook

import (
	"errors"
	"strings"
)

var (
	// ErrUnsupportedFormat возвращается для расширений, которые мы не умеем читать.
	ErrUnsupportedFormat = errors.New("неподдерживаемый формат файла")
	// ErrSheetOutOfRange возвращается при обращении к несуществующему листу.
	ErrSheetOutOfRange = errors.New("лист с таким номером отсутствует")
)

// Workbook открытая книга. Листы нумеруются с нуля.
type Workbook interface {
	SheetCount() int
	SheetAt(i int) (Sheet, error)
	Close() error
}

// Sheet лист книги. LastRowIndex возвращает -1 для пустого листа.
type Sheet interface {
	Name() string
	LastRowIndex() int
	// Row возвращает строку i; false, если строки физически нет.
	Row(i int) (Row, bool)
}

// Row строка листа. Len равен индексу последней ячейки + 1.
type Row interface {
	Len() int
	// CellText возвращает текст ячейки; false, если ячейки нет.
	CellText(i int) (string, bool)
}

// CellString возвращает текст ячейки или пустую строку, если её нет.
func CellString(r Row, i int) string {
	if r == nil || i < 0 {
		return ""
	}
	s, ok := r.CellText(i)
	if !ok {
		return ""
	}
	return s
}

// NonBlankCount считает ячейки строки с непустым текстом.
func NonBlankCount(r Row) int {
	if r == nil {
		return 0
	}
	n := 0
	for i := 0; i < r.Len(); i++ {
		if s, ok := r.CellText(i); ok && strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}
