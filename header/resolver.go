package header

import (
	"fmt"
	"sort"
	"strings"

	"spravochnik/workbook"
)

// ColumnMap неизменяемое сопоставление полей индексам колонок.
type ColumnMap struct {
	index map[Field]int
}

// Index возвращает индекс колонки поля.
func (m ColumnMap) Index(f Field) (int, bool) {
	i, ok := m.index[f]
	return i, ok
}

// Has сообщает, найдена ли колонка для поля.
func (m ColumnMap) Has(f Field) bool {
	_, ok := m.index[f]
	return ok
}

// Cell возвращает обрезанный текст ячейки поля или пустую строку.
func (m ColumnMap) Cell(r workbook.Row, f Field) string {
	i, ok := m.index[f]
	if !ok {
		return ""
	}
	return strings.TrimSpace(workbook.CellString(r, i))
}

// Len количество найденных полей.
func (m ColumnMap) Len() int { return len(m.index) }

func (m ColumnMap) String() string {
	parts := make([]string, 0, len(m.index))
	for f, i := range m.index {
		parts = append(parts, fmt.Sprintf("%s=%d", f, i))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

// NewColumnMap собирает карту из готовых индексов.
func NewColumnMap(index map[Field]int) ColumnMap {
	cp := make(map[Field]int, len(index))
	for f, i := range index {
		cp[f] = i
	}
	return ColumnMap{index: cp}
}

// MapColumns сопоставляет каждому полю самую левую колонку, чей
// канонический заголовок совпадает с любым из синонимов поля. Одна
// колонка может достаться нескольким полям.
func MapColumns(syn Synonyms, hdr Row) ColumnMap {
	index := make(map[Field]int)
	for _, f := range Fields {
		want := make([]string, 0, len(syn[f]))
		for _, variant := range syn[f] {
			want = append(want, Canon(variant))
		}
		for i, got := range hdr.Canon {
			if got != "" && indexOf(want, got) >= 0 {
				index[f] = i
				break
			}
		}
	}
	return ColumnMap{index: index}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
