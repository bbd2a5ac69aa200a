package workbook

import "fmt"

// Memory книга, целиком лежащая в памяти. Все читатели файлов
// материализуют содержимое в неё, тесты собирают её напрямую.
type Memory struct {
	sheets []*MemorySheet
}

// NewMemory собирает книгу из готовых листов.
func NewMemory(sheets ...*MemorySheet) *Memory {
	return &Memory{sheets: sheets}
}

// Add добавляет лист в конец книги.
func (m *Memory) Add(s *MemorySheet) {
	m.sheets = append(m.sheets, s)
}

func (m *Memory) SheetCount() int { return len(m.sheets) }

func (m *Memory) SheetAt(i int) (Sheet, error) {
	if i < 0 || i >= len(m.sheets) {
		return nil, fmt.Errorf("%w: %d из %d", ErrSheetOutOfRange, i, len(m.sheets))
	}
	return m.sheets[i], nil
}

func (m *Memory) Close() error { return nil }

// MemorySheet лист в памяти. nil-строка означает физически отсутствующую строку.
type MemorySheet struct {
	name string
	rows [][]string
}

// NewMemorySheet создает лист из матрицы строк.
func NewMemorySheet(name string, rows [][]string) *MemorySheet {
	return &MemorySheet{name: name, rows: trimTrailingNilRows(rows)}
}

func (s *MemorySheet) Name() string { return s.name }

func (s *MemorySheet) LastRowIndex() int { return len(s.rows) - 1 }

func (s *MemorySheet) Row(i int) (Row, bool) {
	if i < 0 || i >= len(s.rows) || s.rows[i] == nil {
		return nil, false
	}
	return memoryRow(s.rows[i]), true
}

type memoryRow []string

func (r memoryRow) Len() int { return len(r) }

func (r memoryRow) CellText(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

func trimTrailingNilRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && rows[end-1] == nil {
		end--
	}
	return rows[:end]
}
