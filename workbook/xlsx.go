package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func openXLSX(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть Excel файл: %w", err)
	}
	defer f.Close()

	book := NewMemory()
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("не удалось прочитать лист %q: %w", name, err)
		}
		book.Add(NewMemorySheet(name, rows))
	}
	return book, nil
}
