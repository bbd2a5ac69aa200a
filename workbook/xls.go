package workbook

import (
	"fmt"
	"strings"

	"github.com/extrame/xls"
)

func openXLS(path string) (book Workbook, err error) {
	// Парсер BIFF паникует на повреждённых файлах.
	defer func() {
		if r := recover(); r != nil {
			book = nil
			err = fmt.Errorf("повреждённый файл .xls: %v", r)
		}
	}()

	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл .xls: %w", err)
	}

	mem := NewMemory()
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		rows := make([][]string, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			last := row.LastCol()
			if last < 0 {
				continue
			}
			cells := make([]string, last)
			for c := row.FirstCol(); c < last; c++ {
				cells[c] = strings.TrimRight(row.Col(c), "\x00")
			}
			rows[r] = cells
		}
		mem.Add(NewMemorySheet(sheet.Name, rows))
	}
	return mem, nil
}
