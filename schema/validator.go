// Package schema проверяет, что лист действительно принадлежит
// выбранному формату справочника.
package schema

import (
	"fmt"
	"strings"

	"spravochnik/formats"
	"spravochnik/header"
	"spravochnik/workbook"
)

// Result итог проверки листа.
type Result struct {
	OK        bool   `json:"ok"`
	Format    string `json:"format"`
	Sheet     string `json:"sheet"`
	HeaderRow int    `json:"header_row"`
	// Start и Length задают положение сигнатуры в строке заголовков.
	Start  int `json:"start"`
	Length int `json:"length"`
	// Reason диагностика для оператора, заполняется при OK == false.
	Reason string `json:"reason,omitempty"`
}

// ValidateStrict ищет строку заголовков листа и проверяет её по сигнатуре формата.
func ValidateStrict(f *formats.Format, sheet workbook.Sheet) Result {
	return Validate(f, sheet.Name(), header.FindHeaderRow(sheet))
}

// Validate проверяет уже найденную строку заголовков. Сигнатура должна
// встречаться в строке целиком и подряд после грубой канонизации.
func Validate(f *formats.Format, sheetName string, hdr header.Row) Result {
	res := Result{Format: f.Name(), Sheet: sheetName, HeaderRow: hdr.Index}

	found := trimTrailingBlank(header.CanonAll(hdr.Raw, header.Coarse))
	if len(found) == 0 {
		res.Reason = fmt.Sprintf("Лист «%s»: не найдена строка заголовков.", sheetName)
		return res
	}

	want := f.Signature()
	start, ok := ContiguousSlice(found, want)
	if !ok {
		res.Reason = fmt.Sprintf("Лист «%s»: заголовки не совпадают.\nОжидалось подряд: [%s]\nВ файле: [%s]",
			sheetName, strings.Join(want, " | "), strings.Join(found, " | "))
		return res
	}

	if re, on := f.SheetGuard(); on && !re.MatchString(sheetName) {
		res.Reason = fmt.Sprintf("Лист «%s»: имя листа не соответствует формату %s (шаблон %q).",
			sheetName, f.Name(), re.String())
		return res
	}

	res.OK = true
	res.Start = start
	res.Length = len(want)
	return res
}

// ContiguousSlice ищет want как непрерывный фрагмент row.
func ContiguousSlice(row, want []string) (int, bool) {
	if len(want) == 0 || len(want) > len(row) {
		return -1, false
	}
outer:
	for i := 0; i+len(want) <= len(row); i++ {
		for j := range want {
			if row[i+j] != want[j] {
				continue outer
			}
		}
		return i, true
	}
	return -1, false
}

func trimTrailingBlank(cells []string) []string {
	end := len(cells)
	for end > 0 && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}
