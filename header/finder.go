package header

import (
	"spravochnik/workbook"
)

// MaxHeaderScanRows сколько первых строк листа просматривается в поисках заголовка.
const MaxHeaderScanRows = 6

// Row найденная строка заголовков.
type Row struct {
	Index int
	Raw   []string
	Canon []string
}

// FindHeaderRow выбирает среди первых строк листа ту, где больше всего
// непустых ячеек. При равенстве побеждает более ранняя строка, при
// отсутствии непустых строк возвращается строка 0.
func FindHeaderRow(sheet workbook.Sheet) Row {
	best, bestCount := 0, 0

	last := sheet.LastRowIndex()
	limit := MaxHeaderScanRows
	if last+1 < limit {
		limit = last + 1
	}
	for i := 0; i < limit; i++ {
		r, ok := sheet.Row(i)
		if !ok {
			continue
		}
		if n := workbook.NonBlankCount(r); n > bestCount {
			best, bestCount = i, n
		}
	}

	hdr := Row{Index: best, Raw: []string{}, Canon: []string{}}
	r, ok := sheet.Row(best)
	if !ok {
		return hdr
	}
	hdr.Raw = make([]string, r.Len())
	for i := range hdr.Raw {
		hdr.Raw[i] = workbook.CellString(r, i)
	}
	hdr.Canon = CanonAll(hdr.Raw, Fine)
	return hdr
}
