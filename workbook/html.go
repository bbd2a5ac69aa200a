package workbook

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

func openHTML(path string) (Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer f.Close()

	// Кодировку берём из BOM или meta charset; 1С обычно пишет windows-1251.
	r, err := charset.NewReader(f, "text/html")
	if err != nil {
		return nil, fmt.Errorf("не удалось определить кодировку: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("не удалось разобрать HTML: %w", err)
	}
	return htmlTables(doc), nil
}

// htmlTables превращает каждую верхнеуровневую таблицу документа в лист.
func htmlTables(doc *goquery.Document) *Memory {
	book := NewMemory()
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		if table.ParentsFiltered("table").Length() > 0 {
			return
		}
		name := strings.TrimSpace(table.ChildrenFiltered("caption").First().Text())
		if name == "" {
			name = "Таблица " + strconv.Itoa(book.SheetCount()+1)
		}

		var rows [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			if tr.ParentsFiltered("table").First().Get(0) != table.Get(0) {
				return
			}
			var cells []string
			tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, collapseCellText(cell.Text()))
				span, _ := strconv.Atoi(cell.AttrOr("colspan", "1"))
				for k := 1; k < span; k++ {
					cells = append(cells, "")
				}
			})
			if cells == nil {
				cells = []string{}
			}
			rows = append(rows, cells)
		})
		book.Add(NewMemorySheet(name, rows))
	})
	return book
}

func collapseCellText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
