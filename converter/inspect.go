package converter

import (
	"context"

	"spravochnik/header"
	"spravochnik/schema"
	"spravochnik/scratch"
	"spravochnik/workbook"
)

// SheetInspection что видно на листе: строка заголовков и какие форматы она проходит.
type SheetInspection struct {
	Index     int             `json:"index"`
	Name      string          `json:"name"`
	LastRow   int             `json:"last_row"`
	HeaderRow int             `json:"header_row"`
	Headers   []string        `json:"headers"`
	Results   []schema.Result `json:"results"`
	// Hints подсказки для колонок, которые не распознал ни один синоним.
	Hints []header.Hint `json:"hints,omitempty"`
}

// Matches имена форматов, под которые подходит лист.
func (s SheetInspection) Matches() []string {
	var out []string
	for _, r := range s.Results {
		if r.OK {
			out = append(out, r.Format)
		}
	}
	return out
}

// Inspect открывает книгу и проверяет каждый лист по всем известным форматам.
func (c *Converter) Inspect(ctx context.Context, source string) ([]SheetInspection, error) {
	dir, err := scratch.Acquire(c.scratchRoot, "inspect", c.logger)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	snap, err := dir.CopyIn(source)
	if err != nil {
		return nil, err
	}
	wb, err := workbook.Open(snap)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return c.InspectWorkbook(ctx, wb)
}

// InspectWorkbook то же, что Inspect, для уже открытой книги.
func (c *Converter) InspectWorkbook(ctx context.Context, wb workbook.Workbook) ([]SheetInspection, error) {
	var out []SheetInspection
	for i := 0; i < wb.SheetCount(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sheet, err := wb.SheetAt(i)
		if err != nil {
			return nil, err
		}
		hdr := header.FindHeaderRow(sheet)
		si := SheetInspection{
			Index:     i,
			Name:      sheet.Name(),
			LastRow:   sheet.LastRowIndex(),
			HeaderRow: hdr.Index,
			Headers:   hdr.Raw,
		}
		syn := header.DefaultSynonyms()
		for _, f := range c.registry.All() {
			res := schema.Validate(f, sheet.Name(), hdr)
			si.Results = append(si.Results, res)
			if res.OK && len(si.Matches()) == 1 {
				syn = f.Synonyms()
			}
		}
		if len(si.Headers) > 0 {
			si.Hints = header.Suggest(c.stemmer, syn, hdr, header.MapColumns(syn, hdr))
		}
		out = append(out, si)
	}
	return out, nil
}
