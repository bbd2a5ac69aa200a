// Package converter собирает конвейер: открытие книги, проверка листов,
// нормализация строк, объединение дублей и запись vCard.
package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"

	"spravochnik/formats"
	"spravochnik/header"
	"spravochnik/normalization"
	"spravochnik/phone"
	"spravochnik/schema"
	"spravochnik/scratch"
	"spravochnik/vcard"
	"spravochnik/workbook"
)

// ErrNoValidSheet ни один лист книги не подошёл под выбранный формат.
var ErrNoValidSheet = errors.New("не найдено ни одного валидного листа для обработки")

// Request параметры одной конвертации.
type Request struct {
	Source      string
	Destination string
	Format      string
	// Name имя источника для отчёта и журнала. Пустое значит Source.
	Name string
}

func (r Request) sourceName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Source
}

// Journal сохраняет итоги конвертаций.
type Journal interface {
	Record(ctx context.Context, rep *Report) error
}

// Converter выполняет конвертацию справочников в vCard.
type Converter struct {
	registry    *formats.Registry
	logger      *slog.Logger
	scratchRoot string
	journal     Journal
	stemmer     *header.Stemmer
}

// Option настраивает Converter.
type Option func(*Converter)

// WithLogger задаёт логгер.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithScratchRoot задаёт каталог для временных файлов.
func WithScratchRoot(dir string) Option {
	return func(c *Converter) { c.scratchRoot = dir }
}

// WithJournal включает запись итогов в журнал.
func WithJournal(j Journal) Option {
	return func(c *Converter) { c.journal = j }
}

// New создает Converter.
func New(reg *formats.Registry, opts ...Option) *Converter {
	c := &Converter{registry: reg, logger: slog.Default(), stemmer: header.NewStemmer()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry реестр форматов конвертера.
func (c *Converter) Registry() *formats.Registry { return c.registry }

// Convert читает справочник и пишет файл .vcf. Файл назначения
// появляется только при успешной конвертации.
func (c *Converter) Convert(ctx context.Context, req Request) (rep *Report, err error) {
	rep = newReport(req.Format, req.sourceName(), req.Destination)
	defer func() { c.finish(ctx, rep, err) }()

	dir, err := scratch.Acquire(c.scratchRoot, "convert", c.logger)
	if err != nil {
		return rep, err
	}
	defer dir.Close()

	contacts, err := c.load(ctx, dir, req.Source, req.Format, rep)
	if err != nil {
		return rep, err
	}

	tmp := dir.File("contacts.vcf")
	n, err := vcard.WriteVCardFile(tmp, contacts)
	if err != nil {
		return rep, err
	}
	rep.ContactsWritten = n

	if err := ctx.Err(); err != nil {
		return rep, err
	}
	if err := scratch.MoveFile(tmp, req.Destination); err != nil {
		return rep, fmt.Errorf("failed to write destination %s: %w", req.Destination, err)
	}
	return rep, nil
}

// ConvertTo пишет vCard в w. Используется HTTP API, Destination не нужен.
func (c *Converter) ConvertTo(ctx context.Context, req Request, w io.Writer) (rep *Report, err error) {
	rep = newReport(req.Format, req.sourceName(), "")
	defer func() { c.finish(ctx, rep, err) }()

	dir, err := scratch.Acquire(c.scratchRoot, "convert", c.logger)
	if err != nil {
		return rep, err
	}
	defer dir.Close()

	contacts, err := c.load(ctx, dir, req.Source, req.Format, rep)
	if err != nil {
		return rep, err
	}
	n, err := vcard.Write(w, contacts)
	rep.ContactsWritten = n
	return rep, err
}

// Validate проходит весь конвейер без записи результата.
func (c *Converter) Validate(ctx context.Context, source, format string) (*Report, []vcard.Contact, error) {
	rep := newReport(format, source, "")

	dir, err := scratch.Acquire(c.scratchRoot, "validate", c.logger)
	if err != nil {
		return rep, nil, err
	}
	defer dir.Close()

	contacts, err := c.load(ctx, dir, source, format, rep)
	rep.FinishedAt = time.Now()
	if err != nil {
		rep.Error = err.Error()
		return rep, nil, err
	}
	merged := vcard.MergeDuplicates(contacts)
	rep.ContactsWritten = len(merged)
	return rep, merged, nil
}

func (c *Converter) load(ctx context.Context, dir *scratch.Dir, source, format string, rep *Report) ([]vcard.Contact, error) {
	f, err := c.registry.Lookup(format)
	if err != nil {
		return nil, err
	}
	rep.Format = f.Name()

	if !workbook.Supported(source) {
		return nil, fmt.Errorf("%w: %s", workbook.ErrUnsupportedFormat, source)
	}

	snap, err := dir.CopyIn(source)
	if err != nil {
		return nil, err
	}
	wb, err := workbook.Open(snap)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return c.Collect(ctx, wb, f, rep)
}

// Collect проверяет листы книги и собирает контакты со всех подходящих.
// Непрошедшие проверку листы пропускаются; если не подошёл ни один,
// возвращается ErrNoValidSheet с причинами по каждому листу.
func (c *Converter) Collect(ctx context.Context, wb workbook.Workbook, f *formats.Format, rep *Report) ([]vcard.Contact, error) {
	var (
		contacts []vcard.Contact
		problems *multierror.Error
	)

	for i := 0; i < wb.SheetCount(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sheet, err := wb.SheetAt(i)
		if err != nil {
			problems = multierror.Append(problems, err)
			continue
		}

		sr, built, err := c.collectSheet(ctx, f, i, sheet)
		rep.Sheets = append(rep.Sheets, sr)
		if err != nil {
			return nil, err
		}
		if !sr.Valid {
			c.logger.Warn("sheet skipped", "sheet", sr.Name, "format", f.Name(), "reason", sr.Reason)
			problems = multierror.Append(problems, errors.New(sr.Reason))
			continue
		}
		c.logger.Info("sheet processed",
			"sheet", sr.Name,
			"header_row", sr.HeaderRow,
			"columns", sr.Columns,
			"rows", sr.RowsRead,
			"skipped", sr.RowsSkipped,
			"failed", sr.RowsFailed,
			"contacts", sr.Contacts,
		)
		contacts = append(contacts, built...)
	}

	if rep.ValidSheets() == 0 {
		if err := problems.ErrorOrNil(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoValidSheet, err)
		}
		return nil, ErrNoValidSheet
	}

	rep.ContactsBuilt = len(contacts)
	rep.PhoneWarnings = c.checkPhones(contacts)
	return contacts, nil
}

// collectSheet возвращает ошибку только при отмене контекста.
func (c *Converter) collectSheet(ctx context.Context, f *formats.Format, index int, sheet workbook.Sheet) (SheetReport, []vcard.Contact, error) {
	hdr := header.FindHeaderRow(sheet)
	sr := SheetReport{Index: index, Name: sheet.Name(), HeaderRow: hdr.Index}

	res := schema.Validate(f, sheet.Name(), hdr)
	if !res.OK {
		sr.Reason = res.Reason
		return sr, nil, nil
	}
	sr.Valid = true

	cols := header.MapColumns(f.Synonyms(), hdr)
	sr.Columns = cols.String()
	norm := normalization.NewContactNormalizer(f, cols, sheet.Name())

	var out []vcard.Contact
	for r := hdr.Index + 1; r <= sheet.LastRowIndex(); r++ {
		if err := ctx.Err(); err != nil {
			sr.Reason = "прервано: " + err.Error()
			return sr, nil, err
		}
		row, ok := sheet.Row(r)
		if !ok {
			continue
		}
		sr.RowsRead++

		built, err := processRow(norm, r, row)
		if err != nil {
			sr.RowsFailed++
			c.logger.Error("row failed", "sheet", sheet.Name(), "row", r+1, "error", err)
			continue
		}
		if len(built) == 0 {
			sr.RowsSkipped++
			continue
		}
		sr.Contacts += len(built)
		out = append(out, built...)
	}
	return sr, out, nil
}

// processRow изолирует сбой одной строки от остального листа.
func processRow(norm *normalization.ContactNormalizer, index int, row workbook.Row) (out []vcard.Contact, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	rec, ok := norm.NormalizeRow(index, row)
	if !ok {
		return nil, nil
	}
	return normalization.BuildContacts(rec), nil
}

func (c *Converter) checkPhones(contacts []vcard.Contact) int {
	warnings := 0
	for _, ct := range contacts {
		for _, p := range []string{ct.MobileE164, ct.WorkE164} {
			if p != "" && !phone.Plausible(p) {
				warnings++
				c.logger.Debug("implausible phone number", "name", ct.FullName, "phone", p, "kind", phone.Describe(p))
			}
		}
	}
	return warnings
}

func (c *Converter) finish(ctx context.Context, rep *Report, err error) {
	rep.FinishedAt = time.Now()
	if err != nil {
		rep.Error = err.Error()
		c.logger.Error("conversion failed", "id", rep.ID, "format", rep.Format, "source", rep.Source, "error", err)
	} else {
		c.logger.Info("conversion completed",
			"id", rep.ID,
			"format", rep.Format,
			"source", rep.Source,
			"contacts", rep.ContactsWritten,
			"duration_ms", rep.Duration().Milliseconds(),
		)
	}

	if c.journal != nil {
		if jerr := c.journal.Record(context.WithoutCancel(ctx), rep); jerr != nil {
			c.logger.Warn("failed to record conversion", "id", rep.ID, "error", jerr)
		}
	}
}
