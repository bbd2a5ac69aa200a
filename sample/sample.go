// Package sample генерирует синтетические справочники в раскладке любого формата.
package sample

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"

	"spravochnik/formats"
	"spravochnik/header"
)

// Options параметры генерации
type Options struct {
	Rows      int
	Seed      int64
	SheetName string // по умолчанию имя формата
	// Title строка-заголовок документа над шапкой таблицы
	Title string
}

var (
	lastNames   = []string{"Иванов", "Петров", "Сидоров", "Кузнецов", "Смирнов", "Попов", "Волков", "Соколов", "Лебедев", "Козлов"}
	firstNames  = []string{"Иван", "Пётр", "Алексей", "Сергей", "Дмитрий", "Андрей", "Михаил", "Николай"}
	patronymics = []string{"Иванович", "Петрович", "Алексеевич", "Сергеевич", "Дмитриевич", "Андреевич"}
	titles      = []string{"Инженер", "Ведущий инженер", "Начальник отдела", "Главный специалист", "Бухгалтер", "Юрисконсульт", "Техник"}
	orgs        = []string{"АО «Корпус»", "ООО «Вектор»", "АО «ВИЦ»"}
	departments = []string{"Отдел кадров", "Бухгалтерия", "Конструкторское бюро", "Отдел главного механика", "Служба безопасности"}
	cityCodes   = []string{"495", "473", "812", "383"}
	mailDomains = []string{"vpk.example.ru", "corp.example.ru"}
)

// Rows строки листа: необязательная строка-заголовок, шапка формата и данные.
func Rows(f *formats.Format, opts Options) [][]string {
	faker := gofakeit.New(opts.Seed)

	signature := f.RawSignature()
	fields := columnFields(f, signature)

	var rows [][]string
	if opts.Title != "" {
		rows = append(rows, []string{opts.Title})
	}
	rows = append(rows, signature)

	for i := 0; i < opts.Rows; i++ {
		p := newPerson(faker)
		row := make([]string, len(signature))
		for col, field := range fields {
			row[col] = p.value(faker, field)
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteXLSX сохраняет сгенерированный лист в книгу .xlsx
func WriteXLSX(path string, f *formats.Format, opts Options) error {
	name := opts.SheetName
	if name == "" {
		name = f.Name()
	}

	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), name); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for i, row := range Rows(f, opts) {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// columnFields поле справочника для каждой колонки сигнатуры
func columnFields(f *formats.Format, signature []string) []header.Field {
	hdr := header.Row{Raw: signature, Canon: header.CanonAll(signature, header.Fine)}
	cols := header.MapColumns(f.Synonyms(), hdr)

	out := make([]header.Field, len(signature))
	for _, field := range header.Fields {
		if idx, ok := cols.Index(field); ok && idx < len(out) {
			out[idx] = field
		}
	}
	return out
}

type person struct {
	last, first, middle string
	department          string
}

func newPerson(faker *gofakeit.Faker) person {
	return person{
		last:       faker.RandomString(lastNames),
		first:      faker.RandomString(firstNames),
		middle:     faker.RandomString(patronymics),
		department: faker.RandomString(departments),
	}
}

func (p person) value(faker *gofakeit.Faker, field header.Field) string {
	switch field {
	case header.FieldFIO:
		return p.last + " " + p.first + " " + p.middle
	case header.FieldTitle:
		return faker.RandomString(titles)
	case header.FieldEmail:
		return strings.ToLower(faker.Username()) + "@" + faker.RandomString(mailDomains)
	case header.FieldOrg:
		return faker.RandomString(orgs)
	case header.FieldDepartment:
		return p.department
	case header.FieldCode:
		return faker.RandomString(cityCodes)
	case header.FieldCity:
		return faker.Numerify("###-##-##")
	case header.FieldMobile, header.FieldCell:
		return faker.Numerify("8 (9##) ###-##-##")
	case header.FieldExt:
		return faker.Numerify("1###")
	case header.FieldExtra:
		if faker.Bool() {
			return ""
		}
		return faker.Numerify("8 (9##) ###-##-##")
	}
	return ""
}
