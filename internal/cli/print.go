package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"spravochnik/converter"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
	headColor = color.New(color.FgCyan, color.Bold)
)

// printReport сводка конвертации по листам
func printReport(w io.Writer, rep *converter.Report) {
	headColor.Fprintf(w, "Формат: %s  Источник: %s\n", rep.Format, rep.Source)
	for _, s := range rep.Sheets {
		if s.Valid {
			okColor.Fprintf(w, "  ✓ %s", s.Name)
			fmt.Fprintf(w, ": строк %d, пропущено %d, ошибок %d, контактов %d\n",
				s.RowsRead, s.RowsSkipped, s.RowsFailed, s.Contacts)
			continue
		}
		warnColor.Fprintf(w, "  ✗ %s\n", s.Name)
		for _, line := range strings.Split(s.Reason, "\n") {
			fmt.Fprintf(w, "      %s\n", line)
		}
	}
	fmt.Fprintf(w, "Контактов собрано: %d, после объединения: %d\n", rep.ContactsBuilt, rep.ContactsWritten)
	if rep.PhoneWarnings > 0 {
		warnColor.Fprintf(w, "Подозрительных номеров: %d\n", rep.PhoneWarnings)
	}
	if rep.Error != "" {
		errColor.Fprintf(w, "Ошибка: %s\n", rep.Error)
	}
}
