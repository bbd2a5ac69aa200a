package converter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SheetReport итог обработки одного листа.
type SheetReport struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Valid       bool   `json:"valid"`
	Reason      string `json:"reason,omitempty"`
	HeaderRow   int    `json:"header_row"`
	Columns     string `json:"columns,omitempty"`
	RowsRead    int    `json:"rows_read"`
	RowsSkipped int    `json:"rows_skipped"`
	RowsFailed  int    `json:"rows_failed"`
	Contacts    int    `json:"contacts"`
}

// Report итог конвертации.
type Report struct {
	ID              string        `json:"id"`
	Format          string        `json:"format"`
	Source          string        `json:"source"`
	Destination     string        `json:"destination,omitempty"`
	Sheets          []SheetReport `json:"sheets"`
	ContactsBuilt   int           `json:"contacts_built"`
	ContactsWritten int           `json:"contacts_written"`
	PhoneWarnings   int           `json:"phone_warnings"`
	StartedAt       time.Time     `json:"started_at"`
	FinishedAt      time.Time     `json:"finished_at"`
	Error           string        `json:"error,omitempty"`
}

func newReport(format, source, destination string) *Report {
	return &Report{
		ID:          uuid.NewString(),
		Format:      format,
		Source:      source,
		Destination: destination,
		StartedAt:   time.Now(),
	}
}

// ValidSheets количество листов, прошедших проверку схемы.
func (r *Report) ValidSheets() int {
	n := 0
	for _, s := range r.Sheets {
		if s.Valid {
			n++
		}
	}
	return n
}

// RowsFailed сумма строк, упавших при обработке.
func (r *Report) RowsFailed() int {
	n := 0
	for _, s := range r.Sheets {
		n += s.RowsFailed
	}
	return n
}

// Duration длительность конвертации.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Succeeded сообщает, что конвертация завершилась без фатальной ошибки.
func (r *Report) Succeeded() bool {
	return r.Error == "" && !r.FinishedAt.IsZero()
}

// Summary отчёт одной строкой.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s: ", r.Format, filepath.Base(r.Source))
	if r.Error != "" {
		fmt.Fprintf(&b, "ошибка: %s", r.Error)
		return b.String()
	}
	fmt.Fprintf(&b, "листов %d, контактов %d", r.ValidSheets(), r.ContactsWritten)
	if skipped := len(r.Sheets) - r.ValidSheets(); skipped > 0 {
		fmt.Fprintf(&b, ", пропущено листов %d", skipped)
	}
	if failed := r.RowsFailed(); failed > 0 {
		fmt.Fprintf(&b, ", строк с ошибками %d", failed)
	}
	return b.String()
}
