package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"spravochnik/converter"
)

// Journal журнал конвертаций в SQLite.
type Journal struct {
	conn   *sql.DB
	logger *slog.Logger
}

// Entry запись журнала.
type Entry struct {
	ID              string            `json:"id"`
	Format          string            `json:"format"`
	Source          string            `json:"source"`
	Destination     string            `json:"destination,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      time.Time         `json:"finished_at"`
	ValidSheets     int               `json:"valid_sheets"`
	ContactsBuilt   int               `json:"contacts_built"`
	ContactsWritten int               `json:"contacts_written"`
	RowsFailed      int               `json:"rows_failed"`
	PhoneWarnings   int               `json:"phone_warnings"`
	Error           string            `json:"error,omitempty"`
	Report          *converter.Report `json:"report,omitempty"`
}

// OpenJournal открывает или создает журнал. Путь ":memory:" даёт журнал в памяти.
func OpenJournal(path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if path == ":memory:" {
		// Каждое соединение получило бы свою пустую базу.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}

	j := &Journal{conn: conn, logger: logger}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) migrate() error {
	if err := ensureMigrationApplied(j.conn, j.logger, "001_conversions", createConversionsTable); err != nil {
		return err
	}
	return ensureMigrationApplied(j.conn, j.logger, "002_conversions_started_at_index", createStartedAtIndex)
}

func createConversionsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			format TEXT NOT NULL,
			source TEXT NOT NULL,
			destination TEXT,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP,
			valid_sheets INTEGER DEFAULT 0,
			contacts_built INTEGER DEFAULT 0,
			contacts_written INTEGER DEFAULT 0,
			rows_failed INTEGER DEFAULT 0,
			phone_warnings INTEGER DEFAULT 0,
			error TEXT,
			report_json TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create conversions table: %w", err)
	}
	return nil
}

func createStartedAtIndex(db *sql.DB) error {
	_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_conversions_started_at ON conversions(started_at)`)
	if err != nil {
		return fmt.Errorf("failed to create started_at index: %w", err)
	}
	return nil
}

// Record сохраняет итог конвертации.
func (j *Journal) Record(ctx context.Context, rep *converter.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = j.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO conversions
			(id, format, source, destination, started_at, finished_at, valid_sheets,
			 contacts_built, contacts_written, rows_failed, phone_warnings, error, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.ID, rep.Format, rep.Source, rep.Destination, rep.StartedAt, rep.FinishedAt,
		rep.ValidSheets(), rep.ContactsBuilt, rep.ContactsWritten, rep.RowsFailed(),
		rep.PhoneWarnings, rep.Error, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to record conversion %s: %w", rep.ID, err)
	}
	return nil
}

// List последние записи журнала, новые первыми.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.conn.QueryContext(ctx, `
		SELECT id, format, source, destination, started_at, finished_at, valid_sheets,
		       contacts_built, contacts_written, rows_failed, phone_warnings, error
		FROM conversions
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get запись журнала с полным отчётом. sql.ErrNoRows, если записи нет.
func (j *Journal) Get(ctx context.Context, id string) (*Entry, error) {
	row := j.conn.QueryRowContext(ctx, `
		SELECT id, format, source, destination, started_at, finished_at, valid_sheets,
		       contacts_built, contacts_written, rows_failed, phone_warnings, error, report_json
		FROM conversions WHERE id = ?`, id)

	var (
		e           Entry
		dest, errs  sql.NullString
		finished    sql.NullTime
		reportJSON  sql.NullString
	)
	err := row.Scan(&e.ID, &e.Format, &e.Source, &dest, &e.StartedAt, &finished, &e.ValidSheets,
		&e.ContactsBuilt, &e.ContactsWritten, &e.RowsFailed, &e.PhoneWarnings, &errs, &reportJSON)
	if err != nil {
		return nil, err
	}
	e.Destination, e.Error, e.FinishedAt = dest.String, errs.String, finished.Time

	if reportJSON.Valid && reportJSON.String != "" {
		var rep converter.Report
		if err := json.Unmarshal([]byte(reportJSON.String), &rep); err != nil {
			return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
		}
		e.Report = &rep
	}
	return &e, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e          Entry
		dest, errs sql.NullString
		finished   sql.NullTime
	)
	err := rows.Scan(&e.ID, &e.Format, &e.Source, &dest, &e.StartedAt, &finished, &e.ValidSheets,
		&e.ContactsBuilt, &e.ContactsWritten, &e.RowsFailed, &e.PhoneWarnings, &errs)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to scan conversion: %w", err)
	}
	e.Destination, e.Error, e.FinishedAt = dest.String, errs.String, finished.Time
	return e, nil
}

// Close закрывает журнал.
func (j *Journal) Close() error {
	return j.conn.Close()
}
