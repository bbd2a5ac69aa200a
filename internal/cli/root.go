// Package cli команды утилиты spravochnik.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"spravochnik/converter"
	"spravochnik/database"
	"spravochnik/formats"
	"spravochnik/internal/logging"
)

// options общие флаги всех команд
type options struct {
	formatsFile string
	sheetGuard  bool
	logLevel    string
	logFormat   string
	logFile     string
	journalPath string
	scratchDir  string
}

type app struct {
	opts        options
	logger      *slog.Logger
	closeLogger func() error
	journal     *database.Journal
}

// NewRootCommand корневая команда со всеми подкомандами
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "spravochnik",
		Short: "Конвертер справочников сотрудников в vCard для Apple Contacts",
		Long: "spravochnik читает табличные справочники (ВПК, ВЗК, ВИЦ, ЗЗГТ) из .xlsx, .xls, .csv или .html\n" +
			"и пишет vCard 3.0, который импортируется в Apple Contacts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.boot(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.shutdown()
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.formatsFile, "formats", "", "YAML-файл с описанием форматов (по умолчанию встроенный)")
	flags.BoolVar(&a.opts.sheetGuard, "sheet-guard", false, "проверять имя листа по шаблону формата")
	flags.StringVar(&a.opts.logLevel, "log-level", "WARN", "уровень логирования: DEBUG, INFO, WARN, ERROR")
	flags.StringVar(&a.opts.logFormat, "log-format", "text", "формат логов: text или json")
	flags.StringVar(&a.opts.logFile, "log-file", "", "писать логи в файл с ротацией")
	flags.StringVar(&a.opts.journalPath, "journal", "", "SQLite-журнал конвертаций (пусто: не вести)")
	flags.StringVar(&a.opts.scratchDir, "scratch-dir", "", "каталог для временных файлов")

	root.AddCommand(
		a.convertCmd(),
		a.validateCmd(),
		a.inspectCmd(),
		a.formatsCmd(),
		a.sampleCmd(),
		a.historyCmd(),
		a.serveCmd(),
	)
	return root
}

// Execute запускает утилиту
func Execute(out io.Writer, args []string) error {
	root := NewRootCommand(out)
	root.SetArgs(args)
	return root.Execute()
}

func (a *app) boot(logOut io.Writer) error {
	logger, closeFn, err := logging.Setup(logging.Options{
		Level:  a.opts.logLevel,
		Format: a.opts.logFormat,
		File:   a.opts.logFile,
		Output: logOut,
	})
	if err != nil {
		return err
	}
	a.logger, a.closeLogger = logger, closeFn
	return nil
}

func (a *app) shutdown() error {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.Warn("failed to close journal", "error", err)
		}
		a.journal = nil
	}
	if a.closeLogger != nil {
		return a.closeLogger()
	}
	return nil
}

func (a *app) registry() (*formats.Registry, error) {
	guard := formats.WithSheetGuards(a.opts.sheetGuard)
	if a.opts.formatsFile != "" {
		return formats.Load(a.opts.formatsFile, guard)
	}
	return formats.Default(guard)
}

// openJournal открывает журнал, если он задан флагом или обязателен
func (a *app) openJournal(path string) (*database.Journal, error) {
	if a.journal != nil {
		return a.journal, nil
	}
	if path == "" {
		return nil, nil
	}
	j, err := database.OpenJournal(path, a.logger)
	if err != nil {
		return nil, err
	}
	a.journal = j
	return j, nil
}

func (a *app) converter() (*converter.Converter, error) {
	reg, err := a.registry()
	if err != nil {
		return nil, err
	}

	opts := []converter.Option{
		converter.WithLogger(a.logger),
		converter.WithScratchRoot(a.opts.scratchDir),
	}
	j, err := a.openJournal(a.opts.journalPath)
	if err != nil {
		return nil, err
	}
	if j != nil {
		opts = append(opts, converter.WithJournal(j))
	}
	return converter.New(reg, opts...), nil
}

func requireFormat(format string) error {
	if format == "" {
		return fmt.Errorf("укажите формат справочника флагом --format (ВПК, ВЗК, ВИЦ, ЗЗГТ)")
	}
	return nil
}
