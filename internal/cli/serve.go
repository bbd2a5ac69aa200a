package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"spravochnik/converter"
	"spravochnik/database"
	"spravochnik/formats"
	"spravochnik/internal/config"
	"spravochnik/internal/logging"
	"spravochnik/server"
)

func (a *app) serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API (настройки из переменных окружения)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			// Серверу нужны структурированные логи из конфигурации
			logger, closeLog, err := logging.Setup(logging.Options{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				File:   cfg.LogFile,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer closeLog()

			guard := formats.WithSheetGuards(cfg.SheetNameGuard || a.opts.sheetGuard)
			reg, err := formats.Default(guard)
			if cfg.FormatsFile != "" {
				reg, err = formats.Load(cfg.FormatsFile, guard)
			}
			if err != nil {
				return err
			}

			journal, err := database.OpenJournal(cfg.JournalPath, logger)
			if err != nil {
				return err
			}
			defer journal.Close()

			conv := converter.New(reg,
				converter.WithLogger(logger),
				converter.WithScratchRoot(cfg.ScratchDir),
				converter.WithJournal(journal),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.NewServer(cfg, conv, journal, logger).Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "порт (перекрывает SERVER_PORT)")
	return cmd
}
