package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Последние конвертации из журнала",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.opts.journalPath == "" {
				return fmt.Errorf("укажите журнал флагом --journal")
			}
			j, err := a.openJournal(a.opts.journalPath)
			if err != nil {
				return err
			}
			entries, err := j.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Журнал пуст")
				return nil
			}
			for _, e := range entries {
				status := okColor.Sprint("ok")
				if e.Error != "" {
					status = errColor.Sprint("ошибка")
				}
				fmt.Fprintf(out, "%s  %s  %-5s %s  листов %d, контактов %d  %s\n",
					e.StartedAt.Local().Format("2006-01-02 15:04:05"), e.ID, e.Format, status,
					e.ValidSheets, e.ContactsWritten, e.Source)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "сколько записей показать")
	return cmd
}
